package repository

import "carbonledger/entities"

type PlotRepository interface {
	Create(p *entities.Plot) error
	FindByID(id uint) (*entities.Plot, error)
}
