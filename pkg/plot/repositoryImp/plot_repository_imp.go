package repositoryImp

import (
	"errors"

	"gorm.io/gorm"

	"carbonledger/entities"
	"carbonledger/pkg/apperr"
	"carbonledger/pkg/plot/repository"
)

type plotRepo struct{ db *gorm.DB }

func New(db *gorm.DB) repository.PlotRepository { return &plotRepo{db} }

func (r *plotRepo) Create(p *entities.Plot) error {
	// referential integrity: the owning farmer must exist
	var n int64
	if err := r.db.Model(&entities.Farmer{}).Where("farmer_id = ?", p.FarmerID).Count(&n).Error; err != nil {
		return err
	}
	if n == 0 {
		return apperr.NotFound("farmer", p.FarmerID)
	}
	return r.db.Create(p).Error
}

func (r *plotRepo) FindByID(id uint) (*entities.Plot, error) {
	var p entities.Plot
	if err := r.db.First(&p, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("plot", id)
		}
		return nil, err
	}
	return &p, nil
}
