package repository

import "carbonledger/entities"

type EventRepository interface {
	Create(e *entities.PracticeEvent) error
	FindByID(id uint) (*entities.PracticeEvent, error)
	ListByStatus(status string) ([]entities.PracticeEvent, error)
	// TransitionFromPending flips status pending -> to in one guarded
	// update and reports whether a row actually changed. A zero count
	// means the event is missing or already left pending.
	TransitionFromPending(id uint, to string) (int64, error)
}
