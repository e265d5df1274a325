package repositoryImp

import (
	"errors"

	"gorm.io/gorm"

	"carbonledger/entities"
	"carbonledger/pkg/apperr"
	"carbonledger/pkg/event/repository"
)

type eventRepo struct{ db *gorm.DB }

func New(db *gorm.DB) repository.EventRepository { return &eventRepo{db} }

func (r *eventRepo) Create(e *entities.PracticeEvent) error { return r.db.Create(e).Error }

func (r *eventRepo) FindByID(id uint) (*entities.PracticeEvent, error) {
	var e entities.PracticeEvent
	if err := r.db.First(&e, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("event", id)
		}
		return nil, err
	}
	return &e, nil
}

func (r *eventRepo) ListByStatus(status string) ([]entities.PracticeEvent, error) {
	q := r.db.Model(&entities.PracticeEvent{})
	if status != "" {
		q = q.Where("status = ?", status)
	}
	var list []entities.PracticeEvent
	return list, q.Order("created_at asc, event_id asc").Find(&list).Error
}

func (r *eventRepo) TransitionFromPending(id uint, to string) (int64, error) {
	res := r.db.Model(&entities.PracticeEvent{}).
		Where("event_id = ? AND status = ?", id, entities.EventPending).
		Update("status", to)
	return res.RowsAffected, res.Error
}
