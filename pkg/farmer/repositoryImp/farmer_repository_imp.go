package repositoryImp

import (
	"errors"
	"strings"

	"gorm.io/gorm"

	"carbonledger/entities"
	"carbonledger/pkg/apperr"
	"carbonledger/pkg/farmer/repository"
)

type farmerRepo struct{ db *gorm.DB }

func New(db *gorm.DB) repository.FarmerRepository { return &farmerRepo{db} }

func (r *farmerRepo) Create(f *entities.Farmer) error {
	if err := r.db.Create(f).Error; err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint") {
			return apperr.New(apperr.KindValidation, "phone %s already registered", f.Phone)
		}
		return err
	}
	return nil
}

func (r *farmerRepo) FindByID(id uint) (*entities.Farmer, error) {
	var f entities.Farmer
	if err := r.db.First(&f, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("farmer", id)
		}
		return nil, err
	}
	return &f, nil
}

func (r *farmerRepo) Wallet(id uint) (*repository.WalletSummary, error) {
	f, err := r.FindByID(id)
	if err != nil {
		return nil, err
	}

	sum := func(status string) (float64, error) {
		var v float64
		err := r.db.Model(&entities.PracticeEvent{}).
			Joins("JOIN plots ON plots.plot_id = practice_events.plot_id").
			Where("plots.farmer_id = ? AND practice_events.status = ?", id, status).
			Select("COALESCE(SUM(practice_events.provisional_credits), 0)").
			Scan(&v).Error
		return v, err
	}

	w := &repository.WalletSummary{Farmer: f, Payouts: []entities.Payout{}}
	if w.VerifiedTCO2e, err = sum(entities.EventVerified); err != nil {
		return nil, err
	}
	if w.PendingTCO2e, err = sum(entities.EventPending); err != nil {
		return nil, err
	}

	if err := r.db.Where("farmer_id = ?", id).Order("created_at desc").Find(&w.Payouts).Error; err != nil {
		return nil, err
	}
	for _, p := range w.Payouts {
		switch p.Status {
		case entities.PayoutCompleted:
			w.PaidKES += p.AmountKES
		case entities.PayoutPending:
			w.PendingPayoutKES += p.AmountKES
		}
	}
	return w, nil
}
