package serviceImp

import (
	"context"
	"errors"
	"fmt"
	"math"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"carbonledger/entities"
	"carbonledger/pkg/apperr"
	"carbonledger/pkg/lot/service"
)

type lotSvc struct {
	db               *gorm.DB
	defaultThreshold float64
	pricePerTCO2e    float64
	log              *zap.SugaredLogger
}

func New(db *gorm.DB, defaultThreshold, pricePerTCO2e float64, logger *zap.SugaredLogger) service.LotService {
	return &lotSvc{db: db, defaultThreshold: defaultThreshold, pricePerTCO2e: pricePerTCO2e, log: logger}
}

func (s *lotSvc) Pool(ctx context.Context, thresholdOverride *float64) (*service.PoolResult, error) {
	threshold := s.defaultThreshold
	if thresholdOverride != nil {
		threshold = *thresholdOverride
	}

	out := &service.PoolResult{ThresholdTCO2e: threshold}
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// The whole pass reads and writes inside one transaction so a
		// concurrent verification can never leave the snapshot half-seen.
		var events []entities.PracticeEvent
		if err := tx.Where("status = ? AND pooled = ?", entities.EventVerified, false).
			Order("created_at asc, event_id asc").
			Find(&events).Error; err != nil {
			return err
		}

		var total float64
		for _, e := range events {
			total += e.ProvisionalCredits
		}
		total = math.Round(total*100) / 100
		out.EligibleTCO2e = total

		if len(events) == 0 || total < threshold {
			out.Message = "nothing to pool: below threshold"
			return nil
		}

		lot := &entities.CreditLot{
			TotalTCO2e:       total,
			PricePerTCO2eKES: s.pricePerTCO2e,
			Status:           entities.LotAvailable,
			EventCount:       len(events),
		}
		if err := tx.Create(lot).Error; err != nil {
			return err
		}

		ids := make([]uint, len(events))
		for i, e := range events {
			ids[i] = e.EventID
		}
		res := tx.Model(&entities.PracticeEvent{}).
			Where("event_id IN ? AND status = ? AND pooled = ?", ids, entities.EventVerified, false).
			Updates(map[string]any{"pooled": true, "lot_id": lot.LotID})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected != int64(len(ids)) {
			return fmt.Errorf("pooling snapshot changed underneath: stamped %d of %d events", res.RowsAffected, len(ids))
		}

		out.Pooled = true
		out.Lot = lot
		return nil
	})
	if err != nil {
		return nil, err
	}
	if out.Pooled {
		s.log.Infow("lot pooled", "lot_id", out.Lot.LotID, "tco2e", out.Lot.TotalTCO2e, "events", out.Lot.EventCount)
	}
	return out, nil
}

func (s *lotSvc) List() ([]entities.CreditLot, error) {
	var lots []entities.CreditLot
	return lots, s.db.Order("created_at desc, lot_id desc").Find(&lots).Error
}

func (s *lotSvc) Receipt(lotID uint) (*service.Receipt, error) {
	var lot entities.CreditLot
	if err := s.db.First(&lot, lotID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("lot", lotID)
		}
		return nil, err
	}
	var p entities.Purchase
	if err := s.db.Where("lot_id = ?", lotID).First(&p).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.New(apperr.KindNotSold, "lot %d has not been sold", lotID)
		}
		return nil, err
	}
	var events []entities.PracticeEvent
	if err := s.db.Where("lot_id = ?", lotID).Order("created_at asc, event_id asc").Find(&events).Error; err != nil {
		return nil, err
	}
	return &service.Receipt{Lot: &lot, Purchase: &p, Events: events}, nil
}
