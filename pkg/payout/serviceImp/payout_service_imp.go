package serviceImp

import (
	"context"
	"errors"
	"fmt"
	"math"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"

	"carbonledger/entities"
	"carbonledger/pkg/apperr"
	"carbonledger/pkg/disburse"
	"carbonledger/pkg/payout/service"
)

const disburseFanout = 4

type payoutSvc struct {
	db       *gorm.DB
	transfer disburse.Adapter
	log      *zap.SugaredLogger
}

func New(db *gorm.DB, transfer disburse.Adapter, logger *zap.SugaredLogger) service.PayoutService {
	return &payoutSvc{db: db, transfer: transfer, log: logger}
}

func round2(v float64) float64 { return math.Round(v*100) / 100 }

// contribution is one farmer's share of a lot, summed over their events.
type contribution struct {
	FarmerID uint
	Phone    string
	Credits  float64
}

func (s *payoutSvc) Run(ctx context.Context, lotID uint) ([]entities.Payout, error) {
	pending, err := s.preparePayouts(ctx, lotID)
	if err != nil {
		return nil, err
	}

	// Disbursement happens outside any transaction or lock; each row is
	// re-checked against the ledger before being marked completed.
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(disburseFanout)
	for _, row := range pending {
		row := row
		g.Go(func() error {
			s.disburseRow(gctx, row)
			return nil
		})
	}
	_ = g.Wait()

	var out []entities.Payout
	if err := s.db.Where("lot_id = ?", lotID).Order("farmer_id asc").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

type pendingRow struct {
	Payout entities.Payout
	Phone  string
}

// preparePayouts validates the lot and makes sure one payout row exists per
// contributing farmer. Runs in a transaction so a concurrent purchase or
// second payout run sees either all rows or none.
func (s *payoutSvc) preparePayouts(ctx context.Context, lotID uint) ([]pendingRow, error) {
	var pending []pendingRow
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var lot entities.CreditLot
		if err := tx.First(&lot, lotID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperr.NotFound("lot", lotID)
			}
			return err
		}
		if lot.Status != entities.LotSold {
			return apperr.New(apperr.KindNotSold, "lot %d is %s, not sold", lotID, lot.Status)
		}
		var purchase entities.Purchase
		if err := tx.Where("lot_id = ?", lotID).First(&purchase).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("lot %d is sold but has no purchase record", lotID)
			}
			return err
		}

		var existing []entities.Payout
		if err := tx.Where("lot_id = ?", lotID).Find(&existing).Error; err != nil {
			return err
		}
		if len(existing) > 0 {
			allDone := true
			for _, p := range existing {
				if p.Status != entities.PayoutCompleted {
					allDone = false
					break
				}
			}
			if allDone {
				return apperr.New(apperr.KindAlreadyPaid, "payouts for lot %d already completed", lotID)
			}
			// retry pass: keep the rows from the first apportionment
			phones, err := farmerPhones(tx, existing)
			if err != nil {
				return err
			}
			for _, p := range existing {
				if p.Status == entities.PayoutPending {
					pending = append(pending, pendingRow{Payout: p, Phone: phones[p.FarmerID]})
				}
			}
			return nil
		}

		var contribs []contribution
		if err := tx.Model(&entities.PracticeEvent{}).
			Joins("JOIN plots ON plots.plot_id = practice_events.plot_id").
			Joins("JOIN farmers ON farmers.farmer_id = plots.farmer_id").
			Where("practice_events.lot_id = ?", lotID).
			Group("plots.farmer_id").
			Select("plots.farmer_id AS farmer_id, farmers.phone AS phone, SUM(practice_events.provisional_credits) AS credits").
			Order("plots.farmer_id asc").
			Scan(&contribs).Error; err != nil {
			return err
		}
		if len(contribs) == 0 {
			return fmt.Errorf("lot %d has no contributing events", lotID)
		}

		for _, cb := range contribs {
			row := entities.Payout{
				LotID:        lotID,
				FarmerID:     cb.FarmerID,
				CreditsTCO2e: round2(cb.Credits),
				AmountKES:    round2(cb.Credits / lot.TotalTCO2e * purchase.FarmerPoolKES),
				Status:       entities.PayoutPending,
			}
			if err := tx.Create(&row).Error; err != nil {
				return err
			}
			pending = append(pending, pendingRow{Payout: row, Phone: cb.Phone})
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return pending, nil
}

func (s *payoutSvc) disburseRow(ctx context.Context, row pendingRow) {
	ref, err := s.transfer.Disburse(ctx, disburse.Request{
		FarmerID:  row.Payout.FarmerID,
		Phone:     row.Phone,
		AmountKES: row.Payout.AmountKES,
		LotID:     row.Payout.LotID,
	})
	if err != nil {
		// stays pending; the next Run for this lot retries it
		s.log.Warnw("disbursement failed, payout left pending",
			"payout_id", row.Payout.PayoutID, "farmer_id", row.Payout.FarmerID, "err", err)
		return
	}

	// Guarded update: complete only if the row is still pending after the
	// await, so a concurrent run cannot double-complete it.
	res := s.db.Model(&entities.Payout{}).
		Where("payout_id = ? AND status = ?", row.Payout.PayoutID, entities.PayoutPending).
		Updates(map[string]any{"status": entities.PayoutCompleted, "payment_ref": ref})
	if res.Error != nil {
		s.log.Errorw("failed to mark payout completed", "payout_id", row.Payout.PayoutID, "err", res.Error)
		return
	}
	if res.RowsAffected == 1 {
		s.log.Infow("payout completed", "payout_id", row.Payout.PayoutID,
			"farmer_id", row.Payout.FarmerID, "amount_kes", row.Payout.AmountKES, "ref", ref)
	}
}

func farmerPhones(tx *gorm.DB, rows []entities.Payout) (map[uint]string, error) {
	ids := make([]uint, 0, len(rows))
	for _, p := range rows {
		ids = append(ids, p.FarmerID)
	}
	var farmers []entities.Farmer
	if err := tx.Where("farmer_id IN ?", ids).Find(&farmers).Error; err != nil {
		return nil, err
	}
	out := make(map[uint]string, len(farmers))
	for _, f := range farmers {
		out[f.FarmerID] = f.Phone
	}
	return out, nil
}
