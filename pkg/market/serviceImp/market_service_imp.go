package serviceImp

import (
	"context"
	"errors"
	"math"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"carbonledger/entities"
	"carbonledger/pkg/apperr"
	"carbonledger/pkg/market/service"
)

// Shares is the program-wide revenue split applied at settlement time.
// Defaults to 85% farmers / 10% cooperative / 5% platform; policy, not
// a structural constant.
type Shares struct {
	Farmer   float64
	Coop     float64
	Platform float64
}

type marketSvc struct {
	db     *gorm.DB
	shares Shares
	log    *zap.SugaredLogger
}

func New(db *gorm.DB, shares Shares, logger *zap.SugaredLogger) service.MarketService {
	return &marketSvc{db: db, shares: shares, log: logger}
}

func round2(v float64) float64 { return math.Round(v*100) / 100 }

func (s *marketSvc) Purchase(ctx context.Context, in service.PurchaseInput) (*entities.Purchase, error) {
	if in.BuyerName == "" {
		return nil, apperr.New(apperr.KindValidation, "buyer name is required")
	}
	if in.PriceOverride != nil && *in.PriceOverride <= 0 {
		return nil, apperr.New(apperr.KindValidation, "price override must be positive")
	}

	var p *entities.Purchase
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var lot entities.CreditLot
		if err := tx.First(&lot, in.LotID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperr.NotFound("lot", in.LotID)
			}
			return err
		}

		// Conditional update is the lock: only one purchase can flip
		// available -> sold.
		res := tx.Model(&entities.CreditLot{}).
			Where("lot_id = ? AND status = ?", in.LotID, entities.LotAvailable).
			Update("status", entities.LotSold)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return apperr.New(apperr.KindAlreadySold, "lot %d is already sold", in.LotID)
		}

		price := lot.PricePerTCO2eKES
		if in.PriceOverride != nil {
			price = *in.PriceOverride
		}
		total := round2(lot.TotalTCO2e * price)
		farmerPool := round2(total * s.shares.Farmer)
		coopFee := round2(total * s.shares.Coop)
		platformFee := round2(total - farmerPool - coopFee)

		p = &entities.Purchase{
			LotID:            in.LotID,
			BuyerName:        in.BuyerName,
			BuyerEmail:       in.BuyerEmail,
			BuyerCompany:     in.BuyerCompany,
			PricePerTCO2eKES: price,
			TotalKES:         total,
			FarmerPoolKES:    farmerPool,
			CoopFeeKES:       coopFee,
			PlatformFeeKES:   platformFee,
			ReceiptNo:        "RCPT-" + strings.ToUpper(uuid.NewString()[:8]),
		}
		return tx.Create(p).Error
	})
	if err != nil {
		return nil, err
	}
	s.log.Infow("lot purchased", "lot_id", p.LotID, "buyer", p.BuyerName,
		"total_kes", p.TotalKES, "farmer_pool_kes", p.FarmerPoolKES)
	return p, nil
}
