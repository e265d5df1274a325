package serviceImp

import (
	"context"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"carbonledger/database"
	"carbonledger/entities"
	"carbonledger/pkg/apperr"
	"carbonledger/pkg/lot/service"
)

func testDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, database.Migrate(db))
	return db
}

func seedEvent(t *testing.T, db *gorm.DB, status string, credits float64, pooled bool) *entities.PracticeEvent {
	t.Helper()
	e := &entities.PracticeEvent{
		PlotID:             1,
		PracticeType:       entities.PracticeAgroforestry,
		Quantity:           10,
		Status:             status,
		VerifiabilityScore: 80,
		ProvisionalCredits: credits,
		Pooled:             pooled,
	}
	require.NoError(t, db.Create(e).Error)
	return e
}

func newSvc(db *gorm.DB, threshold float64) service.LotService {
	return New(db, threshold, 2350, zap.NewNop().Sugar())
}

func TestPool(t *testing.T) {
	t.Run("lot total equals sum of contributors exactly", func(t *testing.T) {
		db := testDB(t)
		seedEvent(t, db, entities.EventVerified, 2.3, false)
		seedEvent(t, db, entities.EventVerified, 1.8, false)
		seedEvent(t, db, entities.EventVerified, 3.1, false)

		res, err := newSvc(db, 0).Pool(context.Background(), nil)
		require.NoError(t, err)
		require.True(t, res.Pooled)
		assert.Equal(t, 7.2, res.Lot.TotalTCO2e)
		assert.Equal(t, 3, res.Lot.EventCount)
		assert.Equal(t, entities.LotAvailable, res.Lot.Status)
		assert.Equal(t, 2350.0, res.Lot.PricePerTCO2eKES)

		// every contributor stamped with the lot
		var events []entities.PracticeEvent
		require.NoError(t, db.Find(&events).Error)
		for _, e := range events {
			assert.True(t, e.Pooled)
			require.NotNil(t, e.LotID)
			assert.Equal(t, res.Lot.LotID, *e.LotID)
		}
	})

	t.Run("below threshold is a no-op, not an error", func(t *testing.T) {
		db := testDB(t)
		seedEvent(t, db, entities.EventVerified, 60, false)

		svc := newSvc(db, 100)
		res, err := svc.Pool(context.Background(), nil)
		require.NoError(t, err)
		assert.False(t, res.Pooled)
		assert.Equal(t, 60.0, res.EligibleTCO2e)
		assert.Nil(t, res.Lot)

		// idempotent under immediate repetition
		res, err = svc.Pool(context.Background(), nil)
		require.NoError(t, err)
		assert.False(t, res.Pooled)

		var lots, pooled int64
		require.NoError(t, db.Model(&entities.CreditLot{}).Count(&lots).Error)
		require.NoError(t, db.Model(&entities.PracticeEvent{}).Where("pooled = ?", true).Count(&pooled).Error)
		assert.Zero(t, lots)
		assert.Zero(t, pooled)
	})

	t.Run("pending, rejected and already-pooled events excluded", func(t *testing.T) {
		db := testDB(t)
		seedEvent(t, db, entities.EventPending, 5, false)
		seedEvent(t, db, entities.EventRejected, 5, false)
		seedEvent(t, db, entities.EventVerified, 5, true) // from an earlier lot
		in := seedEvent(t, db, entities.EventVerified, 2.5, false)

		res, err := newSvc(db, 0).Pool(context.Background(), nil)
		require.NoError(t, err)
		require.True(t, res.Pooled)
		assert.Equal(t, 2.5, res.Lot.TotalTCO2e)
		assert.Equal(t, 1, res.Lot.EventCount)

		var got entities.PracticeEvent
		require.NoError(t, db.First(&got, in.EventID).Error)
		assert.True(t, got.Pooled)
	})

	t.Run("threshold override from request", func(t *testing.T) {
		db := testDB(t)
		seedEvent(t, db, entities.EventVerified, 10, false)

		override := 5.0
		res, err := newSvc(db, 100).Pool(context.Background(), &override)
		require.NoError(t, err)
		assert.True(t, res.Pooled)
		assert.Equal(t, 5.0, res.ThresholdTCO2e)
	})

	t.Run("second pass needs new verified events", func(t *testing.T) {
		db := testDB(t)
		seedEvent(t, db, entities.EventVerified, 4, false)
		svc := newSvc(db, 0)

		res, err := svc.Pool(context.Background(), nil)
		require.NoError(t, err)
		require.True(t, res.Pooled)

		res, err = svc.Pool(context.Background(), nil)
		require.NoError(t, err)
		assert.False(t, res.Pooled)

		// a later verification feeds the next pass only
		seedEvent(t, db, entities.EventVerified, 6, false)
		res, err = svc.Pool(context.Background(), nil)
		require.NoError(t, err)
		require.True(t, res.Pooled)
		assert.Equal(t, 6.0, res.Lot.TotalTCO2e)
	})
}

func TestReceipt(t *testing.T) {
	t.Run("missing lot", func(t *testing.T) {
		db := testDB(t)
		_, err := newSvc(db, 0).Receipt(9)
		assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
	})

	t.Run("unsold lot has no receipt", func(t *testing.T) {
		db := testDB(t)
		seedEvent(t, db, entities.EventVerified, 2, false)
		svc := newSvc(db, 0)
		res, err := svc.Pool(context.Background(), nil)
		require.NoError(t, err)

		_, err = svc.Receipt(res.Lot.LotID)
		assert.Equal(t, apperr.KindNotSold, apperr.KindOf(err))
	})

	t.Run("sold lot returns purchase and contributors", func(t *testing.T) {
		db := testDB(t)
		seedEvent(t, db, entities.EventVerified, 2, false)
		svc := newSvc(db, 0)
		res, err := svc.Pool(context.Background(), nil)
		require.NoError(t, err)

		require.NoError(t, db.Model(&entities.CreditLot{}).
			Where("lot_id = ?", res.Lot.LotID).
			Update("status", entities.LotSold).Error)
		require.NoError(t, db.Create(&entities.Purchase{
			LotID: res.Lot.LotID, BuyerName: "Acme", TotalKES: 4700,
		}).Error)

		r, err := svc.Receipt(res.Lot.LotID)
		require.NoError(t, err)
		assert.Equal(t, "Acme", r.Purchase.BuyerName)
		assert.Len(t, r.Events, 1)
	})
}
