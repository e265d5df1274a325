package serviceImp

import (
	"context"
	"errors"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"carbonledger/database"
	"carbonledger/entities"
	"carbonledger/pkg/apperr"
	"carbonledger/pkg/disburse"
	eventRepoImp "carbonledger/pkg/event/repositoryImp"
	eventSvc "carbonledger/pkg/event/service"
	eventSvcImp "carbonledger/pkg/event/serviceImp"
	lotSvcImp "carbonledger/pkg/lot/serviceImp"
	marketSvc "carbonledger/pkg/market/service"
	marketSvcImp "carbonledger/pkg/market/serviceImp"
	plotRepoImp "carbonledger/pkg/plot/repositoryImp"
	"carbonledger/pkg/scoring"
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

type fixedScorer struct{ res scoring.Result }

func (s *fixedScorer) Score(context.Context, scoring.Input) (scoring.Result, error) {
	return s.res, nil
}

// stubTransfer fails for the farmer ids in fail, confirms everyone else.
type stubTransfer struct {
	fail map[uint]bool
	refs map[uint]string
}

func (s *stubTransfer) Disburse(_ context.Context, req disburse.Request) (string, error) {
	if s.fail[req.FarmerID] {
		return "", errors.New("gateway down")
	}
	ref := s.refs[req.FarmerID]
	if ref == "" {
		ref = "MPESA-STUB"
	}
	return ref, nil
}

func seedFarmerWithPlot(t *testing.T, db *gorm.DB, name, phone string) (*entities.Farmer, *entities.Plot) {
	t.Helper()
	f := &entities.Farmer{Name: name, Phone: phone, County: "Nyeri"}
	require.NoError(t, db.Create(f).Error)
	p := &entities.Plot{FarmerID: f.FarmerID, County: "Nyeri"}
	require.NoError(t, db.Create(p).Error)
	return f, p
}

// TestSingleFarmerLifecycle walks one claimed benefit through the whole
// ledger: log 50 trees, approve, pool alone, sell at 2350 KES/tCO2e, pay
// out 85% of the proceeds.
func TestSingleFarmerLifecycle(t *testing.T) {
	db := testDB(t)
	nop := zap.NewNop().Sugar()
	_, plot := seedFarmerWithPlot(t, db, "John Mwangi", "+254700000001")

	events := eventSvcImp.New(eventRepoImp.New(db), plotRepoImp.New(db),
		&fixedScorer{res: scoring.Result{VerifiabilityScore: 87, ProvisionalCredits: 2.3}}, nop)
	lots := lotSvcImp.New(db, 0, 2350, nop)
	market := marketSvcImp.New(db, marketSvcImp.Shares{Farmer: 0.85, Coop: 0.10, Platform: 0.05}, nop)
	payouts := New(db, disburse.NewMock(), nop)

	e, err := events.Log(context.Background(), eventSvc.LogInput{
		PlotID: plot.PlotID, PracticeType: entities.PracticeAgroforestry, Quantity: 50,
	})
	require.NoError(t, err)
	assert.Equal(t, 87, e.VerifiabilityScore)
	assert.Equal(t, 2.3, e.ProvisionalCredits)

	_, err = events.Verify(context.Background(), e.EventID, eventSvc.ActionApprove)
	require.NoError(t, err)

	pooled, err := lots.Pool(context.Background(), nil)
	require.NoError(t, err)
	require.True(t, pooled.Pooled)
	assert.Equal(t, 2.3, pooled.Lot.TotalTCO2e)

	p, err := market.Purchase(context.Background(), marketSvc.PurchaseInput{
		LotID: pooled.Lot.LotID, BuyerName: "Acme Offsets", BuyerEmail: "buy@acme.example", BuyerCompany: "Acme",
	})
	require.NoError(t, err)
	assert.Equal(t, 5405.0, p.TotalKES)
	assert.Equal(t, 4594.25, p.FarmerPoolKES)

	rows, err := payouts.Run(context.Background(), pooled.Lot.LotID)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, 2.3, rows[0].CreditsTCO2e)
	assert.Equal(t, 4594.25, rows[0].AmountKES)
	assert.Equal(t, entities.PayoutCompleted, rows[0].Status)
	assert.Contains(t, rows[0].PaymentRef, "MPESA-")

	// fully paid lot is terminal
	_, err = payouts.Run(context.Background(), pooled.Lot.LotID)
	assert.Equal(t, apperr.KindAlreadyPaid, apperr.KindOf(err))

	var all []entities.Payout
	require.NoError(t, db.Find(&all).Error)
	require.Len(t, all, 1)
	assert.Equal(t, rows[0].PaymentRef, all[0].PaymentRef)
}

func seedSoldLot(t *testing.T, db *gorm.DB, contribs map[uint]float64, farmerPool float64) *entities.CreditLot {
	t.Helper()
	var total float64
	for _, c := range contribs {
		total += c
	}
	lot := &entities.CreditLot{TotalTCO2e: total, PricePerTCO2eKES: 2350, Status: entities.LotSold, EventCount: len(contribs)}
	require.NoError(t, db.Create(lot).Error)
	for plotID, credits := range contribs {
		require.NoError(t, db.Create(&entities.PracticeEvent{
			PlotID:             plotID,
			PracticeType:       entities.PracticeAgroforestry,
			Quantity:           1,
			Status:             entities.EventVerified,
			ProvisionalCredits: credits,
			Pooled:             true,
			LotID:              &lot.LotID,
		}).Error)
	}
	require.NoError(t, db.Create(&entities.Purchase{
		LotID: lot.LotID, BuyerName: "Acme", TotalKES: farmerPool / 0.85, FarmerPoolKES: farmerPool,
	}).Error)
	return lot
}

func TestRunApportionsAcrossFarmers(t *testing.T) {
	db := testDB(t)
	_, plotA := seedFarmerWithPlot(t, db, "Mary Wanjiku", "+254700000002")
	_, plotB := seedFarmerWithPlot(t, db, "Peter Kimani", "+254700000003")
	lot := seedSoldLot(t, db, map[uint]float64{plotA.PlotID: 2.3, plotB.PlotID: 1.8}, 4000)

	rows, err := New(db, disburse.NewMock(), zap.NewNop().Sugar()).Run(context.Background(), lot.LotID)
	require.NoError(t, err)
	require.Len(t, rows, 2)

	var sum float64
	for _, r := range rows {
		assert.Equal(t, entities.PayoutCompleted, r.Status)
		sum += r.AmountKES
	}
	// proportional shares of the farmer pool, never exceeding it
	assert.LessOrEqual(t, sum, 4000.0+0.01)
	assert.InDelta(t, 4000*2.3/4.1, rows[0].AmountKES, 0.01)
	assert.InDelta(t, 4000*1.8/4.1, rows[1].AmountKES, 0.01)
}

func TestRunRetriesFailedDisbursements(t *testing.T) {
	db := testDB(t)
	fA, plotA := seedFarmerWithPlot(t, db, "Mary Wanjiku", "+254700000002")
	fB, plotB := seedFarmerWithPlot(t, db, "Peter Kimani", "+254700000003")
	lot := seedSoldLot(t, db, map[uint]float64{plotA.PlotID: 3, plotB.PlotID: 1}, 4000)

	transfer := &stubTransfer{
		fail: map[uint]bool{fB.FarmerID: true},
		refs: map[uint]string{fA.FarmerID: "MPESA-AAA", fB.FarmerID: "MPESA-BBB"},
	}
	svc := New(db, transfer, zap.NewNop().Sugar())

	// first run: one farmer's failure must not block the other
	rows, err := svc.Run(context.Background(), lot.LotID)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	byFarmer := map[uint]entities.Payout{}
	for _, r := range rows {
		byFarmer[r.FarmerID] = r
	}
	assert.Equal(t, entities.PayoutCompleted, byFarmer[fA.FarmerID].Status)
	assert.Equal(t, "MPESA-AAA", byFarmer[fA.FarmerID].PaymentRef)
	assert.Equal(t, entities.PayoutPending, byFarmer[fB.FarmerID].Status)
	assert.Empty(t, byFarmer[fB.FarmerID].PaymentRef)

	// gateway recovers; re-run completes only the pending row
	transfer.fail = nil
	rows, err = svc.Run(context.Background(), lot.LotID)
	require.NoError(t, err)
	for _, r := range rows {
		assert.Equal(t, entities.PayoutCompleted, r.Status)
	}
	var a entities.Payout
	require.NoError(t, db.Where("farmer_id = ?", fA.FarmerID).First(&a).Error)
	assert.Equal(t, "MPESA-AAA", a.PaymentRef) // untouched by the retry pass

	_, err = svc.Run(context.Background(), lot.LotID)
	assert.Equal(t, apperr.KindAlreadyPaid, apperr.KindOf(err))
}

func TestRunGuards(t *testing.T) {
	t.Run("missing lot", func(t *testing.T) {
		db := testDB(t)
		_, err := New(db, disburse.NewMock(), zap.NewNop().Sugar()).Run(context.Background(), 404)
		assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
	})

	t.Run("unsold lot", func(t *testing.T) {
		db := testDB(t)
		lot := &entities.CreditLot{TotalTCO2e: 5, PricePerTCO2eKES: 2350, Status: entities.LotAvailable}
		require.NoError(t, db.Create(lot).Error)
		_, err := New(db, disburse.NewMock(), zap.NewNop().Sugar()).Run(context.Background(), lot.LotID)
		assert.Equal(t, apperr.KindNotSold, apperr.KindOf(err))
	})
}
