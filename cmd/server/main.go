package main

import (
	"log"

	"github.com/labstack/echo/v4"
	echoMiddleware "github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	"carbonledger/config"
	"carbonledger/database"
	"carbonledger/router"

	// Adapters
	"carbonledger/pkg/disburse"
	"carbonledger/pkg/scoring"

	// Farmer
	farmerCtrlImp "carbonledger/pkg/farmer/controllerImp"
	farmerRepoImp "carbonledger/pkg/farmer/repositoryImp"

	// Plot
	plotCtrlImp "carbonledger/pkg/plot/controllerImp"
	plotRepoImp "carbonledger/pkg/plot/repositoryImp"

	// Event (logging + verification)
	eventCtrlImp "carbonledger/pkg/event/controllerImp"
	eventRepoImp "carbonledger/pkg/event/repositoryImp"
	eventSvcImp "carbonledger/pkg/event/serviceImp"

	// Lot (pooling)
	lotCtrlImp "carbonledger/pkg/lot/controllerImp"
	lotSvcImp "carbonledger/pkg/lot/serviceImp"

	// Marketplace
	marketCtrlImp "carbonledger/pkg/market/controllerImp"
	marketSvcImp "carbonledger/pkg/market/serviceImp"

	// Payouts
	payoutCtrlImp "carbonledger/pkg/payout/controllerImp"
	payoutSvcImp "carbonledger/pkg/payout/serviceImp"

	// Admin + Health
	adminCtrlImp "carbonledger/pkg/admin/controllerImp"
	healthCtrlImp "carbonledger/pkg/health/controllerImp"
)

func main() {
	// 1) Config
	cfg := config.Load()

	// 2) DB (sqlite) + automigrate
	db := database.OpenSQLite(cfg.DBPath)

	// 3) Logger
	zl, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("zap: %v", err)
	}
	defer zl.Sync()
	logger := zl.Sugar()

	// 4) Adapters (remote when configured, deterministic mock otherwise)
	var scorer scoring.Adapter
	if cfg.ScoringEndpoint != "" {
		scorer = scoring.NewRemote(cfg.ScoringEndpoint, cfg.ScoringAPIKey)
	} else {
		scorer = scoring.NewMock()
	}
	scorer = scoring.WithRetry(scorer, logger)

	var transfer disburse.Adapter
	if cfg.DisburseEndpoint != "" {
		transfer = disburse.NewRemote(cfg.DisburseEndpoint, cfg.DisburseAPIKey)
	} else {
		transfer = disburse.NewMock()
	}
	transfer = disburse.WithRetry(transfer, logger)

	// 5) Repos / Services / Controllers
	fRepo := farmerRepoImp.New(db)
	pRepo := plotRepoImp.New(db)
	eRepo := eventRepoImp.New(db)

	eSvc := eventSvcImp.New(eRepo, pRepo, scorer, logger)
	lSvc := lotSvcImp.New(db, cfg.PoolThresholdTCO2e, cfg.PricePerTCO2eKES, logger)
	mSvc := marketSvcImp.New(db, marketSvcImp.Shares{
		Farmer:   cfg.FarmerShare,
		Coop:     cfg.CoopShare,
		Platform: cfg.PlatformShare,
	}, logger)
	paySvc := payoutSvcImp.New(db, transfer, logger)

	fCtrl := farmerCtrlImp.New(fRepo)
	plCtrl := plotCtrlImp.New(pRepo)
	evCtrl := eventCtrlImp.New(eSvc)
	loCtrl := lotCtrlImp.New(lSvc)
	mkCtrl := marketCtrlImp.New(mSvc)
	poCtrl := payoutCtrlImp.New(paySvc)
	adCtrl := adminCtrlImp.New(db)
	hCtrl := healthCtrlImp.NewHealthCtrl(db)

	// 6) Echo + routes
	e := echo.New()
	e.Use(echoMiddleware.Recover())
	r := router.New(e, cfg.AdminKey, fCtrl, plCtrl, evCtrl, loCtrl, mkCtrl, poCtrl, adCtrl, hCtrl)

	// 7) Start
	log.Printf("listening on :%s", cfg.Port)
	if err := r.Start(":" + cfg.Port); err != nil {
		log.Fatal(err)
	}
}
