package service

import (
	"context"

	"carbonledger/entities"
)

type PurchaseInput struct {
	LotID         uint
	BuyerName     string
	BuyerEmail    string
	BuyerCompany  string
	PriceOverride *float64 // agreed KES per tCO2e; nil takes the listed price
}

type MarketService interface {
	// Purchase sells an available lot exactly once: locks it, records the
	// buyer, and settles the revenue split that funds payouts.
	Purchase(ctx context.Context, in PurchaseInput) (*entities.Purchase, error)
}
