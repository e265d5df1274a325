package service

import (
	"context"

	"carbonledger/entities"
)

// PoolResult is what a pooling pass reports. Below-threshold passes are a
// normal no-op outcome, not an error.
type PoolResult struct {
	Pooled         bool                `json:"pooled"`
	EligibleTCO2e  float64             `json:"eligible_tco2e"`
	ThresholdTCO2e float64             `json:"threshold_tco2e"`
	Lot            *entities.CreditLot `json:"lot,omitempty"`
	Message        string              `json:"message,omitempty"`
}

// Receipt is the sale record for a sold lot together with its summary.
type Receipt struct {
	Lot      *entities.CreditLot      `json:"lot"`
	Purchase *entities.Purchase       `json:"purchase"`
	Events   []entities.PracticeEvent `json:"events"`
}

type LotService interface {
	// Pool aggregates every verified, unpooled event into one new lot if
	// their combined credits meet the threshold. The whole eligible set is
	// snapshotted atomically; a pass never splits across lots.
	Pool(ctx context.Context, thresholdOverride *float64) (*PoolResult, error)
	List() ([]entities.CreditLot, error)
	Receipt(lotID uint) (*Receipt, error)
}
