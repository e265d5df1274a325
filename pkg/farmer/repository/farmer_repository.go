package repository

import "carbonledger/entities"

type WalletSummary struct {
	Farmer           *entities.Farmer  `json:"farmer"`
	VerifiedTCO2e    float64           `json:"verified_tco2e"`
	PendingTCO2e     float64           `json:"pending_tco2e"`
	PaidKES          float64           `json:"paid_kes"`
	PendingPayoutKES float64           `json:"pending_payout_kes"`
	Payouts          []entities.Payout `json:"payouts"`
}

type FarmerRepository interface {
	Create(f *entities.Farmer) error
	FindByID(id uint) (*entities.Farmer, error)
	Wallet(id uint) (*WalletSummary, error)
}
