package entities

import "time"

const (
	PayoutPending   = "pending"
	PayoutCompleted = "completed"
)

type Payout struct {
	PayoutID     uint    `gorm:"primaryKey" json:"payout_id"`
	LotID        uint    `gorm:"index:idx_payout_lot_farmer,unique" json:"lot_id"`
	FarmerID     uint    `gorm:"index:idx_payout_lot_farmer,unique" json:"farmer_id"`
	CreditsTCO2e float64 `json:"credits_tco2e"` // this farmer's contribution to the lot
	AmountKES    float64 `json:"amount_kes"`
	Status       string  `gorm:"index" json:"status"` // pending|completed
	PaymentRef   string  `json:"payment_ref"`         // external disbursement reference (M-Pesa)

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time
}
