package entities

import "time"

const (
	LotAvailable = "available"
	LotSold      = "sold"
)

type CreditLot struct {
	LotID            uint    `gorm:"primaryKey" json:"lot_id"`
	TotalTCO2e       float64 `json:"total_tco2e"` // sum of contributors at pooling time, never recomputed
	PricePerTCO2eKES float64 `json:"price_per_tco2e_kes"`
	Status           string  `gorm:"index" json:"status"` // available|sold
	EventCount       int     `json:"event_count"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time
}
