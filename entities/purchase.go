package entities

import "time"

type Purchase struct {
	PurchaseID   uint   `gorm:"primaryKey" json:"purchase_id"`
	LotID        uint   `gorm:"uniqueIndex" json:"lot_id"` // one purchase per lot
	BuyerName    string `json:"buyer_name"`
	BuyerEmail   string `json:"buyer_email"`
	BuyerCompany string `json:"buyer_company"`

	PricePerTCO2eKES float64 `json:"price_per_tco2e_kes"` // listed price unless overridden
	TotalKES         float64 `json:"total_kes"`
	FarmerPoolKES    float64 `json:"farmer_pool_kes"` // share available to payouts
	CoopFeeKES       float64 `json:"coop_fee_kes"`
	PlatformFeeKES   float64 `json:"platform_fee_kes"`
	ReceiptNo        string  `json:"receipt_no"`

	CreatedAt time.Time `json:"created_at"`
}
