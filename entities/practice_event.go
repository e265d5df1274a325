package entities

import "time"

const (
	PracticeAgroforestry = "agroforestry" // quantity = trees planted
	PracticeCoverCrop    = "cover_crop"   // quantity = hectares covered

	EventPending  = "pending"
	EventVerified = "verified"
	EventRejected = "rejected"
)

type PracticeEvent struct {
	EventID      uint     `gorm:"primaryKey" json:"event_id"`
	PlotID       uint     `gorm:"index" json:"plot_id"`
	PracticeType string   `json:"practice_type"` // agroforestry|cover_crop
	Quantity     float64  `json:"quantity"`
	MediaURI     string   `json:"media_uri"`
	GPSLat       *float64 `json:"gps_lat"`
	GPSLng       *float64 `json:"gps_lng"`

	Status             string  `gorm:"index" json:"status"` // pending|verified|rejected
	VerifiabilityScore int     `json:"verifiability_score"` // 0..100, assigned once at creation
	ProvisionalCredits float64 `json:"provisional_credits"` // tCO2e, frozen on verification
	Pooled             bool    `gorm:"index" json:"pooled"`
	LotID              *uint   `gorm:"index" json:"lot_id"` // set when pooled

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time
}
