package entities

import "time"

type Farmer struct {
	FarmerID uint   `gorm:"primaryKey" json:"farmer_id"`
	Name     string `json:"name"`
	Phone    string `json:"phone" gorm:"uniqueIndex"` // unique contact key
	CoopName string `json:"coop_name"`
	County   string `json:"county"`

	CreatedAt time.Time
	UpdatedAt time.Time
}
