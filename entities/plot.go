package entities

import "time"

type Plot struct {
	PlotID          uint     `gorm:"primaryKey" json:"plot_id"`
	FarmerID        uint     `gorm:"index" json:"farmer_id"`
	County          string   `json:"county"`
	SoilClass       string   `json:"soil_class"`
	CentroidLat     *float64 `json:"centroid_lat"`
	CentroidLng     *float64 `json:"centroid_lng"`
	BoundaryGeoJSON string   `json:"boundary_geojson"`

	CreatedAt time.Time
	UpdatedAt time.Time
}
