package controllerImp

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"carbonledger/entities"
	"carbonledger/pkg/apperr"
	"carbonledger/pkg/plot/repository"
)

type PlotCtrl struct{ repo repository.PlotRepository }

func New(repo repository.PlotRepository) *PlotCtrl { return &PlotCtrl{repo} }

type createReq struct {
	FarmerID  uint   `json:"farmer_id"`
	County    string `json:"county"`
	SoilClass string `json:"soil_class"`
	Centroid  *struct {
		Lat float64 `json:"lat"`
		Lng float64 `json:"lng"`
	} `json:"centroid"`
	BoundaryGeoJSON string `json:"boundary_geojson"`
}

func (h *PlotCtrl) Create(c echo.Context) error {
	var req createReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "bad json", "code": "VALIDATION"})
	}
	if req.FarmerID == 0 {
		return apperr.Respond(c, apperr.New(apperr.KindValidation, "farmer_id is required"))
	}
	p := &entities.Plot{
		FarmerID:        req.FarmerID,
		County:          req.County,
		SoilClass:       req.SoilClass,
		BoundaryGeoJSON: req.BoundaryGeoJSON,
	}
	if req.Centroid != nil {
		p.CentroidLat, p.CentroidLng = &req.Centroid.Lat, &req.Centroid.Lng
	}
	if err := h.repo.Create(p); err != nil {
		return apperr.Respond(c, err)
	}
	return c.JSON(http.StatusCreated, p)
}
