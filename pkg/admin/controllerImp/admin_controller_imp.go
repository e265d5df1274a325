package controllerImp

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"carbonledger/entities"
	"carbonledger/pkg/apperr"
	"carbonledger/pkg/report"
)

type AdminCtrl struct{ db *gorm.DB }

func New(db *gorm.DB) *AdminCtrl { return &AdminCtrl{db} }

type stats struct {
	Farmers          int64   `json:"farmers"`
	Plots            int64   `json:"plots"`
	PendingEvents    int64   `json:"pending_events"`
	VerifiedTCO2e    float64 `json:"verified_tco2e"`
	LotsAvailable    int64   `json:"lots_available"`
	LotsSold         int64   `json:"lots_sold"`
	PendingPayoutKES float64 `json:"pending_payout_kes"`
	PaidKES          float64 `json:"paid_kes"`
}

func (h *AdminCtrl) Stats(c echo.Context) error {
	var s stats
	steps := []error{
		h.db.Model(&entities.Farmer{}).Count(&s.Farmers).Error,
		h.db.Model(&entities.Plot{}).Count(&s.Plots).Error,
		h.db.Model(&entities.PracticeEvent{}).Where("status = ?", entities.EventPending).Count(&s.PendingEvents).Error,
		h.db.Model(&entities.PracticeEvent{}).Where("status = ?", entities.EventVerified).
			Select("COALESCE(SUM(provisional_credits), 0)").Scan(&s.VerifiedTCO2e).Error,
		h.db.Model(&entities.CreditLot{}).Where("status = ?", entities.LotAvailable).Count(&s.LotsAvailable).Error,
		h.db.Model(&entities.CreditLot{}).Where("status = ?", entities.LotSold).Count(&s.LotsSold).Error,
		h.db.Model(&entities.Payout{}).Where("status = ?", entities.PayoutPending).
			Select("COALESCE(SUM(amount_kes), 0)").Scan(&s.PendingPayoutKES).Error,
		h.db.Model(&entities.Payout{}).Where("status = ?", entities.PayoutCompleted).
			Select("COALESCE(SUM(amount_kes), 0)").Scan(&s.PaidKES).Error,
	}
	for _, err := range steps {
		if err != nil {
			return apperr.Respond(c, err)
		}
	}
	return c.JSON(http.StatusOK, s)
}

func (h *AdminCtrl) Registry(c echo.Context) error {
	f, err := report.BuildRegistry(h.db)
	if err != nil {
		return apperr.Respond(c, err)
	}
	c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="carbon_registry.xlsx"`)
	c.Response().Header().Set(echo.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Response().WriteHeader(http.StatusOK)
	return f.Write(c.Response())
}
