package controllerImp

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"carbonledger/pkg/apperr"
	"carbonledger/pkg/payout/service"
)

type PayoutCtrl struct{ svc service.PayoutService }

func New(svc service.PayoutService) *PayoutCtrl { return &PayoutCtrl{svc} }

func (h *PayoutCtrl) Run(c echo.Context) error {
	var body struct {
		LotID uint `json:"lot_id"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "bad json", "code": "VALIDATION"})
	}
	if body.LotID == 0 {
		return apperr.Respond(c, apperr.New(apperr.KindValidation, "lot_id is required"))
	}
	rows, err := h.svc.Run(c.Request().Context(), body.LotID)
	if err != nil {
		return apperr.Respond(c, err)
	}
	return c.JSON(http.StatusOK, rows)
}
