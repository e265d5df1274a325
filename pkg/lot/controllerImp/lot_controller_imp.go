package controllerImp

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"carbonledger/pkg/apperr"
	"carbonledger/pkg/lot/service"
)

type LotCtrl struct{ svc service.LotService }

func New(svc service.LotService) *LotCtrl { return &LotCtrl{svc} }

func (h *LotCtrl) List(c echo.Context) error {
	lots, err := h.svc.List()
	if err != nil {
		return apperr.Respond(c, err)
	}
	return c.JSON(http.StatusOK, lots)
}

func (h *LotCtrl) Pool(c echo.Context) error {
	var body struct {
		ThresholdTCO2e *float64 `json:"threshold_tco2e"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "bad json", "code": "VALIDATION"})
	}
	res, err := h.svc.Pool(c.Request().Context(), body.ThresholdTCO2e)
	if err != nil {
		return apperr.Respond(c, err)
	}
	status := http.StatusOK
	if res.Pooled {
		status = http.StatusCreated
	}
	return c.JSON(status, res)
}

func (h *LotCtrl) Receipt(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return apperr.Respond(c, apperr.New(apperr.KindValidation, "invalid lot id"))
	}
	r, err := h.svc.Receipt(uint(id))
	if err != nil {
		return apperr.Respond(c, err)
	}
	return c.JSON(http.StatusOK, r)
}
