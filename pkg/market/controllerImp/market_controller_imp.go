package controllerImp

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"carbonledger/pkg/apperr"
	"carbonledger/pkg/market/service"
)

type MarketCtrl struct{ svc service.MarketService }

func New(svc service.MarketService) *MarketCtrl { return &MarketCtrl{svc} }

type purchaseReq struct {
	LotID uint `json:"lot_id"`
	Buyer struct {
		Name    string `json:"name"`
		Email   string `json:"email"`
		Company string `json:"company"`
	} `json:"buyer"`
	PricePerTCO2eKES *float64 `json:"price_per_tco2e_kes"`
}

func (h *MarketCtrl) Purchase(c echo.Context) error {
	var req purchaseReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "bad json", "code": "VALIDATION"})
	}
	p, err := h.svc.Purchase(c.Request().Context(), service.PurchaseInput{
		LotID:         req.LotID,
		BuyerName:     req.Buyer.Name,
		BuyerEmail:    req.Buyer.Email,
		BuyerCompany:  req.Buyer.Company,
		PriceOverride: req.PricePerTCO2eKES,
	})
	if err != nil {
		return apperr.Respond(c, err)
	}
	return c.JSON(http.StatusCreated, p)
}
