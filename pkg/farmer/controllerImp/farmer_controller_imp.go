package controllerImp

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"carbonledger/entities"
	"carbonledger/pkg/apperr"
	"carbonledger/pkg/farmer/repository"
)

type FarmerCtrl struct{ repo repository.FarmerRepository }

func New(repo repository.FarmerRepository) *FarmerCtrl { return &FarmerCtrl{repo} }

type createReq struct {
	Name     string `json:"name"`
	Phone    string `json:"phone"`
	CoopName string `json:"coop_name"`
	County   string `json:"county"`
}

func (h *FarmerCtrl) Create(c echo.Context) error {
	var req createReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "bad json", "code": "VALIDATION"})
	}
	req.Name = strings.TrimSpace(req.Name)
	req.Phone = strings.TrimSpace(req.Phone)
	if req.Name == "" || req.Phone == "" {
		return apperr.Respond(c, apperr.New(apperr.KindValidation, "name and phone are required"))
	}
	f := &entities.Farmer{Name: req.Name, Phone: req.Phone, CoopName: req.CoopName, County: req.County}
	if err := h.repo.Create(f); err != nil {
		return apperr.Respond(c, err)
	}
	return c.JSON(http.StatusCreated, f)
}

func (h *FarmerCtrl) Wallet(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return apperr.Respond(c, apperr.New(apperr.KindValidation, "invalid farmer id"))
	}
	w, err := h.repo.Wallet(uint(id))
	if err != nil {
		return apperr.Respond(c, err)
	}
	return c.JSON(http.StatusOK, w)
}
