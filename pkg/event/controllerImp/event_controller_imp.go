package controllerImp

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"carbonledger/pkg/apperr"
	"carbonledger/pkg/event/service"
)

type EventCtrl struct{ svc service.EventService }

func New(svc service.EventService) *EventCtrl { return &EventCtrl{svc} }

type logReq struct {
	PlotID       uint    `json:"plot_id"`
	PracticeType string  `json:"practice_type"`
	Quantity     float64 `json:"quantity"`
	MediaURI     string  `json:"media_uri"`
	GPSCoords    *struct {
		Lat float64 `json:"lat"`
		Lng float64 `json:"lng"`
	} `json:"gps_coords"`
}

func (h *EventCtrl) Log(c echo.Context) error {
	var req logReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "bad json", "code": "VALIDATION"})
	}
	in := service.LogInput{
		PlotID:       req.PlotID,
		PracticeType: req.PracticeType,
		Quantity:     req.Quantity,
		MediaURI:     req.MediaURI,
	}
	if req.GPSCoords != nil {
		in.GPSLat, in.GPSLng = &req.GPSCoords.Lat, &req.GPSCoords.Lng
	}
	e, err := h.svc.Log(c.Request().Context(), in)
	if err != nil {
		return apperr.Respond(c, err)
	}
	return c.JSON(http.StatusCreated, e)
}

func (h *EventCtrl) List(c echo.Context) error {
	list, err := h.svc.List(c.QueryParam("status"))
	if err != nil {
		return apperr.Respond(c, err)
	}
	return c.JSON(http.StatusOK, list)
}

func (h *EventCtrl) Verify(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return apperr.Respond(c, apperr.New(apperr.KindValidation, "invalid event id"))
	}
	var body struct {
		Action string `json:"action"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "bad json", "code": "VALIDATION"})
	}
	e, err := h.svc.Verify(c.Request().Context(), uint(id), body.Action)
	if err != nil {
		return apperr.Respond(c, err)
	}
	return c.JSON(http.StatusOK, e)
}
