package controller

import "github.com/labstack/echo/v4"

type FarmerController interface {
	Create(c echo.Context) error
	Wallet(c echo.Context) error
}
