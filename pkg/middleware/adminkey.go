package middleware

import (
	"crypto/subtle"
	"net/http"

	"github.com/labstack/echo/v4"
)

// AdminKey gates admin routes on the X-Admin-Key header. The key is a
// per-request credential supplied by the caller; the service holds no
// mutable auth state. An empty configured key rejects everything.
func AdminKey(key string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			got := c.Request().Header.Get("X-Admin-Key")
			if key == "" || subtle.ConstantTimeCompare([]byte(got), []byte(key)) != 1 {
				return c.JSON(http.StatusUnauthorized, echo.Map{
					"error": "missing or invalid admin key",
					"code":  "UNAUTHORIZED",
				})
			}
			return next(c)
		}
	}
}
