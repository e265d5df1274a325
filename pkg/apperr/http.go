package apperr

import "github.com/labstack/echo/v4"

// Respond writes the typed error body used by every controller:
// {"error": message, "code": stable-code}.
func Respond(c echo.Context, err error) error {
	kind := KindOf(err)
	if kind == "" {
		kind = "INTERNAL"
	}
	return c.JSON(Status(err), echo.Map{"error": err.Error(), "code": string(kind)})
}
