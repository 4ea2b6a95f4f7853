package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/bistroboss/ordering-system/internal/api/middleware"
	"github.com/bistroboss/ordering-system/internal/core/domain"
)

// ctxEmail returns the caller email injected by the Auth middleware. An empty
// value means the route was registered without the gate.
func ctxEmail(c echo.Context) (string, error) {
	email, _ := c.Get(middleware.EmailKey).(string)
	if email == "" {
		return "", domain.ErrUnauthorized
	}
	return email, nil
}
