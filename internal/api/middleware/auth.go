package middleware

import (
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/bistroboss/ordering-system/internal/core/domain"
	"github.com/bistroboss/ordering-system/internal/core/ports"
	"github.com/bistroboss/ordering-system/internal/pkg/metrics"
)

// EmailKey is the echo context key holding the verified caller email.
const EmailKey = "email"

// Auth verifies the bearer token and injects the caller email into context.
// The token is the second whitespace-separated segment of the header; the
// scheme word itself is not checked.
func Auth(verifier ports.TokenVerifier) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get(echo.HeaderAuthorization)
			if authHeader == "" {
				metrics.GateRejectionsTotal.WithLabelValues("auth", "missing_header").Inc()
				return domain.ErrUnauthorized
			}

			parts := strings.Fields(authHeader)
			if len(parts) < 2 {
				metrics.GateRejectionsTotal.WithLabelValues("auth", "malformed_header").Inc()
				return domain.ErrUnauthorized
			}

			identity, err := verifier.Verify(parts[1])
			if err != nil {
				metrics.GateRejectionsTotal.WithLabelValues("auth", "invalid_token").Inc()
				return domain.ErrUnauthorized
			}

			c.Set(EmailKey, identity.Email)
			return next(c)
		}
	}
}
