package middleware

import (
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/bistroboss/ordering-system/internal/core/domain"
	"github.com/bistroboss/ordering-system/internal/core/ports"
	"github.com/bistroboss/ordering-system/internal/pkg/metrics"
)

// RequireAdmin admits only callers whose stored role is admin. It must run
// after Auth. A missing user is forbidden; a store failure is a server error.
func RequireAdmin(checker ports.AdminChecker, log zerolog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			email, _ := c.Get(EmailKey).(string)
			if email == "" {
				metrics.GateRejectionsTotal.WithLabelValues("role", "no_identity").Inc()
				return domain.ErrUnauthorized
			}

			ok, err := checker.CheckAdmin(c.Request().Context(), email)
			if err != nil {
				log.Error().Err(err).Str("email", email).Msg("role lookup failed")
				return err
			}
			if !ok {
				metrics.GateRejectionsTotal.WithLabelValues("role", "not_admin").Inc()
				return domain.ErrForbidden
			}
			return next(c)
		}
	}
}
