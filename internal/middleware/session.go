package middleware

import (
	"context"
	"travel-journal-bff/internal/client"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// SessionExpiryMiddleware drops the stored session when the Travel Journal
// API answered 401, so the next page load sees an anonymous session.
func SessionExpiryMiddleware(clear func(ctx context.Context, clientID string) error, logger *zap.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			err := next(c)
			if err == nil || client.Classify(err) != client.KindUnauthorized {
				return err
			}

			clientID := ClientID(c)
			if clearErr := clear(c.Request().Context(), clientID); clearErr != nil {
				logger.Warn("clear expired session", zap.String("client_id", clientID), zap.Error(clearErr))
			}
			return err
		}
	}
}
