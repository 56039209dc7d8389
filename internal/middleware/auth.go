package middleware

import (
	"net/http"
	"travel-journal-bff/internal/config"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

const clientIDKey = "client_id"

// ClientIDMiddleware identifies the browser by a long-lived cookie. The id
// partitions every locally stored value, so a request without one gets a
// fresh id.
func ClientIDMiddleware(cfg config.Cookie) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			id := ""
			if cookie, err := c.Cookie(cfg.Name); err == nil {
				if parsed, err := uuid.Parse(cookie.Value); err == nil {
					id = parsed.String()
				}
			}

			if id == "" {
				id = uuid.NewString()
				c.SetCookie(&http.Cookie{
					Name:     cfg.Name,
					Value:    id,
					Path:     "/",
					MaxAge:   365 * 24 * 60 * 60,
					HttpOnly: true,
					Secure:   cfg.Secure,
					SameSite: http.SameSiteLaxMode,
				})
			}

			c.Set(clientIDKey, id)
			return next(c)
		}
	}
}

// ClientID returns the id set by ClientIDMiddleware.
func ClientID(c echo.Context) string {
	id, _ := c.Get(clientIDKey).(string)
	return id
}
