package handler

import (
	"errors"
	"net/http"
	"travel-journal-bff/internal/client"
	"travel-journal-bff/internal/service"

	"github.com/labstack/echo/v4"
)

// httpError turns a service error into the {"message": ...} answer the
// pages show as a notification. The cause is kept as the internal error.
func httpError(err error, fallback string) error {
	var validation *service.ValidationError
	switch {
	case errors.As(err, &validation):
		return echo.NewHTTPError(http.StatusBadRequest, validation.Message).SetInternal(err)
	case errors.Is(err, client.ErrTokenMissing):
		return echo.NewHTTPError(http.StatusBadGateway, "Login failed: the server did not return a token.").SetInternal(err)
	case errors.Is(err, service.ErrCartItemNotFound):
		return echo.NewHTTPError(http.StatusNotFound, "Cart item not found.").SetInternal(err)
	case errors.Is(err, service.ErrTransactionNotFound):
		return echo.NewHTTPError(http.StatusNotFound, "Transaction not found.").SetInternal(err)
	case errors.Is(err, service.ErrTransitionNotAllowed):
		return echo.NewHTTPError(http.StatusConflict, "Only pending transactions can be approved or rejected.").SetInternal(err)
	case errors.Is(err, service.ErrSubmissionInFlight):
		return echo.NewHTTPError(http.StatusConflict, "Your order is already being processed.").SetInternal(err)
	case errors.Is(err, service.ErrCheckoutNotStarted), errors.Is(err, service.ErrCheckoutNotReady):
		return echo.NewHTTPError(http.StatusConflict, "Open the checkout page first.").SetInternal(err)
	case errors.Is(err, service.ErrPaymentMethodAbsent):
		return echo.NewHTTPError(http.StatusBadRequest, "Payment method not found.").SetInternal(err)
	}

	return echo.NewHTTPError(client.StatusCode(err), client.FriendlyMessage(err, fallback)).SetInternal(err)
}

func badRequest() error {
	return echo.NewHTTPError(http.StatusBadRequest, "invalid req body")
}
