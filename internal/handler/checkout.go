package handler

import (
	"net/http"
	"strings"
	"travel-journal-bff/internal/dto"
	"travel-journal-bff/internal/format"
	"travel-journal-bff/internal/guard"
	"travel-journal-bff/internal/middleware"
	"travel-journal-bff/internal/pricing"
	"travel-journal-bff/internal/service"

	"github.com/labstack/echo/v4"
)

type CheckoutHandler struct {
	checkoutService service.CheckoutService
}

func NewCheckoutHandler(checkoutService service.CheckoutService) *CheckoutHandler {
	return &CheckoutHandler{
		checkoutService: checkoutService,
	}
}

func NewTotalsView(t pricing.Totals) dto.TotalsView {
	return dto.TotalsView{
		Subtotal:     t.Subtotal,
		Discount:     t.Discount,
		Total:        t.Total,
		SubtotalText: format.Currency(t.Subtotal),
		DiscountText: format.Currency(t.Discount),
		TotalText:    format.Currency(t.Total),
	}
}

func NewCheckoutView(co service.Checkout) dto.CheckoutView {
	view := dto.CheckoutView{
		State:           string(co.State),
		Items:           co.Items,
		PaymentMethods:  co.PaymentMethods,
		PaymentMethodID: co.PaymentMethodID,
		Notes:           co.Notes,
		Totals:          NewTotalsView(co.Totals()),
		LastError:       co.LastError,
		TransactionID:   co.TransactionID,
	}
	if co.Promo != nil {
		view.PromoCode = co.Promo.Code
	}
	return view
}

// cartIDsParam accepts ?cartIds=a&cartIds=b as well as ?cartIds=a,b.
func cartIDsParam(c echo.Context) []string {
	var ids []string
	for _, raw := range c.QueryParams()["cartIds"] {
		for _, id := range strings.Split(raw, ",") {
			if id = strings.TrimSpace(id); id != "" {
				ids = append(ids, id)
			}
		}
	}
	return ids
}

func (h *CheckoutHandler) Start(c echo.Context) error {
	ctx := c.Request().Context()
	session := guard.SessionFrom(c)

	co, err := h.checkoutService.Start(ctx, middleware.ClientID(c), session.Token, cartIDsParam(c))
	if err != nil {
		return httpError(err, "Failed to load checkout data.")
	}

	return c.JSON(http.StatusOK, NewCheckoutView(co))
}

func (h *CheckoutHandler) SelectPaymentMethod(c echo.Context) error {
	ctx := c.Request().Context()
	session := guard.SessionFrom(c)

	var req dto.SelectPaymentMethodRequest
	if err := c.Bind(&req); err != nil {
		return badRequest()
	}

	co, err := h.checkoutService.SelectPaymentMethod(ctx, middleware.ClientID(c), session.Token, req.PaymentMethodID)
	if err != nil {
		return httpError(err, "Failed to select the payment method.")
	}

	return c.JSON(http.StatusOK, NewCheckoutView(co))
}

func (h *CheckoutHandler) ApplyPromo(c echo.Context) error {
	ctx := c.Request().Context()
	session := guard.SessionFrom(c)

	var req dto.ApplyPromoRequest
	if err := c.Bind(&req); err != nil {
		return badRequest()
	}

	co, err := h.checkoutService.ApplyPromo(ctx, middleware.ClientID(c), session.Token, req.Code)
	if err != nil {
		return httpError(err, "Failed to check the promo code.")
	}

	return c.JSON(http.StatusOK, NewCheckoutView(co))
}

func (h *CheckoutHandler) SetNotes(c echo.Context) error {
	ctx := c.Request().Context()
	session := guard.SessionFrom(c)

	var req dto.NotesRequest
	if err := c.Bind(&req); err != nil {
		return badRequest()
	}

	co, err := h.checkoutService.SetNotes(ctx, middleware.ClientID(c), session.Token, req.Notes)
	if err != nil {
		return httpError(err, "Failed to save notes.")
	}

	return c.JSON(http.StatusOK, NewCheckoutView(co))
}

func (h *CheckoutHandler) Submit(c echo.Context) error {
	ctx := c.Request().Context()
	session := guard.SessionFrom(c)

	result, err := h.checkoutService.Submit(ctx, middleware.ClientID(c), session.Token)
	if err != nil {
		return httpError(err, "Failed to create the transaction. Please try again.")
	}

	return c.JSON(http.StatusCreated, dto.SubmitCheckoutResponse{
		Message:       "Transaction created.",
		TransactionID: result.TransactionID,
		Totals:        NewTotalsView(result.Totals),
		RedirectTo:    result.RedirectTo,
	})
}
