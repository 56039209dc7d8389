package handler

import (
	"fmt"
	"net/http"
	"travel-journal-bff/internal/dto"
	"travel-journal-bff/internal/format"
	"travel-journal-bff/internal/guard"
	"travel-journal-bff/internal/middleware"
	"travel-journal-bff/internal/model"
	"travel-journal-bff/internal/pricing"
	"travel-journal-bff/internal/service"

	"github.com/labstack/echo/v4"
)

// UserHandler serves the signed-in traveler's pages.
type UserHandler struct {
	authService        service.AuthService
	cartService        service.CartService
	transactionService service.TransactionService
	catalogService     service.CatalogService
}

func NewUserHandler(
	authService service.AuthService,
	cartService service.CartService,
	transactionService service.TransactionService,
	catalogService service.CatalogService,
) *UserHandler {
	return &UserHandler{
		authService:        authService,
		cartService:        cartService,
		transactionService: transactionService,
		catalogService:     catalogService,
	}
}

func NewCartView(items []model.CartLineItem) dto.CartView {
	total := pricing.Subtotal(items)
	if items == nil {
		items = []model.CartLineItem{}
	}
	return dto.CartView{
		Items:          items,
		TotalQuantity:  pricing.TotalQuantity(items),
		TotalPrice:     total,
		TotalPriceText: format.Currency(total),
	}
}

func (h *UserHandler) GetCart(c echo.Context) error {
	ctx := c.Request().Context()
	session := guard.SessionFrom(c)

	items, err := h.cartService.List(ctx, session.Token)
	if err != nil {
		return httpError(err, "Failed to load your cart.")
	}

	return c.JSON(http.StatusOK, NewCartView(items))
}

func (h *UserHandler) ChangeQuantity(c echo.Context) error {
	ctx := c.Request().Context()
	session := guard.SessionFrom(c)

	var req dto.ChangeQuantityRequest
	if err := c.Bind(&req); err != nil {
		return badRequest()
	}

	items, err := h.cartService.ChangeQuantity(ctx, middleware.ClientID(c), session.Token, c.Param("id"), req.Delta)
	if err != nil {
		return httpError(err, "Failed to update the quantity.")
	}

	return c.JSON(http.StatusOK, NewCartView(items))
}

func (h *UserHandler) RemoveCartItem(c echo.Context) error {
	ctx := c.Request().Context()
	session := guard.SessionFrom(c)

	if err := h.cartService.Remove(ctx, session.Token, c.Param("id")); err != nil {
		return httpError(err, "Failed to remove the item.")
	}

	return c.JSON(http.StatusOK, dto.MessageResponse{Message: "Item removed from cart."})
}

// ClearCart reports each item; a partial failure still answers 200 with the
// failed count so the page can tell the user.
func (h *UserHandler) ClearCart(c echo.Context) error {
	ctx := c.Request().Context()
	session := guard.SessionFrom(c)

	results, err := h.cartService.RemoveAll(ctx, session.Token)
	if err != nil {
		return httpError(err, "Failed to clear the cart.")
	}

	resp := dto.ClearCartResponse{
		Results: make([]dto.BatchItemResult, 0, len(results)),
	}
	for _, r := range results {
		item := dto.BatchItemResult{ID: r.ID, OK: r.OK()}
		if !r.OK() {
			item.Error = r.Err.Error()
			resp.Failed++
		}
		resp.Results = append(resp.Results, item)
	}

	if resp.Failed == 0 {
		resp.Message = "Cart cleared."
	} else {
		resp.Message = fmt.Sprintf("%d of %d items could not be removed.", resp.Failed, len(results))
	}

	return c.JSON(http.StatusOK, resp)
}

func (h *UserHandler) GetTransactions(c echo.Context) error {
	ctx := c.Request().Context()
	session := guard.SessionFrom(c)

	view, err := h.transactionService.Mine(ctx, middleware.ClientID(c), session.Token)
	if err != nil {
		return httpError(err, "Failed to load your transactions.")
	}

	return c.JSON(http.StatusOK, view)
}

func (h *UserHandler) GetNotifications(c echo.Context) error {
	ctx := c.Request().Context()
	session := guard.SessionFrom(c)

	notifications, err := h.catalogService.Notifications(ctx, session.Token)
	if err != nil {
		return httpError(err, "Failed to load notifications.")
	}

	return c.JSON(http.StatusOK, notifications)
}

func (h *UserHandler) GetProfile(c echo.Context) error {
	ctx := c.Request().Context()
	session := guard.SessionFrom(c)

	profile, err := h.authService.Profile(ctx, session)
	if err != nil {
		return httpError(err, "Failed to load your profile.")
	}

	return c.JSON(http.StatusOK, profile)
}
