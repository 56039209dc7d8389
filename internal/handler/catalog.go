package handler

import (
	"net/http"
	"travel-journal-bff/internal/guard"
	"travel-journal-bff/internal/middleware"
	"travel-journal-bff/internal/service"

	"github.com/labstack/echo/v4"
)

// CatalogHandler serves the public pages and the navbar.
type CatalogHandler struct {
	catalogService service.CatalogService
	navService     service.NavService
}

func NewCatalogHandler(catalogService service.CatalogService, navService service.NavService) *CatalogHandler {
	return &CatalogHandler{
		catalogService: catalogService,
		navService:     navService,
	}
}

func (h *CatalogHandler) Home(c echo.Context) error {
	ctx := c.Request().Context()

	view, err := h.catalogService.Home(ctx, guard.SessionFrom(c).Token)
	if err != nil {
		return httpError(err, "Failed to load the home page.")
	}

	return c.JSON(http.StatusOK, view)
}

func (h *CatalogHandler) Activities(c echo.Context) error {
	ctx := c.Request().Context()

	view, err := h.catalogService.Activities(ctx, guard.SessionFrom(c).Token)
	if err != nil {
		return httpError(err, "Failed to load activities.")
	}

	return c.JSON(http.StatusOK, view)
}

func (h *CatalogHandler) Promos(c echo.Context) error {
	ctx := c.Request().Context()

	promos, err := h.catalogService.Promos(ctx, guard.SessionFrom(c).Token)
	if err != nil {
		return httpError(err, "Failed to load promos.")
	}

	return c.JSON(http.StatusOK, promos)
}

func (h *CatalogHandler) Nav(c echo.Context) error {
	ctx := c.Request().Context()

	view, err := h.navService.Nav(ctx, middleware.ClientID(c), guard.SessionFrom(c))
	if err != nil {
		return httpError(err, "Failed to load the navigation.")
	}

	return c.JSON(http.StatusOK, view)
}
