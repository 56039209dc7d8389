package handler

import (
	"net/http"
	"travel-journal-bff/internal/dto"
	"travel-journal-bff/internal/guard"
	"travel-journal-bff/internal/service"

	"github.com/labstack/echo/v4"
)

type AdminHandler struct {
	adminService       service.AdminService
	transactionService service.TransactionService
}

func NewAdminHandler(adminService service.AdminService, transactionService service.TransactionService) *AdminHandler {
	return &AdminHandler{
		adminService:       adminService,
		transactionService: transactionService,
	}
}

func (h *AdminHandler) Dashboard(c echo.Context) error {
	ctx := c.Request().Context()

	view := h.adminService.Dashboard(ctx, guard.SessionFrom(c).Token)

	return c.JSON(http.StatusOK, view)
}

// -------- transactions --------

func (h *AdminHandler) GetTransactions(c echo.Context) error {
	ctx := c.Request().Context()

	view, err := h.transactionService.All(ctx, guard.SessionFrom(c).Token, c.QueryParam("status"))
	if err != nil {
		return httpError(err, "Failed to load transactions.")
	}

	return c.JSON(http.StatusOK, view)
}

func (h *AdminHandler) UpdateTransactionStatus(c echo.Context) error {
	ctx := c.Request().Context()

	var req dto.UpdateStatusRequest
	if err := c.Bind(&req); err != nil {
		return badRequest()
	}

	tx, err := h.transactionService.UpdateStatus(ctx, guard.SessionFrom(c).Token, c.Param("id"), req.Status)
	if err != nil {
		return httpError(err, "Failed to update the transaction status.")
	}

	return c.JSON(http.StatusOK, service.NewTransactionView(*tx))
}

// -------- users --------

func (h *AdminHandler) GetUsers(c echo.Context) error {
	ctx := c.Request().Context()

	users, err := h.adminService.Users(ctx, guard.SessionFrom(c).Token)
	if err != nil {
		return httpError(err, "Failed to load users.")
	}

	return c.JSON(http.StatusOK, users)
}

func (h *AdminHandler) UpdateUserRole(c echo.Context) error {
	ctx := c.Request().Context()

	var req dto.UpdateRoleRequest
	if err := c.Bind(&req); err != nil {
		return badRequest()
	}

	if err := h.adminService.ChangeRole(ctx, guard.SessionFrom(c).Token, c.Param("id"), req.Role); err != nil {
		return httpError(err, "Failed to change the user role.")
	}

	return c.JSON(http.StatusOK, dto.MessageResponse{Message: "Role updated."})
}

// -------- activities --------

func (h *AdminHandler) GetActivities(c echo.Context) error {
	ctx := c.Request().Context()

	activities, err := h.adminService.Activities(ctx, guard.SessionFrom(c).Token)
	if err != nil {
		return httpError(err, "Failed to load activities.")
	}

	return c.JSON(http.StatusOK, activities)
}

func (h *AdminHandler) CreateActivity(c echo.Context) error {
	ctx := c.Request().Context()

	var req dto.ActivityRequest
	if err := c.Bind(&req); err != nil {
		return badRequest()
	}

	if err := h.adminService.CreateActivity(ctx, guard.SessionFrom(c).Token, req); err != nil {
		return httpError(err, "Failed to create the activity.")
	}

	return c.JSON(http.StatusCreated, dto.MessageResponse{Message: "Activity created."})
}

func (h *AdminHandler) UpdateActivity(c echo.Context) error {
	ctx := c.Request().Context()

	var req dto.ActivityRequest
	if err := c.Bind(&req); err != nil {
		return badRequest()
	}

	if err := h.adminService.UpdateActivity(ctx, guard.SessionFrom(c).Token, c.Param("id"), req); err != nil {
		return httpError(err, "Failed to update the activity.")
	}

	return c.JSON(http.StatusOK, dto.MessageResponse{Message: "Activity updated."})
}

func (h *AdminHandler) DeleteActivity(c echo.Context) error {
	ctx := c.Request().Context()

	if err := h.adminService.DeleteActivity(ctx, guard.SessionFrom(c).Token, c.Param("id")); err != nil {
		return httpError(err, "Failed to delete the activity.")
	}

	return c.JSON(http.StatusOK, dto.MessageResponse{Message: "Activity deleted."})
}

// -------- promos --------

func (h *AdminHandler) GetPromos(c echo.Context) error {
	ctx := c.Request().Context()

	promos, err := h.adminService.Promos(ctx, guard.SessionFrom(c).Token)
	if err != nil {
		return httpError(err, "Failed to load promos.")
	}

	return c.JSON(http.StatusOK, promos)
}

func (h *AdminHandler) CreatePromo(c echo.Context) error {
	ctx := c.Request().Context()

	var req dto.PromoRequest
	if err := c.Bind(&req); err != nil {
		return badRequest()
	}

	if err := h.adminService.CreatePromo(ctx, guard.SessionFrom(c).Token, req); err != nil {
		return httpError(err, "Failed to create the promo.")
	}

	return c.JSON(http.StatusCreated, dto.MessageResponse{Message: "Promo created."})
}

func (h *AdminHandler) UpdatePromo(c echo.Context) error {
	ctx := c.Request().Context()

	var req dto.PromoRequest
	if err := c.Bind(&req); err != nil {
		return badRequest()
	}

	if err := h.adminService.UpdatePromo(ctx, guard.SessionFrom(c).Token, c.Param("id"), req); err != nil {
		return httpError(err, "Failed to update the promo.")
	}

	return c.JSON(http.StatusOK, dto.MessageResponse{Message: "Promo updated."})
}

func (h *AdminHandler) DeletePromo(c echo.Context) error {
	ctx := c.Request().Context()

	if err := h.adminService.DeletePromo(ctx, guard.SessionFrom(c).Token, c.Param("id")); err != nil {
		return httpError(err, "Failed to delete the promo.")
	}

	return c.JSON(http.StatusOK, dto.MessageResponse{Message: "Promo deleted."})
}

// -------- images --------
