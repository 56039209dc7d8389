package handler

import (
	"net/http"
	"travel-journal-bff/internal/dto"
	"travel-journal-bff/internal/guard"
	"travel-journal-bff/internal/middleware"
	"travel-journal-bff/internal/model"
	"travel-journal-bff/internal/service"

	"github.com/labstack/echo/v4"
)

type AuthHandler struct {
	authService service.AuthService
}

func NewAuthHandler(authService service.AuthService) *AuthHandler {
	return &AuthHandler{
		authService: authService,
	}
}

func (h *AuthHandler) Login(c echo.Context) error {
	ctx := c.Request().Context()

	var req dto.LoginRequest
	if err := c.Bind(&req); err != nil {
		return badRequest()
	}

	session, err := h.authService.Login(ctx, middleware.ClientID(c), req)
	if err != nil {
		return httpError(err, "Login failed. Check your email and password.")
	}

	redirectTo := guard.HomePath
	if session.IsAdmin() {
		redirectTo = guard.AdminPath
	}

	return c.JSON(http.StatusOK, dto.MessageResponse{
		Message:    "Login successful.",
		RedirectTo: redirectTo,
	})
}

func (h *AuthHandler) Register(c echo.Context) error {
	ctx := c.Request().Context()

	var req dto.RegisterRequest
	if err := c.Bind(&req); err != nil {
		return badRequest()
	}

	if err := h.authService.Register(ctx, req); err != nil {
		return httpError(err, "Registration failed. Please try again.")
	}

	return c.JSON(http.StatusCreated, dto.MessageResponse{
		Message:    "Registration successful. Please log in.",
		RedirectTo: guard.LoginPath,
	})
}

func (h *AuthHandler) Logout(c echo.Context) error {
	ctx := c.Request().Context()

	if err := h.authService.Logout(ctx, middleware.ClientID(c)); err != nil {
		return httpError(err, "Logout failed.")
	}

	return c.JSON(http.StatusOK, dto.MessageResponse{
		Message:    "You have been logged out.",
		RedirectTo: guard.LoginPath,
	})
}

func (h *AuthHandler) Session(c echo.Context) error {
	ctx := c.Request().Context()

	session := h.authService.Session(ctx, middleware.ClientID(c))

	return c.JSON(http.StatusOK, NewSessionView(session))
}

func NewSessionView(session model.Session) dto.SessionView {
	return dto.SessionView{
		IsAuthenticated: session.IsAuthenticated(),
		Role:            session.Role(),
		Profile:         session.Profile,
	}
}
