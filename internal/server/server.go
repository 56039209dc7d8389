package server

import (
	"context"
	"net/http"
	"travel-journal-bff/internal/config"
	"travel-journal-bff/internal/guard"
	"travel-journal-bff/internal/handler"
	appmw "travel-journal-bff/internal/middleware"
	"travel-journal-bff/internal/model"
	"travel-journal-bff/internal/service"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"
)

type Services struct {
	Auth        service.AuthService
	Cart        service.CartService
	Checkout    service.CheckoutService
	Transaction service.TransactionService
	Admin       service.AdminService
	Catalog     service.CatalogService
	Nav         service.NavService
}

type Server struct {
	echo            *echo.Echo
	authService     service.AuthService
	authHandler     *handler.AuthHandler
	userHandler     *handler.UserHandler
	checkoutHandler *handler.CheckoutHandler
	catalogHandler  *handler.CatalogHandler
	adminHandler    *handler.AdminHandler
}

func NewServer(cfg *config.Config, services Services, logger *zap.Logger) *Server {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(middleware.RequestID())
	e.Use(appmw.ClientIDMiddleware(cfg.Cookie))
	e.Use(appmw.RequestLogger(logger))
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())
	e.Use(appmw.SessionExpiryMiddleware(services.Auth.Logout, logger))

	s := &Server{
		echo:            e,
		authService:     services.Auth,
		authHandler:     handler.NewAuthHandler(services.Auth),
		userHandler:     handler.NewUserHandler(services.Auth, services.Cart, services.Transaction, services.Catalog),
		checkoutHandler: handler.NewCheckoutHandler(services.Checkout),
		catalogHandler:  handler.NewCatalogHandler(services.Catalog, services.Nav),
		adminHandler:    handler.NewAdminHandler(services.Admin, services.Transaction),
	}

	s.setupRoutes()
	return s
}

func (s *Server) session(c echo.Context) model.Session {
	return s.authService.Session(c.Request().Context(), appmw.ClientID(c))
}

// routes attaches one guard to each route it registers. Several of them
// share the root prefix, so the guard is route-level, not an echo group.
type routes struct {
	echo   *echo.Echo
	prefix string
	mw     echo.MiddlewareFunc
}

func (s *Server) guarded(prefix string, requirement guard.Requirement) routes {
	return routes{
		echo:   s.echo,
		prefix: prefix,
		mw:     guard.Middleware(requirement, s.session),
	}
}

func (r routes) GET(path string, h echo.HandlerFunc) {
	r.echo.GET(r.prefix+path, h, r.mw)
}

func (r routes) POST(path string, h echo.HandlerFunc) {
	r.echo.POST(r.prefix+path, h, r.mw)
}

func (r routes) DELETE(path string, h echo.HandlerFunc) {
	r.echo.DELETE(r.prefix+path, h, r.mw)
}

func (s *Server) setupRoutes() {
	s.echo.GET("/api/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})

	// -------- shared --------
	shared := s.guarded("", guard.Public)
	shared.GET("/nav", s.catalogHandler.Nav)
	shared.GET("/session", s.authHandler.Session)
	shared.POST("/logout", s.authHandler.Logout)

	// -------- guest --------
	guest := s.guarded("", guard.GuestOnly)
	guest.POST("/login", s.authHandler.Login)
	guest.POST("/register", s.authHandler.Register)

	// -------- public pages --------
	public := s.guarded("", guard.BlockAdminOnUserRoute)
	public.GET("/", s.catalogHandler.Home)
	public.GET("/activity", s.catalogHandler.Activities)
	public.GET("/promos", s.catalogHandler.Promos)

	// -------- user --------
	user := s.guarded("", guard.UserProtected)
	user.GET("/cart", s.userHandler.GetCart)
	user.DELETE("/cart", s.userHandler.ClearCart)
	user.POST("/cart/:id/quantity", s.userHandler.ChangeQuantity)
	user.DELETE("/cart/:id", s.userHandler.RemoveCartItem)
	user.GET("/transactions", s.userHandler.GetTransactions)
	user.GET("/notifications", s.userHandler.GetNotifications)
	user.GET("/profile", s.userHandler.GetProfile)

	user.GET("/checkout", s.checkoutHandler.Start)
	user.POST("/checkout/payment-method", s.checkoutHandler.SelectPaymentMethod)
	user.POST("/checkout/promo", s.checkoutHandler.ApplyPromo)
	user.POST("/checkout/notes", s.checkoutHandler.SetNotes)
	user.POST("/checkout/submit", s.checkoutHandler.Submit)

	// -------- admin --------
	admin := s.guarded("/admin", guard.RequireAdmin)
	admin.GET("", s.adminHandler.Dashboard)
	admin.GET("/transactions", s.adminHandler.GetTransactions)
	admin.POST("/transactions/:id/status", s.adminHandler.UpdateTransactionStatus)
	admin.GET("/users", s.adminHandler.GetUsers)
	admin.POST("/users/:id/role", s.adminHandler.UpdateUserRole)
	admin.GET("/activities", s.adminHandler.GetActivities)
	admin.POST("/activities", s.adminHandler.CreateActivity)
	admin.POST("/activities/:id", s.adminHandler.UpdateActivity)
	admin.DELETE("/activities/:id", s.adminHandler.DeleteActivity)
	admin.GET("/promos", s.adminHandler.GetPromos)
	admin.POST("/promos", s.adminHandler.CreatePromo)
	admin.POST("/promos/:id", s.adminHandler.UpdatePromo)
	admin.DELETE("/promos/:id", s.adminHandler.DeletePromo)
}

// Handler exposes the router for tests.
func (s *Server) Handler() http.Handler {
	return s.echo
}

func (s *Server) Start(address string) error {
	return s.echo.Start(address)
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.echo.Shutdown(ctx)
}
