package dto

import (
	"travel-journal-bff/internal/model"

	"github.com/shopspring/decimal"
)

// -------- requests --------

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type RegisterRequest struct {
	Name              string     `json:"name"`
	Email             string     `json:"email"`
	Password          string     `json:"password"`
	PasswordRepeat    string     `json:"passwordRepeat"`
	Role              model.Role `json:"role"`
	PhoneNumber       string     `json:"phoneNumber"`
	ProfilePictureURL string     `json:"profilePictureUrl"`
}

type ChangeQuantityRequest struct {
	Delta int `json:"delta"`
}

type SelectPaymentMethodRequest struct {
	PaymentMethodID string `json:"paymentMethodId"`
}

type ApplyPromoRequest struct {
	Code string `json:"code"`
}

type NotesRequest struct {
	Notes string `json:"notes"`
}

type UpdateStatusRequest struct {
	Status model.TransactionStatus `json:"status"`
}

type UpdateRoleRequest struct {
	Role model.Role `json:"role"`
}

type ActivityRequest struct {
	CategoryID   string `json:"categoryId"`
	Title        string `json:"title"`
	Description  string `json:"description"`
	City         string `json:"city"`
	Price        string `json:"price"`
	ImageURL     string `json:"imageUrl"`
	Address      string `json:"address"`
	Province     string `json:"province"`
	Facilities   string `json:"facilities"`
	LocationMaps string `json:"location_maps"`
}

type PromoRequest struct {
	Name              string `json:"name"`
	Description       string `json:"description"`
	Code              string `json:"promo_code"`
	MinimumClaimPrice string `json:"minimum_claim_price"`
	DiscountPrice     string `json:"promo_discount_price"`
	ImageURL          string `json:"imageUrl"`
	TermsCondition    string `json:"terms_condition"`
}

// -------- views --------

type MessageResponse struct {
	Message    string `json:"message"`
	RedirectTo string `json:"redirectTo,omitempty"`
}

type SessionView struct {
	IsAuthenticated bool           `json:"isAuthenticated"`
	Role            model.Role     `json:"role"`
	Profile         *model.Profile `json:"profile,omitempty"`
}

type NavLink struct {
	To    string `json:"to"`
	Label string `json:"label"`
}

type NavView struct {
	Brand             string    `json:"brand"`
	DisplayName       string    `json:"displayName"`
	IsLoggedIn        bool      `json:"isLoggedIn"`
	IsAdmin           bool      `json:"isAdmin"`
	CartCount         int       `json:"cartCount"`
	NotificationCount int       `json:"notificationCount"`
	NotificationBadge string    `json:"notificationBadge,omitempty"`
	Links             []NavLink `json:"links"`
}

type CartView struct {
	Items          []model.CartLineItem `json:"items"`
	TotalQuantity  int                  `json:"totalQuantity"`
	TotalPrice     decimal.Decimal      `json:"totalPrice"`
	TotalPriceText string               `json:"totalPriceText"`
}

type BatchItemResult struct {
	ID    string `json:"id"`
	OK    bool   `json:"ok"`
	Error string `json:"error,omitempty"`
}

type ClearCartResponse struct {
	Message string            `json:"message"`
	Results []BatchItemResult `json:"results"`
	Failed  int               `json:"failed"`
}

type TotalsView struct {
	Subtotal     decimal.Decimal `json:"subtotal"`
	Discount     decimal.Decimal `json:"discount"`
	Total        decimal.Decimal `json:"total"`
	SubtotalText string          `json:"subtotalText"`
	DiscountText string          `json:"discountText"`
	TotalText    string          `json:"totalText"`
}

type CheckoutView struct {
	State           string                `json:"state"`
	Items           []model.CartLineItem  `json:"items"`
	PaymentMethods  []model.PaymentMethod `json:"paymentMethods"`
	PaymentMethodID string                `json:"paymentMethodId,omitempty"`
	PromoCode       string                `json:"promoCode,omitempty"`
	Notes           string                `json:"notes,omitempty"`
	Totals          TotalsView            `json:"totals"`
	LastError       string                `json:"lastError,omitempty"`
	TransactionID   string                `json:"transactionId,omitempty"`
}

type SubmitCheckoutResponse struct {
	Message       string     `json:"message"`
	TransactionID string     `json:"transactionId"`
	Totals        TotalsView `json:"totals"`
	RedirectTo    string     `json:"redirectTo"`
}

type TransactionView struct {
	model.Transaction
	TotalAmountText   string                `json:"totalAmountText"`
	PaymentMethodName string                `json:"paymentMethodName"`
	CreatedAtText     string                `json:"createdAtText"`
	Actionable        bool                  `json:"actionable"`
	CheckoutTotals    *model.CheckoutTotals `json:"checkoutTotals,omitempty"`
	DisplayTotal      decimal.Decimal       `json:"displayTotal"`
	DisplayTotalText  string                `json:"displayTotalText"`
}

type TransactionListView struct {
	Filter       string            `json:"filter"`
	Count        int               `json:"count"`
	Revenue      decimal.Decimal   `json:"revenue"`
	RevenueText  string            `json:"revenueText"`
	Transactions []TransactionView `json:"transactions"`
}

type StatusCounts struct {
	Pending   int `json:"pending"`
	Success   int `json:"success"`
	Failed    int `json:"failed"`
	Cancelled int `json:"cancelled"`
}

type DashboardView struct {
	UserCount        int               `json:"userCount"`
	ActivityCount    int               `json:"activityCount"`
	PromoCount       int               `json:"promoCount"`
	TransactionCount int               `json:"transactionCount"`
	Revenue          decimal.Decimal   `json:"revenue"`
	RevenueText      string            `json:"revenueText"`
	StatusCounts     StatusCounts      `json:"statusCounts"`
	Errors           map[string]string `json:"errors,omitempty"`
}

type HomeView struct {
	Promos     []model.Promo    `json:"promos"`
	Activities []model.Activity `json:"activities"`
	Categories []model.Category `json:"categories"`
}

type ActivityListView struct {
	Activities []model.Activity `json:"activities"`
	Promos     []model.Promo    `json:"promos"`
}
