package client

import (
	"encoding/json"
	"travel-journal-bff/internal/model"

	"github.com/shopspring/decimal"
)

// envelope is the {code, status, message, data} wrapper every endpoint uses.
// Login additionally carries the token next to data.
type envelope struct {
	Code    any             `json:"code"`
	Status  string          `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Token   string          `json:"token"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginResult struct {
	Token   string
	Profile *model.Profile
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

type ActivityInput struct {
	CategoryID   string      `json:"categoryId,omitempty"`
	Title        string      `json:"title"`
	Description  string      `json:"description"`
	City         string      `json:"city"`
	Location     string      `json:"location"`
	Price        json.Number `json:"price"`
	ImageURL     string      `json:"imageUrl,omitempty"`
	ImageURLs    []string    `json:"imageUrls"`
	Address      string      `json:"address,omitempty"`
	Province     string      `json:"province,omitempty"`
	Facilities   string      `json:"facilities,omitempty"`
	LocationMaps string      `json:"location_maps,omitempty"`
}

type PromoInput struct {
	Title             string      `json:"title"`
	Name              string      `json:"name"`
	Description       string      `json:"description"`
	Code              string      `json:"promo_code"`
	TermsCondition    string      `json:"terms_condition"`
	MinimumClaimPrice json.Number `json:"minimum_claim_price,omitempty"`
	DiscountPrice     json.Number `json:"promo_discount_price,omitempty"`
	ImageURL          string      `json:"imageUrl,omitempty"`
}

// Number renders a decimal as a bare JSON number.
func Number(d decimal.Decimal) json.Number {
	return json.Number(d.String())
}

type CreateTransactionRequest struct {
	CartIDs         []string `json:"cartIds"`
	PaymentMethodID string   `json:"paymentMethodId"`
	PromoCode       *string  `json:"promoCode"`
	Notes           string   `json:"notes"`
}

type CreatedTransaction struct {
	ID string `json:"id"`
}

type updateCartRequest struct {
	Quantity int `json:"quantity"`
}

type updateStatusRequest struct {
	Status model.TransactionStatus `json:"status"`
}

type updateRoleRequest struct {
	Role model.Role `json:"role"`
}
