package model

import "github.com/shopspring/decimal"

type Category struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	ImageURL string `json:"imageUrl,omitempty"`
}

type Activity struct {
	ID            string          `json:"id"`
	CategoryID    string          `json:"categoryId,omitempty"`
	Title         string          `json:"title"`
	Description   string          `json:"description,omitempty"`
	ImageURLs     []string        `json:"imageUrls,omitempty"`
	Price         decimal.Decimal `json:"price"`
	PriceDiscount decimal.Decimal `json:"price_discount"`
	Rating        float64         `json:"rating,omitempty"`
	TotalReviews  int             `json:"total_reviews,omitempty"`
	Facilities    string          `json:"facilities,omitempty"`
	Address       string          `json:"address,omitempty"`
	Province      string          `json:"province,omitempty"`
	City          string          `json:"city,omitempty"`
	LocationMaps  string          `json:"location_maps,omitempty"`
	Category      *Category       `json:"category,omitempty"`
}

type Promo struct {
	ID                string          `json:"id"`
	Title             string          `json:"title"`
	Description       string          `json:"description,omitempty"`
	ImageURL          string          `json:"imageUrl,omitempty"`
	TermsCondition    string          `json:"terms_condition,omitempty"`
	Code              string          `json:"promo_code"`
	DiscountPrice     decimal.Decimal `json:"promo_discount_price"`
	MinimumClaimPrice decimal.Decimal `json:"minimum_claim_price"`
}

type PaymentMethod struct {
	ID                   string `json:"id"`
	Name                 string `json:"name"`
	VirtualAccountNumber string `json:"virtual_account_number,omitempty"`
	VirtualAccountName   string `json:"virtual_account_name,omitempty"`
	ImageURL             string `json:"imageUrl,omitempty"`
}

// Label is what the admin table shows for a payment method.
func (p *PaymentMethod) Label() string {
	if p == nil {
		return "Unknown method"
	}
	if p.Name != "" {
		return p.Name
	}
	if p.VirtualAccountName != "" {
		return p.VirtualAccountName
	}
	return "Unknown method"
}

type User struct {
	ID                string `json:"id"`
	Name              string `json:"name"`
	Email             string `json:"email"`
	Role              Role   `json:"role"`
	PhoneNumber       string `json:"phoneNumber,omitempty"`
	ProfilePictureURL string `json:"profilePictureUrl,omitempty"`
}

type Notification struct {
	ID        string `json:"id"`
	Title     string `json:"title,omitempty"`
	Message   string `json:"message,omitempty"`
	IsRead    bool   `json:"isRead,omitempty"`
	CreatedAt string `json:"createdAt,omitempty"`
}
