package model

import "time"

// LocalEntry is one browser-local value: the server-side stand-in for a
// localStorage item, partitioned by the client id cookie.
type LocalEntry struct {
	ClientID  string `gorm:"primaryKey;size:64;not null"`
	EntryKey  string `gorm:"primaryKey;size:64;not null"`
	Value     string `gorm:"type:text;not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Storage keys, the same names the browser app uses.
const (
	KeyToken             = "token"
	KeyUserProfile       = "userProfile"
	KeyCartQuantities    = "travelapp_cart_quantities"
	KeyTransactionTotals = "travelapp_transaction_totals"
	KeyNotificationCount = "travelapp_notification_count"
)
