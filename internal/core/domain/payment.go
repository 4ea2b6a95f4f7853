package domain

import (
	"math"
	"time"
)

// minorUnitsPerMajor assumes a two-decimal currency.
const minorUnitsPerMajor = 100

// PaymentRecord is the durable trace of a completed charge. Records are append-only.
type PaymentRecord struct {
	ID            string    `json:"_id,omitempty"`
	Email         string    `json:"email"`
	Price         float64   `json:"price"`
	TransactionID string    `json:"transactionId"`
	CartItemIDs   []string  `json:"cartItems"`
	MenuItemIDs   []string  `json:"menuItems,omitempty"`
	ItemNames     []string  `json:"itemNames,omitempty"`
	CreatedAt     time.Time `json:"date"`
}

// MinorUnits converts a major-unit price to minor units, rounding to the nearest unit.
func MinorUnits(price float64) int64 {
	return int64(math.Round(price * minorUnitsPerMajor))
}

// CleanupTask describes cart items that still have to be removed after a payment was recorded.
type CleanupTask struct {
	ID          string    `json:"id"`
	PaymentID   string    `json:"payment_id"`
	Email       string    `json:"email"`
	CartItemIDs []string  `json:"cart_item_ids"`
	Attempts    int       `json:"attempts"`
	CreatedAt   time.Time `json:"created_at"`
}
