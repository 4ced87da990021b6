package model

import (
	"fmt"
	"strings"
	"time"
)

// ExpDateLayout is the accepted expDate input format: month, day and year
// separated by single spaces, e.g. "1 31 2030" or "01 31 2030".
const ExpDateLayout = "1 2 2006"

// ExpiringWindow is how long before its expiration date a product counts as
// expiring soon.
const ExpiringWindow = 3 * 24 * time.Hour

// Product represents one item in the household inventory.
type Product struct {
	ID       string    `json:"id"`
	ProdType string    `json:"prodType"`
	ExpDate  time.Time `json:"expDate"`
	Note     *string   `json:"note,omitempty"`
}

// IsExpired reports whether the product's expiration date is strictly before now.
func (p Product) IsExpired(now time.Time) bool {
	return p.ExpDate.Before(now)
}

// WillExpireSoon reports whether now falls strictly inside the window that
// opens ExpiringWindow before the expiration date and closes on it.
func (p Product) WillExpireSoon(now time.Time) bool {
	target := p.ExpDate.Add(-ExpiringWindow)
	return target.Before(now) && now.Before(p.ExpDate)
}

// ProductRequest is the payload of POST /add-product.
type ProductRequest struct {
	ProdType string  `json:"prodType" validate:"required,max=50"`
	ExpDate  string  `json:"expDate" validate:"required,expdate"`
	Note     *string `json:"note" validate:"omitempty,max=50"`
}

// DeleteProductRequest is the payload of POST /delete-product.
type DeleteProductRequest struct {
	ProdID string `json:"prodId" validate:"required"`
}

// NormaliseProdType returns the canonical stored form of a product type.
func NormaliseProdType(prodType string) string {
	return strings.ToLower(prodType)
}

// ParseExpDate parses an expiration date in ExpDateLayout as UTC midnight.
func ParseExpDate(value string) (time.Time, error) {
	t, err := time.Parse(ExpDateLayout, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid expiration date %q: %w", value, err)
	}
	return t, nil
}
