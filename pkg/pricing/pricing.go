package pricing

import (
	"time"

	"github.com/shopspring/decimal"
)

// ExpiryWarningDays is the window used to flag products as expiring soon.
const ExpiryWarningDays = 7

var oneHundred = decimal.NewFromInt(100)

// EffectivePrice applies the percentage offer to the base price. The result
// is exact decimal arithmetic; it becomes a permanent financial record when
// checkout snapshots it into an order item.
func EffectivePrice(basePrice decimal.Decimal, offerPercent int) decimal.Decimal {
	if offerPercent <= 0 {
		return basePrice
	}
	remaining := oneHundred.Sub(decimal.NewFromInt(int64(offerPercent)))
	return basePrice.Mul(remaining).Div(oneHundred)
}

// IsExpired reports whether the expiry date lies strictly before asOf.
// Products without an expiry date never expire.
func IsExpired(expiryDate *time.Time, asOf time.Time) bool {
	if expiryDate == nil {
		return false
	}
	return expiryDate.Before(asOf)
}

// IsExpiringSoon reports whether the expiry date falls within the warning
// window, inclusive of today.
func IsExpiringSoon(expiryDate *time.Time, asOf time.Time) bool {
	if expiryDate == nil {
		return false
	}
	until := expiryDate.Sub(asOf)
	if until < 0 {
		return false
	}
	return until <= ExpiryWarningDays*24*time.Hour
}
