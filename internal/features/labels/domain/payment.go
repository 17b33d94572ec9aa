package domain

import (
	"strings"

	"github.com/shopspring/decimal"
)

var codTags = map[string]struct{}{
	"cod":              {},
	"cash_on_delivery": {},
	"cash-on-delivery": {},
	"เก็บเงินปลายทาง":  {},
}

// IsCashOnDelivery reports whether a payment method tag means the courier collects the amount.
func IsCashOnDelivery(method string) bool {
	_, ok := codTags[strings.ToLower(strings.TrimSpace(method))]
	return ok
}

// CODAmount returns the amount to collect: the order total for cash on delivery, otherwise zero.
func CODAmount(method string, total decimal.Decimal) decimal.Decimal {
	if !IsCashOnDelivery(method) || !total.IsPositive() {
		return decimal.Zero
	}
	return total
}
