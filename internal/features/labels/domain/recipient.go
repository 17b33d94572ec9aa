package domain

import (
	"regexp"
	"strings"

	orders "label-printer/internal/features/orders/domain"

	"golang.org/x/text/unicode/norm"
)

const (
	// UnknownRecipientName is printed when neither the customer nor the order names a recipient.
	UnknownRecipientName = "ไม่ระบุชื่อผู้รับ"
	// UnknownAddress is printed when no address could be assembled.
	UnknownAddress = "ไม่ระบุที่อยู่"
	// NoPhone is displayed for an empty phone number.
	NoPhone = "-"
)

// Recipient is the destination block of a label.
type Recipient struct {
	Name        string `json:"name"`
	Phone       string `json:"phone"`
	AddressLine string `json:"address_line"`
}

// DisplayPhone returns the phone or "-" when there is none.
func (r Recipient) DisplayPhone() string {
	if r.Phone == "" {
		return NoPhone
	}
	return r.Phone
}

// AssembleRecipient merges the customer record with the order's own contact fields.
// The customer wins field by field. customer may be nil.
func AssembleRecipient(order orders.Order, customer *orders.Customer) Recipient {
	r := Recipient{}

	if customer != nil {
		r.Name = clean(customer.Name)
		r.Phone = clean(customer.Phone)
		r.AddressLine = joinParts(customer.AddressParts())
	}
	if r.Name == "" {
		r.Name = clean(order.CustomerName)
	}
	if r.Name == "" {
		r.Name = UnknownRecipientName
	}
	if r.Phone == "" {
		r.Phone = clean(order.CustomerPhone)
	}
	if r.AddressLine == "" {
		r.AddressLine = clean(order.ShippingAddress)
	}
	if r.AddressLine == "" {
		r.AddressLine = UnknownAddress
	}

	return r
}

// clean NFC-normalizes s and collapses runs of whitespace.
func clean(s string) string {
	return strings.Join(strings.Fields(norm.NFC.String(s)), " ")
}

func joinParts(parts []string) string {
	kept := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = clean(p); p != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, " ")
}

var (
	zonePrefixPattern = regexp.MustCompile(`(?i)(?:^|\s)(?:เขต|อำเภอ|อ\.|district)\s*([^\s,]+)`)
	zoneSuffixPattern = regexp.MustCompile(`(?i)([^\s,]+)\s+district\b`)
)

// ZoneHint extracts the district name used as a sorting code, or "" when the address has none.
// "<name> district" takes precedence over "district <name>", which would otherwise pick up the
// word after the district, usually the province.
func ZoneHint(address string) string {
	address = clean(address)
	if address == "" || address == UnknownAddress {
		return ""
	}
	if m := zoneSuffixPattern.FindStringSubmatch(address); m != nil {
		return m[1]
	}
	if m := zonePrefixPattern.FindStringSubmatch(address); m != nil {
		return m[1]
	}
	return ""
}
