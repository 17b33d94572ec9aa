// Package tracking turns the tracking value stored on an order into an identifier
// that can always be printed and scanned.
//
// Orders that have not been booked with a carrier yet carry either no tracking value or a
// placeholder starting with "แบบ" ("template"). For those a surrogate identifier is derived
// from stable order fields, so reprinting the same order yields the same barcode.
package tracking

import (
	"strconv"
	"strings"
	"unicode/utf16"
)

// PlaceholderPrefix marks a tracking value that was never assigned by a carrier.
const PlaceholderPrefix = "แบบ"

// fallbackSeed is hashed when an order has no usable seed fields at all.
const fallbackSeed = "UNASSIGNED"

// Seed holds the order fields a surrogate identifier is derived from.
type Seed struct {
	OrderID       string
	OrderNumber   string
	RecipientName string
}

// String returns the concatenated seed: id+number when a number exists, else id+recipient name.
func (s Seed) String() string {
	id := strings.TrimSpace(s.OrderID)
	if number := strings.TrimSpace(s.OrderNumber); number != "" {
		return id + number
	}
	if seed := id + strings.TrimSpace(s.RecipientName); seed != "" {
		return seed
	}
	return fallbackSeed
}

// Format describes the shape of a carrier's identifiers.
type Format struct {
	// Prefix is the alpha prefix of surrogate identifiers (ASCII).
	Prefix string `json:"prefix"`
	// Length is the total identifier length including the prefix.
	Length int `json:"length"`
}

// Default is the format used when a template does not declare its own.
var Default = Format{Prefix: "FLE", Length: 12}

func (f Format) withDefaults() Format {
	if f.Prefix == "" {
		f.Prefix = Default.Prefix
	}
	f.Prefix = strings.ToUpper(f.Prefix)
	if f.Length <= len(f.Prefix) {
		f.Length = len(f.Prefix) + (Default.Length - len(Default.Prefix))
	}
	return f
}

// IsPlaceholder reports whether raw lacks a real carrier identifier.
func IsPlaceholder(raw string) bool {
	raw = strings.TrimSpace(raw)
	return raw == "" || strings.HasPrefix(raw, PlaceholderPrefix)
}

// Normalize returns raw unchanged when it is a real identifier. Otherwise it returns the
// surrogate for seed and surrogate=true. The result is never empty.
func (f Format) Normalize(raw string, seed Seed) (id string, surrogate bool) {
	if v := strings.TrimSpace(raw); !IsPlaceholder(v) {
		return v, false
	}
	return f.Surrogate(seed), true
}

// Surrogate derives the deterministic identifier for seed: prefix followed by the
// zero-padded sum of the seed's UTF-16 code units, keeping the rightmost digits when
// the sum is wider than the slot.
func (f Format) Surrogate(seed Seed) string {
	f = f.withDefaults()
	width := f.Length - len(f.Prefix)

	digits := strconv.FormatUint(checksum(seed.String()), 10)
	if len(digits) > width {
		digits = digits[len(digits)-width:]
	} else {
		digits = strings.Repeat("0", width-len(digits)) + digits
	}
	return f.Prefix + digits
}

// Normalize applies the Default format.
func Normalize(raw string, seed Seed) (string, bool) {
	return Default.Normalize(raw, seed)
}

func checksum(s string) uint64 {
	var sum uint64
	for _, u := range utf16.Encode([]rune(s)) {
		sum += uint64(u)
	}
	return sum
}
