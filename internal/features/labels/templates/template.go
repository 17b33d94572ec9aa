// Package templates holds the static catalog of carrier label layouts.
package templates

import (
	"fmt"
	"strings"

	"label-printer/internal/features/labels/symbol"
	"label-printer/internal/features/labels/tracking"
)

// PageFormat names a physical label size.
type PageFormat string

const (
	Format100x150 PageFormat = "100x150"
	Format100x100 PageFormat = "100x100"
	Format100x75  PageFormat = "100x75"
	// FormatAuto keeps the width and lets the height follow the content.
	FormatAuto PageFormat = "auto"
)

// Formats lists the supported page formats.
var Formats = []PageFormat{Format100x150, Format100x100, Format100x75, FormatAuto}

// ParsePageFormat accepts "100x150", "100X150", "100×150" and "100x150mm". Unknown values report false.
func ParsePageFormat(s string) (PageFormat, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	s = strings.ReplaceAll(s, "×", "x")
	s = strings.TrimSuffix(s, "mm")
	for _, f := range Formats {
		if string(f) == s {
			return f, true
		}
	}
	return "", false
}

// PageBox is a page size in millimetres. HeightMM 0 means the page grows with its content.
type PageBox struct {
	WidthMM  float64 `json:"width_mm"`
	HeightMM float64 `json:"height_mm"`
}

// Box returns the physical size of f.
func (f PageFormat) Box() PageBox {
	switch f {
	case Format100x100:
		return PageBox{WidthMM: 100, HeightMM: 100}
	case Format100x75:
		return PageBox{WidthMM: 100, HeightMM: 75}
	case FormatAuto:
		return PageBox{WidthMM: 100}
	default:
		return PageBox{WidthMM: 100, HeightMM: 150}
	}
}

// Auto reports whether the height flows to content.
func (b PageBox) Auto() bool {
	return b.HeightMM <= 0
}

// CSSSize returns the value of the @page size property, or "" for auto height.
func (b PageBox) CSSSize() string {
	if b.Auto() {
		return ""
	}
	return fmt.Sprintf("%gmm %gmm", b.WidthMM, b.HeightMM)
}

// Inches converts the box for PDF engines. Auto height falls back to the tallest format.
func (b PageBox) Inches() (width, height float64) {
	const mmPerInch = 25.4
	h := b.HeightMM
	if b.Auto() {
		h = Format100x150.Box().HeightMM
	}
	return b.WidthMM / mmPerInch, h / mmPerInch
}

// Section identifies a block of a label page.
type Section string

const (
	SectionHeader    Section = "header"
	SectionBarcode   Section = "barcode"
	SectionQR        Section = "qr"
	SectionSender    Section = "sender"
	SectionRecipient Section = "recipient"
	SectionCOD       Section = "cod"
	SectionProducts  Section = "products"
	SectionFooter    Section = "footer"
)

// Template is the layout of one carrier in one page format.
type Template struct {
	Key          string                `json:"key"`
	DisplayName  string                `json:"display_name"`
	HeaderText   string                `json:"header_text"`
	LogoText     string                `json:"logo_text"`
	AccentColor  string                `json:"accent_color"`
	Format       PageFormat            `json:"format"`
	Page         PageBox               `json:"page"`
	Tracking     tracking.Format       `json:"tracking"`
	Barcode      symbol.BarcodeOptions `json:"barcode"`
	QRSize       int                   `json:"qr_size,omitempty"`
	PickupMarker bool                  `json:"pickup_marker"`
	// MaxProductRows limits the product table; 0 shows every item.
	MaxProductRows int       `json:"max_product_rows"`
	Sections       []Section `json:"sections"`
}

// Has reports whether the layout declares s.
func (t Template) Has(s Section) bool {
	for _, section := range t.Sections {
		if section == s {
			return true
		}
	}
	return false
}

// ShowsQR reports whether labels of this template carry a QR code.
func (t Template) ShowsQR() bool {
	return t.Has(SectionQR)
}

// SymbolSpec returns what the symbol encoder must produce for this template.
func (t Template) SymbolSpec() symbol.Spec {
	return symbol.Spec{Barcode: t.Barcode, QR: t.ShowsQR(), QRSize: t.QRSize}
}
