package templates

import (
	"slices"
	"strings"

	"label-printer/internal/features/labels/symbol"
	"label-printer/internal/features/labels/tracking"
)

const (
	KeyFlash       = "flash"
	KeyJNT         = "jnt"
	KeyTikTokFlash = "tiktok-flash"
	KeyStandard    = "standard"
)

// carrier is a layout before it is fitted to a page format.
type carrier struct {
	base          Template
	defaultFormat PageFormat
}

// Catalog resolves carrier keys and page formats to templates. It is read-only after construction.
type Catalog struct {
	carriers map[string]carrier
	aliases  map[string]string
	fallback string
}

// NewCatalog returns the built-in carrier catalog.
func NewCatalog() *Catalog {
	full := []Section{
		SectionHeader, SectionBarcode, SectionQR, SectionSender,
		SectionRecipient, SectionCOD, SectionProducts, SectionFooter,
	}
	noQR := slices.DeleteFunc(slices.Clone(full), func(s Section) bool { return s == SectionQR })

	return &Catalog{
		carriers: map[string]carrier{
			KeyFlash: {
				defaultFormat: Format100x150,
				base: Template{
					Key:         KeyFlash,
					DisplayName: "Flash Express",
					HeaderText:  "FLASH EXPRESS",
					LogoText:    "FLASH",
					AccentColor: "#FFD400",
					Tracking:    tracking.Format{Prefix: "FLE", Length: 12},
					Barcode:     symbol.BarcodeOptions{ModuleWidth: 2, Height: 70, ShowText: true, QuietZone: 10},
					QRSize:      120,
					Sections:    full,
				},
			},
			KeyJNT: {
				defaultFormat: Format100x150,
				base: Template{
					Key:         KeyJNT,
					DisplayName: "J&T Express",
					HeaderText:  "J&T EXPRESS",
					LogoText:    "J&T",
					AccentColor: "#E3001B",
					Tracking:    tracking.Format{Prefix: "JT", Length: 12},
					Barcode:     symbol.BarcodeOptions{ModuleWidth: 2, Height: 80, ShowText: true, QuietZone: 10},
					Sections:    noQR,
				},
			},
			KeyTikTokFlash: {
				defaultFormat: Format100x150,
				base: Template{
					Key:          KeyTikTokFlash,
					DisplayName:  "TikTok Shop x Flash Express",
					HeaderText:   "TikTok Shop",
					LogoText:     "TikTok Shop | FLASH",
					AccentColor:  "#111111",
					Tracking:     tracking.Format{Prefix: "FLE", Length: 12},
					Barcode:      symbol.BarcodeOptions{ModuleWidth: 2, Height: 70, ShowText: true, QuietZone: 10},
					QRSize:       110,
					PickupMarker: true,
					Sections:     full,
				},
			},
			KeyStandard: {
				defaultFormat: Format100x150,
				base: Template{
					Key:         KeyStandard,
					DisplayName: "Standard",
					HeaderText:  "ใบปะหน้าพัสดุ",
					LogoText:    "SHIPPING",
					AccentColor: "#333333",
					Tracking:    tracking.Default,
					Barcode:     symbol.BarcodeOptions{ModuleWidth: 2, Height: 60, ShowText: true, QuietZone: 10},
					Sections:    noQR,
				},
			},
		},
		aliases: map[string]string{
			"j&t":           KeyJNT,
			"jt":            KeyJNT,
			"jnt-express":   KeyJNT,
			"flash-express": KeyFlash,
			"kerry-flash":   KeyFlash,
			"tiktok":        KeyTikTokFlash,
			"tiktokshop":    KeyTikTokFlash,
		},
		fallback: KeyStandard,
	}
}

// Resolve maps a requested carrier key to a catalog key. Unknown keys resolve to the fallback.
func (c *Catalog) Resolve(key string) string {
	key = strings.ToLower(strings.TrimSpace(key))
	if alias, ok := c.aliases[key]; ok {
		key = alias
	}
	if _, ok := c.carriers[key]; ok {
		return key
	}
	return c.fallback
}

// Select returns the template for carrierKey fitted to format. An unknown or empty format
// uses the carrier's default. Select never fails.
func (c *Catalog) Select(carrierKey string, format PageFormat) Template {
	entry := c.carriers[c.Resolve(carrierKey)]
	if parsed, ok := ParsePageFormat(string(format)); ok {
		format = parsed
	} else {
		format = entry.defaultFormat
	}
	return fit(entry.base, format)
}

// Keys returns the catalog keys in stable order.
func (c *Catalog) Keys() []string {
	keys := make([]string, 0, len(c.carriers))
	for k := range c.carriers {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

// List returns every carrier in its default format, ordered by key.
func (c *Catalog) List() []Template {
	keys := c.Keys()
	out := make([]Template, 0, len(keys))
	for _, k := range keys {
		out = append(out, c.Select(k, ""))
	}
	return out
}

// fit adjusts a carrier layout to the space a page format offers.
func fit(t Template, format PageFormat) Template {
	t.Format = format
	t.Page = format.Box()
	t.Sections = slices.Clone(t.Sections)

	switch format {
	case Format100x150:
		t.MaxProductRows = 6
	case Format100x100:
		t.MaxProductRows = 3
		t.Barcode.Height = min(t.Barcode.Height, 55)
		t.QRSize = min(t.QRSize, 90)
	case Format100x75:
		t.MaxProductRows = 1
		t.Barcode.Height = min(t.Barcode.Height, 40)
		t.Barcode.ModuleWidth = min(t.Barcode.ModuleWidth, 1.5)
		t.QRSize = min(t.QRSize, 64)
		t.Sections = slices.DeleteFunc(t.Sections, func(s Section) bool { return s == SectionSender })
	case FormatAuto:
		t.MaxProductRows = 0
	}
	return t
}
