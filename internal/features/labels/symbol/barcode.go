// Package symbol encodes tracking identifiers into machine-readable symbols: CODE128 barcodes
// drawn on vector or raster surfaces, and QR codes rendered locally or by a remote service.
package symbol

import (
	"fmt"

	"github.com/boombuler/barcode/code128"
)

// BarcodeOptions controls the geometry of a drawn barcode.
type BarcodeOptions struct {
	// ModuleWidth is the width of the narrowest bar in pixels.
	ModuleWidth float64 `json:"module_width"`
	// Height is the bar height in pixels.
	Height int `json:"height"`
	// ShowText prints the encoded value under the bars.
	ShowText bool `json:"show_text"`
	// QuietZone is the blank margin on each side, in modules.
	QuietZone int `json:"quiet_zone"`
}

// DefaultBarcodeOptions is used for zero-valued options.
var DefaultBarcodeOptions = BarcodeOptions{ModuleWidth: 2, Height: 60, ShowText: true, QuietZone: 10}

func (o BarcodeOptions) withDefaults() BarcodeOptions {
	if o.ModuleWidth <= 0 {
		o.ModuleWidth = DefaultBarcodeOptions.ModuleWidth
	}
	if o.Height <= 0 {
		o.Height = DefaultBarcodeOptions.Height
	}
	if o.QuietZone < 0 {
		o.QuietZone = 0
	}
	return o
}

// Surface receives an encoded barcode and draws it.
type Surface interface {
	// Draw renders modules (true is a bar) left to right, with text as the human-readable line.
	Draw(modules []bool, text string, opts BarcodeOptions) error
}

// EncodeBarcode encodes value as CODE128 and draws it on target.
// Only printable ASCII is accepted.
func EncodeBarcode(value string, target Surface, opts BarcodeOptions) error {
	if value == "" {
		return &EncodingError{Symbology: "CODE128", Value: value, Err: ErrEmptyValue}
	}
	for i, r := range value {
		if r < 0x20 || r > 0x7e {
			return &EncodingError{
				Symbology: "CODE128",
				Value:     value,
				Err:       fmt.Errorf("%w %q at position %d", ErrInvalidCharacter, r, i),
			}
		}
	}

	code, err := code128.Encode(value)
	if err != nil {
		return &EncodingError{Symbology: "CODE128", Value: value, Err: err}
	}

	width := code.Bounds().Dx()
	modules := make([]bool, width)
	for x := 0; x < width; x++ {
		r, _, _, _ := code.At(x, 0).RGBA()
		modules[x] = r == 0
	}

	return target.Draw(modules, value, opts.withDefaults())
}
