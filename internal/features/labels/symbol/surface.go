package symbol

import (
	"encoding/base64"
	"fmt"
	"html"
	"strings"
)

const textHeight = 16

// SVGSurface draws a barcode as inline SVG markup.
type SVGSurface struct {
	markup string
}

// Draw implements Surface.
func (s *SVGSurface) Draw(modules []bool, text string, opts BarcodeOptions) error {
	opts = opts.withDefaults()
	quiet := float64(opts.QuietZone) * opts.ModuleWidth
	width := float64(len(modules))*opts.ModuleWidth + 2*quiet
	height := opts.Height
	if opts.ShowText {
		height += textHeight
	}

	var b strings.Builder
	fmt.Fprintf(&b, `<svg xmlns="http://www.w3.org/2000/svg" class="barcode" width="%s" height="%d" viewBox="0 0 %s %d" shape-rendering="crispEdges">`,
		num(width), height, num(width), height)
	fmt.Fprintf(&b, `<rect width="%s" height="%d" fill="#fff"/>`, num(width), height)

	for x := 0; x < len(modules); {
		if !modules[x] {
			x++
			continue
		}
		run := x
		for run < len(modules) && modules[run] {
			run++
		}
		fmt.Fprintf(&b, `<rect x="%s" y="0" width="%s" height="%d" fill="#000"/>`,
			num(quiet+float64(x)*opts.ModuleWidth), num(float64(run-x)*opts.ModuleWidth), opts.Height)
		x = run
	}

	if opts.ShowText {
		fmt.Fprintf(&b, `<text x="%s" y="%d" font-family="monospace" font-size="14" text-anchor="middle">%s</text>`,
			num(width/2), opts.Height+textHeight-3, html.EscapeString(text))
	}
	b.WriteString(`</svg>`)

	s.markup = b.String()
	return nil
}

// Markup returns the last drawn SVG.
func (s *SVGSurface) Markup() string {
	return s.markup
}

func num(f float64) string {
	return strings.TrimSuffix(strings.TrimRight(fmt.Sprintf("%.2f", f), "0"), ".")
}

// Image is an encoded bitmap.
type Image struct {
	MIME string
	Data []byte
}

// Empty reports whether the image holds no data.
func (i Image) Empty() bool {
	return len(i.Data) == 0
}

// DataURI returns the image inlined as a data URI, or "" when empty.
func (i Image) DataURI() string {
	if i.Empty() {
		return ""
	}
	mime := i.MIME
	if mime == "" {
		mime = "image/png"
	}
	return "data:" + mime + ";base64," + base64.StdEncoding.EncodeToString(i.Data)
}
