package symbol

import (
	"context"

	"label-printer/internal/core/logger"

	"go.uber.org/zap"
)

// Spec selects which symbols to produce for a label and how they look.
type Spec struct {
	Barcode BarcodeOptions
	QR      bool
	QRSize  int
}

// Symbols is the outcome of encoding one label. Failures are kept per symbol
// so that a bad value only affects its own slot.
type Symbols struct {
	Value      string
	BarcodeSVG string
	BarcodeErr error
	QR         Image
	QRErr      error
	QREnabled  bool
}

// Encoder produces every symbol a label needs.
type Encoder struct {
	qr QREncoder
}

// NewEncoder creates an Encoder. A nil qr renders QR codes locally.
func NewEncoder(qr QREncoder) *Encoder {
	if qr == nil {
		qr = LocalQR{}
	}
	return &Encoder{qr: qr}
}

// Encode encodes value according to spec. It never fails as a whole.
func (e *Encoder) Encode(ctx context.Context, value string, spec Spec) Symbols {
	out := Symbols{Value: value, QREnabled: spec.QR}

	surface := &SVGSurface{}
	if err := EncodeBarcode(value, surface, spec.Barcode); err != nil {
		logger.Get().Warn("Barcode encoding failed", zap.String("value", value), zap.Error(err))
		out.BarcodeErr = err
	} else {
		out.BarcodeSVG = surface.Markup()
	}

	if spec.QR {
		img, err := e.qr.EncodeQR(ctx, value, spec.QRSize)
		if err != nil {
			logger.Get().Warn("QR encoding failed", zap.String("value", value), zap.Error(err))
			out.QRErr = err
		} else {
			out.QR = img
		}
	}

	return out
}
