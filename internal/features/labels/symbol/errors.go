package symbol

import (
	"errors"
	"fmt"
)

var (
	// ErrEmptyValue is returned when there is nothing to encode.
	ErrEmptyValue = errors.New("empty value")
	// ErrInvalidCharacter is returned when the value holds a character the symbology cannot carry.
	ErrInvalidCharacter = errors.New("invalid character")
	// ErrServiceUnavailable is returned when the remote QR service cannot produce an image.
	ErrServiceUnavailable = errors.New("qr service unavailable")
)

// EncodingError describes a value that could not be turned into a symbol.
type EncodingError struct {
	Symbology string
	Value     string
	Err       error
}

func (e *EncodingError) Error() string {
	return fmt.Sprintf("%s encoding of %q failed: %v", e.Symbology, e.Value, e.Err)
}

func (e *EncodingError) Unwrap() error {
	return e.Err
}

// Reason returns the short cause of err, without the value, for display on a label.
func Reason(err error) string {
	var encErr *EncodingError
	if errors.As(err, &encErr) {
		return encErr.Err.Error()
	}
	return err.Error()
}

// BarcodePlaceholder is the inline text shown instead of a barcode that failed to encode.
func BarcodePlaceholder(err error) string {
	return "บาร์โค้ดไม่ถูกต้อง: " + Reason(err)
}

// QRPlaceholder is the inline text shown instead of a QR code that failed to encode.
func QRPlaceholder(err error) string {
	return "QR ไม่พร้อมใช้งาน: " + Reason(err)
}
