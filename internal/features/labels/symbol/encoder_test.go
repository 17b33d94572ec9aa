package symbol

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

type stubQR struct {
	img   Image
	err   error
	calls int
}

func (s *stubQR) EncodeQR(ctx context.Context, value string, size int) (Image, error) {
	s.calls++
	return s.img, s.err
}

func TestEncoder_Encode(t *testing.T) {
	qr := &stubQR{img: Image{MIME: "image/png", Data: []byte{1}}}
	out := NewEncoder(qr).Encode(context.Background(), "FLX123", Spec{QR: true, QRSize: 80})

	assert.NoError(t, out.BarcodeErr)
	assert.NotEmpty(t, out.BarcodeSVG)
	assert.NoError(t, out.QRErr)
	assert.True(t, out.QREnabled)
	assert.Equal(t, []byte{1}, out.QR.Data)
	assert.Equal(t, 1, qr.calls)
}

func TestEncoder_SkipsQRWhenDisabled(t *testing.T) {
	qr := &stubQR{}
	out := NewEncoder(qr).Encode(context.Background(), "FLX123", Spec{})

	assert.False(t, out.QREnabled)
	assert.True(t, out.QR.Empty())
	assert.Zero(t, qr.calls)
}

func TestEncoder_ContainsFailures(t *testing.T) {
	qr := &stubQR{err: errors.New("boom")}
	out := NewEncoder(qr).Encode(context.Background(), "แบบ", Spec{QR: true})

	assert.ErrorIs(t, out.BarcodeErr, ErrInvalidCharacter)
	assert.Empty(t, out.BarcodeSVG)
	assert.EqualError(t, out.QRErr, "boom")
}

func TestNewEncoder_DefaultsToLocal(t *testing.T) {
	out := NewEncoder(nil).Encode(context.Background(), "FLX123", Spec{QR: true})
	assert.NoError(t, out.QRErr)
	assert.False(t, out.QR.Empty())
}
