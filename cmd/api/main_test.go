package main

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"label-printer/internal/core/config"

	"github.com/skip2/go-qrcode"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestNewQREncoder_Local verifies that no service URL keeps QR rendering in-process.
func TestNewQREncoder_Local(t *testing.T) {
	assert.Nil(t, newQREncoder(config.LabelsConfig{}, ""))
}

// TestNewQREncoder_Remote verifies the QR service is reached on its own client.
func TestNewQREncoder_Remote(t *testing.T) {
	png, err := qrcode.Encode("FLE000000448", qrcode.Medium, 64)
	require.NoError(t, err)

	var hits atomic.Int32
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		assert.Equal(t, "FLE000000448", r.URL.Query().Get("data"))
		w.Header().Set("Content-Type", "image/png")
		w.Write(png)
	}))
	defer ts.Close()

	qr := newQREncoder(config.LabelsConfig{
		QRServiceURL:            ts.URL + "/qr?data={data}&size={size}",
		QRServiceTimeoutSeconds: 2,
	}, "")
	require.NotNil(t, qr)

	for i := 0; i < 5; i++ {
		img, err := qr.EncodeQR(context.Background(), "FLE000000448", 64)
		require.NoError(t, err)
		assert.Equal(t, "image/png", img.MIME)
	}
	assert.Equal(t, int32(5), hits.Load())
}
