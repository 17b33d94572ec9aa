package symbol

import (
	"context"
	"fmt"
	"io"
	"mime"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	qrcode "github.com/skip2/go-qrcode"
)

// DefaultQRSize is the edge length in pixels when none is given.
const DefaultQRSize = 128

const maxQRImageBytes = 1 << 20

// QREncoder renders a QR code for a value.
type QREncoder interface {
	EncodeQR(ctx context.Context, value string, size int) (Image, error)
}

// LocalQR renders QR codes in-process at medium error correction.
type LocalQR struct{}

// EncodeQR implements QREncoder.
func (q LocalQR) EncodeQR(ctx context.Context, value string, size int) (Image, error) {
	if value == "" {
		return Image{}, &EncodingError{Symbology: "QR", Value: value, Err: ErrEmptyValue}
	}
	if err := ctx.Err(); err != nil {
		return Image{}, err
	}
	if size <= 0 {
		size = DefaultQRSize
	}
	data, err := qrcode.Encode(value, qrcode.Medium, size)
	if err != nil {
		return Image{}, &EncodingError{Symbology: "QR", Value: value, Err: err}
	}
	return Image{MIME: "image/png", Data: data}, nil
}

// RemoteQR fetches QR images from an HTTP service.
type RemoteQR struct {
	client      *http.Client
	urlTemplate string
}

// NewRemoteQR creates a RemoteQR. urlTemplate holds "{data}" and "{size}" placeholders.
func NewRemoteQR(client *http.Client, urlTemplate string) *RemoteQR {
	if client == nil {
		client = http.DefaultClient
	}
	return &RemoteQR{client: client, urlTemplate: urlTemplate}
}

// URL returns the request URL for value.
func (q *RemoteQR) URL(value string, size int) string {
	if size <= 0 {
		size = DefaultQRSize
	}
	return strings.NewReplacer(
		"{data}", url.QueryEscape(value),
		"{size}", strconv.Itoa(size),
	).Replace(q.urlTemplate)
}

// EncodeQR implements QREncoder.
func (q *RemoteQR) EncodeQR(ctx context.Context, value string, size int) (Image, error) {
	if value == "" {
		return Image{}, &EncodingError{Symbology: "QR", Value: value, Err: ErrEmptyValue}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, q.URL(value, size), nil)
	if err != nil {
		return Image{}, fmt.Errorf("%w: %v", ErrServiceUnavailable, err)
	}

	resp, err := q.client.Do(req)
	if err != nil {
		return Image{}, fmt.Errorf("%w: %v", ErrServiceUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return Image{}, fmt.Errorf("%w: status %d", ErrServiceUnavailable, resp.StatusCode)
	}

	mediaType, _, err := mime.ParseMediaType(resp.Header.Get("Content-Type"))
	if err != nil || !strings.HasPrefix(mediaType, "image/") {
		return Image{}, fmt.Errorf("%w: unexpected content type %q", ErrServiceUnavailable, resp.Header.Get("Content-Type"))
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxQRImageBytes))
	if err != nil {
		return Image{}, fmt.Errorf("%w: %v", ErrServiceUnavailable, err)
	}
	if len(data) == 0 {
		return Image{}, fmt.Errorf("%w: empty body", ErrServiceUnavailable)
	}
	return Image{MIME: mediaType, Data: data}, nil
}
