package httpclient

import (
	"context"
	"fmt"
	"math"
	"net/http"
	"net/url"
	"strings"
	"time"

	"label-printer/internal/core/logger"

	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// RayIDHeader carries the inbound request id to upstream services.
const RayIDHeader = "X-Ray-ID"

type tokenKey struct{}

type rayIDKey struct{}

// WithToken stores the caller's bearer token so adapters can forward it upstream.
func WithToken(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, tokenKey{}, token)
}

// TokenFromContext returns the forwarded token, or "" if none was set.
func TokenFromContext(ctx context.Context) string {
	token, _ := ctx.Value(tokenKey{}).(string)
	return token
}

// BearerHeader formats an Authorization value. An empty token yields an empty header.
func BearerHeader(token string) string {
	token = strings.TrimSpace(token)
	if scheme, rest, ok := strings.Cut(token, " "); ok && strings.EqualFold(scheme, "Bearer") {
		token = strings.TrimSpace(rest)
	} else if strings.EqualFold(token, "Bearer") {
		token = ""
	}
	if token == "" {
		return ""
	}
	return "Bearer " + token
}

// WithRayID stores the request id propagated to upstream calls.
func WithRayID(ctx context.Context, rayID string) context.Context {
	return context.WithValue(ctx, rayIDKey{}, rayID)
}

// RayIDFromContext returns the propagated request id.
func RayIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(rayIDKey{}).(string)
	return id
}

// LoggingRoundTripper captures request details for debugging.
type LoggingRoundTripper struct {
	// Proxied is the underlying RoundTripper to execute the request.
	Proxied http.RoundTripper
}

// RoundTrip executes the request and logs details.
func (lrt *LoggingRoundTripper) RoundTrip(req *http.Request) (*http.Response, error) {
	start := time.Now()
	rayID := RayIDFromContext(req.Context())
	if rayID != "" && req.Header.Get(RayIDHeader) == "" {
		req = req.Clone(req.Context())
		req.Header.Set(RayIDHeader, rayID)
	}

	logger.Get().Debug("HTTP Request Started",
		zap.String("method", req.Method),
		zap.String("url", req.URL.String()),
		zap.String("ray_id", rayID),
	)

	resp, err := lrt.Proxied.RoundTrip(req)

	duration := time.Since(start)

	if err != nil {
		logger.Get().Error("HTTP Request Failed",
			zap.String("method", req.Method),
			zap.String("url", req.URL.String()),
			zap.String("ray_id", rayID),
			zap.Duration("duration", duration),
			zap.Error(err),
		)
		return nil, err
	}

	logger.Get().Debug("HTTP Request Completed",
		zap.String("method", req.Method),
		zap.String("url", req.URL.String()),
		zap.Int("status_code", resp.StatusCode),
		zap.Duration("duration", duration),
	)

	return resp, nil
}

// RateLimitRoundTripper delays requests so the upstream never sees more than the limiter allows.
type RateLimitRoundTripper struct {
	Proxied http.RoundTripper
	Limiter *rate.Limiter
}

// RoundTrip waits for a token and executes the request.
func (r *RateLimitRoundTripper) RoundTrip(req *http.Request) (*http.Response, error) {
	if err := r.Limiter.Wait(req.Context()); err != nil {
		return nil, fmt.Errorf("rate limiter: %w", err)
	}
	return r.Proxied.RoundTrip(req)
}

// Option customizes the client built by NewClient.
type Option func(*options)

type options struct {
	rps      float64
	proxyURL string
}

// WithRateLimit caps outbound requests per second. rps <= 0 disables the limiter.
func WithRateLimit(rps float64) Option {
	return func(o *options) { o.rps = rps }
}

// WithProxy routes requests through the given proxy URL (credentials allowed).
func WithProxy(proxyURL string) Option {
	return func(o *options) { o.proxyURL = proxyURL }
}

// NewClient returns an http.Client with logging middleware.
func NewClient(timeout time.Duration, opts ...Option) *http.Client {
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	base := http.DefaultTransport.(*http.Transport).Clone()
	if o.proxyURL != "" {
		if u, err := url.Parse(o.proxyURL); err == nil {
			base.Proxy = http.ProxyURL(u)
		} else {
			logger.Get().Warn("Ignoring invalid proxy URL", zap.Error(err))
		}
	}

	var transport http.RoundTripper = base
	if o.rps > 0 {
		burst := max(int(math.Ceil(o.rps)), 1)
		transport = &RateLimitRoundTripper{
			Proxied: transport,
			Limiter: rate.NewLimiter(rate.Limit(o.rps), burst),
		}
	}

	return &http.Client{
		Transport: &LoggingRoundTripper{
			Proxied: transport,
		},
		Timeout: timeout,
	}
}
