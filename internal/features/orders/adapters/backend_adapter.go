package adapter

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"label-printer/internal/core/config"
	"label-printer/internal/core/httpclient"
	"label-printer/internal/core/logger"
	"label-printer/internal/features/orders/domain"
	"label-printer/internal/features/orders/ports"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// BackendAdapter implements ports.OrderSource against the dashboard's REST backend.
type BackendAdapter struct {
	// client is the HTTP client used for API requests.
	client *http.Client
	// config holds the backend connection details.
	config config.OrderAPIConfig
}

// NewBackendAdapter creates a new instance of BackendAdapter.
func NewBackendAdapter(cfg config.OrderAPIConfig, client *http.Client) *BackendAdapter {
	if client == nil {
		client = httpclient.NewClient(cfg.Timeout())
	}
	cfg.URL = strings.TrimRight(cfg.URL, "/")
	return &BackendAdapter{
		client: client,
		config: cfg,
	}
}

// GetOrder fetches GET /api/orders/{id} and maps it to the domain entity.
func (a *BackendAdapter) GetOrder(ctx context.Context, orderID string) (*domain.Order, error) {
	var env envelope
	if err := a.get(ctx, "/api/orders/"+url.PathEscape(orderID), &env); err != nil {
		return nil, notFoundAs(err, ports.ErrOrderNotFound, orderID)
	}
	if !env.Success {
		return nil, fmt.Errorf("%w: order %s: %s", ports.ErrUpstreamRejected, orderID, env.Message)
	}
	if env.Order == nil {
		return nil, fmt.Errorf("%w: %s", ports.ErrOrderNotFound, orderID)
	}
	return env.Order.toDomain(orderID), nil
}

// GetCustomer fetches GET /api/customers/{id} and maps it to the domain entity.
func (a *BackendAdapter) GetCustomer(ctx context.Context, customerID string) (*domain.Customer, error) {
	var env envelope
	if err := a.get(ctx, "/api/customers/"+url.PathEscape(customerID), &env); err != nil {
		return nil, notFoundAs(err, ports.ErrCustomerNotFound, customerID)
	}
	if !env.Success {
		return nil, fmt.Errorf("%w: customer %s: %s", ports.ErrUpstreamRejected, customerID, env.Message)
	}
	if env.Customer == nil {
		return nil, fmt.Errorf("%w: %s", ports.ErrCustomerNotFound, customerID)
	}
	return env.Customer.toDomain(customerID), nil
}

// HealthCheck verifies that the backend answers at all. Any status below 500 counts as reachable,
// since the root path is usually not routed.
func (a *BackendAdapter) HealthCheck(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, a.config.URL+"/", nil)
	if err != nil {
		return fmt.Errorf("health check failed to create request: %w", err)
	}

	resp, err := a.client.Do(req)
	if err != nil {
		return fmt.Errorf("health check request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusInternalServerError {
		return fmt.Errorf("health check failed with status: %d", resp.StatusCode)
	}
	return nil
}

var errStatusNotFound = errors.New("status 404")

func notFoundAs(err, sentinel error, id string) error {
	if errors.Is(err, errStatusNotFound) {
		return fmt.Errorf("%w: %s", sentinel, id)
	}
	return err
}

// get performs an authenticated GET and decodes the JSON envelope.
// The Authorization header is always sent; it is empty when no token is available.
func (a *BackendAdapter) get(ctx context.Context, path string, out *envelope) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, a.config.URL+path, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	token := httpclient.TokenFromContext(ctx)
	if token == "" {
		token = a.config.Token
	}
	req.Header.Set("Authorization", httpclient.BearerHeader(token))
	req.Header.Set("Accept", "application/json")

	resp, err := a.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return errStatusNotFound
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("order backend returned status: %d", resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

// internal structs for mapping

// envelope is the response wrapper used by every backend endpoint.
type envelope struct {
	Success  bool             `json:"success"`
	Message  string           `json:"message"`
	Order    *backendOrder    `json:"order"`
	Customer *backendCustomer `json:"customer"`
}

// backendOrder accepts both the camelCase fields of the current backend and the
// snake_case fields still returned by older endpoints.
type backendOrder struct {
	ID                  flexString          `json:"id"`
	OrderNumber         flexString          `json:"orderNumber"`
	OrderNumberSnake    flexString          `json:"order_number"`
	CustomerID          flexString          `json:"customerId"`
	CustomerIDSnake     flexString          `json:"customer_id"`
	CustomerName        string              `json:"customerName"`
	CustomerPhone       string              `json:"customerPhone"`
	ShippingAddress     string              `json:"shippingAddress"`
	Address             string              `json:"address"`
	TrackingNumber      flexString          `json:"trackingNumber"`
	TrackingNumberSnake flexString          `json:"tracking_number"`
	PaymentMethod       string              `json:"paymentMethod"`
	PaymentMethodSnake  string              `json:"payment_method"`
	TotalAmount         decimal.NullDecimal `json:"totalAmount"`
	TotalAmountSnake    decimal.NullDecimal `json:"total_amount"`
	Items               []backendItem       `json:"items"`
	CreatedAt           backendTime         `json:"createdAt"`
	CreatedAtSnake      backendTime         `json:"created_at"`
}

type backendItem struct {
	ProductName string              `json:"productName"`
	Name        string              `json:"name"`
	Quantity    int                 `json:"quantity"`
	Price       decimal.NullDecimal `json:"price"`
	UnitPrice   decimal.NullDecimal `json:"unitPrice"`
}

type backendCustomer struct {
	ID          flexString `json:"id"`
	Name        string     `json:"name"`
	Phone       string     `json:"phone"`
	HouseNumber string     `json:"houseNumber"`
	Address     string     `json:"address"`
	Road        string     `json:"road"`
	SubDistrict string     `json:"subDistrict"`
	District    string     `json:"district"`
	Province    string     `json:"province"`
	PostalCode  flexString `json:"postalCode"`
	ZipCode     flexString `json:"zipCode"`
}

func (o *backendOrder) toDomain(requestedID string) *domain.Order {
	items := make([]domain.LineItem, 0, len(o.Items))
	for _, it := range o.Items {
		items = append(items, domain.LineItem{
			Name:      first(it.ProductName, it.Name),
			Quantity:  it.Quantity,
			UnitPrice: firstDecimal(it.UnitPrice, it.Price),
		})
	}

	createdAt := time.Time(o.CreatedAt)
	if createdAt.IsZero() {
		createdAt = time.Time(o.CreatedAtSnake)
	}

	return &domain.Order{
		ID:              first(string(o.ID), requestedID),
		OrderNumber:     first(string(o.OrderNumber), string(o.OrderNumberSnake)),
		CustomerID:      first(string(o.CustomerID), string(o.CustomerIDSnake)),
		CustomerName:    strings.TrimSpace(o.CustomerName),
		CustomerPhone:   strings.TrimSpace(o.CustomerPhone),
		ShippingAddress: first(o.ShippingAddress, o.Address),
		TrackingNumber:  first(string(o.TrackingNumber), string(o.TrackingNumberSnake)),
		PaymentMethod:   first(o.PaymentMethod, o.PaymentMethodSnake),
		TotalAmount:     firstDecimal(o.TotalAmount, o.TotalAmountSnake),
		Items:           items,
		CreatedAt:       createdAt,
	}
}

func (c *backendCustomer) toDomain(requestedID string) *domain.Customer {
	return &domain.Customer{
		ID:          first(string(c.ID), requestedID),
		Name:        strings.TrimSpace(c.Name),
		Phone:       strings.TrimSpace(c.Phone),
		HouseNumber: first(c.HouseNumber, c.Address),
		Road:        strings.TrimSpace(c.Road),
		SubDistrict: strings.TrimSpace(c.SubDistrict),
		District:    strings.TrimSpace(c.District),
		Province:    strings.TrimSpace(c.Province),
		PostalCode:  first(string(c.PostalCode), string(c.ZipCode)),
	}
}

func first(values ...string) string {
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			return v
		}
	}
	return ""
}

func firstDecimal(values ...decimal.NullDecimal) decimal.Decimal {
	for _, v := range values {
		if v.Valid {
			return v.Decimal
		}
	}
	return decimal.Zero
}

// flexString accepts JSON strings, numbers and null. Backend ids are numeric in some
// endpoints and strings in others.
type flexString string

// UnmarshalJSON implements json.Unmarshaler.
func (f *flexString) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	switch {
	case bytes.Equal(b, []byte("null")):
		*f = ""
	case len(b) > 0 && b[0] == '"':
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*f = flexString(s)
	default:
		var n json.Number
		if err := json.Unmarshal(b, &n); err != nil {
			return fmt.Errorf("flexString: unsupported value %s", b)
		}
		*f = flexString(n.String())
	}
	return nil
}

// backendTime is a helper to handle the backend's inconsistent date formats.
type backendTime time.Time

var backendTimeLayouts = []string{time.RFC3339Nano, "2006-01-02T15:04:05", "2006-01-02 15:04:05", "2006-01-02"}

// UnmarshalJSON parses the date formats used by the backend. Unparseable dates become zero.
func (t *backendTime) UnmarshalJSON(b []byte) error {
	s := strings.Trim(string(b), "\"")
	if s == "null" || s == "" {
		*t = backendTime(time.Time{})
		return nil
	}
	for _, layout := range backendTimeLayouts {
		if parsed, err := time.Parse(layout, s); err == nil {
			*t = backendTime(parsed)
			return nil
		}
	}
	logger.Get().Warn("Failed to parse date", zap.String("date", s))
	*t = backendTime(time.Time{})
	return nil
}
