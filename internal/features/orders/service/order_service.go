package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"label-printer/internal/core/logger"
	"label-printer/internal/features/orders/domain"
	"label-printer/internal/features/orders/ports"

	"go.uber.org/zap"
)

// ErrInvalidOrderID is returned when the order id is blank.
var ErrInvalidOrderID = errors.New("order id is required")

// OrderService handles the business logic for looking up orders.
type OrderService struct {
	// source is the interface for fetching order data from the backend.
	source ports.OrderSource
}

// NewOrderService creates a new instance of OrderService.
func NewOrderService(source ports.OrderSource) *OrderService {
	return &OrderService{
		source: source,
	}
}

// GetOrder retrieves an order by ID and attaches its customer record.
// A customer that cannot be loaded does not fail the lookup.
func (s *OrderService) GetOrder(ctx context.Context, orderID string) (*domain.OrderDetails, error) {
	orderID = strings.TrimSpace(orderID)
	if orderID == "" {
		return nil, ErrInvalidOrderID
	}

	order, err := s.source.GetOrder(ctx, orderID)
	if err != nil {
		return nil, fmt.Errorf("service: failed to get order: %w", err)
	}
	if order == nil {
		return nil, fmt.Errorf("service: %w: %s", ports.ErrOrderNotFound, orderID)
	}

	details := &domain.OrderDetails{Order: order}
	if !order.HasCustomer() {
		return details, nil
	}

	customer, err := s.source.GetCustomer(ctx, order.CustomerID)
	if err != nil {
		logger.Get().Warn("Customer lookup failed",
			zap.String("order_id", orderID),
			zap.String("customer_id", order.CustomerID),
			zap.Error(err),
		)
		details.CustomerError = err.Error()
		return details, nil
	}
	details.Customer = customer
	return details, nil
}
