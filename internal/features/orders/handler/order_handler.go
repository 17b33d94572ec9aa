package handler

import (
	"context"
	"errors"
	"net/http"

	"label-printer/internal/core/httpclient"
	"label-printer/internal/core/logger"
	"label-printer/internal/features/orders/ports"
	"label-printer/internal/features/orders/service"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// OrderHandler handles HTTP requests related to orders.
type OrderHandler struct {
	// service is the OrderService instance.
	service ports.OrderService
}

// NewOrderHandler creates a new instance of OrderHandler.
func NewOrderHandler(s ports.OrderService) *OrderHandler {
	return &OrderHandler{
		service: s,
	}
}

// GetOrder returns the order data a label would be built from.
// @Summary Get Order by ID
// @Description Fetch an order and its customer record from the order backend.
// @Tags orders
// @Produce json
// @Param id path string true "Order ID"
// @Success 200 {object} domain.OrderDetails
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 502 {object} ErrorResponse
// @Router /orders/{id} [get]
func (h *OrderHandler) GetOrder(c *fiber.Ctx) error {
	orderID := c.Params("id")

	rayID, ok := c.Locals("requestid").(string)
	if !ok {
		rayID = "unknown"
	}

	ctx := httpclient.WithRayID(c.UserContext(), rayID)
	if token := c.Get(fiber.HeaderAuthorization); token != "" {
		ctx = httpclient.WithToken(ctx, token)
	}

	details, err := h.service.GetOrder(ctx, orderID)
	if err != nil {
		status := http.StatusBadGateway
		msg := err.Error()

		switch {
		case errors.Is(err, service.ErrInvalidOrderID):
			status = http.StatusBadRequest
			msg = "Order ID is required"
		case errors.Is(err, ports.ErrOrderNotFound):
			status = http.StatusNotFound
			msg = "Order not found"
		case errors.Is(err, context.DeadlineExceeded):
			status = http.StatusGatewayTimeout
		default:
			logger.Get().Error("Failed to fetch order",
				zap.String("order_id", orderID),
				zap.String("ray_id", rayID),
				zap.Error(err),
			)
		}

		return c.Status(status).JSON(ErrorResponse{
			Message: msg,
			RayID:   rayID,
		})
	}

	return c.Status(http.StatusOK).JSON(details)
}

// ErrorResponse represents the structure of an error response.
type ErrorResponse struct {
	// Message is the error description.
	Message string `json:"message"`
	// RayID is the unique request identifier for debugging.
	RayID string `json:"ray_id"`
}
