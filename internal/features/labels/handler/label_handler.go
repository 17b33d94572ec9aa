package handler

import (
	"context"
	"errors"
	"strings"
	"time"

	"label-printer/internal/core/httpclient"
	"label-printer/internal/core/logger"
	"label-printer/internal/features/labels/domain"
	"label-printer/internal/features/labels/ports"
	"label-printer/internal/features/labels/service"
	"label-printer/internal/features/labels/templates"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

const (
	// JobHeader carries the id of the print job behind a response.
	JobHeader = "X-Label-Job"
	// MissingHeader lists the requested order ids that could not be printed.
	MissingHeader = "X-Label-Missing"
)

// LabelHandler handles HTTP requests for label printing.
type LabelHandler struct {
	service ports.LabelService
	timeout time.Duration
}

// NewLabelHandler creates a new LabelHandler. timeout bounds a whole print request; 0 disables it.
func NewLabelHandler(service ports.LabelService, timeout time.Duration) *LabelHandler {
	return &LabelHandler{
		service: service,
		timeout: timeout,
	}
}

// RegisterRoutes mounts the label routes on router.
func (h *LabelHandler) RegisterRoutes(router fiber.Router) {
	labels := router.Group("/labels")
	labels.Get("/print", h.Print)
	labels.Get("/preview", h.Preview)
	labels.Get("/templates", h.ListTemplates)
	labels.Get("/jobs/:id", h.GetJob)
}

// ErrorResponse represents an error response with Ray ID.
type ErrorResponse struct {
	// Message is the error description.
	Message string `json:"message"`
	// RayID is the unique request identifier for tracing.
	RayID string `json:"ray_id,omitempty"`
	// Code is a stable machine-readable error code.
	Code string `json:"code,omitempty"`
	// Missing lists order ids that could not be resolved.
	Missing []string `json:"missing,omitempty"`
}

// TemplatesResponse lists the carrier catalog.
type TemplatesResponse struct {
	Templates []templates.Template   `json:"templates"`
	Formats   []templates.PageFormat `json:"formats"`
}

// Print godoc
// @Summary Print shipping labels
// @Description Assembles one label per order and returns a print-ready document. Orders that cannot be resolved are skipped and listed in the X-Label-Missing header.
// @Tags labels
// @Produce html
// @Produce application/pdf
// @Param order query string false "Single order id"
// @Param orders query string false "Comma-separated order ids"
// @Param type query string false "Carrier key (flash, jnt, tiktok-flash, standard)"
// @Param format query string false "Page format (100x150, 100x100, 100x75, auto)"
// @Param output query string false "html (default) or pdf"
// @Success 200 {string} string "print document"
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 503 {object} ErrorResponse
// @Router /labels/print [get]
func (h *LabelHandler) Print(c *fiber.Ctx) error {
	output, ok := ports.ParseOutput(strings.ToLower(c.Query("output")))
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
			Message: "output must be html or pdf",
			RayID:   rayID(c),
			Code:    "invalid_output",
		})
	}

	ctx, cancel := h.requestContext(c)
	defer cancel()

	req := h.printRequest(c)
	req.Output = output

	result, err := h.service.Print(ctx, req)
	if result != nil && result.Job != nil {
		setJobHeaders(c, result.Job)
	}
	if err != nil {
		return h.fail(c, err)
	}

	return sendArtifact(c, result.Artifact)
}

// Preview godoc
// @Summary Preview shipping labels
// @Description Renders the labels of a batch in an on-screen grid without page breaks or print dialog.
// @Tags labels
// @Produce html
// @Param order query string false "Single order id"
// @Param orders query string false "Comma-separated order ids"
// @Param type query string false "Carrier key"
// @Param format query string false "Page format"
// @Success 200 {string} string "preview document"
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /labels/preview [get]
func (h *LabelHandler) Preview(c *fiber.Ctx) error {
	ctx, cancel := h.requestContext(c)
	defer cancel()

	result, err := h.service.Preview(ctx, h.printRequest(c))
	if err != nil {
		return h.fail(c, err)
	}
	setJobHeaders(c, result.Job)

	return sendArtifact(c, result.Artifact)
}

// GetJob godoc
// @Summary Get a print job summary
// @Description Returns which orders a print job resolved and which were missing.
// @Tags labels
// @Produce json
// @Param id path string true "Job ID"
// @Success 200 {object} domain.JobSummary
// @Failure 404 {object} ErrorResponse
// @Router /labels/jobs/{id} [get]
func (h *LabelHandler) GetJob(c *fiber.Ctx) error {
	summary, err := h.service.GetJob(c.UserContext(), c.Params("id"))
	if err != nil {
		if errors.Is(err, ports.ErrJobNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(ErrorResponse{
				Message: "job not found",
				RayID:   rayID(c),
				Code:    "job_not_found",
			})
		}
		return h.fail(c, err)
	}

	return c.JSON(summary)
}

// ListTemplates godoc
// @Summary List carrier templates
// @Description Returns every carrier template in its default page format, and the supported formats.
// @Tags labels
// @Produce json
// @Success 200 {object} TemplatesResponse
// @Router /labels/templates [get]
func (h *LabelHandler) ListTemplates(c *fiber.Ctx) error {
	return c.JSON(TemplatesResponse{
		Templates: h.service.Templates(),
		Formats:   templates.Formats,
	})
}

func (h *LabelHandler) printRequest(c *fiber.Ctx) ports.PrintRequest {
	return ports.PrintRequest{
		OrderIDs: service.ParseOrderIDs(c.Query("orders"), c.Query("order")),
		Carrier:  c.Query("type"),
		Format:   c.Query("format"),
	}
}

// requestContext carries the caller's token and ray id to upstream calls.
func (h *LabelHandler) requestContext(c *fiber.Ctx) (context.Context, context.CancelFunc) {
	ctx := c.UserContext()
	if token := c.Get(fiber.HeaderAuthorization); token != "" {
		ctx = httpclient.WithToken(ctx, token)
	}
	if id := rayID(c); id != "" {
		ctx = httpclient.WithRayID(ctx, id)
	}
	if h.timeout > 0 {
		return context.WithTimeout(ctx, h.timeout)
	}
	return context.WithCancel(ctx)
}

func (h *LabelHandler) fail(c *fiber.Ctx, err error) error {
	var emptyErr *service.EmptyBatchError
	switch {
	case errors.Is(err, service.ErrNoOrderIDs):
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
			Message: "order or orders query parameter is required",
			RayID:   rayID(c),
			Code:    "no_order_ids",
		})
	case errors.As(err, &emptyErr):
		if emptyErr.JobID != "" {
			c.Set(JobHeader, emptyErr.JobID)
		}
		return c.Status(fiber.StatusNotFound).JSON(ErrorResponse{
			Message: "none of the requested orders could be found",
			RayID:   rayID(c),
			Code:    "no_data",
			Missing: emptyErr.Missing,
		})
	case errors.Is(err, context.DeadlineExceeded):
		return c.Status(fiber.StatusGatewayTimeout).JSON(ErrorResponse{
			Message: "print request timed out",
			RayID:   rayID(c),
			Code:    "timeout",
		})
	case errors.Is(err, ports.ErrPresentFailed):
		return c.Status(fiber.StatusServiceUnavailable).JSON(ErrorResponse{
			Message: "labels were assembled but could not be printed",
			RayID:   rayID(c),
			Code:    "print_unavailable",
		})
	}

	logger.Get().Error("Label request failed", zap.String("ray_id", rayID(c)), zap.Error(err))
	return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{
		Message: err.Error(),
		RayID:   rayID(c),
	})
}

func setJobHeaders(c *fiber.Ctx, job *domain.Job) {
	c.Set(JobHeader, job.ID)
	if len(job.Missing) > 0 {
		c.Set(MissingHeader, strings.Join(job.Missing, ","))
	}
}

func sendArtifact(c *fiber.Ctx, artifact *ports.Artifact) error {
	if artifact.Filename != "" {
		c.Attachment(artifact.Filename)
	}
	c.Set(fiber.HeaderContentType, artifact.ContentType)
	return c.Status(fiber.StatusOK).Send(artifact.Body)
}

func rayID(c *fiber.Ctx) string {
	id, _ := c.Locals("requestid").(string)
	return id
}
