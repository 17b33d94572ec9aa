package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"label-printer/internal/core/logger"
	"label-printer/internal/features/labels/document"
	"label-printer/internal/features/labels/domain"
	"label-printer/internal/features/labels/ports"
	"label-printer/internal/features/labels/symbol"
	"label-printer/internal/features/labels/templates"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

var (
	// ErrNoOrderIDs is returned when a request names no order at all.
	ErrNoOrderIDs = errors.New("no order ids given")
	// ErrEmptyBatch is matched by EmptyBatchError.
	ErrEmptyBatch = errors.New("no printable orders")
)

// maxParallelEncodings bounds symbol encoding of one job.
const maxParallelEncodings = 8

// defaultFinishTimeout bounds encoding and presentation of a batch whose request deadline
// expired during assembly.
const defaultFinishTimeout = 10 * time.Second

// EmptyBatchError is returned when none of the requested orders could be resolved.
type EmptyBatchError struct {
	JobID   string
	Missing []string
}

func (e *EmptyBatchError) Error() string {
	return fmt.Sprintf("%v: missing %s", ErrEmptyBatch, strings.Join(e.Missing, ", "))
}

// Is makes errors.Is(err, ErrEmptyBatch) match.
func (e *EmptyBatchError) Is(target error) bool {
	return target == ErrEmptyBatch
}

// SymbolEncoder produces the symbols of one label.
type SymbolEncoder interface {
	Encode(ctx context.Context, value string, spec symbol.Spec) symbol.Symbols
}

// Config holds the defaults of the print service.
type Config struct {
	DefaultCarrier string
	DefaultFormat  string
	Document       document.Options
	// FinishTimeout bounds printing of a batch cut short by its deadline. 0 uses 10s.
	FinishTimeout time.Duration
}

// PrintService implements ports.LabelService.
type PrintService struct {
	assembler  *Assembler
	catalog    *templates.Catalog
	encoder    SymbolEncoder
	presenters map[ports.Output]ports.Presenter
	preview    document.Renderer
	jobs       ports.JobRepository
	cfg        Config
	newID      func() string
}

// NewPrintService creates a new PrintService. jobs may be nil, in which case job summaries are not kept.
func NewPrintService(
	assembler *Assembler,
	catalog *templates.Catalog,
	encoder SymbolEncoder,
	presenters map[ports.Output]ports.Presenter,
	jobs ports.JobRepository,
	cfg Config,
) *PrintService {
	return &PrintService{
		assembler:  assembler,
		catalog:    catalog,
		encoder:    encoder,
		presenters: presenters,
		preview:    document.PreviewRenderer{},
		jobs:       jobs,
		cfg:        cfg,
		newID:      uuid.NewString,
	}
}

// Print assembles, encodes and presents a batch.
// It returns ErrNoOrderIDs, an *EmptyBatchError, or an error wrapping ports.ErrPresentFailed.
// A result is returned alongside presentation errors so callers can report the job id.
func (s *PrintService) Print(ctx context.Context, req ports.PrintRequest) (*ports.PrintResult, error) {
	output := req.Output
	if output == "" {
		output = ports.OutputHTML
	}

	job, err := s.assemble(ctx, req)
	if err != nil {
		return nil, err
	}
	result := &ports.PrintResult{Job: job}

	presenter, ok := s.presenters[output]
	if !ok {
		return result, fmt.Errorf("%w: output %q is not available", ports.ErrPresentFailed, output)
	}

	ctx, cancel := s.finishContext(ctx, job)
	defer cancel()

	doc := s.document(ctx, job)
	artifact, err := presenter.Present(ctx, doc)
	if err != nil {
		logger.Get().Error("Failed to present print job", zap.String("job_id", job.ID), zap.String("output", string(output)), zap.Error(err))
		if !errors.Is(err, ports.ErrPresentFailed) {
			err = fmt.Errorf("%w: %w", ports.ErrPresentFailed, err)
		}
		return result, err
	}
	result.Artifact = artifact

	s.saveSummary(ctx, job, output)
	return result, nil
}

// Preview assembles and encodes a batch and renders it for on-screen review.
func (s *PrintService) Preview(ctx context.Context, req ports.PrintRequest) (*ports.PrintResult, error) {
	job, err := s.assemble(ctx, req)
	if err != nil {
		return nil, err
	}

	ctx, cancel := s.finishContext(ctx, job)
	defer cancel()

	var buf bytes.Buffer
	if err := s.preview.Render(&buf, s.document(ctx, job)); err != nil {
		return nil, fmt.Errorf("service: failed to render preview: %w", err)
	}

	return &ports.PrintResult{
		Job:      job,
		Artifact: &ports.Artifact{ContentType: s.preview.ContentType(), Body: buf.Bytes()},
	}, nil
}

// GetJob returns the summary of a previous print job.
func (s *PrintService) GetJob(ctx context.Context, id string) (*domain.JobSummary, error) {
	if s.jobs == nil {
		return nil, ports.ErrJobNotFound
	}
	summary, err := s.jobs.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("service: failed to get job: %w", err)
	}
	return summary, nil
}

// Templates lists the carrier catalog.
func (s *PrintService) Templates() []templates.Template {
	return s.catalog.List()
}

func (s *PrintService) assemble(ctx context.Context, req ports.PrintRequest) (*domain.Job, error) {
	ids := ParseOrderIDs(req.OrderIDs...)
	if len(ids) == 0 {
		return nil, ErrNoOrderIDs
	}

	carrier := req.Carrier
	if strings.TrimSpace(carrier) == "" {
		carrier = s.cfg.DefaultCarrier
	}
	format := req.Format
	if strings.TrimSpace(format) == "" {
		format = s.cfg.DefaultFormat
	}
	tpl := s.catalog.Select(carrier, templates.PageFormat(format))

	job := s.assembler.Assemble(ctx, ids, tpl)
	job.ID = s.newID()

	if job.Empty() {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("service: assembly interrupted: %w", err)
		}
		s.saveSummary(ctx, job, req.Output)
		return nil, &EmptyBatchError{JobID: job.ID, Missing: job.Missing}
	}
	return job, nil
}

// finishContext detaches a partly assembled job from an expired request context so the
// resolved labels still print, within the finish timeout. Live contexts are returned as is.
func (s *PrintService) finishContext(ctx context.Context, job *domain.Job) (context.Context, context.CancelFunc) {
	if ctx.Err() == nil {
		return ctx, func() {}
	}
	timeout := s.cfg.FinishTimeout
	if timeout <= 0 {
		timeout = defaultFinishTimeout
	}
	logger.Get().Warn("Batch interrupted, printing resolved labels",
		zap.String("job_id", job.ID),
		zap.Int("resolved", job.Resolved()),
		zap.Strings("missing", job.Missing),
		zap.NamedError("cause", ctx.Err()),
	)
	return context.WithTimeout(context.WithoutCancel(ctx), timeout)
}

// document encodes every label and waits for all encodings before building the page tree.
func (s *PrintService) document(ctx context.Context, job *domain.Job) *document.Document {
	spec := job.Template.SymbolSpec()
	symbols := make([]symbol.Symbols, len(job.Labels))

	var g errgroup.Group
	g.SetLimit(maxParallelEncodings)
	for i, label := range job.Labels {
		g.Go(func() error {
			symbols[i] = s.encoder.Encode(ctx, label.TrackingID, spec)
			return nil
		})
	}
	_ = g.Wait()

	return document.Build(job, symbols, s.cfg.Document)
}

func (s *PrintService) saveSummary(ctx context.Context, job *domain.Job, output ports.Output) {
	if s.jobs == nil {
		return
	}
	summary := job.Summary()
	summary.Output = string(output)
	if err := s.jobs.Save(context.WithoutCancel(ctx), summary); err != nil {
		logger.Get().Warn("Failed to save job summary", zap.String("job_id", job.ID), zap.Error(err))
	}
}
