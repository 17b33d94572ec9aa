package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"label-printer/internal/core/logger"
	"label-printer/internal/features/labels/domain"
	"label-printer/internal/features/labels/templates"
	orders "label-printer/internal/features/orders/domain"
	orderports "label-printer/internal/features/orders/ports"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// ParseOrderIDs splits comma-separated values, trims them and drops blanks.
// Duplicates are kept in order so an order can be printed twice in one batch.
func ParseOrderIDs(values ...string) []string {
	var ids []string
	for _, v := range values {
		for _, id := range strings.Split(v, ",") {
			if id = strings.TrimSpace(id); id != "" {
				ids = append(ids, id)
			}
		}
	}
	return ids
}

// Assembler resolves order ids into labels, containing every per-order failure.
type Assembler struct {
	source      orderports.OrderSource
	concurrency int
	now         func() time.Time
}

// AssemblerOption configures an Assembler.
type AssemblerOption func(*Assembler)

// WithConcurrency sets how many orders are fetched at once. Values below 2 keep fetches sequential.
func WithConcurrency(n int) AssemblerOption {
	return func(a *Assembler) {
		a.concurrency = max(n, 1)
	}
}

// WithClock replaces the clock used for shipping dates.
func WithClock(now func() time.Time) AssemblerOption {
	return func(a *Assembler) {
		a.now = now
	}
}

// NewAssembler creates an Assembler reading from source.
func NewAssembler(source orderports.OrderSource, opts ...AssemblerOption) *Assembler {
	a := &Assembler{
		source:      source,
		concurrency: 1,
		now:         time.Now,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Assemble builds a job for orderIDs using tpl. It never fails: ids that cannot be resolved,
// including those skipped after ctx is cancelled, are listed in Job.Missing.
func (a *Assembler) Assemble(ctx context.Context, orderIDs []string, tpl templates.Template) *domain.Job {
	ids := ParseOrderIDs(orderIDs...)
	now := a.now()
	results := make([]*domain.Label, len(ids))

	resolve := func(i int) {
		label, err := a.resolve(ctx, ids[i], tpl, now)
		if err != nil {
			logger.Get().Warn("Order skipped", zap.String("order_id", ids[i]), zap.Error(err))
			return
		}
		results[i] = label
	}

	if a.concurrency <= 1 {
		for i := range ids {
			if ctx.Err() != nil {
				break
			}
			resolve(i)
		}
	} else {
		var g errgroup.Group
		g.SetLimit(a.concurrency)
		for i := range ids {
			if ctx.Err() != nil {
				break
			}
			g.Go(func() error {
				resolve(i)
				return nil
			})
		}
		_ = g.Wait()
	}

	job := &domain.Job{
		Template:  tpl,
		Requested: ids,
		CreatedAt: now,
	}
	for i, label := range results {
		if label == nil {
			job.Missing = append(job.Missing, ids[i])
			continue
		}
		job.Labels = append(job.Labels, *label)
	}
	job.Finalize()

	logger.Get().Info("Batch assembled",
		zap.String("carrier", tpl.Key),
		zap.Int("requested", len(ids)),
		zap.Int("resolved", job.Resolved()),
		zap.Strings("missing", job.Missing),
	)

	return job
}

func (a *Assembler) resolve(ctx context.Context, id string, tpl templates.Template, now time.Time) (*domain.Label, error) {
	order, err := a.source.GetOrder(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch order: %w", err)
	}
	if order == nil {
		return nil, orderports.ErrOrderNotFound
	}
	if order.ID == "" {
		order.ID = id
	}

	var customer *orders.Customer
	if order.HasCustomer() {
		customer, err = a.source.GetCustomer(ctx, order.CustomerID)
		if err != nil {
			level := zap.WarnLevel
			if errors.Is(err, orderports.ErrCustomerNotFound) {
				level = zap.InfoLevel
			}
			logger.Get().Log(level, "Customer unavailable, using order contact fields",
				zap.String("order_id", id),
				zap.String("customer_id", order.CustomerID),
				zap.Error(err),
			)
			customer = nil
		}
	}

	label := domain.BuildLabel(*order, customer, tpl.Tracking, now)
	return &label, nil
}
