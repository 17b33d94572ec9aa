package service

import (
	"context"
	"errors"
	"sync"
	"time"

	"label-printer/internal/features/labels/document"
	"label-printer/internal/features/labels/domain"
	"label-printer/internal/features/labels/ports"
	orders "label-printer/internal/features/orders/domain"
	orderports "label-printer/internal/features/orders/ports"
)

// fakeOrderSource is an in-memory OrderSource for testing.
type fakeOrderSource struct {
	mu        sync.Mutex
	orders    map[string]*orders.Order
	customers map[string]*orders.Customer
	delays    map[string]time.Duration
	calls     []string
	// fetched runs after each order fetch, outside the lock.
	fetched func(id string)
}

func newFakeOrderSource() *fakeOrderSource {
	return &fakeOrderSource{
		orders:    map[string]*orders.Order{},
		customers: map[string]*orders.Customer{},
		delays:    map[string]time.Duration{},
	}
}

// GetOrder implements OrderSource.
func (f *fakeOrderSource) GetOrder(ctx context.Context, id string) (*orders.Order, error) {
	f.mu.Lock()
	f.calls = append(f.calls, "order:"+id)
	delay := f.delays[id]
	order, ok := f.orders[id]
	fetched := f.fetched
	f.mu.Unlock()
	if fetched != nil {
		defer fetched(id)
	}

	if delay > 0 {
		select {
		case <-time.After(delay):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	if !ok {
		return nil, orderports.ErrOrderNotFound
	}
	copied := *order
	return &copied, nil
}

// GetCustomer implements OrderSource.
func (f *fakeOrderSource) GetCustomer(ctx context.Context, id string) (*orders.Customer, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, "customer:"+id)

	customer, ok := f.customers[id]
	if !ok {
		return nil, orderports.ErrCustomerNotFound
	}
	return customer, nil
}

func (f *fakeOrderSource) orderCalls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, c := range f.calls {
		if len(c) > 6 && c[:6] == "order:" {
			n++
		}
	}
	return n
}

// fakePresenter records the documents it receives.
type fakePresenter struct {
	mu   sync.Mutex
	docs []*document.Document
	err  error
}

// Present implements Presenter.
func (p *fakePresenter) Present(ctx context.Context, doc *document.Document) (*ports.Artifact, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.docs = append(p.docs, doc)
	if p.err != nil {
		return nil, p.err
	}
	return &ports.Artifact{ContentType: "text/plain", Body: []byte(doc.JobID)}, nil
}

// memoryJobRepository is an in-memory JobRepository for testing.
type memoryJobRepository struct {
	mu      sync.Mutex
	jobs    map[string]domain.JobSummary
	saveErr error
}

func newMemoryJobRepository() *memoryJobRepository {
	return &memoryJobRepository{jobs: map[string]domain.JobSummary{}}
}

// Save implements JobRepository.
func (r *memoryJobRepository) Save(ctx context.Context, summary domain.JobSummary) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.saveErr != nil {
		return r.saveErr
	}
	r.jobs[summary.ID] = summary
	return nil
}

// Get implements JobRepository.
func (r *memoryJobRepository) Get(ctx context.Context, id string) (*domain.JobSummary, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	summary, ok := r.jobs[id]
	if !ok {
		return nil, ports.ErrJobNotFound
	}
	return &summary, nil
}

var errBackendDown = errors.New("backend down")
