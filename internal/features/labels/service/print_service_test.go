package service

import (
	"context"
	"strings"
	"sync/atomic"
	"testing"

	"label-printer/internal/features/labels/document"
	"label-printer/internal/features/labels/domain"
	"label-printer/internal/features/labels/ports"
	"label-printer/internal/features/labels/symbol"
	"label-printer/internal/features/labels/templates"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// countingEncoder wraps the real encoder and counts calls.
type countingEncoder struct {
	calls atomic.Int32
	next  *symbol.Encoder
}

// Encode implements SymbolEncoder.
func (e *countingEncoder) Encode(ctx context.Context, value string, spec symbol.Spec) symbol.Symbols {
	e.calls.Add(1)
	return e.next.Encode(ctx, value, spec)
}

type fixture struct {
	src     *fakeOrderSource
	html    *fakePresenter
	jobs    *memoryJobRepository
	encoder *countingEncoder
	service *PrintService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{
		src:     newFakeOrderSource(),
		html:    &fakePresenter{},
		jobs:    newMemoryJobRepository(),
		encoder: &countingEncoder{next: symbol.NewEncoder(nil)},
	}
	seedOrders(f.src, "101", "102", "103")

	f.service = NewPrintService(
		NewAssembler(f.src, WithClock(fixedClock)),
		templates.NewCatalog(),
		f.encoder,
		map[ports.Output]ports.Presenter{ports.OutputHTML: f.html},
		f.jobs,
		Config{DefaultCarrier: "standard", DefaultFormat: "100x150", Document: document.Options{}},
	)
	ids := []string{"job-1", "job-2", "job-3"}
	next := 0
	f.service.newID = func() string {
		id := ids[next]
		next++
		return id
	}
	return f
}

// TestPrintService_Print verifies the full pipeline for a resolvable batch.
func TestPrintService_Print(t *testing.T) {
	f := newFixture(t)

	result, err := f.service.Print(context.Background(), ports.PrintRequest{
		OrderIDs: []string{"101", "102", "103"},
		Carrier:  "flash",
	})

	require.NoError(t, err)
	require.NotNil(t, result.Artifact)
	assert.Equal(t, "job-1", result.Job.ID)
	assert.Equal(t, "flash", result.Job.Template.Key)
	assert.Equal(t, templates.Format100x150, result.Job.Template.Format)

	require.Len(t, f.html.docs, 1)
	doc := f.html.docs[0]
	require.Len(t, doc.Pages, 3)
	assert.Equal(t, int32(3), f.encoder.calls.Load())
	for _, page := range doc.Pages {
		for _, node := range page.Nodes {
			if b, ok := node.(document.Barcode); ok {
				assert.Empty(t, b.Error, "every symbol is encoded before the document is built")
				assert.NotEmpty(t, b.SVG)
			}
		}
	}

	summary, err := f.service.GetJob(context.Background(), "job-1")
	require.NoError(t, err)
	assert.Equal(t, domain.JobStateReady, summary.State)
	assert.Equal(t, []string{"101", "102", "103"}, summary.ResolvedIDs)
	assert.Equal(t, "html", summary.Output)
}

// TestPrintService_PrintPartial verifies missing ids travel with the result.
func TestPrintService_PrintPartial(t *testing.T) {
	f := newFixture(t)

	result, err := f.service.Print(context.Background(), ports.PrintRequest{OrderIDs: []string{"101,404,103"}})

	require.NoError(t, err)
	assert.Equal(t, []string{"404"}, result.Job.Missing)
	assert.Len(t, f.html.docs[0].Pages, 2)
	assert.Equal(t, []string{"404"}, f.html.docs[0].Missing)
	assert.Equal(t, "standard", result.Job.Template.Key)
}

// TestPrintService_EmptyBatch verifies the fatal no-data outcome.
func TestPrintService_EmptyBatch(t *testing.T) {
	f := newFixture(t)

	result, err := f.service.Print(context.Background(), ports.PrintRequest{OrderIDs: []string{"x", "y"}})

	assert.Nil(t, result)
	assert.ErrorIs(t, err, ErrEmptyBatch)
	var emptyErr *EmptyBatchError
	require.ErrorAs(t, err, &emptyErr)
	assert.Equal(t, []string{"x", "y"}, emptyErr.Missing)
	assert.Empty(t, f.html.docs, "nothing is presented")

	summary, err := f.service.GetJob(context.Background(), emptyErr.JobID)
	require.NoError(t, err)
	assert.Equal(t, domain.JobStateNoData, summary.State)
}

// TestPrintService_NoOrderIDs verifies requests without ids are rejected.
func TestPrintService_NoOrderIDs(t *testing.T) {
	f := newFixture(t)

	_, err := f.service.Print(context.Background(), ports.PrintRequest{OrderIDs: []string{" ", ""}})
	assert.ErrorIs(t, err, ErrNoOrderIDs)

	_, err = f.service.Preview(context.Background(), ports.PrintRequest{})
	assert.ErrorIs(t, err, ErrNoOrderIDs)
}

// TestPrintService_PresentFailure verifies presentation errors are distinct from data errors.
func TestPrintService_PresentFailure(t *testing.T) {
	f := newFixture(t)
	f.html.err = errBackendDown

	result, err := f.service.Print(context.Background(), ports.PrintRequest{OrderIDs: []string{"101"}})

	assert.ErrorIs(t, err, ports.ErrPresentFailed)
	assert.NotErrorIs(t, err, ErrEmptyBatch)
	require.NotNil(t, result)
	assert.Equal(t, "job-1", result.Job.ID)
	assert.Nil(t, result.Artifact)
}

// TestPrintService_UnavailableOutput verifies an unregistered presenter.
func TestPrintService_UnavailableOutput(t *testing.T) {
	f := newFixture(t)

	_, err := f.service.Print(context.Background(), ports.PrintRequest{OrderIDs: []string{"101"}, Output: ports.OutputPDF})

	assert.ErrorIs(t, err, ports.ErrPresentFailed)
}

// TestPrintService_Preview verifies the on-screen rendering.
func TestPrintService_Preview(t *testing.T) {
	f := newFixture(t)

	result, err := f.service.Preview(context.Background(), ports.PrintRequest{OrderIDs: []string{"101", "nope"}, Carrier: "jnt", Format: "100x100"})

	require.NoError(t, err)
	assert.Equal(t, document.ContentTypeHTML, result.Artifact.ContentType)
	body := string(result.Artifact.Body)
	assert.Contains(t, body, `class="grid"`)
	assert.Contains(t, body, "nope")
	assert.NotContains(t, body, "window.print")
	assert.Equal(t, 1, strings.Count(body, `<article class="page"`))
	assert.Empty(t, f.html.docs)
}

// TestPrintService_IdempotentDocument verifies two builds of one job are identical.
func TestPrintService_IdempotentDocument(t *testing.T) {
	f := newFixture(t)
	job := NewAssembler(f.src, WithClock(fixedClock)).Assemble(context.Background(), []string{"101", "102"}, flashTemplate())

	assert.Equal(t, f.service.document(context.Background(), job), f.service.document(context.Background(), job))
}

// TestPrintService_SaveFailureIsNotFatal verifies job summaries are best effort.
func TestPrintService_SaveFailureIsNotFatal(t *testing.T) {
	f := newFixture(t)
	f.jobs.saveErr = errBackendDown

	result, err := f.service.Print(context.Background(), ports.PrintRequest{OrderIDs: []string{"101"}})

	require.NoError(t, err)
	assert.NotNil(t, result.Artifact)
}

// TestPrintService_GetJob verifies lookups without a repository and for unknown ids.
func TestPrintService_GetJob(t *testing.T) {
	f := newFixture(t)

	_, err := f.service.GetJob(context.Background(), "unknown")
	assert.ErrorIs(t, err, ports.ErrJobNotFound)

	f.service.jobs = nil
	_, err = f.service.GetJob(context.Background(), "job-1")
	assert.ErrorIs(t, err, ports.ErrJobNotFound)
}

func TestPrintService_Templates(t *testing.T) {
	assert.Len(t, newFixture(t).service.Templates(), 4)
}

// TestPrintService_Interrupted verifies an expired context is not reported as missing data.
func TestPrintService_Interrupted(t *testing.T) {
	f := newFixture(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := f.service.Print(ctx, ports.PrintRequest{OrderIDs: []string{"101"}})

	assert.ErrorIs(t, err, context.Canceled)
	assert.NotErrorIs(t, err, ErrEmptyBatch)
}

// TestPrintService_DeadlineMidBatch verifies a batch cut short by its deadline prints the resolved labels.
func TestPrintService_DeadlineMidBatch(t *testing.T) {
	f := newFixture(t)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	f.src.fetched = func(id string) {
		if id == "101" {
			cancel()
		}
	}

	result, err := f.service.Print(ctx, ports.PrintRequest{OrderIDs: []string{"101", "102", "103"}, Carrier: "flash"})

	require.NoError(t, err)
	require.NotNil(t, result.Artifact)
	assert.Equal(t, []string{"102", "103"}, result.Job.Missing)
	require.Len(t, f.html.docs, 1)
	require.Len(t, f.html.docs[0].Pages, 1)
	for _, node := range f.html.docs[0].Pages[0].Nodes {
		switch n := node.(type) {
		case document.Barcode:
			assert.Empty(t, n.Error)
		case document.QRCode:
			assert.Empty(t, n.Error, "symbols are encoded after the request context expired")
		}
	}

	summary, err := f.service.GetJob(context.Background(), result.Job.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"101"}, summary.ResolvedIDs)
}

// TestPrintService_PresentFailureKeepsCause verifies presenter errors keep their cause in the chain.
func TestPrintService_PresentFailureKeepsCause(t *testing.T) {
	f := newFixture(t)
	f.html.err = context.DeadlineExceeded

	_, err := f.service.Print(context.Background(), ports.PrintRequest{OrderIDs: []string{"101"}})

	assert.ErrorIs(t, err, ports.ErrPresentFailed)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}
