package ports

import (
	"context"
	"errors"

	"label-printer/internal/features/labels/document"
	"label-printer/internal/features/labels/domain"
	"label-printer/internal/features/labels/templates"
)

var (
	// ErrPresentFailed is returned when a document could not be handed to the print target.
	ErrPresentFailed = errors.New("print presentation failed")
	// ErrJobNotFound is returned when a job summary is unknown or expired.
	ErrJobNotFound = errors.New("job not found")
)

// Output selects how a print job is delivered.
type Output string

const (
	// OutputHTML is a print-ready page that opens the print dialog when loaded.
	OutputHTML Output = "html"
	// OutputPDF is a paginated PDF rendered by a headless browser.
	OutputPDF Output = "pdf"
)

// ParseOutput maps a query value to an Output. Empty means HTML.
func ParseOutput(s string) (Output, bool) {
	switch Output(s) {
	case "", OutputHTML:
		return OutputHTML, true
	case OutputPDF:
		return OutputPDF, true
	}
	return "", false
}

// PrintRequest describes a batch to print.
type PrintRequest struct {
	OrderIDs []string
	Carrier  string
	Format   string
	Output   Output
}

// PrintResult is the delivered artifact together with the job it came from.
type PrintResult struct {
	Job      *domain.Job
	Artifact *Artifact
}

// Artifact is the bytes handed to the client.
type Artifact struct {
	ContentType string
	// Filename is set when the artifact should be downloaded rather than displayed.
	Filename string
	Body     []byte
}

// LabelService defines the primary port for label printing.
type LabelService interface {
	Print(ctx context.Context, req PrintRequest) (*PrintResult, error)
	Preview(ctx context.Context, req PrintRequest) (*PrintResult, error)
	GetJob(ctx context.Context, id string) (*domain.JobSummary, error)
	Templates() []templates.Template
}

// Presenter hands a finished document to a print target. It is the only side effect of printing.
type Presenter interface {
	Present(ctx context.Context, doc *document.Document) (*Artifact, error)
}

// JobRepository defines the secondary port for job summaries.
type JobRepository interface {
	Save(ctx context.Context, summary domain.JobSummary) error
	Get(ctx context.Context, id string) (*domain.JobSummary, error)
}
