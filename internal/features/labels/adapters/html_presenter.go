package adapter

import (
	"bytes"
	"context"
	"fmt"

	"label-printer/internal/features/labels/document"
	"label-printer/internal/features/labels/ports"
)

// HTMLPresenter hands the print document to the caller's browser, which prints it on load.
type HTMLPresenter struct {
	renderer document.PrintRenderer
}

// NewHTMLPresenter creates an HTMLPresenter. autoPrint opens the print dialog once the page has loaded.
func NewHTMLPresenter(autoPrint bool) *HTMLPresenter {
	return &HTMLPresenter{
		renderer: document.PrintRenderer{AutoPrint: autoPrint},
	}
}

// Present implements ports.Presenter.
func (p *HTMLPresenter) Present(ctx context.Context, doc *document.Document) (*ports.Artifact, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ports.ErrPresentFailed, err)
	}

	var buf bytes.Buffer
	if err := p.renderer.Render(&buf, doc); err != nil {
		return nil, fmt.Errorf("%w: %w", ports.ErrPresentFailed, err)
	}

	return &ports.Artifact{
		ContentType: p.renderer.ContentType(),
		Body:        buf.Bytes(),
	}, nil
}
