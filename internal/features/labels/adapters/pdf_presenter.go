package adapter

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"time"

	"label-printer/internal/core/config"
	"label-printer/internal/core/logger"
	"label-printer/internal/core/proxy"
	"label-printer/internal/features/labels/document"
	"label-printer/internal/features/labels/ports"
	"label-printer/internal/features/labels/templates"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
	"go.uber.org/zap"
)

// ContentTypePDF is the media type of PDFPresenter artifacts.
const ContentTypePDF = "application/pdf"

const cssPixelsPerInch = 96

// waitForLoad resolves once the load event has fired and every web font is ready.
const waitForLoad = `() => new Promise(resolve => {
	const done = () => document.fonts.ready.then(() => resolve(true));
	if (document.readyState === "complete") { done(); } else { window.addEventListener("load", done, { once: true }); }
})`

// tallestPage returns the height in CSS pixels of the tallest label page.
const tallestPage = `() => Math.max(0, ...Array.from(document.querySelectorAll(".page")).map(e => e.getBoundingClientRect().height))`

type pdfPrinter func(ctx context.Context, html string, box templates.PageBox) ([]byte, error)

// PDFPresenter prints documents to PDF with headless Chromium.
type PDFPresenter struct {
	chromeBin string
	proxy     proxy.Settings
	timeout   time.Duration
	renderer  document.PrintRenderer
	logger    *zap.Logger
	print     pdfPrinter
}

// NewPDFPresenter creates a PDFPresenter with the given printer and proxy settings.
func NewPDFPresenter(cfg config.PrinterConfig, proxySettings proxy.Settings) *PDFPresenter {
	p := &PDFPresenter{
		chromeBin: cfg.ChromeBin,
		proxy:     proxySettings,
		timeout:   cfg.Timeout(),
		renderer:  document.PrintRenderer{},
		logger:    logger.Get(),
	}
	p.print = p.printWithChromium
	return p
}

// Present implements ports.Presenter.
func (p *PDFPresenter) Present(ctx context.Context, doc *document.Document) (*ports.Artifact, error) {
	if p.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.timeout)
		defer cancel()
	}

	var buf bytes.Buffer
	if err := p.renderer.Render(&buf, doc); err != nil {
		return nil, fmt.Errorf("%w: %w", ports.ErrPresentFailed, err)
	}

	start := time.Now()
	pdf, err := p.print(ctx, buf.String(), doc.Page)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ports.ErrPresentFailed, err)
	}

	p.logger.Info("PDF printed",
		zap.String("job_id", doc.JobID),
		zap.Int("pages", len(doc.Pages)),
		zap.Int("bytes", len(pdf)),
		zap.Duration("duration", time.Since(start)),
	)

	return &ports.Artifact{
		ContentType: ContentTypePDF,
		Filename:    fmt.Sprintf("labels-%s.pdf", doc.JobID),
		Body:        pdf,
	}, nil
}

// launcher configures the browser process. proxyAddr may be empty.
func (p *PDFPresenter) launcher(ctx context.Context, proxyAddr string) *launcher.Launcher {
	l := launcher.New().
		Context(ctx).
		Headless(true).
		NoSandbox(true)

	if p.chromeBin != "" {
		l = l.Bin(p.chromeBin)
	}

	// Configure proxy - use local forwarder address (no auth needed)
	if proxyAddr != "" {
		l = l.Proxy(proxyAddr)
		p.logger.Debug("Browser configured with proxy", zap.String("proxy", proxyAddr))
	}

	return l
}

// startProxy returns the proxy address for the browser and a func releasing it.
// Credentials are handled by a local forwarder because Chromium cannot take them on the command line.
func (p *PDFPresenter) startProxy(ctx context.Context) (string, func(), error) {
	if !p.proxy.HasProxy() {
		return "", func() {}, nil
	}
	if !p.proxy.HasCredentials() {
		return p.proxy.HostPort(), func() {}, nil
	}

	forwarder, err := proxy.NewForwardingProxy(p.proxy.FullURL())
	if err != nil {
		return "", nil, fmt.Errorf("failed to create proxy forwarder: %w", err)
	}
	addr, err := forwarder.Start(ctx)
	if err != nil {
		return "", nil, fmt.Errorf("failed to start proxy forwarder: %w", err)
	}
	p.logger.Debug("Local proxy forwarder started", zap.String("local_addr", addr))

	return addr, func() { _ = forwarder.Stop() }, nil
}

func (p *PDFPresenter) printWithChromium(ctx context.Context, html string, box templates.PageBox) ([]byte, error) {
	proxyAddr, stopProxy, err := p.startProxy(ctx)
	if err != nil {
		return nil, err
	}
	defer stopProxy()

	l := p.launcher(ctx, proxyAddr)
	u, err := l.Launch()
	if err != nil {
		return nil, fmt.Errorf("failed to launch browser: %w", err)
	}
	defer l.Cleanup()

	browser := rod.New().Context(ctx).ControlURL(u)
	if err := browser.Connect(); err != nil {
		return nil, fmt.Errorf("failed to connect to browser: %w", err)
	}
	defer browser.Close()

	page, err := browser.Page(proto.TargetCreateTarget{URL: "about:blank"})
	if err != nil {
		return nil, fmt.Errorf("failed to open page: %w", err)
	}
	if err := page.SetDocumentContent(html); err != nil {
		return nil, fmt.Errorf("failed to load document: %w", err)
	}
	if _, err := page.Eval(waitForLoad); err != nil {
		return nil, fmt.Errorf("failed waiting for document load: %w", err)
	}

	width, height := box.Inches()
	if box.Auto() {
		res, err := page.Eval(tallestPage)
		if err != nil {
			return nil, fmt.Errorf("failed to measure pages: %w", err)
		}
		if px := res.Value.Num(); px > 0 {
			height = px / cssPixelsPerInch
		}
	}

	zero := 0.0
	stream, err := page.PDF(&proto.PagePrintToPDF{
		PaperWidth:        &width,
		PaperHeight:       &height,
		MarginTop:         &zero,
		MarginBottom:      &zero,
		MarginLeft:        &zero,
		MarginRight:       &zero,
		PrintBackground:   true,
		PreferCSSPageSize: !box.Auto(),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to print pdf: %w", err)
	}

	data, err := io.ReadAll(stream)
	if err != nil {
		return nil, fmt.Errorf("failed to read pdf: %w", err)
	}
	return data, nil
}
