package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/rpascale86/nfcheck/internal/core/domain"
	"github.com/rpascale86/nfcheck/internal/core/ports/driven"
	"github.com/rpascale86/nfcheck/internal/core/ports/driving"
	"github.com/rpascale86/nfcheck/internal/logger"
)

// Ensure Processor implements the interfaces.
var (
	_ driving.Processor  = (*Processor)(nil)
	_ driving.RunHistory = (*Processor)(nil)
)

// Options carries the per-run pipeline settings.
type Options struct {
	// ManifestPath is the invoice manifest workbook.
	ManifestPath string

	// SourceDir is the folder tree searched for invoice PDFs.
	SourceDir string

	// ArchiveDir receives the renamed copies.
	ArchiveDir string
}

// Processor coordinates the invoice verification pipeline: manifest
// rows are located on disk, archived, extracted (with per-page OCR
// fallback) and verified field by field.
type Processor struct {
	opts      Options
	manifest  driven.ManifestStore
	locator   driven.InvoiceLocator
	archiver  driven.Archiver
	extractor driven.TextExtractor
	runs      driven.RunStore
	report    driven.ReportSink
	verifier  *Verifier

	// Status tracking
	mu      sync.RWMutex
	current *driving.RunStatus
}

// NewProcessor creates a pipeline processor. All dependencies are
// required except report, which may be nil to disable the text log.
func NewProcessor(
	opts Options,
	manifest driven.ManifestStore,
	locator driven.InvoiceLocator,
	archiver driven.Archiver,
	extractor driven.TextExtractor,
	runs driven.RunStore,
	report driven.ReportSink,
) *Processor {
	return &Processor{
		opts:      opts,
		manifest:  manifest,
		locator:   locator,
		archiver:  archiver,
		extractor: extractor,
		runs:      runs,
		report:    report,
		verifier:  NewVerifier(),
	}
}

// Process runs the full pipeline over the manifest.
func (p *Processor) Process(ctx context.Context) (*domain.Run, error) {
	if !p.begin() {
		return nil, domain.ErrRunInProgress
	}
	defer p.end()

	// 1. Load the manifest
	invoices, err := p.manifest.Load(ctx, p.opts.ManifestPath)
	if err != nil {
		p.log("Erro ao ler planilha: %v", err)
		return nil, fmt.Errorf("load manifest: %w", err)
	}

	run := &domain.Run{
		ID:           uuid.New().String(),
		ManifestPath: p.opts.ManifestPath,
		StartedAt:    time.Now(),
	}
	p.setStatus(&driving.RunStatus{RunID: run.ID, Running: true, Total: len(invoices)})

	p.log("Início do processamento de %d notas", len(invoices))
	logger.Info("Starting run %s over %d invoices", run.ID, len(invoices))

	// 2. Process each row, accumulating findings
	var findings []domain.Finding
	for _, inv := range invoices {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		rowFindings := p.processInvoice(ctx, run.ID, inv)
		findings = append(findings, rowFindings...)
		p.account(run, rowFindings)
	}

	run.FinishedAt = time.Now()

	// 3. Persist run and findings
	if err := p.runs.SaveRun(ctx, run); err != nil {
		return nil, fmt.Errorf("save run: %w", err)
	}
	if err := p.runs.SaveFindings(ctx, findings); err != nil {
		return nil, fmt.Errorf("save findings: %w", err)
	}

	p.log("Fim do processamento")
	logger.Info("Run %s complete: %d processed, %d divergent, %d missing, %d errors",
		run.ID, run.Processed, run.Divergent, run.Missing, run.Errors)
	return run, nil
}

// processInvoice handles one manifest row and returns its findings.
func (p *Processor) processInvoice(ctx context.Context, runID string, inv domain.Invoice) []domain.Finding {
	logger.Debug("Processing invoice %s (row %d)", inv.Number, inv.RowIndex)

	// 1. LOCATE the PDF under the source tree
	srcPath, err := p.locator.Find(ctx, p.opts.SourceDir, inv.Number)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			p.log("Nota não encontrada: %s", inv.Number)
			return []domain.Finding{p.finding(runID, inv.Number, "", "", domain.StatusMissing,
				fmt.Sprintf("no PDF matching %q under %s", inv.Number, p.opts.SourceDir))}
		}
		p.log("Erro ao procurar nota %s: %v", inv.Number, err)
		return []domain.Finding{p.finding(runID, inv.Number, "", "", domain.StatusError, err.Error())}
	}

	// 2. ARCHIVE under the canonical name
	destPath, err := p.archiver.Archive(ctx, srcPath, p.opts.ArchiveDir, inv.Number)
	if err != nil {
		p.log("Erro ao copiar nota %s: %v", inv.Number, err)
		return []domain.Finding{p.finding(runID, inv.Number, "", "", domain.StatusError,
			fmt.Sprintf("archive: %v", err))}
	}
	p.log("Nota %s copiada para %s", inv.Number, destPath)

	// 3. EXTRACT text, OCR fallback included
	pages, err := p.extractor.Extract(ctx, destPath)
	if err != nil {
		p.log("Erro ao processar PDF da nota %s: %v", inv.Number, err)
		return []domain.Finding{p.finding(runID, inv.Number, "", "", domain.StatusError,
			fmt.Sprintf("extract: %v", err))}
	}

	text, usedOCR := joinPages(pages)
	if strings.TrimSpace(text) == "" {
		p.log("Erro ao processar PDF da nota %s: %v", inv.Number, domain.ErrUnreadablePDF)
		return []domain.Finding{p.finding(runID, inv.Number, "", "", domain.StatusError,
			domain.ErrUnreadablePDF.Error())}
	}

	// 4. VERIFY each field
	var out []domain.Finding
	for _, field := range domain.VerifiedFields() {
		expected := inv.ExpectedValue(field)
		status := domain.StatusMatched
		detail := ""
		if usedOCR {
			detail = "text recovered via OCR"
		}
		if !p.verifier.Contains(text, expected) {
			status = domain.StatusDivergent
			p.log("Divergência em %s para nota %s: esperado %q não encontrado no PDF",
				field, inv.Number, expected)
		}
		out = append(out, p.finding(runID, inv.Number, field, expected, status, detail))
	}
	return out
}

// Status returns the current run status.
func (p *Processor) Status(_ context.Context) (*driving.RunStatus, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()

	if p.current == nil {
		return &driving.RunStatus{Running: false}, nil
	}
	// Return a copy to avoid race conditions
	st := *p.current
	return &st, nil
}

// Runs returns run history, most recent first.
func (p *Processor) Runs(ctx context.Context, limit int) ([]domain.Run, error) {
	return p.runs.ListRuns(ctx, limit)
}

// Findings returns findings for a run; empty runID means latest.
func (p *Processor) Findings(ctx context.Context, runID string) ([]domain.Finding, error) {
	if runID == "" {
		latest, err := p.runs.LatestRun(ctx)
		if err != nil {
			return nil, fmt.Errorf("latest run: %w", err)
		}
		runID = latest.ID
	}
	return p.runs.FindingsByRun(ctx, runID)
}

// account updates run counters and live status from one row's findings.
func (p *Processor) account(run *domain.Run, rowFindings []domain.Finding) {
	run.Processed++

	divergent, missing, failed := false, false, false
	for _, f := range rowFindings {
		switch f.Status {
		case domain.StatusDivergent:
			divergent = true
		case domain.StatusMissing:
			missing = true
		case domain.StatusError:
			failed = true
		}
	}

	switch {
	case missing:
		run.Missing++
	case failed:
		run.Errors++
	case divergent:
		run.Divergent++
	default:
		run.Matched++
	}

	p.mu.Lock()
	if p.current != nil {
		p.current.Processed = run.Processed
		p.current.Divergent = run.Divergent
		p.current.Missing = run.Missing
		p.current.Errors = run.Errors
	}
	p.mu.Unlock()
}

func (p *Processor) finding(runID, invoiceNumber string, field domain.Field, expected string, status domain.FindingStatus, detail string) domain.Finding {
	return domain.Finding{
		ID:            uuid.New().String(),
		RunID:         runID,
		InvoiceNumber: invoiceNumber,
		Field:         field,
		Expected:      expected,
		Status:        status,
		Detail:        detail,
		CreatedAt:     time.Now(),
	}
}

// log writes to the divergence report, best effort.
func (p *Processor) log(format string, args ...any) {
	if p.report == nil {
		return
	}
	if err := p.report.Log(fmt.Sprintf(format, args...)); err != nil {
		logger.Warn("report sink: %v", err)
	}
}

// setStatus replaces the live status read by the progress poller.
func (p *Processor) setStatus(status *driving.RunStatus) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.current = status
}

// begin marks a run as active; returns false when one already is.
func (p *Processor) begin() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.current != nil && p.current.Running {
		return false
	}
	p.current = &driving.RunStatus{Running: true}
	return true
}

func (p *Processor) end() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.current != nil {
		p.current.Running = false
	}
}

// joinPages concatenates page text and reports whether any page came
// from OCR.
func joinPages(pages []domain.PageText) (string, bool) {
	var b strings.Builder
	usedOCR := false
	for _, page := range pages {
		b.WriteString(page.Text)
		if page.OCR {
			usedOCR = true
		}
	}
	return b.String(), usedOCR
}
