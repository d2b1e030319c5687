package services

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rpascale86/nfcheck/internal/core/domain"
)

// fakeManifest returns a fixed set of invoices.
type fakeManifest struct {
	invoices []domain.Invoice
	err      error
}

func (f *fakeManifest) Load(_ context.Context, _ string) ([]domain.Invoice, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.invoices, nil
}

func (f *fakeManifest) WriteSample(_ context.Context, _ string, _ []domain.Invoice) error {
	return nil
}

// fakeLocator maps invoice numbers to paths.
type fakeLocator struct {
	paths map[string]string
}

func (f *fakeLocator) Find(_ context.Context, _, number string) (string, error) {
	if p, ok := f.paths[number]; ok {
		return p, nil
	}
	return "", domain.ErrNotFound
}

// fakeArchiver records archive calls.
type fakeArchiver struct {
	failFor string
}

func (f *fakeArchiver) Archive(_ context.Context, src, destDir, number string) (string, error) {
	if number == f.failFor {
		return "", fmt.Errorf("copy %s: permission denied", src)
	}
	return destDir + "/Nota_" + number + ".pdf", nil
}

// fakeExtractor returns canned text per archived path.
type fakeExtractor struct {
	text map[string]string
	ocr  bool
}

func (f *fakeExtractor) Extract(_ context.Context, path string) ([]domain.PageText, error) {
	text, ok := f.text[path]
	if !ok {
		return nil, domain.ErrUnreadablePDF
	}
	return []domain.PageText{{PageNumber: 1, Text: text, OCR: f.ocr}}, nil
}

// fakeRunStore keeps everything in memory.
type fakeRunStore struct {
	mu       sync.Mutex
	runs     []domain.Run
	findings []domain.Finding
}

func (f *fakeRunStore) SaveRun(_ context.Context, run *domain.Run) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.runs = append(f.runs, *run)
	return nil
}

func (f *fakeRunStore) SaveFindings(_ context.Context, findings []domain.Finding) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.findings = append(f.findings, findings...)
	return nil
}

func (f *fakeRunStore) ListRuns(_ context.Context, _ int) ([]domain.Run, error) {
	return f.runs, nil
}

func (f *fakeRunStore) GetRun(_ context.Context, id string) (*domain.Run, error) {
	for i := range f.runs {
		if f.runs[i].ID == id {
			return &f.runs[i], nil
		}
	}
	return nil, domain.ErrNotFound
}

func (f *fakeRunStore) LatestRun(_ context.Context) (*domain.Run, error) {
	if len(f.runs) == 0 {
		return nil, domain.ErrNotFound
	}
	return &f.runs[len(f.runs)-1], nil
}

func (f *fakeRunStore) FindingsByRun(_ context.Context, runID string) ([]domain.Finding, error) {
	var out []domain.Finding
	for _, fd := range f.findings {
		if fd.RunID == runID {
			out = append(out, fd)
		}
	}
	return out, nil
}

// fakeReport collects log lines.
type fakeReport struct {
	mu    sync.Mutex
	lines []string
}

func (f *fakeReport) Log(message string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lines = append(f.lines, message)
	return nil
}

func (f *fakeReport) Close() error { return nil }

func testInvoice(number string) domain.Invoice {
	return domain.Invoice{
		Number:      number,
		CNPJ:        "12.345.678/0001-99",
		TotalAmount: "1000.00",
		Description: "Produto A",
	}
}

func pdfText(inv domain.Invoice) string {
	return fmt.Sprintf("NumeroNota: %s\nCNPJ: %s\nValorTotal: %s\nDescricao: %s\n",
		inv.Number, inv.CNPJ, inv.TotalAmount, inv.Description)
}

func newTestProcessor(manifest *fakeManifest, locator *fakeLocator, archiver *fakeArchiver, extractor *fakeExtractor, store *fakeRunStore, report *fakeReport) *Processor {
	return NewProcessor(
		Options{ManifestPath: "/base/arquivo.xlsx", SourceDir: "/base/origem", ArchiveDir: "/base/destino"},
		manifest, locator, archiver, extractor, store, report,
	)
}

func TestProcess_AllMatched(t *testing.T) {
	inv := testInvoice("12345")
	store := &fakeRunStore{}
	report := &fakeReport{}

	p := newTestProcessor(
		&fakeManifest{invoices: []domain.Invoice{inv}},
		&fakeLocator{paths: map[string]string{"12345": "/base/origem/sub/nf 12345.pdf"}},
		&fakeArchiver{},
		&fakeExtractor{text: map[string]string{"/base/destino/Nota_12345.pdf": pdfText(inv)}},
		store, report,
	)

	run, err := p.Process(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 1, run.Processed)
	assert.Equal(t, 1, run.Matched)
	assert.True(t, run.Clean())

	findings, err := store.FindingsByRun(context.Background(), run.ID)
	require.NoError(t, err)
	require.Len(t, findings, 4)
	for _, f := range findings {
		assert.Equal(t, domain.StatusMatched, f.Status)
	}
}

func TestProcess_Divergence(t *testing.T) {
	inv := testInvoice("12345")
	pdf := testInvoice("12345")
	pdf.Description = "Produto B" // PDF disagrees with the manifest

	store := &fakeRunStore{}
	report := &fakeReport{}

	p := newTestProcessor(
		&fakeManifest{invoices: []domain.Invoice{inv}},
		&fakeLocator{paths: map[string]string{"12345": "/src/Nota_12345.pdf"}},
		&fakeArchiver{},
		&fakeExtractor{text: map[string]string{"/base/destino/Nota_12345.pdf": pdfText(pdf)}},
		store, report,
	)

	run, err := p.Process(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 1, run.Divergent)
	assert.Zero(t, run.Matched)

	findings, _ := store.FindingsByRun(context.Background(), run.ID)
	require.Len(t, findings, 4)

	byField := map[domain.Field]domain.FindingStatus{}
	for _, f := range findings {
		byField[f.Field] = f.Status
	}
	assert.Equal(t, domain.StatusMatched, byField[domain.FieldNumber])
	assert.Equal(t, domain.StatusDivergent, byField[domain.FieldDescription])

	// The divergence must appear in the report log.
	joined := fmt.Sprint(report.lines)
	assert.Contains(t, joined, "Divergência em Descricao para nota 12345")
}

func TestProcess_MissingInvoice(t *testing.T) {
	store := &fakeRunStore{}
	report := &fakeReport{}

	p := newTestProcessor(
		&fakeManifest{invoices: []domain.Invoice{testInvoice("67890")}},
		&fakeLocator{paths: map[string]string{}},
		&fakeArchiver{},
		&fakeExtractor{},
		store, report,
	)

	run, err := p.Process(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 1, run.Missing)

	findings, _ := store.FindingsByRun(context.Background(), run.ID)
	require.Len(t, findings, 1)
	assert.Equal(t, domain.StatusMissing, findings[0].Status)
	assert.Empty(t, string(findings[0].Field))

	assert.Contains(t, fmt.Sprint(report.lines), "Nota não encontrada: 67890")
}

func TestProcess_ArchiveFailureContinues(t *testing.T) {
	good := testInvoice("11111")
	store := &fakeRunStore{}

	p := newTestProcessor(
		&fakeManifest{invoices: []domain.Invoice{testInvoice("12345"), good}},
		&fakeLocator{paths: map[string]string{
			"12345": "/src/a.pdf",
			"11111": "/src/b.pdf",
		}},
		&fakeArchiver{failFor: "12345"},
		&fakeExtractor{text: map[string]string{"/base/destino/Nota_11111.pdf": pdfText(good)}},
		store, &fakeReport{},
	)

	run, err := p.Process(context.Background())
	require.NoError(t, err)

	// The failed copy does not stop the second invoice.
	assert.Equal(t, 2, run.Processed)
	assert.Equal(t, 1, run.Errors)
	assert.Equal(t, 1, run.Matched)
}

func TestProcess_UnreadablePDF(t *testing.T) {
	store := &fakeRunStore{}

	p := newTestProcessor(
		&fakeManifest{invoices: []domain.Invoice{testInvoice("12345")}},
		&fakeLocator{paths: map[string]string{"12345": "/src/a.pdf"}},
		&fakeArchiver{},
		&fakeExtractor{text: map[string]string{"/base/destino/Nota_12345.pdf": "   "}},
		store, &fakeReport{},
	)

	run, err := p.Process(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 1, run.Errors)

	findings, _ := store.FindingsByRun(context.Background(), run.ID)
	require.Len(t, findings, 1)
	assert.Equal(t, domain.StatusError, findings[0].Status)
	assert.Contains(t, findings[0].Detail, "unreadable")
}

func TestProcess_EmptyManifest(t *testing.T) {
	p := newTestProcessor(
		&fakeManifest{err: domain.ErrEmptyManifest},
		&fakeLocator{}, &fakeArchiver{}, &fakeExtractor{},
		&fakeRunStore{}, &fakeReport{},
	)

	_, err := p.Process(context.Background())
	assert.ErrorIs(t, err, domain.ErrEmptyManifest)
}

func TestProcess_OCRNoteInDetail(t *testing.T) {
	inv := testInvoice("12345")
	store := &fakeRunStore{}

	p := newTestProcessor(
		&fakeManifest{invoices: []domain.Invoice{inv}},
		&fakeLocator{paths: map[string]string{"12345": "/src/a.pdf"}},
		&fakeArchiver{},
		&fakeExtractor{text: map[string]string{"/base/destino/Nota_12345.pdf": pdfText(inv)}, ocr: true},
		store, &fakeReport{},
	)

	run, err := p.Process(context.Background())
	require.NoError(t, err)

	findings, _ := store.FindingsByRun(context.Background(), run.ID)
	require.NotEmpty(t, findings)
	assert.Equal(t, "text recovered via OCR", findings[0].Detail)
}

func TestFindings_LatestRun(t *testing.T) {
	inv := testInvoice("12345")
	store := &fakeRunStore{}

	p := newTestProcessor(
		&fakeManifest{invoices: []domain.Invoice{inv}},
		&fakeLocator{paths: map[string]string{"12345": "/src/a.pdf"}},
		&fakeArchiver{},
		&fakeExtractor{text: map[string]string{"/base/destino/Nota_12345.pdf": pdfText(inv)}},
		store, &fakeReport{},
	)

	run, err := p.Process(context.Background())
	require.NoError(t, err)

	// Empty runID resolves to the latest run.
	findings, err := p.Findings(context.Background(), "")
	require.NoError(t, err)
	require.Len(t, findings, 4)
	assert.Equal(t, run.ID, findings[0].RunID)
}

// blockingExtractor parks inside Extract until released, so a test
// can observe the pipeline mid-run.
type blockingExtractor struct {
	entered chan struct{}
	release chan struct{}
	text    string
}

func (b *blockingExtractor) Extract(_ context.Context, _ string) ([]domain.PageText, error) {
	close(b.entered)
	<-b.release
	return []domain.PageText{{PageNumber: 1, Text: b.text}}, nil
}

func TestStatus_DuringRun(t *testing.T) {
	inv := testInvoice("12345")
	extractor := &blockingExtractor{
		entered: make(chan struct{}),
		release: make(chan struct{}),
		text:    pdfText(inv),
	}

	p := NewProcessor(
		Options{ManifestPath: "/base/arquivo.xlsx", SourceDir: "/base/origem", ArchiveDir: "/base/destino"},
		&fakeManifest{invoices: []domain.Invoice{inv}},
		&fakeLocator{paths: map[string]string{"12345": "/src/a.pdf"}},
		&fakeArchiver{},
		extractor,
		&fakeRunStore{}, &fakeReport{},
	)

	done := make(chan *domain.Run, 1)
	go func() {
		run, err := p.Process(context.Background())
		assert.NoError(t, err)
		done <- run
	}()

	<-extractor.entered

	st, err := p.Status(context.Background())
	require.NoError(t, err)
	assert.True(t, st.Running)
	assert.NotEmpty(t, st.RunID)
	assert.Equal(t, 1, st.Total)
	assert.Zero(t, st.Processed)

	close(extractor.release)
	run := <-done
	require.NotNil(t, run)

	st, err = p.Status(context.Background())
	require.NoError(t, err)
	assert.False(t, st.Running)
	assert.Equal(t, run.ID, st.RunID)
	assert.Equal(t, 1, st.Processed)
}

func TestStatus_Idle(t *testing.T) {
	p := newTestProcessor(&fakeManifest{}, &fakeLocator{}, &fakeArchiver{}, &fakeExtractor{}, &fakeRunStore{}, nil)

	st, err := p.Status(context.Background())
	require.NoError(t, err)
	assert.False(t, st.Running)
}
