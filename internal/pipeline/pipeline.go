// Package pipeline drives one request end to end: parse every uploaded
// document, join, run one structured extraction over the combined text
// and render the workbook. Everything is request-scoped and ephemeral;
// nothing is stored.
package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/myamashita/regsheet/internal/document"
	"github.com/myamashita/regsheet/internal/genai"
	"github.com/myamashita/regsheet/internal/heuristic"
	"github.com/myamashita/regsheet/internal/parser"
	"github.com/myamashita/regsheet/internal/xlsx"
)

// Upload is one file from the request.
type Upload struct {
	Filename string
	Data     []byte
}

// Extractor is the structured-extraction collaborator (the hosted model).
type Extractor interface {
	ExtractRequirements(ctx context.Context, text string) (document.Requirements, error)
}

// Processor runs the upload-to-workbook pipeline.
type Processor struct {
	parsers   *parser.Dispatcher
	extractor Extractor
	heuristic *heuristic.Extractor
	log       *slog.Logger
}

func NewProcessor(parsers *parser.Dispatcher, extractor Extractor, h *heuristic.Extractor, log *slog.Logger) *Processor {
	if h == nil {
		h = heuristic.New(heuristic.DefaultConfig())
	}
	if log == nil {
		log = slog.Default()
	}
	return &Processor{
		parsers:   parsers,
		extractor: extractor,
		heuristic: h,
		log:       log,
	}
}

// Result is the outcome of one pipeline run.
type Result struct {
	Workbook     []byte
	Documents    []document.ParsedDocument
	Requirements document.Requirements
}

// Process parses all uploads concurrently (they are independent), joins,
// runs a single structured extraction over the concatenated texts and
// renders the workbook. A classified model-call failure is returned as-is
// so its diagnostic survives to the response.
func (p *Processor) Process(ctx context.Context, uploads []Upload) (Result, error) {
	if len(uploads) == 0 {
		return Result{}, fmt.Errorf("no documents to process")
	}

	runID := uuid.New().String()
	start := time.Now()
	log := p.log.With("run_id", runID)

	docs, err := p.parseAll(ctx, uploads, log)
	if err != nil {
		return Result{}, err
	}

	names := make([]string, len(uploads))
	texts := make([]string, len(docs))
	for i, d := range docs {
		names[i] = uploads[i].Filename
		texts[i] = d.RawText
	}
	combined := genai.BuildCombinedText(names, texts)

	reqs, err := p.extractor.ExtractRequirements(ctx, combined)
	if err != nil {
		return Result{}, err
	}

	wb, err := xlsx.Write(reqs)
	if err != nil {
		return Result{}, fmt.Errorf("render workbook: %w", err)
	}

	log.Info("pipeline.ok",
		"documents", len(docs),
		"items", len(reqs.Items),
		"formulas", len(reqs.Formulas),
		"fees", len(reqs.Fees),
		"tables", len(reqs.Tables),
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return Result{Workbook: wb, Documents: docs, Requirements: reqs}, nil
}

// ProcessHeuristic parses a single document and runs the pattern scans
// only, no model call. Zero matches is a valid, empty result.
func (p *Processor) ProcessHeuristic(ctx context.Context, up Upload) (document.ParsedDocument, document.Requirements, error) {
	doc, err := p.parseOne(ctx, up)
	if err != nil {
		return document.ParsedDocument{}, document.Requirements{}, err
	}
	return doc, p.heuristic.Extract(doc.RawText), nil
}

// parseAll fans out per-document parsing and joins before any combined
// processing. Document order is preserved.
func (p *Processor) parseAll(ctx context.Context, uploads []Upload, log *slog.Logger) ([]document.ParsedDocument, error) {
	docs := make([]document.ParsedDocument, len(uploads))
	g, ctx := errgroup.WithContext(ctx)
	for i, up := range uploads {
		i, up := i, up
		g.Go(func() error {
			doc, err := p.parseOne(ctx, up)
			if err != nil {
				return fmt.Errorf("%s: %w", up.Filename, err)
			}
			log.Info("pipeline.parsed",
				"filename", up.Filename,
				"method", doc.Method,
				"pages", len(doc.Pages),
				"chars", len(doc.RawText),
			)
			docs[i] = doc
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return docs, nil
}

func (p *Processor) parseOne(ctx context.Context, up Upload) (document.ParsedDocument, error) {
	ps, err := p.parsers.ForFile(up.Filename)
	if err != nil {
		return document.ParsedDocument{}, err
	}
	return ps.Parse(ctx, up.Data, up.Filename)
}
