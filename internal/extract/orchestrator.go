package extract

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/myamashita/regsheet/internal/document"
	"github.com/myamashita/regsheet/internal/jptext"
)

// DefaultMinJapanese is the Japanese-character count at which a native
// extraction result is trusted. Below it the text layer is assumed to be
// missing or useless (scanned image) and the vision fallback runs.
//
// The check is a raw count, not a ratio: a long low-density document can
// pass on 50 stray CJK characters. Kept as-is; the threshold is
// configurable rather than validated.
const DefaultMinJapanese = 50

// Transcriber reconstructs text from a PDF via a vision-capable model.
type Transcriber interface {
	TranscribePDF(ctx context.Context, data []byte) (string, error)
}

// Orchestrator turns raw PDF bytes into a ParsedDocument, choosing
// between the native text layer and the vision fallback.
type Orchestrator struct {
	native      NativeExtractor
	vision      Transcriber
	minJapanese int
	log         *slog.Logger
}

func NewOrchestrator(native NativeExtractor, vision Transcriber, minJapanese int, log *slog.Logger) *Orchestrator {
	if native == nil {
		native = PDFTextExtractor{}
	}
	if minJapanese <= 0 {
		minJapanese = DefaultMinJapanese
	}
	if log == nil {
		log = slog.Default()
	}
	return &Orchestrator{
		native:      native,
		vision:      vision,
		minJapanese: minJapanese,
		log:         log,
	}
}

// Parse runs native extraction, applies the Japanese-density check and
// falls back to transcription when the text layer is too thin. The native
// pass always runs first: its page count and metadata are needed on both
// paths (the fallback model does not reliably report a page count).
func (o *Orchestrator) Parse(ctx context.Context, data []byte) (document.ParsedDocument, error) {
	nat, err := o.native.Extract(data)
	if err != nil {
		return document.ParsedDocument{}, fmt.Errorf("native extraction: %w", err)
	}

	meta := document.Metadata{
		Title:     nat.Title,
		Author:    nat.Author,
		PageCount: nat.PageCount,
	}

	jpCount := jptext.CountJapanese(nat.Text)
	if jpCount >= o.minJapanese {
		o.log.Info("extract.native.ok",
			"pages", nat.PageCount,
			"chars", len(nat.Text),
			"jp_chars", jpCount,
		)
		return document.ParsedDocument{
			RawText:  nat.Text,
			Pages:    SplitNativePages(nat.Text),
			Metadata: meta,
			Method:   document.MethodNative,
		}, nil
	}

	o.log.Info("extract.fallback.start",
		"jp_chars", jpCount,
		"threshold", o.minJapanese,
		"pages", nat.PageCount,
	)
	if o.vision == nil {
		return document.ParsedDocument{}, fmt.Errorf("text layer yielded %d Japanese characters (threshold %d) and no vision fallback is configured", jpCount, o.minJapanese)
	}

	text, err := o.vision.TranscribePDF(ctx, data)
	if err != nil {
		// Already classified at the call site; keep the classification
		// intact for the operator-facing diagnostic.
		return document.ParsedDocument{}, err
	}

	o.log.Info("extract.fallback.ok", "chars", len(text), "pages", nat.PageCount)
	return document.ParsedDocument{
		RawText:  text,
		Pages:    SplitVisionPages(text),
		Metadata: meta,
		Method:   document.MethodVisionFallback,
	}, nil
}
