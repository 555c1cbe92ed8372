package parser

import (
	"context"

	"github.com/myamashita/regsheet/internal/document"
	"github.com/myamashita/regsheet/internal/extract"
)

// PDFParser delegates to the extraction orchestrator, which decides
// between the native text layer and the vision fallback.
type PDFParser struct {
	orch *extract.Orchestrator
}

func (p *PDFParser) Parse(ctx context.Context, data []byte, filename string) (document.ParsedDocument, error) {
	doc, err := p.orch.Parse(ctx, data)
	if err != nil {
		return document.ParsedDocument{}, err
	}
	if doc.Metadata.Title == "" {
		doc.Metadata.Title = titleFromFilename(filename)
	}
	return doc, nil
}
