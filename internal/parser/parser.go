package parser

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/myamashita/regsheet/internal/document"
	"github.com/myamashita/regsheet/internal/extract"
)

// Parser converts raw document bytes into a ParsedDocument.
type Parser interface {
	Parse(ctx context.Context, data []byte, filename string) (document.ParsedDocument, error)
}

// SupportedExtensions lists file extensions this service can handle.
// Regulations normally arrive as PDF; Word and plain-text variants are
// common enough inside companies to be worth accepting.
var SupportedExtensions = map[string]bool{
	".pdf":  true,
	".docx": true,
	".txt":  true,
	".md":   true,
	".html": true,
	".htm":  true,
}

// Dispatcher picks a parser by file extension. PDF goes through the
// extraction orchestrator (native text layer with vision fallback); the
// other formats always carry a real text layer and are tagged native.
type Dispatcher struct {
	pdf *extract.Orchestrator
}

func NewDispatcher(pdf *extract.Orchestrator) *Dispatcher {
	return &Dispatcher{pdf: pdf}
}

// ForFile returns the appropriate parser for a filename.
func (d *Dispatcher) ForFile(filename string) (Parser, error) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".pdf":
		return &PDFParser{orch: d.pdf}, nil
	case ".docx":
		return &DOCXParser{}, nil
	case ".txt":
		return &TextParser{}, nil
	case ".md", ".markdown":
		return &MarkdownParser{}, nil
	case ".html", ".htm":
		return &HTMLParser{}, nil
	default:
		return nil, fmt.Errorf("unsupported file extension: %s", filepath.Ext(filename))
	}
}

// IsSupportedExtension checks if a file extension is supported.
func IsSupportedExtension(filename string) bool {
	return SupportedExtensions[strings.ToLower(filepath.Ext(filename))]
}

func titleFromFilename(filename string) string {
	base := filepath.Base(filename)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
