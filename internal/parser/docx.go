package parser

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/fumiama/go-docx"

	"github.com/myamashita/regsheet/internal/document"
)

// DOCXParser handles .docx regulations. Paragraph text is flattened in
// document order; Word files carry no page boundaries worth trusting, so
// blank-line blocks become the page segments.
type DOCXParser struct{}

func (p *DOCXParser) Parse(ctx context.Context, data []byte, filename string) (document.ParsedDocument, error) {
	doc, err := docx.Parse(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return document.ParsedDocument{}, fmt.Errorf("parse docx: %w", err)
	}

	var blocks []string
	var current strings.Builder
	for _, item := range doc.Document.Body.Items {
		para, ok := item.(*docx.Paragraph)
		if !ok {
			continue
		}
		text := paragraphText(para)
		if text == "" {
			if current.Len() > 0 {
				blocks = append(blocks, current.String())
				current.Reset()
			}
			continue
		}
		if current.Len() > 0 {
			current.WriteString("\n")
		}
		current.WriteString(text)
	}
	if current.Len() > 0 {
		blocks = append(blocks, current.String())
	}

	return fromBlocks(blocks, titleFromFilename(filename)), nil
}

func paragraphText(para *docx.Paragraph) string {
	var buf strings.Builder
	for _, child := range para.Children {
		run, ok := child.(*docx.Run)
		if !ok {
			continue
		}
		for _, rc := range run.Children {
			if t, ok := rc.(*docx.Text); ok {
				buf.WriteString(t.Text)
			}
		}
	}
	return strings.TrimSpace(buf.String())
}
