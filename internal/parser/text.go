package parser

import (
	"bufio"
	"bytes"
	"context"
	"strings"

	"github.com/myamashita/regsheet/internal/document"
)

// TextParser handles plain text files. Blank-line-separated blocks become
// the page segments; there is no better boundary signal in plain text.
type TextParser struct{}

func (p *TextParser) Parse(ctx context.Context, data []byte, filename string) (document.ParsedDocument, error) {
	scanner := bufio.NewScanner(bytes.NewReader(data))
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	var blocks []string
	var current strings.Builder

	for scanner.Scan() {
		line := scanner.Text()
		if strings.TrimSpace(line) == "" {
			if current.Len() > 0 {
				blocks = append(blocks, current.String())
				current.Reset()
			}
		} else {
			if current.Len() > 0 {
				current.WriteString("\n")
			}
			current.WriteString(line)
		}
	}
	if current.Len() > 0 {
		blocks = append(blocks, current.String())
	}
	if err := scanner.Err(); err != nil {
		return document.ParsedDocument{}, err
	}

	return fromBlocks(blocks, titleFromFilename(filename)), nil
}

// fromBlocks assembles a native-tagged ParsedDocument from text segments,
// upholding the pages-nonempty-when-text-nonempty invariant.
func fromBlocks(blocks []string, title string) document.ParsedDocument {
	var pages []string
	for _, b := range blocks {
		if b = strings.TrimSpace(b); b != "" {
			pages = append(pages, b)
		}
	}
	raw := strings.Join(pages, "\n\n")
	return document.ParsedDocument{
		RawText: raw,
		Pages:   pages,
		Metadata: document.Metadata{
			Title:     title,
			PageCount: len(pages),
		},
		Method: document.MethodNative,
	}
}
