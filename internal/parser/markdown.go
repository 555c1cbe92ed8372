package parser

import (
	"bytes"
	"context"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"

	"github.com/myamashita/regsheet/internal/document"
)

// MarkdownParser handles Markdown regulations using goldmark. Each
// heading starts a new segment; the first heading doubles as the title.
type MarkdownParser struct{}

func (p *MarkdownParser) Parse(ctx context.Context, data []byte, filename string) (document.ParsedDocument, error) {
	md := goldmark.New()
	root := md.Parser().Parse(text.NewReader(data))

	title := titleFromFilename(filename)
	sawHeading := false

	var blocks []string
	var current strings.Builder
	flush := func() {
		if current.Len() > 0 {
			blocks = append(blocks, current.String())
			current.Reset()
		}
	}

	for n := root.FirstChild(); n != nil; n = n.NextSibling() {
		switch node := n.(type) {
		case *ast.Heading:
			flush()
			heading := string(node.Text(data))
			if !sawHeading {
				title = heading
				sawHeading = true
			}
			current.WriteString(heading)
		default:
			t := blockText(n, data)
			if t != "" {
				if current.Len() > 0 {
					current.WriteString("\n")
				}
				current.WriteString(t)
			}
		}
	}
	flush()

	return fromBlocks(blocks, title), nil
}

// blockText gets the text content of a goldmark AST node.
func blockText(n ast.Node, src []byte) string {
	var buf bytes.Buffer
	if n.Type() == ast.TypeBlock && n.Lines().Len() > 0 {
		lines := n.Lines()
		for i := 0; i < lines.Len(); i++ {
			seg := lines.At(i)
			buf.Write(seg.Value(src))
		}
		return strings.TrimSpace(buf.String())
	}
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		if t, ok := c.(*ast.Text); ok {
			buf.Write(t.Value(src))
			if t.HardLineBreak() || t.SoftLineBreak() {
				buf.WriteByte('\n')
			}
		} else {
			buf.WriteString(blockText(c, src))
		}
	}
	return strings.TrimSpace(buf.String())
}
