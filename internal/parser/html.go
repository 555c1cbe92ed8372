package parser

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"golang.org/x/net/html"

	"github.com/myamashita/regsheet/internal/document"
)

// HTMLParser handles HTML regulations. Headings start new segments;
// script, style and chrome elements are skipped.
type HTMLParser struct{}

func (p *HTMLParser) Parse(ctx context.Context, data []byte, filename string) (document.ParsedDocument, error) {
	root, err := html.Parse(bytes.NewReader(data))
	if err != nil {
		return document.ParsedDocument{}, fmt.Errorf("parse html: %w", err)
	}

	title := titleFromFilename(filename)
	if t := findTitle(root); t != "" {
		title = t
	}

	var blocks []string
	var current strings.Builder
	flush := func() {
		if current.Len() > 0 {
			blocks = append(blocks, current.String())
			current.Reset()
		}
	}
	appendLine := func(t string) {
		if t == "" {
			return
		}
		if current.Len() > 0 {
			current.WriteString("\n")
		}
		current.WriteString(t)
	}

	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			switch n.Data {
			case "script", "style", "nav", "footer", "header":
				return
			case "h1", "h2", "h3", "h4", "h5", "h6":
				flush()
				appendLine(textContent(n))
				return
			case "p", "li", "td", "th", "blockquote":
				appendLine(textContent(n))
				return
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}

	if body := findBody(root); body != nil {
		walk(body)
	} else {
		walk(root)
	}
	flush()

	return fromBlocks(blocks, title), nil
}

func textContent(n *html.Node) string {
	var buf strings.Builder
	var extract func(*html.Node)
	extract = func(n *html.Node) {
		if n.Type == html.TextNode {
			buf.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			extract(c)
		}
	}
	extract(n)
	return strings.TrimSpace(buf.String())
}

func findTitle(n *html.Node) string {
	if n.Type == html.ElementNode && n.Data == "title" {
		return textContent(n)
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if t := findTitle(c); t != "" {
			return t
		}
	}
	return ""
}

func findBody(n *html.Node) *html.Node {
	if n.Type == html.ElementNode && n.Data == "body" {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if b := findBody(c); b != nil {
			return b
		}
	}
	return nil
}
