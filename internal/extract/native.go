package extract

import (
	"bytes"
	"fmt"
	"strings"

	pdflib "github.com/ledongthuc/pdf"
)

// NativeResult is the raw output of a text-layer extraction pass.
type NativeResult struct {
	Text      string
	PageCount int
	Title     string
	Author    string
}

// NativeExtractor recovers text directly from a PDF's embedded text layer.
type NativeExtractor interface {
	Extract(data []byte) (NativeResult, error)
}

// PDFTextExtractor implements NativeExtractor with ledongthuc/pdf.
type PDFTextExtractor struct{}

func (PDFTextExtractor) Extract(data []byte) (NativeResult, error) {
	reader, err := pdflib.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		// Corrupt and encrypted files both land here; the caller sees a
		// generic extraction failure.
		return NativeResult{}, fmt.Errorf("open pdf: %w", err)
	}

	var buf strings.Builder
	numPages := reader.NumPage()
	for i := 1; i <= numPages; i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			continue
		}
		if buf.Len() > 0 {
			buf.WriteString("\n")
		}
		buf.WriteString(text)
	}

	res := NativeResult{
		Text:      buf.String(),
		PageCount: numPages,
	}

	info := reader.Trailer().Key("Info")
	if !info.IsNull() {
		res.Title = pdfString(info.Key("Title"))
		res.Author = pdfString(info.Key("Author"))
	}
	return res, nil
}

func pdfString(v pdflib.Value) string {
	if v.Kind() != pdflib.String {
		return ""
	}
	return strings.TrimSpace(v.RawString())
}
