package extract

import (
	"regexp"
	"strings"
)

// PageBreakMarker is the literal token the vision model is instructed to
// emit between pages. Splitting on it is the only page signal the
// fallback path has.
const PageBreakMarker = "--- ページ区切り ---"

// Typical PDF page-footer artifact: a line holding "- 3 -" style page
// numbering between two newlines.
var nativePageBreakRe = regexp.MustCompile(`\n[ \t　]*-[ \t　]*[0-9０-９]+[ \t　]*-[ \t　]*\n`)

// SplitNativePages splits text extracted from a PDF text layer on the
// page-footer pattern. Whitespace-only fragments are dropped; non-empty
// input always yields at least one page, so re-splitting a page returns
// the page itself.
func SplitNativePages(text string) []string {
	return keepPages(nativePageBreakRe.Split(text, -1), text)
}

// SplitVisionPages splits transcribed text on the literal page-break
// marker the transcription instruction mandates.
func SplitVisionPages(text string) []string {
	return keepPages(strings.Split(text, PageBreakMarker), text)
}

func keepPages(fragments []string, raw string) []string {
	var pages []string
	for _, f := range fragments {
		if f = strings.TrimSpace(f); f != "" {
			pages = append(pages, f)
		}
	}
	if len(pages) == 0 {
		if raw = strings.TrimSpace(raw); raw != "" {
			pages = []string{raw}
		}
	}
	return pages
}
