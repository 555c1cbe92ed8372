package document

// ExtractionMethod records which extraction path produced a document's text.
type ExtractionMethod string

const (
	// MethodNative means the text came from the PDF's embedded text layer.
	MethodNative ExtractionMethod = "native"
	// MethodVisionFallback means the text was transcribed by a multimodal
	// model because the text layer yielded too little Japanese text.
	MethodVisionFallback ExtractionMethod = "vision-fallback"
)

// Metadata carries document-level properties from the source file.
type Metadata struct {
	Title     string `json:"title,omitempty"`
	Author    string `json:"author,omitempty"`
	PageCount int    `json:"page_count"`
}

// ParsedDocument is the normalized output of the extraction stage,
// regardless of which path produced it.
//
// Pages is RawText split on the page boundary specific to the extraction
// path; whitespace-only fragments are dropped. Pages is non-empty whenever
// RawText is non-empty.
type ParsedDocument struct {
	RawText  string           `json:"raw_text"`
	Pages    []string         `json:"pages"`
	Metadata Metadata         `json:"metadata"`
	Method   ExtractionMethod `json:"extraction_method"`
}

// RequirementItem is a candidate requirement produced by a pattern scan or
// by the structured-extraction model. Candidates are never deduplicated
// across patterns: a name may appear once per pattern that matched it.
type RequirementItem struct {
	Category    string `json:"category"`
	Name        string `json:"name"`
	Description string `json:"description"`
	InputType   string `json:"input_type,omitempty"`
	Required    bool   `json:"required,omitempty"`
}

// CalculationFormula is a candidate calculation rule. Formula is a
// best-effort arithmetic hint for human review, not a computable
// expression. Variables preserves first-seen order without duplicates.
type CalculationFormula struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Formula     string   `json:"formula"`
	Variables   []string `json:"variables"`
	Conditions  string   `json:"conditions,omitempty"`
}

// FeeItem is a candidate fee or allowance. Amount, when present, is a
// half-width digit string with thousands separators stripped; it stays a
// string because the source prose may carry ranges or qualifiers.
type FeeItem struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Amount      string `json:"amount,omitempty"`
	Conditions  string `json:"conditions,omitempty"`
}

// TableData is a table-like appendix (別表). Headers is often empty: the
// extractor cannot reliably tell a header row from a data row in free text.
type TableData struct {
	Title   string     `json:"title"`
	Headers []string   `json:"headers"`
	Rows    [][]string `json:"rows"`
}

// Requirements aggregates everything extracted from one request's
// documents. It is the input to the spreadsheet writer and the JSON shape
// returned by the structured-extraction model.
type Requirements struct {
	Items    []RequirementItem    `json:"items"`
	Formulas []CalculationFormula `json:"formulas"`
	Fees     []FeeItem            `json:"fees"`
	Tables   []TableData          `json:"tables"`
}

// Empty reports whether nothing at all was extracted.
func (r Requirements) Empty() bool {
	return len(r.Items) == 0 && len(r.Formulas) == 0 && len(r.Fees) == 0 && len(r.Tables) == 0
}
