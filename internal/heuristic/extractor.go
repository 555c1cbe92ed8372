// Package heuristic scans regulation prose for candidate requirement
// records using fixed patterns over legal-Japanese idioms. The scans are
// best-effort and approximate: they feed a review spreadsheet, not a
// rules engine. Every scan is pure and total: empty or non-matching
// input yields an empty collection, never an error.
package heuristic

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/myamashita/regsheet/internal/document"
	"github.com/myamashita/regsheet/internal/jptext"
)

// Config holds the tunable scan parameters.
type Config struct {
	// TableCellGap is the minimum run of whitespace that separates two
	// cells in an appendix table line. A tab always separates cells.
	TableCellGap int
}

// DefaultConfig returns the scan parameters used when none are configured.
func DefaultConfig() Config {
	return Config{TableCellGap: 2}
}

// Extractor applies the pattern scans. The scans read immutable text and
// share no state, so one Extractor is safe for concurrent use.
type Extractor struct {
	cfg       Config
	cellSplit *regexp.Regexp
}

// New builds an Extractor, compiling the cell-split pattern from cfg.
func New(cfg Config) *Extractor {
	if cfg.TableCellGap <= 0 {
		cfg.TableCellGap = DefaultConfig().TableCellGap
	}
	return &Extractor{
		cfg: cfg,
		// Tab, or a run of spaces (half- or full-width) of at least the
		// configured length. The only column-delimiter signal available
		// in free-form text.
		cellSplit: regexp.MustCompile(fmt.Sprintf(`\t|[\s　]{%d,}`, cfg.TableCellGap)),
	}
}

// Extract runs all four scans over text.
func (e *Extractor) Extract(text string) document.Requirements {
	return document.Requirements{
		Items:    e.Definitions(text),
		Formulas: e.Formulas(text),
		Fees:     e.Fees(text),
		Tables:   e.Tables(text),
	}
}

// 「用語」とは、説明をいう。 with or without the corner brackets.
var definitionRe = regexp.MustCompile(`(?:「([^」\n]{1,40})」|([^\s、。「」\n]{1,20}))とは[、，]\s*([^。\n]+)`)

// Definitions scans for the defined-term idiom. Each match becomes one
// candidate with category 定義; matches are never merged or deduplicated.
func (e *Extractor) Definitions(text string) []document.RequirementItem {
	var items []document.RequirementItem
	for _, m := range definitionRe.FindAllStringSubmatch(text, -1) {
		name := m[1]
		if name == "" {
			name = m[2]
		}
		items = append(items, document.RequirementItem{
			Category:    "定義",
			Name:        strings.TrimSpace(name),
			Description: strings.TrimSpace(m[3]),
			InputType:   "text",
		})
	}
	return items
}

// 条項は、内容とする。
var formulaRe = regexp.MustCompile(`([^、。\n]{5,50})は[、，]\s*([^。\n]+?)とする`)

// numericHint gates formula candidates: the は…とする idiom is pervasive
// in regulatory Japanese for plain definitions too, so only descriptions
// carrying a numeral or a unit-like token (割, 分, 倍, 円, 率, 額) are kept.
var numericHint = regexp.MustCompile(`[0-9０-９]|[割分倍円率額]`)

// Formulas scans for the X は、Y とする idiom and keeps matches whose
// description looks numeric. The formula string is a translated hint only.
func (e *Extractor) Formulas(text string) []document.CalculationFormula {
	var formulas []document.CalculationFormula
	for _, m := range formulaRe.FindAllStringSubmatch(text, -1) {
		name := strings.TrimSpace(m[1])
		desc := strings.TrimSpace(m[2])
		if !numericHint.MatchString(desc) {
			continue
		}
		formulas = append(formulas, document.CalculationFormula{
			Name:        name,
			Description: desc,
			Formula:     TranslateFormula(desc),
			Variables:   ExtractVariables(desc),
		})
	}
	return formulas
}

// 〜費/料/金/手当 は、説明。 (は or を)
var feeRe = regexp.MustCompile(`([^\s、。\n]{1,30}(?:費|料|金|手当))[はを][、，]\s*([^。\n]+)`)

var feeAmountRe = regexp.MustCompile(`([0-9０-９][0-9０-９,，]*)円`)

// Fees scans for fee, charge and allowance clauses. Amounts stay strings:
// the prose may carry ranges or qualifiers a numeric type would lose.
func (e *Extractor) Fees(text string) []document.FeeItem {
	var fees []document.FeeItem
	for _, m := range feeRe.FindAllStringSubmatch(text, -1) {
		item := document.FeeItem{
			Name:        strings.TrimSpace(m[1]),
			Description: strings.TrimSpace(m[2]),
		}
		if am := feeAmountRe.FindStringSubmatch(m[2]); am != nil {
			item.Amount = jptext.NormalizeDigits(am[1])
		}
		fees = append(fees, item)
	}
	return fees
}

// 別表N header line. The body runs to the next appendix, the supplementary
// provisions (付則), the end-of-document marker (以上) or end of text.
var (
	tableHeaderRe     = regexp.MustCompile(`(?m)^別表[ 　]*[0-9０-９]+[^\n]*`)
	tableTerminatorRe = regexp.MustCompile(`(?m)^(付則|以上)`)
)

// Tables scans for table-like appendices (別表). Headers are left empty:
// nothing in free-form text reliably distinguishes a header row from a
// data row, so every non-blank line becomes a row.
func (e *Extractor) Tables(text string) []document.TableData {
	headers := tableHeaderRe.FindAllStringIndex(text, -1)
	var tables []document.TableData
	for i, h := range headers {
		title := strings.TrimSpace(text[h[0]:h[1]])

		bodyStart := h[1]
		bodyEnd := len(text)
		if i+1 < len(headers) {
			bodyEnd = headers[i+1][0]
		}
		body := text[bodyStart:bodyEnd]
		if term := tableTerminatorRe.FindStringIndex(body); term != nil {
			body = body[:term[0]]
		}

		var rows [][]string
		for _, line := range strings.Split(body, "\n") {
			line = strings.TrimSpace(line)
			if line == "" {
				continue
			}
			var cells []string
			for _, c := range e.cellSplit.Split(line, -1) {
				if c = strings.TrimSpace(c); c != "" {
					cells = append(cells, c)
				}
			}
			if len(cells) > 0 {
				rows = append(rows, cells)
			}
		}

		tables = append(tables, document.TableData{
			Title:   title,
			Headers: []string{},
			Rows:    rows,
		})
	}
	return tables
}
