package heuristic

import (
	"regexp"
	"strings"

	"github.com/myamashita/regsheet/internal/jptext"
)

// Japanese numeric-expression idioms, applied in order. Each is a global
// textual substitution over the output of the previous one; the result is
// a review hint, not a parseable expression, and may keep residual prose.
var (
	wariRe    = regexp.MustCompile(`[0-9０-９]+割`)  // tenths
	buRe      = regexp.MustCompile(`[0-9０-９]+分`)  // hundredths
	percentRe = regexp.MustCompile(`[0-9０-９]+[%％]`)
	baiRe     = regexp.MustCompile(`[0-9０-９]+倍`) // multiplier
	yenRe     = regexp.MustCompile(`[0-9０-９][0-9０-９,，]*円`)
)

// TranslateFormula rewrites Japanese numeric idioms in desc into a
// normalized arithmetic-hint string: 2割 → "2 * 0.1", 3分 → "3 * 0.01",
// 5% → "5 * 0.01", 10倍 → "* 10", 1,000円 → "1000". Full-width digits are
// normalized to half-width.
//
// Known limitation: 分 also means "minutes"; time expressions are
// mistranslated because no disambiguation is attempted.
func TranslateFormula(desc string) string {
	s := wariRe.ReplaceAllStringFunc(desc, func(m string) string {
		return jptext.ToHalfWidth(strings.TrimSuffix(m, "割")) + " * 0.1"
	})
	s = buRe.ReplaceAllStringFunc(s, func(m string) string {
		return jptext.ToHalfWidth(strings.TrimSuffix(m, "分")) + " * 0.01"
	})
	s = percentRe.ReplaceAllStringFunc(s, func(m string) string {
		m = strings.TrimSuffix(strings.TrimSuffix(m, "%"), "％")
		return jptext.ToHalfWidth(m) + " * 0.01"
	})
	s = baiRe.ReplaceAllStringFunc(s, func(m string) string {
		return "* " + jptext.ToHalfWidth(strings.TrimSuffix(m, "倍"))
	})
	s = yenRe.ReplaceAllStringFunc(s, func(m string) string {
		return jptext.NormalizeDigits(strings.TrimSuffix(m, "円"))
	})
	return s
}

// Terms ending in a money/rate suffix, bounded by 、, 。 or the ends of
// the description.
var variableRe = regexp.MustCompile(`[^、。\n]+[料額費金率]`)

// ExtractVariables returns candidate variable names found in desc:
// substrings ending in 料, 額, 費, 金 or 率. Duplicates are dropped by
// exact string match; first-seen order is preserved.
func ExtractVariables(desc string) []string {
	seen := make(map[string]bool)
	var vars []string
	for _, v := range variableRe.FindAllString(desc, -1) {
		v = strings.TrimSpace(v)
		if v == "" || seen[v] {
			continue
		}
		seen[v] = true
		vars = append(vars, v)
	}
	return vars
}
