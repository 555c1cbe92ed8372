package genai

import (
	"strings"

	"github.com/myamashita/regsheet/internal/document"
	"github.com/myamashita/regsheet/internal/jptext"
)

const maxDescriptionLen = 500 // runes; model output occasionally rambles

// CleanRequirements normalizes model output in place and drops entries a
// reviewer could do nothing with (blank names). Returns the number of
// dropped entries.
func CleanRequirements(r *document.Requirements) int {
	dropped := 0

	items := r.Items[:0]
	for _, it := range r.Items {
		it.Name = strings.TrimSpace(it.Name)
		if it.Name == "" {
			dropped++
			continue
		}
		it.Category = strings.TrimSpace(it.Category)
		it.Description = clampRunes(strings.TrimSpace(it.Description), maxDescriptionLen)
		if it.InputType == "" {
			it.InputType = "text"
		}
		items = append(items, it)
	}
	r.Items = items

	formulas := r.Formulas[:0]
	for _, f := range r.Formulas {
		f.Name = strings.TrimSpace(f.Name)
		if f.Name == "" {
			dropped++
			continue
		}
		f.Description = clampRunes(strings.TrimSpace(f.Description), maxDescriptionLen)
		f.Variables = dedupeOrdered(f.Variables)
		formulas = append(formulas, f)
	}
	r.Formulas = formulas

	fees := r.Fees[:0]
	for _, fee := range r.Fees {
		fee.Name = strings.TrimSpace(fee.Name)
		if fee.Name == "" {
			dropped++
			continue
		}
		fee.Description = clampRunes(strings.TrimSpace(fee.Description), maxDescriptionLen)
		if fee.Amount != "" {
			fee.Amount = jptext.NormalizeDigits(strings.TrimSpace(fee.Amount))
		}
		fees = append(fees, fee)
	}
	r.Fees = fees

	tables := r.Tables[:0]
	for _, t := range r.Tables {
		t.Title = strings.TrimSpace(t.Title)
		if t.Title == "" && len(t.Rows) == 0 {
			dropped++
			continue
		}
		if t.Headers == nil {
			t.Headers = []string{}
		}
		tables = append(tables, t)
	}
	r.Tables = tables

	return dropped
}

func dedupeOrdered(vals []string) []string {
	seen := make(map[string]bool, len(vals))
	out := vals[:0]
	for _, v := range vals {
		v = strings.TrimSpace(v)
		if v == "" || seen[v] {
			continue
		}
		seen[v] = true
		out = append(out, v)
	}
	return out
}

func clampRunes(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
