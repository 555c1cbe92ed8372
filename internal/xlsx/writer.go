// Package xlsx renders an extracted requirements model into a multi-sheet
// workbook for human review. The mapping is mechanical: one sheet each
// for requirement items, formulas and fees, plus one sheet per appendix
// table.
package xlsx

import (
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/myamashita/regsheet/internal/document"
)

const (
	SheetItems    = "要件一覧"
	SheetFormulas = "計算式"
	SheetFees     = "費用項目"
)

// Write renders the requirements model into XLSX bytes.
func Write(reqs document.Requirements) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"DDEBF7"}, Pattern: 1},
	})
	if err != nil {
		return nil, fmt.Errorf("header style: %w", err)
	}

	// The default sheet becomes the item list.
	if err := f.SetSheetName("Sheet1", SheetItems); err != nil {
		return nil, err
	}
	if err := writeItems(f, headerStyle, reqs.Items); err != nil {
		return nil, err
	}
	if err := writeFormulas(f, headerStyle, reqs.Formulas); err != nil {
		return nil, err
	}
	if err := writeFees(f, headerStyle, reqs.Fees); err != nil {
		return nil, err
	}
	if err := writeTables(f, headerStyle, reqs.Tables); err != nil {
		return nil, err
	}

	if idx, err := f.GetSheetIndex(SheetItems); err == nil {
		f.SetActiveSheet(idx)
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("xlsx write: %w", err)
	}
	return buf.Bytes(), nil
}

func writeItems(f *excelize.File, style int, items []document.RequirementItem) error {
	if err := writeHeaderRow(f, SheetItems, style, []string{"カテゴリ", "項目名", "説明", "入力形式", "必須"}); err != nil {
		return err
	}
	for i, it := range items {
		required := ""
		if it.Required {
			required = "○"
		}
		if err := writeRow(f, SheetItems, i+2, []any{it.Category, it.Name, it.Description, it.InputType, required}); err != nil {
			return err
		}
	}
	_ = f.SetColWidth(SheetItems, "A", "A", 14)
	_ = f.SetColWidth(SheetItems, "B", "B", 28)
	_ = f.SetColWidth(SheetItems, "C", "C", 60)
	_ = f.SetColWidth(SheetItems, "D", "E", 10)
	return nil
}

func writeFormulas(f *excelize.File, style int, formulas []document.CalculationFormula) error {
	if _, err := f.NewSheet(SheetFormulas); err != nil {
		return err
	}
	if err := writeHeaderRow(f, SheetFormulas, style, []string{"名称", "説明", "計算式", "変数", "条件"}); err != nil {
		return err
	}
	for i, fm := range formulas {
		if err := writeRow(f, SheetFormulas, i+2, []any{fm.Name, fm.Description, fm.Formula, strings.Join(fm.Variables, ", "), fm.Conditions}); err != nil {
			return err
		}
	}
	_ = f.SetColWidth(SheetFormulas, "A", "A", 28)
	_ = f.SetColWidth(SheetFormulas, "B", "C", 50)
	_ = f.SetColWidth(SheetFormulas, "D", "E", 30)
	return nil
}

func writeFees(f *excelize.File, style int, fees []document.FeeItem) error {
	if _, err := f.NewSheet(SheetFees); err != nil {
		return err
	}
	if err := writeHeaderRow(f, SheetFees, style, []string{"名称", "説明", "金額", "条件"}); err != nil {
		return err
	}
	for i, fee := range fees {
		if err := writeRow(f, SheetFees, i+2, []any{fee.Name, fee.Description, fee.Amount, fee.Conditions}); err != nil {
			return err
		}
	}
	_ = f.SetColWidth(SheetFees, "A", "A", 28)
	_ = f.SetColWidth(SheetFees, "B", "B", 50)
	_ = f.SetColWidth(SheetFees, "C", "D", 20)
	return nil
}

func writeTables(f *excelize.File, style int, tables []document.TableData) error {
	used := map[string]bool{SheetItems: true, SheetFormulas: true, SheetFees: true}
	for i, t := range tables {
		name := sheetName(t.Title, i, used)
		if _, err := f.NewSheet(name); err != nil {
			return err
		}

		row := 1
		if len(t.Headers) > 0 {
			if err := writeHeaderRow(f, name, style, t.Headers); err != nil {
				return err
			}
			row = 2
		}
		for _, cells := range t.Rows {
			vals := make([]any, len(cells))
			for j, c := range cells {
				vals[j] = c
			}
			if err := writeRow(f, name, row, vals); err != nil {
				return err
			}
			row++
		}
	}
	return nil
}

func writeHeaderRow(f *excelize.File, sheet string, style int, headers []string) error {
	for i, h := range headers {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheet, cell, h); err != nil {
			return err
		}
	}
	if len(headers) > 0 {
		last, _ := excelize.CoordinatesToCellName(len(headers), 1)
		_ = f.SetCellStyle(sheet, "A1", last, style)
	}
	return nil
}

func writeRow(f *excelize.File, sheet string, row int, vals []any) error {
	for i, v := range vals {
		cell, err := excelize.CoordinatesToCellName(i+1, row)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheet, cell, v); err != nil {
			return err
		}
	}
	return nil
}

// Excelize rejects sheet names over 31 chars or containing :\/?*[].
var sheetNameReplacer = strings.NewReplacer(":", " ", "\\", " ", "/", " ", "?", " ", "*", " ", "[", " ", "]", " ")

func sheetName(title string, idx int, used map[string]bool) string {
	name := strings.TrimSpace(sheetNameReplacer.Replace(title))
	if name == "" {
		name = fmt.Sprintf("別表%d", idx+1)
	}
	if runes := []rune(name); len(runes) > 31 {
		name = string(runes[:31])
	}
	base := name
	for n := 2; used[name]; n++ {
		suffix := fmt.Sprintf(" (%d)", n)
		runes := []rune(base)
		if len(runes)+len(suffix) > 31 {
			runes = runes[:31-len(suffix)]
		}
		name = string(runes) + suffix
	}
	used[name] = true
	return name
}
