package heuristic

import (
	"testing"
)

func TestDefinitions_QuotedTerm(t *testing.T) {
	e := New(DefaultConfig())
	items := e.Definitions("「住宅」とは、社員が居住する建物をいう。")

	if len(items) != 1 {
		t.Fatalf("expected 1 definition, got %d", len(items))
	}
	d := items[0]
	if d.Category != "定義" {
		t.Errorf("expected category 定義, got %q", d.Category)
	}
	if d.Name != "住宅" {
		t.Errorf("expected name 住宅, got %q", d.Name)
	}
	if d.Description != "社員が居住する建物をいう" {
		t.Errorf("unexpected description %q", d.Description)
	}
	if d.InputType != "text" {
		t.Errorf("expected input type text, got %q", d.InputType)
	}
}

func TestDefinitions_BareTerm(t *testing.T) {
	e := New(DefaultConfig())
	items := e.Definitions("扶養家族とは、社員が扶養する親族をいう。")

	if len(items) != 1 {
		t.Fatalf("expected 1 definition, got %d", len(items))
	}
	if items[0].Name != "扶養家族" {
		t.Errorf("expected name 扶養家族, got %q", items[0].Name)
	}
}

func TestDefinitions_NoDeduplication(t *testing.T) {
	// The same term defined twice yields two candidates; pattern scans
	// never merge matches.
	text := "「住宅」とは、社員が居住する建物をいう。\n「住宅」とは、会社が借り上げた建物を含む。"
	e := New(DefaultConfig())
	items := e.Definitions(text)
	if len(items) != 2 {
		t.Fatalf("expected 2 definitions, got %d", len(items))
	}
}

func TestFormulas_NumericDescriptionKept(t *testing.T) {
	e := New(DefaultConfig())
	formulas := e.Formulas("通勤手当の支給額は、実費の2割に相当する額とする。")

	if len(formulas) != 1 {
		t.Fatalf("expected 1 formula, got %d", len(formulas))
	}
	f := formulas[0]
	if f.Name != "通勤手当の支給額" {
		t.Errorf("unexpected name %q", f.Name)
	}
	if f.Description != "実費の2割に相当する額" {
		t.Errorf("unexpected description %q", f.Description)
	}
	if f.Formula != "実費の2 * 0.1に相当する額" {
		t.Errorf("unexpected formula %q", f.Formula)
	}
}

func TestFormulas_NonNumericDescriptionFiltered(t *testing.T) {
	// は…とする without any numeric hint is an ordinary definition, not
	// a calculation; keeping those would flood the output.
	e := New(DefaultConfig())
	formulas := e.Formulas("この規程の改廃は、取締役会の決議によるものとする。")
	if len(formulas) != 0 {
		t.Fatalf("expected 0 formulas, got %d", len(formulas))
	}
}

func TestFees_AmountNormalized(t *testing.T) {
	e := New(DefaultConfig())
	fees := e.Fees("住宅費は、月額50,000円を上限として会社が負担する。")

	if len(fees) != 1 {
		t.Fatalf("expected 1 fee, got %d", len(fees))
	}
	f := fees[0]
	if f.Name != "住宅費" {
		t.Errorf("expected name 住宅費, got %q", f.Name)
	}
	if f.Amount != "50000" {
		t.Errorf("expected amount 50000, got %q", f.Amount)
	}
}

func TestFees_AllowanceWithParticleWo(t *testing.T) {
	e := New(DefaultConfig())
	fees := e.Fees("赴任手当を、着任の翌月に支給する。")

	if len(fees) != 1 {
		t.Fatalf("expected 1 fee, got %d", len(fees))
	}
	if fees[0].Name != "赴任手当" {
		t.Errorf("expected name 赴任手当, got %q", fees[0].Name)
	}
	if fees[0].Amount != "" {
		t.Errorf("expected no amount, got %q", fees[0].Amount)
	}
}

func TestTables_BoundedBySupplementaryProvisions(t *testing.T) {
	text := "別表1 家賃限度額\n1級 100000\n2級 80000\n付則\nこの規程は令和3年4月1日から施行する。"
	e := New(DefaultConfig())
	tables := e.Tables(text)

	if len(tables) != 1 {
		t.Fatalf("expected 1 table, got %d", len(tables))
	}
	tb := tables[0]
	if tb.Title != "別表1 家賃限度額" {
		t.Errorf("unexpected title %q", tb.Title)
	}
	if len(tb.Rows) != 2 {
		t.Fatalf("expected 2 rows, got %d: %v", len(tb.Rows), tb.Rows)
	}
	for _, row := range tb.Rows {
		for _, cell := range row {
			if cell == "付則" || cell == "この規程は令和3年4月1日から施行する。" {
				t.Errorf("row leaked past 付則 boundary: %v", row)
			}
		}
	}
}

func TestTables_CellSplitOnTabsAndWideSpaces(t *testing.T) {
	text := "別表2 地域区分\n東京\t100,000\t1級\n大阪  80,000  2級"
	e := New(DefaultConfig())
	tables := e.Tables(text)

	if len(tables) != 1 {
		t.Fatalf("expected 1 table, got %d", len(tables))
	}
	want := [][]string{
		{"東京", "100,000", "1級"},
		{"大阪", "80,000", "2級"},
	}
	rows := tables[0].Rows
	if len(rows) != len(want) {
		t.Fatalf("expected %d rows, got %d: %v", len(want), len(rows), rows)
	}
	for i := range want {
		if len(rows[i]) != len(want[i]) {
			t.Fatalf("row %d: expected %v, got %v", i, want[i], rows[i])
		}
		for j := range want[i] {
			if rows[i][j] != want[i][j] {
				t.Errorf("cell [%d][%d]: expected %q, got %q", i, j, want[i][j], rows[i][j])
			}
		}
	}
}

func TestTables_MultipleAppendices(t *testing.T) {
	text := "別表1 区分A\nx 1\n別表2 区分B\ny\t2\n以上"
	e := New(DefaultConfig())
	tables := e.Tables(text)

	if len(tables) != 2 {
		t.Fatalf("expected 2 tables, got %d", len(tables))
	}
	if tables[0].Title != "別表1 区分A" || tables[1].Title != "別表2 区分B" {
		t.Errorf("unexpected titles %q, %q", tables[0].Title, tables[1].Title)
	}
	if len(tables[0].Rows) != 1 {
		t.Errorf("table 1: expected 1 row, got %d", len(tables[0].Rows))
	}
	if len(tables[1].Rows) != 1 {
		t.Fatalf("table 2: expected 1 row, got %d", len(tables[1].Rows))
	}
	if len(tables[1].Rows[0]) != 2 {
		t.Errorf("table 2 row: expected 2 cells, got %v", tables[1].Rows[0])
	}
}

func TestExtract_EmptyInputYieldsEmptyCollections(t *testing.T) {
	e := New(DefaultConfig())
	reqs := e.Extract("")

	if len(reqs.Items) != 0 {
		t.Errorf("expected 0 items, got %d", len(reqs.Items))
	}
	if len(reqs.Formulas) != 0 {
		t.Errorf("expected 0 formulas, got %d", len(reqs.Formulas))
	}
	if len(reqs.Fees) != 0 {
		t.Errorf("expected 0 fees, got %d", len(reqs.Fees))
	}
	if len(reqs.Tables) != 0 {
		t.Errorf("expected 0 tables, got %d", len(reqs.Tables))
	}
	if !reqs.Empty() {
		t.Error("expected Empty() to be true")
	}
}

func TestExtract_NoMatchesIsNotAnError(t *testing.T) {
	e := New(DefaultConfig())
	reqs := e.Extract("This document contains no Japanese regulation idioms at all.")
	if !reqs.Empty() {
		t.Errorf("expected empty requirements, got %+v", reqs)
	}
}
