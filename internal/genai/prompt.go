package genai

import (
	"fmt"
	"strings"
)

// TranscribePrompt instructs the vision model to reconstruct document
// text verbatim. The page-break line must match extract.PageBreakMarker
// exactly; the fallback path has no other page signal.
const TranscribePrompt = `このPDF文書に含まれるすべてのテキストを書き起こしてください。

ルール:
- 本文を一字一句そのまま書き起こし、要約・解説・補足は一切加えないこと。
- 表はレイアウトをできるだけ保持し、列の区切りをタブで表現すること。
- 各ページの区切りには「--- ページ区切り ---」という行のみを出力すること。
- 書き起こした本文以外は何も出力しないこと。`

// ExtractionPrompt instructs the model to turn regulation text into the
// structured requirements JSON consumed by the spreadsheet writer.
const ExtractionPrompt = `あなたは社内規程の分析を行うシステムエンジニアです。以下の規程文書から、システム化に必要な要件を抽出し、JSONオブジェクトとして返してください。

JSONは次の4つのキーを持つオブジェクトです:

- "items": 要件項目の配列。各要素は {"category": 分類(例: "定義", "申請項目", "支給条件"), "name": 項目名, "description": 説明, "input_type": 入力形式("text", "number", "date", "select" のいずれか), "required": 必須かどうか(boolean)}
- "formulas": 計算式の配列。各要素は {"name": 計算名, "description": 規程上の記述, "formula": 数式のヒント文字列, "variables": 変数名の配列, "conditions": 適用条件}
- "fees": 費用・手当項目の配列。各要素は {"name": 名称, "description": 説明, "amount": 金額(半角数字の文字列、カンマなし), "conditions": 支給条件}
- "tables": 別表の配列。各要素は {"title": 表題, "headers": 見出し行の配列, "rows": 行の配列(各行はセル文字列の配列)}

ルール:
- 規程に書かれている内容のみを抽出し、推測で項目を追加しないこと。
- 金額・割合などの数値は原文の表記を保ったまま description に残すこと。
- 該当する項目がないキーは空配列とすること。
- JSONオブジェクトのみを返し、前後に説明文を付けないこと。`

// BuildExtractionPrompt appends the combined document text to the
// extraction instruction.
func BuildExtractionPrompt(text string) string {
	var b strings.Builder
	b.WriteString(ExtractionPrompt)
	b.WriteString("\n\n---\n")
	b.WriteString(text)
	return b.String()
}

// BuildCombinedText concatenates per-document texts with a header naming
// each source, so the model can attribute requirements across documents.
func BuildCombinedText(names, texts []string) string {
	var b strings.Builder
	for i, text := range texts {
		if i > 0 {
			b.WriteString("\n\n")
		}
		name := ""
		if i < len(names) {
			name = names[i]
		}
		b.WriteString(fmt.Sprintf("【文書: %s】\n", name))
		b.WriteString(text)
	}
	return b.String()
}
