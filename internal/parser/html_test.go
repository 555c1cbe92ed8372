package parser

import (
	"context"
	"strings"
	"testing"
)

func TestHTMLParser_ExtractsBodyText(t *testing.T) {
	data := []byte(`<!DOCTYPE html>
<html>
<head><title>社宅管理規程</title><style>p { color: red }</style></head>
<body>
<nav>メニュー</nav>
<h1>社宅管理規程</h1>
<p>この規程は社宅の取扱いを定める。</p>
<h2>第2条 定義</h2>
<p>社宅とは会社が貸与する住宅をいう。</p>
<script>console.log("tracking")</script>
<footer>フッター</footer>
</body>
</html>`)
	doc, err := (&HTMLParser{}).Parse(context.Background(), data, "reg.html")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if doc.Metadata.Title != "社宅管理規程" {
		t.Errorf("expected title element, got %q", doc.Metadata.Title)
	}
	if len(doc.Pages) != 2 {
		t.Fatalf("expected 2 segments, got %d: %v", len(doc.Pages), doc.Pages)
	}
	for _, skipped := range []string{"メニュー", "フッター", "tracking", "color: red"} {
		if strings.Contains(doc.RawText, skipped) {
			t.Errorf("chrome content %q must be skipped", skipped)
		}
	}
	if !strings.Contains(doc.Pages[1], "社宅とは") {
		t.Errorf("second segment missing body: %q", doc.Pages[1])
	}
}

func TestHTMLParser_TableCellsCollected(t *testing.T) {
	data := []byte(`<html><body><table>
<tr><th>住宅区分</th><th>家賃限度額</th></tr>
<tr><td>単身用</td><td>50000</td></tr>
</table></body></html>`)
	doc, err := (&HTMLParser{}).Parse(context.Background(), data, "table.html")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, want := range []string{"住宅区分", "単身用", "50000"} {
		if !strings.Contains(doc.RawText, want) {
			t.Errorf("table cell %q missing from %q", want, doc.RawText)
		}
	}
}

func TestHTMLParser_NoTitleUsesFilename(t *testing.T) {
	doc, err := (&HTMLParser{}).Parse(context.Background(), []byte("<p>本文</p>"), "社宅規程.htm")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if doc.Metadata.Title != "社宅規程" {
		t.Errorf("expected filename title, got %q", doc.Metadata.Title)
	}
}
