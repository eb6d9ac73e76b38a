package htmltable

import (
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
)

func mustDoc(t *testing.T, html string) *goquery.Document {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		t.Fatalf("Failed to parse HTML: %v", err)
	}
	return doc
}

const fixture = `<html><body>
<table class="stats_table">
  <thead>
    <tr><th colspan="3">For Testing FC</th></tr>
    <tr><th>Date</th><th>Opponent</th><th>Result</th></tr>
  </thead>
  <tbody>
    <tr><th data-stat="date">2025-05-10</th><td data-stat="opponent">Arsenal</td><td data-stat="result">W</td></tr>
    <tr class="spacer partial_table"><td colspan="3"></td></tr>
    <tr class="thead"><th>Date</th><th>Opponent</th><th>Result</th></tr>
    <tr><th data-stat="date">2025-05-03</th><td data-stat="opponent">Chelsea</td><td data-stat="result">D</td></tr>
  </tbody>
</table>
</body></html>`

func TestFind_Missing(t *testing.T) {
	doc := mustDoc(t, `<html><body><div>no tables here</div></body></html>`)
	if _, ok := Find(doc, "table.stats_table"); ok {
		t.Error("Expected no table to be found")
	}
}

func TestRows_SkipsSpacersAndRepeatedHeaders(t *testing.T) {
	doc := mustDoc(t, fixture)
	table, ok := Find(doc, "table.stats_table")
	if !ok {
		t.Fatal("Table not found")
	}

	rows := table.Rows()
	if len(rows) != 2 {
		t.Fatalf("Expected 2 data rows, got %d", len(rows))
	}
}

func TestCellByHeader_DataStat(t *testing.T) {
	doc := mustDoc(t, fixture)
	table, _ := Find(doc, "table.stats_table")
	rows := table.Rows()

	got, ok := rows[0].CellByHeader("opponent")
	if !ok || got != "Arsenal" {
		t.Errorf("CellByHeader(opponent) = %q, %v; want Arsenal", got, ok)
	}
	// data-stat works on <th> cells too
	got, ok = rows[1].CellByHeader("date")
	if !ok || got != "2025-05-03" {
		t.Errorf("CellByHeader(date) = %q, %v; want 2025-05-03", got, ok)
	}
}

func TestCellByHeader_TextFallback(t *testing.T) {
	// No data-stat attributes; the last thead row names the columns.
	html := `<table class="stats_table">
	<thead>
	  <tr><th colspan="2">Group</th></tr>
	  <tr><th>Date</th><th>Pass Accuracy</th></tr>
	</thead>
	<tbody><tr><td> 2025-05-10 </td><td>88.5</td></tr></tbody>
	</table>`
	doc := mustDoc(t, html)
	table, _ := Find(doc, "table.stats_table")
	rows := table.Rows()
	if len(rows) != 1 {
		t.Fatalf("Expected 1 row, got %d", len(rows))
	}

	got, ok := rows[0].CellByHeader("date")
	if !ok || got != "2025-05-10" {
		t.Errorf("CellByHeader(date) = %q, %v; want trimmed 2025-05-10", got, ok)
	}
	// Header text is normalized: spaces become underscores, case-insensitive.
	got, ok = rows[0].CellByHeader("pass_accuracy")
	if !ok || got != "88.5" {
		t.Errorf("CellByHeader(pass_accuracy) = %q, %v; want 88.5", got, ok)
	}
}

func TestCellByHeader_Unknown(t *testing.T) {
	doc := mustDoc(t, fixture)
	table, _ := Find(doc, "table.stats_table")
	rows := table.Rows()

	if v, ok := rows[0].CellByHeader("nonexistent"); ok {
		t.Errorf("Expected miss for unknown header, got %q", v)
	}
}
