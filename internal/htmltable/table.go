// Package htmltable gives header-keyed access to stats tables parsed with
// goquery. Cells are addressed by name rather than position, so a reordering
// of source columns does not break callers.
package htmltable

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Table wraps a single <table> element.
type Table struct {
	sel     *goquery.Selection
	headers map[string]int
}

// Row wraps a single <tr> element inside a table body.
type Row struct {
	sel   *goquery.Selection
	table *Table
}

// Find locates the first table matching the CSS selector. The second return
// value reports whether such a table exists in the document.
func Find(doc *goquery.Document, selector string) (*Table, bool) {
	sel := doc.Find(selector).First()
	if sel.Length() == 0 {
		return nil, false
	}
	t := &Table{sel: sel}
	t.headers = headerIndex(sel)
	return t, true
}

// Rows returns the body rows of the table in document order, skipping spacer
// and repeated-header rows the source interleaves for readability.
func (t *Table) Rows() []Row {
	var rows []Row
	t.sel.Find("tbody tr").Each(func(_ int, sel *goquery.Selection) {
		if class, ok := sel.Attr("class"); ok {
			if strings.Contains(class, "spacer") || strings.Contains(class, "thead") {
				return
			}
		}
		rows = append(rows, Row{sel: sel, table: t})
	})
	return rows
}

// CellByHeader returns the trimmed text of the cell identified by name and
// whether such a cell exists in the row. Lookup prefers the data-stat
// attribute the source uses on every cell, then falls back to matching the
// header text of the column.
func (r Row) CellByHeader(name string) (string, bool) {
	sel := r.sel.Find(`td[data-stat="` + name + `"], th[data-stat="` + name + `"]`).First()
	if sel.Length() > 0 {
		return strings.TrimSpace(sel.Text()), true
	}

	idx, ok := r.table.headers[normalizeHeader(name)]
	if !ok {
		return "", false
	}
	cells := r.sel.Find("th, td")
	if idx >= cells.Length() {
		return "", false
	}
	return strings.TrimSpace(cells.Eq(idx).Text()), true
}

// headerIndex maps normalized header text to column position. The last
// <thead> row is used: stats tables often stack a grouping row above the
// real column headers.
func headerIndex(table *goquery.Selection) map[string]int {
	headers := make(map[string]int)
	headerRow := table.Find("thead tr").Last()
	headerRow.Find("th, td").Each(func(i int, sel *goquery.Selection) {
		text := normalizeHeader(sel.Text())
		if text == "" {
			return
		}
		if _, exists := headers[text]; !exists {
			headers[text] = i
		}
	})
	return headers
}

func normalizeHeader(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	return strings.ReplaceAll(s, " ", "_")
}
