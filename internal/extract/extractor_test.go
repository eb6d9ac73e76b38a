package extract

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"

	"github.com/fieldstats/matchlog/internal/htmltable"
	"github.com/fieldstats/matchlog/pkg/models"
)

func mustDoc(t *testing.T, html string) *goquery.Document {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		t.Fatalf("Failed to parse HTML: %v", err)
	}
	return doc
}

// matchRow builds a <tr> with data-stat cells in the style of the source site.
func matchRow(cells map[string]string) string {
	var b strings.Builder
	b.WriteString("<tr>")
	for stat, val := range cells {
		fmt.Fprintf(&b, `<td data-stat=%q>%s</td>`, stat, val)
	}
	b.WriteString("</tr>")
	return b.String()
}

func statsTable(rows ...string) string {
	return `<html><body><table class="stats_table"><tbody>` +
		strings.Join(rows, "") + `</tbody></table></body></html>`
}

func fullRow(date string) map[string]string {
	return map[string]string{
		"date":             date,
		"opponent":         "Arsenal",
		"venue":            "Home",
		"comp":             "Premier League",
		"goals_for":        "3",
		"goals_against":    "1",
		"shots":            "15",
		"shots_on_target":  "8",
		"possession":       "60.2",
		"passes_completed": "500",
		"passes_pct":       "88.5",
		"corners":          "7",
		"fouls":            "10",
		"fouled":           "12",
	}
}

func TestExtract_FullRow(t *testing.T) {
	doc := mustDoc(t, statsTable(matchRow(fullRow("2025-05-10"))))

	records, err := New(DefaultConfig()).Extract(doc)
	if err != nil {
		t.Fatalf("Extract failed: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("Expected 1 record, got %d", len(records))
	}

	rec := records[0]
	if rec.Date != "2025-05-10" {
		t.Errorf("Date: got %q", rec.Date)
	}
	if rec.Opponent != "Arsenal" {
		t.Errorf("Opponent: got %q", rec.Opponent)
	}
	if rec.Venue != models.VenueHome {
		t.Errorf("Venue: got %q, want home", rec.Venue)
	}
	if rec.GoalsFor == nil || *rec.GoalsFor != 3 {
		t.Errorf("GoalsFor: got %v, want 3", rec.GoalsFor)
	}
	if rec.GoalsAgainst == nil || *rec.GoalsAgainst != 1 {
		t.Errorf("GoalsAgainst: got %v, want 1", rec.GoalsAgainst)
	}
	if rec.Shots == nil || *rec.Shots != 15 {
		t.Errorf("Shots: got %v, want 15", rec.Shots)
	}
	if rec.ShotsOnTarget == nil || *rec.ShotsOnTarget != 8 {
		t.Errorf("ShotsOnTarget: got %v, want 8", rec.ShotsOnTarget)
	}
	// No off-target column in the source row: derived from shots - on target.
	if rec.ShotsOffTarget == nil || *rec.ShotsOffTarget != 7 {
		t.Errorf("ShotsOffTarget: got %v, want derived 7", rec.ShotsOffTarget)
	}
	if rec.PossessionPct == nil || *rec.PossessionPct != 60.2 {
		t.Errorf("PossessionPct: got %v, want 60.2", rec.PossessionPct)
	}
	if rec.PassesCompleted == nil || *rec.PassesCompleted != 500 {
		t.Errorf("PassesCompleted: got %v, want 500", rec.PassesCompleted)
	}
	if rec.PassAccuracyPct == nil || *rec.PassAccuracyPct != 88.5 {
		t.Errorf("PassAccuracyPct: got %v, want 88.5", rec.PassAccuracyPct)
	}
	if rec.CornersFor == nil || *rec.CornersFor != 7 {
		t.Errorf("CornersFor: got %v, want 7", rec.CornersFor)
	}
	if rec.FoulsCommitted == nil || *rec.FoulsCommitted != 10 {
		t.Errorf("FoulsCommitted: got %v, want 10", rec.FoulsCommitted)
	}
	if rec.FoulsSuffered == nil || *rec.FoulsSuffered != 12 {
		t.Errorf("FoulsSuffered: got %v, want 12", rec.FoulsSuffered)
	}
}

func TestExtract_OffTargetVerbatim(t *testing.T) {
	row := fullRow("2025-05-10")
	row["shots_off_target"] = "5" // disagrees with 15-8; page value wins
	doc := mustDoc(t, statsTable(matchRow(row)))

	records, err := New(DefaultConfig()).Extract(doc)
	if err != nil {
		t.Fatalf("Extract failed: %v", err)
	}
	if records[0].ShotsOffTarget == nil || *records[0].ShotsOffTarget != 5 {
		t.Errorf("ShotsOffTarget: got %v, want verbatim 5", records[0].ShotsOffTarget)
	}
}

func TestExtract_NoDerivationWithoutTotals(t *testing.T) {
	row := fullRow("2025-05-10")
	delete(row, "shots")
	doc := mustDoc(t, statsTable(matchRow(row)))

	records, err := New(DefaultConfig()).Extract(doc)
	if err != nil {
		t.Fatalf("Extract failed: %v", err)
	}
	if records[0].ShotsOffTarget != nil {
		t.Errorf("ShotsOffTarget: got %v, want nil without shot totals", *records[0].ShotsOffTarget)
	}
}

func TestExtract_MaxMatchesCap(t *testing.T) {
	var rows []string
	for i := 0; i < 10; i++ {
		rows = append(rows, matchRow(fullRow(fmt.Sprintf("2025-05-%02d", i+1))))
	}
	doc := mustDoc(t, statsTable(rows...))

	records, err := New(DefaultConfig()).Extract(doc)
	if err != nil {
		t.Fatalf("Extract failed: %v", err)
	}
	if len(records) != 7 {
		t.Errorf("Expected 7 records (default cap), got %d", len(records))
	}
	if records[0].Date != "2025-05-01" {
		t.Errorf("First record: got %q, want most recent row first", records[0].Date)
	}
}

func TestExtract_BadRowSkipped(t *testing.T) {
	bad := fullRow("2025-05-03")
	bad["shots"] = "abc"
	doc := mustDoc(t, statsTable(
		matchRow(fullRow("2025-05-10")),
		matchRow(bad),
		matchRow(fullRow("2025-04-29")),
	))

	records, err := New(DefaultConfig()).Extract(doc)
	if err != nil {
		t.Fatalf("One bad row must not abort the batch: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("Expected 2 records, got %d", len(records))
	}
	if records[0].Date != "2025-05-10" || records[1].Date != "2025-04-29" {
		t.Errorf("Unexpected record dates: %q, %q", records[0].Date, records[1].Date)
	}
}

func TestParseRow_ReportsFirstBadFieldInSchemaOrder(t *testing.T) {
	row := fullRow("2025-05-10")
	row["goals_for"] = "n/a"
	row["fouls"] = "n/a"
	doc := mustDoc(t, statsTable(matchRow(row)))

	table, ok := htmltable.Find(doc, "table.stats_table")
	if !ok {
		t.Fatal("Table not found")
	}
	e := New(DefaultConfig())

	// Two cells are unparsable; the reported field must be the earliest in
	// schema order, every run.
	for i := 0; i < 20; i++ {
		_, err := e.parseRow(table.Rows()[0], "2025-05-10")
		var ee *ExtractionError
		if !errors.As(err, &ee) || ee.Kind != KindFieldParse {
			t.Fatalf("Expected FIELD_PARSE error, got %v", err)
		}
		if ee.Field != string(FieldGoalsFor) {
			t.Fatalf("Run %d: reported field %q, want %q", i, ee.Field, FieldGoalsFor)
		}
	}
}

func TestExtract_TableNotFound(t *testing.T) {
	doc := mustDoc(t, `<html><body><p>Access denied</p></body></html>`)

	_, err := New(DefaultConfig()).Extract(doc)
	if err == nil {
		t.Fatal("Expected error for missing table")
	}
	if !errors.Is(err, ErrTableNotFound) {
		t.Errorf("Expected ErrTableNotFound, got %v", err)
	}
	var ee *ExtractionError
	if !errors.As(err, &ee) || ee.Kind != KindTableNotFound {
		t.Errorf("Expected TABLE_NOT_FOUND kind, got %v", err)
	}
}

func TestExtract_VenueNormalized(t *testing.T) {
	home := fullRow("2025-05-10")
	home["venue"] = "Home"
	away := fullRow("2025-05-03")
	away["venue"] = "Away"
	doc := mustDoc(t, statsTable(matchRow(home), matchRow(away)))

	records, err := New(DefaultConfig()).Extract(doc)
	if err != nil {
		t.Fatalf("Extract failed: %v", err)
	}
	if records[0].Venue != models.VenueHome {
		t.Errorf("Venue: got %q, want home", records[0].Venue)
	}
	if records[1].Venue != models.VenueAway {
		t.Errorf("Venue: got %q, want away", records[1].Venue)
	}
}

func TestExtract_PercentSuffixAndCommas(t *testing.T) {
	row := fullRow("2025-05-10")
	row["possession"] = "54.3%"
	row["passes_completed"] = "1,234"
	doc := mustDoc(t, statsTable(matchRow(row)))

	records, err := New(DefaultConfig()).Extract(doc)
	if err != nil {
		t.Fatalf("Extract failed: %v", err)
	}
	if records[0].PossessionPct == nil || *records[0].PossessionPct != 54.3 {
		t.Errorf("PossessionPct: got %v, want 54.3", records[0].PossessionPct)
	}
	if records[0].PassesCompleted == nil || *records[0].PassesCompleted != 1234 {
		t.Errorf("PassesCompleted: got %v, want 1234", records[0].PassesCompleted)
	}
}

func TestExtract_FriendliesFiltered(t *testing.T) {
	friendly := fullRow("2025-07-20")
	friendly["comp"] = "Friendlies (M)"
	doc := mustDoc(t, statsTable(
		matchRow(friendly),
		matchRow(fullRow("2025-05-10")),
	))

	records, err := New(DefaultConfig()).Extract(doc)
	if err != nil {
		t.Fatalf("Extract failed: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("Expected friendly filtered out, got %d records", len(records))
	}
	if records[0].Date != "2025-05-10" {
		t.Errorf("Wrong surviving record: %q", records[0].Date)
	}
}

func TestExtract_NoCompetitionColumnKeepsAll(t *testing.T) {
	row := fullRow("2025-05-10")
	delete(row, "comp")
	doc := mustDoc(t, statsTable(matchRow(row)))

	records, err := New(DefaultConfig()).Extract(doc)
	if err != nil {
		t.Fatalf("Extract failed: %v", err)
	}
	if len(records) != 1 {
		t.Errorf("Row without a competition column must be kept, got %d records", len(records))
	}
}

func TestExtract_MissingCellsAreNil(t *testing.T) {
	doc := mustDoc(t, statsTable(matchRow(map[string]string{
		"date":          "2025-05-10",
		"opponent":      "Chelsea",
		"venue":         "Away",
		"goals_for":     "2",
		"goals_against": "0",
	})))

	records, err := New(DefaultConfig()).Extract(doc)
	if err != nil {
		t.Fatalf("Extract failed: %v", err)
	}
	rec := records[0]
	if rec.Shots != nil || rec.PossessionPct != nil || rec.CornersFor != nil {
		t.Error("Absent columns must stay nil, not default to zero")
	}
	if rec.GoalsFor == nil || *rec.GoalsFor != 2 {
		t.Errorf("GoalsFor: got %v, want 2", rec.GoalsFor)
	}
}

func TestExtract_UnplayedFixtureSkipped(t *testing.T) {
	doc := mustDoc(t, statsTable(
		matchRow(map[string]string{"date": "", "opponent": "Liverpool"}),
		matchRow(fullRow("2025-05-10")),
	))

	records, err := New(DefaultConfig()).Extract(doc)
	if err != nil {
		t.Fatalf("Extract failed: %v", err)
	}
	if len(records) != 1 {
		t.Errorf("Expected dateless row skipped, got %d records", len(records))
	}
}

func TestExtract_HeaderTextFallback(t *testing.T) {
	// No data-stat attributes: cells resolve through header text positions.
	html := `<html><body><table class="stats_table">
	<thead><tr><th>Date</th><th>Opponent</th><th>Venue</th><th>GF</th><th>GA</th></tr></thead>
	<tbody><tr><td>2025-05-10</td><td>Arsenal</td><td>Home</td><td>3</td><td>1</td></tr></tbody>
	</table></body></html>`
	doc := mustDoc(t, html)

	records, err := New(DefaultConfig()).Extract(doc)
	if err != nil {
		t.Fatalf("Extract failed: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("Expected 1 record, got %d", len(records))
	}
	rec := records[0]
	if rec.Opponent != "Arsenal" || rec.Venue != models.VenueHome {
		t.Errorf("Header fallback mismatch: %+v", rec)
	}
	if rec.GoalsFor == nil || *rec.GoalsFor != 3 || rec.GoalsAgainst == nil || *rec.GoalsAgainst != 1 {
		t.Errorf("Goals via header fallback: gf=%v ga=%v", rec.GoalsFor, rec.GoalsAgainst)
	}
}

func TestParseCount(t *testing.T) {
	cases := []struct {
		in      string
		want    int
		wantErr bool
	}{
		{"15", 15, false},
		{" 15 ", 15, false},
		{"1,234", 1234, false},
		{"0", 0, false},
		{"-3", 0, true},
		{"abc", 0, true},
		{"", 0, true},
	}
	for _, c := range cases {
		got, err := parseCount(c.in)
		if c.wantErr {
			if err == nil {
				t.Errorf("parseCount(%q): expected error", c.in)
			}
			continue
		}
		if err != nil || got != c.want {
			t.Errorf("parseCount(%q) = %d, %v; want %d", c.in, got, err, c.want)
		}
	}
}

func TestParsePercent(t *testing.T) {
	cases := []struct {
		in   string
		want float64
	}{
		{"54.3", 54.3},
		{"54.3%", 54.3},
		{"100%", 100},
		{"0", 0},
	}
	for _, c := range cases {
		got, err := parsePercent(c.in)
		if err != nil || got != c.want {
			t.Errorf("parsePercent(%q) = %v, %v; want %v", c.in, got, err, c.want)
		}
	}
	if _, err := parsePercent("n/a"); err == nil {
		t.Error("parsePercent(\"n/a\"): expected error")
	}
}
