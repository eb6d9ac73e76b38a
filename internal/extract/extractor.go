// Package extract maps a parsed match-log page into MatchRecord rows.
package extract

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/rs/zerolog/log"

	"github.com/fieldstats/matchlog/internal/htmltable"
	"github.com/fieldstats/matchlog/pkg/models"
)

// Config controls extraction. Passed in explicitly so nothing here depends
// on process-wide state.
type Config struct {
	// TableSelector locates the match-log table on the page.
	TableSelector string
	// MaxMatches caps the number of records returned, counted from the
	// top of the table (most recent first).
	MaxMatches int
	// Columns maps record fields to source header keys.
	Columns ColumnMap
}

// DefaultConfig returns the extraction configuration for the
// scores-and-fixtures page.
func DefaultConfig() Config {
	return Config{
		TableSelector: "table.stats_table",
		MaxMatches:    7,
		Columns:       DefaultColumns(),
	}
}

// Extractor turns match-log documents into ordered MatchRecord sequences.
type Extractor struct {
	cfg Config
}

// New creates an Extractor with the given configuration. Zero values fall
// back to defaults.
func New(cfg Config) *Extractor {
	def := DefaultConfig()
	if cfg.TableSelector == "" {
		cfg.TableSelector = def.TableSelector
	}
	if cfg.MaxMatches <= 0 {
		cfg.MaxMatches = def.MaxMatches
	}
	if cfg.Columns == nil {
		cfg.Columns = def.Columns
	}
	return &Extractor{cfg: cfg}
}

// Extract returns up to MaxMatches records from the document, in source
// order. Rows that are not played matches (spacers, fixtures without a date)
// and non-competitive rows are skipped. A row with an unparsable numeric
// cell is dropped with a warning; one bad row never aborts the batch.
func (e *Extractor) Extract(doc *goquery.Document) ([]models.MatchRecord, error) {
	table, ok := htmltable.Find(doc, e.cfg.TableSelector)
	if !ok {
		return nil, &ExtractionError{Kind: KindTableNotFound}
	}

	var records []models.MatchRecord
	for _, row := range table.Rows() {
		if len(records) >= e.cfg.MaxMatches {
			break
		}

		date := e.cell(row, FieldDate)
		if date == "" {
			// Spacer or unplayed fixture, not a match row.
			continue
		}

		if comp, ok := e.lookup(row, FieldCompetition); ok && !isCompetitive(comp) {
			log.Debug().Str("date", date).Str("competition", comp).Msg("Skipping non-competitive match")
			continue
		}

		rec, err := e.parseRow(row, date)
		if err != nil {
			log.Warn().Err(err).Str("date", date).Msg("Skipping unparsable match row")
			continue
		}
		records = append(records, rec)
	}

	return records, nil
}

func (e *Extractor) parseRow(row htmltable.Row, date string) (models.MatchRecord, error) {
	rec := models.MatchRecord{
		Date:     date,
		Opponent: e.cell(row, FieldOpponent),
		Venue:    normalizeVenue(e.cell(row, FieldVenue)),
	}

	// Fields are walked in schema order so the reported field of a parse
	// failure is stable run to run.
	intFields := []struct {
		field Field
		dst   **int
	}{
		{FieldGoalsFor, &rec.GoalsFor},
		{FieldGoalsAgainst, &rec.GoalsAgainst},
		{FieldShots, &rec.Shots},
		{FieldShotsOnTarget, &rec.ShotsOnTarget},
		{FieldShotsOffTarget, &rec.ShotsOffTarget},
		{FieldPassesCompleted, &rec.PassesCompleted},
		{FieldCornersFor, &rec.CornersFor},
		{FieldCornersAgainst, &rec.CornersAgainst},
		{FieldFoulsCommitted, &rec.FoulsCommitted},
		{FieldFoulsSuffered, &rec.FoulsSuffered},
	}
	for _, f := range intFields {
		raw := e.cell(row, f.field)
		if raw == "" {
			continue
		}
		n, err := parseCount(raw)
		if err != nil {
			return rec, &ExtractionError{Kind: KindFieldParse, Field: string(f.field), Raw: raw}
		}
		*f.dst = &n
	}

	floatFields := []struct {
		field Field
		dst   **float64
	}{
		{FieldPossessionPct, &rec.PossessionPct},
		{FieldPassAccuracyPct, &rec.PassAccuracyPct},
	}
	for _, f := range floatFields {
		raw := e.cell(row, f.field)
		if raw == "" {
			continue
		}
		v, err := parsePercent(raw)
		if err != nil {
			return rec, &ExtractionError{Kind: KindFieldParse, Field: string(f.field), Raw: raw}
		}
		*f.dst = &v
	}

	// The source drops the off-target column in some competitions; derive it
	// from the totals when both are present. A value read from the page is
	// kept verbatim even if the three shot columns disagree.
	if rec.ShotsOffTarget == nil && rec.Shots != nil && rec.ShotsOnTarget != nil {
		off := *rec.Shots - *rec.ShotsOnTarget
		rec.ShotsOffTarget = &off
	}

	return rec, nil
}

// cell returns the first non-empty cell among the field's candidate headers.
func (e *Extractor) cell(row htmltable.Row, field Field) string {
	v, _ := e.lookup(row, field)
	return v
}

// lookup reports whether any candidate column for the field exists in the
// row, along with its text.
func (e *Extractor) lookup(row htmltable.Row, field Field) (string, bool) {
	found := false
	for _, key := range e.cfg.Columns[field] {
		if v, ok := row.CellByHeader(key); ok {
			found = true
			if v != "" {
				return v, true
			}
		}
	}
	return "", found
}

// isCompetitive filters out exhibition rows. Competition names on the source
// are open-ended (leagues, domestic cups, continental cups), so the filter
// excludes known non-competitive labels rather than enumerating every
// competition. No competition column at all means every row is kept.
func isCompetitive(competition string) bool {
	c := strings.ToLower(competition)
	for _, word := range []string{"friendly", "friendlies", "exhibition"} {
		if strings.Contains(c, word) {
			return false
		}
	}
	return true
}

func normalizeVenue(raw string) models.Venue {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "home":
		return models.VenueHome
	case "away":
		return models.VenueAway
	default:
		return models.Venue(strings.ToLower(strings.TrimSpace(raw)))
	}
}
