package extract

import (
	"strconv"
	"strings"
)

// Field names the MatchRecord fields the extractor fills in.
type Field string

const (
	FieldDate            Field = "date"
	FieldOpponent        Field = "opponent"
	FieldVenue           Field = "venue"
	FieldCompetition     Field = "competition"
	FieldGoalsFor        Field = "goals_for"
	FieldGoalsAgainst    Field = "goals_against"
	FieldShots           Field = "shots"
	FieldShotsOnTarget   Field = "shots_on_target"
	FieldShotsOffTarget  Field = "shots_off_target"
	FieldPossessionPct   Field = "possession_pct"
	FieldPassesCompleted Field = "passes_completed"
	FieldPassAccuracyPct Field = "pass_accuracy_pct"
	FieldCornersFor      Field = "corners_for"
	FieldCornersAgainst  Field = "corners_against"
	FieldFoulsCommitted  Field = "fouls_committed"
	FieldFoulsSuffered   Field = "fouls_suffered"
)

// ColumnMap maps record fields to the header keys the source may use for
// them. Keys are tried in order until a cell is found.
type ColumnMap map[Field][]string

// DefaultColumns is the column dictionary for the scores-and-fixtures table.
func DefaultColumns() ColumnMap {
	return ColumnMap{
		FieldDate:            {"date"},
		FieldOpponent:        {"opponent"},
		FieldVenue:           {"venue"},
		FieldCompetition:     {"comp", "competition"},
		FieldGoalsFor:        {"goals_for", "gf"},
		FieldGoalsAgainst:    {"goals_against", "ga"},
		FieldShots:           {"shots", "shots_total", "sh"},
		FieldShotsOnTarget:   {"shots_on_target", "sot"},
		FieldShotsOffTarget:  {"shots_off_target"},
		FieldPossessionPct:   {"possession", "poss"},
		FieldPassesCompleted: {"passes_completed", "cmp"},
		FieldPassAccuracyPct: {"passes_pct", "cmp%"},
		FieldCornersFor:      {"corners", "corner_kicks", "ck"},
		FieldCornersAgainst:  {"corners_against"},
		FieldFoulsCommitted:  {"fouls", "fls"},
		FieldFoulsSuffered:   {"fouled", "fld"},
	}
}

// parseCount coerces a plain decimal numeral, tolerating thousands
// separators ("1,234").
func parseCount(raw string) (int, error) {
	cleaned := strings.ReplaceAll(strings.TrimSpace(raw), ",", "")
	n, err := strconv.Atoi(cleaned)
	if err != nil {
		return 0, err
	}
	if n < 0 {
		return 0, strconv.ErrRange
	}
	return n, nil
}

// parsePercent coerces a decimal number, dropping a trailing "%" if present
// ("54.3%" -> 54.3).
func parsePercent(raw string) (float64, error) {
	cleaned := strings.TrimSuffix(strings.TrimSpace(raw), "%")
	return strconv.ParseFloat(strings.TrimSpace(cleaned), 64)
}
