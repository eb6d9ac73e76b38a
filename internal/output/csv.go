// Package output serializes extracted match records.
package output

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/fieldstats/matchlog/pkg/models"
)

// Columns is the fixed CSV schema, in output order.
var Columns = []string{
	"date", "opponent", "venue", "goals_for", "goals_against",
	"shots", "shots_on_target", "shots_off_target", "possession_pct",
	"passes_completed", "pass_accuracy_pct", "corners_for", "corners_against",
	"fouls_committed", "fouls_suffered",
}

// WriteCSV emits the header row followed by one line per record, in input
// order. Absent fields render as empty cells.
func WriteCSV(w io.Writer, records []models.MatchRecord) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(Columns); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}
	for _, rec := range records {
		if err := cw.Write(recordRow(rec)); err != nil {
			return fmt.Errorf("failed to write CSV row: %w", err)
		}
	}

	cw.Flush()
	return cw.Error()
}

// SaveCSV writes the records to a file at path.
func SaveCSV(records []models.MatchRecord, path string) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer file.Close()

	return WriteCSV(file, records)
}

func recordRow(rec models.MatchRecord) []string {
	return []string{
		rec.Date,
		rec.Opponent,
		string(rec.Venue),
		intCell(rec.GoalsFor),
		intCell(rec.GoalsAgainst),
		intCell(rec.Shots),
		intCell(rec.ShotsOnTarget),
		intCell(rec.ShotsOffTarget),
		floatCell(rec.PossessionPct),
		intCell(rec.PassesCompleted),
		floatCell(rec.PassAccuracyPct),
		intCell(rec.CornersFor),
		intCell(rec.CornersAgainst),
		intCell(rec.FoulsCommitted),
		intCell(rec.FoulsSuffered),
	}
}

func intCell(v *int) string {
	if v == nil {
		return ""
	}
	return strconv.Itoa(*v)
}

func floatCell(v *float64) string {
	if v == nil {
		return ""
	}
	return strconv.FormatFloat(*v, 'f', -1, 64)
}
