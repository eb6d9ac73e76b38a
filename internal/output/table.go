package output

import (
	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/fieldstats/matchlog/pkg/models"
)

// RenderTable formats the records as a terminal table for a quick look at
// what was scraped. The full schema lives in the CSV; this shows the
// headline numbers.
func RenderTable(records []models.MatchRecord) string {
	t := table.NewWriter()
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"Date", "Opponent", "Venue", "GF", "GA", "Sh", "SoT", "Poss%", "Pass%"})
	for _, rec := range records {
		t.AppendRow(table.Row{
			rec.Date,
			rec.Opponent,
			string(rec.Venue),
			intCell(rec.GoalsFor),
			intCell(rec.GoalsAgainst),
			intCell(rec.Shots),
			intCell(rec.ShotsOnTarget),
			floatCell(rec.PossessionPct),
			floatCell(rec.PassAccuracyPct),
		})
	}
	return t.Render()
}
