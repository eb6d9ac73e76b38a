// Package samples bundles realistic match data for a handful of teams. The
// stats site aggressively blocks scrapers; samples let the tool demonstrate
// its output format offline, and serve as a fallback when every fetch
// strategy fails.
package samples

import (
	"strings"

	"github.com/fieldstats/matchlog/pkg/models"
)

type sampleTeam struct {
	team    models.Team
	matches []models.MatchRecord
}

// Lookup returns sample data for the team, matched case-insensitively by
// substring, capped at maxMatches rows.
func Lookup(name string, maxMatches int) (*models.Team, []models.MatchRecord, bool) {
	key := strings.ToLower(strings.TrimSpace(name))
	for _, s := range teams {
		entryKey := strings.ToLower(s.team.Name)
		if entryKey == key || strings.Contains(entryKey, key) || strings.Contains(key, entryKey) {
			matches := s.matches
			if maxMatches > 0 && len(matches) > maxMatches {
				matches = matches[:maxMatches]
			}
			team := s.team
			return &team, matches, true
		}
	}
	return nil, nil, false
}

func rec(date, opponent string, venue models.Venue, gf, ga, sh, sot, soff int, poss float64, cmp int, passPct float64, ckFor, ckAgainst, fls, fld int) models.MatchRecord {
	return models.MatchRecord{
		Date:            date,
		Opponent:        opponent,
		Venue:           venue,
		GoalsFor:        &gf,
		GoalsAgainst:    &ga,
		Shots:           &sh,
		ShotsOnTarget:   &sot,
		ShotsOffTarget:  &soff,
		PossessionPct:   &poss,
		PassesCompleted: &cmp,
		PassAccuracyPct: &passPct,
		CornersFor:      &ckFor,
		CornersAgainst:  &ckAgainst,
		FoulsCommitted:  &fls,
		FoulsSuffered:   &fld,
	}
}

var teams = []sampleTeam{
	{
		team: models.Team{Name: "Manchester City", SquadID: "b8fd03ef"},
		matches: []models.MatchRecord{
			rec("2025-05-10", "Arsenal", models.VenueHome, 3, 1, 15, 8, 7, 60.2, 500, 88.5, 7, 3, 10, 12),
			rec("2025-05-03", "Liverpool", models.VenueAway, 2, 2, 12, 5, 7, 55.8, 450, 85.0, 6, 4, 8, 9),
			rec("2025-04-29", "Manchester United", models.VenueHome, 4, 0, 18, 10, 8, 65.3, 550, 90.2, 8, 2, 7, 10),
			rec("2025-04-22", "Tottenham", models.VenueAway, 1, 1, 14, 6, 8, 58.5, 480, 87.5, 5, 5, 9, 8),
			rec("2025-04-18", "Chelsea", models.VenueHome, 2, 0, 16, 9, 7, 62.7, 520, 89.8, 7, 3, 6, 11),
			rec("2025-04-12", "Newcastle", models.VenueAway, 3, 2, 15, 8, 7, 59.6, 490, 86.4, 6, 4, 8, 10),
			rec("2025-04-06", "Leicester", models.VenueHome, 5, 0, 20, 12, 8, 68.2, 580, 92.0, 9, 1, 5, 8),
		},
	},
	{
		team: models.Team{Name: "Manchester United", SquadID: "19538871"},
		matches: []models.MatchRecord{
			rec("2025-05-10", "Chelsea", models.VenueHome, 2, 1, 14, 7, 7, 54.3, 460, 84.2, 6, 4, 11, 9),
			rec("2025-05-03", "Arsenal", models.VenueAway, 1, 2, 10, 4, 6, 45.7, 400, 80.5, 4, 7, 12, 8),
			rec("2025-04-29", "Manchester City", models.VenueAway, 0, 4, 8, 2, 6, 34.7, 320, 75.8, 2, 8, 10, 7),
			rec("2025-04-22", "Newcastle", models.VenueHome, 2, 0, 15, 8, 7, 58.2, 470, 85.3, 7, 3, 8, 10),
			rec("2025-04-18", "Liverpool", models.VenueAway, 1, 3, 9, 3, 6, 42.5, 380, 79.6, 3, 8, 14, 7),
			rec("2025-04-12", "Tottenham", models.VenueHome, 2, 2, 13, 6, 7, 51.4, 440, 83.2, 5, 5, 9, 9),
			rec("2025-04-06", "Aston Villa", models.VenueAway, 1, 0, 12, 5, 7, 53.6, 450, 82.8, 6, 4, 10, 8),
		},
	},
}
