package models

import "time"

// Venue is where a match was played, from the scraped team's perspective.
type Venue string

const (
	VenueHome Venue = "home"
	VenueAway Venue = "away"
)

// MatchRecord is one extracted row of a team's match log. Numeric fields are
// pointers because the source table may simply not carry a column for a given
// competition; a nil field renders as an empty CSV cell rather than a made-up
// zero.
type MatchRecord struct {
	Date            string
	Opponent        string
	Venue           Venue
	GoalsFor        *int
	GoalsAgainst    *int
	Shots           *int
	ShotsOnTarget   *int
	ShotsOffTarget  *int
	PossessionPct   *float64
	PassesCompleted *int
	PassAccuracyPct *float64
	CornersFor      *int
	CornersAgainst  *int
	FoulsCommitted  *int
	FoulsSuffered   *int
}

// Team identifies a squad on the stats site.
type Team struct {
	Name        string
	SquadID     string
	MatchlogURL string // absolute URL of the scores-and-fixtures page, if known
}

// Page represents a fetched document snapshot.
type Page struct {
	URL          string
	StatusCode   int
	HTML         string
	FetchedAt    time.Time
	ResponseTime int64 // milliseconds
}
