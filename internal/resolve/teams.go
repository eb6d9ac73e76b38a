package resolve

import "strings"

// registryEntry is a squad whose id and match-log path are known up front,
// so resolving it needs no search request at all.
type registryEntry struct {
	Name        string
	SquadID     string
	MatchlogURL string // site-relative
}

// knownTeams covers the clubs this tool is most often pointed at. Anything
// else goes through the site search.
var knownTeams = []registryEntry{
	{"Manchester City", "b8fd03ef", "/en/squads/b8fd03ef/matchlogs/all_comps/Manchester-City-Scores-and-Fixtures-All-Competitions"},
	{"Manchester United", "19538871", "/en/squads/19538871/matchlogs/all_comps/Manchester-United-Scores-and-Fixtures-All-Competitions"},
	{"Liverpool", "822bd0ba", "/en/squads/822bd0ba/matchlogs/all_comps/Liverpool-Scores-and-Fixtures-All-Competitions"},
	{"Arsenal", "18bb7c10", "/en/squads/18bb7c10/matchlogs/all_comps/Arsenal-Scores-and-Fixtures-All-Competitions"},
	{"Chelsea", "cff3d9bb", "/en/squads/cff3d9bb/matchlogs/all_comps/Chelsea-Scores-and-Fixtures-All-Competitions"},
	{"Tottenham Hotspur", "361ca564", "/en/squads/361ca564/matchlogs/all_comps/Tottenham-Hotspur-Scores-and-Fixtures-All-Competitions"},
	{"Barcelona", "206d90db", "/en/squads/206d90db/matchlogs/all_comps/Barcelona-Scores-and-Fixtures-All-Competitions"},
	{"Real Madrid", "53a2f082", "/en/squads/53a2f082/matchlogs/all_comps/Real-Madrid-Scores-and-Fixtures-All-Competitions"},
}

// KnownTeamNames lists the registry for display.
func KnownTeamNames() []string {
	names := make([]string, len(knownTeams))
	for i, t := range knownTeams {
		names[i] = t.Name
	}
	return names
}

// KnownTeams returns the registry entries for display.
func KnownTeams() []struct{ Name, SquadID string } {
	out := make([]struct{ Name, SquadID string }, len(knownTeams))
	for i, t := range knownTeams {
		out[i] = struct{ Name, SquadID string }{t.Name, t.SquadID}
	}
	return out
}

// lookupByName finds a registry entry by case-insensitive substring match in
// either direction, so "tottenham" and "Manchester City FC" both hit.
func lookupByName(name string) (registryEntry, bool) {
	key := strings.ToLower(strings.TrimSpace(name))
	if key == "" {
		return registryEntry{}, false
	}
	for _, t := range knownTeams {
		entryKey := strings.ToLower(t.Name)
		if entryKey == key || strings.Contains(entryKey, key) || strings.Contains(key, entryKey) {
			return t, true
		}
	}
	return registryEntry{}, false
}

func lookupByID(squadID string) (registryEntry, bool) {
	for _, t := range knownTeams {
		if t.SquadID == squadID {
			return t, true
		}
	}
	return registryEntry{}, false
}
