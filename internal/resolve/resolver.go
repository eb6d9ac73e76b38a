// Package resolve maps a team name or squad URL to the canonical match-log
// page URL.
package resolve

import (
	"context"
	"net/url"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/rs/zerolog/log"

	"github.com/fieldstats/matchlog/pkg/models"
)

// DefaultBaseURL is the production stats site.
const DefaultBaseURL = "https://fbref.com"

var squadIDPattern = regexp.MustCompile(`/squads/([^/]+)/`)

// PageFetcher retrieves a URL as a parsed document. Satisfied by
// *fetch.Fetcher; tests substitute a stub.
type PageFetcher interface {
	Fetch(ctx context.Context, url string) (*models.Page, *goquery.Document, error)
}

// Resolver turns user input into a Team with a match-log URL.
type Resolver struct {
	fetcher PageFetcher
	baseURL string
}

// New creates a Resolver against the production site.
func New(fetcher PageFetcher) *Resolver {
	return NewWithBaseURL(fetcher, DefaultBaseURL)
}

// NewWithBaseURL creates a Resolver against an alternate site root, used by
// tests.
func NewWithBaseURL(fetcher PageFetcher, baseURL string) *Resolver {
	return &Resolver{fetcher: fetcher, baseURL: strings.TrimSuffix(baseURL, "/")}
}

// Resolve maps a team name or a direct squad URL to a Team.
func (r *Resolver) Resolve(ctx context.Context, input string, isURL bool) (*models.Team, error) {
	if isURL {
		return r.resolveURL(ctx, input)
	}
	return r.resolveName(ctx, input)
}

// resolveURL validates a user-supplied squad URL and passes it through.
func (r *Resolver) resolveURL(ctx context.Context, rawURL string) (*models.Team, error) {
	parsed, err := url.Parse(rawURL)
	if err != nil || (parsed.Scheme != "http" && parsed.Scheme != "https") || parsed.Host == "" {
		return nil, &ResolutionError{Kind: KindInvalidURL, Input: rawURL}
	}

	m := squadIDPattern.FindStringSubmatch(parsed.Path)
	if m == nil {
		return nil, &ResolutionError{Kind: KindInvalidURL, Input: rawURL}
	}
	squadID := m[1]

	if entry, ok := lookupByID(squadID); ok {
		return r.teamFromRegistry(entry), nil
	}

	// Unknown squad: read the team page for its name and match-log link.
	_, doc, err := r.fetcher.Fetch(ctx, rawURL)
	if err != nil {
		return nil, err
	}

	team := &models.Team{SquadID: squadID}
	team.Name = strings.TrimSpace(doc.Find(`h1[itemprop="name"]`).First().Text())
	if team.Name == "" {
		// Last resort: derive a readable name from the URL slug.
		team.Name = nameFromSlug(parsed.Path)
	}
	team.MatchlogURL = r.matchlogLinkFromTeamPage(doc)

	log.Debug().Str("team", team.Name).Str("squad_id", squadID).Msg("Resolved team from URL")
	return team, nil
}

// resolveName maps a team name to a Team: registry first, site search as
// fallback.
func (r *Resolver) resolveName(ctx context.Context, name string) (*models.Team, error) {
	if entry, ok := lookupByName(name); ok {
		log.Debug().Str("team", entry.Name).Msg("Team found in registry")
		return r.teamFromRegistry(entry), nil
	}

	searchURL := r.baseURL + "/en/search/search.fcgi?search=" + url.QueryEscape(name)
	_, doc, err := r.fetcher.Fetch(ctx, searchURL)
	if err != nil {
		return nil, err
	}

	results := parseSearchResults(doc)
	if len(results) == 0 {
		return nil, &ResolutionError{Kind: KindTeamNotFound, Input: name}
	}

	best := results[0]
	log.Debug().Str("team", best.Name).Str("squad_id", best.SquadID).Msg("Team found via site search")
	return &models.Team{Name: best.Name, SquadID: best.SquadID}, nil
}

// MatchlogURL returns the absolute URL of the team's scores-and-fixtures
// page, discovering it from the team page when not already known.
func (r *Resolver) MatchlogURL(ctx context.Context, team *models.Team) (string, error) {
	if team.MatchlogURL != "" {
		return r.absolute(team.MatchlogURL), nil
	}

	teamURL := r.baseURL + "/en/squads/" + team.SquadID + "/" + slugify(team.Name) + "-Stats"
	_, doc, err := r.fetcher.Fetch(ctx, teamURL)
	if err != nil {
		return "", err
	}

	if link := r.matchlogLinkFromTeamPage(doc); link != "" {
		return r.absolute(link), nil
	}

	// The all-competitions URL follows a stable pattern; guess it when the
	// navigation link is missing.
	guessed := r.baseURL + "/en/squads/" + team.SquadID + "/matchlogs/all_comps/" +
		slugify(team.Name) + "-Scores-and-Fixtures-All-Competitions"
	log.Debug().Str("url", guessed).Msg("Match Logs link not found, using direct URL")
	return guessed, nil
}

func (r *Resolver) teamFromRegistry(entry registryEntry) *models.Team {
	return &models.Team{
		Name:        entry.Name,
		SquadID:     entry.SquadID,
		MatchlogURL: r.absolute(entry.MatchlogURL),
	}
}

func (r *Resolver) matchlogLinkFromTeamPage(doc *goquery.Document) string {
	var link string
	doc.Find("#inner_nav a").EachWithBreak(func(_ int, sel *goquery.Selection) bool {
		if strings.Contains(sel.Text(), "Match Logs") {
			link, _ = sel.Attr("href")
			return false
		}
		return true
	})
	return link
}

func (r *Resolver) absolute(link string) string {
	if strings.HasPrefix(link, "http://") || strings.HasPrefix(link, "https://") {
		return link
	}
	return r.baseURL + link
}

// searchResult is one squad hit on the search page.
type searchResult struct {
	Name    string
	SquadID string
}

// parseSearchResults extracts squad links from the site search page,
// ignoring player and other non-squad hits.
func parseSearchResults(doc *goquery.Document) []searchResult {
	var results []searchResult
	doc.Find(".search-item-name a").Each(func(_ int, sel *goquery.Selection) {
		href, ok := sel.Attr("href")
		if !ok || !strings.Contains(href, "/squads/") {
			return
		}
		m := squadIDPattern.FindStringSubmatch(href)
		if m == nil {
			return
		}
		results = append(results, searchResult{
			Name:    strings.TrimSpace(sel.Text()),
			SquadID: m[1],
		})
	})
	return results
}

func slugify(name string) string {
	return strings.ReplaceAll(strings.TrimSpace(name), " ", "-")
}

func nameFromSlug(path string) string {
	parts := strings.Split(strings.Trim(path, "/"), "/")
	last := parts[len(parts)-1]
	last = strings.TrimSuffix(last, "-Stats")
	return strings.ReplaceAll(last, "-", " ")
}
