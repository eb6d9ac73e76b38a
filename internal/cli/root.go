// internal/cli/root.go
package cli

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/fieldstats/matchlog/internal/app"
	"github.com/fieldstats/matchlog/internal/config"
	"github.com/fieldstats/matchlog/internal/extract"
	"github.com/fieldstats/matchlog/internal/output"
	"github.com/fieldstats/matchlog/internal/samples"
	"github.com/fieldstats/matchlog/internal/ui"
	"github.com/fieldstats/matchlog/pkg/models"
)

var (
	teamName       string
	teamURL        string
	outputPath     string
	toStdout       bool
	maxMatches     int
	useSample      bool
	sampleFallback bool
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "matchlog",
	Short: "Fetch a soccer team's recent match results as CSV",
	Long: `Matchlog scrapes a team's recent match statistics (goals, shots,
possession, passing, corners, fouls) from its scores-and-fixtures page
and writes them as CSV.`,
	Example: `  # Fetch by team name
  matchlog --team "Manchester City"

  # Fetch by squad URL
  matchlog --url https://fbref.com/en/squads/b8fd03ef/Manchester-City-Stats

  # Print CSV to stdout instead of a file
  matchlog --team Arsenal --stdout

  # Use bundled sample data (no network)
  matchlog --team "Manchester United" --sample`,
	Version:       "0.1.0",
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runScrape,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
// The context flows into every command; cancelling it aborts in-flight work.
func Execute(ctx context.Context) {
	err := rootCmd.ExecuteContext(ctx)

	// PersistentPostRun does not run when a command fails; close here so
	// the error path tears down too.
	if a := GetApp(); a != nil {
		_ = a.Close()
		SetApp(nil)
	}

	if err != nil {
		fmt.Fprintln(os.Stderr, ui.Error("Error: ")+err.Error())
		os.Exit(1)
	}
}

func init() {
	config.RegisterFlags(rootCmd)

	rootCmd.Flags().StringVarP(&teamName, "team", "t", "", "Team name to look up (e.g., \"Manchester City\")")
	rootCmd.Flags().StringVarP(&teamURL, "url", "u", "", "Direct squad page URL")
	rootCmd.Flags().StringVarP(&outputPath, "output", "o", config.DefaultOutputPath, "CSV file path to write")
	rootCmd.Flags().Bool("stdout", false, "Write CSV to stdout instead of a file")
	rootCmd.Flags().IntVarP(&maxMatches, "matches", "n", config.DefaultMaxMatches, "Maximum number of recent matches to extract")
	rootCmd.Flags().Bool("sample", false, "Use bundled sample data instead of fetching")
	rootCmd.Flags().Bool("sample-fallback", false, "Fall back to sample data when fetching fails")

	rootCmd.MarkFlagsMutuallyExclusive("team", "url")
	rootCmd.MarkFlagsMutuallyExclusive("url", "sample")

	// Initialize the application lazily, so -h/help don't start it
	rootCmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		if GetApp() != nil {
			return nil
		}

		cfg, err := config.Load(rootCmd)
		if err != nil {
			return err
		}
		if !rootCmd.Flags().Changed("matches") {
			maxMatches = cfg.MaxMatches
		}

		a, err := app.New(cfg)
		if err != nil {
			return err
		}
		SetApp(a)
		return nil
	}

	rootCmd.PersistentPostRun = func(cmd *cobra.Command, args []string) {
		if a := GetApp(); a != nil {
			_ = a.Close()
			SetApp(nil)
		}
	}
}

func runScrape(cmd *cobra.Command, args []string) error {
	toStdout, _ = cmd.Flags().GetBool("stdout")
	useSample, _ = cmd.Flags().GetBool("sample")
	sampleFallback, _ = cmd.Flags().GetBool("sample-fallback")

	if teamName == "" && teamURL == "" {
		return fmt.Errorf("either --team or --url is required")
	}
	if useSample && teamName == "" {
		return fmt.Errorf("--sample requires --team")
	}
	if maxMatches <= 0 {
		return fmt.Errorf("--matches must be > 0")
	}

	a := GetApp()

	var team *models.Team
	var records []models.MatchRecord

	if useSample {
		t, recs, ok := samples.Lookup(teamName, maxMatches)
		if !ok {
			return fmt.Errorf("no sample data for team %q", teamName)
		}
		team, records = t, recs
		log.Info().Str("team", team.Name).Int("matches", len(records)).Msg("Using bundled sample data")
	} else {
		t, recs, err := scrapeLive(cmd.Context(), a)
		if err != nil {
			if !sampleFallback || teamName == "" {
				return err
			}
			st, srecs, ok := samples.Lookup(teamName, maxMatches)
			if !ok {
				return err
			}
			log.Warn().Err(err).Str("team", st.Name).Msg("Fetch failed, falling back to sample data")
			t, recs = st, srecs
		}
		team, records = t, recs
	}

	if len(records) == 0 {
		return fmt.Errorf("no match data found for %s", team.Name)
	}

	if toStdout {
		return output.WriteCSV(os.Stdout, records)
	}

	if err := output.SaveCSV(records, outputPath); err != nil {
		return err
	}

	quiet, _ := cmd.Flags().GetBool("quiet")
	if !quiet {
		fmt.Printf("%s %d matches for %s written to %s\n",
			ui.Success("✓"), len(records), ui.Bold(team.Name), outputPath)
		fmt.Println(output.RenderTable(records))
	}
	return nil
}

// scrapeLive resolves the team, fetches its match-log page, and extracts
// match records from it.
func scrapeLive(ctx context.Context, a *app.Application) (*models.Team, []models.MatchRecord, error) {
	input := teamName
	isURL := false
	if teamURL != "" {
		input = teamURL
		isURL = true
	}

	team, err := a.Resolver.Resolve(ctx, input, isURL)
	if err != nil {
		return nil, nil, err
	}
	log.Info().Str("team", team.Name).Str("squad_id", team.SquadID).Msg("Team resolved")

	logURL, err := a.Resolver.MatchlogURL(ctx, team)
	if err != nil {
		return nil, nil, err
	}
	log.Debug().Str("url", logURL).Msg("Fetching match log")

	_, doc, err := a.Fetcher.Fetch(ctx, logURL)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to fetch match log: %w", err)
	}

	cfg := extract.DefaultConfig()
	cfg.MaxMatches = maxMatches
	records, err := extract.New(cfg).Extract(doc)
	if err != nil {
		if errors.Is(err, extract.ErrTableNotFound) {
			return team, nil, fmt.Errorf("no match-log table on %s (page may be a block screen)", logURL)
		}
		return team, nil, err
	}

	return team, records, nil
}
