// internal/cli/teams.go
package cli

import (
	"os"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/fieldstats/matchlog/internal/resolve"
)

// teamsCmd lists the teams that resolve without a site search.
var teamsCmd = &cobra.Command{
	Use:   "teams",
	Short: "List teams known to the resolver",
	Long: `Prints the built-in team registry. These names resolve instantly,
without hitting the site search. Other teams still work via search.`,
	Args: cobra.NoArgs,
	RunE: runTeams,
}

func init() {
	rootCmd.AddCommand(teamsCmd)
}

func runTeams(cmd *cobra.Command, args []string) error {
	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"Team", "Squad ID"})
	for _, entry := range resolve.KnownTeams() {
		t.AppendRow(table.Row{entry.Name, entry.SquadID})
	}
	t.Render()
	return nil
}
