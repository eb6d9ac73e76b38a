// Package cli provides the command-line interface for the matchlog application.
package cli

import "github.com/fieldstats/matchlog/internal/app"

// Global reference, set by the root command's PersistentPreRunE and cleared
// in PersistentPostRun.
var globalApp *app.Application

// SetApp stores the Application for commands to access.
func SetApp(a *app.Application) {
	globalApp = a
}

// GetApp retrieves the current Application, or nil before initialization.
func GetApp() *app.Application {
	return globalApp
}
