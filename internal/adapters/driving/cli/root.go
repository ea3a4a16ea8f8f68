// Package cli implements the quaero command tree.
//
// Commands obtain their collaborators through package-level variables
// set once at startup via SetDependencies. Every command guards against
// a nil service so a partially wired binary reports a clear error
// instead of panicking.
package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/quaero-cli/internal/core/ports/driven"
	"github.com/custodia-labs/quaero-cli/internal/core/ports/driving"
	"github.com/custodia-labs/quaero-cli/internal/logger"
)

// Build information, overridden at link time by the release build.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// Services injected via SetDependencies.
var (
	assistantService driving.Assistant
	retrievalService driving.Retriever
	advisorService   driving.Advisor
	reporterService  driving.Reporter
	forecastService  driving.ForecastService
	settingsService  driving.SettingsService

	// reportStore backs the MCP weather resources.
	reportStore driven.ReportStore

	// newDocumentSource builds a loader for the directory handed to
	// the ingest command.
	newDocumentSource func(dir string) driven.DocumentSource
)

var verbose bool

var rootCmd = &cobra.Command{
	Use:   "quaero",
	Short: "Ask questions about your documents",
	Long: `Quaero indexes plain-text documents and answers questions about them
using retrieval-augmented generation: documents are chunked, embedded,
and stored in a vector index; questions retrieve the closest chunks and
hand them to an LLM as context.

It also fetches weather reports and turns them into travel advisories,
with or without an LLM.`,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		if verbose {
			logger.SetVerbose(true)
		}
	},
	SilenceUsage: true,
}

// Dependencies carries everything the command tree needs.
type Dependencies struct {
	Assistant driving.Assistant
	Retriever driving.Retriever
	Advisor   driving.Advisor
	Reporter  driving.Reporter
	Forecast  driving.ForecastService
	Settings  driving.SettingsService

	// Reports backs the MCP weather resources.
	Reports driven.ReportStore

	// DocumentSource builds a loader for an ingest directory.
	DocumentSource func(dir string) driven.DocumentSource
}

// SetDependencies wires services into the command tree.
func SetDependencies(deps Dependencies) {
	assistantService = deps.Assistant
	retrievalService = deps.Retriever
	advisorService = deps.Advisor
	reporterService = deps.Reporter
	forecastService = deps.Forecast
	settingsService = deps.Settings
	reportStore = deps.Reports
	newDocumentSource = deps.DocumentSource
}

// SetVersion records build information for the version command.
func SetVersion(v, c, d string) {
	version = v
	commit = c
	date = d
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// ExecuteContext runs the root command with the given context, so
// long-running commands stop on interrupt.
func ExecuteContext(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}
