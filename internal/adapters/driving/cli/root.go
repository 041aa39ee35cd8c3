// Package cli implements the command-line interface.
package cli

import (
	"github.com/spf13/cobra"

	"github.com/strata-labs/strata/internal/core/ports/driving"
	"github.com/strata-labs/strata/internal/logger"
)

// version is set at build time via ldflags.
var version = "dev"

// Services are injected by the composition root before Execute runs.
// Commands check for nil so the CLI stays testable without a full stack.
var (
	ingestService driving.IngestService
	queryService  driving.QueryService
	adminService  driving.AdminService
)

var verbose bool

var rootCmd = &cobra.Command{
	Use:   "strata",
	Short: "Structure-aware document indexing and retrieval",
	Long: `Strata ingests documents into two typed collections (text and
tables) and answers queries by searching both, reranking the combined
candidates into one list.`,
	SilenceUsage: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logger.SetVerbose(verbose)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
}

// SetServices injects the driving services used by the commands.
func SetServices(ingest driving.IngestService, query driving.QueryService, admin driving.AdminService) {
	ingestService = ingest
	queryService = query
	adminService = admin
}

// SetVersion overrides the build version string.
func SetVersion(v string) {
	if v != "" {
		version = v
	}
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
