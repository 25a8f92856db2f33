// Package cli implements the leadlens command-line interface.
package cli

import (
	"github.com/spf13/cobra"

	"github.com/leadlens-labs/leadlens-cli/internal/core/ports/driving"
	"github.com/leadlens-labs/leadlens-cli/internal/logger"
)

// version is set by Execute from the build's version string.
var version = "dev"

// Services wired in by the composition root. Commands check for nil so
// a partially-wired binary fails with a clear message instead of a panic.
var (
	sessionService  driving.SessionService
	requestService  driving.RequestService
	settingsService driving.SettingsService
)

var verbose bool

var rootCmd = &cobra.Command{
	Use:   "leadlens",
	Short: "Lead enrichment from your terminal",
	Long: `LeadLens enriches company leads through your enrichment API.

Sign in with Google, submit a company name and website, and get back
structured enrichment data. Results are stored per account, with
duplicate results stored only once.

Typical flow:
  leadlens login
  leadlens enrich --company "Acme Corp" --website "https://acme.com"
  leadlens requests`,
	PersistentPreRun: func(*cobra.Command, []string) {
		logger.SetVerbose(verbose)
	},
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
}

// SetServices wires the driving ports used by the commands.
func SetServices(session driving.SessionService, requests driving.RequestService, settings driving.SettingsService) {
	sessionService = session
	requestService = requests
	settingsService = settings
}

// Execute runs the root command with the given build version.
func Execute(v string) error {
	if v != "" {
		version = v
	}
	return rootCmd.Execute()
}
