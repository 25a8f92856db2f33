package cli

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/leadlens-labs/leadlens-cli/internal/core/domain"
)

var requestsCmd = &cobra.Command{
	Use:   "requests",
	Short: "List your stored enrichment results",
	Long: `List the enrichment results stored under your account, newest first.

Each entry shows when the result was stored and its enriched fields.`,
	RunE: runRequests,
}

func init() {
	rootCmd.AddCommand(requestsCmd)
}

func runRequests(cmd *cobra.Command, _ []string) error {
	if requestService == nil {
		return errors.New("request service not configured")
	}

	requests, err := requestService.List(cmd.Context())
	if err != nil {
		if errors.Is(err, domain.ErrNotAuthenticated) {
			return errors.New("not signed in. Run 'leadlens login' first")
		}
		return fmt.Errorf("failed to list requests: %w", err)
	}

	if len(requests) == 0 {
		cmd.Println("No stored enrichment results.")
		cmd.Println("Submit one with: leadlens enrich --company <name> --website <url>")
		return nil
	}

	for i := range requests {
		cmd.Printf("%s\n", requests[i].RequestTime.Local().Format(time.RFC3339))
		printRecord(cmd, requests[i].EnrichedData, "  ")
		cmd.Println()
	}

	return nil
}
