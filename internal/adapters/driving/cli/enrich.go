package cli

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/leadlens-labs/leadlens-cli/internal/core/domain"
)

var enrichCmd = &cobra.Command{
	Use:   "enrich",
	Short: "Enrich a company lead",
	Long: `Submit a company lead for enrichment.

Both --company and --website are required. The enriched result is
printed and stored under your account; submitting a lead that returns
an identical result does not create a duplicate entry.

Examples:
  leadlens enrich --company "Acme Corp" --website "https://acme.com"`,
	RunE: runEnrich,
}

var (
	enrichCompany string
	enrichWebsite string
)

func init() {
	enrichCmd.Flags().StringVar(&enrichCompany, "company", "", "Company name")
	enrichCmd.Flags().StringVar(&enrichWebsite, "website", "", "Company website URL")
	rootCmd.AddCommand(enrichCmd)
}

func runEnrich(cmd *cobra.Command, _ []string) error {
	if sessionService == nil {
		return errors.New("session service not configured")
	}

	snapshot := sessionService.Snapshot()
	if !snapshot.Phase.SignedIn() {
		return errors.New("not signed in. Run 'leadlens login' first")
	}

	if err := sessionService.UpdateInput(domain.FieldCompanyName, enrichCompany); err != nil {
		return sessionError(err)
	}
	if err := sessionService.UpdateInput(domain.FieldWebsite, enrichWebsite); err != nil {
		return sessionError(err)
	}

	if err := sessionService.Submit(cmd.Context()); err != nil {
		return sessionError(err)
	}

	snapshot = sessionService.Snapshot()
	if snapshot.LastRecord == nil {
		return errors.New(domain.MsgEnrichmentFailed)
	}

	cmd.Printf("Enriched data for %s:\n", enrichCompany)
	printRecord(cmd, snapshot.LastRecord, "  ")
	return nil
}

// printRecord renders a record's fields in sorted key order.
func printRecord(cmd *cobra.Command, record domain.EnrichmentRecord, indent string) {
	for _, key := range record.Keys() {
		cmd.Printf("%s%s: %s\n", indent, key, formatValue(record[key]))
	}
}

// formatValue renders scalars directly and composites as compact JSON.
func formatValue(value any) string {
	switch value.(type) {
	case nil:
		return "null"
	case string, bool, float64, int, int64:
		return fmt.Sprintf("%v", value)
	default:
		data, err := json.Marshal(value)
		if err != nil {
			return fmt.Sprintf("%v", value)
		}
		return string(data)
	}
}
