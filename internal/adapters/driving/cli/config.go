package cli

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage configuration",
	Long: `View and change leadlens configuration.

Keys:
  api.base_url        Enrichment API base URL
  oauth.client_id     Google OAuth client ID
  oauth.client_secret Google OAuth client secret
  storage.data_dir    Local data directory

Environment variables (LEADLENS_API_URL, LEADLENS_OAUTH_CLIENT_ID,
LEADLENS_OAUTH_CLIENT_SECRET, LEADLENS_DATA_DIR) override the file.`,
	RunE: runConfigShow,
}

var configGetCmd = &cobra.Command{
	Use:   "get <key>",
	Short: "Print the effective value of a config key",
	Args:  cobra.ExactArgs(1),
	RunE:  runConfigGet,
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> [value]",
	Short: "Set a config key",
	Long: `Set a config key in the config file.

When the value is omitted for a secret key, it is prompted for without
echoing to the terminal.`,
	Args: cobra.RangeArgs(1, 2),
	RunE: runConfigSet,
}

func init() {
	configCmd.AddCommand(configGetCmd)
	configCmd.AddCommand(configSetCmd)
	rootCmd.AddCommand(configCmd)
}

// secretKeys are prompted without echo and masked in output.
var secretKeys = map[string]bool{
	"oauth.client_secret": true,
}

func runConfigShow(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	cmd.Printf("Config file: %s\n\n", settingsService.Path())

	for _, key := range settingsService.Keys() {
		value, err := settingsService.GetValue(key)
		if err != nil {
			return err
		}
		switch {
		case value == "":
			cmd.Printf("  %s: (not set)\n", key)
		case secretKeys[key]:
			cmd.Printf("  %s: %s\n", key, maskSecret(value))
		default:
			cmd.Printf("  %s: %s\n", key, value)
		}
	}

	if err := settingsService.Validate(); err != nil {
		cmd.Printf("\nWarning: %v\n", err)
	}

	return nil
}

func runConfigGet(cmd *cobra.Command, args []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	value, err := settingsService.GetValue(args[0])
	if err != nil {
		return err
	}
	cmd.Println(value)
	return nil
}

func runConfigSet(cmd *cobra.Command, args []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	key := args[0]
	var value string
	if len(args) == 2 {
		value = args[1]
	} else {
		if !secretKeys[key] {
			return fmt.Errorf("value required for %s", key)
		}
		cmd.Printf("Enter %s: ", key)
		value = readSecret()
		cmd.Println()
	}

	if err := settingsService.SetValue(key, value); err != nil {
		return err
	}

	cmd.Printf("Set %s\n", key)
	return nil
}

//nolint:errcheck // CLI helper, error ignored for UX
func readSecret() string {
	// Try to read without echo
	if term.IsTerminal(int(os.Stdin.Fd())) {
		secret, err := term.ReadPassword(int(os.Stdin.Fd()))
		if err == nil {
			return string(secret)
		}
	}
	// Fallback to regular input
	reader := bufio.NewReader(os.Stdin)
	input, _ := reader.ReadString('\n')
	return strings.TrimSpace(input)
}

func maskSecret(value string) string {
	if len(value) <= 8 {
		return "****"
	}
	return value[:4] + "..." + value[len(value)-4:]
}
