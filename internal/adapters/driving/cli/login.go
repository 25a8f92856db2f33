package cli

import (
	"errors"

	"github.com/spf13/cobra"
)

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Sign in with Google",
	Long: `Sign in with your Google account.

A browser window opens for authorization. The sign-in is persisted
locally, so subsequent commands run without signing in again.`,
	RunE: runLogin,
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Sign out",
	RunE:  runLogout,
}

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the signed-in account",
	RunE:  runWhoami,
}

func init() {
	rootCmd.AddCommand(loginCmd)
	rootCmd.AddCommand(logoutCmd)
	rootCmd.AddCommand(whoamiCmd)
}

func runLogin(cmd *cobra.Command, _ []string) error {
	if sessionService == nil {
		return errors.New("session service not configured")
	}

	if err := sessionService.Login(cmd.Context()); err != nil {
		return sessionError(err)
	}

	snapshot := sessionService.Snapshot()
	if snapshot.Subject != nil {
		cmd.Printf("Signed in as %s (%s)\n", snapshot.Subject.DisplayName, snapshot.Subject.Email)
	}
	return nil
}

func runLogout(cmd *cobra.Command, _ []string) error {
	if sessionService == nil {
		return errors.New("session service not configured")
	}

	if err := sessionService.Logout(cmd.Context()); err != nil {
		return sessionError(err)
	}

	cmd.Println("Signed out.")
	return nil
}

func runWhoami(cmd *cobra.Command, _ []string) error {
	if sessionService == nil {
		return errors.New("session service not configured")
	}

	snapshot := sessionService.Snapshot()
	if snapshot.Subject == nil {
		cmd.Println("Not signed in. Run 'leadlens login' first.")
		return nil
	}

	cmd.Printf("%s (%s)\n", snapshot.Subject.DisplayName, snapshot.Subject.Email)
	return nil
}

// sessionError prefers the session's user-facing message over the
// wrapped programmatic error.
func sessionError(err error) error {
	if sessionService != nil {
		if msg := sessionService.Snapshot().LastError; msg != "" {
			return errors.New(msg)
		}
	}
	return err
}
