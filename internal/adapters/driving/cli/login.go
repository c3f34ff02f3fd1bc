package cli

import (
	"bufio"
	"errors"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/feezz8/toll-aggregation/internal/core/domain"
)

var (
	usernameFlag string
	passwordFlag string
)

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Log in and store the API token",
	Long: `Authenticate with username and password and store the returned token.

Any previously stored token is removed first, so a failed login leaves you
logged out. Missing values are prompted for; the password is read without echo.`,
	Example: "  se2460 login --username admin --password freepasses4all",
	Args:    cobra.NoArgs,
	RunE:    runLogin,
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Log out and remove the stored API token",
	Args:  cobra.NoArgs,
	RunE:  requireAuth(runLogout),
}

func init() {
	loginCmd.Flags().StringVar(&usernameFlag, "username", "", "Username")
	loginCmd.Flags().StringVar(&passwordFlag, "password", "", "Password (prompted when omitted)")

	rootCmd.AddCommand(loginCmd)
	rootCmd.AddCommand(logoutCmd)
}

func runLogin(cmd *cobra.Command, _ []string) error {
	if sessionService == nil {
		return errors.New("session service not configured")
	}

	reader := bufio.NewReader(cmd.InOrStdin())

	username := usernameFlag
	if username == "" {
		cmd.Print("Username: ")
		username = readLine(reader)
	}

	password := passwordFlag
	if password == "" {
		cmd.Print("Password: ")
		password = readPassword(cmd.InOrStdin(), reader)
		cmd.Println()
	}

	outcome, err := sessionService.Login(cmd.Context(), username, password)
	if err != nil {
		return handleError(cmd, err)
	}

	p := output(cmd)
	switch outcome.Kind {
	case domain.OutcomeSuccess:
		p.Success("Login successful.")
	case domain.OutcomeEmpty:
		p.Warning("Login returned no token.")
	default:
		p.Report(outcome)
	}
	return nil
}

func runLogout(cmd *cobra.Command, _ []string, credential string) error {
	outcome, err := sessionService.Logout(cmd.Context(), credential)
	if err != nil {
		return err
	}

	p := output(cmd)
	if outcome.Err() != nil {
		p.Report(outcome)
		p.Info("Stored API token removed.")
		return nil
	}
	p.Success("Logged out.")
	return nil
}

func readLine(reader *bufio.Reader) string {
	input, _ := reader.ReadString('\n')
	return strings.TrimSpace(input)
}

// readPassword reads without echo from a terminal, and falls back to a
// plain line read for pipes and tests.
func readPassword(in io.Reader, reader *bufio.Reader) string {
	if f, ok := in.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		password, err := term.ReadPassword(int(f.Fd()))
		if err == nil {
			return string(password)
		}
	}
	input, _ := reader.ReadString('\n')
	return strings.TrimRight(input, "\r\n")
}
