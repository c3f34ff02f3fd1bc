package cli

import (
	"errors"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/feezz8/toll-aggregation/internal/logger"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show login state and connection settings",
	Args:  cobra.NoArgs,
	RunE:  runStatus,
}

func init() {
	rootCmd.AddCommand(statusCmd)
}

func runStatus(cmd *cobra.Command, _ []string) error {
	if sessionService == nil {
		return errors.New("session service not configured")
	}
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	p := output(cmd)
	if credential, ok := sessionService.Credential(); ok {
		p.Success("Logged in")
		p.KeyValue("API token", logger.Mask(credential))
	} else {
		p.Warning("Not logged in")
	}

	p.KeyValue("Config file", settingsService.Path())
	p.KeyValue("Base URL", clientSettings.BaseURL)
	p.KeyValue("Auth header", clientSettings.AuthHeader)
	p.KeyValue("Verify TLS", strconv.FormatBool(!clientSettings.InsecureSkipVerify))
	p.KeyValue("Timeout", clientSettings.Timeout.String())
	p.KeyValue("On 401", string(clientSettings.UnauthorizedPolicy))
	return nil
}
