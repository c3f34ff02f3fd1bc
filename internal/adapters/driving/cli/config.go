package cli

import (
	"errors"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/feezz8/toll-aggregation/internal/core/domain"
	"github.com/feezz8/toll-aggregation/internal/logger"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage local configuration",
	Long: `View and edit the local configuration file.

Keys:
  api_key               - API token (normally written by login)
  base_url              - API root, e.g. https://localhost:9115/api
  auth_header           - header that carries the token (default secret-key)
  insecure_skip_verify  - true to accept self-signed certificates
  timeout               - request timeout, e.g. 30s
  unauthorized_policy   - terminal or fallthrough

Environment variables SE2460_BASE_URL, SE2460_AUTH_HEADER, SE2460_INSECURE
and SE2460_TIMEOUT, and the --base-url and --insecure flags, override the file.`,
	RunE: runConfigShow,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show effective settings",
	Args:  cobra.NoArgs,
	RunE:  runConfigShow,
}

var configGetCmd = &cobra.Command{
	Use:   "get <key>",
	Short: "Print a stored value",
	Args:  cobra.ExactArgs(1),
	RunE:  runConfigGet,
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Store a value",
	Args:  cobra.ExactArgs(2),
	RunE:  runConfigSet,
}

var configUnsetCmd = &cobra.Command{
	Use:   "unset <key>",
	Short: "Remove a stored value",
	Args:  cobra.ExactArgs(1),
	RunE:  runConfigUnset,
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the config file location",
	Args:  cobra.NoArgs,
	RunE:  runConfigPath,
}

func init() {
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configGetCmd)
	configCmd.AddCommand(configSetCmd)
	configCmd.AddCommand(configUnsetCmd)
	configCmd.AddCommand(configPathCmd)
	rootCmd.AddCommand(configCmd)
}

func runConfigShow(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	stored := settingsService.All()
	p := output(cmd)

	cmd.Println("Current Settings")
	cmd.Println("================")
	cmd.Println()

	if key, ok := stored[domain.KeyAPIKey]; ok {
		p.KeyValue(domain.KeyAPIKey, logger.Mask(key))
	} else {
		p.KeyValue(domain.KeyAPIKey, "(not set)")
	}

	for _, key := range domain.SettingKeys() {
		value, _ := clientSettings.Value(key)
		if _, ok := stored[key]; !ok {
			value += " (default)"
		}
		p.KeyValue(key, value)
	}

	// Keys this client does not use are kept in the file; list them so they are not a surprise.
	var extra []string
	for key := range stored {
		if !isKnownKey(key) {
			extra = append(extra, key)
		}
	}
	sort.Strings(extra)
	for _, key := range extra {
		p.KeyValue(key, stored[key]+" (unused)")
	}

	cmd.Println()
	cmd.Printf("Config file: %s\n", settingsService.Path())
	return nil
}

func runConfigGet(cmd *cobra.Command, args []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	value, ok := settingsService.Get(args[0])
	if !ok {
		output(cmd).Warning("(not set)")
		return nil
	}
	cmd.Println(value)
	return nil
}

func runConfigSet(cmd *cobra.Command, args []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	key := strings.TrimSpace(args[0])
	if err := settingsService.Set(key, args[1]); err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			return handleError(cmd, err)
		}
		return err
	}

	output(cmd).Success("Saved " + key)
	return nil
}

func runConfigUnset(cmd *cobra.Command, args []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	if err := settingsService.Unset(args[0]); err != nil {
		return err
	}

	output(cmd).Success("Removed " + args[0])
	return nil
}

func runConfigPath(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	cmd.Println(settingsService.Path())
	return nil
}

func isKnownKey(key string) bool {
	if key == domain.KeyAPIKey {
		return true
	}
	for _, k := range domain.SettingKeys() {
		if k == key {
			return true
		}
	}
	return false
}
