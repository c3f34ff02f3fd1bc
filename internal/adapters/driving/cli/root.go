// Package cli provides the se2460 command line interface.
package cli

import (
	"context"
	"errors"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/feezz8/toll-aggregation/internal/core/domain"
	"github.com/feezz8/toll-aggregation/internal/core/ports/driving"
	"github.com/feezz8/toll-aggregation/internal/logger"
)

// version is set at build time via SetVersion.
var version = "dev"

// Environment variables read before flags are applied.
const (
	EnvConfig     = "SE2460_CONFIG"
	EnvBaseURL    = "SE2460_BASE_URL"
	EnvInsecure   = "SE2460_INSECURE"
	EnvAuthHeader = "SE2460_AUTH_HEADER"
	EnvTimeout    = "SE2460_TIMEOUT"
)

// skipServices marks commands that run without bootstrapping services.
const skipServices = "skip-services"

// Injected services.
var (
	sessionService  driving.SessionService
	tollService     driving.TollService
	settingsService driving.SettingsService
	clientSettings  = domain.DefaultClientSettings()
	bootstrap       BootstrapFunc
)

// Persistent flags.
var (
	verboseFlag  bool
	configFlag   string
	baseURLFlag  string
	insecureFlag bool
	apiKeyFlag   string
)

// Options carries the configuration sources gathered from the
// environment and flags.
type Options struct {
	// ConfigPath is the config file; empty means the default location.
	ConfigPath string

	// Overrides are setting values that take precedence over the file.
	Overrides map[string]string
}

// Services are the driving ports the commands call.
type Services struct {
	Session  driving.SessionService
	Tolls    driving.TollService
	Settings driving.SettingsService
	Client   domain.ClientSettings
}

// BootstrapFunc builds services once flags are parsed.
type BootstrapFunc func(Options) (*Services, error)

var rootCmd = &cobra.Command{
	Use:   "se2460",
	Short: "CLI manager for the toll management system",
	Long: `se2460 talks to the toll management REST API.

Log in once with "se2460 login"; the returned token is stored in
~/.se2460/config.json and sent with every later command until "se2460 logout".`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: runRootPreRun,
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.BoolVarP(&verboseFlag, "verbose", "v", false, "Print request diagnostics to stderr")
	flags.StringVar(&configFlag, "config", "", "Config file (.json, .toml or .yaml; default ~/.se2460/config.json)")
	flags.StringVar(&baseURLFlag, "base-url", "", "API base URL (default "+domain.DefaultBaseURL+")")
	flags.BoolVar(&insecureFlag, "insecure", false, "Skip TLS certificate verification")
	flags.StringVar(&apiKeyFlag, "api-key", "", "Use this credential instead of the stored one")
	_ = flags.MarkHidden("api-key")
}

// SetVersion sets the version reported by the version command.
func SetVersion(v string) {
	version = v
}

// SetBootstrap sets the function that builds services before each command.
func SetBootstrap(fn BootstrapFunc) {
	bootstrap = fn
}

// SetServices injects services directly.
func SetServices(s *Services) {
	sessionService = s.Session
	tollService = s.Tolls
	settingsService = s.Settings
	clientSettings = s.Client
}

// Execute runs the root command. Results and notices go to stdout.
func Execute(ctx context.Context) error {
	rootCmd.SetOut(os.Stdout)
	return rootCmd.ExecuteContext(ctx)
}

func runRootPreRun(cmd *cobra.Command, _ []string) error {
	logger.SetVerbose(verboseFlag)

	if bootstrap == nil || cmd.Annotations[skipServices] == "true" {
		return nil
	}

	services, err := bootstrap(options(cmd))
	if err != nil {
		return err
	}
	SetServices(services)
	return nil
}

// options collects environment variables, then changed flags, which win.
func options(cmd *cobra.Command) Options {
	opts := Options{
		ConfigPath: os.Getenv(EnvConfig),
		Overrides:  make(map[string]string),
	}

	for env, key := range map[string]string{
		EnvBaseURL:    domain.KeyBaseURL,
		EnvInsecure:   domain.KeyInsecure,
		EnvAuthHeader: domain.KeyAuthHeader,
		EnvTimeout:    domain.KeyTimeout,
	} {
		if v, ok := os.LookupEnv(env); ok && v != "" {
			opts.Overrides[key] = v
		}
	}

	flags := cmd.Flags()
	if flags.Changed("config") {
		opts.ConfigPath = configFlag
	}
	if flags.Changed("base-url") {
		opts.Overrides[domain.KeyBaseURL] = baseURLFlag
	}
	if flags.Changed("insecure") {
		opts.Overrides[domain.KeyInsecure] = strconv.FormatBool(insecureFlag)
	}

	return opts
}

// reportedError marks an error whose notice was already printed.
type reportedError struct {
	err error
}

func (e *reportedError) Error() string { return e.err.Error() }

func (e *reportedError) Unwrap() error { return e.err }

func reported(err error) error {
	return &reportedError{err: err}
}

// Reported reports whether err has already been shown to the user.
// The caller should still exit with a non-zero status.
func Reported(err error) bool {
	var r *reportedError
	return errors.As(err, &r)
}
