// Command se2460 is the command line client for the toll management API.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/feezz8/toll-aggregation/internal/adapters/driven/config/file"
	"github.com/feezz8/toll-aggregation/internal/adapters/driven/httpapi"
	"github.com/feezz8/toll-aggregation/internal/adapters/driving/cli"
	"github.com/feezz8/toll-aggregation/internal/core/services"
)

// version is overridden at build time with -ldflags "-X main.version=...".
var version = "dev"

func main() {
	cli.SetVersion(version)
	cli.SetBootstrap(bootstrap)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := cli.Execute(ctx)
	stop()

	if err != nil {
		if !cli.Reported(err) {
			fmt.Fprintln(os.Stderr, "Error:", err)
		}
		os.Exit(1)
	}
}

// bootstrap wires the adapters into the services for one invocation.
func bootstrap(opts cli.Options) (*cli.Services, error) {
	store, err := file.NewConfigStore(opts.ConfigPath)
	if err != nil {
		return nil, fmt.Errorf("open config: %w", err)
	}

	settingsService := services.NewSettingsService(store)
	settings, err := settingsService.Client(opts.Overrides)
	if err != nil {
		return nil, err
	}

	dispatcher := services.NewDispatcher(httpapi.NewClient(settings), store, settings.UnauthorizedPolicy)

	return &cli.Services{
		Session:  services.NewSessionService(store, dispatcher),
		Tolls:    services.NewTollService(dispatcher),
		Settings: settingsService,
		Client:   settings,
	}, nil
}
