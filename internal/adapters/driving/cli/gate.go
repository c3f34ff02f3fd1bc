package cli

import (
	"context"
	"errors"

	"github.com/spf13/cobra"

	"github.com/feezz8/toll-aggregation/internal/adapters/driving/presenter"
	"github.com/feezz8/toll-aggregation/internal/core/domain"
)

// authenticatedRunE is a command handler that needs a credential.
type authenticatedRunE func(cmd *cobra.Command, args []string, credential string) error

// requireAuth runs fn behind the session gate. The --api-key flag
// supplies an explicit credential; otherwise the stored one is used.
// Without either the command prints a notice and fails without any
// network call.
func requireAuth(fn authenticatedRunE) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		if sessionService == nil {
			return errors.New("session service not configured")
		}

		gated := sessionService.Gate(func(_ context.Context, credential string) error {
			return fn(cmd, args, credential)
		})

		err := gated(cmd.Context(), apiKeyFlag)
		if errors.Is(err, domain.ErrNotAuthenticated) && !Reported(err) {
			output(cmd).Problem(err)
			return reported(err)
		}
		return err
	}
}

// output returns a presenter writing to the command's output stream.
func output(cmd *cobra.Command) *presenter.Presenter {
	return presenter.New(cmd.OutOrStdout())
}

// handleError prints the notice for a service error.
// Input mistakes fail the command; other known problems have been
// reported and the command ends normally.
func handleError(cmd *cobra.Command, err error) error {
	if !output(cmd).Problem(err) {
		return err
	}
	if errors.Is(err, domain.ErrInvalidInput) || errors.Is(err, domain.ErrNotAuthenticated) {
		return reported(err)
	}
	return nil
}
