package driving

import (
	"context"

	"github.com/feezz8/toll-aggregation/internal/core/domain"
)

// AuthenticatedFunc is an operation that needs a session credential.
type AuthenticatedFunc func(ctx context.Context, credential string) error

// GatedFunc is an AuthenticatedFunc wrapped by the session gate.
// A non-empty explicit credential takes precedence over the stored one.
type GatedFunc func(ctx context.Context, explicit string) error

// SessionService manages the login/logout lifecycle of the credential.
type SessionService interface {
	// Login clears any stored credential, posts the form credentials and,
	// on success, stores the returned token.
	// The error is non-nil only for invalid input, a success response
	// without a token, or a config store failure.
	Login(ctx context.Context, username, password string) (domain.Outcome, error)

	// Logout posts to the logout endpoint and then clears the stored
	// credential, whatever the outcome of the call.
	Logout(ctx context.Context, credential string) (domain.Outcome, error)

	// Credential returns the stored credential.
	Credential() (string, bool)

	// Gate wraps fn so it only runs with a credential.
	// Without one it returns domain.ErrNotAuthenticated and never calls fn.
	Gate(fn AuthenticatedFunc) GatedFunc
}
