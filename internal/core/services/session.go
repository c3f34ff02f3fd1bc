package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/feezz8/toll-aggregation/internal/core/domain"
	"github.com/feezz8/toll-aggregation/internal/core/ports/driven"
	"github.com/feezz8/toll-aggregation/internal/core/ports/driving"
	"github.com/feezz8/toll-aggregation/internal/logger"
)

// Ensure SessionService implements the interface.
var _ driving.SessionService = (*SessionService)(nil)

// Session endpoints.
const (
	loginPath  = "/login"
	logoutPath = "/logout"
)

// SessionService owns the stored credential.
type SessionService struct {
	configStore driven.ConfigStore
	dispatcher  driving.Dispatcher
}

// NewSessionService creates a new session service.
func NewSessionService(configStore driven.ConfigStore, dispatcher driving.Dispatcher) *SessionService {
	return &SessionService{
		configStore: configStore,
		dispatcher:  dispatcher,
	}
}

// loginResponse is the body returned by a successful login.
type loginResponse struct {
	Token string `json:"token"`
}

// Login exchanges username and password for a token and stores it.
// Any previous credential is removed first, so a failed login always
// leaves the client logged out.
func (s *SessionService) Login(ctx context.Context, username, password string) (domain.Outcome, error) {
	if strings.TrimSpace(username) == "" || password == "" {
		return domain.Outcome{}, fmt.Errorf("%w: username and password are required", domain.ErrInvalidInput)
	}

	if err := s.configStore.Unset(domain.KeyAPIKey); err != nil {
		return domain.Outcome{}, fmt.Errorf("clear credential: %w", err)
	}

	outcome := s.dispatcher.Send(ctx, domain.Request{
		Path:   loginPath,
		Method: domain.MethodPost,
		Query: map[string]string{
			"username": username,
			"password": password,
		},
		Anonymous: true,
	})
	if !outcome.OK() {
		logger.Debug("login for %q: %s", username, outcome.Kind)
		return outcome, nil
	}

	var body loginResponse
	if err := outcome.Response.Decode(&body); err != nil {
		return outcome, err
	}
	if body.Token == "" {
		return outcome, fmt.Errorf("%w: login response has no token", domain.ErrMalformedPayload)
	}

	if err := s.configStore.Set(domain.KeyAPIKey, body.Token); err != nil {
		return outcome, fmt.Errorf("store credential: %w", err)
	}

	logger.Info("stored credential %s in %s", logger.Mask(body.Token), s.configStore.Path())
	return outcome, nil
}

// Logout tells the server to end the session and clears the stored
// credential whatever the server answered.
func (s *SessionService) Logout(ctx context.Context, credential string) (domain.Outcome, error) {
	outcome := s.dispatcher.Send(ctx, domain.Request{
		Path:       logoutPath,
		Method:     domain.MethodPost,
		Credential: credential,
	})

	if err := s.configStore.Unset(domain.KeyAPIKey); err != nil {
		return outcome, fmt.Errorf("clear credential: %w", err)
	}
	return outcome, nil
}

// Credential returns the stored credential. An empty value counts as absent.
func (s *SessionService) Credential() (string, bool) {
	credential, ok := s.configStore.Get(domain.KeyAPIKey)
	if !ok || credential == "" {
		return "", false
	}
	return credential, true
}

// Gate wraps fn with the credential precondition.
func (s *SessionService) Gate(fn driving.AuthenticatedFunc) driving.GatedFunc {
	return func(ctx context.Context, explicit string) error {
		if explicit != "" {
			return fn(ctx, explicit)
		}
		credential, ok := s.Credential()
		if !ok {
			return domain.ErrNotAuthenticated
		}
		return fn(ctx, credential)
	}
}
