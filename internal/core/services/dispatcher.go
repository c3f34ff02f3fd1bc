package services

import (
	"context"
	"net/http"

	"github.com/feezz8/toll-aggregation/internal/core/domain"
	"github.com/feezz8/toll-aggregation/internal/core/ports/driven"
	"github.com/feezz8/toll-aggregation/internal/core/ports/driving"
	"github.com/feezz8/toll-aggregation/internal/logger"
)

// Ensure Dispatcher implements the interface.
var _ driving.Dispatcher = (*Dispatcher)(nil)

// Dispatcher resolves the credential for a request, hands it to the
// transport and classifies whatever comes back into exactly one Outcome.
type Dispatcher struct {
	transport   driven.Transport
	configStore driven.ConfigStore
	policy      domain.UnauthorizedPolicy
}

// NewDispatcher creates a new dispatcher.
// An empty policy means domain.UnauthorizedTerminal.
func NewDispatcher(
	transport driven.Transport,
	configStore driven.ConfigStore,
	policy domain.UnauthorizedPolicy,
) *Dispatcher {
	if policy == "" {
		policy = domain.UnauthorizedTerminal
	}
	return &Dispatcher{
		transport:   transport,
		configStore: configStore,
		policy:      policy,
	}
}

// Send performs the request. It never panics and never returns an error;
// transport failures become ConnectionError outcomes.
func (d *Dispatcher) Send(ctx context.Context, req domain.Request) domain.Outcome {
	if !req.Method.IsSupported() {
		return domain.NewMethodNotAllowed(req.Method)
	}

	credential := d.credential(req)

	resp, err := d.transport.Do(ctx, req, credential)
	if err != nil {
		logger.Debug("%s %s: no response: %v", req.Method, req.Path, err)
		return domain.NewConnectionError(err)
	}

	return d.classify(resp)
}

// credential picks the explicit credential, then the stored one.
func (d *Dispatcher) credential(req domain.Request) string {
	if req.Anonymous {
		return ""
	}
	if req.Credential != "" {
		return req.Credential
	}
	if d.configStore == nil {
		return ""
	}
	if stored, ok := d.configStore.Get(domain.KeyAPIKey); ok {
		return stored
	}
	return ""
}

func (d *Dispatcher) classify(resp *domain.Response) domain.Outcome {
	switch resp.StatusCode {
	case http.StatusOK:
		return domain.NewSuccess(resp)
	case http.StatusNoContent:
		return domain.NewEmpty(resp)
	case http.StatusUnauthorized:
		if d.policy == domain.UnauthorizedFallthrough {
			outcome := domain.NewFailed(resp)
			outcome.Unauthorized = true
			return outcome
		}
		return domain.NewUnauthorized(resp)
	default:
		return domain.NewFailed(resp)
	}
}
