package driving

import (
	"context"

	"github.com/feezz8/toll-aggregation/internal/core/domain"
)

// Dispatcher sends one request and classifies the response.
type Dispatcher interface {
	// Send never returns an error: every failure is folded into the Outcome.
	Send(ctx context.Context, req domain.Request) domain.Outcome
}
