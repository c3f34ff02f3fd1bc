package driven

import (
	"context"

	"github.com/feezz8/toll-aggregation/internal/core/domain"
)

// Transport performs a single HTTP exchange against the toll API.
type Transport interface {
	// Do sends req, attaching credential when it is non-empty.
	// A non-nil error means no HTTP response was obtained at all
	// (DNS, refused connection, TLS, timeout, cancelled context);
	// any HTTP status, including 4xx and 5xx, is returned as a Response.
	Do(ctx context.Context, req domain.Request, credential string) (*domain.Response, error)
}
