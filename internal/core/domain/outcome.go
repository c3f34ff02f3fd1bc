package domain

import "fmt"

// OutcomeKind classifies the result of one HTTP call.
type OutcomeKind int

// Outcome kinds. Every call yields exactly one.
const (
	OutcomeSuccess OutcomeKind = iota
	OutcomeEmpty
	OutcomeUnauthorized
	OutcomeFailed
	OutcomeConnectionError
)

// String returns the kind name.
func (k OutcomeKind) String() string {
	switch k {
	case OutcomeSuccess:
		return "success"
	case OutcomeEmpty:
		return "empty"
	case OutcomeUnauthorized:
		return "unauthorized"
	case OutcomeFailed:
		return "failed"
	case OutcomeConnectionError:
		return "connection_error"
	default:
		return fmt.Sprintf("outcome(%d)", int(k))
	}
}

// Outcome is the classified result of one HTTP call.
// It lives only for the command invocation that produced it.
type Outcome struct {
	Kind OutcomeKind

	// Response is set whenever the server answered.
	Response *Response

	// StatusCode mirrors Response.StatusCode; zero for connection errors.
	StatusCode int

	// Unauthorized marks a Failed(401) produced under the fallthrough policy,
	// so the credential hint is still shown.
	Unauthorized bool

	// Cause is the transport error behind a ConnectionError.
	Cause error

	// RejectedMethod is set when the request was refused before sending
	// because its method is not GET or POST.
	RejectedMethod Method
}

// NewSuccess builds a Success outcome for a 200 response.
func NewSuccess(resp *Response) Outcome {
	return Outcome{Kind: OutcomeSuccess, Response: resp, StatusCode: resp.StatusCode}
}

// NewEmpty builds an Empty outcome for a 204 response.
func NewEmpty(resp *Response) Outcome {
	return Outcome{Kind: OutcomeEmpty, Response: resp, StatusCode: resp.StatusCode}
}

// NewUnauthorized builds an Unauthorized outcome for a 401 response.
func NewUnauthorized(resp *Response) Outcome {
	return Outcome{Kind: OutcomeUnauthorized, Response: resp, StatusCode: resp.StatusCode}
}

// NewFailed builds a Failed outcome carrying the response status.
func NewFailed(resp *Response) Outcome {
	return Outcome{Kind: OutcomeFailed, Response: resp, StatusCode: resp.StatusCode}
}

// NewConnectionError builds a ConnectionError outcome.
func NewConnectionError(cause error) Outcome {
	return Outcome{Kind: OutcomeConnectionError, Cause: cause}
}

// NewMethodNotAllowed builds the ConnectionError for a request whose method
// the dispatcher cannot send.
func NewMethodNotAllowed(method Method) Outcome {
	return Outcome{
		Kind:           OutcomeConnectionError,
		Cause:          fmt.Errorf("%w: %s", ErrMethodNotAllowed, method),
		RejectedMethod: method,
	}
}

// OK reports whether the outcome carries a payload to present.
func (o Outcome) OK() bool {
	return o.Kind == OutcomeSuccess
}

// Err maps the outcome onto the domain error taxonomy.
// Success and Empty map to nil.
func (o Outcome) Err() error {
	switch o.Kind {
	case OutcomeSuccess, OutcomeEmpty:
		return nil
	case OutcomeUnauthorized:
		return ErrUnauthorized
	case OutcomeFailed:
		return &RequestFailedError{StatusCode: o.StatusCode}
	case OutcomeConnectionError:
		if o.Cause != nil {
			return fmt.Errorf("%w: %v", ErrConnection, o.Cause)
		}
		return ErrConnection
	default:
		return fmt.Errorf("unknown outcome %s", o.Kind)
	}
}
