package domain

import (
	"errors"
	"fmt"
)

// Domain errors represent failures of the request/session lifecycle.
// The CLI converts each of them into a user-facing notice.
var (
	// ErrNotAuthenticated indicates no credential is stored and none was supplied.
	// Gated commands abort before touching the network.
	ErrNotAuthenticated = errors.New("authentication required")

	// ErrConnection indicates the request never produced an HTTP response
	// (DNS failure, refused connection, TLS handshake, timeout).
	ErrConnection = errors.New("server connection error")

	// ErrUnauthorized indicates the server answered 401.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrMalformedPayload indicates an otherwise successful response body could not be decoded.
	ErrMalformedPayload = errors.New("malformed payload")

	// ErrFileUnavailable indicates a local upload file could not be opened.
	ErrFileUnavailable = errors.New("could not open file")

	// ErrUnsupportedFormat indicates an output format other than json or csv.
	ErrUnsupportedFormat = errors.New("unsupported format")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrMethodNotAllowed indicates a request method other than GET or POST.
	ErrMethodNotAllowed = errors.New("method not implemented")
)

// RequestFailedError reports an HTTP status that is neither 200, 204 nor
// (under the terminal 401 policy) 401.
type RequestFailedError struct {
	StatusCode int
}

func (e *RequestFailedError) Error() string {
	return fmt.Sprintf("request failed with status code %d", e.StatusCode)
}

// IsRequestFailed checks if the error carries a non-success HTTP status and returns it.
func IsRequestFailed(err error) (int, bool) {
	var failed *RequestFailedError
	if errors.As(err, &failed) {
		return failed.StatusCode, true
	}
	return 0, false
}
