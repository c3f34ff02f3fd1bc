package domain

import "io"

// Method is an HTTP method understood by the toll API.
type Method string

// Supported methods.
const (
	MethodGet  Method = "GET"
	MethodPost Method = "POST"
)

// IsSupported reports whether the dispatcher can send this method.
func (m Method) IsSupported() bool {
	return m == MethodGet || m == MethodPost
}

// FilePayload is a local file attached to a POST as a multipart part.
type FilePayload struct {
	// Field is the multipart form field name.
	Field string
	// Filename is the name reported to the server.
	Filename string
	// ContentType is sent as the part's Content-Type.
	ContentType string
	// Content is read once while the request body is built.
	Content io.Reader
}

// Request describes one HTTP call against the toll API.
// It is built per command invocation and never persisted.
type Request struct {
	// Path is appended to the configured base URL, e.g. "/admin/healthcheck".
	Path string

	// Method is GET or POST.
	Method Method

	// Query holds the URL query string for GET, and form fields for POST.
	Query map[string]string

	// JSON is an optional body encoded as application/json.
	JSON any

	// File is an optional multipart file payload.
	File *FilePayload

	// Credential overrides the stored credential when non-empty.
	Credential string

	// Anonymous sends the request without any credential, even a stored one.
	Anonymous bool
}
