package domain

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// Config keys persisted in the local config store.
const (
	KeyAPIKey             = "api_key"
	KeyBaseURL            = "base_url"
	KeyAuthHeader         = "auth_header"
	KeyInsecure           = "insecure_skip_verify"
	KeyTimeout            = "timeout"
	KeyUnauthorizedPolicy = "unauthorized_policy"
)

// Defaults used when neither the config file, the environment nor a flag sets a value.
const (
	DefaultBaseURL    = "https://localhost:9115/api"
	DefaultAuthHeader = "secret-key"
	DefaultTimeout    = 30 * time.Second
)

// SettingKeys returns the keys that shape ClientSettings, in display order.
func SettingKeys() []string {
	return []string{KeyBaseURL, KeyAuthHeader, KeyInsecure, KeyTimeout, KeyUnauthorizedPolicy}
}

// UnauthorizedPolicy decides how a 401 response is classified.
type UnauthorizedPolicy string

const (
	// UnauthorizedTerminal classifies 401 as Unauthorized and nothing else.
	UnauthorizedTerminal UnauthorizedPolicy = "terminal"

	// UnauthorizedFallthrough reports the credential hint and then
	// classifies 401 as Failed(401), like any other non-success status.
	UnauthorizedFallthrough UnauthorizedPolicy = "fallthrough"
)

// ParseUnauthorizedPolicy parses a policy name.
func ParseUnauthorizedPolicy(s string) (UnauthorizedPolicy, error) {
	switch p := UnauthorizedPolicy(strings.ToLower(strings.TrimSpace(s))); p {
	case UnauthorizedTerminal, UnauthorizedFallthrough:
		return p, nil
	default:
		return "", fmt.Errorf("%w: unauthorized policy %q (want terminal or fallthrough)", ErrInvalidInput, s)
	}
}

// ClientSettings configures the request dispatcher.
// They are resolved once at start-up and passed explicitly.
type ClientSettings struct {
	// BaseURL is the API root every path is appended to.
	BaseURL string

	// AuthHeader is the header that carries the credential.
	AuthHeader string

	// InsecureSkipVerify disables TLS certificate validation (local/dev servers only).
	InsecureSkipVerify bool

	// Timeout bounds a whole request, body included.
	Timeout time.Duration

	// UnauthorizedPolicy selects how 401 is classified.
	UnauthorizedPolicy UnauthorizedPolicy
}

// DefaultClientSettings returns settings with secure defaults.
func DefaultClientSettings() ClientSettings {
	return ClientSettings{
		BaseURL:            DefaultBaseURL,
		AuthHeader:         DefaultAuthHeader,
		InsecureSkipVerify: false,
		Timeout:            DefaultTimeout,
		UnauthorizedPolicy: UnauthorizedTerminal,
	}
}

// Apply parses value for key and stores it on s.
// Unknown keys and unparsable values return ErrInvalidInput.
func (s *ClientSettings) Apply(key, value string) error {
	value = strings.TrimSpace(value)

	switch key {
	case KeyBaseURL:
		u, err := url.Parse(value)
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			return fmt.Errorf("%w: %s must be an http(s) URL, got %q", ErrInvalidInput, key, value)
		}
		s.BaseURL = strings.TrimRight(value, "/")
	case KeyAuthHeader:
		if value == "" || strings.ContainsAny(value, " \t:\r\n") {
			return fmt.Errorf("%w: %s must be a header name, got %q", ErrInvalidInput, key, value)
		}
		s.AuthHeader = value
	case KeyInsecure:
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("%w: %s must be true or false, got %q", ErrInvalidInput, key, value)
		}
		s.InsecureSkipVerify = b
	case KeyTimeout:
		d, err := time.ParseDuration(value)
		if err != nil || d <= 0 {
			return fmt.Errorf("%w: %s must be a positive duration such as 30s, got %q", ErrInvalidInput, key, value)
		}
		s.Timeout = d
	case KeyUnauthorizedPolicy:
		p, err := ParseUnauthorizedPolicy(value)
		if err != nil {
			return err
		}
		s.UnauthorizedPolicy = p
	default:
		return fmt.Errorf("%w: unknown setting %q", ErrInvalidInput, key)
	}
	return nil
}

// Value returns the string form of the setting stored under key.
func (s ClientSettings) Value(key string) (string, bool) {
	switch key {
	case KeyBaseURL:
		return s.BaseURL, true
	case KeyAuthHeader:
		return s.AuthHeader, true
	case KeyInsecure:
		return strconv.FormatBool(s.InsecureSkipVerify), true
	case KeyTimeout:
		return s.Timeout.String(), true
	case KeyUnauthorizedPolicy:
		return string(s.UnauthorizedPolicy), true
	default:
		return "", false
	}
}
