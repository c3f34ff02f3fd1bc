// Package presenter renders request outcomes for the terminal.
package presenter

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/feezz8/toll-aggregation/internal/core/domain"
)

// User-facing notices.
const (
	DefaultEmptyLabel = "No content found!"

	msgNotAuthenticated  = "Authentication required. Please login first."
	msgUnauthorized      = "Unauthorized. API key might be missing or invalid."
	msgUnauthorizedHint  = "Make sure the API key matches the secret key configured on the server."
	msgParseJSON         = "Error parsing JSON."
	msgUnknownFormat     = "Unknown format."
	msgFileUnavailable   = "Could not open file."
	msgRequestFailedFmt  = "Request failed with status code %d."
	msgConnectionFmt     = "Server connection error: %v"
	msgMethodNotAllowed  = "Method %s not implemented."
	msgMissingPassesFile = "Please provide a CSV file using --source."
)

// Presenter writes outcomes and notices to one writer.
// It never terminates the process.
type Presenter struct {
	w      io.Writer
	styles *Styles
}

// New creates a presenter for w with the default theme.
func New(w io.Writer) *Presenter {
	return &Presenter{
		w:      w,
		styles: NewStyles(lipgloss.NewRenderer(w), nil),
	}
}

// Present prints an outcome.
// Empty prints emptyLabel. Any other non-success outcome prints its
// notice followed by emptyLabel. Success prints successLabel and the
// payload rendered as format (json or csv, case-insensitive).
func (p *Presenter) Present(o domain.Outcome, format, successLabel, emptyLabel string) {
	if emptyLabel == "" {
		emptyLabel = DefaultEmptyLabel
	}

	switch {
	case o.Kind == domain.OutcomeEmpty:
		p.Warning(emptyLabel)
		return
	case !o.OK():
		p.Report(o)
		p.Warning(emptyLabel)
		return
	}

	switch strings.ToLower(strings.TrimSpace(format)) {
	case domain.FormatJSON:
		data, err := o.Response.AsStructured()
		if err != nil {
			p.Error(msgParseJSON)
			return
		}
		p.label(successLabel)
		enc := json.NewEncoder(p.w)
		enc.SetEscapeHTML(false)
		enc.SetIndent("", "  ")
		_ = enc.Encode(data)
	case domain.FormatCSV:
		text := o.Response.AsText()
		p.label(successLabel)
		fmt.Fprint(p.w, text)
		if text != "" && !strings.HasSuffix(text, "\n") {
			fmt.Fprintln(p.w)
		}
	default:
		p.Error(msgUnknownFormat)
	}
}

// Report prints the notice for a non-success outcome.
// Success and Empty print nothing.
func (p *Presenter) Report(o domain.Outcome) {
	switch o.Kind {
	case domain.OutcomeConnectionError:
		if o.RejectedMethod != "" {
			p.Error(fmt.Sprintf(msgMethodNotAllowed, o.RejectedMethod))
			return
		}
		p.Error(fmt.Sprintf(msgConnectionFmt, o.Cause))
	case domain.OutcomeUnauthorized:
		p.unauthorized()
	case domain.OutcomeFailed:
		if o.Unauthorized {
			p.unauthorized()
		}
		p.Error(fmt.Sprintf(msgRequestFailedFmt, o.StatusCode))
	}
}

// Problem prints the notice for an error raised before or instead of a
// request. It returns false for errors it has no notice for.
func (p *Presenter) Problem(err error) bool {
	switch {
	case err == nil:
		return false
	case errors.Is(err, domain.ErrNotAuthenticated):
		p.Warning(msgNotAuthenticated)
	case errors.Is(err, domain.ErrFileUnavailable):
		p.Error(msgFileUnavailable)
	case errors.Is(err, domain.ErrMalformedPayload):
		p.Error(msgParseJSON)
	case errors.Is(err, domain.ErrUnsupportedFormat):
		p.Error(msgUnknownFormat)
	case errors.Is(err, domain.ErrInvalidInput):
		p.Error(capitalize(err.Error()) + ".")
	default:
		return false
	}
	return true
}

// MissingSource prints the notice for an upload without a source file.
func (p *Presenter) MissingSource() {
	p.Error(msgMissingPassesFile)
}

// Success prints a confirmation.
func (p *Presenter) Success(msg string) {
	p.line(p.styles.Success, msg)
}

// Warning prints a caution, including empty results.
func (p *Presenter) Warning(msg string) {
	p.line(p.styles.Warning, msg)
}

// Error prints a failure notice.
func (p *Presenter) Error(msg string) {
	p.line(p.styles.Error, msg)
}

// Info prints a hint.
func (p *Presenter) Info(msg string) {
	p.line(p.styles.Info, msg)
}

// KeyValue prints one "key: value" line.
func (p *Presenter) KeyValue(key, value string) {
	fmt.Fprintf(p.w, "%s: %s\n", p.styles.Key.Render(key), value)
}

func (p *Presenter) unauthorized() {
	p.Error(msgUnauthorized)
	p.Info(msgUnauthorizedHint)
}

func (p *Presenter) label(label string) {
	if label != "" {
		p.Success(label)
	}
}

func (p *Presenter) line(style lipgloss.Style, msg string) {
	fmt.Fprintln(p.w, style.Render(msg))
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
