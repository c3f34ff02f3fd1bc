package domain

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"
)

// Response is the raw result of an HTTP exchange.
type Response struct {
	StatusCode  int
	Body        []byte
	ContentType string
}

// AsStructured decodes the body as a single JSON document.
// Numbers are kept as json.Number so they print exactly as received.
func (r *Response) AsStructured() (any, error) {
	dec := json.NewDecoder(bytes.NewReader(r.Body))
	dec.UseNumber()

	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedPayload, err)
	}
	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: trailing data after JSON document", ErrMalformedPayload)
	}
	return v, nil
}

// Decode unmarshals the JSON body into v.
func (r *Response) Decode(v any) error {
	if err := json.Unmarshal(r.Body, v); err != nil {
		return fmt.Errorf("%w: %v", ErrMalformedPayload, err)
	}
	return nil
}

// AsText returns the body as text. Byte sequences that are not valid UTF-8
// are replaced with U+FFFD so the rest of the payload is still shown.
func (r *Response) AsText() string {
	return strings.ToValidUTF8(string(r.Body), string(utf8.RuneError))
}
