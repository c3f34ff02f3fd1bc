// Package httpapi provides the HTTP transport for the toll API.
package httpapi

import (
	"bytes"
	"context"
	"crypto/tls"
	"encoding/json"
	"fmt"
	"io"
	"mime"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"net/url"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/feezz8/toll-aggregation/internal/core/domain"
	"github.com/feezz8/toll-aggregation/internal/core/ports/driven"
	"github.com/feezz8/toll-aggregation/internal/logger"
)

// Ensure Client implements the interface.
var _ driven.Transport = (*Client)(nil)

const (
	// RequestIDHeader carries a per-request UUID for server-side correlation.
	RequestIDHeader = "X-Request-ID"

	acceptHeader = "application/json, text/csv;q=0.9, */*;q=0.1"
	userAgent    = "se2460-cli"
)

// Client sends toll API requests over net/http.
type Client struct {
	baseURL    string
	authHeader string
	httpClient *http.Client
}

// NewClient creates a transport from resolved settings.
func NewClient(settings domain.ClientSettings) *Client {
	transport := http.DefaultTransport.(*http.Transport).Clone()
	if settings.InsecureSkipVerify {
		//nolint:gosec // G402: opt-in for self-signed local servers.
		transport.TLSClientConfig = &tls.Config{InsecureSkipVerify: true}
		logger.Warn("TLS certificate verification disabled for %s", settings.BaseURL)
	}

	authHeader := settings.AuthHeader
	if authHeader == "" {
		authHeader = domain.DefaultAuthHeader
	}

	return &Client{
		baseURL:    strings.TrimRight(settings.BaseURL, "/"),
		authHeader: authHeader,
		httpClient: &http.Client{
			Timeout:   settings.Timeout,
			Transport: transport,
		},
	}
}

// Do performs one request. Any HTTP status is returned as a Response;
// an error means the exchange did not complete.
func (c *Client) Do(ctx context.Context, req domain.Request, credential string) (*domain.Response, error) {
	httpReq, err := c.newRequest(ctx, req)
	if err != nil {
		return nil, err
	}

	requestID := uuid.NewString()
	httpReq.Header.Set(RequestIDHeader, requestID)
	httpReq.Header.Set("Accept", acceptHeader)
	httpReq.Header.Set("User-Agent", userAgent)
	if credential != "" {
		httpReq.Header.Set(c.authHeader, credential)
	}

	logger.Request(requestID, httpReq.Method, httpReq.URL.Redacted(), credential != "")
	start := time.Now()

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response body: %w", err)
	}

	logger.Response(requestID, resp.StatusCode, len(body), time.Since(start))

	return &domain.Response{
		StatusCode:  resp.StatusCode,
		Body:        body,
		ContentType: resp.Header.Get("Content-Type"),
	}, nil
}

// newRequest builds the URL and body for req.
// GET carries Query in the URL. POST carries it as form fields, inside the
// multipart body when a file is attached; a JSON body leaves Query on the URL.
func (c *Client) newRequest(ctx context.Context, req domain.Request) (*http.Request, error) {
	u, err := url.Parse(c.baseURL + req.Path)
	if err != nil {
		return nil, fmt.Errorf("build URL for %s: %w", req.Path, err)
	}

	var (
		body        io.Reader
		contentType string
	)

	switch req.Method {
	case domain.MethodGet:
		u.RawQuery = encodeQuery(u.Query(), req.Query)
	case domain.MethodPost:
		switch {
		case req.File != nil:
			buf, ct, err := multipartBody(req.Query, req.File)
			if err != nil {
				return nil, err
			}
			body, contentType = buf, ct
		case req.JSON != nil:
			data, err := json.Marshal(req.JSON)
			if err != nil {
				return nil, fmt.Errorf("encode JSON body: %w", err)
			}
			u.RawQuery = encodeQuery(u.Query(), req.Query)
			body, contentType = bytes.NewReader(data), "application/json"
		case len(req.Query) > 0:
			body = strings.NewReader(encodeQuery(url.Values{}, req.Query))
			contentType = "application/x-www-form-urlencoded"
		}
	default:
		return nil, fmt.Errorf("%w: %s", domain.ErrMethodNotAllowed, req.Method)
	}

	httpReq, err := http.NewRequestWithContext(ctx, string(req.Method), u.String(), body)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	if contentType != "" {
		httpReq.Header.Set("Content-Type", contentType)
	}
	return httpReq, nil
}

func encodeQuery(values url.Values, fields map[string]string) string {
	for k, v := range fields {
		values.Set(k, v)
	}
	return values.Encode()
}

// multipartBody writes the form fields in key order, then the file part.
func multipartBody(fields map[string]string, file *domain.FilePayload) (*bytes.Buffer, string, error) {
	buf := &bytes.Buffer{}
	w := multipart.NewWriter(buf)

	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		if err := w.WriteField(k, fields[k]); err != nil {
			return nil, "", fmt.Errorf("write form field %s: %w", k, err)
		}
	}

	field := file.Field
	if field == "" {
		field = "file"
	}
	contentType := file.ContentType
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", mime.FormatMediaType("form-data", map[string]string{
		"name":     field,
		"filename": file.Filename,
	}))
	header.Set("Content-Type", contentType)

	part, err := w.CreatePart(header)
	if err != nil {
		return nil, "", fmt.Errorf("create file part: %w", err)
	}
	if _, err := io.Copy(part, file.Content); err != nil {
		return nil, "", fmt.Errorf("read %s: %w", file.Filename, err)
	}
	if err := w.Close(); err != nil {
		return nil, "", fmt.Errorf("finish multipart body: %w", err)
	}

	return buf, w.FormDataContentType(), nil
}
