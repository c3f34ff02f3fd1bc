package httpapi

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/feezz8/toll-aggregation/internal/core/domain"
)

func newTestClient(baseURL string) *Client {
	settings := domain.DefaultClientSettings()
	settings.BaseURL = baseURL + "/api"
	settings.Timeout = 5 * time.Second
	return NewClient(settings)
}

func TestClient_Do_GetWithQuery(t *testing.T) {
	var got *http.Request
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `{"status":"OK"}`)
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	resp, err := client.Do(context.Background(), domain.Request{
		Path:   "/admin/healthcheck",
		Method: domain.MethodGet,
		Query:  map[string]string{"format": "json"},
	}, "")

	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)
	assert.Equal(t, `{"status":"OK"}`, string(resp.Body))
	assert.Equal(t, "application/json", resp.ContentType)

	require.NotNil(t, got)
	assert.Equal(t, http.MethodGet, got.Method)
	assert.Equal(t, "/api/admin/healthcheck", got.URL.Path)
	assert.Equal(t, "json", got.URL.Query().Get("format"))
	assert.Empty(t, got.Header.Get("secret-key"))
	assert.Contains(t, got.Header.Get("Accept"), "application/json")
	_, err = uuid.Parse(got.Header.Get(RequestIDHeader))
	assert.NoError(t, err)
}

func TestClient_Do_AttachesCredential(t *testing.T) {
	var header string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header = r.Header.Get("secret-key")
		w.WriteHeader(http.StatusNoContent)
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	resp, err := client.Do(context.Background(), domain.Request{Path: "/x", Method: domain.MethodGet}, "abc123")

	require.NoError(t, err)
	assert.Equal(t, 204, resp.StatusCode)
	assert.Equal(t, "abc123", header)
}

func TestClient_Do_CustomAuthHeader(t *testing.T) {
	var header string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header = r.Header.Get("X-OBSERVATORY-AUTH")
	}))
	defer server.Close()

	settings := domain.DefaultClientSettings()
	settings.BaseURL = server.URL
	settings.AuthHeader = "X-OBSERVATORY-AUTH"
	client := NewClient(settings)

	_, err := client.Do(context.Background(), domain.Request{Path: "/x", Method: domain.MethodGet}, "abc123")

	require.NoError(t, err)
	assert.Equal(t, "abc123", header)
}

func TestClient_Do_PostForm(t *testing.T) {
	var form map[string][]string
	var contentType string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		contentType = r.Header.Get("Content-Type")
		assert.NoError(t, r.ParseForm())
		form = r.PostForm
		_, _ = io.WriteString(w, `{"token":"abc"}`)
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	resp, err := client.Do(context.Background(), domain.Request{
		Path:   "/login",
		Method: domain.MethodPost,
		Query:  map[string]string{"username": "admin", "password": "p&ss w0rd"},
	}, "")

	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)
	assert.Equal(t, "application/x-www-form-urlencoded", contentType)
	assert.Equal(t, []string{"admin"}, form["username"])
	assert.Equal(t, []string{"p&ss w0rd"}, form["password"])
}

func TestClient_Do_PostJSON(t *testing.T) {
	var body map[string]any
	var format string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		format = r.URL.Query().Get("format")
		_ = json.NewDecoder(r.Body).Decode(&body)
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	_, err := client.Do(context.Background(), domain.Request{
		Path:   "/x",
		Method: domain.MethodPost,
		Query:  map[string]string{"format": "csv"},
		JSON:   map[string]string{"stationID": "AM08"},
	}, "")

	require.NoError(t, err)
	assert.Equal(t, "csv", format)
	assert.Equal(t, map[string]any{"stationID": "AM08"}, body)
}

func TestClient_Do_PostMultipart(t *testing.T) {
	var (
		filename    string
		partType    string
		fileContent string
		format      string
	)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !assert.NoError(t, r.ParseMultipartForm(1<<20)) {
			return
		}
		format = r.FormValue("format")
		f, header, err := r.FormFile("file")
		if !assert.NoError(t, err) {
			return
		}
		defer f.Close()
		filename = header.Filename
		partType = header.Header.Get("Content-Type")
		data, _ := io.ReadAll(f)
		fileContent = string(data)
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	resp, err := client.Do(context.Background(), domain.Request{
		Path:   "/admin/addpasses",
		Method: domain.MethodPost,
		Query:  map[string]string{"format": "json"},
		File: &domain.FilePayload{
			Field:       "file",
			Filename:    "passes.csv",
			ContentType: "text/csv",
			Content:     strings.NewReader("a,b\n1,2\n"),
		},
	}, "abc")

	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)
	assert.Equal(t, "passes.csv", filename)
	assert.Equal(t, "text/csv", partType)
	assert.Equal(t, "a,b\n1,2\n", fileContent)
	assert.Equal(t, "json", format)
}

func TestClient_Do_ErrorStatusIsResponse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = io.WriteString(w, "boom")
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	resp, err := client.Do(context.Background(), domain.Request{Path: "/x", Method: domain.MethodGet}, "")

	require.NoError(t, err)
	assert.Equal(t, 500, resp.StatusCode)
	assert.Equal(t, "boom", string(resp.Body))
}

func TestClient_Do_ConnectionRefused(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	url := server.URL
	server.Close()

	client := newTestClient(url)
	resp, err := client.Do(context.Background(), domain.Request{Path: "/x", Method: domain.MethodGet}, "")

	assert.Error(t, err)
	assert.Nil(t, resp)
}

func TestClient_Do_CancelledContext(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	defer server.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	client := newTestClient(server.URL)
	_, err := client.Do(ctx, domain.Request{Path: "/x", Method: domain.MethodGet}, "")

	assert.ErrorIs(t, err, context.Canceled)
}

func TestClient_Do_TLSVerification(t *testing.T) {
	server := httptest.NewTLSServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, "{}")
	}))
	defer server.Close()

	settings := domain.DefaultClientSettings()
	settings.BaseURL = server.URL

	// Self-signed certificate is rejected by default.
	_, err := NewClient(settings).Do(context.Background(), domain.Request{Path: "/x", Method: domain.MethodGet}, "")
	assert.Error(t, err)

	settings.InsecureSkipVerify = true
	resp, err := NewClient(settings).Do(context.Background(), domain.Request{Path: "/x", Method: domain.MethodGet}, "")
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)
}

func TestClient_Do_UnsupportedMethod(t *testing.T) {
	client := newTestClient("http://127.0.0.1:1")

	_, err := client.Do(context.Background(), domain.Request{Path: "/x", Method: "PUT"}, "")

	assert.ErrorIs(t, err, domain.ErrMethodNotAllowed)
}
