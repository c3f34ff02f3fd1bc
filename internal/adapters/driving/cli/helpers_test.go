package cli

import (
	"bytes"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/feezz8/toll-aggregation/internal/adapters/driven/httpapi"
	"github.com/feezz8/toll-aggregation/internal/adapters/driven/storage/memory"
	"github.com/feezz8/toll-aggregation/internal/core/domain"
	"github.com/feezz8/toll-aggregation/internal/core/services"
)

// recordedRequest is what the fake API server saw.
type recordedRequest struct {
	Method     string
	Path       string
	Query      url.Values
	Credential string
	Form       url.Values
	Filename   string
	FileType   string
	File       string
}

// testEnv wires real services to an in-memory store and a fake API server.
type testEnv struct {
	store *memory.ConfigStore

	mu       sync.Mutex
	requests []recordedRequest
}

func (e *testEnv) record(r *http.Request) {
	rec := recordedRequest{
		Method:     r.Method,
		Path:       r.URL.Path,
		Query:      r.URL.Query(),
		Credential: r.Header.Get(domain.DefaultAuthHeader),
	}
	if strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/") {
		if err := r.ParseMultipartForm(1 << 20); err == nil {
			rec.Form = r.MultipartForm.Value
			if f, header, err := r.FormFile("file"); err == nil {
				data, _ := io.ReadAll(f)
				_ = f.Close()
				rec.Filename = header.Filename
				rec.FileType = header.Header.Get("Content-Type")
				rec.File = string(data)
			}
		}
	} else if r.Method == http.MethodPost {
		_ = r.ParseForm()
		rec.Form = r.PostForm
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	e.requests = append(e.requests, rec)
}

// Requests returns a copy of the recorded requests.
func (e *testEnv) Requests() []recordedRequest {
	e.mu.Lock()
	defer e.mu.Unlock()
	return append([]recordedRequest(nil), e.requests...)
}

// reply answers every request with status and body.
func reply(status int, body string) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(status)
		_, _ = io.WriteString(w, body)
	}
}

func setupTestServices(t *testing.T, handler http.HandlerFunc) *testEnv {
	t.Helper()

	env := &testEnv{store: memory.NewConfigStore()}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		env.record(r)
		handler(w, r)
	}))
	t.Cleanup(server.Close)

	wireServices(t, env.store, server.URL+"/api")
	return env
}

// wireServices injects real services talking to baseURL.
func wireServices(t *testing.T, store *memory.ConfigStore, baseURL string) {
	t.Helper()

	settings := domain.DefaultClientSettings()
	settings.BaseURL = baseURL

	dispatcher := services.NewDispatcher(httpapi.NewClient(settings), store, settings.UnauthorizedPolicy)
	SetServices(&Services{
		Session:  services.NewSessionService(store, dispatcher),
		Tolls:    services.NewTollService(dispatcher),
		Settings: services.NewSettingsService(store),
		Client:   settings,
	})
	t.Cleanup(func() {
		SetServices(&Services{Client: domain.DefaultClientSettings()})
	})
}

// execute runs the root command with args and returns everything printed.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	return executeWithInput(t, "", args...)
}

func executeWithInput(t *testing.T, input string, args ...string) (string, error) {
	t.Helper()
	resetFlags(rootCmd)

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetIn(strings.NewReader(input))
	rootCmd.SetArgs(args)
	defer func() {
		rootCmd.SetArgs(nil)
		rootCmd.SetIn(nil)
	}()

	err := rootCmd.Execute()
	return buf.String(), err
}

// resetFlags restores every flag to its default, since cobra keeps flag
// state between executions of the same command tree.
func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)
	for _, sub := range cmd.Commands() {
		resetFlags(sub)
	}
}
