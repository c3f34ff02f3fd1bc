package cli

import (
	"bufio"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/feezz8/toll-aggregation/internal/core/domain"
)

func TestLoginCmd_StoresToken(t *testing.T) {
	env := setupTestServices(t, reply(http.StatusOK, `{"token":"abc123"}`))
	require.NoError(t, env.store.Set(domain.KeyAPIKey, "stale"))

	out, err := execute(t, "login", "--username", "admin", "--password", "freepasses4all")

	require.NoError(t, err)
	assert.Equal(t, "Login successful.\n", out)

	val, ok := env.store.Get(domain.KeyAPIKey)
	assert.True(t, ok)
	assert.Equal(t, "abc123", val)

	requests := env.Requests()
	require.Len(t, requests, 1)
	assert.Equal(t, http.MethodPost, requests[0].Method)
	assert.Equal(t, "/api/login", requests[0].Path)
	assert.Equal(t, "admin", requests[0].Form.Get("username"))
	assert.Equal(t, "freepasses4all", requests[0].Form.Get("password"))
	assert.Empty(t, requests[0].Credential)
}

func TestLoginCmd_Prompts(t *testing.T) {
	env := setupTestServices(t, reply(http.StatusOK, `{"token":"abc123"}`))

	out, err := executeWithInput(t, "admin\nfree passes\n", "login")

	require.NoError(t, err)
	assert.Contains(t, out, "Username: ")
	assert.Contains(t, out, "Password: ")
	assert.Contains(t, out, "Login successful.")
	assert.Equal(t, "admin", env.Requests()[0].Form.Get("username"))
	assert.Equal(t, "free passes", env.Requests()[0].Form.Get("password"))
}

func TestLoginCmd_Rejected(t *testing.T) {
	env := setupTestServices(t, reply(http.StatusUnauthorized, `{"error":"invalid credentials"}`))
	require.NoError(t, env.store.Set(domain.KeyAPIKey, "stale"))

	out, err := execute(t, "login", "--username", "admin", "--password", "wrong")

	require.NoError(t, err)
	assert.Contains(t, out, "Unauthorized. API key might be missing or invalid.")
	_, ok := env.store.Get(domain.KeyAPIKey)
	assert.False(t, ok)
}

func TestLoginCmd_NoToken(t *testing.T) {
	env := setupTestServices(t, reply(http.StatusOK, `{"message":"welcome"}`))

	out, err := execute(t, "login", "--username", "admin", "--password", "pw")

	require.NoError(t, err)
	assert.Equal(t, "Error parsing JSON.\n", out)
	_, ok := env.store.Get(domain.KeyAPIKey)
	assert.False(t, ok)
}

func TestLoginCmd_EmptyUsername(t *testing.T) {
	env := setupTestServices(t, reply(http.StatusOK, `{"token":"abc"}`))

	_, err := executeWithInput(t, "\n", "login", "--password", "pw")

	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Empty(t, env.Requests())
}

func TestLogoutCmd(t *testing.T) {
	env := setupTestServices(t, reply(http.StatusOK, `{}`))
	require.NoError(t, env.store.Set(domain.KeyAPIKey, "abc123"))

	out, err := execute(t, "logout")

	require.NoError(t, err)
	assert.Equal(t, "Logged out.\n", out)
	_, ok := env.store.Get(domain.KeyAPIKey)
	assert.False(t, ok)

	requests := env.Requests()
	require.Len(t, requests, 1)
	assert.Equal(t, "/api/logout", requests[0].Path)
	assert.Equal(t, "abc123", requests[0].Credential)
}

func TestLogoutCmd_ServerErrorStillClears(t *testing.T) {
	env := setupTestServices(t, reply(http.StatusInternalServerError, ""))
	require.NoError(t, env.store.Set(domain.KeyAPIKey, "abc123"))

	out, err := execute(t, "logout")

	require.NoError(t, err)
	assert.Contains(t, out, "Request failed with status code 500.")
	assert.Contains(t, out, "Stored API token removed.")
	_, ok := env.store.Get(domain.KeyAPIKey)
	assert.False(t, ok)
}

func TestLogoutCmd_RequiresLogin(t *testing.T) {
	env := setupTestServices(t, reply(http.StatusOK, `{}`))

	out, err := execute(t, "logout")

	assert.ErrorIs(t, err, domain.ErrNotAuthenticated)
	assert.Equal(t, "Authentication required. Please login first.\n", out)
	assert.Empty(t, env.Requests())
}

func TestLoginLogoutScenario(t *testing.T) {
	env := setupTestServices(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/login":
			_, _ = w.Write([]byte(`{"token":"T1"}`))
		case "/api/tollStationPasses/AM08/20220101/20220131":
			if r.Header.Get("secret-key") != "T1" {
				w.WriteHeader(http.StatusUnauthorized)
				return
			}
			_, _ = w.Write([]byte(`{"nPasses":2}`))
		default:
			w.WriteHeader(http.StatusOK)
		}
	})

	_, err := execute(t, "login", "--username", "admin", "--password", "pw")
	require.NoError(t, err)

	out, err := execute(t, withPeriod("tollstationpasses", "--station", "AM08")...)
	require.NoError(t, err)
	assert.Contains(t, out, `"nPasses": 2`)

	_, err = execute(t, "logout")
	require.NoError(t, err)

	_, err = execute(t, withPeriod("tollstationpasses", "--station", "AM08")...)
	assert.ErrorIs(t, err, domain.ErrNotAuthenticated)

	paths := make([]string, 0)
	for _, r := range env.Requests() {
		paths = append(paths, r.Path)
	}
	assert.Equal(t, []string{"/api/login", "/api/tollStationPasses/AM08/20220101/20220131", "/api/logout"}, paths)
}

func TestReadLine(t *testing.T) {
	reader := bufio.NewReader(strings.NewReader("  admin  \nnext\n"))

	assert.Equal(t, "admin", readLine(reader))
	assert.Equal(t, "next", readLine(reader))
	assert.Equal(t, "", readLine(reader))
}

func TestReadPassword_NotTerminal(t *testing.T) {
	in := strings.NewReader(" spaced secret \r\n")
	reader := bufio.NewReader(in)

	assert.Equal(t, " spaced secret ", readPassword(in, reader))
}
