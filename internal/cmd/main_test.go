package cmd

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/mitchellh/cli"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhigh1594/agileplace-go"
	"github.com/jhigh1594/agileplace-go/internal/version"
)

type recorded struct {
	method string
	path   string
	query  string
	body   map[string]any
}

func newAPI(t *testing.T, status int, resp string) (*httptest.Server, *[]recorded) {
	t.Helper()
	var reqs []recorded
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rec := recorded{method: r.Method, path: r.URL.Path, query: r.URL.RawQuery}
		if b, _ := io.ReadAll(r.Body); len(b) > 0 {
			assert.NoError(t, json.Unmarshal(b, &rec.body))
		}
		reqs = append(reqs, rec)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(resp))
	}))
	t.Cleanup(srv.Close)
	return srv, &reqs
}

func runCLI(t *testing.T, srv *httptest.Server, args ...string) (int, *cli.MockUi) {
	t.Helper()
	ui := cli.NewMockUi()
	var opts []agileplace.Option
	if srv != nil {
		opts = append(opts, agileplace.WithBaseURL(srv.URL+"/io"))
	}
	code := run(append([]string{"agileplace"}, args...), ui, opts...)
	return code, ui
}

func clearEnv(t *testing.T) {
	for _, k := range []string{agileplace.EnvDomain, agileplace.EnvAPIToken, "LOG_LEVEL"} {
		t.Setenv(k, "")
		os.Unsetenv(k)
	}
}

func TestVersion(t *testing.T) {
	code, ui := runCLI(t, nil, "version")
	assert.Equal(t, 0, code)
	assert.Contains(t, ui.OutputWriter.String(), version.Version)

	code, ui = runCLI(t, nil, "-v")
	assert.Equal(t, 0, code)
	assert.Contains(t, ui.OutputWriter.String(), version.Version)
}

func TestBoards(t *testing.T) {
	clearEnv(t)
	srv, reqs := newAPI(t, http.StatusOK, `{"boards":[{"id":"101","title":"Platform"}]}`)

	code, ui := runCLI(t, srv, "boards", "-domain=acme.leankit.com", "-token=tok", "-search=plat")
	require.Equal(t, 0, code, ui.ErrorWriter.String())
	assert.Contains(t, ui.OutputWriter.String(), `"Platform"`)

	require.Len(t, *reqs, 1)
	assert.Equal(t, "/io/board", (*reqs)[0].path)
	assert.Contains(t, (*reqs)[0].query, "search=plat")
}

func TestCredentialsFromEnv(t *testing.T) {
	clearEnv(t)
	t.Setenv(agileplace.EnvDomain, "acme.leankit.com")
	t.Setenv(agileplace.EnvAPIToken, "tok")
	srv, _ := newAPI(t, http.StatusOK, `{"id":"1","username":"dev"}`)

	code, ui := runCLI(t, srv, "whoami")
	require.Equal(t, 0, code, ui.ErrorWriter.String())
	assert.Contains(t, ui.OutputWriter.String(), `"dev"`)
}

func TestMissingCredentials(t *testing.T) {
	clearEnv(t)
	code, ui := runCLI(t, nil, "boards")
	assert.Equal(t, 1, code)
	assert.Contains(t, ui.ErrorWriter.String(), agileplace.EnvDomain)
}

func TestCardUpdate(t *testing.T) {
	clearEnv(t)
	srv, reqs := newAPI(t, http.StatusOK, `{"id":"5"}`)

	code, ui := runCLI(t, srv, "card", "update",
		"-domain=acme.leankit.com", "-token=tok",
		"-set", "title=Renamed", "-set", "planned_finish=2024-06-01", "-set", "size=3",
		"5")
	require.Equal(t, 0, code, ui.ErrorWriter.String())

	require.Len(t, *reqs, 1)
	r := (*reqs)[0]
	assert.Equal(t, http.MethodPatch, r.method)
	assert.Equal(t, "/io/card/5", r.path)
	assert.Equal(t, map[string]any{
		"title":         "Renamed",
		"plannedFinish": "2024-06-01",
		"size":          float64(3),
	}, r.body)
}

func TestCardCreateValidatesBeforeSending(t *testing.T) {
	clearEnv(t)
	srv, reqs := newAPI(t, http.StatusOK, `{}`)

	code, _ := runCLI(t, srv, "card", "create", "-domain=acme.leankit.com", "-token=tok", "-title=x")
	assert.Equal(t, 1, code)
	assert.Empty(t, *reqs)
}

func TestCardsInvalidSince(t *testing.T) {
	clearEnv(t)
	code, ui := runCLI(t, nil, "cards", "-domain=acme.leankit.com", "-token=tok", "-since=not a date")
	assert.Equal(t, 1, code)
	assert.Contains(t, ui.ErrorWriter.String(), "-since")
}

func TestRequestReportsAPIError(t *testing.T) {
	clearEnv(t)
	srv, _ := newAPI(t, http.StatusNotFound, `{"message":"Card not found"}`)

	code, ui := runCLI(t, srv, "request", "-domain=acme.leankit.com", "-token=tok", "get", "/card/9")
	assert.Equal(t, 1, code)
	assert.Contains(t, ui.ErrorWriter.String(), "API error (404): Card not found")
}

func TestRequestSendsData(t *testing.T) {
	clearEnv(t)
	srv, reqs := newAPI(t, http.StatusOK, `{"ok":true}`)

	code, ui := runCLI(t, srv, "request", "-domain=acme.leankit.com", "-token=tok",
		"-data", `{"title":"Renamed"}`, "PATCH", "/card/9")
	require.Equal(t, 0, code, ui.ErrorWriter.String())
	assert.Equal(t, map[string]any{"title": "Renamed"}, (*reqs)[0].body)
}
