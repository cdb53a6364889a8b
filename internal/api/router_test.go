package api_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"regexp"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"sigs.k8s.io/yaml"

	specpkg "github.com/daap14/crewdesk/api"
	"github.com/daap14/crewdesk/internal/api"
	"github.com/daap14/crewdesk/internal/storage"
)

func newTestRouter(t *testing.T) *chi.Mux {
	t.Helper()

	s, err := storage.Open(context.Background(), "sqlite://:memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	router, err := api.NewRouter(api.RouterDeps{
		Projects:           s.Projects(),
		Teammates:          s.Teammates(),
		DBPinger:           s,
		Driver:             string(s.Driver()),
		Version:            "test",
		OpenAPISpec:        specpkg.OpenAPISpec,
		CORSAllowedOrigins: []string{"http://allowed.example"},
	})
	require.NoError(t, err)
	return router
}

// startTestServer serves a fresh router backed by an in-memory database.
func startTestServer(t *testing.T) string {
	t.Helper()
	srv := httptest.NewServer(newTestRouter(t))
	t.Cleanup(srv.Close)
	return srv.URL
}

type apiResponse struct {
	Status int
	Header http.Header
	Env    map[string]interface{}
}

func do(t *testing.T, method, url string, body any) apiResponse {
	t.Helper()

	var reader io.Reader
	if body != nil {
		switch b := body.(type) {
		case string:
			reader = strings.NewReader(b)
		default:
			raw, err := json.Marshal(b)
			require.NoError(t, err)
			reader = bytes.NewReader(raw)
		}
	}

	req, err := http.NewRequest(method, url, reader)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	out := apiResponse{Status: resp.StatusCode, Header: resp.Header}
	if len(raw) > 0 && strings.HasPrefix(resp.Header.Get("Content-Type"), "application/json") {
		require.NoError(t, json.Unmarshal(raw, &out.Env), "body: %s", raw)
	}
	return out
}

func (r apiResponse) data(t *testing.T) map[string]interface{} {
	t.Helper()
	d, ok := r.Env["data"].(map[string]interface{})
	require.True(t, ok, "expected object data, got %v", r.Env["data"])
	return d
}

func TestProjectLifecycle(t *testing.T) {
	base := startTestServer(t)

	created := do(t, http.MethodPost, base+"/Projects/", map[string]string{"title": "Alpha", "description": "First"})
	require.Equal(t, http.StatusOK, created.Status)
	p := created.data(t)
	require.NotNil(t, p["id"])
	assert.Equal(t, "Alpha", p["title"])
	assert.Equal(t, "First", p["description"])
	projectURL := fmt.Sprintf("%s/Projects/%d", base, int64(p["id"].(float64)))

	got := do(t, http.MethodGet, projectURL, nil)
	require.Equal(t, http.StatusOK, got.Status)
	assert.Equal(t, p, got.data(t))

	updated := do(t, http.MethodPut, projectURL, map[string]string{"title": "Beta", "description": "Second"})
	require.Equal(t, http.StatusOK, updated.Status)
	assert.Equal(t, "Project updated", updated.Env["data"])

	got = do(t, http.MethodGet, projectURL, nil)
	require.Equal(t, http.StatusOK, got.Status)
	assert.Equal(t, "Beta", got.data(t)["title"])
	assert.Equal(t, "Second", got.data(t)["description"])

	deleted := do(t, http.MethodDelete, projectURL, nil)
	require.Equal(t, http.StatusOK, deleted.Status)
	assert.Equal(t, "Project deleted", deleted.Env["data"])

	got = do(t, http.MethodGet, projectURL, nil)
	assert.Equal(t, http.StatusNotFound, got.Status)
}

func TestTeammateLifecycle(t *testing.T) {
	base := startTestServer(t)

	created := do(t, http.MethodPost, base+"/Teammates/", map[string]string{"name": "Jo", "function": "Eng"})
	require.Equal(t, http.StatusOK, created.Status)
	assert.Equal(t, "Teammate added", created.Env["data"])
	location := created.Header.Get("Location")
	require.True(t, strings.HasPrefix(location, "/Teammates/"), "location %q", location)

	listed := do(t, http.MethodGet, base+"/Teammates/", nil)
	require.Equal(t, http.StatusOK, listed.Status)
	items := listed.Env["data"].([]interface{})
	require.Len(t, items, 1)
	assert.Equal(t, location, fmt.Sprintf("/Teammates/%d", int64(items[0].(map[string]interface{})["id"].(float64))))

	got := do(t, http.MethodGet, base+location, nil)
	require.Equal(t, http.StatusOK, got.Status)
	assert.Equal(t, "Jo", got.data(t)["name"])
	assert.Equal(t, "Eng", got.data(t)["function"])

	deleted := do(t, http.MethodDelete, base+location, nil)
	require.Equal(t, http.StatusOK, deleted.Status)
	assert.Equal(t, "Teammate deleted", deleted.Env["data"])

	got = do(t, http.MethodGet, base+location, nil)
	assert.Equal(t, http.StatusNotFound, got.Status)
}

func TestListTracksCreateAndDelete(t *testing.T) {
	base := startTestServer(t)

	count := func() int {
		resp := do(t, http.MethodGet, base+"/Projects/", nil)
		require.Equal(t, http.StatusOK, resp.Status)
		meta := resp.Env["meta"].(map[string]interface{})
		items := resp.Env["data"].([]interface{})
		require.Equal(t, float64(len(items)), meta["total"])
		return len(items)
	}

	assert.Equal(t, 0, count())
	var ids []float64
	for i := 0; i < 3; i++ {
		resp := do(t, http.MethodPost, base+"/Projects/", map[string]string{
			"title":       fmt.Sprintf("title-%d", i),
			"description": fmt.Sprintf("desc-%d", i),
		})
		require.Equal(t, http.StatusOK, resp.Status)
		ids = append(ids, resp.data(t)["id"].(float64))
		assert.Equal(t, i+1, count())
	}
	for i, id := range ids {
		resp := do(t, http.MethodDelete, fmt.Sprintf("%s/Projects/%d", base, int64(id)), nil)
		require.Equal(t, http.StatusOK, resp.Status)
		assert.Equal(t, len(ids)-i-1, count())
	}
}

func TestMissingIDsReturnNotFound(t *testing.T) {
	base := startTestServer(t)

	tests := []struct {
		method string
		path   string
		body   any
	}{
		{http.MethodGet, "/Projects/999", nil},
		{http.MethodPut, "/Projects/999", map[string]string{"title": "x", "description": "y"}},
		{http.MethodDelete, "/Projects/999", nil},
		{http.MethodGet, "/Teammates/999", nil},
		{http.MethodDelete, "/Teammates/999", nil},
	}

	for _, tt := range tests {
		t.Run(tt.method+" "+tt.path, func(t *testing.T) {
			resp := do(t, tt.method, base+tt.path, tt.body)
			assert.Equal(t, http.StatusNotFound, resp.Status)
			errObj := resp.Env["error"].(map[string]interface{})
			assert.Equal(t, "NOT_FOUND", errObj["code"])
		})
	}
}

func TestNonIntegerIDIsRouteNotFound(t *testing.T) {
	base := startTestServer(t)

	for _, path := range []string{"/Projects/abc", "/Projects/-1", "/Projects/1.5", "/Teammates/x"} {
		resp := do(t, http.MethodGet, base+path, nil)
		assert.Equal(t, http.StatusNotFound, resp.Status, path)
		assert.Equal(t, "NOT_FOUND", resp.Env["error"].(map[string]interface{})["code"], path)
	}
}

func TestTeammateUpdateNotAllowed(t *testing.T) {
	base := startTestServer(t)

	resp := do(t, http.MethodPut, base+"/Teammates/1", map[string]string{"name": "x", "function": "y"})

	assert.Equal(t, http.StatusMethodNotAllowed, resp.Status)
	assert.Equal(t, "METHOD_NOT_ALLOWED", resp.Env["error"].(map[string]interface{})["code"])
}

func TestCollectionWithoutTrailingSlash(t *testing.T) {
	base := startTestServer(t)

	resp := do(t, http.MethodGet, base+"/Projects", nil)

	assert.Equal(t, http.StatusOK, resp.Status)
}

func TestErrorMapping(t *testing.T) {
	base := startTestServer(t)

	missing := do(t, http.MethodPost, base+"/Projects/", map[string]string{"title": "only"})
	assert.Equal(t, http.StatusBadRequest, missing.Status)

	malformed := do(t, http.MethodPost, base+"/Teammates/", "{not json")
	assert.Equal(t, http.StatusInternalServerError, malformed.Status)

	first := do(t, http.MethodPost, base+"/Teammates/", map[string]string{"name": "Jo", "function": "Eng"})
	require.Equal(t, http.StatusOK, first.Status)
	dup := do(t, http.MethodPost, base+"/Teammates/", map[string]string{"name": "Al", "function": "Eng"})
	assert.Equal(t, http.StatusConflict, dup.Status)
}

func TestRequestIDPropagates(t *testing.T) {
	base := startTestServer(t)

	req, err := http.NewRequest(http.MethodGet, base+"/Projects/", nil)
	require.NoError(t, err)
	req.Header.Set("X-Request-ID", "abc-123")
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	var env map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&env))
	assert.Equal(t, "abc-123", resp.Header.Get("X-Request-ID"))
	assert.Equal(t, "abc-123", env["meta"].(map[string]interface{})["requestId"])
}

func TestHealthEndpoint(t *testing.T) {
	base := startTestServer(t)

	resp := do(t, http.MethodGet, base+"/health", nil)

	assert.Equal(t, http.StatusOK, resp.Status)
	data := resp.data(t)
	assert.Equal(t, "healthy", data["status"])
	assert.Equal(t, "test", data["version"])
	assert.Equal(t, "sqlite", data["database"].(map[string]interface{})["driver"])
}

func TestMetricsEndpoint(t *testing.T) {
	base := startTestServer(t)
	do(t, http.MethodGet, base+"/Projects/", nil)

	resp, err := http.Get(base + "/metrics")
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), "crewdesk_http_request_duration_seconds")
	assert.Contains(t, string(body), `route="/Projects`)
}

func TestCORSPreflight(t *testing.T) {
	base := startTestServer(t)

	req, err := http.NewRequest(http.MethodOptions, base+"/Projects/", nil)
	require.NoError(t, err)
	req.Header.Set("Origin", "http://allowed.example")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, "http://allowed.example", resp.Header.Get("Access-Control-Allow-Origin"))
}

func TestDocsEndpoints(t *testing.T) {
	base := startTestServer(t)

	resp := do(t, http.MethodGet, base+"/openapi.json", nil)
	require.Equal(t, http.StatusOK, resp.Status)
	assert.Equal(t, "3.0.3", resp.Env["openapi"])

	ui, err := http.Get(base + "/docs/index.html")
	require.NoError(t, err)
	defer ui.Body.Close()
	assert.Equal(t, http.StatusOK, ui.StatusCode)
}

// openAPIDoc is the minimal structure needed to extract paths from the OpenAPI document.
type openAPIDoc struct {
	Paths map[string]map[string]interface{} `json:"paths"`
}

var routeRegexp = regexp.MustCompile(`\{(\w+):[^}]+\}`)

func TestEveryResourceRouteIsDocumented(t *testing.T) {
	raw, err := yaml.YAMLToJSON(specpkg.OpenAPISpec)
	require.NoError(t, err)
	var doc openAPIDoc
	require.NoError(t, json.Unmarshal(raw, &doc))

	router := newTestRouter(t)
	var checked int
	err = chi.Walk(router, func(method, route string, _ http.Handler, _ ...func(http.Handler) http.Handler) error {
		if !strings.HasPrefix(route, api.ProjectsPath) && !strings.HasPrefix(route, api.TeammatesPath) && route != "/health" {
			return nil
		}
		path := routeRegexp.ReplaceAllString(route, "{$1}")
		ops, ok := doc.Paths[path]
		if assert.True(t, ok, "route %s missing from OpenAPI paths", path) {
			assert.Contains(t, ops, strings.ToLower(method), "%s %s undocumented", method, path)
		}
		checked++
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, 10, checked)
}
