package app

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/go-resty/resty/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/haguru/torii/internal/server"
)

func writeTestConfig(t *testing.T, dir string) string {
	t.Helper()
	cfg := fmt.Sprintf(`service_name: "torii-test"
loglevel: "error"
host: ""
port: "8099"
www_dir: %q

redirects:
  /chat: "https://chat.example.com/"
  /rt: "https://rt.example.com/"

session:
  cookie_name: "session_id"
  hash_scheme: "sha256"

rate_limit:
  login_rps: 0
  login_burst: 0

storage:
  type: "file"
  file_config:
    path: %q
`, filepath.Join(dir, "no-such-www"), filepath.Join(dir, "data.txt"))

	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(cfg), 0o600))
	return path
}

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	application, err := NewApp(writeTestConfig(t, t.TempDir()))
	require.NoError(t, err)

	srv, ok := application.Server.(*server.Server)
	require.True(t, ok)

	testServer := httptest.NewServer(srv.Handler())
	t.Cleanup(testServer.Close)
	return testServer
}

func TestNewApp_MissingConfig(t *testing.T) {
	_, err := NewApp(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestApp_RedirectSurface(t *testing.T) {
	testServer := newTestServer(t)
	client := resty.New().
		SetBaseURL(testServer.URL).
		SetRedirectPolicy(resty.NoRedirectPolicy())

	tests := []struct {
		name         string
		path         string
		wantStatus   int
		wantLocation string
	}{
		{name: "root to english landing", path: "/", wantStatus: http.StatusFound, wantLocation: "/en"},
		{name: "protected without session", path: "/protected.html", wantStatus: http.StatusFound, wantLocation: "/login.html"},
		{name: "logout", path: "/logout", wantStatus: http.StatusFound, wantLocation: "/login.html"},
		{name: "external chat", path: "/chat", wantStatus: http.StatusTemporaryRedirect, wantLocation: "https://chat.example.com/"},
		{name: "external rt", path: "/rt", wantStatus: http.StatusTemporaryRedirect, wantLocation: "https://rt.example.com/"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, _ := client.R().Get(tt.path)

			assert.Equal(t, tt.wantStatus, resp.StatusCode())
			assert.Equal(t, tt.wantLocation, resp.Header().Get("Location"))
		})
	}
}

func TestApp_StaticPages(t *testing.T) {
	testServer := newTestServer(t)
	client := resty.New().SetBaseURL(testServer.URL)

	tests := []struct {
		path        string
		contentType string
	}{
		{path: "/en", contentType: "text/html"},
		{path: "/ar", contentType: "text/html"},
		{path: "/login.html", contentType: "text/html"},
		{path: "/register.html", contentType: "text/html"},
		{path: "/style.css", contentType: "text/css"},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			resp, err := client.R().Get(tt.path)
			require.NoError(t, err)

			assert.Equal(t, http.StatusOK, resp.StatusCode())
			assert.Contains(t, resp.Header().Get("Content-Type"), tt.contentType)
			assert.NotEmpty(t, resp.Body())
		})
	}
}

func TestApp_RegisterLoginFlow(t *testing.T) {
	testServer := newTestServer(t)
	client := resty.New().SetBaseURL(testServer.URL)

	// register
	resp, err := client.R().
		SetFormData(map[string]string{"username": "alice", "password": "secret1"}).
		Post("/register")
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode())
	assert.Contains(t, string(resp.Body()), "Registered successfully")

	// duplicate registration conflicts but still renders 200
	resp, err = client.R().
		SetFormData(map[string]string{"username": "alice", "password": "other"}).
		Post("/register")
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode())
	assert.Contains(t, string(resp.Body()), "already exists")

	// bad password is rejected without a cookie
	resp, err = client.R().
		SetFormData(map[string]string{"username": "alice", "password": "wrong"}).
		Post("/login")
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode())
	assert.Empty(t, resp.Cookies())

	// good credentials set the session cookie and return protected content
	resp, err = client.R().
		SetFormData(map[string]string{"username": "alice", "password": "secret1"}).
		Post("/login")
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode())

	var sessionCookie *http.Cookie
	for _, cookie := range resp.Cookies() {
		if cookie.Name == "session_id" {
			sessionCookie = cookie
		}
	}
	require.NotNil(t, sessionCookie, "login must set the session cookie")
	assert.True(t, sessionCookie.HttpOnly)

	// the cookie unlocks the protected page
	resp, err = client.R().SetCookie(sessionCookie).Get("/protected.html")
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode())
}

func TestApp_ThemedNotFound(t *testing.T) {
	testServer := newTestServer(t)
	client := resty.New().SetBaseURL(testServer.URL)

	resp, err := client.R().Get("/no/such/file.txt")
	require.NoError(t, err)

	assert.Equal(t, http.StatusNotFound, resp.StatusCode())
	body := string(resp.Body())
	assert.Contains(t, body, "The file is not found")
	assert.Contains(t, body, "Client IP:")
	assert.Contains(t, body, "Client Port:")
}

func TestApp_Healthz(t *testing.T) {
	testServer := newTestServer(t)
	client := resty.New().SetBaseURL(testServer.URL)

	resp, err := client.R().Get("/healthz")
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode())

	resp, err = client.R().Get("/metrics")
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode())
	assert.Contains(t, string(resp.Body()), "login_requests_total")
}
