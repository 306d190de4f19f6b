package server

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/haguru/torii/pkg/zerolog"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()
	logger := zerolog.NewZerologLogger("server-test")
	logger.SetLevel("error")
	return NewServer("localhost", "0", logger).(*Server)
}

func TestServer_AddRoute(t *testing.T) {
	srv := newTestServer(t)

	err := srv.AddRoute(http.MethodGet, "/ping", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("pong"))
	})
	require.NoError(t, err)

	rr := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/ping", nil))
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "pong", rr.Body.String())
}

func TestServer_AddRouteInvalidPattern(t *testing.T) {
	srv := newTestServer(t)

	err := srv.AddRoute(http.MethodGet, "ping", func(w http.ResponseWriter, r *http.Request) {})
	assert.Error(t, err, "patterns must begin with a slash")
}

func TestServer_MethodPrecedenceOverCatchAll(t *testing.T) {
	srv := newTestServer(t)

	require.NoError(t, srv.AddRoute(http.MethodGet, "/en", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("landing"))
	}))
	require.NoError(t, srv.AddRoute(http.MethodGet, "/*", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("fallback"))
	}))

	rr := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/en", nil))
	assert.Equal(t, "landing", rr.Body.String())

	rr = httptest.NewRecorder()
	srv.Handler().ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/anything/else", nil))
	assert.Equal(t, "fallback", rr.Body.String())
}

func TestServer_SetNotFoundHandler(t *testing.T) {
	srv := newTestServer(t)

	require.NoError(t, srv.AddRoute(http.MethodGet, "/only-get", func(w http.ResponseWriter, r *http.Request) {}))
	srv.SetNotFoundHandler(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte("themed"))
	})

	// unmatched method funnels to the same handler as unmatched path
	rr := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/only-get", nil))
	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.Equal(t, "themed", rr.Body.String())
}
