package bridge

import (
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeEndpoint stands in for the in-process command endpoint.
func fakeEndpoint(t *testing.T, status int, body string, hits *atomic.Int64, lastEdge *atomic.Value) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		if lastEdge != nil {
			lastEdge.Store(r.URL.Query().Get("edge"))
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func doGet(t *testing.T, h http.Handler, path string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func TestServer_CreateCube(t *testing.T) {
	t.Run("relays success verbatim", func(t *testing.T) {
		var hits atomic.Int64
		var edge atomic.Value
		downstream := fakeEndpoint(t, http.StatusOK, `{"status":"success","cube":"50mm edge cube created"}`, &hits, &edge)

		w := doGet(t, NewServer(downstream.URL).Handler(), "/create_cube?edge=50")

		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"status":"success","cube":"50mm edge cube created"}`, w.Body.String())
		assert.Equal(t, int64(1), hits.Load())
		assert.Equal(t, "50", edge.Load(), "edge must be forwarded unchanged")
	})

	t.Run("relays downstream errors verbatim", func(t *testing.T) {
		var hits atomic.Int64
		downstream := fakeEndpoint(t, http.StatusInternalServerError, `{"status":"error","message":"no active document"}`, &hits, nil)

		w := doGet(t, NewServer(downstream.URL).Handler(), "/create_cube?edge=50")

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.Contains(t, w.Body.String(), "no active document")
	})

	t.Run("rejects bad edges before any forward", func(t *testing.T) {
		var hits atomic.Int64
		downstream := fakeEndpoint(t, http.StatusOK, `{}`, &hits, nil)
		h := NewServer(downstream.URL).Handler()

		for _, path := range []string{"/create_cube", "/create_cube?edge=abc", "/create_cube?edge=-5", "/create_cube?edge=0"} {
			w := doGet(t, h, path)
			assert.Equal(t, http.StatusBadRequest, w.Code, "%s", path)
		}
		assert.Zero(t, hits.Load(), "no downstream traffic for invalid input")
	})

	t.Run("unreachable endpoint is a 502, not a success", func(t *testing.T) {
		// Closed server: the port refuses connections.
		downstream := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
		downstream.Close()

		w := doGet(t, NewServer(downstream.URL).Handler(), "/create_cube?edge=50")

		require.Equal(t, http.StatusBadGateway, w.Code)
		assert.Contains(t, w.Body.String(), "fusion endpoint unreachable")
	})

	t.Run("one request in maps to one request out", func(t *testing.T) {
		var hits atomic.Int64
		downstream := fakeEndpoint(t, http.StatusOK, `{}`, &hits, nil)
		h := NewServer(downstream.URL).Handler()

		doGet(t, h, "/create_cube?edge=20")
		doGet(t, h, "/create_cube?edge=20")

		assert.Equal(t, int64(2), hits.Load())
	})
}
