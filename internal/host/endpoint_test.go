package host

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recordingModeler counts calls and remembers the last edge, so tests can
// verify exactly one geometry call happens with the value unchanged.
type recordingModeler struct {
	calls    int
	lastEdge float64
	err      error
}

func (m *recordingModeler) CreateCuboid(_ context.Context, edgeMM float64) (string, error) {
	m.calls++
	m.lastEdge = edgeMM
	if m.err != nil {
		return "", m.err
	}
	return fmt.Sprintf("%gmm edge cube created", edgeMM), nil
}

func get(t *testing.T, h http.Handler, path string) (*httptest.ResponseRecorder, map[string]string) {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)

	var body map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body), "response should be JSON: %s", w.Body.String())
	return w, body
}

func TestServer_Cmd(t *testing.T) {
	t.Run("creates one cuboid with the exact edge", func(t *testing.T) {
		m := &recordingModeler{}
		w, body := get(t, NewServer(m).Handler(), "/cmd?edge=50")

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "success", body["status"])
		assert.Equal(t, "50mm edge cube created", body["cube"])
		assert.Equal(t, 1, m.calls)
		assert.Equal(t, 50.0, m.lastEdge)
	})

	t.Run("no deduplication across calls", func(t *testing.T) {
		m := &recordingModeler{}
		h := NewServer(m).Handler()

		get(t, h, "/cmd?edge=50")
		get(t, h, "/cmd?edge=50")

		assert.Equal(t, 2, m.calls)
	})

	t.Run("rejects bad edges with 400 and no modeler call", func(t *testing.T) {
		tests := []struct {
			name string
			path string
		}{
			{"missing", "/cmd"},
			{"empty", "/cmd?edge="},
			{"non-numeric", "/cmd?edge=abc"},
			{"negative", "/cmd?edge=-5"},
			{"zero", "/cmd?edge=0"},
		}
		for _, tc := range tests {
			t.Run(tc.name, func(t *testing.T) {
				m := &recordingModeler{}
				w, body := get(t, NewServer(m).Handler(), tc.path)

				assert.Equal(t, http.StatusBadRequest, w.Code)
				assert.Equal(t, "error", body["status"])
				assert.NotEmpty(t, body["message"])
				assert.Zero(t, m.calls)
			})
		}
	})

	t.Run("modeler failure is a 500 with the host's message", func(t *testing.T) {
		m := &recordingModeler{err: ErrNoDocument}
		w, body := get(t, NewServer(m).Handler(), "/cmd?edge=50")

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.Equal(t, "error", body["status"])
		assert.Contains(t, body["message"], "no active document")
	})

	t.Run("unknown path is a JSON 404", func(t *testing.T) {
		m := &recordingModeler{}
		w, body := get(t, NewServer(m).Handler(), "/nope")

		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Equal(t, "error", body["status"])
		assert.Zero(t, m.calls)
	})
}

func TestSimModeler(t *testing.T) {
	msg, err := SimModeler{}.CreateCuboid(context.Background(), 20)
	require.NoError(t, err)
	assert.Equal(t, "20mm edge cube created", msg)
}
