package request

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"credo-consent/pkg/requestcontext"
)

func TestRequestID(t *testing.T) {
	t.Run("propagates inbound id", func(t *testing.T) {
		var seen string
		h := RequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			seen = requestcontext.RequestID(r.Context())
		}))
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set(HeaderRequestID, "req-1")
		rr := httptest.NewRecorder()
		h.ServeHTTP(rr, req)

		assert.Equal(t, "req-1", seen)
		assert.Equal(t, "req-1", rr.Header().Get(HeaderRequestID))
	})

	t.Run("mints id when absent", func(t *testing.T) {
		rr := httptest.NewRecorder()
		RequestID(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {})).
			ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))
		assert.NotEmpty(t, rr.Header().Get(HeaderRequestID))
	})
}

func TestRecovery(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	h := Recovery(logger)(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("engine exploded")
	}))

	rr := httptest.NewRecorder()
	require.NotPanics(t, func() {
		h.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/interaction/consent", nil))
	})
	assert.Equal(t, http.StatusInternalServerError, rr.Code)
	assert.Contains(t, rr.Body.String(), `"server_error"`)
}
