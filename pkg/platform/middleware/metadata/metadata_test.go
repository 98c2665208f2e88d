package metadata

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"credo-consent/pkg/requestcontext"
)

func TestClientMetadata(t *testing.T) {
	const firefox = "Mozilla/5.0 (X11; Linux x86_64; rv:120.0) Gecko/20100101 Firefox/120.0"

	var ip, device string
	h := ClientMetadata(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ip = requestcontext.ClientIP(r.Context())
		device = requestcontext.Device(r.Context())
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Forwarded-For", "203.0.113.7, 10.0.0.1")
	req.Header.Set("User-Agent", firefox)
	h.ServeHTTP(httptest.NewRecorder(), req)

	assert.Equal(t, "203.0.113.7", ip)
	assert.Contains(t, device, "Firefox")
}

func TestClientIPFromRequest(t *testing.T) {
	t.Run("real ip header", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("X-Real-IP", " 198.51.100.2 ")
		assert.Equal(t, "198.51.100.2", ClientIPFromRequest(req))
	})

	t.Run("remote addr strips port", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.RemoteAddr = "192.0.2.1:5555"
		assert.Equal(t, "192.0.2.1", ClientIPFromRequest(req))
	})
}

func TestDeviceLabel_Empty(t *testing.T) {
	assert.Equal(t, "", DeviceLabel(""))
}
