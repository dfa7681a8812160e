package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClientMetadata(t *testing.T) {
	t.Run("summarizes browser and OS", func(t *testing.T) {
		var captured string
		handler := ClientMetadata(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			captured = GetDevice(r.Context())
			w.WriteHeader(http.StatusOK)
		}))

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("User-Agent", "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0 Safari/537.36")
		handler.ServeHTTP(httptest.NewRecorder(), req)

		assert.Contains(t, captured, "Chrome")
	})

	t.Run("empty user agent leaves context untouched", func(t *testing.T) {
		var captured string
		handler := ClientMetadata(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			captured = GetDevice(r.Context())
			w.WriteHeader(http.StatusOK)
		}))

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("User-Agent", "")
		handler.ServeHTTP(httptest.NewRecorder(), req)

		assert.Empty(t, captured)
	})
}
