package middleware

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/25x8/dashboard-widgets/internal/crypto"
)

func TestHashMiddleware(t *testing.T) {
	const (
		key  = "secret"
		body = `{"stars":5,"percentage":45}`
	)

	tests := []struct {
		name           string
		key            string
		hash           string
		expectedStatus int
	}{
		{name: "no key - pass through", key: "", hash: "", expectedStatus: http.StatusOK},
		{name: "valid signature", key: key, hash: crypto.CalculateHash([]byte(body), key), expectedStatus: http.StatusOK},
		{name: "missing signature", key: key, hash: "", expectedStatus: http.StatusBadRequest},
		{name: "wrong key", key: key, hash: crypto.CalculateHash([]byte(body), "other"), expectedStatus: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				data, err := io.ReadAll(r.Body)
				assert.NoError(t, err)
				assert.Equal(t, body, string(data))
				w.WriteHeader(http.StatusOK)
				w.Write([]byte("saved"))
			})

			req := httptest.NewRequest(http.MethodPost, "/api/ratings", strings.NewReader(body))
			if tt.hash != "" {
				req.Header.Set(HashHeader, tt.hash)
			}
			w := httptest.NewRecorder()

			HashMiddleware(tt.key)(handler).ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			if tt.key != "" && tt.expectedStatus == http.StatusOK {
				assert.Equal(t, "saved", w.Body.String())
				assert.Equal(t, crypto.CalculateHash([]byte("saved"), tt.key), w.Header().Get(HashHeader))
			}
		})
	}
}

func TestHashMiddleware_KeepsHandlerStatus(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "percentage out of range [0,100]", http.StatusBadRequest)
	})

	req := httptest.NewRequest(http.MethodPost, "/api/metrics", strings.NewReader("{}"))
	req.Header.Set(HashHeader, crypto.CalculateHash([]byte("{}"), "k"))
	w := httptest.NewRecorder()

	HashMiddleware("k")(handler).ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "text/plain; charset=utf-8", w.Header().Get("Content-Type"))
	assert.Contains(t, w.Body.String(), "out of range")
}
