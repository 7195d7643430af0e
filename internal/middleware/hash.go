package middleware

import (
	"bytes"
	"io"
	"net/http"

	"go.uber.org/zap"

	"github.com/25x8/dashboard-widgets/internal/crypto"
	"github.com/25x8/dashboard-widgets/internal/logger"
)

// HashHeader заголовок с HMAC-SHA256 подписью тела
const HashHeader = "HashSHA256"

// HashMiddleware проверяет подпись входящего тела и подписывает ответ.
// Без ключа пропускает запросы как есть. Должен стоять после GzipMiddleware:
// подпись считается по несжатым данным.
func HashMiddleware(key string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if key == "" {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			hashHeader := r.Header.Get(HashHeader)
			if hashHeader == "" {
				http.Error(w, "Missing HashSHA256 header", http.StatusBadRequest)
				return
			}

			body, err := io.ReadAll(r.Body)
			if err != nil {
				http.Error(w, "Error reading request body", http.StatusInternalServerError)
				return
			}
			r.Body.Close()

			if !crypto.VerifyHash(body, key, hashHeader) {
				logger.Log.Warn("Request signature mismatch", zap.String("uri", r.RequestURI))
				http.Error(w, "Invalid hash", http.StatusBadRequest)
				return
			}

			// тело уже прочитано, отдаем копию дальше
			r.Body = io.NopCloser(bytes.NewReader(body))

			sw := &signingWriter{ResponseWriter: w, status: http.StatusOK}
			next.ServeHTTP(sw, r)

			w.Header().Set(HashHeader, crypto.CalculateHash(sw.body.Bytes(), key))
			w.WriteHeader(sw.status)
			if _, err := w.Write(sw.body.Bytes()); err != nil {
				logger.Log.Error("Failed to write signed response", zap.Error(err))
			}
		})
	}
}

// signingWriter буферизует ответ, чтобы подпись попала в заголовки
type signingWriter struct {
	http.ResponseWriter
	body   bytes.Buffer
	status int
}

func (w *signingWriter) WriteHeader(statusCode int) {
	w.status = statusCode
}

func (w *signingWriter) Write(data []byte) (int, error) {
	return w.body.Write(data)
}
