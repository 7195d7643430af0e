package middleware

import (
	"net"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/25x8/dashboard-widgets/internal/logger"
)

// TrustedSubnetMiddleware проверяет IP-адрес клиента против доверенной подсети.
// Ставится на маршруты, меняющие данные дашборда.
func TrustedSubnetMiddleware(trustedSubnet string) func(http.Handler) http.Handler {
	var (
		trustedNet *net.IPNet
		parseErr   error
	)
	if trustedSubnet != "" {
		_, trustedNet, parseErr = net.ParseCIDR(trustedSubnet)
		if parseErr != nil {
			logger.Log.Error("Invalid trusted subnet", zap.String("subnet", trustedSubnet), zap.Error(parseErr))
		}
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if trustedSubnet == "" {
				next.ServeHTTP(w, r)
				return
			}

			if parseErr != nil {
				http.Error(w, "Invalid trusted subnet configuration", http.StatusInternalServerError)
				return
			}

			// Получаем IP из заголовка X-Real-IP
			realIP := r.Header.Get("X-Real-IP")
			if realIP == "" {
				realIP = getClientIP(r)
			}

			clientIP := net.ParseIP(realIP)
			if clientIP == nil {
				http.Error(w, "Invalid client IP address", http.StatusBadRequest)
				return
			}

			if !trustedNet.Contains(clientIP) {
				http.Error(w, "Access denied from untrusted subnet", http.StatusForbidden)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// getClientIP извлекает IP-адрес клиента из различных заголовков
func getClientIP(r *http.Request) string {
	if ip := r.Header.Get("X-Forwarded-For"); ip != "" {
		// X-Forwarded-For может содержать список IP, берем первый
		if parts := strings.Split(ip, ","); len(parts) > 0 {
			return strings.TrimSpace(parts[0])
		}
	}

	if ip := r.Header.Get("X-Real-IP"); ip != "" {
		return ip
	}

	if ip, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
		return ip
	}

	return r.RemoteAddr
}
