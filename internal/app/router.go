package app

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/25x8/dashboard-widgets/internal/config"
	"github.com/25x8/dashboard-widgets/internal/handler"
	"github.com/25x8/dashboard-widgets/internal/logger"
	"github.com/25x8/dashboard-widgets/internal/middleware"
)

func InitializeRouter(h *handler.Handler, cfg *config.ServerConfig, reg *prometheus.Registry) *mux.Router {
	r := mux.NewRouter()
	r.Use(middleware.NewMetrics(reg).Handler)

	// Функция для обертки обработчиков
	wrapHandler := func(next http.Handler) http.Handler {
		return middleware.GzipMiddleware(logger.RequestLogger(next))
	}

	// запись: доверенная подсеть и подпись тела
	trusted := middleware.TrustedSubnetMiddleware(cfg.TrustedSubnet)
	signed := middleware.HashMiddleware(cfg.Key)
	wrapWrite := func(next http.Handler) http.Handler {
		return wrapHandler(trusted(signed(next)))
	}

	// Страницы
	r.Handle("/", wrapHandler(http.HandlerFunc(h.HandleDashboard))).Methods(http.MethodGet)
	r.Handle("/construction", wrapHandler(http.HandlerFunc(h.HandleConstruction))).Methods(http.MethodGet)

	// JSON API
	r.Handle("/api/metrics", wrapHandler(http.HandlerFunc(h.HandleListMetrics))).Methods(http.MethodGet)
	r.Handle("/api/metrics", wrapWrite(http.HandlerFunc(h.HandleSaveMetric))).Methods(http.MethodPost)
	r.Handle("/api/metrics/batch", wrapWrite(http.HandlerFunc(h.HandleMetricsBatch))).Methods(http.MethodPost)
	r.Handle("/api/metrics/{label}", wrapHandler(http.HandlerFunc(h.HandleGetMetric))).Methods(http.MethodGet)
	r.Handle("/api/metrics/{label}", wrapWrite(http.HandlerFunc(h.HandleDeleteMetric))).Methods(http.MethodDelete)
	r.Handle("/api/ratings", wrapHandler(http.HandlerFunc(h.HandleListRatings))).Methods(http.MethodGet)
	r.Handle("/api/ratings", wrapWrite(http.HandlerFunc(h.HandleSaveRating))).Methods(http.MethodPost)

	// SVG-виджеты
	r.Handle("/widgets/ring/{label}.svg", wrapHandler(http.HandlerFunc(h.HandleMetricRing))).Methods(http.MethodGet)
	r.Handle("/widgets/{style}.svg", wrapHandler(http.HandlerFunc(h.HandleWidget))).Methods(http.MethodGet)

	r.Handle("/ping", wrapHandler(http.HandlerFunc(h.HandlePing))).Methods(http.MethodGet)
	r.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{})).Methods(http.MethodGet)

	return r
}
