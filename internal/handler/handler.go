package handler

import (
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/25x8/dashboard-widgets/internal/config"
	"github.com/25x8/dashboard-widgets/internal/dashboard"
	"github.com/25x8/dashboard-widgets/internal/logger"
	"github.com/25x8/dashboard-widgets/internal/models"
	"github.com/25x8/dashboard-widgets/internal/render"
	"github.com/25x8/dashboard-widgets/internal/storage"
)

const (
	contentTypeJSON = "application/json"
	contentTypeHTML = "text/html; charset=utf-8"
	contentTypeSVG  = "image/svg+xml"
)

type Handler struct {
	Storage      storage.Storage
	DB           *sql.DB
	Dashboard    *dashboard.Service
	Renderer     *render.Renderer
	Title        string
	Construction config.Construction
}

// HandlePing проверяет соединение с базой данных
func (h *Handler) HandlePing(w http.ResponseWriter, r *http.Request) {
	if h.DB == nil {
		http.Error(w, "Database connection is not initialized", http.StatusInternalServerError)
		return
	}

	if err := h.DB.PingContext(r.Context()); err != nil {
		logger.Log.Error("Database ping failed", zap.Error(err))
		http.Error(w, "Failed to connect to the database", http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusOK)
	w.Write([]byte("OK"))
}

func (h *Handler) CloseDB() {
	if h.DB != nil {
		h.DB.Close()
	}
}

// statusFor переводит ошибки домена в HTTP-коды
func statusFor(err error) int {
	switch {
	case errors.Is(err, models.ErrMetricNotFound):
		return http.StatusNotFound
	case errors.Is(err, models.ErrPercentageOutOfRange),
		errors.Is(err, models.ErrInvalidStars),
		errors.Is(err, models.ErrInvalidColor),
		errors.Is(err, models.ErrInvalidTrend),
		errors.Is(err, models.ErrEmptyLabel):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		logger.Log.Error("Request failed", zap.String("uri", r.RequestURI), zap.Error(err))
		http.Error(w, "Internal server error", status)
		return
	}
	http.Error(w, err.Error(), status)
}

func writeJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", contentTypeJSON)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Log.Error("Failed to encode response", zap.Error(err))
	}
}
