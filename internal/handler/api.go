package handler

import (
	"encoding/json"
	"fmt"
	"io"
	"mime"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/25x8/dashboard-widgets/internal/models"
)

// maxBodySize ограничение тела запроса на запись
const maxBodySize = 1 << 20

// HandleListMetrics - все карточки в порядке добавления
func (h *Handler) HandleListMetrics(w http.ResponseWriter, r *http.Request) {
	metrics, err := h.Storage.ListMetrics(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	if metrics == nil {
		metrics = []models.Metric{}
	}
	writeJSON(w, metrics)
}

func (h *Handler) HandleGetMetric(w http.ResponseWriter, r *http.Request) {
	m, err := h.Storage.GetMetric(r.Context(), mux.Vars(r)["label"])
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, m)
}

// HandleSaveMetric - добавление или замена одной карточки.
// Процент вне [0,100] отклоняется с кодом 400.
func (h *Handler) HandleSaveMetric(w http.ResponseWriter, r *http.Request) {
	if !isJSON(r) {
		http.Error(w, "Unsupported content type", http.StatusUnsupportedMediaType)
		return
	}

	var m models.Metric
	if err := decodeBody(w, r, &m); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if err := m.Validate(); err != nil {
		writeError(w, r, err)
		return
	}

	if err := h.Storage.SaveMetric(r.Context(), m); err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, m)
}

// HandleMetricsBatch сохраняет пачку карточек в одной транзакции
func (h *Handler) HandleMetricsBatch(w http.ResponseWriter, r *http.Request) {
	var metrics []models.Metric
	if err := decodeBody(w, r, &metrics); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if len(metrics) == 0 {
		http.Error(w, "Empty metrics batch", http.StatusBadRequest)
		return
	}

	for i, m := range metrics {
		if err := m.Validate(); err != nil {
			http.Error(w, fmt.Sprintf("metric #%d: %v", i, err), http.StatusBadRequest)
			return
		}
	}

	if err := h.Storage.UpdateMetricsBatch(r.Context(), metrics); err != nil {
		writeError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusOK)
}

func (h *Handler) HandleDeleteMetric(w http.ResponseWriter, r *http.Request) {
	label := mux.Vars(r)["label"]
	if err := h.Storage.DeleteMetric(r.Context(), label); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusOK)
	fmt.Fprintf(w, "Metric %s deleted", label)
}

// HandleListRatings - строки панели удовлетворенности, от 5 звезд к 1
func (h *Handler) HandleListRatings(w http.ResponseWriter, r *http.Request) {
	ratings, err := h.Storage.ListRatings(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	if ratings == nil {
		ratings = []models.Rating{}
	}
	writeJSON(w, ratings)
}

func (h *Handler) HandleSaveRating(w http.ResponseWriter, r *http.Request) {
	if !isJSON(r) {
		http.Error(w, "Unsupported content type", http.StatusUnsupportedMediaType)
		return
	}

	var rt models.Rating
	if err := decodeBody(w, r, &rt); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if err := rt.Validate(); err != nil {
		writeError(w, r, err)
		return
	}

	if err := h.Storage.SaveRating(r.Context(), rt); err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, rt)
}

func isJSON(r *http.Request) bool {
	mediaType, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
	return err == nil && mediaType == contentTypeJSON
}

func decodeBody(w http.ResponseWriter, r *http.Request, dst interface{}) error {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodySize))
	if err != nil {
		return fmt.Errorf("failed to read request body: %w", err)
	}
	if err := json.Unmarshal(body, dst); err != nil {
		return fmt.Errorf("invalid JSON: %w", err)
	}
	return nil
}
