package handler

import (
	"bytes"
	"context"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"github.com/25x8/dashboard-widgets/internal/dashboard"
	"github.com/25x8/dashboard-widgets/internal/indicator"
	"github.com/25x8/dashboard-widgets/internal/logger"
	"github.com/25x8/dashboard-widgets/internal/models"
	"github.com/25x8/dashboard-widgets/internal/render"
)

// HandleDashboard выводит главную страницу. Ошибки секций показываются
// внутри секций, страница целиком падает только при ошибке шаблона.
func (h *Handler) HandleDashboard(w http.ResponseWriter, r *http.Request) {
	data := h.Dashboard.Load(r.Context())

	view := render.DashboardView{
		Title: h.Title,
		Cards: dashboard.Section[render.StatCard]{
			Items: h.Renderer.NewStatCards(data.Metrics.Items),
			Err:   data.Metrics.Err,
		},
		Satisfaction: dashboard.Section[render.RatingRow]{
			Items: render.NewRatingRows(data.Ratings.Items),
			Err:   data.Ratings.Err,
		},
		Documents: data.Documents,
		Messages:  data.Messages,
		Actions: []render.Button{
			{Label: "Reports", Href: "/construction", Variant: render.ButtonPrimary},
			{Label: "Settings", Href: "/construction", Variant: render.ButtonSecondary},
		},
	}

	var buf bytes.Buffer
	if err := h.Renderer.Dashboard(&buf, view); err != nil {
		logger.Log.Error("Failed to render dashboard", zap.Error(err))
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}
	writeBody(w, contentTypeHTML, &buf)
}

func (h *Handler) HandleConstruction(w http.ResponseWriter, r *http.Request) {
	view := render.ConstructionView{
		Title:   h.Construction.Title,
		Message: h.Construction.Message,
		Back:    render.Button{Label: "Back to dashboard", Href: h.Construction.BackURL},
	}

	var buf bytes.Buffer
	if err := h.Renderer.Construction(&buf, view); err != nil {
		logger.Log.Error("Failed to render construction page", zap.Error(err))
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}
	writeBody(w, contentTypeHTML, &buf)
}

// HandleMetricRing - кольцо карточки дашборда отдельным SVG. Карточка ищется
// среди тех же метрик, что показывает главная страница, включая загрузку хоста.
func (h *Handler) HandleMetricRing(w http.ResponseWriter, r *http.Request) {
	m, err := h.findMetric(r.Context(), mux.Vars(r)["label"])
	if err != nil {
		writeError(w, r, err)
		return
	}

	h.writeWidget(w, indicator.StyleRing, h.Renderer.NewWidget(m.Label, m.Percentage, m.ColorTag))
}

func (h *Handler) findMetric(ctx context.Context, label string) (models.Metric, error) {
	if h.Dashboard == nil || h.Dashboard.Metrics == nil {
		return h.Storage.GetMetric(ctx, label)
	}

	metrics, err := h.Dashboard.Metrics.FetchMetrics(ctx)
	if err != nil {
		return models.Metric{}, err
	}
	for _, m := range metrics {
		if m.Label == label {
			return m, nil
		}
	}
	return models.Metric{}, models.ErrMetricNotFound
}

// HandleWidget - индикатор по параметрам запроса:
// /widgets/{style}.svg?percentage=78&color=green&label=CPU.
// Процент вне диапазона не ошибка: индикатор его ограничивает.
func (h *Handler) HandleWidget(w http.ResponseWriter, r *http.Request) {
	style, err := indicator.ParseStyle(mux.Vars(r)["style"])
	if err != nil {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}

	query := r.URL.Query()
	raw := query.Get("percentage")
	if raw == "" {
		http.Error(w, "percentage is required", http.StatusBadRequest)
		return
	}
	p, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		http.Error(w, "Invalid percentage", http.StatusBadRequest)
		return
	}

	label := query.Get("label")
	if label == "" {
		label = indicator.FormatLength(indicator.Clamp(p)) + "%"
	}

	h.writeWidget(w, style, h.Renderer.NewWidget(label, p, models.ColorTag(query.Get("color"))))
}

func (h *Handler) writeWidget(w http.ResponseWriter, style indicator.Style, widget render.Widget) {
	var buf bytes.Buffer
	if err := h.Renderer.Widget(&buf, style, widget); err != nil {
		logger.Log.Error("Failed to render widget", zap.String("style", string(style)), zap.Error(err))
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Cache-Control", "no-cache")
	writeBody(w, contentTypeSVG, &buf)
}

func writeBody(w http.ResponseWriter, contentType string, buf *bytes.Buffer) {
	w.Header().Set("Content-Type", contentType)
	w.WriteHeader(http.StatusOK)
	if _, err := buf.WriteTo(w); err != nil {
		logger.Log.Debug("Client went away", zap.Error(err))
	}
}
