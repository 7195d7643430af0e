// Package provider - источники данных секций дашборда.
package provider

import (
	"context"

	"github.com/25x8/dashboard-widgets/internal/models"
)

type MetricsProvider interface {
	FetchMetrics(ctx context.Context) ([]models.Metric, error)
}

type RatingsProvider interface {
	FetchRatings(ctx context.Context) ([]models.Rating, error)
}

type DocumentsProvider interface {
	FetchDocuments(ctx context.Context) ([]models.Document, error)
}

type MessagesProvider interface {
	FetchMessages(ctx context.Context) ([]models.Message, error)
}

// MetricsFunc позволяет использовать функцию как MetricsProvider
type MetricsFunc func(ctx context.Context) ([]models.Metric, error)

func (f MetricsFunc) FetchMetrics(ctx context.Context) ([]models.Metric, error) {
	return f(ctx)
}

// Merge склеивает карточки нескольких источников в заданном порядке.
// Первая ошибка прерывает загрузку.
type Merge []MetricsProvider

func (m Merge) FetchMetrics(ctx context.Context) ([]models.Metric, error) {
	var out []models.Metric
	for _, p := range m {
		if p == nil {
			continue
		}
		metrics, err := p.FetchMetrics(ctx)
		if err != nil {
			return nil, err
		}
		out = append(out, metrics...)
	}
	return out, nil
}
