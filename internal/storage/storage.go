package storage

import (
	"context"

	"github.com/25x8/dashboard-widgets/internal/models"
)

// Storage определяет интерфейс хранилища данных дашборда.
// Реализации хранят карточки метрик и строки панели удовлетворенности в памяти или в базе данных.
type Storage interface {
	// SaveMetric сохраняет карточку метрики. Метрика с тем же Label заменяется,
	// при этом ее позиция в списке сохраняется.
	SaveMetric(ctx context.Context, m models.Metric) error

	// GetMetric возвращает карточку по имени.
	// Если карточка не найдена, возвращается models.ErrMetricNotFound.
	GetMetric(ctx context.Context, label string) (models.Metric, error)

	// ListMetrics возвращает все карточки в порядке добавления.
	ListMetrics(ctx context.Context) ([]models.Metric, error)

	// DeleteMetric удаляет карточку. Отсутствующая карточка - models.ErrMetricNotFound.
	DeleteMetric(ctx context.Context, label string) error

	// UpdateMetricsBatch сохраняет несколько карточек одной операцией.
	UpdateMetricsBatch(ctx context.Context, metrics []models.Metric) error

	// SaveRating сохраняет строку панели удовлетворенности, ключ - количество звезд.
	SaveRating(ctx context.Context, r models.Rating) error

	// ListRatings возвращает рейтинги по убыванию количества звезд.
	ListRatings(ctx context.Context) ([]models.Rating, error)
}
