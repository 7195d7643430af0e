// Package dashboard собирает данные всех секций главной страницы.
package dashboard

import (
	"context"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/25x8/dashboard-widgets/internal/logger"
	"github.com/25x8/dashboard-widgets/internal/models"
	"github.com/25x8/dashboard-widgets/internal/provider"
)

// Section - данные секции или ошибка ее загрузки
type Section[T any] struct {
	Items []T
	Err   error
}

// Empty - секция загружена без ошибки, но данных нет
func (s Section[T]) Empty() bool {
	return s.Err == nil && len(s.Items) == 0
}

// ErrorText сообщение для плейсхолдера ошибки
func (s Section[T]) ErrorText() string {
	if s.Err == nil {
		return ""
	}
	return s.Err.Error()
}

type View struct {
	Metrics   Section[models.Metric]
	Ratings   Section[models.Rating]
	Documents Section[models.Document]
	Messages  Section[models.Message]
}

// Service загружает секции параллельно. Провайдер nil дает пустую секцию.
type Service struct {
	Metrics   provider.MetricsProvider
	Ratings   provider.RatingsProvider
	Documents provider.DocumentsProvider
	Messages  provider.MessagesProvider

	// Timeout ограничивает загрузку каждой секции; 0 - без ограничения
	Timeout time.Duration
}

// Load никогда не возвращает ошибку целиком: сбой одной секции
// попадает в ее Err, остальные секции отображаются как обычно.
func (s *Service) Load(ctx context.Context) View {
	if s.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.Timeout)
		defer cancel()
	}

	var (
		view View
		g    errgroup.Group
	)

	if s.Metrics != nil {
		fetch(&g, ctx, "metrics", s.Metrics.FetchMetrics, &view.Metrics)
	}
	if s.Ratings != nil {
		fetch(&g, ctx, "ratings", s.Ratings.FetchRatings, &view.Ratings)
	}
	if s.Documents != nil {
		fetch(&g, ctx, "documents", s.Documents.FetchDocuments, &view.Documents)
	}
	if s.Messages != nil {
		fetch(&g, ctx, "messages", s.Messages.FetchMessages, &view.Messages)
	}

	// fetch не возвращает ошибок в группу, Wait только дожидается секций
	_ = g.Wait()

	return view
}

// fetch загружает секцию в отдельной горутине группы. Ошибка провайдера
// остается в dst.Err и не попадает в группу: иначе errgroup.WithContext
// отменил бы соседние секции, а Wait вернул бы только первую ошибку.
func fetch[T any](g *errgroup.Group, ctx context.Context, section string, f func(context.Context) ([]T, error), dst *Section[T]) {
	g.Go(func() error {
		start := time.Now()
		items, err := f(ctx)
		if err != nil {
			logger.Log.Error("Failed to load dashboard section",
				zap.String("section", section),
				zap.Duration("duration", time.Since(start)),
				zap.Error(err))
			*dst = Section[T]{Err: err}
			return nil
		}
		*dst = Section[T]{Items: items}
		return nil
	})
}
