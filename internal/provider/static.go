package provider

import (
	"context"
	"slices"

	"github.com/25x8/dashboard-widgets/internal/config"
	"github.com/25x8/dashboard-widgets/internal/models"
)

// Static отдает данные из конфигурации. Каждый вызов возвращает копию,
// поэтому вызывающий код не может испортить исходные данные.
type Static struct {
	seed config.Seed
}

func NewStatic(seed config.Seed) *Static {
	return &Static{seed: seed}
}

func (s *Static) FetchMetrics(ctx context.Context) ([]models.Metric, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return slices.Clone(s.seed.Metrics), nil
}

func (s *Static) FetchRatings(ctx context.Context) ([]models.Rating, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return slices.Clone(s.seed.Ratings), nil
}

func (s *Static) FetchDocuments(ctx context.Context) ([]models.Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return slices.Clone(s.seed.Documents), nil
}

func (s *Static) FetchMessages(ctx context.Context) ([]models.Message, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return slices.Clone(s.seed.Messages), nil
}
