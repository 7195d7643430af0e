package provider

import (
	"context"
	"fmt"

	"github.com/25x8/dashboard-widgets/internal/models"
	"github.com/25x8/dashboard-widgets/internal/storage"
)

// Store читает карточки и рейтинги из хранилища
type Store struct {
	storage storage.Storage
}

func NewStore(s storage.Storage) *Store {
	return &Store{storage: s}
}

func (p *Store) FetchMetrics(ctx context.Context) ([]models.Metric, error) {
	metrics, err := p.storage.ListMetrics(ctx)
	if err != nil {
		return nil, fmt.Errorf("list metrics: %w", err)
	}
	return metrics, nil
}

func (p *Store) FetchRatings(ctx context.Context) ([]models.Rating, error) {
	ratings, err := p.storage.ListRatings(ctx)
	if err != nil {
		return nil, fmt.Errorf("list ratings: %w", err)
	}
	return ratings, nil
}
