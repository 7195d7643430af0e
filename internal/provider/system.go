package provider

import (
	"context"
	"fmt"

	"github.com/25x8/dashboard-widgets/internal/agent/collectors"
	"github.com/25x8/dashboard-widgets/internal/models"
)

// System - живые карточки загрузки хоста, на котором работает сервер
type System struct {
	collector *collectors.SystemCollector
}

func NewSystem(collector *collectors.SystemCollector) *System {
	return &System{collector: collector}
}

func (s *System) FetchMetrics(ctx context.Context) ([]models.Metric, error) {
	metrics, err := s.collector.CollectMetrics(ctx)
	if err != nil {
		return nil, fmt.Errorf("host usage: %w", err)
	}
	return metrics, nil
}
