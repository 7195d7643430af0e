package agent

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/25x8/dashboard-widgets/internal/agent/senders"
	"github.com/25x8/dashboard-widgets/internal/logger"
	"github.com/25x8/dashboard-widgets/internal/models"
)

// Collector источник карточек для отправки
type Collector interface {
	Collect(ctx context.Context) error
	GetMetrics() []models.Metric
}

// Agent периодически снимает показатели и отправляет их пулом воркеров
type Agent struct {
	Collector      Collector
	Sender         senders.Sender
	PollInterval   time.Duration
	ReportInterval time.Duration
	RateLimit      int
}

// Run блокируется до отмены ctx и дожидается завершения всех горутин
func (a *Agent) Run(ctx context.Context) {
	rateLimit := a.RateLimit
	if rateLimit < 1 {
		rateLimit = 1
	}

	metricsChan := make(chan []models.Metric, rateLimit)
	wg := &sync.WaitGroup{}

	// Worker pool
	for i := 0; i < rateLimit; i++ {
		wg.Add(1)
		go a.worker(ctx, metricsChan, wg)
	}

	wg.Add(2)
	go a.poll(ctx, wg)
	go a.report(ctx, metricsChan, wg)

	<-ctx.Done()
	logger.Log.Info("Shutting down agent")
	wg.Wait()
}

func (a *Agent) poll(ctx context.Context, wg *sync.WaitGroup) {
	defer wg.Done()

	ticker := time.NewTicker(a.PollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := a.Collector.Collect(ctx); err != nil {
				logger.Log.Warn("Failed to collect host metrics", zap.Error(err))
				continue
			}
			logger.Log.Debug("Metrics collected")
		}
	}
}

// report единственный писатель в канал, поэтому закрывает его сам
func (a *Agent) report(ctx context.Context, metricsChan chan<- []models.Metric, wg *sync.WaitGroup) {
	defer wg.Done()
	defer close(metricsChan)

	ticker := time.NewTicker(a.ReportInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			metrics := a.Collector.GetMetrics()
			if len(metrics) == 0 {
				continue
			}
			select {
			case metricsChan <- metrics:
			case <-ctx.Done():
				return
			default:
				logger.Log.Warn("All workers busy, report dropped", zap.Int("metrics", len(metrics)))
			}
		}
	}
}

func (a *Agent) worker(ctx context.Context, metricsChan <-chan []models.Metric, wg *sync.WaitGroup) {
	defer wg.Done()
	for {
		select {
		case <-ctx.Done():
			return
		case metrics, ok := <-metricsChan:
			if !ok {
				return
			}
			if err := a.Sender.SendBatch(ctx, metrics); err != nil {
				logger.Log.Error("Error sending metrics batch",
					zap.Error(err),
					zap.Bool("rejected", senders.IsClientError(err)))
				continue
			}
			logger.Log.Info("Metrics batch sent", zap.Int("metrics", len(metrics)))
		}
	}
}
