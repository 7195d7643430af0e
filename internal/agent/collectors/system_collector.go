package collectors

import (
	"context"
	"fmt"
	"sync"

	"github.com/dustin/go-humanize"
	"github.com/shirou/gopsutil/v4/cpu"
	"github.com/shirou/gopsutil/v4/disk"
	"github.com/shirou/gopsutil/v4/load"
	"github.com/shirou/gopsutil/v4/mem"
	"go.uber.org/zap"

	"github.com/25x8/dashboard-widgets/internal/indicator"
	"github.com/25x8/dashboard-widgets/internal/logger"
	"github.com/25x8/dashboard-widgets/internal/models"
)

const (
	LabelCPU    = "CPU"
	LabelMemory = "Memory"
	LabelDisk   = "Disk"
	LabelLoad   = "Load"

	warnThreshold     = 60.0
	criticalThreshold = 85.0
)

// Sample - один снимок загрузки хоста
type Sample struct {
	CPU         float64
	Memory      float64
	MemoryUsed  uint64
	MemoryTotal uint64
	Disk        float64
	DiskUsed    uint64
	DiskTotal   uint64
	Load1       float64
	NumCPU      int
	HasLoad     bool
}

// SampleFunc снимает показатели хоста
type SampleFunc func(ctx context.Context) (Sample, error)

// SystemCollector превращает загрузку хоста в карточки дашборда
type SystemCollector struct {
	mu        sync.Mutex
	pollCount int64
	sample    SampleFunc
	previous  map[string]float64
	metrics   []models.Metric
}

// PollCount - число успешных опросов хоста
func (c *SystemCollector) PollCount() int64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.pollCount
}

// NewSystemCollector - конструктор; diskPath - точка монтирования для карточки Disk
func NewSystemCollector(diskPath string) *SystemCollector {
	return NewSystemCollectorWithSampler(HostSampler(diskPath))
}

func NewSystemCollectorWithSampler(sample SampleFunc) *SystemCollector {
	return &SystemCollector{
		sample:   sample,
		previous: make(map[string]float64),
	}
}

// HostSampler читает показатели через gopsutil
func HostSampler(diskPath string) SampleFunc {
	if diskPath == "" {
		diskPath = "/"
	}
	return func(ctx context.Context) (Sample, error) {
		var s Sample

		percents, err := cpu.PercentWithContext(ctx, 0, false)
		if err != nil {
			return s, fmt.Errorf("cpu usage: %w", err)
		}
		if len(percents) > 0 {
			s.CPU = percents[0]
		}

		vm, err := mem.VirtualMemoryWithContext(ctx)
		if err != nil {
			return s, fmt.Errorf("memory usage: %w", err)
		}
		s.Memory, s.MemoryUsed, s.MemoryTotal = vm.UsedPercent, vm.Used, vm.Total

		du, err := disk.UsageWithContext(ctx, diskPath)
		if err != nil {
			return s, fmt.Errorf("disk usage of %s: %w", diskPath, err)
		}
		s.Disk, s.DiskUsed, s.DiskTotal = du.UsedPercent, du.Used, du.Total

		// load average есть не на всех платформах
		avg, err := load.AvgWithContext(ctx)
		if err != nil {
			logger.Log.Debug("Load average unavailable", zap.Error(err))
			return s, nil
		}
		n, err := cpu.CountsWithContext(ctx, true)
		if err != nil || n <= 0 {
			n = 1
		}
		s.Load1, s.NumCPU, s.HasLoad = avg.Load1, n, true

		return s, nil
	}
}

// Collect снимает показатели и обновляет карточки
func (c *SystemCollector) Collect(ctx context.Context) error {
	s, err := c.sample(ctx)
	if err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	metrics := []models.Metric{
		c.card(LabelCPU, fmt.Sprintf("%.1f%%", s.CPU), s.CPU, thresholdColor(s.CPU)),
		c.card(LabelMemory, usage(s.MemoryUsed, s.MemoryTotal), s.Memory, thresholdColor(s.Memory)),
		c.card(LabelDisk, usage(s.DiskUsed, s.DiskTotal), s.Disk, thresholdColor(s.Disk)),
	}
	if s.HasLoad {
		cpus := s.NumCPU
		if cpus <= 0 {
			cpus = 1
		}
		metrics = append(metrics, c.card(LabelLoad, fmt.Sprintf("%.2f", s.Load1), s.Load1/float64(cpus)*100, models.ColorBlue))
	}

	c.metrics = metrics
	c.pollCount++
	return nil
}

// card строит карточку и запоминает значение для тренда. Вызывается под mu.
func (c *SystemCollector) card(label, value string, p float64, color models.ColorTag) models.Metric {
	p = indicator.Clamp(p)

	m := models.Metric{
		Label:      label,
		Value:      value,
		Percentage: p,
		Trend:      models.TrendUp,
		ChangeText: "first sample",
		ColorTag:   color,
	}
	if prev, ok := c.previous[label]; ok {
		delta := p - prev
		if delta < 0 {
			m.Trend = models.TrendDown
		}
		m.ChangeText = fmt.Sprintf("%+.1f%% since last poll", delta)
	}
	c.previous[label] = p
	return m
}

// GetMetrics возвращает копию последних карточек
func (c *SystemCollector) GetMetrics() []models.Metric {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := make([]models.Metric, len(c.metrics))
	copy(out, c.metrics)
	return out
}

func (c *SystemCollector) CollectMetrics(ctx context.Context) ([]models.Metric, error) {
	if err := c.Collect(ctx); err != nil {
		return nil, err
	}
	return c.GetMetrics(), nil
}

func thresholdColor(p float64) models.ColorTag {
	switch {
	case p < warnThreshold:
		return models.ColorGreen
	case p < criticalThreshold:
		return models.ColorYellow
	default:
		return models.ColorRed
	}
}

func usage(used, total uint64) string {
	return humanize.IBytes(used) + " / " + humanize.IBytes(total)
}
