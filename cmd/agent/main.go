package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/25x8/dashboard-widgets/internal/agent"
	"github.com/25x8/dashboard-widgets/internal/agent/collectors"
	"github.com/25x8/dashboard-widgets/internal/agent/senders"
	"github.com/25x8/dashboard-widgets/internal/app"
	"github.com/25x8/dashboard-widgets/internal/buildinfo"
	"github.com/25x8/dashboard-widgets/internal/logger"
)

func main() {
	cfg, err := app.ParseAgentConfig(os.Args[1:])
	if err != nil {
		panic(err)
	}

	if err := logger.Initialize(cfg.LogLevel); err != nil {
		panic(err)
	}
	defer logger.Sync()

	buildinfo.Log("agent")

	// Контекст для graceful shutdown
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM, syscall.SIGQUIT)
	defer stop()

	a := &agent.Agent{
		Collector:      collectors.NewSystemCollector(cfg.DiskPath),
		Sender:         senders.NewHTTPSender(cfg.Address, cfg.Key),
		PollInterval:   time.Duration(cfg.PollInterval) * time.Second,
		ReportInterval: time.Duration(cfg.ReportInterval) * time.Second,
		RateLimit:      cfg.RateLimit,
	}

	logger.Log.Info("Agent started",
		zap.String("address", cfg.Address),
		zap.Int("poll_interval", cfg.PollInterval),
		zap.Int("report_interval", cfg.ReportInterval),
		zap.Int("rate_limit", cfg.RateLimit))

	a.Run(ctx)

	logger.Log.Info("Agent stopped")
}
