package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/25x8/dashboard-widgets/internal/app"
	"github.com/25x8/dashboard-widgets/internal/buildinfo"
	"github.com/25x8/dashboard-widgets/internal/logger"
)

func main() {
	cfg, err := app.ParseServerConfig(os.Args[1:])
	if err != nil {
		panic(err)
	}

	if err := logger.Initialize(cfg.LogLevel); err != nil {
		panic(err)
	}
	defer logger.Sync()

	buildinfo.Log("server")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM, syscall.SIGQUIT)
	defer stop()

	a, err := app.InitializeApp(ctx, cfg)
	if err != nil {
		logger.Log.Error("Failed to initialize dashboard", zap.Error(err))
		return
	}

	if err := a.Run(ctx); err != nil {
		logger.Log.Error("Server stopped with error", zap.Error(err))
		return
	}

	logger.Log.Info("Server stopped")
}
