package app

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/prometheus/client_golang/prometheus"
	promcollectors "github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/25x8/dashboard-widgets/internal/agent/collectors"
	"github.com/25x8/dashboard-widgets/internal/config"
	"github.com/25x8/dashboard-widgets/internal/dashboard"
	"github.com/25x8/dashboard-widgets/internal/handler"
	"github.com/25x8/dashboard-widgets/internal/logger"
	"github.com/25x8/dashboard-widgets/internal/provider"
	"github.com/25x8/dashboard-widgets/internal/render"
	"github.com/25x8/dashboard-widgets/internal/storage"
)

const (
	shutdownTimeout = 10 * time.Second
	sectionTimeout  = 3 * time.Second
)

// App - собранный сервер дашборда
type App struct {
	Config   *config.ServerConfig
	Handler  *handler.Handler
	Registry *prometheus.Registry
	Router   http.Handler

	mem *storage.MemStorage
}

// InitializeApp выбирает хранилище, наполняет его начальными данными
// и связывает провайдеры секций с обработчиками
func InitializeApp(ctx context.Context, cfg *config.ServerConfig) (*App, error) {
	var (
		storageEngine storage.Storage
		dbConnection  *sql.DB
		mem           *storage.MemStorage
	)

	// Выбор хранилища
	if cfg.DatabaseDSN != "" {
		db, err := sql.Open("pgx", cfg.DatabaseDSN)
		if err != nil {
			return nil, fmt.Errorf("failed to open database: %w", err)
		}

		dbStorage, err := storage.NewDBStorage(db)
		if err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to initialize database storage: %w", err)
		}
		storageEngine = dbStorage
		dbConnection = dbStorage.DB()
		logger.Log.Info("Using PostgreSQL storage")
	} else {
		mem = storage.NewMemStorage(cfg.StoreFile)
		if cfg.Restore {
			if err := mem.Load(); err != nil {
				logger.Log.Error("Error loading dashboard data from file", zap.String("file", cfg.StoreFile), zap.Error(err))
			}
		}
		if cfg.StoreInterval == 0 {
			storageEngine = storage.SyncMemStorage{MemStorage: mem}
		} else {
			storageEngine = mem
		}
		logger.Log.Info("Using file or in-memory storage", zap.String("file", cfg.StoreFile))
	}

	if err := seedStorage(ctx, storageEngine, cfg.Seed); err != nil {
		return nil, err
	}

	renderer, err := render.NewRenderer(render.DefaultPalette())
	if err != nil {
		return nil, err
	}

	store := provider.NewStore(storageEngine)
	static := provider.NewStatic(cfg.Seed)

	var metrics provider.MetricsProvider = store
	if cfg.SystemMetrics {
		metrics = provider.Merge{provider.NewSystem(collectors.NewSystemCollector("/")), store}
	}

	h := &handler.Handler{
		Storage: storageEngine,
		DB:      dbConnection,
		Dashboard: &dashboard.Service{
			Metrics:   metrics,
			Ratings:   store,
			Documents: static,
			Messages:  static,
			Timeout:   sectionTimeout,
		},
		Renderer:     renderer,
		Title:        "Dashboard",
		Construction: cfg.Construction,
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		promcollectors.NewGoCollector(),
		promcollectors.NewProcessCollector(promcollectors.ProcessCollectorOpts{}),
	)

	return &App{
		Config:   cfg,
		Handler:  h,
		Registry: reg,
		Router:   InitializeRouter(h, cfg, reg),
		mem:      mem,
	}, nil
}

// seedStorage записывает карточки и рейтинги из конфигурации в пустое хранилище.
// Восстановленные из файла или базы данные не перезаписываются.
func seedStorage(ctx context.Context, s storage.Storage, seed config.Seed) error {
	metrics, err := s.ListMetrics(ctx)
	if err != nil {
		return fmt.Errorf("failed to read metrics: %w", err)
	}
	if len(metrics) == 0 && len(seed.Metrics) > 0 {
		if err := s.UpdateMetricsBatch(ctx, seed.Metrics); err != nil {
			return fmt.Errorf("failed to seed metrics: %w", err)
		}
	}

	ratings, err := s.ListRatings(ctx)
	if err != nil {
		return fmt.Errorf("failed to read ratings: %w", err)
	}
	if len(ratings) == 0 {
		for _, r := range seed.Ratings {
			if err := s.SaveRating(ctx, r); err != nil {
				return fmt.Errorf("failed to seed ratings: %w", err)
			}
		}
	}
	return nil
}

// Run обслуживает HTTP до отмены ctx, затем останавливает сервер
// и сохраняет данные в файл
func (a *App) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              a.Config.Address,
		Handler:           a.Router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Log.Info("Starting server", zap.String("address", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	})

	if a.mem != nil && a.Config.StoreInterval > 0 {
		g.Go(func() error {
			storage.RunPeriodicSave(gctx, a.mem, time.Duration(a.Config.StoreInterval)*time.Second)
			return nil
		})
	}

	g.Go(func() error {
		<-gctx.Done()
		logger.Log.Info("Shutting down gracefully")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	err := g.Wait()
	if closeErr := a.Close(); closeErr != nil && err == nil {
		err = closeErr
	}
	return err
}

// Close сохраняет данные в файл и закрывает соединение с базой
func (a *App) Close() error {
	var err error
	if a.mem != nil {
		if err = a.mem.Flush(); err != nil {
			logger.Log.Error("Error during flush", zap.Error(err))
		}
	}
	a.Handler.CloseDB()
	return err
}
