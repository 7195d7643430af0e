package storage

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"net"
	"time"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pressly/goose/v3"
	"go.uber.org/zap"

	"github.com/25x8/dashboard-widgets/internal/logger"
	"github.com/25x8/dashboard-widgets/internal/models"
)

//go:embed migrations/*.sql
var migrations embed.FS

const (
	upsertMetricQuery = `INSERT INTO metrics (label, value, percentage, trend, change_text, color)
              VALUES ($1, $2, $3, $4, $5, $6)
              ON CONFLICT (label) DO UPDATE SET value = EXCLUDED.value,
                  percentage = EXCLUDED.percentage, trend = EXCLUDED.trend,
                  change_text = EXCLUDED.change_text, color = EXCLUDED.color;`
	selectMetricQuery = `SELECT label, value, percentage, trend, change_text, color FROM metrics WHERE label = $1`
	listMetricsQuery  = `SELECT label, value, percentage, trend, change_text, color FROM metrics ORDER BY position`
	deleteMetricQuery = `DELETE FROM metrics WHERE label = $1`
	upsertRatingQuery = `INSERT INTO ratings (stars, percentage) VALUES ($1, $2)
              ON CONFLICT (stars) DO UPDATE SET percentage = EXCLUDED.percentage;`
	listRatingsQuery = `SELECT stars, percentage FROM ratings ORDER BY stars DESC`
)

// переопределяются в тестах
var (
	gooseUp        = goose.Up
	retryOperation = retryWithBackoff
)

type DBStorage struct {
	db *sql.DB
}

func (s *DBStorage) DB() *sql.DB {
	return s.db
}

// NewDBStorage проверяет соединение и применяет миграции
func NewDBStorage(db *sql.DB) (*DBStorage, error) {
	ctx := context.Background()

	err := retryOperation(ctx, func() error {
		return db.PingContext(ctx)
	})
	if err != nil {
		return nil, fmt.Errorf("database connection check failed: %w", err)
	}

	goose.SetBaseFS(migrations)
	if err := goose.SetDialect("postgres"); err != nil {
		return nil, fmt.Errorf("failed to set goose dialect: %w", err)
	}
	goose.SetTableName("goose_db_version")

	logger.Log.Info("Applying database migrations")
	err = retryOperation(ctx, func() error {
		return gooseUp(db, "migrations")
	})
	if err != nil {
		return nil, fmt.Errorf("failed to apply migrations: %w", err)
	}
	logger.Log.Info("Database migrations applied")

	return &DBStorage{db: db}, nil
}

func (s *DBStorage) SaveMetric(ctx context.Context, m models.Metric) error {
	return retryOperation(ctx, func() error {
		_, err := s.db.ExecContext(ctx, upsertMetricQuery,
			m.Label, m.Value, m.Percentage, string(m.Trend), m.ChangeText, string(m.ColorTag))
		return err
	})
}

func (s *DBStorage) GetMetric(ctx context.Context, label string) (models.Metric, error) {
	var m models.Metric
	err := retryOperation(ctx, func() error {
		return scanMetric(s.db.QueryRowContext(ctx, selectMetricQuery, label), &m)
	})
	if errors.Is(err, sql.ErrNoRows) {
		return models.Metric{}, models.ErrMetricNotFound
	}
	return m, err
}

func (s *DBStorage) ListMetrics(ctx context.Context) ([]models.Metric, error) {
	var metrics []models.Metric

	err := retryOperation(ctx, func() error {
		metrics = metrics[:0]

		rows, err := s.db.QueryContext(ctx, listMetricsQuery)
		if err != nil {
			return err
		}
		defer func() {
			if err := rows.Close(); err != nil {
				logger.Log.Warn("Error closing metric rows", zap.Error(err))
			}
		}()

		for rows.Next() {
			var m models.Metric
			if err := scanMetric(rows, &m); err != nil {
				return err
			}
			metrics = append(metrics, m)
		}
		return rows.Err()
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list metrics: %w", err)
	}
	return metrics, nil
}

func (s *DBStorage) DeleteMetric(ctx context.Context, label string) error {
	var affected int64
	err := retryOperation(ctx, func() error {
		res, err := s.db.ExecContext(ctx, deleteMetricQuery, label)
		if err != nil {
			return err
		}
		affected, err = res.RowsAffected()
		return err
	})
	if err != nil {
		return err
	}
	if affected == 0 {
		return models.ErrMetricNotFound
	}
	return nil
}

// UpdateMetricsBatch сохраняет все карточки в одной транзакции
func (s *DBStorage) UpdateMetricsBatch(ctx context.Context, metrics []models.Metric) error {
	return retryOperation(ctx, func() (err error) {
		tx, err := s.db.BeginTx(ctx, nil)
		if err != nil {
			return err
		}
		defer func() {
			if err != nil {
				_ = tx.Rollback()
			} else {
				err = tx.Commit()
			}
		}()

		for _, m := range metrics {
			_, err = tx.ExecContext(ctx, upsertMetricQuery,
				m.Label, m.Value, m.Percentage, string(m.Trend), m.ChangeText, string(m.ColorTag))
			if err != nil {
				return err
			}
		}
		return nil
	})
}

func (s *DBStorage) SaveRating(ctx context.Context, r models.Rating) error {
	return retryOperation(ctx, func() error {
		_, err := s.db.ExecContext(ctx, upsertRatingQuery, r.Stars, r.Percentage)
		return err
	})
}

func (s *DBStorage) ListRatings(ctx context.Context) ([]models.Rating, error) {
	var ratings []models.Rating

	err := retryOperation(ctx, func() error {
		ratings = ratings[:0]

		rows, err := s.db.QueryContext(ctx, listRatingsQuery)
		if err != nil {
			return err
		}
		defer rows.Close()

		for rows.Next() {
			var r models.Rating
			if err := rows.Scan(&r.Stars, &r.Percentage); err != nil {
				return err
			}
			ratings = append(ratings, r)
		}
		return rows.Err()
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list ratings: %w", err)
	}
	return ratings, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanMetric(row rowScanner, m *models.Metric) error {
	var trend, color string
	if err := row.Scan(&m.Label, &m.Value, &m.Percentage, &trend, &m.ChangeText, &color); err != nil {
		return err
	}
	m.Trend = models.Trend(trend)
	m.ColorTag = models.ColorTag(color)
	return nil
}

// retryWithBackoff повторяет запрос при retriable ошибках
func retryWithBackoff(ctx context.Context, operation func() error) error {
	maxRetries := 4
	var err error
	delays := []time.Duration{1 * time.Second, 3 * time.Second, 5 * time.Second}

	for i := 0; i < maxRetries; i++ {
		err = operation()
		if err == nil {
			return nil
		}
		if !isRetriableError(err) {
			return err
		}
		if i < len(delays) {
			logger.Log.Warn("Retrying database operation",
				zap.Int("attempt", i+1),
				zap.Duration("delay", delays[i]),
				zap.Error(err))
			select {
			case <-time.After(delays[i]):
			case <-ctx.Done():
				return ctx.Err()
			}
		}
	}
	return err
}

// isRetriableError проверяет, является ли ошибка временной
func isRetriableError(err error) bool {
	if err == nil {
		return false
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgerrcode.SerializationFailure,
			pgerrcode.DeadlockDetected,
			pgerrcode.ConnectionException,
			pgerrcode.ConnectionDoesNotExist,
			pgerrcode.ConnectionFailure,
			pgerrcode.CrashShutdown,
			pgerrcode.CannotConnectNow,
			pgerrcode.IOError:
			return true
		default:
			return false
		}
	}

	var netErr net.Error
	if errors.As(err, &netErr) {
		return netErr.Timeout()
	}

	return errors.Is(err, sql.ErrConnDone)
}
