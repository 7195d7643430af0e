package storage

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"slices"
	"sort"
	"sync"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/25x8/dashboard-widgets/internal/logger"
	"github.com/25x8/dashboard-widgets/internal/models"
)

// MemStorage - хранилище в памяти с сохранением в JSON-файл
type MemStorage struct {
	sync.Mutex
	metrics  []models.Metric
	index    map[string]int
	ratings  map[int]models.Rating
	filePath string

	// fileMu упорядочивает записи в файл; данные под ним не читаются
	fileMu sync.Mutex
}

// MemStorageData - структура для сериализации
type MemStorageData struct {
	Metrics []models.Metric `json:"metrics"`
	Ratings []models.Rating `json:"ratings"`
}

// fileRetryDelays паузы между попытками файловых операций
var fileRetryDelays = []time.Duration{1 * time.Second, 3 * time.Second, 5 * time.Second}

// createFile и openFile подменяются в тестах
var (
	createFile = os.Create
	openFile   = os.Open
)

// NewMemStorage - конструктор для MemStorage. Пустой filePath отключает сохранение в файл.
func NewMemStorage(filePath string) *MemStorage {
	return &MemStorage{
		index:    make(map[string]int),
		ratings:  make(map[int]models.Rating),
		filePath: filePath,
	}
}

func (s *MemStorage) SaveMetric(_ context.Context, m models.Metric) error {
	s.Lock()
	defer s.Unlock()
	s.saveMetric(m)
	return nil
}

func (s *MemStorage) saveMetric(m models.Metric) {
	if i, ok := s.index[m.Label]; ok {
		s.metrics[i] = m
		return
	}
	s.index[m.Label] = len(s.metrics)
	s.metrics = append(s.metrics, m)
}

func (s *MemStorage) GetMetric(_ context.Context, label string) (models.Metric, error) {
	s.Lock()
	defer s.Unlock()
	i, ok := s.index[label]
	if !ok {
		return models.Metric{}, models.ErrMetricNotFound
	}
	return s.metrics[i], nil
}

func (s *MemStorage) ListMetrics(_ context.Context) ([]models.Metric, error) {
	s.Lock()
	defer s.Unlock()
	out := make([]models.Metric, len(s.metrics))
	copy(out, s.metrics)
	return out, nil
}

func (s *MemStorage) DeleteMetric(_ context.Context, label string) error {
	s.Lock()
	defer s.Unlock()
	i, ok := s.index[label]
	if !ok {
		return models.ErrMetricNotFound
	}
	s.metrics = append(s.metrics[:i], s.metrics[i+1:]...)
	s.reindex()
	return nil
}

func (s *MemStorage) reindex() {
	s.index = make(map[string]int, len(s.metrics))
	for i, m := range s.metrics {
		s.index[m.Label] = i
	}
}

func (s *MemStorage) UpdateMetricsBatch(_ context.Context, metrics []models.Metric) error {
	s.Lock()
	defer s.Unlock()
	for _, m := range metrics {
		s.saveMetric(m)
	}
	return nil
}

func (s *MemStorage) SaveRating(_ context.Context, r models.Rating) error {
	s.Lock()
	defer s.Unlock()
	s.ratings[r.Stars] = r
	return nil
}

func (s *MemStorage) ListRatings(_ context.Context) ([]models.Rating, error) {
	s.Lock()
	defer s.Unlock()
	return s.sortedRatings(), nil
}

func (s *MemStorage) sortedRatings() []models.Rating {
	out := make([]models.Rating, 0, len(s.ratings))
	for _, r := range s.ratings {
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Stars > out[j].Stars })
	return out
}

// Flush сохраняет содержимое хранилища в файл. Под блокировкой делается
// только снимок данных, запись и повторы идут без нее.
func (s *MemStorage) Flush() error {
	if s.filePath == "" {
		// Если путь к файлу не задан, пропускаем сохранение
		return nil
	}

	s.fileMu.Lock()
	defer s.fileMu.Unlock()

	data := s.snapshot()

	return retryFileOperation(func() error {
		file, err := createFile(s.filePath)
		if err != nil {
			return err
		}
		defer file.Close()

		return json.NewEncoder(file).Encode(data)
	})
}

func (s *MemStorage) snapshot() MemStorageData {
	s.Lock()
	defer s.Unlock()
	return MemStorageData{
		Metrics: slices.Clone(s.metrics),
		Ratings: s.sortedRatings(),
	}
}

// Load загружает хранилище из файла. Отсутствующий файл не считается ошибкой.
func (s *MemStorage) Load() error {
	if s.filePath == "" {
		return nil
	}

	var data MemStorageData
	err := retryFileOperation(func() error {
		file, err := openFile(s.filePath)
		if err != nil {
			return err
		}
		defer file.Close()

		return json.NewDecoder(file).Decode(&data)
	})
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err != nil {
		return err
	}

	s.Lock()
	defer s.Unlock()

	s.metrics = nil
	s.index = make(map[string]int)
	for _, m := range data.Metrics {
		s.saveMetric(m)
	}
	s.ratings = make(map[int]models.Rating, len(data.Ratings))
	for _, r := range data.Ratings {
		s.ratings[r.Stars] = r
	}

	return nil
}

// RunPeriodicSave сохраняет хранилище в файл с заданным интервалом до отмены контекста
func RunPeriodicSave(ctx context.Context, s *MemStorage, storeInterval time.Duration) {
	ticker := time.NewTicker(storeInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := s.Flush(); err != nil {
				logger.Log.Error("Error saving dashboard data to file", zap.Error(err))
			}
		}
	}
}

// retryFileOperation повторяет файловую операцию при временных ошибках
func retryFileOperation(operation func() error) error {
	var err error
	for i := 0; i <= len(fileRetryDelays); i++ {
		err = operation()
		if err == nil || !isFileRetriableError(err) {
			return err
		}
		if i < len(fileRetryDelays) {
			time.Sleep(fileRetryDelays[i])
		}
	}
	return err
}

// isFileRetriableError - файл занят или временно недоступен.
// Нехватка прав не лечится ожиданием и сразу возвращается.
func isFileRetriableError(err error) bool {
	if err == nil {
		return false
	}
	var pathErr *os.PathError
	if errors.As(err, &pathErr) {
		return errors.Is(pathErr.Err, syscall.EAGAIN) ||
			errors.Is(pathErr.Err, syscall.EBUSY)
	}
	return false
}

// SyncMemStorage сбрасывает данные в файл после каждой записи (интервал сохранения 0)
type SyncMemStorage struct {
	*MemStorage
}

func (s SyncMemStorage) SaveMetric(ctx context.Context, m models.Metric) error {
	if err := s.MemStorage.SaveMetric(ctx, m); err != nil {
		return err
	}
	return s.Flush()
}

func (s SyncMemStorage) DeleteMetric(ctx context.Context, label string) error {
	if err := s.MemStorage.DeleteMetric(ctx, label); err != nil {
		return err
	}
	return s.Flush()
}

func (s SyncMemStorage) UpdateMetricsBatch(ctx context.Context, metrics []models.Metric) error {
	if err := s.MemStorage.UpdateMetricsBatch(ctx, metrics); err != nil {
		return err
	}
	return s.Flush()
}

func (s SyncMemStorage) SaveRating(ctx context.Context, r models.Rating) error {
	if err := s.MemStorage.SaveRating(ctx, r); err != nil {
		return err
	}
	return s.Flush()
}
