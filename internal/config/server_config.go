package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"github.com/25x8/dashboard-widgets/internal/models"
)

// Seed - данные дашборда, передаваемые при запуске вместо глобальных моков
type Seed struct {
	Metrics   []models.Metric   `json:"metrics" yaml:"metrics"`
	Ratings   []models.Rating   `json:"ratings" yaml:"ratings"`
	Documents []models.Document `json:"documents" yaml:"documents"`
	Messages  []models.Message  `json:"messages" yaml:"messages"`
}

// Construction - содержимое страницы "в разработке"
type Construction struct {
	Title   string `json:"title" yaml:"title"`
	Message string `json:"message" yaml:"message"`
	BackURL string `json:"back_url" yaml:"back_url"`
}

type ServerConfig struct {
	Address       string       `json:"address" yaml:"address"`
	Restore       bool         `json:"restore" yaml:"restore"`
	StoreInterval int          `json:"store_interval" yaml:"store_interval"`
	StoreFile     string       `json:"store_file" yaml:"store_file"`
	DatabaseDSN   string       `json:"database_dsn" yaml:"database_dsn"`
	Key           string       `json:"key" yaml:"key"`
	TrustedSubnet string       `json:"trusted_subnet" yaml:"trusted_subnet"`
	LogLevel      string       `json:"log_level" yaml:"log_level"`
	SystemMetrics bool         `json:"system_metrics" yaml:"system_metrics"`
	Seed          Seed         `json:"seed" yaml:"seed"`
	Construction  Construction `json:"construction" yaml:"construction"`
}

// DefaultSeed панель удовлетворенности по умолчанию: 5..1 звезд
func DefaultSeed() Seed {
	return Seed{
		Ratings: []models.Rating{
			{Stars: 5, Percentage: 45},
			{Stars: 4, Percentage: 25},
			{Stars: 3, Percentage: 15},
			{Stars: 2, Percentage: 10},
			{Stars: 1, Percentage: 5},
		},
	}
}

func DefaultServerConfig() *ServerConfig {
	return &ServerConfig{
		Address:       "localhost:8080",
		Restore:       true,
		StoreInterval: 300,
		StoreFile:     "/tmp/dashboard-db.json",
		LogLevel:      "info",
		Seed:          DefaultSeed(),
		Construction: Construction{
			Title:   "Under construction",
			Message: "This page is not ready yet. Please check back later.",
			BackURL: "/",
		},
	}
}

// LoadServerConfig читает конфигурацию поверх значений по умолчанию.
// Формат определяется расширением файла: .yaml/.yml или JSON.
func LoadServerConfig(filePath string) (*ServerConfig, error) {
	config := DefaultServerConfig()

	if filePath != "" {
		if err := decodeFile(filePath, config); err != nil {
			return nil, err
		}
	}

	if err := config.Seed.Normalize(); err != nil {
		return nil, fmt.Errorf("invalid seed in %s: %w", filePath, err)
	}

	return config, nil
}

// Normalize проверяет данные и проставляет недостающие идентификаторы
func (s *Seed) Normalize() error {
	for _, m := range s.Metrics {
		if err := m.Validate(); err != nil {
			return err
		}
	}
	for _, r := range s.Ratings {
		if err := r.Validate(); err != nil {
			return err
		}
	}
	for i := range s.Documents {
		if s.Documents[i].ID == "" {
			s.Documents[i].ID = uuid.NewString()
		}
	}
	for i := range s.Messages {
		if s.Messages[i].ID == "" {
			s.Messages[i].ID = uuid.NewString()
		}
	}
	return nil
}

func decodeFile(filePath string, dst interface{}) error {
	file, err := os.ReadFile(filePath)
	if err != nil {
		return err
	}

	switch strings.ToLower(filepath.Ext(filePath)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(file, dst)
	default:
		err = json.Unmarshal(file, dst)
	}
	if err != nil {
		return fmt.Errorf("failed to parse config %s: %w", filePath, err)
	}
	return nil
}

func GetBoolFromString(value string) (bool, error) {
	return strconv.ParseBool(value)
}
