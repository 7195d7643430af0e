package models

import (
	"errors"
	"fmt"
	"math"
	"time"
)

// Trend направление изменения показателя относительно предыдущего периода
type Trend string

const (
	TrendUp   Trend = "up"
	TrendDown Trend = "down"
)

// Valid сообщает, является ли значение допустимым направлением тренда
func (t Trend) Valid() bool {
	return t == TrendUp || t == TrendDown
}

// ColorTag ключ в таблице стилей индикатора
type ColorTag string

const (
	ColorBlue   ColorTag = "blue"
	ColorGreen  ColorTag = "green"
	ColorRed    ColorTag = "red"
	ColorYellow ColorTag = "yellow"
)

// Valid сообщает, известен ли цвет таблице стилей
func (c ColorTag) Valid() bool {
	switch c {
	case ColorBlue, ColorGreen, ColorRed, ColorYellow:
		return true
	default:
		return false
	}
}

const (
	MinPercentage = 0.0
	MaxPercentage = 100.0

	MinStars = 1
	MaxStars = 5
)

var (
	ErrMetricNotFound       = errors.New("metric not found")
	ErrPercentageOutOfRange = errors.New("percentage out of range [0,100]")
	ErrInvalidStars         = errors.New("stars out of range [1,5]")
	ErrInvalidColor         = errors.New("unknown color tag")
	ErrInvalidTrend         = errors.New("unknown trend")
	ErrEmptyLabel           = errors.New("label is required")
)

// Metric - одна карточка статистики дашборда.
// Value хранится уже отформатированной строкой, Percentage управляет индикатором.
type Metric struct {
	Label      string   `json:"label" yaml:"label"`
	Value      string   `json:"value" yaml:"value"`
	Percentage float64  `json:"percentage" yaml:"percentage"`
	Trend      Trend    `json:"trend" yaml:"trend"`
	ChangeText string   `json:"change_text" yaml:"change_text"`
	ColorTag   ColorTag `json:"color" yaml:"color"`
}

// Validate проверяет метрику перед сохранением
func (m Metric) Validate() error {
	if m.Label == "" {
		return ErrEmptyLabel
	}
	if err := ValidatePercentage(m.Percentage); err != nil {
		return fmt.Errorf("metric %q: %w", m.Label, err)
	}
	if !m.Trend.Valid() {
		return fmt.Errorf("metric %q: %w: %q", m.Label, ErrInvalidTrend, m.Trend)
	}
	if !m.ColorTag.Valid() {
		return fmt.Errorf("metric %q: %w: %q", m.Label, ErrInvalidColor, m.ColorTag)
	}
	return nil
}

// Rating - строка панели удовлетворенности: количество звезд и доля ответов
type Rating struct {
	Stars      int     `json:"stars" yaml:"stars"`
	Percentage float64 `json:"percentage" yaml:"percentage"`
}

func (r Rating) Validate() error {
	if r.Stars < MinStars || r.Stars > MaxStars {
		return fmt.Errorf("%w: %d", ErrInvalidStars, r.Stars)
	}
	if err := ValidatePercentage(r.Percentage); err != nil {
		return fmt.Errorf("rating %d: %w", r.Stars, err)
	}
	return nil
}

// ValidatePercentage отклоняет значения вне [0,100] и NaN
func ValidatePercentage(p float64) error {
	if math.IsNaN(p) || p < MinPercentage || p > MaxPercentage {
		return fmt.Errorf("%w: %v", ErrPercentageOutOfRange, p)
	}
	return nil
}

// Document элемент списка документов
type Document struct {
	ID        string    `json:"id" yaml:"id"`
	Title     string    `json:"title" yaml:"title"`
	Owner     string    `json:"owner" yaml:"owner"`
	Kind      string    `json:"kind" yaml:"kind"` // pdf, doc, sheet...
	UpdatedAt time.Time `json:"updated_at" yaml:"updated_at"`
}

// Message элемент входящих сообщений
type Message struct {
	ID         string    `json:"id" yaml:"id"`
	From       string    `json:"from" yaml:"from"`
	Subject    string    `json:"subject" yaml:"subject"`
	Preview    string    `json:"preview" yaml:"preview"`
	Unread     bool      `json:"unread" yaml:"unread"`
	ReceivedAt time.Time `json:"received_at" yaml:"received_at"`
}
