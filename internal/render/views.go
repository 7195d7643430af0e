package render

import (
	"github.com/25x8/dashboard-widgets/internal/dashboard"
	"github.com/25x8/dashboard-widgets/internal/indicator"
	"github.com/25x8/dashboard-widgets/internal/models"
)

// ButtonVariant оформление кнопки
type ButtonVariant string

const (
	ButtonPrimary   ButtonVariant = "primary"
	ButtonSecondary ButtonVariant = "secondary"
	ButtonDanger    ButtonVariant = "danger"
)

// Button - универсальная кнопка. С Href рисуется как ссылка.
type Button struct {
	Label    string
	Href     string
	Variant  ButtonVariant
	Disabled bool
}

// Class CSS-классы кнопки
func (b Button) Class() string {
	variant := b.Variant
	if variant == "" {
		variant = ButtonPrimary
	}
	class := "btn btn-" + string(variant)
	if b.Disabled {
		class += " btn-disabled"
	}
	return class
}

// StatCard карточка метрики, готовая к выводу
type StatCard struct {
	Metric models.Metric
	Ring   indicator.Ring
	Bar    indicator.Bar
	Swatch Swatch
}

func (c StatCard) TrendUp() bool {
	return c.Metric.Trend == models.TrendUp
}

// RatingRow строка панели удовлетворенности.
// Звезды берутся из Stars, ширина полосы - из Percentage.
type RatingRow struct {
	Rating models.Rating
	Stars  indicator.StarRow
	Bar    indicator.Bar
}

// DashboardView модель главной страницы
type DashboardView struct {
	Title        string
	Cards        dashboard.Section[StatCard]
	Satisfaction dashboard.Section[RatingRow]
	Documents    dashboard.Section[models.Document]
	Messages     dashboard.Section[models.Message]
	Actions      []Button
}

// UnreadCount количество непрочитанных сообщений
func (v DashboardView) UnreadCount() int {
	n := 0
	for _, m := range v.Messages.Items {
		if m.Unread {
			n++
		}
	}
	return n
}

// ConstructionView модель страницы "в разработке"
type ConstructionView struct {
	Title   string
	Message string
	Back    Button
}

// NewStatCards строит карточки из метрик; nil дает пустой срез
func (r *Renderer) NewStatCards(metrics []models.Metric) []StatCard {
	cards := make([]StatCard, 0, len(metrics))
	for _, m := range metrics {
		cards = append(cards, StatCard{
			Metric: m,
			Ring:   indicator.NewRing(m.Percentage),
			Bar:    indicator.NewBar(m.Percentage),
			Swatch: r.palette.Lookup(m.ColorTag),
		})
	}
	return cards
}

func NewRatingRows(ratings []models.Rating) []RatingRow {
	rows := make([]RatingRow, 0, len(ratings))
	for _, rt := range ratings {
		rows = append(rows, RatingRow{
			Rating: rt,
			Stars:  indicator.NewStarRow(float64(rt.Stars), indicator.DefaultMaxStars),
			Bar:    indicator.NewBar(rt.Percentage),
		})
	}
	return rows
}
