// Package render выводит виджеты дашборда в HTML и SVG.
// Шаблоны встроены в бинарник; вся геометрия берется из пакета indicator.
package render

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io"
	"time"

	"github.com/25x8/dashboard-widgets/internal/indicator"
	"github.com/25x8/dashboard-widgets/internal/models"
)

//go:embed templates/*
var templatesFS embed.FS

const (
	// DefaultTrackWidth ширина трека отдельного SVG-виджета полосы
	DefaultTrackWidth = 200.0

	starSize = 24.0
)

// Widget - один индикатор для отдельного SVG-ответа
type Widget struct {
	Label      string
	Ring       indicator.Ring
	Bar        indicator.Bar
	Stars      indicator.StarRow
	TrackWidth float64
	Swatch     Swatch
}

type Renderer struct {
	tmpl    *template.Template
	palette Palette
}

// NewRenderer разбирает встроенные шаблоны. nil palette заменяется DefaultPalette.
func NewRenderer(palette Palette) (*Renderer, error) {
	if palette == nil {
		palette = DefaultPalette()
	}

	funcs := template.FuncMap{
		"fmtLength":  indicator.FormatLength,
		"date":       formatDate,
		"starOffset": func(i int) string { return indicator.FormatLength(float64(i) * starSize) },
		"starsWidth": func(n int) string { return indicator.FormatLength(float64(n) * starSize) },
	}

	tmpl, err := template.New("widgets").Funcs(funcs).ParseFS(templatesFS, "templates/*")
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}

	return &Renderer{tmpl: tmpl, palette: palette}, nil
}

func (r *Renderer) Palette() Palette {
	return r.palette
}

// NewWidget строит индикатор по проценту и ключу цвета
func (r *Renderer) NewWidget(label string, p float64, color models.ColorTag) Widget {
	return Widget{
		Label:      label,
		Ring:       indicator.NewRing(p),
		Bar:        indicator.NewBar(p),
		Stars:      indicator.StarsFromPercentage(p, indicator.DefaultMaxStars),
		TrackWidth: DefaultTrackWidth,
		Swatch:     r.palette.Lookup(color),
	}
}

// Dashboard выводит главную страницу
func (r *Renderer) Dashboard(w io.Writer, view DashboardView) error {
	return r.execute(w, "dashboard", view)
}

// Construction выводит страницу "в разработке"
func (r *Renderer) Construction(w io.Writer, view ConstructionView) error {
	return r.execute(w, "construction", view)
}

// Widget выводит отдельный SVG-документ индикатора заданного стиля
func (r *Renderer) Widget(w io.Writer, style indicator.Style, widget Widget) error {
	switch style {
	case indicator.StyleRing:
		return r.execute(w, "ring.svg", widget)
	case indicator.StyleBar:
		return r.execute(w, "bar.svg", widget)
	case indicator.StyleStars:
		return r.execute(w, "stars.svg", widget)
	default:
		return fmt.Errorf("unknown indicator style %q", style)
	}
}

// execute рендерит в буфер, чтобы при ошибке не отдавать клиенту половину страницы
func (r *Renderer) execute(w io.Writer, name string, data interface{}) error {
	var buf bytes.Buffer
	if err := r.tmpl.ExecuteTemplate(&buf, name, data); err != nil {
		return fmt.Errorf("failed to render %s: %w", name, err)
	}
	_, err := buf.WriteTo(w)
	return err
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Format("Jan 2, 2006")
}
