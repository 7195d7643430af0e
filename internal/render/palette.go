package render

import "github.com/25x8/dashboard-widgets/internal/models"

// Swatch набор цветов одного ключа таблицы стилей
type Swatch struct {
	Stroke string // дуга кольца и заливка полосы
	Track  string // фон трека
	Text   string
	Badge  string // CSS-класс бейджа тренда
}

// Palette - таблица стилей: ключ цвета карточки -> оттенки
type Palette map[models.ColorTag]Swatch

var neutralSwatch = Swatch{Stroke: "#9ca3af", Track: "#f3f4f6", Text: "#374151", Badge: "badge-neutral"}

func DefaultPalette() Palette {
	return Palette{
		models.ColorBlue:   {Stroke: "#3b82f6", Track: "#dbeafe", Text: "#1d4ed8", Badge: "badge-blue"},
		models.ColorGreen:  {Stroke: "#22c55e", Track: "#dcfce7", Text: "#15803d", Badge: "badge-green"},
		models.ColorRed:    {Stroke: "#ef4444", Track: "#fee2e2", Text: "#b91c1c", Badge: "badge-red"},
		models.ColorYellow: {Stroke: "#eab308", Track: "#fef9c3", Text: "#a16207", Badge: "badge-yellow"},
	}
}

// Lookup возвращает оттенки для ключа; неизвестный ключ получает нейтральные цвета
func (p Palette) Lookup(tag models.ColorTag) Swatch {
	if s, ok := p[tag]; ok {
		return s
	}
	return neutralSwatch
}
