// Package indicator переводит процент в геометрию визуальных индикаторов:
// линейную полосу, кольцо SVG и ряд звезд.
//
// Все функции чистые: результат зависит только от аргументов.
// Значения вне [0,100] не отклоняются, а приводятся к границам (см. Clamp);
// отклонение выполняется на входе данных, в пакете models.
package indicator

import (
	"fmt"
	"math"

	"github.com/shopspring/decimal"
)

// Full - процент, соответствующий полностью заполненному индикатору
const Full = 100.0

// Style вид индикатора
type Style string

const (
	StyleBar   Style = "bar"
	StyleRing  Style = "ring"
	StyleStars Style = "stars"
)

// ParseStyle разбирает строковое имя стиля
func ParseStyle(s string) (Style, error) {
	switch Style(s) {
	case StyleBar, StyleRing, StyleStars:
		return Style(s), nil
	default:
		return "", fmt.Errorf("unknown indicator style %q", s)
	}
}

// Clamp приводит процент к отрезку [0,100]. NaN считается нулем.
func Clamp(p float64) float64 {
	switch {
	case math.IsNaN(p), p < 0:
		return 0
	case p > Full:
		return Full
	default:
		return p
	}
}

// Fill возвращает долю заполнения индикатора (0..1) для процента p.
// Для звезд доля дискретна: учитываются только целиком заполненные звезды.
func Fill(style Style, p float64) float64 {
	switch style {
	case StyleStars:
		row := StarsFromPercentage(p, DefaultMaxStars)
		return float64(row.Filled()) / float64(row.Max)
	default:
		return Clamp(p) / Full
	}
}

// FormatLength форматирует длину для атрибутов SVG: не более двух знаков после запятой
func FormatLength(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return "0"
	}
	return decimal.NewFromFloat(v).Round(2).String()
}
