package indicator

import (
	"fmt"
	"math"
)

const (
	DefaultRingRadius = 40.0
	DefaultRingStroke = 8.0
)

// Ring кольцевой индикатор.
// Заливка рисуется через stroke-dasharray: штрих длиной p*(C/100), остаток - пробел.
// Кольцо повернуто на -90 градусов, чтобы дуга начиналась на 12 часах.
type Ring struct {
	Percentage  float64
	Radius      float64
	StrokeWidth float64
}

func NewRing(p float64) Ring {
	return NewRingWithRadius(p, DefaultRingRadius, DefaultRingStroke)
}

func NewRingWithRadius(p, radius, stroke float64) Ring {
	if radius <= 0 {
		radius = DefaultRingRadius
	}
	if stroke < 0 {
		stroke = 0
	}
	return Ring{
		Percentage:  Clamp(p),
		Radius:      radius,
		StrokeWidth: stroke,
	}
}

func (r Ring) Circumference() float64 {
	return 2 * math.Pi * r.Radius
}

// DashLength длина заполненной дуги
func (r Ring) DashLength() float64 {
	return r.Percentage * (r.Circumference() / Full)
}

// GapLength длина незаполненной части окружности
func (r Ring) GapLength() float64 {
	return r.Circumference() - r.DashLength()
}

// Fill доля заполненной окружности
func (r Ring) Fill() float64 {
	return r.DashLength() / r.Circumference()
}

// DashArray значение атрибута stroke-dasharray
func (r Ring) DashArray() string {
	return FormatLength(r.DashLength()) + " " + FormatLength(r.GapLength())
}

// Size сторона квадрата, в который вписано кольцо вместе с обводкой
func (r Ring) Size() float64 {
	return 2*r.Radius + r.StrokeWidth
}

// Center координата центра по обеим осям
func (r Ring) Center() float64 {
	return r.Size() / 2
}

func (r Ring) ViewBox() string {
	s := FormatLength(r.Size())
	return "0 0 " + s + " " + s
}

// Transform поворот, переносящий начало дуги с 3 часов на 12
func (r Ring) Transform() string {
	c := FormatLength(r.Center())
	return fmt.Sprintf("rotate(-90 %s %s)", c, c)
}
