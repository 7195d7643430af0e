package indicator

import "math"

const DefaultMaxStars = 5

// Star одна позиция в ряду
type Star struct {
	Index  int
	Filled bool
}

// StarRow ряд звезд. Звезда с индексом i заполнена, если i < floor(Earned).
type StarRow struct {
	Earned float64
	Max    int
}

// NewStarRow создает ряд из max звезд, earned приводится к [0,max]
func NewStarRow(earned float64, max int) StarRow {
	if max <= 0 {
		max = DefaultMaxStars
	}
	switch {
	case math.IsNaN(earned), earned < 0:
		earned = 0
	case earned > float64(max):
		earned = float64(max)
	}
	return StarRow{Earned: earned, Max: max}
}

// StarsFromPercentage переводит процент в ряд звезд: 100% - все max звезд
func StarsFromPercentage(p float64, max int) StarRow {
	if max <= 0 {
		max = DefaultMaxStars
	}
	return NewStarRow(Clamp(p)/Full*float64(max), max)
}

// Filled количество заполненных звезд
func (s StarRow) Filled() int {
	return int(math.Floor(s.Earned))
}

func (s StarRow) Stars() []Star {
	filled := s.Filled()
	stars := make([]Star, s.Max)
	for i := range stars {
		stars[i] = Star{Index: i, Filled: i < filled}
	}
	return stars
}
