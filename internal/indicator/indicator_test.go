package indicator

import (
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClamp(t *testing.T) {
	tests := []struct {
		name string
		in   float64
		want float64
	}{
		{"inside", 42.5, 42.5},
		{"lower bound", 0, 0},
		{"upper bound", 100, 100},
		{"negative", -15, 0},
		{"over", 250, 100},
		{"NaN", math.NaN(), 0},
		{"+Inf", math.Inf(1), 100},
		{"-Inf", math.Inf(-1), 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Clamp(tt.in))
		})
	}
}

// Для любого p из [0,100] заливка составляет p/100 полного размера
func TestFill_Proportional(t *testing.T) {
	for p := 0.0; p <= 100; p += 0.5 {
		assert.InDelta(t, p/100, NewBar(p).Fill(), 1e-12, "bar p=%v", p)
		assert.InDelta(t, p/100, NewRing(p).Fill(), 1e-12, "ring p=%v", p)
		assert.InDelta(t, p/100, Fill(StyleBar, p), 1e-12)
		assert.InDelta(t, p/100, Fill(StyleRing, p), 1e-12)
	}
}

func TestFill_Stars(t *testing.T) {
	assert.Equal(t, 0.0, Fill(StyleStars, 0))
	assert.Equal(t, 0.0, Fill(StyleStars, 19.9))
	assert.Equal(t, 0.2, Fill(StyleStars, 20))
	assert.Equal(t, 0.8, Fill(StyleStars, 99))
	assert.Equal(t, 1.0, Fill(StyleStars, 100))
}

func TestParseStyle(t *testing.T) {
	for _, s := range []string{"bar", "ring", "stars"} {
		style, err := ParseStyle(s)
		require.NoError(t, err)
		assert.Equal(t, Style(s), style)
	}

	_, err := ParseStyle("pie")
	assert.Error(t, err)
}

func TestFormatLength(t *testing.T) {
	assert.Equal(t, "0", FormatLength(0))
	assert.Equal(t, "45", FormatLength(45))
	assert.Equal(t, "196.04", FormatLength(196.0353815))
	assert.Equal(t, "0", FormatLength(math.NaN()))
	assert.Equal(t, "0", FormatLength(math.Inf(1)))
}

func TestBar(t *testing.T) {
	// панель удовлетворенности: ширины заливки совпадают с входными процентами
	for _, p := range []float64{45, 25, 15, 10, 5} {
		bar := NewBar(p)
		assert.Equal(t, p, bar.Percentage)
		assert.Equal(t, FormatLength(p)+"%", bar.Width())
		assert.InDelta(t, p*2, bar.FillWidth(200), 1e-9)
	}

	assert.Equal(t, "100%", NewBar(140).Width())
	assert.Equal(t, "0%", NewBar(-3).Width())
}

func TestRing_SeventyEightPercent(t *testing.T) {
	ring := NewRing(78)

	circumference := 2 * math.Pi * DefaultRingRadius
	assert.InDelta(t, circumference, ring.Circumference(), 1e-9)
	assert.InDelta(t, 0.78*circumference, ring.DashLength(), 1e-9)
	assert.InDelta(t, 0.22*circumference, ring.GapLength(), 1e-9)
	assert.Equal(t, "196.04 55.29", ring.DashArray())
}

func TestRing_Geometry(t *testing.T) {
	ring := NewRing(50)

	assert.Equal(t, 88.0, ring.Size())
	assert.Equal(t, 44.0, ring.Center())
	assert.Equal(t, "0 0 88 88", ring.ViewBox())
	assert.Equal(t, "rotate(-90 44 44)", ring.Transform())
}

func TestRing_Bounds(t *testing.T) {
	assert.Equal(t, "0 251.33", NewRing(0).DashArray())
	assert.Equal(t, "251.33 0", NewRing(100).DashArray())
	assert.Equal(t, "251.33 0", NewRing(180).DashArray())
	assert.Equal(t, "0 251.33", NewRing(math.NaN()).DashArray())
}

func TestNewRingWithRadius_Defaults(t *testing.T) {
	ring := NewRingWithRadius(10, 0, -1)
	assert.Equal(t, DefaultRingRadius, ring.Radius)
	assert.Equal(t, 0.0, ring.StrokeWidth)
}

func TestStarRow(t *testing.T) {
	// количество заполненных звезд равно s и не зависит от процента
	for s := 1; s <= 5; s++ {
		row := NewStarRow(float64(s), DefaultMaxStars)
		assert.Equal(t, s, row.Filled())

		filled := 0
		for _, star := range row.Stars() {
			if star.Filled {
				filled++
			}
		}
		assert.Equal(t, s, filled)
	}
}

func TestStarRow_Stars(t *testing.T) {
	got := NewStarRow(2.7, 4).Stars()
	want := []Star{
		{Index: 0, Filled: true},
		{Index: 1, Filled: true},
		{Index: 2, Filled: false},
		{Index: 3, Filled: false},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Stars() mismatch (-want +got):\n%s", diff)
	}
}

func TestStarRow_Bounds(t *testing.T) {
	assert.Equal(t, 0, NewStarRow(-2, 5).Filled())
	assert.Equal(t, 5, NewStarRow(9, 5).Filled())
	assert.Equal(t, 0, NewStarRow(math.NaN(), 5).Filled())
	assert.Equal(t, DefaultMaxStars, NewStarRow(3, 0).Max)

	assert.Equal(t, 3, StarsFromPercentage(60, 5).Filled())
	assert.Equal(t, 2, StarsFromPercentage(59.9, 5).Filled())
	assert.Equal(t, 5, StarsFromPercentage(100, 0).Filled())
}

func BenchmarkRing_DashArray(b *testing.B) {
	ring := NewRing(78)
	for i := 0; i < b.N; i++ {
		_ = ring.DashArray()
	}
}
