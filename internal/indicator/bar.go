package indicator

// Bar линейный индикатор: ширина заливки равна p% ширины трека
type Bar struct {
	Percentage float64
}

func NewBar(p float64) Bar {
	return Bar{Percentage: Clamp(p)}
}

// Fill доля заполнения трека
func (b Bar) Fill() float64 {
	return b.Percentage / Full
}

// Width значение CSS-свойства width для заливки, например "45%"
func (b Bar) Width() string {
	return FormatLength(b.Percentage) + "%"
}

// FillWidth ширина заливки в единицах трека заданной ширины
func (b Bar) FillWidth(track float64) float64 {
	return track * b.Fill()
}
