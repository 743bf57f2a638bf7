package common

// Viewport maps world coordinates (y up) onto screen pixels (y down). Top is
// the pixel row where the world's y max is drawn, leaving room for the
// toolbar above it.
type Viewport struct {
	XMin, YMax float64
	Top        float64
}

func (v Viewport) ToScreen(x, y float64) (float32, float32) {
	return float32(x - v.XMin), float32(v.Top + (v.YMax - y))
}
