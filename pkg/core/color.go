package core

// Color is a linear RGB color. Components are unbounded; clamping happens
// only when a color is quantized for output.
type Color struct {
	R, G, B float64
}

// NewColor creates a new Color
func NewColor(r, g, b float64) Color {
	return Color{R: r, G: g, B: b}
}

// Black returns (0, 0, 0)
func Black() Color { return Color{} }

// White returns (1, 1, 1)
func White() Color { return Color{1, 1, 1} }

// Red returns (1, 0, 0)
func Red() Color { return Color{1, 0, 0} }

// Green returns (0, 1, 0)
func Green() Color { return Color{0, 1, 0} }

// Blue returns (0, 0, 1)
func Blue() Color { return Color{0, 0, 1} }

// Add returns the sum of two colors
func (c Color) Add(other Color) Color {
	return Color{c.R + other.R, c.G + other.G, c.B + other.B}
}

// Subtract returns the difference of two colors
func (c Color) Subtract(other Color) Color {
	return Color{c.R - other.R, c.G - other.G, c.B - other.B}
}

// Multiply returns the color scaled by a scalar
func (c Color) Multiply(scalar float64) Color {
	return Color{c.R * scalar, c.G * scalar, c.B * scalar}
}

// MultiplyColor returns the component-wise (Hadamard) product of two colors
func (c Color) MultiplyColor(other Color) Color {
	return Color{c.R * other.R, c.G * other.G, c.B * other.B}
}

// Clamp returns the color with components clamped to [minVal, maxVal]
func (c Color) Clamp(minVal, maxVal float64) Color {
	return Color{
		R: max(minVal, min(maxVal, c.R)),
		G: max(minVal, min(maxVal, c.G)),
		B: max(minVal, min(maxVal, c.B)),
	}
}

// Luminance returns the perceptual luminance of the color
func (c Color) Luminance() float64 {
	return 0.299*c.R + 0.587*c.G + 0.114*c.B
}

// Equal compares two colors within Epsilon
func (c Color) Equal(other Color) bool {
	return FloatEqual(c.R, other.R) && FloatEqual(c.G, other.G) && FloatEqual(c.B, other.B)
}

// Round rounds every component to 5 decimal places
func (c Color) Round() Color {
	return Color{Round(c.R), Round(c.G), Round(c.B)}
}
