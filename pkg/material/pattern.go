package material

import (
	"math"

	"github.com/df07/go-phong-raytracer/pkg/core"
)

// Pattern supplies a surface color that varies with position
type Pattern interface {
	ColorAt(point core.Point) core.Color
	// Equal reports whether other is the same pattern within core.Epsilon
	Equal(other Pattern) bool
}

// StripePattern alternates between two colors along the X axis in unit-wide
// bands. It is constant in Y and Z.
type StripePattern struct {
	A, B core.Color
}

// NewStripePattern creates a new stripe pattern
func NewStripePattern(a, b core.Color) StripePattern {
	return StripePattern{A: a, B: b}
}

// Equal compares the stripe colors within core.Epsilon
func (s StripePattern) Equal(other Pattern) bool {
	o, ok := other.(StripePattern)
	return ok && s.A.Equal(o.A) && s.B.Equal(o.B)
}

// ColorAt returns A when floor(x) is even and B otherwise
func (s StripePattern) ColorAt(point core.Point) core.Color {
	if int(math.Floor(point.X))%2 == 0 {
		return s.A
	}
	return s.B
}
