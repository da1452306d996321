package lights

import "github.com/df07/go-phong-raytracer/pkg/core"

// PointLight is a singular light source with no size, so it casts hard
// shadows.
type PointLight struct {
	Position  core.Point
	Intensity core.Color
}

// NewPointLight creates a new point light
func NewPointLight(position core.Point, intensity core.Color) PointLight {
	return PointLight{Position: position, Intensity: intensity}
}

// Equal compares two lights within core.Epsilon
func (l PointLight) Equal(other PointLight) bool {
	return l.Position.Equal(other.Position) && l.Intensity.Equal(other.Intensity)
}
