package geometry

import (
	"math"

	"github.com/df07/go-phong-raytracer/pkg/core"
	"github.com/df07/go-phong-raytracer/pkg/material"
)

// Plane is the local XZ plane with normal +Y
type Plane struct {
	base
}

// NewPlane creates a plane. It fails when the transform is not invertible.
func NewPlane(transform core.Matrix4x4, mat material.Material) (*Plane, error) {
	b, err := newBase("plane", transform, mat)
	if err != nil {
		return nil, err
	}
	return &Plane{base: b}, nil
}

// MustPlane is NewPlane for authored scenes; it panics on a singular transform
func MustPlane(transform core.Matrix4x4, mat material.Material) *Plane {
	p, err := NewPlane(transform, mat)
	if err != nil {
		panic(err)
	}
	return p
}

// Intersect tests a world-space ray against the plane
func (p *Plane) Intersect(ray core.Ray) []Intersection { return intersect(p, ray) }

// NormalAt returns the world-space normal; constant for a given transform
func (p *Plane) NormalAt(point core.Point) core.Vector { return normalAt(p, point) }

func (p *Plane) localIntersect(ray core.Ray) []float64 {
	// Parallel or coplanar rays never hit
	if math.Abs(ray.Direction.Y) < core.Epsilon {
		return nil
	}
	return []float64{-ray.Origin.Y / ray.Direction.Y}
}

func (p *Plane) localNormalAt(core.Point) core.Vector {
	return core.NewVector(0, 1, 0)
}
