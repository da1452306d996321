package geometry

import (
	"math"

	"github.com/df07/go-phong-raytracer/pkg/core"
	"github.com/df07/go-phong-raytracer/pkg/material"
)

// Sphere is a unit sphere centered at the local origin
type Sphere struct {
	base
}

// NewSphere creates a sphere. It fails when the transform is not invertible.
func NewSphere(transform core.Matrix4x4, mat material.Material) (*Sphere, error) {
	b, err := newBase("sphere", transform, mat)
	if err != nil {
		return nil, err
	}
	return &Sphere{base: b}, nil
}

// MustSphere is NewSphere for authored scenes; it panics on a singular transform
func MustSphere(transform core.Matrix4x4, mat material.Material) *Sphere {
	s, err := NewSphere(transform, mat)
	if err != nil {
		panic(err)
	}
	return s
}

// DefaultSphere returns a unit sphere at the origin with the default material
func DefaultSphere() *Sphere {
	return MustSphere(core.Identity(), material.Default())
}

// Intersect tests a world-space ray against the sphere
func (s *Sphere) Intersect(ray core.Ray) []Intersection { return intersect(s, ray) }

// NormalAt returns the world-space normal at point
func (s *Sphere) NormalAt(point core.Point) core.Vector { return normalAt(s, point) }

func (s *Sphere) localIntersect(ray core.Ray) []float64 {
	// Vector from sphere center to ray origin
	sphereToRay := ray.Origin.Subtract(core.Origin())

	// Quadratic equation coefficients: at² + bt + c = 0
	a := ray.Direction.Dot(ray.Direction)
	b := 2 * ray.Direction.Dot(sphereToRay)
	c := sphereToRay.Dot(sphereToRay) - 1

	discriminant := b*b - 4*a*c
	if discriminant < 0 {
		return nil
	}

	sqrtD := math.Sqrt(discriminant)
	t1 := (-b - sqrtD) / (2 * a)
	t2 := (-b + sqrtD) / (2 * a)
	return []float64{t1, t2}
}

func (s *Sphere) localNormalAt(point core.Point) core.Vector {
	return point.Subtract(core.Origin())
}
