package geometry

import (
	"fmt"

	"github.com/df07/go-phong-raytracer/pkg/core"
	"github.com/df07/go-phong-raytracer/pkg/material"
)

// Shape is the closed set of renderable surfaces: *Sphere and *Plane.
// The unexported methods keep other packages from adding variants.
type Shape interface {
	Transform() core.Matrix4x4
	Inverse() core.Matrix4x4
	Material() material.Material

	// Intersect returns every intersection of a world-space ray with the shape,
	// including those behind the ray origin
	Intersect(ray core.Ray) []Intersection

	// NormalAt returns the unit world-space normal at a world-space point
	NormalAt(point core.Point) core.Vector

	localIntersect(ray core.Ray) []float64
	localNormalAt(point core.Point) core.Vector
}

// base carries the transform, its cached inverse and the material shared by
// every shape variant
type base struct {
	transform core.Matrix4x4
	inverse   core.Matrix4x4
	material  material.Material
}

func newBase(kind string, transform core.Matrix4x4, mat material.Material) (base, error) {
	inverse, err := transform.Inverse()
	if err != nil {
		return base{}, fmt.Errorf("%s transform: %w", kind, err)
	}
	return base{transform: transform, inverse: inverse, material: mat}, nil
}

func (b *base) Transform() core.Matrix4x4   { return b.transform }
func (b *base) Inverse() core.Matrix4x4     { return b.inverse }
func (b *base) Material() material.Material { return b.material }

// intersect moves the ray into local space and wraps the local t values
func intersect(s Shape, ray core.Ray) []Intersection {
	local := ray.Transform(s.Inverse())
	ts := s.localIntersect(local)
	if len(ts) == 0 {
		return nil
	}
	xs := make([]Intersection, len(ts))
	for i, t := range ts {
		xs[i] = NewIntersection(t, s)
	}
	return xs
}

// normalAt applies the inverse-transpose rule to the local normal
func normalAt(s Shape, point core.Point) core.Vector {
	inv := s.Inverse()
	localPoint := inv.MultiplyPoint(point)
	localNormal := s.localNormalAt(localPoint)
	// MultiplyVector drops w, which the translation row of the transpose would pollute
	worldNormal := inv.Transpose().MultiplyVector(localNormal)
	return worldNormal.Normalize()
}
