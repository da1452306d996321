package geometry

import "github.com/df07/go-phong-raytracer/pkg/core"

// Computations is the shading frame at a hit
type Computations struct {
	T      float64
	Shape  Shape
	Point  core.Point
	Eye    core.Vector
	Normal core.Vector // faces the eye
	Inside bool        // the ray started inside the shape

	// OverPoint sits just above the surface along Normal; shadow rays start here
	OverPoint core.Point
}

// PrepareComputations derives the shading frame for hit along ray
func PrepareComputations(hit Intersection, ray core.Ray) Computations {
	point := ray.Position(hit.T)
	eye := ray.Direction.Negate()
	normal := hit.Shape.NormalAt(point)

	inside := false
	if normal.Dot(eye) < 0 {
		inside = true
		normal = normal.Negate()
	}

	return Computations{
		T:         hit.T,
		Shape:     hit.Shape,
		Point:     point,
		Eye:       eye,
		Normal:    normal,
		Inside:    inside,
		OverPoint: point.Add(normal.Multiply(core.Epsilon)),
	}
}
