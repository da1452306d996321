package geometry

import (
	"cmp"
	"fmt"
	"math"
	"slices"
)

// Intersection is a ray parameter t at which a ray meets a shape
type Intersection struct {
	T     float64
	Shape Shape
}

// NewIntersection records an intersection. A NaN t is a programming error and panics.
func NewIntersection(t float64, shape Shape) Intersection {
	if math.IsNaN(t) {
		panic(fmt.Sprintf("intersection with NaN t on %T", shape))
	}
	return Intersection{T: t, Shape: shape}
}

// SortIntersections orders intersections by ascending t in place.
// Equal t values keep their relative order.
func SortIntersections(xs []Intersection) {
	slices.SortStableFunc(xs, func(a, b Intersection) int {
		return cmp.Compare(a.T, b.T)
	})
}

// Hit returns the intersection with the smallest non-negative t. The input
// need not be sorted; among equal t values the earliest wins.
func Hit(xs []Intersection) (Intersection, bool) {
	best := -1
	for i, x := range xs {
		if x.T < 0 {
			continue
		}
		if best < 0 || x.T < xs[best].T {
			best = i
		}
	}
	if best < 0 {
		return Intersection{}, false
	}
	return xs[best], true
}
