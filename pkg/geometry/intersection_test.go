package geometry

import (
	"math"
	"testing"

	"github.com/df07/go-phong-raytracer/pkg/core"
)

func TestHit(t *testing.T) {
	s := DefaultSphere()
	tests := []struct {
		name    string
		ts      []float64
		wantOK  bool
		wantT   float64
		wantIdx int
	}{
		{"all positive", []float64{1, 2}, true, 1, 0},
		{"some negative", []float64{-1, 1}, true, 1, 1},
		{"all negative", []float64{-2, -1}, false, 0, -1},
		{"unsorted", []float64{5, 7, -3, 2}, true, 2, 3},
		{"zero counts", []float64{0, 3}, true, 0, 0},
		{"empty", nil, false, 0, -1},
		{"ties keep first", []float64{4, 4}, true, 4, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			xs := make([]Intersection, len(tt.ts))
			for i, v := range tt.ts {
				xs[i] = NewIntersection(v, s)
			}
			hit, ok := Hit(xs)
			if ok != tt.wantOK {
				t.Fatalf("Hit ok = %v, want %v", ok, tt.wantOK)
			}
			if !ok {
				return
			}
			if hit.T != tt.wantT {
				t.Errorf("Hit t = %f, want %f", hit.T, tt.wantT)
			}
			if hit != xs[tt.wantIdx] {
				t.Errorf("Hit returned a different intersection than xs[%d]", tt.wantIdx)
			}
		})
	}
}

func TestSortIntersections(t *testing.T) {
	a := DefaultSphere()
	b := DefaultSphere()
	xs := []Intersection{
		NewIntersection(6, a),
		NewIntersection(-1, a),
		NewIntersection(4, a),
		NewIntersection(4, b),
	}
	SortIntersections(xs)

	want := []float64{-1, 4, 4, 6}
	for i, x := range xs {
		if x.T != want[i] {
			t.Errorf("xs[%d].T = %f, want %f", i, x.T, want[i])
		}
	}
	if xs[1].Shape != Shape(a) || xs[2].Shape != Shape(b) {
		t.Error("Sort should be stable for equal t")
	}
}

func TestNewIntersection_NaNPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("Expected panic for NaN t")
		}
	}()
	NewIntersection(math.NaN(), DefaultSphere())
}

func TestPrepareComputations(t *testing.T) {
	shape := DefaultSphere()

	t.Run("outside", func(t *testing.T) {
		ray := core.NewRay(core.NewPoint(0, 0, -5), core.NewVector(0, 0, 1))
		comps := PrepareComputations(NewIntersection(4, shape), ray)

		if comps.T != 4 || comps.Shape != Shape(shape) {
			t.Errorf("Unexpected t/shape: %f %v", comps.T, comps.Shape)
		}
		if !comps.Point.Equal(core.NewPoint(0, 0, -1)) {
			t.Errorf("Point = %v", comps.Point)
		}
		if !comps.Eye.Equal(core.NewVector(0, 0, -1)) {
			t.Errorf("Eye = %v", comps.Eye)
		}
		if !comps.Normal.Equal(core.NewVector(0, 0, -1)) {
			t.Errorf("Normal = %v", comps.Normal)
		}
		if comps.Inside {
			t.Error("Hit should be outside")
		}
	})

	t.Run("inside", func(t *testing.T) {
		ray := core.NewRay(core.NewPoint(0, 0, 0), core.NewVector(0, 0, 1))
		comps := PrepareComputations(NewIntersection(1, shape), ray)

		if !comps.Point.Equal(core.NewPoint(0, 0, 1)) {
			t.Errorf("Point = %v", comps.Point)
		}
		if !comps.Eye.Equal(core.NewVector(0, 0, -1)) {
			t.Errorf("Eye = %v", comps.Eye)
		}
		if !comps.Inside {
			t.Error("Hit should be inside")
		}
		// flipped to face the eye
		if !comps.Normal.Equal(core.NewVector(0, 0, -1)) {
			t.Errorf("Normal = %v", comps.Normal)
		}
	})

	t.Run("over point", func(t *testing.T) {
		ray := core.NewRay(core.NewPoint(0, 0, -5), core.NewVector(0, 0, 1))
		s := MustSphere(core.Translation(0, 0, 1), shape.Material())
		comps := PrepareComputations(NewIntersection(5, s), ray)

		if comps.OverPoint.Z >= -core.Epsilon/2 {
			t.Errorf("OverPoint.Z = %g, want < %g", comps.OverPoint.Z, -core.Epsilon/2)
		}
		if comps.Point.Z <= comps.OverPoint.Z {
			t.Errorf("OverPoint should sit above the surface: point %v over %v", comps.Point, comps.OverPoint)
		}
	})
}
