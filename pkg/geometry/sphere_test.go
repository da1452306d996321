package geometry

import (
	"errors"
	"math"
	"testing"

	"github.com/df07/go-phong-raytracer/pkg/core"
	"github.com/df07/go-phong-raytracer/pkg/material"
)

func tValues(xs []Intersection) []float64 {
	ts := make([]float64, len(xs))
	for i, x := range xs {
		ts[i] = x.T
	}
	return ts
}

func TestSphere_Intersect(t *testing.T) {
	tests := []struct {
		name      string
		origin    core.Point
		direction core.Vector
		expected  []float64
	}{
		{"two points", core.NewPoint(0, 0, -5), core.NewVector(0, 0, 1), []float64{4, 6}},
		{"tangent", core.NewPoint(0, 1, -5), core.NewVector(0, 0, 1), []float64{5, 5}},
		{"miss", core.NewPoint(0, 2, -5), core.NewVector(0, 0, 1), nil},
		{"origin inside", core.NewPoint(0, 0, 0), core.NewVector(0, 0, 1), []float64{-1, 1}},
		{"sphere behind ray", core.NewPoint(0, 0, 5), core.NewVector(0, 0, 1), []float64{-6, -4}},
	}

	s := DefaultSphere()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			xs := s.Intersect(core.NewRay(tt.origin, tt.direction))
			got := tValues(xs)
			if len(got) != len(tt.expected) {
				t.Fatalf("Expected %d intersections, got %d (%v)", len(tt.expected), len(got), got)
			}
			for i := range got {
				if !core.FloatEqual(got[i], tt.expected[i]) {
					t.Errorf("xs[%d].T = %f, want %f", i, got[i], tt.expected[i])
				}
				if xs[i].Shape != Shape(s) {
					t.Errorf("xs[%d].Shape is not the intersected sphere", i)
				}
			}
		})
	}
}

func TestSphere_IntersectTransformed(t *testing.T) {
	ray := core.NewRay(core.NewPoint(0, 0, -5), core.NewVector(0, 0, 1))

	scaled := MustSphere(core.Scaling(2, 2, 2), material.Default())
	got := tValues(scaled.Intersect(ray))
	if len(got) != 2 || !core.FloatEqual(got[0], 3) || !core.FloatEqual(got[1], 7) {
		t.Errorf("Scaled sphere: expected [3 7], got %v", got)
	}

	translated := MustSphere(core.Translation(5, 0, 0), material.Default())
	if xs := translated.Intersect(ray); len(xs) != 0 {
		t.Errorf("Translated sphere: expected miss, got %v", tValues(xs))
	}
}

func TestSphere_NormalAt(t *testing.T) {
	third := math.Sqrt(3) / 3
	tests := []struct {
		name      string
		transform core.Matrix4x4
		point     core.Point
		expected  core.Vector
	}{
		{"x axis", core.Identity(), core.NewPoint(1, 0, 0), core.NewVector(1, 0, 0)},
		{"y axis", core.Identity(), core.NewPoint(0, 1, 0), core.NewVector(0, 1, 0)},
		{"z axis", core.Identity(), core.NewPoint(0, 0, 1), core.NewVector(0, 0, 1)},
		{"nonaxial", core.Identity(), core.NewPoint(third, third, third), core.NewVector(third, third, third)},
		{
			"translated",
			core.Translation(0, 1, 0),
			core.NewPoint(0, 1.70711, -0.70711),
			core.NewVector(0, 0.70711, -0.70711),
		},
		{
			"scaled and rotated",
			core.Scaling(1, 0.5, 1).Multiply(core.RotationZ(math.Pi / 5)),
			core.NewPoint(0, math.Sqrt2/2, -math.Sqrt2/2),
			core.NewVector(0, 0.97014, -0.24254),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := MustSphere(tt.transform, material.Default())
			n := s.NormalAt(tt.point)
			rounded := core.NewVector(core.Round(n.X), core.Round(n.Y), core.Round(n.Z))
			if !rounded.Equal(tt.expected) {
				t.Errorf("NormalAt(%v) = %v, want %v", tt.point, n, tt.expected)
			}
			if !core.FloatEqual(n.Length(), 1) {
				t.Errorf("Normal should be unit length, got %f", n.Length())
			}
		})
	}
}

func TestSphere_NormalPointsAwayFromCenter(t *testing.T) {
	s := DefaultSphere()
	for _, dir := range []core.Vector{
		core.NewVector(1, 2, 3),
		core.NewVector(-4, 0.5, 2),
		core.NewVector(0, -1, -1),
		core.NewVector(0.1, 0.2, -7),
	} {
		unit := dir.Normalize()
		point := core.Origin().Add(unit)
		n := s.NormalAt(point)
		if !core.FloatEqual(n.Length(), 1) {
			t.Errorf("Normal at %v not unit length: %f", point, n.Length())
		}
		if n.Dot(unit) <= 0 {
			t.Errorf("Normal at %v points toward the center: %v", point, n)
		}
	}
}

func TestSphere_Defaults(t *testing.T) {
	s := DefaultSphere()
	if !s.Transform().Equal(core.Identity()) {
		t.Errorf("Expected identity transform, got %v", s.Transform())
	}
	if !s.Material().Equal(material.Default()) {
		t.Errorf("Expected default material, got %+v", s.Material())
	}

	m := material.Default()
	m.Ambient = 1
	custom := MustSphere(core.Translation(2, 3, 4), m)
	if !custom.Material().Equal(m) {
		t.Errorf("Material not assigned: %+v", custom.Material())
	}
	if !custom.Inverse().Equal(core.Translation(-2, -3, -4)) {
		t.Errorf("Cached inverse incorrect: %v", custom.Inverse())
	}
}

func TestSphere_SingularTransform(t *testing.T) {
	_, err := NewSphere(core.Scaling(0, 1, 1), material.Default())
	if !errors.Is(err, core.ErrNotInvertible) {
		t.Fatalf("Expected ErrNotInvertible, got %v", err)
	}

	defer func() {
		if recover() == nil {
			t.Error("MustSphere should panic on a singular transform")
		}
	}()
	MustSphere(core.Scaling(1, 0, 1), material.Default())
}
