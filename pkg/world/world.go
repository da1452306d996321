package world

import (
	"github.com/df07/go-phong-raytracer/pkg/core"
	"github.com/df07/go-phong-raytracer/pkg/geometry"
	"github.com/df07/go-phong-raytracer/pkg/lights"
)

// ShadowMode selects how occlusion from several lights affects shading
type ShadowMode int

const (
	// ShadowAllLights treats a point as shadowed only when every light is
	// occluded, and then keeps only ambient terms for all lights
	ShadowAllLights ShadowMode = iota
	// ShadowPerLight suppresses diffuse and specular only for the lights
	// that are actually occluded
	ShadowPerLight
)

// String returns the flag name of the mode
func (m ShadowMode) String() string {
	switch m {
	case ShadowAllLights:
		return "all"
	case ShadowPerLight:
		return "per-light"
	default:
		return "unknown"
	}
}

// ParseShadowMode parses the value produced by String
func ParseShadowMode(s string) (ShadowMode, bool) {
	switch s {
	case "all", "":
		return ShadowAllLights, true
	case "per-light":
		return ShadowPerLight, true
	}
	return ShadowAllLights, false
}

// Builder accumulates lights and objects. Call Build to get a World.
type Builder struct {
	lights     []lights.PointLight
	objects    []geometry.Shape
	shadowMode ShadowMode
}

// NewBuilder returns an empty builder
func NewBuilder() *Builder {
	return &Builder{}
}

// AddLight appends a light
func (b *Builder) AddLight(light lights.PointLight) *Builder {
	b.lights = append(b.lights, light)
	return b
}

// AddObject appends a shape
func (b *Builder) AddObject(shape geometry.Shape) *Builder {
	b.objects = append(b.objects, shape)
	return b
}

// ResetLights drops every light added so far
func (b *Builder) ResetLights() *Builder {
	b.lights = nil
	return b
}

// WithShadowMode sets the occlusion rule for the built world
func (b *Builder) WithShadowMode(mode ShadowMode) *Builder {
	b.shadowMode = mode
	return b
}

// Build finalizes the scene. The builder may keep being used; later changes
// do not affect worlds already built.
func (b *Builder) Build() *World {
	return &World{
		lights:     append([]lights.PointLight(nil), b.lights...),
		objects:    append([]geometry.Shape(nil), b.objects...),
		shadowMode: b.shadowMode,
	}
}

// World is a finalized, read-only scene. All methods are safe for
// concurrent use.
type World struct {
	lights     []lights.PointLight
	objects    []geometry.Shape
	shadowMode ShadowMode
}

// Lights returns a copy of the scene lights
func (w *World) Lights() []lights.PointLight {
	return append([]lights.PointLight(nil), w.lights...)
}

// Objects returns a copy of the scene shapes
func (w *World) Objects() []geometry.Shape {
	return append([]geometry.Shape(nil), w.objects...)
}

// ShadowMode returns the occlusion rule in effect
func (w *World) ShadowMode() ShadowMode {
	return w.shadowMode
}

// Intersect returns every intersection of ray with every object, sorted by t
func (w *World) Intersect(ray core.Ray) []geometry.Intersection {
	var xs []geometry.Intersection
	for _, obj := range w.objects {
		xs = append(xs, obj.Intersect(ray)...)
	}
	geometry.SortIntersections(xs)
	return xs
}

// occluded reports whether something lies between point and light
func (w *World) occluded(point core.Point, light lights.PointLight) bool {
	toLight := light.Position.Subtract(point)
	distance := toLight.Length()
	ray := core.NewRay(point, toLight.Normalize())

	hit, ok := geometry.Hit(w.Intersect(ray))
	return ok && hit.T < distance
}

// IsShadowed reports whether point is occluded from every light. A world
// without lights never shadows.
func (w *World) IsShadowed(point core.Point) bool {
	if len(w.lights) == 0 {
		return false
	}
	for _, light := range w.lights {
		if !w.occluded(point, light) {
			return false
		}
	}
	return true
}

// OccludedLights reports occlusion separately for each light, in light order
func (w *World) OccludedLights(point core.Point) []bool {
	occluded := make([]bool, len(w.lights))
	for i, light := range w.lights {
		occluded[i] = w.occluded(point, light)
	}
	return occluded
}

// ShadeHit colors a prepared hit using the world lights
func (w *World) ShadeHit(comps geometry.Computations) core.Color {
	mat := comps.Shape.Material()
	if w.shadowMode == ShadowPerLight {
		return mat.LightingOccluded(w.lights, comps.OverPoint, comps.Eye, comps.Normal, w.OccludedLights(comps.OverPoint))
	}
	return mat.Lighting(w.lights, comps.OverPoint, comps.Eye, comps.Normal, w.IsShadowed(comps.OverPoint))
}

// ColorAt returns the color seen along ray, or black when nothing is hit
func (w *World) ColorAt(ray core.Ray) core.Color {
	hit, ok := geometry.Hit(w.Intersect(ray))
	if !ok {
		return core.Black()
	}
	return w.ShadeHit(geometry.PrepareComputations(hit, ray))
}
