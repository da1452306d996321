package material

import (
	"math"

	"github.com/df07/go-phong-raytracer/pkg/core"
	"github.com/df07/go-phong-raytracer/pkg/lights"
)

// Material holds the Phong reflectance parameters of a surface
type Material struct {
	Color     core.Color
	Ambient   float64
	Diffuse   float64
	Specular  float64
	Shininess float64
	Pattern   Pattern // optional; replaces Color when set
}

// Default returns a white material with the standard Phong coefficients
func Default() Material {
	return Material{
		Color:     core.White(),
		Ambient:   0.1,
		Diffuse:   0.9,
		Specular:  0.9,
		Shininess: 200.0,
	}
}

// Equal compares two materials within core.Epsilon
func (m Material) Equal(other Material) bool {
	return m.Color.Equal(other.Color) &&
		core.FloatEqual(m.Ambient, other.Ambient) &&
		core.FloatEqual(m.Diffuse, other.Diffuse) &&
		core.FloatEqual(m.Specular, other.Specular) &&
		core.FloatEqual(m.Shininess, other.Shininess) &&
		patternsEqual(m.Pattern, other.Pattern)
}

func patternsEqual(a, b Pattern) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return a.Equal(b)
}

// ColorAt returns the surface color at a point
func (m Material) ColorAt(point core.Point) core.Color {
	if m.Pattern != nil {
		return m.Pattern.ColorAt(point)
	}
	return m.Color
}

// Lighting evaluates the Phong model for every light and sums the
// contributions. A single inShadow flag applies to all lights: when set,
// each light contributes only its ambient term.
func (m Material) Lighting(lightList []lights.PointLight, point core.Point, eye, normal core.Vector, inShadow bool) core.Color {
	result := core.Black()
	for _, light := range lightList {
		result = result.Add(m.lightContribution(light, point, eye, normal, inShadow))
	}
	return result
}

// LightingOccluded is Lighting with a separate shadow flag per light.
// occluded[i] applies to lightList[i]; missing entries count as lit.
func (m Material) LightingOccluded(lightList []lights.PointLight, point core.Point, eye, normal core.Vector, occluded []bool) core.Color {
	result := core.Black()
	for i, light := range lightList {
		inShadow := i < len(occluded) && occluded[i]
		result = result.Add(m.lightContribution(light, point, eye, normal, inShadow))
	}
	return result
}

// lightContribution is the Phong term for one light
func (m Material) lightContribution(light lights.PointLight, point core.Point, eye, normal core.Vector, inShadow bool) core.Color {
	effectiveColor := m.ColorAt(point).MultiplyColor(light.Intensity)
	ambient := effectiveColor.Multiply(m.Ambient)
	if inShadow {
		return ambient
	}

	lightVector := light.Position.Subtract(point).Normalize()

	// cosine between light and normal; negative means the light is behind the surface
	lightDotNormal := lightVector.Dot(normal)
	if lightDotNormal < 0 {
		return ambient
	}

	diffuse := effectiveColor.Multiply(m.Diffuse * lightDotNormal)

	reflectVector := lightVector.Negate().Reflect(normal)
	reflectDotEye := reflectVector.Dot(eye)
	if reflectDotEye <= 0 {
		return ambient.Add(diffuse)
	}

	factor := math.Pow(reflectDotEye, m.Shininess)
	specular := light.Intensity.Multiply(m.Specular * factor)
	return ambient.Add(diffuse).Add(specular)
}
