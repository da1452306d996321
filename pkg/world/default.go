package world

import (
	"github.com/df07/go-phong-raytracer/pkg/core"
	"github.com/df07/go-phong-raytracer/pkg/geometry"
	"github.com/df07/go-phong-raytracer/pkg/lights"
	"github.com/df07/go-phong-raytracer/pkg/material"
)

// DefaultBuilder returns a builder holding the reference scene: one white
// light at (-10, 10, -10), a unit sphere with a green-tinted matte material
// and a half-size sphere inside it
func DefaultBuilder() *Builder {
	outer := material.Default()
	outer.Color = core.NewColor(0.8, 1.0, 0.6)
	outer.Diffuse = 0.7
	outer.Specular = 0.2

	return NewBuilder().
		AddLight(lights.NewPointLight(core.NewPoint(-10, 10, -10), core.White())).
		AddObject(geometry.MustSphere(core.Identity(), outer)).
		AddObject(geometry.MustSphere(core.Scaling(0.5, 0.5, 0.5), material.Default()))
}
