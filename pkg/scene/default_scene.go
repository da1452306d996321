package scene

import (
	"github.com/df07/go-phong-raytracer/pkg/core"
	"github.com/df07/go-phong-raytracer/pkg/geometry"
	"github.com/df07/go-phong-raytracer/pkg/lights"
	"github.com/df07/go-phong-raytracer/pkg/material"
	"github.com/df07/go-phong-raytracer/pkg/world"
)

// NewSpheresBuilder creates three spheres of different sizes on a striped
// floor. A bright key light and a dim fill light make the shadow mode visible.
func NewSpheresBuilder() *world.Builder {
	floorMat := wallMaterial(core.White())
	floorMat.Pattern = material.NewStripePattern(core.NewColor(1, 0.9, 0.9), core.NewColor(0.6, 0.5, 0.5))
	floor := geometry.MustPlane(core.Identity(), floorMat)
	back := geometry.MustPlane(core.RotationX(halfPi).Translate(0, 0, 10), wallMaterial(core.NewColor(1, 0.9, 0.9)))

	middle := geometry.MustSphere(core.Translation(-0.5, 1, 0.5), sphereMaterial(core.NewColor(0.1, 1, 0.5)))
	right := geometry.MustSphere(core.Scaling(0.5, 0.5, 0.5).Translate(1.5, 0.5, -0.5), sphereMaterial(core.NewColor(0.5, 1, 0.1)))
	left := geometry.MustSphere(core.Scaling(0.33, 0.33, 0.33).Translate(-1.5, 0.33, -0.75), sphereMaterial(core.NewColor(1, 0.8, 0.1)))

	return world.NewBuilder().
		AddLight(lights.NewPointLight(core.NewPoint(-10, 10, -10), core.White())).
		AddLight(lights.NewPointLight(core.NewPoint(10, 10, -10), core.NewColor(0.3, 0.3, 0.3))).
		AddObject(floor).
		AddObject(back).
		AddObject(middle).
		AddObject(right).
		AddObject(left)
}
