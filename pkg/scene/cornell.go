package scene

import (
	"math"

	"github.com/df07/go-phong-raytracer/pkg/core"
	"github.com/df07/go-phong-raytracer/pkg/geometry"
	"github.com/df07/go-phong-raytracer/pkg/lights"
	"github.com/df07/go-phong-raytracer/pkg/material"
	"github.com/df07/go-phong-raytracer/pkg/world"
)

const halfPi = math.Pi / 2

// wallMaterial is a matte material of the given color
func wallMaterial(c core.Color) material.Material {
	m := material.Default()
	m.Color = c
	m.Specular = 0
	return m
}

// sphereMaterial is a slightly glossy material of the given color
func sphereMaterial(c core.Color) material.Material {
	m := material.Default()
	m.Color = c
	m.Diffuse = 0.7
	m.Specular = 0.3
	return m
}

// NewCornellBuilder creates a box of planes, red on the left and blue on the
// right, open toward the camera, with three spheres and a light under the ceiling
func NewCornellBuilder() *world.Builder {
	white := wallMaterial(core.White())

	floor := geometry.MustPlane(core.Identity(), white)
	leftWall := geometry.MustPlane(core.RotationZ(halfPi).Translate(-3, 0, 0), wallMaterial(core.Red()))
	rightWall := geometry.MustPlane(core.RotationZ(halfPi).Translate(3, 0, 0), wallMaterial(core.Blue()))
	backWall := geometry.MustPlane(core.RotationX(halfPi).Translate(0, 0, 6), white)
	ceiling := geometry.MustPlane(core.Translation(0, 5, 0), white)

	middle := geometry.MustSphere(core.Translation(-0.5, 1, 0.5), sphereMaterial(core.NewColor(0.1, 1, 0.5)))
	right := geometry.MustSphere(core.Scaling(0.5, 0.5, 0.5).Translate(1.5, 0.5, -0.5), sphereMaterial(core.NewColor(0.5, 1, 0.1)))
	left := geometry.MustSphere(core.Scaling(0.33, 0.33, 0.33).Translate(-1.5, 0.33, -0.75), sphereMaterial(core.NewColor(1, 0.8, 0.1)))

	return world.NewBuilder().
		AddLight(lights.NewPointLight(core.NewPoint(0, 4.2, 0), core.White())).
		AddObject(floor).
		AddObject(leftWall).
		AddObject(rightWall).
		AddObject(backWall).
		AddObject(ceiling).
		AddObject(middle).
		AddObject(right).
		AddObject(left)
}
