package loaders

import (
	"encoding/json"
	"fmt"
	"io"
	"math"
	"os"

	"github.com/df07/go-phong-raytracer/pkg/core"
	"github.com/df07/go-phong-raytracer/pkg/geometry"
	"github.com/df07/go-phong-raytracer/pkg/lights"
	"github.com/df07/go-phong-raytracer/pkg/material"
	"github.com/df07/go-phong-raytracer/pkg/renderer"
	"github.com/df07/go-phong-raytracer/pkg/world"
)

// SceneFile is the JSON scene description. Angles are in degrees.
type SceneFile struct {
	Name        string       `json:"name"`
	Description string       `json:"description"`
	Group       string       `json:"group"`
	ShadowMode  string       `json:"shadow_mode"` // "all" (default) or "per-light"
	Camera      CameraSpec   `json:"camera"`
	Lights      []LightSpec  `json:"lights"`
	Objects     []ObjectSpec `json:"objects"`
}

// CameraSpec places the camera with a view transform
type CameraSpec struct {
	From [3]float64 `json:"from"`
	To   [3]float64 `json:"to"`
	Up   [3]float64 `json:"up"`
	FOV  float64    `json:"fov"`
}

// LightSpec describes a point light
type LightSpec struct {
	Position  [3]float64 `json:"position"`
	Intensity [3]float64 `json:"intensity"`
}

// ObjectSpec describes one shape
type ObjectSpec struct {
	Type      string          `json:"type"` // "sphere" or "plane"
	Transform []TransformSpec `json:"transform"`
	Material  *MaterialSpec   `json:"material"`
}

// TransformSpec is one step of an object transform. Steps apply in list
// order, each on top of the previous ones.
type TransformSpec struct {
	Op   string    `json:"op"` // translate, scale, rotate_x, rotate_y, rotate_z, shear
	Args []float64 `json:"args"`
}

// MaterialSpec overrides fields of the default material
type MaterialSpec struct {
	Color     *[3]float64  `json:"color"`
	Ambient   *float64     `json:"ambient"`
	Diffuse   *float64     `json:"diffuse"`
	Specular  *float64     `json:"specular"`
	Shininess *float64     `json:"shininess"`
	Pattern   *PatternSpec `json:"pattern"`
}

// PatternSpec describes a surface pattern
type PatternSpec struct {
	Type string     `json:"type"` // "stripe"
	A    [3]float64 `json:"a"`
	B    [3]float64 `json:"b"`
}

// LoadScene reads a JSON scene file
func LoadScene(filename string) (*SceneFile, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open scene file: %w", err)
	}
	defer file.Close()

	scene, err := ParseScene(file)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}
	return scene, nil
}

// ParseScene decodes a JSON scene description. Unknown fields are rejected.
func ParseScene(r io.Reader) (*SceneFile, error) {
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()

	scene := &SceneFile{
		Camera: CameraSpec{Up: [3]float64{0, 1, 0}, FOV: 60},
	}
	if err := dec.Decode(scene); err != nil {
		return nil, fmt.Errorf("failed to decode scene: %w", err)
	}
	return scene, nil
}

// Builder converts the description into a world builder. Every shape is
// validated, so a singular transform is reported here rather than at render time.
func (s *SceneFile) Builder() (*world.Builder, error) {
	mode, ok := world.ParseShadowMode(s.ShadowMode)
	if !ok {
		return nil, fmt.Errorf("unknown shadow mode %q", s.ShadowMode)
	}
	b := world.NewBuilder().WithShadowMode(mode)

	for _, l := range s.Lights {
		b.AddLight(lights.NewPointLight(toPoint(l.Position), toColor(l.Intensity)))
	}

	for i, obj := range s.Objects {
		shape, err := obj.build()
		if err != nil {
			return nil, fmt.Errorf("object %d: %w", i, err)
		}
		b.AddObject(shape)
	}
	return b, nil
}

// NewCamera builds a camera for the given image size
func (s *SceneFile) NewCamera(width, height int) (*renderer.Camera, error) {
	c := s.Camera
	view := core.ViewTransform(toPoint(c.From), toPoint(c.To), toVector(c.Up))
	return renderer.NewCamera(width, height, radians(c.FOV), view)
}

func (o ObjectSpec) build() (geometry.Shape, error) {
	transform, err := BuildTransform(o.Transform)
	if err != nil {
		return nil, err
	}
	mat, err := o.Material.build()
	if err != nil {
		return nil, err
	}

	switch o.Type {
	case "sphere":
		return geometry.NewSphere(transform, mat)
	case "plane":
		return geometry.NewPlane(transform, mat)
	default:
		return nil, fmt.Errorf("unknown object type %q", o.Type)
	}
}

// BuildTransform folds transform steps into one matrix using the fluent
// builders, so the first step is applied to the object first
func BuildTransform(steps []TransformSpec) (core.Matrix4x4, error) {
	m := core.Identity()
	for _, step := range steps {
		want := 3
		switch step.Op {
		case "rotate_x", "rotate_y", "rotate_z":
			want = 1
		case "shear":
			want = 6
		}
		if len(step.Args) != want {
			return m, fmt.Errorf("transform %q takes %d arguments, got %d", step.Op, want, len(step.Args))
		}

		a := step.Args
		switch step.Op {
		case "translate":
			m = m.Translate(a[0], a[1], a[2])
		case "scale":
			m = m.Scale(a[0], a[1], a[2])
		case "rotate_x":
			m = m.RotateX(radians(a[0]))
		case "rotate_y":
			m = m.RotateY(radians(a[0]))
		case "rotate_z":
			m = m.RotateZ(radians(a[0]))
		case "shear":
			m = m.Shear(a[0], a[1], a[2], a[3], a[4], a[5])
		default:
			return m, fmt.Errorf("unknown transform %q", step.Op)
		}
	}
	return m, nil
}

func (m *MaterialSpec) build() (material.Material, error) {
	mat := material.Default()
	if m == nil {
		return mat, nil
	}
	if m.Color != nil {
		mat.Color = toColor(*m.Color)
	}
	if m.Ambient != nil {
		mat.Ambient = *m.Ambient
	}
	if m.Diffuse != nil {
		mat.Diffuse = *m.Diffuse
	}
	if m.Specular != nil {
		mat.Specular = *m.Specular
	}
	if m.Shininess != nil {
		mat.Shininess = *m.Shininess
	}
	if m.Pattern != nil {
		if m.Pattern.Type != "stripe" {
			return mat, fmt.Errorf("unknown pattern type %q", m.Pattern.Type)
		}
		mat.Pattern = material.NewStripePattern(toColor(m.Pattern.A), toColor(m.Pattern.B))
	}
	return mat, nil
}

func toPoint(v [3]float64) core.Point   { return core.NewPoint(v[0], v[1], v[2]) }
func toVector(v [3]float64) core.Vector { return core.NewVector(v[0], v[1], v[2]) }
func toColor(v [3]float64) core.Color   { return core.NewColor(v[0], v[1], v[2]) }

func radians(degrees float64) float64 { return degrees * math.Pi / 180 }
