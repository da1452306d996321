package scene

import (
	"fmt"
	"math"
	"path/filepath"
	"strings"

	"github.com/df07/go-phong-raytracer/pkg/core"
	"github.com/df07/go-phong-raytracer/pkg/loaders"
	"github.com/df07/go-phong-raytracer/pkg/renderer"
	"github.com/df07/go-phong-raytracer/pkg/world"
)

// Scene pairs a finalized world with the camera that views it
type Scene struct {
	Name   string
	World  *world.World
	Camera *renderer.Camera
}

// Options selects the image size and an optional shadow mode override
type Options struct {
	Width      int
	Height     int
	ShadowMode string // "" keeps the scene's own mode
}

// DefaultOptions returns sensible default values
func DefaultOptions() Options {
	return Options{
		Width:  400,
		Height: 225, // 16:9 aspect ratio
	}
}

// viewSpec places a camera for a built-in scene
type viewSpec struct {
	from, to core.Point
	fov      float64
}

func (v viewSpec) camera(width, height int) (*renderer.Camera, error) {
	return renderer.NewCamera(width, height, v.fov, core.ViewTransform(v.from, v.to, core.Up()))
}

type builtin struct {
	info  SceneInfo
	build func() *world.Builder
	view  viewSpec
}

var builtins = []builtin{
	{
		info: SceneInfo{
			ID:          "default",
			Name:        "Default World",
			Description: "Light green sphere around a smaller white one",
		},
		build: world.DefaultBuilder,
		view:  viewSpec{from: core.NewPoint(0, 0, -5), to: core.Origin(), fov: math.Pi / 3},
	},
	{
		info: SceneInfo{
			ID:          "cornell",
			Name:        "Cornell Box",
			Description: "Red and blue walls around three spheres lit from above",
		},
		build: NewCornellBuilder,
		view:  viewSpec{from: core.NewPoint(0, 2.5, -4.5), to: core.NewPoint(0, 1.5, 0), fov: math.Pi / 2.5},
	},
	{
		info: SceneInfo{
			ID:          "spheres",
			Name:        "Three Spheres",
			Description: "Three spheres on a striped floor under two lights",
		},
		build: NewSpheresBuilder,
		view:  viewSpec{from: core.NewPoint(0, 1.5, -5), to: core.NewPoint(0, 1, 0), fov: math.Pi / 3},
	},
}

// Create builds the scene with the given ID: a built-in name, "file:<name>"
// for a file under the scenes directory, or a path to a .json file
func Create(id string, opts Options) (*Scene, error) {
	if opts.Width <= 0 || opts.Height <= 0 {
		return nil, fmt.Errorf("image size %dx%d must be positive", opts.Width, opts.Height)
	}

	var (
		name    string
		builder *world.Builder
		camera  *renderer.Camera
		err     error
	)

	switch {
	case strings.HasPrefix(id, filePrefix) || strings.HasSuffix(id, ".json"):
		path := id
		if strings.HasPrefix(id, filePrefix) {
			if path, err = findSceneFile(strings.TrimPrefix(id, filePrefix)); err != nil {
				return nil, err
			}
		}
		file, err := loaders.LoadScene(path)
		if err != nil {
			return nil, err
		}
		if builder, err = file.Builder(); err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		if camera, err = file.NewCamera(opts.Width, opts.Height); err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		name = file.Name
		if name == "" {
			name = titleCase(strings.TrimSuffix(filepath.Base(path), filepath.Ext(path)))
		}

	default:
		b, ok := findBuiltin(id)
		if !ok {
			return nil, fmt.Errorf("unknown scene %q", id)
		}
		builder = b.build()
		if camera, err = b.view.camera(opts.Width, opts.Height); err != nil {
			return nil, err
		}
		name = b.info.Name
	}

	if opts.ShadowMode != "" {
		mode, ok := world.ParseShadowMode(opts.ShadowMode)
		if !ok {
			return nil, fmt.Errorf("unknown shadow mode %q", opts.ShadowMode)
		}
		builder.WithShadowMode(mode)
	}

	return &Scene{Name: name, World: builder.Build(), Camera: camera}, nil
}

// IsBuiltin reports whether id names a scene compiled into the program
func IsBuiltin(id string) bool {
	_, ok := findBuiltin(id)
	return ok
}

// IsFileID reports whether id has the file:<name> form
func IsFileID(id string) bool {
	return strings.HasPrefix(id, filePrefix)
}

func findBuiltin(id string) (builtin, bool) {
	for _, b := range builtins {
		if b.info.ID == id {
			return b, true
		}
	}
	return builtin{}, false
}
