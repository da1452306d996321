package renderer

import (
	"fmt"
	"math"
	"runtime"

	"github.com/df07/go-phong-raytracer/pkg/canvas"
	"github.com/df07/go-phong-raytracer/pkg/core"
	"golang.org/x/sync/errgroup"
)

// Shader turns a ray into a color. *world.World implements it.
type Shader interface {
	ColorAt(ray core.Ray) core.Color
}

// Pixel addresses one pixel of the image
type Pixel struct {
	X, Y int
}

// PixelColor is a shaded pixel
type PixelColor struct {
	X, Y  int
	Color core.Color
}

// Camera maps pixels to world-space rays. The camera looks toward -z in its
// own space; transform is the view transform from world to camera space.
type Camera struct {
	width, height int
	fov           float64
	transform     core.Matrix4x4
	inverse       core.Matrix4x4

	halfWidth  float64
	halfHeight float64
	pixelSize  float64
}

// NewCamera creates a camera. It fails when the image is empty or the
// transform is not invertible.
func NewCamera(width, height int, fov float64, transform core.Matrix4x4) (*Camera, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("camera size %dx%d must be positive", width, height)
	}
	inverse, err := transform.Inverse()
	if err != nil {
		return nil, fmt.Errorf("camera transform: %w", err)
	}

	c := &Camera{
		width:     width,
		height:    height,
		fov:       fov,
		transform: transform,
		inverse:   inverse,
	}

	halfView := math.Tan(fov / 2)
	aspect := float64(width) / float64(height)
	if aspect >= 1 {
		c.halfWidth = halfView
		c.halfHeight = halfView / aspect
	} else {
		c.halfWidth = halfView * aspect
		c.halfHeight = halfView
	}
	c.pixelSize = c.halfWidth * 2 / float64(width)

	return c, nil
}

// MustCamera is NewCamera for authored scenes; it panics on error
func MustCamera(width, height int, fov float64, transform core.Matrix4x4) *Camera {
	c, err := NewCamera(width, height, fov, transform)
	if err != nil {
		panic(err)
	}
	return c
}

func (c *Camera) Width() int                { return c.width }
func (c *Camera) Height() int               { return c.height }
func (c *Camera) FieldOfView() float64      { return c.fov }
func (c *Camera) Transform() core.Matrix4x4 { return c.transform }
func (c *Camera) PixelSize() float64        { return c.pixelSize }

// RayForPixel returns the ray from the camera through the center of pixel (x, y)
func (c *Camera) RayForPixel(x, y int) core.Ray {
	// offset from the canvas edge to the pixel center
	xOffset := (float64(x) + 0.5) * c.pixelSize
	yOffset := (float64(y) + 0.5) * c.pixelSize

	// camera looks toward -z, so +x is to the left
	worldX := c.halfWidth - xOffset
	worldY := c.halfHeight - yOffset

	// the canvas sits at z = -1
	pixel := c.inverse.MultiplyPoint(core.NewPoint(worldX, worldY, -1))
	origin := c.inverse.MultiplyPoint(core.Origin())
	direction := pixel.Subtract(origin).Normalize()

	return core.NewRay(origin, direction)
}

// Pixels lists every pixel in row-major order
func (c *Camera) Pixels() []Pixel {
	pixels := make([]Pixel, 0, c.width*c.height)
	for y := 0; y < c.height; y++ {
		for x := 0; x < c.width; x++ {
			pixels = append(pixels, Pixel{X: x, Y: y})
		}
	}
	return pixels
}

// Shade returns a function coloring a single pixel of scene. It is safe to
// call from many goroutines.
func (c *Camera) Shade(scene Shader) func(Pixel) PixelColor {
	return func(p Pixel) PixelColor {
		return PixelColor{X: p.X, Y: p.Y, Color: scene.ColorAt(c.RayForPixel(p.X, p.Y))}
	}
}

// Render shades every pixel in parallel and returns the finished canvas
func (c *Camera) Render(scene Shader) *canvas.Canvas {
	img := canvas.New(c.width, c.height)
	c.RenderTo(scene, img)
	return img
}

// RenderTo shades every pixel in parallel, one goroutine per row bounded by
// the CPU count, then writes the colors into sink from the calling goroutine
func (c *Camera) RenderTo(scene Shader, sink core.PixelSink) {
	colors := make([]core.Color, c.width*c.height)

	var g errgroup.Group
	g.SetLimit(runtime.NumCPU())
	for y := 0; y < c.height; y++ {
		g.Go(func() error {
			row := colors[y*c.width : (y+1)*c.width]
			for x := range row {
				row[x] = scene.ColorAt(c.RayForPixel(x, y))
			}
			return nil
		})
	}
	// shading never fails; Wait is only the join
	_ = g.Wait()

	for y := 0; y < c.height; y++ {
		for x := 0; x < c.width; x++ {
			sink.WritePixel(x, y, colors[y*c.width+x])
		}
	}
}
