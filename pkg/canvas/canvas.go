package canvas

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
	"math"
	"os"
	"path/filepath"

	"github.com/df07/go-phong-raytracer/pkg/core"
	"golang.org/x/image/draw"
)

// Canvas is a row-major buffer of linear colors. It is not safe for
// concurrent writes; renderers collect colors first and write them back
// from a single goroutine.
type Canvas struct {
	width, height int
	pixels        []core.Color
}

// New creates a black canvas
func New(width, height int) *Canvas {
	if width <= 0 || height <= 0 {
		panic(fmt.Sprintf("canvas size %dx%d must be positive", width, height))
	}
	return &Canvas{
		width:  width,
		height: height,
		pixels: make([]core.Color, width*height),
	}
}

// Width returns the canvas width in pixels
func (c *Canvas) Width() int { return c.width }

// Height returns the canvas height in pixels
func (c *Canvas) Height() int { return c.height }

func (c *Canvas) index(x, y int) int {
	if x < 0 || x >= c.width || y < 0 || y >= c.height {
		panic(fmt.Sprintf("pixel (%d, %d) out of range for %dx%d canvas", x, y, c.width, c.height))
	}
	return y*c.width + x
}

// WritePixel sets the color at (x, y). Out of range coordinates panic.
func (c *Canvas) WritePixel(x, y int, col core.Color) {
	c.pixels[c.index(x, y)] = col
}

// PixelAt returns the color at (x, y). Out of range coordinates panic.
func (c *Canvas) PixelAt(x, y int) core.Color {
	return c.pixels[c.index(x, y)]
}

// Equal reports whether two canvases have the same size and pixels within core.Epsilon
func (c *Canvas) Equal(other *Canvas) bool {
	if c.width != other.width || c.height != other.height {
		return false
	}
	for i := range c.pixels {
		if !c.pixels[i].Equal(other.pixels[i]) {
			return false
		}
	}
	return true
}

// toByte clamps a linear component to [0, 1] and scales it to 8 bits.
// No gamma correction is applied.
func toByte(v float64) uint8 {
	v = max(0, min(1, v))
	return uint8(math.Round(v * 255))
}

// ToRGBA quantizes the canvas to an 8-bit image
func (c *Canvas) ToRGBA() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, c.width, c.height))
	for y := 0; y < c.height; y++ {
		for x := 0; x < c.width; x++ {
			p := c.pixels[y*c.width+x]
			img.SetRGBA(x, y, color.RGBA{
				R: toByte(p.R),
				G: toByte(p.G),
				B: toByte(p.B),
				A: 255,
			})
		}
	}
	return img
}

// Downsample scales the quantized canvas to fit within maxWidth x maxHeight,
// keeping the aspect ratio. Canvases already small enough are returned at
// full size.
func (c *Canvas) Downsample(maxWidth, maxHeight int) *image.RGBA {
	src := c.ToRGBA()
	if maxWidth <= 0 || maxHeight <= 0 || (c.width <= maxWidth && c.height <= maxHeight) {
		return src
	}

	scale := math.Min(float64(maxWidth)/float64(c.width), float64(maxHeight)/float64(c.height))
	w := max(1, int(float64(c.width)*scale))
	h := max(1, int(float64(c.height)*scale))

	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.BiLinear.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Src, nil)
	return dst
}

// EncodePNG writes the canvas to w as a PNG
func (c *Canvas) EncodePNG(w io.Writer) error {
	return png.Encode(w, c.ToRGBA())
}

// SavePNG writes the canvas to a PNG file, creating parent directories
func (c *Canvas) SavePNG(filename string) error {
	if err := os.MkdirAll(filepath.Dir(filename), 0755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}

	file, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("creating file: %w", err)
	}
	defer file.Close()

	if err := c.EncodePNG(file); err != nil {
		return fmt.Errorf("encoding PNG: %w", err)
	}
	return nil
}
