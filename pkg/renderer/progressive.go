package renderer

import (
	"context"
	"fmt"
	"image"
	"time"

	"github.com/df07/go-phong-raytracer/pkg/canvas"
	"github.com/df07/go-phong-raytracer/pkg/core"
)

// DefaultLogger implements core.Logger by writing to stdout
type DefaultLogger struct{}

func (dl *DefaultLogger) Printf(format string, args ...interface{}) {
	fmt.Printf(format, args...)
}

// NewDefaultLogger creates a new default logger
func NewDefaultLogger() core.Logger {
	return &DefaultLogger{}
}

// ProgressiveConfig contains configuration for progressive rendering
type ProgressiveConfig struct {
	TileSize   int // Pixels are scheduled tile by tile so previews fill in blocks
	ChunkSize  int // Pixels shaded between cancellation checks
	NumWorkers int // Number of parallel workers (0 = use CPU count)
}

// DefaultProgressiveConfig returns sensible default values
func DefaultProgressiveConfig() ProgressiveConfig {
	return ProgressiveConfig{
		TileSize:   16,
		ChunkSize:  256,
		NumWorkers: 0, // Auto-detect CPU count
	}
}

// Progressive renders an image in the background and fills a canvas as
// pixels complete. Poll, Wait, Stop and Canvas must be called from a single
// consumer goroutine.
type Progressive struct {
	camera    *Camera
	canvas    *canvas.Canvas
	worker    *Worker[Pixel, PixelColor]
	logger    core.Logger
	startTime time.Time
	completed int
	finished  bool
}

// NewProgressive starts rendering scene through camera
func NewProgressive(ctx context.Context, camera *Camera, scene Shader, config ProgressiveConfig, logger core.Logger) *Progressive {
	if config.TileSize <= 0 {
		config.TileSize = DefaultProgressiveConfig().TileSize
	}
	if logger == nil {
		logger = NewDefaultLogger()
	}

	pixels := TileOrder(camera.Width(), camera.Height(), config.TileSize)
	workerConfig := WorkerConfig{ChunkSize: config.ChunkSize, NumWorkers: config.NumWorkers}

	worker := NewWorker(ctx, pixels, camera.Shade(scene), workerConfig)

	logger.Printf("Starting progressive render: %dx%d, %d pixels in tiles of %d on %d workers\n",
		camera.Width(), camera.Height(), len(pixels), config.TileSize, worker.NumWorkers())

	return &Progressive{
		camera:    camera,
		canvas:    canvas.New(camera.Width(), camera.Height()),
		worker:    worker,
		logger:    logger,
		startTime: time.Now(),
	}
}

// Poll copies every finished pixel into the canvas without blocking. It
// returns how many pixels arrived and whether rendering has ended.
func (p *Progressive) Poll() (updated int, finished bool) {
	if p.finished {
		return 0, true
	}

	values, ok := p.worker.Fetch()
	for _, v := range values {
		p.canvas.WritePixel(v.X, v.Y, v.Color)
	}
	p.completed += len(values)

	if !ok {
		p.finished = true
		stats := p.Stats()
		if stats.CompletedPixels < stats.TotalPixels {
			p.logger.Printf("Render stopped after %d of %d pixels (%v)\n",
				stats.CompletedPixels, stats.TotalPixels, stats.Elapsed)
		} else {
			p.logger.Printf("Render completed in %v (%.0f pixels/s)\n",
				stats.Elapsed, stats.PixelsPerSecond)
		}
	}
	return len(values), p.finished
}

// Wait polls every interval until rendering ends, then returns the canvas
func (p *Progressive) Wait(interval time.Duration) *canvas.Canvas {
	for {
		if _, finished := p.Poll(); finished {
			return p.canvas
		}
		time.Sleep(interval)
	}
}

// Stop cancels the render at the next chunk boundary, waits for the
// background work to exit and collects what was finished
func (p *Progressive) Stop() *canvas.Canvas {
	p.worker.Finish()
	for {
		if _, finished := p.Poll(); finished {
			return p.canvas
		}
	}
}

// Canvas returns the canvas being filled. Pixels not yet rendered are black.
func (p *Progressive) Canvas() *canvas.Canvas {
	return p.canvas
}

// Finished reports whether the last Poll saw the end of rendering
func (p *Progressive) Finished() bool {
	return p.finished
}

// Stats returns progress so far
func (p *Progressive) Stats() RenderStats {
	return newRenderStats(p.completed, p.worker.Total(), time.Since(p.startTime))
}

// Tile represents a rectangular region of the image
type Tile struct {
	ID     int             // Unique tile identifier
	Bounds image.Rectangle // Pixel bounds (x0,y0,x1,y1)
}

// NewTile creates a new tile with the specified bounds
func NewTile(id int, bounds image.Rectangle) *Tile {
	return &Tile{ID: id, Bounds: bounds}
}

// Pixels lists the pixels of the tile in row-major order
func (t *Tile) Pixels() []Pixel {
	pixels := make([]Pixel, 0, t.Bounds.Dx()*t.Bounds.Dy())
	for y := t.Bounds.Min.Y; y < t.Bounds.Max.Y; y++ {
		for x := t.Bounds.Min.X; x < t.Bounds.Max.X; x++ {
			pixels = append(pixels, Pixel{X: x, Y: y})
		}
	}
	return pixels
}

// NewTileGrid creates a grid of tiles covering the entire image
func NewTileGrid(width, height, tileSize int) []*Tile {
	var tiles []*Tile
	tileID := 0

	// Calculate number of tiles in each dimension
	tilesX := (width + tileSize - 1) / tileSize // Ceiling division
	tilesY := (height + tileSize - 1) / tileSize

	for tileY := 0; tileY < tilesY; tileY++ {
		for tileX := 0; tileX < tilesX; tileX++ {
			x0 := tileX * tileSize
			y0 := tileY * tileSize
			x1 := min(x0+tileSize, width) // Don't exceed image bounds
			y1 := min(y0+tileSize, height)

			tiles = append(tiles, NewTile(tileID, image.Rect(x0, y0, x1, y1)))
			tileID++
		}
	}

	return tiles
}

// TileOrder lists every pixel of the image, tile by tile
func TileOrder(width, height, tileSize int) []Pixel {
	pixels := make([]Pixel, 0, width*height)
	for _, tile := range NewTileGrid(width, height, tileSize) {
		pixels = append(pixels, tile.Pixels()...)
	}
	return pixels
}
