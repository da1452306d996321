package renderer

import "time"

// RenderStats contains statistics about the rendering process
type RenderStats struct {
	TotalPixels     int           // Pixels in the image
	CompletedPixels int           // Pixels shaded so far
	Elapsed         time.Duration // Time since the render started
	PixelsPerSecond float64       // Throughput so far
}

func newRenderStats(completed, total int, elapsed time.Duration) RenderStats {
	stats := RenderStats{
		TotalPixels:     total,
		CompletedPixels: completed,
		Elapsed:         elapsed,
	}
	if elapsed > 0 {
		stats.PixelsPerSecond = float64(completed) / elapsed.Seconds()
	}
	return stats
}

// Progress returns the completed fraction in [0, 1]
func (s RenderStats) Progress() float64 {
	if s.TotalPixels == 0 {
		return 1
	}
	return float64(s.CompletedPixels) / float64(s.TotalPixels)
}
