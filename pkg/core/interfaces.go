package core

// Logger interface for renderer logging
type Logger interface {
	Printf(format string, args ...interface{})
}

// PixelSink is the pixel buffer contract the renderer writes into. Writes
// outside the buffer are fatal; implementations panic rather than clamp.
type PixelSink interface {
	WritePixel(x, y int, c Color)
	PixelAt(x, y int) Color
}
