package server

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/df07/go-phong-raytracer/pkg/canvas"
	"github.com/df07/go-phong-raytracer/pkg/renderer"
	"github.com/df07/go-phong-raytracer/pkg/scene"
)

// RenderRequest represents a render request from the client
type RenderRequest struct {
	SceneRequest
	ChunkSize int `json:"chunkSize"` // Pixels shaded between cancellation checks
}

// FrameUpdate is a snapshot of the partially rendered image sent via SSE
type FrameUpdate struct {
	RenderID        string  `json:"renderId"`
	ImageData       string  `json:"imageData"` // Base64 encoded PNG
	CompletedPixels int     `json:"completedPixels"`
	TotalPixels     int     `json:"totalPixels"`
	Progress        float64 `json:"progress"`
	PixelsPerSecond float64 `json:"pixelsPerSecond"`
	ElapsedMs       int64   `json:"elapsedMs"`
	IsComplete      bool    `json:"isComplete"`
}

// SSEEvent represents a unified SSE event for thread-safe writing
type SSEEvent struct {
	Type string `json:"type"` // "console", "frame", "error", "complete"
	Data string `json:"data"` // JSON-encoded data
}

// handleRender renders a scene progressively, streaming frames via SSE.
// A client disconnect stops the render at the next chunk boundary.
func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	s.setSSEHeaders(w)
	ctx := r.Context()

	// Single writer goroutine; this handler is the only sender
	sseEventChan := make(chan SSEEvent, 100)
	writerDone := make(chan struct{})
	go func() {
		defer close(writerDone)
		s.writeSSEEvents(ctx, w, sseEventChan)
	}()
	defer func() {
		close(sseEventChan)
		<-writerDone
	}()

	req, err := parseRenderRequest(r)
	if err != nil {
		s.handleError(ctx, sseEventChan, fmt.Sprintf("Invalid request: %v", err))
		return
	}

	renderID := NewRenderID()
	consoleChan := make(chan ConsoleMessage, 50)
	logger := NewWebLogger(renderID, consoleChan)

	sc, err := scene.Create(req.Scene, req.options())
	if err != nil {
		s.handleError(ctx, sseEventChan, err.Error())
		return
	}
	logger.Printf("Rendering %s at %dx%d (shadows: %s)\n", sc.Name, req.Width, req.Height, sc.World.ShadowMode())

	config := renderer.DefaultProgressiveConfig()
	config.ChunkSize = req.ChunkSize
	progressive := renderer.NewProgressive(ctx, sc.Camera, sc.World, config, logger)
	defer progressive.Stop()

	ticker := time.NewTicker(s.pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			// Client disconnected
			return
		case <-ticker.C:
		}

		updated, finished := progressive.Poll()
		s.flushConsole(ctx, consoleChan, sseEventChan)

		if updated > 0 || finished {
			s.sendFrame(ctx, sseEventChan, renderID, progressive, finished)
		}
		if finished {
			select {
			case sseEventChan <- SSEEvent{Type: "complete", Data: "Rendering completed"}:
			case <-ctx.Done():
			}
			return
		}
	}
}

// parseRenderRequest parses request parameters
func parseRenderRequest(r *http.Request) (*RenderRequest, error) {
	sceneReq, err := parseSceneRequest(r)
	if err != nil {
		return nil, err
	}
	req := &RenderRequest{SceneRequest: sceneReq}

	defaultChunk := renderer.DefaultProgressiveConfig().ChunkSize
	if req.ChunkSize, err = parseIntParam(r.URL.Query(), "chunk", defaultChunk, 1, 1<<20); err != nil {
		return nil, err
	}
	return req, nil
}

// setSSEHeaders sets the required headers for Server-Sent Events
func (s *Server) setSSEHeaders(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("Access-Control-Allow-Origin", "*")
}

// writeSSEEvents writes events until the channel closes. After a failed
// write or a disconnect it keeps draining so senders never block.
func (s *Server) writeSSEEvents(ctx context.Context, w http.ResponseWriter, sseEventChan <-chan SSEEvent) {
	failed := false
	for event := range sseEventChan {
		if failed || ctx.Err() != nil {
			continue
		}

		if _, err := fmt.Fprintf(w, "event: %s\ndata: %s\n\n", event.Type, event.Data); err != nil {
			// Client disconnected during write
			failed = true
			continue
		}
		if flusher, ok := w.(http.Flusher); ok {
			flusher.Flush()
		}
	}
}

// flushConsole forwards queued console messages without blocking
func (s *Server) flushConsole(ctx context.Context, consoleChan <-chan ConsoleMessage, sseEventChan chan<- SSEEvent) {
	for {
		select {
		case msg := <-consoleChan:
			data, err := json.Marshal(msg)
			if err != nil {
				log.Printf("Error marshaling console message: %v", err)
				continue
			}
			select {
			case sseEventChan <- SSEEvent{Type: "console", Data: string(data)}:
			case <-ctx.Done():
				return
			}
		default:
			return
		}
	}
}

// sendFrame encodes the current canvas and sends it as a frame event
func (s *Server) sendFrame(ctx context.Context, sseEventChan chan<- SSEEvent, renderID string, p *renderer.Progressive, finished bool) {
	imageData, err := canvasToBase64PNG(p.Canvas())
	if err != nil {
		log.Printf("Error encoding frame: %v", err)
		return
	}

	stats := p.Stats()
	update := FrameUpdate{
		RenderID:        renderID,
		ImageData:       imageData,
		CompletedPixels: stats.CompletedPixels,
		TotalPixels:     stats.TotalPixels,
		Progress:        stats.Progress(),
		PixelsPerSecond: stats.PixelsPerSecond,
		ElapsedMs:       stats.Elapsed.Milliseconds(),
		IsComplete:      finished && stats.CompletedPixels == stats.TotalPixels,
	}

	data, err := json.Marshal(update)
	if err != nil {
		log.Printf("Error marshaling frame update: %v", err)
		return
	}

	select {
	case sseEventChan <- SSEEvent{Type: "frame", Data: string(data)}:
	case <-ctx.Done():
	}
}

// canvasToBase64PNG converts a canvas to base64-encoded PNG
func canvasToBase64PNG(c *canvas.Canvas) (string, error) {
	var buf bytes.Buffer
	if err := c.EncodePNG(&buf); err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}

// handleError sends an error event to the SSE channel
func (s *Server) handleError(ctx context.Context, sseEventChan chan<- SSEEvent, message string) {
	select {
	case sseEventChan <- SSEEvent{Type: "error", Data: message}:
	case <-ctx.Done():
		// Client disconnected, don't block
	}
}
