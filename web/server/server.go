package server

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/df07/go-phong-raytracer/pkg/scene"
)

// DefaultPollInterval is how often a render stream checks for new pixels
const DefaultPollInterval = 100 * time.Millisecond

// Config contains web server settings
type Config struct {
	Port         int           // Port to listen on
	PollInterval time.Duration // How often render streams send new frames
	StaticDir    string        // Directory served at "/"
}

// DefaultConfig returns sensible default values
func DefaultConfig() Config {
	return Config{
		Port:         8080,
		PollInterval: DefaultPollInterval,
		StaticDir:    "static/",
	}
}

// Server handles web requests for the raytracer
type Server struct {
	port         int
	pollInterval time.Duration
	mux          *http.ServeMux
}

// NewServer creates a new web server. Zero fields other than Port fall back
// to DefaultConfig.
func NewServer(config Config) *Server {
	defaults := DefaultConfig()
	if config.PollInterval <= 0 {
		config.PollInterval = defaults.PollInterval
	}
	if config.StaticDir == "" {
		config.StaticDir = defaults.StaticDir
	}

	s := &Server{
		port:         config.Port,
		pollInterval: config.PollInterval,
		mux:          http.NewServeMux(),
	}

	// Serve static files
	s.mux.Handle("/", http.FileServer(http.Dir(config.StaticDir)))

	// API endpoints
	s.mux.HandleFunc("/api/render", s.handleRender)
	s.mux.HandleFunc("/api/inspect", s.handleInspect)
	s.mux.HandleFunc("/api/scenes", s.handleScenes)
	s.mux.HandleFunc("/api/health", s.handleHealth)

	return s
}

// Handler returns the HTTP handler serving every endpoint
func (s *Server) Handler() http.Handler {
	return s.mux
}

// Start starts the web server
func (s *Server) Start() error {
	addr := fmt.Sprintf(":%d", s.port)
	log.Printf("Starting web server on http://localhost%s (frames every %v)", addr, s.pollInterval)
	return http.ListenAndServe(addr, s.mux)
}

// SceneRequest holds the scene parameters shared by render and inspect
type SceneRequest struct {
	Scene      string `json:"scene"`      // Scene ID accepted by scene.Create
	Width      int    `json:"width"`      // Image width
	Height     int    `json:"height"`     // Image height
	ShadowMode string `json:"shadowMode"` // "" keeps the scene's mode
}

// options converts the request to scene creation options
func (r SceneRequest) options() scene.Options {
	return scene.Options{Width: r.Width, Height: r.Height, ShadowMode: r.ShadowMode}
}

// handleHealth provides a simple health check endpoint
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleScenes lists built-in and file scenes
func (s *Server) handleScenes(w http.ResponseWriter, r *http.Request) {
	response, err := scene.ListAllScenes()
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, response)
}

// parseSceneRequest parses the scene parameters shared by all scene endpoints
func parseSceneRequest(r *http.Request) (SceneRequest, error) {
	query := r.URL.Query()
	req := SceneRequest{
		Scene:      query.Get("scene"),
		ShadowMode: query.Get("shadowMode"),
	}
	if req.Scene == "" {
		req.Scene = "default"
	}
	// Clients pick from listed scenes only, never arbitrary paths
	if !scene.IsBuiltin(req.Scene) && !scene.IsFileID(req.Scene) {
		return req, fmt.Errorf("unknown scene %q", req.Scene)
	}

	var err error
	if req.Width, err = parseIntParam(query, "width", 400, 10, 2000); err != nil {
		return req, err
	}
	if req.Height, err = parseIntParam(query, "height", 225, 10, 2000); err != nil {
		return req, err
	}
	return req, nil
}

// parseIntParam parses an integer parameter from URL query with validation
func parseIntParam(values url.Values, key string, defaultValue, min, max int) (int, error) {
	if value := values.Get(key); value != "" {
		parsed, err := strconv.Atoi(value)
		if err != nil {
			return 0, fmt.Errorf("invalid %s: %s", key, value)
		}
		if parsed < min || parsed > max {
			return 0, fmt.Errorf("%s must be between %d and %d, got: %d", key, min, max, parsed)
		}
		return parsed, nil
	}
	return defaultValue, nil
}

// writeJSON writes v as a JSON response with the given status
func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("Error encoding response: %v", err)
	}
}
