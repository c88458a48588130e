package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/df07/go-raycaster/pkg/log"
	"github.com/df07/go-raycaster/pkg/output"
	"github.com/df07/go-raycaster/pkg/renderer"
	"github.com/df07/go-raycaster/pkg/scene"
)

const (
	defaultScene = "single-sphere"
	defaultSize  = 400
	maxSize      = 2000
)

// Options configures the web server
type Options struct {
	ScenesDir string          // Directory scanned for *.json scene files
	DataDir   string          // Directory holding OFF mesh files
	Render    renderer.Config // Tile size and worker count used for every render
}

// Server handles web requests for the ray caster
type Server struct {
	port    int
	options Options
	logger  log.Logger
	mux     *http.ServeMux
}

// NewServer creates a new web server
func NewServer(port int, options Options) *Server {
	s := &Server{
		port:    port,
		options: options,
		logger:  log.New("server"),
		mux:     http.NewServeMux(),
	}

	s.mux.HandleFunc("/api/health", s.handleHealth)
	s.mux.HandleFunc("/api/scenes", s.handleScenes)
	s.mux.HandleFunc("/api/render", s.handleRender)
	s.mux.HandleFunc("/api/render/stream", s.handleRenderStream)
	s.mux.HandleFunc("/api/inspect", s.handleInspect)

	return s
}

// Handler returns the HTTP handler serving every endpoint
func (s *Server) Handler() http.Handler {
	return s.mux
}

// Start starts the web server
func (s *Server) Start() error {
	addr := fmt.Sprintf(":%d", s.port)
	s.logger.Noticef("starting web server on http://localhost%s", addr)
	return http.ListenAndServe(addr, s.mux)
}

// RenderRequest represents a render request from the client
type RenderRequest struct {
	Scene  string        `json:"scene"`  // Preset name or "file:<name>"
	Width  int           `json:"width"`  // Image width
	Height int           `json:"height"` // Image height
	Format output.Format `json:"-"`
}

// Stats represents render statistics
type Stats struct {
	TotalPixels     int     `json:"totalPixels"`
	HitPixels       int     `json:"hitPixels"`
	SphereHits      int     `json:"sphereHits"`
	TriangleHits    int     `json:"triangleHits"`
	MeanLightness   float64 `json:"meanLightness"`
	StdDevLightness float64 `json:"stdDevLightness"`
	NumWorkers      int     `json:"numWorkers"`
	NumTiles        int     `json:"numTiles"`
	ElapsedMs       int64   `json:"elapsedMs"`
}

func newStats(stats renderer.RenderStats) Stats {
	return Stats{
		TotalPixels:     stats.TotalPixels,
		HitPixels:       stats.HitPixels,
		SphereHits:      stats.SphereHits,
		TriangleHits:    stats.TriangleHits,
		MeanLightness:   stats.MeanLightness,
		StdDevLightness: stats.StdDevLightness,
		NumWorkers:      stats.NumWorkers,
		NumTiles:        stats.NumTiles,
		ElapsedMs:       stats.RenderTime.Milliseconds(),
	}
}

// handleHealth provides a simple health check endpoint
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleScenes lists the built-in presets and the scene files on disk
func (s *Server) handleScenes(w http.ResponseWriter, r *http.Request) {
	scenes, err := scene.ListAllScenes(s.options.ScenesDir)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"scenes": scenes})
}

// handleRender renders one frame and responds with the encoded image
func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	req, err := s.parseRenderRequest(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request: "+err.Error())
		return
	}

	raytracer, status, err := s.newRaytracer(req, s.logger)
	if err != nil {
		writeError(w, status, err.Error())
		return
	}

	fb, stats, err := raytracer.Render(r.Context())
	if err != nil {
		s.logger.Warningf("render of %s aborted: %v", req.Scene, err)
		writeError(w, http.StatusServiceUnavailable, err.Error())
		return
	}

	w.Header().Set("Content-Type", req.Format.ContentType())
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("X-Render-Time-Ms", strconv.FormatInt(stats.RenderTime.Milliseconds(), 10))
	w.Header().Set("X-Hit-Pixels", strconv.Itoa(stats.HitPixels))
	w.WriteHeader(http.StatusOK)

	if err := output.Encode(w, fb, req.Format); err != nil {
		s.logger.Errorf("failed to write image: %v", err)
	}
}

// parseRenderRequest parses the scene, size and format query parameters
func (s *Server) parseRenderRequest(r *http.Request) (*RenderRequest, error) {
	query := r.URL.Query()
	req := &RenderRequest{Scene: query.Get("scene")}
	if req.Scene == "" {
		req.Scene = defaultScene
	}

	var err error
	if req.Width, err = parseIntParam(query, "width", defaultSize, 1, maxSize); err != nil {
		return nil, err
	}
	if req.Height, err = parseIntParam(query, "height", defaultSize, 1, maxSize); err != nil {
		return nil, err
	}
	if req.Format, err = output.ParseFormat(query.Get("format")); err != nil {
		return nil, err
	}

	return req, nil
}

// newRaytracer builds the scene named by the request. The returned status is the
// HTTP status to report when err is not nil.
func (s *Server) newRaytracer(req *RenderRequest, logger log.Logger) (*renderer.Raytracer, int, error) {
	startTime := time.Now()

	sceneObj, err := scene.LoadScene(req.Scene, s.options.ScenesDir, scene.PresetOptions{
		Width:   req.Width,
		Height:  req.Height,
		DataDir: s.options.DataDir,
	})
	if err != nil {
		return nil, statusForError(err), err
	}

	raytracer, err := renderer.NewRaytracer(sceneObj, s.options.Render, logger)
	if err != nil {
		return nil, statusForError(err), err
	}

	logger.Debugf("scene %s ready in %v", req.Scene, time.Since(startTime))
	return raytracer, http.StatusOK, nil
}

func statusForError(err error) int {
	switch {
	case errors.Is(err, scene.ErrUnknownScene):
		return http.StatusNotFound
	case errors.Is(err, scene.ErrMissingDataDir),
		errors.Is(err, scene.ErrInvalidDimensions),
		errors.Is(err, scene.ErrEmptyScene):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// parseIntParam parses an integer parameter from URL query with validation
func parseIntParam(values url.Values, key string, defaultValue, min, max int) (int, error) {
	value := values.Get(key)
	if value == "" {
		return defaultValue, nil
	}

	parsed, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %v", key, err)
	}
	if parsed < min || parsed > max {
		return 0, fmt.Errorf("%s must be between %d and %d", key, min, max)
	}
	return parsed, nil
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
