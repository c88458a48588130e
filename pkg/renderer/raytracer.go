package renderer

import (
	"context"
	"errors"
	"fmt"
	"image"
	"time"

	"github.com/df07/go-raycaster/pkg/core"
	"github.com/df07/go-raycaster/pkg/geometry"
	"github.com/df07/go-raycaster/pkg/integrator"
	"github.com/df07/go-raycaster/pkg/log"
	"github.com/df07/go-raycaster/pkg/scene"
)

// DefaultTileSize is the edge length of a render tile in pixels
const DefaultTileSize = 64

var ErrWorkerPoolClosed = errors.New("renderer: worker pool closed unexpectedly")

// Config contains rendering configuration
type Config struct {
	TileSize   int // Tile edge in pixels, 0 means DefaultTileSize
	NumWorkers int // Parallel workers, 0 means runtime.NumCPU()
}

// DefaultConfig returns sensible default values
func DefaultConfig() Config {
	return Config{
		TileSize:   DefaultTileSize,
		NumWorkers: 0,
	}
}

// Sample is the outcome of tracing one pixel
type Sample struct {
	Ray       core.Ray
	Hit       geometry.HitRecord
	Color     core.Vec3
	Lightness float64
}

// Raytracer casts one ray per pixel against an immutable scene
type Raytracer struct {
	scene       *scene.Scene
	camera      *geometry.Camera
	intersector geometry.Intersector
	integrator  integrator.Integrator
	config      Config
	logger      log.Logger
}

// NewRaytracer validates the scene and prepares it for rendering
func NewRaytracer(s *scene.Scene, config Config, logger log.Logger) (*Raytracer, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}
	if config.TileSize <= 0 {
		config.TileSize = DefaultTileSize
	}

	camera := s.NewCamera()
	return &Raytracer{
		scene:       s,
		camera:      camera,
		intersector: s.Intersector(camera),
		integrator:  s.Integrator(),
		config:      config,
		logger:      logger,
	}, nil
}

// Scene returns the scene being rendered
func (rt *Raytracer) Scene() *scene.Scene {
	return rt.scene
}

// Camera returns the camera rays are generated from
func (rt *Raytracer) Camera() *geometry.Camera {
	return rt.camera
}

// TracePixel casts the ray through pixel (i, j) and shades the nearest hit.
// It reports false when the ray misses every primitive.
func (rt *Raytracer) TracePixel(i, j int) (Sample, bool) {
	ray := rt.camera.GetRay(i, j)
	sample := Sample{Ray: ray}

	hit, isHit := rt.intersector.Intersect(ray)
	if !isHit {
		return sample, false
	}

	view := ray.Direction.Normalize().Negate()
	sample.Hit = hit
	sample.Color, sample.Lightness = rt.integrator.Shade(hit, view)
	return sample, true
}

// frame is the shared output of a render: the framebuffer plus the lightness of
// each pixel, kept for statistics.
type frame struct {
	fb        *Framebuffer
	lightness []float64
}

func newFrame(width, height int) *frame {
	return &frame{
		fb:        NewFramebuffer(width, height),
		lightness: make([]float64, width*height),
	}
}

// renderBounds traces every pixel inside bounds into the frame
func (rt *Raytracer) renderBounds(bounds image.Rectangle, target *frame) TileStats {
	var stats TileStats

	for j := bounds.Min.Y; j < bounds.Max.Y; j++ {
		for i := bounds.Min.X; i < bounds.Max.X; i++ {
			stats.Pixels++

			sample, isHit := rt.TracePixel(i, j)
			if !isHit {
				continue
			}

			target.fb.Set(i, j, sample.Color)
			target.lightness[target.fb.Index(i, j)] = sample.Lightness
			stats.add(sample.Hit.Kind)
		}
	}

	return stats
}

// RenderSerial renders the whole image on the calling goroutine
func (rt *Raytracer) RenderSerial() (*Framebuffer, RenderStats) {
	startTime := time.Now()
	target := newFrame(rt.scene.Width, rt.scene.Height)

	tileStats := rt.renderBounds(image.Rect(0, 0, rt.scene.Width, rt.scene.Height), target)

	stats := newRenderStats(target, tileStats)
	stats.NumWorkers = 1
	stats.NumTiles = 1
	stats.RenderTime = time.Since(startTime)
	return target.fb, stats
}

// Render renders the whole image with a pool of workers, one tile per task.
// The output is identical to RenderSerial. Cancelling ctx abandons the tiles that
// have not started yet and returns the context error.
func (rt *Raytracer) Render(ctx context.Context) (*Framebuffer, RenderStats, error) {
	startTime := time.Now()
	width, height := rt.scene.Width, rt.scene.Height

	target := newFrame(width, height)
	tiles := NewTileGrid(width, height, rt.config.TileSize)

	pool := NewWorkerPool(rt, rt.config.NumWorkers, len(tiles))
	pool.Start()
	defer pool.Stop()

	rt.logger.Infof("rendering %s: %dx%d, %d primitives, %d tiles on %d workers",
		rt.scene.Name, width, height, rt.scene.GetPrimitiveCount(), len(tiles), pool.GetNumWorkers())

	for _, tile := range tiles {
		pool.SubmitTask(TileTask{
			Ctx:    ctx,
			Tile:   tile,
			TaskID: tile.ID,
			Target: target,
		})
	}

	var total TileStats
	var firstErr error
	for i := 0; i < len(tiles); i++ {
		result, ok := pool.GetResult()
		if !ok {
			return nil, RenderStats{}, ErrWorkerPoolClosed
		}
		if result.Error != nil {
			if firstErr == nil {
				firstErr = result.Error
			}
			continue
		}
		total = total.merge(result.Stats)
		rt.logger.Debugf("tile %d/%d done (%d hits)", i+1, len(tiles), result.Stats.HitPixels)
	}

	if firstErr != nil {
		return nil, RenderStats{}, fmt.Errorf("render cancelled: %w", firstErr)
	}

	stats := newRenderStats(target, total)
	stats.NumWorkers = pool.GetNumWorkers()
	stats.NumTiles = len(tiles)
	stats.RenderTime = time.Since(startTime)

	rt.logger.Infof("rendered %s in %v: %d/%d pixels hit", rt.scene.Name, stats.RenderTime, stats.HitPixels, stats.TotalPixels)
	return target.fb, stats, nil
}
