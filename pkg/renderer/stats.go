package renderer

import (
	"math"
	"time"

	"gonum.org/v1/gonum/stat"

	"github.com/df07/go-raycaster/pkg/geometry"
)

// TileStats counts what one tile's rays hit
type TileStats struct {
	Pixels       int
	HitPixels    int
	SphereHits   int
	TriangleHits int
}

func (ts *TileStats) add(kind geometry.PrimitiveKind) {
	ts.HitPixels++
	switch kind {
	case geometry.PrimitiveSphere:
		ts.SphereHits++
	case geometry.PrimitiveTriangle:
		ts.TriangleHits++
	}
}

func (ts TileStats) merge(other TileStats) TileStats {
	return TileStats{
		Pixels:       ts.Pixels + other.Pixels,
		HitPixels:    ts.HitPixels + other.HitPixels,
		SphereHits:   ts.SphereHits + other.SphereHits,
		TriangleHits: ts.TriangleHits + other.TriangleHits,
	}
}

// RenderStats contains statistics about the rendering process
type RenderStats struct {
	Width        int
	Height       int
	TotalPixels  int // Total number of pixels rendered
	HitPixels    int // Pixels whose ray hit a primitive
	SphereHits   int
	TriangleHits int

	// Lightness over hit pixels; all zero when nothing was hit
	MeanLightness   float64
	StdDevLightness float64
	MaxLightness    float64

	NumWorkers int
	NumTiles   int
	RenderTime time.Duration
}

// Coverage returns the fraction of pixels that hit a primitive
func (rs RenderStats) Coverage() float64 {
	if rs.TotalPixels == 0 {
		return 0
	}
	return float64(rs.HitPixels) / float64(rs.TotalPixels)
}

// newRenderStats summarizes a finished frame. Hit pixels are the ones with alpha set.
func newRenderStats(target *frame, counts TileStats) RenderStats {
	stats := RenderStats{
		Width:        target.fb.Width,
		Height:       target.fb.Height,
		TotalPixels:  counts.Pixels,
		HitPixels:    counts.HitPixels,
		SphereHits:   counts.SphereHits,
		TriangleHits: counts.TriangleHits,
	}

	values := make([]float64, 0, counts.HitPixels)
	for idx, alpha := range target.fb.A {
		if alpha != 0 {
			values = append(values, target.lightness[idx])
		}
	}
	if len(values) == 0 {
		return stats
	}

	mean, std := stat.MeanStdDev(values, nil)
	if math.IsNaN(std) {
		// A single sample has no spread
		std = 0
	}
	stats.MeanLightness = mean
	stats.StdDevLightness = std

	for _, v := range values {
		stats.MaxLightness = math.Max(stats.MaxLightness, v)
	}

	return stats
}
