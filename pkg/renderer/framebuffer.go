package renderer

import "github.com/df07/go-raycaster/pkg/core"

// Framebuffer holds one scalar grid per channel, stored row-major. Every cell starts
// at zero, so a pixel that is never written stays transparent black. Channel values
// are not clamped.
type Framebuffer struct {
	Width  int
	Height int
	R      []float64
	G      []float64
	B      []float64
	A      []float64
}

// NewFramebuffer creates a zeroed framebuffer
func NewFramebuffer(width, height int) *Framebuffer {
	size := width * height
	return &Framebuffer{
		Width:  width,
		Height: height,
		R:      make([]float64, size),
		G:      make([]float64, size),
		B:      make([]float64, size),
		A:      make([]float64, size),
	}
}

// Index returns the offset of pixel (i, j) in the channel slices; i is the column.
func (fb *Framebuffer) Index(i, j int) int {
	return j*fb.Width + i
}

// Set writes a shaded hit: the three color channels and alpha 1
func (fb *Framebuffer) Set(i, j int, color core.Vec3) {
	fb.SetRGBA(i, j, color.X, color.Y, color.Z, 1)
}

// SetRGBA writes all four channels of a pixel
func (fb *Framebuffer) SetRGBA(i, j int, r, g, b, a float64) {
	idx := fb.Index(i, j)
	fb.R[idx] = r
	fb.G[idx] = g
	fb.B[idx] = b
	fb.A[idx] = a
}

// At returns the four channels of a pixel
func (fb *Framebuffer) At(i, j int) (r, g, b, a float64) {
	idx := fb.Index(i, j)
	return fb.R[idx], fb.G[idx], fb.B[idx], fb.A[idx]
}

// Color returns the RGB channels of a pixel
func (fb *Framebuffer) Color(i, j int) core.Vec3 {
	idx := fb.Index(i, j)
	return core.NewVec3(fb.R[idx], fb.G[idx], fb.B[idx])
}
