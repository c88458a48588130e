package geometry

import (
	"fmt"
	"strings"

	"github.com/df07/go-raycaster/pkg/core"
)

// Projection selects how pixels are mapped to rays
type Projection int

const (
	// Orthographic rays share one direction and start on the image plane
	Orthographic Projection = iota
	// Perspective rays share one origin and pass through the image plane
	Perspective
)

// String returns the name of the projection
func (p Projection) String() string {
	if p == Perspective {
		return "perspective"
	}
	return "orthographic"
}

// MarshalText implements encoding.TextMarshaler
func (p Projection) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler
func (p *Projection) UnmarshalText(text []byte) error {
	switch strings.ToLower(string(text)) {
	case "", "orthographic", "ortho":
		*p = Orthographic
	case "perspective":
		*p = Perspective
	default:
		return fmt.Errorf("geometry: unknown projection %q", text)
	}
	return nil
}

// CameraConfig describes the pixel to world mapping of a camera
type CameraConfig struct {
	Projection Projection `json:"projection"`

	// Orthographic: world position of pixel (0,0) on the image plane.
	// Perspective: the eye position shared by every ray.
	Origin core.Vec3 `json:"origin"`

	// Perspective only: world position of pixel (0,0) on the image plane
	ImagePlane core.Vec3 `json:"imagePlane"`

	// Displacement of one pixel step along the image columns and rows
	XStep core.Vec3 `json:"xStep"`
	YStep core.Vec3 `json:"yStep"`

	// Orthographic only: the direction shared by every ray
	Direction core.Vec3 `json:"direction"`
}

// Resize returns the config for a frame of width×height pixels that was laid out for
// fromWidth×fromHeight. The steps are rescaled so pixel (0,0) and the far edges of
// the frame stay where they were.
func (c CameraConfig) Resize(fromWidth, fromHeight, width, height int) CameraConfig {
	if fromWidth > 0 && width > 0 {
		c.XStep = c.XStep.Multiply(float64(fromWidth) / float64(width))
	}
	if fromHeight > 0 && height > 0 {
		c.YStep = c.YStep.Multiply(float64(fromHeight) / float64(height))
	}
	return c
}

// NewOrthographicConfig returns the standard orthographic camera: it looks down
// -z and covers the square (-1,1)² on the plane z=1 with width×height pixels.
func NewOrthographicConfig(width, height int) CameraConfig {
	return CameraConfig{
		Projection: Orthographic,
		Origin:     core.NewVec3(-1, 1, 1),
		XStep:      core.NewVec3(2.0/float64(width), 0, 0),
		YStep:      core.NewVec3(0, -2.0/float64(height), 0),
		Direction:  core.NewVec3(0, 0, -1),
	}
}

// NewPerspectiveConfig returns the standard perspective camera: the eye sits at
// (0,0,2) and the image plane covers the square (-1,1)² on the plane z=1.
func NewPerspectiveConfig(width, height int) CameraConfig {
	return CameraConfig{
		Projection: Perspective,
		Origin:     core.NewVec3(0, 0, 2),
		ImagePlane: core.NewVec3(-1, 1, 1),
		XStep:      core.NewVec3(2.0/float64(width), 0, 0),
		YStep:      core.NewVec3(0, -2.0/float64(height), 0),
	}
}

// Camera generates one ray per pixel
type Camera struct {
	config    CameraConfig
	direction core.Vec3 // normalized orthographic direction
}

// NewCamera creates a camera from its configuration
func NewCamera(config CameraConfig) *Camera {
	return &Camera{
		config:    config,
		direction: config.Direction.Normalize(),
	}
}

// Config returns the configuration the camera was built from
func (c *Camera) Config() CameraConfig {
	return c.config
}

// GetRay returns the ray through pixel (i, j); i indexes columns and j rows.
// Pixel indices outside the image are not checked.
func (c *Camera) GetRay(i, j int) core.Ray {
	offset := c.config.XStep.Multiply(float64(i)).Add(c.config.YStep.Multiply(float64(j)))

	if c.config.Projection == Perspective {
		target := c.config.ImagePlane.Add(offset)
		return core.NewRay(c.config.Origin, target.Subtract(c.config.Origin).Normalize())
	}

	return core.NewRay(c.config.Origin.Add(offset), c.direction)
}

// SphereStrategy returns the sphere intersection form matching this camera's rays
func (c *Camera) SphereStrategy() SphereStrategy {
	if c.config.Projection == Orthographic && IsAxisAligned(c.direction) {
		return StrategyAxisAligned
	}
	return StrategyGeneral
}
