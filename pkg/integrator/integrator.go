package integrator

import (
	"github.com/df07/go-raycaster/pkg/core"
	"github.com/df07/go-raycaster/pkg/geometry"
)

// Integrator turns a primary ray hit into a pixel color
type Integrator interface {
	// Shade returns the RGB color and the scalar lightness for a hit seen
	// along the given unit view direction (pointing from the hit towards the camera)
	Shade(hit geometry.HitRecord, view core.Vec3) (color core.Vec3, lightness float64)
}
