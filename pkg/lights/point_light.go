package lights

import "github.com/df07/go-raycaster/pkg/core"

// PointLight is an infinitesimal light source at a fixed position.
// Its contribution does not fall off with distance.
type PointLight struct {
	Position core.Vec3
}

// NewPointLight creates a point light at the given position
func NewPointLight(position core.Vec3) PointLight {
	return PointLight{Position: position}
}

// DirectionFrom returns the unit vector pointing from point towards the light
func (l PointLight) DirectionFrom(point core.Vec3) core.Vec3 {
	return l.Position.Subtract(point).Normalize()
}
