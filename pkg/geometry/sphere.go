package geometry

import (
	"math"

	"github.com/df07/go-raycaster/pkg/core"
	"github.com/df07/go-raycaster/pkg/material"
)

// Sphere represents a sphere shape
type Sphere struct {
	Center   core.Vec3
	Radius   float64
	Material material.Material
}

// NewSphere creates a new sphere
func NewSphere(center core.Vec3, radius float64, mat material.Material) Sphere {
	return Sphere{
		Center:   center,
		Radius:   radius,
		Material: mat,
	}
}

// Hit returns the smallest positive ray parameter at which the ray meets the sphere.
// The ray direction does not need to be normalized.
func (s Sphere) Hit(ray core.Ray) (float64, bool) {
	length := ray.Direction.Length()
	if length == 0 {
		return 0, false
	}
	direction := ray.Direction.Multiply(1.0 / length)

	// Project the center onto the ray line
	originToCenter := s.Center.Subtract(ray.Origin)
	alongRay := direction.Dot(originToCenter)

	// Squared perpendicular distance from the center to the line
	perpendicularSq := originToCenter.LengthSquared() - alongRay*alongRay
	if perpendicularSq < 0 {
		perpendicularSq = 0
	}

	radiusSq := s.Radius * s.Radius
	if perpendicularSq > radiusSq {
		return 0, false
	}

	// Tangent rays give a single root
	halfChord := math.Sqrt(radiusSq - perpendicularSq)

	near := alongRay - halfChord
	if near > 0 {
		return near / length, true
	}
	far := alongRay + halfChord
	if far > 0 {
		return far / length, true
	}

	// Sphere entirely behind the origin
	return 0, false
}

// HitAlongAxis solves the sphere equation for the z coordinate of the surface
// above the point (x, y). facing is +1 to take the cap facing +z and -1 for the
// cap facing -z. It reports false when (x, y) lies outside the sphere's silhouette.
func (s Sphere) HitAlongAxis(x, y, facing float64) (float64, bool) {
	dx := x - s.Center.X
	dy := y - s.Center.Y
	heightSq := s.Radius*s.Radius - (dx*dx + dy*dy)
	if heightSq < 0 {
		return 0, false
	}
	return s.Center.Z + facing*math.Sqrt(heightSq), true
}

// NormalAt returns the outward unit normal at a point on the surface
func (s Sphere) NormalAt(point core.Vec3) core.Vec3 {
	return point.Subtract(s.Center).Normalize()
}

// BoundingBox returns the axis-aligned bounding box for this sphere
func (s Sphere) BoundingBox() core.AABB {
	radius := core.NewVec3(s.Radius, s.Radius, s.Radius)
	return core.NewAABB(
		s.Center.Subtract(radius),
		s.Center.Add(radius),
	)
}
