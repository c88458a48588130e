package geometry

import (
	"math"

	"github.com/df07/go-raycaster/pkg/core"
)

// SphereStrategy selects the closed form used to intersect rays with spheres
type SphereStrategy int

const (
	// StrategyAuto uses the axis-aligned form for rays parallel to the z axis
	// and the general form for everything else.
	StrategyAuto SphereStrategy = iota
	// StrategyAxisAligned assumes every ray travels parallel to the z axis and
	// resolves the intersection z coordinate directly from the sphere equation.
	StrategyAxisAligned
	// StrategyGeneral intersects arbitrary rays using the perpendicular distance
	// from the sphere center to the ray line.
	StrategyGeneral
)

// SphereIntersector tests rays against an ordered list of spheres
type SphereIntersector struct {
	Spheres  []Sphere
	Strategy SphereStrategy
}

// NewSphereIntersector creates an intersector over the given spheres
func NewSphereIntersector(spheres []Sphere, strategy SphereStrategy) *SphereIntersector {
	return &SphereIntersector{
		Spheres:  spheres,
		Strategy: strategy,
	}
}

// IsAxisAligned reports whether a direction is parallel to the z axis
func IsAxisAligned(direction core.Vec3) bool {
	return direction.X == 0 && direction.Y == 0 && direction.Z != 0
}

// Intersect returns the nearest sphere hit along the ray
func (si *SphereIntersector) Intersect(ray core.Ray) (HitRecord, bool) {
	switch si.Strategy {
	case StrategyAxisAligned:
		return si.intersectAlongAxis(ray)
	case StrategyGeneral:
		return si.intersectGeneral(ray)
	default:
		if IsAxisAligned(ray.Direction) {
			return si.intersectAlongAxis(ray)
		}
		return si.intersectGeneral(ray)
	}
}

// intersectAlongAxis handles rays whose direction is parallel to the z axis.
// The nearest sphere is the one whose resolved z lies furthest towards the camera;
// on an exact tie the sphere listed first wins.
func (si *SphereIntersector) intersectAlongAxis(ray core.Ray) (HitRecord, bool) {
	if ray.Direction.Z == 0 {
		return HitRecord{}, false
	}

	// A camera looking down -z sees the +z cap, and vice versa
	facing := 1.0
	if ray.Direction.Z > 0 {
		facing = -1.0
	}

	nearest := -1
	nearestZ := 0.0
	for i, sphere := range si.Spheres {
		z, ok := sphere.HitAlongAxis(ray.Origin.X, ray.Origin.Y, facing)
		if !ok {
			continue
		}
		// Only intersections in front of the ray origin count. When the facing cap
		// is behind the origin the ray starts inside the sphere and leaves through
		// the opposite cap.
		if (z-ray.Origin.Z)/ray.Direction.Z <= 0 {
			z, _ = sphere.HitAlongAxis(ray.Origin.X, ray.Origin.Y, -facing)
			if (z-ray.Origin.Z)/ray.Direction.Z <= 0 {
				continue
			}
		}
		if nearest < 0 || facing*z > facing*nearestZ {
			nearest = i
			nearestZ = z
		}
	}

	if nearest < 0 {
		return HitRecord{}, false
	}

	sphere := si.Spheres[nearest]
	point := core.NewVec3(ray.Origin.X, ray.Origin.Y, nearestZ)
	return HitRecord{
		Point:       point,
		Normal:      sphere.NormalAt(point),
		T:           (nearestZ - ray.Origin.Z) / ray.Direction.Z,
		Kind:        PrimitiveSphere,
		SphereIndex: nearest,
		Material:    sphere.Material,
	}, true
}

// intersectGeneral keeps the globally smallest positive root across all spheres
func (si *SphereIntersector) intersectGeneral(ray core.Ray) (HitRecord, bool) {
	nearest := -1
	closestSoFar := math.Inf(1)

	for i, sphere := range si.Spheres {
		t, ok := sphere.Hit(ray)
		if ok && t < closestSoFar {
			closestSoFar = t
			nearest = i
		}
	}

	if nearest < 0 {
		return HitRecord{}, false
	}

	sphere := si.Spheres[nearest]
	point := ray.At(closestSoFar)
	return HitRecord{
		Point:       point,
		Normal:      sphere.NormalAt(point),
		T:           closestSoFar,
		Kind:        PrimitiveSphere,
		SphereIndex: nearest,
		Material:    sphere.Material,
	}, true
}
