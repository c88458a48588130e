package geometry

import (
	"github.com/df07/go-raycaster/pkg/core"
	"github.com/df07/go-raycaster/pkg/material"
)

// PrimitiveKind identifies the type of primitive recorded in a HitRecord
type PrimitiveKind int

const (
	PrimitiveNone PrimitiveKind = iota
	PrimitiveSphere
	PrimitiveTriangle
)

// String returns a short name for the primitive kind
func (k PrimitiveKind) String() string {
	switch k {
	case PrimitiveSphere:
		return "sphere"
	case PrimitiveTriangle:
		return "triangle"
	default:
		return "none"
	}
}

// HitRecord contains information about a ray-primitive intersection
type HitRecord struct {
	Point  core.Vec3 // Point of intersection
	Normal core.Vec3 // Unit surface normal at intersection
	T      float64   // Parameter t along the ray, always > 0

	Kind        PrimitiveKind
	SphereIndex int // Index into the sphere list (spheres only)
	MeshIndex   int // Index into the mesh list (triangles only)
	FaceIndex   int // Index into the owning mesh's face list (triangles only)

	// Barycentric weights of the second and third triangle vertices (triangles only)
	Beta, Gamma float64

	Material material.Material // Material of the owning primitive
}

// Barycentric returns the full barycentric triple (alpha, beta, gamma) of a triangle hit
func (h HitRecord) Barycentric() (alpha, beta, gamma float64) {
	return 1 - h.Beta - h.Gamma, h.Beta, h.Gamma
}

// Intersector finds the nearest primitive hit along a ray
type Intersector interface {
	Intersect(ray core.Ray) (HitRecord, bool)
}

// Group combines several intersectors and reports the nearest hit across all of them.
// When two members report the same t, the earlier member wins.
type Group []Intersector

// Intersect implements Intersector
func (g Group) Intersect(ray core.Ray) (HitRecord, bool) {
	var closest HitRecord
	hitAnything := false

	for _, intersector := range g {
		hit, isHit := intersector.Intersect(ray)
		if !isHit {
			continue
		}
		if !hitAnything || hit.T < closest.T {
			closest = hit
			hitAnything = true
		}
	}

	return closest, hitAnything
}
