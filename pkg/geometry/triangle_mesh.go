package geometry

import (
	"math"

	"github.com/df07/go-raycaster/pkg/core"
	"github.com/df07/go-raycaster/pkg/material"
)

// Mesh is an indexed triangle mesh sharing a single material
type Mesh struct {
	Name     string
	Vertices []core.Vec3
	Faces    [][3]int // Vertex indices, one triple per triangle
	Material material.Material
	bbox     core.AABB
	bvh      *core.BVH
}

// NewMesh creates a mesh from vertices and face index triples.
// Indices are not validated; the loader is responsible for well-formed input.
func NewMesh(name string, vertices []core.Vec3, faces [][3]int, mat material.Material) *Mesh {
	mesh := &Mesh{
		Name:     name,
		Vertices: vertices,
		Faces:    faces,
		Material: mat,
		bbox:     core.NewAABBFromPoints(vertices...).Expand(1e-9),
	}

	boxes := make([]core.AABB, len(faces))
	for face := range faces {
		a, b, c := mesh.Triangle(face)
		boxes[face] = core.NewAABBFromPoints(a, b, c).Expand(1e-9)
	}
	mesh.bvh = core.NewBVH(boxes)

	return mesh
}

// Triangle returns the three vertices of a face
func (m *Mesh) Triangle(face int) (a, b, c core.Vec3) {
	indices := m.Faces[face]
	return m.Vertices[indices[0]], m.Vertices[indices[1]], m.Vertices[indices[2]]
}

// FaceNormal returns the unit normal of a face
func (m *Mesh) FaceNormal(face int) core.Vec3 {
	return TriangleNormal(m.Triangle(face))
}

// BVHStats returns the statistics of the face hierarchy
func (m *Mesh) BVHStats() core.BVHStats {
	return m.bvh.Stats()
}

// BoundingBox returns the padded axis-aligned bounding box of all vertices
func (m *Mesh) BoundingBox() core.AABB {
	return m.bbox
}

// GetTriangleCount returns the number of triangles in this mesh
func (m *Mesh) GetTriangleCount() int {
	return len(m.Faces)
}

// TriangleIntersector tests rays against every face of an ordered list of meshes
type TriangleIntersector struct {
	Meshes []*Mesh
	TMax   float64 // Upper bound on accepted t; +Inf when zero
}

// NewTriangleIntersector creates an intersector over the given meshes
func NewTriangleIntersector(meshes []*Mesh) *TriangleIntersector {
	return &TriangleIntersector{Meshes: meshes, TMax: math.Inf(1)}
}

// Intersect returns the face hit with the smallest t across all meshes. The result
// matches a linear scan of every face in order with a strict comparison: on equal t
// the earlier mesh wins, and within a mesh the lower face index wins, no matter in
// which order the face hierarchy visits them.
func (ti *TriangleIntersector) Intersect(ray core.Ray) (HitRecord, bool) {
	closestSoFar := ti.TMax
	if closestSoFar == 0 {
		closestSoFar = math.Inf(1)
	}

	var best TriangleHit
	bestMesh, bestFace := -1, -1

	for meshIndex, mesh := range ti.Meshes {
		// Skipping a mesh whose box the ray misses never changes the result
		if !mesh.bbox.Hit(ray, 0, closestSoFar) {
			continue
		}

		meshIndex, mesh := meshIndex, mesh
		mesh.bvh.Traverse(ray, closestSoFar, func(faceIndex int) float64 {
			a, b, c := mesh.Triangle(faceIndex)
			// Widen the bound by one ulp so an equal-t face can still compete on index
			hit, ok := IntersectTriangle(ray, a, b, c, math.Nextafter(closestSoFar, math.Inf(1)))
			if !ok {
				return closestSoFar
			}

			nearer := hit.T < closestSoFar
			earlierTie := hit.T == closestSoFar && bestMesh == meshIndex && faceIndex < bestFace
			if nearer || earlierTie {
				closestSoFar = hit.T
				best = hit
				bestMesh, bestFace = meshIndex, faceIndex
			}
			return closestSoFar
		})
	}

	if bestMesh < 0 {
		return HitRecord{}, false
	}

	mesh := ti.Meshes[bestMesh]
	return HitRecord{
		Point:     ray.At(best.T),
		Normal:    mesh.FaceNormal(bestFace),
		T:         best.T,
		Kind:      PrimitiveTriangle,
		MeshIndex: bestMesh,
		FaceIndex: bestFace,
		Beta:      best.Beta,
		Gamma:     best.Gamma,
		Material:  mesh.Material,
	}, true
}
