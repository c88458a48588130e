package geometry

import (
	"math"
	"math/rand"
	"testing"

	"github.com/df07/go-raycaster/pkg/core"
	"github.com/df07/go-raycaster/pkg/material"
)

// newQuadMesh creates a unit quad (2 triangles) in the plane z=depth
func newQuadMesh(name string, depth float64, mat material.Material) *Mesh {
	vertices := []core.Vec3{
		core.NewVec3(0, 0, depth), // 0
		core.NewVec3(1, 0, depth), // 1
		core.NewVec3(1, 1, depth), // 2
		core.NewVec3(0, 1, depth), // 3
	}
	faces := [][3]int{
		{0, 1, 2}, // first triangle
		{0, 2, 3}, // second triangle
	}
	return NewMesh(name, vertices, faces, mat)
}

func TestMesh_Creation(t *testing.T) {
	mesh := newQuadMesh("quad", 0, material.Grayscale())

	if mesh.GetTriangleCount() != 2 {
		t.Errorf("Expected 2 triangles, got %d", mesh.GetTriangleCount())
	}

	bbox := mesh.BoundingBox()
	if bbox.Min.Subtract(core.NewVec3(0, 0, 0)).Length() > 1e-6 {
		t.Errorf("Expected min near (0,0,0), got %v", bbox.Min)
	}
	if bbox.Max.Subtract(core.NewVec3(1, 1, 0)).Length() > 1e-6 {
		t.Errorf("Expected max near (1,1,0), got %v", bbox.Max)
	}

	normal := mesh.FaceNormal(1)
	if normal.Subtract(core.NewVec3(0, 0, 1)).Length() > 1e-12 {
		t.Errorf("Expected face normal (0,0,1), got %v", normal)
	}
}

func TestTriangleIntersector_Hit(t *testing.T) {
	mesh := newQuadMesh("quad", 0, material.Grayscale())
	ti := NewTriangleIntersector([]*Mesh{mesh})

	tests := []struct {
		name         string
		ray          core.Ray
		shouldHit    bool
		expectedFace int
	}{
		{"first triangle", core.NewRay(core.NewVec3(0.7, 0.2, 1), core.NewVec3(0, 0, -1)), true, 0},
		{"second triangle", core.NewRay(core.NewVec3(0.2, 0.7, 1), core.NewVec3(0, 0, -1)), true, 1},
		{"corner", core.NewRay(core.NewVec3(0, 0, 1), core.NewVec3(0, 0, -1)), true, 0},
		{"outside", core.NewRay(core.NewVec3(2, 0.5, 1), core.NewVec3(0, 0, -1)), false, -1},
		{"parallel", core.NewRay(core.NewVec3(0.5, 0.5, 1), core.NewVec3(1, 0, 0)), false, -1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hit, ok := ti.Intersect(tt.ray)
			if ok != tt.shouldHit {
				t.Fatalf("Expected hit=%t, got %t", tt.shouldHit, ok)
			}
			if !ok {
				return
			}
			if hit.Kind != PrimitiveTriangle {
				t.Errorf("Expected triangle hit, got %v", hit.Kind)
			}
			if hit.FaceIndex != tt.expectedFace {
				t.Errorf("Expected face %d, got %d", tt.expectedFace, hit.FaceIndex)
			}
			if math.Abs(hit.T-1) > 1e-12 {
				t.Errorf("Expected t=1, got %f", hit.T)
			}

			alpha, beta, gamma := hit.Barycentric()
			if math.Abs(alpha+beta+gamma-1) > 1e-12 {
				t.Errorf("Expected barycentric sum 1, got %f", alpha+beta+gamma)
			}
		})
	}
}

func TestTriangleIntersector_NearestAcrossMeshes(t *testing.T) {
	far := newQuadMesh("far", 0, material.NewDiffuse(core.NewVec3(1, 0, 0)))
	near := newQuadMesh("near", 0.5, material.NewDiffuse(core.NewVec3(0, 1, 0)))
	ti := NewTriangleIntersector([]*Mesh{far, near})

	hit, ok := ti.Intersect(core.NewRay(core.NewVec3(0.3, 0.3, 2), core.NewVec3(0, 0, -1)))
	if !ok {
		t.Fatal("Expected hit, got miss")
	}
	if hit.MeshIndex != 1 {
		t.Errorf("Expected nearer mesh 1, got %d", hit.MeshIndex)
	}
	if math.Abs(hit.Point.Z-0.5) > 1e-12 {
		t.Errorf("Expected hit at z=0.5, got %f", hit.Point.Z)
	}
	if hit.Material != near.Material {
		t.Errorf("Expected material of the near mesh, got %v", hit.Material)
	}
}

func TestTriangleIntersector_TieKeepsFirst(t *testing.T) {
	first := newQuadMesh("first", 0, material.NewDiffuse(core.NewVec3(1, 0, 0)))
	second := newQuadMesh("second", 0, material.NewDiffuse(core.NewVec3(0, 1, 0)))
	ti := NewTriangleIntersector([]*Mesh{first, second})

	hit, ok := ti.Intersect(core.NewRay(core.NewVec3(0.3, 0.6, 2), core.NewVec3(0, 0, -1)))
	if !ok {
		t.Fatal("Expected hit, got miss")
	}
	if hit.MeshIndex != 0 || hit.FaceIndex != 1 {
		t.Errorf("Expected mesh 0 face 1, got mesh %d face %d", hit.MeshIndex, hit.FaceIndex)
	}
}

func TestTriangleIntersector_TMax(t *testing.T) {
	ti := NewTriangleIntersector([]*Mesh{newQuadMesh("quad", 0, material.Grayscale())})
	ti.TMax = 0.5

	if _, ok := ti.Intersect(core.NewRay(core.NewVec3(0.3, 0.3, 1), core.NewVec3(0, 0, -1))); ok {
		t.Error("Expected hit beyond TMax to be rejected")
	}
}

// Bounding box culling must not change which face is reported
func TestTriangleIntersector_MatchesExhaustiveScan(t *testing.T) {
	random := rand.New(rand.NewSource(11))
	var meshes []*Mesh
	for m := 0; m < 3; m++ {
		var vertices []core.Vec3
		var faces [][3]int
		for f := 0; f < 20; f++ {
			base := len(vertices)
			for v := 0; v < 3; v++ {
				vertices = append(vertices, core.NewVec3(
					random.Float64()*2-1+float64(m)*0.5,
					random.Float64()*2-1,
					random.Float64()*2-1,
				))
			}
			faces = append(faces, [3]int{base, base + 1, base + 2})
		}
		meshes = append(meshes, NewMesh("random", vertices, faces, material.Grayscale()))
	}
	ti := NewTriangleIntersector(meshes)

	for trial := 0; trial < 500; trial++ {
		origin := core.NewVec3(random.Float64()*4-2, random.Float64()*4-2, 3)
		target := core.NewVec3(random.Float64()*2-1, random.Float64()*2-1, 0)
		ray := core.NewRay(origin, target.Subtract(origin).Normalize())

		expectedMesh, expectedFace := -1, -1
		best := math.Inf(1)
		for mi, mesh := range meshes {
			for fi := range mesh.Faces {
				a, b, c := mesh.Triangle(fi)
				if hit, ok := IntersectTriangle(ray, a, b, c, best); ok {
					best = hit.T
					expectedMesh, expectedFace = mi, fi
				}
			}
		}

		hit, ok := ti.Intersect(ray)
		if ok != (expectedMesh >= 0) {
			t.Fatalf("Trial %d: expected hit=%t, got %t", trial, expectedMesh >= 0, ok)
		}
		if ok && (hit.MeshIndex != expectedMesh || hit.FaceIndex != expectedFace) {
			t.Errorf("Trial %d: expected mesh %d face %d, got mesh %d face %d",
				trial, expectedMesh, expectedFace, hit.MeshIndex, hit.FaceIndex)
		}
	}
}

func TestTriangleIntersector_DuplicateFacesKeepLowestIndex(t *testing.T) {
	// A strip of 30 faces along x; faces 3 and 27 are the same triangle
	var vertices []core.Vec3
	var faces [][3]int
	for f := 0; f < 30; f++ {
		x := float64(f)
		if f == 27 {
			x = 3
		}
		base := len(vertices)
		vertices = append(vertices,
			core.NewVec3(x, 0, 0),
			core.NewVec3(x+1, 0, 0),
			core.NewVec3(x, 1, 0),
		)
		faces = append(faces, [3]int{base, base + 1, base + 2})
	}
	mesh := NewMesh("strip", vertices, faces, material.Grayscale())
	ti := NewTriangleIntersector([]*Mesh{mesh})

	if stats := mesh.BVHStats(); stats.LeafNodes < 2 || stats.Primitives != 30 {
		t.Fatalf("Expected a split hierarchy over 30 faces, got %+v", stats)
	}

	hit, ok := ti.Intersect(core.NewRay(core.NewVec3(3.2, 0.2, 1), core.NewVec3(0, 0, -1)))
	if !ok {
		t.Fatal("Expected hit, got miss")
	}
	if hit.FaceIndex != 3 {
		t.Errorf("Expected face 3, got face %d", hit.FaceIndex)
	}
}
