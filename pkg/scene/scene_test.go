package scene

import (
	"errors"
	"math"
	"testing"

	"github.com/df07/go-raycaster/pkg/core"
	"github.com/df07/go-raycaster/pkg/geometry"
	"github.com/df07/go-raycaster/pkg/material"
)

func TestScene_Validate(t *testing.T) {
	sphere := geometry.NewSphere(core.NewVec3(0, 0, 0), 1, material.Grayscale())

	tests := []struct {
		name    string
		scene   Scene
		wantErr error
	}{
		{"valid", Scene{Width: 10, Height: 10, Spheres: []geometry.Sphere{sphere}}, nil},
		{"zero width", Scene{Width: 0, Height: 10, Spheres: []geometry.Sphere{sphere}}, ErrInvalidDimensions},
		{"negative height", Scene{Width: 10, Height: -1, Spheres: []geometry.Sphere{sphere}}, ErrInvalidDimensions},
		{"empty", Scene{Width: 10, Height: 10}, ErrEmptyScene},
		{
			"bad radius",
			Scene{Width: 10, Height: 10, Spheres: []geometry.Sphere{geometry.NewSphere(core.NewVec3(0, 0, 0), 0, material.Grayscale())}},
			ErrInvalidSphere,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.scene.Validate()
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Expected %v, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestScene_CountsAndBounds(t *testing.T) {
	s := &Scene{Width: 4, Height: 4}

	if _, ok := s.BoundingBox(); ok {
		t.Error("Empty scene should have no bounding box")
	}

	s.AddSphere(geometry.NewSphere(core.NewVec3(0, 0, 0), 1, material.Grayscale()))
	s.AddMesh(geometry.NewMesh("tri",
		[]core.Vec3{core.NewVec3(2, 0, 0), core.NewVec3(3, 0, 0), core.NewVec3(2, 1, 0)},
		[][3]int{{0, 1, 2}},
		material.Grayscale()))
	s.AddPointLight(core.NewVec3(-1, 1, 1))

	if got := s.GetPrimitiveCount(); got != 2 {
		t.Errorf("Expected 2 primitives, got %d", got)
	}
	if len(s.Lights) != 1 {
		t.Errorf("Expected 1 light, got %d", len(s.Lights))
	}

	box, ok := s.BoundingBox()
	if !ok {
		t.Fatal("Expected a bounding box")
	}
	if box.Min.X > -1 || box.Max.X < 3 || box.Min.Y > -1 || box.Max.Y < 1 {
		t.Errorf("Bounding box %v does not cover the scene", box)
	}
}

func TestScene_Intersector(t *testing.T) {
	s := &Scene{Width: 100, Height: 100, CameraConfig: geometry.NewOrthographicConfig(100, 100)}
	s.AddSphere(geometry.NewSphere(core.NewVec3(0, 0, 0), 0.5, material.Grayscale()))

	// A quad in front of the sphere covering the right half of the image
	s.AddMesh(geometry.NewMesh("quad",
		[]core.Vec3{
			core.NewVec3(0.1, -1, 0.8), core.NewVec3(1, -1, 0.8),
			core.NewVec3(1, 1, 0.8), core.NewVec3(0.1, 1, 0.8),
		},
		[][3]int{{0, 1, 2}, {0, 2, 3}},
		material.NewDiffuse(core.NewVec3(1, 0, 0))))

	camera := s.NewCamera()
	intersector := s.Intersector(camera)

	tests := []struct {
		name     string
		i, j     int
		wantHit  bool
		wantKind geometry.PrimitiveKind
		wantZ    float64
	}{
		{"left half hits sphere", 40, 50, true, geometry.PrimitiveSphere, math.Sqrt(0.25 - 0.04)},
		{"right half hits quad first", 60, 50, true, geometry.PrimitiveTriangle, 0.8},
		{"corner misses", 0, 0, false, geometry.PrimitiveNone, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hit, ok := intersector.Intersect(camera.GetRay(tt.i, tt.j))
			if ok != tt.wantHit {
				t.Fatalf("Expected hit=%v, got %v", tt.wantHit, ok)
			}
			if !ok {
				return
			}
			if hit.Kind != tt.wantKind {
				t.Errorf("Expected %v, got %v", tt.wantKind, hit.Kind)
			}
			if math.Abs(hit.Point.Z-tt.wantZ) > 1e-9 {
				t.Errorf("Expected z=%f, got %f", tt.wantZ, hit.Point.Z)
			}
		})
	}
}
