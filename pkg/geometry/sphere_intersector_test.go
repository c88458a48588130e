package geometry

import (
	"math"
	"testing"

	"github.com/df07/go-raycaster/pkg/core"
	"github.com/df07/go-raycaster/pkg/material"
)

var downZ = core.NewVec3(0, 0, -1)

func TestSphereIntersector_AxisAligned_NearestWins(t *testing.T) {
	red := material.NewDiffuse(core.NewVec3(1, 0, 0))
	blue := material.NewDiffuse(core.NewVec3(0, 0, 1))
	spheres := []Sphere{
		NewSphere(core.NewVec3(0, 0, 0), 0.5, red),    // top at z=0.5
		NewSphere(core.NewVec3(0, 0, 0.3), 0.3, blue), // top at z=0.6
	}
	si := NewSphereIntersector(spheres, StrategyAxisAligned)

	hit, ok := si.Intersect(core.NewRay(core.NewVec3(0, 0, 1), downZ))
	if !ok {
		t.Fatal("Expected hit, got miss")
	}
	if hit.SphereIndex != 1 {
		t.Errorf("Expected sphere 1 to be nearest, got %d", hit.SphereIndex)
	}
	if math.Abs(hit.Point.Z-0.6) > 1e-12 {
		t.Errorf("Expected z=0.6, got %f", hit.Point.Z)
	}
	if math.Abs(hit.T-0.4) > 1e-12 {
		t.Errorf("Expected t=0.4, got %f", hit.T)
	}
	if hit.Material != blue {
		t.Errorf("Expected blue material, got %v", hit.Material)
	}

	// Outside the small sphere's silhouette only the large one is hit
	hit, ok = si.Intersect(core.NewRay(core.NewVec3(0.4, 0, 1), downZ))
	if !ok || hit.SphereIndex != 0 {
		t.Errorf("Expected sphere 0 at x=0.4, got hit=%t index=%d", ok, hit.SphereIndex)
	}
}

func TestSphereIntersector_AxisAligned_TieKeepsFirst(t *testing.T) {
	first := material.NewDiffuse(core.NewVec3(1, 0, 0))
	second := material.NewDiffuse(core.NewVec3(0, 1, 0))
	spheres := []Sphere{
		NewSphere(core.NewVec3(0, 0, 0), 0.5, first),
		NewSphere(core.NewVec3(0, 0, 0), 0.5, second),
	}

	for _, strategy := range []SphereStrategy{StrategyAxisAligned, StrategyGeneral} {
		hit, ok := NewSphereIntersector(spheres, strategy).Intersect(core.NewRay(core.NewVec3(0.1, 0.1, 1), downZ))
		if !ok {
			t.Fatalf("strategy %d: expected hit", strategy)
		}
		if hit.SphereIndex != 0 {
			t.Errorf("strategy %d: expected first sphere on tie, got %d", strategy, hit.SphereIndex)
		}
	}
}

func TestSphereIntersector_AxisAligned_RejectsBehindOrigin(t *testing.T) {
	spheres := []Sphere{NewSphere(core.NewVec3(0, 0, 3), 0.5, material.Grayscale())}
	si := NewSphereIntersector(spheres, StrategyAxisAligned)

	if hit, ok := si.Intersect(core.NewRay(core.NewVec3(0, 0, 1), downZ)); ok {
		t.Errorf("Expected miss for sphere behind the camera, got hit at %v", hit.Point)
	}
}

func TestSphereIntersector_AxisAligned_Tangent(t *testing.T) {
	spheres := []Sphere{NewSphere(core.NewVec3(0, 0, 0), 0.5, material.Grayscale())}
	si := NewSphereIntersector(spheres, StrategyAxisAligned)

	hit, ok := si.Intersect(core.NewRay(core.NewVec3(0.5, 0, 1), downZ))
	if !ok {
		t.Fatal("Expected tangent ray to hit")
	}
	if math.Abs(hit.Point.Z) > 1e-12 {
		t.Errorf("Expected tangent point at z=0, got %f", hit.Point.Z)
	}
}

func TestSphereIntersector_General_GlobalNearest(t *testing.T) {
	spheres := []Sphere{
		NewSphere(core.NewVec3(0, 0, -3), 1.0, material.Grayscale()),
		NewSphere(core.NewVec3(0, 0, 0), 1.0, material.Grayscale()),
		NewSphere(core.NewVec3(0, 0, 5), 1.0, material.Grayscale()), // behind the origin
	}
	si := NewSphereIntersector(spheres, StrategyGeneral)

	hit, ok := si.Intersect(core.NewRay(core.NewVec3(0, 0, 2), downZ))
	if !ok {
		t.Fatal("Expected hit, got miss")
	}
	if hit.SphereIndex != 1 {
		t.Errorf("Expected sphere 1, got %d", hit.SphereIndex)
	}
	if hit.Point.Subtract(core.NewVec3(0, 0, 1)).Length() > 1e-12 {
		t.Errorf("Expected point (0,0,1), got %v", hit.Point)
	}
	if hit.Normal.Subtract(core.NewVec3(0, 0, 1)).Length() > 1e-12 {
		t.Errorf("Expected normal (0,0,1), got %v", hit.Normal)
	}
}

// grazing reports whether (x, y) lies within tolerance of any sphere's silhouette
func grazing(spheres []Sphere, x, y, tolerance float64) bool {
	for _, sphere := range spheres {
		dx, dy := x-sphere.Center.X, y-sphere.Center.Y
		if math.Abs(sphere.Radius*sphere.Radius-(dx*dx+dy*dy)) < tolerance {
			return true
		}
	}
	return false
}

func TestSphereIntersector_StrategiesAgree(t *testing.T) {
	spheres := []Sphere{
		NewSphere(core.NewVec3(0.1, 0.1, 0.1), 0.5, material.Grayscale()),
		NewSphere(core.NewVec3(-0.2, 0.1, 0.2), 0.3, material.Grayscale()),
		NewSphere(core.NewVec3(0.3, -0.4, 0.1), 0.3, material.Grayscale()),
		// Straddles the plane z=1 the rays start from
		NewSphere(core.NewVec3(-0.6, -0.6, 0.95), 0.3, material.Grayscale()),
	}
	axis := NewSphereIntersector(spheres, StrategyAxisAligned)
	general := NewSphereIntersector(spheres, StrategyGeneral)
	auto := NewSphereIntersector(spheres, StrategyAuto)

	for x := -1.0; x <= 1.0; x += 0.037 {
		for y := -1.0; y <= 1.0; y += 0.041 {
			ray := core.NewRay(core.NewVec3(x, y, 1), downZ)
			a, okA := axis.Intersect(ray)
			g, okG := general.Intersect(ray)
			u, okU := auto.Intersect(ray)

			if okA != okG || okA != okU {
				if !grazing(spheres, x, y, 1e-9) {
					t.Errorf("At (%f,%f) strategies disagree: axis=%t general=%t auto=%t", x, y, okA, okG, okU)
				}
				continue
			}
			if !okA {
				continue
			}
			if a.Point.Subtract(g.Point).Length() > 1e-6 {
				t.Errorf("At (%f,%f) axis point %v differs from general point %v", x, y, a.Point, g.Point)
			}
			if math.Abs(a.T-g.T) > 1e-6 {
				t.Errorf("At (%f,%f) axis t %f differs from general t %f", x, y, a.T, g.T)
			}
			if a.SphereIndex != u.SphereIndex {
				t.Errorf("At (%f,%f) auto strategy picked %d, axis picked %d", x, y, u.SphereIndex, a.SphereIndex)
			}
		}
	}
}

func TestSphereIntersector_OriginInsideSphere(t *testing.T) {
	spheres := []Sphere{NewSphere(core.NewVec3(0, 0, 0.9), 0.5, material.Grayscale())}
	ray := core.NewRay(core.NewVec3(0, 0, 1), downZ)

	for _, strategy := range []SphereStrategy{StrategyAxisAligned, StrategyGeneral, StrategyAuto} {
		hit, ok := NewSphereIntersector(spheres, strategy).Intersect(ray)
		if !ok {
			t.Errorf("strategy %d: expected the far cap to be hit", strategy)
			continue
		}
		if hit.Point.Subtract(core.NewVec3(0, 0, 0.4)).Length() > 1e-12 {
			t.Errorf("strategy %d: expected point (0,0,0.4), got %v", strategy, hit.Point)
		}
		if math.Abs(hit.T-0.6) > 1e-12 {
			t.Errorf("strategy %d: expected t=0.6, got %f", strategy, hit.T)
		}
		if hit.Normal.Subtract(core.NewVec3(0, 0, -1)).Length() > 1e-12 {
			t.Errorf("strategy %d: expected normal (0,0,-1), got %v", strategy, hit.Normal)
		}
	}
}

func TestSphereIntersector_Empty(t *testing.T) {
	si := NewSphereIntersector(nil, StrategyAuto)
	if _, ok := si.Intersect(core.NewRay(core.NewVec3(0, 0, 1), downZ)); ok {
		t.Error("Expected miss with no spheres")
	}
}
