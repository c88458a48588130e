package scene

import (
	"errors"
	"fmt"

	"github.com/df07/go-raycaster/pkg/core"
	"github.com/df07/go-raycaster/pkg/geometry"
	"github.com/df07/go-raycaster/pkg/integrator"
	"github.com/df07/go-raycaster/pkg/lights"
	"github.com/df07/go-raycaster/pkg/log"
)

var logger = log.New("scene")

var (
	ErrUnknownScene      = errors.New("scene: unknown scene")
	ErrEmptyScene        = errors.New("scene: scene has no spheres or meshes")
	ErrInvalidDimensions = errors.New("scene: width and height must be positive")
	ErrInvalidSphere     = errors.New("scene: sphere radius must be positive")
	ErrMissingDataDir    = errors.New("scene: data directory required")
	ErrMissingMeshFile   = errors.New("scene: mesh entry has no file")
)

// Scene contains all the elements needed for rendering. It is built once and
// treated as read-only for the duration of a render.
type Scene struct {
	Name   string
	Width  int // Image width in pixels
	Height int // Image height in pixels

	CameraConfig geometry.CameraConfig
	Spheres      []geometry.Sphere
	Meshes       []*geometry.Mesh
	Lights       []lights.PointLight
	Shading      integrator.Params
}

// NewCamera builds the camera described by the scene configuration
func (s *Scene) NewCamera() *geometry.Camera {
	return geometry.NewCamera(s.CameraConfig)
}

// Intersector combines the scene's spheres and meshes into a single nearest-hit query.
// The sphere strategy follows the camera: axis aligned for a straight orthographic view,
// general otherwise.
func (s *Scene) Intersector(camera *geometry.Camera) geometry.Intersector {
	group := make(geometry.Group, 0, 2)
	if len(s.Spheres) > 0 {
		group = append(group, geometry.NewSphereIntersector(s.Spheres, camera.SphereStrategy()))
	}
	if len(s.Meshes) > 0 {
		group = append(group, geometry.NewTriangleIntersector(s.Meshes))
	}
	return group
}

// Integrator returns the shading integrator for the scene's lights
func (s *Scene) Integrator() integrator.Integrator {
	return integrator.NewDirectLighting(s.Lights, s.Shading)
}

// GetPrimitiveCount returns the total number of spheres and triangles in the scene
func (s *Scene) GetPrimitiveCount() int {
	count := len(s.Spheres)
	for _, mesh := range s.Meshes {
		count += mesh.GetTriangleCount()
	}
	return count
}

// BoundingBox returns the bounds of every primitive in the scene
func (s *Scene) BoundingBox() (core.AABB, bool) {
	var box core.AABB
	found := false

	extend := func(other core.AABB) {
		if !found {
			box = other
			found = true
			return
		}
		box = box.Union(other)
	}

	for _, sphere := range s.Spheres {
		extend(sphere.BoundingBox())
	}
	for _, mesh := range s.Meshes {
		if mesh.GetTriangleCount() > 0 {
			extend(mesh.BoundingBox())
		}
	}

	return box, found
}

// Validate checks the scene before rendering
func (s *Scene) Validate() error {
	if s.Width <= 0 || s.Height <= 0 {
		return fmt.Errorf("%w: got %dx%d", ErrInvalidDimensions, s.Width, s.Height)
	}
	if len(s.Spheres) == 0 && len(s.Meshes) == 0 {
		return ErrEmptyScene
	}
	for i, sphere := range s.Spheres {
		if sphere.Radius <= 0 {
			return fmt.Errorf("%w: sphere %d has radius %g", ErrInvalidSphere, i, sphere.Radius)
		}
	}
	return nil
}

// AddSphere adds a sphere to the scene
func (s *Scene) AddSphere(sphere geometry.Sphere) {
	s.Spheres = append(s.Spheres, sphere)
}

// AddMesh adds a triangle mesh to the scene
func (s *Scene) AddMesh(mesh *geometry.Mesh) {
	s.Meshes = append(s.Meshes, mesh)
}

// AddPointLight adds a point light to the scene
func (s *Scene) AddPointLight(position core.Vec3) {
	s.Lights = append(s.Lights, lights.NewPointLight(position))
}
