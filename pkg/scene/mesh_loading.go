package scene

import (
	"fmt"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/df07/go-raycaster/pkg/core"
	"github.com/df07/go-raycaster/pkg/geometry"
	"github.com/df07/go-raycaster/pkg/loaders"
	"github.com/df07/go-raycaster/pkg/material"
)

// MeshSpec describes a mesh to load from an OFF file
type MeshSpec struct {
	File      string                `json:"file"`      // Relative paths resolve against the scene's base directory
	Translate core.Vec3             `json:"translate"` // Applied before Scale
	Scale     float64               `json:"scale"`     // Uniform scale, 0 means 1
	Color     core.Vec3             `json:"color"`
	Model     material.ShadingModel `json:"model"`
}

// Material returns the material for the mesh
func (ms MeshSpec) Material() material.Material {
	return material.Material{Color: ms.Color, Model: ms.Model}
}

func (ms MeshSpec) load(baseDir string) (*geometry.Mesh, error) {
	if ms.File == "" {
		return nil, ErrMissingMeshFile
	}

	path := ms.File
	if !filepath.IsAbs(path) {
		path = filepath.Join(baseDir, path)
	}

	data, err := loaders.LoadOFF(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load mesh %s: %w", ms.File, err)
	}

	transform := loaders.Transform{Translate: ms.Translate, Scale: ms.Scale}
	name := strings.TrimSuffix(filepath.Base(ms.File), filepath.Ext(ms.File))

	mesh := geometry.NewMesh(name, transform.Apply(data.Vertices), data.Faces, ms.Material())
	stats := mesh.BVHStats()
	logger.Debugf("mesh %s: %d faces in %d leaves, max depth %d", name, stats.Primitives, stats.LeafNodes, stats.MaxDepth)

	return mesh, nil
}

// LoadMeshes reads every mesh file concurrently. The returned meshes keep the order
// of specs, so the mesh index of a hit always refers back to the same entry.
func LoadMeshes(specs []MeshSpec, baseDir string) ([]*geometry.Mesh, error) {
	startTime := time.Now()
	meshes := make([]*geometry.Mesh, len(specs))

	var group errgroup.Group
	group.SetLimit(runtime.NumCPU())

	for i, spec := range specs {
		i, spec := i, spec
		group.Go(func() error {
			mesh, err := spec.load(baseDir)
			if err != nil {
				return err
			}
			meshes[i] = mesh
			return nil
		})
	}

	if err := group.Wait(); err != nil {
		return nil, err
	}

	triangles := 0
	for _, mesh := range meshes {
		triangles += mesh.GetTriangleCount()
	}
	logger.Infof("loaded %d meshes (%d triangles) in %v", len(meshes), triangles, time.Since(startTime))

	return meshes, nil
}
