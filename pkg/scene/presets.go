package scene

import (
	"fmt"
	"sort"

	"github.com/df07/go-raycaster/pkg/core"
	"github.com/df07/go-raycaster/pkg/geometry"
	"github.com/df07/go-raycaster/pkg/integrator"
	"github.com/df07/go-raycaster/pkg/material"
)

const (
	DefaultWidth  = 800
	DefaultHeight = 800
)

// PresetOptions controls how a built-in scene is built
type PresetOptions struct {
	Width   int    // 0 means DefaultWidth
	Height  int    // 0 means DefaultHeight
	DataDir string // Directory holding the OFF files, required by presets that load meshes
}

func (o PresetOptions) dimensions() (int, int) {
	width, height := o.Width, o.Height
	if width == 0 {
		width = DefaultWidth
	}
	if height == 0 {
		height = DefaultHeight
	}
	return width, height
}

// Preset is a named built-in scene
type Preset struct {
	Name         string `json:"name"`
	Description  string `json:"description"`
	Projection   string `json:"projection"`
	RequiresData bool   `json:"requiresData"`

	build func(width, height int, dataDir string) (*Scene, error)
}

var presets = map[string]Preset{
	"single-sphere": {
		Name:        "single-sphere",
		Description: "Grayscale sphere of radius 0.9, one light",
		Projection:  "orthographic",
		build:       newSingleSphereScene,
	},
	"spheres-ortho": {
		Name:        "spheres-ortho",
		Description: "Three overlapping grayscale spheres, one light",
		Projection:  "orthographic",
		build:       spheresBuilder(geometry.Orthographic),
	},
	"shaded-ortho": {
		Name:        "shaded-ortho",
		Description: "Diffuse and Blinn-Phong colored spheres, two lights",
		Projection:  "orthographic",
		build:       shadedBuilder(geometry.Orthographic),
	},
	"spheres-perspective": {
		Name:        "spheres-perspective",
		Description: "Three overlapping grayscale spheres seen from (0,0,2)",
		Projection:  "perspective",
		build:       spheresBuilder(geometry.Perspective),
	},
	"shaded-perspective": {
		Name:        "shaded-perspective",
		Description: "Diffuse and Blinn-Phong colored spheres seen from (0,0,2)",
		Projection:  "perspective",
		build:       shadedBuilder(geometry.Perspective),
	},
	"meshes": {
		Name:         "meshes",
		Description:  "Cube, bunny and bumpy cube OFF meshes, two lights",
		Projection:   "perspective",
		RequiresData: true,
		build:        newMeshesScene,
	},
	"combined": {
		Name:        "combined",
		Description: "Colored spheres resting on a tetrahedron, two lights",
		Projection:  "perspective",
		build:       newCombinedScene,
	},
}

// Presets returns the built-in scenes sorted by name
func Presets() []Preset {
	list := make([]Preset, 0, len(presets))
	for _, preset := range presets {
		list = append(list, preset)
	}
	sort.Slice(list, func(i, j int) bool {
		return list[i].Name < list[j].Name
	})
	return list
}

// NewPresetScene builds the named built-in scene
func NewPresetScene(name string, opts PresetOptions) (*Scene, error) {
	preset, ok := presets[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownScene, name)
	}

	width, height := opts.dimensions()
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: got %dx%d", ErrInvalidDimensions, width, height)
	}
	if preset.RequiresData && opts.DataDir == "" {
		return nil, fmt.Errorf("%w: scene %q loads mesh files", ErrMissingDataDir, name)
	}

	s, err := preset.build(width, height, opts.DataDir)
	if err != nil {
		return nil, err
	}
	s.Name = name

	logger.Debugf("built scene %s: %d primitives, %d lights", name, s.GetPrimitiveCount(), len(s.Lights))
	return s, nil
}

func newBaseScene(projection geometry.Projection, width, height int) *Scene {
	var cameraConfig geometry.CameraConfig
	if projection == geometry.Perspective {
		cameraConfig = geometry.NewPerspectiveConfig(width, height)
	} else {
		cameraConfig = geometry.NewOrthographicConfig(width, height)
	}

	return &Scene{
		Width:        width,
		Height:       height,
		CameraConfig: cameraConfig,
		Shading:      integrator.DefaultParams(),
	}
}

func newSingleSphereScene(width, height int, _ string) (*Scene, error) {
	s := newBaseScene(geometry.Orthographic, width, height)
	s.AddSphere(geometry.NewSphere(core.NewVec3(0, 0, 0), 0.9, material.Grayscale()))
	s.AddPointLight(core.NewVec3(-1, 1, 1))
	return s, nil
}

func spheresBuilder(projection geometry.Projection) func(int, int, string) (*Scene, error) {
	return func(width, height int, _ string) (*Scene, error) {
		s := newBaseScene(projection, width, height)
		gray := material.Grayscale()
		s.AddSphere(geometry.NewSphere(core.NewVec3(0.1, 0.1, 0.1), 0.5, gray))
		s.AddSphere(geometry.NewSphere(core.NewVec3(-0.2, 0.1, 0.2), 0.3, gray))
		s.AddSphere(geometry.NewSphere(core.NewVec3(0.3, -0.4, 0.1), 0.3, gray))
		s.AddPointLight(core.NewVec3(-1, 1, 1))
		return s, nil
	}
}

func shadedBuilder(projection geometry.Projection) func(int, int, string) (*Scene, error) {
	return func(width, height int, _ string) (*Scene, error) {
		s := newBaseScene(projection, width, height)
		addShadedSpheres(s)
		return s, nil
	}
}

func addShadedSpheres(s *Scene) {
	s.AddSphere(geometry.NewSphere(core.NewVec3(0.3, 0.3, 0.3), 0.3,
		material.NewDiffuse(core.NewVec3(0.3, 1.0, 0.6))))
	s.AddSphere(geometry.NewSphere(core.NewVec3(-0.5, -0.4, -0.7), 0.4,
		material.NewBlinnPhong(core.NewVec3(0.3, 0.1, 0.9))))
	s.AddPointLight(core.NewVec3(-1, 1, 1))
	s.AddPointLight(core.NewVec3(1, 1, 1))
}

// meshSpecs are the OFF meshes of the mesh scene with their placement
var meshSpecs = []MeshSpec{
	{File: "cube.off", Scale: 5, Color: core.NewVec3(0.3, 1.0, 0.6), Model: material.BlinnPhong},
	{File: "bunny.off", Scale: 0.1, Color: core.NewVec3(0.3, 0.1, 0.9), Model: material.BlinnPhong},
	{File: "bumpy_cube.off", Scale: 1, Color: core.NewVec3(0.9, 0.6, 0.3), Model: material.BlinnPhong},
}

func newMeshesScene(width, height int, dataDir string) (*Scene, error) {
	s := newBaseScene(geometry.Perspective, width, height)

	meshes, err := LoadMeshes(meshSpecs, dataDir)
	if err != nil {
		return nil, err
	}
	s.Meshes = meshes

	// Meshes are lit without the ambient term
	s.Shading.Ambient = 0
	s.AddPointLight(core.NewVec3(-1, 1, 1))
	s.AddPointLight(core.NewVec3(1, 1, 1))
	return s, nil
}

func newCombinedScene(width, height int, _ string) (*Scene, error) {
	s := newBaseScene(geometry.Perspective, width, height)
	addShadedSpheres(s)

	vertices := []core.Vec3{
		core.NewVec3(-0.8, -0.9, 0.2),
		core.NewVec3(0.8, -0.9, 0.2),
		core.NewVec3(0, -0.9, -1.2),
		core.NewVec3(0, 0.1, -0.4),
	}
	faces := [][3]int{
		{0, 1, 3},
		{1, 2, 3},
		{2, 0, 3},
		{0, 2, 1},
	}
	s.AddMesh(geometry.NewMesh("tetrahedron", vertices, faces, material.NewDiffuse(core.NewVec3(0.9, 0.9, 0.9))))
	return s, nil
}
