package scene

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/df07/go-raycaster/pkg/core"
	"github.com/df07/go-raycaster/pkg/geometry"
	"github.com/df07/go-raycaster/pkg/integrator"
	"github.com/df07/go-raycaster/pkg/material"
)

// SphereSpec describes one sphere of a scene file
type SphereSpec struct {
	Center core.Vec3             `json:"center"`
	Radius float64               `json:"radius"`
	Color  *core.Vec3            `json:"color,omitempty"` // nil means white
	Model  material.ShadingModel `json:"model"`
}

// Config is the JSON scene description
type Config struct {
	Name        string `json:"name"`
	Description string `json:"description"`

	Width  int `json:"width"`  // 0 means DefaultWidth
	Height int `json:"height"` // 0 means DefaultHeight

	// Projection selects a standard camera; Camera overrides it entirely when set
	Projection geometry.Projection    `json:"projection"`
	Camera     *geometry.CameraConfig `json:"camera,omitempty"`
	Shading    *integrator.Params     `json:"shading,omitempty"`

	Lights  []core.Vec3  `json:"lights"`
	Spheres []SphereSpec `json:"spheres"`
	Meshes  []MeshSpec   `json:"meshes"`
}

// ReadConfig decodes a JSON scene description. Unknown fields are rejected.
func ReadConfig(r io.Reader) (Config, error) {
	var config Config

	decoder := json.NewDecoder(r)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&config); err != nil {
		return Config{}, fmt.Errorf("failed to decode scene config: %w", err)
	}

	return config, nil
}

// LoadConfigFile reads a JSON scene description from disk
func LoadConfigFile(path string) (Config, error) {
	file, err := os.Open(path)
	if err != nil {
		return Config{}, fmt.Errorf("failed to open scene config: %w", err)
	}
	defer file.Close()

	config, err := ReadConfig(file)
	if err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return config, nil
}

// Build turns the description into a validated scene. Mesh files are resolved
// relative to baseDir and loaded concurrently.
func (c Config) Build(baseDir string) (*Scene, error) {
	width, height := c.Width, c.Height
	if width == 0 {
		width = DefaultWidth
	}
	if height == 0 {
		height = DefaultHeight
	}
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: got %dx%d", ErrInvalidDimensions, width, height)
	}

	s := newBaseScene(c.Projection, width, height)
	s.Name = c.Name
	if c.Camera != nil {
		s.CameraConfig = *c.Camera
	}
	if c.Shading != nil {
		s.Shading = *c.Shading
	}

	for _, position := range c.Lights {
		s.AddPointLight(position)
	}

	for _, spec := range c.Spheres {
		color := core.NewVec3(1, 1, 1)
		if spec.Color != nil {
			color = *spec.Color
		}
		s.AddSphere(geometry.NewSphere(spec.Center, spec.Radius, material.Material{Color: color, Model: spec.Model}))
	}

	if len(c.Meshes) > 0 {
		meshes, err := LoadMeshes(c.Meshes, baseDir)
		if err != nil {
			return nil, err
		}
		s.Meshes = meshes
	}

	if err := s.Validate(); err != nil {
		return nil, err
	}

	logger.Debugf("built scene %q: %d primitives, %d lights", s.Name, s.GetPrimitiveCount(), len(s.Lights))
	return s, nil
}

// LoadSceneFile reads and builds a scene file; width and height override the file's
// dimensions when positive. An explicit camera is resized to the new frame so it
// still covers the same region of the image plane.
func LoadSceneFile(path string, width, height int) (*Scene, error) {
	config, err := LoadConfigFile(path)
	if err != nil {
		return nil, err
	}

	fromWidth, fromHeight := config.Width, config.Height
	if fromWidth == 0 {
		fromWidth = DefaultWidth
	}
	if fromHeight == 0 {
		fromHeight = DefaultHeight
	}
	if width > 0 {
		config.Width = width
	}
	if height > 0 {
		config.Height = height
	}
	if config.Camera != nil && (width > 0 || height > 0) {
		resized := config.Camera.Resize(fromWidth, fromHeight, width, height)
		config.Camera = &resized
	}
	if config.Name == "" {
		config.Name = sceneNameFromPath(path)
	}

	return config.Build(filepath.Dir(path))
}
