package scene

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/df07/go-raycaster/pkg/geometry"
	"github.com/df07/go-raycaster/pkg/material"
)

const tetraOFF = `OFF
4 4 0
0 0 0
1 0 0
0 1 0
0 0 1
3 0 2 1
3 0 1 3
3 0 3 2
3 1 2 3
`

func writeOFF(t *testing.T, dir, name string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(tetraOFF), 0644); err != nil {
		t.Fatalf("Failed to write %s: %v", name, err)
	}
}

func TestPresets_Listing(t *testing.T) {
	list := Presets()
	if len(list) != len(presets) {
		t.Fatalf("Expected %d presets, got %d", len(presets), len(list))
	}
	for i := 1; i < len(list); i++ {
		if list[i-1].Name >= list[i].Name {
			t.Errorf("Presets not sorted: %s before %s", list[i-1].Name, list[i].Name)
		}
	}
}

func TestNewPresetScene_BuiltIns(t *testing.T) {
	tests := []struct {
		name           string
		projection     geometry.Projection
		spheres        int
		meshes         int
		lights         int
		blinnPhongSeen bool
	}{
		{"single-sphere", geometry.Orthographic, 1, 0, 1, false},
		{"spheres-ortho", geometry.Orthographic, 3, 0, 1, false},
		{"shaded-ortho", geometry.Orthographic, 2, 0, 2, true},
		{"spheres-perspective", geometry.Perspective, 3, 0, 1, false},
		{"shaded-perspective", geometry.Perspective, 2, 0, 2, true},
		{"combined", geometry.Perspective, 2, 1, 2, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := NewPresetScene(tt.name, PresetOptions{Width: 64, Height: 48})
			if err != nil {
				t.Fatalf("NewPresetScene failed: %v", err)
			}
			if err := s.Validate(); err != nil {
				t.Errorf("Preset scene invalid: %v", err)
			}
			if s.Name != tt.name {
				t.Errorf("Expected name %s, got %s", tt.name, s.Name)
			}
			if s.Width != 64 || s.Height != 48 {
				t.Errorf("Expected 64x48, got %dx%d", s.Width, s.Height)
			}
			if s.CameraConfig.Projection != tt.projection {
				t.Errorf("Expected %v camera, got %v", tt.projection, s.CameraConfig.Projection)
			}
			if len(s.Spheres) != tt.spheres || len(s.Meshes) != tt.meshes || len(s.Lights) != tt.lights {
				t.Errorf("Expected %d spheres, %d meshes, %d lights; got %d, %d, %d",
					tt.spheres, tt.meshes, tt.lights, len(s.Spheres), len(s.Meshes), len(s.Lights))
			}

			seen := false
			for _, sphere := range s.Spheres {
				if sphere.Material.Model == material.BlinnPhong {
					seen = true
				}
			}
			if seen != tt.blinnPhongSeen {
				t.Errorf("Expected Blinn-Phong sphere present=%v, got %v", tt.blinnPhongSeen, seen)
			}
		})
	}
}

func TestNewPresetScene_DefaultDimensions(t *testing.T) {
	s, err := NewPresetScene("single-sphere", PresetOptions{})
	if err != nil {
		t.Fatalf("NewPresetScene failed: %v", err)
	}
	if s.Width != DefaultWidth || s.Height != DefaultHeight {
		t.Errorf("Expected %dx%d, got %dx%d", DefaultWidth, DefaultHeight, s.Width, s.Height)
	}
}

func TestNewPresetScene_Errors(t *testing.T) {
	tests := []struct {
		name    string
		scene   string
		opts    PresetOptions
		wantErr error
	}{
		{"unknown", "no-such-scene", PresetOptions{}, ErrUnknownScene},
		{"negative width", "single-sphere", PresetOptions{Width: -5}, ErrInvalidDimensions},
		{"meshes without data", "meshes", PresetOptions{}, ErrMissingDataDir},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewPresetScene(tt.scene, tt.opts)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Expected %v, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestNewPresetScene_Meshes(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"cube.off", "bunny.off", "bumpy_cube.off"} {
		writeOFF(t, dir, name)
	}

	s, err := NewPresetScene("meshes", PresetOptions{Width: 32, Height: 32, DataDir: dir})
	if err != nil {
		t.Fatalf("NewPresetScene failed: %v", err)
	}

	if len(s.Meshes) != 3 {
		t.Fatalf("Expected 3 meshes, got %d", len(s.Meshes))
	}

	// Mesh order and names follow the file list
	wantNames := []string{"cube", "bunny", "bumpy_cube"}
	for i, mesh := range s.Meshes {
		if mesh.Name != wantNames[i] {
			t.Errorf("Mesh %d: expected %s, got %s", i, wantNames[i], mesh.Name)
		}
	}

	// cube scaled by 5, bunny by 0.1
	if s.Meshes[0].Vertices[1].X != 5 {
		t.Errorf("Expected cube vertex scaled to 5, got %v", s.Meshes[0].Vertices[1])
	}
	if s.Meshes[1].Vertices[1].X != 0.1 {
		t.Errorf("Expected bunny vertex scaled to 0.1, got %v", s.Meshes[1].Vertices[1])
	}
	if s.Shading.Ambient != 0 {
		t.Errorf("Expected mesh scene without ambient, got %f", s.Shading.Ambient)
	}
}

func TestNewPresetScene_MissingMeshFile(t *testing.T) {
	dir := t.TempDir()
	writeOFF(t, dir, "cube.off")

	if _, err := NewPresetScene("meshes", PresetOptions{DataDir: dir}); err == nil {
		t.Error("Expected error when mesh files are missing")
	}
}
