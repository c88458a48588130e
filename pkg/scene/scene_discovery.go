package scene

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"
)

// SceneInfo represents a discovered scene with its metadata
type SceneInfo struct {
	ID          string `json:"id"`          // Unique identifier
	Name        string `json:"name"`        // Scene name
	DisplayName string `json:"displayName"` // UI display name
	Description string `json:"description"` // Optional description
	Type        string `json:"type"`        // "builtin" or "file"
	Projection  string `json:"projection"`
	FilePath    string `json:"filePath,omitempty"` // Path to the JSON file (file type only)
}

// ListSceneFiles scans dir for *.json scene files. A missing directory yields an
// empty list; a file that fails to parse is skipped with a warning.
func ListSceneFiles(dir string) ([]SceneInfo, error) {
	if dir == "" {
		return []SceneInfo{}, nil
	}

	files, err := filepath.Glob(filepath.Join(dir, "*.json"))
	if err != nil {
		return nil, fmt.Errorf("failed to scan scenes directory: %w", err)
	}

	scenes := make([]SceneInfo, 0, len(files))
	for _, path := range files {
		info, err := ParseSceneMetadata(path)
		if err != nil {
			logger.Warningf("failed to parse metadata for %s: %v", path, err)
			continue
		}
		scenes = append(scenes, info)
	}

	sort.Slice(scenes, func(i, j int) bool {
		return scenes[i].DisplayName < scenes[j].DisplayName
	})

	return scenes, nil
}

// ParseSceneMetadata reads the descriptive fields of a scene file
func ParseSceneMetadata(path string) (SceneInfo, error) {
	config, err := LoadConfigFile(path)
	if err != nil {
		return SceneInfo{}, err
	}

	id := sceneNameFromPath(path)
	info := SceneInfo{
		ID:          "file:" + id,
		Name:        id,
		DisplayName: titleCase(id),
		Description: config.Description,
		Type:        "file",
		Projection:  config.Projection.String(),
		FilePath:    path,
	}
	if config.Camera != nil {
		info.Projection = config.Camera.Projection.String()
	}
	if config.Name != "" {
		info.Name = config.Name
		info.DisplayName = config.Name
	}

	return info, nil
}

// ListAllScenes returns the built-in presets followed by the scene files found in dir
func ListAllScenes(dir string) ([]SceneInfo, error) {
	var scenes []SceneInfo
	for _, preset := range Presets() {
		scenes = append(scenes, SceneInfo{
			ID:          preset.Name,
			Name:        preset.Name,
			DisplayName: titleCase(preset.Name),
			Description: preset.Description,
			Type:        "builtin",
			Projection:  preset.Projection,
		})
	}

	files, err := ListSceneFiles(dir)
	if err != nil {
		return nil, err
	}

	return append(scenes, files...), nil
}

// LoadScene resolves a scene ID as returned by ListAllScenes: "file:<name>" loads
// <dir>/<name>.json, anything else names a preset.
func LoadScene(id string, dir string, opts PresetOptions) (*Scene, error) {
	if name, ok := strings.CutPrefix(id, "file:"); ok {
		if dir == "" || name == "" || strings.ContainsAny(name, `/\`) {
			return nil, fmt.Errorf("%w: %q", ErrUnknownScene, id)
		}
		return LoadSceneFile(filepath.Join(dir, name+".json"), opts.Width, opts.Height)
	}
	return NewPresetScene(id, opts)
}

func sceneNameFromPath(path string) string {
	filename := filepath.Base(path)
	return strings.TrimSuffix(filename, filepath.Ext(filename))
}

// titleCase converts a filename-style string to title case
// e.g., "shaded-ortho" -> "Shaded Ortho"
func titleCase(s string) string {
	s = strings.ReplaceAll(s, "-", " ")
	s = strings.ReplaceAll(s, "_", " ")

	words := strings.Fields(s)
	for i, word := range words {
		if len(word) > 0 {
			words[i] = strings.ToUpper(word[:1]) + strings.ToLower(word[1:])
		}
	}

	return strings.Join(words, " ")
}
