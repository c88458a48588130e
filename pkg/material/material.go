package material

import (
	"errors"
	"fmt"
	"strings"

	"github.com/df07/go-raycaster/pkg/core"
)

// ErrUnknownShadingModel is returned when a shading model name cannot be parsed.
var ErrUnknownShadingModel = errors.New("material: unknown shading model")

// ShadingModel selects the lighting equation used for a surface
type ShadingModel int

const (
	// Diffuse sums the Lambertian term of every light
	Diffuse ShadingModel = iota
	// BlinnPhong adds a specular highlight per light and a single ambient term
	BlinnPhong
)

// String returns the canonical name of the shading model
func (m ShadingModel) String() string {
	switch m {
	case Diffuse:
		return "diffuse"
	case BlinnPhong:
		return "blinn-phong"
	default:
		return fmt.Sprintf("ShadingModel(%d)", int(m))
	}
}

// ParseShadingModel converts a name such as "diffuse" or "blinn-phong" into a ShadingModel
func ParseShadingModel(name string) (ShadingModel, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "diffuse", "lambertian":
		return Diffuse, nil
	case "blinn-phong", "blinnphong", "specular":
		return BlinnPhong, nil
	default:
		return Diffuse, fmt.Errorf("%w: %q", ErrUnknownShadingModel, name)
	}
}

// MarshalText implements encoding.TextMarshaler
func (m ShadingModel) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler
func (m *ShadingModel) UnmarshalText(text []byte) error {
	parsed, err := ParseShadingModel(string(text))
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}

// Material describes how a primitive reflects light
type Material struct {
	Color core.Vec3    // Base color, each channel in [0,1]
	Model ShadingModel // Lighting equation
}

// NewDiffuse creates a diffuse-only material with the given base color
func NewDiffuse(color core.Vec3) Material {
	return Material{Color: color, Model: Diffuse}
}

// NewBlinnPhong creates a diffuse+specular+ambient material with the given base color
func NewBlinnPhong(color core.Vec3) Material {
	return Material{Color: color, Model: BlinnPhong}
}

// Grayscale is a white diffuse material; renders using it broadcast
// a single lightness value to all three channels.
func Grayscale() Material {
	return NewDiffuse(core.NewVec3(1, 1, 1))
}
