package integrator

import (
	"math"

	"github.com/df07/go-raycaster/pkg/core"
	"github.com/df07/go-raycaster/pkg/geometry"
	"github.com/df07/go-raycaster/pkg/lights"
	"github.com/df07/go-raycaster/pkg/material"
)

// Params holds the constants of the Blinn-Phong model
type Params struct {
	SpecularExponent float64 `json:"specularExponent"` // Shininess p of the half-vector term
	Ambient          float64 `json:"ambient"`          // Added once per hit, not per light
}

// DefaultParams returns the reference constants: p = 100, ambient = 0.1
func DefaultParams() Params {
	return Params{
		SpecularExponent: 100,
		Ambient:          0.1,
	}
}

// DirectLighting shades hits from a fixed list of point lights without shadows
// or secondary rays.
type DirectLighting struct {
	lights []lights.PointLight
	params Params
}

// NewDirectLighting creates a direct lighting integrator
func NewDirectLighting(pointLights []lights.PointLight, params Params) *DirectLighting {
	return &DirectLighting{
		lights: pointLights,
		params: params,
	}
}

// Lightness evaluates the shading model at a surface point. Each per-light term is
// clamped below at zero; the total is never clamped above.
func (dl *DirectLighting) Lightness(point, normal, view core.Vec3, model material.ShadingModel) float64 {
	lightness := 0.0

	for _, light := range dl.lights {
		toLight := light.DirectionFrom(point)
		diffuse := math.Max(0, toLight.Dot(normal))

		if model != material.BlinnPhong {
			lightness += diffuse
			continue
		}

		halfVector := view.Add(toLight).Normalize()
		specular := math.Pow(math.Max(0, normal.Dot(halfVector)), dl.params.SpecularExponent)
		lightness += diffuse + specular
	}

	if model == material.BlinnPhong {
		lightness += dl.params.Ambient
	}

	return lightness
}

// Shade implements Integrator
func (dl *DirectLighting) Shade(hit geometry.HitRecord, view core.Vec3) (core.Vec3, float64) {
	lightness := dl.Lightness(hit.Point, hit.Normal, view, hit.Material.Model)
	return hit.Material.Color.Multiply(lightness), lightness
}
