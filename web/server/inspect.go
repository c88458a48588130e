package server

import (
	"fmt"
	"net/http"

	"github.com/df07/go-raycaster/pkg/core"
	"github.com/df07/go-raycaster/pkg/geometry"
	"github.com/df07/go-raycaster/pkg/material"
	"github.com/df07/go-raycaster/pkg/renderer"
	"github.com/df07/go-raycaster/pkg/scene"
)

// InspectResponse represents the JSON response for pixel inspection
type InspectResponse struct {
	Hit          bool                   `json:"hit"`
	GeometryType string                 `json:"geometryType,omitempty"`
	ShadingModel string                 `json:"shadingModel,omitempty"`
	Ray          map[string]core.Vec3   `json:"ray"`
	Point        core.Vec3              `json:"point"`
	Normal       core.Vec3              `json:"normal"`
	Distance     float64                `json:"distance"`
	Lightness    float64                `json:"lightness"`
	Color        core.Vec3              `json:"color"`
	Properties   map[string]interface{} `json:"properties,omitempty"`
}

// NewInspectResponse describes the outcome of tracing one pixel
func NewInspectResponse(sceneObj *scene.Scene, sample renderer.Sample, hit bool) InspectResponse {
	response := InspectResponse{
		Hit: hit,
		Ray: map[string]core.Vec3{
			"origin":    sample.Ray.Origin,
			"direction": sample.Ray.Direction,
		},
	}
	if !hit {
		return response
	}

	record := sample.Hit
	response.GeometryType = record.Kind.String()
	response.ShadingModel = record.Material.Model.String()
	response.Point = record.Point
	response.Normal = record.Normal
	response.Distance = record.T
	response.Lightness = sample.Lightness
	response.Color = sample.Color
	response.Properties = map[string]interface{}{
		"material": materialInfo(record.Material),
		"geometry": geometryInfo(record, sceneObj),
	}

	return response
}

// materialInfo extracts the material properties shown to the client
func materialInfo(mat material.Material) map[string]interface{} {
	return map[string]interface{}{
		"color": [3]float64{mat.Color.X, mat.Color.Y, mat.Color.Z},
		"hex": fmt.Sprintf("#%02x%02x%02x",
			channelByte(mat.Color.X), channelByte(mat.Color.Y), channelByte(mat.Color.Z)),
		"model": mat.Model.String(),
	}
}

func channelByte(v float64) int {
	if v <= 0 {
		return 0
	}
	if v >= 1 {
		return 255
	}
	return int(v * 255)
}

// geometryInfo extracts detailed information about the primitive that was hit
func geometryInfo(record geometry.HitRecord, sceneObj *scene.Scene) map[string]interface{} {
	properties := make(map[string]interface{})

	switch record.Kind {
	case geometry.PrimitiveSphere:
		sphere := sceneObj.Spheres[record.SphereIndex]
		properties["index"] = record.SphereIndex
		properties["center"] = sphere.Center
		properties["radius"] = sphere.Radius

	case geometry.PrimitiveTriangle:
		mesh := sceneObj.Meshes[record.MeshIndex]
		alpha, beta, gamma := record.Barycentric()
		properties["mesh"] = mesh.Name
		properties["meshIndex"] = record.MeshIndex
		properties["face"] = record.FaceIndex
		properties["triangleCount"] = mesh.GetTriangleCount()
		properties["barycentric"] = [3]float64{alpha, beta, gamma}
		bbox := mesh.BoundingBox()
		properties["boundingBox"] = map[string]core.Vec3{
			"min": bbox.Min,
			"max": bbox.Max,
		}
	}

	return properties
}

// handleInspect traces a single pixel and reports what it hit
func (s *Server) handleInspect(w http.ResponseWriter, r *http.Request) {
	req, err := s.parseRenderRequest(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid scene parameters: "+err.Error())
		return
	}

	query := r.URL.Query()
	pixelX, err := parseIntParam(query, "x", -1, 0, req.Width-1)
	if err != nil || pixelX < 0 {
		writeError(w, http.StatusBadRequest, "Invalid x coordinate")
		return
	}
	pixelY, err := parseIntParam(query, "y", -1, 0, req.Height-1)
	if err != nil || pixelY < 0 {
		writeError(w, http.StatusBadRequest, "Invalid y coordinate")
		return
	}

	raytracer, status, err := s.newRaytracer(req, s.logger)
	if err != nil {
		writeError(w, status, err.Error())
		return
	}

	sample, hit := raytracer.TracePixel(pixelX, pixelY)
	writeJSON(w, http.StatusOK, NewInspectResponse(raytracer.Scene(), sample, hit))
}
