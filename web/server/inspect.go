package server

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/df07/go-phong-raytracer/pkg/core"
	"github.com/df07/go-phong-raytracer/pkg/geometry"
	"github.com/df07/go-phong-raytracer/pkg/material"
	"github.com/df07/go-phong-raytracer/pkg/scene"
)

// InspectResponse represents the JSON response for object inspection
type InspectResponse struct {
	Hit            bool                   `json:"hit"`
	GeometryType   string                 `json:"geometryType"`
	Point          [3]float64             `json:"point"`
	Normal         [3]float64             `json:"normal"` // Facing the eye
	Distance       float64                `json:"distance"`
	Inside         bool                   `json:"inside"`
	Color          [3]float64             `json:"color"`
	InShadow       bool                   `json:"inShadow"`       // Occluded from every light
	OccludedLights []bool                 `json:"occludedLights"` // Per light, in scene order
	Properties     map[string]interface{} `json:"properties"`
}

// extractMaterialInfo describes a Phong material
func extractMaterialInfo(mat material.Material) map[string]interface{} {
	properties := map[string]interface{}{
		"color":     colorHex(mat.Color),
		"ambient":   mat.Ambient,
		"diffuse":   mat.Diffuse,
		"specular":  mat.Specular,
		"shininess": mat.Shininess,
	}

	switch p := mat.Pattern.(type) {
	case nil:
	case material.StripePattern:
		properties["pattern"] = map[string]interface{}{
			"type": "stripe",
			"a":    colorHex(p.A),
			"b":    colorHex(p.B),
		}
	default:
		properties["pattern"] = map[string]interface{}{"type": fmt.Sprintf("%T", p)}
	}
	return properties
}

// extractGeometryInfo describes a shape and its transform
func extractGeometryInfo(shape geometry.Shape) (string, map[string]interface{}) {
	properties := map[string]interface{}{
		"transform": [16]float64(shape.Transform()),
	}

	switch geom := shape.(type) {
	case *geometry.Sphere:
		center := geom.Transform().MultiplyPoint(core.Origin())
		properties["center"] = [3]float64{center.X, center.Y, center.Z}
		return "sphere", properties

	case *geometry.Plane:
		n := geom.NormalAt(core.Origin())
		properties["normal"] = [3]float64{n.X, n.Y, n.Z}
		return "plane", properties

	default:
		return "unknown", properties
	}
}

// inspectPixel traces the ray through a pixel and reports the visible hit
func inspectPixel(sc *scene.Scene, pixelX, pixelY int) InspectResponse {
	ray := sc.Camera.RayForPixel(pixelX, pixelY)

	hit, ok := geometry.Hit(sc.World.Intersect(ray))
	if !ok {
		return InspectResponse{Hit: false}
	}

	comps := geometry.PrepareComputations(hit, ray)
	color := sc.World.ShadeHit(comps)
	geometryType, geometryProps := extractGeometryInfo(hit.Shape)

	return InspectResponse{
		Hit:            true,
		GeometryType:   geometryType,
		Point:          [3]float64{comps.Point.X, comps.Point.Y, comps.Point.Z},
		Normal:         [3]float64{comps.Normal.X, comps.Normal.Y, comps.Normal.Z},
		Distance:       comps.T,
		Inside:         comps.Inside,
		Color:          [3]float64{color.R, color.G, color.B},
		InShadow:       sc.World.IsShadowed(comps.OverPoint),
		OccludedLights: sc.World.OccludedLights(comps.OverPoint),
		Properties: map[string]interface{}{
			"material": extractMaterialInfo(hit.Shape.Material()),
			"geometry": geometryProps,
		},
	}
}

// handleInspect handles ray casting inspection requests
func (s *Server) handleInspect(w http.ResponseWriter, r *http.Request) {
	req, err := parseSceneRequest(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Invalid scene parameters: " + err.Error()})
		return
	}

	pixelX, err := strconv.Atoi(r.URL.Query().Get("x"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Invalid x coordinate"})
		return
	}
	pixelY, err := strconv.Atoi(r.URL.Query().Get("y"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Invalid y coordinate"})
		return
	}
	if pixelX < 0 || pixelX >= req.Width || pixelY < 0 || pixelY >= req.Height {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Pixel coordinates out of bounds"})
		return
	}

	sc, err := scene.Create(req.Scene, req.options())
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	writeJSON(w, http.StatusOK, inspectPixel(sc, pixelX, pixelY))
}

// colorHex formats a linear color as #rrggbb, clamped to [0, 1]
func colorHex(c core.Color) string {
	c = c.Clamp(0, 1)
	return fmt.Sprintf("#%02x%02x%02x", int(c.R*255+0.5), int(c.G*255+0.5), int(c.B*255+0.5))
}
