package geometry

import (
	"math"

	"github.com/df07/go-raycaster/pkg/core"
)

// parallelEpsilon bounds the Cramer denominator relative to the magnitude of its
// columns; below it the ray is treated as parallel to the triangle plane.
const parallelEpsilon = 1e-12

// TriangleHit is the solution of the ray/triangle system
type TriangleHit struct {
	T     float64 // Ray parameter
	Beta  float64 // Weight of vertex b
	Gamma float64 // Weight of vertex c
}

// IntersectTriangle solves [a-b, a-c, d]·[β, γ, t]ᵗ = a - o by Cramer's rule and
// accepts the hit only when 0 < t < tMax, γ ∈ [0,1] and β ∈ [0, 1-γ].
func IntersectTriangle(ray core.Ray, a, b, c core.Vec3, tMax float64) (TriangleHit, bool) {
	aMinusB := a.Subtract(b)
	aMinusC := a.Subtract(c)
	aMinusO := a.Subtract(ray.Origin)
	direction := ray.Direction

	denominator := core.Det3(aMinusB, aMinusC, direction)
	scale := aMinusB.Length() * aMinusC.Length() * direction.Length()
	if math.Abs(denominator) <= parallelEpsilon*scale {
		return TriangleHit{}, false
	}

	t := core.Det3(aMinusB, aMinusC, aMinusO) / denominator
	if !(t > 0 && t < tMax) {
		return TriangleHit{}, false
	}

	gamma := core.Det3(aMinusB, aMinusO, direction) / denominator
	if gamma < 0 || gamma > 1 {
		return TriangleHit{}, false
	}

	beta := core.Det3(aMinusO, aMinusC, direction) / denominator
	if beta < 0 || beta > 1-gamma {
		return TriangleHit{}, false
	}

	return TriangleHit{T: t, Beta: beta, Gamma: gamma}, true
}

// TriangleNormal returns normalize((b-a) × (c-b)); the sign follows the winding order
func TriangleNormal(a, b, c core.Vec3) core.Vec3 {
	return b.Subtract(a).Cross(c.Subtract(b)).Normalize()
}
