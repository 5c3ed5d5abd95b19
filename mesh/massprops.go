package mesh

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Volume integrates signed tetrahedron volumes against the origin.
// Correct for closed meshes regardless of where the origin lies.
func (m *Mesh) Volume() float64 {
	var total float64
	for _, f := range m.Faces {
		a, b, c := m.Vertices[f[0]], m.Vertices[f[1]], m.Vertices[f[2]]
		total += a.Dot(b.Cross(c)) / 6.0
	}
	return math.Abs(total)
}

// MassProperties returns the mass and the moment of inertia tensor
// about the mesh origin, assuming uniform density in kg/m^3. Uses the
// canonical-tetrahedron covariance accumulation.
func (m *Mesh) MassProperties(density float64) (mass float64, inertia mgl64.Mat3) {
	// covariance of the canonical tetrahedron (0,e1,e2,e3)
	canonical := mgl64.Mat3{
		1.0 / 60.0, 1.0 / 120.0, 1.0 / 120.0,
		1.0 / 120.0, 1.0 / 60.0, 1.0 / 120.0,
		1.0 / 120.0, 1.0 / 120.0, 1.0 / 60.0,
	}

	var covariance mgl64.Mat3
	var volume float64
	for _, f := range m.Faces {
		a, b, c := m.Vertices[f[0]], m.Vertices[f[1]], m.Vertices[f[2]]
		t := mgl64.Mat3FromCols(a, b, c)
		det := t.Det()
		covariance = covariance.Add(t.Mul3(canonical).Mul3(t.Transpose()).Mul(det))
		volume += det / 6.0
	}

	// an inward-wound mesh accumulates negative determinants
	if volume < 0 {
		volume = -volume
		covariance = covariance.Mul(-1)
	}
	mass = density * volume

	// I = trace(C)*Id - C, scaled to the requested density
	trace := covariance.Trace()
	inertia = mgl64.Ident3().Mul(trace).Sub(covariance).Mul(density)
	return mass, inertia
}
