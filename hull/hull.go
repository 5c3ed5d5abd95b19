package hull

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// ConvexHull is a closed convex polytope. Faces are triangles indexing
// into Vertices, wound so normals point outward. Instances are built by
// Compute and never mutated afterwards.
type ConvexHull struct {
	Vertices []mgl64.Vec3
	Faces    [][3]int
}

func (h *ConvexHull) Bounds() (min, max mgl64.Vec3) {
	if len(h.Vertices) == 0 {
		return
	}
	min, max = h.Vertices[0], h.Vertices[0]
	for _, v := range h.Vertices {
		for i := 0; i < 3; i++ {
			if v[i] < min[i] {
				min[i] = v[i]
			}
			if v[i] > max[i] {
				max[i] = v[i]
			}
		}
	}
	return min, max
}

func (h *ConvexHull) Volume() float64 {
	var total float64
	for _, f := range h.Faces {
		a, b, c := h.Vertices[f[0]], h.Vertices[f[1]], h.Vertices[f[2]]
		total += a.Dot(b.Cross(c)) / 6.0
	}
	return math.Abs(total)
}

// Centroid is the volume centroid, not the vertex average.
func (h *ConvexHull) Centroid() mgl64.Vec3 {
	var weighted mgl64.Vec3
	var volume float64
	for _, f := range h.Faces {
		a, b, c := h.Vertices[f[0]], h.Vertices[f[1]], h.Vertices[f[2]]
		v := a.Dot(b.Cross(c)) / 6.0
		center := a.Add(b).Add(c).Mul(1.0 / 4.0) // fourth tetra vertex is the origin
		weighted = weighted.Add(center.Mul(v))
		volume += v
	}
	if volume == 0 {
		return mgl64.Vec3{}
	}
	return weighted.Mul(1.0 / volume)
}

// ContainsPoint reports whether p lies inside or on the hull, within a
// small tolerance relative to the hull size.
func (h *ConvexHull) ContainsPoint(p mgl64.Vec3) bool {
	min, max := h.Bounds()
	eps := 1e-9 * max.Sub(min).Len()

	for _, f := range h.Faces {
		a, b, c := h.Vertices[f[0]], h.Vertices[f[1]], h.Vertices[f[2]]
		normal := b.Sub(a).Cross(c.Sub(a))
		length := normal.Len()
		if length == 0 {
			continue
		}
		if p.Sub(a).Dot(normal.Mul(1.0/length)) > eps {
			return false
		}
	}
	return true
}
