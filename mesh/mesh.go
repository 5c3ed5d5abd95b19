package mesh

import (
	"fmt"
	"io"
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Mesh is a triangle mesh already scaled to the target units.
// Faces index into Vertices; validity is checked at load time.
type Mesh struct {
	Name     string
	Path     string
	Scale    float64
	Vertices []mgl64.Vec3
	Faces    [][3]int
}

type LoadError struct {
	Path string
	Err  error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("Failed to load mesh %q: %v", e.Path, e.Err)
}

func (e *LoadError) Unwrap() error { return e.Err }

func (m *Mesh) validate() error {
	if len(m.Faces) == 0 {
		return fmt.Errorf("mesh has no faces")
	}
	for _, v := range m.Vertices {
		for i := 0; i < 3; i++ {
			if math.IsNaN(v[i]) || math.IsInf(v[i], 0) {
				return fmt.Errorf("mesh contains non-finite coordinate %v", v)
			}
		}
	}
	for iFace, face := range m.Faces {
		for _, index := range face {
			if index < 0 || index >= len(m.Vertices) {
				return fmt.Errorf("face %d references vertex %d of %d", iFace, index, len(m.Vertices))
			}
		}
	}
	return nil
}

func (m *Mesh) applyScale(scale float64) {
	m.Scale = scale
	for i := range m.Vertices {
		m.Vertices[i] = m.Vertices[i].Mul(scale)
	}
}

func (m *Mesh) Bounds() (min, max mgl64.Vec3) {
	if len(m.Vertices) == 0 {
		return
	}
	min, max = m.Vertices[0], m.Vertices[0]
	for _, v := range m.Vertices {
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

// BoundsVolume is used as the reference volume for degenerate hull
// filtering.
func (m *Mesh) BoundsVolume() float64 {
	min, max := m.Bounds()
	d := max.Sub(min)
	return d[0] * d[1] * d[2]
}

func (m *Mesh) WriteObj(_w io.Writer) error {
	w := func(format string, args ...interface{}) error {
		_, err := fmt.Fprintf(_w, format+"\n", args...)
		return err
	}

	if err := w("o %s", m.Name); err != nil {
		return err
	}
	for _, v := range m.Vertices {
		if err := w("v %f %f %f", v[0], v[1], v[2]); err != nil {
			return err
		}
	}
	for _, f := range m.Faces {
		if err := w("f %d %d %d", f[0]+1, f[1]+1, f[2]+1); err != nil {
			return err
		}
	}
	return nil
}
