package mesh

import (
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
)

// Load reads a mesh file and applies scale to every vertex. The
// returned mesh is in target units; the original units are not kept.
func Load(path string, scale float64) (*Mesh, error) {
	// NaN fails every comparison, so "scale <= 0" would let it through
	if !(scale > 0) || math.IsInf(scale, 0) {
		return nil, &LoadError{Path: path, Err: fmt.Errorf("scale must be positive and finite, got %v", scale)}
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, &LoadError{Path: path, Err: err}
	}
	defer f.Close()

	var m *Mesh
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".obj":
		m, err = loadObj(f)
	case ".stl":
		m, err = loadStl(f)
	default:
		err = errors.Errorf("unsupported mesh format %q", ext)
	}
	if err != nil {
		return nil, &LoadError{Path: path, Err: err}
	}

	m.Path = path
	m.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	if err := m.validate(); err != nil {
		return nil, &LoadError{Path: path, Err: err}
	}
	m.applyScale(scale)

	return m, nil
}
