// Package decomp drives the external convex decomposition tool and
// parses its output into raw hull point sets.
package decomp

import (
	"context"
	"fmt"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/mogaika/mesh2sdf/config"
	"github.com/mogaika/mesh2sdf/mesh"
)

// Decomposer produces one point set per convex piece approximating the
// mesh. Implementations must validate params before doing any work.
type Decomposer interface {
	Decompose(ctx context.Context, m *mesh.Mesh, params config.Params) ([][]mgl64.Vec3, error)
}

type DependencyMissingError struct {
	Executable string
}

func (e *DependencyMissingError) Error() string {
	return fmt.Sprintf("Decomposition tool %q not found in PATH", e.Executable)
}

// DecompositionError carries the subprocess diagnostics so the caller
// can print them and retry with adjusted parameters.
type DecompositionError struct {
	Reason string
	Output string
	Err    error
}

func (e *DecompositionError) Error() string {
	s := fmt.Sprintf("Decomposition failed: %s", e.Reason)
	if e.Err != nil {
		s += fmt.Sprintf(": %v", e.Err)
	}
	if e.Output != "" {
		s += fmt.Sprintf("\ntool output:\n%s", e.Output)
	}
	return s
}

func (e *DecompositionError) Unwrap() error { return e.Err }
