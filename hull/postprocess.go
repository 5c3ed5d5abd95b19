package hull

import (
	"fmt"
	"log"

	"github.com/go-gl/mathgl/mgl64"
)

// Hulls below this fraction of the reference (mesh bounding box)
// volume are treated as decomposition noise.
const degenerateVolumeFraction = 1e-6

type EmptyDecompositionError struct {
	Received int
}

func (e *EmptyDecompositionError) Error() string {
	return fmt.Sprintf("No usable convex hulls: all %d decomposition outputs were degenerate", e.Received)
}

// PostProcess re-derives a minimal convex hull from every raw point
// set and drops degenerate results (under 4 vertices or volume below a
// fixed fraction of refVolume). Input order is preserved so repeated
// runs number the hulls identically.
func PostProcess(raw [][]mgl64.Vec3, refVolume float64) ([]*ConvexHull, error) {
	minVolume := degenerateVolumeFraction * refVolume

	hulls := make([]*ConvexHull, 0, len(raw))
	for i, points := range raw {
		h, err := Compute(points)
		if err != nil {
			log.Printf("[hull] Dropping hull %d: %v", i, err)
			continue
		}
		if len(h.Vertices) < 4 {
			log.Printf("[hull] Dropping hull %d: only %d vertices", i, len(h.Vertices))
			continue
		}
		if v := h.Volume(); v < minVolume {
			log.Printf("[hull] Dropping hull %d: volume %g below %g", i, v, minVolume)
			continue
		}
		hulls = append(hulls, h)
	}

	if len(hulls) == 0 {
		return nil, &EmptyDecompositionError{Received: len(raw)}
	}
	return hulls, nil
}
