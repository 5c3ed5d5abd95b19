package hull

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/pkg/errors"
)

type qhFace struct {
	verts   [3]int // indices into the input point set
	normal  mgl64.Vec3
	offset  float64
	outside []int
	dead    bool
}

func (f *qhFace) distance(p mgl64.Vec3) float64 {
	return f.normal.Dot(p) - f.offset
}

// Compute builds the convex hull of an arbitrary point set with the
// quickhull algorithm. Fails on fewer than 4 points or on degenerate
// (collinear/coplanar) input.
func Compute(points []mgl64.Vec3) (*ConvexHull, error) {
	if len(points) < 4 {
		return nil, errors.Errorf("convex hull needs at least 4 points, got %d", len(points))
	}

	eps := hullEpsilon(points)

	faces, err := initialTetrahedron(points, eps)
	if err != nil {
		return nil, err
	}

	// assign every point to the first face it is outside of
	for i := range points {
		for _, f := range faces {
			if f.distance(points[i]) > eps {
				f.outside = append(f.outside, i)
				break
			}
		}
	}

	for {
		face := (*qhFace)(nil)
		for _, f := range faces {
			if !f.dead && len(f.outside) > 0 {
				face = f
				break
			}
		}
		if face == nil {
			break
		}

		// furthest conflict point of this face
		best, bestDist := -1, eps
		for _, i := range face.outside {
			if d := face.distance(points[i]); d > bestDist {
				best, bestDist = i, d
			}
		}
		if best == -1 {
			face.outside = nil
			continue
		}
		apex := points[best]

		var visible []*qhFace
		for _, f := range faces {
			if !f.dead && f.distance(apex) > eps {
				visible = append(visible, f)
				f.dead = true
			}
		}

		horizon := horizonEdges(visible)

		var orphans []int
		for _, f := range visible {
			orphans = append(orphans, f.outside...)
		}

		var created []*qhFace
		for _, edge := range horizon {
			f, err := newFace(points, edge[0], edge[1], best)
			if err != nil {
				return nil, err
			}
			created = append(created, f)
		}

		for _, i := range orphans {
			if i == best {
				continue
			}
			for _, f := range created {
				if f.distance(points[i]) > eps {
					f.outside = append(f.outside, i)
					break
				}
			}
		}

		kept := faces[:0]
		for _, f := range faces {
			if !f.dead {
				kept = append(kept, f)
			}
		}
		faces = append(kept, created...)
	}

	return compressHull(points, faces), nil
}

func hullEpsilon(points []mgl64.Vec3) float64 {
	var maxAbs float64
	for _, p := range points {
		for i := 0; i < 3; i++ {
			if a := math.Abs(p[i]); a > maxAbs {
				maxAbs = a
			}
		}
	}
	if maxAbs == 0 {
		maxAbs = 1
	}
	return 1e-10 * maxAbs
}

func newFace(points []mgl64.Vec3, a, b, c int) (*qhFace, error) {
	normal := points[b].Sub(points[a]).Cross(points[c].Sub(points[a]))
	length := normal.Len()
	if length == 0 {
		return nil, errors.Errorf("degenerate hull face %d %d %d", a, b, c)
	}
	normal = normal.Mul(1.0 / length)
	return &qhFace{
		verts:  [3]int{a, b, c},
		normal: normal,
		offset: normal.Dot(points[a]),
	}, nil
}

// horizonEdges returns the directed boundary edges of the visible face
// set, oriented so that new faces built on them wind outward.
func horizonEdges(visible []*qhFace) [][2]int {
	count := make(map[[2]int]bool)
	for _, f := range visible {
		for i := 0; i < 3; i++ {
			count[[2]int{f.verts[i], f.verts[(i+1)%3]}] = true
		}
	}

	var horizon [][2]int
	for _, f := range visible {
		for i := 0; i < 3; i++ {
			edge := [2]int{f.verts[i], f.verts[(i+1)%3]}
			if !count[[2]int{edge[1], edge[0]}] {
				horizon = append(horizon, edge)
			}
		}
	}
	return horizon
}

// initialTetrahedron picks four affinely-independent extreme points
// and returns the four outward-wound starting faces.
func initialTetrahedron(points []mgl64.Vec3, eps float64) ([]*qhFace, error) {
	// two most distant points along the largest axis spread
	i0, i1 := 0, 0
	bestSpread := -1.0
	for axis := 0; axis < 3; axis++ {
		lo, hi := 0, 0
		for i, p := range points {
			if p[axis] < points[lo][axis] {
				lo = i
			}
			if p[axis] > points[hi][axis] {
				hi = i
			}
		}
		if spread := points[hi][axis] - points[lo][axis]; spread > bestSpread {
			bestSpread = spread
			i0, i1 = lo, hi
		}
	}
	if points[i0] == points[i1] {
		return nil, errors.New("all hull points coincide")
	}

	// furthest from the i0-i1 line
	dir := points[i1].Sub(points[i0]).Normalize()
	i2, best := -1, eps
	for i, p := range points {
		rel := p.Sub(points[i0])
		if d := rel.Sub(dir.Mul(rel.Dot(dir))).Len(); d > best {
			i2, best = i, d
		}
	}
	if i2 == -1 {
		return nil, errors.New("hull points are collinear")
	}

	// furthest from the i0-i1-i2 plane
	normal := points[i1].Sub(points[i0]).Cross(points[i2].Sub(points[i0])).Normalize()
	offset := normal.Dot(points[i0])
	i3, best := -1, eps
	for i, p := range points {
		if d := math.Abs(normal.Dot(p) - offset); d > best {
			i3, best = i, d
		}
	}
	if i3 == -1 {
		return nil, errors.New("hull points are coplanar")
	}

	// wind so that i3 is below the base face
	if normal.Dot(points[i3])-offset > 0 {
		i1, i2 = i2, i1
	}

	tris := [4][3]int{
		{i0, i1, i2},
		{i0, i2, i3},
		{i2, i1, i3},
		{i1, i0, i3},
	}
	faces := make([]*qhFace, 0, 4)
	for _, tri := range tris {
		f, err := newFace(points, tri[0], tri[1], tri[2])
		if err != nil {
			return nil, err
		}
		faces = append(faces, f)
	}
	return faces, nil
}

// compressHull remaps surviving faces onto a dense vertex slice,
// keeping vertices in input order for reproducibility.
func compressHull(points []mgl64.Vec3, faces []*qhFace) *ConvexHull {
	used := make(map[int]bool)
	for _, f := range faces {
		if f.dead {
			continue
		}
		for _, v := range f.verts {
			used[v] = true
		}
	}

	remap := make(map[int]int, len(used))
	h := &ConvexHull{Vertices: make([]mgl64.Vec3, 0, len(used))}
	for i := range points {
		if used[i] {
			remap[i] = len(h.Vertices)
			h.Vertices = append(h.Vertices, points[i])
		}
	}

	for _, f := range faces {
		if f.dead {
			continue
		}
		h.Faces = append(h.Faces, [3]int{remap[f.verts[0]], remap[f.verts[1]], remap[f.verts[2]]})
	}
	return h
}
