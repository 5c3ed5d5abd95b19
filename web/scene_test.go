package web

import (
	"context"
	"io/ioutil"
	"path/filepath"
	"testing"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/mogaika/mesh2sdf/config"
	"github.com/mogaika/mesh2sdf/decomp"
	"github.com/mogaika/mesh2sdf/hull"
	"github.com/mogaika/mesh2sdf/mesh"
	"github.com/mogaika/mesh2sdf/sdf"
)

// a non-convex bowl: a box with a smaller box cut from its top face,
// written as a vertex/face soup good enough for the loader
const bowlObj = `v -1 -1 -1
v 1 -1 -1
v 1 1 -1
v -1 1 -1
v -1 -1 1
v 1 -1 1
v 1 1 1
v -1 1 1
v -0.8 -0.8 -0.8
v 0.8 -0.8 -0.8
v 0.8 0.8 -0.8
v -0.8 0.8 -0.8
v -0.8 -0.8 1
v 0.8 -0.8 1
v 0.8 0.8 1
v -0.8 0.8 1
f 1 4 3 2
f 1 2 6 5
f 3 4 8 7
f 1 5 8 4
f 2 3 7 6
f 9 10 11 12
f 13 14 10 9
f 15 16 12 11
f 13 9 12 16
f 14 15 11 10
f 5 6 14 13
f 7 8 16 15
f 6 7 15 14
f 8 5 13 16
`

// stubDecomposer stands in for the vhacd subprocess: four walls and a
// floor of the bowl, each already convex.
type stubDecomposer struct {
	invoked int
}

func (s *stubDecomposer) Decompose(ctx context.Context, m *mesh.Mesh, params config.Params) ([][]mgl64.Vec3, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}
	s.invoked++

	box := func(min, max mgl64.Vec3) []mgl64.Vec3 {
		var points []mgl64.Vec3
		for i := 0; i < 8; i++ {
			points = append(points, mgl64.Vec3{
				[2]float64{min[0], max[0]}[i&1],
				[2]float64{min[1], max[1]}[i>>1&1],
				[2]float64{min[2], max[2]}[i>>2&1],
			})
		}
		return points
	}

	k := m.Scale
	return [][]mgl64.Vec3{
		box(mgl64.Vec3{-k, -k, -k}, mgl64.Vec3{k, k, -0.8 * k}),
		box(mgl64.Vec3{-k, -k, -k}, mgl64.Vec3{-0.8 * k, k, k}),
		box(mgl64.Vec3{0.8 * k, -k, -k}, mgl64.Vec3{k, k, k}),
		box(mgl64.Vec3{-k, -k, -k}, mgl64.Vec3{k, -0.8 * k, k}),
		box(mgl64.Vec3{-k, 0.8 * k, -k}, mgl64.Vec3{k, k, k}),
	}, nil
}

// end to end without the external tool: load, decompose via stub,
// post-process, assemble, write, then inspect the file back.
func TestPipelineAndLoadScene(t *testing.T) {
	const scale = 0.001
	dir := t.TempDir()
	meshPath := filepath.Join(dir, "bowl.obj")
	if err := ioutil.WriteFile(meshPath, []byte(bowlObj), 0666); err != nil {
		t.Fatal(err)
	}

	m, err := mesh.Load(meshPath, scale)
	if err != nil {
		t.Fatal(err)
	}

	var decomposer decomp.Decomposer = &stubDecomposer{}
	raw, err := decomposer.Decompose(context.Background(), m, config.Default())
	if err != nil {
		t.Fatal(err)
	}

	hulls, err := hull.PostProcess(raw, m.BoundsVolume())
	if err != nil {
		t.Fatal(err)
	}
	if len(hulls) != 5 {
		t.Fatalf("got %d hulls, expected 5", len(hulls))
	}

	d, err := sdf.Assemble(m, hulls, 2000)
	if err != nil {
		t.Fatal(err)
	}
	outPath := filepath.Join(dir, "bowl.sdf")
	if err := d.Write(outPath); err != nil {
		t.Fatal(err)
	}

	scene, err := LoadScene(outPath)
	if err != nil {
		t.Fatal(err)
	}

	visuals, collisions := 0, 0
	meshMin, meshMax := m.Bounds()
	const eps = 1e-9
	for _, g := range scene.Geometries {
		switch g.Kind {
		case GeometryVisual:
			visuals++
		case GeometryCollision:
			collisions++
			for _, v := range g.Vertices {
				for i := 0; i < 3; i++ {
					if v[i] < meshMin[i]-eps || v[i] > meshMax[i]+eps {
						t.Errorf("collision %q vertex %v outside scaled mesh bounds", g.Name, v)
					}
				}
			}
		default:
			t.Errorf("unexpected geometry kind %q", g.Kind)
		}
	}
	if visuals != 1 {
		t.Errorf("got %d visual geometries, expected exactly 1", visuals)
	}
	if collisions != 5 {
		t.Errorf("got %d collision geometries, expected 5", collisions)
	}
}

func TestStubRejectsBadParamsBeforeWork(t *testing.T) {
	stub := &stubDecomposer{}
	params := config.Default()
	params.MaxHulls = -1

	_, err := stub.Decompose(context.Background(), &mesh.Mesh{}, params)
	if err == nil {
		t.Fatal("expected error, got none")
	}
	if _, ok := err.(*config.ParameterError); !ok {
		t.Errorf("expected *config.ParameterError, got %T", err)
	}
	if stub.invoked != 0 {
		t.Error("decomposition ran despite invalid params")
	}
}
