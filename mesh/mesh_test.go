package mesh

import (
	"bytes"
	"encoding/binary"
	"io/ioutil"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

const cubeObj = `# unit cube
v 0 0 0
v 1 0 0
v 1 1 0
v 0 1 0
v 0 0 1
v 1 0 1
v 1 1 1
v 0 1 1
f 1 4 3 2
f 5 6 7 8
f 1 2 6 5
f 3 4 8 7
f 1 5 8 4
f 2 3 7 6
`

func writeTempMesh(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := ioutil.WriteFile(path, []byte(content), 0666); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadObjCube(t *testing.T) {
	m, err := Load(writeTempMesh(t, "cube.obj", cubeObj), 2.0)
	if err != nil {
		t.Fatal(err)
	}

	if len(m.Vertices) != 8 {
		t.Errorf("got %d vertices, expected 8", len(m.Vertices))
	}
	if len(m.Faces) != 12 {
		t.Errorf("got %d faces, expected 12 triangles", len(m.Faces))
	}
	if m.Name != "cube" {
		t.Errorf("got name %q, expected %q", m.Name, "cube")
	}
	if m.Scale != 2.0 {
		t.Errorf("got scale %v, expected 2.0", m.Scale)
	}

	min, max := m.Bounds()
	if min != (mgl64.Vec3{0, 0, 0}) || max != (mgl64.Vec3{2, 2, 2}) {
		t.Errorf("bounds %v..%v, expected scaled unit cube", min, max)
	}
}

func TestLoadObjNegativeIndexes(t *testing.T) {
	m, err := Load(writeTempMesh(t, "tri.obj", "v 0 0 0\nv 1 0 0\nv 0 1 0\nf -3 -2 -1\n"), 1.0)
	if err != nil {
		t.Fatal(err)
	}
	if len(m.Faces) != 1 || m.Faces[0] != ([3]int{0, 1, 2}) {
		t.Errorf("got faces %v, expected [[0 1 2]]", m.Faces)
	}
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		content string
		scale   float64
	}{
		{"zero scale", "cube.obj", cubeObj, 0},
		{"negative scale", "cube.obj", cubeObj, -1},
		{"nan scale", "cube.obj", cubeObj, math.NaN()},
		{"inf scale", "cube.obj", cubeObj, math.Inf(1)},
		{"no faces", "empty.obj", "v 0 0 0\nv 1 0 0\nv 0 1 0\n", 1},
		{"out of bounds index", "bad.obj", "v 0 0 0\nv 1 0 0\nf 1 2 3\n", 1},
		{"non-finite", "nan.obj", "v nan 0 0\nv 1 0 0\nv 0 1 0\nf 1 2 3\n", 1},
		{"unsupported format", "mesh.ply", "ply\n", 1},
	}

	for _, test := range tests {
		_, err := Load(writeTempMesh(t, test.file, test.content), test.scale)
		if err == nil {
			t.Errorf("%s: expected error, got none", test.name)
			continue
		}
		if _, ok := err.(*LoadError); !ok {
			t.Errorf("%s: expected *LoadError, got %T", test.name, err)
		}
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.obj"), 1.0)
	if _, ok := err.(*LoadError); !ok {
		t.Errorf("expected *LoadError, got %v", err)
	}
}

func TestLoadStlBinary(t *testing.T) {
	// two triangles sharing an edge, vertices must weld to 4
	var buf bytes.Buffer
	buf.Write(make([]byte, 80))
	binary.Write(&buf, binary.LittleEndian, uint32(2))
	tris := [2][3][3]float32{
		{{0, 0, 0}, {1, 0, 0}, {0, 1, 0}},
		{{1, 0, 0}, {1, 1, 0}, {0, 1, 0}},
	}
	for _, tri := range tris {
		binary.Write(&buf, binary.LittleEndian, [3]float32{0, 0, 1})
		binary.Write(&buf, binary.LittleEndian, tri)
		binary.Write(&buf, binary.LittleEndian, uint16(0))
	}

	path := filepath.Join(t.TempDir(), "quad.stl")
	if err := ioutil.WriteFile(path, buf.Bytes(), 0666); err != nil {
		t.Fatal(err)
	}

	m, err := Load(path, 1.0)
	if err != nil {
		t.Fatal(err)
	}
	if len(m.Vertices) != 4 {
		t.Errorf("got %d vertices, expected 4 after welding", len(m.Vertices))
	}
	if len(m.Faces) != 2 {
		t.Errorf("got %d faces, expected 2", len(m.Faces))
	}
}

func TestLoadStlAscii(t *testing.T) {
	stl := `solid tri
facet normal 0 0 1
  outer loop
    vertex 0 0 0
    vertex 1 0 0
    vertex 0 1 0
  endloop
endfacet
endsolid tri
`
	m, err := Load(writeTempMesh(t, "tri.stl", stl), 1.0)
	if err != nil {
		t.Fatal(err)
	}
	if len(m.Vertices) != 3 || len(m.Faces) != 1 {
		t.Errorf("got %d vertices / %d faces, expected 3 / 1", len(m.Vertices), len(m.Faces))
	}
}

func TestVolumeAndMassProperties(t *testing.T) {
	m, err := Load(writeTempMesh(t, "cube.obj", cubeObj), 1.0)
	if err != nil {
		t.Fatal(err)
	}

	if v := m.Volume(); math.Abs(v-1.0) > 1e-12 {
		t.Errorf("unit cube volume = %v, expected 1", v)
	}

	const density = 2000.0
	mass, inertia := m.MassProperties(density)
	if math.Abs(mass-density) > 1e-9 {
		t.Errorf("unit cube mass = %v, expected %v", mass, density)
	}
	// about the origin corner: Ixx = 2/3 m, Ixy = -1/4 m
	if got, want := inertia.At(0, 0), 2.0/3.0*mass; math.Abs(got-want) > 1e-6 {
		t.Errorf("Ixx = %v, expected %v", got, want)
	}
	if got, want := inertia.At(0, 1), -1.0/4.0*mass; math.Abs(got-want) > 1e-6 {
		t.Errorf("Ixy = %v, expected %v", got, want)
	}
}

func TestMassPropertiesInwardWinding(t *testing.T) {
	m, err := Load(writeTempMesh(t, "cube.obj", cubeObj), 1.0)
	if err != nil {
		t.Fatal(err)
	}
	for i, f := range m.Faces {
		m.Faces[i] = [3]int{f[2], f[1], f[0]}
	}

	const density = 2000.0
	mass, inertia := m.MassProperties(density)
	if math.Abs(mass-density) > 1e-9 {
		t.Errorf("inward cube mass = %v, expected %v", mass, density)
	}
	if got, want := inertia.At(0, 0), 2.0/3.0*mass; math.Abs(got-want) > 1e-6 {
		t.Errorf("Ixx = %v, expected %v", got, want)
	}
	if got, want := inertia.At(0, 1), -1.0/4.0*mass; math.Abs(got-want) > 1e-6 {
		t.Errorf("Ixy = %v, expected %v", got, want)
	}
}

func TestWriteObjRoundTrip(t *testing.T) {
	m, err := Load(writeTempMesh(t, "cube.obj", cubeObj), 1.0)
	if err != nil {
		t.Fatal(err)
	}

	var buf bytes.Buffer
	if err := m.WriteObj(&buf); err != nil {
		t.Fatal(err)
	}

	path := filepath.Join(t.TempDir(), "roundtrip.obj")
	if err := os.WriteFile(path, buf.Bytes(), 0666); err != nil {
		t.Fatal(err)
	}
	back, err := Load(path, 1.0)
	if err != nil {
		t.Fatal(err)
	}
	if len(back.Vertices) != len(m.Vertices) || len(back.Faces) != len(m.Faces) {
		t.Errorf("round trip changed mesh: %d/%d -> %d/%d vertices/faces",
			len(m.Vertices), len(m.Faces), len(back.Vertices), len(back.Faces))
	}
}
