package mesh

import (
	"bufio"
	"bytes"
	"encoding/binary"
	"io"
	"io/ioutil"
	"math"
	"strconv"
	"strings"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/pkg/errors"
)

// loadStl autodetects binary vs ascii stl. Triangle soups are welded
// into an indexed mesh by exact coordinate match so downstream code
// sees one vertex per position.
func loadStl(r io.Reader) (*Mesh, error) {
	data, err := ioutil.ReadAll(r)
	if err != nil {
		return nil, err
	}

	if isBinaryStl(data) {
		return loadStlBinary(data)
	}
	return loadStlAscii(data)
}

func isBinaryStl(data []byte) bool {
	if len(data) < 84 {
		return false
	}
	count := binary.LittleEndian.Uint32(data[80:84])
	return len(data) == 84+int(count)*50
}

type stlWelder struct {
	m       *Mesh
	indexes map[mgl64.Vec3]int
}

func newStlWelder() *stlWelder {
	return &stlWelder{m: &Mesh{}, indexes: make(map[mgl64.Vec3]int)}
}

func (w *stlWelder) addTriangle(tri [3]mgl64.Vec3) {
	var face [3]int
	for i, v := range tri {
		index, ok := w.indexes[v]
		if !ok {
			index = len(w.m.Vertices)
			w.indexes[v] = index
			w.m.Vertices = append(w.m.Vertices, v)
		}
		face[i] = index
	}
	w.m.Faces = append(w.m.Faces, face)
}

func loadStlBinary(data []byte) (*Mesh, error) {
	count := binary.LittleEndian.Uint32(data[80:84])
	w := newStlWelder()

	for i := 0; i < int(count); i++ {
		rec := data[84+i*50 : 84+(i+1)*50]
		var tri [3]mgl64.Vec3
		for iVert := 0; iVert < 3; iVert++ {
			// skip the normal vector, 12 bytes
			off := 12 + iVert*12
			for j := 0; j < 3; j++ {
				bits := binary.LittleEndian.Uint32(rec[off+j*4 : off+j*4+4])
				tri[iVert][j] = float64(math.Float32frombits(bits))
			}
		}
		w.addTriangle(tri)
	}

	return w.m, nil
}

func loadStlAscii(data []byte) (*Mesh, error) {
	w := newStlWelder()

	scanner := bufio.NewScanner(bytes.NewReader(data))
	var tri [3]mgl64.Vec3
	iVert := 0
	for scanner.Scan() {
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 || fields[0] != "vertex" {
			continue
		}
		if len(fields) != 4 {
			return nil, errors.Errorf("bad stl vertex record %q", scanner.Text())
		}
		var v mgl64.Vec3
		for i := 0; i < 3; i++ {
			f, err := strconv.ParseFloat(fields[i+1], 64)
			if err != nil {
				return nil, errors.Wrapf(err, "bad stl vertex coordinate %q", fields[i+1])
			}
			v[i] = f
		}
		tri[iVert] = v
		iVert++
		if iVert == 3 {
			w.addTriangle(tri)
			iVert = 0
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	if iVert != 0 {
		return nil, errors.Errorf("stl ends mid-facet with %d vertices", iVert)
	}

	return w.m, nil
}
