package mesh

import (
	"bufio"
	"io"
	"strconv"
	"strings"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/pkg/errors"
)

// loadObj understands the v/f subset of wavefront obj. Texture and
// normal indices in face records are ignored, polygon faces are
// triangulated as a fan.
func loadObj(r io.Reader) (*Mesh, error) {
	m := &Mesh{}

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)

	lineNum := 0
	for scanner.Scan() {
		lineNum++
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 || strings.HasPrefix(fields[0], "#") {
			continue
		}

		switch fields[0] {
		case "v":
			if len(fields) < 4 {
				return nil, errors.Errorf("line %d: vertex with %d components", lineNum, len(fields)-1)
			}
			var v mgl64.Vec3
			for i := 0; i < 3; i++ {
				f, err := strconv.ParseFloat(fields[i+1], 64)
				if err != nil {
					return nil, errors.Wrapf(err, "line %d: bad vertex coordinate", lineNum)
				}
				v[i] = f
			}
			m.Vertices = append(m.Vertices, v)
		case "f":
			if len(fields) < 4 {
				return nil, errors.Errorf("line %d: face with %d vertices", lineNum, len(fields)-1)
			}
			indexes := make([]int, 0, len(fields)-1)
			for _, field := range fields[1:] {
				index, err := parseObjIndex(field, len(m.Vertices))
				if err != nil {
					return nil, errors.Wrapf(err, "line %d", lineNum)
				}
				indexes = append(indexes, index)
			}
			for i := 2; i < len(indexes); i++ {
				m.Faces = append(m.Faces, [3]int{indexes[0], indexes[i-1], indexes[i]})
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}

	return m, nil
}

// parseObjIndex handles "7", "7/1", "7/1/2" and negative
// (relative to end) forms, returning a zero-based index.
func parseObjIndex(field string, vertexCount int) (int, error) {
	if slash := strings.IndexByte(field, '/'); slash != -1 {
		field = field[:slash]
	}
	index, err := strconv.Atoi(field)
	if err != nil {
		return 0, errors.Wrapf(err, "bad face index %q", field)
	}
	if index < 0 {
		return vertexCount + index, nil
	}
	return index - 1, nil
}
