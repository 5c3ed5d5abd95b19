package decomp

import (
	"bufio"
	"io"
	"strconv"
	"strings"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/pkg/errors"
)

// ParseHullObj splits a multi-object obj file into one point set per
// o/g group. Faces are ignored: the post-processor re-derives each
// hull from its points anyway.
func ParseHullObj(r io.Reader) ([][]mgl64.Vec3, error) {
	var hulls [][]mgl64.Vec3
	var current []mgl64.Vec3

	flush := func() {
		if len(current) > 0 {
			hulls = append(hulls, current)
			current = nil
		}
	}

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)

	lineNum := 0
	for scanner.Scan() {
		lineNum++
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}

		switch fields[0] {
		case "o", "g":
			flush()
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
			current = append(current, v)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	// a file without group markers parses as a single hull
	flush()

	return hulls, nil
}
