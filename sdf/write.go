package sdf

import (
	"bufio"
	"encoding/xml"
	"fmt"
	"os"
	"path/filepath"

	"github.com/pkg/errors"

	"github.com/mogaika/mesh2sdf/hull"
)

// Write serializes the descriptor to outPath, placing hull part files
// in their parts directory next to it. The descriptor file itself is
// written last so a failure never leaves a document behind that
// references missing parts.
func (d *Descriptor) Write(outPath string) error {
	outDir := filepath.Dir(outPath)

	// re-relativize the visual uri in case the descriptor is not
	// written next to the mesh
	meshAbs, err := filepath.Abs(d.MeshPath)
	if err != nil {
		return &WriteError{Path: outPath, Err: err}
	}
	outDirAbs, err := filepath.Abs(outDir)
	if err != nil {
		return &WriteError{Path: outPath, Err: err}
	}
	if rel, err := filepath.Rel(outDirAbs, meshAbs); err == nil {
		d.Doc.Model.Link.Visual.Geometry.Mesh.URI = filepath.ToSlash(rel)
	}

	for _, part := range d.Parts {
		partPath := filepath.Join(outDir, filepath.FromSlash(part.RelPath))
		if err := os.MkdirAll(filepath.Dir(partPath), 0777); err != nil {
			return &WriteError{Path: partPath, Err: err}
		}
		if err := writePartObj(partPath, part.Name, part.Hull, d.Scale); err != nil {
			return &WriteError{Path: partPath, Err: err}
		}
	}

	data, err := xml.MarshalIndent(&d.Doc, "", "  ")
	if err != nil {
		return &WriteError{Path: outPath, Err: err}
	}
	data = append([]byte(xml.Header), data...)
	data = append(data, '\n')

	if err := os.WriteFile(outPath, data, 0666); err != nil {
		return &WriteError{Path: outPath, Err: err}
	}
	return nil
}

// writePartObj stores the hull in the mesh's original units: the
// descriptor applies the shared scale to visual and collision entries
// alike, so part files must hold unscaled coordinates to avoid
// scaling twice.
func writePartObj(path string, name string, h *hull.ConvexHull, scale float64) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}

	w := bufio.NewWriter(f)
	fmt.Fprintf(w, "o %s\n", name)
	for _, v := range h.Vertices {
		fmt.Fprintf(w, "v %.9g %.9g %.9g\n", v[0]/scale, v[1]/scale, v[2]/scale)
	}
	for _, face := range h.Faces {
		fmt.Fprintf(w, "f %d %d %d\n", face[0]+1, face[1]+1, face[2]+1)
	}

	if err := w.Flush(); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return errors.Wrapf(err, "Failed to close %q", path)
	}
	return nil
}
