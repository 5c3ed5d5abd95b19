package sdf

import (
	"encoding/xml"
	"io/ioutil"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// Parse loads a descriptor produced by Write (or a compatible sdf
// document) for inspection. Hull geometry is not loaded here; callers
// resolve the collision uris relative to the descriptor themselves.
func Parse(path string) (*Document, error) {
	data, err := ioutil.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "Failed to read descriptor %q", path)
	}

	var doc Document
	if err := xml.Unmarshal(data, &doc); err != nil {
		return nil, errors.Wrapf(err, "Failed to parse descriptor %q", path)
	}

	if doc.Model.Link.Visual.Geometry.Mesh.URI == "" {
		return nil, errors.Errorf("Descriptor %q has no visual mesh reference", path)
	}
	if len(doc.Model.Link.Collisions) == 0 {
		return nil, errors.Errorf("Descriptor %q has no collision entries", path)
	}

	return &doc, nil
}

// ParseScale reads the first component of a "sx sy sz" scale string.
// The pipeline only ever writes uniform scales.
func ParseScale(s string) (float64, error) {
	fields := strings.Fields(s)
	if len(fields) == 0 {
		return 1, nil
	}
	v, err := strconv.ParseFloat(fields[0], 64)
	if err != nil {
		return 0, errors.Wrapf(err, "Bad scale %q", s)
	}
	return v, nil
}
