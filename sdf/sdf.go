// Package sdf assembles and serializes sdf scene descriptors that pair
// a visual mesh with its convex collision decomposition.
package sdf

import (
	"encoding/xml"
	"fmt"

	"github.com/mogaika/mesh2sdf/hull"
)

const (
	Version        = "1.5"
	DrakeNamespace = "drake.mit.edu"
)

type Document struct {
	XMLName    xml.Name `xml:"sdf"`
	Version    string   `xml:"version,attr"`
	DrakeXMLNS string   `xml:"xmlns:drake,attr,omitempty"`
	Model      Model    `xml:"model"`
}

type Model struct {
	Name string `xml:"name,attr"`
	Link Link   `xml:"link"`
}

type Link struct {
	Name       string      `xml:"name,attr"`
	Pose       string      `xml:"pose"`
	Inertial   *Inertial   `xml:"inertial,omitempty"`
	Visual     Visual      `xml:"visual"`
	Collisions []Collision `xml:"collision"`
}

type Inertial struct {
	Mass    string  `xml:"mass"`
	Inertia Inertia `xml:"inertia"`
}

// Inertia is the upper triangle of the symmetric inertia tensor.
type Inertia struct {
	Ixx string `xml:"ixx"`
	Ixy string `xml:"ixy"`
	Ixz string `xml:"ixz"`
	Iyy string `xml:"iyy"`
	Iyz string `xml:"iyz"`
	Izz string `xml:"izz"`
}

type Visual struct {
	Name     string   `xml:"name,attr"`
	Geometry Geometry `xml:"geometry"`
}

type Collision struct {
	Name     string   `xml:"name,attr"`
	Geometry Geometry `xml:"geometry"`
}

type Geometry struct {
	Mesh MeshRef `xml:"mesh"`
}

type MeshRef struct {
	URI   string `xml:"uri"`
	Scale string `xml:"scale,omitempty"`
	// Tells drake to treat the referenced mesh as already convex.
	DeclareConvex *struct{} `xml:"drake:declare_convex,omitempty"`
}

// Part is one collision piece: the hull geometry plus the
// descriptor-relative path its obj file will be written to.
type Part struct {
	Name    string
	RelPath string
	Hull    *hull.ConvexHull
}

// Descriptor is a fully assembled scene description, ready to be
// serialized. Parts hold the hull geometry that backs the document's
// collision references.
type Descriptor struct {
	Doc      Document
	MeshPath string
	Scale    float64
	Parts    []Part
}

type AssemblyError struct {
	Reason string
}

func (e *AssemblyError) Error() string {
	return fmt.Sprintf("Descriptor assembly failed: %s", e.Reason)
}

type WriteError struct {
	Path string
	Err  error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("Failed to write descriptor %q: %v", e.Path, e.Err)
}

func (e *WriteError) Unwrap() error { return e.Err }
