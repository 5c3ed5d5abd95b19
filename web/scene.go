package web

import (
	"log"
	"path/filepath"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/pkg/errors"

	"github.com/mogaika/mesh2sdf/mesh"
	"github.com/mogaika/mesh2sdf/sdf"
)

const (
	GeometryVisual    = "visual"
	GeometryCollision = "collision"
)

type Geometry struct {
	Name     string
	Kind     string
	Vertices []mgl64.Vec3
	Faces    [][3]int
}

// Scene is a descriptor resolved into renderable geometry. Mesh
// references are loaded relative to the descriptor's directory and
// have their scale applied, matching what a simulator would see.
type Scene struct {
	Path       string
	Doc        *sdf.Document
	Geometries []Geometry
}

func LoadScene(descriptorPath string) (*Scene, error) {
	doc, err := sdf.Parse(descriptorPath)
	if err != nil {
		return nil, err
	}

	s := &Scene{Path: descriptorPath, Doc: doc}
	dir := filepath.Dir(descriptorPath)
	link := &doc.Model.Link

	visual := link.Visual.Geometry.Mesh
	scale, err := sdf.ParseScale(visual.Scale)
	if err != nil {
		return nil, err
	}
	if scale == 0 {
		scale = 1
	}

	// the visual mesh may be in a format the loader does not support;
	// collision inspection still works without it
	if m, err := mesh.Load(filepath.Join(dir, filepath.FromSlash(visual.URI)), scale); err != nil {
		log.Printf("[web] Skipping visual mesh: %v", err)
	} else {
		s.Geometries = append(s.Geometries, Geometry{
			Name:     link.Visual.Name,
			Kind:     GeometryVisual,
			Vertices: m.Vertices,
			Faces:    m.Faces,
		})
	}

	for _, collision := range link.Collisions {
		ref := collision.Geometry.Mesh
		collisionScale, err := sdf.ParseScale(ref.Scale)
		if err != nil {
			return nil, err
		}
		if collisionScale == 0 {
			collisionScale = 1
		}
		m, err := mesh.Load(filepath.Join(dir, filepath.FromSlash(ref.URI)), collisionScale)
		if err != nil {
			return nil, errors.Wrapf(err, "Failed to load collision piece %q", collision.Name)
		}
		s.Geometries = append(s.Geometries, Geometry{
			Name:     collision.Name,
			Kind:     GeometryCollision,
			Vertices: m.Vertices,
			Faces:    m.Faces,
		})
	}

	if len(s.Geometries) == 0 {
		return nil, errors.Errorf("Descriptor %q yielded no renderable geometry", descriptorPath)
	}

	return s, nil
}
