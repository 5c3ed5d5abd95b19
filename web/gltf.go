package web

import (
	"io"

	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"

	"github.com/mogaika/mesh2sdf/utils"
)

// ExportGLB packs the whole scene into a binary gltf document. Nodes
// keep the descriptor's geometry names so viewers can toggle visual
// and collision groups apart.
func ExportGLB(w io.Writer, s *Scene) error {
	doc := gltf.NewDocument()

	visualMaterial := addMaterial(doc, "visual", [4]float32{0.1, 0.6, 1.0, 0.3})
	collisionMaterial := addMaterial(doc, "collision", [4]float32{0.8, 0.5, 0.2, 0.3})

	for _, g := range s.Geometries {
		positionAccessor := modeler.WritePosition(doc, utils.Vec3ArrayTo32(g.Vertices))
		indicesAccessor := modeler.WriteIndices(doc, utils.FlattenFaceArray(g.Faces))

		material := collisionMaterial
		if g.Kind == GeometryVisual {
			material = visualMaterial
		}

		doc.Meshes = append(doc.Meshes, &gltf.Mesh{
			Name: g.Name,
			Primitives: []*gltf.Primitive{{
				Attributes: map[string]uint32{"POSITION": positionAccessor},
				Indices:    gltf.Index(indicesAccessor),
				Material:   gltf.Index(material),
			}},
		})
		doc.Nodes = append(doc.Nodes, &gltf.Node{
			Name: g.Name,
			Mesh: gltf.Index(uint32(len(doc.Meshes) - 1)),
		})
		doc.Scenes[0].Nodes = append(doc.Scenes[0].Nodes, uint32(len(doc.Nodes)-1))
	}

	encoder := gltf.NewEncoder(w)
	encoder.AsBinary = true
	return encoder.Encode(doc)
}

func addMaterial(doc *gltf.Document, name string, rgba [4]float32) uint32 {
	doc.Materials = append(doc.Materials, &gltf.Material{
		Name: name,
		PBRMetallicRoughness: &gltf.PBRMetallicRoughness{
			BaseColorFactor: &rgba,
		},
		AlphaMode:   gltf.AlphaBlend,
		DoubleSided: true,
	})
	return uint32(len(doc.Materials) - 1)
}
