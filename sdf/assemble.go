package sdf

import (
	"fmt"
	"path"
	"path/filepath"

	"github.com/mogaika/mesh2sdf/hull"
	"github.com/mogaika/mesh2sdf/mesh"
)

func formatScalar(v float64) string {
	return fmt.Sprintf("%.4E", v)
}

func formatScale(scale float64) string {
	s := formatScalar(scale)
	return s + " " + s + " " + s
}

// Assemble builds the scene descriptor: one visual entry referencing
// the original mesh, one collision entry per hull. Purely structural;
// all coordinates were already scaled at load time. Collision entries
// are numbered in hull order so identical input yields an identical
// document.
func Assemble(m *mesh.Mesh, hulls []*hull.ConvexHull, density float64) (*Descriptor, error) {
	if len(hulls) == 0 {
		return nil, &AssemblyError{Reason: "no collision hulls were provided"}
	}

	base := m.Name
	mass, inertia := m.MassProperties(density)

	d := &Descriptor{
		MeshPath: m.Path,
		Scale:    m.Scale,
		Doc: Document{
			Version:    Version,
			DrakeXMLNS: DrakeNamespace,
			Model: Model{
				Name: base,
				Link: Link{
					Name: base + "_body_link",
					Pose: "0 0 0 0 0 0",
					Inertial: &Inertial{
						Mass: formatScalar(mass),
						Inertia: Inertia{
							Ixx: formatScalar(inertia.At(0, 0)),
							Ixy: formatScalar(inertia.At(0, 1)),
							Ixz: formatScalar(inertia.At(0, 2)),
							Iyy: formatScalar(inertia.At(1, 1)),
							Iyz: formatScalar(inertia.At(1, 2)),
							Izz: formatScalar(inertia.At(2, 2)),
						},
					},
					Visual: Visual{
						Name: "visual",
						Geometry: Geometry{Mesh: MeshRef{
							URI:   filepath.Base(m.Path),
							Scale: formatScale(m.Scale),
						}},
					},
				},
			},
		},
	}

	partsDir := base + "_parts"
	for k, h := range hulls {
		part := Part{
			Name: fmt.Sprintf("%s_collision_%d", base, k),
			// forward slashes regardless of platform, uris are not
			// filesystem paths
			RelPath: path.Join(partsDir, fmt.Sprintf("%s_convex_piece_%03d.obj", base, k)),
			Hull:    h,
		}
		d.Parts = append(d.Parts, part)
		d.Doc.Model.Link.Collisions = append(d.Doc.Model.Link.Collisions, Collision{
			Name: part.Name,
			Geometry: Geometry{Mesh: MeshRef{
				URI:           part.RelPath,
				Scale:         formatScale(m.Scale),
				DeclareConvex: &struct{}{},
			}},
		})
	}

	return d, nil
}
