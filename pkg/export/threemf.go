// Package export implements solid interchange export beyond the
// sheet-metal flat-pattern DXF/SVG output of pkg/sheetmetal: a plain
// 3MF mesh export of a finished brep.Solid, for users who want the 3-D
// result rather than just a flattened sheet.
package export

import (
	"fmt"
	"io"

	"github.com/hpinc/go3mf"

	"github.com/lignin-cad/core/pkg/brep"
	"github.com/lignin-cad/core/pkg/geom"
)

// ThreeMF writes every named solid to a single 3MF package, one go3mf
// Object per solid and one Build Item placing it at the origin. Unlike
// the DXF/SVG flat-pattern writers (which only make sense for a
// classified sheet), this accepts any solid; it is a generic mesh dump,
// not a sheet-metal-specific export.
func ThreeMF(w io.Writer, solids map[string]*brep.Solid) error {
	model := &go3mf.Model{Units: go3mf.UnitMillimeter}

	var nextID uint32 = 1
	for name, solid := range solids {
		obj, err := solidToObject(nextID, name, solid)
		if err != nil {
			return fmt.Errorf("export: solid %q: %w", name, err)
		}
		model.Resources.Objects = append(model.Resources.Objects, obj)
		model.Build.Items = append(model.Build.Items, &go3mf.Item{ObjectID: obj.ID})
		nextID++
	}

	enc := go3mf.NewEncoder(w)
	if err := enc.Encode(model); err != nil {
		return fmt.Errorf("export: encoding 3mf package: %w", err)
	}
	return nil
}

// solidToObject flattens every face of a solid into one go3mf Mesh. Faces
// are not preserved as separate 3MF objects since the format's identity
// unit is the triangle, not the named face groups the B-Rep kernel uses;
// face names are dropped on export the same way they would be by any
// consumer outside this repo's own kernel.
func solidToObject(id uint32, name string, solid *brep.Solid) (*go3mf.Object, error) {
	mesh := &go3mf.Mesh{}
	index := make(map[geom.Vec3]uint32)

	vertexIndex := func(v geom.Vec3) uint32 {
		if i, ok := index[v]; ok {
			return i
		}
		i := uint32(len(mesh.Vertices.Vertex))
		mesh.Vertices.Vertex = append(mesh.Vertices.Vertex, go3mf.Point3D{
			float32(v.X), float32(v.Y), float32(v.Z),
		})
		index[v] = i
		return i
	}

	for _, faceName := range solid.GetFaceNames() {
		tris, ok := solid.GetFace(faceName)
		if !ok {
			continue
		}
		for _, tri := range tris {
			a, b, c := solid.Positions(tri)
			i1 := vertexIndex(a)
			i2 := vertexIndex(b)
			i3 := vertexIndex(c)
			mesh.Triangles.Triangle = append(mesh.Triangles.Triangle, go3mf.Triangle{V1: i1, V2: i2, V3: i3})
		}
	}

	if len(mesh.Triangles.Triangle) == 0 {
		return nil, fmt.Errorf("solid %q has no triangles", name)
	}

	return &go3mf.Object{ID: id, Name: name, Mesh: mesh}, nil
}
