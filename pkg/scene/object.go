package scene

import (
	"github.com/lignin-cad/core/pkg/brep"
	"github.com/lignin-cad/core/pkg/geom"
)

// ObjectType enumerates the viewport node kinds features reference by
// selection name.
type ObjectType int

const (
	TypeSolid ObjectType = iota
	TypeFace
	TypeEdge
	TypeSketch
	TypePlane
	TypeVertex
)

func (t ObjectType) String() string {
	switch t {
	case TypeSolid:
		return "SOLID"
	case TypeFace:
		return "FACE"
	case TypeEdge:
		return "EDGE"
	case TypeSketch:
		return "SKETCH"
	case TypePlane:
		return "PLANE"
	case TypeVertex:
		return "VERTEX"
	default:
		return "UNKNOWN"
	}
}

// Object is a node of the viewport's scene tree, the external contract a
// feature consumes through Accessor. Core never walks renderer structures
// directly; every selection reference in a feature's parameters resolves
// through one of these.
type Object struct {
	Type        ObjectType
	Name        string
	Parent      *Object
	Children    []*Object
	UserData    map[string]interface{}
	MatrixWorld geom.Mat4

	// Solid is populated when Type == TypeSolid: the B-Rep solid this
	// object wraps. FaceName/EdgeName identify the sub-element within
	// Solid when Type is TypeFace/TypeEdge. EdgeFaceA/EdgeFaceB record
	// the two faces an EDGE object was synthesized between, so validation
	// can re-check the pair against the solid's face-adjacency graph
	// without parsing the edge's name.
	Solid     *brep.Solid
	FaceName  string
	EdgeName  string
	EdgeFaceA string
	EdgeFaceB string

	owningFeatureID string
}

// AverageNormal returns the area-weighted average normal of a FACE
// object's triangles, mirroring the viewport's getAverageNormal().
func (o *Object) AverageNormal() (geom.Vec3, bool) {
	if o.Type != TypeFace || o.Solid == nil {
		return geom.Vec3{}, false
	}
	tris, ok := o.Solid.GetFace(o.FaceName)
	if !ok || len(tris) == 0 {
		return geom.Vec3{}, false
	}
	sum := geom.Vec3{}
	for _, t := range tris {
		a, b, c := o.Solid.Positions(t)
		n := b.Sub(a).Cross(c.Sub(a))
		sum = sum.Add(n)
	}
	if sum.Length() < geom.Epsilon {
		return geom.Vec3{}, false
	}
	return sum.Normalize(), true
}

// BoundaryLoopsWorld returns the FACE object's outer+hole loops, the
// boundary geometry sweep-style features consume.
func (o *Object) BoundaryLoopsWorld() ([]geom.Polyline3, bool) {
	if o.Type != TypeFace || o.Solid == nil {
		return nil, false
	}
	return o.Solid.FaceBoundaryLoops(o.FaceName)
}

// Edges returns the child EDGE objects of a FACE or SOLID object.
func (o *Object) Edges() []*Object {
	var edges []*Object
	for _, c := range o.Children {
		if c.Type == TypeEdge {
			edges = append(edges, c)
		}
	}
	return edges
}
