// Package brep implements the boundary-representation solid: triangles
// grouped into named faces sharing one welded vertex pool, with metadata
// tagging, boundary-edge extraction, and winding repair. It is deliberately
// not a full non-manifold kernel: curves are always discretized polylines,
// and healing goes no further than local welding and winding fixes.
package brep

import (
	"fmt"
	"math"

	"github.com/lignin-cad/core/pkg/geom"
)

// DefaultEpsilon is the welding tolerance used when a Solid is created
// without an explicit call to SetEpsilon.
const DefaultEpsilon = 1e-6

// rawTriangle is a triangle as supplied to AddTriangle, before welding.
type rawTriangle struct {
	P1, P2, P3 geom.Vec3
}

// Triangle indexes three vertices in the solid's welded vertex pool.
type Triangle struct {
	A, B, C int
}

type face struct {
	name     string
	raw      []rawTriangle
	indices  []Triangle
	metadata Metadata
	boundary []geom.Polyline3 // outer loop + holes, world space
}

// Solid is a set of named faces sharing one welded vertex pool.
type Solid struct {
	Name            string
	OwningFeatureID string

	epsilon float64
	dirty   bool

	faces     map[string]*face
	faceOrder []string

	vertices []geom.Vec3
	normals  []geom.Vec3
}

// NewSolid returns an empty solid with the default welding epsilon.
func NewSolid(name string) *Solid {
	return &Solid{
		Name:    name,
		epsilon: DefaultEpsilon,
		faces:   make(map[string]*face),
	}
}

// SetEpsilon sets the vertex-welding tolerance used by the next Visualize
// call. Changing it marks the solid dirty even if Visualize already ran.
func (s *Solid) SetEpsilon(eps float64) {
	if eps <= 0 {
		eps = DefaultEpsilon
	}
	s.epsilon = eps
	s.dirty = true
}

// Epsilon returns the solid's current welding tolerance.
func (s *Solid) Epsilon() float64 { return s.epsilon }

// AddTriangle appends a triangle to the named face, creating the face (with
// Opaque metadata) on first reference. Marks the solid dirty.
func (s *Solid) AddTriangle(faceName string, p1, p2, p3 geom.Vec3) {
	f, ok := s.faces[faceName]
	if !ok {
		f = &face{name: faceName, metadata: Opaque{}}
		s.faces[faceName] = f
		s.faceOrder = append(s.faceOrder, faceName)
	}
	f.raw = append(f.raw, rawTriangle{p1, p2, p3})
	s.dirty = true
}

// GetFaceNames returns face names in the order faces were first referenced.
func (s *Solid) GetFaceNames() []string {
	out := make([]string, len(s.faceOrder))
	copy(out, s.faceOrder)
	return out
}

// GetFace returns the welded triangle indices of a face. Callers needing
// positions should look them up in Vertices().
func (s *Solid) GetFace(name string) ([]Triangle, bool) {
	f, ok := s.faces[name]
	if !ok {
		return nil, false
	}
	if s.dirty {
		s.Visualize()
	}
	out := make([]Triangle, len(f.indices))
	copy(out, f.indices)
	return out, true
}

// RenameFace renames a face in place. Returns false if old does not exist
// or new is already taken by a different face.
func (s *Solid) RenameFace(old, new string) bool {
	if old == new {
		_, ok := s.faces[old]
		return ok
	}
	f, ok := s.faces[old]
	if !ok {
		return false
	}
	if _, clash := s.faces[new]; clash {
		return false
	}
	delete(s.faces, old)
	f.name = new
	s.faces[new] = f
	for i, n := range s.faceOrder {
		if n == old {
			s.faceOrder[i] = new
			break
		}
	}
	return true
}

// GetFaceMetadata returns the metadata attached to a face.
func (s *Solid) GetFaceMetadata(name string) (Metadata, bool) {
	f, ok := s.faces[name]
	if !ok {
		return nil, false
	}
	return f.metadata, true
}

// SetFaceMetadata overwrites the metadata attached to a face. Returns false
// if the face does not exist.
func (s *Solid) SetFaceMetadata(name string, md Metadata) bool {
	f, ok := s.faces[name]
	if !ok {
		return false
	}
	f.metadata = md
	return true
}

// SetFaceBoundaryLoops records the outer loop + hole loops (world space)
// used when a feature sweeps or extrudes this face as a profile.
func (s *Solid) SetFaceBoundaryLoops(name string, loops []geom.Polyline3) bool {
	f, ok := s.faces[name]
	if !ok {
		return false
	}
	f.boundary = loops
	return true
}

// FaceBoundaryLoops returns the loops previously recorded via
// SetFaceBoundaryLoops.
func (s *Solid) FaceBoundaryLoops(name string) ([]geom.Polyline3, bool) {
	f, ok := s.faces[name]
	if !ok {
		return nil, false
	}
	return f.boundary, true
}

// Vertices returns the welded vertex pool. Triggers Visualize if dirty.
func (s *Solid) Vertices() []geom.Vec3 {
	if s.dirty {
		s.Visualize()
	}
	return s.vertices
}

// Normals returns per-vertex averaged normals, parallel to Vertices().
func (s *Solid) Normals() []geom.Vec3 {
	if s.dirty {
		s.Visualize()
	}
	return s.normals
}

// Positions resolves a Triangle's three vertex positions.
func (s *Solid) Positions(t Triangle) (geom.Vec3, geom.Vec3, geom.Vec3) {
	v := s.Vertices()
	return v[t.A], v[t.B], v[t.C]
}

// BoundingBox returns the axis-aligned bounding box over every welded
// vertex. Shaped to match kernel.Solid's own BoundingBox so a solid built
// here can be cross-checked against an independently constructed
// kernel.Solid covering the same box.
func (s *Solid) BoundingBox() (min, max geom.Vec3) {
	verts := s.Vertices()
	if len(verts) == 0 {
		return geom.Vec3{}, geom.Vec3{}
	}
	min, max = verts[0], verts[0]
	for _, v := range verts[1:] {
		if v.X < min.X {
			min.X = v.X
		}
		if v.Y < min.Y {
			min.Y = v.Y
		}
		if v.Z < min.Z {
			min.Z = v.Z
		}
		if v.X > max.X {
			max.X = v.X
		}
		if v.Y > max.Y {
			max.Y = v.Y
		}
		if v.Z > max.Z {
			max.Z = v.Z
		}
	}
	return min, max
}

// Visualize is the idempotent finalizer: it welds vertices to the epsilon
// grid, fills derived per-face triangle indices, and computes per-vertex
// normals as the area-weighted average of adjacent triangle normals. Safe
// to call repeatedly; a no-op when nothing has changed since the last run.
func (s *Solid) Visualize() {
	if !s.dirty && s.vertices != nil {
		return
	}

	pool := make(map[gridKey]int)
	var vertices []geom.Vec3
	weld := func(p geom.Vec3) int {
		key := quantize(p, s.epsilon)
		if idx, ok := pool[key]; ok {
			return idx
		}
		idx := len(vertices)
		pool[key] = idx
		vertices = append(vertices, p)
		return idx
	}

	for _, name := range s.faceOrder {
		f := s.faces[name]
		f.indices = make([]Triangle, 0, len(f.raw))
		for _, t := range f.raw {
			a := weld(t.P1)
			b := weld(t.P2)
			c := weld(t.P3)
			f.indices = append(f.indices, Triangle{a, b, c})
		}
	}

	normalSum := make([]geom.Vec3, len(vertices))
	for _, name := range s.faceOrder {
		f := s.faces[name]
		for _, tri := range f.indices {
			a, b, c := vertices[tri.A], vertices[tri.B], vertices[tri.C]
			n := b.Sub(a).Cross(c.Sub(a))
			normalSum[tri.A] = normalSum[tri.A].Add(n)
			normalSum[tri.B] = normalSum[tri.B].Add(n)
			normalSum[tri.C] = normalSum[tri.C].Add(n)
		}
	}
	normals := make([]geom.Vec3, len(vertices))
	for i, n := range normalSum {
		normals[i] = n.Normalize()
	}

	s.vertices = vertices
	s.normals = normals
	s.dirty = false
}

// Clone performs a deep clone preserving face names, metadata, vertex pool,
// and epsilon. The clone is independent: mutating it never affects the
// source solid.
func (s *Solid) Clone() *Solid {
	if s.dirty {
		s.Visualize()
	}
	out := &Solid{
		Name:            s.Name,
		OwningFeatureID: s.OwningFeatureID,
		epsilon:         s.epsilon,
		faces:           make(map[string]*face, len(s.faces)),
		faceOrder:       append([]string{}, s.faceOrder...),
		vertices:        append([]geom.Vec3{}, s.vertices...),
		normals:         append([]geom.Vec3{}, s.normals...),
	}
	for name, f := range s.faces {
		out.faces[name] = &face{
			name:     f.name,
			raw:      append([]rawTriangle{}, f.raw...),
			indices:  append([]Triangle{}, f.indices...),
			metadata: f.metadata,
			boundary: append([]geom.Polyline3{}, f.boundary...),
		}
	}
	return out
}

// FaceOf returns the name of the face owning triangle index i within the
// flattened triangle list produced by iterating faceOrder in order, used
// by the boolean engine to map a contributing source triangle back to its
// face.
func (s *Solid) FaceOf(triangleFlatIndex int) (string, bool) {
	if s.dirty {
		s.Visualize()
	}
	i := triangleFlatIndex
	for _, name := range s.faceOrder {
		f := s.faces[name]
		if i < len(f.indices) {
			return name, true
		}
		i -= len(f.indices)
	}
	return "", false
}

// AllTriangles returns every triangle in the solid paired with its face
// name, in face order.
func (s *Solid) AllTriangles() []struct {
	Face string
	Tri  Triangle
} {
	if s.dirty {
		s.Visualize()
	}
	var out []struct {
		Face string
		Tri  Triangle
	}
	for _, name := range s.faceOrder {
		for _, tri := range s.faces[name].indices {
			out = append(out, struct {
				Face string
				Tri  Triangle
			}{name, tri})
		}
	}
	return out
}

type gridKey [3]int64

func quantize(p geom.Vec3, eps float64) gridKey {
	return gridKey{
		int64(math.Round(p.X / eps)),
		int64(math.Round(p.Y / eps)),
		int64(math.Round(p.Z / eps)),
	}
}

// String renders a short human-readable summary, useful in test failure
// messages and log lines.
func (s *Solid) String() string {
	return fmt.Sprintf("Solid(%s, %d faces, eps=%g)", s.Name, len(s.faces), s.epsilon)
}
