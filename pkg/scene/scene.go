// Package scene implements the external scene accessor contract: a
// name-based lookup tree the feature engine consumes to resolve selections
// and into which it injects/removes the artifacts features produce. This
// is the boundary where the kernel hands off to a renderer it does not
// own, so the tree carries names, transforms, and metadata only, no
// rendering state.
package scene

import (
	"fmt"

	"github.com/lignin-cad/core/pkg/brep"
)

// Accessor is the read side of the external contract: the subset of Scene
// a feature's run() is handed so it can resolve reference_selection
// parameters. Core code should depend on this interface, not *Scene,
// so feature code can never mutate the tree behind the engine's back.
type Accessor interface {
	GetObjectByName(name string) (*Object, bool)
}

// Artifact is one named solid a feature produces or consumes, the unit
// the history engine's {added, removed} lists are built from.
type Artifact struct {
	Name  string
	Solid *brep.Solid
}

// Scene is the concrete, mutable object tree. Only the history engine
// (pkg/feature) inserts or removes objects in it; core feature code only
// ever reads through Accessor.
type Scene struct {
	objects   map[string]*Object
	byFeature map[string][]string
}

// New creates an empty scene.
func New() *Scene {
	return &Scene{
		objects:   make(map[string]*Object),
		byFeature: make(map[string][]string),
	}
}

// GetObjectByName implements Accessor.
func (s *Scene) GetObjectByName(name string) (*Object, bool) {
	o, ok := s.objects[name]
	return o, ok
}

// InsertSolid adds a solid artifact to the scene as a SOLID object,
// stamping it (and every FACE/EDGE object derived from it) with
// owningFeatureID so a later re-run can find and remove everything a
// given feature step produced. Face and edge child objects
// are synthesized from the solid's own face names and boundary edges so
// that reference_selection parameters can resolve a bare solid name, a
// face name, or an edge name uniformly.
func (s *Scene) InsertSolid(name string, solid *brep.Solid, owningFeatureID string) (*Object, error) {
	if _, exists := s.objects[name]; exists {
		return nil, fmt.Errorf("scene: object %q already exists", name)
	}

	root := &Object{
		Type:            TypeSolid,
		Name:            name,
		Solid:           solid,
		UserData:        make(map[string]interface{}),
		owningFeatureID: owningFeatureID,
	}
	s.register(root)

	for _, faceName := range solid.GetFaceNames() {
		face := &Object{
			Type:            TypeFace,
			Name:            faceName,
			Parent:          root,
			Solid:           solid,
			FaceName:        faceName,
			UserData:        make(map[string]interface{}),
			owningFeatureID: owningFeatureID,
		}
		root.Children = append(root.Children, face)
		s.register(face)
	}

	boundaries, err := solid.GetBoundaryEdgePolylines()
	if err == nil {
		for i, b := range boundaries {
			edgeName := fmt.Sprintf("%s:%s/%s#%d", name, b.FaceA, b.FaceB, i)
			edge := &Object{
				Type:            TypeEdge,
				Name:            edgeName,
				Parent:          root,
				Solid:           solid,
				EdgeName:        edgeName,
				EdgeFaceA:       b.FaceA,
				EdgeFaceB:       b.FaceB,
				UserData:        map[string]interface{}{"polylineWorld": b.Positions, "polylineLocal": b.Positions},
				owningFeatureID: owningFeatureID,
			}
			root.Children = append(root.Children, edge)
			s.register(edge)
			if parent, ok := s.objects[b.FaceA]; ok {
				parent.Children = append(parent.Children, edge)
			}
			if parent, ok := s.objects[b.FaceB]; ok && b.FaceB != b.FaceA {
				parent.Children = append(parent.Children, edge)
			}
		}
	}

	return root, nil
}

// InsertSketch adds a bare SKETCH object under name; no face or edge
// child objects are created for it. Sketches are
// consumed (removed) by features that set consumeProfileSketch.
func (s *Scene) InsertSketch(name string, owningFeatureID string) (*Object, error) {
	if _, exists := s.objects[name]; exists {
		return nil, fmt.Errorf("scene: object %q already exists", name)
	}
	o := &Object{
		Type:            TypeSketch,
		Name:            name,
		UserData:        make(map[string]interface{}),
		owningFeatureID: owningFeatureID,
	}
	s.register(o)
	return o, nil
}

func (s *Scene) register(o *Object) {
	s.objects[o.Name] = o
	s.byFeature[o.owningFeatureID] = append(s.byFeature[o.owningFeatureID], o.Name)
}

// Remove deletes a single named object (and detaches it from its
// parent's children list, if any) without touching anything else it
// produced alongside it.
func (s *Scene) Remove(name string) bool {
	o, ok := s.objects[name]
	if !ok {
		return false
	}
	delete(s.objects, name)
	if o.Parent != nil {
		siblings := o.Parent.Children[:0]
		for _, c := range o.Parent.Children {
			if c.Name != name {
				siblings = append(siblings, c)
			}
		}
		o.Parent.Children = siblings
	}
	names := s.byFeature[o.owningFeatureID]
	kept := names[:0]
	for _, n := range names {
		if n != name {
			kept = append(kept, n)
		}
	}
	s.byFeature[o.owningFeatureID] = kept
	return true
}

// RemoveOwnedBy removes every object stamped with the given
// owningFeatureID, returning their names. Used by the history engine to
// tear down everything a feature step contributed before re-running it.
func (s *Scene) RemoveOwnedBy(featureID string) []string {
	names := append([]string(nil), s.byFeature[featureID]...)
	for _, n := range names {
		s.Remove(n)
	}
	delete(s.byFeature, featureID)
	return names
}

// Apply inserts added artifacts and removes named objects in one step,
// the scene-side half of a feature's {added, removed} result.
func (s *Scene) Apply(owningFeatureID string, added []Artifact, removed []string) error {
	for _, name := range removed {
		s.Remove(name)
	}
	for _, a := range added {
		if _, err := s.InsertSolid(a.Name, a.Solid, owningFeatureID); err != nil {
			return err
		}
	}
	return nil
}

// Solids returns every top-level SOLID object's brep.Solid keyed by name.
// Outside the Accessor contract proper: a consumer exporting the finished
// model (pkg/export, cmd/cadhost) needs to enumerate the scene, which no
// feature ever does through a named selection.
func (s *Scene) Solids() map[string]*brep.Solid {
	out := make(map[string]*brep.Solid)
	for name, o := range s.objects {
		if o.Type == TypeSolid && o.Solid != nil {
			out[name] = o.Solid
		}
	}
	return out
}
