// Package kernel defines the abstract geometry kernel interface used for
// fast signed-distance previews. Implementations (sdfx, manifold) provide
// solid modeling and boolean operations behind this interface.
//
// This is deliberately NOT the B-Rep kernel (see pkg/brep/pkg/boolean for
// that): it exists so a feature can render a cheap marching-cubes preview
// of a solid, or so tests can cross-check a brep.Solid's bounding box
// against an independently computed SDF bounding box, without waiting on
// exact triangle-soup booleans.
package kernel

// Solid is an opaque handle to a solid produced by a Kernel implementation.
type Solid interface {
	// BoundingBox returns the axis-aligned bounding box in world space.
	BoundingBox() (min, max [3]float64)
}

// Kernel is the minimal solid-modeling surface a preview backend exposes.
type Kernel interface {
	Box(x, y, z float64) Solid
	Cylinder(height, radius float64, segments int) Solid

	Union(a, b Solid) Solid
	Difference(a, b Solid) Solid
	Intersection(a, b Solid) Solid

	Translate(s Solid, x, y, z float64) Solid
	Rotate(s Solid, x, y, z float64) Solid

	ToMesh(s Solid) (*Mesh, error)
}
