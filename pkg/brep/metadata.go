package brep

import "github.com/lignin-cad/core/pkg/geom"

// SheetFaceKind distinguishes the roles a sheet-metal sub-kernel assigns to
// a face of an otherwise ordinary brep.Solid.
type SheetFaceKind int

const (
	SheetA SheetFaceKind = iota
	SheetB
	SheetThickness
	SheetBend
)

func (k SheetFaceKind) String() string {
	switch k {
	case SheetA:
		return "A"
	case SheetB:
		return "B"
	case SheetThickness:
		return "Thickness"
	case SheetBend:
		return "Bend"
	default:
		return "Unknown"
	}
}

// Metadata is the tagged variant attached to every Face. The marker
// method restricts implementations to this package, so a switch over the
// variants is exhaustive by construction.
type Metadata interface {
	faceMetadata()
}

// Planar marks a face as flat, described by its origin and outward normal.
type Planar struct {
	Normal geom.Vec3
	Origin geom.Vec3
}

// Cylindrical marks a face as a section of a cylinder's lateral surface.
type Cylindrical struct {
	Axis   geom.Vec3 // unit direction
	Center geom.Vec3 // a point on the axis
	Radius float64
	Height float64

	// BendRadius is populated when this cylindrical face was classified as
	// a sheet-metal Bend; zero otherwise.
	BendRadius float64
}

// Spherical marks a face as a section of a sphere's surface.
type Spherical struct {
	Center geom.Vec3
	Radius float64
}

// Conical marks a face as a section of a cone's lateral surface.
type Conical struct {
	Axis      geom.Vec3
	Apex      geom.Vec3
	HalfAngle float64 // radians
}

// Sidewall marks a face produced by a sweep/revolve/loft side wall whose
// shape was not recognized as one of the more specific variants. Sweep and
// sheet-metal features may promote a Sidewall to Cylindrical once its
// shape is known (metadata tagging is monotonic, never demoted).
type Sidewall struct{}

// Sheet marks a face classified by the sheet-metal sub-kernel. Normal and
// Origin preserve the plane of the A/B face the tag replaced, so
// downstream operations (cutout prisms, unfolding) keep their geometric
// anchor after classification.
type Sheet struct {
	Kind   SheetFaceKind
	Normal geom.Vec3
	Origin geom.Vec3
}

// Opaque marks a face whose shape classification was not attempted
// (imported geometry, or a face the kernel declines to classify).
type Opaque struct{}

func (Planar) faceMetadata()      {}
func (Cylindrical) faceMetadata() {}
func (Spherical) faceMetadata()   {}
func (Conical) faceMetadata()     {}
func (Sidewall) faceMetadata()    {}
func (Sheet) faceMetadata()       {}
func (Opaque) faceMetadata()      {}

var (
	_ Metadata = Planar{}
	_ Metadata = Cylindrical{}
	_ Metadata = Spherical{}
	_ Metadata = Conical{}
	_ Metadata = Sidewall{}
	_ Metadata = Sheet{}
	_ Metadata = Opaque{}
)
