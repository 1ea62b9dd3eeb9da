package brep

import "testing"

func TestSheetFaceKindString(t *testing.T) {
	tests := []struct {
		kind SheetFaceKind
		want string
	}{
		{SheetA, "A"},
		{SheetB, "B"},
		{SheetThickness, "Thickness"},
		{SheetBend, "Bend"},
	}
	for _, tt := range tests {
		if got := tt.kind.String(); got != tt.want {
			t.Errorf("SheetFaceKind(%d).String() = %q, want %q", tt.kind, got, tt.want)
		}
	}
}

func TestMetadataVariantsAreDistinctTypes(t *testing.T) {
	variants := []Metadata{
		Planar{},
		Cylindrical{},
		Spherical{},
		Conical{},
		Sidewall{},
		Sheet{},
		Opaque{},
	}
	seen := make(map[string]bool)
	for _, v := range variants {
		name := metadataTypeName(v)
		if seen[name] {
			t.Errorf("duplicate metadata type name %q", name)
		}
		seen[name] = true
	}
}

func metadataTypeName(m Metadata) string {
	switch m.(type) {
	case Planar:
		return "Planar"
	case Cylindrical:
		return "Cylindrical"
	case Spherical:
		return "Spherical"
	case Conical:
		return "Conical"
	case Sidewall:
		return "Sidewall"
	case Sheet:
		return "Sheet"
	case Opaque:
		return "Opaque"
	default:
		return "Unknown"
	}
}
