// Package sweep builds brep.Solid values from planar profiles by
// translation (Sweep), rotation about an axis (Revolve), or by
// interpolating between an ordered stack of profiles (Loft).
package sweep

import "errors"

// InsufficientProfiles is returned by Loft when fewer than two resolvable
// profile faces were supplied.
var InsufficientProfiles = errors.New("sweep: fewer than two profiles given to loft")

// DegenerateRing is returned when a profile's outer loop has fewer than
// three points distinct to within its welding epsilon.
var DegenerateRing = errors.New("sweep: degenerate ring (fewer than 3 unique points)")
