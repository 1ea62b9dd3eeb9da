package geom

// Polyline2 is an ordered sequence of 2D points. A Polyline2 may represent
// either an open chain or a closed loop; callers track which via context
// (profiles are loops, boundary chains from a tracer may be open until
// EnsureClosed is applied).
type Polyline2 []Vec2

// EnsureClosed returns p with a final point equal to the first appended, if
// it is not already closed within eps. The input is never mutated.
func (p Polyline2) EnsureClosed(eps float64) Polyline2 {
	if len(p) < 2 {
		return append(Polyline2{}, p...)
	}
	if p[0].DistanceTo(p[len(p)-1]) <= eps {
		return append(Polyline2{}, p...)
	}
	out := make(Polyline2, len(p)+1)
	copy(out, p)
	out[len(p)] = p[0]
	return out
}

// ToOpen drops a duplicated closing point, if present within eps.
func (p Polyline2) ToOpen(eps float64) Polyline2 {
	if len(p) < 2 {
		return append(Polyline2{}, p...)
	}
	if p[0].DistanceTo(p[len(p)-1]) <= eps {
		return append(Polyline2{}, p[:len(p)-1]...)
	}
	return append(Polyline2{}, p...)
}

// RotateStart returns a copy of an open loop's point sequence rotated so
// that index i becomes index 0. i is taken modulo len(p).
func (p Polyline2) RotateStart(i int) Polyline2 {
	n := len(p)
	if n == 0 {
		return Polyline2{}
	}
	i = ((i % n) + n) % n
	out := make(Polyline2, n)
	for k := 0; k < n; k++ {
		out[k] = p[(i+k)%n]
	}
	return out
}

// ReverseLoop returns the points in reverse order, which also reverses the
// loop's winding direction.
func (p Polyline2) ReverseLoop() Polyline2 {
	n := len(p)
	out := make(Polyline2, n)
	for i, v := range p {
		out[n-1-i] = v
	}
	return out
}

// SignedArea computes the shoelace signed area of an open point loop.
// Positive indicates counter-clockwise winding in a standard (X right, Y
// up) 2D frame.
func (p Polyline2) SignedArea() float64 {
	n := len(p)
	if n < 3 {
		return 0
	}
	var sum float64
	for i := 0; i < n; i++ {
		a := p[i]
		b := p[(i+1)%n]
		sum += a.X*b.Y - b.X*a.Y
	}
	return sum / 2
}

// IsClockwise reports whether the loop winds clockwise.
func (p Polyline2) IsClockwise() bool {
	return p.SignedArea() < 0
}

// Length returns the total length of the (open) point chain.
func (p Polyline2) Length() float64 {
	var total float64
	for i := 1; i < len(p); i++ {
		total += p[i-1].DistanceTo(p[i])
	}
	return total
}

// Polyline3 is the world-space counterpart of Polyline2, used for boundary
// edges extracted from a brep.Solid and for sweep rail paths.
type Polyline3 []Vec3

func (p Polyline3) Length() float64 {
	var total float64
	for i := 1; i < len(p); i++ {
		total += p[i-1].DistanceTo(p[i])
	}
	return total
}

// Project flattens a world-space polyline onto pl, in plane-local
// coordinates.
func (p Polyline3) Project(pl Plane) Polyline2 {
	out := make(Polyline2, len(p))
	for i, v := range p {
		out[i] = pl.Project(v)
	}
	return out
}
