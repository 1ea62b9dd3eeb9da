package geom

// Triangulate ear-clips a simple polygon given by outer (CCW) plus zero or
// more hole loops (CW), returning indices into a single flattened point
// list: outer points first, then each hole's points in order. Holes are
// handled by bridging each hole into the outer loop at the outer vertex
// nearest the hole's rightmost point (visibility is not checked), after
// which a plain simple-polygon ear clip finishes the job.
func Triangulate(outer Polyline2, holes []Polyline2) ([]Vec2, [][3]int) {
	outer = outer.ToOpen(Epsilon)
	if len(outer) < 3 {
		return nil, nil
	}
	if outer.IsClockwise() {
		outer = outer.ReverseLoop()
	}

	points := append(Polyline2{}, outer...)
	merged := append(Polyline2{}, outer...)

	for _, h := range holes {
		h = h.ToOpen(Epsilon)
		if len(h) < 3 {
			continue
		}
		if !h.IsClockwise() {
			h = h.ReverseLoop()
		}
		points = append(points, h...)
		merged = bridgeHole(merged, h)
	}

	indexOf := make(map[Vec2]int, len(points))
	for i, p := range points {
		indexOf[p] = i
	}

	tris := earClip(merged)
	out := make([][3]int, 0, len(tris))
	for _, t := range tris {
		a, aok := indexOf[t[0]]
		b, bok := indexOf[t[1]]
		c, cok := indexOf[t[2]]
		if aok && bok && cok {
			out = append(out, [3]int{a, b, c})
		}
	}
	return points, out
}

// bridgeHole splices a hole loop into outer by connecting the hole's
// rightmost point to the nearest outer vertex with a zero-width double
// edge, producing a single simple polygon ear-clipping can consume
// directly.
func bridgeHole(outer, hole Polyline2) Polyline2 {
	if len(hole) == 0 {
		return outer
	}

	hi := 0
	for i, p := range hole {
		if p.X > hole[hi].X {
			hi = i
		}
	}
	bridgePoint := hole[hi]

	oi := 0
	best := bridgePoint.DistanceTo(outer[0])
	for i, p := range outer {
		d := bridgePoint.DistanceTo(p)
		if d < best {
			best = d
			oi = i
		}
	}

	var out Polyline2
	out = append(out, outer[:oi+1]...)
	rotatedHole := append(Polyline2{}, hole[hi:]...)
	rotatedHole = append(rotatedHole, hole[:hi]...)
	rotatedHole = append(rotatedHole, hole[hi])
	out = append(out, rotatedHole...)
	out = append(out, outer[oi])
	out = append(out, outer[oi+1:]...)
	return out
}

// earClip triangulates a simple (possibly non-convex) polygon by
// repeatedly clipping convex, empty-of-other-vertices "ears".
func earClip(poly Polyline2) [][3]Vec2 {
	n := len(poly)
	if n < 3 {
		return nil
	}
	idx := make([]int, n)
	for i := range idx {
		idx[i] = i
	}

	var tris [][3]Vec2
	guard := 0
	for len(idx) > 3 && guard < n*n+8 {
		guard++
		clipped := false
		for i := 0; i < len(idx); i++ {
			ip := idx[(i-1+len(idx))%len(idx)]
			ic := idx[i]
			in := idx[(i+1)%len(idx)]
			a, b, c := poly[ip], poly[ic], poly[in]
			if !isConvexVertex(a, b, c) {
				continue
			}
			if triangleContainsAnyOther(a, b, c, poly, idx, ip, ic, in) {
				continue
			}
			tris = append(tris, [3]Vec2{a, b, c})
			idx = append(idx[:i], idx[i+1:]...)
			clipped = true
			break
		}
		if !clipped {
			break
		}
	}
	if len(idx) == 3 {
		tris = append(tris, [3]Vec2{poly[idx[0]], poly[idx[1]], poly[idx[2]]})
	}
	return tris
}

func isConvexVertex(a, b, c Vec2) bool {
	cross := (b.X-a.X)*(c.Y-a.Y) - (b.Y-a.Y)*(c.X-a.X)
	return cross > Epsilon
}

func triangleContainsAnyOther(a, b, c Vec2, poly Polyline2, idx []int, skipA, skipB, skipC int) bool {
	for _, i := range idx {
		if i == skipA || i == skipB || i == skipC {
			continue
		}
		// A hole bridge repeats two vertices; a copy of the ear's own
		// corner does not block the ear.
		if p := poly[i]; p == a || p == b || p == c {
			continue
		}
		if pointInTriangle(poly[i], a, b, c) {
			return true
		}
	}
	return false
}

func pointInTriangle(p, a, b, c Vec2) bool {
	sign := func(p1, p2, p3 Vec2) float64 {
		return (p1.X-p3.X)*(p2.Y-p3.Y) - (p2.X-p3.X)*(p1.Y-p3.Y)
	}
	d1 := sign(p, a, b)
	d2 := sign(p, b, c)
	d3 := sign(p, c, a)
	hasNeg := d1 < 0 || d2 < 0 || d3 < 0
	hasPos := d1 > 0 || d2 > 0 || d3 > 0
	return !(hasNeg && hasPos)
}
