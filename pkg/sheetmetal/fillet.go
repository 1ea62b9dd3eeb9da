package sheetmetal

import (
	"math"

	"github.com/lignin-cad/core/pkg/geom"
)

// defaultFilletSegments is how many straight segments approximate each
// rounded corner when no explicit segment count is given.
const defaultFilletSegments = 8

// FilletLoop replaces every interior vertex of a closed 2D loop with a
// rounded corner of the given radius, trimming back along each adjacent
// edge by whatever the radius demands (clamped to half the shorter edge so
// a corner can never eat into its neighbor). This is the standard
// trim-and-arc construction
// (tangent point at distance r/tan(theta/2) from the vertex along each
// edge, arc center on the angle bisector at r/sin(theta/2)).
func FilletLoop(loop geom.Polyline2, radius float64, segments int) geom.Polyline2 {
	if radius <= 0 || len(loop) < 3 {
		return loop
	}
	if segments <= 0 {
		segments = defaultFilletSegments
	}

	n := len(loop)
	var out geom.Polyline2
	for i := 0; i < n; i++ {
		prev := loop[(i-1+n)%n]
		v := loop[i]
		next := loop[(i+1)%n]

		toPrev := prev.Sub(v)
		toNext := next.Sub(v)
		lenPrev, lenNext := toPrev.Length(), toNext.Length()
		if lenPrev < geom.Epsilon || lenNext < geom.Epsilon {
			out = append(out, v)
			continue
		}
		dirPrev := toPrev.Scale(1 / lenPrev)
		dirNext := toNext.Scale(1 / lenNext)

		cosTheta := math.Max(-1, math.Min(1, dirPrev.Dot(dirNext)))
		theta := math.Acos(cosTheta)
		if theta < 1e-6 || math.Pi-theta < 1e-6 {
			out = append(out, v)
			continue
		}

		trim := radius / math.Tan(theta/2)
		maxTrim := math.Min(lenPrev, lenNext) / 2
		if trim > maxTrim {
			trim = maxTrim
		}
		actualRadius := trim * math.Tan(theta / 2)

		t1 := v.Add(dirPrev.Scale(trim))
		t2 := v.Add(dirNext.Scale(trim))

		bisector := dirPrev.Add(dirNext)
		if bisector.Length() < geom.Epsilon {
			out = append(out, v)
			continue
		}
		bisector = bisector.Normalize()
		distToCenter := actualRadius / math.Sin(theta/2)
		center := v.Add(bisector.Scale(distToCenter))

		a1 := math.Atan2(t1.Y-center.Y, t1.X-center.X)
		a2 := math.Atan2(t2.Y-center.Y, t2.X-center.X)
		sweep := a2 - a1
		for sweep <= -math.Pi {
			sweep += 2 * math.Pi
		}
		for sweep > math.Pi {
			sweep -= 2 * math.Pi
		}

		out = append(out, t1)
		for s := 1; s < segments; s++ {
			frac := float64(s) / float64(segments)
			a := a1 + sweep*frac
			out = append(out, geom.Vec2{
				X: center.X + actualRadius*math.Cos(a),
				Y: center.Y + actualRadius*math.Sin(a),
			})
		}
		out = append(out, t2)
	}
	return out
}
