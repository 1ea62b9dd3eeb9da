package sheetmetal

import (
	"fmt"
	"math"
	"sort"

	"github.com/katalvlaran/lvlath/bfs"
	"github.com/katalvlaran/lvlath/core"
	"github.com/lignin-cad/core/pkg/brep"
	"github.com/lignin-cad/core/pkg/geom"
)

// FlatFace is one panel component placed into the flat-pattern plane:
// Transform carries its world-space geometry into that plane (still
// expressed as world-space Vec3, lying in the root's plane once correctly
// unfolded), Outline is that geometry projected into the root plane's own
// 2D coordinates.
type FlatFace struct {
	Name      string
	Transform geom.Mat4
	Outline   geom.Polyline2
}

// FlatPattern is the result of unfolding a Sheet: every panel component
// placed flat, plus the root plane the outlines are expressed in (needed
// to re-project world coordinates later, e.g. for export).
type FlatPattern struct {
	Root  string
	Plane geom.Plane
	Faces []FlatFace
	Bends []UnfoldedBend
}

// UnfoldedBend records where a bend's centerline lands in the flat
// pattern plane, and which direction it folds (used by the DXF/SVG
// exporters to choose BEND_UP vs BEND_DOWN).
type UnfoldedBend struct {
	FaceName   string
	Centerline [2]geom.Vec2
	AngleSign  float64
}

// broadFaceAreaFactor: any non-bend face whose area exceeds thickness^2
// times this factor is treated as a panel in its own right (a flange
// leg's broad top/bottom surface) rather than a thin perimeter or
// end-cap wall. A full unfolder would inspect face shape directly; an
// unusually long thin wall can in principle cross this area threshold.
const broadFaceAreaFactor = 16

type connectorLink struct {
	connector string
	axis      geom.Vec3
	center    geom.Vec3
	isBend    bool
	hingeA    geom.Vec3
	hingeB    geom.Vec3
}

// Unfold traverses the sheet's panel faces as a graph whose edges are the
// thin faces connecting them, bend cylinders and plain thickness walls
// alike: a spanning tree over the face graph, root placed at identity,
// each subsequent face rotated into its parent's plane. Nodes are broad
// panel faces rather than every raw face, because Classify only ever
// resolves a single global A/B pair, which would otherwise misrepresent a
// part with more than one bend. Traversal uses katalvlaran/lvlath/bfs.BFS,
// the same graph library pkg/brep/adjacency.go already uses for its own
// face graph. No bend angle is stored anywhere: each
// bend's straightening rotation is derived live from the signed angle
// between the two faces' CURRENT transformed normals (via
// Mat4.ApplyDirection), composed transforms[child] = R.Mul(transforms[parent]),
// the same convention pkg/sweep/revolve.go's
// Translate4(...).Mul(RotateAxis4(...)).Mul(Translate4(...)) already uses.
func Unfold(sheet *Sheet) (*FlatPattern, error) {
	s := sheet.Solid
	names := s.GetFaceNames()

	type panelInfo struct {
		normal, origin geom.Vec3
	}
	panels := make(map[string]panelInfo)
	bendMeta := make(map[string]brep.Cylindrical)

	for _, n := range names {
		if n == sheet.FaceA || n == sheet.FaceB {
			continue
		}
		md, ok := s.GetFaceMetadata(n)
		if !ok {
			continue
		}
		if cyl, ok := md.(brep.Cylindrical); ok && cyl.BendRadius > 0 {
			bendMeta[n] = cyl
			continue
		}
		st := computeFaceStats(s, n)
		if st.area > sheet.Thickness*sheet.Thickness*broadFaceAreaFactor {
			panels[n] = panelInfo{normal: st.normal, origin: st.centroid}
		}
	}
	for _, n := range []string{sheet.FaceA, sheet.FaceB} {
		if n == "" {
			continue
		}
		st := computeFaceStats(s, n)
		panels[n] = panelInfo{normal: st.normal, origin: st.centroid}
	}
	if len(panels) == 0 {
		return nil, NotSheetMetal
	}

	boundaries, err := s.GetBoundaryEdgePolylines()
	if err != nil {
		return nil, err
	}

	connectorNeighbors := make(map[string][]string)
	connectorHinge := make(map[string][2]geom.Vec3)
	for _, b := range boundaries {
		_, aIsPanel := panels[b.FaceA]
		_, bIsPanel := panels[b.FaceB]
		switch {
		case !aIsPanel && bIsPanel:
			connectorNeighbors[b.FaceA] = append(connectorNeighbors[b.FaceA], b.FaceB)
			if _, ok := connectorHinge[b.FaceA]; !ok && len(b.Positions) >= 2 {
				connectorHinge[b.FaceA] = [2]geom.Vec3{b.Positions[0], b.Positions[len(b.Positions)-1]}
			}
		case aIsPanel && !bIsPanel:
			connectorNeighbors[b.FaceB] = append(connectorNeighbors[b.FaceB], b.FaceA)
			if _, ok := connectorHinge[b.FaceB]; !ok && len(b.Positions) >= 2 {
				connectorHinge[b.FaceB] = [2]geom.Vec3{b.Positions[0], b.Positions[len(b.Positions)-1]}
			}
		}
	}

	g := core.NewGraph(core.WithMultiEdges())
	edgeInfo := make(map[[2]string]connectorLink)
	for n := range panels {
		_ = g.AddVertex(n)
	}
	for connector, nbrs := range connectorNeighbors {
		if len(nbrs) != 2 {
			continue
		}
		pair := sortedPair(nbrs[0], nbrs[1])
		if _, err := g.AddEdge(nbrs[0], nbrs[1], 0); err != nil {
			return nil, err
		}
		hinge := connectorHinge[connector]
		link := connectorLink{connector: connector, hingeA: hinge[0], hingeB: hinge[1]}
		if cyl, ok := bendMeta[connector]; ok {
			link.isBend = true
			link.axis = cyl.Axis
			link.center = cyl.Center
		}
		edgeInfo[pair] = link
	}

	root := sheet.FaceA
	if _, ok := panels[root]; !ok {
		for n := range panels {
			root = n
			break
		}
	}

	result, err := bfs.BFS(g, root)
	if err != nil {
		return nil, fmt.Errorf("sheetmetal: unfold traversal: %w", err)
	}

	rootInfo := panels[root]
	rootPlane, err := geom.PlaneFromNormal(rootInfo.origin, rootInfo.normal)
	if err != nil {
		return nil, err
	}

	transforms := map[string]geom.Mat4{root: geom.Identity4()}
	var bends []UnfoldedBend
	for _, v := range result.Order {
		if v == root {
			continue
		}
		parent, ok := result.Parent[v]
		if !ok {
			continue
		}
		parentT := transforms[parent]
		pair := sortedPair(parent, v)
		link := edgeInfo[pair]

		childT := parentT
		if link.isBend {
			parentNormal := parentT.ApplyDirection(panels[parent].normal)
			childNormalProvisional := parentT.ApplyDirection(panels[v].normal)
			axisDir := parentT.ApplyDirection(link.axis).Normalize()
			axisPoint := parentT.Apply(link.center)

			angle := signedAngleAboutAxis(childNormalProvisional, parentNormal, axisDir)
			rot := geom.Translate4(axisPoint.X, axisPoint.Y, axisPoint.Z).
				Mul(geom.RotateAxis4(axisDir, angle)).
				Mul(geom.Translate4(-axisPoint.X, -axisPoint.Y, -axisPoint.Z))
			childT = rot.Mul(parentT)

			hingeA2 := rootPlane.Project(parentT.Apply(link.hingeA))
			hingeB2 := rootPlane.Project(parentT.Apply(link.hingeB))
			bends = append(bends, UnfoldedBend{
				FaceName:   link.connector,
				AngleSign:  angle,
				Centerline: [2]geom.Vec2{hingeA2, hingeB2},
			})
		}
		transforms[v] = childT
	}

	var flatFaces []FlatFace
	for n := range panels {
		t, ok := transforms[n]
		if !ok {
			continue
		}
		loop, ok := faceOutline(n, boundaries)
		if !ok {
			continue
		}
		outline := make(geom.Polyline2, len(loop))
		for i, p := range loop {
			outline[i] = rootPlane.Project(t.Apply(p))
		}
		flatFaces = append(flatFaces, FlatFace{Name: n, Transform: t, Outline: outline})
	}
	sort.Slice(flatFaces, func(i, j int) bool { return flatFaces[i].Name < flatFaces[j].Name })

	return &FlatPattern{Root: root, Plane: rootPlane, Faces: flatFaces, Bends: bends}, nil
}

// faceOutline assembles face name's outer boundary by chaining the
// BoundaryEdge polylines it appears in end to end. A face generally
// borders several different neighbors, one chain per neighbor; this
// walks from an arbitrary chain and keeps appending whichever remaining
// chain's endpoint matches the current chain's free end, the same
// endpoint-matching idea pkg/brep/boundary.go's stitchSegments uses for
// raw triangle edges, just applied to already-ordered chains instead of
// single segments.
func faceOutline(name string, boundaries []brep.BoundaryEdge) (geom.Polyline3, bool) {
	var chains []geom.Polyline3
	for _, b := range boundaries {
		switch name {
		case b.FaceA:
			chains = append(chains, append(geom.Polyline3{}, b.Positions...))
		case b.FaceB:
			rev := make(geom.Polyline3, len(b.Positions))
			for i, p := range b.Positions {
				rev[len(rev)-1-i] = p
			}
			chains = append(chains, rev)
		}
	}
	if len(chains) == 0 {
		return nil, false
	}

	used := make([]bool, len(chains))
	used[0] = true
	loop := append(geom.Polyline3{}, chains[0]...)
	for pass := 0; pass < len(chains)+1; pass++ {
		extended := false
		tail := loop[len(loop)-1]
		for i, c := range chains {
			if used[i] || len(c) == 0 {
				continue
			}
			if c[0].DistanceTo(tail) < 1e-6 {
				loop = append(loop, c[1:]...)
				used[i] = true
				extended = true
				break
			}
			if c[len(c)-1].DistanceTo(tail) < 1e-6 {
				for j := len(c) - 2; j >= 0; j-- {
					loop = append(loop, c[j])
				}
				used[i] = true
				extended = true
				break
			}
		}
		if !extended {
			break
		}
	}
	if len(loop) > 1 && loop[0].DistanceTo(loop[len(loop)-1]) < 1e-6 {
		loop = loop[:len(loop)-1]
	}
	return loop, true
}

func sortedPair(a, b string) [2]string {
	if a > b {
		a, b = b, a
	}
	return [2]string{a, b}
}

// signedAngleAboutAxis returns the rotation (about axis, right-hand rule)
// that takes from to to, both projected perpendicular to axis.
func signedAngleAboutAxis(from, to, axis geom.Vec3) float64 {
	f := from.Sub(axis.Scale(from.Dot(axis)))
	t := to.Sub(axis.Scale(to.Dot(axis)))
	if f.Length() < geom.Epsilon || t.Length() < geom.Epsilon {
		return 0
	}
	f = f.Normalize()
	t = t.Normalize()
	cosA := math.Max(-1, math.Min(1, f.Dot(t)))
	sinA := axis.Dot(f.Cross(t))
	return math.Atan2(sinA, cosA)
}
