package l5flatten

import (
	"math"

	"github.com/banshee-data/pathgraph/internal/config"
	"github.com/banshee-data/pathgraph/internal/pathgraph"
)

// Flatten splits points at gaps exceeding GAP_THRESHOLD, simplifies each
// run with RDP, and resamples the result at uniform spacing, per
// spec.md §4.6. indices must be index-aligned with points; only the
// first and last index of each retained polyline is preserved in
// OriginalIndices (interior samples are synthesized by resampling and
// no longer correspond to a single original point).
func Flatten(floorLevel int, points []pathgraph.Position, indices []int, cfg *config.TuningConfig) []pathgraph.Polyline {
	runs := splitAtGaps(points, indices, cfg.GetGapThreshold())

	polylines := make([]pathgraph.Polyline, 0, len(runs))
	for _, run := range runs {
		if len(run.points) < 2 {
			if len(run.points) == 1 {
				polylines = append(polylines, pathgraph.Polyline{
					FloorLevel:      floorLevel,
					Points:          run.points,
					OriginalIndices: run.indices,
				})
			}
			continue
		}

		vertices, vertexIdx := simplifyRDP(run.points, run.indices, cfg.GetRDPEpsilon())
		resampled := resamplePolyline(vertices, cfg.GetResampleSpacing())

		polylines = append(polylines, pathgraph.Polyline{
			FloorLevel:      floorLevel,
			Points:          resampled,
			OriginalIndices: []int{vertexIdx[0], vertexIdx[len(vertexIdx)-1]},
		})
	}
	return polylines
}

type run struct {
	points  []pathgraph.Position
	indices []int
}

// splitAtGaps breaks points into independent runs wherever the distance
// between consecutive points exceeds threshold. The flattener never
// bridges these gaps.
func splitAtGaps(points []pathgraph.Position, indices []int, threshold float64) []run {
	if len(points) == 0 {
		return nil
	}

	var runs []run
	start := 0
	for i := 1; i < len(points); i++ {
		if distance3D(points[i-1], points[i]) > threshold {
			runs = append(runs, run{points: points[start:i], indices: indices[start:i]})
			start = i
		}
	}
	runs = append(runs, run{points: points[start:], indices: indices[start:]})
	return runs
}

// simplifyRDP applies Ramer-Douglas-Peucker over a single run, keeping
// endpoints and recursively retaining the interior point of maximum
// perpendicular distance whenever that distance exceeds epsilon.
func simplifyRDP(points []pathgraph.Position, indices []int, epsilon float64) ([]pathgraph.Position, []int) {
	keep := make([]bool, len(points))
	keep[0] = true
	keep[len(points)-1] = true
	rdpRecurse(points, 0, len(points)-1, epsilon, keep)

	var outPts []pathgraph.Position
	var outIdx []int
	for i, k := range keep {
		if k {
			outPts = append(outPts, points[i])
			outIdx = append(outIdx, indices[i])
		}
	}
	return outPts, outIdx
}

func rdpRecurse(points []pathgraph.Position, lo, hi int, epsilon float64, keep []bool) {
	if hi-lo < 2 {
		return
	}

	a, b := points[lo], points[hi]
	maxDist := -1.0
	maxIdx := -1
	for i := lo + 1; i < hi; i++ {
		d := perpendicularDistance(points[i], a, b)
		if d > maxDist {
			maxDist = d
			maxIdx = i
		}
	}

	if maxDist > epsilon {
		keep[maxIdx] = true
		rdpRecurse(points, lo, maxIdx, epsilon, keep)
		rdpRecurse(points, maxIdx, hi, epsilon, keep)
	}
}

// perpendicularDistance is the 3D point-to-chord distance: for point P
// and chord A-B, ||(P-A) - ((P-A)*d) d||, d the chord's unit direction.
// Chords shorter than 1e-10 collapse to their start point only.
func perpendicularDistance(p, a, b pathgraph.Position) float64 {
	ax, ay, az := b.X-a.X, b.Y-a.Y, b.Z-a.Z
	chordLen := math.Sqrt(ax*ax + ay*ay + az*az)
	if chordLen < 1e-10 {
		return distance3D(p, a)
	}
	dx, dy, dz := ax/chordLen, ay/chordLen, az/chordLen

	px, py, pz := p.X-a.X, p.Y-a.Y, p.Z-a.Z
	proj := px*dx + py*dy + pz*dz

	rx, ry, rz := px-proj*dx, py-proj*dy, pz-proj*dz
	return math.Sqrt(rx*rx + ry*ry + rz*rz)
}

// resamplePolyline emits points at uniform spacing along each segment
// of the chord polyline formed by vertices, endpoints inclusive with no
// duplicate at segment joins.
func resamplePolyline(vertices []pathgraph.Position, spacing float64) []pathgraph.Position {
	if len(vertices) == 0 {
		return nil
	}
	if len(vertices) == 1 {
		return vertices
	}

	out := []pathgraph.Position{vertices[0]}
	for i := 1; i < len(vertices); i++ {
		a, b := vertices[i-1], vertices[i]
		segLen := distance3D(a, b)
		if segLen < 1e-10 {
			continue
		}
		dx, dy, dz := (b.X-a.X)/segLen, (b.Y-a.Y)/segLen, (b.Z-a.Z)/segLen

		for d := spacing; d < segLen; d += spacing {
			out = append(out, pathgraph.Position{
				X: a.X + dx*d,
				Y: a.Y + dy*d,
				Z: a.Z + dz*d,
			})
		}
		out = append(out, b)
	}
	return out
}

func distance3D(a, b pathgraph.Position) float64 {
	dx, dy, dz := a.X-b.X, a.Y-b.Y, a.Z-b.Z
	return math.Sqrt(dx*dx + dy*dy + dz*dz)
}
