package l5flatten

import (
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/banshee-data/pathgraph/internal/pathgraph"
)

// StraightenPath is the opt-in PCA-projection alternative to Flatten
// (spec.md §9). Rather than RDP's recursive corner extraction, it fits
// the dominant axis of variation in the XY plane via the 2x2 covariance
// matrix's leading eigenvector and projects every point onto it,
// producing a single straight chord per run. It is intended for long,
// nominally-straight corridors where RDP's corner sensitivity is
// unnecessary; it is not used by the default pipeline.
func StraightenPath(floorLevel int, points []pathgraph.Position, indices []int, gapThreshold float64) []pathgraph.Polyline {
	runs := splitAtGaps(points, indices, gapThreshold)

	polylines := make([]pathgraph.Polyline, 0, len(runs))
	for _, r := range runs {
		if len(r.points) < 2 {
			continue
		}
		start, end := straightenRun(r.points)
		polylines = append(polylines, pathgraph.Polyline{
			FloorLevel:      floorLevel,
			Points:          []pathgraph.Position{start, end},
			OriginalIndices: []int{r.indices[0], r.indices[len(r.indices)-1]},
		})
	}
	return polylines
}

// straightenRun fits the principal XY axis of run via the symmetric
// eigendecomposition of its 2x2 covariance matrix, then returns the
// projections of the first and last point onto that axis (through the
// centroid), at the mean Z.
func straightenRun(points []pathgraph.Position) (start, end pathgraph.Position) {
	n := float64(len(points))
	var meanX, meanY, meanZ float64
	for _, p := range points {
		meanX += p.X
		meanY += p.Y
		meanZ += p.Z
	}
	meanX /= n
	meanY /= n
	meanZ /= n

	var c00, c01, c11 float64
	for _, p := range points {
		dx, dy := p.X-meanX, p.Y-meanY
		c00 += dx * dx
		c01 += dx * dy
		c11 += dy * dy
	}
	c00 /= n
	c01 /= n
	c11 /= n

	cov := mat.NewSymDense(2, []float64{c00, c01, c01, c11})
	var eig mat.EigenSym
	evX, evY := 1.0, 0.0
	if eig.Factorize(cov, true) {
		var vectors mat.Dense
		eig.VectorsTo(&vectors)
		values := eig.Values(nil)
		// EigenSym orders values ascending; the principal axis is the
		// eigenvector paired with the larger eigenvalue.
		principal := 1
		if values[0] > values[1] {
			principal = 0
		}
		evX, evY = vectors.At(0, principal), vectors.At(1, principal)
	}
	mag := math.Hypot(evX, evY)
	if mag < 1e-10 {
		evX, evY = 1.0, 0.0
	} else {
		evX, evY = evX/mag, evY/mag
	}

	first, last := points[0], points[len(points)-1]
	projFirst := (first.X-meanX)*evX + (first.Y-meanY)*evY
	projLast := (last.X-meanX)*evX + (last.Y-meanY)*evY

	start = pathgraph.Position{X: meanX + projFirst*evX, Y: meanY + projFirst*evY, Z: meanZ}
	end = pathgraph.Position{X: meanX + projLast*evX, Y: meanY + projLast*evY, Z: meanZ}
	return start, end
}
