package l4dedup

import (
	"math"

	"github.com/banshee-data/pathgraph/internal/pathgraph"
)

// mergeBackAndForth collapses walking-a-corridor-and-returning into the
// outbound trajectory only (spec.md §4.5, stage 1).
//
// For each candidate point, the already-emitted prefix is searched for a
// point within threshold that lies at least two emitted positions back
// (a "revisit"). When found, the input is scanned forward from the
// candidate for the first point that is farther than threshold from
// every point in the suspected overlap region; the walk jumps straight
// to that point, discarding everything in between. Otherwise the
// candidate is emitted and the walk advances by one.
func mergeBackAndForth(points []pathgraph.Position, indices []int, threshold float64) ([]pathgraph.Position, []int) {
	if len(points) == 0 {
		return points, indices
	}

	outPts := make([]pathgraph.Position, 0, len(points))
	outIdx := make([]int, 0, len(indices))

	i := 0
	for i < len(points) {
		revisitAt := -1
		for j := len(outPts) - 3; j >= 0; j-- {
			if distance(outPts[j], points[i]) <= threshold {
				revisitAt = j
				break
			}
		}

		if revisitAt < 0 {
			outPts = append(outPts, points[i])
			outIdx = append(outIdx, indices[i])
			i++
			continue
		}

		overlap := outPts[revisitAt:]
		next := len(points)
		for k := i; k < len(points); k++ {
			farFromAll := true
			for _, op := range overlap {
				if distance(op, points[k]) <= threshold {
					farFromAll = false
					break
				}
			}
			if farFromAll {
				next = k
				break
			}
		}
		i = next
	}

	return outPts, outIdx
}

func distance(a, b pathgraph.Position) float64 {
	dx, dy, dz := a.X-b.X, a.Y-b.Y, a.Z-b.Z
	return math.Sqrt(dx*dx + dy*dy + dz*dz)
}
