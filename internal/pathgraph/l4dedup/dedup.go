package l4dedup

import (
	"github.com/banshee-data/pathgraph/internal/config"
	"github.com/banshee-data/pathgraph/internal/pathgraph"
)

// Result is the deduplicated point sequence for one floor, alongside the
// original-trajectory indices each surviving point traces back to.
type Result struct {
	Points  []pathgraph.Position
	Indices []int
}

// Dedup runs stage 1 (back-and-forth merge) then stage 2 (spatial dedup)
// over one floor's points, per spec.md §4.5. points and indices must be
// the same length and index-aligned.
//
// Safety: if either stage would leave fewer than 2 points, that stage's
// output is discarded and its input is carried forward unchanged — a
// pathological threshold must never erase a floor.
func Dedup(points []pathgraph.Position, indices []int, cfg *config.TuningConfig) Result {
	stage1Pts, stage1Idx := mergeBackAndForth(points, indices, cfg.GetOverlapThreshold())
	if len(stage1Pts) < 2 && len(points) >= 2 {
		stage1Pts, stage1Idx = points, indices
	}

	stage2Pts, stage2Idx := spatialDedup(stage1Pts, stage1Idx, cfg.GetDistanceThreshold())
	if len(stage2Pts) < 2 && len(stage1Pts) >= 2 {
		stage2Pts, stage2Idx = stage1Pts, stage1Idx
	}

	return Result{Points: stage2Pts, Indices: stage2Idx}
}

// spatialDedup builds a k-d tree over points and, iterating in index
// order, lets the first unclaimed point claim every neighbor within
// threshold as a duplicate. Output preserves the claimants' original
// order. O(N log N): never pairwise.
func spatialDedup(points []pathgraph.Position, indices []int, threshold float64) ([]pathgraph.Position, []int) {
	if len(points) == 0 {
		return points, indices
	}

	flat := make([]Point2D, len(points))
	for i, p := range points {
		flat[i] = Point2D{X: p.X, Y: p.Y}
	}
	tree := NewKDTree(flat)

	claimed := make([]bool, len(points))
	outPts := make([]pathgraph.Position, 0, len(points))
	outIdx := make([]int, 0, len(indices))

	for i := range points {
		if claimed[i] {
			continue
		}
		claimed[i] = true
		outPts = append(outPts, points[i])
		outIdx = append(outIdx, indices[i])

		for _, j := range tree.RangeQuery(flat[i], threshold) {
			if j == i {
				continue
			}
			claimed[j] = true
		}
	}

	return outPts, outIdx
}
