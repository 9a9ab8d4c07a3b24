package l2vertical

import (
	"math"

	"github.com/banshee-data/pathgraph/internal/config"
	"github.com/banshee-data/pathgraph/internal/pathgraph"
	"github.com/banshee-data/pathgraph/internal/pgobserve"
)

// Result is the VerticalDetector's output: surviving passages in
// trajectory order, plus a per-point mask marking "inside a vertical
// passage".
type Result struct {
	Passages []pathgraph.VerticalPassage
	Mask     []bool // len(positions); true at every point belonging to a surviving passage
}

// Detect scans positions with a sliding window over Z and returns the
// vertical passages it finds, classified and merged.
func Detect(positions []pathgraph.Position, cfg *config.TuningConfig) Result {
	n := len(positions)
	mask := make([]bool, n)
	if n == 0 {
		return Result{Mask: mask}
	}

	window := cfg.GetWindowSize()
	minTotalZChange := cfg.GetMinTotalZChange()
	zChangeThreshold := cfg.GetZChangeThreshold()

	windowMask := scanWindows(positions, window, minTotalZChange, zChangeThreshold)

	runs := contiguousRuns(windowMask)

	minStairPoints := cfg.GetMinStairPoints()
	candidates := make([]pathgraph.VerticalPassage, 0, len(runs))
	for _, r := range runs {
		if r.end-r.start < minStairPoints {
			continue
		}
		passage := buildPassage(positions, r.start, r.end, cfg)
		if passage.ZDisplacement < minTotalZChange {
			continue
		}
		candidates = append(candidates, passage)
	}

	merged := mergeAdjacent(candidates, cfg.GetMergeGapMax(), positions, cfg)

	for _, p := range merged {
		for i := p.Start; i < p.End; i++ {
			mask[i] = true
		}
	}

	pgobserve.Logger.Debug("l2vertical: detected passages", "count", len(merged))
	return Result{Passages: merged, Mask: mask}
}

// scanWindows marks every point touched by a window whose net Z change
// and per-step consistency satisfy the "sustained vertical motion"
// predicate in spec.md §4.2.
func scanWindows(positions []pathgraph.Position, window int, minTotalZChange, zChangeThreshold float64) []bool {
	n := len(positions)
	mask := make([]bool, n)
	if n <= window {
		return mask
	}

	dz := make([]float64, n-1)
	for i := 0; i < n-1; i++ {
		dz[i] = positions[i+1].Z - positions[i].Z
	}

	netThreshold := minTotalZChange * float64(window) / 20.0
	stepThreshold := zChangeThreshold / 2.0

	for i := 0; i+window < n; i++ {
		net := positions[i+window].Z - positions[i].Z
		if math.Abs(net) <= netThreshold {
			continue
		}

		sign := 1.0
		if net < 0 {
			sign = -1.0
		}

		consistent := 0
		for j := i; j < i+window; j++ {
			d := dz[j]
			if sign > 0 && d > stepThreshold {
				consistent++
			} else if sign < 0 && d < -stepThreshold {
				consistent++
			}
		}
		if float64(consistent) <= 0.5*float64(window) {
			continue
		}

		for k := i; k <= i+window; k++ {
			mask[k] = true
		}
	}

	return mask
}

type indexRange struct{ start, end int } // [start, end)

// contiguousRuns groups a boolean mask into maximal true runs, in
// ascending index order.
func contiguousRuns(mask []bool) []indexRange {
	var runs []indexRange
	inRun := false
	start := 0
	for i, v := range mask {
		if v && !inRun {
			inRun = true
			start = i
		} else if !v && inRun {
			inRun = false
			runs = append(runs, indexRange{start, i})
		}
	}
	if inRun {
		runs = append(runs, indexRange{start, len(mask)})
	}
	return runs
}

// buildPassage computes the classification and geometry fields for the
// candidate run [start, end).
func buildPassage(positions []pathgraph.Position, start, end int, cfg *config.TuningConfig) pathgraph.VerticalPassage {
	zStart := positions[start].Z
	zEnd := positions[end-1].Z
	zDisplacement := math.Abs(zEnd - zStart)

	xyLength := 0.0
	for i := start; i < end-1; i++ {
		dx := positions[i+1].X - positions[i].X
		dy := positions[i+1].Y - positions[i].Y
		xyLength += math.Hypot(dx, dy)
	}

	ratio := math.Inf(1)
	if zDisplacement > 0 {
		ratio = xyLength / zDisplacement
	}

	class := pathgraph.PassageStaircase
	if ratio < cfg.GetElevatorXYZRatio() {
		class = pathgraph.PassageElevator
	}

	direction := pathgraph.DirectionUp
	if zEnd < zStart {
		direction = pathgraph.DirectionDown
	}

	return pathgraph.VerticalPassage{
		Start:         start,
		End:           end,
		Class:         class,
		Direction:     direction,
		ZStart:        zStart,
		ZEnd:          zEnd,
		ZDisplacement: zDisplacement,
		XYLength:      xyLength,
		XYZRatio:      ratio,
		EntryPosition: positions[start],
		ExitPosition:  positions[end-1],
	}
}

// mergeAdjacent merges adjacent passages sharing direction when the
// index gap between them is strictly less than maxGap. The original
// spec keeps this boundary inclusive of gaps 0..maxGap-1 (`<`, not
// `<=`), so a gap of exactly maxGap never merges.
func mergeAdjacent(passages []pathgraph.VerticalPassage, maxGap int, positions []pathgraph.Position, cfg *config.TuningConfig) []pathgraph.VerticalPassage {
	if len(passages) == 0 {
		return passages
	}

	merged := make([]pathgraph.VerticalPassage, 0, len(passages))
	current := passages[0]
	for _, next := range passages[1:] {
		gap := next.Start - current.End
		if next.Direction == current.Direction && gap < maxGap {
			current = buildPassage(positions, current.Start, next.End, cfg)
			continue
		}
		merged = append(merged, current)
		current = next
	}
	merged = append(merged, current)
	return merged
}
