package pipeline

import (
	"sort"

	"github.com/banshee-data/pathgraph/internal/pathgraph"
)

// RelabelBasements is an optional, purely post-hoc remapping of floor
// levels from the core's 1..K convention onto a ground-floor-relative
// one: every floor whose mean Z is at or above groundZ keeps its
// ascending level starting at 1; every floor below it is renumbered
// descending from -1 (a basement). It never mutates result in place
// and the core pipeline never calls it itself — see spec.md §9's open
// question on floor-level renumbering.
func RelabelBasements(result *Result, floorZMeans map[int]float64, groundZ float64) *Result {
	if result == nil {
		return nil
	}

	aboveLevels := make([]int, 0, len(floorZMeans))
	belowLevels := make([]int, 0, len(floorZMeans))
	for level, z := range floorZMeans {
		if z >= groundZ {
			aboveLevels = append(aboveLevels, level)
		} else {
			belowLevels = append(belowLevels, level)
		}
	}
	sortByZAscending(aboveLevels, floorZMeans)
	sortByZAscending(belowLevels, floorZMeans)

	relabel := make(map[int]int, len(floorZMeans))
	for i, level := range aboveLevels {
		relabel[level] = i + 1
	}
	for i, level := range belowLevels {
		relabel[level] = -(len(belowLevels) - i)
	}

	out := *result
	out.FloorPaths = make([]FloorPath, len(result.FloorPaths))
	for i, fp := range result.FloorPaths {
		fp.FloorLevel = relabel[fp.FloorLevel]
		out.FloorPaths[i] = fp
	}

	out.VerticalPassages = make([]PassageResult, len(result.VerticalPassages))
	for i, vp := range result.VerticalPassages {
		vp.FromFloorLevel = relabel[vp.FromFloorLevel]
		vp.ToFloorLevel = relabel[vp.ToFloorLevel]
		out.VerticalPassages[i] = vp
	}

	out.PathNodes = make([]pathgraph.Node, len(result.PathNodes))
	for i, n := range result.PathNodes {
		n.FloorLevel = relabel[n.FloorLevel]
		out.PathNodes[i] = n
	}

	return &out
}

func sortByZAscending(levels []int, zMeans map[int]float64) {
	sort.Slice(levels, func(i, j int) bool { return zMeans[levels[i]] < zMeans[levels[j]] })
}
