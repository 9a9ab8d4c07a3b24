package l3floors

import (
	"math"
	"sort"

	"github.com/banshee-data/pathgraph/internal/pathgraph"
)

// AssignFloors attaches FromFloor/ToFloor to each passage by nearest
// mean-Z matching against floors (spec.md §4.4). If floors is empty,
// both fields are set to 0, the sentinel for "unknown".
func AssignFloors(passages []pathgraph.VerticalPassage, floors map[int]*pathgraph.Floor) []pathgraph.VerticalPassage {
	if len(floors) == 0 {
		out := make([]pathgraph.VerticalPassage, len(passages))
		for i, p := range passages {
			p.FromFloor = 0
			p.ToFloor = 0
			out[i] = p
		}
		return out
	}

	levels := make([]int, 0, len(floors))
	for level := range floors {
		levels = append(levels, level)
	}
	sort.Ints(levels)

	out := make([]pathgraph.VerticalPassage, len(passages))
	for i, p := range passages {
		p.FromFloor = nearestFloor(levels, floors, p.ZStart)
		p.ToFloor = nearestFloor(levels, floors, p.ZEnd)
		out[i] = p
	}
	return out
}

func nearestFloor(levels []int, floors map[int]*pathgraph.Floor, z float64) int {
	best := levels[0]
	bestDist := math.Abs(floors[best].ZMean - z)
	for _, level := range levels[1:] {
		d := math.Abs(floors[level].ZMean - z)
		if d < bestDist {
			bestDist = d
			best = level
		}
	}
	return best
}
