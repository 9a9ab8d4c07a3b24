package l7merge

import (
	"sort"

	"github.com/google/uuid"

	"github.com/banshee-data/pathgraph/internal/pathgraph"
	"github.com/banshee-data/pathgraph/internal/pathgraph/l4dedup"
)

// Merge unions every floor's nodes and edges, then stitches each
// passage into the graph as a cross-floor edge between its nearest
// entry/exit nodes, per spec.md §4.8. Passages whose from/to floor has
// no nodes are skipped and counted in stats via the orphaned callback.
func Merge(floorResults map[int]FloorResult, passages []pathgraph.VerticalPassage, onOrphan func(pathgraph.VerticalPassage)) ([]pathgraph.Node, []pathgraph.Edge) {
	var nodes []pathgraph.Node
	var edges []pathgraph.Edge

	levels := sortedLevels(floorResults)
	byLevel := make(map[int][]pathgraph.Node, len(floorResults))
	for _, level := range levels {
		fr := floorResults[level]
		nodes = append(nodes, fr.Nodes...)
		edges = append(edges, fr.Edges...)
		byLevel[level] = fr.Nodes
	}

	for _, p := range passages {
		fromNodes := byLevel[p.FromFloor]
		toNodes := byLevel[p.ToFloor]
		if len(fromNodes) == 0 || len(toNodes) == 0 {
			if onOrphan != nil {
				onOrphan(p)
			}
			continue
		}

		entryIdx, _, ok1 := nearest(fromNodes, p.EntryPosition)
		exitIdx, _, ok2 := nearest(toNodes, p.ExitPosition)
		if !ok1 || !ok2 {
			if onOrphan != nil {
				onOrphan(p)
			}
			continue
		}

		kind := pathgraph.EdgeVerticalStaircase
		if p.Class == pathgraph.PassageElevator {
			kind = pathgraph.EdgeVerticalElevator
		}

		edges = append(edges, pathgraph.Edge{
			ID:            uuid.New().String(),
			From:          fromNodes[entryIdx].ID,
			To:            toNodes[exitIdx].ID,
			Distance:      p.ZDisplacement,
			Kind:          kind,
			Bidirectional: true,
		})
	}

	return nodes, edges
}

// FloorResult is one floor's node and edge contribution to the merged
// graph, as produced by l6graph.Build for each of its polylines.
type FloorResult struct {
	Nodes []pathgraph.Node
	Edges []pathgraph.Edge
}

// nearest finds the node in nodes closest (in the XY plane) to target,
// via l4dedup's k-d tree so the search stays O(log N) and deterministic.
func nearest(nodes []pathgraph.Node, target pathgraph.Position) (idx int, dist float64, ok bool) {
	points := make([]l4dedup.Point2D, len(nodes))
	for i, n := range nodes {
		points[i] = l4dedup.Point2D{X: n.X, Y: n.Y}
	}
	tree := l4dedup.NewKDTree(points)
	return tree.Nearest(l4dedup.Point2D{X: target.X, Y: target.Y})
}

func sortedLevels(floorResults map[int]FloorResult) []int {
	levels := make([]int, 0, len(floorResults))
	for level := range floorResults {
		levels = append(levels, level)
	}
	sort.Ints(levels)
	return levels
}
