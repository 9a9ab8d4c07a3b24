package l7merge

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/banshee-data/pathgraph/internal/pathgraph"
)

func TestMergeUnionsAllFloorsAndStitchesPassage(t *testing.T) {
	floorResults := map[int]FloorResult{
		1: {Nodes: []pathgraph.Node{{ID: "a1", X: 0, Y: 0, FloorLevel: 1}, {ID: "a2", X: 5, Y: 0, FloorLevel: 1}}},
		2: {Nodes: []pathgraph.Node{{ID: "b1", X: 0, Y: 0, FloorLevel: 2}, {ID: "b2", X: 5, Y: 0, FloorLevel: 2}}},
	}
	passages := []pathgraph.VerticalPassage{
		{
			FromFloor: 1, ToFloor: 2,
			Class: pathgraph.PassageStaircase, ZDisplacement: 3.2,
			EntryPosition: pathgraph.Position{X: 0.1, Y: 0},
			ExitPosition:  pathgraph.Position{X: 0.1, Y: 0},
		},
	}

	var orphaned []pathgraph.VerticalPassage
	nodes, edges := Merge(floorResults, passages, func(p pathgraph.VerticalPassage) {
		orphaned = append(orphaned, p)
	})

	require.Len(t, nodes, 4)
	require.Empty(t, orphaned)

	var vertical []pathgraph.Edge
	for _, e := range edges {
		if e.Kind == pathgraph.EdgeVerticalStaircase {
			vertical = append(vertical, e)
		}
	}
	require.Len(t, vertical, 1)
	require.Equal(t, "a1", vertical[0].From)
	require.Equal(t, "b1", vertical[0].To)
	require.InDelta(t, 3.2, vertical[0].Distance, 1e-9)
	require.True(t, vertical[0].Bidirectional)
}

func TestMergeSkipsOrphanPassageWithNoFloorNodes(t *testing.T) {
	floorResults := map[int]FloorResult{
		1: {Nodes: []pathgraph.Node{{ID: "a1", X: 0, Y: 0, FloorLevel: 1}}},
	}
	passages := []pathgraph.VerticalPassage{
		{FromFloor: 1, ToFloor: 2, Class: pathgraph.PassageElevator},
	}

	var orphaned []pathgraph.VerticalPassage
	_, edges := Merge(floorResults, passages, func(p pathgraph.VerticalPassage) {
		orphaned = append(orphaned, p)
	})

	require.Len(t, orphaned, 1)
	for _, e := range edges {
		require.NotEqual(t, pathgraph.EdgeVerticalElevator, e.Kind)
	}
}

func TestMergeClassifiesElevatorEdgeKind(t *testing.T) {
	floorResults := map[int]FloorResult{
		1: {Nodes: []pathgraph.Node{{ID: "a1", X: 0, Y: 0, FloorLevel: 1}}},
		2: {Nodes: []pathgraph.Node{{ID: "b1", X: 0, Y: 0, FloorLevel: 2}}},
	}
	passages := []pathgraph.VerticalPassage{
		{FromFloor: 1, ToFloor: 2, Class: pathgraph.PassageElevator, ZDisplacement: 3.0},
	}

	_, edges := Merge(floorResults, passages, nil)
	require.Len(t, edges, 1)
	require.Equal(t, pathgraph.EdgeVerticalElevator, edges[0].Kind)
}

func TestMergeOrdersFloorsAscendingRegardlessOfMapIteration(t *testing.T) {
	floorResults := map[int]FloorResult{
		3: {Nodes: []pathgraph.Node{{ID: "c1", FloorLevel: 3}}},
		1: {Nodes: []pathgraph.Node{{ID: "a1", FloorLevel: 1}}},
		2: {Nodes: []pathgraph.Node{{ID: "b1", FloorLevel: 2}}},
	}
	nodes, _ := Merge(floorResults, nil, nil)
	require.Equal(t, []string{"a1", "b1", "c1"}, []string{nodes[0].ID, nodes[1].ID, nodes[2].ID})
}
