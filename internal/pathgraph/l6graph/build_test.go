package l6graph

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/banshee-data/pathgraph/internal/config"
	"github.com/banshee-data/pathgraph/internal/pathgraph"
)

func lShapedCorridor() []pathgraph.Position {
	var pts []pathgraph.Position
	for i := 0; i <= 10; i++ {
		pts = append(pts, pathgraph.Position{X: float64(i), Y: 0})
	}
	for i := 1; i <= 10; i++ {
		pts = append(pts, pathgraph.Position{X: 10, Y: float64(i)})
	}
	return pts
}

func TestBuildEmitsEndpointsAndJunctionAtCorner(t *testing.T) {
	cfg := config.Defaults()
	polyline := pathgraph.Polyline{FloorLevel: 1, Points: lShapedCorridor()}

	result := Build(polyline, cfg)
	require.Equal(t, pathgraph.NodeEndpoint, result.Nodes[0].Type)
	require.Equal(t, pathgraph.NodeEndpoint, result.Nodes[len(result.Nodes)-1].Type)

	var sawJunction bool
	for _, n := range result.Nodes {
		if n.Type == pathgraph.NodeJunction {
			sawJunction = true
		}
	}
	require.True(t, sawJunction, "expected a JUNCTION node at the L-bend")
}

func TestBuildEdgesPreserveOrderAndPositiveDistance(t *testing.T) {
	cfg := config.Defaults()
	polyline := pathgraph.Polyline{FloorLevel: 1, Points: lShapedCorridor()}

	result := Build(polyline, cfg)
	nodeOrder := make(map[string]int, len(result.Nodes))
	for i, n := range result.Nodes {
		nodeOrder[n.ID] = i
	}

	for _, e := range result.Edges {
		require.Greater(t, e.Distance, 0.0)
		require.Less(t, nodeOrder[e.From], nodeOrder[e.To])
		require.Equal(t, pathgraph.EdgeHorizontal, e.Kind)
		require.True(t, e.Bidirectional)
	}
}

func TestBuildEdgeDistanceIsAtLeastStraightLineDistance(t *testing.T) {
	cfg := config.Defaults()
	polyline := pathgraph.Polyline{FloorLevel: 1, Points: lShapedCorridor()}

	result := Build(polyline, cfg)
	byID := make(map[string]pathgraph.Node, len(result.Nodes))
	for _, n := range result.Nodes {
		byID[n.ID] = n
	}
	for _, e := range result.Edges {
		from, to := byID[e.From], byID[e.To]
		straightLine := distance3D(
			pathgraph.Position{X: from.X, Y: from.Y, Z: from.Z},
			pathgraph.Position{X: to.X, Y: to.Y, Z: to.Z},
		)
		require.GreaterOrEqual(t, e.Distance, straightLine-1e-9)
	}
}

func TestBuildDropsEdgesBeyondConnectionRadius(t *testing.T) {
	cfg := config.Defaults()
	radius := 3.0
	cfg.EdgeConnectionRadius = &radius

	points := []pathgraph.Position{
		{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 2, Y: 0}, {X: 3, Y: 0},
		{X: 10, Y: 0}, {X: 11, Y: 0}, {X: 12, Y: 0},
	}
	polyline := pathgraph.Polyline{FloorLevel: 1, Points: points}

	result := Build(polyline, cfg)
	for _, e := range result.Edges {
		require.LessOrEqual(t, e.Distance, radius)
	}
}

func TestBuildSinglePointPolyline(t *testing.T) {
	cfg := config.Defaults()
	polyline := pathgraph.Polyline{FloorLevel: 1, Points: []pathgraph.Position{{X: 0, Y: 0}}}

	result := Build(polyline, cfg)
	require.Len(t, result.Nodes, 1)
	require.Equal(t, pathgraph.NodeEndpoint, result.Nodes[0].Type)
	require.Empty(t, result.Edges)
}
