package l5flatten

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/banshee-data/pathgraph/internal/config"
	"github.com/banshee-data/pathgraph/internal/pathgraph"
)

func straightLineWithJitter() []pathgraph.Position {
	// A near-straight corridor with small jitter that RDP at the default
	// epsilon (0.5m) should discard, plus one genuine corner.
	return []pathgraph.Position{
		{X: 0, Y: 0}, {X: 1, Y: 0.05}, {X: 2, Y: -0.05}, {X: 3, Y: 0.02},
		{X: 4, Y: 0}, {X: 4, Y: 1}, {X: 4, Y: 2}, {X: 4, Y: 3},
	}
}

func TestFlattenStraightensJitterAtCorner(t *testing.T) {
	cfg := config.Defaults()
	points := straightLineWithJitter()
	indices := seqIndices(len(points))

	polylines := Flatten(1, points, indices, cfg)
	require.Len(t, polylines, 1)
	require.GreaterOrEqual(t, len(polylines[0].Points), 2)

	first, last := polylines[0].Points[0], polylines[0].Points[len(polylines[0].Points)-1]
	require.InDelta(t, 0.0, first.X, 1e-9)
	require.InDelta(t, 0.0, first.Y, 1e-9)
	require.InDelta(t, 4.0, last.X, 1e-9)
	require.InDelta(t, 3.0, last.Y, 1e-9)
}

func TestFlattenSplitsAtGap(t *testing.T) {
	cfg := config.Defaults()
	points := []pathgraph.Position{
		{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 2, Y: 0},
		{X: 20, Y: 0}, {X: 21, Y: 0}, {X: 22, Y: 0}, // beyond GAP_THRESHOLD
	}
	indices := seqIndices(len(points))

	polylines := Flatten(1, points, indices, cfg)
	require.Len(t, polylines, 2)
}

func TestFlattenResampleSpacingIsUniform(t *testing.T) {
	cfg := config.Defaults()
	points := []pathgraph.Position{{X: 0, Y: 0}, {X: 10, Y: 0}}
	polylines := Flatten(1, points, seqIndices(2), cfg)
	require.Len(t, polylines, 1)

	pts := polylines[0].Points
	for i := 1; i < len(pts)-1; i++ {
		d := distance3D(pts[i-1], pts[i])
		require.InDelta(t, cfg.GetResampleSpacing(), d, 1e-9)
	}
}

func TestSimplifyRDPIsIdempotentOnItsOwnOutput(t *testing.T) {
	points := straightLineWithJitter()
	indices := seqIndices(len(points))

	vertices, vertexIdx := simplifyRDP(points, indices, 0.5)
	verticesAgain, vertexIdxAgain := simplifyRDP(vertices, vertexIdx, 0.5)
	require.Equal(t, vertices, verticesAgain)
	require.Equal(t, vertexIdx, vertexIdxAgain)
}

func TestFlattenEmptyInput(t *testing.T) {
	polylines := Flatten(1, nil, nil, config.Defaults())
	require.Empty(t, polylines)
}

func TestStraightenPathFitsPrincipalAxis(t *testing.T) {
	points := []pathgraph.Position{
		{X: 0, Y: 0}, {X: 1, Y: 0.1}, {X: 2, Y: -0.1}, {X: 3, Y: 0.05}, {X: 4, Y: 0},
	}
	polylines := StraightenPath(1, points, seqIndices(len(points)), 5.0)
	require.Len(t, polylines, 1)
	require.Len(t, polylines[0].Points, 2)

	start, end := polylines[0].Points[0], polylines[0].Points[1]
	require.InDelta(t, 0.0, start.Y, 0.2)
	require.InDelta(t, 0.0, end.Y, 0.2)
	require.Less(t, start.X, end.X)
}

func seqIndices(n int) []int {
	idx := make([]int, n)
	for i := range idx {
		idx[i] = i
	}
	return idx
}
