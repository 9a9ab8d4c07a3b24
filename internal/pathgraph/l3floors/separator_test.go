package l3floors

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/banshee-data/pathgraph/internal/config"
	"github.com/banshee-data/pathgraph/internal/pathgraph"
)

func makePoints(startIdx int, n int, z float64) []Point {
	pts := make([]Point, n)
	for i := 0; i < n; i++ {
		pts[i] = Point{
			OriginalIndex: startIdx + i,
			Position:      pathgraph.Position{X: float64(i) * 0.1, Y: 0, Z: z},
		}
	}
	return pts
}

func TestSeparateSingleFloorWhenRangeBelowFloorHeight(t *testing.T) {
	points := makePoints(0, 50, 1.0)
	floors := Separate(points, config.Defaults())
	require.Len(t, floors, 1)
	require.Contains(t, floors, 1)
	require.InDelta(t, 1.0, floors[1].ZMean, 1e-9)
}

func TestSeparateTwoFloorsByHistogramPeaks(t *testing.T) {
	var points []Point
	points = append(points, makePoints(0, 100, 0.0)...)
	points = append(points, makePoints(100, 100, 3.2)...)

	floors := Separate(points, config.Defaults())
	require.Len(t, floors, 2)
	require.Less(t, floors[1].ZMean, floors[2].ZMean)
	require.Equal(t, 100, floors[1].PointCount())
	require.Equal(t, 100, floors[2].PointCount())
}

func TestSeparateDropsUndersizedClusters(t *testing.T) {
	var points []Point
	points = append(points, makePoints(0, 100, 0.0)...)
	points = append(points, makePoints(100, 3, 3.2)...) // below MinPointsPerFloor

	floors := Separate(points, config.Defaults())
	require.Len(t, floors, 1)
}

func TestSeparateFloorsAreDisjointInOriginalIndex(t *testing.T) {
	var points []Point
	points = append(points, makePoints(0, 100, 0.0)...)
	points = append(points, makePoints(100, 100, 3.2)...)
	points = append(points, makePoints(200, 100, 6.5)...)

	floors := Separate(points, config.Defaults())
	seen := make(map[int]bool)
	for _, f := range floors {
		for _, idx := range f.OriginalIndices {
			require.False(t, seen[idx], "index %d claimed by more than one floor", idx)
			seen[idx] = true
		}
	}
}

func TestSeparateEmptyInput(t *testing.T) {
	floors := Separate(nil, config.Defaults())
	require.Empty(t, floors)
}
