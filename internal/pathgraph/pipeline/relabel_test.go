package pipeline

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/banshee-data/pathgraph/internal/pathgraph"
)

func TestRelabelBasementsShiftsLevelsAroundGroundZ(t *testing.T) {
	result := &Result{
		FloorPaths: []FloorPath{
			{FloorLevel: 1}, {FloorLevel: 2}, {FloorLevel: 3},
		},
		PathNodes: []pathgraph.Node{
			{FloorLevel: 1}, {FloorLevel: 2}, {FloorLevel: 3},
		},
		VerticalPassages: []PassageResult{
			{FromFloorLevel: 1, ToFloorLevel: 2},
		},
	}
	zMeans := map[int]float64{1: -3.0, 2: 0.0, 3: 3.0}

	relabeled := RelabelBasements(result, zMeans, 0.0)

	byOriginalOrder := make([]int, len(relabeled.FloorPaths))
	for i, fp := range relabeled.FloorPaths {
		byOriginalOrder[i] = fp.FloorLevel
	}
	require.Equal(t, []int{-1, 1, 2}, byOriginalOrder)
	require.Equal(t, -1, relabeled.PathNodes[0].FloorLevel)
	require.Equal(t, 1, relabeled.PathNodes[1].FloorLevel)
	require.Equal(t, 2, relabeled.PathNodes[2].FloorLevel)
	require.Equal(t, -1, relabeled.VerticalPassages[0].FromFloorLevel)
	require.Equal(t, 1, relabeled.VerticalPassages[0].ToFloorLevel)
}

func TestRelabelBasementsDoesNotMutateInput(t *testing.T) {
	result := &Result{FloorPaths: []FloorPath{{FloorLevel: 1}}}
	zMeans := map[int]float64{1: 5.0}

	RelabelBasements(result, zMeans, 0.0)
	require.Equal(t, 1, result.FloorPaths[0].FloorLevel)
}
