package presentation

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFloorNameAboveGround(t *testing.T) {
	require.Equal(t, "1층", FloorName(1))
	require.Equal(t, "12층", FloorName(12))
}

func TestFloorNameBasement(t *testing.T) {
	require.Equal(t, "B1", FloorName(-1))
	require.Equal(t, "B3", FloorName(-3))
}

func TestFloorNameZeroRendersAsB0(t *testing.T) {
	require.Equal(t, "B0", FloorName(0))
}
