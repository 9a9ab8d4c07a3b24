package sqlite

import (
	"context"
	"encoding/binary"
	"math"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// encodePoseBlob builds a 48-byte 3x4 row-major affine matrix blob with
// identity rotation and the given translation in column 3, matching the
// wire format read by the pipeline's PoseReader.
func encodePoseBlob(tx, ty, tz float32) []byte {
	m := [12]float32{
		1, 0, 0, tx,
		0, 1, 0, ty,
		0, 0, 1, tz,
	}
	buf := make([]byte, 48)
	for i, v := range m {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(v))
	}
	return buf
}

func TestStoreReadAllOrdersByAscendingID(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "poses.db")
	store, err := Open(dbPath)
	require.NoError(t, err)
	defer store.Close()

	inserts := []struct {
		id         int64
		x, y, z    float32
	}{
		{3, 2, 0, 0},
		{1, 0, 0, 0.1},
		{2, 1, 0, 0},
	}
	for _, ins := range inserts {
		_, err := store.db.Exec(`INSERT INTO Node (id, pose) VALUES (?, ?)`, ins.id, encodePoseBlob(ins.x, ins.y, ins.z))
		require.NoError(t, err)
	}

	records, err := store.ReadAll(context.Background())
	require.NoError(t, err)
	require.Len(t, records, 3)
	require.Equal(t, []int64{1, 2, 3}, []int64{records[0].ID, records[1].ID, records[2].ID})
	require.Len(t, records[0].Pose, 48)
}

func TestStoreReadAllEmptyTable(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "empty.db")
	store, err := Open(dbPath)
	require.NoError(t, err)
	defer store.Close()

	records, err := store.ReadAll(context.Background())
	require.NoError(t, err)
	require.Empty(t, records)
}
