package l1pose

import (
	"context"
	"encoding/binary"
	"fmt"
	"math"

	"github.com/banshee-data/pathgraph/internal/pathgraph"
	"github.com/banshee-data/pathgraph/internal/pgobserve"
	"github.com/banshee-data/pathgraph/internal/posestore"
)

// poseBlobSize is the wire size of one pose record: 12 little-endian
// float32 values forming a row-major 3x4 affine matrix.
const poseBlobSize = 48

// originEpsilon is the tolerance the pose store uses to mark an
// "uninitialized" row: translation within this distance of the origin
// on every axis is a sentinel, not real data.
const originEpsilon = 1e-6

// Result is the decoded output of one PoseReader pass: ordered position
// and stable-id arrays, plus a count of records dropped along the way.
type Result struct {
	Positions []pathgraph.Position
	NodeIDs   []int64
	Dropped   int
}

// Read loads every record from store, decodes its translation, and
// drops degenerate rows. Records are processed in the ascending-id
// order the store already guarantees.
//
// A record is dropped when: the blob is absent, its length differs
// from 48 bytes, any decoded component is non-finite, or the
// translation sits within 1e-6 of the origin on every axis (the
// store's sentinel for "uninitialized").
//
// Returns pathgraph.ErrEmptyTrajectory if zero records survive.
func Read(ctx context.Context, store posestore.Store) (*Result, error) {
	records, err := store.ReadAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("l1pose: read pose store: %w", err)
	}

	res := &Result{
		Positions: make([]pathgraph.Position, 0, len(records)),
		NodeIDs:   make([]int64, 0, len(records)),
	}

	for _, rec := range records {
		pos, ok := decode(rec.Pose)
		if !ok {
			res.Dropped++
			pgobserve.Logger.Warn("l1pose: dropped degenerate pose record", "id", rec.ID)
			continue
		}
		res.Positions = append(res.Positions, pos)
		res.NodeIDs = append(res.NodeIDs, rec.ID)
	}

	if len(res.Positions) == 0 {
		return res, pathgraph.ErrEmptyTrajectory
	}

	pgobserve.Logger.Debug("l1pose: decoded trajectory", "kept", len(res.Positions), "dropped", res.Dropped)
	return res, nil
}

// decode unpacks one 48-byte pose blob into a translation, reporting ok
// = false for any of the drop conditions spec'd on Read.
func decode(blob []byte) (pathgraph.Position, bool) {
	if len(blob) != poseBlobSize {
		return pathgraph.Position{}, false
	}

	var m [12]float32
	for i := range m {
		bits := binary.LittleEndian.Uint32(blob[i*4 : i*4+4])
		m[i] = math.Float32frombits(bits)
	}

	// Row-major 3x4: translation is column 3 of each row.
	tx, ty, tz := float64(m[3]), float64(m[7]), float64(m[11])

	if !isFinite(tx) || !isFinite(ty) || !isFinite(tz) {
		return pathgraph.Position{}, false
	}

	if math.Abs(tx) < originEpsilon && math.Abs(ty) < originEpsilon && math.Abs(tz) < originEpsilon {
		return pathgraph.Position{}, false
	}

	return pathgraph.Position{X: tx, Y: ty, Z: tz}, true
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
