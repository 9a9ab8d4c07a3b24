package pipeline

import (
	"context"
	"fmt"
	"sort"

	"github.com/banshee-data/pathgraph/internal/config"
	"github.com/banshee-data/pathgraph/internal/pathgraph"
	"github.com/banshee-data/pathgraph/internal/pathgraph/l1pose"
	"github.com/banshee-data/pathgraph/internal/pathgraph/l2vertical"
	"github.com/banshee-data/pathgraph/internal/pathgraph/l3floors"
	"github.com/banshee-data/pathgraph/internal/pathgraph/l4dedup"
	"github.com/banshee-data/pathgraph/internal/pathgraph/l5flatten"
	"github.com/banshee-data/pathgraph/internal/pathgraph/l6graph"
	"github.com/banshee-data/pathgraph/internal/pathgraph/l7merge"
	"github.com/banshee-data/pathgraph/internal/pgobserve"
	"github.com/banshee-data/pathgraph/internal/posestore"
)

// Segment is one length-weighted stretch of a floor path, between two
// consecutive emitted nodes.
type Segment struct {
	SequenceOrder int                `json:"sequence_order"`
	StartPoint    pathgraph.Position `json:"start_point"`
	EndPoint      pathgraph.Position `json:"end_point"`
	Length        float64            `json:"length"`
}

// FloorPath is one floor's contribution to the emitted result, per
// spec.md §6.
type FloorPath struct {
	FloorLevel    int       `json:"floor_level"`
	FloorName     string    `json:"floor_name"`
	Segments      []Segment `json:"segments"`
	MinX          float64   `json:"min_x"`
	MaxX          float64   `json:"max_x"`
	MinY          float64   `json:"min_y"`
	MaxY          float64   `json:"max_y"`
	TotalDistance float64   `json:"total_distance"`
}

// PassageResult is the emitted view of a stitched (or orphaned)
// vertical passage.
type PassageResult struct {
	Type           pathgraph.PassageClass `json:"type"`
	FromFloorLevel int                    `json:"from_floor_level"`
	ToFloorLevel   int                    `json:"to_floor_level"`
	EntryPoint     pathgraph.Position     `json:"entry_point"`
	ExitPoint      pathgraph.Position     `json:"exit_point"`
}

// Result is the pipeline's emit contract (spec.md §6).
type Result struct {
	TotalNodes       int              `json:"total_nodes"`
	TotalDistance    float64          `json:"total_distance"`
	FloorPaths       []FloorPath      `json:"floor_paths"`
	VerticalPassages []PassageResult  `json:"vertical_passages"`
	PathNodes        []pathgraph.Node `json:"path_nodes"`
	PathEdges        []pathgraph.Edge `json:"path_edges"`
	Stats            *pathgraph.Stats `json:"stats"`
}

// FloorNamer renders a floor level into its presentation name. The core
// pipeline leaves this a pure injection point; nil selects a plain
// numeric fallback so the core never imports a presentation package
// (see internal/pathgraph/presentation).
type FloorNamer func(level int) string

// Pipeline wires every stage from PoseReader through FloorGraphMerger
// into one forward run over an immutable pose store. A Pipeline is
// reusable across runs; it holds no mutable state of its own.
type Pipeline struct {
	Store  posestore.Store
	Config *config.TuningConfig
	Namer  FloorNamer
}

// New builds a Pipeline with the given store. Config defaults to
// config.Defaults() when nil.
func New(store posestore.Store, cfg *config.TuningConfig) *Pipeline {
	if cfg == nil {
		cfg = config.Defaults()
	}
	return &Pipeline{Store: store, Config: cfg}
}

// Run executes the full pipeline. It observes ctx cancellation only at
// stage boundaries, never mid-stage, per spec.md §5. Only
// EmptyTrajectory aborts the run; every other abnormal condition is
// recorded into the returned Stats and the run proceeds.
func (p *Pipeline) Run(ctx context.Context) (*Result, error) {
	stats := pathgraph.NewStats()
	namer := p.Namer
	if namer == nil {
		namer = func(level int) string { return fmt.Sprintf("floor %d", level) }
	}

	poseResult, err := l1pose.Read(ctx, p.Store)
	if err != nil {
		return nil, err
	}
	stats.DroppedPoses = poseResult.Dropped
	stats.TotalNodes = len(poseResult.Positions)

	var extentsSeeded bool
	for _, pos := range poseResult.Positions {
		stats.RecordExtents(pos, &extentsSeeded)
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	vertical := l2vertical.Detect(poseResult.Positions, p.Config)

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	nonVertical := make([]l3floors.Point, 0, len(poseResult.Positions))
	for i, pos := range poseResult.Positions {
		if vertical.Mask[i] {
			continue
		}
		nonVertical = append(nonVertical, l3floors.Point{OriginalIndex: i, Position: pos})
	}

	floors := l3floors.Separate(nonVertical, p.Config)
	stats.FloorsDetected = len(floors)
	if len(floors) == 0 {
		pgobserve.Logger.Warn("pipeline: no floors detected")
	}

	passages := l3floors.AssignFloors(vertical.Passages, floors)

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	levels := make([]int, 0, len(floors))
	for level := range floors {
		levels = append(levels, level)
	}
	sort.Ints(levels)

	floorPaths := make([]FloorPath, 0, len(levels))
	floorGraphResults := make(map[int]l7merge.FloorResult, len(levels))

	for _, level := range levels {
		floor := floors[level]

		floorPoints := make([]pathgraph.Position, len(floor.Points))
		copy(floorPoints, floor.Points)
		floorIndices := make([]int, len(floor.OriginalIndices))
		copy(floorIndices, floor.OriginalIndices)

		dedupResult := l4dedup.Dedup(floorPoints, floorIndices, p.Config)
		polylines := l5flatten.Flatten(level, dedupResult.Points, dedupResult.Indices, p.Config)

		var floorNodes []pathgraph.Node
		var floorEdges []pathgraph.Edge
		var segments []Segment
		minX, maxX, minY, maxY := 0.0, 0.0, 0.0, 0.0
		boundsSeeded := false
		totalDistance := 0.0

		for _, polyline := range polylines {
			built := l6graph.Build(polyline, p.Config)
			floorNodes = append(floorNodes, built.Nodes...)
			floorEdges = append(floorEdges, built.Edges...)

			for i, e := range built.Edges {
				from := nodeByID(built.Nodes, e.From)
				to := nodeByID(built.Nodes, e.To)
				segments = append(segments, Segment{
					SequenceOrder: i,
					StartPoint:    pathgraph.Position{X: from.X, Y: from.Y, Z: from.Z},
					EndPoint:      pathgraph.Position{X: to.X, Y: to.Y, Z: to.Z},
					Length:        e.Distance,
				})
				totalDistance += e.Distance
			}

			for _, pos := range polyline.Points {
				if !boundsSeeded {
					minX, maxX = pos.X, pos.X
					minY, maxY = pos.Y, pos.Y
					boundsSeeded = true
					continue
				}
				minX, maxX = minFloat(minX, pos.X), maxFloat(maxX, pos.X)
				minY, maxY = minFloat(minY, pos.Y), maxFloat(maxY, pos.Y)
			}
		}

		for _, n := range floorNodes {
			stats.RecordNode(n)
		}
		for _, e := range floorEdges {
			stats.RecordEdge(e)
		}

		floorGraphResults[level] = l7merge.FloorResult{Nodes: floorNodes, Edges: floorEdges}
		floorPaths = append(floorPaths, FloorPath{
			FloorLevel:    level,
			FloorName:     namer(level),
			Segments:      segments,
			MinX:          minX,
			MaxX:          maxX,
			MinY:          minY,
			MaxY:          maxY,
			TotalDistance: totalDistance,
		})
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	pathNodes, pathEdges := l7merge.Merge(floorGraphResults, passages, func(orphan pathgraph.VerticalPassage) {
		stats.OrphanPassages++
		pgobserve.Logger.Warn("pipeline: orphan vertical passage skipped",
			"from_floor", orphan.FromFloor, "to_floor", orphan.ToFloor)
	})

	verticalResults := make([]PassageResult, 0, len(passages))
	for _, psg := range passages {
		verticalResults = append(verticalResults, PassageResult{
			Type:           psg.Class,
			FromFloorLevel: psg.FromFloor,
			ToFloorLevel:   psg.ToFloor,
			EntryPoint:     psg.EntryPosition,
			ExitPoint:      psg.ExitPosition,
		})
	}

	return &Result{
		TotalNodes:       stats.TotalNodes,
		TotalDistance:    stats.TotalDistance,
		FloorPaths:       floorPaths,
		VerticalPassages: verticalResults,
		PathNodes:        pathNodes,
		PathEdges:        pathEdges,
		Stats:            stats,
	}, nil
}

func nodeByID(nodes []pathgraph.Node, id string) pathgraph.Node {
	for _, n := range nodes {
		if n.ID == id {
			return n
		}
	}
	return pathgraph.Node{}
}

func minFloat(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}

func maxFloat(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}
