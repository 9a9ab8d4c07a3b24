package pathgraph

// Stats accumulates counts and non-fatal recovery events for one
// pipeline run. The core never retries internally and reports at most
// one fatal error per run; everything else recoverable shows up here
// instead of in an error return.
type Stats struct {
	TotalNodes    int     `json:"total_nodes"`
	TotalDistance float64 `json:"total_distance"`

	NodeTypeCounts map[NodeType]int `json:"node_type_counts"`
	EdgeCount      int              `json:"edge_count"`
	JunctionCount  int              `json:"junction_count"`
	EndpointCount  int              `json:"endpoint_count"`
	AverageEdgeLen float64          `json:"average_edge_len"`

	MinX float64 `json:"min_x"`
	MaxX float64 `json:"max_x"`
	MinY float64 `json:"min_y"`
	MaxY float64 `json:"max_y"`
	MinZ float64 `json:"min_z"`
	MaxZ float64 `json:"max_z"`

	// Non-fatal recoveries. Pipeline.Run sets DroppedPoses,
	// OrphanPassages and FloorsDetected; no stage increments
	// DegenerateSegments or DegenerateThresholds, so both stay 0.
	DroppedPoses         int `json:"dropped_poses"`         // DegeneratePose
	DegenerateSegments   int `json:"degenerate_segments"`   // DegenerateSegment
	OrphanPassages       int `json:"orphan_passages"`       // OrphanPassage
	DegenerateThresholds int `json:"degenerate_thresholds"` // DegenerateThreshold
	FloorsDetected       int `json:"floors_detected"`
}

// NewStats returns a zero-valued Stats with its count map initialized.
func NewStats() *Stats {
	return &Stats{NodeTypeCounts: make(map[NodeType]int)}
}

// RecordNode folds one emitted node into the running counts.
func (s *Stats) RecordNode(n Node) {
	s.NodeTypeCounts[n.Type]++
	switch n.Type {
	case NodeJunction:
		s.JunctionCount++
	case NodeEndpoint:
		s.EndpointCount++
	}
}

// RecordEdge folds one emitted edge into the running counts.
func (s *Stats) RecordEdge(e Edge) {
	s.EdgeCount++
	if e.Kind == EdgeHorizontal {
		s.TotalDistance += e.Distance
	}
	if s.EdgeCount > 0 {
		total := s.AverageEdgeLen * float64(s.EdgeCount-1)
		s.AverageEdgeLen = (total + e.Distance) / float64(s.EdgeCount)
	}
}

// RecordExtents widens the trajectory bounding box to include p.
func (s *Stats) RecordExtents(p Position, seeded *bool) {
	if !*seeded {
		s.MinX, s.MaxX = p.X, p.X
		s.MinY, s.MaxY = p.Y, p.Y
		s.MinZ, s.MaxZ = p.Z, p.Z
		*seeded = true
		return
	}
	if p.X < s.MinX {
		s.MinX = p.X
	}
	if p.X > s.MaxX {
		s.MaxX = p.X
	}
	if p.Y < s.MinY {
		s.MinY = p.Y
	}
	if p.Y > s.MaxY {
		s.MaxY = p.Y
	}
	if p.Z < s.MinZ {
		s.MinZ = p.Z
	}
	if p.Z > s.MaxZ {
		s.MaxZ = p.Z
	}
}
