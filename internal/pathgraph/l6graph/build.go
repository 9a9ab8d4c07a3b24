package l6graph

import (
	"math"
	"sort"

	"github.com/google/uuid"

	"github.com/banshee-data/pathgraph/internal/config"
	"github.com/banshee-data/pathgraph/internal/pathgraph"
)

// Result is one polyline's contribution to the graph: its nodes, in
// polyline-index order, and the edges connecting consecutive nodes.
type Result struct {
	Nodes []pathgraph.Node
	Edges []pathgraph.Edge
}

// Build detects junctions on polyline, classifies every emitted vertex,
// and connects consecutive emitted nodes with path-length-weighted
// HORIZONTAL edges, per spec.md §4.7.
func Build(polyline pathgraph.Polyline, cfg *config.TuningConfig) Result {
	points := polyline.Points
	if len(points) == 0 {
		return Result{}
	}
	if len(points) == 1 {
		return Result{Nodes: []pathgraph.Node{newNode(points[0], pathgraph.NodeEndpoint, polyline.FloorLevel, 0)}}
	}

	junctions := detectJunctions(points, cfg.GetJunctionAngleDegrees())
	junctions = mergeJunctions(points, junctions, cfg.GetJunctionMergeRadius())

	cumulative := cumulativeLength(points)

	nodeIdx := extractNodeIndices(points, junctions, cfg.GetNodeSpacing())
	nodes := make([]pathgraph.Node, len(nodeIdx))
	for i, idx := range nodeIdx {
		nodeType := pathgraph.NodeWaypoint
		switch {
		case idx == 0 || idx == len(points)-1:
			nodeType = pathgraph.NodeEndpoint
		case junctions[idx]:
			nodeType = pathgraph.NodeJunction
		}
		nodes[i] = newNode(points[idx], nodeType, polyline.FloorLevel, idx)
	}

	var edges []pathgraph.Edge
	radius := cfg.GetEdgeConnectionRadius()
	for i := 1; i < len(nodeIdx); i++ {
		dist := cumulative[nodeIdx[i]] - cumulative[nodeIdx[i-1]]
		if dist > radius {
			continue
		}
		edges = append(edges, pathgraph.Edge{
			ID:            uuid.New().String(),
			From:          nodes[i-1].ID,
			To:            nodes[i].ID,
			Distance:      dist,
			Kind:          pathgraph.EdgeHorizontal,
			Bidirectional: true,
		})
	}

	return Result{Nodes: nodes, Edges: edges}
}

func newNode(p pathgraph.Position, t pathgraph.NodeType, floorLevel, originalIndex int) pathgraph.Node {
	return pathgraph.Node{
		ID:            uuid.New().String(),
		X:             p.X,
		Y:             p.Y,
		Z:             p.Z,
		Type:          t,
		FloorLevel:    floorLevel,
		OriginalIndex: originalIndex,
	}
}

// cumulativeLength returns, for every index i, the path length from
// points[0] to points[i].
func cumulativeLength(points []pathgraph.Position) []float64 {
	out := make([]float64, len(points))
	for i := 1; i < len(points); i++ {
		out[i] = out[i-1] + distance3D(points[i-1], points[i])
	}
	return out
}

// detectJunctions marks index i as a junction candidate when the
// turning angle at i is >= thresholdDegrees and at least 3 points
// precede and follow it.
func detectJunctions(points []pathgraph.Position, thresholdDegrees float64) map[int]bool {
	junctions := make(map[int]bool)
	if len(points) < 7 {
		return junctions
	}
	thresholdRad := thresholdDegrees * math.Pi / 180

	for i := 3; i <= len(points)-4; i++ {
		angle := turningAngle(points[i-1], points[i], points[i+1])
		if angle >= thresholdRad {
			junctions[i] = true
		}
	}
	return junctions
}

// turningAngle returns the angle between (p1-p0) and (p2-p1) in
// radians, in [0, pi].
func turningAngle(p0, p1, p2 pathgraph.Position) float64 {
	ax, ay, az := p1.X-p0.X, p1.Y-p0.Y, p1.Z-p0.Z
	bx, by, bz := p2.X-p1.X, p2.Y-p1.Y, p2.Z-p1.Z

	aMag := math.Sqrt(ax*ax + ay*ay + az*az)
	bMag := math.Sqrt(bx*bx + by*by + bz*bz)
	if aMag < 1e-10 || bMag < 1e-10 {
		return 0
	}

	dot := (ax*bx + ay*by + az*bz) / (aMag * bMag)
	dot = math.Max(-1.0, math.Min(1.0, dot))
	return math.Acos(dot)
}

// mergeJunctions walks candidates in ascending index order; each
// unclaimed candidate gathers every later unclaimed candidate within
// radius of it into one cluster. Each cluster survives as the single
// member nearest the cluster's positional mean; turning angles play no
// part in that choice.
func mergeJunctions(points []pathgraph.Position, junctions map[int]bool, radius float64) map[int]bool {
	if len(junctions) == 0 {
		return junctions
	}

	indices := make([]int, 0, len(junctions))
	for idx := range junctions {
		indices = append(indices, idx)
	}
	sort.Ints(indices)

	merged := make(map[int]bool)
	used := make([]bool, len(indices))
	for i, idx := range indices {
		if used[i] {
			continue
		}
		cluster := []int{idx}
		used[i] = true
		for j := i + 1; j < len(indices); j++ {
			if used[j] {
				continue
			}
			if distance3D(points[idx], points[indices[j]]) <= radius {
				cluster = append(cluster, indices[j])
				used[j] = true
			}
		}
		merged[clusterRepresentative(points, cluster)] = true
	}
	return merged
}

// clusterRepresentative picks the cluster member nearest the cluster's
// positional mean, the deterministic stand-in for "positional mean" on
// a discrete index set.
func clusterRepresentative(points []pathgraph.Position, cluster []int) int {
	var meanX, meanY, meanZ float64
	for _, idx := range cluster {
		meanX += points[idx].X
		meanY += points[idx].Y
		meanZ += points[idx].Z
	}
	n := float64(len(cluster))
	mean := pathgraph.Position{X: meanX / n, Y: meanY / n, Z: meanZ / n}

	best := cluster[0]
	bestDist := distance3D(points[best], mean)
	for _, idx := range cluster[1:] {
		d := distance3D(points[idx], mean)
		if d < bestDist {
			bestDist = d
			best = idx
		}
	}
	return best
}

// extractNodeIndices walks points in index order and decides which
// indices become nodes: index 0, every junction, any point whose
// straight-line distance from the last emitted node is at least spacing,
// and the final index.
func extractNodeIndices(points []pathgraph.Position, junctions map[int]bool, spacing float64) []int {
	nodeIdx := []int{0}
	lastEmitted := 0

	for i := 1; i < len(points)-1; i++ {
		if junctions[i] {
			nodeIdx = append(nodeIdx, i)
			lastEmitted = i
			continue
		}
		if distance3D(points[lastEmitted], points[i]) >= spacing {
			nodeIdx = append(nodeIdx, i)
			lastEmitted = i
		}
	}

	last := len(points) - 1
	if nodeIdx[len(nodeIdx)-1] != last {
		nodeIdx = append(nodeIdx, last)
	}
	return nodeIdx
}

func distance3D(a, b pathgraph.Position) float64 {
	dx, dy, dz := a.X-b.X, a.Y-b.Y, a.Z-b.Z
	return math.Sqrt(dx*dx + dy*dy + dz*dz)
}
