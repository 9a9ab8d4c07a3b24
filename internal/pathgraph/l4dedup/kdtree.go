package l4dedup

import (
	"math"
	"sort"
)

// Point2D is a planar point. The tree identifies each point by its
// position in the slice given to NewKDTree.
type Point2D struct {
	X, Y float64
}

// KDTree is a 2-D k-d tree over a fixed point set. Construction and
// queries iterate in a fixed, index-deterministic order so tie-breaking
// between equidistant points is reproducible across runs, per spec.md
// §9's determinism requirement.
type KDTree struct {
	points []Point2D
	root   *kdNode
}

type kdNode struct {
	idx         int
	left, right *kdNode
}

// NewKDTree builds a balanced k-d tree over points. The tree retains a
// reference to points; callers must not mutate the slice afterward.
func NewKDTree(points []Point2D) *KDTree {
	t := &KDTree{points: points}
	indices := make([]int, len(points))
	for i := range indices {
		indices[i] = i
	}
	t.root = t.build(indices, 0)
	return t
}

func (t *KDTree) build(indices []int, depth int) *kdNode {
	if len(indices) == 0 {
		return nil
	}
	axis := depth % 2
	sort.SliceStable(indices, func(i, j int) bool {
		a, b := t.points[indices[i]], t.points[indices[j]]
		var av, bv float64
		if axis == 0 {
			av, bv = a.X, b.X
		} else {
			av, bv = a.Y, b.Y
		}
		if av != bv {
			return av < bv
		}
		return indices[i] < indices[j]
	})
	mid := len(indices) / 2
	node := &kdNode{idx: indices[mid]}
	node.left = t.build(indices[:mid], depth+1)
	node.right = t.build(indices[mid+1:], depth+1)
	return node
}

// RangeQuery returns the indices of every point within radius (inclusive)
// of center, sorted ascending.
func (t *KDTree) RangeQuery(center Point2D, radius float64) []int {
	var out []int
	r2 := radius * radius
	var visit func(n *kdNode, depth int)
	visit = func(n *kdNode, depth int) {
		if n == nil {
			return
		}
		p := t.points[n.idx]
		dx, dy := p.X-center.X, p.Y-center.Y
		if dx*dx+dy*dy <= r2 {
			out = append(out, n.idx)
		}

		axis := depth % 2
		var diff float64
		if axis == 0 {
			diff = center.X - p.X
		} else {
			diff = center.Y - p.Y
		}

		near, far := n.left, n.right
		if diff > 0 {
			near, far = n.right, n.left
		}
		visit(near, depth+1)
		if diff*diff <= r2 {
			visit(far, depth+1)
		}
	}
	visit(t.root, 0)
	sort.Ints(out)
	return out
}

// Nearest returns the index of the point closest to query and its
// distance. Ties are broken by the smallest index. ok is false only
// when the tree is empty.
func (t *KDTree) Nearest(query Point2D) (idx int, dist float64, ok bool) {
	if t.root == nil {
		return 0, 0, false
	}
	bestIdx := -1
	bestDist2 := math.Inf(1)

	var visit func(n *kdNode, depth int)
	visit = func(n *kdNode, depth int) {
		if n == nil {
			return
		}
		p := t.points[n.idx]
		dx, dy := p.X-query.X, p.Y-query.Y
		d2 := dx*dx + dy*dy
		if d2 < bestDist2 || (d2 == bestDist2 && n.idx < bestIdx) {
			bestDist2 = d2
			bestIdx = n.idx
		}

		axis := depth % 2
		var diff float64
		if axis == 0 {
			diff = query.X - p.X
		} else {
			diff = query.Y - p.Y
		}

		near, far := n.left, n.right
		if diff > 0 {
			near, far = n.right, n.left
		}
		visit(near, depth+1)
		if diff*diff <= bestDist2 {
			visit(far, depth+1)
		}
	}
	visit(t.root, 0)
	if bestIdx < 0 {
		return 0, 0, false
	}
	return bestIdx, math.Sqrt(bestDist2), true
}
