package core

import (
	"sort"
)

// BVHNode represents a node in the Bounding Volume Hierarchy
type BVHNode struct {
	BoundingBox AABB
	Left        *BVHNode
	Right       *BVHNode
	Indices     []int // Primitive indices for leaf nodes (nil for internal nodes)
}

// BVH is a Bounding Volume Hierarchy over primitives identified by their index in
// the caller's list. It only prunes; deciding which hit is nearest stays with the caller.
type BVH struct {
	Root *BVHNode
}

// Leaf threshold: if we have this many or fewer primitives, store them in a leaf node
const leafThreshold = 8

// NewBVH builds a BVH over the given primitive bounding boxes. Index i in the tree
// refers to boxes[i].
func NewBVH(boxes []AABB) *BVH {
	if len(boxes) == 0 {
		return &BVH{Root: nil}
	}

	indices := make([]int, len(boxes))
	for i := range indices {
		indices[i] = i
	}

	centers := make([]Vec3, len(boxes))
	for i, box := range boxes {
		centers[i] = box.Center()
	}

	return &BVH{
		Root: buildBVH(boxes, centers, indices),
	}
}

// buildBVH recursively splits at the median along the longest axis
func buildBVH(boxes []AABB, centers []Vec3, indices []int) *BVHNode {
	boundingBox := boxes[indices[0]]
	for _, index := range indices[1:] {
		boundingBox = boundingBox.Union(boxes[index])
	}

	if len(indices) <= leafThreshold {
		return &BVHNode{
			BoundingBox: boundingBox,
			Indices:     indices,
		}
	}

	axis := boundingBox.LongestAxis()
	sort.SliceStable(indices, func(i, j int) bool {
		return centers[indices[i]].Axis(axis) < centers[indices[j]].Axis(axis)
	})

	mid := len(indices) / 2
	return &BVHNode{
		BoundingBox: boundingBox,
		Left:        buildBVH(boxes, centers, indices[:mid]),
		Right:       buildBVH(boxes, centers, indices[mid:]),
	}
}

// Traverse calls visit for every primitive in a leaf whose box the ray enters within
// [0, tMax]. visit returns the caller's current upper bound on t, which prunes the
// boxes tested after it; returning the bound unchanged keeps equal-t candidates alive.
func (bvh *BVH) Traverse(ray Ray, tMax float64, visit func(index int) float64) {
	if bvh.Root == nil {
		return
	}
	bvh.traverseNode(bvh.Root, ray, tMax, visit)
}

func (bvh *BVH) traverseNode(node *BVHNode, ray Ray, tMax float64, visit func(index int) float64) float64 {
	if !node.BoundingBox.Hit(ray, 0, tMax) {
		return tMax
	}

	if node.Indices != nil {
		for _, index := range node.Indices {
			tMax = visit(index)
		}
		return tMax
	}

	if node.Left != nil {
		tMax = bvh.traverseNode(node.Left, ray, tMax, visit)
	}
	if node.Right != nil {
		tMax = bvh.traverseNode(node.Right, ray, tMax, visit)
	}
	return tMax
}

// BVHStats describes the shape of a BVH
type BVHStats struct {
	TotalNodes int
	LeafNodes  int
	MaxDepth   int
	AvgDepth   float64 // Mean leaf depth
	Primitives int
}

// Stats walks the tree and returns its statistics
func (bvh *BVH) Stats() BVHStats {
	if bvh.Root == nil {
		return BVHStats{}
	}

	stats := BVHStats{}
	bvh.collectStats(bvh.Root, 0, &stats)

	if stats.LeafNodes > 0 {
		stats.AvgDepth = stats.AvgDepth / float64(stats.LeafNodes)
	}

	return stats
}

func (bvh *BVH) collectStats(node *BVHNode, depth int, stats *BVHStats) {
	stats.TotalNodes++

	if depth > stats.MaxDepth {
		stats.MaxDepth = depth
	}

	if node.Indices != nil {
		stats.LeafNodes++
		stats.Primitives += len(node.Indices)
		stats.AvgDepth += float64(depth)
		return
	}

	if node.Left != nil {
		bvh.collectStats(node.Left, depth+1, stats)
	}
	if node.Right != nil {
		bvh.collectStats(node.Right, depth+1, stats)
	}
}
