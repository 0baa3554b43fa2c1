package geometry

import (
	"sort"

	"github.com/df07/go-scanline-raytracer/pkg/core"
)

// BVHNode represents a node in the Bounding Volume Hierarchy
type BVHNode struct {
	BoundingBox core.AABB
	Left        *BVHNode
	Right       *BVHNode
	Shapes      []core.Shape // Shapes for leaf nodes (nil for internal nodes)
}

// BVH is a scene aggregate that skips shapes whose bounding boxes the ray misses.
// Boxes are computed over the shutter interval [Time0, Time1], so moving shapes
// are found at any ray time inside it.
type BVH struct {
	Root         *BVHNode
	Time0, Time1 float64
}

// Leaf threshold: if we have this many or fewer shapes, store them in a leaf node
const leafThreshold = 4

// NewBVH constructs a BVH over shapes for rays with times in [time0, time1]
func NewBVH(shapes []core.Shape, time0, time1 float64) *BVH {
	if len(shapes) == 0 {
		return &BVH{Time0: time0, Time1: time1}
	}

	// Sorting happens in place, so work on a copy
	shapesCopy := make([]core.Shape, len(shapes))
	copy(shapesCopy, shapes)

	return &BVH{
		Root:  buildBVH(shapesCopy, time0, time1),
		Time0: time0,
		Time1: time1,
	}
}

// buildBVH recursively builds the tree with a median split along the longest axis
func buildBVH(shapes []core.Shape, time0, time1 float64) *BVHNode {
	boundingBox := boundShapes(shapes, time0, time1)

	if len(shapes) <= leafThreshold {
		return &BVHNode{
			BoundingBox: boundingBox,
			Shapes:      shapes,
		}
	}

	axis := boundingBox.LongestAxis()
	sortShapesByAxis(shapes, axis, time0, time1)

	mid := len(shapes) / 2
	return &BVHNode{
		BoundingBox: boundingBox,
		Left:        buildBVH(shapes[:mid], time0, time1),
		Right:       buildBVH(shapes[mid:], time0, time1),
	}
}

// sortShapesByAxis sorts shapes by their bounding box center along the specified axis
func sortShapesByAxis(shapes []core.Shape, axis int, time0, time1 float64) {
	sort.SliceStable(shapes, func(i, j int) bool {
		centerI := shapes[i].BoundingBox(time0, time1).Center()
		centerJ := shapes[j].BoundingBox(time0, time1).Center()

		switch axis {
		case 0:
			return centerI.X < centerJ.X
		case 1:
			return centerI.Y < centerJ.Y
		default:
			return centerI.Z < centerJ.Z
		}
	})
}

// Hit tests if a ray intersects any shape in the BVH
func (bvh *BVH) Hit(ray core.Ray, tMin, tMax float64) (*core.HitRecord, bool) {
	if bvh.Root == nil {
		return nil, false
	}
	return bvh.hitNode(bvh.Root, ray, tMin, tMax)
}

// BoundingBox returns the root box. The tree was built for a fixed shutter
// interval, so the arguments are ignored.
func (bvh *BVH) BoundingBox(time0, time1 float64) core.AABB {
	if bvh.Root == nil {
		return core.AABB{}
	}
	return bvh.Root.BoundingBox
}

func (bvh *BVH) hitNode(node *BVHNode, ray core.Ray, tMin, tMax float64) (*core.HitRecord, bool) {
	if !node.BoundingBox.Hit(ray, tMin, tMax) {
		return nil, false
	}

	if node.Shapes != nil {
		return hitClosest(node.Shapes, ray, tMin, tMax)
	}

	var closestHit *core.HitRecord
	hitAnything := false
	closestSoFar := tMax

	if node.Left != nil {
		if hit, isHit := bvh.hitNode(node.Left, ray, tMin, closestSoFar); isHit {
			hitAnything = true
			closestSoFar = hit.T
			closestHit = hit
		}
	}

	if node.Right != nil {
		if hit, isHit := bvh.hitNode(node.Right, ray, tMin, closestSoFar); isHit {
			hitAnything = true
			closestHit = hit
		}
	}

	return closestHit, hitAnything
}

// Depth returns the number of levels in the tree (0 for an empty BVH)
func (bvh *BVH) Depth() int {
	var depth func(n *BVHNode) int
	depth = func(n *BVHNode) int {
		if n == nil {
			return 0
		}
		return 1 + max(depth(n.Left), depth(n.Right))
	}
	return depth(bvh.Root)
}
