package bvh

import (
	"github.com/gekko3d/raytracer/geom"
)

// Bvh is the bottom-level acceleration structure over one mesh's
// primitives. Construction permutes only the indirection array --
// mesh.Primitives()/TexCoords()/Normals() are never reordered, so a
// caller's triangle ids keep meaning the mesh decoder gave them.
type Bvh struct {
	nodes                []node
	primitiveIndirection []uint32
	rootIndex            uint32
	nodesUsed            uint32
}

// Build constructs a BLAS over mesh's current primitives using binned
// SAH. The termination criterion is purely cost-based: a node stays a
// leaf whenever the best split found does not beat the leaf's own cost.
func Build(mesh *geom.Mesh) *Bvh {
	n := mesh.Len()
	b := &Bvh{
		nodes:                make([]node, 2*n+2),
		primitiveIndirection: make([]uint32, n),
		rootIndex:            0,
		nodesUsed:            2, // slot 1 is the reserved cache-line sentinel.
	}
	b.nodes[1].Bounds = geom.EmptyAabb()
	for i := range b.primitiveIndirection {
		b.primitiveIndirection[i] = uint32(i)
	}

	if n == 0 {
		b.nodes[0] = node{Bounds: geom.EmptyAabb(), PrimitiveCount: 0, Payload: 0}
		return b
	}

	b.nodes[0] = node{PrimitiveCount: uint32(n), Payload: 0}
	b.updateNodeBounds(mesh, 0)
	b.subdivide(mesh, 0)
	return b
}

// Bounds returns the AABB of the whole BVH (the root node's box).
func (b *Bvh) Bounds() geom.Aabb {
	return b.nodes[b.rootIndex].Bounds
}

// NodesUsed returns the number of node slots allocated by the build.
func (b *Bvh) NodesUsed() int {
	return int(b.nodesUsed)
}

func (b *Bvh) primitiveRange(n node) []uint32 {
	first := n.firstPrimitiveIndex()
	return b.primitiveIndirection[first : first+n.PrimitiveCount]
}

func (b *Bvh) updateNodeBounds(mesh *geom.Mesh, nodeIndex uint32) {
	box := geom.EmptyAabb()
	primitives := mesh.Primitives()
	for _, idx := range b.primitiveRange(b.nodes[nodeIndex]) {
		tri := primitives[idx]
		box.Grow(tri.V0)
		box.Grow(tri.V1)
		box.Grow(tri.V2)
	}
	b.nodes[nodeIndex].Bounds = box
}

type bin struct {
	bounds geom.Aabb
	count  uint32
}

// findBestSplitPlane sweeps all three axes with binned SAH and returns
// the best (axis, position, cost) found. axis is -1 if no axis admits a
// split (every primitive's centroid is degenerate on all three axes).
func (b *Bvh) findBestSplitPlane(mesh *geom.Mesh, n node) (axis int, position float32, cost float32) {
	axis = -1
	cost = geom.MaxT
	primitives := mesh.Primitives()
	primRange := b.primitiveRange(n)

	for a := 0; a < 3; a++ {
		cMin := float32(geom.MaxT)
		cMax := float32(-geom.MaxT)
		for _, idx := range primRange {
			c := primitives[idx].Centroid()[a]
			if c < cMin {
				cMin = c
			}
			if c > cMax {
				cMax = c
			}
		}
		if cMin == cMax {
			continue
		}

		var bins [binCount]bin
		for i := range bins {
			bins[i].bounds = geom.EmptyAabb()
		}
		scale := float32(binCount) / (cMax - cMin)
		for _, idx := range primRange {
			tri := primitives[idx]
			c := tri.Centroid()[a]
			binIdx := int((c - cMin) * scale)
			if binIdx >= binCount {
				binIdx = binCount - 1
			}
			if binIdx < 0 {
				binIdx = 0
			}
			bins[binIdx].count++
			bins[binIdx].bounds.Grow(tri.V0)
			bins[binIdx].bounds.Grow(tri.V1)
			bins[binIdx].bounds.Grow(tri.V2)
		}

		var leftArea, rightArea [binCount - 1]float32
		var leftCount, rightCount [binCount - 1]uint32
		leftBox := geom.EmptyAabb()
		rightBox := geom.EmptyAabb()
		var leftSum, rightSum uint32
		for i := 0; i < binCount-1; i++ {
			leftSum += bins[i].count
			leftCount[i] = leftSum
			leftBox.Union(bins[i].bounds)
			leftArea[i] = leftBox.Area()

			rightSum += bins[binCount-1-i].count
			rightCount[binCount-2-i] = rightSum
			rightBox.Union(bins[binCount-1-i].bounds)
			rightArea[binCount-2-i] = rightBox.Area()
		}

		planeScale := (cMax - cMin) / float32(binCount)
		for i := 0; i < binCount-1; i++ {
			planeCost := float32(leftCount[i])*leftArea[i] + float32(rightCount[i])*rightArea[i]
			if planeCost < cost {
				axis = a
				position = cMin + planeScale*float32(i+1)
				cost = planeCost
			}
		}
	}

	return axis, position, cost
}

func (b *Bvh) nodeCost(n node) float32 {
	return n.Bounds.Area() * float32(n.PrimitiveCount)
}

func (b *Bvh) subdivide(mesh *geom.Mesh, nodeIndex uint32) {
	n := b.nodes[nodeIndex]
	axis, position, bestCost := b.findBestSplitPlane(mesh, n)
	if axis < 0 {
		return
	}
	if bestCost >= b.nodeCost(n) {
		return
	}

	primitives := mesh.Primitives()
	first := int(n.firstPrimitiveIndex())
	i := first
	j := first + int(n.PrimitiveCount) - 1
	for i <= j {
		if primitives[b.primitiveIndirection[i]].Centroid()[axis] < position {
			i++
		} else {
			b.primitiveIndirection[i], b.primitiveIndirection[j] = b.primitiveIndirection[j], b.primitiveIndirection[i]
			j--
		}
	}

	leftCount := uint32(i - first)
	if leftCount == 0 || leftCount == n.PrimitiveCount {
		return
	}

	leftIdx := b.nodesUsed
	rightIdx := b.nodesUsed + 1
	b.nodesUsed += 2

	b.nodes[leftIdx] = node{PrimitiveCount: leftCount, Payload: uint32(first)}
	b.nodes[rightIdx] = node{PrimitiveCount: n.PrimitiveCount - leftCount, Payload: uint32(i)}

	b.nodes[nodeIndex].PrimitiveCount = 0
	b.nodes[nodeIndex].Payload = leftIdx

	b.updateNodeBounds(mesh, leftIdx)
	b.updateNodeBounds(mesh, rightIdx)
	b.subdivide(mesh, leftIdx)
	b.subdivide(mesh, rightIdx)
}

// Refit recomputes every node's AABB from the mesh's current vertex
// positions without touching topology: valid only under modest vertex
// displacement, since the SAH partition grows progressively suboptimal
// as deformation increases. Large deformations should trigger a full
// Build instead.
func (b *Bvh) Refit(mesh *geom.Mesh) {
	for idx := int(b.nodesUsed) - 1; idx >= 0; idx-- {
		if idx == 1 {
			continue
		}
		n := b.nodes[idx]
		if n.isLeaf() {
			b.updateNodeBounds(mesh, uint32(idx))
			continue
		}
		left := b.nodes[n.leftChildIndex()].Bounds
		right := b.nodes[n.rightChildIndex()].Bounds
		box := geom.EmptyAabb()
		box.Union(left)
		box.Union(right)
		b.nodes[idx].Bounds = box
	}
}

// Intersect traverses the BLAS with nearest-child ordering and a bounded
// explicit stack, returning the closest hit (if any) and the id of the
// primitive (indexed into mesh.Primitives()) that produced it.
func (b *Bvh) Intersect(mesh *geom.Mesh, ray *geom.Ray) (geom.SurfaceInteraction, uint32, bool) {
	if mesh.Len() == 0 {
		return geom.SurfaceInteraction{}, 0, false
	}

	primitives := mesh.Primitives()
	best := ray.T
	var bestInteraction geom.SurfaceInteraction
	var bestPrimitive uint32
	hit := false

	stack := make([]uint32, 0, 64)
	current := b.rootIndex

	for {
		n := b.nodes[current]
		if n.isLeaf() {
			for _, idx := range b.primitiveRange(n) {
				probe := geom.NewRayT(ray.Origin, ray.Direction, best)
				interaction, ok := primitives[idx].Intersect(&probe)
				if ok && interaction.T < best {
					best = interaction.T
					bestInteraction = interaction
					bestPrimitive = idx
					hit = true
				}
			}
			if len(stack) == 0 {
				break
			}
			current, stack = stack[len(stack)-1], stack[:len(stack)-1]
			continue
		}

		left := n.leftChildIndex()
		right := n.rightChildIndex()
		probe := geom.NewRayT(ray.Origin, ray.Direction, best)
		leftDist, leftHit := b.nodes[left].Bounds.Intersect(&probe)
		rightDist, rightHit := b.nodes[right].Bounds.Intersect(&probe)

		near, far := left, right
		nearHit, farHit := leftHit, rightHit
		if rightHit && (!leftHit || rightDist < leftDist) {
			near, far = right, left
			nearHit, farHit = rightHit, leftHit
		}

		if !nearHit {
			if len(stack) == 0 {
				break
			}
			current, stack = stack[len(stack)-1], stack[:len(stack)-1]
			continue
		}

		current = near
		if farHit {
			stack = append(stack, far)
		}
	}

	if !hit {
		return geom.SurfaceInteraction{}, 0, false
	}
	return bestInteraction, bestPrimitive, true
}
