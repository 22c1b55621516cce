package physics

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Collidable is a tick-scoped snapshot of one entity's collision data.
type Collidable struct {
	Entity   Entity
	Position mgl64.Vec2
	Shape    Shape
	Flags    uint32
}

// Index answers overlap queries against a snapshot of collidables.
//
// The snapshot is replaced wholesale by Refresh and is never updated as
// entities move, so every query between two refreshes sees the same world.
// One writer refreshes; any number of queries may follow. Index does no
// locking of its own.
type Index struct {
	collidables []Collidable
}

// NewIndex creates an empty index.
func NewIndex() *Index {
	return &Index{}
}

// Refresh replaces the snapshot with a copy of collidables, keeping their order.
func (ix *Index) Refresh(collidables []Collidable) {
	ix.collidables = append(ix.collidables[:0], collidables...)
}

// Len returns the number of collidables in the snapshot.
func (ix *Index) Len() int {
	return len(ix.collidables)
}

// Collidables returns the current snapshot. The slice must not be modified.
func (ix *Index) Collidables() []Collidable {
	return ix.collidables
}

// QueryStatic returns the first collidable, in snapshot order, that overlaps
// shape placed at pos and passes filter.
func (ix *Index) QueryStatic(pos mgl64.Vec2, shape Shape, filter *Filter) (Entity, bool) {
	for _, c := range ix.collidables {
		if !filter.admits(c) {
			continue
		}
		if Overlaps(pos, shape, c.Position, c.Shape) {
			return c.Entity, true
		}
	}
	return 0, false
}

// QueryAll appends every collidable that overlaps shape at pos and passes
// filter to dst, in snapshot order.
func (ix *Index) QueryAll(pos mgl64.Vec2, shape Shape, filter *Filter, dst []Entity) []Entity {
	for _, c := range ix.collidables {
		if !filter.admits(c) {
			continue
		}
		if Overlaps(pos, shape, c.Position, c.Shape) {
			dst = append(dst, c.Entity)
		}
	}
	return dst
}

// QueryMoving tests shape moved from pos by displacement.
//
// The test is discrete: the shape is placed at evenly spaced stops along the
// displacement, ending at pos+displacement, with stops no further apart than
// the shape's extent along the motion. There is no time-of-impact; a point
// shape is only tested at the destination and may tunnel through thin
// obstacles.
func (ix *Index) QueryMoving(pos, displacement mgl64.Vec2, shape Shape, filter *Filter) (Entity, bool) {
	steps := moveStops(displacement, shape)
	for i := 1; i <= steps; i++ {
		stop := pos.Add(displacement.Mul(float64(i) / float64(steps)))
		if e, ok := ix.QueryStatic(stop, shape, filter); ok {
			return e, true
		}
	}
	return 0, false
}

// moveStops returns how many stops QueryMoving tests for a displacement.
func moveStops(displacement mgl64.Vec2, shape Shape) int {
	size := shape.Size()
	steps := 1
	for axis := 0; axis < 2; axis++ {
		dist := math.Abs(displacement[axis])
		if dist == 0 || size[axis] <= 0 {
			continue
		}
		n := int(math.Ceil(dist / size[axis]))
		if n > steps {
			steps = n
		}
	}
	if steps > maxMoveStops {
		steps = maxMoveStops
	}
	return steps
}

// maxMoveStops bounds a single query when a tiny shape moves very far.
const maxMoveStops = 64
