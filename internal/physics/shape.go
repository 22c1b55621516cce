// Package physics provides the collision index and the axis-separated movement
// resolver used by overworld entities. It holds no references to the ECS that
// feeds it: callers hand in plain collidable records and get entity ids back.
package physics

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// ShapeKind tags the variant held by a Shape.
type ShapeKind uint8

const (
	ShapePoint ShapeKind = iota // No extent
	ShapeRect                   // Axis-aligned rectangle centered on its position
)

// String returns a human-readable name for the shape kind.
func (k ShapeKind) String() string {
	switch k {
	case ShapePoint:
		return "Point"
	case ShapeRect:
		return "Rect"
	default:
		return "Unknown"
	}
}

// Shape is an immutable collision shape. The zero value is a Point.
type Shape struct {
	kind ShapeKind
	size mgl64.Vec2 // Full width and height, only meaningful for ShapeRect
}

// Point returns a shape with no extent.
func Point() Shape {
	return Shape{kind: ShapePoint}
}

// RectShape returns an axis-aligned rectangle of the given full width and height.
// Negative dimensions are folded to their absolute value.
func RectShape(w, h float64) Shape {
	return Shape{kind: ShapeRect, size: mgl64.Vec2{math.Abs(w), math.Abs(h)}}
}

// RectSize is RectShape taking a vector.
func RectSize(size mgl64.Vec2) Shape {
	return RectShape(size.X(), size.Y())
}

// Kind returns the variant of the shape.
func (s Shape) Kind() ShapeKind {
	return s.kind
}

// Size returns the full extent of the shape (zero for points).
func (s Shape) Size() mgl64.Vec2 {
	if s.kind != ShapeRect {
		return mgl64.Vec2{}
	}
	return s.size
}

// HalfExtents returns half of the shape's size on each axis.
func (s Shape) HalfExtents() mgl64.Vec2 {
	return s.Size().Mul(0.5)
}

// Scale returns the shape with its size multiplied by f.
func (s Shape) Scale(f float64) Shape {
	if s.kind != ShapeRect {
		return s
	}
	return RectShape(s.size.X()*f, s.size.Y()*f)
}

// Overlaps reports whether shape a placed at posA intersects shape b placed at
// posB. Edges that exactly touch do not overlap.
func Overlaps(posA mgl64.Vec2, a Shape, posB mgl64.Vec2, b Shape) bool {
	switch a.kind {
	case ShapePoint:
		switch b.kind {
		case ShapePoint:
			return pointPoint(posA, posB)
		case ShapeRect:
			return pointRect(posA, posB, b.size)
		}
	case ShapeRect:
		switch b.kind {
		case ShapePoint:
			return pointRect(posB, posA, a.size)
		case ShapeRect:
			return rectRect(posA, a.size, posB, b.size)
		}
	}
	return false
}

// pointPoint is the zero-extent case of rectRect: |d| < 0 never holds.
func pointPoint(_, _ mgl64.Vec2) bool {
	return false
}

func pointRect(p, center, size mgl64.Vec2) bool {
	return math.Abs(p.X()-center.X()) < size.X()/2 &&
		math.Abs(p.Y()-center.Y()) < size.Y()/2
}

func rectRect(posA, sizeA, posB, sizeB mgl64.Vec2) bool {
	return math.Abs(posA.X()-posB.X()) < (sizeA.X()+sizeB.X())/2 &&
		math.Abs(posA.Y()-posB.Y()) < (sizeA.Y()+sizeB.Y())/2
}
