package physics

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

func TestOverlaps(t *testing.T) {
	tests := []struct {
		name       string
		posA, posB mgl64.Vec2
		a, b       Shape
		expected   bool
	}{
		{
			name:     "identical rects at same position",
			posA:     mgl64.Vec2{0, 0},
			posB:     mgl64.Vec2{0, 0},
			a:        RectShape(10, 10),
			b:        RectShape(10, 10),
			expected: true,
		},
		{
			name:     "partial overlap",
			posA:     mgl64.Vec2{0, 0},
			posB:     mgl64.Vec2{9, 9},
			a:        RectShape(10, 10),
			b:        RectShape(10, 10),
			expected: true,
		},
		{
			name:     "touching edges on x (no overlap)",
			posA:     mgl64.Vec2{0, 0},
			posB:     mgl64.Vec2{10, 0},
			a:        RectShape(10, 10),
			b:        RectShape(10, 10),
			expected: false,
		},
		{
			name:     "touching edges on y (no overlap)",
			posA:     mgl64.Vec2{0, 0},
			posB:     mgl64.Vec2{0, 10},
			a:        RectShape(10, 10),
			b:        RectShape(10, 10),
			expected: false,
		},
		{
			name:     "different sizes use half extents",
			posA:     mgl64.Vec2{0, 0},
			posB:     mgl64.Vec2{25.9, 0},
			a:        RectShape(32, 32),
			b:        RectShape(20, 20),
			expected: true,
		},
		{
			name:     "overlap on x only",
			posA:     mgl64.Vec2{0, 0},
			posB:     mgl64.Vec2{5, 40},
			a:        RectShape(10, 10),
			b:        RectShape(10, 10),
			expected: false,
		},
		{
			name:     "contained rect",
			posA:     mgl64.Vec2{0, 0},
			posB:     mgl64.Vec2{2, 2},
			a:        RectShape(20, 20),
			b:        RectShape(4, 4),
			expected: true,
		},
		{
			name:     "point inside rect",
			posA:     mgl64.Vec2{3, -3},
			posB:     mgl64.Vec2{0, 0},
			a:        Point(),
			b:        RectShape(10, 10),
			expected: true,
		},
		{
			name:     "point on rect edge",
			posA:     mgl64.Vec2{5, 0},
			posB:     mgl64.Vec2{0, 0},
			a:        Point(),
			b:        RectShape(10, 10),
			expected: false,
		},
		{
			name:     "points never overlap",
			posA:     mgl64.Vec2{1, 1},
			posB:     mgl64.Vec2{1, 1},
			a:        Point(),
			b:        Point(),
			expected: false,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			result := Overlaps(tc.posA, tc.a, tc.posB, tc.b)
			if result != tc.expected {
				t.Errorf("Overlaps() = %v, expected %v", result, tc.expected)
			}
			// Also test symmetry
			resultReverse := Overlaps(tc.posB, tc.b, tc.posA, tc.a)
			if resultReverse != tc.expected {
				t.Errorf("Overlaps() (reversed) = %v, expected %v", resultReverse, tc.expected)
			}
		})
	}
}

func TestOverlapBoundaryIsExclusive(t *testing.T) {
	a := RectShape(16, 8)
	origin := mgl64.Vec2{100, 100}

	// Sum of half extents with an identical rect is the full size.
	if !Overlaps(origin, a, origin.Add(mgl64.Vec2{15.999, 0}), a) {
		t.Error("rects just inside the x boundary should overlap")
	}
	if Overlaps(origin, a, origin.Add(mgl64.Vec2{16, 0}), a) {
		t.Error("rects exactly at the x boundary should not overlap")
	}
	if Overlaps(origin, a, origin.Add(mgl64.Vec2{0, -8}), a) {
		t.Error("rects exactly at the y boundary should not overlap")
	}
	if Overlaps(origin, a, origin.Add(mgl64.Vec2{0, 30}), a) {
		t.Error("rects past the y boundary should not overlap")
	}
}

func TestShapeAccessors(t *testing.T) {
	p := Point()
	if p.Kind() != ShapePoint {
		t.Errorf("Point().Kind() = %v, expected Point", p.Kind())
	}
	if p.Size() != (mgl64.Vec2{}) {
		t.Errorf("Point().Size() = %v, expected zero", p.Size())
	}

	r := RectShape(-6, 4)
	if r.Kind() != ShapeRect {
		t.Errorf("RectShape().Kind() = %v, expected Rect", r.Kind())
	}
	if r.Size() != (mgl64.Vec2{6, 4}) {
		t.Errorf("RectShape(-6, 4).Size() = %v, expected (6, 4)", r.Size())
	}
	if r.HalfExtents() != (mgl64.Vec2{3, 2}) {
		t.Errorf("HalfExtents() = %v, expected (3, 2)", r.HalfExtents())
	}
	if r.Scale(1.5).Size() != (mgl64.Vec2{9, 6}) {
		t.Errorf("Scale(1.5).Size() = %v, expected (9, 6)", r.Scale(1.5).Size())
	}
	if RectSize(mgl64.Vec2{2, 3}) != RectShape(2, 3) {
		t.Error("RectSize and RectShape should build equal shapes")
	}
	var zero Shape
	if zero != Point() {
		t.Error("zero Shape should be a Point")
	}
}
