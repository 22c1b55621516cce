package physics

import "github.com/go-gl/mathgl/mgl64"

// DefaultLookAhead is how far ahead of the per-tick displacement each axis is checked.
const DefaultLookAhead = 3.0

// movementEpsilon is the squared length below which movement input is ignored.
const movementEpsilon = 1e-12

// Resolver turns desired movement into a collision-safe translation that
// slides along obstacles.
type Resolver struct {
	LookAhead float64 // Displacement multiplier; values <= 0 fall back to DefaultLookAhead
}

// NewResolver returns a resolver using DefaultLookAhead.
func NewResolver() Resolver {
	return Resolver{LookAhead: DefaultLookAhead}
}

// Resolve returns the translation for an entity at pos that wants to move in
// the direction of input at maxSpeed for dt seconds.
//
// The displacement is split into its X and Y parts. Each part is tested
// independently from pos (the position before this tick's move), scaled by
// LookAhead, and kept only when that move hits nothing. Both axes are checked
// against the pre-move position, so a diagonal step into a corner may keep
// both parts.
func (r Resolver) Resolve(ix *Index, pos, input mgl64.Vec2, maxSpeed float64, shape Shape, filter *Filter, dt float64) mgl64.Vec2 {
	if input.LenSqr() <= movementEpsilon {
		return mgl64.Vec2{}
	}

	lookAhead := r.LookAhead
	if lookAhead <= 0 {
		lookAhead = DefaultLookAhead
	}

	d := input.Normalize().Mul(maxSpeed * dt)
	dx := mgl64.Vec2{d.X(), 0}
	dy := mgl64.Vec2{0, d.Y()}

	var translation mgl64.Vec2
	if _, hit := ix.QueryMoving(pos, dx.Mul(lookAhead), shape, filter); !hit {
		translation = translation.Add(dx)
	}
	if _, hit := ix.QueryMoving(pos, dy.Mul(lookAhead), shape, filter); !hit {
		translation = translation.Add(dy)
	}
	return translation
}

// Resolve is Resolver.Resolve with DefaultLookAhead.
func Resolve(ix *Index, pos, input mgl64.Vec2, maxSpeed float64, shape Shape, filter *Filter, dt float64) mgl64.Vec2 {
	return NewResolver().Resolve(ix, pos, input, maxSpeed, shape, filter, dt)
}
