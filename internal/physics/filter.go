package physics

// Entity identifies the owner of a collidable. Callers map their own entity
// handles onto it.
type Entity uint64

// Layer bits shared by collision and damage queries.
const (
	CollisionFlag    uint32 = 1 << 0 // Solid bodies that block movement
	DamageFlagPlayer uint32 = 1 << 1 // Hurtboxes that damage the player
	DamageFlagEnemy  uint32 = 1 << 2 // Hurtboxes that damage enemies
)

// Filter narrows which collidables count as hits.
// A nil *Filter means every collidable counts.
type Filter struct {
	ExcludeEntity Entity // Never reported, typically the querying entity itself
	Flags         uint32 // Must intersect the candidate's flags
}

// admits reports whether c passes the filter.
func (f *Filter) admits(c Collidable) bool {
	if f == nil {
		return true
	}
	if c.Entity == f.ExcludeEntity {
		return false
	}
	return f.Flags&c.Flags != 0
}
