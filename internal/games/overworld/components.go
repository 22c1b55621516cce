package overworld

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/yohamta/donburi"

	"github.com/vovakirdan/tui-kraken/internal/core"
	"github.com/vovakirdan/tui-kraken/internal/physics"
)

// TransformData is an entity's world position.
type TransformData struct {
	Position   mgl64.Vec2
	LastFinite mgl64.Vec2 // Restored by the sanitize pass if Position goes non-finite
}

// CollisionData makes an entity solid for movement.
type CollisionData struct {
	Shape physics.Shape
	Flags uint32
}

// ControllerData drives an entity through the movement resolver.
type ControllerData struct {
	Movement mgl64.Vec2 // Desired direction, any length
	Speed    float64    // World units per second

	Knockback           mgl64.Vec2 // Push velocity from hits, decays over time
	KnockbackResistance float64    // Share of each push that is ignored, 0 to 1
}

// HitboxData marks where an entity can be damaged.
type HitboxData struct {
	Shape    physics.Shape
	Owner    donburi.Entity // Entity that takes the damage when HasOwner
	HasOwner bool
	Flags    uint32
}

// HurtboxData marks where an entity deals damage.
type HurtboxData struct {
	Shape       physics.Shape
	Owner       donburi.Entity // Never damaged by this hurtbox when HasOwner
	HasOwner    bool
	Flags       uint32
	Damage      float64
	AutoDespawn bool // Remove after the first hit; otherwise hit everything overlapping

	Knockback         KnockbackKind
	KnockbackVelocity mgl64.Vec2 // Push for KnockbackVelocity
	KnockbackSpeed    float64    // Push speed for KnockbackDifference
}

// KnockbackKind is how a hurtbox pushes what it hits.
type KnockbackKind uint8

const (
	KnockbackNone       KnockbackKind = iota
	KnockbackVelocity                 // Fixed push, e.g. along a cannon ball's flight
	KnockbackDifference               // Away from the hurtbox center
)

// HealthData tracks hit points.
type HealthData struct {
	Value        float64
	Max          float64
	Invulnerable float64 // Seconds left before damage applies again
	HitCooldown  float64 // Invulnerability granted by each hit
}

// TimeToLiveData despawns an entity after Seconds.
type TimeToLiveData struct {
	Seconds float64
}

// ProjectileData moves an entity in a straight line, ignoring collision.
type ProjectileData struct {
	Velocity mgl64.Vec2
}

// OctopusData is the wander state of an enemy.
type OctopusData struct {
	Level           OctopusLevel
	WanderTime      float64
	WanderDirection mgl64.Vec2
	Experience      int
}

// SpriteData is how an entity is drawn.
type SpriteData struct {
	Glyph rune
	Color core.Color
	Layer int // Higher layers draw on top
	Size  mgl64.Vec2
	Ring  bool // Draw only the outline
}

var (
	Transform  = donburi.NewComponentType[TransformData]()
	Collision  = donburi.NewComponentType[CollisionData]()
	Controller = donburi.NewComponentType[ControllerData]()
	Hitbox     = donburi.NewComponentType[HitboxData]()
	Hurtbox    = donburi.NewComponentType[HurtboxData]()
	Health     = donburi.NewComponentType[HealthData]()
	TimeToLive = donburi.NewComponentType[TimeToLiveData]()
	Projectile = donburi.NewComponentType[ProjectileData]()
	Octopus    = donburi.NewComponentType[OctopusData]()
	Sprite     = donburi.NewComponentType[SpriteData]()

	PlayerTag = donburi.NewTag().SetName("Player")
)

// Draw layers
const (
	layerTerrain = iota
	layerEffect
	layerEnemy
	layerPlayer
	layerProjectile
)

// enemyHitCooldown keeps multi-tick hurtboxes from hitting an enemy every tick.
const enemyHitCooldown = 0.15
