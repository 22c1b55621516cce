package overworld

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/yohamta/donburi"

	"github.com/vovakirdan/tui-kraken/internal/core"
	"github.com/vovakirdan/tui-kraken/internal/physics"
)

// spawnPlayer creates the player's boat.
func (g *Game) spawnPlayer(pos mgl64.Vec2) donburi.Entity {
	pc := g.cfg.Player
	e := g.world.Create(Transform, Collision, Controller, Hitbox, Health, Sprite, PlayerTag)
	entry := g.world.Entry(e)

	shape := physics.RectShape(pc.Size, pc.Size)
	Transform.SetValue(entry, TransformData{Position: pos, LastFinite: pos})
	Collision.SetValue(entry, CollisionData{Shape: shape, Flags: physics.CollisionFlag})
	Controller.SetValue(entry, ControllerData{Speed: pc.Speed, KnockbackResistance: pc.KnockbackResistance})
	Hitbox.SetValue(entry, HitboxData{Shape: shape, Flags: physics.DamageFlagPlayer})
	Health.SetValue(entry, HealthData{Value: pc.Health, Max: pc.Health, HitCooldown: pc.Invulnerable})
	Sprite.SetValue(entry, SpriteData{Glyph: '◆', Color: core.ColorBrightCyan, Layer: layerPlayer, Size: shape.Size()})
	return e
}

// spawnSolid creates an immovable obstacle.
func (g *Game) spawnSolid(pos, size mgl64.Vec2, glyph rune) donburi.Entity {
	e := g.world.Create(Transform, Collision, Sprite)
	entry := g.world.Entry(e)

	Transform.SetValue(entry, TransformData{Position: pos, LastFinite: pos})
	Collision.SetValue(entry, CollisionData{Shape: physics.RectSize(size), Flags: physics.CollisionFlag})
	Sprite.SetValue(entry, SpriteData{Glyph: glyph, Color: core.ColorGray, Layer: layerTerrain, Size: size})
	return e
}

// spawnWalls encloses the arena [0, Width] x [0, Height].
func (g *Game) spawnWalls() {
	w, h, t := g.cfg.World.Width, g.cfg.World.Height, g.cfg.World.WallSize
	if t <= 0 {
		t = 1
	}
	g.spawnSolid(mgl64.Vec2{w / 2, -t / 2}, mgl64.Vec2{w + 2*t, t}, '█')
	g.spawnSolid(mgl64.Vec2{w / 2, h + t/2}, mgl64.Vec2{w + 2*t, t}, '█')
	g.spawnSolid(mgl64.Vec2{-t / 2, h / 2}, mgl64.Vec2{t, h + 2*t}, '█')
	g.spawnSolid(mgl64.Vec2{w + t/2, h / 2}, mgl64.Vec2{t, h + 2*t}, '█')
}

// spawnRocks scatters rocks away from the player start, skipping spots that
// already hold something solid.
func (g *Game) spawnRocks(start mgl64.Vec2) {
	size := g.cfg.World.RockSize
	if size <= 0 {
		return
	}
	shape := physics.RectShape(size*2, size*2) // Keep a channel between rocks
	for placed, tries := 0, 0; placed < g.cfg.World.Rocks && tries < g.cfg.World.Rocks*10; tries++ {
		pos := g.randomArenaPoint(size)
		if pos.Sub(start).Len() < g.cfg.Spawner.SafeRadius {
			continue
		}
		g.refreshSolids()
		if _, hit := g.solids.QueryStatic(pos, shape, nil); hit {
			continue
		}
		g.spawnSolid(pos, mgl64.Vec2{size, size}, '▓')
		placed++
	}
}

// spawnOctopus places an enemy of the given level at pos unless the spot is
// occupied. The spot is tested with the collision box scaled by 1.5 against
// every solid.
func (g *Game) spawnOctopus(pos mgl64.Vec2, level OctopusLevel) (donburi.Entity, bool) {
	oc := g.cfg.Octopus
	stats := level.stats(oc)
	shape := physics.RectShape(oc.Size, oc.Size)

	g.refreshSolids()
	if _, hit := g.solids.QueryStatic(pos, shape.Scale(1.5), nil); hit {
		return 0, false
	}

	e := g.world.Create(Transform, Collision, Controller, Hitbox, Hurtbox, Health, Octopus, Sprite)
	entry := g.world.Entry(e)

	Transform.SetValue(entry, TransformData{Position: pos, LastFinite: pos})
	Collision.SetValue(entry, CollisionData{Shape: shape, Flags: physics.CollisionFlag})
	Controller.SetValue(entry, ControllerData{
		Speed:               oc.Speed * stats.SpeedScale,
		KnockbackResistance: stats.KnockbackResistance,
	})
	Hitbox.SetValue(entry, HitboxData{
		Shape: physics.RectShape(oc.HitboxSize, oc.HitboxSize).Scale(stats.Scale),
		Flags: physics.DamageFlagEnemy,
	})
	Hurtbox.SetValue(entry, HurtboxData{
		Shape:  physics.RectShape(oc.HurtboxSize, oc.HurtboxSize).Scale(stats.Scale),
		Flags:  physics.DamageFlagPlayer,
		Damage: oc.Damage,
	})
	Health.SetValue(entry, HealthData{Value: stats.Health, Max: stats.Health, HitCooldown: enemyHitCooldown})
	Octopus.SetValue(entry, OctopusData{Level: level, Experience: stats.Experience})
	Sprite.SetValue(entry, SpriteData{Glyph: '@', Color: level.color(), Layer: layerEnemy, Size: shape.Scale(stats.Scale).Size()})
	return e, true
}

// spawnCannonBall fires a projectile owned by owner with the stats of the
// current cannon level. Below the pierce level a ball is spent on its first hit.
func (g *Game) spawnCannonBall(owner donburi.Entity, pos, direction mgl64.Vec2) donburi.Entity {
	cc := g.cfg.Combat
	stats := cannonStatsFor(g.cannonLevel, cc)
	e := g.world.Create(Transform, Hurtbox, Projectile, TimeToLive, Sprite)
	entry := g.world.Entry(e)

	shape := physics.RectShape(stats.Size, stats.Size)
	velocity := direction.Mul(stats.Speed)
	Transform.SetValue(entry, TransformData{Position: pos, LastFinite: pos})
	Hurtbox.SetValue(entry, HurtboxData{
		Shape:             shape,
		Owner:             owner,
		HasOwner:          true,
		Flags:             physics.DamageFlagEnemy,
		Damage:            stats.Damage,
		AutoDespawn:       !stats.Pierce,
		Knockback:         KnockbackVelocity,
		KnockbackVelocity: velocity.Mul(stats.Knockback),
	})
	Projectile.SetValue(entry, ProjectileData{Velocity: velocity})
	TimeToLive.SetValue(entry, TimeToLiveData{Seconds: cc.CannonLifetime})
	Sprite.SetValue(entry, SpriteData{Glyph: '•', Color: core.ColorBrightWhite, Layer: layerProjectile, Size: shape.Size()})
	return e
}

// spawnShockwave creates a multi-hit area hurtbox that pushes enemies away
// from pos, and a separate ring that stays on screen after the hurtbox is gone.
// It returns the hurtbox entity.
func (g *Game) spawnShockwave(owner donburi.Entity, pos mgl64.Vec2) donburi.Entity {
	cc := g.cfg.Combat
	shape := physics.RectShape(cc.ShockwaveSize, cc.ShockwaveSize)

	ring := g.world.Entry(g.world.Create(Transform, TimeToLive, Sprite))
	Transform.SetValue(ring, TransformData{Position: pos, LastFinite: pos})
	TimeToLive.SetValue(ring, TimeToLiveData{Seconds: cc.ShockwaveRingLifetime})
	Sprite.SetValue(ring, SpriteData{Glyph: '░', Color: core.ColorBrightBlue, Layer: layerEffect, Size: shape.Size(), Ring: true})

	e := g.world.Create(Transform, Hurtbox, TimeToLive)
	entry := g.world.Entry(e)
	Transform.SetValue(entry, TransformData{Position: pos, LastFinite: pos})
	Hurtbox.SetValue(entry, HurtboxData{
		Shape:          shape,
		Owner:          owner,
		HasOwner:       true,
		Flags:          physics.DamageFlagEnemy,
		Damage:         cc.ShockwaveDamage,
		Knockback:      KnockbackDifference,
		KnockbackSpeed: cc.ShockwaveKnockback,
	})
	TimeToLive.SetValue(entry, TimeToLiveData{Seconds: cc.ShockwaveLifetime})
	return e
}
