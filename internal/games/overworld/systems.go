package overworld

import (
	"math"
	"sort"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/filter"

	"github.com/vovakirdan/tui-kraken/internal/core"
	"github.com/vovakirdan/tui-kraken/internal/physics"
)

// queries are per game: a donburi query caches archetype matches per world
// without locking, and SSH sessions run games concurrently.
type queries struct {
	solids      *donburi.Query
	controllers *donburi.Query
	octopuses   *donburi.Query
	projectiles *donburi.Query
	hitboxes    *donburi.Query
	hurtboxes   *donburi.Query
	health      *donburi.Query
	ttl         *donburi.Query
	transforms  *donburi.Query
	sprites     *donburi.Query
}

func newQueries() queries {
	return queries{
		solids:      donburi.NewQuery(filter.Contains(Transform, Collision)),
		controllers: donburi.NewQuery(filter.Contains(Transform, Collision, Controller)),
		octopuses:   donburi.NewQuery(filter.Contains(Transform, Controller, Octopus)),
		projectiles: donburi.NewQuery(filter.Contains(Transform, Projectile)),
		hitboxes:    donburi.NewQuery(filter.Contains(Transform, Hitbox)),
		hurtboxes:   donburi.NewQuery(filter.Contains(Transform, Hurtbox)),
		health:      donburi.NewQuery(filter.Contains(Health)),
		ttl:         donburi.NewQuery(filter.Contains(TimeToLive)),
		transforms:  donburi.NewQuery(filter.Contains(Transform)),
		sprites:     donburi.NewQuery(filter.Contains(Transform, Sprite)),
	}
}

// entries returns the matches of q in entity order so that every system,
// and every index snapshot, sees entities in the same order on every run.
func (g *Game) entries(q *donburi.Query) []*donburi.Entry {
	var out []*donburi.Entry
	q.Each(g.world, func(entry *donburi.Entry) {
		out = append(out, entry)
	})
	sort.Slice(out, func(i, j int) bool {
		return out[i].Entity().Id() < out[j].Entity().Id()
	})
	return out
}

// refreshSolids snapshots every collision box into the solids index.
func (g *Game) refreshSolids() {
	g.collidables = g.collidables[:0]
	for _, entry := range g.entries(g.queries.solids) {
		col := Collision.Get(entry)
		g.collidables = append(g.collidables, physics.Collidable{
			Entity:   physics.Entity(entry.Entity()),
			Position: Transform.Get(entry).Position,
			Shape:    col.Shape,
			Flags:    col.Flags,
		})
	}
	g.solids.Refresh(g.collidables)
}

// refreshHitboxes snapshots every hitbox into the damage index. A hitbox is
// recorded under its owner so damage lands on the owning entity.
func (g *Game) refreshHitboxes() {
	g.collidables = g.collidables[:0]
	for _, entry := range g.entries(g.queries.hitboxes) {
		hb := Hitbox.Get(entry)
		target := entry.Entity()
		if hb.HasOwner {
			target = hb.Owner
		}
		g.collidables = append(g.collidables, physics.Collidable{
			Entity:   physics.Entity(target),
			Position: Transform.Get(entry).Position,
			Shape:    hb.Shape,
			Flags:    hb.Flags,
		})
	}
	g.hitboxes.Refresh(g.collidables)
}

// playerInputSystem steers the player and fires weapons.
func (g *Game) playerInputSystem(in core.InputFrame, dt float64) {
	g.cannonCooldown = math.Max(0, g.cannonCooldown-dt)
	g.shockwaveCooldown = math.Max(0, g.shockwaveCooldown-dt)

	if !g.world.Valid(g.player) {
		return
	}
	entry := g.world.Entry(g.player)

	dx, dy := in.Direction()
	if dx != 0 || dy != 0 {
		g.heldDirection = mgl64.Vec2{float64(dx), float64(dy)}
		g.heldTicks = g.cfg.Player.InputHoldTicks
		if g.heldTicks < 1 {
			g.heldTicks = 1
		}
		g.facing = g.heldDirection.Normalize()
	}

	ctrl := Controller.Get(entry)
	if g.heldTicks > 0 {
		ctrl.Movement = g.heldDirection
		g.heldTicks--
	} else {
		ctrl.Movement = mgl64.Vec2{}
	}

	pos := Transform.Get(entry).Position
	if in.Has(core.ActionFire) && g.cannonCooldown <= 0 {
		size := cannonStatsFor(g.cannonLevel, g.cfg.Combat).Size
		muzzle := pos.Add(g.facing.Mul(g.cfg.Player.Size/2 + size))
		g.spawnCannonBall(g.player, muzzle, g.facing)
		g.cannonCooldown = g.cfg.Combat.CannonCooldown
	}
	if in.Has(core.ActionSpecial) && g.shockwaveCooldown <= 0 {
		g.spawnShockwave(g.player, pos)
		g.shockwaveCooldown = g.cfg.Combat.ShockwaveCooldown
	}
}

// octopusSystem chases the player when close and wanders otherwise.
func (g *Game) octopusSystem(dt float64) {
	oc := g.cfg.Octopus
	speed := g.difficulty.Speed(oc.Speed, g.score, g.ticks)
	target := g.PlayerPosition()
	chase := g.world.Valid(g.player) && !g.gameOver

	for _, entry := range g.entries(g.queries.octopuses) {
		pos := Transform.Get(entry).Position
		ctrl := Controller.Get(entry)
		oct := Octopus.Get(entry)
		ctrl.Speed = speed * oct.Level.stats(oc).SpeedScale

		if toPlayer := target.Sub(pos); chase && toPlayer.Len() <= oc.AggroRadius {
			ctrl.Movement = toPlayer
			oct.WanderTime = 0
			continue
		}

		oct.WanderTime -= dt
		if oct.WanderTime <= 0 {
			oct.WanderTime = 0
			oct.WanderDirection = mgl64.Vec2{}
			if g.rng.Float64() < oc.WanderChance*dt {
				angle := g.rng.Float64() * 2 * math.Pi
				oct.WanderDirection = mgl64.Vec2{math.Cos(angle), math.Sin(angle)}
				oct.WanderTime = oc.WanderTime
			}
		}
		ctrl.Movement = oct.WanderDirection
	}
}

// characterControllerSystem moves every controller entity through the
// resolver. The index is refreshed before each entity so later movers see
// where earlier ones ended up.
//
// Knockback is resolved as a second move at the knockback speed, so a push
// slides along walls the same way steering does.
func (g *Game) characterControllerSystem(dt float64) {
	decay := math.Exp(-g.cfg.Physics.KnockbackDecay * dt)
	for _, entry := range g.entries(g.queries.controllers) {
		g.refreshSolids()

		tr := Transform.Get(entry)
		ctrl := Controller.Get(entry)
		col := Collision.Get(entry)
		f := &physics.Filter{
			ExcludeEntity: physics.Entity(entry.Entity()),
			Flags:         physics.CollisionFlag,
		}
		step := g.resolver.Resolve(g.solids, tr.Position, ctrl.Movement, ctrl.Speed, col.Shape, f, dt)
		tr.Position = tr.Position.Add(step)

		if ctrl.Knockback.LenSqr() < minKnockbackSqr {
			ctrl.Knockback = mgl64.Vec2{}
			continue
		}
		push := g.resolver.Resolve(g.solids, tr.Position, ctrl.Knockback, ctrl.Knockback.Len(), col.Shape, f, dt)
		tr.Position = tr.Position.Add(push)
		ctrl.Knockback = ctrl.Knockback.Mul(decay)
	}
}

// minKnockbackSqr is the squared push speed below which knockback stops.
const minKnockbackSqr = 1.0

// projectileSystem moves projectiles in a straight line. They pass through
// solids; their hurtbox does the work.
func (g *Game) projectileSystem(dt float64) {
	for _, entry := range g.entries(g.queries.projectiles) {
		tr := Transform.Get(entry)
		tr.Position = tr.Position.Add(Projectile.Get(entry).Velocity.Mul(dt))
	}
}

// damageSystem applies hurtbox damage to the hitboxes they overlap.
func (g *Game) damageSystem(dt float64) {
	for _, entry := range g.entries(g.queries.health) {
		h := Health.Get(entry)
		h.Invulnerable = math.Max(0, h.Invulnerable-dt)
	}

	g.refreshHitboxes()

	var spent []donburi.Entity
	for _, entry := range g.entries(g.queries.hurtboxes) {
		hb := Hurtbox.Get(entry)
		pos := Transform.Get(entry).Position
		source := entry.Entity()
		if hb.HasOwner {
			source = hb.Owner
		}
		f := &physics.Filter{ExcludeEntity: physics.Entity(source), Flags: hb.Flags}

		if hb.AutoDespawn {
			if target, ok := g.hitboxes.QueryStatic(pos, hb.Shape, f); ok {
				if g.applyDamage(donburi.Entity(target), hb.Damage) {
					g.applyKnockback(donburi.Entity(target), pos, hb)
				}
				spent = append(spent, entry.Entity())
			}
			continue
		}

		g.hits = g.hitboxes.QueryAll(pos, hb.Shape, f, g.hits[:0])
		for _, target := range g.hits {
			if g.applyDamage(donburi.Entity(target), hb.Damage) {
				g.applyKnockback(donburi.Entity(target), pos, hb)
			}
		}
	}

	for _, e := range spent {
		g.world.Remove(e)
	}
}

// applyDamage hurts target unless it is still invulnerable from a recent hit.
// It reports whether the hit landed.
func (g *Game) applyDamage(target donburi.Entity, amount float64) bool {
	if !g.world.Valid(target) {
		return false
	}
	entry := g.world.Entry(target)
	if !entry.HasComponent(Health) {
		return false
	}
	h := Health.Get(entry)
	if h.Invulnerable > 0 || h.Value <= 0 {
		return false
	}
	h.Value -= amount
	h.Invulnerable = h.HitCooldown
	return true
}

// applyKnockback adds the push of hurtbox hb, centered at from, to target's
// controller, reduced by the target's knockback resistance.
func (g *Game) applyKnockback(target donburi.Entity, from mgl64.Vec2, hb *HurtboxData) {
	if hb.Knockback == KnockbackNone || !g.world.Valid(target) {
		return
	}
	entry := g.world.Entry(target)
	if !entry.HasComponent(Controller) || !entry.HasComponent(Transform) {
		return
	}

	var push mgl64.Vec2
	switch hb.Knockback {
	case KnockbackVelocity:
		push = hb.KnockbackVelocity
	case KnockbackDifference:
		away := Transform.Get(entry).Position.Sub(from)
		if away.LenSqr() == 0 {
			return
		}
		push = away.Normalize().Mul(hb.KnockbackSpeed)
	}

	ctrl := Controller.Get(entry)
	keep := 1 - math.Max(0, math.Min(1, ctrl.KnockbackResistance))
	ctrl.Knockback = ctrl.Knockback.Add(push.Mul(keep))
}

// deathSystem removes dead enemies and ends the run when the player dies.
func (g *Game) deathSystem() {
	var dead []donburi.Entity
	for _, entry := range g.entries(g.queries.health) {
		if Health.Get(entry).Value > 0 {
			continue
		}
		if entry.HasComponent(PlayerTag) {
			g.gameOver = true
			continue
		}
		if entry.HasComponent(Octopus) {
			g.score += Octopus.Get(entry).Experience
			g.kills++
			g.upgradeCannon()
		}
		dead = append(dead, entry.Entity())
	}
	for _, e := range dead {
		g.world.Remove(e)
	}
}

// timeToLiveSystem removes expired entities.
func (g *Game) timeToLiveSystem(dt float64) {
	var expired []donburi.Entity
	for _, entry := range g.entries(g.queries.ttl) {
		ttl := TimeToLive.Get(entry)
		ttl.Seconds -= dt
		if ttl.Seconds <= 0 {
			expired = append(expired, entry.Entity())
		}
	}
	for _, e := range expired {
		g.world.Remove(e)
	}
}

// spawnerSystem brings in octopuses on a timer that shortens with difficulty.
func (g *Game) spawnerSystem(dt float64) {
	sc := g.cfg.Spawner
	if g.Octopuses() >= sc.MaxAlive {
		return
	}
	g.spawnTimer -= dt
	if g.spawnTimer > 0 {
		return
	}
	g.trySpawnOctopus()
	g.spawnTimer = g.difficulty.SpawnInterval(sc.Interval, sc.MinInterval, g.score, g.ticks)
}

// trySpawnOctopus tries a few random spots away from the player.
func (g *Game) trySpawnOctopus() bool {
	sc := g.cfg.Spawner
	player := g.PlayerPosition()
	level := g.pickOctopusLevel()
	for i := 0; i < sc.Attempts; i++ {
		pos := g.randomArenaPoint(g.cfg.Octopus.Size)
		if pos.Sub(player).Len() < sc.SafeRadius {
			continue
		}
		if _, ok := g.spawnOctopus(pos, level); ok {
			return true
		}
	}
	return false
}

// sanitizeSystem puts back entities whose position went non-finite.
func (g *Game) sanitizeSystem() {
	for _, entry := range g.entries(g.queries.transforms) {
		tr := Transform.Get(entry)
		if finite(tr.Position) {
			tr.LastFinite = tr.Position
			continue
		}
		if finite(tr.LastFinite) {
			tr.Position = tr.LastFinite
		} else {
			tr.Position = mgl64.Vec2{}
			tr.LastFinite = tr.Position
		}
	}
}

func (g *Game) updateCamera() {
	if g.world.Valid(g.player) {
		g.camera = Transform.Get(g.world.Entry(g.player)).Position
	}
}

func finite(v mgl64.Vec2) bool {
	for _, c := range v {
		if math.IsNaN(c) || math.IsInf(c, 0) {
			return false
		}
	}
	return true
}
