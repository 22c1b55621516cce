package overworld

import "github.com/vovakirdan/tui-kraken/internal/config"

// cannonStats are the forward cannon's numbers at one upgrade level.
type cannonStats struct {
	Damage    float64
	Size      float64
	Speed     float64
	Knockback float64 // Fraction of the ball velocity pushed onto the target
	Pierce    bool    // Balls hit everything in their path instead of the first enemy
}

func cannonStatsFor(level int, cc config.CombatConfig) cannonStats {
	if level < 1 {
		level = 1
	}
	l := float64(level)
	s := cannonStats{
		Damage:    cc.CannonDamage * l,
		Size:      cc.CannonSize * (0.8 + l/5),
		Speed:     cc.CannonSpeed + (l-1)*cc.CannonSpeedStep,
		Knockback: cc.CannonKnockback,
		Pierce:    cc.CannonPierceLevel > 0 && level >= cc.CannonPierceLevel,
	}
	if s.Pierce {
		// A piercing ball hits many times on its way through
		s.Knockback /= 2
	}
	return s
}

// maxCannonLevel is the configured cap, at least 1.
func maxCannonLevel(cc config.CombatConfig) int {
	if cc.CannonMaxLevel < 1 {
		return 1
	}
	return cc.CannonMaxLevel
}

// upgradeCannon raises the cannon level every CannonUpgradeKills kills.
func (g *Game) upgradeCannon() {
	cc := g.cfg.Combat
	if cc.CannonUpgradeKills <= 0 || g.kills%cc.CannonUpgradeKills != 0 {
		return
	}
	if g.cannonLevel < maxCannonLevel(cc) {
		g.cannonLevel++
	}
}

// CannonLevel returns the current forward cannon level, starting at 1.
func (g *Game) CannonLevel() int {
	return g.cannonLevel
}
