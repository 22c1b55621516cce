package overworld

import (
	"github.com/vovakirdan/tui-kraken/internal/config"
	"github.com/vovakirdan/tui-kraken/internal/core"
)

// OctopusLevel is the kind of an octopus. Tougher kinds are bigger, shrug off
// more knockback and are worth more.
type OctopusLevel uint8

const (
	OctopusEasy OctopusLevel = iota
	OctopusMedium
	OctopusHard
)

var octopusLevels = [...]OctopusLevel{OctopusEasy, OctopusMedium, OctopusHard}

func (l OctopusLevel) String() string {
	switch l {
	case OctopusEasy:
		return "easy"
	case OctopusMedium:
		return "medium"
	case OctopusHard:
		return "hard"
	default:
		return "unknown"
	}
}

// stats returns the configured stats of l. Unknown levels fall back to easy.
func (l OctopusLevel) stats(oc config.OctopusConfig) config.OctopusLevelConfig {
	var s config.OctopusLevelConfig
	switch l {
	case OctopusMedium:
		s = oc.Levels.Medium
	case OctopusHard:
		s = oc.Levels.Hard
	default:
		s = oc.Levels.Easy
	}
	if s.Scale <= 0 {
		s.Scale = 1
	}
	if s.SpeedScale <= 0 {
		s.SpeedScale = 1
	}
	return s
}

func (l OctopusLevel) color() core.Color {
	switch l {
	case OctopusMedium:
		return core.ColorBrightMagenta
	case OctopusHard:
		return core.ColorRed
	default:
		return core.ColorMagenta
	}
}

// pickOctopusLevel draws a kind among those unlocked at the current
// difficulty level, weighted by their spawn weights.
func (g *Game) pickOctopusLevel() OctopusLevel {
	level := g.difficulty.Level(g.score, g.ticks)

	var total float64
	for _, l := range octopusLevels {
		if s := l.stats(g.cfg.Octopus); s.Weight > 0 && level >= s.MinDifficulty {
			total += s.Weight
		}
	}
	if total <= 0 {
		return OctopusEasy
	}

	r := g.rng.Float64() * total
	for _, l := range octopusLevels {
		s := l.stats(g.cfg.Octopus)
		if s.Weight <= 0 || level < s.MinDifficulty {
			continue
		}
		if r < s.Weight {
			return l
		}
		r -= s.Weight
	}
	return OctopusEasy
}
