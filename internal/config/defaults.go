package config

import (
	_ "embed"
)

//go:embed defaults/overworld.yaml
var defaultOverworldYAML []byte

// DefaultOverworldConfig returns the built-in overworld configuration.
// It mirrors defaults/overworld.yaml and is used if the embedded file fails to parse.
func DefaultOverworldConfig() OverworldConfig {
	return OverworldConfig{
		Physics: PhysicsConfig{
			LookAhead:      3,
			KnockbackDecay: 8,
		},
		World: WorldConfig{
			Width:      2400,
			Height:     1600,
			CellWidth:  12,
			CellHeight: 24,
			Rocks:      18,
			RockSize:   48,
			WallSize:   40,
		},
		Player: PlayerConfig{
			Speed:          200,
			Size:           32,
			Health:         5,
			Invulnerable:   1.0,
			InputHoldTicks: 9,

			KnockbackResistance: 0.2,
		},
		Octopus: OctopusConfig{
			Speed:        120,
			Size:         40,
			HitboxSize:   60,
			HurtboxSize:  88,
			Damage:       1,
			AggroRadius:  420,
			WanderChance: 0.5,
			WanderTime:   1.5,
			Levels: OctopusLevels{
				Easy: OctopusLevelConfig{
					Scale:      0.75,
					Health:     2,
					SpeedScale: 1,
					Experience: 10,
					Weight:     6,
				},
				Medium: OctopusLevelConfig{
					Scale:               1,
					Health:              4,
					SpeedScale:          1.6,
					KnockbackResistance: 0.6,
					Experience:          25,
					MinDifficulty:       0.25,
					Weight:              3,
				},
				Hard: OctopusLevelConfig{
					Scale:               1.2,
					Health:              16,
					SpeedScale:          1,
					KnockbackResistance: 0.9,
					Experience:          45,
					MinDifficulty:       0.6,
					Weight:              1,
				},
			},
		},
		Combat: CombatConfig{
			CannonSpeed:       700,
			CannonSize:        14,
			CannonDamage:      1,
			CannonLifetime:    1.0,
			CannonCooldown:    0.25,
			CannonKnockback:   0.3,

			CannonSpeedStep:    60,
			CannonMaxLevel:     5,
			CannonUpgradeKills: 8,
			CannonPierceLevel:  5,

			ShockwaveSize:         400,
			ShockwaveDamage:       2,
			ShockwaveLifetime:     0.05,
			ShockwaveRingLifetime: 0.75,
			ShockwaveCooldown:     4.0,
			ShockwaveKnockback:    600,
		},
		Spawner: SpawnerConfig{
			Interval:    3.0,
			MinInterval: 0.8,
			MaxAlive:    24,
			Attempts:    12,
			SafeRadius:  300,
			Initial:     4,
		},
		Difficulty: DifficultyConfig{
			Enabled:      true,
			InitialLevel: 0.0,
			Progression: ProgressionConfig{
				Type:  "time",
				MaxAt: 18000, // 5 minutes at 60fps
			},
			Scaling: ScalingConfig{
				SpeedMultiplier: 0.75,
				SpawnReduction:  0.6,
			},
		},
	}
}

// GetDefaultYAML returns the embedded default YAML.
func GetDefaultYAML() []byte {
	return defaultOverworldYAML
}
