// Package config provides YAML-based game configuration loading and
// difficulty management for the overworld.
package config

// OverworldConfig contains all tunables for the overworld game.
type OverworldConfig struct {
	Physics    PhysicsConfig    `yaml:"physics"`
	World      WorldConfig      `yaml:"world"`
	Player     PlayerConfig     `yaml:"player"`
	Octopus    OctopusConfig    `yaml:"octopus"`
	Combat     CombatConfig     `yaml:"combat"`
	Spawner    SpawnerConfig    `yaml:"spawner"`
	Difficulty DifficultyConfig `yaml:"difficulty"`
}

// PhysicsConfig tunes the movement resolver.
type PhysicsConfig struct {
	LookAhead      float64 `yaml:"look_ahead"`      // Look-ahead multiplier per axis
	KnockbackDecay float64 `yaml:"knockback_decay"` // Per second; knockback speed falls by e^-decay*t
}

// WorldConfig defines the arena and how it maps onto terminal cells.
type WorldConfig struct {
	Width      float64 `yaml:"width"`       // Arena width in world units
	Height     float64 `yaml:"height"`      // Arena height in world units
	CellWidth  float64 `yaml:"cell_width"`  // World units per terminal column
	CellHeight float64 `yaml:"cell_height"` // World units per terminal row
	Rocks      int     `yaml:"rocks"`       // Static obstacles scattered at reset
	RockSize   float64 `yaml:"rock_size"`   // Edge length of a rock
	WallSize   float64 `yaml:"wall_size"`   // Thickness of the arena walls
}

// PlayerConfig defines the player's boat.
type PlayerConfig struct {
	Speed          float64 `yaml:"speed"`
	Size           float64 `yaml:"size"`
	Health         float64 `yaml:"health"`
	Invulnerable   float64 `yaml:"invulnerable"`     // Seconds of immunity after a hit
	InputHoldTicks int     `yaml:"input_hold_ticks"` // Ticks a key press keeps steering

	KnockbackResistance float64 `yaml:"knockback_resistance"` // 0 takes full knockback, 1 none
}

// OctopusConfig defines enemy stats and behaviour.
type OctopusConfig struct {
	Speed        float64 `yaml:"speed"`
	Size         float64 `yaml:"size"`        // Collision box edge
	HitboxSize   float64 `yaml:"hitbox_size"` // Box that receives damage
	HurtboxSize  float64 `yaml:"hurtbox_size"`
	Damage       float64 `yaml:"damage"`
	AggroRadius  float64 `yaml:"aggro_radius"`
	WanderChance float64 `yaml:"wander_chance"` // Chance per second to pick a new direction
	WanderTime   float64 `yaml:"wander_time"`   // Seconds a wander lasts

	Levels OctopusLevels `yaml:"levels"`
}

// OctopusLevels holds the stats of each octopus kind.
type OctopusLevels struct {
	Easy   OctopusLevelConfig `yaml:"easy"`
	Medium OctopusLevelConfig `yaml:"medium"`
	Hard   OctopusLevelConfig `yaml:"hard"`
}

// OctopusLevelConfig is one octopus kind. The collision box is shared by all
// kinds; Scale only grows the hitbox, the hurtbox and the sprite.
type OctopusLevelConfig struct {
	Scale               float64 `yaml:"scale"`
	Health              float64 `yaml:"health"`
	SpeedScale          float64 `yaml:"speed_scale"` // Multiplies octopus.speed
	KnockbackResistance float64 `yaml:"knockback_resistance"`
	Experience          int     `yaml:"experience"`     // Score for sinking one
	MinDifficulty       float64 `yaml:"min_difficulty"` // Spawned once the difficulty level reaches this
	Weight              float64 `yaml:"weight"`         // Relative spawn chance among unlocked kinds
}

// CombatConfig defines the player's weapons.
type CombatConfig struct {
	CannonSpeed       float64 `yaml:"cannon_speed"`
	CannonSize        float64 `yaml:"cannon_size"`
	CannonDamage      float64 `yaml:"cannon_damage"`
	CannonLifetime    float64 `yaml:"cannon_lifetime"`
	CannonCooldown    float64 `yaml:"cannon_cooldown"`
	CannonKnockback   float64 `yaml:"cannon_knockback"` // Fraction of the ball's velocity given to its target

	// Cannon upgrades. Level n deals n times cannon_damage, fires balls
	// 0.8+n/5 times cannon_size and (n-1)*cannon_speed_step faster.
	CannonSpeedStep    float64 `yaml:"cannon_speed_step"`
	CannonMaxLevel     int     `yaml:"cannon_max_level"`
	CannonUpgradeKills int     `yaml:"cannon_upgrade_kills"` // Kills per level; 0 disables upgrades
	CannonPierceLevel  int     `yaml:"cannon_pierce_level"`  // From this level balls pass through enemies

	ShockwaveSize         float64 `yaml:"shockwave_size"`
	ShockwaveDamage       float64 `yaml:"shockwave_damage"`
	ShockwaveLifetime     float64 `yaml:"shockwave_lifetime"`      // Seconds the hurtbox is live
	ShockwaveRingLifetime float64 `yaml:"shockwave_ring_lifetime"` // Seconds the ring is drawn
	ShockwaveCooldown     float64 `yaml:"shockwave_cooldown"`
	ShockwaveKnockback    float64 `yaml:"shockwave_knockback"` // Push speed away from the center
}

// SpawnerConfig defines how octopuses enter the arena.
type SpawnerConfig struct {
	Interval    float64 `yaml:"interval"`     // Seconds between spawns at lowest difficulty
	MinInterval float64 `yaml:"min_interval"` // Floor at highest difficulty
	MaxAlive    int     `yaml:"max_alive"`
	Attempts    int     `yaml:"attempts"`    // Random positions tried per spawn
	SafeRadius  float64 `yaml:"safe_radius"` // Minimum distance from the player
	Initial     int     `yaml:"initial"`     // Octopuses spawned at reset
}

// DifficultyConfig defines the difficulty progression system.
type DifficultyConfig struct {
	Enabled      bool              `yaml:"enabled"`
	InitialLevel float64           `yaml:"initial_level"` // 0.0 = easy, 1.0 = hard
	Progression  ProgressionConfig `yaml:"progression"`
	Scaling      ScalingConfig     `yaml:"scaling"`
}

// ProgressionConfig defines how difficulty increases over time.
type ProgressionConfig struct {
	Type  string `yaml:"type"`   // "score", "time", or "none"
	MaxAt int    `yaml:"max_at"` // Score/ticks at which max difficulty is reached
}

// ScalingConfig defines the magnitude of difficulty changes.
type ScalingConfig struct {
	SpeedMultiplier float64 `yaml:"speed_multiplier"` // Added to enemy speed at max difficulty
	SpawnReduction  float64 `yaml:"spawn_reduction"`  // Fraction of the spawn interval removed at max difficulty
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// InitialLevelForPreset returns the initial_level for a difficulty preset.
func InitialLevelForPreset(preset DifficultyPreset) float64 {
	switch preset {
	case DifficultyEasy:
		return 0.0
	case DifficultyNormal:
		return 0.3
	case DifficultyHard:
		return 0.7
	default:
		return 0.0
	}
}

// ParsePreset validates a preset name. Empty means no preset.
func ParsePreset(name string) (DifficultyPreset, bool) {
	switch p := DifficultyPreset(name); p {
	case "", DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed:
		return p, true
	default:
		return "", false
	}
}
