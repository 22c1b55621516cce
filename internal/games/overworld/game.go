// Package overworld implements Kraken Waters, a top-down arena where the
// player's boat fights octopuses among rocks.
//
// Entities live in a donburi world. Every tick the host systems snapshot the
// world into physics indexes: one of solids for movement, one of hitboxes for
// damage. The physics package never sees donburi.
package overworld

import (
	"math/rand"
	"time"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/yohamta/donburi"

	"github.com/vovakirdan/tui-kraken/internal/config"
	"github.com/vovakirdan/tui-kraken/internal/core"
	"github.com/vovakirdan/tui-kraken/internal/physics"
	"github.com/vovakirdan/tui-kraken/internal/registry"
)

// configPath stores the custom config path set via CLI
var configPath string

// difficultyPreset stores the difficulty preset set via CLI
var difficultyPreset config.DifficultyPreset

// SetConfigPath sets the custom config path for loading.
func SetConfigPath(path string) {
	configPath = path
}

// SetDifficultyPreset sets the difficulty preset. Unknown names clear it.
func SetDifficultyPreset(preset string) {
	p, ok := config.ParsePreset(preset)
	if !ok {
		p = ""
	}
	difficultyPreset = p
}

// Game implements the Kraken Waters game logic.
type Game struct {
	runtime    core.RuntimeConfig
	cfg        config.OverworldConfig
	fixedCfg   bool // Config passed to NewWithConfig; Reset must not reload
	difficulty *config.DifficultyManager
	rng        *rand.Rand

	world    donburi.World
	queries  queries
	solids   *physics.Index
	hitboxes *physics.Index
	resolver physics.Resolver
	player   donburi.Entity

	// Scratch buffers reused across ticks
	collidables []physics.Collidable
	hits        []physics.Entity

	// Terminals report key presses, never releases. A press keeps steering
	// for InputHoldTicks ticks.
	heldDirection mgl64.Vec2
	heldTicks     int
	facing        mgl64.Vec2

	cannonLevel       int
	cannonCooldown    float64
	shockwaveCooldown float64
	spawnTimer        float64

	score    int
	kills    int
	ticks    int
	gameOver bool
	paused   bool
	camera   mgl64.Vec2
	debug    bool // Outline what the physics indexes hold; survives restarts
}

// New creates a game that loads its config on Reset.
func New() *Game {
	return &Game{}
}

// NewWithConfig creates a game bound to cfg. Used by tests and the SSH server.
func NewWithConfig(cfg config.OverworldConfig) *Game {
	return &Game{cfg: cfg, fixedCfg: true}
}

// ID returns the unique identifier for this game.
func (g *Game) ID() string {
	return "overworld"
}

// Title returns the display name for this game.
func (g *Game) Title() string {
	return "Kraken Waters"
}

// Config returns the tunables in effect.
func (g *Game) Config() config.OverworldConfig {
	return g.cfg
}

// Reset initializes or restarts the game.
func (g *Game) Reset(runtime core.RuntimeConfig) {
	g.runtime = runtime

	if !g.fixedCfg {
		cfg, err := config.LoadOverworld(configPath)
		if err != nil {
			cfg = config.DefaultOverworldConfig()
		}
		config.ApplyPreset(&cfg, difficultyPreset)
		g.cfg = cfg
	}
	g.difficulty = config.NewDifficultyManager(g.cfg.Difficulty)
	g.resolver = physics.Resolver{LookAhead: g.cfg.Physics.LookAhead}

	seed := runtime.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	g.rng = rand.New(rand.NewSource(seed))

	g.world = donburi.NewWorld()
	g.queries = newQueries()
	g.solids = physics.NewIndex()
	g.hitboxes = physics.NewIndex()
	g.collidables = g.collidables[:0]
	g.hits = g.hits[:0]

	g.heldDirection = mgl64.Vec2{}
	g.heldTicks = 0
	g.facing = mgl64.Vec2{1, 0}
	g.cannonLevel = 1
	g.cannonCooldown = 0
	g.shockwaveCooldown = 0
	g.spawnTimer = g.cfg.Spawner.Interval

	g.score = 0
	g.kills = 0
	g.ticks = 0
	g.gameOver = false
	g.paused = false

	start := mgl64.Vec2{g.cfg.World.Width / 2, g.cfg.World.Height / 2}
	g.spawnWalls()
	g.spawnRocks(start)
	g.player = g.spawnPlayer(start)
	g.camera = start

	for i := 0; i < g.cfg.Spawner.Initial; i++ {
		g.trySpawnOctopus()
	}
}

// ApplyConfig swaps in new tunables without restarting the run.
// Sizes of entities already spawned are kept; speeds and timers follow cfg.
func (g *Game) ApplyConfig(cfg config.OverworldConfig) {
	config.ApplyPreset(&cfg, difficultyPreset)
	g.cfg = cfg
	g.difficulty = config.NewDifficultyManager(cfg.Difficulty)
	g.resolver = physics.Resolver{LookAhead: cfg.Physics.LookAhead}

	if g.world == nil {
		return
	}
	if entry, ok := PlayerTag.First(g.world); ok {
		Controller.Get(entry).Speed = cfg.Player.Speed
	}
	if max := maxCannonLevel(cfg.Combat); g.cannonLevel > max {
		g.cannonLevel = max
	}
	if g.spawnTimer > cfg.Spawner.Interval {
		g.spawnTimer = cfg.Spawner.Interval
	}
}

// Step advances the game by one tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	if in.Has(core.ActionDebug) {
		g.debug = !g.debug
	}
	if in.Has(core.ActionRestart) && g.gameOver {
		g.Reset(g.runtime)
		return core.StepResult{State: g.State()}
	}

	if g.gameOver {
		return core.StepResult{State: g.State()}
	}

	if in.Has(core.ActionPause) || in.Has(core.ActionBack) {
		g.paused = !g.paused
	}
	if g.paused {
		return core.StepResult{State: g.State()}
	}

	g.ticks++
	dt := g.runtime.DeltaSeconds()

	g.playerInputSystem(in, dt)
	g.octopusSystem(dt)
	g.characterControllerSystem(dt)
	g.projectileSystem(dt)
	g.damageSystem(dt)
	g.deathSystem()
	g.timeToLiveSystem(dt)
	g.spawnerSystem(dt)
	g.sanitizeSystem()
	g.updateCamera()

	return core.StepResult{State: g.State()}
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	return core.GameState{
		Score:    g.score,
		Kills:    g.kills,
		Ticks:    g.ticks,
		GameOver: g.gameOver,
		Paused:   g.paused,
	}
}

// PlayerHealth returns the player's current and maximum health.
func (g *Game) PlayerHealth() (value, max float64) {
	if g.world == nil || !g.world.Valid(g.player) {
		return 0, g.cfg.Player.Health
	}
	h := Health.Get(g.world.Entry(g.player))
	return h.Value, h.Max
}

// PlayerPosition returns the player's world position.
func (g *Game) PlayerPosition() mgl64.Vec2 {
	if g.world == nil || !g.world.Valid(g.player) {
		return g.camera
	}
	return Transform.Get(g.world.Entry(g.player)).Position
}

// Octopuses returns the number of live enemies.
func (g *Game) Octopuses() int {
	if g.world == nil {
		return 0
	}
	return g.queries.octopuses.Count(g.world)
}

// randomArenaPoint picks a point whose box of the given edge lies inside the arena.
func (g *Game) randomArenaPoint(margin float64) mgl64.Vec2 {
	w := g.cfg.World.Width - margin
	h := g.cfg.World.Height - margin
	if w < 0 {
		w = 0
	}
	if h < 0 {
		h = 0
	}
	return mgl64.Vec2{
		margin/2 + g.rng.Float64()*w,
		margin/2 + g.rng.Float64()*h,
	}
}

func init() {
	registry.Register("overworld", func() registry.Game {
		return New()
	})
}
