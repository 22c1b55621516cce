package overworld

import (
	"math"
	"strings"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/yohamta/donburi"

	"github.com/vovakirdan/tui-kraken/internal/config"
	"github.com/vovakirdan/tui-kraken/internal/core"
)

func testRuntime() core.RuntimeConfig {
	return core.RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 60,
		Seed:     42,
	}
}

// quietConfig is an empty arena: no rocks, no spawns, fixed difficulty.
func quietConfig() config.OverworldConfig {
	cfg := config.DefaultOverworldConfig()
	cfg.World.Rocks = 0
	cfg.Spawner.Initial = 0
	cfg.Spawner.Interval = 1000
	cfg.Difficulty.Enabled = false
	return cfg
}

func frame(actions ...core.Action) core.InputFrame {
	in := core.NewInputFrame()
	for _, a := range actions {
		in.Set(a)
	}
	return in
}

func (g *Game) health(e donburi.Entity) float64 {
	return Health.Get(g.world.Entry(e)).Value
}

func TestGameDeterminism(t *testing.T) {
	inputs := make([]core.InputFrame, 600)
	for i := range inputs {
		switch {
		case i%40 < 10:
			inputs[i] = frame(core.ActionRight, core.ActionFire)
		case i%40 < 20:
			inputs[i] = frame(core.ActionDown)
		case i%40 < 30:
			inputs[i] = frame(core.ActionLeft, core.ActionSpecial)
		default:
			inputs[i] = frame(core.ActionUp, core.ActionFire)
		}
	}

	run := func() (core.GameState, mgl64.Vec2, int) {
		g := NewWithConfig(config.DefaultOverworldConfig())
		g.Reset(testRuntime())
		for _, in := range inputs {
			g.Step(in)
		}
		return g.State(), g.PlayerPosition(), g.Octopuses()
	}

	s1, p1, o1 := run()
	s2, p2, o2 := run()

	if s1 != s2 {
		t.Errorf("states differ: %+v vs %+v", s1, s2)
	}
	if p1 != p2 {
		t.Errorf("player positions differ: %v vs %v", p1, p2)
	}
	if o1 != o2 {
		t.Errorf("octopus counts differ: %d vs %d", o1, o2)
	}
}

func TestResetBuildsArena(t *testing.T) {
	cfg := config.DefaultOverworldConfig()
	g := NewWithConfig(cfg)
	g.Reset(testRuntime())

	want := mgl64.Vec2{cfg.World.Width / 2, cfg.World.Height / 2}
	if got := g.PlayerPosition(); got != want {
		t.Errorf("player starts at %v, want %v", got, want)
	}
	if hp, max := g.PlayerHealth(); hp != cfg.Player.Health || max != cfg.Player.Health {
		t.Errorf("player health = %v/%v, want %v", hp, max, cfg.Player.Health)
	}
	if g.Octopuses() == 0 {
		t.Error("expected initial octopuses")
	}

	g.refreshSolids()
	// Four walls, the player, rocks and octopuses
	if min := 4 + 1 + g.Octopuses(); g.solids.Len() < min {
		t.Errorf("solids = %d, want at least %d", g.solids.Len(), min)
	}
}

func TestPlayerBlockedByWall(t *testing.T) {
	cfg := quietConfig()
	cfg.World.Width = 400
	cfg.World.Height = 400
	g := NewWithConfig(cfg)
	g.Reset(testRuntime())

	for i := 0; i < 200; i++ {
		g.Step(frame(core.ActionRight))
	}

	pos := g.PlayerPosition()
	right := pos.X() + cfg.Player.Size/2
	if right > cfg.World.Width {
		t.Errorf("player edge at %v passed the wall at %v", right, cfg.World.Width)
	}
	if pos.X() < 300 {
		t.Errorf("player stopped early at %v", pos.X())
	}
	if pos.Y() != 200 {
		t.Errorf("player drifted vertically to %v", pos.Y())
	}
}

func TestPlayerReachesCorner(t *testing.T) {
	cfg := quietConfig()
	cfg.World.Width = 400
	cfg.World.Height = 400
	g := NewWithConfig(cfg)
	g.Reset(testRuntime())

	for i := 0; i < 200; i++ {
		g.Step(frame(core.ActionRight, core.ActionDown))
	}

	pos := g.PlayerPosition()
	half := cfg.Player.Size / 2
	if pos.X()+half > cfg.World.Width || pos.Y()+half > cfg.World.Height {
		t.Fatalf("player left the arena: %v", pos)
	}
	// Blocked on both axes in the corner, but each axis got as far as it could
	if pos.X() < 350 || pos.Y() < 350 {
		t.Errorf("player stopped short of the corner: %v", pos)
	}
}

func TestInputHoldKeepsSteering(t *testing.T) {
	cfg := quietConfig()
	g := NewWithConfig(cfg)
	g.Reset(testRuntime())
	start := g.PlayerPosition()

	g.Step(frame(core.ActionRight))
	for i := 0; i < 20; i++ {
		g.Step(core.NewInputFrame())
	}

	moved := g.PlayerPosition().X() - start.X()
	want := float64(cfg.Player.InputHoldTicks) * cfg.Player.Speed / 60
	if math.Abs(moved-want) > 1e-9 {
		t.Errorf("moved %v, want %v", moved, want)
	}
}

func TestCannonKillsOctopus(t *testing.T) {
	cfg := quietConfig()
	cfg.Octopus.Speed = 0
	g := NewWithConfig(cfg)
	g.Reset(testRuntime())

	e, ok := g.spawnOctopus(g.PlayerPosition().Add(mgl64.Vec2{200, 0}), OctopusEasy)
	if !ok {
		t.Fatal("spawn rejected on open water")
	}

	for i := 0; i < 120 && g.world.Valid(e); i++ {
		g.Step(frame(core.ActionFire))
	}

	state := g.State()
	if state.Kills != 1 {
		t.Errorf("kills = %d, want 1", state.Kills)
	}
	if want := cfg.Octopus.Levels.Easy.Experience; state.Score != want {
		t.Errorf("score = %d, want %d", state.Score, want)
	}
	if g.Octopuses() != 0 {
		t.Errorf("octopuses = %d, want 0", g.Octopuses())
	}
}

func TestShockwaveHitsEveryEnemyInRange(t *testing.T) {
	cfg := quietConfig()
	cfg.Octopus.Speed = 0
	g := NewWithConfig(cfg)
	g.Reset(testRuntime())
	p := g.PlayerPosition()

	near1, _ := g.spawnOctopus(p.Add(mgl64.Vec2{150, 0}), OctopusHard)
	near2, _ := g.spawnOctopus(p.Add(mgl64.Vec2{-150, 0}), OctopusHard)
	far, _ := g.spawnOctopus(p.Add(mgl64.Vec2{600, 0}), OctopusHard)

	g.Step(frame(core.ActionSpecial))
	for i := 0; i < 10; i++ {
		g.Step(core.NewInputFrame())
	}

	full := cfg.Octopus.Levels.Hard.Health
	want := full - cfg.Combat.ShockwaveDamage
	if got := g.health(near1); got != want {
		t.Errorf("near octopus health = %v, want %v", got, want)
	}
	if got := g.health(near2); got != want {
		t.Errorf("near octopus health = %v, want %v", got, want)
	}
	if got := g.health(far); got != full {
		t.Errorf("far octopus health = %v, want %v", got, full)
	}
	if hp, _ := g.PlayerHealth(); hp != cfg.Player.Health {
		t.Errorf("shockwave hurt its owner: health = %v", hp)
	}
}

func TestSpawnRejectedOnOccupiedSpot(t *testing.T) {
	cfg := quietConfig()
	g := NewWithConfig(cfg)
	g.Reset(testRuntime())
	p := g.PlayerPosition()

	// Octopus box 40 scaled by 1.5 reaches 30; player half size is 16
	tests := []struct {
		name   string
		offset mgl64.Vec2
		want   bool
	}{
		{"on player", mgl64.Vec2{0, 0}, false},
		{"inside margin", mgl64.Vec2{40, 0}, false},
		{"clear", mgl64.Vec2{50, 0}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, ok := g.spawnOctopus(p.Add(tt.offset), OctopusEasy)
			if ok != tt.want {
				t.Errorf("spawnOctopus ok = %v, want %v", ok, tt.want)
			}
		})
	}
}

func TestContactDamageEndsRun(t *testing.T) {
	cfg := quietConfig()
	cfg.Player.Health = 1
	g := NewWithConfig(cfg)
	g.Reset(testRuntime())

	if _, ok := g.spawnOctopus(g.PlayerPosition().Add(mgl64.Vec2{120, 0}), OctopusEasy); !ok {
		t.Fatal("spawn rejected")
	}

	for i := 0; i < 300 && !g.State().GameOver; i++ {
		g.Step(core.NewInputFrame())
	}
	if !g.State().GameOver {
		t.Fatal("expected game over from octopus contact")
	}

	ticks := g.State().Ticks
	g.Step(frame(core.ActionRight))
	if g.State().Ticks != ticks {
		t.Error("simulation advanced after game over")
	}

	g.Step(frame(core.ActionRestart))
	state := g.State()
	if state.GameOver || state.Ticks != 0 || state.Score != 0 {
		t.Errorf("restart did not reset: %+v", state)
	}
}

func TestPauseFreezesSimulation(t *testing.T) {
	g := NewWithConfig(quietConfig())
	g.Reset(testRuntime())

	g.Step(frame(core.ActionPause))
	if !g.State().Paused {
		t.Fatal("expected paused")
	}
	pos := g.PlayerPosition()
	for i := 0; i < 10; i++ {
		g.Step(frame(core.ActionRight))
	}
	if g.State().Ticks != 0 {
		t.Errorf("ticks advanced while paused: %d", g.State().Ticks)
	}
	if g.PlayerPosition() != pos {
		t.Error("player moved while paused")
	}

	g.Step(frame(core.ActionPause))
	if g.State().Paused {
		t.Error("expected resume")
	}
}

func TestSanitizeRestoresNonFinitePosition(t *testing.T) {
	g := NewWithConfig(quietConfig())
	g.Reset(testRuntime())
	start := g.PlayerPosition()

	Transform.Get(g.world.Entry(g.player)).Position = mgl64.Vec2{math.NaN(), math.Inf(1)}
	g.Step(core.NewInputFrame())

	if got := g.PlayerPosition(); got != start {
		t.Errorf("position = %v, want %v", got, start)
	}
}

func TestApplyConfigUpdatesRunningGame(t *testing.T) {
	g := NewWithConfig(quietConfig())
	g.Reset(testRuntime())

	cfg := quietConfig()
	cfg.Player.Speed = 60
	cfg.Physics.LookAhead = 1
	g.ApplyConfig(cfg)

	start := g.PlayerPosition()
	g.Step(frame(core.ActionRight))
	if moved := g.PlayerPosition().X() - start.X(); math.Abs(moved-1) > 1e-9 {
		t.Errorf("moved %v, want 1", moved)
	}
	if g.resolver.LookAhead != 1 {
		t.Errorf("look ahead = %v, want 1", g.resolver.LookAhead)
	}
}

func TestRenderDrawsPlayerAndHUD(t *testing.T) {
	g := NewWithConfig(quietConfig())
	g.Reset(testRuntime())

	screen := core.NewScreen(80, 24)
	g.Render(screen)

	if !strings.Contains(screen.Row(0), "Score: 0") {
		t.Errorf("HUD row = %q", screen.Row(0))
	}
	if !strings.ContainsRune(screen.Row(12), '▶') {
		t.Errorf("player not drawn at screen center: %q", screen.Row(12))
	}

	g.Step(frame(core.ActionPause))
	g.Render(screen)
	if !strings.Contains(screen.String(), "PAUSED") {
		t.Error("pause overlay missing")
	}
}

func TestDebugOverlayOutlinesIndexes(t *testing.T) {
	g := NewWithConfig(quietConfig())
	g.Reset(testRuntime())
	screen := core.NewScreen(80, 24)

	g.Step(frame(core.ActionDebug))
	if n := len(g.solids.Collidables()); n != 5 {
		t.Errorf("solids = %d, want 5 (four walls and the player)", n)
	}
	g.Render(screen)
	if !strings.ContainsRune(screen.String(), DebugChar) {
		t.Error("no outline drawn around the player")
	}
	if last := screen.Row(23); !strings.Contains(last, "Solids: 5") {
		t.Errorf("debug footer = %q", last)
	}

	g.Step(frame(core.ActionDebug))
	g.Render(screen)
	if strings.ContainsRune(screen.String(), DebugChar) {
		t.Error("outlines left on screen after toggling off")
	}
}

func TestSetDifficultyPreset(t *testing.T) {
	defer SetDifficultyPreset("")

	SetDifficultyPreset("hard")
	if difficultyPreset != config.DifficultyHard {
		t.Errorf("preset = %q, want hard", difficultyPreset)
	}
	SetDifficultyPreset("nightmare")
	if difficultyPreset != "" {
		t.Errorf("unknown preset kept as %q", difficultyPreset)
	}
}
