package core

import (
	"fmt"
	"time"
)

const (
	DefaultTickRate = 60
	MaxTickRate     = 240

	// Smallest terminal the HUD and a sliver of sea fit into.
	MinScreenW = 20
	MinScreenH = 8
)

// RuntimeConfig is what the platform hands a game on Reset.
type RuntimeConfig struct {
	ScreenW  int   // Terminal width in cells
	ScreenH  int   // Terminal height in cells
	TickRate int   // Simulation steps per second
	Seed     int64 // 0 asks the platform to pick a time-based seed
}

// DefaultConfig returns an 80x24 terminal at the default tick rate.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: DefaultTickRate,
	}
}

// Normalized clamps the tick rate into (0, MaxTickRate] and the screen to
// at least MinScreenW x MinScreenH. The seed is left alone.
func (c RuntimeConfig) Normalized() RuntimeConfig {
	if c.TickRate <= 0 {
		c.TickRate = DefaultTickRate
	}
	if c.TickRate > MaxTickRate {
		c.TickRate = MaxTickRate
	}
	if c.ScreenW < MinScreenW {
		c.ScreenW = MinScreenW
	}
	if c.ScreenH < MinScreenH {
		c.ScreenH = MinScreenH
	}
	return c
}

// DeltaSeconds returns the fixed simulation step in seconds.
func (c RuntimeConfig) DeltaSeconds() float64 {
	if c.TickRate <= 0 {
		return 1.0 / DefaultTickRate
	}
	return 1.0 / float64(c.TickRate)
}

// Elapsed converts a tick count into wall time at this tick rate.
func (c RuntimeConfig) Elapsed(ticks int) time.Duration {
	rate := c.TickRate
	if rate <= 0 {
		rate = DefaultTickRate
	}
	return time.Duration(ticks) * time.Second / time.Duration(rate)
}

// FormatTicks renders a run length as m:ss.
func FormatTicks(ticks, tickRate int) string {
	d := RuntimeConfig{TickRate: tickRate}.Elapsed(ticks)
	secs := int(d / time.Second)
	return fmt.Sprintf("%d:%02d", secs/60, secs%60)
}

// GameState is the game's status as seen by the platform.
type GameState struct {
	Score    int
	Kills    int  // Octopuses sunk this run
	Ticks    int  // Steps since the run started, pauses excluded
	GameOver bool
	Paused   bool
}

// StepResult is returned by Game.Step after each tick.
type StepResult struct {
	State GameState
}
