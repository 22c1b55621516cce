package overworld

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/yohamta/donburi"

	"github.com/vovakirdan/tui-kraken/internal/core"
	"github.com/vovakirdan/tui-kraken/internal/physics"
)

// Visual characters for rendering
const (
	WaterChar    = '~'
	DebugChar    = '·'
	HeartFull    = '♥'
	HeartEmpty   = '♡'
	hudHeight    = 1
	blinkPeriod  = 8 // Ticks per on/off cycle while invulnerable
	waterDensity = 11
)

// view maps world coordinates onto terminal cells, centered on the camera.
type view struct {
	camera        mgl64.Vec2
	cellW, cellH  float64
	width, height int // Cells available below the HUD
}

func (g *Game) view(dst *core.Screen) view {
	return view{
		camera: g.camera,
		cellW:  g.cfg.World.CellWidth,
		cellH:  g.cfg.World.CellHeight,
		width:  dst.Width(),
		height: dst.Height() - hudHeight,
	}
}

// cell returns the screen cell containing world point p.
func (v view) cell(p mgl64.Vec2) (int, int) {
	x := int(math.Floor((p.X()-v.camera.X())/v.cellW)) + v.width/2
	y := int(math.Floor((p.Y()-v.camera.Y())/v.cellH)) + v.height/2 + hudHeight
	return x, y
}

// world returns the world point at the top-left corner of a screen cell.
func (v view) world(x, y int) mgl64.Vec2 {
	return mgl64.Vec2{
		float64(x-v.width/2)*v.cellW + v.camera.X(),
		float64(y-hudHeight-v.height/2)*v.cellH + v.camera.Y(),
	}
}

// Render draws the current game state to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()
	if g.world == nil {
		return
	}

	v := g.view(dst)
	g.drawWater(dst, v)
	g.drawSprites(dst, v)
	if g.debug {
		drawOutlines(dst, v, g.solids.Collidables(), core.ColorYellow)
		drawOutlines(dst, v, g.hitboxes.Collidables(), core.ColorRed)
	}
	g.drawHUD(dst)

	if g.paused {
		drawCenteredMessage(dst, "PAUSED", "Press P to resume")
	}
	if g.gameOver {
		drawCenteredMessage(dst, "GAME OVER", fmt.Sprintf("Score: %d  |  Press R to restart", g.score))
	}
}

// drawWater fills the arena with a sparse wave pattern anchored to the world,
// so it scrolls with the camera.
func (g *Game) drawWater(dst *core.Screen, v view) {
	for y := hudHeight; y < dst.Height(); y++ {
		for x := 0; x < dst.Width(); x++ {
			p := v.world(x, y)
			if p.X() < 0 || p.Y() < 0 || p.X() >= g.cfg.World.Width || p.Y() >= g.cfg.World.Height {
				continue
			}
			cx := int(math.Floor(p.X() / v.cellW))
			cy := int(math.Floor(p.Y() / v.cellH))
			if (cx*3+cy*7)%waterDensity == 0 {
				dst.SetColored(x, y, WaterChar, core.ColorBlue)
			}
		}
	}
}

type drawable struct {
	entity donburi.Entity
	pos    mgl64.Vec2
	sprite SpriteData
}

// drawSprites draws every sprite as the block of cells its box covers,
// lower layers first.
func (g *Game) drawSprites(dst *core.Screen, v view) {
	var items []drawable
	g.queries.sprites.Each(g.world, func(entry *donburi.Entry) {
		items = append(items, drawable{
			entity: entry.Entity(),
			pos:    Transform.Get(entry).Position,
			sprite: *Sprite.Get(entry),
		})
	})
	sort.Slice(items, func(i, j int) bool {
		if items[i].sprite.Layer != items[j].sprite.Layer {
			return items[i].sprite.Layer < items[j].sprite.Layer
		}
		return items[i].entity.Id() < items[j].entity.Id()
	})

	for _, it := range items {
		sp := it.sprite
		if it.entity == g.player {
			if g.playerBlinking() {
				continue
			}
			sp.Glyph = facingGlyph(g.facing)
		}

		half := sp.Size.Mul(0.5)
		x0, y0 := v.cell(it.pos.Sub(half))
		x1, y1 := v.cell(it.pos.Add(half).Sub(mgl64.Vec2{1e-9, 1e-9}))
		for y := y0; y <= y1; y++ {
			if y < hudHeight {
				continue
			}
			for x := x0; x <= x1; x++ {
				if sp.Ring && x != x0 && x != x1 && y != y0 && y != y1 {
					continue
				}
				dst.SetColored(x, y, sp.Glyph, sp.Color)
			}
		}
	}
}

// drawOutlines frames each collidable's box one cell outside the cells it
// covers. Only empty or water cells are drawn over, so sprites stay visible.
// The boxes are the last snapshot the index was refreshed with.
func drawOutlines(dst *core.Screen, v view, boxes []physics.Collidable, c core.Color) {
	for _, b := range boxes {
		half := b.Shape.HalfExtents()
		x0, y0 := v.cell(b.Position.Sub(half))
		x1, y1 := v.cell(b.Position.Add(half).Sub(mgl64.Vec2{1e-9, 1e-9}))
		x0, y0, x1, y1 = x0-1, y0-1, x1+1, y1+1
		for y := y0; y <= y1; y++ {
			if y < hudHeight {
				continue
			}
			for x := x0; x <= x1; x++ {
				if x != x0 && x != x1 && y != y0 && y != y1 {
					continue
				}
				if r := dst.Get(x, y); r == ' ' || r == WaterChar {
					dst.SetColored(x, y, DebugChar, c)
				}
			}
		}
	}
}

// playerBlinking reports whether the player is hidden this tick to show
// invulnerability.
func (g *Game) playerBlinking() bool {
	if g.gameOver || !g.world.Valid(g.player) {
		return false
	}
	h := Health.Get(g.world.Entry(g.player))
	return h.Invulnerable > 0 && g.ticks%blinkPeriod >= blinkPeriod/2
}

func facingGlyph(f mgl64.Vec2) rune {
	if math.Abs(f.X()) >= math.Abs(f.Y()) {
		if f.X() < 0 {
			return '◀'
		}
		return '▶'
	}
	if f.Y() < 0 {
		return '▲'
	}
	return '▼'
}

// drawHUD draws score, health and the enemy count on the top row.
func (g *Game) drawHUD(dst *core.Screen) {
	hp, maxHP := g.PlayerHealth()
	var hearts strings.Builder
	for i := 0; i < int(math.Ceil(maxHP)); i++ {
		if float64(i) < hp {
			hearts.WriteRune(HeartFull)
		} else {
			hearts.WriteRune(HeartEmpty)
		}
	}

	left := fmt.Sprintf(" Score: %d  Kills: %d  Cannon: %d  ", g.score, g.kills, g.cannonLevel)
	dst.DrawText(0, 0, left)
	dst.DrawTextColored(len([]rune(left)), 0, hearts.String(), core.ColorBrightRed)

	right := fmt.Sprintf("Octopuses: %d  Lv %.0f%% ", g.Octopuses(), g.difficulty.Level(g.score, g.ticks)*100)
	if g.debug {
		dst.DrawTextColored(0, dst.Height()-1, fmt.Sprintf(" Solids: %d  Hitboxes: %d ", g.solids.Len(), g.hitboxes.Len()), core.ColorYellow)
	}
	dst.DrawText(dst.Width()-len([]rune(right)), 0, right)
}

// drawCenteredMessage draws a boxed message in the middle of the screen.
func drawCenteredMessage(dst *core.Screen, title, subtitle string) {
	w := len([]rune(subtitle)) + 4
	if tw := len([]rune(title)) + 4; tw > w {
		w = tw
	}
	h := 5
	x := (dst.Width() - w) / 2
	y := (dst.Height() - h) / 2

	box := core.NewRect(x, y, w, h)
	dst.DrawRect(box, ' ')
	dst.DrawBox(box)
	dst.DrawTextCentered(y+1, title)
	dst.DrawTextCentered(y+3, subtitle)
}
