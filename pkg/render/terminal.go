package render

import (
	"fmt"
	"sync"

	"github.com/gdamore/tcell/v2"

	"github.com/opd-ai/go-shieldwall/pkg/engine"
	"github.com/opd-ai/go-shieldwall/pkg/entity"
	"github.com/opd-ai/go-shieldwall/pkg/particle"
	"github.com/opd-ai/go-shieldwall/pkg/physics"
)

// hudRows is the number of terminal rows above the playfield.
const hudRows = 1

var (
	styleHUD       = tcell.StyleDefault.Foreground(tcell.ColorWhite).Bold(true)
	styleMult      = tcell.StyleDefault.Foreground(tcell.ColorYellow).Bold(true)
	styleBall      = tcell.StyleDefault.Foreground(tcell.ColorWhite)
	styleShield    = tcell.StyleDefault.Foreground(tcell.ColorAqua)
	styleSmall     = tcell.StyleDefault.Foreground(tcell.ColorGreen)
	styleMedium    = tcell.StyleDefault.Foreground(tcell.ColorFuchsia)
	styleBlock     = tcell.StyleDefault.Foreground(tcell.ColorOrange)
	styleSolid     = tcell.StyleDefault.Foreground(tcell.ColorGray)
	styleBullet    = tcell.StyleDefault.Foreground(tcell.ColorRed)
	styleShip      = tcell.StyleDefault.Foreground(tcell.ColorBlue).Bold(true)
	styleDanger    = tcell.StyleDefault.Foreground(tcell.ColorMaroon)
	styleParticle  = tcell.StyleDefault.Foreground(tcell.ColorSilver)
	styleBanner    = tcell.StyleDefault.Foreground(tcell.ColorBlack).Background(tcell.ColorWhite)
	styleFlashEdge = tcell.StyleDefault.Background(tcell.ColorRed)
)

// TerminalRenderer draws snapshots onto a tcell screen, scaling the playfield to
// whatever the terminal offers below the HUD row. Render and ScreenToWorldX may
// be called from different goroutines.
type TerminalRenderer struct {
	mu     sync.Mutex
	screen tcell.Screen
	width  int
	height int
	scaleX float64
	scaleY float64
}

// NewTerminalRenderer creates a renderer on an initialized screen.
func NewTerminalRenderer(screen tcell.Screen) *TerminalRenderer {
	return &TerminalRenderer{screen: screen}
}

// fit recomputes the world-to-cell scale for the current terminal size.
func (r *TerminalRenderer) fit(fieldW, fieldH float64) {
	r.width, r.height = r.screen.Size()
	rows := r.height - hudRows
	if r.width < 1 || rows < 1 || fieldW <= 0 || fieldH <= 0 {
		r.scaleX, r.scaleY = 0, 0
		return
	}
	r.scaleX = float64(r.width) / fieldW
	r.scaleY = float64(rows) / fieldH
}

// worldToScreen converts playfield coordinates to a terminal cell.
func (r *TerminalRenderer) worldToScreen(pos physics.Vector2D) (int, int) {
	return int(pos.X * r.scaleX), int(pos.Y*r.scaleY) + hudRows
}

// ScreenToWorldX converts a terminal column back to a playfield x at the column's
// center. It is used to steer the shield with the mouse.
func (r *TerminalRenderer) ScreenToWorldX(col int) float64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.scaleX == 0 {
		return 0
	}
	return (float64(col) + 0.5) / r.scaleX
}

func (r *TerminalRenderer) inField(x, y int) bool {
	return x >= 0 && x < r.width && y >= hudRows && y < r.height
}

func (r *TerminalRenderer) put(x, y int, ch rune, style tcell.Style) {
	if r.inField(x, y) {
		r.screen.SetContent(x, y, ch, nil, style)
	}
}

// fillBox paints every cell a box covers, at least one cell.
func (r *TerminalRenderer) fillBox(box physics.AABB, ch rune, style tcell.Style) {
	x0, y0 := r.worldToScreen(physics.Vector2D{X: box.Left(), Y: box.Top()})
	x1, y1 := r.worldToScreen(physics.Vector2D{X: box.Right(), Y: box.Bottom()})
	if x1 <= x0 {
		x1 = x0 + 1
	}
	if y1 <= y0 {
		y1 = y0 + 1
	}
	for y := y0; y < y1; y++ {
		for x := x0; x < x1; x++ {
			r.put(x, y, ch, style)
		}
	}
}

func (r *TerminalRenderer) text(x, y int, s string, style tcell.Style) {
	for i, ch := range []rune(s) {
		if x+i >= 0 && x+i < r.width && y >= 0 && y < r.height {
			r.screen.SetContent(x+i, y, ch, nil, style)
		}
	}
}

// Render implements Renderer.
func (r *TerminalRenderer) Render(state *engine.GameState) {
	if state == nil {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.screen.Clear()
	r.fit(state.Width, state.Height)

	switch state.Status {
	case engine.StatusLoading:
		r.banner("LOADING")
	case engine.StatusTitle:
		r.banner("SHIELDWALL - click or press space")
	default:
		r.drawField(state)
		r.drawHUD(state)
		switch state.Status {
		case engine.StatusWaveClear:
			r.banner(fmt.Sprintf("WAVE %d CLEAR - press space", state.Wave))
		case engine.StatusGameOver:
			r.banner(fmt.Sprintf("GAME OVER - %d - press space", state.Score))
		}
	}
	r.screen.Show()
}

func (r *TerminalRenderer) drawField(state *engine.GameState) {
	_, dy := r.worldToScreen(physics.Vector2D{Y: state.DangerLine})
	for x := 0; x < r.width; x++ {
		r.put(x, dy, '·', styleDanger)
	}

	for _, p := range state.Particles {
		x, y := r.worldToScreen(p.Position)
		ch := '.'
		if p.Kind == particle.Burst && p.Alpha() > 0.5 {
			ch = '*'
		}
		r.put(x, y, ch, styleParticle)
	}

	for _, b := range state.Blocks {
		if b.Kind == entity.Indestructible {
			r.fillBox(b.Bounds, '█', styleSolid)
		} else {
			r.fillBox(b.Bounds, '▒', styleBlock)
		}
	}

	for _, e := range state.Enemies {
		ch, style := 'w', styleSmall
		if e.Kind == entity.Medium {
			ch, style = 'M', styleMedium
		}
		if e.Flash > 0 {
			style = style.Reverse(true)
		}
		r.fillBox(e.Bounds, ch, style)
	}

	for _, b := range state.Bullets {
		r.fillBox(b.Bounds, '|', styleBullet)
	}

	r.fillBox(state.Shield.Bounds, '▀', styleShield)
	if state.Ship.MaxHP > 0 {
		r.fillBox(state.Ship.Bounds, '=', styleShip)
	}

	for _, b := range state.Balls {
		x, y := r.worldToScreen(b.Position)
		r.put(x, y, 'o', styleBall)
	}

	if state.ScreenFlash > 0 {
		for y := hudRows; y < r.height; y++ {
			r.screen.SetContent(0, y, ' ', nil, styleFlashEdge)
			r.screen.SetContent(r.width-1, y, ' ', nil, styleFlashEdge)
		}
	}
}

func (r *TerminalRenderer) drawHUD(state *engine.GameState) {
	left := fmt.Sprintf("SCORE %06d  WAVE %d  SHIP %d/%d  BALLS %d",
		state.Score, state.Wave, state.Ship.HP, state.Ship.MaxHP, len(state.Balls))
	r.text(0, 0, left, styleHUD)

	mult := fmt.Sprintf("x%.2f", state.Multiplier)
	style := styleHUD
	if state.MultiplierFlash > 0 {
		style = styleMult
	}
	r.text(r.width-len(mult), 0, mult, style)
}

func (r *TerminalRenderer) banner(msg string) {
	w, h := r.screen.Size()
	x := (w - len([]rune(msg))) / 2
	if x < 0 {
		x = 0
	}
	r.text(x, h/2, msg, styleBanner)
}

// Close restores the terminal.
func (r *TerminalRenderer) Close() {
	r.screen.Fini()
}

// Screen returns the underlying tcell screen.
func (r *TerminalRenderer) Screen() tcell.Screen {
	return r.screen
}

// Cell returns the rune drawn at a terminal position.
func (r *TerminalRenderer) Cell(x, y int) rune {
	ch, _, _, _ := r.screen.GetContent(x, y)
	return ch
}

var _ Renderer = (*TerminalRenderer)(nil)
var _ Renderer = (*NullRenderer)(nil)
