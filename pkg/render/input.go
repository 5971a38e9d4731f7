package render

import (
	"context"

	"github.com/gdamore/tcell/v2"
)

// Controller is the slice of the game that input drives. engine.Game satisfies it.
type Controller interface {
	SetShieldTarget(x float64)
	Action()
}

// keyNudge is how far one arrow key press moves the shield target, in playfield
// units.
const keyNudge = 24

// TerminalInput turns tcell key and mouse events into shield and action input.
type TerminalInput struct {
	game     Controller
	renderer *TerminalRenderer
	mouse    bool
	target   float64
	held     bool
}

// NewTerminalInput creates an input adapter. start is the initial shield target.
func NewTerminalInput(game Controller, renderer *TerminalRenderer, mouse bool, start float64) *TerminalInput {
	return &TerminalInput{
		game:     game,
		renderer: renderer,
		mouse:    mouse,
		target:   start,
	}
}

// Handle applies one event. It reports true when the player asked to quit.
func (in *TerminalInput) Handle(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		return in.handleKey(ev)
	case *tcell.EventMouse:
		in.handleMouse(ev)
	case *tcell.EventResize:
		in.renderer.Screen().Sync()
	}
	return false
}

func (in *TerminalInput) handleKey(ev *tcell.EventKey) bool {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return true
	case tcell.KeyEnter:
		in.game.Action()
	case tcell.KeyLeft:
		in.steer(in.target - keyNudge)
	case tcell.KeyRight:
		in.steer(in.target + keyNudge)
	case tcell.KeyRune:
		switch ev.Rune() {
		case 'q':
			return true
		case ' ':
			in.game.Action()
		case 'a', 'h':
			in.steer(in.target - keyNudge)
		case 'd', 'l':
			in.steer(in.target + keyNudge)
		}
	}
	return false
}

// handleMouse steers on every move and fires Action on the press edge of the
// primary button only.
func (in *TerminalInput) handleMouse(ev *tcell.EventMouse) {
	if !in.mouse {
		return
	}
	x, _ := ev.Position()
	in.steer(in.renderer.ScreenToWorldX(x))

	pressed := ev.Buttons()&tcell.Button1 != 0
	if pressed && !in.held {
		in.game.Action()
	}
	in.held = pressed
}

func (in *TerminalInput) steer(x float64) {
	in.target = x
	in.game.SetShieldTarget(x)
}

// Target returns the last shield target sent to the game.
func (in *TerminalInput) Target() float64 {
	return in.target
}

// Listen polls the screen until ctx is done, the screen is finalized, or the
// player quits. quit is called in the last case.
func (in *TerminalInput) Listen(ctx context.Context, screen tcell.Screen, quit func()) {
	events := make(chan tcell.Event, 64)
	go func() {
		defer close(events)
		for {
			ev := screen.PollEvent()
			if ev == nil {
				return
			}
			select {
			case events <- ev:
			case <-ctx.Done():
				return
			}
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-events:
			if !ok {
				return
			}
			if in.Handle(ev) {
				quit()
				return
			}
		}
	}
}
