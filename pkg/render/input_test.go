package render

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"
)

type fakeController struct {
	mu      sync.Mutex
	targets []float64
	actions int
}

func (f *fakeController) SetShieldTarget(x float64) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.targets = append(f.targets, x)
}

func (f *fakeController) Action() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.actions++
}

func (f *fakeController) snapshot() ([]float64, int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]float64(nil), f.targets...), f.actions
}

func newTestInput(t *testing.T, mouse bool) (*TerminalInput, *fakeController) {
	t.Helper()
	r := NewTerminalRenderer(newSimScreen(t, 60, 41))
	r.Render(playingState())
	ctrl := &fakeController{}
	return NewTerminalInput(ctrl, r, mouse, 300), ctrl
}

func TestTerminalInput_Keys(t *testing.T) {
	tests := []struct {
		name        string
		ev          *tcell.EventKey
		wantQuit    bool
		wantActions int
		wantTarget  float64
	}{
		{"space", tcell.NewEventKey(tcell.KeyRune, ' ', tcell.ModNone), false, 1, 300},
		{"enter", tcell.NewEventKey(tcell.KeyEnter, 0, tcell.ModNone), false, 1, 300},
		{"left_arrow", tcell.NewEventKey(tcell.KeyLeft, 0, tcell.ModNone), false, 0, 276},
		{"right_arrow", tcell.NewEventKey(tcell.KeyRight, 0, tcell.ModNone), false, 0, 324},
		{"a_key", tcell.NewEventKey(tcell.KeyRune, 'a', tcell.ModNone), false, 0, 276},
		{"l_key", tcell.NewEventKey(tcell.KeyRune, 'l', tcell.ModNone), false, 0, 324},
		{"escape", tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone), true, 0, 300},
		{"ctrl_c", tcell.NewEventKey(tcell.KeyCtrlC, 0, tcell.ModCtrl), true, 0, 300},
		{"q", tcell.NewEventKey(tcell.KeyRune, 'q', tcell.ModNone), true, 0, 300},
		{"other", tcell.NewEventKey(tcell.KeyRune, 'z', tcell.ModNone), false, 0, 300},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in, ctrl := newTestInput(t, true)

			quit := in.Handle(tt.ev)

			if quit != tt.wantQuit {
				t.Errorf("Handle() quit = %v, want %v", quit, tt.wantQuit)
			}
			_, actions := ctrl.snapshot()
			if actions != tt.wantActions {
				t.Errorf("actions = %d, want %d", actions, tt.wantActions)
			}
			if in.Target() != tt.wantTarget {
				t.Errorf("Target() = %v, want %v", in.Target(), tt.wantTarget)
			}
		})
	}
}

func TestTerminalInput_Mouse(t *testing.T) {
	in, ctrl := newTestInput(t, true)

	in.Handle(tcell.NewEventMouse(10, 20, tcell.ButtonNone, tcell.ModNone))
	in.Handle(tcell.NewEventMouse(12, 20, tcell.Button1, tcell.ModNone))
	in.Handle(tcell.NewEventMouse(14, 20, tcell.Button1, tcell.ModNone))
	in.Handle(tcell.NewEventMouse(14, 20, tcell.ButtonNone, tcell.ModNone))
	in.Handle(tcell.NewEventMouse(14, 20, tcell.Button1, tcell.ModNone))

	targets, actions := ctrl.snapshot()
	if len(targets) != 5 {
		t.Fatalf("targets = %d, want one per mouse event", len(targets))
	}
	if targets[0] < 104 || targets[0] > 106 {
		t.Errorf("column 10 mapped to %v, want about 105", targets[0])
	}
	if actions != 2 {
		t.Errorf("actions = %d, want one per press", actions)
	}
}

func TestTerminalInput_MouseDisabled(t *testing.T) {
	in, ctrl := newTestInput(t, false)

	in.Handle(tcell.NewEventMouse(10, 20, tcell.Button1, tcell.ModNone))

	targets, actions := ctrl.snapshot()
	if len(targets) != 0 || actions != 0 {
		t.Error("mouse events should be ignored when the mouse is off")
	}
}

func TestTerminalInput_Listen(t *testing.T) {
	screen := newSimScreen(t, 60, 41)
	r := NewTerminalRenderer(screen)
	r.Render(playingState())
	ctrl := &fakeController{}
	in := NewTerminalInput(ctrl, r, true, 300)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	quit := make(chan struct{})
	done := make(chan struct{})
	go func() {
		in.Listen(ctx, screen, func() { close(quit) })
		close(done)
	}()

	screen.InjectKey(tcell.KeyRune, ' ', tcell.ModNone)
	screen.InjectKey(tcell.KeyEscape, 0, tcell.ModNone)

	select {
	case <-quit:
	case <-ctx.Done():
		t.Fatal("Listen() never reported quit")
	}
	<-done

	if _, actions := ctrl.snapshot(); actions != 1 {
		t.Errorf("actions = %d, want 1", actions)
	}
}
