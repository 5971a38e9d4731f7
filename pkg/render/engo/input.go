// pkg/render/engo/input.go
package engo

import (
	"github.com/EngoEngine/ecs"
	"github.com/EngoEngine/engo"

	"github.com/opd-ai/go-shieldwall/pkg/render"
)

// Button names registered with engo.Input.
const (
	ButtonLeft   = "left"
	ButtonRight  = "right"
	ButtonAction = "action"
	ButtonQuit   = "quit"
)

// keySpeed is how far a held arrow key moves the shield target per frame, in
// playfield units.
const keySpeed = 8

// frame is one frame of sampled input.
type frame struct {
	mouseX     float32
	mouseMoved bool
	click      bool
	left       bool
	right      bool
	action     bool
	quit       bool
}

// InputSystem steers the shield from the mouse or the arrow keys and maps clicks
// and the action key to game actions.
type InputSystem struct {
	game   render.Controller
	camera *Camera
	mouse  bool
	target float64
	lastX  float32
	onQuit func()
}

// NewInputSystem creates the input system. start is the initial shield target
// and onQuit runs when the quit key is pressed.
func NewInputSystem(game render.Controller, camera *Camera, mouse bool, start float64, onQuit func()) *InputSystem {
	return &InputSystem{
		game:   game,
		camera: camera,
		mouse:  mouse,
		target: start,
		lastX:  -1,
		onQuit: onQuit,
	}
}

// Remove satisfies the ecs.System interface
func (is *InputSystem) Remove(basic ecs.BasicEntity) {}

// Update samples engo's input state and applies it.
func (is *InputSystem) Update(dt float32) {
	mx := engo.Input.Mouse.X
	is.apply(frame{
		mouseX:     mx,
		mouseMoved: mx != is.lastX,
		click:      engo.Input.Mouse.Action == engo.Press && engo.Input.Mouse.Button == engo.MouseButtonLeft,
		left:       engo.Input.Button(ButtonLeft).Down(),
		right:      engo.Input.Button(ButtonRight).Down(),
		action:     engo.Input.Button(ButtonAction).JustPressed(),
		quit:       engo.Input.Button(ButtonQuit).JustPressed(),
	})
	is.lastX = mx
}

func (is *InputSystem) apply(f frame) {
	if f.quit {
		if is.onQuit != nil {
			is.onQuit()
		}
		return
	}

	switch {
	case f.left && !f.right:
		is.steer(is.target - keySpeed)
	case f.right && !f.left:
		is.steer(is.target + keySpeed)
	case is.mouse && f.mouseMoved:
		is.steer(is.camera.ScreenToWorldX(f.mouseX))
	}

	if f.action || (is.mouse && f.click) {
		is.game.Action()
	}
}

func (is *InputSystem) steer(x float64) {
	is.target = x
	is.game.SetShieldTarget(x)
}

// Target returns the last shield target sent to the game.
func (is *InputSystem) Target() float64 {
	return is.target
}

// SetupInputBindings registers the keys the input system reads.
func SetupInputBindings() {
	engo.Input.RegisterButton(ButtonLeft, engo.KeyArrowLeft, engo.KeyA)
	engo.Input.RegisterButton(ButtonRight, engo.KeyArrowRight, engo.KeyD)
	engo.Input.RegisterButton(ButtonAction, engo.KeySpace, engo.KeyEnter)
	engo.Input.RegisterButton(ButtonQuit, engo.KeyEscape, engo.KeyQ)
}
