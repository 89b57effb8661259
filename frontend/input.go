package frontend

import (
	"github.com/hajimehoshi/ebiten/v2"

	"piratestage/game"
)

const stickDeadZone = 0.5

var keyBindings = map[game.Action][]ebiten.Key{
	game.ActionLeft:    {ebiten.KeyArrowLeft, ebiten.KeyA},
	game.ActionRight:   {ebiten.KeyArrowRight, ebiten.KeyD},
	game.ActionUp:      {ebiten.KeyArrowUp, ebiten.KeyW},
	game.ActionDown:    {ebiten.KeyArrowDown, ebiten.KeyS},
	game.ActionJump:    {ebiten.KeySpace, ebiten.KeyX},
	game.ActionPause:   {ebiten.KeyEnter},
	game.ActionConfirm: {ebiten.KeyEnter, ebiten.KeyZ},
}

var padBindings = map[game.Action][]ebiten.StandardGamepadButton{
	game.ActionLeft:    {ebiten.StandardGamepadButtonLeftLeft},
	game.ActionRight:   {ebiten.StandardGamepadButtonLeftRight},
	game.ActionUp:      {ebiten.StandardGamepadButtonLeftTop},
	game.ActionDown:    {ebiten.StandardGamepadButtonLeftBottom},
	game.ActionJump:    {ebiten.StandardGamepadButtonRightBottom},
	game.ActionPause:   {ebiten.StandardGamepadButtonCenterRight},
	game.ActionConfirm: {ebiten.StandardGamepadButtonRightBottom},
}

// Input polls the keyboard and every standard-layout gamepad once per tick
// and exposes the result as a game.InputProvider
type Input struct {
	game.ActionTracker
	gamepads []ebiten.GamepadID
}

// NewInput creates an input poller
func NewInput() *Input {
	return &Input{}
}

// Poll samples the devices for this tick
func (in *Input) Poll() {
	in.gamepads = ebiten.AppendGamepadIDs(in.gamepads[:0])
	in.Update(in.held)
}

func (in *Input) held(a game.Action) bool {
	for _, k := range keyBindings[a] {
		if ebiten.IsKeyPressed(k) {
			return true
		}
	}
	for _, id := range in.gamepads {
		if !ebiten.IsStandardGamepadLayoutAvailable(id) {
			continue
		}
		for _, b := range padBindings[a] {
			if ebiten.IsStandardGamepadButtonPressed(id, b) {
				return true
			}
		}
		if stickHeld(id, a) {
			return true
		}
	}
	return false
}

func stickHeld(id ebiten.GamepadID, a game.Action) bool {
	x := ebiten.StandardGamepadAxisValue(id, ebiten.StandardGamepadAxisLeftStickHorizontal)
	y := ebiten.StandardGamepadAxisValue(id, ebiten.StandardGamepadAxisLeftStickVertical)
	switch a {
	case game.ActionLeft:
		return x < -stickDeadZone
	case game.ActionRight:
		return x > stickDeadZone
	case game.ActionUp:
		return y < -stickDeadZone
	case game.ActionDown:
		return y > stickDeadZone
	}
	return false
}
