package main

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/milk9111/resonance/scene"
)

// stickDeadzone is the left-stick magnitude below which the axis reads 0.
const stickDeadzone = 0.3

// Input holds this frame's polled input.
type Input struct {
	// Move is the movement intent handed to the scene.
	Move scene.Input
	// CyclePressed is true on the frame the vibrancy key (V) was pressed.
	CyclePressed bool
	// ReturnPressed is true on the frame Backspace was pressed.
	ReturnPressed bool
	// DebugPressed toggles the HUD.
	DebugPressed bool
	// QuitPressed is true on the frame F12 was pressed.
	QuitPressed bool
}

func NewInput() *Input {
	return &Input{}
}

// Update polls the keyboard and the first gamepad.
func (i *Input) Update() {
	var dx, dy float64
	if ebiten.IsKeyPressed(ebiten.KeyA) || ebiten.IsKeyPressed(ebiten.KeyLeft) {
		dx -= 1
	}
	if ebiten.IsKeyPressed(ebiten.KeyD) || ebiten.IsKeyPressed(ebiten.KeyRight) {
		dx += 1
	}
	if ebiten.IsKeyPressed(ebiten.KeyW) || ebiten.IsKeyPressed(ebiten.KeyUp) {
		dy -= 1
	}
	if ebiten.IsKeyPressed(ebiten.KeyS) || ebiten.IsKeyPressed(ebiten.KeyDown) {
		dy += 1
	}

	var gpCycle, gpReturn bool
	if ids := ebiten.AppendGamepadIDs(nil); len(ids) > 0 {
		gid := ids[0]
		if x := ebiten.StandardGamepadAxisValue(gid, ebiten.StandardGamepadAxisLeftStickHorizontal); x < -stickDeadzone || x > stickDeadzone {
			dx = x
		}
		if y := ebiten.StandardGamepadAxisValue(gid, ebiten.StandardGamepadAxisLeftStickVertical); y < -stickDeadzone || y > stickDeadzone {
			dy = y
		}
		gpCycle = inpututil.IsStandardGamepadButtonJustPressed(gid, ebiten.StandardGamepadButtonRightBottom)
		gpReturn = inpututil.IsStandardGamepadButtonJustPressed(gid, ebiten.StandardGamepadButtonRightRight)
	}

	i.Move = scene.Input{DX: dx, DY: dy}
	i.CyclePressed = inpututil.IsKeyJustPressed(ebiten.KeyV) || gpCycle
	i.ReturnPressed = inpututil.IsKeyJustPressed(ebiten.KeyBackspace) || gpReturn
	i.DebugPressed = inpututil.IsKeyJustPressed(ebiten.KeyF3)
	i.QuitPressed = inpututil.IsKeyJustPressed(ebiten.KeyF12)
}
