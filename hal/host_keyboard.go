//go:build !tinygo && cgo

package hal

import "github.com/hajimehoshi/ebiten/v2"

// pollKeyboard maps held keys onto the three front buttons.
func pollKeyboard() ButtonMask {
	var m ButtonMask
	if ebiten.IsKeyPressed(ebiten.KeyArrowLeft) || ebiten.IsKeyPressed(ebiten.KeyA) {
		m |= ButtonLeft
	}
	if ebiten.IsKeyPressed(ebiten.KeyEnter) || ebiten.IsKeyPressed(ebiten.KeySpace) ||
		ebiten.IsKeyPressed(ebiten.KeyArrowDown) || ebiten.IsKeyPressed(ebiten.KeyS) {
		m |= ButtonOk
	}
	if ebiten.IsKeyPressed(ebiten.KeyArrowRight) || ebiten.IsKeyPressed(ebiten.KeyD) {
		m |= ButtonRight
	}
	return m
}
