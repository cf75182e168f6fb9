package game

import (
	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"
)

const statusHeight = 22

// drawStatus draws a one-line status bar along the bottom of the window.
func drawStatus(text string, width, height float32) {
	gui.StatusBar(rl.Rectangle{X: 0, Y: height - statusHeight, Width: width, Height: statusHeight}, text)
}
