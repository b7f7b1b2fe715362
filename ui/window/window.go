// Package window is the raylib frontend.
package window

import (
	"io"

	"tui-snake/game/entity"
	"tui-snake/input"
	"tui-snake/ui"

	rl "github.com/gen2brain/raylib-go/raylib"
)

const (
	borderPadding = 10 // pixels around the frame
	pixelsPerChar = 8  // rough glyph width used to wrap help text
)

// Window draws frames in a raylib window. It must be created and used from
// the main OS thread; keys are polled while drawing and handed to ReadKey
// through a buffered channel.
type Window struct {
	screenWidth  int32
	screenHeight int32
	keys         chan input.Key
	quitSent     bool
}

func OpenWindow(width, height int32, title string) *Window {
	rl.InitWindow(width, height, title)
	rl.SetWindowState(rl.FlagWindowResizable)
	rl.SetTargetFPS(60)

	w := &Window{keys: make(chan input.Key, input.KeyBuffer)}
	w.UpdateDimensions()
	return w
}

func (w *Window) UpdateDimensions() {
	w.screenWidth = int32(rl.GetScreenWidth())
	w.screenHeight = int32(rl.GetScreenHeight())
}

// Close shuts the window. ReadKey reports io.EOF afterwards.
func (w *Window) Close() {
	rl.CloseWindow()
	close(w.keys)
}

func (w *Window) Clear() error {
	rl.BeginDrawing()
	rl.ClearBackground(rl.Black)
	rl.EndDrawing()
	return nil
}

func (w *Window) Render(snap entity.Snapshot) error {
	w.UpdateDimensions()
	rl.BeginDrawing()
	rl.ClearBackground(rl.Black)

	field, help := ui.SplitPanes(int(w.screenWidth), int(w.screenHeight), borderPadding)

	// Keep the play field square so units stay square.
	side := min(field.W, field.H)
	field = ui.Rect{X: field.X, Y: field.Y + (field.H-side)/2, W: side, H: side}

	rl.DrawRectangle(int32(field.X-1), int32(field.Y-1), int32(field.W+2), int32(field.H+2), rl.DarkGray)
	rl.DrawRectangleLines(int32(field.X-3), int32(field.Y-3), int32(field.W+6), int32(field.H+6), rl.White)
	rl.DrawRectangleLines(int32(field.X-1), int32(field.Y-1), int32(field.W+2), int32(field.H+2), rl.White)

	for _, seg := range snap.Segments {
		w.drawUnit(ui.UnitRect(field, seg), rl.Red)
	}
	w.drawUnit(ui.UnitRect(field, snap.Food), rl.Green)

	w.drawHelp(help, snap)
	rl.EndDrawing()

	w.pollKeys()
	return nil
}

func (w *Window) drawUnit(r ui.Rect, color rl.Color) {
	rl.DrawRectangle(int32(r.X), int32(r.Y), int32(r.W), int32(r.H), color)
}

func (w *Window) drawHelp(r ui.Rect, snap entity.Snapshot) {
	fontSize := min(w.screenHeight/45, int32(r.W)/15)
	lineHeight := fontSize + fontSize/3

	rl.DrawRectangle(int32(r.X), int32(r.Y), int32(r.W), int32(r.H), rl.DarkGray)
	x := int32(r.X) + 5
	y := int32(r.Y) + 5
	rl.DrawText(ui.HelpTitle, x, y, fontSize, rl.White)
	y += lineHeight

	maxChars := max(1, r.W/pixelsPerChar)
	for _, line := range ui.HelpLines(snap.Score, snap.Stopped) {
		for _, part := range ui.WrapLine(line, maxChars) {
			rl.DrawText(part, x, y, fontSize, rl.RayWhite)
			y += lineHeight
		}
		if line == "" {
			y += lineHeight
		}
	}
}

// pollKeys drains raylib's key queue. Closing the window counts as quit.
func (w *Window) pollKeys() {
	for k := rl.GetKeyPressed(); k != 0; k = rl.GetKeyPressed() {
		w.push(windowKey(k))
	}
	if rl.WindowShouldClose() && !w.quitSent {
		w.push(input.KeyQuit)
	}
}

func (w *Window) push(k input.Key) {
	select {
	case w.keys <- k:
		if k == input.KeyQuit {
			w.quitSent = true
		}
	default:
	}
}

func windowKey(k int32) input.Key {
	switch k {
	case rl.KeyUp:
		return input.KeyUp
	case rl.KeyDown:
		return input.KeyDown
	case rl.KeyLeft:
		return input.KeyLeft
	case rl.KeyRight:
		return input.KeyRight
	case rl.KeyQ:
		return input.KeyQuit
	}
	return input.KeyOther
}

// ReadKey blocks until Render has polled another key.
func (w *Window) ReadKey() (input.Key, error) {
	k, ok := <-w.keys
	if !ok {
		return input.KeyOther, io.EOF
	}
	return k, nil
}
