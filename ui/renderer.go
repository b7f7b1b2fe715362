// Package ui holds the pieces shared by the frontends that draw game
// snapshots, and the tcell terminal frontend.
package ui

import (
	"fmt"
	"math"

	"tui-snake/game/types"
)

const (
	fieldPercent = 70 // play-field share of the frame width
	framePadding = 1  // cells (or pixels, scaled) kept free around the frame
)

// Rect is an axis aligned area in screen coordinates, top-left origin.
type Rect struct {
	X, Y, W, H int
}

func (r Rect) Inset(n int) Rect {
	out := Rect{X: r.X + n, Y: r.Y + n, W: r.W - 2*n, H: r.H - 2*n}
	if out.W < 0 {
		out.W = 0
	}
	if out.H < 0 {
		out.H = 0
	}
	return out
}

func (r Rect) Empty() bool {
	return r.W <= 0 || r.H <= 0
}

// SplitPanes divides a w x h frame into the play field and the help pane.
func SplitPanes(w, h, padding int) (field, help Rect) {
	area := Rect{W: w, H: h}.Inset(padding)
	fieldW := area.W * fieldPercent / 100
	field = Rect{X: area.X, Y: area.Y, W: fieldW, H: area.H}
	help = Rect{X: area.X + fieldW, Y: area.Y, W: area.W - fieldW, H: area.H}
	return field, help
}

// UnitRect maps one board unit onto the cells of area. The area spans
// [-Bound, Bound] on both axes with y growing upwards. Every unit covers at
// least one cell.
func UnitRect(area Rect, u types.Unit) Rect {
	x0 := scale(u.X, area.W)
	x1 := scale(u.X+types.UnitSize, area.W)
	y0 := scale(u.Y, area.H)
	y1 := scale(u.Y+types.UnitSize, area.H)
	if x1 <= x0 {
		x1 = x0 + 1
	}
	if y1 <= y0 {
		y1 = y0 + 1
	}
	r := Rect{
		X: area.X + x0,
		Y: area.Y + area.H - y1,
		W: x1 - x0,
		H: y1 - y0,
	}
	return clip(r, area)
}

func scale(c float64, span int) int {
	return int(math.Floor((c + types.Bound) / (2 * types.Bound) * float64(span)))
}

func clip(r, bounds Rect) Rect {
	x0, y0 := max(r.X, bounds.X), max(r.Y, bounds.Y)
	x1, y1 := min(r.X+r.W, bounds.X+bounds.W), min(r.Y+r.H, bounds.Y+bounds.H)
	if x1 < x0 {
		x1 = x0
	}
	if y1 < y0 {
		y1 = y0
	}
	return Rect{X: x0, Y: y0, W: x1 - x0, H: y1 - y0}
}

const HelpTitle = "How to play"

// HelpLines is the text of the instructions pane.
func HelpLines(score int, stopped bool) []string {
	lines := []string{
		"",
		"Welcome to the game",
		"This is how to play the game",
		"",
		"Move up: up",
		"Move down: down",
		"Move left: left",
		"Move right: right",
		"",
		"Quit the game: q",
		"",
		fmt.Sprintf("Score: %d", score),
	}
	if stopped {
		lines = append(lines, "", "Game over! Press q to quit")
	}
	return lines
}

// WrapLine breaks s into chunks of at most width runes, preferring spaces.
func WrapLine(s string, width int) []string {
	if width <= 0 {
		return nil
	}
	runes := []rune(s)
	if len(runes) <= width {
		return []string{s}
	}
	var out []string
	for len(runes) > width {
		cut := width
		for i := width; i > 0; i-- {
			if runes[i] == ' ' {
				cut = i
				break
			}
		}
		out = append(out, string(runes[:cut]))
		runes = runes[cut:]
		for len(runes) > 0 && runes[0] == ' ' {
			runes = runes[1:]
		}
	}
	if len(runes) > 0 {
		out = append(out, string(runes))
	}
	return out
}
