package ui

import (
	"io"

	"tui-snake/game/entity"
	"tui-snake/input"

	"github.com/gdamore/tcell/v2"
	"github.com/pkg/errors"
)

const fullBlock = '█'

var (
	snakeStyle = tcell.StyleDefault.Foreground(tcell.ColorRed)
	foodStyle  = tcell.StyleDefault.Foreground(tcell.ColorGreen)
	textStyle  = tcell.StyleDefault
)

type border struct {
	h, v, tl, tr, bl, br rune
}

var (
	doubleBorder = border{'═', '║', '╔', '╗', '╚', '╝'}
	plainBorder  = border{'─', '│', '┌', '┐', '└', '┘'}
)

// Terminal draws frames on a tcell screen and reads keys from it. The
// screen stays in raw mode until Close.
type Terminal struct {
	screen tcell.Screen
}

// NewTerminal takes over the controlling terminal.
func NewTerminal() (*Terminal, error) {
	s, err := tcell.NewScreen()
	if err != nil {
		return nil, errors.Wrap(err, "create screen")
	}
	return NewTerminalScreen(s)
}

// NewTerminalScreen initialises s and wraps it.
func NewTerminalScreen(s tcell.Screen) (*Terminal, error) {
	if err := s.Init(); err != nil {
		return nil, errors.Wrap(err, "init screen")
	}
	s.HideCursor()
	s.Clear()
	return &Terminal{screen: s}, nil
}

// Close restores the terminal.
func (t *Terminal) Close() {
	t.screen.Fini()
}

func (t *Terminal) Clear() error {
	t.screen.Clear()
	t.screen.Show()
	return nil
}

func (t *Terminal) Render(snap entity.Snapshot) error {
	s := t.screen
	s.Clear()
	w, h := s.Size()
	field, help := SplitPanes(w, h, framePadding)

	t.drawBox(field, doubleBorder, "")
	inner := field.Inset(1)
	if !inner.Empty() {
		for _, seg := range snap.Segments {
			t.fill(UnitRect(inner, seg), snakeStyle)
		}
		t.fill(UnitRect(inner, snap.Food), foodStyle)
	}

	t.drawBox(help, plainBorder, HelpTitle)
	t.drawText(help.Inset(1), HelpLines(snap.Score, snap.Stopped))

	s.Show()
	return nil
}

func (t *Terminal) fill(r Rect, style tcell.Style) {
	for y := r.Y; y < r.Y+r.H; y++ {
		for x := r.X; x < r.X+r.W; x++ {
			t.screen.SetContent(x, y, fullBlock, nil, style)
		}
	}
}

func (t *Terminal) drawBox(r Rect, b border, title string) {
	if r.W < 2 || r.H < 2 {
		return
	}
	s := t.screen
	x1, y1 := r.X+r.W-1, r.Y+r.H-1
	for x := r.X + 1; x < x1; x++ {
		s.SetContent(x, r.Y, b.h, nil, textStyle)
		s.SetContent(x, y1, b.h, nil, textStyle)
	}
	for y := r.Y + 1; y < y1; y++ {
		s.SetContent(r.X, y, b.v, nil, textStyle)
		s.SetContent(x1, y, b.v, nil, textStyle)
	}
	s.SetContent(r.X, r.Y, b.tl, nil, textStyle)
	s.SetContent(x1, r.Y, b.tr, nil, textStyle)
	s.SetContent(r.X, y1, b.bl, nil, textStyle)
	s.SetContent(x1, y1, b.br, nil, textStyle)

	x := r.X + 1
	for _, c := range title {
		if x >= x1 {
			break
		}
		s.SetContent(x, r.Y, c, nil, textStyle)
		x++
	}
}

func (t *Terminal) drawText(r Rect, lines []string) {
	row := r.Y
	for _, line := range lines {
		wrapped := WrapLine(line, r.W)
		if line == "" {
			wrapped = []string{""}
		}
		for _, part := range wrapped {
			if row >= r.Y+r.H {
				return
			}
			col := r.X
			for _, c := range part {
				t.screen.SetContent(col, row, c, nil, textStyle)
				col++
			}
			row++
		}
	}
}

// ReadKey blocks for the next terminal event. Anything that is not a key
// press is undecodable; a finalised screen reads as io.EOF.
func (t *Terminal) ReadKey() (input.Key, error) {
	ev := t.screen.PollEvent()
	switch ev := ev.(type) {
	case nil:
		return input.KeyOther, io.EOF
	case *tcell.EventKey:
		return decodeKey(ev), nil
	case *tcell.EventResize:
		t.screen.Sync()
	}
	return input.KeyOther, input.ErrUndecodable
}

func decodeKey(ev *tcell.EventKey) input.Key {
	switch ev.Key() {
	case tcell.KeyUp:
		return input.KeyUp
	case tcell.KeyDown:
		return input.KeyDown
	case tcell.KeyLeft:
		return input.KeyLeft
	case tcell.KeyRight:
		return input.KeyRight
	case tcell.KeyRune:
		if ev.Rune() == 'q' {
			return input.KeyQuit
		}
	}
	return input.KeyOther
}
