package game

import (
	"context"
	"io"
	"testing"
	"time"

	"tui-snake/game/entity"
	"tui-snake/game/manager"
	"tui-snake/game/types"
	"tui-snake/input"

	"github.com/pkg/errors"
)

type recordingRenderer struct {
	frames    []entity.Snapshot
	clears    int
	renderErr error
	log       *[]string
}

func (r *recordingRenderer) Render(snap entity.Snapshot) error {
	if r.log != nil {
		*r.log = append(*r.log, "render")
	}
	if r.renderErr != nil {
		return r.renderErr
	}
	r.frames = append(r.frames, snap)
	return nil
}

func (r *recordingRenderer) Clear() error {
	r.clears++
	return nil
}

type harness struct {
	g    *Game
	r    *recordingRenderer
	keys chan input.Key
	errs chan error
}

func newHarness() *harness {
	h := &harness{
		r:    &recordingRenderer{},
		keys: make(chan input.Key, input.KeyBuffer),
		errs: make(chan error, 1),
	}
	h.g = newGame(Config{Tick: time.Millisecond, Seed: 3}, h.r, h.keys, h.errs)
	h.g.sleep = func(time.Duration) {}
	h.g.food = types.CellUnit(-15, -15)
	return h
}

func (h *harness) step(t *testing.T) {
	t.Helper()
	if err := h.g.Step(); err != nil {
		t.Fatalf("Step: %v", err)
	}
}

func TestStepOrderIsUpdateSleepRender(t *testing.T) {
	h := newHarness()
	var calls []string
	h.r.log = &calls
	var slept time.Duration
	h.g.sleep = func(d time.Duration) {
		slept = d
		calls = append(calls, "sleep")
	}
	h.step(t)

	if len(calls) != 2 || calls[0] != "sleep" || calls[1] != "render" {
		t.Fatalf("calls = %v, want [sleep render]", calls)
	}
	if slept != time.Millisecond {
		t.Fatalf("slept %v, want the configured tick", slept)
	}
	// The frame already shows the moved snake.
	if head := h.r.frames[0].Segments[0]; head != types.CellUnit(0, 5) {
		t.Fatalf("rendered head = %+v, want (0,25)", head)
	}
}

func TestQuitClearsAndEndsRun(t *testing.T) {
	h := newHarness()
	h.keys <- input.KeyQuit
	if err := h.g.Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if h.g.State() != manager.Done {
		t.Fatalf("state = %v, want done", h.g.State())
	}
	if h.r.clears != 1 {
		t.Fatalf("clears = %d, want 1", h.r.clears)
	}
	if len(h.r.frames) != 1 {
		t.Fatalf("frames = %d, want 1", len(h.r.frames))
	}
}

func TestReverseInputIsRejected(t *testing.T) {
	h := newHarness()
	h.keys <- input.KeyDown
	h.step(t)
	if h.g.Direction() != types.Up {
		t.Fatalf("direction = %v, want up", h.g.Direction())
	}
}

func TestOneKeyPerTickInArrivalOrder(t *testing.T) {
	h := newHarness()
	h.keys <- input.KeyLeft
	h.keys <- input.KeyUp
	h.keys <- input.KeyOther

	h.step(t)
	if h.g.Direction() != types.Left {
		t.Fatalf("after tick 1 direction = %v, want left", h.g.Direction())
	}
	if len(h.keys) != 2 {
		t.Fatalf("backlog = %d, want 2", len(h.keys))
	}
	h.step(t)
	if h.g.Direction() != types.Up {
		t.Fatalf("after tick 2 direction = %v, want up", h.g.Direction())
	}
	h.step(t)
	if h.g.Direction() != types.Up || len(h.keys) != 0 {
		t.Fatalf("after tick 3 direction = %v backlog = %d", h.g.Direction(), len(h.keys))
	}
}

func TestCollisionFreezesSnakeButKeepsRendering(t *testing.T) {
	h := newHarness()
	hook := []types.Unit{
		types.CellUnit(0, 0), types.CellUnit(0, 1), types.CellUnit(-1, 1),
		types.CellUnit(-1, 0), types.CellUnit(-1, -1),
	}
	h.g.snake = entity.FromBody(hook, types.Left)

	h.step(t)
	if h.g.Direction() != types.Stopped {
		t.Fatalf("direction = %v, want stopped", h.g.Direction())
	}
	frozen := h.g.Snapshot()
	if !frozen.Stopped {
		t.Fatal("snapshot should report the stopped snake")
	}

	h.keys <- input.KeyUp
	for i := 0; i < 3; i++ {
		h.step(t)
	}
	if h.g.Direction() != types.Stopped {
		t.Fatalf("direction after keys = %v, want stopped", h.g.Direction())
	}
	if len(h.r.frames) != 4 {
		t.Fatalf("frames = %d, want 4", len(h.r.frames))
	}
	last := h.r.frames[3]
	if len(last.Segments) != len(frozen.Segments) || last.Segments[0] != frozen.Segments[0] {
		t.Fatalf("snake moved after game over: %+v vs %+v", last.Segments, frozen.Segments)
	}
	if h.g.State() != manager.Running {
		t.Fatal("game over must not end the session")
	}

	h.keys <- input.KeyQuit
	if err := h.g.Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if h.g.State() != manager.Done {
		t.Fatalf("state = %v, want done", h.g.State())
	}
}

func TestEatingFoodScores(t *testing.T) {
	h := newHarness()
	h.g.food = h.g.snake.Head()
	h.step(t)
	if h.g.Score() != entity.FoodPoints {
		t.Fatalf("score = %d, want %d", h.g.Score(), entity.FoodPoints)
	}
	snap := h.g.Snapshot()
	if snap.Score != entity.FoodPoints {
		t.Fatalf("snapshot score = %d", snap.Score)
	}
	// Food is placed before the move, so only the new head may coincide.
	for _, seg := range snap.Segments[1:] {
		if seg == snap.Food {
			t.Fatalf("food relocated onto the snake at %+v", seg)
		}
	}
}

func TestRenderFailureIsFatal(t *testing.T) {
	h := newHarness()
	h.r.renderErr = io.ErrClosedPipe
	err := h.g.Run(context.Background())
	if !errors.Is(err, io.ErrClosedPipe) {
		t.Fatalf("Run err = %v, want wrapped io.ErrClosedPipe", err)
	}
	if h.g.Ticks() != 1 {
		t.Fatalf("ticks = %d, want 1", h.g.Ticks())
	}
}

func TestListenerFailureIsFatal(t *testing.T) {
	h := newHarness()
	h.errs <- errors.Wrap(io.EOF, "read key")
	err := h.g.Run(context.Background())
	if !errors.Is(err, io.EOF) {
		t.Fatalf("Run err = %v, want wrapped io.EOF", err)
	}
}

func TestRunStopsOnCancelledContext(t *testing.T) {
	h := newHarness()
	ctx, cancel := context.WithCancel(context.Background())
	steps := 0
	h.g.sleep = func(time.Duration) {
		steps++
		if steps == 3 {
			cancel()
		}
	}
	if err := h.g.Run(ctx); !errors.Is(err, context.Canceled) {
		t.Fatalf("Run err = %v, want context.Canceled", err)
	}
	if steps != 3 {
		t.Fatalf("steps = %d, want 3", steps)
	}
}

func TestNewGamePlacesFoodOffTheSnake(t *testing.T) {
	l := input.NewListener(nil)
	g := NewGame(Config{Tick: time.Millisecond, Seed: 11}, &recordingRenderer{}, l)
	snap := g.Snapshot()
	if len(snap.Segments) != 5 || snap.Score != 0 || snap.Stopped {
		t.Fatalf("unexpected initial snapshot %+v", snap)
	}
	for _, seg := range snap.Segments {
		if seg == snap.Food {
			t.Fatalf("initial food on the snake at %+v", seg)
		}
	}
	if g.UUID == "" {
		t.Fatal("session id missing")
	}
}
