package game

import (
	"context"
	"time"

	"tui-snake/game/entity"
	"tui-snake/game/manager"
	"tui-snake/game/types"
	"tui-snake/input"

	"github.com/golang/glog"
	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// Renderer draws frames from read-only snapshots.
type Renderer interface {
	Render(snap entity.Snapshot) error
	Clear() error
}

type Config struct {
	Tick time.Duration
	Seed uint64
}

func DefaultConfig() Config {
	return Config{
		Tick: 100 * time.Millisecond,
		Seed: uint64(time.Now().UnixNano()),
	}
}

// Game owns the snake and the food for one session. Only the goroutine
// calling Run or Step touches them.
type Game struct {
	UUID      string
	StartTime time.Time

	snake    *entity.Snake
	food     types.Unit
	foodMgr  *manager.FoodManager
	stateMgr *manager.StateManager

	renderer Renderer
	keys     <-chan input.Key
	errs     <-chan error
	tick     time.Duration
	sleep    func(time.Duration)
}

// NewGame builds a session around a running listener.
func NewGame(cfg Config, r Renderer, l *input.Listener) *Game {
	return newGame(cfg, r, l.Keys(), l.Errors())
}

func newGame(cfg Config, r Renderer, keys <-chan input.Key, errs <-chan error) *Game {
	id := uuid.New().String()
	foodMgr := manager.NewFoodManager(types.Board, manager.NewCollisionManager(types.Board), cfg.Seed)
	snake := entity.NewSnake()
	food, _ := foodMgr.Place(snake)

	g := &Game{
		UUID:      id,
		StartTime: time.Now(),
		snake:     snake,
		food:      food,
		foodMgr:   foodMgr,
		stateMgr:  manager.NewStateManager(id),
		renderer:  r,
		keys:      keys,
		errs:      errs,
		tick:      cfg.Tick,
		sleep:     time.Sleep,
	}
	glog.Infof("session %s: started, tick %v, seed %d", id, cfg.Tick, cfg.Seed)
	return g
}

// Run steps the game until the player quits, a terminal fault occurs or ctx
// is cancelled.
func (g *Game) Run(ctx context.Context) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := g.Step(); err != nil {
			return err
		}
		if g.stateMgr.State() == manager.Done {
			return nil
		}
	}
}

// Step runs one iteration: update, sleep, render, then handle at most one
// pending key.
func (g *Game) Step() error {
	g.stateMgr.Tick()
	if err := g.snake.Update(&g.food, g.foodMgr); err != nil {
		if !errors.Is(err, entity.ErrCollision) {
			return err
		}
		g.snake.Stop()
		g.stateMgr.GameOver(g.snake.Score())
	}
	glog.V(2).Infof("session %s: tick %d head %+v dir %v", g.UUID, g.stateMgr.Ticks(), g.snake.Head(), g.snake.Direction())

	g.sleep(g.tick)

	if err := g.renderer.Render(g.Snapshot()); err != nil {
		return errors.Wrap(err, "render frame")
	}
	return g.handleInput()
}

func (g *Game) handleInput() error {
	select {
	case err := <-g.errs:
		return err
	case key := <-g.keys:
		return g.apply(key)
	default:
		return nil
	}
}

func (g *Game) apply(key input.Key) error {
	switch key {
	case input.KeyQuit:
		if err := g.renderer.Clear(); err != nil {
			return errors.Wrap(err, "clear screen")
		}
		g.stateMgr.Quit()
	case input.KeyUp:
		g.turn(types.Up)
	case input.KeyDown:
		g.turn(types.Down)
	case input.KeyLeft:
		g.turn(types.Left)
	case input.KeyRight:
		g.turn(types.Right)
	}
	return nil
}

func (g *Game) turn(d types.Direction) {
	if !g.snake.Turn(d) {
		glog.V(2).Infof("session %s: turn %v refused while heading %v", g.UUID, d, g.snake.Direction())
	}
}

func (g *Game) Snapshot() entity.Snapshot {
	return g.snake.Snapshot(g.food)
}

func (g *Game) State() manager.GameState {
	return g.stateMgr.State()
}

func (g *Game) Score() int {
	return g.snake.Score()
}

// Direction returns the current heading.
func (g *Game) Direction() types.Direction {
	return g.snake.Direction()
}

func (g *Game) Ticks() int {
	return g.stateMgr.Ticks()
}

// ElapsedTime returns how long the session has been running.
func (g *Game) ElapsedTime() time.Duration {
	return time.Since(g.StartTime)
}
