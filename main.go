package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"tui-snake/game"
	"tui-snake/input"
	"tui-snake/ui"
	"tui-snake/ui/window"

	"github.com/golang/glog"
	"github.com/pkg/errors"
	"golang.org/x/term"
)

// raylib must stay on the main OS thread.
func init() {
	runtime.LockOSThread()
}

func main() {
	cfg := game.DefaultConfig()
	tick := flag.Duration("tick", cfg.Tick, "Time between game updates")
	seed := flag.Uint64("seed", 0, "Food placement seed (0 = time based)")
	windowed := flag.Bool("window", false, "Play in a raylib window instead of the terminal")
	flag.Parse()
	defer glog.Flush()

	cfg.Tick = *tick
	if *seed != 0 {
		cfg.Seed = *seed
	}

	if err := run(cfg, *windowed); err != nil {
		glog.Errorf("tui-snake: %v", err)
		glog.Flush()
		fmt.Fprintf(os.Stderr, "tui-snake: %v\n", err)
		os.Exit(1)
	}
}

// run owns the frontend for the whole session so it is released on every
// return path before main reports an error.
func run(cfg game.Config, windowed bool) error {
	if cfg.Tick <= 0 {
		return errors.Errorf("tick must be positive, got %v", cfg.Tick)
	}
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if windowed {
		w := window.OpenWindow(1280, 800, "Snake")
		defer w.Close()
		return play(ctx, cfg, w, w)
	}

	if !term.IsTerminal(int(os.Stdin.Fd())) {
		return errors.New("stdin is not a terminal")
	}
	t, err := ui.NewTerminal()
	if err != nil {
		return err
	}
	defer t.Close()
	return play(ctx, cfg, t, t)
}

func play(ctx context.Context, cfg game.Config, r game.Renderer, src input.KeySource) error {
	lctx, cancel := context.WithCancel(ctx)
	defer cancel()

	l := input.NewListener(src)
	l.Start(lctx)

	g := game.NewGame(cfg, r, l)
	err := g.Run(ctx)
	glog.Infof("session %s: ended after %v with score %d", g.UUID, g.ElapsedTime().Round(time.Millisecond), g.Score())
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}
