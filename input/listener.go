// Package input bridges blocking key reads onto the game loop through a
// channel.
package input

import (
	"context"

	"github.com/golang/glog"
	"github.com/pkg/errors"
)

type Key int

const (
	KeyOther Key = iota
	KeyUp
	KeyDown
	KeyLeft
	KeyRight
	KeyQuit
)

func (k Key) String() string {
	switch k {
	case KeyUp:
		return "up"
	case KeyDown:
		return "down"
	case KeyLeft:
		return "left"
	case KeyRight:
		return "right"
	case KeyQuit:
		return "quit"
	}
	return "other"
}

// KeyBuffer is large enough that human typing never blocks the listener.
const KeyBuffer = 128

// ErrUndecodable marks an event that is not a key press. The listener drops
// it.
var ErrUndecodable = errors.New("undecodable input event")

// KeySource blocks until the next key press is available.
type KeySource interface {
	ReadKey() (Key, error)
}

// Listener forwards keys from a KeySource to the game loop. It runs on its
// own goroutine for the whole session.
type Listener struct {
	src  KeySource
	keys chan Key
	errs chan error
	done chan struct{}
}

func NewListener(src KeySource) *Listener {
	return &Listener{
		src:  src,
		keys: make(chan Key, KeyBuffer),
		errs: make(chan error, 1),
		done: make(chan struct{}),
	}
}

// Start launches the read loop. Cancelling ctx stands for the receiver going
// away; the listener stops at its next send.
func (l *Listener) Start(ctx context.Context) {
	go l.run(ctx)
}

func (l *Listener) run(ctx context.Context) {
	defer close(l.done)
	for {
		key, err := l.src.ReadKey()
		if errors.Is(err, ErrUndecodable) {
			continue
		}
		if err != nil {
			l.errs <- errors.Wrap(err, "read key")
			return
		}

		select {
		case l.keys <- key:
		case <-ctx.Done():
			return
		}
		glog.V(2).Infof("key %v queued", key)
		if key == KeyQuit {
			return
		}
	}
}

// Keys delivers decoded keys in arrival order.
func (l *Listener) Keys() <-chan Key {
	return l.keys
}

// Errors delivers at most one fatal read error.
func (l *Listener) Errors() <-chan error {
	return l.errs
}

// Done is closed once the read loop has exited.
func (l *Listener) Done() <-chan struct{} {
	return l.done
}
