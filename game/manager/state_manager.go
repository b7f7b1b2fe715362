package manager

import "github.com/golang/glog"

type GameState int

const (
	Running GameState = iota
	Done
)

func (s GameState) String() string {
	if s == Done {
		return "done"
	}
	return "running"
}

// StateManager tracks the session state machine and tick bookkeeping.
type StateManager struct {
	session  string
	state    GameState
	ticks    int
	gameOver bool
	overAt   int
}

func NewStateManager(session string) *StateManager {
	return &StateManager{
		session: session,
		state:   Running,
	}
}

func (sm *StateManager) Tick() {
	sm.ticks++
}

func (sm *StateManager) Ticks() int {
	return sm.ticks
}

// GameOver records the first collision. Later calls are ignored.
func (sm *StateManager) GameOver(score int) {
	if sm.gameOver {
		return
	}
	sm.gameOver = true
	sm.overAt = sm.ticks
	glog.Infof("session %s: game over at tick %d with score %d", sm.session, sm.ticks, score)
}

func (sm *StateManager) IsGameOver() bool {
	return sm.gameOver
}

// GameOverTick returns the tick at which the snake collided.
func (sm *StateManager) GameOverTick() int {
	return sm.overAt
}

// Quit moves the session to Done.
func (sm *StateManager) Quit() {
	if sm.state == Done {
		return
	}
	sm.state = Done
	glog.Infof("session %s: quit after %d ticks", sm.session, sm.ticks)
}

func (sm *StateManager) State() GameState {
	return sm.state
}
