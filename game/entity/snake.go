package entity

import (
	"tui-snake/game/types"

	"github.com/pkg/errors"
	"golang.org/x/exp/slices"
)

// ErrCollision is returned by Update when the next head would land on the
// snake's own body.
var ErrCollision = errors.New("there was a collision detected")

// FoodPoints is the score awarded per food item.
const FoodPoints = 10

// FoodPlacer picks a free cell for the next food item. It reports false
// when the board has no free cell left.
type FoodPlacer interface {
	Place(s *Snake) (types.Unit, bool)
}

type Snake struct {
	body      []types.Unit // head first
	direction types.Direction
	growth    []types.Unit // newest first
	score     int
}

// NewSnake returns the starting snake: five segments stacked vertically on
// x=0 with the head on top, heading up.
func NewSnake() *Snake {
	body := make([]types.Unit, 0, 5)
	for i := 4; i >= 0; i-- {
		body = append(body, types.CellUnit(0, i))
	}
	return FromBody(body, types.Up)
}

// FromBody builds a snake from an explicit head-first body.
func FromBody(body []types.Unit, dir types.Direction) *Snake {
	return &Snake{
		body:      slices.Clone(body),
		direction: dir,
	}
}

// Update advances the snake one cell along its heading, eating the food if
// the head currently sits on it.
func (s *Snake) Update(food *types.Unit, placer FoodPlacer) error {
	if s.direction == types.Stopped {
		return nil
	}

	head := s.Head()
	newHead := head.Step(s.direction)

	if head == *food {
		s.growth = slices.Insert(s.growth, 0, *food)
		s.score += FoodPoints
		if next, ok := placer.Place(s); ok {
			*food = next
		}
	}

	// Growing skips one tail pop once the tail reaches the oldest eaten cell.
	tail := s.body[len(s.body)-1]
	s.body = s.body[:len(s.body)-1]
	if n := len(s.growth); n > 0 && tail == s.growth[n-1] {
		s.body = append(s.body, tail)
		s.growth = s.growth[:n-1]
	}

	if s.Occupied(newHead) {
		return ErrCollision
	}
	s.body = slices.Insert(s.body, 0, newHead)
	return nil
}

// Occupied reports whether u is covered by any body segment.
func (s *Snake) Occupied(u types.Unit) bool {
	return slices.Contains(s.body, u)
}

// Turn changes the heading. A stopped snake never turns, and the direct
// reverse is refused while the snake has a neck to run into.
func (s *Snake) Turn(d types.Direction) bool {
	if s.direction == types.Stopped || d == types.Stopped {
		return false
	}
	if len(s.body) > 1 && d == s.direction.Opposite() {
		return false
	}
	s.direction = d
	return true
}

// Stop freezes the snake for good.
func (s *Snake) Stop() {
	s.direction = types.Stopped
}

func (s *Snake) Head() types.Unit {
	return s.body[0]
}

func (s *Snake) Tail() types.Unit {
	return s.body[len(s.body)-1]
}

func (s *Snake) Len() int {
	return len(s.body)
}

func (s *Snake) Direction() types.Direction {
	return s.direction
}

func (s *Snake) Score() int {
	return s.score
}

// Pending returns how many eaten cells have not yet been absorbed into
// the body.
func (s *Snake) Pending() int {
	return len(s.growth)
}

// Body returns a copy of the segments, head first.
func (s *Snake) Body() []types.Unit {
	return slices.Clone(s.body)
}

// Snapshot is a read-only copy of the state a renderer needs for one frame.
type Snapshot struct {
	Segments []types.Unit
	Food     types.Unit
	Score    int
	Stopped  bool
}

func (s *Snake) Snapshot(food types.Unit) Snapshot {
	return Snapshot{
		Segments: s.Body(),
		Food:     food,
		Score:    s.score,
		Stopped:  s.direction == types.Stopped,
	}
}
