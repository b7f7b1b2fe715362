package manager

import (
	"tui-snake/game/entity"
	"tui-snake/game/types"

	"github.com/golang/glog"
	"golang.org/x/exp/rand"
)

// MaxPlacementAttempts caps random sampling before falling back to a scan
// of the free cells.
const MaxPlacementAttempts = 256

type FoodManager struct {
	grid         types.Grid
	rng          *rand.Rand
	collisionMgr *CollisionManager
}

func NewFoodManager(grid types.Grid, collisionMgr *CollisionManager, seed uint64) *FoodManager {
	return &FoodManager{
		grid:         grid,
		rng:          rand.New(rand.NewSource(seed)),
		collisionMgr: collisionMgr,
	}
}

// Place returns a random cell not covered by the snake. It reports false
// only when every cell is occupied.
func (fm *FoodManager) Place(snake *entity.Snake) (types.Unit, bool) {
	for i := 0; i < MaxPlacementAttempts; i++ {
		food := fm.randomCell()
		if fm.collisionMgr.ValidateSpawnPosition(food, snake) {
			return food, true
		}
	}

	free := fm.collisionMgr.FreeCells(snake)
	glog.V(1).Infof("food placement fell back to scan: %d free cells", len(free))
	if len(free) == 0 {
		return types.Unit{}, false
	}
	return free[fm.rng.Intn(len(free))], true
}

func (fm *FoodManager) randomCell() types.Unit {
	return types.CellUnit(
		fm.rng.Intn(fm.grid.Width)-fm.grid.Width/2,
		fm.rng.Intn(fm.grid.Height)-fm.grid.Height/2,
	)
}
