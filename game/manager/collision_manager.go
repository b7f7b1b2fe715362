package manager

import (
	"tui-snake/game/entity"
	"tui-snake/game/types"
)

type CollisionManager struct {
	grid types.Grid
}

func NewCollisionManager(grid types.Grid) *CollisionManager {
	return &CollisionManager{
		grid: grid,
	}
}

// ValidateSpawnPosition checks if a position is a free board cell for food
func (cm *CollisionManager) ValidateSpawnPosition(pos types.Unit, snake *entity.Snake) bool {
	if !pos.InBounds() {
		return false
	}
	return snake == nil || !snake.Occupied(pos)
}

// FreeCells lists every unoccupied cell in row-major order, bottom row first.
func (cm *CollisionManager) FreeCells(snake *entity.Snake) []types.Unit {
	free := make([]types.Unit, 0, cm.grid.Cells())
	for cy := -cm.grid.Height / 2; cy < cm.grid.Height/2; cy++ {
		for cx := -cm.grid.Width / 2; cx < cm.grid.Width/2; cx++ {
			pos := types.CellUnit(cx, cy)
			if cm.ValidateSpawnPosition(pos, snake) {
				free = append(free, pos)
			}
		}
	}
	return free
}
