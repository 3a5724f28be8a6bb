// food.go implements the passive food entity and its replenishment knobs.

package game

import "github.com/brensch/snek3d/grid"

// FoodSettings controls food replenishment between ticks.
type FoodSettings struct {
	MinimumFood     int // Keep at least this many food items on the field
	FoodSpawnChance int // Percentage chance (0-100) to spawn one extra item each tick
}

// Enabled reports whether any replenishment is configured.
func (s FoodSettings) Enabled() bool {
	return s.MinimumFood > 0 || s.FoodSpawnChance > 0
}

// Food occupies a single cell, never moves and dies when eaten.
type Food struct {
	base
}

// NewFood builds an unregistered food item at c.
func NewFood(c grid.Cell) *Food {
	return &Food{base: newBase([]grid.Cell{c})}
}

// SpawnFood places a new food item on a random empty cell of w.
func SpawnFood(w World) *Food {
	f := NewFood(w.Field().RandomEmptyCell(w.Rand()))
	f.place(w, f)
	return f
}

// Cell is the cell the food sits on.
func (f *Food) Cell() grid.Cell { return f.cells[0] }

func (f *Food) Decide(World) {}

func (f *Food) Move(World) {}

func (f *Food) Commit(w World) {
	f.destroy(w, f)
}
