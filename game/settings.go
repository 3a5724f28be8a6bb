package game

import (
	"errors"
	"fmt"
	"time"

	"github.com/brensch/snek3d/grid"
)

// ErrInvalidSettings is wrapped by every Settings.Validate failure.
var ErrInvalidSettings = errors.New("invalid settings")

// Settings is the configuration snapshot a simulation is started with.
// It is never modified once the engine has been built.
//
// The counts must fit the field: snakes need SnakeStartLength free cells
// in a row along +X and every food item needs one free cell. Validate
// catches layouts that cannot fit at all, but placement is randomised and
// may still spin forever on a field that is too crowded to fit the snakes.
type Settings struct {
	TickInterval     time.Duration
	FieldSize        int     // cells per axis
	CellSize         float64 // world units per cell
	SnakeCount       int
	SnakeStartLength int
	FoodCount        int

	// Food replenishment after each tick. The zero value disables it.
	Food FoodSettings

	// WanderWithoutFood lets a snake that sees no food move to a random
	// free neighbour instead of starving.
	WanderWithoutFood bool

	// Seed for the simulation RNG. Zero means seed from the clock.
	Seed int64
}

// DefaultSettings returns a 15^3 field with two snakes of length 3 and
// ten food items, ticking twice a second.
func DefaultSettings() Settings {
	return Settings{
		TickInterval:     500 * time.Millisecond,
		FieldSize:        15,
		CellSize:         1,
		SnakeCount:       2,
		SnakeStartLength: 3,
		FoodCount:        10,
	}
}

// Frame is the world mapping for these settings.
func (s Settings) Frame() grid.Frame {
	return grid.Frame{FieldSize: s.FieldSize, CellSize: s.CellSize}
}

// Validate rejects settings no simulation can start with.
func (s Settings) Validate() error {
	switch {
	case s.TickInterval <= 0:
		return fmt.Errorf("%w: tick interval %s must be positive", ErrInvalidSettings, s.TickInterval)
	case s.FieldSize <= 0:
		return fmt.Errorf("%w: field size %d must be positive", ErrInvalidSettings, s.FieldSize)
	case s.CellSize <= 0:
		return fmt.Errorf("%w: cell size %g must be positive", ErrInvalidSettings, s.CellSize)
	case s.SnakeCount < 0 || s.FoodCount < 0:
		return fmt.Errorf("%w: negative entity count (snakes=%d food=%d)", ErrInvalidSettings, s.SnakeCount, s.FoodCount)
	case s.SnakeCount > 0 && (s.SnakeStartLength < 1 || s.SnakeStartLength > s.FieldSize):
		return fmt.Errorf("%w: snake length %d must be in [1, %d]", ErrInvalidSettings, s.SnakeStartLength, s.FieldSize)
	case s.Food.MinimumFood < 0:
		return fmt.Errorf("%w: minimum food %d is negative", ErrInvalidSettings, s.Food.MinimumFood)
	case s.Food.FoodSpawnChance < 0 || s.Food.FoodSpawnChance > 100:
		return fmt.Errorf("%w: food spawn chance %d not in [0, 100]", ErrInvalidSettings, s.Food.FoodSpawnChance)
	}

	cells := s.FieldSize * s.FieldSize * s.FieldSize
	demand := s.SnakeCount*s.SnakeStartLength + s.FoodCount
	if demand > cells {
		return fmt.Errorf("%w: %d snakes of length %d and %d food need %d cells, field has %d",
			ErrInvalidSettings, s.SnakeCount, s.SnakeStartLength, s.FoodCount, demand, cells)
	}
	return nil
}
