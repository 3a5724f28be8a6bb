package game

import (
	"time"

	"github.com/brensch/snek3d/grid"
)

// Presenter receives cosmetic updates from the simulation. Nothing it does
// can influence a tick; implementations must copy anything they keep.
type Presenter interface {
	Spawned(e Entity)
	Destroyed(e Entity)
	// Moved reports a committed snake body. from is the body before the
	// move, to is the body after growth. d is the tick duration the
	// transition should take.
	Moved(id ID, from, to []grid.Cell, d time.Duration)
}

// NopPresenter discards every update.
type NopPresenter struct{}

func (NopPresenter) Spawned(Entity) {}

func (NopPresenter) Destroyed(Entity) {}

func (NopPresenter) Moved(ID, []grid.Cell, []grid.Cell, time.Duration) {}
