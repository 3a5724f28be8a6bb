package game

import (
	"math/rand"

	"github.com/brensch/snek3d/grid"
	"github.com/google/uuid"
)

// ID identifies an entity for its whole lifetime.
type ID = uuid.UUID

// ShortID is the first eight hex digits of id, for logs and the TUI.
func ShortID(id ID) string {
	return id.String()[:8]
}

// Field is the occupancy grid entities live on.
type Field = grid.Grid[Entity]

// DeathCause records why an entity was flagged dead.
type DeathCause string

const (
	CauseNone       DeathCause = ""
	CauseCollision  DeathCause = "collision"
	CauseStarvation DeathCause = "starvation"
	CauseEaten      DeathCause = "eaten"
)

// World is what an entity sees of the engine that owns it.
type World interface {
	Settings() Settings
	Field() *Field
	Rand() *rand.Rand
	Register(e Entity)
	// Unregister schedules e for removal once the current phase is done.
	Unregister(e Entity)
	Presenter() Presenter
}

// Entity is a simulation actor. The engine calls Decide, Move and Commit
// on every registered entity in registry order, one phase at a time.
//
// Decide must not touch the field. Move may only update the entity's own
// cells. Commit applies the flags set by the resolve phase.
type Entity interface {
	ID() ID
	// Cells lists occupied cells, head first. The slice must not be modified.
	Cells() []grid.Cell
	Alive() bool
	Cause() DeathCause
	Kill(cause DeathCause)

	Decide(w World)
	Move(w World)
	Commit(w World)
}

// base carries the state shared by every entity variant.
type base struct {
	id    ID
	cells []grid.Cell
	dead  bool
	cause DeathCause
}

func newBase(cells []grid.Cell) base {
	return base{id: uuid.New(), cells: cells}
}

func (b *base) ID() ID { return b.id }

func (b *base) Cells() []grid.Cell { return b.cells }

func (b *base) Alive() bool { return !b.dead }

func (b *base) Cause() DeathCause { return b.cause }

// Kill flags the entity dead. The first cause sticks.
func (b *base) Kill(cause DeathCause) {
	if b.dead {
		return
	}
	b.dead = true
	b.cause = cause
}

// place registers self and claims its cells.
func (b *base) place(w World, self Entity) {
	w.Register(self)
	f := w.Field()
	for _, c := range b.cells {
		f.Assign(self, c)
	}
	w.Presenter().Spawned(self)
}

// destroy releases every cell self holds and schedules it for removal.
// It reports whether self was dead.
func (b *base) destroy(w World, self Entity) bool {
	if !b.dead {
		return false
	}
	w.Unregister(self)
	f := w.Field()
	for _, c := range b.cells {
		f.Unassign(self, c)
	}
	w.Presenter().Destroyed(self)
	return true
}
