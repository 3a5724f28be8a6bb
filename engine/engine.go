// Package engine owns a running simulation: the field, the entity
// registry and the fixed-tick phase loop that drives them.
package engine

import (
	"fmt"
	"log/slog"
	"math/rand"
	"sync/atomic"
	"time"

	"github.com/brensch/snek3d/game"
	"github.com/brensch/snek3d/grid"
	"github.com/brensch/snek3d/logging"
)

// Engine is a single simulation. All methods except Phase and Ticks must
// be called from one goroutine; Run is that goroutine when used.
type Engine struct {
	settings  game.Settings
	field     *game.Field
	rng       *rand.Rand
	log       *slog.Logger
	presenter game.Presenter
	observers []func(*game.Snapshot)

	entities []game.Entity
	pending  []game.Entity // unregistered during the current tick

	phase atomic.Uint32
	ticks atomic.Uint64
}

// Option configures an Engine.
type Option func(*Engine)

// WithLogger sets the logger. The default discards everything.
func WithLogger(l *slog.Logger) Option {
	return func(e *Engine) { e.log = l }
}

// WithPresenter sets the presentation collaborator.
func WithPresenter(p game.Presenter) Option {
	return func(e *Engine) { e.presenter = p }
}

// WithRand replaces the RNG derived from Settings.Seed.
func WithRand(r *rand.Rand) Option {
	return func(e *Engine) { e.rng = r }
}

// WithObserver registers fn to receive a snapshot after every tick. fn
// runs on the engine goroutine and must not block.
func WithObserver(fn func(*game.Snapshot)) Option {
	return func(e *Engine) { e.observers = append(e.observers, fn) }
}

// New validates settings and builds an empty engine. Call Populate (or
// Add) to place entities.
func New(settings game.Settings, opts ...Option) (*Engine, error) {
	if err := settings.Validate(); err != nil {
		return nil, err
	}

	seed := settings.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	e := &Engine{
		settings:  settings,
		field:     grid.New[game.Entity](settings.FieldSize),
		rng:       rand.New(rand.NewSource(seed)),
		log:       logging.Discard(),
		presenter: game.NopPresenter{},
	}
	for _, opt := range opts {
		opt(e)
	}
	return e, nil
}

// Settings implements game.World.
func (e *Engine) Settings() game.Settings { return e.settings }

// Field implements game.World.
func (e *Engine) Field() *game.Field { return e.field }

// Rand implements game.World.
func (e *Engine) Rand() *rand.Rand { return e.rng }

// Presenter implements game.World.
func (e *Engine) Presenter() game.Presenter { return e.presenter }

// Register implements game.World. The entity joins the registry
// immediately; entities are only registered outside phase iteration.
func (e *Engine) Register(ent game.Entity) {
	e.entities = append(e.entities, ent)
}

// Unregister implements game.World. Removal is deferred to Cleanup.
func (e *Engine) Unregister(ent game.Entity) {
	e.pending = append(e.pending, ent)
}

// Add registers a pre-built entity and assigns its cells. Cells must be
// inside the field.
func (e *Engine) Add(ent game.Entity) error {
	for _, c := range ent.Cells() {
		if !e.field.Inside(c) {
			return fmt.Errorf("add %s: cell %s outside field", game.ShortID(ent.ID()), c)
		}
	}
	e.Register(ent)
	for _, c := range ent.Cells() {
		e.field.Assign(ent, c)
	}
	e.presenter.Spawned(ent)
	return nil
}

// Populate spawns SnakeCount snakes and then FoodCount food items at
// random positions. It does not return if the field cannot fit them.
func (e *Engine) Populate() {
	for i := 0; i < e.settings.SnakeCount; i++ {
		s := game.SpawnSnake(e, e.settings.SnakeStartLength)
		e.log.Debug("snake spawned", "id", game.ShortID(s.ID()), "head", s.Head().String())
	}
	for i := 0; i < e.settings.FoodCount; i++ {
		game.SpawnFood(e)
	}
	e.log.Info("field populated",
		"field_size", e.settings.FieldSize,
		"snakes", e.settings.SnakeCount,
		"snake_length", e.settings.SnakeStartLength,
		"food", e.settings.FoodCount,
	)
}

// Entities returns the registry in iteration order. The slice must not be
// modified.
func (e *Engine) Entities() []game.Entity { return e.entities }

// Counts returns the number of registered snakes and food items.
func (e *Engine) Counts() (snakes, food int) {
	for _, ent := range e.entities {
		switch ent.(type) {
		case *game.Snake:
			snakes++
		case *game.Food:
			food++
		}
	}
	return snakes, food
}

// Snapshot copies the current state.
func (e *Engine) Snapshot() *game.Snapshot {
	return game.NewSnapshot(e.ticks.Load(), e.settings.FieldSize, e.entities)
}

// Ticks is the number of completed ticks. Safe for concurrent use.
func (e *Engine) Ticks() uint64 { return e.ticks.Load() }

// Phase is the phase currently executing. Safe for concurrent use.
func (e *Engine) Phase() Phase { return Phase(e.phase.Load()) }
