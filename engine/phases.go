package engine

import (
	"slices"

	"github.com/brensch/snek3d/game"
	"github.com/brensch/snek3d/rules"
)

// Phase is a state of the tick state machine.
type Phase uint32

const (
	PhaseIdle Phase = iota
	PhaseDecide
	PhaseMove
	PhaseResolve
	PhaseCommit
	PhaseCleanup
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseDecide:
		return "decide"
	case PhaseMove:
		return "move"
	case PhaseResolve:
		return "resolve"
	case PhaseCommit:
		return "commit"
	case PhaseCleanup:
		return "cleanup"
	}
	return "unknown"
}

// TickReport summarises one tick.
type TickReport struct {
	Tick       uint64
	Collisions int // cells where snakes met
	Eaten      int // food items consumed
	Grown      int // snakes that grew
	Starved    int // snakes with no food in sight
	Crashed    int // snakes killed in collisions
	Destroyed  int // entities removed from the registry
	Spawned    int // food added by replenishment
	Snakes     int // snakes alive after the tick
	Food       int // food alive after the tick
}

// Step runs one full tick: decide, move, resolve, commit, cleanup.
func (e *Engine) Step() TickReport {
	var r TickReport
	e.Decide()
	e.Move()
	out := e.Resolve()
	r.Collisions = len(out.Collisions)
	r.Eaten = len(out.Eaten)
	e.Commit(&r)
	e.Cleanup(&r)
	return r
}

// Decide lets every entity pick its action against the untouched field.
func (e *Engine) Decide() {
	e.phase.Store(uint32(PhaseDecide))
	for _, ent := range e.entities {
		ent.Decide(e)
	}
}

// Move applies every decision.
func (e *Engine) Move() {
	e.phase.Store(uint32(PhaseMove))
	for _, ent := range e.entities {
		ent.Move(e)
	}
}

// Resolve applies the conflict rules to the moved field.
func (e *Engine) Resolve() rules.Outcome {
	e.phase.Store(uint32(PhaseResolve))
	out := rules.Resolve(e.field)
	for _, c := range out.Collisions {
		e.log.Info("collision", "tick", e.ticks.Load()+1, "cell", c.String(), "occupants", e.field.Count(c))
	}
	for _, c := range out.Eaten {
		e.log.Debug("food eaten", "tick", e.ticks.Load()+1, "cell", c.String())
	}
	return out
}

// Commit lets every entity apply its flags. Destroyed entities are
// queued for Cleanup. r may be nil.
func (e *Engine) Commit(r *TickReport) {
	e.phase.Store(uint32(PhaseCommit))
	for _, ent := range e.entities {
		if s, ok := ent.(*game.Snake); ok {
			e.noteSnake(s, r)
		}
		ent.Commit(e)
	}
}

func (e *Engine) noteSnake(s *game.Snake, r *TickReport) {
	if s.Alive() {
		if s.Growing() && r != nil {
			r.Grown++
		}
		return
	}
	e.log.Info("snake died",
		"tick", e.ticks.Load()+1,
		"id", game.ShortID(s.ID()),
		"cause", string(s.Cause()),
		"length", s.Len(),
	)
	if r == nil {
		return
	}
	switch s.Cause() {
	case game.CauseStarvation:
		r.Starved++
	case game.CauseCollision:
		r.Crashed++
	}
}

// Cleanup drops the entities destroyed in Commit from the registry,
// replenishes food when configured and publishes the tick. r may be nil.
func (e *Engine) Cleanup(r *TickReport) {
	e.phase.Store(uint32(PhaseCleanup))

	destroyed := len(e.pending)
	if destroyed > 0 {
		gone := make(map[game.Entity]struct{}, destroyed)
		for _, ent := range e.pending {
			gone[ent] = struct{}{}
		}
		e.entities = slices.DeleteFunc(e.entities, func(ent game.Entity) bool {
			_, ok := gone[ent]
			return ok
		})
		clear(e.pending)
		e.pending = e.pending[:0]
	}

	snakes, food := e.Counts()
	spawned, skipped := rules.Replenish(e, e.settings.Food, food)
	if skipped > 0 {
		e.log.Warn("food replenish skipped, field saturated", "skipped", skipped)
	}
	food += len(spawned)

	tick := e.ticks.Add(1)
	e.phase.Store(uint32(PhaseIdle))

	if r != nil {
		r.Tick = tick
		r.Destroyed = destroyed
		r.Spawned = len(spawned)
		r.Snakes = snakes
		r.Food = food
	}
	e.log.Debug("tick", "tick", tick, "snakes", snakes, "food", food, "destroyed", destroyed, "spawned", len(spawned))

	if len(e.observers) > 0 {
		snap := e.Snapshot()
		for _, fn := range e.observers {
			fn(snap)
		}
	}
}
