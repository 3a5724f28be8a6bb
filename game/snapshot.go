package game

import "github.com/brensch/snek3d/grid"

// SnakeState is the read-only view of one snake in a Snapshot.
type SnakeState struct {
	ID   ID
	Body []grid.Cell
}

// Snapshot is a detached copy of the simulation after a tick, safe to hand
// to other goroutines.
type Snapshot struct {
	Tick      uint64
	FieldSize int
	Snakes    []SnakeState
	Food      []grid.Cell
}

// NewSnapshot copies the live entities out of the registry.
func NewSnapshot(tick uint64, fieldSize int, entities []Entity) *Snapshot {
	out := &Snapshot{Tick: tick, FieldSize: fieldSize}
	for _, e := range entities {
		if !e.Alive() {
			continue
		}
		switch v := e.(type) {
		case *Snake:
			body := make([]grid.Cell, len(v.cells))
			copy(body, v.cells)
			out.Snakes = append(out.Snakes, SnakeState{ID: v.id, Body: body})
		case *Food:
			out.Food = append(out.Food, v.Cell())
		}
	}
	return out
}

// Clone performs a deep copy of the snapshot.
func (s *Snapshot) Clone() *Snapshot {
	if s == nil {
		return nil
	}

	out := &Snapshot{
		Tick:      s.Tick,
		FieldSize: s.FieldSize,
	}

	if len(s.Food) > 0 {
		out.Food = make([]grid.Cell, len(s.Food))
		copy(out.Food, s.Food)
	}

	if len(s.Snakes) > 0 {
		out.Snakes = make([]SnakeState, len(s.Snakes))
		for i := range s.Snakes {
			out.Snakes[i] = SnakeState{ID: s.Snakes[i].ID}
			if len(s.Snakes[i].Body) > 0 {
				out.Snakes[i].Body = make([]grid.Cell, len(s.Snakes[i].Body))
				copy(out.Snakes[i].Body, s.Snakes[i].Body)
			}
		}
	}

	return out
}

// TotalLength sums the body lengths of all snakes.
func (s *Snapshot) TotalLength() int {
	n := 0
	for _, sn := range s.Snakes {
		n += len(sn.Body)
	}
	return n
}

// LongestSnake is the length of the longest body, 0 without snakes.
func (s *Snapshot) LongestSnake() int {
	n := 0
	for _, sn := range s.Snakes {
		if len(sn.Body) > n {
			n = len(sn.Body)
		}
	}
	return n
}
