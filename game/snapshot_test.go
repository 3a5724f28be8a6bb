package game

import (
	"testing"

	"github.com/brensch/snek3d/grid"
)

func TestSnapshot_SkipsDeadAndCopies(t *testing.T) {
	w := newTestWorld(5, 1)
	a := w.addSnake(grid.Cell{X: 0, Y: 0, Z: 0}, grid.Cell{X: 1, Y: 0, Z: 0})
	b := w.addSnake(grid.Cell{X: 4, Y: 4, Z: 4})
	w.addFood(grid.Cell{X: 2, Y: 2, Z: 2})
	b.Kill(CauseCollision)

	snap := NewSnapshot(7, 5, w.entities)
	if snap.Tick != 7 || snap.FieldSize != 5 {
		t.Fatalf("tick=%d size=%d", snap.Tick, snap.FieldSize)
	}
	if len(snap.Snakes) != 1 || snap.Snakes[0].ID != a.ID() {
		t.Fatalf("snakes=%+v want only the live one", snap.Snakes)
	}
	if len(snap.Food) != 1 || snap.Food[0] != (grid.Cell{X: 2, Y: 2, Z: 2}) {
		t.Fatalf("food=%v", snap.Food)
	}
	if snap.TotalLength() != 2 || snap.LongestSnake() != 2 {
		t.Fatalf("total=%d longest=%d want 2/2", snap.TotalLength(), snap.LongestSnake())
	}

	snap.Snakes[0].Body[0] = grid.Cell{X: 3, Y: 3, Z: 3}
	if a.Head() != (grid.Cell{X: 0, Y: 0, Z: 0}) {
		t.Fatalf("snapshot aliases live snake body")
	}
}

func TestSnapshot_Clone(t *testing.T) {
	orig := &Snapshot{
		Tick:      3,
		FieldSize: 4,
		Snakes:    []SnakeState{{Body: []grid.Cell{{X: 1, Y: 1, Z: 1}, {X: 1, Y: 1, Z: 2}}}},
		Food:      []grid.Cell{{X: 0, Y: 0, Z: 0}},
	}
	c := orig.Clone()
	c.Snakes[0].Body[0] = grid.Cell{}
	c.Food[0] = grid.Cell{X: 3}
	if orig.Snakes[0].Body[0] != (grid.Cell{X: 1, Y: 1, Z: 1}) || orig.Food[0] != (grid.Cell{}) {
		t.Fatalf("clone shares storage with original")
	}
	var nilSnap *Snapshot
	if nilSnap.Clone() != nil {
		t.Fatalf("nil clone should be nil")
	}
}
