package game

import (
	"github.com/brensch/snek3d/grid"
)

// Snake is an autonomous multi-cell entity. Index 0 of its cells is the
// head; body cells are distinct.
type Snake struct {
	base

	dir     grid.Direction
	growing bool

	// Body before the last Move, and the tail cell that Move vacated.
	prev    []grid.Cell
	vacated grid.Cell
	moved   bool
}

// NewSnake builds an unregistered snake occupying body, head first.
func NewSnake(body []grid.Cell) *Snake {
	if len(body) == 0 {
		panic("game: snake needs at least one cell")
	}
	cells := make([]grid.Cell, len(body))
	copy(cells, body)
	return &Snake{base: newBase(cells)}
}

// SpawnSnake places a snake of the given length on w. It picks random
// empty anchors until the length-1 cells after the anchor along +X are
// inside the field and empty, then lays the body from the anchor (the
// head) along +X.
//
// SpawnSnake loops forever if no anchor ever fits.
func SpawnSnake(w World, length int) *Snake {
	f := w.Field()
	for {
		anchor := w.Field().RandomEmptyCell(w.Rand())
		if !fitsAlongX(f, anchor, length) {
			continue
		}
		body := make([]grid.Cell, length)
		for dx := range body {
			body[dx] = grid.Cell{X: anchor.X + dx, Y: anchor.Y, Z: anchor.Z}
		}
		s := &Snake{base: newBase(body)}
		s.place(w, s)
		return s
	}
}

func fitsAlongX(f *Field, anchor grid.Cell, length int) bool {
	for dx := 1; dx < length; dx++ {
		c := grid.Cell{X: anchor.X + dx, Y: anchor.Y, Z: anchor.Z}
		if !f.Inside(c) || f.Count(c) != 0 {
			return false
		}
	}
	return true
}

// Len is the number of body segments.
func (s *Snake) Len() int { return len(s.cells) }

// Head is the cell at index 0.
func (s *Snake) Head() grid.Cell { return s.cells[0] }

// Direction is the move chosen by the last Decide.
func (s *Snake) Direction() grid.Direction { return s.dir }

// Growing reports whether the snake was flagged to grow this tick.
func (s *Snake) Growing() bool { return s.growing }

// Grow flags the snake to keep its vacated tail at Commit.
func (s *Snake) Grow() { s.growing = true }

// Decide picks the direction for this tick, or flags the snake as starved.
func (s *Snake) Decide(w World) {
	s.growing = false
	s.moved = false
	if s.dead {
		return
	}
	d, ok := ChooseDirection(w.Field(), s.Head(), w.Rand(), w.Settings().WanderWithoutFood)
	if !ok {
		s.Kill(CauseStarvation)
		return
	}
	s.dir = d
}

// Move advances the head one cell and drops the tail, updating the field
// for those two cells only.
func (s *Snake) Move(w World) {
	if s.dead {
		return
	}
	s.prev = append(s.prev[:0], s.cells...)

	head := s.dir.Step(s.cells[0])
	last := len(s.cells) - 1
	s.vacated = s.cells[last]
	copy(s.cells[1:], s.cells[:last])
	s.cells[0] = head
	s.moved = true

	f := w.Field()
	f.Assign(s, head)
	f.Unassign(s, s.vacated)
}

// Commit destroys a dead snake, or re-attaches the vacated tail when the
// snake is growing, then hands the new body to the presenter.
func (s *Snake) Commit(w World) {
	if s.destroy(w, s) {
		return
	}
	if s.growing && s.moved {
		s.cells = append(s.cells, s.vacated)
		w.Field().Assign(s, s.vacated)
	}

	from := s.prev
	if !s.moved {
		from = s.cells
	}
	w.Presenter().Moved(s.id, from, s.cells, w.Settings().TickInterval)
}
