package grid

import (
	"fmt"
	"math/rand"
)

// Grid is a dense size^3 occupancy index.
//
// Each cell holds an ordered set of entity references. An entity may sit
// in several cells at once (a snake body) and a cell may hold several
// entities (a collision in progress). Insertion order inside a cell is
// kept so that iteration is deterministic for a given seed.
//
// Grid is not safe for concurrent use.
type Grid[E comparable] struct {
	size  int
	cells [][]E // index = (z*size+y)*size + x
	empty int
}

// New allocates an empty grid with size cells per axis.
func New[E comparable](size int) *Grid[E] {
	if size <= 0 {
		panic(fmt.Sprintf("grid: invalid size %d", size))
	}
	n := size * size * size
	return &Grid[E]{
		size:  size,
		cells: make([][]E, n),
		empty: n,
	}
}

// Size is the number of cells per axis.
func (g *Grid[E]) Size() int { return g.size }

// Len is the total number of cells.
func (g *Grid[E]) Len() int { return len(g.cells) }

// EmptyCount is the number of cells with no occupant. O(1).
func (g *Grid[E]) EmptyCount() int { return g.empty }

// Inside reports whether c lies within the field.
func (g *Grid[E]) Inside(c Cell) bool {
	return c.X >= 0 && c.X < g.size &&
		c.Y >= 0 && c.Y < g.size &&
		c.Z >= 0 && c.Z < g.size
}

func (g *Grid[E]) index(c Cell) int {
	if !g.Inside(c) {
		panic(fmt.Sprintf("grid: cell %s outside field of size %d", c, g.size))
	}
	return (c.Z*g.size+c.Y)*g.size + c.X
}

func (g *Grid[E]) cellAt(idx int) Cell {
	x := idx % g.size
	y := (idx / g.size) % g.size
	z := idx / (g.size * g.size)
	return Cell{X: x, Y: y, Z: z}
}

// At returns the occupants of c. The slice aliases grid storage and must
// not be modified or retained across mutations.
func (g *Grid[E]) At(c Cell) []E {
	return g.cells[g.index(c)]
}

// Count returns the number of occupants of c.
func (g *Grid[E]) Count(c Cell) int {
	return len(g.cells[g.index(c)])
}

// Contains reports whether e is assigned to c.
func (g *Grid[E]) Contains(e E, c Cell) bool {
	for _, o := range g.cells[g.index(c)] {
		if o == e {
			return true
		}
	}
	return false
}

// Assign adds e to the occupant set of c. Assigning twice is a no-op.
func (g *Grid[E]) Assign(e E, c Cell) {
	idx := g.index(c)
	occ := g.cells[idx]
	for _, o := range occ {
		if o == e {
			return
		}
	}
	if len(occ) == 0 {
		g.empty--
	}
	g.cells[idx] = append(occ, e)
}

// Unassign removes e from the occupant set of c, if present.
// Removal swaps the last occupant into the freed slot.
func (g *Grid[E]) Unassign(e E, c Cell) {
	idx := g.index(c)
	occ := g.cells[idx]
	for i, o := range occ {
		if o != e {
			continue
		}
		last := len(occ) - 1
		occ[i] = occ[last]
		var zero E
		occ[last] = zero
		occ = occ[:last]
		if len(occ) == 0 {
			g.empty++
			occ = nil
		}
		g.cells[idx] = occ
		return
	}
}

// Each calls fn for every non-empty cell in index order. fn must not
// mutate the grid.
func (g *Grid[E]) Each(fn func(c Cell, occupants []E)) {
	for idx, occ := range g.cells {
		if len(occ) == 0 {
			continue
		}
		fn(g.cellAt(idx), occ)
	}
}

// RandomEmptyCell samples a uniformly random unoccupied cell by rejection.
//
// It never returns on a saturated field. Keeping at least one cell free
// (EmptyCount() > 0) is the caller's responsibility.
func (g *Grid[E]) RandomEmptyCell(rng *rand.Rand) Cell {
	for {
		c := Cell{
			X: rng.Intn(g.size),
			Y: rng.Intn(g.size),
			Z: rng.Intn(g.size),
		}
		if len(g.cells[g.index(c)]) == 0 {
			return c
		}
	}
}
