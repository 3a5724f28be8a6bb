package tui

import (
	"math"

	"github.com/brensch/snek3d/game"
	"github.com/brensch/snek3d/grid"
)

const (
	glyphEmpty = '·'
	glyphFood  = '*'
	glyphHead  = '@'
	glyphBody  = 'o'
	glyphMany  = '#'
)

// glyph is one rendered cell. owner indexes the snapshot's snakes, or is
// -1 for food and empty cells.
type glyph struct {
	r     rune
	owner int
}

type board [][]glyph

func newBoard(size int) board {
	b := make(board, size)
	for y := range b {
		b[y] = make([]glyph, size)
		for x := range b[y] {
			b[y][x] = glyph{r: glyphEmpty, owner: -1}
		}
	}
	return b
}

// set writes g at (x, y) with row 0 at the top of the screen. A second
// distinct occupant turns the cell into glyphMany.
func (b board) set(x, y int, g glyph) {
	size := len(b)
	if x < 0 || y < 0 || x >= size || y >= size {
		return
	}
	row := size - 1 - y
	cur := b[row][x]
	switch {
	case cur.r == glyphEmpty, cur.r == glyphFood && g.owner >= 0:
		b[row][x] = g
	case cur.owner == g.owner && g.r == glyphHead:
		b[row][x] = g
	case cur.owner != g.owner:
		b[row][x] = glyph{r: glyphMany, owner: -1}
	}
}

func (b board) String() string {
	var out []rune
	for _, row := range b {
		for _, g := range row {
			out = append(out, g.r)
		}
		out = append(out, '\n')
	}
	return string(out)
}

// sliceBoard draws the cells of snap that lie in the plane Z = z.
func sliceBoard(snap *game.Snapshot, z int) board {
	b := newBoard(snap.FieldSize)
	for _, c := range snap.Food {
		if c.Z == z {
			b.set(c.X, c.Y, glyph{r: glyphFood, owner: -1})
		}
	}
	for i, s := range snap.Snakes {
		for j := len(s.Body) - 1; j >= 0; j-- {
			c := s.Body[j]
			if c.Z != z {
				continue
			}
			r := glyphBody
			if j == 0 {
				r = glyphHead
			}
			b.set(c.X, c.Y, glyph{r: r, owner: i})
		}
	}
	return b
}

// Positions supplies displayed world positions, typically an anim.Runner.
type Positions interface {
	Positions(id game.ID) ([]grid.Vec3, bool)
	Frame() grid.Frame
}

// projectedBoard flattens the whole field onto the XY plane using the
// animated positions, falling back to committed cells for snakes the
// source does not know. Food is taken from the snapshot.
func projectedBoard(snap *game.Snapshot, src Positions) board {
	b := newBoard(snap.FieldSize)
	frame := src.Frame()
	for _, c := range snap.Food {
		b.set(c.X, c.Y, glyph{r: glyphFood, owner: -1})
	}
	for i, s := range snap.Snakes {
		pos, ok := src.Positions(s.ID)
		if !ok {
			pos = frame.WorldPositions(s.Body)
		}
		for j := len(pos) - 1; j >= 0; j-- {
			x, y := project(frame, pos[j])
			r := glyphBody
			if j == 0 {
				r = glyphHead
			}
			b.set(x, y, glyph{r: r, owner: i})
		}
	}
	return b
}

func project(frame grid.Frame, p grid.Vec3) (int, int) {
	if frame.CellSize <= 0 || math.IsNaN(p.X) || math.IsNaN(p.Y) {
		return -1, -1
	}
	c := frame.CellFromWorld(p)
	return c.X, c.Y
}
