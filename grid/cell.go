// Package grid holds the cubic voxel field the simulation runs on.
//
// Cells are addressed by integer (x, y, z) triples in [0, size). The Grid
// only tracks membership: which entities claim which cells. It knows
// nothing about what an entity is, so it is generic over the entity type.
package grid

import "fmt"

// Cell is a lattice coordinate.
type Cell struct {
	X int
	Y int
	Z int
}

func (c Cell) String() string {
	return fmt.Sprintf("(%d, %d, %d)", c.X, c.Y, c.Z)
}

// Add returns the component-wise sum of two cells.
func (c Cell) Add(o Cell) Cell {
	return Cell{X: c.X + o.X, Y: c.Y + o.Y, Z: c.Z + o.Z}
}

// Direction is one of the six axis-aligned unit steps.
type Direction uint8

const (
	PlusX Direction = iota
	MinusX
	PlusY
	MinusY
	PlusZ
	MinusZ
)

// Directions lists every direction in evaluation order. Callers that scan
// neighbours rely on this order being stable.
var Directions = [6]Direction{PlusX, MinusX, PlusY, MinusY, PlusZ, MinusZ}

var directionDeltas = [6]Cell{
	PlusX:  {X: 1},
	MinusX: {X: -1},
	PlusY:  {Y: 1},
	MinusY: {Y: -1},
	PlusZ:  {Z: 1},
	MinusZ: {Z: -1},
}

var directionNames = [6]string{"+X", "-X", "+Y", "-Y", "+Z", "-Z"}

// Step returns the neighbour of c in direction d. No bounds check.
func (d Direction) Step(c Cell) Cell {
	return c.Add(directionDeltas[d])
}

// Delta is the unit offset for d.
func (d Direction) Delta() Cell {
	return directionDeltas[d]
}

func (d Direction) String() string {
	if int(d) < len(directionNames) {
		return directionNames[d]
	}
	return fmt.Sprintf("Direction(%d)", d)
}
