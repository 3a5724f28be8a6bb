package grid

import "math"

// Vec3 is a point in the continuous world frame.
type Vec3 struct {
	X float64
	Y float64
	Z float64
}

func (v Vec3) Add(o Vec3) Vec3 { return Vec3{v.X + o.X, v.Y + o.Y, v.Z + o.Z} }
func (v Vec3) Sub(o Vec3) Vec3 { return Vec3{v.X - o.X, v.Y - o.Y, v.Z - o.Z} }
func (v Vec3) Scale(s float64) Vec3 {
	return Vec3{v.X * s, v.Y * s, v.Z * s}
}

// Lerp interpolates from v to o; t is not clamped.
func (v Vec3) Lerp(o Vec3, t float64) Vec3 {
	return Vec3{
		X: v.X + (o.X-v.X)*t,
		Y: v.Y + (o.Y-v.Y)*t,
		Z: v.Z + (o.Z-v.Z)*t,
	}
}

// Frame maps lattice cells to world coordinates. The field is centred on
// the origin: cell (0,0,0) sits at -FieldSize*CellSize/2 on every axis.
type Frame struct {
	FieldSize int
	CellSize  float64
}

func (f Frame) offset() float64 {
	return float64(f.FieldSize) * f.CellSize / 2
}

// WorldPos returns the world position of c.
func (f Frame) WorldPos(c Cell) Vec3 {
	off := f.offset()
	return Vec3{
		X: float64(c.X)*f.CellSize - off,
		Y: float64(c.Y)*f.CellSize - off,
		Z: float64(c.Z)*f.CellSize - off,
	}
}

// WorldPositions maps every cell of cells.
func (f Frame) WorldPositions(cells []Cell) []Vec3 {
	out := make([]Vec3, len(cells))
	for i, c := range cells {
		out[i] = f.WorldPos(c)
	}
	return out
}

// CellFromWorld returns the cell whose position is nearest to p. The
// result is not bounds checked.
func (f Frame) CellFromWorld(p Vec3) Cell {
	off := f.offset()
	return Cell{
		X: int(math.Round((p.X + off) / f.CellSize)),
		Y: int(math.Round((p.Y + off) / f.CellSize)),
		Z: int(math.Round((p.Z + off) / f.CellSize)),
	}
}
