package game

import (
	"math"
	"math/rand"

	"github.com/brensch/snek3d/grid"
)

// NoPath marks a direction in which no food was recorded.
const NoPath = -1

// Scan walks the six directions from head in grid.Directions order looking
// for food along each straight line.
//
// A walk stops at the field boundary, at the first occupied cell, or once
// its step count exceeds the shortest path found so far. An occupied cell
// holding food records the step count for that direction. Because the bound
// only tightens as directions are evaluated, a later direction may be cut
// short where an earlier one would not have been: paths[d] can be NoPath for
// a direction that does have food further away than best.
//
// best is NoPath when no direction reached food.
func Scan(f *Field, head grid.Cell) (paths [6]int, best int) {
	best = math.MaxInt
	for _, d := range grid.Directions {
		paths[d] = NoPath
		cell := head
		step := 0
		for {
			step++
			if step > best {
				break
			}
			cell = d.Step(cell)
			if !f.Inside(cell) {
				break
			}
			occupants := f.At(cell)
			if len(occupants) == 0 {
				continue
			}
			if hasFood(occupants) {
				if step < best {
					best = step
				}
				paths[d] = step
			}
			break
		}
	}
	if best == math.MaxInt {
		best = NoPath
	}
	return paths, best
}

func hasFood(occupants []Entity) bool {
	for _, e := range occupants {
		if _, ok := e.(*Food); ok {
			return true
		}
	}
	return false
}

// BestDirections returns the directions whose recorded path equals best,
// in grid.Directions order.
func BestDirections(paths [6]int, best int) []grid.Direction {
	if best == NoPath {
		return nil
	}
	var out []grid.Direction
	for _, d := range grid.Directions {
		if paths[d] == best {
			out = append(out, d)
		}
	}
	return out
}

// FreeDirections returns the directions whose first step from head is an
// empty cell inside the field.
func FreeDirections(f *Field, head grid.Cell) []grid.Direction {
	var out []grid.Direction
	for _, d := range grid.Directions {
		c := d.Step(head)
		if f.Inside(c) && f.Count(c) == 0 {
			out = append(out, d)
		}
	}
	return out
}

// ChooseDirection picks the move for a snake whose head is at head. Ties
// between equally short paths are broken uniformly with rng. When no food
// is in sight the snake either wanders to a random free neighbour or, with
// wander off, has no move at all (ok is false).
func ChooseDirection(f *Field, head grid.Cell, rng *rand.Rand, wander bool) (d grid.Direction, ok bool) {
	candidates := BestDirections(Scan(f, head))
	if len(candidates) == 0 && wander {
		candidates = FreeDirections(f, head)
	}
	if len(candidates) == 0 {
		return 0, false
	}
	return candidates[rng.Intn(len(candidates))], true
}
