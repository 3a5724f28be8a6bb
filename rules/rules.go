// Package rules holds the cross-entity rules applied between the move and
// commit phases of a tick.
package rules

import (
	"github.com/brensch/snek3d/game"
	"github.com/brensch/snek3d/grid"
)

// Outcome summarises one resolve pass.
type Outcome struct {
	Collisions []grid.Cell // cells where two or more snakes met
	Eaten      []grid.Cell // cells where a lone snake found food
	Killed     int         // entities flagged dead by this pass
}

// Resolve applies conflict rules to every cell holding two or more
// entities:
//
//   - two or more snakes: every occupant of the cell dies, food included;
//   - exactly one snake plus food: the food is eaten and the snake grows;
//   - anything else is left alone.
//
// Resolve only sets flags. Field membership is untouched; each entity
// applies its own flags when it commits.
func Resolve(f *game.Field) Outcome {
	var out Outcome

	f.Each(func(c grid.Cell, occupants []game.Entity) {
		if len(occupants) < 2 {
			return
		}

		snakes := 0
		food := false
		for _, e := range occupants {
			switch e.(type) {
			case *game.Snake:
				snakes++
			case *game.Food:
				food = true
			}
		}

		switch {
		case snakes > 1:
			out.Collisions = append(out.Collisions, c)
			for _, e := range occupants {
				if e.Alive() {
					out.Killed++
				}
				e.Kill(game.CauseCollision)
			}

		case snakes == 1 && food:
			out.Eaten = append(out.Eaten, c)
			for _, e := range occupants {
				switch v := e.(type) {
				case *game.Food:
					if v.Alive() {
						out.Killed++
					}
					v.Kill(game.CauseEaten)
				case *game.Snake:
					v.Grow()
				}
			}
		}
	})

	return out
}
