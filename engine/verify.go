package engine

import (
	"fmt"

	"github.com/brensch/snek3d/game"
	"github.com/brensch/snek3d/grid"
)

// Verify checks that the field and the registry agree: every cell an
// entity lists holds that entity, every occupant of a cell lists the
// cell, and no snake body repeats a cell. Entities already destroyed in
// this tick's commit are ignored until Cleanup drops them.
func (e *Engine) Verify() error {
	gone := make(map[game.Entity]struct{}, len(e.pending))
	for _, ent := range e.pending {
		gone[ent] = struct{}{}
	}

	live := make(map[game.Entity]map[grid.Cell]struct{}, len(e.entities))
	for _, ent := range e.entities {
		if _, ok := gone[ent]; ok {
			continue
		}
		cells := make(map[grid.Cell]struct{}, len(ent.Cells()))
		for _, c := range ent.Cells() {
			if !e.field.Inside(c) {
				return fmt.Errorf("entity %s lists cell %s outside the field", game.ShortID(ent.ID()), c)
			}
			if _, dup := cells[c]; dup {
				return fmt.Errorf("entity %s lists cell %s twice", game.ShortID(ent.ID()), c)
			}
			cells[c] = struct{}{}
			if !e.field.Contains(ent, c) {
				return fmt.Errorf("entity %s lists cell %s but is not assigned there", game.ShortID(ent.ID()), c)
			}
		}
		live[ent] = cells
	}

	var err error
	e.field.Each(func(c grid.Cell, occupants []game.Entity) {
		if err != nil {
			return
		}
		for _, ent := range occupants {
			cells, ok := live[ent]
			if !ok {
				err = fmt.Errorf("cell %s holds unregistered entity %s", c, game.ShortID(ent.ID()))
				return
			}
			if _, ok := cells[c]; !ok {
				err = fmt.Errorf("cell %s holds entity %s that does not list it", c, game.ShortID(ent.ID()))
				return
			}
		}
	})
	return err
}
