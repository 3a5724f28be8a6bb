package rules

import (
	"github.com/brensch/snek3d/game"
)

// Replenish tops the field up with food after a tick, following
// settings:
//   - MinimumFood: spawn until at least this many food items exist
//   - FoodSpawnChance: percentage chance (0-100) to spawn one extra item
//
// current is the number of live food items before replenishing. Spawning
// stops early once the field has no empty cell left, so Replenish never
// blocks. It returns the spawned items and how many could not be placed.
func Replenish(w game.World, settings game.FoodSettings, current int) (spawned []*game.Food, skipped int) {
	if !settings.Enabled() {
		return nil, 0
	}

	deficit := settings.MinimumFood - current
	if deficit < 0 {
		deficit = 0
	}

	spawnExtra := false
	if settings.FoodSpawnChance > 0 {
		spawnExtra = w.Rand().Intn(100) < settings.FoodSpawnChance
	}

	toSpawn := deficit
	if spawnExtra {
		toSpawn++
	}

	f := w.Field()
	for i := 0; i < toSpawn; i++ {
		if f.EmptyCount() == 0 {
			skipped = toSpawn - i
			break
		}
		spawned = append(spawned, game.SpawnFood(w))
	}
	return spawned, skipped
}
