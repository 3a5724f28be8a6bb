package rules

import (
	"math/rand"
	"testing"
	"time"

	"github.com/brensch/snek3d/game"
	"github.com/brensch/snek3d/grid"
)

type fakeWorld struct {
	settings game.Settings
	field    *game.Field
	rng      *rand.Rand
	entities []game.Entity
}

func newFakeWorld(size int) *fakeWorld {
	s := game.DefaultSettings()
	s.FieldSize = size
	s.TickInterval = time.Millisecond
	return &fakeWorld{
		settings: s,
		field:    grid.New[game.Entity](size),
		rng:      rand.New(rand.NewSource(1)),
	}
}

func (w *fakeWorld) Settings() game.Settings   { return w.settings }
func (w *fakeWorld) Field() *game.Field        { return w.field }
func (w *fakeWorld) Rand() *rand.Rand          { return w.rng }
func (w *fakeWorld) Register(e game.Entity)    { w.entities = append(w.entities, e) }
func (w *fakeWorld) Unregister(game.Entity)    {}
func (w *fakeWorld) Presenter() game.Presenter { return game.NopPresenter{} }

// put assigns e to its cells without registering it.
func put(f *game.Field, e game.Entity) {
	for _, c := range e.Cells() {
		f.Assign(e, c)
	}
}

func TestResolve_MultiSnakeCollisionKillsEveryone(t *testing.T) {
	f := grid.New[game.Entity](4)
	meet := grid.Cell{X: 0, Y: 0, Z: 0}
	a := game.NewSnake([]grid.Cell{meet, {X: 1, Y: 0, Z: 0}})
	b := game.NewSnake([]grid.Cell{meet, {X: 0, Y: 1, Z: 0}})
	food := game.NewFood(meet)
	bystander := game.NewSnake([]grid.Cell{{X: 3, Y: 3, Z: 3}})
	for _, e := range []game.Entity{a, b, food, bystander} {
		put(f, e)
	}

	out := Resolve(f)

	for _, e := range []game.Entity{a, b, food} {
		if e.Alive() || e.Cause() != game.CauseCollision {
			t.Fatalf("entity %s alive=%v cause=%q want collision death", game.ShortID(e.ID()), e.Alive(), e.Cause())
		}
	}
	if !bystander.Alive() {
		t.Fatalf("bystander died")
	}
	if a.Growing() || b.Growing() {
		t.Fatalf("colliding snakes must not grow")
	}
	if len(out.Collisions) != 1 || out.Collisions[0] != meet || out.Killed != 3 {
		t.Fatalf("outcome=%+v", out)
	}
	if f.Count(meet) != 3 {
		t.Fatalf("resolve changed membership: count=%d want=3", f.Count(meet))
	}
}

func TestResolve_LoneSnakeEatsFood(t *testing.T) {
	f := grid.New[game.Entity](5)
	c := grid.Cell{X: 3, Y: 0, Z: 0}
	s := game.NewSnake([]grid.Cell{c, {X: 2, Y: 0, Z: 0}, {X: 1, Y: 0, Z: 0}})
	food := game.NewFood(c)
	put(f, s)
	put(f, food)

	out := Resolve(f)

	if !s.Alive() || !s.Growing() {
		t.Fatalf("snake alive=%v growing=%v want alive and growing", s.Alive(), s.Growing())
	}
	if food.Alive() || food.Cause() != game.CauseEaten {
		t.Fatalf("food alive=%v cause=%q want eaten", food.Alive(), food.Cause())
	}
	if len(out.Eaten) != 1 || out.Eaten[0] != c || len(out.Collisions) != 0 || out.Killed != 1 {
		t.Fatalf("outcome=%+v", out)
	}
}

func TestResolve_SingleOccupantsUntouched(t *testing.T) {
	f := grid.New[game.Entity](3)
	s := game.NewSnake([]grid.Cell{{X: 0, Y: 0, Z: 0}, {X: 1, Y: 0, Z: 0}})
	food := game.NewFood(grid.Cell{X: 2, Y: 2, Z: 2})
	put(f, s)
	put(f, food)

	out := Resolve(f)
	if !s.Alive() || s.Growing() || !food.Alive() {
		t.Fatalf("resolve touched uncontested entities")
	}
	if len(out.Collisions)+len(out.Eaten)+out.Killed != 0 {
		t.Fatalf("outcome=%+v want empty", out)
	}
}

func TestReplenish_MinimumFoodIsEnforced(t *testing.T) {
	w := newFakeWorld(5)
	spawned, skipped := Replenish(w, game.FoodSettings{MinimumFood: 4}, 1)
	if len(spawned) != 3 || skipped != 0 {
		t.Fatalf("spawned=%d skipped=%d want 3/0", len(spawned), skipped)
	}
	if len(w.entities) != 3 || w.field.EmptyCount() != 125-3 {
		t.Fatalf("registered=%d empty=%d", len(w.entities), w.field.EmptyCount())
	}

	spawned, _ = Replenish(w, game.FoodSettings{MinimumFood: 4}, 4)
	if len(spawned) != 0 {
		t.Fatalf("spawned=%d with minimum already met", len(spawned))
	}
}

func TestReplenish_SpawnChanceCanAddExtra(t *testing.T) {
	w := newFakeWorld(5)
	spawned, _ := Replenish(w, game.FoodSettings{FoodSpawnChance: 100}, 0)
	if len(spawned) != 1 {
		t.Fatalf("spawned=%d want=1 at 100%% chance", len(spawned))
	}
}

func TestReplenish_Disabled(t *testing.T) {
	w := newFakeWorld(3)
	spawned, skipped := Replenish(w, game.FoodSettings{}, 0)
	if spawned != nil || skipped != 0 {
		t.Fatalf("disabled replenish spawned=%d skipped=%d", len(spawned), skipped)
	}
}

func TestReplenish_SaturatedFieldNeverBlocks(t *testing.T) {
	w := newFakeWorld(2)
	for x := 0; x < 2; x++ {
		for y := 0; y < 2; y++ {
			for z := 0; z < 2; z++ {
				if x == 1 && y == 1 && z == 1 {
					continue
				}
				put(w.field, game.NewFood(grid.Cell{X: x, Y: y, Z: z}))
			}
		}
	}

	spawned, skipped := Replenish(w, game.FoodSettings{MinimumFood: 10}, 7)
	if len(spawned) != 1 || skipped != 2 {
		t.Fatalf("spawned=%d skipped=%d want 1/2", len(spawned), skipped)
	}
	if w.field.EmptyCount() != 0 {
		t.Fatalf("empty=%d want=0", w.field.EmptyCount())
	}
}
