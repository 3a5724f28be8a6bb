package game

import (
	"math/rand"
	"strings"
	"testing"
	"time"

	"github.com/brensch/snek3d/grid"
)

// testWorld is a minimal World for exercising entities without an engine.
type testWorld struct {
	settings  Settings
	field     *Field
	rng       *rand.Rand
	entities  []Entity
	removed   []Entity
	presenter *recordingPresenter
}

func newTestWorld(size int, seed int64) *testWorld {
	s := DefaultSettings()
	s.FieldSize = size
	s.TickInterval = 100 * time.Millisecond
	return &testWorld{
		settings:  s,
		field:     grid.New[Entity](size),
		rng:       rand.New(rand.NewSource(seed)),
		presenter: &recordingPresenter{},
	}
}

func (w *testWorld) Settings() Settings   { return w.settings }
func (w *testWorld) Field() *Field        { return w.field }
func (w *testWorld) Rand() *rand.Rand     { return w.rng }
func (w *testWorld) Register(e Entity)    { w.entities = append(w.entities, e) }
func (w *testWorld) Unregister(e Entity)  { w.removed = append(w.removed, e) }
func (w *testWorld) Presenter() Presenter { return w.presenter }

func (w *testWorld) addSnake(body ...grid.Cell) *Snake {
	s := NewSnake(body)
	s.place(w, s)
	return s
}

func (w *testWorld) addFood(c grid.Cell) *Food {
	f := NewFood(c)
	f.place(w, f)
	return f
}

type recordingPresenter struct {
	spawned   int
	destroyed []ID
	moves     []recordedMove
}

type recordedMove struct {
	id       ID
	from, to []grid.Cell
	d        time.Duration
}

func (p *recordingPresenter) Spawned(Entity) { p.spawned++ }

func (p *recordingPresenter) Destroyed(e Entity) { p.destroyed = append(p.destroyed, e.ID()) }

func (p *recordingPresenter) Moved(id ID, from, to []grid.Cell, d time.Duration) {
	p.moves = append(p.moves, recordedMove{
		id:   id,
		from: append([]grid.Cell(nil), from...),
		to:   append([]grid.Cell(nil), to...),
		d:    d,
	})
}

// dumpField renders every non-empty Z slice of the field.
// Snake heads are uppercase, bodies lowercase, food '*', stacked cells '#'.
func dumpField(f *Field) string {
	size := f.Size()
	var sb strings.Builder
	for z := 0; z < size; z++ {
		var rows []string
		empty := true
		for y := size - 1; y >= 0; y-- {
			row := make([]byte, size)
			for x := 0; x < size; x++ {
				c := grid.Cell{X: x, Y: y, Z: z}
				occ := f.At(c)
				switch {
				case len(occ) == 0:
					row[x] = '.'
				case len(occ) > 1:
					row[x] = '#'
					empty = false
				default:
					empty = false
					switch v := occ[0].(type) {
					case *Food:
						row[x] = '*'
					case *Snake:
						if v.Head() == c {
							row[x] = 'S'
						} else {
							row[x] = 's'
						}
					}
				}
			}
			rows = append(rows, string(row))
		}
		if empty {
			continue
		}
		sb.WriteString("z=")
		sb.WriteByte(byte('0' + z%10))
		sb.WriteByte('\n')
		for _, r := range rows {
			sb.WriteString(r)
			sb.WriteByte('\n')
		}
	}
	return sb.String()
}

func logField(t *testing.T, label string, f *Field) {
	t.Helper()
	t.Logf("%s\n%s", label, dumpField(f))
}
