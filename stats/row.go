// Package stats records per-tick aggregates of simulation runs as parquet.
package stats

import (
	"github.com/brensch/snek3d/engine"
	"github.com/brensch/snek3d/game"
)

// SchemaName is stored in every file's key/value metadata.
const SchemaName = "snek3d_tick_v1"

// TickRow is one tick of one run. Counts are taken after Cleanup.
type TickRow struct {
	RunID     string `parquet:"run_id,dict"`
	Seed      int64  `parquet:"seed"`
	FieldSize int32  `parquet:"field_size"`
	Tick      int64  `parquet:"tick"`

	Collisions int32 `parquet:"collisions"`
	Eaten      int32 `parquet:"eaten"`
	Grown      int32 `parquet:"grown"`
	Starved    int32 `parquet:"starved"`
	Crashed    int32 `parquet:"crashed"`
	Destroyed  int32 `parquet:"destroyed"`
	Spawned    int32 `parquet:"spawned"`

	Snakes       int32 `parquet:"snakes"`
	Food         int32 `parquet:"food"`
	TotalLength  int32 `parquet:"total_length"`
	LongestSnake int32 `parquet:"longest_snake"`
}

// Run identifies the simulation a row belongs to.
type Run struct {
	ID        string
	Seed      int64
	FieldSize int
}

// NewTickRow flattens a tick report and the snapshot taken after it.
// snap may be nil, leaving the length columns zero.
func NewTickRow(run Run, r engine.TickReport, snap *game.Snapshot) TickRow {
	row := TickRow{
		RunID:      run.ID,
		Seed:       run.Seed,
		FieldSize:  int32(run.FieldSize),
		Tick:       int64(r.Tick),
		Collisions: int32(r.Collisions),
		Eaten:      int32(r.Eaten),
		Grown:      int32(r.Grown),
		Starved:    int32(r.Starved),
		Crashed:    int32(r.Crashed),
		Destroyed:  int32(r.Destroyed),
		Spawned:    int32(r.Spawned),
		Snakes:     int32(r.Snakes),
		Food:       int32(r.Food),
	}
	if snap != nil {
		row.TotalLength = int32(snap.TotalLength())
		row.LongestSnake = int32(snap.LongestSnake())
	}
	return row
}
