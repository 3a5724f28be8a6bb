package stats

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/brensch/snek3d/engine"
	"github.com/brensch/snek3d/game"
	"github.com/brensch/snek3d/grid"
)

func sampleRows(run Run, n int) []TickRow {
	rows := make([]TickRow, 0, n)
	for i := 1; i <= n; i++ {
		rows = append(rows, NewTickRow(run, engine.TickReport{Tick: uint64(i), Snakes: 2, Food: 10 - i%3}, nil))
	}
	return rows
}

func TestNewTickRow_CopiesReportAndLengths(t *testing.T) {
	snap := &game.Snapshot{
		Tick:      7,
		FieldSize: 9,
		Snakes: []game.SnakeState{
			{Body: []grid.Cell{{X: 1}, {X: 2}, {X: 3}}},
			{Body: []grid.Cell{{Y: 1}}},
		},
	}
	r := engine.TickReport{Tick: 7, Collisions: 1, Eaten: 2, Grown: 2, Crashed: 2, Destroyed: 4, Spawned: 1, Snakes: 2, Food: 5}
	row := NewTickRow(Run{ID: "run-a", Seed: 42, FieldSize: 9}, r, snap)

	if row.RunID != "run-a" || row.Seed != 42 || row.FieldSize != 9 || row.Tick != 7 {
		t.Fatalf("identity columns wrong: %+v", row)
	}
	if row.Collisions != 1 || row.Eaten != 2 || row.Grown != 2 || row.Crashed != 2 || row.Destroyed != 4 || row.Spawned != 1 {
		t.Fatalf("event columns wrong: %+v", row)
	}
	if row.TotalLength != 4 || row.LongestSnake != 3 {
		t.Fatalf("length columns total=%d longest=%d want 4/3", row.TotalLength, row.LongestSnake)
	}
}

func TestBatchWriter_FinalizeMovesFile(t *testing.T) {
	dir := t.TempDir()
	w, err := NewBatchWriter(dir)
	if err != nil {
		t.Fatalf("NewBatchWriter: %v", err)
	}
	if !strings.HasPrefix(filepath.Base(w.OutPath()), "stats_") {
		t.Fatalf("unexpected name %s", w.OutPath())
	}

	run := Run{ID: "r1", Seed: 1, FieldSize: 5}
	if err := w.WriteRows(sampleRows(run, 5)); err != nil {
		t.Fatalf("WriteRows: %v", err)
	}
	w.NoteRun()
	if err := w.WriteRows(sampleRows(Run{ID: "r2", Seed: 2, FieldSize: 5}, 3)); err != nil {
		t.Fatalf("WriteRows: %v", err)
	}
	w.NoteRun()

	out, rows, runs, err := w.Finalize()
	if err != nil {
		t.Fatalf("Finalize: %v", err)
	}
	if rows != 8 || runs != 2 {
		t.Fatalf("rows=%d runs=%d want 8/2", rows, runs)
	}
	if _, err := os.Stat(w.TmpPath()); !os.IsNotExist(err) {
		t.Fatalf("tmp file still present: %v", err)
	}

	got, err := ReadFile(out)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if len(got) != 8 || got[0].RunID != "r1" || got[7].RunID != "r2" || got[7].Tick != 3 {
		t.Fatalf("read back %d rows: first=%+v last=%+v", len(got), got[0], got[len(got)-1])
	}

	if err := w.WriteRows(sampleRows(run, 1)); !errors.Is(err, ErrClosed) {
		t.Fatalf("write after finalize err=%v want ErrClosed", err)
	}
	if again, _, _, err := w.Finalize(); again != "" || err != nil {
		t.Fatalf("second Finalize=%q,%v want no-op", again, err)
	}
}

func TestBatchWriter_EmptyBatchLeavesNothing(t *testing.T) {
	dir := t.TempDir()
	w, err := NewBatchWriter(dir)
	if err != nil {
		t.Fatalf("NewBatchWriter: %v", err)
	}
	out, rows, _, err := w.Finalize()
	if err != nil || out != "" || rows != 0 {
		t.Fatalf("Finalize=%q,%d,%v want empty", out, rows, err)
	}
	matches, _ := filepath.Glob(filepath.Join(dir, "*.parquet"))
	tmps, _ := filepath.Glob(filepath.Join(dir, "tmp", "*"))
	if len(matches) != 0 || len(tmps) != 0 {
		t.Fatalf("files left behind: %v %v", matches, tmps)
	}
}

func TestNewBatchWriter_RequiresDir(t *testing.T) {
	if _, err := NewBatchWriter(""); err == nil {
		t.Fatalf("expected error for empty dir")
	}
}

func TestWriteBatchAtomic_RoundTrip(t *testing.T) {
	dir := t.TempDir()
	rows := sampleRows(Run{ID: "solo", Seed: 9, FieldSize: 7}, 4)
	path, err := WriteBatchAtomic(dir, rows)
	if err != nil {
		t.Fatalf("WriteBatchAtomic: %v", err)
	}
	if filepath.Dir(path) != dir {
		t.Fatalf("path=%s not in %s", path, dir)
	}
	got, err := ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	for i := range rows {
		if got[i] != rows[i] {
			t.Fatalf("row %d = %+v want %+v", i, got[i], rows[i])
		}
	}
}
