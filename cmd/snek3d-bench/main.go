package main

import (
	"context"
	"flag"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"runtime"
	"sync"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/brensch/snek3d/config"
	"github.com/brensch/snek3d/engine"
	"github.com/brensch/snek3d/game"
	"github.com/brensch/snek3d/stats"
	"github.com/google/uuid"
)

var totalRuns atomic.Int64
var totalTicks atomic.Int64

type runResult struct {
	rows []stats.TickRow
}

func main() {
	settings := config.BindSettings(flag.CommandLine)
	logFlags := config.BindLogging(flag.CommandLine)
	runs := flag.Int("runs", config.EnvIntOrDefault("RUNS", 100), "Number of simulations to run")
	workers := flag.Int("workers", config.EnvIntOrDefault("WORKERS", runtime.NumCPU()), "Simulations run in parallel")
	ticks := flag.Int("ticks", config.EnvIntOrDefault("TICKS", 500), "Maximum ticks per simulation")
	outDir := flag.String("out-dir", config.EnvOrDefault("OUT_DIR", "data/stats"), "Directory for stats parquet batches")
	flushRows := flag.Int("flush-rows", config.EnvIntOrDefault("FLUSH_ROWS", 100_000), "Rotate the parquet batch after this many rows")
	flag.Parse()

	if err := settings.Validate(); err != nil {
		log.Fatalf("Invalid settings: %v", err)
	}
	if *runs <= 0 || *workers <= 0 || *ticks <= 0 {
		log.Fatalf("runs, workers and ticks must be positive")
	}

	logger, closer, err := logFlags.Logger(os.Stderr)
	if err != nil {
		log.Fatalf("Failed to configure logging: %v", err)
	}
	defer closer.Close()

	sigCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctx, cancel := context.WithCancel(sigCtx)
	defer cancel()

	log.Printf("Starting snek3d bench")
	log.Printf("  Runs: %d on %d workers, up to %d ticks each", *runs, *workers, *ticks)
	log.Printf("  Field: %d^3, Snakes: %d, Food: %d", settings.FieldSize, settings.SnakeCount, settings.FoodCount)
	log.Printf("  Out Dir: %s (rotate every %d rows)", *outDir, *flushRows)

	jobs := make(chan int)
	results := make(chan runResult, *workers*2)

	writerDone := make(chan struct{})
	go func() {
		parquetWriterLoop(logger, *outDir, *flushRows, results)
		close(writerDone)
	}()

	var workerWG sync.WaitGroup
	for i := 0; i < *workers; i++ {
		workerWG.Add(1)
		go func(workerID int) {
			defer workerWG.Done()
			wlog := logger.With("worker", workerID)
			for idx := range jobs {
				rows, err := simulate(ctx, wlog, *settings, idx, *ticks)
				if err != nil {
					wlog.Error("run failed", "run", idx, "err", err)
					continue
				}
				totalRuns.Add(1)
				if len(rows) > 0 {
					results <- runResult{rows: rows}
				}
			}
		}(i)
	}

	go func() {
		defer close(jobs)
		for i := 0; i < *runs; i++ {
			select {
			case <-ctx.Done():
				return
			case jobs <- i:
			}
		}
	}()

	workersDone := make(chan struct{})
	go func() {
		workerWG.Wait()
		close(results)
		close(workersDone)
	}()

	startTime := time.Now()
	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-workersDone:
			<-writerDone
			elapsed := time.Since(startTime)
			log.Printf("Done: runs=%d ticks=%d in %s (%.0f ticks/s)",
				totalRuns.Load(), totalTicks.Load(), elapsed.Round(time.Millisecond),
				float64(totalTicks.Load())/elapsed.Seconds())
			return
		case <-ticker.C:
			elapsed := time.Since(startTime).Seconds()
			log.Printf("Stats: runs %d/%d, ticks/s %.0f", totalRuns.Load(), *runs, float64(totalTicks.Load())/elapsed)
		}
	}
}

// simulate runs one independent engine and returns a row per tick. A
// cancelled context ends the run early and keeps the rows so far.
func simulate(ctx context.Context, logger *slog.Logger, settings game.Settings, idx, maxTicks int) ([]stats.TickRow, error) {
	if settings.Seed != 0 {
		settings.Seed += int64(idx)
	} else {
		settings.Seed = time.Now().UnixNano() + int64(idx)
	}
	run := stats.Run{ID: uuid.NewString(), Seed: settings.Seed, FieldSize: settings.FieldSize}

	eng, err := engine.New(settings, engine.WithLogger(logger.With("run", run.ID[:8])))
	if err != nil {
		return nil, err
	}
	eng.Populate()

	rows := make([]stats.TickRow, 0, maxTicks)
	for i := 0; i < maxTicks; i++ {
		if ctx.Err() != nil {
			break
		}
		r := eng.Step()
		totalTicks.Add(1)
		rows = append(rows, stats.NewTickRow(run, r, eng.Snapshot()))
		if r.Snakes == 0 {
			break
		}
	}
	return rows, nil
}

func parquetWriterLoop(logger *slog.Logger, outDir string, flushRows int, in <-chan runResult) {
	if flushRows <= 0 {
		flushRows = 100_000
	}

	var w *stats.BatchWriter
	flush := func(final bool) {
		if w == nil {
			return
		}
		outPath, rows, runs, err := w.Finalize()
		w = nil
		switch {
		case err != nil:
			logger.Error("parquet flush failed", "err", err, "final", final)
		case outPath != "":
			logger.Info("parquet flush ok", "path", outPath, "rows", rows, "runs", runs, "final", final)
		}
	}

	for res := range in {
		if w == nil {
			var err error
			w, err = stats.NewBatchWriter(outDir)
			if err != nil {
				logger.Error("open parquet batch", "err", err)
				continue
			}
		}
		if err := w.WriteRows(res.rows); err != nil {
			logger.Error("write parquet rows", "err", err, "rows", len(res.rows))
			continue
		}
		w.NoteRun()
		if w.Rows() >= flushRows {
			flush(false)
		}
	}
	flush(true)
}
