package main

import (
	"context"
	"errors"
	"flag"
	"io"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/brensch/snek3d/anim"
	"github.com/brensch/snek3d/config"
	"github.com/brensch/snek3d/engine"
	"github.com/brensch/snek3d/game"
	"github.com/brensch/snek3d/tui"
	tea "github.com/charmbracelet/bubbletea"
)

func main() {
	settings := config.BindSettings(flag.CommandLine)
	logFlags := config.BindLogging(flag.CommandLine)
	headless := flag.Bool("headless", config.EnvBoolOrDefault("HEADLESS", false), "Log ticks instead of running the terminal view")
	maxTicks := flag.Uint64("max-ticks", uint64(config.EnvIntOrDefault("MAX_TICKS", 0)), "If > 0, stop after this many ticks")
	statusEvery := flag.Uint64("status-every", uint64(config.EnvIntOrDefault("STATUS_EVERY", 10)), "Headless: log a status line every N ticks")
	flag.Parse()

	if err := settings.Validate(); err != nil {
		log.Fatalf("Invalid settings: %v", err)
	}

	// The terminal view owns stdout, so logs only go somewhere if a file
	// was requested.
	var fallback io.Writer = os.Stderr
	if !*headless {
		fallback = io.Discard
	}
	logger, closer, err := logFlags.Logger(fallback)
	if err != nil {
		log.Fatalf("Failed to configure logging: %v", err)
	}
	defer closer.Close()

	sigCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctx, cancel := context.WithCancel(sigCtx)
	defer cancel()

	log.SetOutput(fallback)
	log.Printf("Starting snek3d (headless=%v)", *headless)
	log.Printf("  Field: %d^3 cells of %.2f", settings.FieldSize, settings.CellSize)
	log.Printf("  Snakes: %d (length %d), Food: %d", settings.SnakeCount, settings.SnakeStartLength, settings.FoodCount)
	log.Printf("  Tick: %s, Seed: %d", settings.TickInterval, settings.Seed)

	limit := func(snap *game.Snapshot) {
		if *maxTicks > 0 && snap.Tick >= *maxTicks {
			logger.Info("tick limit reached", "tick", snap.Tick)
			cancel()
		}
	}

	if *headless {
		runHeadless(ctx, cancel, *settings, logger, limit, *statusEvery)
		return
	}
	runInteractive(ctx, cancel, *settings, logger, limit)
}

func runHeadless(ctx context.Context, cancel context.CancelFunc, settings game.Settings, logger *slog.Logger, limit func(*game.Snapshot), statusEvery uint64) {
	status := func(snap *game.Snapshot) {
		if statusEvery > 0 && snap.Tick%statusEvery == 0 {
			logger.Info("status",
				"tick", snap.Tick,
				"snakes", len(snap.Snakes),
				"food", len(snap.Food),
				"longest", snap.LongestSnake(),
			)
		}
		if len(snap.Snakes) == 0 {
			logger.Info("no snakes left", "tick", snap.Tick)
			cancel()
		}
	}

	eng, err := engine.New(settings,
		engine.WithLogger(logger),
		engine.WithObserver(status),
		engine.WithObserver(limit),
	)
	if err != nil {
		log.Fatalf("Failed to create engine: %v", err)
	}
	eng.Populate()

	err = eng.Run(ctx)
	logSummary(logger, eng)
	if err != nil && !errors.Is(err, context.Canceled) {
		log.Fatalf("Simulation stopped: %v", err)
	}
}

func runInteractive(ctx context.Context, cancel context.CancelFunc, settings game.Settings, logger *slog.Logger, limit func(*game.Snapshot)) {
	runner := anim.NewRunner(ctx, settings.Frame(), anim.WithRunnerLogger(logger))
	defer runner.Close()

	feed := tui.NewFeed(8)
	eng, err := engine.New(settings,
		engine.WithLogger(logger),
		engine.WithPresenter(runner),
		engine.WithObserver(feed.Observe),
		engine.WithObserver(limit),
	)
	if err != nil {
		log.Fatalf("Failed to create engine: %v", err)
	}
	eng.Populate()

	simDone := make(chan error, 1)
	go func() {
		err := eng.Run(ctx)
		feed.Close()
		simDone <- err
	}()

	p := tea.NewProgram(tui.New(feed, runner), tea.WithAltScreen(), tea.WithContext(ctx))
	_, uiErr := p.Run()
	cancel()
	simErr := <-simDone

	logSummary(logger, eng)
	if uiErr != nil && !errors.Is(uiErr, tea.ErrProgramKilled) {
		log.Fatalf("Terminal view failed: %v", uiErr)
	}
	if simErr != nil && !errors.Is(simErr, context.Canceled) {
		log.Fatalf("Simulation stopped: %v", simErr)
	}
}

func logSummary(logger *slog.Logger, eng *engine.Engine) {
	snakes, food := eng.Counts()
	logger.Info("simulation finished",
		"ticks", eng.Ticks(),
		"snakes", snakes,
		"food", food,
		"longest", eng.Snapshot().LongestSnake(),
	)
}
