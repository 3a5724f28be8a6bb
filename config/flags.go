package config

import (
	"flag"
	"io"
	"log/slog"
	"os"

	"github.com/brensch/snek3d/game"
	"github.com/brensch/snek3d/logging"
)

// BindSettings registers the simulation flags on fs. The returned settings
// are filled in when fs is parsed.
func BindSettings(fs *flag.FlagSet) *game.Settings {
	def := game.DefaultSettings()
	s := &game.Settings{}

	fs.DurationVar(&s.TickInterval, "tick", EnvDurationOrDefault("TICK", def.TickInterval), "Duration of one simulation tick")
	fs.IntVar(&s.FieldSize, "field-size", EnvIntOrDefault("FIELD_SIZE", def.FieldSize), "Cells along each axis of the cubic field")
	fs.Float64Var(&s.CellSize, "cell-size", EnvFloatOrDefault("CELL_SIZE", def.CellSize), "World-space size of one cell")
	fs.IntVar(&s.SnakeCount, "snakes", EnvIntOrDefault("SNAKES", def.SnakeCount), "Snakes spawned at start")
	fs.IntVar(&s.SnakeStartLength, "length", EnvIntOrDefault("LENGTH", def.SnakeStartLength), "Initial snake length")
	fs.IntVar(&s.FoodCount, "food", EnvIntOrDefault("FOOD", def.FoodCount), "Food spawned at start")
	fs.IntVar(&s.Food.MinimumFood, "min-food", EnvIntOrDefault("MIN_FOOD", def.Food.MinimumFood), "Top food back up to this count after every tick (0 disables)")
	fs.IntVar(&s.Food.FoodSpawnChance, "food-chance", EnvIntOrDefault("FOOD_CHANCE", def.Food.FoodSpawnChance), "Percent chance of one extra food per tick")
	fs.BoolVar(&s.WanderWithoutFood, "wander", EnvBoolOrDefault("WANDER", def.WanderWithoutFood), "Snakes with no food in sight move randomly instead of dying")
	fs.Int64Var(&s.Seed, "seed", EnvInt64OrDefault("SEED", def.Seed), "Random seed (0 seeds from the clock)")

	return s
}

// LogFlags selects the log output of a command.
type LogFlags struct {
	Format string
	Level  string
	File   string
}

func BindLogging(fs *flag.FlagSet) *LogFlags {
	l := &LogFlags{}
	fs.StringVar(&l.Format, "log-format", EnvOrDefault("LOG_FORMAT", logging.FormatText), "Log format: text, json or pretty")
	fs.StringVar(&l.Level, "log-level", EnvOrDefault("LOG_LEVEL", "info"), "Log level: debug, info, warn or error")
	fs.StringVar(&l.File, "log-file", EnvOrDefault("LOG_FILE", ""), "Append logs to this file instead of stderr")
	return l
}

// Logger builds the configured logger. If File is empty logs go to
// fallback. The returned closer releases the log file.
func (l LogFlags) Logger(fallback io.Writer) (*slog.Logger, io.Closer, error) {
	level, err := logging.ParseLevel(l.Level)
	if err != nil {
		return nil, nil, err
	}
	w := fallback
	var closer io.Closer = nopCloser{}
	if l.File != "" {
		f, err := os.OpenFile(l.File, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return nil, nil, err
		}
		w, closer = f, f
	}
	logger, err := logging.New(w, l.Format, level)
	if err != nil {
		_ = closer.Close()
		return nil, nil, err
	}
	return logger, closer, nil
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
