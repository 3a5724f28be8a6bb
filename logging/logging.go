// Package logging builds the slog loggers used by the snek3d commands.
package logging

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
)

var ErrUnknownFormat = errors.New("unknown log format")

const (
	FormatText   = "text"
	FormatJSON   = "json"
	FormatPretty = "pretty"
)

// ParseLevel accepts debug, info, warn/warning and error in any case.
func ParseLevel(s string) (slog.Level, error) {
	var l slog.Level
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "warning":
		return slog.LevelWarn, nil
	case "":
		return slog.LevelInfo, nil
	}
	if err := l.UnmarshalText([]byte(s)); err != nil {
		return 0, fmt.Errorf("parse log level %q: %w", s, err)
	}
	return l, nil
}

// New returns a logger writing to w in the given format at level and above.
func New(w io.Writer, format string, level slog.Leveler) (*slog.Logger, error) {
	opts := &slog.HandlerOptions{Level: level}
	var h slog.Handler
	switch strings.ToLower(format) {
	case FormatText, "":
		h = slog.NewTextHandler(w, opts)
	case FormatJSON:
		h = slog.NewJSONHandler(w, opts)
	case FormatPretty:
		h = NewPrettyHandler(w, opts)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
	return slog.New(h), nil
}

// Discard returns a logger that drops everything.
func Discard() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}
