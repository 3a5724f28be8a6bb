package logging

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"runtime"
	"strconv"
	"strings"
	"sync"
	"time"
)

// PrettyHandler writes each record as an indented JSON object. Values that
// implement fmt.Stringer (cells, directions, phases) are rendered with
// String so that ticks read naturally in a terminal.
//
// Not built for throughput.
type PrettyHandler struct {
	w         io.Writer
	mu        *sync.Mutex
	level     slog.Leveler
	addSource bool
	indent    string

	attrs  []scopedAttr
	groups []string
}

// scopedAttr remembers the group path that was open when the attribute
// was added with WithAttrs.
type scopedAttr struct {
	groups []string
	attr   slog.Attr
}

func NewPrettyHandler(w io.Writer, opts *slog.HandlerOptions) *PrettyHandler {
	h := &PrettyHandler{
		w:      w,
		mu:     &sync.Mutex{},
		level:  slog.LevelInfo,
		indent: "  ",
	}
	if opts != nil {
		if opts.Level != nil {
			h.level = opts.Level
		}
		h.addSource = opts.AddSource
	}
	return h
}

func (h *PrettyHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.level.Level()
}

func (h *PrettyHandler) Handle(_ context.Context, r slog.Record) error {
	when := r.Time
	if when.IsZero() {
		when = time.Now()
	}
	payload := map[string]any{
		slog.TimeKey:    when.Format(time.RFC3339Nano),
		slog.LevelKey:   r.Level.String(),
		slog.MessageKey: r.Message,
	}
	if h.addSource {
		if src := source(r.PC); src != "" {
			payload[slog.SourceKey] = src
		}
	}

	for _, sa := range h.attrs {
		put(nested(payload, sa.groups), sa.attr)
	}
	if r.NumAttrs() > 0 {
		dst := nested(payload, h.groups)
		r.Attrs(func(a slog.Attr) bool {
			put(dst, a)
			return true
		})
	}

	b, err := json.MarshalIndent(payload, "", h.indent)
	if err != nil {
		b = []byte(`{"time":` + strconv.Quote(when.Format(time.RFC3339Nano)) +
			`,"level":` + strconv.Quote(r.Level.String()) +
			`,"msg":` + strconv.Quote(r.Message) +
			`,"marshal_error":` + strconv.Quote(err.Error()) + `}`)
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	_, err = h.w.Write(append(b, '\n'))
	return err
}

func (h *PrettyHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	if len(attrs) == 0 {
		return h
	}
	clone := *h
	clone.attrs = append([]scopedAttr(nil), h.attrs...)
	for _, a := range attrs {
		clone.attrs = append(clone.attrs, scopedAttr{groups: h.groups, attr: a})
	}
	return &clone
}

func (h *PrettyHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	clone := *h
	clone.groups = append(append([]string(nil), h.groups...), name)
	return &clone
}

func nested(root map[string]any, groups []string) map[string]any {
	dst := root
	for _, g := range groups {
		child, ok := dst[g].(map[string]any)
		if !ok {
			child = map[string]any{}
			dst[g] = child
		}
		dst = child
	}
	return dst
}

func put(dst map[string]any, a slog.Attr) {
	if a.Key == "" {
		return
	}
	v := a.Value.Resolve()
	if v.Kind() != slog.KindGroup {
		dst[a.Key] = plain(v)
		return
	}
	child, ok := dst[a.Key].(map[string]any)
	if !ok {
		child = map[string]any{}
	}
	for _, ga := range v.Group() {
		put(child, ga)
	}
	if len(child) > 0 {
		dst[a.Key] = child
	}
}

func plain(v slog.Value) any {
	switch v.Kind() {
	case slog.KindString:
		return v.String()
	case slog.KindInt64:
		return v.Int64()
	case slog.KindUint64:
		return v.Uint64()
	case slog.KindFloat64:
		return v.Float64()
	case slog.KindBool:
		return v.Bool()
	case slog.KindDuration:
		return v.Duration().String()
	case slog.KindTime:
		return v.Time().Format(time.RFC3339Nano)
	case slog.KindAny:
		switch x := v.Any().(type) {
		case error:
			return x.Error()
		case fmt.Stringer:
			return x.String()
		default:
			return x
		}
	default:
		return v.String()
	}
}

func source(pc uintptr) string {
	if pc == 0 {
		return ""
	}
	f, _ := runtime.CallersFrames([]uintptr{pc}).Next()
	if f.File == "" {
		return ""
	}
	file := f.File
	if i := strings.LastIndexByte(file, '/'); i >= 0 {
		file = file[i+1:]
	}
	return file + ":" + strconv.Itoa(f.Line)
}
