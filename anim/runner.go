package anim

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/brensch/snek3d/game"
	"github.com/brensch/snek3d/grid"
	"github.com/brensch/snek3d/logging"
)

// DefaultFrameInterval is roughly 60 frames per second.
const DefaultFrameInterval = 16 * time.Millisecond

type track struct {
	pos    []grid.Vec3
	cancel context.CancelFunc
	gen    uint64
}

// Runner is a game.Presenter that keeps displayed world positions for
// every entity and animates snakes between ticks. Each snake has at most
// one live process; a new move cancels the one in flight.
type Runner struct {
	frame    grid.Frame
	interval time.Duration
	log      *slog.Logger

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup

	running atomic.Int64

	mu     sync.Mutex
	tracks map[game.ID]*track
}

type RunnerOption func(*Runner)

func WithFrameInterval(d time.Duration) RunnerOption {
	return func(r *Runner) {
		if d > 0 {
			r.interval = d
		}
	}
}

func WithRunnerLogger(l *slog.Logger) RunnerOption {
	return func(r *Runner) {
		if l != nil {
			r.log = l
		}
	}
}

// NewRunner creates a runner whose processes live until ctx is cancelled
// or Close is called.
func NewRunner(ctx context.Context, frame grid.Frame, opts ...RunnerOption) *Runner {
	cctx, cancel := context.WithCancel(ctx)
	r := &Runner{
		frame:    frame,
		interval: DefaultFrameInterval,
		log:      logging.Discard(),
		ctx:      cctx,
		cancel:   cancel,
		tracks:   make(map[game.ID]*track),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func (r *Runner) Spawned(e game.Entity) {
	pos := r.frame.WorldPositions(e.Cells())

	r.mu.Lock()
	defer r.mu.Unlock()
	if tr, ok := r.tracks[e.ID()]; ok && tr.cancel != nil {
		tr.cancel()
	}
	r.tracks[e.ID()] = &track{pos: pos}
}

func (r *Runner) Destroyed(e game.Entity) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if tr, ok := r.tracks[e.ID()]; ok {
		if tr.cancel != nil {
			tr.cancel()
		}
		delete(r.tracks, e.ID())
	}
}

func (r *Runner) Moved(id game.ID, from, to []grid.Cell, d time.Duration) {
	target := r.frame.WorldPositions(to)

	r.mu.Lock()
	defer r.mu.Unlock()

	tr, ok := r.tracks[id]
	if !ok {
		tr = &track{pos: r.frame.WorldPositions(from)}
		r.tracks[id] = tr
	}
	if tr.cancel != nil {
		tr.cancel()
		tr.cancel = nil
		r.log.Debug("animation superseded", "snake", game.ShortID(id))
	}
	tr.gen++

	if d <= 0 || r.ctx.Err() != nil {
		tr.pos = target
		return
	}

	tw := NewTween(tr.pos, target, d)
	ctx, cancel := context.WithCancel(r.ctx)
	tr.cancel = cancel

	r.wg.Add(1)
	r.running.Add(1)
	go r.animate(ctx, id, tr.gen, tw)
}

func (r *Runner) animate(ctx context.Context, id game.ID, gen uint64, tw Tween) {
	defer r.wg.Done()
	defer r.running.Add(-1)

	start := time.Now()
	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			p := tw.Progress(time.Since(start))
			if !r.store(id, gen, tw.At(p)) || p >= 1 {
				return
			}
		}
	}
}

// store writes pos if gen is still the snake's current process.
func (r *Runner) store(id game.ID, gen uint64, pos []grid.Vec3) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	tr, ok := r.tracks[id]
	if !ok || tr.gen != gen {
		return false
	}
	tr.pos = pos
	return true
}

// Positions returns a copy of the displayed positions for id.
func (r *Runner) Positions(id game.ID) ([]grid.Vec3, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	tr, ok := r.tracks[id]
	if !ok {
		return nil, false
	}
	out := make([]grid.Vec3, len(tr.pos))
	copy(out, tr.pos)
	return out, true
}

// Running reports how many animation processes are alive.
func (r *Runner) Running() int { return int(r.running.Load()) }

// Frame returns the mapping used for world positions.
func (r *Runner) Frame() grid.Frame { return r.frame }

// Close cancels every process and waits for them to exit. Later moves
// snap straight to their target.
func (r *Runner) Close() {
	r.cancel()
	r.wg.Wait()
}
