package tui

import (
	"sync/atomic"

	"github.com/brensch/snek3d/game"
)

// Feed hands snapshots from the simulation goroutine to the view. A slow
// view never blocks a tick: when the buffer is full the snapshot is dropped.
type Feed struct {
	ch      chan *game.Snapshot
	dropped atomic.Uint64
}

func NewFeed(buffer int) *Feed {
	if buffer < 1 {
		buffer = 1
	}
	return &Feed{ch: make(chan *game.Snapshot, buffer)}
}

// Observe is an engine observer.
func (f *Feed) Observe(s *game.Snapshot) {
	select {
	case f.ch <- s:
	default:
		f.dropped.Add(1)
	}
}

func (f *Feed) C() <-chan *game.Snapshot { return f.ch }

func (f *Feed) Dropped() uint64 { return f.dropped.Load() }

// Close ends the stream. Call it only after the producer has stopped.
func (f *Feed) Close() { close(f.ch) }
