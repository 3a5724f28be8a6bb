// Package anim turns committed snake moves into smooth world-space motion
// for a renderer. It never feeds anything back into the simulation.
package anim

import (
	"time"

	"github.com/brensch/snek3d/grid"
)

// Tween interpolates a polyline of segment positions from one pose to
// another over a fixed duration.
type Tween struct {
	From     []grid.Vec3
	To       []grid.Vec3
	Duration time.Duration
}

// NewTween builds a tween from the displayed positions to the target
// positions. Target segments with no displayed counterpart start at their
// target, so a freshly grown tail appears in place. Extra displayed
// segments are dropped.
func NewTween(from, to []grid.Vec3, d time.Duration) Tween {
	start := make([]grid.Vec3, len(to))
	n := copy(start, from)
	copy(start[n:], to[n:])

	end := make([]grid.Vec3, len(to))
	copy(end, to)

	return Tween{From: start, To: end, Duration: d}
}

// Progress returns how far through the tween the elapsed time is, in [0, 1].
func (t Tween) Progress(elapsed time.Duration) float64 {
	if t.Duration <= 0 || elapsed >= t.Duration {
		return 1
	}
	if elapsed <= 0 {
		return 0
	}
	return float64(elapsed) / float64(t.Duration)
}

// At samples the tween at progress p, clamped to [0, 1].
func (t Tween) At(p float64) []grid.Vec3 {
	switch {
	case p < 0:
		p = 0
	case p > 1:
		p = 1
	}
	out := make([]grid.Vec3, len(t.To))
	for i := range t.To {
		out[i] = t.From[i].Lerp(t.To[i], p)
	}
	return out
}
