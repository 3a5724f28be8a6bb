package engine

import (
	"context"
	"time"
)

// Run ticks the simulation every TickInterval until ctx is done. A tick
// that overruns the interval delays the next one rather than queueing
// extra ticks. Run returns ctx.Err().
func (e *Engine) Run(ctx context.Context) error {
	interval := e.settings.TickInterval
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	e.log.Info("simulation started", "tick_interval", interval)
	for {
		select {
		case <-ctx.Done():
			e.log.Info("simulation stopped", "ticks", e.ticks.Load())
			return ctx.Err()
		case <-ticker.C:
			start := time.Now()
			r := e.Step()
			if took := time.Since(start); took > interval {
				e.log.Warn("tick overran interval", "tick", r.Tick, "took", took, "interval", interval)
			}
		}
	}
}
