// Package monitor holds the two target monitors and the loop runner that
// drives them. Each monitor owns its heartbeat record; the only shared
// resource is the downtime log, which takes whole lines.
package monitor

import (
	"context"
	"errors"
	"sync"
	"time"

	"go.uber.org/zap"
)

// Target names double as heartbeat storage keys and log-line prefixes.
const (
	SystemTarget   = "system"
	InternetTarget = "internet"
)

// Monitor is one monitored condition.
type Monitor interface {
	Name() string
	// Tick runs one check and refreshes (or deliberately withholds) the
	// heartbeat. A returned error is fatal: heartbeat persistence failed
	// and the monitor's record can no longer be trusted.
	Tick(ctx context.Context) error
}

// Status is a point-in-time snapshot of a monitor, served by the status API.
type Status struct {
	Name          string     `json:"name"`
	State         string     `json:"state"` // "up", "down" or "unknown"
	LastHeartbeat *time.Time `json:"last_heartbeat,omitempty"`
	LastCheckedAt *time.Time `json:"last_checked_at,omitempty"`
}

// StatusReporter is implemented by monitors that expose a snapshot.
type StatusReporter interface {
	Status() Status
}

// Runner drives each monitor in its own goroutine at a shared fixed
// interval: an immediate first pass, then one tick per interval. Loops
// suspend independently, so a slow probe on one target never delays the
// other target's heartbeat.
type Runner struct {
	Logger   *zap.Logger
	Interval time.Duration
	Monitors []Monitor
}

// Run blocks until ctx is cancelled or a monitor fails. The first monitor
// error cancels every loop and is returned.
func (r *Runner) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		firstErr error
	)
	for _, m := range r.Monitors {
		m := m
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := r.loop(ctx, m); err != nil && !errors.Is(err, context.Canceled) {
				mu.Lock()
				if firstErr == nil {
					firstErr = err
				}
				mu.Unlock()
				cancel()
			}
		}()
	}
	wg.Wait()
	return firstErr
}

func (r *Runner) loop(ctx context.Context, m Monitor) error {
	t := time.NewTicker(r.Interval)
	defer t.Stop()

	r.Logger.Info("monitor_started", zap.String("target", m.Name()))

	// immediate first pass
	if err := m.Tick(ctx); err != nil {
		return err
	}

	for {
		select {
		case <-ctx.Done():
			r.Logger.Info("monitor_stopped", zap.String("target", m.Name()))
			return nil
		case <-t.C:
			if err := m.Tick(ctx); err != nil {
				return err
			}
		}
	}
}
