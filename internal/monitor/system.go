package monitor

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"downtimed/internal/downtime"
	"downtimed/internal/heartbeat"
)

// System tracks host continuity. Its heartbeat proves this process was alive
// at that moment; the gap between the last heartbeat and the next boot time
// is downtime nothing was running to witness.
type System struct {
	logger *zap.Logger
	store  *heartbeat.Store
	log    *downtime.Log

	now func() time.Time

	mu      sync.Mutex
	last    time.Time
	seen    bool
	checked time.Time
}

// NewSystem loads the prior heartbeat and, when one exists, immediately
// records the outage window ending at the current boot time — before any
// tick runs. A boot time at or before the last heartbeat means the process
// restarted without a reboot; the degenerate window is logged verbatim
// rather than guessed away.
func NewSystem(logger *zap.Logger, store *heartbeat.Store, log *downtime.Log, bootTime func() (time.Time, error)) (*System, error) {
	last, ok, err := store.Load(SystemTarget)
	if err != nil {
		return nil, err
	}

	s := &System{
		logger: logger,
		store:  store,
		log:    log,
		now:    time.Now,
		last:   last,
		seen:   ok,
	}

	if ok {
		boot, err := bootTime()
		if err != nil {
			return nil, fmt.Errorf("system monitor: %w", err)
		}
		log.Outage(SystemTarget, last, boot)
		logger.Info("system_outage_recorded",
			zap.Time("from", last),
			zap.Time("to", boot),
		)
	}
	return s, nil
}

func (s *System) Name() string { return SystemTarget }

// Tick writes a fresh heartbeat unconditionally. There is no check that can
// fail: the write itself is the proof of life.
func (s *System) Tick(ctx context.Context) error {
	now := s.now()
	if err := s.store.Save(SystemTarget, now); err != nil {
		return err
	}

	s.mu.Lock()
	s.last, s.seen = now, true
	s.checked = now
	s.mu.Unlock()
	return nil
}

func (s *System) Status() Status {
	s.mu.Lock()
	defer s.mu.Unlock()

	st := Status{Name: SystemTarget, State: "unknown"}
	if s.seen {
		hb := s.last
		st.LastHeartbeat = &hb
	}
	if !s.checked.IsZero() {
		// The system target is up by definition while the process runs.
		st.State = "up"
		at := s.checked
		st.LastCheckedAt = &at
	}
	return st
}
