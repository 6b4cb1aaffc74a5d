package monitor

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"downtimed/internal/downtime"
	"downtimed/internal/heartbeat"
)

// Prober answers whether the network is reachable right now. The returned
// error carries per-attempt diagnostics when the answer is no.
type Prober interface {
	Reachable(ctx context.Context) (bool, error)
}

// Internet watches network reachability. It starts Down and stays Down until
// a probe succeeds; while Down the heartbeat is never refreshed, so it keeps
// the last moment connectivity was known good. Unlike the system target this
// monitor witnesses its outages live, and the log line is deferred to the
// moment of recovery, when both ends of the window are known.
type Internet struct {
	logger *zap.Logger
	store  *heartbeat.Store
	log    *downtime.Log
	probe  Prober

	now func() time.Time

	mu      sync.Mutex
	last    time.Time
	seen    bool
	down    bool // sticky until a probe succeeds
	checked time.Time
}

func NewInternet(logger *zap.Logger, store *heartbeat.Store, log *downtime.Log, probe Prober) (*Internet, error) {
	last, ok, err := store.Load(InternetTarget)
	if err != nil {
		return nil, err
	}
	return &Internet{
		logger: logger,
		store:  store,
		log:    log,
		probe:  probe,
		now:    time.Now,
		last:   last,
		seen:   ok,
		down:   true,
	}, nil
}

func (m *Internet) Name() string { return InternetTarget }

func (m *Internet) Tick(ctx context.Context) error {
	up, perr := m.probe.Reachable(ctx)
	if !up {
		m.mu.Lock()
		m.down = true
		m.checked = m.now()
		m.mu.Unlock()
		if perr != nil {
			m.logger.Debug("internet_unreachable", zap.Error(perr))
		}
		return nil
	}

	// Window end is the moment reachability was confirmed, not the tick
	// start: a slow probe series must not shorten the recorded outage.
	now := m.now()

	m.mu.Lock()
	wasDown, last, seen := m.down, m.last, m.seen
	m.mu.Unlock()

	if wasDown && seen {
		m.log.Outage(InternetTarget, last, now)
		m.logger.Info("internet_outage_recorded",
			zap.Time("from", last),
			zap.Time("to", now),
		)
	}

	if err := m.store.Save(InternetTarget, now); err != nil {
		return err
	}

	m.mu.Lock()
	m.down = false
	m.last, m.seen = now, true
	m.checked = now
	m.mu.Unlock()
	return nil
}

func (m *Internet) Status() Status {
	m.mu.Lock()
	defer m.mu.Unlock()

	st := Status{Name: InternetTarget, State: "unknown"}
	if m.seen {
		hb := m.last
		st.LastHeartbeat = &hb
	}
	if !m.checked.IsZero() {
		at := m.checked
		st.LastCheckedAt = &at
		if m.down {
			st.State = "down"
		} else {
			st.State = "up"
		}
	}
	return st
}
