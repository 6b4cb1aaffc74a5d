package monitor

import (
	"context"
	"strings"
	"testing"
	"time"

	"go.uber.org/zap"

	"downtimed/internal/heartbeat"
)

// fakeProber plays back a scripted sequence of reachability answers.
type fakeProber struct {
	answers []bool
	i       int
}

func (f *fakeProber) Reachable(ctx context.Context) (bool, error) {
	if f.i >= len(f.answers) {
		return false, nil
	}
	up := f.answers[f.i]
	f.i++
	return up, nil
}

func TestInternet_RecoveryEmitsExactlyOneLine(t *testing.T) {
	dir := t.TempDir()
	store := heartbeat.NewStore(dir)
	sink := newTestSink(t, dir)

	t0 := time.Date(2024, 3, 17, 8, 0, 0, 0, time.Local)
	if err := store.Save(InternetTarget, t0); err != nil {
		t.Fatal(err)
	}

	m, err := NewInternet(zap.NewNop(), store, sink, &fakeProber{answers: []bool{false, true, true}})
	if err != nil {
		t.Fatalf("NewInternet: %v", err)
	}

	clock := t0.Add(time.Hour)
	m.now = func() time.Time { return clock }

	// down tick: no line, heartbeat untouched
	if err := m.Tick(context.Background()); err != nil {
		t.Fatalf("tick 1: %v", err)
	}
	if lines := readLogLines(t, dir); len(lines) != 0 {
		t.Fatalf("no line expected while down, got %v", lines)
	}

	// recovery tick: one line, start=t0 end=now
	clock = t0.Add(2 * time.Hour)
	if err := m.Tick(context.Background()); err != nil {
		t.Fatalf("tick 2: %v", err)
	}
	lines := readLogLines(t, dir)
	if len(lines) != 1 {
		t.Fatalf("expected one outage line on recovery, got %v", lines)
	}
	want := "internet down between 2024-03-17T08:00:00 and 2024-03-17T10:00:00"
	if !strings.HasSuffix(lines[0], want) {
		t.Fatalf("line %q does not end with %q", lines[0], want)
	}

	// steady up tick: no extra line
	clock = clock.Add(time.Minute)
	if err := m.Tick(context.Background()); err != nil {
		t.Fatalf("tick 3: %v", err)
	}
	if lines := readLogLines(t, dir); len(lines) != 1 {
		t.Fatalf("steady up tick must not add lines, got %v", lines)
	}
}

func TestInternet_HeartbeatFrozenWhileDown(t *testing.T) {
	dir := t.TempDir()
	store := heartbeat.NewStore(dir)
	sink := newTestSink(t, dir)

	t0 := time.Date(2024, 3, 17, 8, 0, 0, 0, time.Local)
	if err := store.Save(InternetTarget, t0); err != nil {
		t.Fatal(err)
	}

	m, err := NewInternet(zap.NewNop(), store, sink, &fakeProber{answers: []bool{false, false, false}})
	if err != nil {
		t.Fatalf("NewInternet: %v", err)
	}

	for i := 0; i < 3; i++ {
		if err := m.Tick(context.Background()); err != nil {
			t.Fatalf("tick %d: %v", i, err)
		}
		got, ok, err := store.Load(InternetTarget)
		if err != nil || !ok {
			t.Fatalf("Load: ok=%v err=%v", ok, err)
		}
		if !got.Equal(t0) {
			t.Fatalf("heartbeat moved while down: got %v want %v", got, t0)
		}
	}
}

func TestInternet_FirstUpWithoutPriorHeartbeat(t *testing.T) {
	dir := t.TempDir()
	store := heartbeat.NewStore(dir)
	sink := newTestSink(t, dir)

	m, err := NewInternet(zap.NewNop(), store, sink, &fakeProber{answers: []bool{true}})
	if err != nil {
		t.Fatalf("NewInternet: %v", err)
	}

	now := time.Date(2024, 3, 17, 12, 0, 0, 0, time.Local)
	m.now = func() time.Time { return now }

	if err := m.Tick(context.Background()); err != nil {
		t.Fatalf("Tick: %v", err)
	}
	if lines := readLogLines(t, dir); len(lines) != 0 {
		t.Fatalf("no prior heartbeat means nothing to report, got %v", lines)
	}
	got, ok, err := store.Load(InternetTarget)
	if err != nil || !ok {
		t.Fatalf("Load after first up tick: ok=%v err=%v", ok, err)
	}
	if !got.Equal(now) {
		t.Fatalf("heartbeat: got %v want %v", got, now)
	}
}

func TestInternet_SaveFailureIsFatal(t *testing.T) {
	dir := t.TempDir()
	sink := newTestSink(t, dir)

	store := heartbeat.NewStore(dir + "/missing")
	m, err := NewInternet(zap.NewNop(), store, sink, &fakeProber{answers: []bool{true}})
	if err != nil {
		t.Fatalf("NewInternet: %v", err)
	}
	if err := m.Tick(context.Background()); err == nil {
		t.Fatalf("expected fatal error when heartbeat save fails")
	}
}

func TestInternet_Status(t *testing.T) {
	dir := t.TempDir()
	store := heartbeat.NewStore(dir)
	sink := newTestSink(t, dir)

	m, err := NewInternet(zap.NewNop(), store, sink, &fakeProber{answers: []bool{false, true}})
	if err != nil {
		t.Fatalf("NewInternet: %v", err)
	}

	if st := m.Status(); st.State != "unknown" {
		t.Fatalf("pre-tick status: %+v", st)
	}

	if err := m.Tick(context.Background()); err != nil {
		t.Fatal(err)
	}
	if st := m.Status(); st.State != "down" {
		t.Fatalf("after failed probe: %+v", st)
	}

	if err := m.Tick(context.Background()); err != nil {
		t.Fatal(err)
	}
	st := m.Status()
	if st.State != "up" || st.LastHeartbeat == nil {
		t.Fatalf("after recovery: %+v", st)
	}
}
