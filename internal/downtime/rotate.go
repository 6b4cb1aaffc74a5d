package downtime

import (
	"errors"
	"os"
	"sync"
	"time"
)

// rotatingFile is a zapcore.WriteSyncer backed by a file that rolls over at
// local midnight: before the first write of a new day, the current file is
// renamed to <name>.YYYY-MM-DD (the date of the day it covers) and a fresh
// file is opened.
type rotatingFile struct {
	mu   sync.Mutex
	name string
	f    *os.File
	day  time.Time // local midnight of the day f covers
	now  func() time.Time
}

func newRotatingFile(name string) (*rotatingFile, error) {
	f, err := os.OpenFile(name, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, err
	}

	r := &rotatingFile{name: name, f: f, now: time.Now}
	r.day = midnight(r.now())

	// A pre-existing file may belong to an earlier day if the process was
	// down over midnight; stamp it with its modification day so the next
	// write rotates it out.
	if fi, err := f.Stat(); err == nil && fi.Size() > 0 {
		if d := midnight(fi.ModTime()); d.Before(r.day) {
			r.day = d
		}
	}
	return r, nil
}

func midnight(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

func (r *rotatingFile) Write(p []byte) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.rotateIfStale(); err != nil {
		return 0, err
	}
	return r.f.Write(p)
}

func (r *rotatingFile) rotateIfStale() error {
	today := midnight(r.now())
	if !today.After(r.day) {
		return nil
	}
	if err := r.f.Close(); err != nil {
		return err
	}
	rotated := r.name + "." + r.day.Format("2006-01-02")
	if err := os.Rename(r.name, rotated); err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	f, err := os.OpenFile(r.name, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return err
	}
	r.f = f
	r.day = today
	return nil
}

func (r *rotatingFile) Sync() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.f.Sync()
}

func (r *rotatingFile) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.f.Close()
}
