package heartbeat

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// Layout is the on-disk timestamp format: ISO-8601 at second resolution,
// local time, no zone offset.
const Layout = "2006-01-02T15:04:05"

// Store persists one "last known good" timestamp per target inside a data
// directory, as heartbeat-<target>.txt. There is no history: Save overwrites
// the single current value, Load reads it back.
type Store struct {
	dir string
}

func NewStore(dir string) *Store {
	return &Store{dir: dir}
}

func (s *Store) path(target string) string {
	return filepath.Join(s.dir, fmt.Sprintf("heartbeat-%s.txt", target))
}

// Load reads the persisted heartbeat for target. ok is false when no record
// exists or the stored content is empty or not a timestamp in Layout; neither
// case is an error — both mean "never observed". I/O failures other than
// not-exist are returned to the caller.
func (s *Store) Load(target string) (t time.Time, ok bool, err error) {
	b, err := os.ReadFile(s.path(target))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return time.Time{}, false, nil
		}
		return time.Time{}, false, fmt.Errorf("heartbeat: read %s: %w", target, err)
	}

	raw := strings.TrimSpace(string(b))
	if raw == "" {
		return time.Time{}, false, nil
	}

	t, perr := time.ParseInLocation(Layout, raw, time.Local)
	if perr != nil {
		// Malformed content counts as "never observed".
		return time.Time{}, false, nil
	}
	return t, true, nil
}

// Save overwrites the heartbeat for target. The value goes to a temp file in
// the same directory and is renamed into place, so a reader never observes a
// partially written record.
func (s *Store) Save(target string, t time.Time) error {
	dst := s.path(target)

	tmp, err := os.CreateTemp(s.dir, fmt.Sprintf("heartbeat-%s-*.tmp", target))
	if err != nil {
		return fmt.Errorf("heartbeat: create temp for %s: %w", target, err)
	}
	if _, err := tmp.WriteString(t.Format(Layout)); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("heartbeat: write %s: %w", target, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("heartbeat: close %s: %w", target, err)
	}
	if err := os.Rename(tmp.Name(), dst); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("heartbeat: replace %s: %w", dst, err)
	}
	return nil
}
