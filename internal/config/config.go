package config

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"downtimed/internal/probe"
)

type Config struct {
	DataDir           string        // heartbeat files and downtime log live here
	HeartbeatInterval time.Duration // shared poll cadence for all targets

	// Probe tuning (env only; the CLI surface is just the two flags above)
	ProbeHosts    []string
	ProbeAttempts int
	ProbeTimeout  time.Duration

	StatusAddr string // bind address for the read-only status API; empty disables it
	Debug      bool
}

// Load parses the required CLI flags and the environment tuning knobs.
func Load(args []string) (Config, error) {
	fs := flag.NewFlagSet("downtimed", flag.ContinueOnError)
	dataDir := fs.String("data-dir", "", "absolute path for heartbeat files and the downtime log")
	interval := fs.Int("heartbeat-interval", 0, "poll cadence in seconds")
	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}
	if len(fs.Args()) > 0 {
		return Config{}, fmt.Errorf("unexpected arguments: %s", strings.Join(fs.Args(), " "))
	}
	if *dataDir == "" {
		return Config{}, errors.New("--data-dir is required")
	}
	if *interval <= 0 {
		return Config{}, errors.New("--heartbeat-interval must be a positive number of seconds")
	}

	cfg := Config{
		DataDir:           *dataDir,
		HeartbeatInterval: time.Duration(*interval) * time.Second,
		ProbeHosts:        probe.DefaultHosts,
		ProbeAttempts:     5,
		ProbeTimeout:      time.Second,
		StatusAddr:        os.Getenv("STATUS_ADDR"),
		Debug:             os.Getenv("LOG_DEBUG") != "",
	}

	if v := os.Getenv("PROBE_HOSTS"); v != "" {
		hosts := make([]string, 0, 4)
		for _, h := range strings.Split(v, ",") {
			if h = strings.TrimSpace(h); h != "" {
				hosts = append(hosts, h)
			}
		}
		if len(hosts) > 0 {
			cfg.ProbeHosts = hosts
		}
	}
	if v := os.Getenv("PROBE_ATTEMPTS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.ProbeAttempts = n
		}
	}
	if v := os.Getenv("PROBE_TIMEOUT_MS"); v != "" {
		if ms, err := strconv.Atoi(v); err == nil && ms > 0 {
			cfg.ProbeTimeout = time.Duration(ms) * time.Millisecond
		}
	}

	return cfg, nil
}
