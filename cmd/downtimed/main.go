package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"go.uber.org/zap"

	"downtimed/internal/boottime"
	"downtimed/internal/config"
	"downtimed/internal/downtime"
	"downtimed/internal/heartbeat"
	"downtimed/internal/httpapi"
	"downtimed/internal/logging"
	"downtimed/internal/monitor"
	"downtimed/internal/probe"
)

func main() {
	cfg, err := config.Load(os.Args[1:])
	if err != nil {
		log.Fatal(err)
	}

	if err := os.MkdirAll(cfg.DataDir, 0o755); err != nil {
		log.Fatal(err)
	}

	logger, err := logging.NewLogger(cfg.DataDir, cfg.Debug)
	if err != nil {
		log.Fatal(err)
	}
	defer logger.Sync()

	dlog, err := downtime.Open(filepath.Join(cfg.DataDir, "downtime.log"))
	if err != nil {
		log.Fatal(err)
	}
	defer dlog.Close()

	store := heartbeat.NewStore(cfg.DataDir)

	sys, err := monitor.NewSystem(logger, store, dlog, boottime.Get)
	if err != nil {
		logger.Error("system_monitor_init_failed", zap.Error(err))
		log.Fatal(err)
	}
	inet, err := monitor.NewInternet(logger, store, dlog, &probe.Reachability{
		Checker:  probe.NewDialChecker(cfg.ProbeTimeout),
		Hosts:    cfg.ProbeHosts,
		Attempts: cfg.ProbeAttempts,
	})
	if err != nil {
		logger.Error("internet_monitor_init_failed", zap.Error(err))
		log.Fatal(err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if cfg.StatusAddr != "" {
		api := httpapi.NewServer(logger, sys, inet)
		go func() {
			logger.Info("status_listen", zap.String("addr", cfg.StatusAddr))
			if err := http.ListenAndServe(cfg.StatusAddr, api.Router()); err != nil {
				logger.Warn("status_server_error", zap.Error(err))
			}
		}()
	}

	logger.Info("watch_start",
		zap.String("data_dir", cfg.DataDir),
		zap.Duration("interval", cfg.HeartbeatInterval),
		zap.Strings("probe_hosts", cfg.ProbeHosts),
		zap.Int("probe_attempts", cfg.ProbeAttempts),
	)

	runner := &monitor.Runner{
		Logger:   logger,
		Interval: cfg.HeartbeatInterval,
		Monitors: []monitor.Monitor{sys, inet},
	}
	if err := runner.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		logger.Error("monitor_failed", zap.Error(err))
		log.Fatal(err)
	}
}
