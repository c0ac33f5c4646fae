package main

import (
	"context"
	"flag"
	"net/http"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	log "github.com/sirupsen/logrus"

	"quakemap/internal/config"
	"quakemap/internal/observability"
	"quakemap/internal/source"
	"quakemap/internal/tui"
)

func main() {
	configPath := flag.String("config", "", "path to a quakemap.yaml config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatal(err)
	}

	logger, closer, err := observability.NewLogger(cfg)
	if err != nil {
		log.Fatal(err)
	}
	defer closer.Close()

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	metrics := observability.NewMetrics(reg)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if cfg.MetricsAddr != "" {
		srv := observability.NewServer(cfg.MetricsAddr, reg, logger)
		go func() {
			logger.WithField("addr", cfg.MetricsAddr).Info("Metrics server listening")
			if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				logger.WithError(err).Error("Metrics server stopped")
			}
		}()
		defer func() {
			shutdownCtx, done := context.WithTimeout(context.Background(), 5*time.Second)
			defer done()
			_ = srv.Shutdown(shutdownCtx)
		}()
	}

	client := source.NewClient(cfg.HTTPTimeout, logger, metrics)
	m := tui.New(ctx, tui.Options{
		Config:  cfg,
		Source:  client,
		Logger:  logger,
		Metrics: metrics,
	})

	logger.WithFields(log.Fields{
		"boundaries": cfg.BoundariesURL,
		"feed":       cfg.FeedURL,
	}).Info("Starting quakemap")

	if _, err := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseAllMotion()).Run(); err != nil {
		logger.WithError(err).Error("Program exited")
		log.Fatal(err)
	}
}
