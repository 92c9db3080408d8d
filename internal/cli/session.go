package cli

import (
	"context"
	"io"

	log "github.com/sirupsen/logrus"

	"github.com/rileyhilliard/tusk/internal/config"
	"github.com/rileyhilliard/tusk/internal/logger"
	"github.com/rileyhilliard/tusk/internal/metrics"
	"github.com/rileyhilliard/tusk/internal/source"
)

// session is everything a command needs to sample this machine: settings,
// logging, the gopsutil source and a primed collector. Close releases them.
type session struct {
	cfg     *config.Config
	cfgPath string

	base *log.Logger
	ring *logger.Ring
	log  logger.Logger

	src       *source.System
	collector *metrics.Collector

	closers []io.Closer
}

// openSession loads settings and starts sampling. withRing keeps recent log
// lines in memory for the dashboard's debug tab.
func openSession(ctx context.Context, flags GlobalFlags, withRing bool) (*session, error) {
	cfg, path, err := loadSettings(flags)
	if err != nil {
		return nil, err
	}

	s := &session{cfg: cfg, cfgPath: path}

	if withRing {
		if s.ring, err = logger.NewRing(cfg.Log.Buffer); err != nil {
			return nil, err
		}
	}

	base, closer, err := logger.Setup(logger.Options{
		Level: cfg.Log.Level,
		File:  cfg.Log.File,
		Ring:  s.ring,
	})
	if err != nil {
		return nil, err
	}
	s.base = base
	s.closers = append(s.closers, closer)
	s.log = logger.New("cli", base)

	src, err := source.New(ctx, source.WithLogger(logger.New("source", base)))
	if err != nil {
		s.Close()
		return nil, err
	}
	s.src = src
	s.closers = append(s.closers, src)

	s.collector, err = metrics.NewCollector(ctx, src,
		metrics.WithLogger(logger.New("collector", base)),
		metrics.WithCapacity(cfg.History.Capacity),
		metrics.WithTrackedCapacity(cfg.History.TrackedCapacity),
	)
	if err != nil {
		s.Close()
		return nil, err
	}

	if path != "" {
		s.log.Info("config loaded from %s", path)
	}
	return s, nil
}

// Close releases the source and the log file, newest first.
func (s *session) Close() {
	for i := len(s.closers) - 1; i >= 0; i-- {
		if err := s.closers[i].Close(); err != nil && s.log != nil {
			s.log.Warn("close: %v", err)
		}
	}
	s.closers = nil
}
