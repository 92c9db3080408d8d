package cli

import (
	"context"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/term"

	"github.com/rileyhilliard/tusk/internal/config"
	"github.com/rileyhilliard/tusk/internal/errors"
	"github.com/rileyhilliard/tusk/internal/logger"
	"github.com/rileyhilliard/tusk/internal/metrics"
	"github.com/rileyhilliard/tusk/internal/monitor"
)

// requireTerminal fails when stdout can't host the full-screen dashboard.
func requireTerminal() error {
	if term.IsTerminal(int(os.Stdout.Fd())) {
		return nil
	}
	return errors.New(errors.ErrUI,
		"tusk needs a terminal to draw its dashboard",
		"Use 'tusk snapshot' (or 'tusk snapshot --json') for a one-off reading")
}

// dashboardCommand starts the TUI, optionally tracking a pid from the start.
func dashboardCommand(ctx context.Context, flags GlobalFlags, track string, debug bool) error {
	pid, err := ParsePID(track)
	if err != nil {
		return err
	}
	if err := requireTerminal(); err != nil {
		return err
	}

	s, err := openSession(ctx, flags, true)
	if err != nil {
		return err
	}
	defer s.Close()

	return runDashboard(ctx, s, pid, debug || s.cfg.Debug)
}

// runDashboard runs the Bubble Tea program until the user quits, the
// context is cancelled or the source fails for good. Theme edits in the
// config file are applied live.
func runDashboard(ctx context.Context, s *session, pid metrics.PID, debug bool) error {
	model, err := monitor.NewModel(ctx, monitor.Options{
		Collector:    s.collector,
		Ring:         s.ring,
		Log:          logger.New("monitor", s.base),
		Theme:        s.cfg.Theme,
		NetworkFloor: s.cfg.NetworkFloor(),
		MemoryFloor:  s.cfg.MemoryFloor(),
		Debug:        debug,
		Track:        pid,
	})
	if err != nil {
		return err
	}

	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))

	if s.cfgPath != "" {
		w, err := config.Watch(s.cfgPath, logger.New("config", s.base), func(th config.Theme) {
			p.Send(monitor.ThemeMsg(th))
		})
		if err != nil {
			s.log.Warn("theme reload disabled: %v", err)
		} else {
			defer w.Close()
		}
	}

	final, err := p.Run()
	if err != nil {
		if ctx.Err() != nil {
			return nil
		}
		return errors.WrapWithCode(err, errors.ErrUI,
			"Dashboard stopped unexpectedly",
			"Try again with --log-file to capture what happened")
	}

	if m, ok := final.(monitor.Model); ok && m.Err() != nil {
		return m.Err()
	}
	return nil
}
