package logger

import (
	"sync"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/rileyhilliard/tusk/internal/history"
)

// Entry is one log line kept by a Ring.
type Entry struct {
	Time      time.Time
	Level     string
	Component string
	Message   string
}

// Ring is a logrus hook that keeps the most recent entries in memory.
// It is safe for concurrent use; logrus may fire hooks from any goroutine.
type Ring struct {
	mu      sync.Mutex
	entries *history.Series[Entry]
}

// NewRing creates a ring holding at most size entries.
func NewRing(size int) (*Ring, error) {
	s, err := history.NewSeries[Entry](size)
	if err != nil {
		return nil, err
	}
	return &Ring{entries: s}, nil
}

// Levels implements log.Hook. Every level is captured; the logger's own level
// filters before hooks fire.
func (r *Ring) Levels() []log.Level {
	return log.AllLevels
}

// Fire implements log.Hook.
func (r *Ring) Fire(e *log.Entry) error {
	component, _ := e.Data["component"].(string)

	r.mu.Lock()
	r.entries.Push(Entry{
		Time:      e.Time,
		Level:     e.Level.String(),
		Component: component,
		Message:   e.Message,
	})
	r.mu.Unlock()
	return nil
}

// Entries returns the held entries, oldest first.
func (r *Ring) Entries() []Entry {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.entries.Values()
}

// Len returns the number of held entries.
func (r *Ring) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.entries.Len()
}
