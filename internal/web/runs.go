package web

import (
	"sync"
	"time"

	"github.com/conorfennell/examprep/internal/quiz"
)

const (
	// defaultRunTTL is how long an unfinished quiz run is kept.
	defaultRunTTL = 2 * time.Hour
	// defaultMaxRuns caps the number of unfinished runs held in memory.
	defaultMaxRuns = 256
)

type runEntry struct {
	run     *quiz.Run
	started time.Time
}

// runTable holds the in-progress quiz runs of the web UI. Runs that are never
// finished are dropped once they expire or the table is full.
type runTable struct {
	mu      sync.Mutex
	entries map[string]runEntry
	ttl     time.Duration
	max     int
	now     func() time.Time
}

func newRunTable(ttl time.Duration, max int) *runTable {
	return &runTable{
		entries: make(map[string]runEntry),
		ttl:     ttl,
		max:     max,
		now:     time.Now,
	}
}

// add stores run under id, first evicting expired runs and, if the table is
// still full, the oldest ones.
func (t *runTable) add(id string, run *quiz.Run) {
	t.mu.Lock()
	defer t.mu.Unlock()

	now := t.now()
	for k, e := range t.entries {
		if now.Sub(e.started) > t.ttl {
			delete(t.entries, k)
		}
	}
	for len(t.entries) >= t.max {
		oldest := ""
		var at time.Time
		for k, e := range t.entries {
			if oldest == "" || e.started.Before(at) {
				oldest, at = k, e.started
			}
		}
		delete(t.entries, oldest)
	}
	t.entries[id] = runEntry{run: run, started: now}
}

// submit answers the current question of run id. ok is false for an unknown
// or expired id. Completed runs are removed.
func (t *runTable) submit(id, answer string) (run *quiz.Run, fb quiz.Feedback, ok bool, err error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	e, found := t.entries[id]
	if !found {
		return nil, fb, false, nil
	}
	if t.now().Sub(e.started) > t.ttl {
		delete(t.entries, id)
		return nil, fb, false, nil
	}
	fb, err = e.run.Submit(answer)
	if e.run.State() == quiz.Completed {
		delete(t.entries, id)
	}
	return e.run, fb, true, err
}

func (t *runTable) len() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.entries)
}
