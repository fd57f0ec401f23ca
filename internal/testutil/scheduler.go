package testutil

import (
	"sort"
	"sync"
	"time"

	"github.com/alexanderramin/polaris/internal/notes"
)

// FakeScheduler is a manual clock for acknowledgement timers. Callbacks run
// only from Advance, never from AfterFunc, so callers holding locks are safe.
type FakeScheduler struct {
	mu      sync.Mutex
	now     time.Duration
	pending []*fakeTimer
}

type fakeTimer struct {
	s       *FakeScheduler
	at      time.Duration
	f       func()
	stopped bool
	fired   bool
}

func (t *fakeTimer) Stop() bool {
	t.s.mu.Lock()
	defer t.s.mu.Unlock()
	if t.stopped || t.fired {
		return false
	}
	t.stopped = true
	return true
}

func (s *FakeScheduler) AfterFunc(d time.Duration, f func()) notes.Timer {
	s.mu.Lock()
	defer s.mu.Unlock()
	t := &fakeTimer{s: s, at: s.now + d, f: f}
	s.pending = append(s.pending, t)
	return t
}

// Advance moves the clock forward and runs due callbacks in time order.
func (s *FakeScheduler) Advance(d time.Duration) {
	s.mu.Lock()
	s.now += d
	var due []*fakeTimer
	var rest []*fakeTimer
	for _, t := range s.pending {
		switch {
		case t.stopped:
		case t.at <= s.now:
			t.fired = true
			due = append(due, t)
		default:
			rest = append(rest, t)
		}
	}
	s.pending = rest
	s.mu.Unlock()

	sort.SliceStable(due, func(i, j int) bool { return due[i].at < due[j].at })
	for _, t := range due {
		t.f()
	}
}

// Pending returns how many timers are armed and not yet fired.
func (s *FakeScheduler) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, t := range s.pending {
		if !t.stopped {
			n++
		}
	}
	return n
}
