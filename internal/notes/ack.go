package notes

import (
	"time"

	"github.com/alexanderramin/polaris/internal/domain"
)

// DefaultAckDuration is how long a save acknowledgement stays visible.
const DefaultAckDuration = 3 * time.Second

// Timer is a scheduled callback that can be cancelled.
type Timer interface {
	Stop() bool
}

// Scheduler runs f once after d.
type Scheduler interface {
	AfterFunc(d time.Duration, f func()) Timer
}

type realScheduler struct{}

func (realScheduler) AfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}

type ackKey struct {
	id    domain.StrategyID
	field domain.NoteField
}

// scheduleAckClear arms a clear for key. Callers hold s.mu.
func (s *Store) scheduleAckClear(key ackKey) {
	if s.supersede {
		if seq, ok := s.latest[key]; ok {
			if t, ok := s.timers[seq]; ok {
				t.Stop()
				delete(s.timers, seq)
			}
		}
	}
	s.seq++
	seq := s.seq
	s.latest[key] = seq
	s.timers[seq] = s.scheduler.AfterFunc(s.ackDuration, func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		if _, ok := s.timers[seq]; !ok {
			return
		}
		delete(s.timers, seq)
		if s.supersede && s.latest[key] != seq {
			return
		}
		s.acks[key] = false
	})
}
