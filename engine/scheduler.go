package engine

import (
	"context"
	"sort"
	"sync"
	"time"
)

// TickScheduler runs fn once after delay. The loop uses it to schedule its
// own next iteration.
type TickScheduler interface {
	ScheduleNext(delay time.Duration, fn func())
}

type pendingCall struct {
	at  time.Duration
	seq uint64
	fn  func()
}

// StepScheduler is a TickScheduler on a virtual clock. Nothing fires until
// Advance moves the clock past a callback's due time, which makes the loop
// deterministic for tests, frame-driven frontends and simulations.
type StepScheduler struct {
	now     time.Duration
	seq     uint64
	pending []pendingCall
}

func NewStepScheduler() *StepScheduler {
	return &StepScheduler{}
}

func (s *StepScheduler) ScheduleNext(delay time.Duration, fn func()) {
	if delay < 0 {
		delay = 0
	}
	s.seq++
	call := pendingCall{at: s.now + delay, seq: s.seq, fn: fn}

	idx := sort.Search(len(s.pending), func(i int) bool {
		p := s.pending[i]
		return p.at > call.at || (p.at == call.at && p.seq > call.seq)
	})
	s.pending = append(s.pending, pendingCall{})
	copy(s.pending[idx+1:], s.pending[idx:])
	s.pending[idx] = call
}

// Advance moves the clock forward by d and runs every callback that falls
// due, in due order. Callbacks scheduled while advancing run in the same
// call when they are due before the new time. Returns the number of
// callbacks run.
func (s *StepScheduler) Advance(d time.Duration) int {
	target := s.now + d
	fired := 0
	for len(s.pending) > 0 && s.pending[0].at <= target {
		call := s.pending[0]
		s.pending = s.pending[1:]
		s.now = call.at
		call.fn()
		fired++
	}
	s.now = target
	return fired
}

// Now returns the virtual time elapsed since the scheduler was created.
func (s *StepScheduler) Now() time.Duration {
	return s.now
}

// Pending returns the number of callbacks waiting to fire.
func (s *StepScheduler) Pending() int {
	return len(s.pending)
}

// RunScheduler is a real-time TickScheduler. Timers and input producers
// post callbacks onto one queue which Run drains on a single goroutine, so
// ticks and input never interleave.
type RunScheduler struct {
	queue chan func()
	done  chan struct{}
	once  sync.Once
}

// NewRunScheduler creates a scheduler whose queue holds up to buffer
// callbacks before Post blocks.
func NewRunScheduler(buffer int) *RunScheduler {
	return &RunScheduler{
		queue: make(chan func(), buffer),
		done:  make(chan struct{}),
	}
}

func (s *RunScheduler) ScheduleNext(delay time.Duration, fn func()) {
	time.AfterFunc(delay, func() {
		s.Post(fn)
	})
}

// Post queues fn to run on the Run goroutine. Returns false once Run has
// returned. Must not be called from inside a callback while the queue is
// full.
func (s *RunScheduler) Post(fn func()) bool {
	select {
	case <-s.done:
		return false
	default:
	}

	select {
	case <-s.done:
		return false
	case s.queue <- fn:
		return true
	}
}

// Run executes queued callbacks until ctx is cancelled.
func (s *RunScheduler) Run(ctx context.Context) error {
	defer s.once.Do(func() { close(s.done) })

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case fn := <-s.queue:
			fn()
		}
	}
}
