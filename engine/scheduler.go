package engine

import (
	"container/heap"
	"sync"
	"sync/atomic"
	"time"

	"github.com/MohinVinayak/Code-Dog/core"
	"github.com/MohinVinayak/Code-Dog/events"
	"github.com/MohinVinayak/Code-Dog/parameter"
)

// Scheduler is the single dispatch authority: inbound signals and timer
// callbacks all execute on its loop goroutine, giving every handler
// exclusive, serialized access to controller state.
//
// Signals are handled strictly in arrival order, each handler running to
// completion before the next. Scheduled callbacks interleave between signal
// batches and must revalidate state before mutating — the world may have
// changed between scheduling and firing.
type Scheduler struct {
	clock  Clock
	queue  *events.SignalQueue
	router *events.Router[time.Time]

	mu     sync.Mutex
	timers timerHeap
	seq    uint64

	notify   chan struct{}
	stopChan chan struct{}
	stopOnce sync.Once
	wg       sync.WaitGroup
	running  atomic.Bool
}

// NewScheduler creates a scheduler over the given clock and signal queue
func NewScheduler(clock Clock, queue *events.SignalQueue) *Scheduler {
	s := &Scheduler{
		clock:    clock,
		queue:    queue,
		router:   events.NewRouter[time.Time](queue),
		notify:   make(chan struct{}, 1),
		stopChan: make(chan struct{}),
	}
	heap.Init(&s.timers)
	return s
}

// RegisterHandler adds a signal handler to the router, must be called before Start()
func (s *Scheduler) RegisterHandler(handler events.Handler[time.Time]) {
	s.router.Register(handler)
}

// Push enqueues an inbound signal and wakes the loop
// Safe for concurrent producers
func (s *Scheduler) Push(sig events.Signal) {
	if sig.Timestamp.IsZero() {
		sig.Timestamp = s.clock.Now()
	}
	s.queue.Push(sig)
	select {
	case s.notify <- struct{}{}:
	default:
	}
}

// After schedules fn to run once on the loop goroutine after d elapses
// Non-positive d is clamped to zero and fires on the next pump
func (s *Scheduler) After(d time.Duration, fn func(now time.Time)) *TimerHandle {
	return s.schedule(d, 0, fn)
}

// Every schedules fn to run on the loop goroutine every d, first firing
// after d. The handle cancels all future firings
func (s *Scheduler) Every(d time.Duration, fn func(now time.Time)) *TimerHandle {
	if d <= 0 {
		d = parameter.DispatchIdleWait
	}
	return s.schedule(d, d, fn)
}

func (s *Scheduler) schedule(d, period time.Duration, fn func(now time.Time)) *TimerHandle {
	if d < 0 {
		d = 0
	}
	s.mu.Lock()
	s.seq++
	entry := &timerEntry{
		when:   s.clock.Now().Add(d),
		period: period,
		fn:     fn,
		seq:    s.seq,
	}
	heap.Push(&s.timers, entry)
	s.mu.Unlock()

	select {
	case s.notify <- struct{}{}:
	default:
	}
	return &TimerHandle{entry: entry, sched: s}
}

// Start begins the dispatch loop
func (s *Scheduler) Start() {
	if s.running.CompareAndSwap(false, true) {
		s.wg.Add(1)
		core.Go(s.loop)
	}
}

// Stop halts the dispatch loop and cancels all outstanding timers
// Idempotent; required at surface disposal so no callback acts on a
// destroyed state
func (s *Scheduler) Stop() {
	s.stopOnce.Do(func() {
		if s.running.CompareAndSwap(true, false) {
			close(s.stopChan)
			s.wg.Wait()
		}
		s.CancelAll()
	})
}

// CancelAll cancels every outstanding timer without stopping the loop
func (s *Scheduler) CancelAll() {
	s.mu.Lock()
	for _, entry := range s.timers {
		entry.canceled = true
	}
	s.timers = s.timers[:0]
	s.mu.Unlock()
}

// Pump synchronously dispatches pending signals and runs every timer due at
// the clock's current reading. It is the loop body, exposed for tests
// driving a MockTimeProvider
func (s *Scheduler) Pump() {
	now := s.clock.Now()
	s.router.DispatchAll(now)
	s.runDue(now)
}

// runDue executes timers whose deadline has passed, in deadline order
// Callbacks may schedule new timers; those due at or before now run in the
// same pass (watchdog chains rely on this under mocked time)
func (s *Scheduler) runDue(now time.Time) {
	for {
		s.mu.Lock()
		if len(s.timers) == 0 {
			s.mu.Unlock()
			return
		}
		entry := s.timers[0]
		if entry.canceled {
			heap.Pop(&s.timers)
			s.mu.Unlock()
			continue
		}
		if entry.when.After(now) {
			s.mu.Unlock()
			return
		}
		heap.Pop(&s.timers)
		if entry.period > 0 {
			s.seq++
			next := &timerEntry{
				when:   entry.when.Add(entry.period),
				period: entry.period,
				fn:     entry.fn,
				seq:    s.seq,
			}
			// Periodic handles must keep canceling future firings, so the
			// handle's entry pointer is reused
			*entry = *next
			heap.Push(&s.timers, entry)
			fn := entry.fn
			s.mu.Unlock()
			fn(now)
			continue
		}
		fn := entry.fn
		s.mu.Unlock()
		fn(now)
	}
}

// nextWake returns how long the loop may sleep before the earliest timer
func (s *Scheduler) nextWake(now time.Time) time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	for len(s.timers) > 0 && s.timers[0].canceled {
		heap.Pop(&s.timers)
	}
	if len(s.timers) == 0 {
		return parameter.DispatchIdleWait
	}
	d := s.timers[0].when.Sub(now)
	if d < 0 {
		return 0
	}
	if d > parameter.DispatchIdleWait {
		return parameter.DispatchIdleWait
	}
	return d
}

// loop runs dispatch until Stop
func (s *Scheduler) loop() {
	defer s.wg.Done()

	timer := time.NewTimer(0)
	if !timer.Stop() {
		select {
		case <-timer.C:
		default:
		}
	}
	defer timer.Stop()

	for {
		select {
		case <-s.stopChan:
			return
		default:
		}

		s.Pump()

		sleep := s.nextWake(s.clock.Now())
		if sleep <= 0 {
			continue
		}
		timer.Reset(sleep)
		select {
		case <-timer.C:
		case <-s.notify:
			if !timer.Stop() {
				select {
				case <-timer.C:
				default:
				}
			}
		case <-s.stopChan:
			return
		}
	}
}
