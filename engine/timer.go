package engine

import (
	"container/heap"
	"time"
)

// TimerHandle identifies a scheduled callback and allows explicit cancellation
// A canceled timer never fires; cancellation is idempotent
type TimerHandle struct {
	entry *timerEntry
	sched *Scheduler
}

// Cancel prevents the timer from firing. Safe to call after the timer has
// fired or been canceled already
func (h *TimerHandle) Cancel() {
	if h == nil || h.sched == nil {
		return
	}
	h.sched.mu.Lock()
	h.entry.canceled = true
	h.sched.mu.Unlock()
}

// timerEntry is a scheduled callback in the timer heap
type timerEntry struct {
	when     time.Time
	period   time.Duration // 0 = one-shot
	fn       func(now time.Time)
	seq      uint64 // FIFO tie-break for equal deadlines
	canceled bool
	index    int // heap bookkeeping
}

// timerHeap orders entries by deadline, then scheduling order
type timerHeap []*timerEntry

func (th timerHeap) Len() int { return len(th) }

func (th timerHeap) Less(i, j int) bool {
	if th[i].when.Equal(th[j].when) {
		return th[i].seq < th[j].seq
	}
	return th[i].when.Before(th[j].when)
}

func (th timerHeap) Swap(i, j int) {
	th[i], th[j] = th[j], th[i]
	th[i].index = i
	th[j].index = j
}

func (th *timerHeap) Push(x any) {
	entry := x.(*timerEntry)
	entry.index = len(*th)
	*th = append(*th, entry)
}

func (th *timerHeap) Pop() any {
	old := *th
	n := len(old)
	entry := old[n-1]
	old[n-1] = nil
	entry.index = -1
	*th = old[:n-1]
	return entry
}

var _ heap.Interface = (*timerHeap)(nil)
