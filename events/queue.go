package events

import (
	"sync/atomic"

	"github.com/MohinVinayak/Code-Dog/parameter"
)

// SignalQueue is a lock-free MPSC ring buffer for inbound signals
// Thread-Safety:
//   - Push: Lock-free CAS, multiple producers OK (renderer, watchers, host)
//   - Consume: Single consumer (dispatch loop)
//   - Published flags prevent reading partial writes
//
// Overflow: Oldest signals overwritten when full
type SignalQueue struct {
	signals   [parameter.SignalQueueSize]Signal
	published [parameter.SignalQueueSize]atomic.Bool // True = slot fully written
	head      atomic.Uint64                          // Read index
	tail      atomic.Uint64                          // Write index
}

func NewSignalQueue() *SignalQueue {
	sq := &SignalQueue{}
	sq.head.Store(0)
	sq.tail.Store(0)
	return sq
}

// Push adds a signal using lock-free CAS with published flags pattern
// Safe for concurrent producers. O(1) amortized
func (sq *SignalQueue) Push(sig Signal) {
	for {
		currentTail := sq.tail.Load()
		nextTail := currentTail + 1

		if sq.tail.CompareAndSwap(currentTail, nextTail) {
			idx := currentTail & parameter.SignalBufferMask

			sq.signals[idx] = sig
			sq.published[idx].Store(true) // MUST be after write

			// Advance head if overwriting unread signals
			currentHead := sq.head.Load()
			if nextTail-currentHead > parameter.SignalQueueSize {
				sq.head.CompareAndSwap(currentHead, nextTail-parameter.SignalQueueSize)
			}
			return
		}
	}
}

// Consume returns all pending signals in FIFO order and advances head
// Single-consumer design (dispatch loop). Checks published flags for safety
func (sq *SignalQueue) Consume() []Signal {
	for {
		currentHead := sq.head.Load()
		currentTail := sq.tail.Load()

		if currentTail == currentHead {
			return nil
		}

		maxAvailable := currentTail - currentHead
		if maxAvailable > parameter.SignalQueueSize {
			maxAvailable = parameter.SignalQueueSize
			currentHead = currentTail - parameter.SignalQueueSize
		}

		result := make([]Signal, 0, maxAvailable)
		for i := uint64(0); i < maxAvailable; i++ {
			idx := (currentHead + i) & parameter.SignalBufferMask

			if !sq.published[idx].Load() {
				break // Writer incomplete
			}

			result = append(result, sq.signals[idx])
			sq.published[idx].Store(false)
		}

		newHead := currentHead + uint64(len(result))
		if sq.head.CompareAndSwap(currentHead, newHead) {
			if len(result) == 0 {
				return nil
			}
			return result
		}
	}
}
