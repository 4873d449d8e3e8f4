package events

// Handler processes specific signal types within a context T
// The controller and observability taps implement this interface
type Handler[T any] interface {
	// HandleSignal processes a single signal
	// Called synchronously during the dispatch phase
	HandleSignal(ctx T, sig Signal)

	// SignalTypes returns the signal types this handler processes
	// The router uses this for registration
	SignalTypes() []SignalType
}

// Router dispatches signals to registered handlers
//
// Architecture:
//   - Single-threaded dispatch
//   - Multiple handlers can register for the same signal type
//   - Handlers are invoked in registration order
type Router[T any] struct {
	handlers map[SignalType][]Handler[T]
	queue    *SignalQueue
}

// NewRouter creates a router attached to the given queue
func NewRouter[T any](queue *SignalQueue) *Router[T] {
	return &Router[T]{
		handlers: make(map[SignalType][]Handler[T]),
		queue:    queue,
	}
}

// Register adds a handler for its declared signal types
func (r *Router[T]) Register(handler Handler[T]) {
	for _, t := range handler.SignalTypes() {
		r.handlers[t] = append(r.handlers[t], handler)
	}
}

// DispatchAll consumes all pending signals and routes to handlers
// Signals are processed in FIFO order
func (r *Router[T]) DispatchAll(ctx T) {
	signals := r.queue.Consume()
	for _, sig := range signals {
		for _, h := range r.handlers[sig.Type] {
			h.HandleSignal(ctx, sig)
		}
	}
}

// HasHandlers returns true if any handlers are registered for the given type
func (r *Router[T]) HasHandlers(t SignalType) bool {
	return len(r.handlers[t]) > 0
}

// HandlerCount returns the number of handlers registered for the given type
func (r *Router[T]) HandlerCount(t SignalType) int {
	return len(r.handlers[t])
}
