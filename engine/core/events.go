package core

import "sync"

type EventCode int

// Pipeline event codes. Applications should use codes beyond 255.
const (
	// An asset file changed on disk and its handles were re-imported.
	/* Context usage:
	 * path := ctx.Path
	 */
	EVENT_CODE_ASSET_RELOADED EventCode = 0x01

	// A background import job failed. The error is also recorded in the
	// load's ProgressCounter; this event exists for global diagnostics.
	EVENT_CODE_LOAD_FAILED EventCode = 0x02

	// Shuts the application down on the next tick.
	EVENT_CODE_APPLICATION_QUIT EventCode = 0x03

	MAX_EVENT_CODE EventCode = 0xFF
)

type EventContext struct {
	Code     EventCode
	Path     string
	Name     string
	HandleID uint32
	Err      error
}

// Should return true if handled, which stops propagation.
type FnOnEvent func(ctx EventContext) bool

/**
 * EventBus dispatches pipeline events to registered listeners. It is an
 * explicit object rather than a process-wide table so that independent
 * pipelines do not observe each other's events.
 */
type EventBus struct {
	mu         sync.RWMutex
	registered map[EventCode][]FnOnEvent
}

func NewEventBus() *EventBus {
	return &EventBus{
		registered: make(map[EventCode][]FnOnEvent),
	}
}

// Register adds a listener for the given code. Listeners are invoked in
// registration order.
func (eb *EventBus) Register(code EventCode, onEvent FnOnEvent) {
	eb.mu.Lock()
	defer eb.mu.Unlock()
	eb.registered[code] = append(eb.registered[code], onEvent)
}

/**
 * Fires an event to listeners of the given code. If a handler returns
 * TRUE, the event is considered handled and is not passed on to any more
 * listeners.
 * @returns TRUE if handled, otherwise FALSE.
 */
func (eb *EventBus) Fire(ctx EventContext) bool {
	eb.mu.RLock()
	handlers := eb.registered[ctx.Code]
	eb.mu.RUnlock()

	for _, h := range handlers {
		if h(ctx) {
			// Message has been handled, do not send to other listeners.
			return true
		}
	}
	return false
}
