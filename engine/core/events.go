package core

// Event represents a host input event
type Event struct {
	Type    EventType
	Frame   uint64
	Payload interface{}
}

type EventType uint16

const (
	EvtPointerMove EventType = iota
	EvtResize
)

// PointerMove carries a raw pointer position in framebuffer pixels
type PointerMove struct {
	X, Y float32
}

// Resize carries a new viewport size in framebuffer pixels
type Resize struct {
	Width, Height int
}

// EventBus dispatches events to listeners
type EventBus struct {
	listeners map[EventType][]EventHandler
	queue     []Event
}

type EventHandler func(e Event)

func NewEventBus() *EventBus {
	return &EventBus{
		listeners: make(map[EventType][]EventHandler),
	}
}

// On registers a handler for an event type
func (eb *EventBus) On(t EventType, h EventHandler) {
	eb.listeners[t] = append(eb.listeners[t], h)
}

// Emit queues an event for dispatch
func (eb *EventBus) Emit(e Event) {
	eb.queue = append(eb.queue, e)
}

// Pending returns the number of queued events
func (eb *EventBus) Pending() int { return len(eb.queue) }

// Dispatch processes all queued events in emit order
func (eb *EventBus) Dispatch() {
	for _, e := range eb.queue {
		if handlers, ok := eb.listeners[e.Type]; ok {
			for _, h := range handlers {
				h(e)
			}
		}
	}
	eb.queue = eb.queue[:0]
}
