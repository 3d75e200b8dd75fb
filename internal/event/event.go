// internal/event/event.go
package event

// EventType is the name of an event.
type EventType string

// Event carries a type and an optional payload.
type Event struct {
	Type EventType
	Data interface{}
}

// Listener receives dispatched events. Implementations must be comparable
// so Unsubscribe can find them; use struct pointers, not func values.
type Listener interface {
	OnEvent(event Event)
}

// Dispatcher delivers events synchronously to subscribers in subscription
// order.
type Dispatcher struct {
	listeners map[EventType][]Listener
}

func NewDispatcher() *Dispatcher {
	return &Dispatcher{
		listeners: make(map[EventType][]Listener),
	}
}

func (d *Dispatcher) Subscribe(eventType EventType, listener Listener) {
	d.listeners[eventType] = append(d.listeners[eventType], listener)
}

func (d *Dispatcher) Unsubscribe(eventType EventType, listener Listener) {
	if listeners, exists := d.listeners[eventType]; exists {
		for i, l := range listeners {
			if l == listener {
				d.listeners[eventType] = append(listeners[:i:i], listeners[i+1:]...)
				break
			}
		}
	}
}

// Dispatch sends the event to every subscriber. Listeners subscribed while
// the event is being delivered only see later events.
func (d *Dispatcher) Dispatch(event Event) {
	if listeners, exists := d.listeners[event.Type]; exists {
		for _, listener := range listeners {
			listener.OnEvent(event)
		}
	}
}

// Recorder collects every event it receives. Useful for tests and for the
// terminal spectator's event log.
type Recorder struct {
	Events []Event
}

func (r *Recorder) OnEvent(e Event) { r.Events = append(r.Events, e) }

// Count returns how many recorded events have the given type.
func (r *Recorder) Count(t EventType) int {
	n := 0
	for _, e := range r.Events {
		if e.Type == t {
			n++
		}
	}
	return n
}

// SubscribeAll registers l for every listed type.
func (d *Dispatcher) SubscribeAll(l Listener, types ...EventType) {
	for _, t := range types {
		d.Subscribe(t, l)
	}
}
