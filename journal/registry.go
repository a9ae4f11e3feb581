package journal

import "sync"

// eventTypeRegistry is an EventTypeRegistry that is safe for concurrent use.
type eventTypeRegistry struct {
	sync.Mutex

	m map[string]EventType
}

// NewEventTypeRegistry returns an EventTypeRegistry honouring the supplied
// disabled events. It is safe for concurrent use.
func NewEventTypeRegistry(disabled DisabledEvents) EventTypeRegistry {
	ret := &eventTypeRegistry{m: make(map[string]EventType, len(disabled)+32)}
	for _, et := range disabled {
		et.enabled, et.safe = false, true
		ret.m[et.System+":"+et.Event] = et
	}
	return ret
}

func (d *eventTypeRegistry) RegisterEventType(system, event string) EventType {
	d.Lock()
	defer d.Unlock()

	key := system + ":" + event
	if et, ok := d.m[key]; ok {
		return et
	}

	et := EventType{
		System:  system,
		Event:   event,
		enabled: true,
		safe:    true,
	}

	d.m[key] = et
	return et
}
