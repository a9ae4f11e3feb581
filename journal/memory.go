package journal

import (
	"sync"

	logging "github.com/ipfs/go-log/v2"

	"github.com/cenwadike/solad-sub000/build"
)

var log = logging.Logger("journal")

// MemJournal is a purely in-memory journal, mostly useful for testing.
type MemJournal struct {
	EventTypeRegistry

	lk      sync.Mutex
	entries []*Event
	closed  bool
}

var _ Journal = (*MemJournal)(nil)

func NewMemJournal(disabled DisabledEvents) *MemJournal {
	return &MemJournal{
		EventTypeRegistry: NewEventTypeRegistry(disabled),
	}
}

func (m *MemJournal) RecordEvent(evtType EventType, supplier func() interface{}) {
	defer func() {
		if r := recover(); r != nil {
			log.Warnf("recovered from panic while recording journal event; type=%s, err=%v", evtType, r)
		}
	}()

	if !evtType.Enabled() {
		return
	}

	m.lk.Lock()
	defer m.lk.Unlock()

	if m.closed {
		return
	}

	m.entries = append(m.entries, &Event{
		EventType: evtType,
		Timestamp: build.Clock.Now(),
		Data:      supplier(),
	})
}

// Entries returns a snapshot of all recorded entries, in recording order.
func (m *MemJournal) Entries() []*Event {
	m.lk.Lock()
	defer m.lk.Unlock()

	out := make([]*Event, len(m.entries))
	copy(out, m.entries)
	return out
}

func (m *MemJournal) Close() error {
	m.lk.Lock()
	defer m.lk.Unlock()

	m.closed = true
	return nil
}
