package emit

import "sync"

// BufferedEmitter stores events in memory, keyed by seed, for post-pass
// inspection. Intended for tests and debugging; every event is retained until
// cleared, so long-lived processes should prefer LogEmitter or OTelEmitter.
type BufferedEmitter struct {
	mu     sync.RWMutex
	events map[int64][]Event
}

// HistoryFilter narrows History results. Zero-valued fields do not filter;
// set fields combine with AND.
type HistoryFilter struct {
	// NodeID keeps only events for this node.
	NodeID string

	// Msg keeps only events with this message.
	Msg string
}

// NewBufferedEmitter creates an empty BufferedEmitter.
func NewBufferedEmitter() *BufferedEmitter {
	return &BufferedEmitter{events: make(map[int64][]Event)}
}

// Emit records the event under its seed.
func (b *BufferedEmitter) Emit(event Event) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.events[event.Seed] = append(b.events[event.Seed], event)
}

// History returns the recorded events of one pass in emission order.
func (b *BufferedEmitter) History(seed int64) []Event {
	b.mu.RLock()
	defer b.mu.RUnlock()
	out := make([]Event, len(b.events[seed]))
	copy(out, b.events[seed])
	return out
}

// HistoryWithFilter returns the recorded events of one pass matching the
// filter, in emission order.
func (b *BufferedEmitter) HistoryWithFilter(seed int64, filter HistoryFilter) []Event {
	b.mu.RLock()
	defer b.mu.RUnlock()
	var out []Event
	for _, e := range b.events[seed] {
		if filter.NodeID != "" && e.NodeID != filter.NodeID {
			continue
		}
		if filter.Msg != "" && e.Msg != filter.Msg {
			continue
		}
		out = append(out, e)
	}
	return out
}

// Clear drops the recorded events of one pass.
func (b *BufferedEmitter) Clear(seed int64) {
	b.mu.Lock()
	defer b.mu.Unlock()
	delete(b.events, seed)
}

// ClearAll drops every recorded event.
func (b *BufferedEmitter) ClearAll() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.events = make(map[int64][]Event)
}
