package core

// DefaultHistoryRetention is how many recent events are kept for display.
const DefaultHistoryRetention = 20

// history keeps the most recent events in commit order. Retention only
// bounds what is displayed; every event still reaches the event sink.
type history struct {
	limit  int
	events []Event
}

func newHistory(limit int) *history {
	return &history{limit: limit, events: make([]Event, 0, limit)}
}

func (h *history) append(e Event) {
	if len(h.events) == h.limit {
		copy(h.events, h.events[1:])
		h.events = h.events[:len(h.events)-1]
	}
	h.events = append(h.events, e)
}

func (h *history) clear() {
	h.events = h.events[:0]
}

// recent returns a copy of the retained events, oldest first.
func (h *history) recent() []Event {
	out := make([]Event, len(h.events))
	copy(out, h.events)
	return out
}
