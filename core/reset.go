package core

// Reset restores every entrant and organization to its initial state, moves
// back to the first entrant, clears history and restores the default bid
// step. The whole restore happens inside one call, so no partially reset
// state is observable. A pending RTM offer is discarded.
func (s *Session) Reset() {
	s.restore()
	s.record(Event{Kind: EventReset, Message: "Auction Reset - Starting Fresh"})
}
