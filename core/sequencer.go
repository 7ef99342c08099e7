package core

import "fmt"

// beginTurn opens bidding on the current entrant at its base price.
func (s *Session) beginTurn() {
	s.bid.Bidder = ""
	if s.index < len(s.entrants) {
		s.bid.Amount = s.entrants[s.index].BasePrice
	} else {
		s.bid.Amount = 0
	}
	s.turn.Add(1)
}

// requireNavigable rejects pointer moves while complete or while an RTM
// offer awaits resolution.
func (s *Session) requireNavigable(op string) error {
	if s.phase == PhaseComplete {
		return reject(CodeInvalidTransition, "cannot %s: auction is complete", op)
	}
	if s.pending != nil {
		return reject(CodeInvalidTransition, "cannot %s: RTM offer for %q is pending", op, s.pending.Entrant)
	}
	return nil
}

// requireOpen additionally rejects operations on an entrant that was already
// sold, which can be on offer again only after Retreat.
func (s *Session) requireOpen(op string) (*Entrant, error) {
	if err := s.requireNavigable(op); err != nil {
		return nil, err
	}
	entrant := &s.entrants[s.index]
	if entrant.Sold {
		return nil, reject(CodeInvalidTransition, "cannot %s: %q was already sold to %s", op, entrant.Name, entrant.SoldTo)
	}
	return entrant, nil
}

// Advance moves to the next entrant, discarding any uncommitted bid. Moving
// past the last entrant completes the session.
func (s *Session) Advance() error {
	if err := s.requireNavigable("advance"); err != nil {
		return err
	}
	s.advance()
	return nil
}

func (s *Session) advance() {
	s.index++
	s.beginTurn()
	if s.index >= len(s.entrants) {
		s.index = len(s.entrants)
		s.phase = PhaseComplete
		s.record(Event{Kind: EventCompleted, Message: "Auction Complete"})
	}
}

// Retreat moves back one entrant and resets its bid state. It is a
// navigation aid: a sale already committed for that entrant stays committed.
// Retreat at the first entrant is a no-op.
func (s *Session) Retreat() error {
	if err := s.requireNavigable("retreat"); err != nil {
		return err
	}
	if s.index == 0 {
		return nil
	}
	s.index--
	s.beginTurn()
	return nil
}

// Skip passes over the current entrant without a sale. Skipping an entrant
// that was already sold only moves on and records nothing.
func (s *Session) Skip() error {
	if err := s.requireNavigable("skip"); err != nil {
		return err
	}
	entrant := s.entrants[s.index]
	if entrant.Sold {
		// Revisited after Retreat: the sale stands, so this is plain navigation.
		s.advance()
		return nil
	}
	s.record(Event{
		Kind:    EventSkipped,
		Entrant: entrant.Name,
		Message: fmt.Sprintf("SKIPPED: %s (No bids)", entrant.Name),
	})
	s.advance()
	return nil
}
