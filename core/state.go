package core

// State is a read-only snapshot of everything a renderer needs.
type State struct {
	SessionID     string         `json:"session_id"`
	Phase         Phase          `json:"phase"`
	Index         int            `json:"index"`
	Turn          uint64         `json:"turn"`
	Current       *Entrant       `json:"current,omitempty"`
	Bid           BidState       `json:"bid"`
	NextBid       Money          `json:"next_bid"`
	BidSteps      []Money        `json:"bid_steps"`
	Entrants      []Entrant      `json:"entrants"`
	Organizations []Organization `json:"organizations"`
	TotalSpent    Money          `json:"total_spent"`
	History       []Event        `json:"history"`
	PendingRTM    *RTMOffer      `json:"pending_rtm,omitempty"`
}

// Snapshot returns a deep copy of the session state.
func (s *Session) Snapshot() State {
	st := State{
		SessionID:     s.id,
		Phase:         s.phase,
		Index:         s.index,
		Turn:          s.Turn(),
		Bid:           s.bid,
		BidSteps:      s.BidSteps(),
		Entrants:      s.Entrants(),
		Organizations: s.Organizations(),
		TotalSpent:    s.totalSpent,
		History:       s.History(),
	}
	if cur, ok := s.Current(); ok {
		st.Current = &cur
		st.NextBid = s.NextBid()
	}
	if offer, ok := s.PendingRTM(); ok {
		st.PendingRTM = &offer
	}
	return st
}
