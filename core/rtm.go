package core

// RTMState is the state of a right-to-match negotiation. Offered is the only
// non-terminal state; each terminal state is followed by exactly one sale.
type RTMState string

const (
	RTMOffered   RTMState = "offered"
	RTMConfirmed RTMState = "confirmed"
	RTMDeclined  RTMState = "declined"
	RTMForfeited RTMState = "forfeited"
)

// RTMOffer describes an open right-to-match opportunity: Org may take
// Entrant from Bidder by paying at least Amount.
type RTMOffer struct {
	EntrantIndex int     `json:"entrant_index"`
	Entrant      string  `json:"entrant"`
	Org          OrgCode `json:"org"`
	Budget       Money   `json:"budget"`
	Bidder       OrgCode `json:"bidder"`
	Amount       Money   `json:"amount"`
}

// RTMResponse is the prior organization's answer to an offer. Raise is added
// to the current bid (0 matches it); Exercise confirms the match.
type RTMResponse struct {
	Raise    Money `json:"raise"`
	Exercise bool  `json:"exercise"`
}

// RTMResolution reports how an offer ended and the sale it produced. Reason
// explains a forfeit.
type RTMResolution struct {
	State  RTMState `json:"state"`
	Sale   Sale     `json:"sale"`
	Reason error    `json:"-"`
}

// rtmCandidate returns the current entrant's prior organization when it may
// match the current bid: it is registered, still holds its one-time right,
// is not itself the highest bidder and can afford the bid.
func (s *Session) rtmCandidate() (*Organization, bool) {
	prior := s.entrants[s.index].PriorAffiliation
	if prior == "" || !s.bid.HasBidder() || prior == s.bid.Bidder {
		return nil, false
	}
	org, err := s.registry.lookup(prior)
	if err != nil {
		return nil, false
	}
	if !org.RTMEligible || !Affordable(s.bid.Amount, org.Budget) {
		return nil, false
	}
	return org, true
}

func (s *Session) openOffer() RTMOffer {
	org, _ := s.rtmCandidate()
	entrant := s.entrants[s.index]
	s.pending = &RTMOffer{
		EntrantIndex: s.index,
		Entrant:      entrant.Name,
		Org:          org.Code,
		Budget:       org.Budget,
		Bidder:       s.bid.Bidder,
		Amount:       s.bid.Amount,
	}
	return *s.pending
}

// OfferRTM explicitly opens a right-to-match offer for the current entrant.
// An already open offer is returned unchanged.
func (s *Session) OfferRTM() (RTMOffer, error) {
	if s.pending != nil {
		return *s.pending, nil
	}
	entrant, err := s.requireOpen("offer RTM")
	if err != nil {
		return RTMOffer{}, err
	}
	if !s.bid.HasBidder() {
		return RTMOffer{}, reject(CodeNoBidPlaced, "no bids placed for %q", entrant.Name)
	}
	if _, ok := s.rtmCandidate(); !ok {
		return RTMOffer{}, reject(CodeInvalidTransition, "RTM not available for %q", entrant.Name)
	}
	return s.openOffer(), nil
}

// ResolveRTM settles the open offer and commits exactly one sale:
//   - a raise the prior organization cannot afford forfeits the right, and the
//     highest bidder buys at the current bid; no eligibility is consumed
//   - a declined offer sells to the highest bidder; eligibility is kept
//   - a confirmed offer sells to the prior organization at bid+raise and
//     consumes its right permanently
//
// A negative raise is rejected and leaves the offer open.
func (s *Session) ResolveRTM(resp RTMResponse) (RTMResolution, error) {
	if s.pending == nil {
		return RTMResolution{}, reject(CodeInvalidTransition, "no RTM offer is pending")
	}
	if resp.Raise < 0 {
		return RTMResolution{}, reject(CodeInvalidArgument, "RTM raise must not be negative, got %s", resp.Raise)
	}

	offer := *s.pending
	prior, err := s.registry.lookup(offer.Org)
	if err != nil {
		return RTMResolution{}, err
	}
	bidder, err := s.registry.lookup(offer.Bidder)
	if err != nil {
		return RTMResolution{}, err
	}

	amount, ok := AddMoney(offer.Amount, resp.Raise)
	switch {
	case !ok:
		reason := reject(CodeInsufficientBudget, "%s only has %s available, RTM raise %s is out of range",
			prior.Code, s.money(prior.Budget), s.money(resp.Raise))
		return s.settleRTM(RTMForfeited, bidder, offer.Amount, false, reason)
	case !Affordable(amount, prior.Budget):
		reason := reject(CodeInsufficientBudget, "%s only has %s available, RTM needs %s",
			prior.Code, s.money(prior.Budget), s.money(amount))
		return s.settleRTM(RTMForfeited, bidder, offer.Amount, false, reason)
	case !resp.Exercise:
		return s.settleRTM(RTMDeclined, bidder, offer.Amount, false, nil)
	default:
		// The outbid organization was never debited, so there is no escrow to
		// release before the prior organization takes the entrant.
		return s.settleRTM(RTMConfirmed, prior, amount, true, nil)
	}
}

func (s *Session) settleRTM(state RTMState, buyer *Organization, price Money, rtm bool, reason error) (RTMResolution, error) {
	pending := s.pending
	s.pending = nil
	sale, err := s.completeSale(buyer, price, rtm)
	if err != nil {
		s.pending = pending
		return RTMResolution{}, err
	}
	return RTMResolution{State: state, Sale: sale, Reason: reason}, nil
}
