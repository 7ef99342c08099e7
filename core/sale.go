package core

import "fmt"

// SellResult is the outcome of Sell: either a committed Sale, or an RTM
// offer that must be resolved with ResolveRTM before anything is committed.
type SellResult struct {
	Sale  *Sale
	Offer *RTMOffer
}

// Sell closes bidding on the current entrant. If the entrant's prior
// organization may exercise its right to match, the sale is held and an
// offer is returned; otherwise the entrant goes to the highest bidder.
func (s *Session) Sell() (SellResult, error) {
	if _, err := s.requireOpen("sell"); err != nil {
		return SellResult{}, err
	}
	if !s.bid.HasBidder() {
		return SellResult{}, reject(CodeNoBidPlaced, "no bids placed for %q", s.entrants[s.index].Name)
	}

	if _, ok := s.rtmCandidate(); ok {
		offer := s.openOffer()
		return SellResult{Offer: &offer}, nil
	}

	bidder, err := s.registry.lookup(s.bid.Bidder)
	if err != nil {
		return SellResult{}, err
	}
	sale, err := s.completeSale(bidder, s.bid.Amount, false)
	if err != nil {
		return SellResult{}, err
	}
	return SellResult{Sale: &sale}, nil
}

// completeSale commits the current entrant to org at price, then advances.
// Callers guarantee the entrant is unsold; everything is validated before
// the first mutation.
func (s *Session) completeSale(org *Organization, price Money, rtm bool) (Sale, error) {
	if org == nil || price <= 0 {
		return Sale{}, reject(CodeNoBidPlaced, "no bid to commit")
	}
	if org.Budget-price < 0 {
		return Sale{}, &InvariantError{
			Invariant: "non_negative_budget",
			Detail:    fmt.Sprintf("sale of %s would leave %q at %s", price, org.Code, org.Budget-price),
		}
	}

	entrant := &s.entrants[s.index]
	sale := Sale{
		EntrantIndex: s.index,
		Entrant:      entrant.Name,
		Org:          org.Code,
		Price:        price,
		RTMUsed:      rtm,
	}

	org.Budget -= price
	org.Acquired = append(org.Acquired, Acquisition{
		EntrantIndex: s.index,
		Name:         entrant.Name,
		Price:        price,
		RTMUsed:      rtm,
	})
	entrant.Sold = true
	entrant.SoldPrice = price
	entrant.SoldTo = org.Code
	entrant.RTMUsed = rtm
	if rtm {
		org.RTMEligible = false
	}
	s.totalSpent += price

	e := Event{
		Kind:    EventSold,
		Entrant: entrant.Name,
		Org:     org.Code,
		Amount:  price,
		Budget:  org.Budget,
		Message: fmt.Sprintf("SOLD: %s to %s for %s", entrant.Name, org.Code, s.money(price)),
	}
	if rtm {
		e.Kind = EventRTMUsed
		e.Message = fmt.Sprintf("RTM USED: %s retained by %s for %s", entrant.Name, org.Code, s.money(price))
	}
	s.record(e)

	s.advance()
	return sale, nil
}
