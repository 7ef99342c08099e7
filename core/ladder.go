package core

import (
	"fmt"
	"slices"
)

// CurrentBid returns the bid ladder for the entrant under auction.
func (s *Session) CurrentBid() BidState {
	return s.bid
}

// BidSteps returns the selectable bid increments.
func (s *Session) BidSteps() []Money {
	return slices.Clone(s.settings.BidSteps)
}

// SetBidStep selects the increment applied by PlaceBid.
func (s *Session) SetBidStep(step Money) error {
	if s.pending != nil {
		return reject(CodeInvalidTransition, "cannot change bid step: RTM offer for %q is pending", s.pending.Entrant)
	}
	if !slices.Contains(s.settings.BidSteps, step) {
		return reject(CodeInvalidArgument, "bid step %s is not one of %v", step, s.settings.BidSteps)
	}
	s.bid.Step = step
	return nil
}

// NextBid returns the amount the next PlaceBid would set: the current bid
// plus the step, quantized to the configured precision.
func (s *Session) NextBid() Money {
	return Quantize(s.bid.Amount+s.bid.Step, s.settings.PriceDecimals)
}

// PlaceBid raises the current bid by one step on behalf of code. Budgets are
// not touched; only the sale debits the winning organization.
func (s *Session) PlaceBid(code OrgCode) (BidState, error) {
	return s.placeBid(code, s.NextBid())
}

// PlaceBidAt places a jump bid of amount on behalf of code. The amount is
// quantized and must be at least one step above the current bid.
func (s *Session) PlaceBidAt(code OrgCode, amount Money) (BidState, error) {
	if _, err := s.requireOpen("bid"); err != nil {
		return s.bid, err
	}
	amount = Quantize(amount, s.settings.PriceDecimals)
	if amount < s.NextBid() {
		return s.bid, reject(CodeInvalidArgument, "bid %s is below the minimum next bid %s", amount, s.NextBid())
	}
	return s.placeBid(code, amount)
}

func (s *Session) placeBid(code OrgCode, amount Money) (BidState, error) {
	entrant, err := s.requireOpen("bid")
	if err != nil {
		return s.bid, err
	}
	org, err := s.registry.lookup(code)
	if err != nil {
		return s.bid, err
	}
	if !Affordable(amount, org.Budget) {
		return s.bid, reject(CodeInsufficientBudget, "%s cannot bid %s with a budget of %s",
			org.Code, s.money(amount), s.money(org.Budget))
	}

	s.bid.Amount = amount
	s.bid.Bidder = org.Code
	s.bidCount++
	s.record(Event{
		Kind:    EventBid,
		Entrant: entrant.Name,
		Org:     org.Code,
		Amount:  amount,
		Budget:  org.Budget,
		Message: fmt.Sprintf("%s → %s", org.Code, s.money(amount)),
	})
	return s.bid, nil
}
