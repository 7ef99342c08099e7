package core

import (
	"errors"
	"testing"

	"github.com/peterldowns/testy/check"
)

func TestPlaceBid_IncreasesByStep(t *testing.T) {
	s := newTestSession(t, []Listing{listing("P1", 200, "")}, twoOrgs())

	bidders := []OrgCode{"A", "B", "A", "A", "B"}
	prev := s.CurrentBid().Amount
	for _, code := range bidders {
		bid := mustBid(t, s, code)
		check.Equal(t, prev+10, bid.Amount)
		check.Equal(t, code, bid.Bidder)
		prev = bid.Amount
	}
	check.Equal(t, Money(250), s.CurrentBid().Amount)
	check.Equal(t, 5, s.Stats().Bids)
}

func TestPlaceBid_DoesNotDebitBudget(t *testing.T) {
	s := newTestSession(t, []Listing{listing("P1", 200, "")}, twoOrgs())
	mustBid(t, s, "A")
	mustBid(t, s, "B")

	check.Equal(t, Money(10000), mustOrg(t, s, "A").Budget)
	check.Equal(t, Money(10000), mustOrg(t, s, "B").Budget)
}

func TestPlaceBid_InsufficientBudget(t *testing.T) {
	orgs := []OrgSpec{
		{Code: "A", Budget: 10000},
		{Code: "POOR", Budget: 215},
	}
	s := newTestSession(t, []Listing{listing("P1", 200, "")}, orgs)

	bid := mustBid(t, s, "POOR") // 210 fits
	check.Equal(t, Money(210), bid.Amount)

	before := s.Snapshot()
	_, err := s.PlaceBid("POOR") // 220 does not
	check.True(t, errors.Is(err, ErrInsufficientBudget))
	check.Equal(t, CodeInsufficientBudget, CodeOf(err))

	after := s.Snapshot()
	check.Equal(t, before.Bid, after.Bid)
	check.Equal(t, len(before.History), len(after.History))
}

func TestPlaceBid_BudgetExactlyMet(t *testing.T) {
	s := newTestSession(t, []Listing{listing("P1", 200, "")}, []OrgSpec{{Code: "A", Budget: 210}})
	bid := mustBid(t, s, "A")
	check.Equal(t, Money(210), bid.Amount)
}

func TestPlaceBid_QuantizesOffGridBasePrice(t *testing.T) {
	s := newTestSession(t, []Listing{listing("P1", 75, "")}, twoOrgs())

	check.Equal(t, Money(90), s.NextBid())
	check.Equal(t, Money(90), mustBid(t, s, "A").Amount)
	check.Equal(t, Money(100), mustBid(t, s, "B").Amount)
}

func TestSetBidStep(t *testing.T) {
	s := newTestSession(t, []Listing{listing("P1", 200, "")}, twoOrgs())

	check.NoError(t, s.SetBidStep(50))
	check.Equal(t, Money(250), mustBid(t, s, "A").Amount)

	err := s.SetBidStep(30)
	check.True(t, errors.Is(err, ErrInvalidArgument))
	check.Equal(t, Money(50), s.CurrentBid().Step)

	check.Equal(t, []Money{10, 20, 50, 100}, s.BidSteps())
}

func TestPlaceBidAt(t *testing.T) {
	s := newTestSession(t, []Listing{listing("P1", 200, "")}, twoOrgs())

	bid, err := s.PlaceBidAt("A", 500)
	check.NoError(t, err)
	check.Equal(t, Money(500), bid.Amount)

	_, err = s.PlaceBidAt("B", 505)
	check.True(t, errors.Is(err, ErrInvalidArgument))

	bid, err = s.PlaceBidAt("B", 516)
	check.NoError(t, err)
	check.Equal(t, Money(520), bid.Amount)
	check.Equal(t, OrgCode("B"), bid.Bidder)

	_, err = s.PlaceBidAt("A", 20000)
	check.True(t, errors.Is(err, ErrInsufficientBudget))
}

func TestPlaceBid_RejectedWhenComplete(t *testing.T) {
	s := newTestSession(t, []Listing{listing("P1", 200, "")}, twoOrgs())
	check.NoError(t, s.Advance())
	check.Equal(t, PhaseComplete, s.Phase())

	_, err := s.PlaceBid("A")
	check.True(t, errors.Is(err, ErrInvalidTransition))

	// A jump bid below the minimum is still a transition error here.
	_, err = s.PlaceBidAt("A", 1)
	check.True(t, errors.Is(err, ErrInvalidTransition))
	_, err = s.PlaceBidAt("A", 500)
	check.True(t, errors.Is(err, ErrInvalidTransition))
}

func TestPlaceBidAt_RejectedWhileRTMPending(t *testing.T) {
	s := newTestSession(t, []Listing{listing("P1", 200, "C")}, rtmOrgs())
	mustBid(t, s, "D")
	res, err := s.Sell()
	check.NoError(t, err)
	check.NotNil(t, res.Offer)

	_, err = s.PlaceBidAt("D", 1)
	check.True(t, errors.Is(err, ErrInvalidTransition))
	check.Equal(t, Money(210), s.CurrentBid().Amount)
}
