package core

import (
	"errors"
	"testing"

	"github.com/peterldowns/testy/check"
)

func threeListings() []Listing {
	return []Listing{listing("P1", 200, ""), listing("P2", 150, ""), listing("P3", 100, "")}
}

func TestAdvance_ResetsBidToBasePrice(t *testing.T) {
	s := newTestSession(t, threeListings(), twoOrgs())
	mustBid(t, s, "A")

	check.NoError(t, s.Advance())
	check.Equal(t, 1, s.Index())
	check.Equal(t, BidState{Amount: 150, Step: 10}, s.CurrentBid())

	p1, err := s.Entrant(0)
	check.NoError(t, err)
	check.False(t, p1.Sold)
}

// Scenario: advancing off the last entrant completes the session.
func TestAdvance_CompletesAtEnd(t *testing.T) {
	s := newTestSession(t, threeListings(), twoOrgs())
	check.NoError(t, s.Advance())
	check.NoError(t, s.Advance())
	check.Equal(t, 2, s.Index())
	check.Equal(t, PhaseActive, s.Phase())

	check.NoError(t, s.Advance())
	check.Equal(t, PhaseComplete, s.Phase())
	check.Equal(t, 3, s.Index())

	_, ok := s.Current()
	check.False(t, ok)

	_, err := s.PlaceBid("A")
	check.True(t, errors.Is(err, ErrInvalidTransition))
	check.True(t, errors.Is(s.Advance(), ErrInvalidTransition))
	check.True(t, errors.Is(s.Skip(), ErrInvalidTransition))
	check.True(t, errors.Is(s.Retreat(), ErrInvalidTransition))
	_, err = s.Sell()
	check.True(t, errors.Is(err, ErrInvalidTransition))

	history := s.History()
	check.Equal(t, EventCompleted, history[len(history)-1].Kind)
}

func TestRetreat(t *testing.T) {
	s := newTestSession(t, threeListings(), twoOrgs())

	check.NoError(t, s.Retreat())
	check.Equal(t, 0, s.Index())

	check.NoError(t, s.Skip())
	mustBid(t, s, "B")
	check.NoError(t, s.Retreat())
	check.Equal(t, 0, s.Index())
	check.Equal(t, BidState{Amount: 200, Step: 10}, s.CurrentBid())

	// A skipped entrant can be bid on again after retreating.
	mustBid(t, s, "A")
	result, err := s.Sell()
	check.NoError(t, err)
	check.Equal(t, OrgCode("A"), result.Sale.Org)
}

func TestRetreat_DoesNotReopenSale(t *testing.T) {
	s := newTestSession(t, threeListings(), twoOrgs())
	mustBid(t, s, "A")
	_, err := s.Sell()
	check.NoError(t, err)
	check.Equal(t, 1, s.Index())

	check.NoError(t, s.Retreat())
	check.Equal(t, 0, s.Index())

	_, err = s.PlaceBid("B")
	check.True(t, errors.Is(err, ErrInvalidTransition))
	_, err = s.Sell()
	check.True(t, errors.Is(err, ErrInvalidTransition))

	p1, err := s.Entrant(0)
	check.NoError(t, err)
	check.Equal(t, OrgCode("A"), p1.SoldTo)
	check.Equal(t, Money(210), s.TotalSpent())

	// Navigation past a sold entrant is still allowed.
	check.NoError(t, s.Advance())
	check.Equal(t, 1, s.Index())
}

func TestSkip(t *testing.T) {
	s := newTestSession(t, threeListings(), twoOrgs())
	mustBid(t, s, "A")

	check.NoError(t, s.Skip())
	check.Equal(t, 1, s.Index())
	check.Equal(t, Money(0), s.TotalSpent())
	check.Equal(t, Money(10000), mustOrg(t, s, "A").Budget)

	history := s.History()
	last := history[len(history)-1]
	check.Equal(t, EventSkipped, last.Kind)
	check.Equal(t, "SKIPPED: P1 (No bids)", last.Message)
	check.Equal(t, 1, s.Stats().Unsold)
}

func TestSkip_SoldEntrantOnlyNavigates(t *testing.T) {
	s := newTestSession(t, threeListings(), twoOrgs())
	mustBid(t, s, "A")
	_, err := s.Sell()
	check.NoError(t, err)
	check.NoError(t, s.Retreat())
	before := len(s.History())

	check.NoError(t, s.Skip())
	check.Equal(t, 1, s.Index())
	check.Equal(t, before, len(s.History()))

	p1, err := s.Entrant(0)
	check.NoError(t, err)
	check.True(t, p1.Sold)
	check.Equal(t, 0, s.Stats().Unsold)
	check.Equal(t, Money(210), s.TotalSpent())
}

func TestTurn_ChangesWithEntrant(t *testing.T) {
	s := newTestSession(t, threeListings(), twoOrgs())
	start := s.Turn()

	mustBid(t, s, "A")
	check.Equal(t, start, s.Turn())

	check.NoError(t, s.Advance())
	check.True(t, s.Turn() > start)

	afterAdvance := s.Turn()
	check.NoError(t, s.Retreat())
	check.True(t, s.Turn() > afterAdvance)
}
