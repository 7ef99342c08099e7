package core

import (
	"testing"

	"github.com/peterldowns/testy/check"
)

func playSome(t *testing.T, s *Session) {
	t.Helper()
	check.NoError(t, s.SetBidStep(20))
	mustBid(t, s, "C")
	mustBid(t, s, "D")
	_, err := s.Sell()
	check.NoError(t, err)
	_, err = s.ResolveRTM(RTMResponse{Exercise: true})
	check.NoError(t, err)
	check.NoError(t, s.Skip())
	mustBid(t, s, "D")
}

func TestReset_RestoresInitialState(t *testing.T) {
	listings := []Listing{listing("P1", 200, "C"), listing("P2", 100, ""), listing("P3", 100, "")}
	s := newTestSession(t, listings, rtmOrgs())
	initial, err := StateDigest(s.Snapshot())
	check.NoError(t, err)

	playSome(t, s)
	check.NotEqual(t, Money(0), s.TotalSpent())

	s.Reset()

	check.Equal(t, PhaseActive, s.Phase())
	check.Equal(t, 0, s.Index())
	check.Equal(t, Money(0), s.TotalSpent())
	check.Equal(t, BidState{Amount: 200, Step: 10}, s.CurrentBid())
	for _, e := range s.Entrants() {
		check.False(t, e.Sold)
		check.False(t, e.RTMUsed)
		check.Equal(t, OrgCode(""), e.SoldTo)
		check.Equal(t, Money(0), e.SoldPrice)
	}
	for _, org := range s.Organizations() {
		check.Equal(t, Money(10000), org.Budget)
		check.True(t, org.RTMEligible)
		check.Equal(t, 0, len(org.Acquired))
	}
	check.Equal(t, 0, s.Stats().Bids)

	history := s.History()
	check.Equal(t, 1, len(history))
	check.Equal(t, EventReset, history[0].Kind)
	check.Equal(t, "Auction Reset - Starting Fresh", history[0].Message)

	afterReset, err := StateDigest(s.Snapshot())
	check.NoError(t, err)
	check.Equal(t, initial, afterReset)
}

func TestReset_Idempotent(t *testing.T) {
	listings := []Listing{listing("P1", 200, "C"), listing("P2", 100, ""), listing("P3", 100, "")}
	s := newTestSession(t, listings, rtmOrgs())
	playSome(t, s)

	s.Reset()
	once := s.Snapshot()
	s.Reset()
	twice := s.Snapshot()

	d1, err := StateDigest(once)
	check.NoError(t, err)
	d2, err := StateDigest(twice)
	check.NoError(t, err)
	check.Equal(t, d1, d2)
	check.Equal(t, len(once.History), len(twice.History))
	check.Equal(t, once.History[0].Message, twice.History[0].Message)
}

func TestReset_FromComplete(t *testing.T) {
	s := newTestSession(t, []Listing{listing("P1", 200, "")}, twoOrgs())
	check.NoError(t, s.Advance())
	check.Equal(t, PhaseComplete, s.Phase())

	s.Reset()
	check.Equal(t, PhaseActive, s.Phase())
	mustBid(t, s, "A")
}
