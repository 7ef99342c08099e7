package core

import (
	"errors"
	"testing"

	"github.com/peterldowns/testy/check"
)

func TestNewSession_InitialState(t *testing.T) {
	s := newTestSession(t, []Listing{listing("P1", 200, ""), listing("P2", 150, "")}, twoOrgs())

	check.Equal(t, PhaseActive, s.Phase())
	check.Equal(t, 0, s.Index())
	check.Equal(t, Money(0), s.TotalSpent())
	check.Equal(t, BidState{Amount: 200, Step: 10}, s.CurrentBid())

	cur, ok := s.Current()
	check.True(t, ok)
	check.Equal(t, "P1", cur.Name)

	for _, org := range s.Organizations() {
		check.Equal(t, Money(10000), org.Budget)
		check.True(t, org.RTMEligible)
		check.Equal(t, 0, len(org.Acquired))
	}

	history := s.History()
	check.Equal(t, 1, len(history))
	check.Equal(t, EventStarted, history[0].Kind)
	check.Equal(t, "Auction Started", history[0].Message)
}

func TestNewSession_Validation(t *testing.T) {
	valid := []Listing{listing("P1", 200, "")}

	tests := []struct {
		name     string
		listings []Listing
		orgs     []OrgSpec
		settings func(*Settings)
	}{
		{name: "empty catalog", listings: nil, orgs: twoOrgs()},
		{name: "duplicate entrant", listings: []Listing{listing("P1", 200, ""), listing("P1", 300, "")}, orgs: twoOrgs()},
		{name: "zero base price", listings: []Listing{listing("P1", 0, "")}, orgs: twoOrgs()},
		{name: "no organizations", listings: valid, orgs: nil},
		{name: "duplicate organization", listings: valid, orgs: []OrgSpec{{Code: "A", Budget: 1}, {Code: "A", Budget: 1}}},
		{name: "negative budget", listings: valid, orgs: []OrgSpec{{Code: "A", Budget: -1}}},
		{name: "empty code", listings: valid, orgs: []OrgSpec{{Code: "", Budget: 1}}},
		{
			name: "default step not in set", listings: valid, orgs: twoOrgs(),
			settings: func(s *Settings) { s.DefaultBidStep = 30 },
		},
		{
			name: "step below quantum", listings: valid, orgs: twoOrgs(),
			settings: func(s *Settings) { s.BidSteps = []Money{5, 10} },
		},
		{
			name: "zero retention", listings: valid, orgs: twoOrgs(),
			settings: func(s *Settings) { s.HistoryRetention = 0 },
		},
		{
			name: "too many decimals", listings: valid, orgs: twoOrgs(),
			settings: func(s *Settings) { s.PriceDecimals = 3 },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			settings := DefaultSettings()
			if tt.settings != nil {
				tt.settings(&settings)
			}
			_, err := NewSession(tt.listings, tt.orgs, settings)
			check.Error(t, err)
		})
	}
}

// Scenario: two organizations trade bids and the last bidder buys.
func TestSession_SellToHighestBidder(t *testing.T) {
	s := newTestSession(t, []Listing{listing("P1", 200, "")}, twoOrgs())

	check.Equal(t, Money(210), mustBid(t, s, "A").Amount)
	check.Equal(t, Money(220), mustBid(t, s, "B").Amount)

	result, err := s.Sell()
	check.NoError(t, err)
	check.Nil(t, result.Offer)
	check.NotNil(t, result.Sale)
	check.Equal(t, Sale{EntrantIndex: 0, Entrant: "P1", Org: "B", Price: 220}, *result.Sale)

	check.Equal(t, Money(9780), mustOrg(t, s, "B").Budget)
	check.Equal(t, Money(10000), mustOrg(t, s, "A").Budget)
	check.Equal(t, Money(220), s.TotalSpent())

	p1, err := s.Entrant(0)
	check.NoError(t, err)
	check.True(t, p1.Sold)
	check.Equal(t, OrgCode("B"), p1.SoldTo)
	check.Equal(t, Money(220), p1.SoldPrice)

	b := mustOrg(t, s, "B")
	check.Equal(t, []Acquisition{{EntrantIndex: 0, Name: "P1", Price: 220}}, b.Acquired)

	// Single entrant catalog: the sale advances into completion.
	check.Equal(t, PhaseComplete, s.Phase())
	check.NoError(t, s.CheckInvariants())
}

func TestSession_SellWithoutBid(t *testing.T) {
	s := newTestSession(t, []Listing{listing("P1", 200, "")}, twoOrgs())

	_, err := s.Sell()
	check.True(t, errors.Is(err, ErrNoBidPlaced))
	check.Equal(t, CodeNoBidPlaced, CodeOf(err))
	check.Equal(t, 0, s.Index())
	check.Equal(t, Money(0), s.TotalSpent())
}

func TestSession_EventsReachSinkInOrder(t *testing.T) {
	sink := &recordingSink{}
	s := newTestSession(t, []Listing{listing("P1", 200, ""), listing("P2", 200, "")}, twoOrgs(), WithEventSink(sink))

	mustBid(t, s, "A")
	_, err := s.Sell()
	check.NoError(t, err)
	check.NoError(t, s.Skip())

	kinds := make([]EventKind, 0, len(sink.events))
	for i, e := range sink.events {
		check.Equal(t, uint64(i+1), e.Seq)
		kinds = append(kinds, e.Kind)
	}
	check.Equal(t, []EventKind{EventStarted, EventBid, EventSold, EventSkipped, EventCompleted}, kinds)

	sold := sink.events[2]
	check.Equal(t, "SOLD: P1 to A for 2.1 Cr", sold.Message)
	check.Equal(t, Money(210), sold.TotalSpent)
	check.Equal(t, Money(9790), sold.Budget)
	check.Equal(t, "evt-3", sold.ID)
	check.True(t, sold.At.Equal(testEpoch))
}

func TestSession_HistoryRetention(t *testing.T) {
	settings := DefaultSettings()
	settings.HistoryRetention = 3
	s, err := NewSession([]Listing{listing("P1", 200, "")}, twoOrgs(), settings)
	check.NoError(t, err)

	for range 5 {
		mustBid(t, s, "A")
	}

	history := s.History()
	check.Equal(t, 3, len(history))
	check.Equal(t, uint64(4), history[0].Seq)
	check.Equal(t, uint64(6), history[2].Seq)
	check.Equal(t, "A → 2.5 Cr", history[2].Message)
}

func TestSession_Snapshot(t *testing.T) {
	s := newTestSession(t, []Listing{listing("P1", 200, ""), listing("P2", 100, "")}, twoOrgs())
	mustBid(t, s, "A")

	st := s.Snapshot()
	check.Equal(t, "session-test", st.SessionID)
	check.Equal(t, PhaseActive, st.Phase)
	check.NotNil(t, st.Current)
	check.Equal(t, "P1", st.Current.Name)
	check.Equal(t, Money(220), st.NextBid)
	check.Equal(t, 2, len(st.Entrants))
	check.Equal(t, 2, len(st.History))
	check.Nil(t, st.PendingRTM)

	// Snapshots are copies.
	st.Organizations[0].Budget = 0
	check.Equal(t, Money(10000), mustOrg(t, s, "A").Budget)
}

func TestSession_Upcoming(t *testing.T) {
	s := newTestSession(t, []Listing{
		listing("P1", 100, ""), listing("P2", 100, ""), listing("P3", 100, ""), listing("P4", 100, ""),
	}, twoOrgs())

	upcoming := s.Upcoming(2)
	check.Equal(t, 2, len(upcoming))
	check.Equal(t, "P2", upcoming[0].Name)
	check.Equal(t, "P3", upcoming[1].Name)

	check.NoError(t, s.Advance())
	check.NoError(t, s.Advance())
	check.Equal(t, 1, len(s.Upcoming(3)))
	check.Equal(t, 0, len(s.Upcoming(0)))
}

func TestSession_UnknownOrganization(t *testing.T) {
	s := newTestSession(t, []Listing{listing("P1", 200, "")}, twoOrgs())

	_, err := s.PlaceBid("ZZ")
	check.True(t, errors.Is(err, ErrNotFound))

	_, err = s.Organization("ZZ")
	check.True(t, errors.Is(err, ErrNotFound))

	_, err = s.Entrant(5)
	check.True(t, errors.Is(err, ErrNotFound))
}

func TestSession_Stats(t *testing.T) {
	s := newTestSession(t, []Listing{
		listing("P1", 200, ""), listing("P2", 100, ""), listing("P3", 300, ""),
	}, twoOrgs())

	mustBid(t, s, "A")
	mustBid(t, s, "B")
	_, err := s.Sell() // P1 to B for 220
	check.NoError(t, err)
	check.NoError(t, s.Skip()) // P2 unsold
	mustBid(t, s, "A")
	_, err = s.Sell() // P3 to A for 310
	check.NoError(t, err)

	st := s.Stats()
	check.Equal(t, 3, st.Bids)
	check.Equal(t, 2, st.Sold)
	check.Equal(t, 1, st.Unsold)
	check.Equal(t, Money(530), st.TotalSpent)
	check.Equal(t, Money(310), st.HighestSale)
	check.Equal(t, Money(265), st.AverageSale)
	check.Equal(t, Money(20000-530), st.RemainingBudget)
}
