package core

import (
	"testing"

	"github.com/peterldowns/testy/check"
)

func TestRankOrganizations(t *testing.T) {
	orgs := []Organization{
		{Code: "A", Budget: 9000, Acquired: []Acquisition{{Price: 1000}}, RTMEligible: true},
		{Code: "B", Budget: 8000, Acquired: []Acquisition{{Price: 1500}, {Price: 500}}},
		{Code: "C", Budget: 10000, RTMEligible: true},
		{Code: "D", Budget: 9000, Acquired: []Acquisition{{Price: 1000}}, RTMEligible: true},
	}

	standings := RankOrganizations(orgs)

	check.Equal(t, 4, len(standings))
	check.Equal(t, OrgCode("B"), standings[0].Code)
	check.Equal(t, 1, standings[0].Rank)
	check.Equal(t, Money(2000), standings[0].Spent)
	check.Equal(t, 2, standings[0].Acquired)

	// Ties share a rank and keep registration order.
	check.Equal(t, OrgCode("A"), standings[1].Code)
	check.Equal(t, OrgCode("D"), standings[2].Code)
	check.Equal(t, 2, standings[1].Rank)
	check.Equal(t, 2, standings[2].Rank)

	check.Equal(t, OrgCode("C"), standings[3].Code)
	check.Equal(t, 4, standings[3].Rank)
	check.Equal(t, Money(10000), standings[3].Remaining)
	check.True(t, standings[3].RTMAvailable)
}

func TestRankOrganizations_Empty(t *testing.T) {
	check.Equal(t, 0, len(RankOrganizations(nil)))
}

func TestSession_Standings(t *testing.T) {
	s := newTestSession(t, []Listing{listing("P1", 200, "")}, twoOrgs())
	mustBid(t, s, "B")
	_, err := s.Sell()
	check.NoError(t, err)

	standings := s.Standings()
	check.Equal(t, OrgCode("B"), standings[0].Code)
	check.Equal(t, Money(210), standings[0].Spent)
	check.Equal(t, Money(9790), standings[0].Remaining)
}
