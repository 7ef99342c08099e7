package core

import (
	"fmt"
	"testing"
	"time"

	"github.com/peterldowns/testy/assert"
)

var testEpoch = time.Date(2024, time.December, 1, 10, 0, 0, 0, time.UTC)

// recordingSink collects every event delivered to the sink.
type recordingSink struct {
	events []Event
}

func (r *recordingSink) Record(e Event) {
	r.events = append(r.events, e)
}

func twoOrgs() []OrgSpec {
	return []OrgSpec{
		{Code: "A", Name: "Org A", Budget: 10000},
		{Code: "B", Name: "Org B", Budget: 10000},
	}
}

func listing(name string, base Money, prior OrgCode) Listing {
	return Listing{Name: name, Role: "Batsman", Origin: "India", BasePrice: base, PriorAffiliation: prior}
}

// newTestSession builds a session with deterministic IDs and timestamps.
func newTestSession(t *testing.T, listings []Listing, orgs []OrgSpec, opts ...Option) *Session {
	t.Helper()
	n := 0
	base := []Option{
		WithSessionID("session-test"),
		WithClock(func() time.Time { return testEpoch }),
		WithIDSource(func() string {
			n++
			return fmt.Sprintf("evt-%d", n)
		}),
	}
	s, err := NewSession(listings, orgs, DefaultSettings(), append(base, opts...)...)
	assert.NoError(t, err)
	return s
}

func mustOrg(t *testing.T, s *Session, code OrgCode) Organization {
	t.Helper()
	org, err := s.Organization(code)
	assert.NoError(t, err)
	return org
}

func mustBid(t *testing.T, s *Session, code OrgCode) BidState {
	t.Helper()
	bid, err := s.PlaceBid(code)
	assert.NoError(t, err)
	return bid
}
