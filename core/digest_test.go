package core

import (
	"testing"

	"github.com/peterldowns/testy/check"
)

func TestStateDigest(t *testing.T) {
	s := newTestSession(t, []Listing{listing("P1", 200, ""), listing("P2", 100, "")}, twoOrgs())

	d1, err := StateDigest(s.Snapshot())
	check.NoError(t, err)

	// Verify hash is 64 characters (SHA256 hex encoding)
	check.Equal(t, 64, len(d1))

	// Deterministic
	d2, err := StateDigest(s.Snapshot())
	check.NoError(t, err)
	check.Equal(t, d1, d2)

	// A bid changes the digest
	mustBid(t, s, "A")
	d3, err := StateDigest(s.Snapshot())
	check.NoError(t, err)
	check.NotEqual(t, d1, d3)
}

func TestStateDigest_IgnoresHistoryAndIdentity(t *testing.T) {
	a := newTestSession(t, []Listing{listing("P1", 200, "")}, twoOrgs(), WithSessionID("one"))
	b := newTestSession(t, []Listing{listing("P1", 200, "")}, twoOrgs(), WithSessionID("two"))

	// Same outcome, different history lengths.
	mustBid(t, a, "A")
	mustBid(t, a, "B")
	check.NoError(t, a.SetBidStep(20))
	check.NoError(t, b.SetBidStep(20))
	_, err := b.PlaceBidAt("B", 220)
	check.NoError(t, err)

	da, err := StateDigest(a.Snapshot())
	check.NoError(t, err)
	db, err := StateDigest(b.Snapshot())
	check.NoError(t, err)
	check.Equal(t, da, db)
}
