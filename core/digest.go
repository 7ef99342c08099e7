package core

import (
	"crypto/sha256"
	"fmt"

	"github.com/fxamacker/cbor/v2"
)

// digestEncMode encodes with the CBOR core deterministic rules, so equal
// states always produce identical bytes.
var digestEncMode = func() cbor.EncMode {
	em, err := cbor.CoreDetEncOptions().EncMode()
	if err != nil {
		panic(fmt.Sprintf("cbor deterministic encoding mode: %v", err))
	}
	return em
}()

// digestView is the part of State covered by StateDigest. History, turn and
// session ID are excluded: they carry identifiers and timestamps rather than
// auction outcome.
type digestView struct {
	Phase         Phase          `cbor:"phase"`
	Index         int            `cbor:"index"`
	Bid           BidState       `cbor:"bid"`
	Entrants      []Entrant      `cbor:"entrants"`
	Organizations []Organization `cbor:"organizations"`
	TotalSpent    Money          `cbor:"total_spent"`
	PendingRTM    *RTMOffer      `cbor:"pending_rtm"`
}

// StateDigest computes the state digest.
//
// Formula: SHA256(canonical_cbor(phase, index, bid, entrants, organizations, total_spent, pending_rtm))
func StateDigest(st State) (string, error) {
	data, err := digestEncMode.Marshal(digestView{
		Phase:         st.Phase,
		Index:         st.Index,
		Bid:           st.Bid,
		Entrants:      st.Entrants,
		Organizations: st.Organizations,
		TotalSpent:    st.TotalSpent,
		PendingRTM:    st.PendingRTM,
	})
	if err != nil {
		return "", fmt.Errorf("encode state: %w", err)
	}
	hash := sha256.Sum256(data)
	return fmt.Sprintf("%x", hash), nil
}
