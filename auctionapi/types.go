package auctionapi

import (
	"github.com/cloudx-io/rosterauction/core"
)

// Request types accepted by the Dispatcher.
const (
	TypePlaceBid   = "place_bid"
	TypeSell       = "sell"
	TypeSkip       = "skip"
	TypeAdvance    = "advance"
	TypeRetreat    = "retreat"
	TypeReset      = "reset"
	TypeSetBidStep = "set_bid_step"
	TypeOfferRTM   = "offer_rtm"
	TypeResolveRTM = "resolve_rtm"
	TypeState      = "state"
)

// Request is one operator intent. Amounts are decimal strings in major units
// ("0.5" is half a crore) so that no float ever reaches the ledger.
type Request struct {
	Type string `json:"type"`

	// Org is the acting organization code for place_bid. Case and surrounding
	// whitespace are normalised before lookup.
	Org string `json:"org,omitempty"`

	// Amount is a jump bid for place_bid, or the raise over the current bid
	// for resolve_rtm. Empty means one step for place_bid and no raise for
	// resolve_rtm.
	Amount string `json:"amount,omitempty"`

	// Step is the bid increment for set_bid_step.
	Step string `json:"step,omitempty"`

	// Exercise confirms a right-to-match for resolve_rtm.
	Exercise bool `json:"exercise,omitempty"`
}

// Response is the outcome of one Request. Success is false for every
// rejection, with Code carrying the machine-readable reason. State is the
// session snapshot after the request was applied (or left the session
// unchanged).
type Response struct {
	Type      string          `json:"type"`
	Success   bool            `json:"success"`
	Code      core.Code       `json:"code,omitempty"`
	Message   string          `json:"message,omitempty"`
	State     *core.State     `json:"state,omitempty"`
	Offer     *core.RTMOffer  `json:"offer,omitempty"`
	Sale      *core.Sale      `json:"sale,omitempty"`
	RTMState  core.RTMState   `json:"rtm_state,omitempty"`
	Stats     *core.Stats     `json:"stats,omitempty"`
	Digest    string          `json:"digest,omitempty"`
	Upcoming  []core.Entrant  `json:"upcoming,omitempty"`
	Standings []core.Standing `json:"standings,omitempty"`
}

// ResponseType names the response to a request of type t.
func ResponseType(t string) string {
	return t + "_response"
}
