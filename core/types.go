package core

import "time"

// OrgCode identifies a bidding organization (e.g. "CSK").
type OrgCode string

// Phase is the lifecycle phase of an auction session.
type Phase string

const (
	PhaseActive   Phase = "active"
	PhaseComplete Phase = "complete"
)

// Listing is the immutable catalog record of an entrant.
type Listing struct {
	Name             string  `json:"name"`
	Role             string  `json:"role"`
	Origin           string  `json:"origin"`
	BasePrice        Money   `json:"base_price"`
	PriorAffiliation OrgCode `json:"prior_affiliation,omitempty"`
	Capped           bool    `json:"capped,omitempty"`
}

// Entrant is a catalog listing plus the sale outcome recorded against it.
type Entrant struct {
	Listing

	Sold      bool    `json:"sold"`
	SoldPrice Money   `json:"sold_price"`
	SoldTo    OrgCode `json:"sold_to,omitempty"`
	RTMUsed   bool    `json:"rtm_used"`
}

// OrgSpec describes an organization at the start of a run.
type OrgSpec struct {
	Code   OrgCode `json:"code"`
	Name   string  `json:"name"`
	Budget Money   `json:"budget"`
}

// Organization is the live state of a bidding organization.
type Organization struct {
	Code        OrgCode       `json:"code"`
	Name        string        `json:"name"`
	Budget      Money         `json:"budget"`
	Acquired    []Acquisition `json:"acquired"`
	RTMEligible bool          `json:"rtm_eligible"`
}

// Acquisition references an entrant bought by an organization.
// Entrants are referenced by catalog index, never copied.
type Acquisition struct {
	EntrantIndex int    `json:"entrant_index"`
	Name         string `json:"name"`
	Price        Money  `json:"price"`
	RTMUsed      bool   `json:"rtm_used"`
}

// Spent returns the sum of all acquisition prices.
func (o Organization) Spent() Money {
	var total Money
	for _, a := range o.Acquired {
		total += a.Price
	}
	return total
}

// BidState is the bid ladder for the entrant under auction.
// Bidder is empty while no bid has been placed.
type BidState struct {
	Amount Money   `json:"amount"`
	Bidder OrgCode `json:"bidder,omitempty"`
	Step   Money   `json:"step"`
}

// HasBidder reports whether any organization holds the bid.
func (b BidState) HasBidder() bool {
	return b.Bidder != ""
}

// Sale is a committed transfer of an entrant to an organization.
type Sale struct {
	EntrantIndex int     `json:"entrant_index"`
	Entrant      string  `json:"entrant"`
	Org          OrgCode `json:"org"`
	Price        Money   `json:"price"`
	RTMUsed      bool    `json:"rtm_used"`
}

// EventKind classifies history events.
type EventKind string

const (
	EventStarted   EventKind = "started"
	EventBid       EventKind = "bid"
	EventSold      EventKind = "sold"
	EventRTMUsed   EventKind = "rtm_used"
	EventSkipped   EventKind = "skipped"
	EventReset     EventKind = "reset"
	EventCompleted EventKind = "completed"
)

// Event is one committed state transition. Budget is the affected
// organization's budget after the transition and TotalSpent is the session
// total after it, so a transcript of events can be audited on its own.
type Event struct {
	ID         string    `json:"id"`
	Seq        uint64    `json:"seq"`
	Kind       EventKind `json:"kind"`
	At         time.Time `json:"at"`
	Entrant    string    `json:"entrant,omitempty"`
	Org        OrgCode   `json:"org,omitempty"`
	Amount     Money     `json:"amount,omitempty"`
	Budget     Money     `json:"budget,omitempty"`
	TotalSpent Money     `json:"total_spent"`
	Message    string    `json:"message"`
}

// EventSink receives every committed event in commit order.
type EventSink interface {
	Record(Event)
}
