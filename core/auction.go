package core

import (
	"fmt"
	"slices"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
)

// Settings are the tunable rules of a session.
type Settings struct {
	// BidSteps is the enumerated set of increments a caller may select.
	BidSteps []Money
	// DefaultBidStep is the step in effect at start and after Reset.
	DefaultBidStep Money
	// HistoryRetention bounds the number of events kept for display.
	HistoryRetention int
	// PriceDecimals is the major-unit precision computed bids are rounded to.
	PriceDecimals int32
	// Unit labels amounts in history messages ("Cr").
	Unit string
}

// DefaultSettings returns the settings of a standard auction: steps of
// 0.1, 0.2, 0.5 and 1 major units, defaulting to 0.1.
func DefaultSettings() Settings {
	return Settings{
		BidSteps:         []Money{10, 20, 50, 100},
		DefaultBidStep:   10,
		HistoryRetention: DefaultHistoryRetention,
		PriceDecimals:    DefaultPriceDecimals,
		Unit:             "Cr",
	}
}

// Validate checks the settings are internally consistent. Every step must be
// at least one quantum so a quantized bid always strictly increases.
func (s Settings) Validate() error {
	if len(s.BidSteps) == 0 {
		return fmt.Errorf("at least one bid step is required")
	}
	if s.PriceDecimals < 0 || s.PriceDecimals > minorDigits {
		return fmt.Errorf("price decimals must be between 0 and %d, got %d", minorDigits, s.PriceDecimals)
	}
	quantum := Quantum(s.PriceDecimals)
	for _, step := range s.BidSteps {
		if step < quantum {
			return fmt.Errorf("bid step %s is smaller than the price quantum %s", step, quantum)
		}
	}
	if !slices.Contains(s.BidSteps, s.DefaultBidStep) {
		return fmt.Errorf("default bid step %s is not one of the bid steps", s.DefaultBidStep)
	}
	if s.HistoryRetention < 1 {
		return fmt.Errorf("history retention must be >= 1, got %d", s.HistoryRetention)
	}
	return nil
}

// Option customises a Session.
type Option func(*Session)

// WithClock overrides the event timestamp source.
func WithClock(now func() time.Time) Option {
	return func(s *Session) { s.now = now }
}

// WithIDSource overrides the event ID generator.
func WithIDSource(newID func() string) Option {
	return func(s *Session) { s.newID = newID }
}

// WithEventSink delivers every committed event to sink, in commit order.
func WithEventSink(sink EventSink) Option {
	return func(s *Session) { s.sink = sink }
}

// WithSessionID fixes the session identifier.
func WithSessionID(id string) Option {
	return func(s *Session) { s.id = id }
}

// Session is a single live auction run. It has exactly one mutator: every
// exported method runs to completion before the next, so a Session must not
// be mutated from multiple goroutines. Turn may be read concurrently.
type Session struct {
	id       string
	settings Settings

	catalog  []Listing
	entrants []Entrant
	registry *Registry

	index      int
	phase      Phase
	bid        BidState
	totalSpent Money
	bidCount   int
	pending    *RTMOffer

	history *history
	seq     uint64
	turn    atomic.Uint64

	now   func() time.Time
	newID func() string
	sink  EventSink
}

// NewSession validates the catalog, organizations and settings and opens a
// session on the first entrant.
func NewSession(listings []Listing, orgs []OrgSpec, settings Settings, opts ...Option) (*Session, error) {
	if err := settings.Validate(); err != nil {
		return nil, fmt.Errorf("invalid settings: %w", err)
	}
	if err := validateCatalog(listings); err != nil {
		return nil, fmt.Errorf("invalid catalog: %w", err)
	}
	registry, err := NewRegistry(orgs)
	if err != nil {
		return nil, fmt.Errorf("invalid organizations: %w", err)
	}

	s := &Session{
		settings: settings,
		catalog:  slices.Clone(listings),
		registry: registry,
		history:  newHistory(settings.HistoryRetention),
		now:      time.Now,
		newID:    uuid.NewString,
	}
	s.settings.BidSteps = slices.Clone(settings.BidSteps)
	for _, opt := range opts {
		opt(s)
	}
	if s.id == "" {
		s.id = uuid.NewString()
	}

	s.restore()
	s.record(Event{Kind: EventStarted, Message: "Auction Started"})
	return s, nil
}

func validateCatalog(listings []Listing) error {
	if len(listings) == 0 {
		return fmt.Errorf("catalog is empty")
	}
	seen := make(map[string]struct{}, len(listings))
	for i, l := range listings {
		if l.Name == "" {
			return fmt.Errorf("entrant %d has an empty name", i)
		}
		if _, dup := seen[l.Name]; dup {
			return fmt.Errorf("duplicate entrant %q", l.Name)
		}
		seen[l.Name] = struct{}{}
		if l.BasePrice <= 0 {
			return fmt.Errorf("entrant %q has non-positive base price %s", l.Name, l.BasePrice)
		}
	}
	return nil
}

// restore puts every piece of mutable state back to its initial value.
func (s *Session) restore() {
	entrants := make([]Entrant, len(s.catalog))
	for i, l := range s.catalog {
		entrants[i] = Entrant{Listing: l}
	}
	s.entrants = entrants
	s.registry.reset()
	s.index = 0
	s.phase = PhaseActive
	s.totalSpent = 0
	s.bidCount = 0
	s.pending = nil
	s.history.clear()
	s.bid = BidState{Step: s.settings.DefaultBidStep}
	s.beginTurn()
}

// record stamps e, appends it to history and forwards it to the sink. It is
// always called after the mutation it describes has been applied.
func (s *Session) record(e Event) Event {
	s.seq++
	e.ID = s.newID()
	e.Seq = s.seq
	e.At = s.now()
	e.TotalSpent = s.totalSpent
	s.history.append(e)
	if s.sink != nil {
		s.sink.Record(e)
	}
	return e
}

func (s *Session) money(m Money) string {
	if s.settings.Unit == "" {
		return m.String()
	}
	return m.String() + " " + s.settings.Unit
}

// ID returns the session identifier.
func (s *Session) ID() string { return s.id }

// Settings returns a copy of the session settings.
func (s *Session) Settings() Settings {
	out := s.settings
	out.BidSteps = slices.Clone(s.settings.BidSteps)
	return out
}

// Phase returns the session phase.
func (s *Session) Phase() Phase { return s.phase }

// Index returns the current entrant pointer, in [0, EntrantCount()].
func (s *Session) Index() int { return s.index }

// EntrantCount returns the catalog size.
func (s *Session) EntrantCount() int { return len(s.entrants) }

// Turn increments whenever the entrant on offer changes or its bid state is
// reset. Collaborators doing asynchronous work for an entrant compare turns to
// discard stale results.
func (s *Session) Turn() uint64 { return s.turn.Load() }

// TotalSpent returns the sum of all committed sale prices.
func (s *Session) TotalSpent() Money { return s.totalSpent }

// PendingRTM returns the open RTM offer, if any.
func (s *Session) PendingRTM() (RTMOffer, bool) {
	if s.pending == nil {
		return RTMOffer{}, false
	}
	return *s.pending, true
}

// Current returns the entrant under auction. ok is false once the session is complete.
func (s *Session) Current() (Entrant, bool) {
	if s.phase == PhaseComplete {
		return Entrant{}, false
	}
	return s.entrants[s.index], true
}

// Entrant returns the entrant at catalog index i.
func (s *Session) Entrant(i int) (Entrant, error) {
	if i < 0 || i >= len(s.entrants) {
		return Entrant{}, reject(CodeNotFound, "entrant index %d out of range [0, %d)", i, len(s.entrants))
	}
	return s.entrants[i], nil
}

// Entrants returns a copy of every entrant in catalog order.
func (s *Session) Entrants() []Entrant {
	return slices.Clone(s.entrants)
}

// Organization returns a copy of the named organization.
func (s *Session) Organization(code OrgCode) (Organization, error) {
	return s.registry.Organization(code)
}

// Organizations returns copies of every organization in registration order.
func (s *Session) Organizations() []Organization {
	return s.registry.Organizations()
}

// OrgSpecs returns the initial organization specs.
func (s *Session) OrgSpecs() []OrgSpec {
	return s.registry.Specs()
}

// History returns the retained recent events, oldest first.
func (s *Session) History() []Event {
	return s.history.recent()
}

// Upcoming returns up to n entrants after the current one.
func (s *Session) Upcoming(n int) []Entrant {
	if n <= 0 || s.phase == PhaseComplete {
		return nil
	}
	start := s.index + 1
	end := min(start+n, len(s.entrants))
	if start >= end {
		return nil
	}
	return slices.Clone(s.entrants[start:end])
}

// CheckInvariants verifies the financial invariants of the session: no
// negative budgets, totalSpent equal to the sum of sold prices, and every
// organization's budget equal to its initial allocation minus its spend.
func (s *Session) CheckInvariants() error {
	var sold Money
	for _, e := range s.entrants {
		if e.Sold {
			sold += e.SoldPrice
		}
	}
	if sold != s.totalSpent {
		return &InvariantError{
			Invariant: "total_spent",
			Detail:    fmt.Sprintf("total spent %s != sum of sold prices %s", s.totalSpent, sold),
		}
	}
	for i, org := range s.registry.orgs {
		if org.Budget < 0 {
			return &InvariantError{
				Invariant: "non_negative_budget",
				Detail:    fmt.Sprintf("organization %q has budget %s", org.Code, org.Budget),
			}
		}
		if want := s.registry.specs[i].Budget - org.Spent(); org.Budget != want {
			return &InvariantError{
				Invariant: "budget_ledger",
				Detail:    fmt.Sprintf("organization %q has budget %s, ledger says %s", org.Code, org.Budget, want),
			}
		}
	}
	return nil
}
