package validation

import (
	"fmt"

	"github.com/cloudx-io/rosterauction/core"
	"github.com/cloudx-io/rosterauction/journal"
)

// ValidateJournalFile reads and validates the journal at path.
func ValidateJournalFile(path string) (*JournalValidationResult, error) {
	t, err := journal.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read journal: %w", err)
	}
	return ValidateJournal(t)
}

// ValidateJournal replays a journal from its header and verifies:
// - Event sequence numbers are contiguous from 1
// - Every sale debits a registered organization and its recorded budget
//   matches the replayed ledger
// - The running total spent equals the sum of committed sale prices
// - No budget goes negative and no bid exceeds the bidder's budget
// - No entrant is sold twice and no organization uses RTM twice between resets
//
// Returns:
//   - JournalValidationResult with detailed results (call result.IsValid() to check overall status)
//   - error if validation cannot be performed (nil transcript)
func ValidateJournal(t *journal.Transcript) (*JournalValidationResult, error) {
	if t == nil {
		return nil, fmt.Errorf("transcript is nil")
	}

	result := &JournalValidationResult{
		SequenceValid: true,
		LedgerValid:   true,
		BudgetsValid:  true,
		SalesValid:    true,
		RTMValid:      true,
		Events:        len(t.Events),
	}

	initial, ok := validateHeader(t.Header, result)
	result.HeaderValid = ok
	if !ok {
		return result, nil
	}

	r := newReplay(initial)
	result.SequenceValid = validateSequence(t.Events, result)
	for _, e := range t.Events {
		r.apply(e, result)
	}

	result.Sales = r.sales
	result.TotalSpent = r.total
	result.FinalBudgets = r.budgets

	if result.LedgerValid {
		result.detailf("Ledger validation passed: total spent %s over %d sales", r.total, r.sales)
	}
	return result, nil
}

func validateHeader(h journal.Header, result *JournalValidationResult) (map[core.OrgCode]core.Money, bool) {
	if len(h.Organizations) == 0 {
		result.detailf("Header lists no organizations")
		return nil, false
	}
	initial := make(map[core.OrgCode]core.Money, len(h.Organizations))
	for _, org := range h.Organizations {
		if org.Code == "" {
			result.detailf("Header lists an organization with an empty code")
			return nil, false
		}
		if _, dup := initial[org.Code]; dup {
			result.detailf("Header lists organization %s twice", org.Code)
			return nil, false
		}
		if org.Budget < 0 {
			result.detailf("Header gives organization %s a negative budget %s", org.Code, org.Budget)
			return nil, false
		}
		initial[org.Code] = org.Budget
	}
	result.detailf("Header validation passed: session %s, %d organizations", h.SessionID, len(initial))
	return initial, true
}

func validateSequence(events []core.Event, result *JournalValidationResult) bool {
	var want uint64 = 1
	for _, e := range events {
		if e.Seq != want {
			result.detailf("Sequence gap: expected seq %d, got %d", want, e.Seq)
			return false
		}
		want++
	}
	result.detailf("Sequence validation passed: %d contiguous events", len(events))
	return true
}

// replay is the ledger rebuilt from events alone.
type replay struct {
	initial map[core.OrgCode]core.Money
	budgets map[core.OrgCode]core.Money
	total   core.Money
	sales   int
	sold    map[string]core.OrgCode
	rtmUsed map[core.OrgCode]string
}

func newReplay(initial map[core.OrgCode]core.Money) *replay {
	r := &replay{initial: initial}
	r.reset()
	return r
}

func (r *replay) reset() {
	r.budgets = make(map[core.OrgCode]core.Money, len(r.initial))
	for code, budget := range r.initial {
		r.budgets[code] = budget
	}
	r.total = 0
	r.sold = map[string]core.OrgCode{}
	r.rtmUsed = map[core.OrgCode]string{}
}

func (r *replay) apply(e core.Event, result *JournalValidationResult) {
	switch e.Kind {
	case core.EventReset:
		r.reset()
	case core.EventBid:
		r.applyBid(e, result)
	case core.EventSold, core.EventRTMUsed:
		r.applySale(e, result)
	case core.EventStarted, core.EventSkipped, core.EventCompleted:
	default:
		result.LedgerValid = false
		result.detailf("Event %d has unknown kind %q", e.Seq, e.Kind)
		return
	}

	if e.TotalSpent != r.total {
		result.LedgerValid = false
		result.detailf("Event %d records total spent %s, replay has %s", e.Seq, e.TotalSpent, r.total)
	}
}

func (r *replay) applyBid(e core.Event, result *JournalValidationResult) {
	budget, ok := r.budgets[e.Org]
	if !ok {
		result.LedgerValid = false
		result.detailf("Event %d: bid by unregistered organization %q", e.Seq, e.Org)
		return
	}
	if e.Amount > budget {
		result.BudgetsValid = false
		result.detailf("Event %d: %s bid %s with only %s available", e.Seq, e.Org, e.Amount, budget)
	}
	if e.Budget != budget {
		result.LedgerValid = false
		result.detailf("Event %d: %s budget recorded as %s, replay has %s", e.Seq, e.Org, e.Budget, budget)
	}
}

func (r *replay) applySale(e core.Event, result *JournalValidationResult) {
	budget, ok := r.budgets[e.Org]
	if !ok {
		result.LedgerValid = false
		result.detailf("Event %d: sale to unregistered organization %q", e.Seq, e.Org)
		return
	}
	if e.Amount <= 0 {
		result.LedgerValid = false
		result.detailf("Event %d: sale of %q at non-positive price %s", e.Seq, e.Entrant, e.Amount)
	}
	if prev, dup := r.sold[e.Entrant]; dup {
		result.SalesValid = false
		result.detailf("Event %d: %q sold again to %s after a sale to %s", e.Seq, e.Entrant, e.Org, prev)
	}
	if e.Kind == core.EventRTMUsed {
		if prev, used := r.rtmUsed[e.Org]; used {
			result.RTMValid = false
			result.detailf("Event %d: %s used RTM on %q after already using it on %q", e.Seq, e.Org, e.Entrant, prev)
		}
		r.rtmUsed[e.Org] = e.Entrant
	}

	budget -= e.Amount
	r.budgets[e.Org] = budget
	r.total += e.Amount
	r.sold[e.Entrant] = e.Org
	r.sales++

	if budget < 0 {
		result.BudgetsValid = false
		result.detailf("Event %d: %s budget went negative (%s)", e.Seq, e.Org, budget)
	}
	if e.Budget != budget {
		result.LedgerValid = false
		result.detailf("Event %d: %s budget recorded as %s, replay has %s", e.Seq, e.Org, e.Budget, budget)
	}
}
