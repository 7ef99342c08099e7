package validation

import (
	"fmt"

	"github.com/cloudx-io/rosterauction/core"
)

// JournalValidationResult contains the outcome of replaying a journal.
type JournalValidationResult struct {
	HeaderValid   bool
	SequenceValid bool
	LedgerValid   bool
	BudgetsValid  bool
	SalesValid    bool
	RTMValid      bool

	ValidationDetails []string

	// Replayed figures as of the last event.
	Events       int
	Sales        int
	TotalSpent   core.Money
	FinalBudgets map[core.OrgCode]core.Money
}

// IsValid returns true if all journal checks passed
func (r *JournalValidationResult) IsValid() bool {
	return r.HeaderValid && r.SequenceValid && r.LedgerValid && r.BudgetsValid && r.SalesValid && r.RTMValid
}

func (r *JournalValidationResult) detailf(format string, args ...any) {
	r.ValidationDetails = append(r.ValidationDetails, fmt.Sprintf(format, args...))
}
