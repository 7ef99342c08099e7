package core

import "github.com/shopspring/decimal"

// Stats are live aggregate figures for display.
type Stats struct {
	Bids            int   `json:"bids"`
	Sold            int   `json:"sold"`
	Unsold          int   `json:"unsold"`
	TotalSpent      Money `json:"total_spent"`
	HighestSale     Money `json:"highest_sale"`
	AverageSale     Money `json:"average_sale"`
	RemainingBudget Money `json:"remaining_budget"`
}

// Stats computes live figures. Unsold counts entrants already passed over
// without a sale; entrants not yet offered are not counted.
func (s *Session) Stats() Stats {
	st := Stats{
		Bids:            s.bidCount,
		TotalSpent:      s.totalSpent,
		RemainingBudget: s.registry.RemainingBudget(),
	}
	for i, e := range s.entrants {
		switch {
		case e.Sold:
			st.Sold++
			st.HighestSale = max(st.HighestSale, e.SoldPrice)
		case i < s.index:
			st.Unsold++
		}
	}
	if st.Sold > 0 {
		avg := s.totalSpent.Decimal().Div(decimal.NewFromInt(int64(st.Sold))).Round(minorDigits)
		st.AverageSale = Money(avg.Shift(minorDigits).IntPart())
	}
	return st
}
