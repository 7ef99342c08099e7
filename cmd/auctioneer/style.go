package main

import (
	"fmt"
	"strings"

	"github.com/pterm/pterm"

	"github.com/cloudx-io/rosterauction/auctionapi"
	"github.com/cloudx-io/rosterauction/core"
	"github.com/cloudx-io/rosterauction/portrait"
)

// historyLines is how many recent events the history panel shows.
const historyLines = 8

// money formats an amount with the session's unit.
func money(m core.Money, unit string) string {
	if unit == "" {
		return m.String()
	}
	return m.String() + " " + unit
}

// getEntrantPanel shows the entrant under the hammer and the live bid.
func getEntrantPanel(st core.State, unit string, pic *portrait.Result) pterm.Panel {
	pbox := pterm.DefaultBox.WithHorizontalPadding(4).WithTopPadding(1).WithBottomPadding(1)
	if st.Current == nil {
		return pterm.Panel{Data: pbox.WithTitle(pterm.LightGreen("|AUCTION COMPLETE|")).WithTitleTopCenter().Sprint("All entrants have been offered.")}
	}

	e := st.Current
	var b strings.Builder
	b.WriteString(pterm.Sprintfln("%s", pterm.LightCyan(e.Name)))
	status := "Uncapped"
	if e.Capped {
		status = "Capped"
	}
	b.WriteString(pterm.Sprintfln("%s | %s | %s", e.Role, e.Origin, status))
	b.WriteString(pterm.Sprintfln("Base Price: %s", money(e.BasePrice, unit)))
	if e.PriorAffiliation != "" {
		b.WriteString(pterm.Sprintfln("Previous Team: %s", e.PriorAffiliation))
	}
	if e.Sold {
		b.WriteString(pterm.Sprintfln("%s", pterm.LightYellow(fmt.Sprintf("Sold to %s for %s", e.SoldTo, money(e.SoldPrice, unit)))))
	}
	b.WriteString("\n")
	bidder := "No bids yet"
	if st.Bid.HasBidder() {
		bidder = string(st.Bid.Bidder)
	}
	b.WriteString(pterm.Sprintfln("Current Bid: %s", pterm.LightGreen(money(st.Bid.Amount, unit))))
	b.WriteString(pterm.Sprintfln("Highest Bidder: %s", bidder))
	b.WriteString(pterm.Sprintfln("Next Bid: %s (step %s)", money(st.NextBid, unit), money(st.Bid.Step, unit)))
	if pic != nil {
		b.WriteString(pterm.Sprintfln("Portrait: %s", pic.URL))
	}

	title := fmt.Sprintf("|ENTRANT %d/%d|", st.Index+1, len(st.Entrants))
	return pterm.Panel{Data: pbox.WithTitle(pterm.LightYellow(title)).WithTitleTopCenter().Sprint(b.String())}
}

// getOrganizationsPanel lists each organization's budget, squad size and
// whether its right to match is still available.
func getOrganizationsPanel(st core.State, unit string) pterm.Panel {
	data := pterm.TableData{{"Team", "Budget", "Players", "RTM"}}
	for _, org := range st.Organizations {
		code := string(org.Code)
		if st.Bid.Bidder == org.Code {
			code = pterm.LightGreen(code)
		}
		rtm := pterm.LightGreen("available")
		if !org.RTMEligible {
			rtm = pterm.Gray("used")
		}
		data = append(data, []string{code, money(org.Budget, unit), fmt.Sprint(len(org.Acquired)), rtm})
	}
	table, err := pterm.DefaultTable.WithHasHeader().WithData(data).Srender()
	if err != nil {
		table = err.Error()
	}
	return pterm.Panel{Data: pterm.DefaultBox.WithTitle("|TEAMS|").WithTitleTopLeft().Sprint(table)}
}

// getHistoryPanel shows the most recent auction events.
func getHistoryPanel(st core.State) pterm.Panel {
	events := st.History
	if len(events) > historyLines {
		events = events[len(events)-historyLines:]
	}
	var b strings.Builder
	for i := len(events) - 1; i >= 0; i-- {
		e := events[i]
		msg := e.Message
		switch e.Kind {
		case core.EventSold:
			msg = pterm.LightGreen(msg)
		case core.EventRTMUsed:
			msg = pterm.LightMagenta(msg)
		case core.EventSkipped:
			msg = pterm.Gray(msg)
		}
		b.WriteString(pterm.Sprintfln("%s  %s", e.At.Format("15:04:05"), msg))
	}
	return pterm.Panel{Data: pterm.DefaultBox.WithTitle("|HISTORY|").WithTitleTopLeft().Sprint(b.String())}
}

// getUpcomingPanel lists the entrants that follow the current one.
func getUpcomingPanel(upcoming []core.Entrant, unit string) pterm.Panel {
	var b strings.Builder
	if len(upcoming) == 0 {
		b.WriteString("None")
	}
	for _, e := range upcoming {
		b.WriteString(pterm.Sprintfln("%s (%s) %s", e.Name, e.Role, money(e.BasePrice, unit)))
	}
	return pterm.Panel{Data: pterm.DefaultBox.WithTitle("|UP NEXT|").WithTitleTopLeft().Sprint(b.String())}
}

// getStatsPanel shows the live auction figures.
func getStatsPanel(stats core.Stats, unit string) pterm.Panel {
	text := pterm.Sprintfln("Bids: %d", stats.Bids) +
		pterm.Sprintfln("Sold: %d  Unsold: %d", stats.Sold, stats.Unsold) +
		pterm.Sprintfln("Total Spent: %s", money(stats.TotalSpent, unit)) +
		pterm.Sprintfln("Highest Sale: %s", money(stats.HighestSale, unit)) +
		pterm.Sprintfln("Average Sale: %s", money(stats.AverageSale, unit)) +
		pterm.Sprintfln("Budget Remaining: %s", money(stats.RemainingBudget, unit))
	return pterm.Panel{Data: pterm.DefaultBox.WithTitle("|STATS|").WithTitleTopLeft().Sprint(text)}
}

// printState renders the auction floor.
func printState(st core.State, upcoming []core.Entrant, unit string, pic *portrait.Result) {
	_ = pterm.DefaultPanel.WithPanels(pterm.Panels{
		{getEntrantPanel(st, unit, pic), getOrganizationsPanel(st, unit)},
		{getHistoryPanel(st), getUpcomingPanel(upcoming, unit)},
	}).Render()
}

// printStandings renders the final summary, ranked by spend.
func printStandings(standings []core.Standing, stats core.Stats, unit string) {
	pterm.DefaultSection.Println("Auction Summary")
	data := pterm.TableData{{"#", "Team", "Spent", "Remaining", "Players", "RTM"}}
	for _, s := range standings {
		rtm := "available"
		if !s.RTMAvailable {
			rtm = "used"
		}
		name := s.Name
		if name == "" {
			name = string(s.Code)
		}
		data = append(data, []string{
			fmt.Sprint(s.Rank), name, money(s.Spent, unit), money(s.Remaining, unit), fmt.Sprint(s.Acquired), rtm,
		})
	}
	_ = pterm.DefaultTable.WithHasHeader().WithData(data).Render()
	_ = pterm.DefaultPanel.WithPanels(pterm.Panels{{getStatsPanel(stats, unit)}}).Render()
}

// printOutcome reports what a request did.
func printOutcome(resp auctionapi.Response, unit string) {
	switch {
	case !resp.Success:
		pterm.Error.Println(resp.Message)
	case resp.RTMState == core.RTMForfeited:
		pterm.Warning.Printfln("RTM forfeited: %s", resp.Message)
	case resp.Sale != nil && resp.Sale.RTMUsed:
		pterm.Success.Printfln("RTM USED: %s retained by %s for %s", resp.Sale.Entrant, resp.Sale.Org, money(resp.Sale.Price, unit))
	case resp.Sale != nil:
		pterm.Success.Printfln("SOLD: %s to %s for %s", resp.Sale.Entrant, resp.Sale.Org, money(resp.Sale.Price, unit))
	case resp.Offer != nil:
		pterm.Info.Printfln("%s may match %s's bid of %s for %s", resp.Offer.Org, resp.Offer.Bidder, money(resp.Offer.Amount, unit), resp.Offer.Entrant)
	}
}
