package main

import (
	"fmt"
	"strings"

	"github.com/cloudx-io/rosterauction/auctionapi"
	"github.com/cloudx-io/rosterauction/core"
)

// command is one parsed operator line.
type command struct {
	req  auctionapi.Request
	help bool
	quit bool
}

// parseCommand turns an operator line into a request. The aliases mirror an
// auction desk keyboard: Enter sells, Esc skips and the right arrow moves on.
// An organization code on its own bids one step; followed by an amount it
// places a jump bid.
func parseCommand(line string, orgs []core.OrgCode) (command, error) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return command{req: auctionapi.Request{Type: auctionapi.TypeSell}}, nil
	}

	verb := strings.ToLower(fields[0])
	args := fields[1:]

	switch verb {
	case "sell", "enter":
		return simple(auctionapi.TypeSell, args)
	case "skip", "esc", "s":
		return simple(auctionapi.TypeSkip, args)
	case "next", "n", ">", "right":
		return simple(auctionapi.TypeAdvance, args)
	case "prev", "p", "<", "left", "back":
		return simple(auctionapi.TypeRetreat, args)
	case "reset":
		return simple(auctionapi.TypeReset, args)
	case "rtm":
		return simple(auctionapi.TypeOfferRTM, args)
	case "state", "stats":
		return simple(auctionapi.TypeState, args)
	case "help", "?", "h":
		return command{help: true}, nil
	case "quit", "exit", "q":
		return command{quit: true}, nil
	case "step":
		if len(args) != 1 {
			return command{}, fmt.Errorf("usage: step <amount>")
		}
		return command{req: auctionapi.Request{Type: auctionapi.TypeSetBidStep, Step: args[0]}}, nil
	case "bid", "b":
		if len(args) == 0 || len(args) > 2 {
			return command{}, fmt.Errorf("usage: bid <org> [amount]")
		}
		return bid(args[0], args[1:]), nil
	}

	code := auctionapi.NormalizeOrg(fields[0])
	for _, org := range orgs {
		if org == code {
			if len(args) > 1 {
				return command{}, fmt.Errorf("usage: <org> [amount]")
			}
			return bid(fields[0], args), nil
		}
	}
	return command{}, fmt.Errorf("unknown command %q (type help for commands)", fields[0])
}

func simple(t string, args []string) (command, error) {
	if len(args) > 0 {
		return command{}, fmt.Errorf("%s takes no arguments", t)
	}
	return command{req: auctionapi.Request{Type: t}}, nil
}

func bid(org string, args []string) command {
	req := auctionapi.Request{Type: auctionapi.TypePlaceBid, Org: org}
	if len(args) == 1 {
		req.Amount = args[0]
	}
	return command{req: req}
}

const helpText = `Commands:
  <ORG>              bid one step for an organization (e.g. "csk")
  <ORG> <amount>     jump bid (e.g. "mi 3.5")
  Enter | sell       sell to the highest bidder (offers RTM when eligible)
  esc | skip | s     skip the current entrant
  next | n | >       move to the next entrant
  prev | p | <       move back one entrant
  step <amount>      change the bid increment (e.g. "step 0.5")
  rtm                offer the right to match to the prior organization
  state              show statistics and standings
  reset              discard all progress and start over
  quit | q           leave`
