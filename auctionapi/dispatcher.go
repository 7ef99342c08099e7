package auctionapi

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync"

	"github.com/cloudx-io/rosterauction/core"
)

// DefaultUpcoming is how many upcoming entrants a state response lists.
const DefaultUpcoming = 5

// Dispatcher is the single entry point that turns operator intents into
// session operations. It serialises every request so the session sees exactly
// one mutator, and resolves organization codes once at the boundary.
type Dispatcher struct {
	mu      sync.Mutex
	session *core.Session
	logger  *slog.Logger
}

// Option customises a Dispatcher.
type Option func(*Dispatcher)

// WithLogger sets the dispatcher's logger.
func WithLogger(logger *slog.Logger) Option {
	return func(d *Dispatcher) { d.logger = logger }
}

// NewDispatcher wraps session.
func NewDispatcher(session *core.Session, opts ...Option) *Dispatcher {
	d := &Dispatcher{session: session, logger: slog.Default()}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Session returns the dispatched session. Callers must not mutate it while
// the dispatcher is in use.
func (d *Dispatcher) Session() *core.Session {
	return d.session
}

// Dispatch applies one request and reports its outcome. Rejections are
// reported in the response, never as a Go error.
func (d *Dispatcher) Dispatch(ctx context.Context, req Request) Response {
	resp := Response{Type: ResponseType(req.Type)}

	d.mu.Lock()
	defer d.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return d.fail(resp, err)
	}

	d.logger.Debug("dispatching request", "type", req.Type, "org", req.Org, "amount", req.Amount)

	var err error
	switch req.Type {
	case TypePlaceBid:
		err = d.placeBid(req)
	case TypeSell:
		err = d.sell(&resp)
	case TypeSkip:
		err = d.session.Skip()
	case TypeAdvance:
		err = d.session.Advance()
	case TypeRetreat:
		err = d.session.Retreat()
	case TypeReset:
		d.session.Reset()
	case TypeSetBidStep:
		err = d.setBidStep(req)
	case TypeOfferRTM:
		err = d.offerRTM(&resp)
	case TypeResolveRTM:
		err = d.resolveRTM(req, &resp)
	case TypeState:
		err = d.describe(&resp)
	default:
		resp.Type = "error"
		err = &core.RejectionError{
			Code:    core.CodeInvalidArgument,
			Message: fmt.Sprintf("unknown request type: %s", req.Type),
		}
	}

	if err != nil {
		return d.fail(resp, err)
	}
	resp.Success = true
	st := d.session.Snapshot()
	resp.State = &st
	return resp
}

func (d *Dispatcher) fail(resp Response, err error) Response {
	resp.Success = false
	resp.Code = core.CodeOf(err)
	resp.Message = err.Error()

	var inv *core.InvariantError
	if errors.As(err, &inv) {
		d.logger.Error("invariant violated", "type", resp.Type, "invariant", inv.Invariant, "detail", inv.Detail)
	} else {
		d.logger.Info("request rejected", "type", resp.Type, "code", resp.Code, "error", err)
	}

	st := d.session.Snapshot()
	resp.State = &st
	return resp
}

func (d *Dispatcher) placeBid(req Request) error {
	code := NormalizeOrg(req.Org)
	if code == "" {
		return &core.RejectionError{Code: core.CodeInvalidArgument, Message: "place_bid requires an org"}
	}
	if req.Amount == "" {
		bid, err := d.session.PlaceBid(code)
		if err == nil {
			d.logger.Info("bid placed", "org", bid.Bidder, "amount", bid.Amount.String())
		}
		return err
	}
	amount, err := parseAmount("amount", req.Amount)
	if err != nil {
		return err
	}
	bid, err := d.session.PlaceBidAt(code, amount)
	if err == nil {
		d.logger.Info("jump bid placed", "org", bid.Bidder, "amount", bid.Amount.String())
	}
	return err
}

func (d *Dispatcher) sell(resp *Response) error {
	res, err := d.session.Sell()
	if err != nil {
		return err
	}
	resp.Sale = res.Sale
	resp.Offer = res.Offer
	if res.Offer != nil {
		resp.RTMState = core.RTMOffered
		d.logger.Info("rtm offered", "entrant", res.Offer.Entrant, "org", res.Offer.Org, "amount", res.Offer.Amount.String())
	} else {
		d.logger.Info("entrant sold", "entrant", res.Sale.Entrant, "org", res.Sale.Org, "price", res.Sale.Price.String())
	}
	return nil
}

func (d *Dispatcher) setBidStep(req Request) error {
	step, err := parseAmount("step", req.Step)
	if err != nil {
		return err
	}
	return d.session.SetBidStep(step)
}

func (d *Dispatcher) offerRTM(resp *Response) error {
	offer, err := d.session.OfferRTM()
	if err != nil {
		return err
	}
	resp.Offer = &offer
	resp.RTMState = core.RTMOffered
	return nil
}

func (d *Dispatcher) resolveRTM(req Request, resp *Response) error {
	var raise core.Money
	if req.Amount != "" {
		var err error
		if raise, err = parseAmount("amount", req.Amount); err != nil {
			return err
		}
	}
	res, err := d.session.ResolveRTM(core.RTMResponse{Raise: raise, Exercise: req.Exercise})
	if err != nil {
		return err
	}
	resp.Sale = &res.Sale
	resp.RTMState = res.State
	if res.Reason != nil {
		resp.Message = res.Reason.Error()
	}
	d.logger.Info("rtm resolved", "state", res.State, "entrant", res.Sale.Entrant, "org", res.Sale.Org, "price", res.Sale.Price.String())
	return nil
}

func (d *Dispatcher) describe(resp *Response) error {
	st := d.session.Snapshot()
	digest, err := core.StateDigest(st)
	if err != nil {
		return fmt.Errorf("compute state digest: %w", err)
	}
	stats := d.session.Stats()
	resp.Stats = &stats
	resp.Digest = digest
	resp.Upcoming = d.session.Upcoming(DefaultUpcoming)
	resp.Standings = d.session.Standings()
	return nil
}

// Serve reads newline-delimited JSON requests from r and writes one JSON
// response line per request to w, until r is exhausted or ctx is cancelled.
// Blank lines and lines starting with '#' are ignored.
func (d *Dispatcher) Serve(ctx context.Context, r io.Reader, w io.Writer) error {
	sc := bufio.NewScanner(r)
	enc := json.NewEncoder(w)
	line := 0
	for sc.Scan() {
		line++
		if err := ctx.Err(); err != nil {
			return err
		}
		text := strings.TrimSpace(sc.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}

		var req Request
		var resp Response
		if err := json.Unmarshal([]byte(text), &req); err != nil {
			d.logger.Error("failed to decode request", "line", line, "error", err)
			resp = Response{
				Type:    "error",
				Code:    core.CodeInvalidArgument,
				Message: fmt.Sprintf("line %d: failed to decode request: %v", line, err),
			}
		} else {
			resp = d.Dispatch(ctx, req)
		}

		if err := enc.Encode(resp); err != nil {
			return fmt.Errorf("encode response for line %d: %w", line, err)
		}
	}
	if err := sc.Err(); err != nil {
		return fmt.Errorf("read requests: %w", err)
	}
	return nil
}

// NormalizeOrg canonicalises an operator-typed organization code.
func NormalizeOrg(s string) core.OrgCode {
	return core.OrgCode(strings.ToUpper(strings.TrimSpace(s)))
}

func parseAmount(field, s string) (core.Money, error) {
	if s == "" {
		return 0, &core.RejectionError{Code: core.CodeInvalidArgument, Message: field + " is required"}
	}
	m, err := core.ParseMoney(s)
	if err != nil {
		return 0, &core.RejectionError{Code: core.CodeInvalidArgument, Message: fmt.Sprintf("invalid %s: %v", field, err)}
	}
	return m, nil
}
