package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"time"

	"github.com/google/uuid"
	"github.com/pterm/pterm"
	"github.com/pterm/pterm/putils"

	"github.com/cloudx-io/rosterauction/auctionapi"
	"github.com/cloudx-io/rosterauction/catalog"
	"github.com/cloudx-io/rosterauction/config"
	"github.com/cloudx-io/rosterauction/core"
	"github.com/cloudx-io/rosterauction/journal"
	"github.com/cloudx-io/rosterauction/portrait"
)

// portraitWait bounds how long a render waits for the current portrait.
const portraitWait = 250 * time.Millisecond

func main() {
	configFlag := flag.String("config", "", "path to the auction config YAML (defaults apply when empty)")
	catalogFlag := flag.String("catalog", "", "path to the entrant catalog (.yaml or .json); overrides the config")
	journalFlag := flag.String("journal", "", "path of the .jsonl.zst journal to write; overrides the config")
	portraitsFlag := flag.String("portraits", "", "portrait manifest YAML, or an image directory to scan")
	scriptFlag := flag.String("script", "", "replay JSONL requests from this file (\"-\" for stdin) and print JSONL responses")
	verboseFlag := flag.Bool("verbose", false, "enable debug logging")
	flag.Parse()

	pterm.DefaultLogger.Writer = os.Stderr
	if *verboseFlag {
		pterm.DefaultLogger.Level = pterm.LogLevelDebug
	}
	handler := pterm.NewSlogHandler(&pterm.DefaultLogger)
	logger := slog.New(handler)
	slog.SetDefault(logger)

	if err := run(runOptions{
		configPath:  *configFlag,
		catalogPath: *catalogFlag,
		journalPath: *journalFlag,
		portraits:   *portraitsFlag,
		script:      *scriptFlag,
		logger:      logger,
	}); err != nil {
		logger.Error(err.Error())
		os.Exit(1)
	}
}

type runOptions struct {
	configPath  string
	catalogPath string
	journalPath string
	portraits   string
	script      string
	logger      *slog.Logger
}

func run(opts runOptions) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	cfg, err := config.LoadAndValidate(opts.configPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if opts.catalogPath != "" {
		cfg.Catalog = opts.catalogPath
	}
	if opts.journalPath != "" {
		cfg.Journal = opts.journalPath
	}
	if opts.portraits != "" {
		cfg.Manifest = opts.portraits
	}
	if cfg.Catalog == "" {
		return fmt.Errorf("no catalog given: pass --catalog or set catalog in the config")
	}

	settings, err := cfg.Settings()
	if err != nil {
		return fmt.Errorf("load settings: %w", err)
	}
	orgs, err := cfg.OrgSpecs()
	if err != nil {
		return fmt.Errorf("load organizations: %w", err)
	}
	listings, err := catalog.Load(cfg.Catalog)
	if err != nil {
		return fmt.Errorf("load catalog: %w", err)
	}
	opts.logger.Info("catalog loaded", "path", cfg.Catalog, "entrants", len(listings), "organizations", len(orgs))

	sessionID := uuid.NewString()
	sessionOpts := []core.Option{core.WithSessionID(sessionID)}
	if cfg.Journal != "" {
		w, err := journal.Create(cfg.Journal, journal.Header{
			SessionID:     sessionID,
			StartedAt:     time.Now().UTC(),
			Organizations: orgs,
		}, journal.WithLogger(opts.logger))
		if err != nil {
			return fmt.Errorf("create journal: %w", err)
		}
		defer func() {
			if err := w.Close(); err != nil {
				opts.logger.Error("failed to close journal", "path", cfg.Journal, "error", err)
			}
		}()
		sessionOpts = append(sessionOpts, core.WithEventSink(w))
		opts.logger.Info("journaling events", "path", cfg.Journal)
	}

	session, err := core.NewSession(listings, orgs, settings, sessionOpts...)
	if err != nil {
		return fmt.Errorf("start session: %w", err)
	}
	dispatcher := auctionapi.NewDispatcher(session, auctionapi.WithLogger(opts.logger))

	if opts.script != "" {
		return runScript(ctx, dispatcher, opts.script)
	}

	var resolver *portrait.Resolver
	if cfg.Manifest != "" {
		m, err := loadManifest(cfg.Manifest)
		if err != nil {
			return err
		}
		resolver = portrait.NewResolver(m, portrait.WithLogger(opts.logger))
	}
	return interactive(ctx, dispatcher, resolver, settings.Unit, opts.logger)
}

func loadManifest(path string) (*portrait.Manifest, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("portrait manifest: %w", err)
	}
	if info.IsDir() {
		return portrait.BuildManifest(path)
	}
	return portrait.LoadManifest(path)
}

func runScript(ctx context.Context, d *auctionapi.Dispatcher, path string) error {
	var r io.Reader = os.Stdin
	if path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return fmt.Errorf("open script: %w", err)
		}
		defer f.Close()
		r = f
	}
	return d.Serve(ctx, r, os.Stdout)
}

func interactive(ctx context.Context, d *auctionapi.Dispatcher, resolver *portrait.Resolver, unit string, logger *slog.Logger) error {
	title, err := pterm.DefaultBigText.WithLetters(
		putils.LettersFromStringWithStyle("Roster ", pterm.FgLightYellow.ToStyle()),
		putils.LettersFromStringWithStyle("Auction", pterm.FgDarkGray.ToStyle()),
	).Srender()
	if err != nil {
		logger.Error(err.Error())
	}
	pterm.Print(title)

	session := d.Session()
	var codes []core.OrgCode
	for _, org := range session.OrgSpecs() {
		codes = append(codes, org.Code)
	}

	var pic *portrait.Result
	var picTurn uint64
	for {
		if err := ctx.Err(); err != nil {
			return nil
		}

		st := d.Dispatch(ctx, auctionapi.Request{Type: auctionapi.TypeState})
		if st.State == nil {
			return fmt.Errorf("no state available: %s", st.Message)
		}
		if resolver != nil && st.State.Current != nil && picTurn != st.State.Turn {
			pic, picTurn = awaitPortrait(ctx, resolver, session, st.State.Current.Name), st.State.Turn
		}

		if st.State.Phase == core.PhaseComplete {
			printState(*st.State, nil, unit, nil)
			if st.Stats != nil {
				printStandings(st.Standings, *st.Stats, unit)
			}
			again, _ := pterm.DefaultInteractiveConfirm.WithDefaultText("Start the auction again?").Show()
			if !again {
				pterm.Println("Thank you for running the auction...")
				return nil
			}
			printOutcome(d.Dispatch(ctx, auctionapi.Request{Type: auctionapi.TypeReset}), unit)
			continue
		}

		printState(*st.State, st.Upcoming, unit, pic)

		if offer := st.State.PendingRTM; offer != nil {
			printOutcome(d.Dispatch(ctx, promptRTM(*offer, unit)), unit)
			continue
		}

		line, _ := pterm.DefaultInteractiveTextInput.WithDefaultText("Command (help for list)").Show()
		pterm.Println()
		cmd, err := parseCommand(line, codes)
		if err != nil {
			pterm.Warning.Println(err.Error())
			continue
		}
		switch {
		case cmd.quit:
			pterm.Println("Thank you for running the auction...")
			return nil
		case cmd.help:
			pterm.Info.Println(helpText)
			continue
		case cmd.req.Type == auctionapi.TypeReset:
			sure, _ := pterm.DefaultInteractiveConfirm.WithDefaultText("Discard every sale and start over?").Show()
			if !sure {
				continue
			}
		case cmd.req.Type == auctionapi.TypeState:
			resp := d.Dispatch(ctx, cmd.req)
			if resp.Stats != nil {
				printStandings(resp.Standings, *resp.Stats, unit)
			}
			continue
		}

		printOutcome(d.Dispatch(ctx, cmd.req), unit)
	}
}

// promptRTM asks the prior organization whether it matches, and by how much
// it raises.
func promptRTM(offer core.RTMOffer, unit string) auctionapi.Request {
	question := fmt.Sprintf("%s: use RTM to retain %s against %s's %s? (budget %s)",
		offer.Org, offer.Entrant, offer.Bidder, money(offer.Amount, unit), money(offer.Budget, unit))
	exercise, _ := pterm.DefaultInteractiveConfirm.WithDefaultText(question).Show()
	req := auctionapi.Request{Type: auctionapi.TypeResolveRTM, Exercise: exercise}
	if exercise {
		raise, _ := pterm.DefaultInteractiveTextInput.
			WithDefaultText(fmt.Sprintf("Raise over %s (0 to match)", money(offer.Amount, unit))).
			WithDefaultValue("0").Show()
		req.Amount = raise
	}
	return req
}

// awaitPortrait waits briefly for the current entrant's portrait. A slow
// lookup is abandoned; the resolver discards it once the turn moves on.
func awaitPortrait(ctx context.Context, r *portrait.Resolver, t portrait.Turner, name string) *portrait.Result {
	select {
	case res, ok := <-r.ResolveFor(ctx, t, name):
		if !ok {
			return nil
		}
		return &res
	case <-time.After(portraitWait):
		return nil
	}
}
