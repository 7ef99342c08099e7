package portrait

import (
	"context"
	"errors"
	"io/fs"
	"log/slog"
	"os"

	"golang.org/x/sync/singleflight"
)

// Turner reports the current auction turn. core.Session satisfies it.
type Turner interface {
	Turn() uint64
}

// Result is a resolved portrait for the entrant on offer at Turn.
type Result struct {
	Name  string
	URL   string
	Found bool
	Turn  uint64
}

// Resolver looks up portraits off the caller's goroutine. Concurrent lookups
// for one name share a single filesystem check.
type Resolver struct {
	manifest *Manifest
	group    singleflight.Group
	logger   *slog.Logger
	stat     func(string) (os.FileInfo, error)
}

// Option customises a Resolver.
type Option func(*Resolver)

// WithLogger sets the resolver's logger.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Resolver) { r.logger = logger }
}

// NewResolver resolves against m.
func NewResolver(m *Manifest, opts ...Option) *Resolver {
	r := &Resolver{manifest: m, logger: slog.Default(), stat: os.Stat}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Resolve returns the portrait for name, or the default image. A manifest
// entry whose file has since disappeared also falls back to the default.
func (r *Resolver) Resolve(ctx context.Context, name string) (Result, error) {
	ch := r.group.DoChan(name, func() (any, error) {
		path, ok := r.manifest.Find(name)
		if !ok {
			return Result{Name: name, URL: r.manifest.DefaultURL()}, nil
		}
		if _, err := r.stat(path); err != nil {
			if !errors.Is(err, fs.ErrNotExist) {
				return nil, err
			}
			r.logger.Warn("portrait listed in manifest is missing", "name", name, "path", path)
			return Result{Name: name, URL: r.manifest.DefaultURL()}, nil
		}
		return Result{Name: name, URL: path, Found: true}, nil
	})

	select {
	case <-ctx.Done():
		return Result{}, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return Result{}, res.Err
		}
		return res.Val.(Result), nil
	}
}

// ResolveFor resolves name asynchronously on behalf of the entrant on offer
// at t's current turn. The returned channel yields the result only if the
// turn has not moved on by the time it is ready; stale or failed lookups
// close the channel without a value.
func (r *Resolver) ResolveFor(ctx context.Context, t Turner, name string) <-chan Result {
	turn := t.Turn()
	out := make(chan Result, 1)
	go func() {
		defer close(out)
		res, err := r.Resolve(ctx, name)
		if err != nil {
			r.logger.Warn("portrait lookup failed", "name", name, "error", err)
			return
		}
		if now := t.Turn(); now != turn {
			r.logger.Debug("discarding stale portrait", "name", name, "turn", turn, "current_turn", now)
			return
		}
		res.Turn = turn
		out <- res
	}()
	return out
}
