// Package journal writes the session's committed events to an append-only,
// zstd-compressed JSON-lines transcript and reads such transcripts back.
//
// A journal is an audit trail. It is never used to resume a session.
package journal

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/klauspost/compress/zstd"

	"github.com/cloudx-io/rosterauction/core"
)

// Line kinds.
const (
	KindHeader = "header"
	KindEvent  = "event"
)

// Header opens every journal and records the starting allocation, so the
// event stream can be audited without the configuration file.
type Header struct {
	SessionID     string         `json:"session_id"`
	StartedAt     time.Time      `json:"started_at"`
	Organizations []core.OrgSpec `json:"organizations"`
}

// Line is one JSON line of a journal.
type Line struct {
	Kind   string      `json:"kind"`
	Header *Header     `json:"header,omitempty"`
	Event  *core.Event `json:"event,omitempty"`
}

// ErrClosed is returned when writing to a closed Writer.
var ErrClosed = errors.New("journal: writer closed")

// Writer appends journal lines to a zstd stream. It implements core.EventSink;
// the first write error is retained and reported by Err and Close, since the
// sink interface cannot return one.
type Writer struct {
	mu     sync.Mutex
	closer io.Closer
	enc    *zstd.Encoder
	w      *bufio.Writer
	err    error
	logger *slog.Logger
}

// Option customises a Writer.
type Option func(*Writer)

// WithLogger sets the logger used to report write failures.
func WithLogger(logger *slog.Logger) Option {
	return func(w *Writer) { w.logger = logger }
}

// Create creates (or truncates) the journal file at path and writes header.
func Create(path string, header Header, opts ...Option) (*Writer, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create journal directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open journal: %w", err)
	}
	w, err := NewWriter(f, header, opts...)
	if err != nil {
		_ = f.Close()
		return nil, err
	}
	w.closer = f
	return w, nil
}

// NewWriter starts a journal on dst and writes header. Closing the Writer
// does not close dst.
func NewWriter(dst io.Writer, header Header, opts ...Option) (*Writer, error) {
	enc, err := zstd.NewWriter(dst, zstd.WithEncoderLevel(zstd.SpeedFastest))
	if err != nil {
		return nil, fmt.Errorf("create zstd encoder: %w", err)
	}
	w := &Writer{
		enc:    enc,
		w:      bufio.NewWriterSize(enc, 64*1024),
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(w)
	}
	if err := w.write(Line{Kind: KindHeader, Header: &header}); err != nil {
		_ = enc.Close()
		return nil, err
	}
	return w, nil
}

// Record appends e. Failures are logged and retained for Err.
func (w *Writer) Record(e core.Event) {
	if err := w.write(Line{Kind: KindEvent, Event: &e}); err != nil {
		w.logger.Error("failed to journal event", "seq", e.Seq, "kind", e.Kind, "error", err)
	}
}

func (w *Writer) write(line Line) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.enc == nil {
		return ErrClosed
	}
	if w.err != nil {
		return w.err
	}

	b, err := json.Marshal(line)
	if err != nil {
		w.err = fmt.Errorf("marshal journal line: %w", err)
		return w.err
	}
	if _, err := w.w.Write(b); err != nil {
		w.err = fmt.Errorf("write journal line: %w", err)
		return w.err
	}
	if err := w.w.WriteByte('\n'); err != nil {
		w.err = fmt.Errorf("write journal line: %w", err)
		return w.err
	}
	return nil
}

// Flush pushes buffered lines through the encoder to the destination. Lines
// are otherwise buffered until Close.
func (w *Writer) Flush() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.enc == nil {
		return ErrClosed
	}
	if w.err != nil {
		return w.err
	}
	if err := w.w.Flush(); err != nil {
		w.err = fmt.Errorf("flush journal: %w", err)
		return w.err
	}
	if err := w.enc.Flush(); err != nil {
		w.err = fmt.Errorf("flush journal: %w", err)
		return w.err
	}
	return nil
}

// Err returns the first write failure, if any.
func (w *Writer) Err() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.err
}

// Close flushes and finishes the zstd frame, then closes the file opened by
// Create. It returns the first write failure if one occurred.
func (w *Writer) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.enc == nil {
		return nil
	}
	errs := []error{w.err}
	errs = append(errs, w.w.Flush(), w.enc.Close())
	w.enc = nil
	w.w = nil
	if w.closer != nil {
		errs = append(errs, w.closer.Close())
		w.closer = nil
	}
	return errors.Join(errs...)
}
