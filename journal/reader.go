package journal

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/klauspost/compress/zstd"

	"github.com/cloudx-io/rosterauction/core"
)

// maxLineSize bounds a single journal line.
const maxLineSize = 8 * 1024 * 1024

// Transcript is a fully decoded journal.
type Transcript struct {
	Header Header
	Events []core.Event
}

// ReadFile decodes the journal at path.
func ReadFile(path string) (*Transcript, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open journal: %w", err)
	}
	defer f.Close()
	return Read(f)
}

// Read decodes a zstd-compressed journal. The first line must be the header;
// every following line must be an event.
func Read(r io.Reader) (*Transcript, error) {
	dec, err := zstd.NewReader(r)
	if err != nil {
		return nil, fmt.Errorf("create zstd decoder: %w", err)
	}
	defer dec.Close()

	sc := bufio.NewScanner(dec)
	sc.Buffer(make([]byte, 64*1024), maxLineSize)

	var t Transcript
	n := 0
	for sc.Scan() {
		n++
		var line Line
		if err := json.Unmarshal(sc.Bytes(), &line); err != nil {
			return nil, fmt.Errorf("line %d: unmarshal: %w", n, err)
		}
		switch {
		case n == 1:
			if line.Kind != KindHeader || line.Header == nil {
				return nil, fmt.Errorf("line 1: expected %s, got %q", KindHeader, line.Kind)
			}
			t.Header = *line.Header
		case line.Kind == KindEvent && line.Event != nil:
			t.Events = append(t.Events, *line.Event)
		default:
			return nil, fmt.Errorf("line %d: unexpected line kind %q", n, line.Kind)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read journal: %w", err)
	}
	if n == 0 {
		return nil, fmt.Errorf("journal is empty")
	}
	return &t, nil
}
