// Package trace records agent events as zstd-compressed JSON lines.
package trace

import (
	"bufio"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/klauspost/compress/zstd"

	"github.com/udisondev/bossmind/internal/ai"
	"github.com/udisondev/bossmind/internal/model"
)

// Record is one trace line.
type Record struct {
	Tick    uint64  `json:"tick"`
	Time    float64 `json:"t"`
	AgentID uint32  `json:"agent_id"`
	Agent   string  `json:"agent"`
	Event   string  `json:"event"`
	From    string  `json:"from,omitempty"`
	To      string  `json:"to,omitempty"`
	Attack  string  `json:"attack,omitempty"`
	Phase   int     `json:"phase,omitempty"`
	Amount  float64 `json:"amount,omitempty"`
	X       float64 `json:"x"`
	Y       float64 `json:"y"`
}

// FromEvent flattens an engine event into a Record.
func FromEvent(ev ai.Event) Record {
	r := Record{
		Tick:    ev.Tick,
		Time:    ev.Time,
		AgentID: ev.AgentID,
		Agent:   ev.Agent,
		Event:   ev.Type.String(),
		Phase:   ev.Phase,
		Amount:  ev.Amount,
		X:       ev.Position.X,
		Y:       ev.Position.Y,
	}
	if ev.Type == ai.EventStateChanged {
		r.From = ev.From.String()
		r.To = ev.To.String()
	}
	if ev.Attack != model.AttackNone {
		r.Attack = ev.Attack.String()
	}
	return r
}

// FileName returns the trace file name for a run started at start.
func FileName(prefix string, start time.Time) string {
	return fmt.Sprintf("%s-%s.jsonl.zst", prefix, start.UTC().Format("2006-01-02-150405"))
}

// Writer appends records to a single compressed file. Safe for concurrent use.
type Writer struct {
	path string

	mu    sync.Mutex
	f     *os.File
	enc   *zstd.Encoder
	w     *bufio.Writer
	count int
	err   error
}

// Create opens path for writing, creating parent directories.
func Create(path string) (*Writer, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("creating trace dir: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return nil, fmt.Errorf("opening trace %s: %w", path, err)
	}
	enc, err := zstd.NewWriter(f, zstd.WithEncoderLevel(zstd.SpeedFastest))
	if err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("creating zstd encoder: %w", err)
	}
	return &Writer{
		path: path,
		f:    f,
		enc:  enc,
		w:    bufio.NewWriterSize(enc, 64*1024),
	}, nil
}

// Path returns the file being written.
func (w *Writer) Path() string { return w.path }

// Write appends one record.
func (w *Writer) Write(r Record) error {
	b, err := json.Marshal(r)
	if err != nil {
		return fmt.Errorf("encoding trace record: %w", err)
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	if w.w == nil {
		return os.ErrClosed
	}
	if _, err := w.w.Write(b); err != nil {
		return err
	}
	if err := w.w.WriteByte('\n'); err != nil {
		return err
	}
	w.count++
	return nil
}

// Record is an ai.Listener. The first write error is kept for Err and logged.
func (w *Writer) Record(ev ai.Event) {
	if err := w.Write(FromEvent(ev)); err != nil {
		w.mu.Lock()
		first := w.err == nil
		if first {
			w.err = err
		}
		w.mu.Unlock()
		if first {
			slog.Warn("trace write failed", "path", w.path, "error", err)
		}
	}
}

// Attach subscribes the writer to bus.
func (w *Writer) Attach(bus *ai.Bus) (detach func()) {
	return bus.Subscribe(w.Record)
}

// Count returns the number of records written.
func (w *Writer) Count() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.count
}

// Err returns the first error hit by Record.
func (w *Writer) Err() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.err
}

// Close flushes and closes the file. Closing twice is a no-op.
func (w *Writer) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.w == nil {
		return nil
	}

	var err error
	if ferr := w.w.Flush(); ferr != nil {
		err = fmt.Errorf("flushing trace: %w", ferr)
	}
	if cerr := w.enc.Close(); cerr != nil && err == nil {
		err = fmt.Errorf("closing zstd encoder: %w", cerr)
	}
	if cerr := w.f.Close(); cerr != nil && err == nil {
		err = fmt.Errorf("closing trace file: %w", cerr)
	}
	w.w, w.enc, w.f = nil, nil, nil
	return err
}

// ReadTrace decodes every record in a trace file.
func ReadTrace(path string) ([]Record, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening trace %s: %w", path, err)
	}
	defer f.Close()

	dec, err := zstd.NewReader(f)
	if err != nil {
		return nil, fmt.Errorf("creating zstd decoder: %w", err)
	}
	defer dec.Close()

	sc := bufio.NewScanner(dec)
	sc.Buffer(make([]byte, 64*1024), 8*1024*1024)

	var out []Record
	line := 0
	for sc.Scan() {
		line++
		var r Record
		if err := json.Unmarshal(sc.Bytes(), &r); err != nil {
			return nil, fmt.Errorf("trace %s line %d: %w", path, line, err)
		}
		out = append(out, r)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("reading trace %s: %w", path, err)
	}
	return out, nil
}
