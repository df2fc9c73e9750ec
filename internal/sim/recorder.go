package sim

import (
	"bufio"
	"fmt"
	"os"
	"sync"

	"longwar/internal/game"
)

// Record is one accepted line of the high-score log.
type Record struct {
	Moves  int
	Tricks int
	Winner int
	Deck   game.Deck
}

// Recorder tracks the best move count seen so far and appends a line
// to the high-score log whenever it improves. The whole
// compare-update-append sequence runs under one lock so that two
// concurrent results can never interleave a stale comparison with a
// write.
type Recorder struct {
	mu       sync.Mutex
	best     int
	f        *os.File
	w        *bufio.Writer
	onRecord func(Record)
}

// NewRecorder opens (or creates) the append-only log at path.
// onRecord, if non-nil, is called for each accepted record while the
// recorder lock is still held, so callbacks observe records in strictly
// increasing order.
func NewRecorder(path string, onRecord func(Record)) (*Recorder, error) {
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open high-score log: %w", err)
	}
	return &Recorder{f: f, w: bufio.NewWriter(f), onRecord: onRecord}, nil
}

// Consider records res if it is a won game with a move count strictly
// above the current best. Ties do not replace the record. It reports
// whether a line was written.
func (r *Recorder) Consider(res Result) (bool, error) {
	if res.Outcome != OutcomeWin || res.Err != nil {
		return false, nil
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if res.Moves <= r.best {
		return false, nil
	}
	r.best = res.Moves

	rec := Record{Moves: res.Moves, Tricks: res.Tricks, Winner: res.Winner, Deck: res.Deck}
	if _, err := fmt.Fprintf(r.w, "%d,%d,%d,%s\n", rec.Moves, rec.Tricks, rec.Winner, rec.Deck); err != nil {
		return false, fmt.Errorf("append high-score log: %w", err)
	}
	if err := r.w.Flush(); err != nil {
		return false, fmt.Errorf("flush high-score log: %w", err)
	}

	if r.onRecord != nil {
		r.onRecord(rec)
	}
	return true, nil
}

// Best returns the highest recorded move count.
func (r *Recorder) Best() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.best
}

// Close flushes and closes the log file.
func (r *Recorder) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.w.Flush(); err != nil {
		r.f.Close()
		return err
	}
	return r.f.Close()
}
