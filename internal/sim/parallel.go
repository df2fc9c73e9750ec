package sim

import (
	crand "crypto/rand"
	"encoding/binary"
	"fmt"
	"math/rand"
	"runtime"
	"sync"
	"time"

	"longwar/internal/game"
)

// searchJob is a single simulation unit of work.
type searchJob struct {
	id   int
	seed int64
}

// SearchConfig controls a batch search.
type SearchConfig struct {
	Games    int    // number of freshly shuffled decks to simulate
	Workers  int    // worker count; <= 0 means runtime.NumCPU()
	MaxMoves int    // per-game move ceiling; 0 means DefaultMaxMoves
	LogPath  string // high-score log file, created if absent

	// Decks, when non-nil, supplies the exact decks to simulate
	// instead of shuffling fresh ones. Games is ignored in that case.
	Decks []game.Deck

	// OnRecord is invoked for each new high score, serialized by the
	// recorder lock.
	OnRecord func(Record)

	// Progress, when set together with ProgressEvery, is called after
	// every ProgressEvery completed games. Advisory only.
	ProgressEvery int
	Progress      func(completed int, elapsed time.Duration)
}

// SearchStats summarizes a finished batch.
type SearchStats struct {
	Games   int
	Wins    [2]int
	Cycles  int
	Limits  int
	Errors  int
	Best    int
	Elapsed time.Duration
}

// Search runs the configured number of independent simulations across
// a fixed worker pool and records every new best move count. All
// queued work drains before the pool is released; a high-score log
// write failure stops the search and is returned.
func Search(cfg SearchConfig) (SearchStats, error) {
	numGames := cfg.Games
	if cfg.Decks != nil {
		numGames = len(cfg.Decks)
	}
	if numGames <= 0 {
		return SearchStats{}, fmt.Errorf("search: no games to run")
	}
	workers := cfg.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	rec, err := NewRecorder(cfg.LogPath, cfg.OnRecord)
	if err != nil {
		return SearchStats{}, err
	}
	defer rec.Close()

	start := time.Now()

	// Both channels hold the full batch so workers never block on the
	// collector and shutdown is a plain drain-then-join.
	jobs := make(chan searchJob, numGames)
	results := make(chan Result, numGames)

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for job := range jobs {
				results <- runJob(&cfg, job)
			}
		}()
	}

	// Every task gets its own generator, seeded from a master source,
	// so concurrent games never share a sequence.
	seeds := rand.New(rand.NewSource(entropySeed()))
	for i := 0; i < numGames; i++ {
		jobs <- searchJob{id: i, seed: seeds.Int63()}
	}
	close(jobs)

	go func() {
		wg.Wait()
		close(results)
	}()

	stats := SearchStats{Games: numGames}
	completed := 0
	for res := range results {
		completed++
		stats.tally(res)
		if _, err := rec.Consider(res); err != nil {
			return stats, err
		}
		if cfg.ProgressEvery > 0 && cfg.Progress != nil && completed%cfg.ProgressEvery == 0 {
			cfg.Progress(completed, time.Since(start))
		}
	}

	stats.Best = rec.Best()
	stats.Elapsed = time.Since(start)
	return stats, nil
}

// runJob simulates one game, converting a panic inside the simulation
// into an error-carrying result so one bad task cannot take down the
// batch.
func runJob(cfg *SearchConfig, job searchJob) (res Result) {
	defer func() {
		if p := recover(); p != nil {
			res = Result{Err: fmt.Errorf("game %d: panic: %v", job.id, p)}
		}
	}()

	var deck game.Deck
	if cfg.Decks != nil {
		deck = cfg.Decks[job.id]
	} else {
		deck = game.NewDeck()
		deck.Shuffle(rand.New(rand.NewSource(job.seed)))
	}
	return Play(deck, Config{MaxMoves: cfg.MaxMoves})
}

func (s *SearchStats) tally(res Result) {
	switch {
	case res.Err != nil:
		s.Errors++
	case res.Outcome == OutcomeWin:
		s.Wins[res.Winner-1]++
	case res.Outcome == OutcomeCycle:
		s.Cycles++
	default:
		s.Limits++
	}
}

// entropySeed draws a 63-bit seed from the OS entropy source so that
// separate searches never replay the same deck sequence.
func entropySeed() int64 {
	var b [8]byte
	if _, err := crand.Read(b[:]); err != nil {
		return time.Now().UnixNano()
	}
	return int64(binary.LittleEndian.Uint64(b[:]) &^ (1 << 63))
}
