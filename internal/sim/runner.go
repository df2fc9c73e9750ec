package sim

import (
	"time"

	"longwar/internal/game"
	"longwar/internal/log"
)

// Outcome classifies how a simulation ended. Exactly one outcome holds
// for any run.
type Outcome int

const (
	// OutcomeWin means a hand emptied and the other player won.
	OutcomeWin Outcome = iota
	// OutcomeCycle means an exact hand-pair state recurred, so the
	// game can never terminate.
	OutcomeCycle
	// OutcomeLimit means the move ceiling was hit before either a win
	// or a cycle was confirmed.
	OutcomeLimit
)

func (o Outcome) String() string {
	switch o {
	case OutcomeWin:
		return "win"
	case OutcomeCycle:
		return "cycle"
	case OutcomeLimit:
		return "limit"
	default:
		return "unknown"
	}
}

// DefaultMaxMoves bounds a single simulation. Cycle detection stores a
// state snapshot per turn, so the ceiling also bounds its memory.
const DefaultMaxMoves = 100000

// Config controls a single simulation run.
type Config struct {
	MaxMoves int             // move ceiling; 0 means DefaultMaxMoves
	Logger   log.EventLogger // nil disables event logging
}

// Result is the outcome of one simulated game.
type Result struct {
	Outcome Outcome
	Winner  int // 1 or 2 for OutcomeWin, 0 otherwise
	Moves   int
	Tricks  int
	Deck    game.Deck
	Elapsed time.Duration
	Err     error // internal fault in a batch task, nil otherwise
}

// Play runs one game on deck until it ends, a cycle is detected, or
// the move ceiling is reached, whichever comes first.
func Play(deck game.Deck, cfg Config) Result {
	maxMoves := cfg.MaxMoves
	if maxMoves <= 0 {
		maxMoves = DefaultMaxMoves
	}

	start := time.Now()
	g := game.NewGame(deck, cfg.Logger)
	g.Start()

	cycled := false
	for !g.Over() && g.Moves < maxMoves {
		if g.SeenState() {
			cycled = true
			break
		}
		g.Turn()
	}

	res := Result{
		Moves:   g.Moves,
		Tricks:  g.Tricks,
		Deck:    deck,
		Elapsed: time.Since(start),
	}
	switch {
	case cycled:
		res.Outcome = OutcomeCycle
		logEvent(cfg.Logger, log.NewCycleEvent(g.Moves))
	case g.Over():
		res.Outcome = OutcomeWin
		res.Winner = g.Winner()
		logEvent(cfg.Logger, log.NewGameOverEvent(g.Moves, res.Winner))
	default:
		res.Outcome = OutcomeLimit
		logEvent(cfg.Logger, log.NewLimitEvent(g.Moves, maxMoves))
	}
	return res
}

func logEvent(l log.EventLogger, e log.GameEvent) {
	if l != nil {
		l.Log(e)
	}
}
