package game

import (
	"longwar/internal/log"
)

// Player indices. Results and log lines use the 1-based ids.
const (
	Player1 = 0
	Player2 = 1
)

// Game is the deterministic state machine for a single penalty-war
// game. A Game is bound to one deck; Start splits the deck into the
// two hands and resets every derived field, so a Game may be restarted
// after reassigning Deck. Transitions are pure functions of the state,
// which is what makes cycle detection sound: if the exact hand pair
// ever recurs, the game can never terminate.
type Game struct {
	Deck Deck

	Hands [2][]Rank
	Pile  []Rank

	Active           int
	Moves            int
	Tricks           int
	PenaltyActive    bool
	RemainingPenalty int

	logger log.EventLogger
	seen   map[string]struct{}
}

// NewGame creates a game bound to deck. logger may be nil, in which
// case no events are emitted.
func NewGame(deck Deck, logger log.EventLogger) *Game {
	return &Game{Deck: deck, logger: logger}
}

// Start deals the deck and resets all derived state. Player 1 takes
// deck positions [0, 26) and leads the first turn. The hands are
// copies; the deck itself is never mutated by play.
func (g *Game) Start() {
	mid := len(g.Deck) / 2
	g.Hands[Player1] = append(g.Hands[Player1][:0], g.Deck[:mid]...)
	g.Hands[Player2] = append(g.Hands[Player2][:0], g.Deck[mid:]...)
	g.Pile = g.Pile[:0]
	g.Active = Player1
	g.Moves = 0
	g.Tricks = 0
	g.PenaltyActive = false
	g.RemainingPenalty = 0
	g.seen = make(map[string]struct{})
}

// Over reports whether either hand is empty.
func (g *Game) Over() bool {
	return len(g.Hands[Player1]) == 0 || len(g.Hands[Player2]) == 0
}

// Winner returns the 1-based id of the player still holding cards once
// the game is over, or 0 while it is not.
func (g *Game) Winner() int {
	if !g.Over() {
		return 0
	}
	if len(g.Hands[Player1]) == 0 {
		return 2
	}
	return 1
}

// Turn plays the front card of the active player's hand. Callers must
// check Over before each call; a turn on an empty hand is a no-op.
func (g *Game) Turn() {
	hand := g.Hands[g.Active]
	if len(hand) == 0 {
		return
	}

	card := hand[0]
	g.Hands[g.Active] = hand[1:]
	g.Pile = append(g.Pile, card)
	g.Moves++
	g.log(log.NewPlayEvent(g.Moves, g.Active, card.Name()))

	switch {
	case card > RankPlain:
		// A face card starts (or restarts) a penalty; the opponent
		// must pay it off.
		g.PenaltyActive = true
		g.RemainingPenalty = int(card)
		g.switchPlayer()
		g.log(log.NewPenaltyStartEvent(g.Moves, g.Active, g.RemainingPenalty))
	case g.PenaltyActive:
		g.RemainingPenalty--
		if g.RemainingPenalty == 0 {
			// Trick resolves: the player who paid off the last penalty
			// card collects the pile in order and keeps the turn.
			g.Tricks++
			g.PenaltyActive = false
			g.log(log.NewTrickEvent(g.Moves, g.Active, g.Tricks, len(g.Pile)))
			g.Hands[g.Active] = append(g.Hands[g.Active], g.Pile...)
			g.Pile = g.Pile[:0]
		} else {
			g.switchPlayer()
		}
	default:
		g.switchPlayer()
	}
}

// SeenState records the current (hand1, hand2) snapshot and reports
// whether it has occurred before. The set is unbounded per game; the
// driver's move ceiling is what keeps it tractable.
func (g *Game) SeenState() bool {
	key := g.stateKey()
	if _, ok := g.seen[key]; ok {
		return true
	}
	g.seen[key] = struct{}{}
	return false
}

func (g *Game) stateKey() string {
	buf := make([]byte, 0, len(g.Hands[Player1])+len(g.Hands[Player2])+1)
	for _, r := range g.Hands[Player1] {
		buf = append(buf, byte(r))
	}
	buf = append(buf, 0xff) // hand boundary, distinct from any rank
	for _, r := range g.Hands[Player2] {
		buf = append(buf, byte(r))
	}
	return string(buf)
}

func (g *Game) switchPlayer() {
	g.Active = 1 - g.Active
}

func (g *Game) log(e log.GameEvent) {
	if g.logger != nil {
		g.logger.Log(e)
	}
}
