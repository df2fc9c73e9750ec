package log

import "fmt"

// EventType identifies the kind of game event.
type EventType int

const (
	EventPlay EventType = iota
	EventPenaltyStart
	EventTrick
	EventGameOver
	EventCycle
	EventLimit
)

// String returns the wire name of the event type.
func (t EventType) String() string {
	switch t {
	case EventPlay:
		return "play"
	case EventPenaltyStart:
		return "penalty"
	case EventTrick:
		return "trick"
	case EventGameOver:
		return "game_over"
	case EventCycle:
		return "cycle"
	case EventLimit:
		return "limit"
	default:
		return "unknown"
	}
}

// GameEvent is a single entry in a game's event stream.
type GameEvent struct {
	Seq     int
	Move    int
	Player  int // 0-based player index
	Type    EventType
	Card    string
	Details string
}

// playerName returns "P1" or "P2" for display.
func playerName(p int) string {
	return fmt.Sprintf("P%d", p+1)
}

// --- Helper constructors for common events ---

func NewPlayEvent(move, player int, card string) GameEvent {
	return GameEvent{
		Move:    move,
		Player:  player,
		Type:    EventPlay,
		Card:    card,
		Details: fmt.Sprintf("%s plays %s", playerName(player), card),
	}
}

func NewPenaltyStartEvent(move, payer, penalty int) GameEvent {
	return GameEvent{
		Move:    move,
		Player:  payer,
		Type:    EventPenaltyStart,
		Details: fmt.Sprintf("face card! %s must pay %d", playerName(payer), penalty),
	}
}

func NewTrickEvent(move, winner, trick, pileSize int) GameEvent {
	return GameEvent{
		Move:    move,
		Player:  winner,
		Type:    EventTrick,
		Details: fmt.Sprintf("trick %d: %s takes the pile (%d cards)", trick, playerName(winner), pileSize),
	}
}

// NewGameOverEvent takes the 1-based winner id used in results.
func NewGameOverEvent(move, winner int) GameEvent {
	return GameEvent{
		Move:    move,
		Player:  winner - 1,
		Type:    EventGameOver,
		Details: fmt.Sprintf("game over: Player %d wins", winner),
	}
}

func NewCycleEvent(move int) GameEvent {
	return GameEvent{
		Move:    move,
		Type:    EventCycle,
		Details: "cycle detected: state repeats, game cannot terminate",
	}
}

func NewLimitEvent(move, limit int) GameEvent {
	return GameEvent{
		Move:    move,
		Type:    EventLimit,
		Details: fmt.Sprintf("move limit reached (%d)", limit),
	}
}
