package game

import (
	"math/rand"
	"strings"
)

// DeckSize is the number of cards in a full deck.
const DeckSize = 52

// Rank identifies a card. 0 is a plain card; 1-4 are the face cards
// J, Q, K, A, each demanding a penalty equal to its rank.
type Rank uint8

const (
	RankPlain Rank = 0
	RankJack  Rank = 1
	RankQueen Rank = 2
	RankKing  Rank = 3
	RankAce   Rank = 4
)

// faceCount is how many of each face rank a valid deck contains.
const faceCount = 4

// Name returns a display name for the rank.
func (r Rank) Name() string {
	switch r {
	case RankJack:
		return "Jack"
	case RankQueen:
		return "Queen"
	case RankKing:
		return "King"
	case RankAce:
		return "Ace"
	default:
		return "plain card"
	}
}

func (r Rank) glyph() byte {
	switch r {
	case RankJack:
		return 'J'
	case RankQueen:
		return 'Q'
	case RankKing:
		return 'K'
	case RankAce:
		return 'A'
	default:
		return '-'
	}
}

// Deck is an ordered arrangement of 52 ranks.
type Deck []Rank

// NewDeck returns an all-plain deck of 52 cards.
func NewDeck() Deck {
	return make(Deck, DeckSize)
}

// Shuffle resets the deck and places four face cards of each rank into
// random empty slots, rejection-sampling occupied positions. The result
// is uniform over arrangements with exactly four of each face rank.
func (d Deck) Shuffle(rng *rand.Rand) {
	for i := range d {
		d[i] = RankPlain
	}
	for r := RankJack; r <= RankAce; r++ {
		for n := 0; n < faceCount; n++ {
			pos := rng.Intn(len(d))
			for d[pos] != RankPlain {
				pos = rng.Intn(len(d))
			}
			d[pos] = r
		}
	}
}

// ParseDeck builds a deck from its string form. Parsing is lenient:
// any character other than J, Q, K, A counts as a plain card, and a
// short string leaves the remaining slots plain. Use Valid to check
// the composition before simulating.
func ParseDeck(s string) Deck {
	d := NewDeck()
	for i := 0; i < len(s) && i < DeckSize; i++ {
		switch s[i] {
		case 'J':
			d[i] = RankJack
		case 'Q':
			d[i] = RankQueen
		case 'K':
			d[i] = RankKing
		case 'A':
			d[i] = RankAce
		}
	}
	return d
}

// Valid reports whether the deck has 52 cards with exactly four of
// each face rank.
func (d Deck) Valid() bool {
	if len(d) != DeckSize {
		return false
	}
	var counts [RankAce + 1]int
	for _, r := range d {
		if r > RankAce {
			return false
		}
		counts[r]++
	}
	for r := RankJack; r <= RankAce; r++ {
		if counts[r] != faceCount {
			return false
		}
	}
	return true
}

// Clone returns an independent copy of the deck.
func (d Deck) Clone() Deck {
	c := make(Deck, len(d))
	copy(c, d)
	return c
}

// String renders the deck in its canonical 52-character form:
// '-' for plain cards and J, Q, K, A for face cards.
func (d Deck) String() string {
	var sb strings.Builder
	sb.Grow(len(d))
	for _, r := range d {
		sb.WriteByte(r.glyph())
	}
	return sb.String()
}
