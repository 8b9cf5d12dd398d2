package evaluator

import (
	"github.com/stealthazblondguy1981/PokerStudTrainer/internal/deck"
)

// Category enumerates hand categories ordered from weakest to strongest.
type Category uint8

const (
	HighCard Category = iota
	Pair
	TwoPair
	ThreeOfAKind
	Straight
	Flush
	FullHouse
	FourOfAKind
	StraightFlush
)

// String returns a human-readable category name
func (c Category) String() string {
	switch c {
	case HighCard:
		return "High Card"
	case Pair:
		return "One Pair"
	case TwoPair:
		return "Two Pair"
	case ThreeOfAKind:
		return "Three of a Kind"
	case Straight:
		return "Straight"
	case Flush:
		return "Flush"
	case FullHouse:
		return "Full House"
	case FourOfAKind:
		return "Four of a Kind"
	case StraightFlush:
		return "Straight Flush"
	default:
		return "Unknown"
	}
}

// HandRank represents the strength of a 5-card hand as a fixed-width tuple:
// the category followed by up to five tiebreak ranks, highest-significance
// first. Unused tiebreak slots hold zero, which sorts below every valid
// rank, so comparison is plain lexicographic with no length ambiguity.
type HandRank struct {
	Category  Category
	Tiebreaks [5]deck.Rank
}

// Compare returns 1 if h beats other, -1 if other beats h, and 0 on an
// exact tie at every compared position.
func (h HandRank) Compare(other HandRank) int {
	if h.Category != other.Category {
		if h.Category > other.Category {
			return 1
		}
		return -1
	}
	for i := range h.Tiebreaks {
		if h.Tiebreaks[i] != other.Tiebreaks[i] {
			if h.Tiebreaks[i] > other.Tiebreaks[i] {
				return 1
			}
			return -1
		}
	}
	return 0
}

// String returns the readable name of the hand
func (h HandRank) String() string {
	return h.Category.String()
}
