package evaluator

import (
	"errors"
	"fmt"
	"sort"

	"github.com/stealthazblondguy1981/PokerStudTrainer/internal/deck"
)

var (
	// ErrInvalidCardCount is returned when an evaluator receives the wrong
	// number of cards.
	ErrInvalidCardCount = errors.New("invalid card count")

	// ErrDuplicateCard is returned when the same card appears twice in the
	// evaluator input.
	ErrDuplicateCard = errors.New("duplicate card")
)

// Evaluate5 ranks exactly 5 distinct cards. It fails with an invalid-input
// error on a wrong card count or duplicate cards; it never classifies a
// malformed hand.
func Evaluate5(cards []deck.Card) (HandRank, error) {
	if len(cards) != 5 {
		return HandRank{}, fmt.Errorf("%w: want 5, got %d", ErrInvalidCardCount, len(cards))
	}
	if dup, ok := findDuplicate(cards); ok {
		return HandRank{}, fmt.Errorf("%w: %s", ErrDuplicateCard, dup)
	}
	return evaluate5(cards), nil
}

// EvaluateBest finds the strongest 5-card hand among 5 to 7 distinct cards
// (hole cards plus board). It enumerates every 5-card subset and returns
// the maximal HandRank.
func EvaluateBest(cards []deck.Card) (HandRank, error) {
	if len(cards) < 5 || len(cards) > 7 {
		return HandRank{}, fmt.Errorf("%w: want 5 to 7, got %d", ErrInvalidCardCount, len(cards))
	}
	if dup, ok := findDuplicate(cards); ok {
		return HandRank{}, fmt.Errorf("%w: %s", ErrDuplicateCard, dup)
	}

	var best HandRank
	var subset [5]deck.Card
	first := true
	forEachCombination(len(cards), 5, func(idx []int) {
		for i, j := range idx {
			subset[i] = cards[j]
		}
		rank := evaluate5(subset[:])
		if first || rank.Compare(best) > 0 {
			best = rank
			first = false
		}
	})

	return best, nil
}

// evaluate5 classifies 5 distinct cards. Callers have already validated
// the input.
func evaluate5(cards []deck.Card) HandRank {
	ranks := make([]deck.Rank, 5)
	for i, c := range cards {
		ranks[i] = c.Rank
	}
	sort.Slice(ranks, func(i, j int) bool { return ranks[i] > ranks[j] })

	flush := true
	for _, c := range cards[1:] {
		if c.Suit != cards[0].Suit {
			flush = false
			break
		}
	}

	straightHigh := straightHigh(ranks)

	if flush && straightHigh != 0 {
		return HandRank{Category: StraightFlush, Tiebreaks: [5]deck.Rank{straightHigh}}
	}

	// Group ranks by multiplicity: largest group first, rank breaking group
	// ties. The grouped layout drives every remaining category.
	groups := groupRanks(ranks)

	switch {
	case groups[0].count == 4:
		return HandRank{Category: FourOfAKind, Tiebreaks: [5]deck.Rank{groups[0].rank, groups[1].rank}}
	case groups[0].count == 3 && groups[1].count == 2:
		return HandRank{Category: FullHouse, Tiebreaks: [5]deck.Rank{groups[0].rank, groups[1].rank}}
	case flush:
		return HandRank{Category: Flush, Tiebreaks: [5]deck.Rank{ranks[0], ranks[1], ranks[2], ranks[3], ranks[4]}}
	case straightHigh != 0:
		return HandRank{Category: Straight, Tiebreaks: [5]deck.Rank{straightHigh}}
	case groups[0].count == 3:
		return HandRank{Category: ThreeOfAKind, Tiebreaks: [5]deck.Rank{groups[0].rank, groups[1].rank, groups[2].rank}}
	case groups[0].count == 2 && groups[1].count == 2:
		return HandRank{Category: TwoPair, Tiebreaks: [5]deck.Rank{groups[0].rank, groups[1].rank, groups[2].rank}}
	case groups[0].count == 2:
		return HandRank{Category: Pair, Tiebreaks: [5]deck.Rank{groups[0].rank, groups[1].rank, groups[2].rank, groups[3].rank}}
	default:
		return HandRank{Category: HighCard, Tiebreaks: [5]deck.Rank{ranks[0], ranks[1], ranks[2], ranks[3], ranks[4]}}
	}
}

type rankGroup struct {
	rank  deck.Rank
	count int
}

// groupRanks collapses 5 descending-sorted ranks into multiplicity groups,
// ordered by count descending then rank descending.
func groupRanks(sorted []deck.Rank) []rankGroup {
	groups := make([]rankGroup, 0, 5)
	for _, r := range sorted {
		if n := len(groups); n > 0 && groups[n-1].rank == r {
			groups[n-1].count++
		} else {
			groups = append(groups, rankGroup{rank: r, count: 1})
		}
	}
	sort.SliceStable(groups, func(i, j int) bool {
		if groups[i].count != groups[j].count {
			return groups[i].count > groups[j].count
		}
		return groups[i].rank > groups[j].rank
	})
	return groups
}

// straightHigh returns the high card of a 5-card straight, or 0 when the
// sorted ranks do not form one. The wheel (A-2-3-4-5) plays as a five-high
// straight.
func straightHigh(sorted []deck.Rank) deck.Rank {
	distinct := true
	for i := 1; i < len(sorted); i++ {
		if sorted[i] == sorted[i-1] {
			distinct = false
			break
		}
	}
	if !distinct {
		return 0
	}

	if sorted[0]-sorted[4] == 4 {
		return sorted[0]
	}

	// Wheel: ace plays low under 5-4-3-2.
	if sorted[0] == deck.Ace && sorted[1] == deck.Five && sorted[1]-sorted[4] == 3 {
		return deck.Five
	}

	return 0
}

// forEachCombination invokes fn with every k-element index combination of
// {0..n-1} in lexicographic order. The index slice is reused between calls.
func forEachCombination(n, k int, fn func(idx []int)) {
	if k > n {
		return
	}
	idx := make([]int, k)
	for i := range idx {
		idx[i] = i
	}
	for {
		fn(idx)

		// Advance the rightmost index that still has room.
		i := k - 1
		for i >= 0 && idx[i] == n-k+i {
			i--
		}
		if i < 0 {
			return
		}
		idx[i]++
		for j := i + 1; j < k; j++ {
			idx[j] = idx[j-1] + 1
		}
	}
}

func findDuplicate(cards []deck.Card) (deck.Card, bool) {
	seen := make(map[deck.Card]bool, len(cards))
	for _, c := range cards {
		if seen[c] {
			return c, true
		}
		seen[c] = true
	}
	return deck.Card{}, false
}
