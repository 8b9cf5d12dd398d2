package deck

import (
	rand "math/rand/v2"
)

// Deck represents an ordered deck of playing cards. A fresh deck holds the
// 52 canonical cards in suit-major order; cards are consumed by Deal and
// excluded up front by Remove, never regenerated mid-trial.
type Deck struct {
	cards []Card
}

// New creates a standard 52-card deck in canonical order
func New() *Deck {
	d := &Deck{cards: make([]Card, 0, 52)}
	for suit := Spades; suit <= Clubs; suit++ {
		for rank := Two; rank <= Ace; rank++ {
			d.cards = append(d.cards, NewCard(rank, suit))
		}
	}
	return d
}

// Remove performs a set difference, dropping every listed card from the
// deck. Removing a card that is not present is a no-op.
func (d *Deck) Remove(cards ...Card) {
	if len(cards) == 0 {
		return
	}
	drop := make(map[Card]bool, len(cards))
	for _, c := range cards {
		drop[c] = true
	}
	kept := d.cards[:0]
	for _, c := range d.cards {
		if !drop[c] {
			kept = append(kept, c)
		}
	}
	d.cards = kept
}

// Shuffle randomizes the order of the remaining cards using Fisher-Yates
// driven by the provided RNG
func (d *Deck) Shuffle(rng *rand.Rand) {
	ShuffleCards(d.cards, rng)
}

// ShuffleCards runs a Fisher-Yates shuffle over a card slice in place.
// Simulation trials reuse a working copy of the remaining deck, so the
// shuffle works on bare slices rather than requiring a Deck.
func ShuffleCards(cards []Card, rng *rand.Rand) {
	for i := len(cards) - 1; i > 0; i-- {
		j := rng.IntN(i + 1)
		cards[i], cards[j] = cards[j], cards[i]
	}
}

// Deal removes and returns the top card from the deck
func (d *Deck) Deal() (Card, bool) {
	if len(d.cards) == 0 {
		return Card{}, false
	}
	card := d.cards[0]
	d.cards = d.cards[1:]
	return card, true
}

// DealN deals up to n cards from the front of the deck
func (d *Deck) DealN(n int) []Card {
	if n > len(d.cards) {
		n = len(d.cards)
	}
	cards := make([]Card, n)
	copy(cards, d.cards[:n])
	d.cards = d.cards[n:]
	return cards
}

// Cards returns the remaining cards in order. The returned slice aliases
// the deck; callers must not mutate it.
func (d *Deck) Cards() []Card {
	return d.cards
}

// CardsRemaining returns the number of cards left in the deck
func (d *Deck) CardsRemaining() int {
	return len(d.cards)
}

// IsEmpty returns true if the deck has no cards left
func (d *Deck) IsEmpty() bool {
	return len(d.cards) == 0
}
