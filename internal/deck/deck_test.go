package deck

import (
	"testing"

	"github.com/stealthazblondguy1981/PokerStudTrainer/internal/randutil"
)

func TestNewDeckHas52UniqueCards(t *testing.T) {
	d := New()
	if d.CardsRemaining() != 52 {
		t.Fatalf("expected 52 cards, got %d", d.CardsRemaining())
	}

	seen := make(map[Card]bool)
	for _, c := range d.Cards() {
		if seen[c] {
			t.Errorf("duplicate card in fresh deck: %v", c)
		}
		seen[c] = true
	}
}

func TestNewDeckCanonicalOrder(t *testing.T) {
	// Two fresh decks are identical; the canonical order is fixed.
	a, b := New(), New()
	for i := range a.Cards() {
		if a.Cards()[i] != b.Cards()[i] {
			t.Fatalf("canonical order differs at %d: %v vs %v", i, a.Cards()[i], b.Cards()[i])
		}
	}
	if a.Cards()[0] != (Card{Rank: Two, Suit: Spades}) {
		t.Errorf("expected 2♠ first, got %v", a.Cards()[0])
	}
}

func TestRemove(t *testing.T) {
	d := New()
	removed := MustParseCards("AsKhTd2c")
	d.Remove(removed...)

	if d.CardsRemaining() != 48 {
		t.Fatalf("expected 48 cards after removal, got %d", d.CardsRemaining())
	}
	for _, want := range removed {
		for _, c := range d.Cards() {
			if c == want {
				t.Errorf("removed card %v still present", want)
			}
		}
	}

	// Removing again (or removing absent cards) never grows the deck.
	d.Remove(removed...)
	if d.CardsRemaining() != 48 {
		t.Errorf("repeat removal changed deck size to %d", d.CardsRemaining())
	}
}

func TestShuffleDeterministic(t *testing.T) {
	a, b := New(), New()
	a.Shuffle(randutil.New(42))
	b.Shuffle(randutil.New(42))

	for i := range a.Cards() {
		if a.Cards()[i] != b.Cards()[i] {
			t.Fatalf("same seed produced different shuffles at %d", i)
		}
	}

	c := New()
	c.Shuffle(randutil.New(43))
	same := true
	for i := range a.Cards() {
		if a.Cards()[i] != c.Cards()[i] {
			same = false
			break
		}
	}
	if same {
		t.Error("different seeds produced identical shuffles")
	}
}

func TestDeal(t *testing.T) {
	d := New()
	first := d.Cards()[0]

	card, ok := d.Deal()
	if !ok || card != first {
		t.Fatalf("expected %v from the front, got %v (ok=%v)", first, card, ok)
	}
	if d.CardsRemaining() != 51 {
		t.Errorf("expected 51 remaining, got %d", d.CardsRemaining())
	}

	cards := d.DealN(51)
	if len(cards) != 51 {
		t.Fatalf("expected 51 dealt, got %d", len(cards))
	}
	if !d.IsEmpty() {
		t.Error("deck should be empty")
	}
	if _, ok := d.Deal(); ok {
		t.Error("dealing from an empty deck should fail")
	}
}
