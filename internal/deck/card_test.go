package deck

import "testing"

func TestParseCards(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []Card
		wantErr  bool
	}{
		{
			name:  "royal flush",
			input: "AsKsQsJsTs",
			expected: []Card{
				{Suit: Spades, Rank: Ace},
				{Suit: Spades, Rank: King},
				{Suit: Spades, Rank: Queen},
				{Suit: Spades, Rank: Jack},
				{Suit: Spades, Rank: Ten},
			},
		},
		{
			name:  "mixed suits",
			input: "AhKdQcJs9s",
			expected: []Card{
				{Suit: Hearts, Rank: Ace},
				{Suit: Diamonds, Rank: King},
				{Suit: Clubs, Rank: Queen},
				{Suit: Spades, Rank: Jack},
				{Suit: Spades, Rank: Nine},
			},
		},
		{
			name:  "case insensitive",
			input: "asKHqDjc",
			expected: []Card{
				{Suit: Spades, Rank: Ace},
				{Suit: Hearts, Rank: King},
				{Suit: Diamonds, Rank: Queen},
				{Suit: Clubs, Rank: Jack},
			},
		},
		{
			name:  "spaces ignored",
			input: "As Kd",
			expected: []Card{
				{Suit: Spades, Rank: Ace},
				{Suit: Diamonds, Rank: King},
			},
		},
		{
			name:     "empty string",
			input:    "",
			expected: []Card{},
		},
		{
			name:    "invalid rank",
			input:   "XsKs",
			wantErr: true,
		},
		{
			name:    "invalid suit",
			input:   "AxKs",
			wantErr: true,
		},
		{
			name:    "odd length",
			input:   "AsK",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cards, err := ParseCards(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error, got %v", cards)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if len(cards) != len(tt.expected) {
				t.Fatalf("expected %d cards, got %d", len(tt.expected), len(cards))
			}
			for i, card := range cards {
				if card != tt.expected[i] {
					t.Errorf("card %d: expected %v, got %v", i, tt.expected[i], card)
				}
			}
		})
	}
}

func TestParseCardInvalid(t *testing.T) {
	for _, input := range []string{"", "A", "Asd", "1s", "Az"} {
		card, err := ParseCard(input)
		if err == nil {
			t.Errorf("ParseCard(%q): expected error", input)
		}
		if card != (Card{}) {
			t.Errorf("ParseCard(%q): expected zero card on failure, got %v", input, card)
		}
		if card.Valid() {
			t.Errorf("ParseCard(%q): failed parse must not yield a valid card", input)
		}
	}
}

func TestCardString(t *testing.T) {
	tests := []struct {
		card     Card
		expected string
	}{
		{Card{Suit: Spades, Rank: Ace}, "A♠"},
		{Card{Suit: Hearts, Rank: Ten}, "T♥"},
		{Card{Suit: Diamonds, Rank: Two}, "2♦"},
		{Card{Suit: Clubs, Rank: Queen}, "Q♣"},
	}
	for _, tt := range tests {
		if got := tt.card.String(); got != tt.expected {
			t.Errorf("String(): expected %q, got %q", tt.expected, got)
		}
	}
}

func TestCardIsRed(t *testing.T) {
	if !(Card{Suit: Hearts, Rank: Ace}).IsRed() {
		t.Error("hearts should be red")
	}
	if !(Card{Suit: Diamonds, Rank: Ace}).IsRed() {
		t.Error("diamonds should be red")
	}
	if (Card{Suit: Spades, Rank: Ace}).IsRed() {
		t.Error("spades should not be red")
	}
	if (Card{Suit: Clubs, Rank: Ace}).IsRed() {
		t.Error("clubs should not be red")
	}
}
