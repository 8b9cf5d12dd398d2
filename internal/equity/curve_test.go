package equity

import (
	"context"
	"errors"
	"testing"

	"github.com/stealthazblondguy1981/PokerStudTrainer/internal/deck"
)

func heroHand(s string) [2]deck.Card {
	cards := deck.MustParseCards(s)
	return [2]deck.Card{cards[0], cards[1]}
}

func TestCurvePoints(t *testing.T) {
	points, err := Curve(context.Background(), heroHand("AsAh"), 3, 2000, 42)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(points) != 3 {
		t.Fatalf("expected 3 points, got %d", len(points))
	}
	for i, p := range points {
		if p.Opponents != i+1 {
			t.Errorf("point %d: expected %d opponents, got %d", i, i+1, p.Opponents)
		}
		if p.EquityPct <= 0 || p.EquityPct >= 100 {
			t.Errorf("point %d: equity %.1f%% out of range", i, p.EquityPct)
		}
	}
}

func TestCurveDeterministic(t *testing.T) {
	a, err := Curve(context.Background(), heroHand("KdKc"), 4, 1500, 9)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	b, err := Curve(context.Background(), heroHand("KdKc"), 4, 1500, 9)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for i := range a {
		if a[i] != b[i] {
			t.Errorf("point %d differs: %+v vs %+v", i, a[i], b[i])
		}
	}
}

func TestCurveMonotonicForAces(t *testing.T) {
	// More opponents can only hurt pocket aces. Allow a small Monte Carlo
	// wobble between adjacent points.
	points, err := Curve(context.Background(), heroHand("AsAh"), MaxCurveOpponents, DefaultCurveTrials, 1234)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(points) != MaxCurveOpponents {
		t.Fatalf("expected %d points, got %d", MaxCurveOpponents, len(points))
	}

	headsUp := points[0].EquityPct
	if headsUp < 82 || headsUp > 88 {
		t.Errorf("heads-up AA equity %.1f%% outside expected 82-88%%", headsUp)
	}
	for i := 1; i < len(points); i++ {
		if points[i].EquityPct > points[i-1].EquityPct+1.0 {
			t.Errorf("equity rose from %.1f%% to %.1f%% adding opponent %d",
				points[i-1].EquityPct, points[i].EquityPct, points[i].Opponents)
		}
	}
}

func TestCurveInvalidInput(t *testing.T) {
	if _, err := Curve(context.Background(), [2]deck.Card{}, 2, 100, 1); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("expected ErrInvalidInput for zero cards, got %v", err)
	}

	as := deck.MustParseCards("As")[0]
	if _, err := Curve(context.Background(), [2]deck.Card{as, as}, 2, 100, 1); !errors.Is(err, ErrConflictingCards) {
		t.Errorf("expected ErrConflictingCards for duplicate hero cards, got %v", err)
	}

	if _, err := Curve(context.Background(), heroHand("AsAh"), 0, 100, 1); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("expected ErrInvalidInput for 0 opponents, got %v", err)
	}
	if _, err := Curve(context.Background(), heroHand("AsAh"), 9, 100, 1); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("expected ErrInvalidInput for 9 opponents, got %v", err)
	}
}

func TestCurveCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	points, err := Curve(ctx, heroHand("AsAh"), 5, 1000, 1)
	if err != nil {
		t.Fatalf("cancelled sweep must return partial points, got %v", err)
	}
	if len(points) != 0 {
		t.Errorf("expected no points after immediate cancel, got %d", len(points))
	}
}

func TestEquityPercent(t *testing.T) {
	tests := []struct {
		wins, ties, trials int
		expected           float64
	}{
		{85, 0, 100, 85},
		{0, 100, 100, 50}, // ties credited at half weight
		{50, 10, 100, 55},
		{0, 0, 0, 0},
	}
	for _, tt := range tests {
		if got := EquityPercent(tt.wins, tt.ties, tt.trials); got != tt.expected {
			t.Errorf("EquityPercent(%d, %d, %d): expected %.1f, got %.1f",
				tt.wins, tt.ties, tt.trials, got, tt.expected)
		}
	}
}
