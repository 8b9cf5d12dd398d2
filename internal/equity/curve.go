package equity

import (
	"context"
	"fmt"

	"github.com/stealthazblondguy1981/PokerStudTrainer/internal/deck"
)

// MaxCurveOpponents bounds the opponent sweep; a 9-handed table is the
// hero plus eight opponents.
const MaxCurveOpponents = 8

// DefaultCurveTrials is the per-point trial count used when none is given.
// Curve points trade precision for speed so the sweep stays interactive.
const DefaultCurveTrials = 2500

// tieSplitWays approximates the number of ways a tied pot splits when
// folding tie counts into a single equity percentage. Two-way splits
// dominate in practice, so ties are credited at half weight. This is a
// deliberate heuristic, not exact tie accounting.
const tieSplitWays = 2.0

// CurvePoint is the hero's estimated equity against a given number of
// fully-unknown opponents.
type CurvePoint struct {
	Opponents int
	EquityPct float64
}

// Curve sweeps opponent counts 1..maxOpponents, running an independent
// simulation per point with the hero's two known cards fixed and an empty
// board. Each point's equity percent is
// (wins + ties/tieSplitWays) / trials * 100.
//
// Cancelling ctx returns the points completed so far.
func Curve(ctx context.Context, hero [2]deck.Card, maxOpponents, trialsPerPoint int, seed int64) ([]CurvePoint, error) {
	if !hero[0].Valid() || !hero[1].Valid() {
		return nil, fmt.Errorf("%w: hero needs two known hole cards", ErrInvalidInput)
	}
	if hero[0] == hero[1] {
		return nil, fmt.Errorf("%w: hero holds %s twice", ErrConflictingCards, hero[0])
	}
	if maxOpponents < 1 || maxOpponents > MaxCurveOpponents {
		return nil, fmt.Errorf("%w: opponent count %d outside 1..%d", ErrInvalidInput, maxOpponents, MaxCurveOpponents)
	}
	if trialsPerPoint <= 0 {
		trialsPerPoint = DefaultCurveTrials
	}

	points := make([]CurvePoint, 0, maxOpponents)
	for opponents := 1; opponents <= maxOpponents; opponents++ {
		if ctx.Err() != nil {
			return points, nil
		}

		players := make([]Player, 0, opponents+1)
		players = append(players, Player{Name: "hero", Hole: hero[:], Active: true, Hero: true})
		for i := 0; i < opponents; i++ {
			players = append(players, Player{Name: fmt.Sprintf("opp%d", i+1), Active: true})
		}

		// Each point gets its own deterministic seed so points are
		// independent but the whole sweep reproduces from one seed.
		cfg := Config{Trials: trialsPerPoint, Seed: seed + int64(opponents)}
		result, err := Simulate(ctx, players, nil, nil, cfg)
		if err != nil {
			return nil, fmt.Errorf("curve point %d: %w", opponents, err)
		}
		if result.Trials == 0 {
			return points, nil
		}

		points = append(points, CurvePoint{
			Opponents: opponents,
			EquityPct: EquityPercent(result.Wins[0], result.Ties[0], result.Trials),
		})
	}

	return points, nil
}

// EquityPercent folds win and tie counts into a single percentage using
// the tieSplitWays approximation.
func EquityPercent(wins, ties, trials int) float64 {
	if trials == 0 {
		return 0
	}
	return (float64(wins) + float64(ties)/tieSplitWays) / float64(trials) * 100
}
