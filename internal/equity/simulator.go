// Package equity estimates win/tie probabilities for partially-specified
// hold'em hands by Monte Carlo sampling of the remaining deck.
package equity

import (
	"context"
	"errors"
	"fmt"
	"io"
	rand "math/rand/v2"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"golang.org/x/sync/errgroup"

	"github.com/stealthazblondguy1981/PokerStudTrainer/internal/deck"
	"github.com/stealthazblondguy1981/PokerStudTrainer/internal/evaluator"
	"github.com/stealthazblondguy1981/PokerStudTrainer/internal/randutil"
)

var (
	// ErrConflictingCards is returned when the same card is assigned twice
	// across hole cards, the board, and dead cards. This is a caller
	// contract violation, distinct from every degenerate result.
	ErrConflictingCards = errors.New("conflicting card assignment")

	// ErrInvalidInput is returned for structurally invalid simulation input
	// (too many hole or board cards, malformed card values).
	ErrInvalidInput = errors.New("invalid simulation input")
)

// Player is one participant in a simulation. Unknown hole slots (fewer than
// two known cards) are completed per trial. Inactive players are excluded
// from dealing and comparison but keep a zero-count result slot.
type Player struct {
	Name   string
	Hole   []deck.Card // 0-2 known hole cards
	Active bool
	Hero   bool
}

// Result holds per-player win and tie counts over the completed trials.
// For every trial exactly one player's win counter is incremented, or each
// member of the tied winning set gets a tie increment, so
// sum(Wins) <= Trials always holds.
type Result struct {
	Wins   []int
	Ties   []int
	Trials int
}

// Config controls a simulation run.
type Config struct {
	Trials  int
	Seed    int64
	Workers int // <= 1 runs the single-threaded reference stream

	Logger *log.Logger
	Clock  quartz.Clock // drives progress ticks; nil uses the real clock

	// OnProgress, when set, is invoked periodically with completed and
	// total trial counts while the simulation runs.
	OnProgress       func(done, total int)
	ProgressInterval time.Duration
}

func (c *Config) withDefaults() Config {
	out := *c
	if out.Workers <= 1 {
		out.Workers = 1
	}
	if out.Logger == nil {
		out.Logger = log.New(io.Discard)
	}
	if out.Clock == nil {
		out.Clock = quartz.NewReal()
	}
	if out.ProgressInterval <= 0 {
		out.ProgressInterval = 100 * time.Millisecond
	}
	return out
}

// Simulate estimates win/tie counts for the given players over cfg.Trials
// simulated run-outs of the unknown cards.
//
// The board holds 0-5 known community cards and dead lists cards removed
// from play. An insufficient remaining deck is reported as a zero-trial
// Result with a nil error. Cancelling ctx returns partial counts with
// Trials set to the number of completed trials. Results are bit-identical
// for a fixed seed, input, and worker count.
func Simulate(ctx context.Context, players []Player, board, dead []deck.Card, cfg Config) (Result, error) {
	cfg = cfg.withDefaults()

	result := Result{
		Wins: make([]int, len(players)),
		Ties: make([]int, len(players)),
	}

	if len(board) > 5 {
		return Result{}, fmt.Errorf("%w: board has %d cards", ErrInvalidInput, len(board))
	}

	active := make([]int, 0, len(players))
	for i, p := range players {
		if len(p.Hole) > 2 {
			return Result{}, fmt.Errorf("%w: player %d has %d hole cards", ErrInvalidInput, i, len(p.Hole))
		}
		if p.Active {
			active = append(active, i)
		}
	}
	if len(active) == 0 || cfg.Trials <= 0 {
		return result, nil
	}

	used, err := collectUsedCards(players, board, dead)
	if err != nil {
		return Result{}, err
	}

	d := deck.New()
	d.Remove(used...)

	// Cards required to complete every unknown slot in a single trial.
	needed := 5 - len(board)
	for _, i := range active {
		needed += 2 - len(players[i].Hole)
	}
	if d.CardsRemaining() < needed {
		cfg.Logger.Warn("insufficient deck for simulation",
			"remaining", d.CardsRemaining(), "needed", needed)
		return result, nil
	}

	available := make([]deck.Card, d.CardsRemaining())
	copy(available, d.Cards())

	if cfg.Workers == 1 {
		return runTrials(ctx, players, active, board, available, cfg, randutil.New(cfg.Seed), cfg.Trials, nil)
	}
	return runSharded(ctx, players, active, board, available, cfg)
}

// runSharded splits trials across workers with per-shard RNG substreams and
// sums the partial results. Determinism per (seed, worker count) holds
// because shard sizes and seeds depend on nothing else.
func runSharded(ctx context.Context, players []Player, active []int, board, available []deck.Card, cfg Config) (Result, error) {
	perShard := cfg.Trials / cfg.Workers
	remainder := cfg.Trials % cfg.Workers

	var done atomic.Int64
	partials := make([]Result, cfg.Workers)

	g, gctx := errgroup.WithContext(ctx)
	for w := 0; w < cfg.Workers; w++ {
		shardTrials := perShard
		if w < remainder {
			shardTrials++
		}
		rng := randutil.Shard(cfg.Seed, w)
		g.Go(func() error {
			partial, err := runTrials(gctx, players, active, board, available, cfg, rng, shardTrials, &done)
			partials[w] = partial
			return err
		})
	}

	stopProgress := startProgress(ctx, cfg, &done)
	err := g.Wait()
	stopProgress()
	if err != nil {
		return Result{}, err
	}

	total := Result{
		Wins: make([]int, len(players)),
		Ties: make([]int, len(players)),
	}
	for _, partial := range partials {
		for i := range players {
			total.Wins[i] += partial.Wins[i]
			total.Ties[i] += partial.Ties[i]
		}
		total.Trials += partial.Trials
	}
	return total, nil
}

// runTrials executes trials on a single RNG stream. done, when non-nil, is
// advanced for shared progress reporting; the single-worker path passes nil
// and reports off its own counter.
func runTrials(ctx context.Context, players []Player, active []int, board, available []deck.Card, cfg Config, rng *rand.Rand, trials int, done *atomic.Int64) (Result, error) {
	result := Result{
		Wins: make([]int, len(players)),
		Ties: make([]int, len(players)),
	}

	var local atomic.Int64
	var stopProgress func()
	if done == nil {
		done = &local
		stopProgress = startProgress(ctx, cfg, done)
		defer stopProgress()
	}

	work := make([]deck.Card, len(available))
	holes := make([][2]deck.Card, len(players))
	fullBoard := make([]deck.Card, 5)
	seven := make([]deck.Card, 7)
	ranks := make([]evaluator.HandRank, len(players))

	for trial := 0; trial < trials; trial++ {
		if ctx.Err() != nil {
			break // early abort: report completed trials only
		}

		copy(work, available)
		deck.ShuffleCards(work, rng)
		next := 0

		// Deal missing hole cards in player order, then the board.
		for _, i := range active {
			copy(holes[i][:], players[i].Hole)
			for j := len(players[i].Hole); j < 2; j++ {
				holes[i][j] = work[next]
				next++
			}
		}
		copy(fullBoard, board)
		for j := len(board); j < 5; j++ {
			fullBoard[j] = work[next]
			next++
		}

		for _, i := range active {
			seven[0], seven[1] = holes[i][0], holes[i][1]
			copy(seven[2:], fullBoard)
			rank, err := evaluator.EvaluateBest(seven)
			if err != nil {
				return Result{}, fmt.Errorf("evaluating player %d: %w", i, err)
			}
			ranks[i] = rank
		}

		best := ranks[active[0]]
		for _, i := range active[1:] {
			if ranks[i].Compare(best) > 0 {
				best = ranks[i]
			}
		}

		winners := 0
		for _, i := range active {
			if ranks[i].Compare(best) == 0 {
				winners++
			}
		}

		for _, i := range active {
			if ranks[i].Compare(best) != 0 {
				continue
			}
			if winners == 1 {
				result.Wins[i]++
			} else {
				result.Ties[i]++
			}
		}

		result.Trials++
		done.Add(1)
	}

	return result, nil
}

// startProgress begins periodic OnProgress callbacks on the configured
// clock. The returned stop function fires a final callback so callers
// always observe the completed count.
func startProgress(ctx context.Context, cfg Config, done *atomic.Int64) func() {
	if cfg.OnProgress == nil {
		return func() {}
	}

	tickCtx, cancel := context.WithCancel(ctx)
	cfg.Clock.TickerFunc(tickCtx, cfg.ProgressInterval, func() error {
		cfg.OnProgress(int(done.Load()), cfg.Trials)
		return nil
	}, "equity-progress")

	return func() {
		cancel()
		cfg.OnProgress(int(done.Load()), cfg.Trials)
	}
}

// collectUsedCards gathers every known card and rejects literal duplicates
// across players, board, and dead cards.
func collectUsedCards(players []Player, board, dead []deck.Card) ([]deck.Card, error) {
	used := make([]deck.Card, 0, len(board)+len(dead)+2*len(players))
	seen := make(map[deck.Card]bool)

	add := func(c deck.Card, where string) error {
		if !c.Valid() {
			return fmt.Errorf("%w: invalid card in %s", ErrInvalidInput, where)
		}
		if seen[c] {
			return fmt.Errorf("%w: %s appears twice (%s)", ErrConflictingCards, c, where)
		}
		seen[c] = true
		used = append(used, c)
		return nil
	}

	for _, c := range board {
		if err := add(c, "board"); err != nil {
			return nil, err
		}
	}
	for _, c := range dead {
		if err := add(c, "dead cards"); err != nil {
			return nil, err
		}
	}
	for i, p := range players {
		for _, c := range p.Hole {
			if err := add(c, fmt.Sprintf("player %d", i)); err != nil {
				return nil, err
			}
		}
	}
	return used, nil
}
