// Package equity estimates each player's chance of winning a hold'em hand by
// Monte Carlo simulation over the undealt cards.
package equity

import (
	"errors"
	"fmt"
	"math"

	"github.com/lox/gamenight/poker"
)

// DefaultTrials is the number of simulated run-outs when Options.Trials is zero
const DefaultTrials = 1000

// ErrInsufficientPlayers is returned when fewer than two players are supplied
var ErrInsufficientPlayers = errors.New("insufficient players")

// Options controls a simulation
type Options struct {
	Trials int
}

func (o Options) trials() int {
	if o.Trials <= 0 {
		return DefaultTrials
	}
	return o.Trials
}

// Result holds per-player outcomes of a simulation, in player order
type Result struct {
	Trials int
	Wins   []int     // Trials credited to each player; exact ties go to the lowest index
	Ties   []int     // Trials in which the player shared the best hand
	Equity []float64 // Wins / Trials * 100
}

// Rounded returns equity percentages rounded to one decimal place
func (r *Result) Rounded() []float64 {
	out := make([]float64, len(r.Equity))
	for i, e := range r.Equity {
		out[i] = math.Round(e*10) / 10
	}
	return out
}

// ConfidenceInterval returns the 95% interval for player i's equity, in percent
func (r *Result) ConfidenceInterval(i int) (lower, upper float64) {
	n := float64(r.Trials)
	if n == 0 || i < 0 || i >= len(r.Wins) {
		return 0, 0
	}
	p := float64(r.Wins[i]) / n

	// Standard error for binomial proportion
	margin := 1.96 * math.Sqrt(p*(1-p)/n)
	return math.Max(0, p-margin) * 100, math.Min(1, p+margin) * 100
}

// Estimate simulates run-outs of the board and credits each trial to the
// winning player. The board must hold 0, 3 or 4 cards. Input is validated
// before any trial runs.
func Estimate(holes []poker.Hole, board []poker.Card, opts Options, rng poker.Source) (*Result, error) {
	if len(holes) < 2 {
		return nil, fmt.Errorf("%d players: %w", len(holes), ErrInsufficientPlayers)
	}
	switch len(board) {
	case 0, 3, 4:
	default:
		return nil, fmt.Errorf("board of %d cards: %w", len(board), poker.ErrInvalidCardCount)
	}

	dealt := make([]poker.Card, 0, len(holes)*2+len(board))
	for _, h := range holes {
		dealt = append(dealt, h[0], h[1])
	}
	dealt = append(dealt, board...)
	if err := poker.CheckDistinct(dealt...); err != nil {
		return nil, err
	}

	pool := poker.Remaining(dealt...)
	needed := 5 - len(board)
	if len(pool) < needed {
		return nil, fmt.Errorf("need %d board cards, %d undealt: %w", needed, len(pool), poker.ErrInsufficientCards)
	}

	trials := opts.trials()
	res := &Result{
		Trials: trials,
		Wins:   make([]int, len(holes)),
		Ties:   make([]int, len(holes)),
		Equity: make([]float64, len(holes)),
	}

	final := make([]poker.Card, 5)
	copy(final, board)
	for t := 0; t < trials; t++ {
		// Partial Fisher-Yates: the last `needed` slots of pool become the run-out.
		for k := 0; k < needed; k++ {
			last := len(pool) - 1 - k
			j := rng.IntN(last + 1)
			pool[j], pool[last] = pool[last], pool[j]
			final[len(board)+k] = pool[last]
		}

		sd, err := poker.Winner(holes, final)
		if err != nil {
			return nil, err
		}
		res.Wins[sd.Index]++
		if sd.Split() {
			for _, i := range sd.Ties {
				res.Ties[i]++
			}
		}
	}

	for i, w := range res.Wins {
		res.Equity[i] = float64(w) / float64(trials) * 100
	}
	return res, nil
}
