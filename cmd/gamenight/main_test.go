package main

import (
	"context"
	"io"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/gamenight/equity"
	"github.com/lox/gamenight/poker"
	"github.com/lox/gamenight/settlement"
)

func TestEstimateRunsIsDeterministic(t *testing.T) {
	t.Parallel()

	holes, err := parseHoles([]string{"AsAd", "7c2h"})
	require.NoError(t, err)
	board := poker.MustParseCards("Kd 9s 3c")

	a, err := estimateRuns(context.Background(), holes, board, 300, 4, 99)
	require.NoError(t, err)
	b, err := estimateRuns(context.Background(), holes, board, 300, 4, 99)
	require.NoError(t, err)
	assert.Equal(t, a, b)
	require.Len(t, a, 4)

	mean, spread := summarize(a, 2)
	assert.InDelta(t, 100.0, mean[0]+mean[1], 0.001)
	assert.Greater(t, mean[0], mean[1])
	assert.GreaterOrEqual(t, spread[0], 0.0)
}

func TestEstimateRunsPropagatesErrors(t *testing.T) {
	t.Parallel()

	holes, err := parseHoles([]string{"AsAd"})
	require.NoError(t, err)
	_, err = estimateRuns(context.Background(), holes, nil, 10, 3, 1)
	assert.ErrorIs(t, err, equity.ErrInsufficientPlayers)
}

func TestSplitRateUsesSimulatedTrials(t *testing.T) {
	t.Parallel()

	// Both players play the board's broadway straight on every river.
	holes, err := parseHoles([]string{"2c3d", "2h3s"})
	require.NoError(t, err)
	board := poker.MustParseCards("As Ks Qd Jh")

	results, err := estimateRuns(context.Background(), holes, board, -5, 2, 7)
	require.NoError(t, err)
	for _, r := range results {
		assert.Equal(t, equity.DefaultTrials, r.Trials)
	}
	assert.InDelta(t, 100.0, splitRate(results, 0), 0.001)
	assert.InDelta(t, 100.0, splitRate(results, 1), 0.001)
	assert.Zero(t, splitRate(nil, 0))
}

func TestOddsRejectsNegativeTrials(t *testing.T) {
	t.Parallel()

	cli := &CLI{Config: filepath.Join(t.TempDir(), "missing.hcl")}
	logger := log.NewWithOptions(io.Discard, log.Options{})
	cmd := &OddsCmd{Hands: []string{"AsAd", "7c2h"}, Trials: -5, Runs: 1}
	assert.ErrorContains(t, cmd.Run(cli, logger), "trials must not be negative")
}

func TestSummarizeSingleRun(t *testing.T) {
	t.Parallel()

	mean, spread := summarize([]*equity.Result{{Trials: 10, Equity: []float64{70, 30}}}, 2)
	assert.Equal(t, []float64{70, 30}, mean)
	assert.Equal(t, []float64{0, 0}, spread)
}

func TestParseHolesRejectsBadHands(t *testing.T) {
	t.Parallel()

	_, err := parseHoles([]string{"AsKd", "Qh"})
	assert.ErrorContains(t, err, "hand 2")
}

func TestNewSettleReport(t *testing.T) {
	t.Parallel()

	res, err := settlement.Settle([]settlement.Position{
		{ID: "a", Name: "Alice", InitialChips: 100, CurrentChips: 150},
		{ID: "b", Name: "Bob", InitialChips: 100, CurrentChips: 50},
	}, 0.5)
	require.NoError(t, err)

	r := newSettleReport(0.5, res)
	assert.Equal(t, []reportPayment{{From: "Bob", To: "Alice", Amount: 25}}, r.Payments)
	assert.Equal(t, 100.0, r.Totals.InitialValue)
	assert.Empty(t, r.Warning)
}
