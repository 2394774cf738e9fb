package settlement

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/gamenight/internal/randutil"
)

func positions(nets ...int64) []Position {
	out := make([]Position, len(nets))
	for i, n := range nets {
		out[i] = Position{
			ID:           fmt.Sprintf("p%d", i+1),
			Name:         fmt.Sprintf("Player %d", i+1),
			InitialChips: 100,
			CurrentChips: 100 + n,
		}
	}
	return out
}

func TestSettleThreePlayers(t *testing.T) {
	t.Parallel()

	res, err := Settle(positions(50, -30, -20), 1.0)
	require.NoError(t, err)
	require.NoError(t, res.Warning)

	require.Len(t, res.Payments, 2)
	assert.Equal(t, Payment{FromID: "p3", FromName: "Player 3", ToID: "p1", ToName: "Player 1", Amount: 2000}, res.Payments[0])
	assert.Equal(t, Payment{FromID: "p2", FromName: "Player 2", ToID: "p1", ToName: "Player 1", Amount: 3000}, res.Payments[1])
	assert.Equal(t, Cents(5000), res.Paid())
	assert.Equal(t, "Player 3 pays Player 1 $20.00", res.Payments[0].String())

	for id, left := range Balances(positions(50, -30, -20), 1.0, res.Payments) {
		assert.LessOrEqual(t, abs(left), Tolerance, id)
	}
}

func TestSettleTotals(t *testing.T) {
	t.Parallel()

	ps := []Position{
		{ID: "a", InitialChips: 1000, CurrentChips: 1500},
		{ID: "b", InitialChips: 1000, CurrentChips: 700},
		{ID: "c", InitialChips: 500, CurrentChips: 300},
	}
	res, err := Settle(ps, 0.05)
	require.NoError(t, err)

	assert.Equal(t, Totals{InitialChips: 2500, CurrentChips: 2500, InitialValue: 12500, CurrentValue: 12500}, res.Totals)
	assert.Equal(t, Cents(2500), res.Owed)
	assert.Equal(t, Cents(2500), res.Debt)
	assert.Equal(t, []Payment{
		{FromID: "c", ToID: "a", Amount: 1000},
		{FromID: "b", ToID: "a", Amount: 1500},
	}, res.Payments)
}

func TestSettleSkipsBreakEven(t *testing.T) {
	t.Parallel()

	res, err := Settle(positions(0, 40, 0, -40), 0.25)
	require.NoError(t, err)
	require.Len(t, res.Payments, 1)
	assert.Equal(t, "p4", res.Payments[0].FromID)
	assert.Equal(t, "p2", res.Payments[0].ToID)
	assert.Equal(t, Cents(1000), res.Payments[0].Amount)

	res, err = Settle(positions(0, 0), 1)
	require.NoError(t, err)
	assert.Empty(t, res.Payments)
}

func TestSettleGreedyOrder(t *testing.T) {
	t.Parallel()

	// Winners sorted 70, 30; losers sorted 10, 40, 50.
	res, err := Settle(positions(-50, 30, -10, 70, -40), 1)
	require.NoError(t, err)

	var got []string
	for _, p := range res.Payments {
		got = append(got, fmt.Sprintf("%s->%s %s", p.FromID, p.ToID, p.Amount))
	}
	assert.Equal(t, []string{
		"p3->p4 $10.00",
		"p5->p4 $40.00",
		"p1->p4 $20.00",
		"p1->p2 $30.00",
	}, got)
}

func TestSettleRoundingMismatch(t *testing.T) {
	t.Parallel()

	// Chips do not balance: winners are owed more than losers have lost.
	res, err := Settle(positions(60, -30, -20), 1)
	require.NoError(t, err)
	require.ErrorIs(t, res.Warning, ErrRoundingMismatch)

	assert.Equal(t, Cents(5000), res.Paid(), "best-effort payments cover the available debt")
}

func TestSettleRoundsToCents(t *testing.T) {
	t.Parallel()

	// 1/3 currency per chip produces fractional cents before rounding.
	res, err := Settle(positions(10, -5, -5), 1.0/3)
	require.NoError(t, err)
	assert.Equal(t, Cents(333), res.Owed)
	assert.Equal(t, Cents(334), res.Debt)
	assert.NoError(t, res.Warning, "one cent of drift is tolerated")
	assert.InDelta(t, float64(res.Owed), float64(res.Paid()), 1)
}

func TestSettleIsIdempotent(t *testing.T) {
	t.Parallel()

	ps := positions(120, -35, -35, 15, -65)
	first, err := Settle(ps, 0.1)
	require.NoError(t, err)
	second, err := Settle(ps, 0.1)
	require.NoError(t, err)
	assert.Equal(t, first, second)
	assert.Equal(t, positions(120, -35, -35, 15, -65), ps, "input must not be mutated")
}

func TestSettleCarriesOddCents(t *testing.T) {
	t.Parallel()

	// Three winners of 101 chips against losers of 100, 100 and 103 at one
	// cent per chip leave single-cent remainders after the first pairings.
	ps := positions(101, 101, 101, -100, -100, -103)
	res, err := Settle(ps, 0.01)
	require.NoError(t, err)
	require.NoError(t, res.Warning)
	assert.Equal(t, Cents(303), res.Owed)
	assert.Equal(t, Cents(303), res.Debt)

	var got []string
	for _, p := range res.Payments {
		got = append(got, fmt.Sprintf("%s->%s %s", p.FromID, p.ToID, p.Amount))
	}
	assert.Equal(t, []string{
		"p4->p1 $1.00",
		"p5->p1 $0.01",
		"p5->p2 $0.99",
		"p6->p2 $0.02",
		"p6->p3 $1.01",
	}, got)
	assert.Equal(t, Cents(303), res.Paid())
	for id, left := range Balances(ps, 0.01, res.Payments) {
		assert.Zero(t, left, id)
	}
}

func TestSettlePaymentsMatchWinnings(t *testing.T) {
	t.Parallel()

	ratios := []float64{1, 0.01, 0.05, 0.25, 2.5, 1.0 / 3, 0.07}
	rng := randutil.New(2024)
	for run := 0; run < 500; run++ {
		n := 2 + rng.IntN(8)
		nets := make([]int64, n)
		var sum int64
		for i := 0; i < n-1; i++ {
			nets[i] = int64(rng.IntN(2001) - 1000)
			sum += nets[i]
		}
		nets[n-1] = -sum

		ps := positions(nets...)
		ratio := ratios[rng.IntN(len(ratios))]
		res, err := Settle(ps, ratio)
		require.NoError(t, err)

		// Pairing runs until one side is exhausted.
		assert.Equal(t, min(res.Owed, res.Debt), res.Paid(), "run %d", run)
		for _, p := range res.Payments {
			assert.Positive(t, int64(p.Amount))
			assert.NotEqual(t, p.FromID, p.ToID)
		}

		// Per-player rounding can push the totals apart; that is reported
		// rather than settled.
		if res.Warning != nil {
			require.ErrorIs(t, res.Warning, ErrRoundingMismatch)
			continue
		}
		assert.InDelta(t, float64(res.Owed), float64(res.Paid()), float64(Tolerance), "run %d", run)
		for id, left := range Balances(ps, ratio, res.Payments) {
			assert.LessOrEqual(t, abs(left), Tolerance, "run %d player %s", run, id)
		}
	}
}

func TestSettleErrors(t *testing.T) {
	t.Parallel()

	for _, ratio := range []float64{0, -1} {
		_, err := Settle(positions(10, -10), ratio)
		assert.ErrorIs(t, err, ErrInvalidRatio)
	}

	ps := positions(10, -10)
	ps[1].ID = ps[0].ID
	_, err := Settle(ps, 1)
	assert.ErrorIs(t, err, ErrDuplicatePlayer)
}

func TestCentsString(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "$12.34", Cents(1234).String())
	assert.Equal(t, "-$3.05", Cents(-305).String())
	assert.Equal(t, "$0.07", Cents(7).String())
	assert.Equal(t, Cents(1235), ToCents(12.346))
	assert.InDelta(t, 12.34, Cents(1234).Float(), 1e-9)
}

func abs(c Cents) Cents {
	if c < 0 {
		return -c
	}
	return c
}
