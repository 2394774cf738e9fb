// Package settlement converts end-of-session chip counts into the list of
// payments that squares every player.
package settlement

import (
	"errors"
	"fmt"
	"math"
	"sort"
)

// Tolerance is the largest gap, in cents, allowed between total winnings and
// total losses before a rounding mismatch is reported
const Tolerance Cents = 1

var (
	// ErrInvalidRatio is returned when the currency-per-chip ratio is not a positive number.
	ErrInvalidRatio = errors.New("invalid currency ratio")
	// ErrDuplicatePlayer is returned when two positions share an ID.
	ErrDuplicatePlayer = errors.New("duplicate player")
	// ErrRoundingMismatch flags winnings and losses that differ by more than Tolerance.
	ErrRoundingMismatch = errors.New("rounding mismatch")
)

// Cents is an amount of currency in hundredths
type Cents int64

// ToCents rounds a currency amount to the nearest cent
func ToCents(amount float64) Cents {
	return Cents(math.Round(amount * 100))
}

// Float returns the amount in whole currency units
func (c Cents) Float() float64 {
	return float64(c) / 100
}

// String formats the amount as "$12.34" or "-$3.00"
func (c Cents) String() string {
	sign := ""
	if c < 0 {
		sign = "-"
		c = -c
	}
	return fmt.Sprintf("%s$%d.%02d", sign, c/100, c%100)
}

// Position is one player's chip count at the start and end of a session
type Position struct {
	ID           string
	Name         string
	InitialChips int64
	CurrentChips int64
}

// NetChips returns chips won (positive) or lost (negative)
func (p Position) NetChips() int64 {
	return p.CurrentChips - p.InitialChips
}

// NetCents returns the net result converted at ratio and rounded to cents
func (p Position) NetCents(ratio float64) Cents {
	return ToCents(float64(p.NetChips()) * ratio)
}

// Payment is a single transfer from a losing player to a winning player
type Payment struct {
	FromID   string
	FromName string
	ToID     string
	ToName   string
	Amount   Cents
}

// String returns a human readable description of the payment
func (p Payment) String() string {
	return fmt.Sprintf("%s pays %s %s", displayName(p.FromName, p.FromID), displayName(p.ToName, p.ToID), p.Amount)
}

func displayName(name, id string) string {
	if name != "" {
		return name
	}
	return id
}

// Totals aggregates the table for display
type Totals struct {
	InitialChips int64
	CurrentChips int64
	InitialValue Cents
	CurrentValue Cents
}

// Result is the outcome of settling one session
type Result struct {
	Payments []Payment
	Totals   Totals
	Owed     Cents // Sum of positive net results
	Debt     Cents // Sum of negative net results, as a magnitude

	// Warning wraps ErrRoundingMismatch when Owed and Debt differ by more
	// than Tolerance. Payments are still computed.
	Warning error
}

// Paid returns the sum of all payment amounts
func (r *Result) Paid() Cents {
	var total Cents
	for _, p := range r.Payments {
		total += p.Amount
	}
	return total
}

type balance struct {
	pos    Position
	amount Cents
}

// Settle computes payments for a finished session. Winners are paid in
// descending order of winnings, each from the smallest remaining debtor
// first. Players who broke even are left out.
func Settle(positions []Position, ratio float64) (*Result, error) {
	if ratio <= 0 || math.IsNaN(ratio) || math.IsInf(ratio, 0) {
		return nil, fmt.Errorf("%w: %v", ErrInvalidRatio, ratio)
	}

	res := &Result{}
	seen := make(map[string]bool, len(positions))
	var winners, losers []balance
	for _, p := range positions {
		if seen[p.ID] {
			return nil, fmt.Errorf("%w: %q", ErrDuplicatePlayer, p.ID)
		}
		seen[p.ID] = true

		res.Totals.InitialChips += p.InitialChips
		res.Totals.CurrentChips += p.CurrentChips

		net := p.NetCents(ratio)
		switch {
		case net > 0:
			winners = append(winners, balance{pos: p, amount: net})
			res.Owed += net
		case net < 0:
			losers = append(losers, balance{pos: p, amount: -net})
			res.Debt += -net
		}
	}
	res.Totals.InitialValue = ToCents(float64(res.Totals.InitialChips) * ratio)
	res.Totals.CurrentValue = ToCents(float64(res.Totals.CurrentChips) * ratio)

	if diff := res.Owed - res.Debt; diff > Tolerance || diff < -Tolerance {
		res.Warning = fmt.Errorf("%w: winners owed %s, losers owe %s", ErrRoundingMismatch, res.Owed, res.Debt)
	}

	sort.SliceStable(winners, func(i, j int) bool { return winners[i].amount > winners[j].amount })
	sort.SliceStable(losers, func(i, j int) bool { return losers[i].amount < losers[j].amount })

	for len(winners) > 0 && len(losers) > 0 {
		w, l := &winners[0], &losers[0]
		amount := min(w.amount, l.amount)
		res.Payments = append(res.Payments, Payment{
			FromID:   l.pos.ID,
			FromName: l.pos.Name,
			ToID:     w.pos.ID,
			ToName:   w.pos.Name,
			Amount:   amount,
		})
		w.amount -= amount
		l.amount -= amount

		// Balances are exact cents, so a player leaves only when fully settled.
		if w.amount == 0 {
			winners = winners[1:]
		}
		if l.amount == 0 {
			losers = losers[1:]
		}
	}

	return res, nil
}

// Balances applies payments to each player's net result and returns what
// remains owed to (positive) or by (negative) each player, keyed by ID.
func Balances(positions []Position, ratio float64, payments []Payment) map[string]Cents {
	out := make(map[string]Cents, len(positions))
	for _, p := range positions {
		out[p.ID] = p.NetCents(ratio)
	}
	for _, pay := range payments {
		out[pay.FromID] += pay.Amount
		out[pay.ToID] -= pay.Amount
	}
	return out
}
