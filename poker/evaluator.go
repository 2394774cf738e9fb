package poker

import (
	"fmt"
	"sort"
)

// subsets7 lists the 21 five-card index subsets of a seven-card hand
var subsets7 = func() [21][5]int {
	var out [21][5]int
	n := 0
	for a := 0; a < 7; a++ {
		for b := a + 1; b < 7; b++ {
			// Indices a and b are the two cards left out.
			k := 0
			for i := 0; i < 7; i++ {
				if i != a && i != b {
					out[n][k] = i
					k++
				}
			}
			n++
		}
	}
	return out
}()

// Evaluate finds the best five-card hand within exactly seven cards.
// Duplicate cards are not detected here; callers deal from a single deck.
func Evaluate(cards []Card) (Hand, error) {
	if len(cards) != 7 {
		return Hand{}, fmt.Errorf("evaluate %d cards: %w", len(cards), ErrInvalidCardCount)
	}
	var seven [7]Card
	for i, c := range cards {
		if !c.Valid() {
			return Hand{}, fmt.Errorf("%w: %v", ErrInvalidCard, c)
		}
		seven[i] = c
	}
	return evaluate7(&seven), nil
}

// MustEvaluate evaluates seven cards and panics on error (for tests)
func MustEvaluate(cards []Card) Hand {
	h, err := Evaluate(cards)
	if err != nil {
		panic(err)
	}
	return h
}

// evaluate7 keeps the strongest subset; equal subsets keep the first found.
func evaluate7(seven *[7]Card) Hand {
	var best Hand
	for i, idx := range subsets7 {
		five := [5]Card{seven[idx[0]], seven[idx[1]], seven[idx[2]], seven[idx[3]], seven[idx[4]]}
		h := evaluate5(five)
		if i == 0 || Compare(h, best) > 0 {
			best = h
		}
	}
	return best
}

type rankGroup struct {
	rank  Rank
	count int
}

func evaluate5(five [5]Card) Hand {
	var counts [Ace + 1]int
	flush := true
	for i, c := range five {
		counts[c.Rank]++
		if i > 0 && c.Suit != five[0].Suit {
			flush = false
		}
	}

	// Groups ordered by count, then rank, both descending.
	groups := make([]rankGroup, 0, 5)
	for r := Ace; r >= Two; r-- {
		if counts[r] > 0 {
			groups = append(groups, rankGroup{rank: r, count: counts[r]})
		}
	}
	sort.SliceStable(groups, func(i, j int) bool {
		return groups[i].count > groups[j].count
	})

	straightHigh := Rank(0)
	if len(groups) == 5 {
		// groups is rank-descending when every count is 1
		switch {
		case groups[0].rank-groups[4].rank == 4:
			straightHigh = groups[0].rank
		case groups[0].rank == Ace && groups[1].rank == Five:
			straightHigh = Five
		}
	}

	var h Hand
	switch {
	case straightHigh != 0 && flush:
		h.Category = StraightFlush
	case groups[0].count == 4:
		h.Category = FourOfAKind
	case groups[0].count == 3 && groups[1].count == 2:
		h.Category = FullHouse
	case flush:
		h.Category = Flush
	case straightHigh != 0:
		h.Category = Straight
	case groups[0].count == 3:
		h.Category = ThreeOfAKind
	case groups[0].count == 2 && groups[1].count == 2:
		h.Category = TwoPair
	case groups[0].count == 2:
		h.Category = OnePair
	default:
		h.Category = HighCard
	}

	if straightHigh != 0 {
		h.Ranks[0] = straightHigh
	} else {
		for i, g := range groups {
			h.Ranks[i] = g.rank
		}
	}

	h.Cards = orderCards(five, groups, straightHigh)
	return h
}

// orderCards sorts contributing cards by group significance; a wheel puts the ace last.
func orderCards(five [5]Card, groups []rankGroup, straightHigh Rank) [5]Card {
	weight := func(c Card) int {
		if straightHigh == Five && c.Rank == Ace {
			return 1
		}
		if straightHigh != 0 {
			return int(c.Rank)
		}
		for i, g := range groups {
			if g.rank == c.Rank {
				return 100 - i
			}
		}
		return 0
	}

	out := five
	sort.SliceStable(out[:], func(i, j int) bool {
		wi, wj := weight(out[i]), weight(out[j])
		if wi != wj {
			return wi > wj
		}
		return out[i].Suit < out[j].Suit
	})
	return out
}

// Showdown is the outcome of comparing every player's seven-card hand
type Showdown struct {
	Index int    // Winning player; the lowest index among exact ties
	Name  string // Category name of the winning hand
	Hand  Hand
	Hands []Hand // Every player's best hand, in player order
	Ties  []int  // All indices holding a hand equal to the winner's
}

// Split reports whether more than one player shares the best hand
func (s Showdown) Split() bool {
	return len(s.Ties) > 1
}

// Winner evaluates each player's hole cards with a complete five-card board
// and returns the strongest. Exact ties resolve to the first player.
func Winner(holes []Hole, board []Card) (Showdown, error) {
	if len(holes) == 0 {
		return Showdown{}, ErrNoPlayers
	}
	if len(board) != 5 {
		return Showdown{}, fmt.Errorf("showdown board of %d cards: %w", len(board), ErrInvalidCardCount)
	}
	for _, c := range board {
		if !c.Valid() {
			return Showdown{}, fmt.Errorf("%w: %v", ErrInvalidCard, c)
		}
	}
	for _, hole := range holes {
		if !hole[0].Valid() || !hole[1].Valid() {
			return Showdown{}, fmt.Errorf("%w: %v", ErrInvalidCard, hole)
		}
	}

	var seven [7]Card
	copy(seven[2:], board)
	hands := make([]Hand, len(holes))
	for i, hole := range holes {
		seven[0], seven[1] = hole[0], hole[1]
		hands[i] = evaluate7(&seven)
	}

	best := bestIndex(hands)
	sd := Showdown{
		Index: best,
		Name:  hands[best].Category.String(),
		Hand:  hands[best],
		Hands: hands,
	}
	for i, h := range hands {
		if Compare(h, hands[best]) == 0 {
			sd.Ties = append(sd.Ties, i)
		}
	}
	return sd, nil
}

func bestIndex(hands []Hand) int {
	best := 0
	for i := 1; i < len(hands); i++ {
		if Compare(hands[i], hands[best]) > 0 {
			best = i
		}
	}
	return best
}
