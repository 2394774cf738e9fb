package poker

import (
	"fmt"
	"strings"
)

// Category is the class of a five-card poker hand. Lower values are stronger.
type Category uint8

const (
	StraightFlush Category = iota
	FourOfAKind
	FullHouse
	Flush
	Straight
	ThreeOfAKind
	TwoPair
	OnePair
	HighCard
)

var categoryNames = [...]string{
	StraightFlush: "Straight Flush",
	FourOfAKind:   "Four of a Kind",
	FullHouse:     "Full House",
	Flush:         "Flush",
	Straight:      "Straight",
	ThreeOfAKind:  "Three of a Kind",
	TwoPair:       "Two Pair",
	OnePair:       "One Pair",
	HighCard:      "High Card",
}

// String returns the display name of the category
func (c Category) String() string {
	if int(c) < len(categoryNames) {
		return categoryNames[c]
	}
	return "Unknown"
}

// Hand is the best five-card hand found in a set of seven cards
type Hand struct {
	Category Category
	Cards    [5]Card // Contributing cards, most significant first
	Ranks    [5]Rank // Tiebreak ranks in descending significance, zero padded
}

// Name returns the display name, calling out the ace-high straight flush.
// The category is still StraightFlush.
func (h Hand) Name() string {
	if h.Category == StraightFlush && h.Ranks[0] == Ace {
		return "Royal Flush"
	}
	return h.Category.String()
}

// String returns a string representation of the hand
func (h Hand) String() string {
	cardStrs := make([]string, 0, len(h.Cards))
	for _, card := range h.Cards {
		cardStrs = append(cardStrs, card.String())
	}
	return fmt.Sprintf("%s [%s]", h.Name(), strings.Join(cardStrs, " "))
}

// Compare returns 1 if a is stronger than b, -1 if weaker and 0 if equal
func Compare(a, b Hand) int {
	if a.Category != b.Category {
		if a.Category < b.Category {
			return 1
		}
		return -1
	}
	for i := range a.Ranks {
		if a.Ranks[i] > b.Ranks[i] {
			return 1
		}
		if a.Ranks[i] < b.Ranks[i] {
			return -1
		}
	}
	return 0
}

// Beats returns true if this hand is strictly stronger than other
func (h Hand) Beats(other Hand) bool {
	return Compare(h, other) > 0
}
