package poker

import (
	"fmt"
	"math/bits"
)

// CardSet is a bitset over the 52 cards, one bit per Card.index.
type CardSet uint64

// NewCardSet creates a CardSet from a slice of cards
func NewCardSet(cards ...Card) CardSet {
	var cs CardSet
	for _, c := range cards {
		cs.Add(c)
	}
	return cs
}

// Add adds a card to the set
func (cs *CardSet) Add(c Card) {
	*cs |= 1 << c.index()
}

// Contains checks if a card is in the set
func (cs CardSet) Contains(c Card) bool {
	return cs&(1<<c.index()) != 0
}

// Len returns the number of cards in the set
func (cs CardSet) Len() int {
	return bits.OnesCount64(uint64(cs))
}

// Remaining returns every card of the 52-card universe not present in dealt,
// in NewDeck order.
func Remaining(dealt ...Card) []Card {
	used := NewCardSet(dealt...)
	out := make([]Card, 0, DeckSize-used.Len())
	for _, c := range fullDeck {
		if !used.Contains(c) {
			out = append(out, c)
		}
	}
	return out
}

// CheckDistinct returns ErrDuplicateCard if any card appears more than once.
func CheckDistinct(cards ...Card) error {
	var seen CardSet
	for _, c := range cards {
		if !c.Valid() {
			return fmt.Errorf("%w: %v", ErrInvalidCard, c)
		}
		if seen.Contains(c) {
			return &DuplicateCardError{Card: c}
		}
		seen.Add(c)
	}
	return nil
}

// DuplicateCardError names the card that was seen twice.
type DuplicateCardError struct {
	Card Card
}

func (e *DuplicateCardError) Error() string {
	return "duplicate card: " + e.Card.String()
}

func (e *DuplicateCardError) Unwrap() error {
	return ErrDuplicateCard
}
