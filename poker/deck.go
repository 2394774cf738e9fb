package poker

import "fmt"

// DeckSize is the number of cards in a standard deck
const DeckSize = 52

// Source is the random source used for shuffling and sampling.
// *rand.Rand from math/rand/v2 satisfies it.
type Source interface {
	IntN(n int) int
}

var fullDeck = func() [DeckSize]Card {
	var cards [DeckSize]Card
	i := 0
	for suit := Spades; suit <= Clubs; suit++ {
		for rank := Two; rank <= Ace; rank++ {
			cards[i] = NewCard(rank, suit)
			i++
		}
	}
	return cards
}()

// Deck represents a standard 52-card deck. Cards are dealt from the front.
type Deck struct {
	cards [DeckSize]Card // Fixed size array
	next  int
}

// NewDeck creates an unshuffled deck in suit-major order (♠ ♦ ♥ ♣, Two to Ace)
func NewDeck() *Deck {
	return &Deck{cards: fullDeck}
}

// Shuffle permutes the undealt cards uniformly using Fisher-Yates
func (d *Deck) Shuffle(rng Source) {
	rest := d.cards[d.next:]
	for i := len(rest) - 1; i > 0; i-- {
		j := rng.IntN(i + 1)
		rest[i], rest[j] = rest[j], rest[i]
	}
}

// Draw removes and returns n cards from the front of the deck
func (d *Deck) Draw(n int) ([]Card, error) {
	if n < 0 || n > d.Remaining() {
		return nil, fmt.Errorf("draw %d of %d: %w", n, d.Remaining(), ErrInsufficientCards)
	}
	cards := make([]Card, n)
	copy(cards, d.cards[d.next:d.next+n])
	d.next += n
	return cards, nil
}

// Remaining returns the number of cards left in the deck
func (d *Deck) Remaining() int {
	return DeckSize - d.next
}

// Cards returns a copy of the undealt cards in deal order
func (d *Deck) Cards() []Card {
	out := make([]Card, d.Remaining())
	copy(out, d.cards[d.next:])
	return out
}

// Reset restores all 52 cards in NewDeck order
func (d *Deck) Reset() {
	d.cards = fullDeck
	d.next = 0
}
