// Package poker models cards and decks and ranks seven-card hold'em hands.
package poker

import (
	"fmt"
	"strings"
)

// Suit represents a card suit
type Suit uint8

const (
	Spades Suit = iota
	Diamonds
	Hearts
	Clubs
)

var suitSymbols = [...]string{"♠", "♦", "♥", "♣"}

// String returns the suit symbol
func (s Suit) String() string {
	if int(s) < len(suitSymbols) {
		return suitSymbols[s]
	}
	return "?"
}

// Rank represents a card rank, valued 2 through 14 (Ace high)
type Rank uint8

const (
	Two Rank = iota + 2
	Three
	Four
	Five
	Six
	Seven
	Eight
	Nine
	Ten
	Jack
	Queen
	King
	Ace
)

// String returns the display form of a rank ("2".."10", "J", "Q", "K", "A")
func (r Rank) String() string {
	switch {
	case r >= Two && r <= Ten:
		return fmt.Sprintf("%d", int(r))
	case r == Jack:
		return "J"
	case r == Queen:
		return "Q"
	case r == King:
		return "K"
	case r == Ace:
		return "A"
	default:
		return "?"
	}
}

// Card is an immutable playing card. Cards compare equal by rank and suit.
type Card struct {
	Rank Rank
	Suit Suit
}

// NewCard creates a new card
func NewCard(rank Rank, suit Suit) Card {
	return Card{Rank: rank, Suit: suit}
}

// String returns the string representation of a card (e.g., "A♠", "10♥")
func (c Card) String() string {
	return c.Rank.String() + c.Suit.String()
}

// Valid reports whether the card is one of the 52 standard cards
func (c Card) Valid() bool {
	return c.Rank >= Two && c.Rank <= Ace && c.Suit <= Clubs
}

// index maps a card to 0-51, suit-major
func (c Card) index() int {
	return int(c.Suit)*13 + int(c.Rank-Two)
}

// ParseCard parses a single card such as "As", "Td", "10h" or "A♠".
func ParseCard(s string) (Card, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Card{}, fmt.Errorf("empty card")
	}

	runes := []rune(s)
	suit, err := parseSuit(runes[len(runes)-1])
	if err != nil {
		return Card{}, fmt.Errorf("card %q: %w", s, err)
	}
	rank, err := parseRank(string(runes[:len(runes)-1]))
	if err != nil {
		return Card{}, fmt.Errorf("card %q: %w", s, err)
	}
	return Card{Rank: rank, Suit: suit}, nil
}

// ParseCards parses a list of cards separated by spaces or commas, or a packed
// string of two-character cards such as "AsKsQsJsTs".
func ParseCards(s string) ([]Card, error) {
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return r == ' ' || r == ','
	})

	var cards []Card
	for _, field := range fields {
		if c, err := ParseCard(field); err == nil {
			cards = append(cards, c)
			continue
		}
		packed, err := parsePacked(field)
		if err != nil {
			return nil, err
		}
		cards = append(cards, packed...)
	}
	return cards, nil
}

// MustParseCards parses cards and panics on error (for tests)
func MustParseCards(s string) []Card {
	cards, err := ParseCards(s)
	if err != nil {
		panic(fmt.Sprintf("failed to parse cards '%s': %v", s, err))
	}
	return cards
}

func parsePacked(s string) ([]Card, error) {
	runes := []rune(s)
	var cards []Card
	for i := 0; i < len(runes); {
		width := 2
		if runes[i] == '1' && i+1 < len(runes) && runes[i+1] == '0' {
			width = 3
		}
		if i+width > len(runes) {
			return nil, fmt.Errorf("incomplete card at position %d in %q", i, s)
		}
		c, err := ParseCard(string(runes[i : i+width]))
		if err != nil {
			return nil, err
		}
		cards = append(cards, c)
		i += width
	}
	return cards, nil
}

func parseRank(s string) (Rank, error) {
	switch strings.ToUpper(s) {
	case "A":
		return Ace, nil
	case "K":
		return King, nil
	case "Q":
		return Queen, nil
	case "J":
		return Jack, nil
	case "T", "10":
		return Ten, nil
	case "9":
		return Nine, nil
	case "8":
		return Eight, nil
	case "7":
		return Seven, nil
	case "6":
		return Six, nil
	case "5":
		return Five, nil
	case "4":
		return Four, nil
	case "3":
		return Three, nil
	case "2":
		return Two, nil
	default:
		return 0, fmt.Errorf("unknown rank %q", s)
	}
}

func parseSuit(r rune) (Suit, error) {
	switch r {
	case 's', 'S', '♠':
		return Spades, nil
	case 'd', 'D', '♦':
		return Diamonds, nil
	case 'h', 'H', '♥':
		return Hearts, nil
	case 'c', 'C', '♣':
		return Clubs, nil
	default:
		return 0, fmt.Errorf("unknown suit %q", r)
	}
}

// Hole is the pair of private cards dealt to one player
type Hole [2]Card

// String returns both hole cards separated by a space
func (h Hole) String() string {
	return h[0].String() + " " + h[1].String()
}

// ParseHole parses exactly two hole cards
func ParseHole(s string) (Hole, error) {
	cards, err := ParseCards(s)
	if err != nil {
		return Hole{}, err
	}
	if len(cards) != 2 {
		return Hole{}, fmt.Errorf("hole %q: %w: want 2, got %d", s, ErrInvalidCardCount, len(cards))
	}
	return Hole{cards[0], cards[1]}, nil
}
