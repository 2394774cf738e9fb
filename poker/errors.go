package poker

import "errors"

var (
	// ErrInvalidCardCount is returned when an operation receives the wrong number of cards.
	ErrInvalidCardCount = errors.New("invalid card count")
	// ErrInsufficientCards is returned when a draw asks for more cards than remain.
	ErrInsufficientCards = errors.New("insufficient cards")
	// ErrInvalidCard is returned for a card outside the 52-card universe.
	ErrInvalidCard = errors.New("invalid card")
	// ErrDuplicateCard is returned when the same card appears twice in dealt cards.
	ErrDuplicateCard = errors.New("duplicate card")
	// ErrNoPlayers is returned by Winner when no hole cards are supplied.
	ErrNoPlayers = errors.New("no players")
)
