// Package session drives one table through the outcome engine. The caller
// owns a Session and advances it explicitly:
//
//	Idle → Dealing → Revealing(flop, turn, river) → Showdown → Settling
//
// Each transition returns the engine's result for that step. A table may
// deal again after a showdown; Settling ends the session until Reset.
package session

import (
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"

	"github.com/lox/gamenight/equity"
	"github.com/lox/gamenight/internal/randutil"
	"github.com/lox/gamenight/poker"
	"github.com/lox/gamenight/settlement"
)

// ErrInvalidTransition is returned when an operation is not allowed in the current state
var ErrInvalidTransition = errors.New("invalid transition")

// State is the table's position in the hand lifecycle
type State int

const (
	Idle State = iota
	Dealing
	Revealing
	Showdown
	Settling
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Dealing:
		return "dealing"
	case Revealing:
		return "revealing"
	case Showdown:
		return "showdown"
	case Settling:
		return "settling"
	default:
		return "unknown"
	}
}

// Stage is how much of the board has been revealed
type Stage int

const (
	Preflop Stage = iota
	Flop
	Turn
	River
)

func (s Stage) String() string {
	switch s {
	case Preflop:
		return "preflop"
	case Flop:
		return "flop"
	case Turn:
		return "turn"
	case River:
		return "river"
	default:
		return "unknown"
	}
}

// stageCards is the number of board cards each stage adds
var stageCards = [...]int{Flop: 3, Turn: 1, River: 1}

// Transition records one state change
type Transition struct {
	From  State
	To    State
	Stage Stage
	At    time.Time
}

// Snapshot is what the table shows after dealing or a reveal
type Snapshot struct {
	Stage  Stage
	Board  []poker.Card
	Equity *equity.Result // nil once the river is out
}

// Option configures a Session
type Option func(*Session)

// WithLogger sets the logger used for transition logs
func WithLogger(logger *log.Logger) Option {
	return func(s *Session) { s.logger = logger }
}

// WithClock sets the clock used to timestamp transitions
func WithClock(clock quartz.Clock) Option {
	return func(s *Session) { s.clock = clock }
}

// WithRand sets the random source for shuffling and simulation
func WithRand(rng poker.Source) Option {
	return func(s *Session) { s.rng = rng }
}

// WithTrials sets the number of equity simulations per stage
func WithTrials(trials int) Option {
	return func(s *Session) { s.trials = trials }
}

// Session is the caller-owned state of one table
type Session struct {
	players []string
	logger  *log.Logger
	clock   quartz.Clock
	rng     poker.Source
	trials  int

	state   State
	stage   Stage
	hand    int
	deck    *poker.Deck
	holes   []poker.Hole
	board   []poker.Card
	history []Transition
}

// New creates an idle session for the given players, in seat order
func New(players []string, opts ...Option) (*Session, error) {
	if len(players) < 2 {
		return nil, fmt.Errorf("%d players: %w", len(players), equity.ErrInsufficientPlayers)
	}
	s := &Session{
		players: append([]string(nil), players...),
		logger:  log.Default(),
		clock:   quartz.NewReal(),
		trials:  equity.DefaultTrials,
		deck:    poker.NewDeck(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.rng == nil {
		s.rng = randutil.New(randutil.Seed(0))
	}
	return s, nil
}

// Players returns the seated players in order
func (s *Session) Players() []string { return append([]string(nil), s.players...) }

// State returns the current state
func (s *Session) State() State { return s.state }

// Stage returns the current board stage
func (s *Session) Stage() Stage { return s.stage }

// HandNumber returns the number of hands dealt so far
func (s *Session) HandNumber() int { return s.hand }

// Holes returns each player's hole cards for the current hand
func (s *Session) Holes() []poker.Hole { return append([]poker.Hole(nil), s.holes...) }

// Board returns the community cards revealed so far
func (s *Session) Board() []poker.Card { return append([]poker.Card(nil), s.board...) }

// History returns every transition since the session was created or reset
func (s *Session) History() []Transition { return append([]Transition(nil), s.history...) }

func (s *Session) transition(to State) {
	t := Transition{From: s.state, To: to, Stage: s.stage, At: s.clock.Now()}
	s.history = append(s.history, t)
	s.logger.Debug("transition", "from", t.From, "to", t.To, "stage", t.Stage, "hand", s.hand)
	s.state = to
}

func (s *Session) invalid(op string) error {
	return fmt.Errorf("%s while %s: %w", op, s.state, ErrInvalidTransition)
}

// Deal shuffles a fresh deck, deals two hole cards to each player in seat
// order and returns the preflop equity.
func (s *Session) Deal() (*Snapshot, error) {
	if s.state != Idle && s.state != Showdown {
		return nil, s.invalid("deal")
	}

	s.deck.Reset()
	s.deck.Shuffle(s.rng)
	holes := make([]poker.Hole, len(s.players))
	for i := range holes {
		cards, err := s.deck.Draw(2)
		if err != nil {
			return nil, fmt.Errorf("dealing to %s: %w", s.players[i], err)
		}
		holes[i] = poker.Hole{cards[0], cards[1]}
	}

	s.hand++
	s.holes = holes
	s.board = nil
	s.stage = Preflop
	s.transition(Dealing)

	for i, h := range s.holes {
		s.logger.Debug("dealt", "player", s.players[i], "hole", h)
	}
	return s.snapshot()
}

// Reveal commits the next board stage: three cards on the flop, then one
// each on the turn and river. Equity is included until the river.
func (s *Session) Reveal() (*Snapshot, error) {
	if (s.state != Dealing && s.state != Revealing) || s.stage == River {
		return nil, s.invalid("reveal")
	}

	next := s.stage + 1
	cards, err := s.deck.Draw(stageCards[next])
	if err != nil {
		return nil, fmt.Errorf("revealing %s: %w", next, err)
	}
	s.board = append(s.board, cards...)
	s.stage = next
	s.transition(Revealing)
	s.logger.Debug("revealed", "stage", next, "board", s.board)

	return s.snapshot()
}

func (s *Session) snapshot() (*Snapshot, error) {
	snap := &Snapshot{Stage: s.stage, Board: s.Board()}
	if s.stage == River {
		return snap, nil
	}
	res, err := equity.Estimate(s.holes, s.board, equity.Options{Trials: s.trials}, s.rng)
	if err != nil {
		return nil, err
	}
	snap.Equity = res
	return snap, nil
}

// Showdown compares every player's hand once the river is out
func (s *Session) Showdown() (poker.Showdown, error) {
	if s.state != Revealing || s.stage != River {
		return poker.Showdown{}, s.invalid("showdown")
	}
	sd, err := poker.Winner(s.holes, s.board)
	if err != nil {
		return poker.Showdown{}, err
	}
	s.transition(Showdown)
	s.logger.Info("showdown", "hand", s.hand, "winner", s.players[sd.Index], "with", sd.Name, "split", sd.Split())
	return sd, nil
}

// Settle ends the session and computes payments from the final chip counts
func (s *Session) Settle(positions []settlement.Position, ratio float64) (*settlement.Result, error) {
	if s.state != Idle && s.state != Showdown {
		return nil, s.invalid("settle")
	}
	res, err := settlement.Settle(positions, ratio)
	if err != nil {
		return nil, err
	}
	s.transition(Settling)
	if res.Warning != nil {
		s.logger.Warn("settlement totals do not balance", "err", res.Warning)
	}
	s.logger.Info("settled", "payments", len(res.Payments), "total", res.Paid())
	return res, nil
}

// Reset clears the table and returns to Idle. The history restarts with
// the reset itself.
func (s *Session) Reset() {
	s.history = nil
	s.deck.Reset()
	s.holes = nil
	s.board = nil
	s.stage = Preflop
	s.transition(Idle)
}
