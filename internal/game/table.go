package game

import "github.com/lox/dueljack/internal/deck"

// CardSource deals card values. *deck.Shoe is the production source; tests
// inject scripted sequences.
type CardSource interface {
	Draw() deck.Card
}

// State is the lifecycle phase of a table.
type State int

const (
	// PlayerTurns means at least one seat still has to act.
	PlayerTurns State = iota
	// DealerPlay means every seat is standing and the dealer resolves.
	DealerPlay
	// Settled is terminal; the table is handed to settlement and removed.
	Settled
)

// String returns the string representation of a table state.
func (s State) String() string {
	switch s {
	case PlayerTurns:
		return "player_turns"
	case DealerPlay:
		return "dealer_play"
	case Settled:
		return "settled"
	default:
		return "unknown"
	}
}

// Table owns a single blackjack round: the seats in turn order, one hand per
// seat, the dealer hand, and the turn cursor. Seat maps are keyed by
// PlayerRef.ID. A table never outlives its round; a rematch is a new table.
type Table struct {
	ID    string
	Seats []PlayerRef
	Stake int
	Pot   int

	Hands    map[string][]deck.Card
	Scores   map[string]int
	Standing map[string]bool
	Naturals map[string]bool

	DealerHand    []deck.Card
	DealerScore   int
	DealerNatural bool

	state     State
	turnIndex int
	source    CardSource
}

// NewTable seats the players in the given order, deals two cards to every
// seat and the dealer, and advances the cursor past any seat that opened
// with a natural blackjack. Naturals stand automatically; if every seat is a
// natural the table starts in DealerPlay.
func NewTable(id string, seats []PlayerRef, stake int, source CardSource) (*Table, error) {
	if stake <= 0 {
		return nil, ErrInvalidStake
	}
	if len(seats) < 2 || len(seats) > 4 {
		return nil, ErrSeatCount
	}

	t := &Table{
		ID:       id,
		Seats:    append([]PlayerRef(nil), seats...),
		Stake:    stake,
		Pot:      stake * len(seats),
		Hands:    make(map[string][]deck.Card, len(seats)),
		Scores:   make(map[string]int, len(seats)),
		Standing: make(map[string]bool, len(seats)),
		Naturals: make(map[string]bool, len(seats)),
		source:   source,
	}

	for _, p := range t.Seats {
		hand := []deck.Card{source.Draw(), source.Draw()}
		t.Hands[p.ID] = hand
		t.Scores[p.ID] = Score(hand)
		if IsNatural(hand) {
			t.Naturals[p.ID] = true
			t.Standing[p.ID] = true
		}
	}

	t.DealerHand = []deck.Card{source.Draw(), source.Draw()}
	t.DealerScore = Score(t.DealerHand)
	t.DealerNatural = IsNatural(t.DealerHand)

	t.advanceFrom(0)
	return t, nil
}

// State returns the table's lifecycle phase.
func (t *Table) State() State {
	return t.state
}

// CurrentPlayer returns the seat whose turn it is. ok is false once every
// seat is standing and the round has moved to dealer resolution.
func (t *Table) CurrentPlayer() (PlayerRef, bool) {
	if t.turnIndex >= 0 && t.turnIndex < len(t.Seats) {
		return t.Seats[t.turnIndex], true
	}
	return PlayerRef{}, false
}

// advanceFrom moves the cursor to the first non-standing seat at or after i,
// flipping to DealerPlay when none remains.
func (t *Table) advanceFrom(i int) {
	for i < len(t.Seats) && t.Standing[t.Seats[i].ID] {
		i++
	}
	t.turnIndex = i
	if t.turnIndex == len(t.Seats) && t.state == PlayerTurns {
		t.state = DealerPlay
	}
}

// Hit draws one card for the current player and recomputes their score. A
// score of 21 or more forces the seat to stand and advances the turn;
// otherwise the turn stays with the same seat. Any other actor is rejected
// with ErrNotYourTurn and nothing changes.
func (t *Table) Hit(p PlayerRef) (int, error) {
	if err := t.checkTurn(p); err != nil {
		return 0, err
	}

	t.Hands[p.ID] = append(t.Hands[p.ID], t.source.Draw())
	score := Score(t.Hands[p.ID])
	t.Scores[p.ID] = score

	if score >= blackjack {
		t.Standing[p.ID] = true
		t.advanceFrom(t.turnIndex)
	}
	return score, nil
}

// Stand marks the current player as standing and advances the turn. Standing
// is monotone: the flag is never cleared within a round, so a second Stand
// by the same seat fails the turn check.
func (t *Table) Stand(p PlayerRef) error {
	if err := t.checkTurn(p); err != nil {
		return err
	}
	t.Standing[p.ID] = true
	t.advanceFrom(t.turnIndex)
	return nil
}

func (t *Table) checkTurn(p PlayerRef) error {
	if t.state != PlayerTurns {
		return ErrRoundOver
	}
	current, ok := t.CurrentPlayer()
	if !ok || !current.Equal(p) {
		return ErrNotYourTurn
	}
	return nil
}

// PlayDealer runs the fixed dealer policy: draw until the hand scores 17 or
// more, with ace promotion applied after every draw. No soft-17 special
// case beyond the evaluator's own promotion rule.
func (t *Table) PlayDealer() {
	if t.state != DealerPlay {
		return
	}
	for t.DealerScore < dealerStand {
		t.DealerHand = append(t.DealerHand, t.source.Draw())
		t.DealerScore = Score(t.DealerHand)
	}
	t.DealerNatural = IsNatural(t.DealerHand)
}
