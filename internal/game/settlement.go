package game

import "github.com/lox/dueljack/internal/deck"

// commissionPercent is the fixed house cut taken from the pot before any
// winnings are distributed.
const commissionPercent = 5

// Outcome is a seat's result against the dealer.
type Outcome int

const (
	OutcomeWin Outcome = iota
	OutcomePush
	OutcomeLoss
)

// String returns the string representation of an outcome.
func (o Outcome) String() string {
	switch o {
	case OutcomeWin:
		return "win"
	case OutcomePush:
		return "push"
	case OutcomeLoss:
		return "loss"
	default:
		return "unknown"
	}
}

// Category classifies the round as a whole, for the settlement log.
type Category string

const (
	// CategoryWinners means at least one seat beat the dealer and was paid.
	CategoryWinners Category = "winners_paid"
	// CategoryPush means nobody won but at least one seat tied the dealer.
	CategoryPush Category = "push"
	// CategoryHouseWin means every seat lost outright.
	CategoryHouseWin Category = "house_win"
)

// Settlement is the computed result of a settled round. Stats mutation and
// rematch policy live with the session manager; this is pure arithmetic.
type Settlement struct {
	TableID    string
	Stake      int
	Pot        int
	Commission int
	PerWinner  int
	HouseTake  int
	Winners    []PlayerRef
	Outcomes   map[string]Outcome
	Category   Category

	DealerHand  []deck.Card
	DealerScore int
}

// Rematch reports whether the round produced no winner, which triggers an
// automatic rematch with the same roster and stake.
func (s Settlement) Rematch() bool {
	return len(s.Winners) == 0
}

// Settle resolves a table whose dealer has finished drawing and marks it
// settled. Each seat is judged independently:
//
//  1. a busted seat loses regardless of the dealer,
//  2. a dealer bust pays every surviving seat,
//  3. a natural beats anything but a dealer natural,
//  4. equal scores push (stake returned, no win or loss recorded),
//  5. otherwise the higher score wins.
//
// The commission is 5% of the pot, floored; with winners, the distributable
// remainder is split evenly and any integer-division leftover is folded into
// the house take. With no winners the house keeps the entire pot — including
// the all-push case, which is deliberate observed behaviour.
func Settle(t *Table) Settlement {
	s := Settlement{
		TableID:     t.ID,
		Stake:       t.Stake,
		Pot:         t.Pot,
		Outcomes:    make(map[string]Outcome, len(t.Seats)),
		DealerHand:  append([]deck.Card(nil), t.DealerHand...),
		DealerScore: t.DealerScore,
	}

	for _, p := range t.Seats {
		score := t.Scores[p.ID]
		switch {
		case score > blackjack:
			s.Outcomes[p.ID] = OutcomeLoss
		case t.DealerScore > blackjack:
			s.Outcomes[p.ID] = OutcomeWin
		case t.Naturals[p.ID] && !t.DealerNatural:
			s.Outcomes[p.ID] = OutcomeWin
		case t.DealerNatural && !t.Naturals[p.ID] && score != t.DealerScore:
			s.Outcomes[p.ID] = OutcomeLoss
		case score == t.DealerScore:
			s.Outcomes[p.ID] = OutcomePush
		case score > t.DealerScore:
			s.Outcomes[p.ID] = OutcomeWin
		default:
			s.Outcomes[p.ID] = OutcomeLoss
		}

		if s.Outcomes[p.ID] == OutcomeWin {
			s.Winners = append(s.Winners, p)
		}
	}

	s.Commission = s.Pot * commissionPercent / 100
	if len(s.Winners) > 0 {
		distributable := s.Pot - s.Commission
		s.PerWinner = distributable / len(s.Winners)
		s.HouseTake = s.Commission + (distributable - s.PerWinner*len(s.Winners))
		s.Category = CategoryWinners
	} else {
		s.PerWinner = 0
		s.HouseTake = s.Pot
		s.Category = CategoryHouseWin
		for _, o := range s.Outcomes {
			if o == OutcomePush {
				s.Category = CategoryPush
				break
			}
		}
	}

	t.state = Settled
	return s
}

// Payout returns the amount handed back to a seat: net winnings plus the
// returned stake for a winner, the bare stake for a push, nothing for a
// loss.
func (s Settlement) Payout(p PlayerRef) int {
	switch s.Outcomes[p.ID] {
	case OutcomeWin:
		return s.PerWinner + s.Stake
	case OutcomePush:
		return s.Stake
	default:
		return 0
	}
}
