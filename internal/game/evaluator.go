package game

import "github.com/lox/dueljack/internal/deck"

const (
	blackjack   = 21
	dealerStand = 17
)

// Score returns the best blackjack total for a hand. Every ace starts at 1
// and is promoted to 11 one at a time while the total stays at or under 21,
// which values multi-ace hands correctly (A,A,9 scores 21: one promotion).
func Score(hand []deck.Card) int {
	total, aces := 0, 0
	for _, c := range hand {
		total += int(c)
		if c == deck.Ace {
			aces++
		}
	}
	for aces > 0 && total+10 <= blackjack {
		total += 10
		aces--
	}
	return total
}

// IsNatural reports whether a hand is a natural blackjack: exactly two cards
// scoring 21. A three-card 21 is not a natural.
func IsNatural(hand []deck.Card) bool {
	return len(hand) == 2 && Score(hand) == blackjack
}
