package deck

import "strconv"

// Card is the blackjack point value of a drawn card: 1 for an ace, 2-9 at
// face value, 10 for tens and face cards. Suits never affect scoring and are
// not modelled.
type Card int

const (
	Ace Card = 1
	Ten Card = 10
)

// String renders the card for logs and snapshots ("A" for an ace).
func (c Card) String() string {
	if c == Ace {
		return "A"
	}
	return strconv.Itoa(int(c))
}

// Values converts a hand to plain ints for serialization.
func Values(hand []Card) []int {
	out := make([]int, len(hand))
	for i, c := range hand {
		out[i] = int(c)
	}
	return out
}
