package deck

import rand "math/rand/v2"

// drawTable is the distribution of a single pull: each of the thirteen ranks
// of a suit once, with T/J/Q/K collapsed to 10. Ten-valued cards are
// therefore four times as likely as any other single value.
var drawTable = []Card{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 10, 10, 10}

// Shoe deals card values with replacement. Draws are independent and the
// shoe never depletes, modelling a 52-card shoe collapsed to point values
// rather than a finite shuffled deck.
type Shoe struct {
	rng *rand.Rand
}

// NewShoe creates a shoe drawing from the provided RNG.
func NewShoe(rng *rand.Rand) *Shoe {
	return &Shoe{rng: rng}
}

// Draw returns the next card value.
func (s *Shoe) Draw() Card {
	return drawTable[s.rng.IntN(len(drawTable))]
}

// DrawN draws n cards.
func (s *Shoe) DrawN(n int) []Card {
	cards := make([]Card, n)
	for i := range cards {
		cards[i] = s.Draw()
	}
	return cards
}
