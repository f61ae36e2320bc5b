package game

import (
	"errors"
	"testing"

	"github.com/lox/dueljack/internal/deck"
)

// scriptedSource deals a fixed sequence of cards.
type scriptedSource struct {
	cards []deck.Card
	next  int
}

func (s *scriptedSource) Draw() deck.Card {
	if s.next >= len(s.cards) {
		panic("scripted source exhausted")
	}
	c := s.cards[s.next]
	s.next++
	return c
}

var (
	alice = PlayerRef{ID: "1", Name: "alice"}
	bob   = PlayerRef{ID: "2", Name: "bob"}
	carol = PlayerRef{ID: "3", Name: "carol"}
)

func TestNewTableValidation(t *testing.T) {
	t.Parallel()

	src := &scriptedSource{cards: []deck.Card{5, 5, 5, 5, 5, 5}}

	if _, err := NewTable("t1", []PlayerRef{alice, bob}, 0, src); !errors.Is(err, ErrInvalidStake) {
		t.Errorf("expected ErrInvalidStake, got %v", err)
	}
	if _, err := NewTable("t1", []PlayerRef{alice}, 100, src); !errors.Is(err, ErrSeatCount) {
		t.Errorf("expected ErrSeatCount, got %v", err)
	}
	if _, err := NewTable("t1", []PlayerRef{alice, bob, carol, alice, bob}, 100, src); !errors.Is(err, ErrSeatCount) {
		t.Errorf("expected ErrSeatCount, got %v", err)
	}
}

func TestNewTableDealsAndComputesPot(t *testing.T) {
	t.Parallel()

	// alice: 5,9  bob: 10,7  dealer: 6,10
	src := &scriptedSource{cards: []deck.Card{5, 9, 10, 7, 6, 10}}
	table, err := NewTable("t1", []PlayerRef{alice, bob}, 100, src)
	if err != nil {
		t.Fatal(err)
	}

	if table.Pot != 200 {
		t.Errorf("pot should be 200, got %d", table.Pot)
	}
	if table.Scores[alice.ID] != 14 || table.Scores[bob.ID] != 17 {
		t.Errorf("unexpected scores: %v", table.Scores)
	}
	if table.DealerScore != 16 {
		t.Errorf("dealer score should be 16, got %d", table.DealerScore)
	}
	if current, ok := table.CurrentPlayer(); !ok || !current.Equal(alice) {
		t.Errorf("first seat should act first, got %v ok=%v", current, ok)
	}
	if table.State() != PlayerTurns {
		t.Errorf("expected PlayerTurns, got %v", table.State())
	}
}

func TestNaturalAutoStandsAndIsSkipped(t *testing.T) {
	t.Parallel()

	// alice: A,10 natural  bob: 5,9  dealer: 6,10
	src := &scriptedSource{cards: []deck.Card{1, 10, 5, 9, 6, 10}}
	table, err := NewTable("t1", []PlayerRef{alice, bob}, 50, src)
	if err != nil {
		t.Fatal(err)
	}

	if !table.Naturals[alice.ID] || !table.Standing[alice.ID] {
		t.Error("a natural must auto-stand")
	}
	if current, ok := table.CurrentPlayer(); !ok || !current.Equal(bob) {
		t.Errorf("cursor should skip the natural seat, got %v ok=%v", current, ok)
	}
}

func TestAllNaturalsGoStraightToDealer(t *testing.T) {
	t.Parallel()

	src := &scriptedSource{cards: []deck.Card{1, 10, 10, 1, 6, 10}}
	table, err := NewTable("t1", []PlayerRef{alice, bob}, 50, src)
	if err != nil {
		t.Fatal(err)
	}

	if _, ok := table.CurrentPlayer(); ok {
		t.Error("no seat should be current when everyone dealt a natural")
	}
	if table.State() != DealerPlay {
		t.Errorf("expected DealerPlay, got %v", table.State())
	}
}

func TestHitKeepsTurnBelowTwentyOne(t *testing.T) {
	t.Parallel()

	// alice: 2,3 then draws 4  bob: 5,9  dealer: 6,10
	src := &scriptedSource{cards: []deck.Card{2, 3, 5, 9, 6, 10, 4}}
	table, err := NewTable("t1", []PlayerRef{alice, bob}, 100, src)
	if err != nil {
		t.Fatal(err)
	}

	score, err := table.Hit(alice)
	if err != nil {
		t.Fatal(err)
	}
	if score != 9 {
		t.Errorf("expected score 9, got %d", score)
	}
	if current, _ := table.CurrentPlayer(); !current.Equal(alice) {
		t.Error("turn should stay with the same seat below 21")
	}
}

func TestHitBustForcesStandAndAdvances(t *testing.T) {
	t.Parallel()

	// alice: 10,9 then draws 10 -> bust 29
	src := &scriptedSource{cards: []deck.Card{10, 9, 5, 9, 6, 10, 10}}
	table, err := NewTable("t1", []PlayerRef{alice, bob}, 100, src)
	if err != nil {
		t.Fatal(err)
	}

	score, err := table.Hit(alice)
	if err != nil {
		t.Fatal(err)
	}
	if score != 29 {
		t.Errorf("expected bust score 29, got %d", score)
	}
	if !table.Standing[alice.ID] {
		t.Error("bust must force standing")
	}
	if current, _ := table.CurrentPlayer(); !current.Equal(bob) {
		t.Error("turn should advance after a bust")
	}
}

func TestHitExactTwentyOneAdvances(t *testing.T) {
	t.Parallel()

	// alice: 10,9 then draws 2 -> exactly 21, auto-stand
	src := &scriptedSource{cards: []deck.Card{10, 9, 5, 9, 6, 10, 2}}
	table, err := NewTable("t1", []PlayerRef{alice, bob}, 100, src)
	if err != nil {
		t.Fatal(err)
	}

	if _, err := table.Hit(alice); err != nil {
		t.Fatal(err)
	}
	if !table.Standing[alice.ID] {
		t.Error("reaching exactly 21 must force standing")
	}
	if current, _ := table.CurrentPlayer(); !current.Equal(bob) {
		t.Error("turn should advance after reaching 21")
	}
}

func TestTurnViolations(t *testing.T) {
	t.Parallel()

	src := &scriptedSource{cards: []deck.Card{5, 9, 10, 7, 6, 10}}
	table, err := NewTable("t1", []PlayerRef{alice, bob}, 100, src)
	if err != nil {
		t.Fatal(err)
	}

	if _, err := table.Hit(bob); !errors.Is(err, ErrNotYourTurn) {
		t.Errorf("expected ErrNotYourTurn for out-of-turn hit, got %v", err)
	}
	if err := table.Stand(bob); !errors.Is(err, ErrNotYourTurn) {
		t.Errorf("expected ErrNotYourTurn for out-of-turn stand, got %v", err)
	}

	// A second stand by the same seat is a turn violation: the cursor has
	// already moved on.
	if err := table.Stand(alice); err != nil {
		t.Fatal(err)
	}
	if err := table.Stand(alice); !errors.Is(err, ErrNotYourTurn) {
		t.Errorf("repeated stand should be rejected, got %v", err)
	}
}

func TestTurnAdvanceSkipsStandingSeats(t *testing.T) {
	t.Parallel()

	// alice: A,10 natural  bob: 5,9  carol: 10,7  dealer: 6,10
	src := &scriptedSource{cards: []deck.Card{1, 10, 5, 9, 10, 7, 6, 10}}
	table, err := NewTable("t1", []PlayerRef{alice, bob, carol}, 100, src)
	if err != nil {
		t.Fatal(err)
	}

	if current, _ := table.CurrentPlayer(); !current.Equal(bob) {
		t.Fatalf("expected bob first (alice standing), got %v", current)
	}
	if err := table.Stand(bob); err != nil {
		t.Fatal(err)
	}
	if current, _ := table.CurrentPlayer(); !current.Equal(carol) {
		t.Errorf("expected carol after bob stands, got %v", current)
	}
	if err := table.Stand(carol); err != nil {
		t.Fatal(err)
	}
	if table.State() != DealerPlay {
		t.Errorf("expected DealerPlay once every seat stands, got %v", table.State())
	}
	if _, err := table.Hit(carol); !errors.Is(err, ErrRoundOver) {
		t.Errorf("actions after the last stand should report ErrRoundOver, got %v", err)
	}
}

func TestPlayDealerDrawsToSeventeen(t *testing.T) {
	t.Parallel()

	// dealer: 6,10 = 16, draws 5 -> 21
	src := &scriptedSource{cards: []deck.Card{10, 9, 10, 8, 6, 10, 5}}
	table, err := NewTable("t1", []PlayerRef{alice, bob}, 100, src)
	if err != nil {
		t.Fatal(err)
	}
	if err := table.Stand(alice); err != nil {
		t.Fatal(err)
	}
	if err := table.Stand(bob); err != nil {
		t.Fatal(err)
	}

	table.PlayDealer()
	if table.DealerScore != 21 {
		t.Errorf("dealer should finish on 21, got %d", table.DealerScore)
	}
	if len(table.DealerHand) != 3 {
		t.Errorf("dealer should have drawn once, hand %v", table.DealerHand)
	}
}

func TestPlayDealerSoftAcePromotion(t *testing.T) {
	t.Parallel()

	// dealer: A,6 = soft 17, stands immediately
	src := &scriptedSource{cards: []deck.Card{10, 9, 10, 8, 1, 6}}
	table, err := NewTable("t1", []PlayerRef{alice, bob}, 100, src)
	if err != nil {
		t.Fatal(err)
	}
	if err := table.Stand(alice); err != nil {
		t.Fatal(err)
	}
	if err := table.Stand(bob); err != nil {
		t.Fatal(err)
	}

	table.PlayDealer()
	if table.DealerScore != 17 {
		t.Errorf("dealer should stand on soft 17, got %d", table.DealerScore)
	}
	if len(table.DealerHand) != 2 {
		t.Errorf("dealer should not draw on soft 17, hand %v", table.DealerHand)
	}
}
