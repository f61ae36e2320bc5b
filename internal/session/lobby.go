package session

import (
	"time"

	"github.com/lox/dueljack/internal/game"
)

type lobbyState int

const (
	lobbyOpen lobbyState = iota
	lobbyStarted
	lobbyCancelled
)

func (s lobbyState) String() string {
	switch s {
	case lobbyOpen:
		return "open"
	case lobbyStarted:
		return "started"
	case lobbyCancelled:
		return "cancelled"
	default:
		return "unknown"
	}
}

// Lobby is the pre-round roster for a duel. The creator holds the implicit
// first seat and cannot be removed except by cancelling the whole lobby.
// Once a dealer is assigned it is immutable until the lobby is consumed or
// cancelled.
type Lobby struct {
	ID        string
	Creator   game.PlayerRef
	Stake     int
	Joined    []game.PlayerRef
	Dealer    *game.PlayerRef
	CreatedAt time.Time

	maxSeats int
	state    lobbyState
}

// seatCount is the total roster size including the creator.
func (l *Lobby) seatCount() int {
	return len(l.Joined) + 1
}

// seats returns the turn order for the round: creator first, then members in
// join order.
func (l *Lobby) seats() []game.PlayerRef {
	seats := make([]game.PlayerRef, 0, l.seatCount())
	seats = append(seats, l.Creator)
	seats = append(seats, l.Joined...)
	return seats
}

func (l *Lobby) contains(p game.PlayerRef) bool {
	if l.Creator.Equal(p) {
		return true
	}
	for _, m := range l.Joined {
		if m.Equal(p) {
			return true
		}
	}
	return false
}

// join appends p to the roster.
func (l *Lobby) join(p game.PlayerRef) error {
	if l.contains(p) {
		return ErrAlreadyJoined
	}
	if l.seatCount()+1 > l.maxSeats {
		return ErrLobbyFull
	}
	l.Joined = append(l.Joined, p)
	return nil
}

// leave removes p. A leaving creator cancels the whole lobby; there is no
// hand-off of the creator seat.
func (l *Lobby) leave(p game.PlayerRef) (cancelled bool, err error) {
	if l.Creator.Equal(p) {
		l.state = lobbyCancelled
		return true, nil
	}
	for i, m := range l.Joined {
		if m.Equal(p) {
			l.Joined = append(l.Joined[:i], l.Joined[i+1:]...)
			return false, nil
		}
	}
	return false, ErrNotInLobby
}

// assignDealer records p as the dealer. Re-confirming the same dealer is a
// successful no-op (changed=false); any other actor is rejected once a
// dealer is set.
func (l *Lobby) assignDealer(p game.PlayerRef) (changed bool, err error) {
	if l.Dealer != nil {
		if l.Dealer.Equal(p) {
			return false, nil
		}
		return false, ErrDealerTaken
	}
	dealer := p
	l.Dealer = &dealer
	return true, nil
}

// checkStart validates that p may convert the lobby into a table.
func (l *Lobby) checkStart(p game.PlayerRef) error {
	if l.Dealer == nil {
		return ErrNoDealer
	}
	if !l.Dealer.Equal(p) {
		return ErrNotDealer
	}
	if l.seatCount() < 2 {
		return ErrNotEnoughPlayers
	}
	return nil
}
