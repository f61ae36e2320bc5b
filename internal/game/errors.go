package game

import "errors"

var (
	// ErrInvalidStake rejects a non-positive per-seat wager.
	ErrInvalidStake = errors.New("stake must be a positive amount")

	// ErrSeatCount rejects a deal with fewer than 2 or more than 4 seats.
	ErrSeatCount = errors.New("a round needs between 2 and 4 seats")

	// ErrNotYourTurn rejects an action by any seat other than the current one.
	ErrNotYourTurn = errors.New("not your turn")

	// ErrRoundOver rejects player actions once the round has left the
	// player-turns phase.
	ErrRoundOver = errors.New("round is no longer accepting player actions")
)
