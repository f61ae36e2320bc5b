package session

import "errors"

var (
	// ErrLobbyNotFound rejects actions against a lobby id that was started,
	// cancelled or never existed.
	ErrLobbyNotFound = errors.New("no such duel lobby")

	// ErrTableNotFound rejects actions against a table id that has already
	// settled or never existed.
	ErrTableNotFound = errors.New("no such table")

	// ErrAlreadyJoined rejects a join by the creator or an existing member.
	ErrAlreadyJoined = errors.New("already part of this duel")

	// ErrLobbyFull rejects a join once the lobby holds the maximum number of
	// seats, creator included.
	ErrLobbyFull = errors.New("duel lobby is full")

	// ErrNotInLobby rejects a leave by a player who never joined.
	ErrNotInLobby = errors.New("not part of this duel")

	// ErrDealerTaken rejects assigning a dealer once a different one is set.
	// There is no dealer replacement; the lobby has to be cancelled.
	ErrDealerTaken = errors.New("a dealer is already assigned")

	// ErrNoDealer rejects a start before any dealer has been assigned.
	ErrNoDealer = errors.New("no dealer assigned yet")

	// ErrNotDealer rejects a start by anyone but the assigned dealer.
	ErrNotDealer = errors.New("only the assigned dealer can start the duel")

	// ErrNotEnoughPlayers rejects a start with fewer than two seats.
	ErrNotEnoughPlayers = errors.New("at least 2 players are needed to start")
)
