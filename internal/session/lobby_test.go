package session

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/dueljack/internal/game"
)

var (
	alice = game.PlayerRef{ID: "1", Name: "alice"}
	bob   = game.PlayerRef{ID: "2", Name: "bob"}
	carol = game.PlayerRef{ID: "3", Name: "carol"}
	dave  = game.PlayerRef{ID: "4", Name: "dave"}
	erin  = game.PlayerRef{ID: "5", Name: "erin"}
)

func newTestLobby(maxSeats int) *Lobby {
	return &Lobby{ID: "lobby-1", Creator: alice, Stake: 100, maxSeats: maxSeats}
}

func TestLobbyJoinAndSeatOrder(t *testing.T) {
	t.Parallel()

	l := newTestLobby(4)
	require.NoError(t, l.join(bob))
	require.NoError(t, l.join(carol))

	assert.Equal(t, 3, l.seatCount())
	assert.Equal(t, []game.PlayerRef{alice, bob, carol}, l.seats())
}

func TestLobbyJoinRejectsDuplicates(t *testing.T) {
	t.Parallel()

	l := newTestLobby(4)
	require.NoError(t, l.join(bob))

	assert.ErrorIs(t, l.join(bob), ErrAlreadyJoined)
	assert.ErrorIs(t, l.join(alice), ErrAlreadyJoined, "creator already holds a seat")
}

func TestLobbyJoinRejectsWhenFull(t *testing.T) {
	t.Parallel()

	l := newTestLobby(4)
	require.NoError(t, l.join(bob))
	require.NoError(t, l.join(carol))
	require.NoError(t, l.join(dave))

	assert.ErrorIs(t, l.join(erin), ErrLobbyFull)
	assert.Equal(t, 4, l.seatCount())
}

func TestLobbyLeave(t *testing.T) {
	t.Parallel()

	l := newTestLobby(4)
	require.NoError(t, l.join(bob))
	require.NoError(t, l.join(carol))

	cancelled, err := l.leave(bob)
	require.NoError(t, err)
	assert.False(t, cancelled)
	assert.Equal(t, []game.PlayerRef{alice, carol}, l.seats())

	_, err = l.leave(dave)
	assert.ErrorIs(t, err, ErrNotInLobby)
}

func TestLobbyCreatorLeaveCancels(t *testing.T) {
	t.Parallel()

	l := newTestLobby(4)
	require.NoError(t, l.join(bob))

	cancelled, err := l.leave(alice)
	require.NoError(t, err)
	assert.True(t, cancelled)
	assert.Equal(t, lobbyCancelled, l.state)
}

func TestLobbyAssignDealer(t *testing.T) {
	t.Parallel()

	l := newTestLobby(4)

	changed, err := l.assignDealer(bob)
	require.NoError(t, err)
	assert.True(t, changed)

	// Re-confirming the same dealer is a no-op, not an error.
	changed, err = l.assignDealer(bob)
	require.NoError(t, err)
	assert.False(t, changed)

	_, err = l.assignDealer(carol)
	assert.ErrorIs(t, err, ErrDealerTaken)
	assert.True(t, l.Dealer.Equal(bob))
}

func TestLobbyCheckStart(t *testing.T) {
	t.Parallel()

	l := newTestLobby(4)
	assert.ErrorIs(t, l.checkStart(alice), ErrNoDealer)

	_, err := l.assignDealer(bob)
	require.NoError(t, err)
	assert.ErrorIs(t, l.checkStart(alice), ErrNotDealer)
	assert.ErrorIs(t, l.checkStart(bob), ErrNotEnoughPlayers)

	require.NoError(t, l.join(carol))
	assert.NoError(t, l.checkStart(bob))
}
