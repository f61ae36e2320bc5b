// Package session owns the live state of the duel engine: the lobby and
// table registries, the in-memory stats map, settlement application and the
// automatic-rematch policy. All collaborators (store, clock, RNG, card
// source) are injected; there is no package-level state.
package session

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"

	"github.com/lox/dueljack/internal/deck"
	"github.com/lox/dueljack/internal/game"
	"github.com/lox/dueljack/internal/gameid"
	"github.com/lox/dueljack/internal/randutil"
	"github.com/lox/dueljack/internal/stats"
)

const defaultMaxSeats = 4

// Manager serialises every action under one lock, so an action either fully
// applies or rejects without mutating anything. A multi-threaded host gets
// the per-id mutual exclusion the state machines assume for free.
type Manager struct {
	mu      sync.Mutex
	logger  *log.Logger
	clock   quartz.Clock
	source  game.CardSource
	idgen   *gameid.Generator
	store   stats.Store
	stats   map[string]stats.PlayerStats
	lobbies map[string]*Lobby
	tables  map[string]*game.Table

	maxSeats int
}

// Option configures a Manager.
type Option func(*Manager)

// WithClock injects the clock used for lobby timestamps and the idle sweep.
func WithClock(clock quartz.Clock) Option {
	return func(m *Manager) { m.clock = clock }
}

// WithCardSource injects the card source used to deal every table.
func WithCardSource(source game.CardSource) Option {
	return func(m *Manager) { m.source = source }
}

// WithIDGenerator injects the id generator for lobbies and tables.
func WithIDGenerator(gen *gameid.Generator) Option {
	return func(m *Manager) { m.idgen = gen }
}

// WithMaxSeats overrides the lobby capacity (2-4 seats).
func WithMaxSeats(n int) Option {
	return func(m *Manager) { m.maxSeats = n }
}

// NewManager loads the stats store and returns a ready manager.
func NewManager(store stats.Store, logger *log.Logger, opts ...Option) (*Manager, error) {
	m := &Manager{
		logger:   logger.WithPrefix("session"),
		clock:    quartz.NewReal(),
		store:    store,
		lobbies:  make(map[string]*Lobby),
		tables:   make(map[string]*game.Table),
		maxSeats: defaultMaxSeats,
	}
	for _, opt := range opts {
		opt(m)
	}
	if m.source == nil {
		m.source = deck.NewShoe(randutil.FromTime())
	}
	if m.idgen == nil {
		m.idgen = gameid.NewGenerator(nil)
	}

	loaded, err := store.Load()
	if err != nil {
		return nil, fmt.Errorf("loading stats store: %w", err)
	}
	m.stats = loaded

	return m, nil
}

// ProposeLobby opens a duel lobby with the caller holding the first seat.
func (m *Manager) ProposeLobby(creator game.PlayerRef, stake int) (*LobbySnapshot, error) {
	if stake <= 0 {
		return nil, game.ErrInvalidStake
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	lobby := &Lobby{
		ID:        m.idgen.New(),
		Creator:   creator,
		Stake:     stake,
		CreatedAt: m.clock.Now(),
		maxSeats:  m.maxSeats,
	}
	m.lobbies[lobby.ID] = lobby

	m.logger.Info("duel proposed", "lobby", lobby.ID, "creator", creator.Name, "stake", stake)
	return snapshotLobby(lobby), nil
}

// JoinLobby adds a player to an open lobby.
func (m *Manager) JoinLobby(lobbyID string, p game.PlayerRef) (*LobbySnapshot, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	lobby, ok := m.lobbies[lobbyID]
	if !ok {
		return nil, ErrLobbyNotFound
	}
	if err := lobby.join(p); err != nil {
		return nil, err
	}

	m.logger.Info("player joined duel", "lobby", lobby.ID, "player", p.Name, "seats", lobby.seatCount())
	return snapshotLobby(lobby), nil
}

// LeaveLobby removes a player. If the creator leaves, the lobby is cancelled
// and removed from the registry.
func (m *Manager) LeaveLobby(lobbyID string, p game.PlayerRef) (*LobbySnapshot, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	lobby, ok := m.lobbies[lobbyID]
	if !ok {
		return nil, ErrLobbyNotFound
	}
	cancelled, err := lobby.leave(p)
	if err != nil {
		return nil, err
	}
	if cancelled {
		delete(m.lobbies, lobbyID)
		m.logger.Info("duel cancelled by creator", "lobby", lobby.ID)
	} else {
		m.logger.Info("player left duel", "lobby", lobby.ID, "player", p.Name)
	}
	return snapshotLobby(lobby), nil
}

// AssignDealer records the caller as the lobby's dealer. The role check that
// the caller may act as a dealer at all belongs to the adapter; the core
// only enforces that an assigned dealer is never replaced.
func (m *Manager) AssignDealer(lobbyID string, p game.PlayerRef) (*LobbySnapshot, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	lobby, ok := m.lobbies[lobbyID]
	if !ok {
		return nil, ErrLobbyNotFound
	}
	changed, err := lobby.assignDealer(p)
	if err != nil {
		return nil, err
	}
	if changed {
		m.logger.Info("dealer assigned", "lobby", lobby.ID, "dealer", p.Name)
	}
	return snapshotLobby(lobby), nil
}

// StartLobby converts the lobby into a dealt table. If every seat opened
// with a natural the round resolves immediately, which can settle (and
// rematch) before the call returns.
func (m *Manager) StartLobby(lobbyID string, p game.PlayerRef) (*RoundUpdate, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	lobby, ok := m.lobbies[lobbyID]
	if !ok {
		return nil, ErrLobbyNotFound
	}
	if err := lobby.checkStart(p); err != nil {
		return nil, err
	}

	table, err := game.NewTable(m.idgen.New(), lobby.seats(), lobby.Stake, m.source)
	if err != nil {
		return nil, err
	}

	lobby.state = lobbyStarted
	delete(m.lobbies, lobbyID)
	m.tables[table.ID] = table

	m.logger.Info("duel started", "lobby", lobby.ID, "table", table.ID,
		"seats", len(table.Seats), "stake", table.Stake, "pot", table.Pot)

	return m.resolve(table), nil
}

// Hit draws a card for the acting player at the given table.
func (m *Manager) Hit(tableID string, p game.PlayerRef) (*RoundUpdate, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	table, ok := m.tables[tableID]
	if !ok {
		return nil, ErrTableNotFound
	}
	score, err := table.Hit(p)
	if err != nil {
		return nil, err
	}

	m.logger.Debug("hit", "table", table.ID, "player", p.Name, "score", score)
	return m.resolve(table), nil
}

// Stand marks the acting player as standing at the given table.
func (m *Manager) Stand(tableID string, p game.PlayerRef) (*RoundUpdate, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	table, ok := m.tables[tableID]
	if !ok {
		return nil, ErrTableNotFound
	}
	if err := table.Stand(p); err != nil {
		return nil, err
	}

	m.logger.Debug("stand", "table", table.ID, "player", p.Name)
	return m.resolve(table), nil
}

// resolve finishes the round if no seat is left to act: dealer plays out,
// the settlement is applied to stats and persisted, and — when the round
// produced no winner — a fresh table is dealt for the same roster and stake.
// The loop repeats for rematches whose deal leaves no seat to act (every
// seat a natural), so one player action can settle several rounds. Caller
// holds m.mu.
func (m *Manager) resolve(table *game.Table) *RoundUpdate {
	update := &RoundUpdate{}

	for {
		if table.State() != game.DealerPlay {
			update.Table = snapshotTable(table)
			return update
		}

		table.PlayDealer()
		settlement := game.Settle(table)
		m.applySettlement(table, settlement)
		delete(m.tables, table.ID)
		update.Settlements = append(update.Settlements, settlementRecord(table, settlement))

		if !settlement.Rematch() {
			return update
		}

		// No winner: deal the same roster again at the same stake. The stake
		// and seat count were already validated, so the deal cannot fail.
		next, err := game.NewTable(m.idgen.New(), table.Seats, table.Stake, m.source)
		if err != nil {
			m.logger.Error("rematch deal failed", "table", table.ID, "error", err)
			return update
		}
		m.tables[next.ID] = next
		m.logger.Info("no winner, rematch dealt", "previous", table.ID, "table", next.ID,
			"category", settlement.Category)
		table = next
	}
}

// applySettlement mutates the stats map per the settlement and saves the
// store. A failed save is logged and the in-memory mutation stands; the
// round result is never rolled back for a persistence error.
func (m *Manager) applySettlement(table *game.Table, s game.Settlement) {
	for _, p := range table.Seats {
		ps := m.stats[p.ID]
		ps.TotalWagered += s.Stake
		switch s.Outcomes[p.ID] {
		case game.OutcomeWin:
			ps.TotalReturned += s.PerWinner + s.Stake
			ps.Wins++
		case game.OutcomePush:
			ps.TotalReturned += s.Stake
		case game.OutcomeLoss:
			ps.Losses++
		}
		m.stats[p.ID] = ps
	}

	if err := m.store.Save(m.stats); err != nil {
		m.logger.Error("failed to persist stats", "error", err)
	}

	m.logger.Info("round settled",
		"table", s.TableID,
		"dealer_score", s.DealerScore,
		"participants", len(table.Seats),
		"stake", s.Stake,
		"category", s.Category,
		"winners", len(s.Winners),
		"per_winner", s.PerWinner,
		"commission", s.Commission,
		"house_take", s.HouseTake)
}

// PlayerStats returns the cumulative stats for a player id.
func (m *Manager) PlayerStats(playerID string) (stats.PlayerStats, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	ps, ok := m.stats[playerID]
	return ps, ok
}

// Lobbies returns snapshots of every open lobby.
func (m *Manager) Lobbies() []*LobbySnapshot {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]*LobbySnapshot, 0, len(m.lobbies))
	for _, l := range m.lobbies {
		out = append(out, snapshotLobby(l))
	}
	return out
}

// Tables returns snapshots of every table still in play.
func (m *Manager) Tables() []*TableSnapshot {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]*TableSnapshot, 0, len(m.tables))
	for _, t := range m.tables {
		out = append(out, snapshotTable(t))
	}
	return out
}

// SweepIdleLobbies cancels open lobbies older than maxAge and returns how
// many were removed. Turn duration on live tables is deliberately not
// policed here.
func (m *Manager) SweepIdleLobbies(maxAge time.Duration) int {
	m.mu.Lock()
	defer m.mu.Unlock()

	cutoff := m.clock.Now().Add(-maxAge)
	removed := 0
	for id, lobby := range m.lobbies {
		if lobby.CreatedAt.Before(cutoff) {
			lobby.state = lobbyCancelled
			delete(m.lobbies, id)
			removed++
			m.logger.Info("expired idle lobby", "lobby", id, "creator", lobby.Creator.Name)
		}
	}
	return removed
}

// RunSweeper sweeps idle lobbies on a ticker until the context is done.
func (m *Manager) RunSweeper(ctx context.Context, interval, maxAge time.Duration) error {
	ticker := m.clock.TickerFunc(ctx, interval, func() error {
		m.SweepIdleLobbies(maxAge)
		return nil
	}, "lobby-sweeper")
	return ticker.Wait()
}
