package main

import (
	"fmt"
	"time"

	"github.com/lox/dueljack/internal/deck"
	"github.com/lox/dueljack/internal/game"
	"github.com/lox/dueljack/internal/randutil"
	"github.com/lox/dueljack/internal/session"
	"github.com/lox/dueljack/internal/stats"
)

// SimulateCmd plays duels against the engine with a fixed policy: every seat
// hits below 17 and stands otherwise. Useful for eyeballing the settlement
// distribution and for smoke-testing the full session flow.
type SimulateCmd struct {
	Duels   int   `kong:"default='1000',help='Number of duels to play'"`
	Players int   `kong:"default='2',help='Seats per duel (2-4)'"`
	Stake   int   `kong:"default='100',help='Stake per seat'"`
	Seed    int64 `kong:"default='0',help='RNG seed (0 for time-based)'"`
	Debug   bool  `kong:"help='Enable debug logging'"`
}

const standThreshold = 17

func (c *SimulateCmd) Run() error {
	logger := setupLogger("warn", c.Debug)

	seed := c.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	logger.Info("Simulating duels", "duels", c.Duels, "players", c.Players, "stake", c.Stake, "seed", seed)

	shoe := deck.NewShoe(randutil.New(seed))
	manager, err := session.NewManager(stats.NewMemoryStore(), logger,
		session.WithCardSource(shoe))
	if err != nil {
		return err
	}

	players := make([]game.PlayerRef, c.Players)
	byID := make(map[string]game.PlayerRef, c.Players)
	for i := range players {
		players[i] = game.PlayerRef{
			ID:   fmt.Sprintf("sim-%d", i+1),
			Name: fmt.Sprintf("player-%d", i+1),
		}
		byID[players[i].ID] = players[i]
	}
	croupier := game.PlayerRef{ID: "croupier", Name: "croupier"}

	rounds := 0
	rematches := 0
	categories := map[string]int{}
	houseTake := 0

	for i := 0; i < c.Duels; i++ {
		update, err := c.playDuel(manager, players, croupier)
		if err != nil {
			return fmt.Errorf("duel %d: %w", i+1, err)
		}
		for _, rec := range update {
			rounds++
			categories[rec.Category]++
			houseTake += rec.HouseTake
			if rec.Rematch {
				rematches++
			}
		}
	}

	fmt.Printf("duels:     %d\n", c.Duels)
	fmt.Printf("rounds:    %d (%d forced rematches)\n", rounds, rematches)
	for _, cat := range []string{"winners_paid", "push", "house_win"} {
		fmt.Printf("%-10s %d\n", cat+":", categories[cat])
	}
	fmt.Printf("house take: %d\n", houseTake)
	fmt.Println()

	for _, p := range players {
		ps, _ := manager.PlayerStats(p.ID)
		fmt.Printf("%s: wagered=%d returned=%d net=%+d wins=%d losses=%d winrate=%.3f\n",
			p.Name, ps.TotalWagered, ps.TotalReturned, ps.Net(), ps.Wins, ps.Losses, ps.WinRate())
	}

	return nil
}

// playDuel runs one duel to completion, rematches included, and returns the
// settlement records it produced.
func (c *SimulateCmd) playDuel(manager *session.Manager, players []game.PlayerRef, croupier game.PlayerRef) ([]session.SettlementRecord, error) {
	lobby, err := manager.ProposeLobby(players[0], c.Stake)
	if err != nil {
		return nil, err
	}
	for _, p := range players[1:] {
		if _, err := manager.JoinLobby(lobby.ID, p); err != nil {
			return nil, err
		}
	}
	if _, err := manager.AssignDealer(lobby.ID, croupier); err != nil {
		return nil, err
	}

	update, err := manager.StartLobby(lobby.ID, croupier)
	if err != nil {
		return nil, err
	}

	records := update.Settlements
	for update.Table != nil {
		table := update.Table
		cur := table.Current
		if cur == nil {
			return nil, fmt.Errorf("table %s awaits input with no current player", table.ID)
		}

		score := 0
		for _, seat := range table.Seats {
			if seat.Player.ID == cur.ID {
				score = seat.Score
				break
			}
		}

		actor := game.PlayerRef{ID: cur.ID, Name: cur.Name}
		if score < standThreshold {
			update, err = manager.Hit(table.ID, actor)
		} else {
			update, err = manager.Stand(table.ID, actor)
		}
		if err != nil {
			return nil, err
		}
		records = append(records, update.Settlements...)
	}

	return records, nil
}
