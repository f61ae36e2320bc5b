package session

import (
	"github.com/lox/dueljack/internal/deck"
	"github.com/lox/dueljack/internal/game"
)

// PlayerInfo is the render-facing identity of a player.
type PlayerInfo struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

func playerInfo(p game.PlayerRef) PlayerInfo {
	return PlayerInfo{ID: p.ID, Name: p.Name}
}

func playerInfos(ps []game.PlayerRef) []PlayerInfo {
	out := make([]PlayerInfo, len(ps))
	for i, p := range ps {
		out[i] = playerInfo(p)
	}
	return out
}

// LobbySnapshot is a point-in-time view of a lobby for rendering.
type LobbySnapshot struct {
	ID       string       `json:"id"`
	Creator  PlayerInfo   `json:"creator"`
	Stake    int          `json:"stake"`
	Players  []PlayerInfo `json:"players"`
	Dealer   *PlayerInfo  `json:"dealer,omitempty"`
	Capacity int          `json:"capacity"`
	State    string       `json:"state"`
}

func snapshotLobby(l *Lobby) *LobbySnapshot {
	s := &LobbySnapshot{
		ID:       l.ID,
		Creator:  playerInfo(l.Creator),
		Stake:    l.Stake,
		Players:  playerInfos(l.seats()),
		Capacity: l.maxSeats,
		State:    l.state.String(),
	}
	if l.Dealer != nil {
		d := playerInfo(*l.Dealer)
		s.Dealer = &d
	}
	return s
}

// SeatView is one seat's visible state during a round.
type SeatView struct {
	Player   PlayerInfo `json:"player"`
	Hand     []int      `json:"hand"`
	Score    int        `json:"score"`
	Standing bool       `json:"standing"`
	Natural  bool       `json:"natural"`
	Current  bool       `json:"current"`
}

// TableSnapshot is a point-in-time view of an in-progress round. Only the
// dealer's first card is exposed until the round resolves.
type TableSnapshot struct {
	ID           string       `json:"id"`
	Stake        int          `json:"stake"`
	Pot          int          `json:"pot"`
	Seats        []SeatView   `json:"seats"`
	DealerUpcard int          `json:"dealer_upcard"`
	State        string       `json:"state"`
	Current      *PlayerInfo  `json:"current,omitempty"`
}

func snapshotTable(t *game.Table) *TableSnapshot {
	current, hasCurrent := t.CurrentPlayer()

	s := &TableSnapshot{
		ID:           t.ID,
		Stake:        t.Stake,
		Pot:          t.Pot,
		Seats:        make([]SeatView, len(t.Seats)),
		DealerUpcard: int(t.DealerHand[0]),
		State:        t.State().String(),
	}
	for i, p := range t.Seats {
		s.Seats[i] = SeatView{
			Player:   playerInfo(p),
			Hand:     deck.Values(t.Hands[p.ID]),
			Score:    t.Scores[p.ID],
			Standing: t.Standing[p.ID],
			Natural:  t.Naturals[p.ID],
			Current:  hasCurrent && current.Equal(p),
		}
	}
	if hasCurrent {
		c := playerInfo(current)
		s.Current = &c
	}
	return s
}

// SettledSeat is one seat's final line in a settlement record.
type SettledSeat struct {
	Player  PlayerInfo `json:"player"`
	Hand    []int      `json:"hand"`
	Score   int        `json:"score"`
	Natural bool       `json:"natural"`
	Outcome string     `json:"outcome"`
	Payout  int        `json:"payout"`
}

// SettlementRecord is the full outcome of one settled round: everything an
// adapter needs to render the end-of-round summary and the audit log line.
type SettlementRecord struct {
	TableID     string        `json:"table_id"`
	Stake       int           `json:"stake"`
	Pot         int           `json:"pot"`
	Commission  int           `json:"commission"`
	PerWinner   int           `json:"per_winner"`
	HouseTake   int           `json:"house_take"`
	Category    string        `json:"category"`
	Winners     []PlayerInfo  `json:"winners"`
	Seats       []SettledSeat `json:"seats"`
	DealerHand  []int         `json:"dealer_hand"`
	DealerScore int           `json:"dealer_score"`
	Rematch     bool          `json:"rematch"`
}

func settlementRecord(t *game.Table, s game.Settlement) SettlementRecord {
	r := SettlementRecord{
		TableID:     s.TableID,
		Stake:       s.Stake,
		Pot:         s.Pot,
		Commission:  s.Commission,
		PerWinner:   s.PerWinner,
		HouseTake:   s.HouseTake,
		Category:    string(s.Category),
		Winners:     playerInfos(s.Winners),
		Seats:       make([]SettledSeat, len(t.Seats)),
		DealerHand:  deck.Values(s.DealerHand),
		DealerScore: s.DealerScore,
		Rematch:     s.Rematch(),
	}
	for i, p := range t.Seats {
		r.Seats[i] = SettledSeat{
			Player:  playerInfo(p),
			Hand:    deck.Values(t.Hands[p.ID]),
			Score:   t.Scores[p.ID],
			Natural: t.Naturals[p.ID],
			Outcome: s.Outcomes[p.ID].String(),
			Payout:  s.Payout(p),
		}
	}
	return r
}

// RoundUpdate is the result of a table action or a lobby start: zero or more
// rounds settled by the action (more than one when auto-rematches settle
// instantly), and the table still awaiting player input, if any.
type RoundUpdate struct {
	Table       *TableSnapshot     `json:"table,omitempty"`
	Settlements []SettlementRecord `json:"settlements,omitempty"`
}
