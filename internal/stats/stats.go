// Package stats holds per-player cumulative counters and the durable store
// they are loaded from and saved to. Counters are mutated only by the
// session manager during settlement and are never deleted.
package stats

// PlayerStats accumulates a player's lifetime figures. TotalReturned counts
// everything handed back across rounds: winnings plus returned stakes,
// including stakes returned on a push.
type PlayerStats struct {
	TotalWagered  int `json:"total_wagered"`
	TotalReturned int `json:"total_returned"`
	Wins          int `json:"wins"`
	Losses        int `json:"losses"`
}

// Net is the player's lifetime profit or loss.
func (s PlayerStats) Net() int {
	return s.TotalReturned - s.TotalWagered
}

// Rounds is the number of decided rounds (pushes are not counted).
func (s PlayerStats) Rounds() int {
	return s.Wins + s.Losses
}

// WinRate is the fraction of decided rounds won, 0 when none were decided.
func (s PlayerStats) WinRate() float64 {
	if s.Rounds() == 0 {
		return 0
	}
	return float64(s.Wins) / float64(s.Rounds())
}

// Store persists the stats map keyed by player id. Load must tolerate a
// missing or unreadable backing store by returning an empty map; Save is
// called after every settlement and is best-effort from the caller's side.
type Store interface {
	Load() (map[string]PlayerStats, error)
	Save(map[string]PlayerStats) error
}
