package game

// PlayerRef identifies a participant. The engine never creates or destroys
// identities, it only references them; equality is on ID alone, never on the
// display name.
type PlayerRef struct {
	ID   string
	Name string
}

// Equal reports whether two refs point at the same player.
func (p PlayerRef) Equal(other PlayerRef) bool {
	return p.ID == other.ID
}
