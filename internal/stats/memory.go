package stats

// MemoryStore keeps stats in memory, for tests and simulations.
type MemoryStore struct {
	data map[string]PlayerStats
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{data: map[string]PlayerStats{}}
}

// Load returns a copy of the stored map.
func (ms *MemoryStore) Load() (map[string]PlayerStats, error) {
	out := make(map[string]PlayerStats, len(ms.data))
	for k, v := range ms.data {
		out[k] = v
	}
	return out, nil
}

// Save replaces the stored map with a copy of the argument.
func (ms *MemoryStore) Save(stats map[string]PlayerStats) error {
	ms.data = make(map[string]PlayerStats, len(stats))
	for k, v := range stats {
		ms.data[k] = v
	}
	return nil
}
