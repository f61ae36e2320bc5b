package stats

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/charmbracelet/log"
)

// fileFormat is the on-disk layout, namespaced under a top-level key so the
// file can grow other sections without a migration.
type fileFormat struct {
	PlayerStats map[string]PlayerStats `json:"player_stats"`
}

// FileStore persists stats as a JSON file. A missing file is an empty store;
// a file that fails to parse is logged and treated as empty rather than
// taking the session down.
type FileStore struct {
	path   string
	logger *log.Logger
}

// NewFileStore creates a store backed by the file at path.
func NewFileStore(path string, logger *log.Logger) *FileStore {
	return &FileStore{path: path, logger: logger.WithPrefix("stats")}
}

// Load reads the stats file.
func (fs *FileStore) Load() (map[string]PlayerStats, error) {
	data, err := os.ReadFile(fs.path)
	if os.IsNotExist(err) {
		return map[string]PlayerStats{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading stats file: %w", err)
	}

	var f fileFormat
	if err := json.Unmarshal(data, &f); err != nil {
		fs.logger.Warn("stats file is corrupt, starting from empty", "path", fs.path, "error", err)
		return map[string]PlayerStats{}, nil
	}
	if f.PlayerStats == nil {
		f.PlayerStats = map[string]PlayerStats{}
	}
	return f.PlayerStats, nil
}

// Save writes the stats file atomically via a temp file rename.
func (fs *FileStore) Save(stats map[string]PlayerStats) error {
	data, err := json.MarshalIndent(fileFormat{PlayerStats: stats}, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding stats: %w", err)
	}

	tmp := fs.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("writing stats file: %w", err)
	}
	if err := os.Rename(tmp, fs.path); err != nil {
		return fmt.Errorf("replacing stats file: %w", err)
	}
	return nil
}
