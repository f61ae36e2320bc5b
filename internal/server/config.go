package server

import (
	"fmt"
	"os"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
)

// Config represents the complete server configuration
type Config struct {
	Server ServerSettings `hcl:"server,block"`
	Game   GameSettings   `hcl:"game,block"`
}

// ServerSettings contains server-level configuration
type ServerSettings struct {
	Address  string `hcl:"address,optional"`
	Port     int    `hcl:"port,optional"`
	LogLevel string `hcl:"log_level,optional"`
	LogFile  string `hcl:"log_file,optional"`
}

// GameSettings contains duel engine configuration
type GameSettings struct {
	MaxSeats          int    `hcl:"max_seats,optional"`
	StatsFile         string `hcl:"stats_file,optional"`
	LobbyIdleMinutes  int    `hcl:"lobby_idle_minutes,optional"`
	SweepEveryMinutes int    `hcl:"sweep_every_minutes,optional"`
}

// DefaultConfig returns default server configuration
func DefaultConfig() *Config {
	return &Config{
		Server: ServerSettings{
			Address:  "localhost",
			Port:     8080,
			LogLevel: "info",
		},
		Game: GameSettings{
			MaxSeats:          4,
			StatsFile:         "dueljack-stats.json",
			LobbyIdleMinutes:  30,
			SweepEveryMinutes: 5,
		},
	}
}

// LoadConfig loads server configuration from an HCL file. A missing file
// yields the defaults.
func LoadConfig(filename string) (*Config, error) {
	if _, err := os.Stat(filename); os.IsNotExist(err) {
		return DefaultConfig(), nil
	}

	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file: %s", diags.Error())
	}

	var config Config
	diags = gohcl.DecodeBody(file.Body, nil, &config)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL: %s", diags.Error())
	}

	// Apply defaults for missing values
	if config.Server.Address == "" {
		config.Server.Address = "localhost"
	}
	if config.Server.Port == 0 {
		config.Server.Port = 8080
	}
	if config.Server.LogLevel == "" {
		config.Server.LogLevel = "info"
	}
	if config.Game.MaxSeats == 0 {
		config.Game.MaxSeats = 4
	}
	if config.Game.StatsFile == "" {
		config.Game.StatsFile = "dueljack-stats.json"
	}
	if config.Game.LobbyIdleMinutes == 0 {
		config.Game.LobbyIdleMinutes = 30
	}
	if config.Game.SweepEveryMinutes == 0 {
		config.Game.SweepEveryMinutes = 5
	}

	return &config, nil
}

// Validate validates the server configuration
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid port: %d", c.Server.Port)
	}
	if c.Game.MaxSeats < 2 || c.Game.MaxSeats > 4 {
		return fmt.Errorf("max seats must be between 2 and 4, got %d", c.Game.MaxSeats)
	}
	if c.Game.LobbyIdleMinutes < 1 {
		return fmt.Errorf("lobby idle minutes must be positive, got %d", c.Game.LobbyIdleMinutes)
	}
	if c.Game.SweepEveryMinutes < 1 {
		return fmt.Errorf("sweep interval must be positive, got %d", c.Game.SweepEveryMinutes)
	}
	return nil
}

// GetServerAddress returns the full server address
func (c *Config) GetServerAddress() string {
	return fmt.Sprintf("%s:%d", c.Server.Address, c.Server.Port)
}
