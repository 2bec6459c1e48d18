// YAML config loader for the match simulation harness, with CUE schema
// validation. Director-internal tuning (difficulty profiles, encounter
// table, pacing curve) is compiled in and deliberately absent here.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Point is a spawn point location in arena units.
type Point struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
	Z float64 `yaml:"z"`
}

// Player configures one simulated player bot.
type Player struct {
	Name  string  `yaml:"name"`
	Skill float64 `yaml:"skill"` // 0..1, drives hit and survival odds
}

// Team groups simulated players.
type Team struct {
	Name    string   `yaml:"name"`
	Players []Player `yaml:"players"`
}

// Arena describes the playable area.
type Arena struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

// MatchConfig is the root configuration for one simulated match.
type MatchConfig struct {
	MatchID      string  `yaml:"match_id"`
	Arena        Arena   `yaml:"arena"`
	SpawnPoints  []Point `yaml:"spawn_points"`
	Teams        []Team  `yaml:"teams"`
	RoundSeconds float64 `yaml:"round_seconds"`
	Script       string  `yaml:"script"`
	Seed         int64   `yaml:"seed"`
}

// Load reads the YAML config, validates it against the CUE schema, then
// applies semantic checks the schema cannot express.
func Load(configPath, cueSchemaPath string) (*MatchConfig, error) {
	if err := ValidateWithCue(configPath, cueSchemaPath); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, err
	}
	var cfg MatchConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate applies semantic checks on a decoded config.
func (c *MatchConfig) Validate() error {
	if c.MatchID == "" {
		return fmt.Errorf("match_id is required")
	}
	if len(c.SpawnPoints) == 0 {
		return fmt.Errorf("at least one spawn point is required")
	}
	if len(c.Teams) == 0 {
		return fmt.Errorf("at least one team is required")
	}
	for _, t := range c.Teams {
		if len(t.Players) == 0 {
			return fmt.Errorf("team %q has no players", t.Name)
		}
		for _, p := range t.Players {
			if p.Skill < 0 || p.Skill > 1 {
				return fmt.Errorf("player %q skill %f outside [0,1]", p.Name, p.Skill)
			}
		}
	}
	if c.RoundSeconds <= 0 {
		return fmt.Errorf("round_seconds must be positive")
	}
	return nil
}

// PlayerCount returns the total number of configured players.
func (c *MatchConfig) PlayerCount() int {
	n := 0
	for _, t := range c.Teams {
		n += len(t.Players)
	}
	return n
}
