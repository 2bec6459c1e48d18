package scenario

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Script defines how hard the simulated opposition leans on the players
// over the course of a match, as ordered phases with transitions.
type Script struct {
	Name        string  `yaml:"name,omitempty"`
	Description string  `yaml:"description,omitempty"`
	Phases      []Phase `yaml:"phases"`
}

// Phase is one stage of a script. Intensity scales the pressure the
// arena bots are put under: above 1 the players struggle, below 1 they
// dominate.
type Phase struct {
	Name        string    `yaml:"name"`
	Description string    `yaml:"description,omitempty"`
	Intensity   float64   `yaml:"intensity"`
	Triggers    []Trigger `yaml:"triggers,omitempty"`
}

// Trigger moves the script to another phase based on a runtime event.
type Trigger struct {
	Event string `yaml:"event"`
	Value int    `yaml:"value"`
	Next  string `yaml:"next"`
}

// Event represents a runtime occurrence that may advance the script.
type Event struct {
	Type  string
	Value int
}

// Trigger event types produced by the runner.
const (
	EventTimeElapsed  = "time_elapsed"
	EventPlayerKills  = "player_kills"
	EventPlayerDeaths = "player_deaths"
)

// Load reads a YAML script definition from disk.
func Load(path string) (*Script, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read script: %w", err)
	}
	var s Script
	if err := yaml.Unmarshal(b, &s); err != nil {
		return nil, fmt.Errorf("parse script: %w", err)
	}
	if len(s.Phases) == 0 {
		return nil, fmt.Errorf("script %q has no phases", s.Name)
	}
	return &s, nil
}

// Phase returns the named phase, or the first phase when not found.
func (s *Script) Phase(name string) Phase {
	for _, p := range s.Phases {
		if p.Name == name {
			return p
		}
	}
	return s.Phases[0]
}

// NextPhase returns the name of the next phase given the current phase
// and event. If no trigger matches, ok is false.
func (s *Script) NextPhase(current string, ev Event) (next string, ok bool) {
	for _, p := range s.Phases {
		if p.Name != current {
			continue
		}
		for _, tr := range p.Triggers {
			if tr.Event == ev.Type && ev.Value >= tr.Value {
				return tr.Next, true
			}
		}
	}
	return "", false
}
