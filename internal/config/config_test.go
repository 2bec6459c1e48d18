package config

import (
	"os"
	"path/filepath"
	"testing"
)

const validYAML = `
match_id: match-test
arena:
  width: 400
  height: 400
spawn_points:
  - {x: 50, y: 50, z: 0}
  - {x: 350, y: 350, z: 0}
teams:
  - name: blue
    players:
      - {name: alice, skill: 0.8}
      - {name: bob, skill: 0.4}
round_seconds: 300
script: standard-match
seed: 42
`

func writeTemp(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write temp file: %v", err)
	}
	return path
}

func TestLoad_Valid(t *testing.T) {
	path := writeTemp(t, "match.yaml", validYAML)
	cfg, err := Load(path, "")
	if err != nil {
		t.Fatalf("Load() returned error: %v", err)
	}
	if cfg.MatchID != "match-test" {
		t.Errorf("unexpected match id %q", cfg.MatchID)
	}
	if len(cfg.SpawnPoints) != 2 || cfg.PlayerCount() != 2 {
		t.Errorf("unexpected config contents: %+v", cfg)
	}
}

func TestLoad_RejectsMissingSpawnPoints(t *testing.T) {
	path := writeTemp(t, "match.yaml", `
match_id: match-test
teams:
  - name: blue
    players: [{name: alice, skill: 0.5}]
round_seconds: 300
`)
	if _, err := Load(path, ""); err == nil {
		t.Fatalf("expected error for config without spawn points")
	}
}

func TestLoad_RejectsSkillOutOfRange(t *testing.T) {
	path := writeTemp(t, "match.yaml", `
match_id: match-test
spawn_points: [{x: 0, y: 0, z: 0}]
teams:
  - name: blue
    players: [{name: alice, skill: 1.5}]
round_seconds: 300
`)
	if _, err := Load(path, ""); err == nil {
		t.Fatalf("expected error for out-of-range skill")
	}
}

func TestValidateWithCue_RejectsSchemaViolation(t *testing.T) {
	cfgPath := writeTemp(t, "match.yaml", `
match_id: 12345
round_seconds: -1
`)
	schemaPath := writeTemp(t, "match.cue", `
match_id: string
round_seconds: >0
`)
	if err := ValidateWithCue(cfgPath, schemaPath); err == nil {
		t.Fatalf("expected CUE validation failure")
	}
}

func TestValidateWithCue_AcceptsValid(t *testing.T) {
	cfgPath := writeTemp(t, "match.yaml", validYAML)
	schemaPath := writeTemp(t, "match.cue", `
match_id: string
round_seconds: >0
`)
	if err := ValidateWithCue(cfgPath, schemaPath); err != nil {
		t.Fatalf("expected valid config to pass, got %v", err)
	}
}
