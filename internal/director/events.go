// Notification rows emitted by the director, with greptime tags.
package director

import "time"

// DifficultyRow records a difficulty adjustment.
type DifficultyRow struct {
	MatchID       string    `json:"match_id"` // TAG
	Profile       string    `json:"profile"`  // FIELD
	ScalingFactor float64   `json:"scaling_factor"`
	ReactionTime  float64   `json:"reaction_time"`
	Accuracy      float64   `json:"accuracy"`
	Aggression    float64   `json:"aggression"`
	SpawnRate     float64   `json:"spawn_rate"`
	Health        float64   `json:"health"`
	Timestamp     time.Time `json:"ts"` // TIME INDEX
}

func (DifficultyRow) TableName() string { return "director_difficulty" }

// PacingRow records a pacing phase transition.
type PacingRow struct {
	MatchID       string    `json:"match_id"` // TAG
	Phase         string    `json:"phase"`    // FIELD
	TargetTension float64   `json:"target_tension"`
	Tension       float64   `json:"tension"`
	Timestamp     time.Time `json:"ts"` // TIME INDEX
}

func (PacingRow) TableName() string { return "director_pacing" }

// Encounter lifecycle event types.
const (
	EncounterSpawned = "spawned"
	EncounterEnded   = "ended"
)

// EncounterRow records an encounter spawn or teardown.
type EncounterRow struct {
	MatchID     string    `json:"match_id"`   // TAG
	EventType   string    `json:"event_type"` // TAG
	EncounterID string    `json:"encounter_id"`
	Type        string    `json:"type"`
	Difficulty  string    `json:"difficulty,omitempty"`
	X           float64   `json:"x"`
	Y           float64   `json:"y"`
	Z           float64   `json:"z"`
	ActorCount  int       `json:"actor_count"`
	Timestamp   time.Time `json:"ts"` // TIME INDEX
}

func (EncounterRow) TableName() string { return "director_encounters" }

// EventSink receives director notifications. Writes are fire-and-forget
// from the director's point of view: errors are logged, never acted on.
type EventSink interface {
	WriteDifficulty(DifficultyRow) error
	WritePacing(PacingRow) error
	WriteEncounter(EncounterRow) error
}

// NopSink discards all notifications.
type NopSink struct{}

func (NopSink) WriteDifficulty(DifficultyRow) error { return nil }
func (NopSink) WritePacing(PacingRow) error         { return nil }
func (NopSink) WriteEncounter(EncounterRow) error   { return nil }
