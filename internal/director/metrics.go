package director

import (
	"math"
	"time"
)

// PlayerMetrics holds rolling per-player performance counters for one round.
type PlayerMetrics struct {
	Kills                int     `json:"kills"`
	Deaths               int     `json:"deaths"`
	Accuracy             float64 `json:"accuracy"`
	SurvivalTime         float64 `json:"survival_time"`
	DamageDealt          float64 `json:"damage_dealt"`
	DamageTaken          float64 `json:"damage_taken"`
	ObjectiveCompletions int     `json:"objective_completions"`

	shotsFired int
	shotsHit   int
}

// TeamMetrics aggregates the member metrics of one team. It is derived
// on each analysis pass and never persisted independently.
type TeamMetrics struct {
	TeamID              string  `json:"team_id"`
	KillsSum            int     `json:"kills_sum"`
	DeathsSum           int     `json:"deaths_sum"`
	AverageAccuracy     float64 `json:"average_accuracy"`
	ObjectivesCompleted int     `json:"objectives_completed"`
}

// PerformanceSnapshot is an immutable point-in-time copy of tracker and
// controller state, kept for diagnostics only.
type PerformanceSnapshot struct {
	Timestamp     time.Time                `json:"ts"`
	Profile       string                   `json:"profile"`
	ScalingFactor float64                  `json:"scaling_factor"`
	Tension       float64                  `json:"tension"`
	Phase         string                   `json:"phase"`
	Players       map[string]PlayerMetrics `json:"players"`
	Teams         []TeamMetrics            `json:"teams"`
}

const (
	historyCapacity = 100
	// Objective completions are scored against this per-round budget
	// when computing the performance scalar.
	roundObjectiveBudget = 5
)

// Tracker maintains per-player metrics and derives skill classification
// and the normalized performance scalar feeding the difficulty loop.
// It is not safe for concurrent use; the Director serializes access.
type Tracker struct {
	players map[string]*PlayerMetrics
	history []PerformanceSnapshot
}

// NewTracker returns an empty tracker.
func NewTracker() *Tracker {
	return &Tracker{players: make(map[string]*PlayerMetrics)}
}

// metrics returns the record for a player, creating it on first sight.
func (t *Tracker) metrics(playerID string) *PlayerMetrics {
	m, ok := t.players[playerID]
	if !ok {
		m = &PlayerMetrics{}
		t.players[playerID] = m
	}
	return m
}

// RecordKill credits a kill to the player.
func (t *Tracker) RecordKill(playerID string) {
	t.metrics(playerID).Kills++
}

// RecordDeath records a death for the player.
func (t *Tracker) RecordDeath(playerID string) {
	t.metrics(playerID).Deaths++
}

// RecordShot records a fired shot and whether it hit, updating accuracy.
func (t *Tracker) RecordShot(playerID string, hit bool) {
	m := t.metrics(playerID)
	m.shotsFired++
	if hit {
		m.shotsHit++
	}
	m.Accuracy = float64(m.shotsHit) / float64(m.shotsFired)
}

// RecordDamageDealt adds dealt damage to the player's totals.
func (t *Tracker) RecordDamageDealt(playerID string, amount float64) {
	t.metrics(playerID).DamageDealt += amount
}

// RecordDamageTaken adds received damage to the player's totals.
func (t *Tracker) RecordDamageTaken(playerID string, amount float64) {
	t.metrics(playerID).DamageTaken += amount
}

// RecordObjectiveCompletion credits an objective completion.
func (t *Tracker) RecordObjectiveCompletion(playerID string) {
	t.metrics(playerID).ObjectiveCompletions++
}

// RecordSurvival accrues survival time in seconds.
func (t *Tracker) RecordSurvival(playerID string, seconds float64) {
	t.metrics(playerID).SurvivalTime += seconds
}

// Skill levels share the difficulty profile names.
const (
	SkillEasy   = ProfileEasy
	SkillMedium = ProfileMedium
	SkillHard   = ProfileHard
	SkillExpert = ProfileExpert
)

func kdRatio(m *PlayerMetrics) float64 {
	if m.Deaths > 0 {
		return float64(m.Kills) / float64(m.Deaths)
	}
	return float64(m.Kills)
}

// SkillLevel classifies a player into one of the four named levels.
// Unknown players classify as easy.
func (t *Tracker) SkillLevel(playerID string) string {
	m, ok := t.players[playerID]
	if !ok {
		return SkillEasy
	}
	score := math.Min(kdRatio(m)*25, 100)
	score += m.Accuracy * 50
	score += math.Min(m.SurvivalTime/30, 2) * 25
	switch {
	case score < 50:
		return SkillEasy
	case score < 100:
		return SkillMedium
	case score < 150:
		return SkillHard
	default:
		return SkillExpert
	}
}

// AveragePerformance returns the normalized performance scalar in [0,1]
// across all tracked players. With nobody tracked it returns the
// neutral 0.5 so an empty server does not bias the difficulty loop.
//
// This deliberately uses a different weighting than SkillLevel: one is
// a coarse classification, the other the control-loop feedback signal.
func (t *Tracker) AveragePerformance() float64 {
	if len(t.players) == 0 {
		return 0.5
	}
	var sum float64
	for _, m := range t.players {
		perf := math.Min(kdRatio(m)/2, 0.5)
		perf += m.Accuracy * 0.3
		objRatio := math.Min(float64(m.ObjectiveCompletions)/roundObjectiveBudget, 1)
		perf += objRatio * 0.2
		sum += math.Min(perf, 1)
	}
	return sum / float64(len(t.players))
}

// TeamSummaries recomputes team aggregates for the given rosters.
func (t *Tracker) TeamSummaries(teams []Team) []TeamMetrics {
	out := make([]TeamMetrics, 0, len(teams))
	for _, team := range teams {
		tm := TeamMetrics{TeamID: team.ID}
		tracked := 0
		var accSum float64
		for _, id := range team.Players {
			m, ok := t.players[id]
			if !ok {
				continue
			}
			tm.KillsSum += m.Kills
			tm.DeathsSum += m.Deaths
			tm.ObjectivesCompleted += m.ObjectiveCompletions
			accSum += m.Accuracy
			tracked++
		}
		if tracked > 0 {
			tm.AverageAccuracy = accSum / float64(tracked)
		}
		out = append(out, tm)
	}
	return out
}

// Snapshot appends an immutable state copy to the history ring,
// evicting the oldest entry beyond capacity.
func (t *Tracker) Snapshot(ts time.Time, profile string, scaling, tension float64, phase string, teams []Team) PerformanceSnapshot {
	players := make(map[string]PlayerMetrics, len(t.players))
	for id, m := range t.players {
		players[id] = *m
	}
	snap := PerformanceSnapshot{
		Timestamp:     ts,
		Profile:       profile,
		ScalingFactor: scaling,
		Tension:       tension,
		Phase:         phase,
		Players:       players,
		Teams:         t.TeamSummaries(teams),
	}
	t.history = append(t.history, snap)
	if len(t.history) > historyCapacity {
		t.history = t.history[len(t.history)-historyCapacity:]
	}
	return snap
}

// History returns a copy of the recorded snapshots, oldest first.
func (t *Tracker) History() []PerformanceSnapshot {
	out := make([]PerformanceSnapshot, len(t.history))
	copy(out, t.history)
	return out
}

// TrackedPlayers returns the number of players with metric records.
func (t *Tracker) TrackedPlayers() int { return len(t.players) }

// Players returns a copy of all tracked metrics keyed by player id.
func (t *Tracker) Players() map[string]PlayerMetrics {
	out := make(map[string]PlayerMetrics, len(t.players))
	for id, m := range t.players {
		out[id] = *m
	}
	return out
}

// ResetRound zeroes every tracked player's metrics for a new round.
// Records keep their identity; history is preserved across rounds.
func (t *Tracker) ResetRound() {
	for id := range t.players {
		t.players[id] = &PlayerMetrics{}
	}
}
