package sim

import (
	"io"
	"log/slog"
	"testing"
	"time"

	"director-sim/internal/config"
	"director-sim/internal/scenario"
)

func testMatchConfig() *config.MatchConfig {
	return &config.MatchConfig{
		MatchID: "test-match",
		Arena:   config.Arena{Width: 200, Height: 200},
		SpawnPoints: []config.Point{
			{X: 20, Y: 20},
			{X: 100, Y: 100},
			{X: 180, Y: 180},
		},
		Teams: []config.Team{
			{Name: "blue", Players: []config.Player{
				{Name: "alice", Skill: 0.8},
				{Name: "bob", Skill: 0.5},
			}},
		},
		RoundSeconds: 60,
		Seed:         7,
	}
}

func testRunner(t *testing.T, script *scenario.Script, w EventWriter) *Runner {
	t.Helper()
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewRunner(testMatchConfig(), script, w, 100*time.Millisecond, log)
}

func TestRunnerTickProducesEvents(t *testing.T) {
	w := &captureWriter{}
	r := testRunner(t, nil, w)
	r.Director().StartRound()

	// 115 simulated seconds is enough for pacing transitions, analysis
	// snapshots, and exactly one rotation of the 60 second round.
	for i := 0; i < 1150; i++ {
		r.Tick(0.1)
	}

	if len(w.pacing) == 0 {
		t.Error("no pacing events written")
	}
	if len(w.statuses) == 0 {
		t.Error("no status snapshots written")
	}
	st := r.Status()
	if st.Round != 2 {
		t.Errorf("round = %d after 120s of a 60s round, want 2", st.Round)
	}
	if !st.RoundActive {
		t.Error("round should be active after rotation")
	}
}

func TestRunnerScriptAdvances(t *testing.T) {
	script := &scenario.Script{
		Name: "two-step",
		Phases: []scenario.Phase{
			{Name: "calm", Intensity: 0.5, Triggers: []scenario.Trigger{
				{Event: scenario.EventTimeElapsed, Value: 5, Next: "storm"},
			}},
			{Name: "storm", Intensity: 1.5},
		},
	}
	w := &captureWriter{}
	r := testRunner(t, script, w)
	r.Director().StartRound()

	if got := r.Status().ScriptPhase; got != "calm" {
		t.Fatalf("initial phase = %q, want calm", got)
	}
	for i := 0; i < 60; i++ {
		r.Tick(0.1)
	}
	st := r.Status()
	if st.ScriptPhase != "storm" {
		t.Errorf("phase after 6s = %q, want storm", st.ScriptPhase)
	}
	if st.Intensity != 1.5 {
		t.Errorf("intensity = %v, want 1.5", st.Intensity)
	}
}

func TestRunnerResetRound(t *testing.T) {
	w := &captureWriter{}
	r := testRunner(t, nil, w)
	r.Director().StartRound()

	for i := 0; i < 50; i++ {
		r.Tick(0.1)
	}
	before := r.Status().Round
	r.ResetRound()
	st := r.Status()
	if st.Round != before+1 {
		t.Errorf("round = %d, want %d", st.Round, before+1)
	}
	if st.RoundElapsed != 0 {
		t.Errorf("round elapsed = %v after reset, want 0", st.RoundElapsed)
	}
}

func TestRunnerControls(t *testing.T) {
	w := &captureWriter{}
	r := testRunner(t, nil, w)

	r.SetProfile("hard")
	if got := r.Status().Profile; got != "hard" {
		t.Errorf("profile = %q, want hard", got)
	}

	if on := r.ToggleAdaptive(); on {
		t.Error("first toggle should disable adaptive mode")
	}
	if on := r.ToggleAdaptive(); !on {
		t.Error("second toggle should re-enable adaptive mode")
	}
}

func TestRunnerSeedsAgree(t *testing.T) {
	run := func() RunnerStatus {
		w := &captureWriter{}
		r := testRunner(t, nil, w)
		r.Director().StartRound()
		for i := 0; i < 500; i++ {
			r.Tick(0.1)
		}
		return r.Status()
	}

	a, b := run(), run()
	if a.ScalingFactor != b.ScalingFactor {
		t.Errorf("scaling diverged: %v vs %v", a.ScalingFactor, b.ScalingFactor)
	}
	if a.AveragePerformance != b.AveragePerformance {
		t.Errorf("performance diverged: %v vs %v", a.AveragePerformance, b.AveragePerformance)
	}
	if a.ActorCount != b.ActorCount {
		t.Errorf("actor count diverged: %d vs %d", a.ActorCount, b.ActorCount)
	}
}
