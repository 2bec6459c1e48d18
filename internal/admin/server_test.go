package admin

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"director-sim/internal/config"
	"director-sim/internal/sim"
)

func testServer(t *testing.T) (*Server, *sim.Runner) {
	t.Helper()
	cfg := &config.MatchConfig{
		MatchID:     "admin-test",
		Arena:       config.Arena{Width: 100, Height: 100},
		SpawnPoints: []config.Point{{X: 50, Y: 50}},
		Teams: []config.Team{
			{Name: "blue", Players: []config.Player{{Name: "alice", Skill: 0.7}}},
		},
		RoundSeconds: 60,
		Seed:         1,
	}
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	runner := sim.NewRunner(cfg, nil, &sim.StdoutWriter{}, 100*time.Millisecond, log)
	return NewServer(runner), runner
}

func TestHandleStatus(t *testing.T) {
	server, runner := testServer(t)
	runner.Director().StartRound()

	req := httptest.NewRequest(http.MethodGet, "/status", nil)
	w := httptest.NewRecorder()
	server.Handler().ServeHTTP(w, req)

	resp := w.Result()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %v, want 200", resp.StatusCode)
	}
	var st sim.RunnerStatus
	if err := json.NewDecoder(resp.Body).Decode(&st); err != nil {
		t.Fatal(err)
	}
	if st.MatchID != "admin-test" {
		t.Errorf("match id = %q, want admin-test", st.MatchID)
	}
	if !st.RoundActive {
		t.Error("round should be active")
	}
}

func TestHandleSetDifficulty(t *testing.T) {
	server, runner := testServer(t)

	req := httptest.NewRequest(http.MethodPost, "/set-difficulty?profile=expert", nil)
	w := httptest.NewRecorder()
	server.Handler().ServeHTTP(w, req)

	if w.Result().StatusCode != http.StatusOK {
		t.Fatalf("status = %v, want 200", w.Result().StatusCode)
	}
	if got := runner.Status().Profile; got != "expert" {
		t.Errorf("profile = %q, want expert", got)
	}
}

func TestHandleSetDifficultyMissingProfile(t *testing.T) {
	server, _ := testServer(t)

	req := httptest.NewRequest(http.MethodPost, "/set-difficulty", nil)
	w := httptest.NewRecorder()
	server.Handler().ServeHTTP(w, req)

	if w.Result().StatusCode != http.StatusBadRequest {
		t.Errorf("status = %v, want 400", w.Result().StatusCode)
	}
}

func TestHandleToggleAdaptive(t *testing.T) {
	server, runner := testServer(t)

	req := httptest.NewRequest(http.MethodPost, "/toggle-adaptive", nil)
	w := httptest.NewRecorder()
	server.Handler().ServeHTTP(w, req)

	var body map[string]bool
	if err := json.NewDecoder(w.Result().Body).Decode(&body); err != nil {
		t.Fatal(err)
	}
	if body["adaptive"] {
		t.Error("first toggle should disable adaptive mode")
	}
	if runner.Status().Adaptive {
		t.Error("runner still reports adaptive enabled")
	}
}

func TestHandleResetRound(t *testing.T) {
	server, runner := testServer(t)
	runner.Director().StartRound()
	before := runner.Status().Round

	req := httptest.NewRequest(http.MethodPost, "/reset-round", nil)
	w := httptest.NewRecorder()
	server.Handler().ServeHTTP(w, req)

	if w.Result().StatusCode != http.StatusNoContent {
		t.Fatalf("status = %v, want 204", w.Result().StatusCode)
	}
	if got := runner.Status().Round; got != before+1 {
		t.Errorf("round = %d, want %d", got, before+1)
	}
}

func TestHandleIndexRenders(t *testing.T) {
	server, runner := testServer(t)
	runner.Director().StartRound()

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	w := httptest.NewRecorder()
	server.Handler().ServeHTTP(w, req)

	if w.Result().StatusCode != http.StatusOK {
		t.Fatalf("status = %v, want 200", w.Result().StatusCode)
	}
	body, _ := io.ReadAll(w.Result().Body)
	if !strings.Contains(string(body), "admin-test") {
		t.Error("index page missing match id")
	}
	if !strings.Contains(string(body), "Controls") {
		t.Error("index page missing controls section")
	}
}
