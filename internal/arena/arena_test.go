package arena

import (
	"io"
	"log/slog"
	"math/rand"
	"testing"

	"director-sim/internal/config"
	"director-sim/internal/director"
)

func testConfig() *config.MatchConfig {
	return &config.MatchConfig{
		MatchID: "test",
		Arena:   config.Arena{Width: 200, Height: 200},
		SpawnPoints: []config.Point{
			{X: 10, Y: 10},
			{X: 190, Y: 190},
		},
		Teams: []config.Team{
			{Name: "blue", Players: []config.Player{
				{Name: "alice", Skill: 0.8},
				{Name: "bob", Skill: 0.4},
			}},
			{Name: "red", Players: []config.Player{
				{Name: "carol", Skill: 0.6},
			}},
		},
		RoundSeconds: 120,
	}
}

func testArena(seed int64) *Arena {
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	return New(testConfig(), rand.New(rand.NewSource(seed)), log)
}

func TestRosterReflectsConfig(t *testing.T) {
	a := testArena(1)

	players := a.ActivePlayers()
	if len(players) != 3 {
		t.Fatalf("active players = %d, want 3", len(players))
	}
	teams := a.Teams()
	if len(teams) != 2 {
		t.Fatalf("teams = %d, want 2", len(teams))
	}
	if teams[0].ID != "blue" || len(teams[0].Players) != 2 {
		t.Errorf("unexpected team: %+v", teams[0])
	}
	if len(a.SpawnPoints()) != 2 {
		t.Errorf("spawn points = %d, want 2", len(a.SpawnPoints()))
	}
}

func TestSpawnAndDestroyActor(t *testing.T) {
	a := testArena(1)

	act, ok := a.SpawnActor(director.SpawnRequest{
		Position:   director.Position{X: 50, Y: 50},
		Difficulty: "hard",
		Team:       "opposing",
	})
	if !ok {
		t.Fatal("spawn failed")
	}
	if act.Health() != 130 {
		t.Errorf("hard actor health = %v, want 130", act.Health())
	}
	if a.ActorCount() != 1 {
		t.Errorf("actor count = %d, want 1", a.ActorCount())
	}

	a.DestroyActor(act.ID())
	if a.ActorCount() != 0 {
		t.Errorf("actor count after destroy = %d, want 0", a.ActorCount())
	}
}

func TestUnknownDifficultyFallsBackToMedium(t *testing.T) {
	a := testArena(1)
	act, ok := a.SpawnActor(director.SpawnRequest{Difficulty: "nightmare"})
	if !ok {
		t.Fatal("spawn failed")
	}
	if act.Health() != 100 {
		t.Errorf("fallback health = %v, want 100", act.Health())
	}
}

func TestActorMovesTowardDestination(t *testing.T) {
	a := testArena(1)
	act, _ := a.SpawnActor(director.SpawnRequest{
		Position:   director.Position{X: 0, Y: 0},
		Difficulty: "medium",
	})
	a.SetDestination(act, director.Position{X: 100, Y: 0})

	start := act.Position()
	for i := 0; i < 10; i++ {
		a.Step(0.1)
	}
	if act.Position().X <= start.X {
		t.Errorf("actor did not advance: %+v", act.Position())
	}
	if act.BehaviorState() != director.BehaviorMoving && act.BehaviorState() != director.BehaviorCombat {
		t.Errorf("state = %q while moving", act.BehaviorState())
	}
}

func TestSetSquadRole(t *testing.T) {
	a := testArena(1)
	act, _ := a.SpawnActor(director.SpawnRequest{Difficulty: "easy"})
	a.SetSquadRole(act, "leader")
	if got := a.lookup(act.ID()).Role(); got != "leader" {
		t.Errorf("role = %q, want leader", got)
	}
}

func TestCombatProducesEvents(t *testing.T) {
	a := testArena(42)

	// Drop actors on top of each bot so combat starts immediately.
	for _, b := range a.bots {
		a.SpawnActor(director.SpawnRequest{
			Position:   b.pos,
			Difficulty: "medium",
			Team:       "opposing",
		})
	}

	kinds := map[string]int{}
	for i := 0; i < 600; i++ {
		for _, ev := range a.Step(0.1) {
			kinds[ev.Kind]++
		}
	}
	if kinds[EventShot] == 0 {
		t.Error("no shots fired over 60 simulated seconds")
	}
	if kinds[EventDamageDealt] == 0 {
		t.Error("no damage dealt")
	}
	if kinds[EventDamageTaken] == 0 {
		t.Error("no damage taken")
	}
}

func TestIntensityClamped(t *testing.T) {
	a := testArena(1)
	a.SetIntensity(10)
	if a.Intensity() != 2.5 {
		t.Errorf("intensity = %v, want 2.5", a.Intensity())
	}
	a.SetIntensity(0)
	if a.Intensity() != 0.2 {
		t.Errorf("intensity = %v, want 0.2", a.Intensity())
	}
}

func TestDeterministicWithSeed(t *testing.T) {
	run := func() []Event {
		a := testArena(7)
		a.SpawnActor(director.SpawnRequest{
			Position:   a.bots[0].pos,
			Difficulty: "medium",
		})
		var all []Event
		for i := 0; i < 200; i++ {
			all = append(all, a.Step(0.1)...)
		}
		return all
	}

	first, second := run(), run()
	if len(first) != len(second) {
		t.Fatalf("event counts differ: %d vs %d", len(first), len(second))
	}
	for i := range first {
		if first[i] != second[i] {
			t.Fatalf("event %d differs: %+v vs %+v", i, first[i], second[i])
		}
	}
}

func TestBotRespawns(t *testing.T) {
	a := testArena(1)
	b := a.bots[0]
	b.health = 0

	a.Step(respawnDelay + 1)
	if !b.alive() {
		t.Fatal("bot did not respawn")
	}
	if b.health != botMaxHealth {
		t.Errorf("respawn health = %v, want %v", b.health, botMaxHealth)
	}
}
