package director

import (
	"log/slog"
	"math/rand"
	"time"

	"github.com/google/uuid"
)

// Encounter type names.
const (
	EncounterPatrol        = "patrol"
	EncounterAmbush        = "ambush"
	EncounterReinforcement = "reinforcement"
	EncounterEliteSquad    = "elite_squad"
	EncounterSiege         = "siege"
)

// encounterConfig is the compiled-in per-type table.
type encounterConfig struct {
	actorCount     int
	baseDifficulty string
	duration       float64
	name           string
}

// Fixed order keeps the weighted draw deterministic under a seeded rng.
var encounterOrder = []string{
	EncounterPatrol,
	EncounterAmbush,
	EncounterReinforcement,
	EncounterEliteSquad,
	EncounterSiege,
}

var encounterTable = map[string]encounterConfig{
	EncounterPatrol:        {actorCount: 3, baseDifficulty: ProfileEasy, duration: 120, name: "Patrol Sweep"},
	EncounterAmbush:        {actorCount: 4, baseDifficulty: ProfileMedium, duration: 90, name: "Ambush"},
	EncounterReinforcement: {actorCount: 5, baseDifficulty: ProfileMedium, duration: 150, name: "Reinforcement Push"},
	EncounterEliteSquad:    {actorCount: 4, baseDifficulty: ProfileHard, duration: 180, name: "Elite Squad"},
	EncounterSiege:         {actorCount: 6, baseDifficulty: ProfileHard, duration: 240, name: "Siege Assault"},
}

// ActiveEncounter is the bookkeeping record for one live encounter.
type ActiveEncounter struct {
	ID         string   `json:"id"`
	Type       string   `json:"type"`
	Position   Position `json:"position"`
	Difficulty string   `json:"difficulty"`
	SpawnedAt  float64  `json:"spawned_at"` // director-elapsed seconds
	Duration   float64  `json:"duration"`
	SquadID    string   `json:"squad_id,omitempty"`
	Members    []Actor  `json:"-"`
}

const (
	maxActiveEncounters = 3
	encounterCooldown   = 15.0
	spawnBandMin        = 30.0
	spawnBandMax        = 100.0
	opposingTeam        = "opposing"
)

// Scheduler decides when to spawn encounters, what kind, where, and at
// which difficulty, and sweeps the bounded active set each tick.
type Scheduler struct {
	world      World
	difficulty *Controller
	pacing     *Pacing
	sink       EventSink
	log        *slog.Logger
	rand       *rand.Rand
	now        func() time.Time
	live       func() bool
	matchID    string

	active    map[string]*ActiveEncounter
	lastSpawn float64

	// Lifecycle hooks, called with the encounter record after a spawn
	// completes and before a retirement is announced.
	onSpawn  func(*ActiveEncounter)
	onRetire func(*ActiveEncounter)
}

// NewScheduler wires a scheduler against its collaborators. The live
// func gates spawn completion on the round still running.
func NewScheduler(matchID string, world World, difficulty *Controller, pacing *Pacing, sink EventSink, log *slog.Logger, rng *rand.Rand, now func() time.Time, live func() bool) *Scheduler {
	return &Scheduler{
		world:      world,
		difficulty: difficulty,
		pacing:     pacing,
		sink:       sink,
		log:        log,
		rand:       rng,
		now:        now,
		live:       live,
		matchID:    matchID,
		active:     make(map[string]*ActiveEncounter),
	}
}

var phaseBaseRate = map[string]float64{
	PhaseRest:     0.3,
	PhaseBuilding: 0.7,
	PhaseAction:   1.2,
	PhaseClimax:   1.8,
}

// EncounterRate combines phase base rate, scaling factor, and a
// performance modifier into the spawn frequency multiplier.
func (s *Scheduler) EncounterRate(averagePerformance float64) float64 {
	rate := phaseBaseRate[s.pacing.Phase()] * s.difficulty.ScalingFactor()
	switch {
	case averagePerformance > 0.7:
		rate *= 1.3
	case averagePerformance < 0.4:
		rate *= 0.7
	}
	return rate
}

// Manage runs one scheduling pass: sweep expired or defeated
// encounters, then attempt a spawn if capacity and cooldown allow.
func (s *Scheduler) Manage(elapsed float64, averagePerformance float64) {
	s.sweep(elapsed)
	if len(s.active) >= maxActiveEncounters {
		return
	}
	cooldown := encounterCooldown / s.EncounterRate(averagePerformance)
	if elapsed-s.lastSpawn <= cooldown {
		return
	}
	s.spawnEncounter(elapsed, averagePerformance)
}

var phaseWeights = map[string]map[string]float64{
	PhaseRest: {
		EncounterPatrol:        2.0,
		EncounterAmbush:        0.3,
		EncounterReinforcement: 0.3,
		EncounterEliteSquad:    0.3,
		EncounterSiege:         0.3,
	},
	PhaseBuilding: {
		EncounterPatrol:        1.5,
		EncounterReinforcement: 1.5,
	},
	PhaseAction: {
		EncounterAmbush:        1.8,
		EncounterReinforcement: 1.8,
	},
	PhaseClimax: {
		EncounterEliteSquad: 2.0,
		EncounterSiege:      2.0,
	},
}

// selectType draws one encounter type by cumulative weight, boosted per
// the current pacing phase. Single pass, always terminates.
func (s *Scheduler) selectType() string {
	boosts := phaseWeights[s.pacing.Phase()]
	var total float64
	weights := make([]float64, len(encounterOrder))
	for i, typ := range encounterOrder {
		w := 1.0
		if b, ok := boosts[typ]; ok {
			w *= b
		}
		weights[i] = w
		total += w
	}
	roll := s.rand.Float64() * total
	var cum float64
	for i, typ := range encounterOrder {
		cum += weights[i]
		if roll < cum {
			return typ
		}
	}
	return encounterOrder[len(encounterOrder)-1]
}

// selectSpawnPosition prefers points 30-100 units from at least one
// active player, falling back to the first known point so selection
// never fails while any point exists.
func (s *Scheduler) selectSpawnPosition() (Position, bool) {
	points := s.world.Points.SpawnPoints()
	if len(points) == 0 {
		return Position{}, false
	}
	players := s.world.Roster.ActivePlayers()
	var candidates []Position
	for _, pt := range points {
		for _, pl := range players {
			d := pt.DistanceTo(pl.Position)
			if d >= spawnBandMin && d <= spawnBandMax {
				candidates = append(candidates, pt)
				break
			}
		}
	}
	if len(candidates) == 0 {
		return points[0], true
	}
	return candidates[s.rand.Intn(len(candidates))], true
}

// encounterDifficulty starts from the base profile and overrides on
// extreme performance.
func (s *Scheduler) encounterDifficulty(averagePerformance float64) string {
	switch {
	case averagePerformance > 0.8:
		return ProfileHard
	case averagePerformance < 0.3:
		return ProfileEasy
	}
	return s.difficulty.Profile()
}

func (s *Scheduler) spawnEncounter(elapsed float64, averagePerformance float64) {
	if !s.live() {
		// Round ended with this spawn in flight; discard it.
		return
	}
	pos, ok := s.selectSpawnPosition()
	if !ok {
		s.log.Warn("no spawn points registered, skipping encounter")
		return
	}
	typ := s.selectType()
	cfg := encounterTable[typ]
	diff := s.encounterDifficulty(averagePerformance)

	id := uuid.New().String()
	enc := &ActiveEncounter{
		ID:         id,
		Type:       typ,
		Position:   pos,
		Difficulty: diff,
		SpawnedAt:  elapsed,
		Duration:   cfg.duration,
	}
	for i := 0; i < cfg.actorCount; i++ {
		actor, ok := s.world.Spawner.SpawnActor(SpawnRequest{
			Position:    pos,
			Difficulty:  diff,
			EncounterID: id,
			Team:        opposingTeam,
		})
		if !ok {
			// Partial encounters are valid; no retry this tick.
			continue
		}
		enc.Members = append(enc.Members, actor)
	}
	s.active[id] = enc
	s.lastSpawn = elapsed
	if s.onSpawn != nil {
		s.onSpawn(enc)
	}

	s.emit(EncounterRow{
		MatchID:     s.matchID,
		EventType:   EncounterSpawned,
		EncounterID: id,
		Type:        typ,
		Difficulty:  diff,
		X:           pos.X,
		Y:           pos.Y,
		Z:           pos.Z,
		ActorCount:  len(enc.Members),
		Timestamp:   s.now().UTC(),
	})
	s.log.Info("encounter spawned",
		"encounter_id", id, "type", typ, "difficulty", diff, "actors", len(enc.Members))
}

// sweep removes encounters whose duration elapsed or whose members are
// all defeated, destroying any survivors defensively.
func (s *Scheduler) sweep(elapsed float64) {
	for id, enc := range s.active {
		expired := elapsed-enc.SpawnedAt > enc.Duration
		defeated := true
		for _, m := range enc.Members {
			if m.Health() > 0 {
				defeated = false
				break
			}
		}
		if !expired && !defeated {
			continue
		}
		s.retire(enc)
		delete(s.active, id)
	}
}

func (s *Scheduler) retire(enc *ActiveEncounter) {
	for _, m := range enc.Members {
		if m.Health() > 0 {
			s.world.Spawner.DestroyActor(m.ID())
		}
	}
	if s.onRetire != nil {
		s.onRetire(enc)
	}
	s.emit(EncounterRow{
		MatchID:     s.matchID,
		EventType:   EncounterEnded,
		EncounterID: enc.ID,
		Type:        enc.Type,
		Timestamp:   s.now().UTC(),
	})
	s.log.Info("encounter ended", "encounter_id", enc.ID, "type", enc.Type)
}

// Teardown forcibly retires every active encounter, regardless of
// remaining duration. Called on round end.
func (s *Scheduler) Teardown() {
	for id, enc := range s.active {
		s.retire(enc)
		delete(s.active, id)
	}
}

// Active returns the current encounters, order unspecified.
func (s *Scheduler) Active() []*ActiveEncounter {
	out := make([]*ActiveEncounter, 0, len(s.active))
	for _, enc := range s.active {
		out = append(out, enc)
	}
	return out
}

// ActiveCount returns the number of live encounters.
func (s *Scheduler) ActiveCount() int { return len(s.active) }

func (s *Scheduler) emit(row EncounterRow) {
	if err := s.sink.WriteEncounter(row); err != nil {
		s.log.Error("encounter event write failed", "err", err)
	}
}
