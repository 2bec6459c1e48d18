// Adaptive director: closed-loop difficulty, pacing, and encounter
// scheduling for a running match.
package director

import (
	"log/slog"
	"math/rand"
	"sync"
	"time"
)

const analysisInterval = 10.0 // seconds between difficulty adjustments

// Director ties the performance tracker, difficulty controller, pacing
// machine, encounter scheduler, and squad coordinator to a single
// externally driven tick. Game events may arrive concurrently with the
// tick; a mutex keeps the metrics store consistent.
type Director struct {
	matchID string
	world   World
	sink    EventSink
	log     *slog.Logger
	rand    *rand.Rand
	now     func() time.Time

	tracker    *Tracker
	difficulty *Controller
	pacing     *Pacing
	scheduler  *Scheduler
	squads     *Coordinator

	mu            sync.Mutex
	elapsed       float64
	sinceAnalysis float64
	roundActive   bool
}

// Option customizes a Director.
type Option func(*Director)

// WithRand injects the pseudo-random source used for weighted
// selection, so tests can assert exact draws.
func WithRand(rng *rand.Rand) Option {
	return func(d *Director) { d.rand = rng }
}

// WithClock injects the wall-clock source used for event timestamps.
func WithClock(now func() time.Time) Option {
	return func(d *Director) { d.now = now }
}

// WithLogger injects the structured logger.
func WithLogger(log *slog.Logger) Option {
	return func(d *Director) { d.log = log }
}

// New constructs a director for one match. A nil sink discards
// notifications; nil world collaborators become no-ops. Encounters
// that spawn with two or more members form a line squad for their
// lifetime. The director starts between rounds; call StartRound to
// begin directing.
func New(matchID string, world World, sink EventSink, opts ...Option) *Director {
	d := &Director{
		matchID: matchID,
		world:   world.withDefaults(),
		sink:    sink,
		log:     slog.Default(),
		rand:    rand.New(rand.NewSource(time.Now().UnixNano())),
		now:     time.Now,
	}
	if d.sink == nil {
		d.sink = NopSink{}
	}
	for _, opt := range opts {
		opt(d)
	}
	d.tracker = NewTracker()
	d.difficulty = NewController()
	d.pacing = NewPacing()
	d.scheduler = NewScheduler(matchID, d.world, d.difficulty, d.pacing, d.sink, d.log, d.rand, d.now, func() bool { return d.roundActive })
	d.squads = NewCoordinator(d.world, d.log)
	d.scheduler.onSpawn = func(enc *ActiveEncounter) {
		if len(enc.Members) < 2 {
			return
		}
		if id, ok := d.squads.CreateSquad(enc.Members, FormationLine); ok {
			enc.SquadID = id
		}
	}
	d.scheduler.onRetire = func(enc *ActiveEncounter) {
		if enc.SquadID != "" {
			d.squads.OnSquadEliminated(enc.SquadID)
		}
	}
	return d
}

// Tick advances the director by delta seconds, running analysis,
// difficulty adjustment, pacing, encounter management, and squad
// updates strictly in that order. Outside a round it is a no-op.
func (d *Director) Tick(delta float64) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if !d.roundActive {
		return
	}
	d.elapsed += delta

	for _, p := range d.world.Roster.ActivePlayers() {
		d.tracker.RecordSurvival(p.ID, delta)
	}

	avg := d.tracker.AveragePerformance()

	d.sinceAnalysis += delta
	if d.sinceAnalysis >= analysisInterval {
		d.sinceAnalysis = 0
		if d.difficulty.Adjust(avg) {
			d.emitDifficulty()
		}
		d.tracker.Snapshot(d.now().UTC(), d.difficulty.Profile(), d.difficulty.ScalingFactor(),
			d.pacing.Tension(), d.pacing.Phase(), d.world.Roster.Teams())
	}

	if d.pacing.Advance(delta) {
		d.emitPacing()
	}

	d.scheduler.Manage(d.elapsed, avg)
	d.squads.Tick()
}

// StartRound resets per-round state and begins directing. The pacing
// machine is forced into its round-start posture.
func (d *Director) StartRound() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.roundActive = true
	d.sinceAnalysis = 0
	d.tracker.ResetRound()
	d.pacing.ResetRound()
	d.emitPacing()
	d.log.Info("round started", "match_id", d.matchID)
}

// EndRound stops directing and forcibly tears down every active
// encounter regardless of remaining duration.
func (d *Director) EndRound() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.roundActive = false
	d.scheduler.Teardown()
	d.log.Info("round ended", "match_id", d.matchID)
}

// RoundActive reports whether a round is in progress.
func (d *Director) RoundActive() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.roundActive
}

// Game-event feeds. Safe to call concurrently with Tick.

func (d *Director) RecordKill(playerID string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.tracker.RecordKill(playerID)
}

func (d *Director) RecordDeath(playerID string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.tracker.RecordDeath(playerID)
}

func (d *Director) RecordShot(playerID string, hit bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.tracker.RecordShot(playerID, hit)
}

func (d *Director) RecordDamageDealt(playerID string, amount float64) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.tracker.RecordDamageDealt(playerID, amount)
}

func (d *Director) RecordDamageTaken(playerID string, amount float64) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.tracker.RecordDamageTaken(playerID, amount)
}

func (d *Director) RecordObjectiveCompletion(playerID string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.tracker.RecordObjectiveCompletion(playerID)
}

// SetGlobalDifficulty switches the base profile; unknown names are
// silently ignored. The change is announced when it takes effect.
func (d *Director) SetGlobalDifficulty(name string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	before := d.difficulty.Profile()
	d.difficulty.SetProfile(name)
	if d.difficulty.Profile() != before {
		d.emitDifficulty()
	}
}

// SetAdaptiveDifficulty toggles the control loop; metrics collection
// continues either way.
func (d *Director) SetAdaptiveDifficulty(enabled bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.difficulty.SetAdaptive(enabled)
}

// SkillLevel classifies a player by accumulated metrics.
func (d *Director) SkillLevel(playerID string) string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.tracker.SkillLevel(playerID)
}

// CreateSquad delegates to the squad coordinator.
func (d *Director) CreateSquad(members []Actor, formation string) (string, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.squads.CreateSquad(members, formation)
}

// OnSquadEliminated drops a squad record.
func (d *Director) OnSquadEliminated(squadID string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.squads.OnSquadEliminated(squadID)
}

// History returns the diagnostic snapshot ring, oldest first.
func (d *Director) History() []PerformanceSnapshot {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.tracker.History()
}

// Status is a point-in-time summary for operator surfaces.
type Status struct {
	MatchID            string                   `json:"match_id"`
	RoundActive        bool                     `json:"round_active"`
	Profile            string                   `json:"profile"`
	ScalingFactor      float64                  `json:"scaling_factor"`
	Adaptive           bool                     `json:"adaptive"`
	Multipliers        Profile                  `json:"multipliers"`
	Phase              string                   `json:"phase"`
	Tension            float64                  `json:"tension"`
	TargetTension      float64                  `json:"target_tension"`
	AveragePerformance float64                  `json:"average_performance"`
	ActiveEncounters   []*ActiveEncounter       `json:"active_encounters"`
	Squads             int                      `json:"squads"`
	Players            map[string]PlayerMetrics `json:"players"`
}

// Status reports current director state.
func (d *Director) Status() Status {
	d.mu.Lock()
	defer d.mu.Unlock()
	return Status{
		MatchID:            d.matchID,
		RoundActive:        d.roundActive,
		Profile:            d.difficulty.Profile(),
		ScalingFactor:      d.difficulty.ScalingFactor(),
		Adaptive:           d.difficulty.Adaptive(),
		Multipliers:        d.difficulty.Multipliers(),
		Phase:              d.pacing.Phase(),
		Tension:            d.pacing.Tension(),
		TargetTension:      d.pacing.TargetTension(),
		AveragePerformance: d.tracker.AveragePerformance(),
		ActiveEncounters:   d.scheduler.Active(),
		Squads:             len(d.squads.Squads()),
		Players:            d.tracker.Players(),
	}
}

func (d *Director) emitDifficulty() {
	m := d.difficulty.Multipliers()
	row := DifficultyRow{
		MatchID:       d.matchID,
		Profile:       d.difficulty.Profile(),
		ScalingFactor: d.difficulty.ScalingFactor(),
		ReactionTime:  m.ReactionTime,
		Accuracy:      m.Accuracy,
		Aggression:    m.Aggression,
		SpawnRate:     m.SpawnRate,
		Health:        m.Health,
		Timestamp:     d.now().UTC(),
	}
	if err := d.sink.WriteDifficulty(row); err != nil {
		d.log.Error("difficulty event write failed", "err", err)
	}
}

func (d *Director) emitPacing() {
	row := PacingRow{
		MatchID:       d.matchID,
		Phase:         d.pacing.Phase(),
		TargetTension: d.pacing.TargetTension(),
		Tension:       d.pacing.Tension(),
		Timestamp:     d.now().UTC(),
	}
	if err := d.sink.WritePacing(row); err != nil {
		d.log.Error("pacing event write failed", "err", err)
	}
}
