// Runner orchestrating the arena, the director, and the match script.
package sim

import (
	"log/slog"
	"math/rand"
	"sync"
	"time"

	"director-sim/internal/arena"
	"director-sim/internal/config"
	"director-sim/internal/director"
	"director-sim/internal/scenario"
)

// EventWriter receives director notification rows. It is the writer
// side of the sink the director emits into.
type EventWriter = director.EventSink

// StatusWriter is an optional writer extension receiving a status
// snapshot once per tick.
type StatusWriter interface {
	WriteStatus(director.Status) error
}

// Runner drives one simulated match: it steps the arena, feeds the
// resulting combat events into the director, ticks the director, and
// rotates rounds. Control methods are safe to call while Run is
// blocking in its loop; the runner's mutex serializes arena access.
type Runner struct {
	cfg    *config.MatchConfig
	arena  *arena.Arena
	dir    *director.Director
	script *scenario.Script
	writer EventWriter
	log    *slog.Logger

	tickInterval time.Duration

	mu           sync.Mutex
	phase        string
	round        int
	roundElapsed float64
	matchElapsed float64
	kills        int
	deaths       int
}

// RunnerStatus extends the director status with harness state.
type RunnerStatus struct {
	director.Status
	Round        int     `json:"round"`
	RoundElapsed float64 `json:"round_elapsed"`
	ScriptPhase  string  `json:"script_phase"`
	Intensity    float64 `json:"intensity"`
	ActorCount   int     `json:"actor_count"`
}

// NewRunner wires a match from config. The config seed drives both the
// arena and the director, so two runs of the same config agree.
func NewRunner(cfg *config.MatchConfig, script *scenario.Script, writer EventWriter, tickInterval time.Duration, log *slog.Logger) *Runner {
	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	ar := arena.New(cfg, rand.New(rand.NewSource(seed)), log)
	dir := director.New(cfg.MatchID, ar.World(), writer,
		director.WithRand(rand.New(rand.NewSource(seed+1))),
		director.WithLogger(log),
	)
	r := &Runner{
		cfg:          cfg,
		arena:        ar,
		dir:          dir,
		script:       script,
		writer:       writer,
		log:          log,
		tickInterval: tickInterval,
		round:        1,
	}
	if script != nil {
		r.phase = script.Phases[0].Name
		ar.SetIntensity(script.Phases[0].Intensity)
	}
	return r
}

// Run starts the match loop, blocking until stop closes.
func (r *Runner) Run(stop <-chan struct{}) {
	r.log.Info("match starting",
		"match_id", r.cfg.MatchID,
		"players", r.cfg.PlayerCount(),
		"tick_interval", r.tickInterval)

	r.dir.StartRound()

	ticker := time.NewTicker(r.tickInterval)
	defer ticker.Stop()

	delta := r.tickInterval.Seconds()
	for {
		select {
		case <-ticker.C:
			r.Tick(delta)
		case <-stop:
			r.log.Info("match stopping", "match_id", r.cfg.MatchID)
			r.dir.EndRound()
			return
		}
	}
}

// Tick advances the match by delta seconds. Exposed so tests can drive
// the loop without wall-clock time.
func (r *Runner) Tick(delta float64) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.roundElapsed += delta
	r.matchElapsed += delta

	for _, ev := range r.arena.Step(delta) {
		r.feed(ev)
	}
	r.advanceScript()
	r.dir.Tick(delta)

	if r.roundElapsed >= r.cfg.RoundSeconds {
		r.rotateRound()
	}

	if sw, ok := r.writer.(StatusWriter); ok {
		if err := sw.WriteStatus(r.dir.Status()); err != nil {
			r.log.Error("status write failed", "err", err)
		}
	}
}

func (r *Runner) feed(ev arena.Event) {
	switch ev.Kind {
	case arena.EventKill:
		r.dir.RecordKill(ev.Player)
		r.kills++
	case arena.EventDeath:
		r.dir.RecordDeath(ev.Player)
		r.deaths++
	case arena.EventShot:
		r.dir.RecordShot(ev.Player, ev.Hit)
	case arena.EventDamageDealt:
		r.dir.RecordDamageDealt(ev.Player, ev.Amount)
	case arena.EventDamageTaken:
		r.dir.RecordDamageTaken(ev.Player, ev.Amount)
	case arena.EventObjective:
		r.dir.RecordObjectiveCompletion(ev.Player)
	}
}

// advanceScript checks the current phase's triggers against match
// state and moves the arena intensity when one fires. Caller holds mu.
func (r *Runner) advanceScript() {
	if r.script == nil {
		return
	}
	probes := []scenario.Event{
		{Type: scenario.EventTimeElapsed, Value: int(r.matchElapsed)},
		{Type: scenario.EventPlayerKills, Value: r.kills},
		{Type: scenario.EventPlayerDeaths, Value: r.deaths},
	}
	for _, probe := range probes {
		next, ok := r.script.NextPhase(r.phase, probe)
		if !ok {
			continue
		}
		phase := r.script.Phase(next)
		r.phase = phase.Name
		r.arena.SetIntensity(phase.Intensity)
		r.log.Info("script phase changed",
			"phase", phase.Name,
			"intensity", phase.Intensity,
			"trigger", probe.Type)
		return
	}
}

// rotateRound ends the round and starts the next. Caller holds mu.
func (r *Runner) rotateRound() {
	r.dir.EndRound()
	r.round++
	r.roundElapsed = 0
	r.log.Info("round rotated", "round", r.round)
	r.dir.StartRound()
}

// Director exposes the underlying director for operator surfaces.
func (r *Runner) Director() *director.Director { return r.dir }

// Status reports harness and director state together.
func (r *Runner) Status() RunnerStatus {
	r.mu.Lock()
	defer r.mu.Unlock()
	return RunnerStatus{
		Status:       r.dir.Status(),
		Round:        r.round,
		RoundElapsed: r.roundElapsed,
		ScriptPhase:  r.phase,
		Intensity:    r.arena.Intensity(),
		ActorCount:   r.arena.ActorCount(),
	}
}

// SetProfile switches the base difficulty profile.
func (r *Runner) SetProfile(name string) {
	r.dir.SetGlobalDifficulty(name)
}

// ToggleAdaptive flips the control loop and returns the new state.
func (r *Runner) ToggleAdaptive() bool {
	enabled := !r.dir.Status().Adaptive
	r.dir.SetAdaptiveDifficulty(enabled)
	return enabled
}

// ResetRound ends the current round and starts a fresh one.
func (r *Runner) ResetRound() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rotateRound()
}
