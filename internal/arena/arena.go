// Package arena runs a lightweight combat simulation that stands in
// for a real game world. Simulated player bots fight the actors the
// director spawns, producing the kill, shot, damage and objective
// events the feedback loop consumes.
package arena

import (
	"fmt"
	"log/slog"
	"math/rand"

	"director-sim/internal/config"
	"director-sim/internal/director"
)

// Event kinds reported by Step.
const (
	EventKill        = "kill"
	EventDeath       = "death"
	EventShot        = "shot"
	EventDamageDealt = "damage_dealt"
	EventDamageTaken = "damage_taken"
	EventObjective   = "objective"
)

// Event is one combat outcome involving a simulated player.
type Event struct {
	Kind   string
	Player string
	Hit    bool
	Amount float64
}

const (
	engageRange   = 40.0
	botSpeed      = 5.0
	botMaxHealth  = 100.0
	botDamage     = 22.0
	botFireRate   = 1.5 // shots per second while engaged
	respawnDelay  = 5.0
	objectiveRate = 0.03 // attempts per second per bot
	actorFireRate = 1.0
)

type bot struct {
	id      string
	team    string
	skill   float64
	pos     director.Position
	dest    director.Position
	health  float64
	downFor float64
}

func (b *bot) alive() bool { return b.health > 0 }

// Arena holds the simulated match state. It implements the roster,
// spawner, actor control and spawn point surfaces the director needs.
type Arena struct {
	cfg  *config.MatchConfig
	rng  *rand.Rand
	log  *slog.Logger
	bots   []*bot
	actors []*SimActor // ordered by spawn, so iteration is reproducible
	points []director.Position

	// intensity scales opposition pressure: above 1 the bots struggle,
	// below 1 they dominate. Driven by the match script.
	intensity float64

	seq int
}

// New builds an arena from the match config. The rand source drives
// every stochastic outcome, so a fixed seed replays identically.
func New(cfg *config.MatchConfig, rng *rand.Rand, log *slog.Logger) *Arena {
	a := &Arena{
		cfg:       cfg,
		rng:       rng,
		log:       log,
		intensity: 1.0,
	}
	for _, p := range cfg.SpawnPoints {
		a.points = append(a.points, director.Position{X: p.X, Y: p.Y, Z: p.Z})
	}
	for _, team := range cfg.Teams {
		for _, pl := range team.Players {
			a.bots = append(a.bots, &bot{
				id:     pl.Name,
				team:   team.Name,
				skill:  pl.Skill,
				pos:    a.randomPos(),
				dest:   a.randomPos(),
				health: botMaxHealth,
			})
		}
	}
	return a
}

// SetIntensity adjusts opposition pressure. Values are clamped to a
// sane band so a bad script cannot zero out the simulation.
func (a *Arena) SetIntensity(v float64) {
	if v < 0.2 {
		v = 0.2
	}
	if v > 2.5 {
		v = 2.5
	}
	a.intensity = v
}

// Intensity returns the current opposition pressure.
func (a *Arena) Intensity() float64 { return a.intensity }

// Step advances the simulation by delta seconds and returns the combat
// events produced, in a deterministic order for a given seed.
func (a *Arena) Step(delta float64) []Event {
	var events []Event

	for _, b := range a.bots {
		if !b.alive() {
			b.downFor += delta
			if b.downFor >= respawnDelay {
				b.health = botMaxHealth
				b.downFor = 0
				b.pos = a.randomPos()
				b.dest = a.randomPos()
			}
			continue
		}
		a.moveBot(b, delta)
		events = append(events, a.botCombat(b, delta)...)
		if a.rng.Float64() < objectiveRate*b.skill/a.intensity*delta {
			events = append(events, Event{Kind: EventObjective, Player: b.id})
		}
	}

	live := a.actors[:0]
	for _, act := range a.actors {
		if !act.alive() {
			// Dropped here; the director still holds a handle and
			// observes the zero health on its next sweep.
			continue
		}
		target := a.nearestBot(act.pos, engageRange)
		act.advance(delta, target != nil)
		if target != nil {
			events = append(events, a.actorCombat(act, target, delta)...)
		}
		live = append(live, act)
	}
	a.actors = live

	return events
}

func (a *Arena) moveBot(b *bot, delta float64) {
	dist := b.pos.DistanceTo(b.dest)
	step := botSpeed * delta
	if dist <= step || dist == 0 {
		b.pos = b.dest
		b.dest = a.randomPos()
		return
	}
	b.pos.X += (b.dest.X - b.pos.X) / dist * step
	b.pos.Y += (b.dest.Y - b.pos.Y) / dist * step
}

// botCombat lets a bot engage the nearest living actor in range.
func (a *Arena) botCombat(b *bot, delta float64) []Event {
	target := a.nearestActor(b.pos, engageRange)
	if target == nil {
		return nil
	}
	if a.rng.Float64() >= botFireRate*delta {
		return nil
	}

	hitChance := b.skill / a.intensity
	if hitChance > 0.95 {
		hitChance = 0.95
	}
	hit := a.rng.Float64() < hitChance
	events := []Event{{Kind: EventShot, Player: b.id, Hit: hit}}
	if !hit {
		return events
	}

	dmg := botDamage * (0.5 + b.skill)
	target.health -= dmg
	events = append(events, Event{Kind: EventDamageDealt, Player: b.id, Amount: dmg})
	if !target.alive() {
		events = append(events, Event{Kind: EventKill, Player: b.id})
	}
	return events
}

// actorCombat lets an actor shoot back at its engaged target.
func (a *Arena) actorCombat(act *SimActor, b *bot, delta float64) []Event {
	if a.rng.Float64() >= actorFireRate*a.intensity*delta {
		return nil
	}
	_, _, dmg := tierFor(act.difficulty)
	dmg *= a.intensity
	b.health -= dmg
	events := []Event{{Kind: EventDamageTaken, Player: b.id, Amount: dmg}}
	if !b.alive() {
		b.downFor = 0
		events = append(events, Event{Kind: EventDeath, Player: b.id})
	}
	return events
}

func (a *Arena) nearestActor(from director.Position, within float64) *SimActor {
	var best *SimActor
	bestDist := within
	for _, act := range a.actors {
		if !act.alive() {
			continue
		}
		if d := from.DistanceTo(act.pos); d <= bestDist {
			best, bestDist = act, d
		}
	}
	return best
}

func (a *Arena) nearestBot(from director.Position, within float64) *bot {
	var best *bot
	bestDist := within
	for _, b := range a.bots {
		if !b.alive() {
			continue
		}
		if d := from.DistanceTo(b.pos); d <= bestDist {
			best, bestDist = b, d
		}
	}
	return best
}

func (a *Arena) randomPos() director.Position {
	return director.Position{
		X: a.rng.Float64() * a.cfg.Arena.Width,
		Y: a.rng.Float64() * a.cfg.Arena.Height,
	}
}

// ActivePlayers reports the living bots.
func (a *Arena) ActivePlayers() []director.PlayerInfo {
	var out []director.PlayerInfo
	for _, b := range a.bots {
		if !b.alive() {
			continue
		}
		out = append(out, director.PlayerInfo{ID: b.id, Team: b.team, Position: b.pos})
	}
	return out
}

// Teams reports team membership for all configured bots.
func (a *Arena) Teams() []director.Team {
	var out []director.Team
	for _, t := range a.cfg.Teams {
		team := director.Team{ID: t.Name}
		for _, p := range t.Players {
			team.Players = append(team.Players, p.Name)
		}
		out = append(out, team)
	}
	return out
}

// SpawnActor creates a simulated actor at the requested position.
func (a *Arena) SpawnActor(req director.SpawnRequest) (director.Actor, bool) {
	a.seq++
	health, speed, _ := tierFor(req.Difficulty)
	act := &SimActor{
		id:          fmt.Sprintf("actor-%04d", a.seq),
		team:        req.Team,
		encounterID: req.EncounterID,
		difficulty:  req.Difficulty,
		pos:         req.Position,
		health:      health,
		max:         health,
		speed:       speed,
		state:       director.BehaviorIdle,
	}
	a.actors = append(a.actors, act)
	return act, true
}

// DestroyActor removes an actor from the arena.
func (a *Arena) DestroyActor(actorID string) {
	for i, act := range a.actors {
		if act.id == actorID {
			a.actors = append(a.actors[:i], a.actors[i+1:]...)
			return
		}
	}
}

func (a *Arena) lookup(id string) *SimActor {
	for _, act := range a.actors {
		if act.id == id {
			return act
		}
	}
	return nil
}

// SetSquadRole records the role assigned to an actor.
func (a *Arena) SetSquadRole(actor director.Actor, role string) {
	if act := a.lookup(actor.ID()); act != nil {
		act.role = role
	}
}

// SetDestination orders an actor to move toward a position.
func (a *Arena) SetDestination(actor director.Actor, pos director.Position) {
	if act := a.lookup(actor.ID()); act != nil {
		act.dest = pos
		act.hasDest = true
	}
}

// SpawnPoints lists the configured encounter spawn points.
func (a *Arena) SpawnPoints() []director.Position {
	return a.points
}

// ActorCount returns the number of living actors, for status reporting.
func (a *Arena) ActorCount() int {
	n := 0
	for _, act := range a.actors {
		if act.alive() {
			n++
		}
	}
	return n
}

// World bundles the arena into the collaborator set the director takes.
func (a *Arena) World() director.World {
	return director.World{Roster: a, Spawner: a, Control: a, Points: a}
}
