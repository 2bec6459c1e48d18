package arena

import "director-sim/internal/director"

// SimActor is an opposing actor living in the simulated arena. It
// satisfies the actor surface the director inspects and the movement
// commands it issues.
type SimActor struct {
	id          string
	team        string
	encounterID string
	difficulty  string

	pos     director.Position
	dest    director.Position
	hasDest bool
	health  float64
	max     float64
	speed   float64
	role    string
	state   string
}

func (a *SimActor) ID() string                  { return a.id }
func (a *SimActor) Position() director.Position { return a.pos }
func (a *SimActor) Health() float64             { return a.health }
func (a *SimActor) BehaviorState() string       { return a.state }

// Role returns the squad role last assigned to the actor.
func (a *SimActor) Role() string { return a.role }

// Difficulty returns the tier the actor was spawned with.
func (a *SimActor) Difficulty() string { return a.difficulty }

func (a *SimActor) alive() bool { return a.health > 0 }

// advance moves the actor toward its destination and refreshes its
// behavior state for this step.
func (a *SimActor) advance(delta float64, engaged bool) {
	switch {
	case engaged:
		a.state = director.BehaviorCombat
	case a.hasDest:
		a.state = director.BehaviorMoving
	default:
		a.state = director.BehaviorIdle
	}

	if !a.hasDest {
		return
	}
	dist := a.pos.DistanceTo(a.dest)
	step := a.speed * delta
	if dist <= step || dist == 0 {
		a.pos = a.dest
		a.hasDest = false
		return
	}
	a.pos.X += (a.dest.X - a.pos.X) / dist * step
	a.pos.Y += (a.dest.Y - a.pos.Y) / dist * step
	a.pos.Z += (a.dest.Z - a.pos.Z) / dist * step
}

// actor tuning per difficulty tier.
var actorTiers = map[string]struct {
	health float64
	speed  float64
	damage float64
}{
	"easy":   {health: 80, speed: 3.5, damage: 6},
	"medium": {health: 100, speed: 4.5, damage: 9},
	"hard":   {health: 130, speed: 5.5, damage: 13},
	"expert": {health: 160, speed: 6.5, damage: 17},
}

func tierFor(difficulty string) (health, speed, damage float64) {
	t, ok := actorTiers[difficulty]
	if !ok {
		t = actorTiers["medium"]
	}
	return t.health, t.speed, t.damage
}
