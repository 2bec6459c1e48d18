package director

import "math"

// Position is a point in arena space, in distance units.
type Position struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// DistanceTo returns the euclidean distance to another position.
func (p Position) DistanceTo(o Position) float64 {
	dx := p.X - o.X
	dy := p.Y - o.Y
	dz := p.Z - o.Z
	return math.Sqrt(dx*dx + dy*dy + dz*dz)
}

// PlayerInfo describes an active player as reported by the roster.
type PlayerInfo struct {
	ID       string
	Team     string
	Position Position
}

// Team groups player ids under a team id.
type Team struct {
	ID      string
	Players []string
}

// Roster exposes the live player and team population.
type Roster interface {
	ActivePlayers() []PlayerInfo
	Teams() []Team
}

// Actor behavior states reported by the actor collaborator.
const (
	BehaviorIdle   = "idle"
	BehaviorMoving = "moving"
	BehaviorCombat = "combat"
)

// Actor is a handle to a spawned opposing actor. The director only
// inspects actors through this surface; it never owns their lifetime.
type Actor interface {
	ID() string
	Position() Position
	Health() float64
	BehaviorState() string
}

// SpawnRequest configures a single actor spawn.
type SpawnRequest struct {
	Position    Position
	Difficulty  string
	EncounterID string
	Team        string
}

// Spawner creates and destroys actors. SpawnActor may fail and return
// ok=false; the caller tolerates partial results and never retries
// within the same tick.
type Spawner interface {
	SpawnActor(req SpawnRequest) (Actor, bool)
	DestroyActor(actorID string)
}

// ActorControl issues behavior commands to spawned actors.
type ActorControl interface {
	SetSquadRole(actor Actor, role string)
	SetDestination(actor Actor, pos Position)
}

// SpawnPointSource lists the designated encounter spawn points.
type SpawnPointSource interface {
	SpawnPoints() []Position
}

// World bundles the external collaborators the director talks to.
// Nil fields are replaced with no-op stand-ins at construction, so the
// director logic never branches on collaborator presence.
type World struct {
	Roster  Roster
	Spawner Spawner
	Control ActorControl
	Points  SpawnPointSource
}

// NopWorld returns a world where every collaborator is a no-op.
func NopWorld() World {
	return World{}.withDefaults()
}

func (w World) withDefaults() World {
	if w.Roster == nil {
		w.Roster = nopRoster{}
	}
	if w.Spawner == nil {
		w.Spawner = nopSpawner{}
	}
	if w.Control == nil {
		w.Control = nopControl{}
	}
	if w.Points == nil {
		w.Points = nopPoints{}
	}
	return w
}

type nopRoster struct{}

func (nopRoster) ActivePlayers() []PlayerInfo { return nil }
func (nopRoster) Teams() []Team               { return nil }

type nopSpawner struct{}

func (nopSpawner) SpawnActor(SpawnRequest) (Actor, bool) { return nil, false }
func (nopSpawner) DestroyActor(string)                   {}

type nopControl struct{}

func (nopControl) SetSquadRole(Actor, string)    {}
func (nopControl) SetDestination(Actor, Position) {}

type nopPoints struct{}

func (nopPoints) SpawnPoints() []Position { return nil }
