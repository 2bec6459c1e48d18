package director

import (
	"log/slog"

	"github.com/google/uuid"
)

// Squad roles and formations.
const (
	RoleLeader  = "leader"
	RoleSoldier = "soldier"

	FormationLine = "line"
)

const formationSpacing = 4.0

// Squad is an ordered group of actors; the first member leads.
type Squad struct {
	ID        string  `json:"id"`
	Members   []Actor `json:"-"`
	Formation string  `json:"formation"`
	Objective string  `json:"objective,omitempty"`
}

// Leader returns the squad leader, nil for an empty squad.
func (s *Squad) Leader() Actor {
	if len(s.Members) == 0 {
		return nil
	}
	return s.Members[0]
}

// Coordinator groups spawned actors into squads, keeps a trailing line
// formation, and propagates combat alerts between members. It runs on
// its own per-tick update, decoupled from the difficulty pipeline.
type Coordinator struct {
	world  World
	log    *slog.Logger
	squads map[string]*Squad
}

// NewCoordinator returns an empty coordinator.
func NewCoordinator(world World, log *slog.Logger) *Coordinator {
	return &Coordinator{world: world, log: log, squads: make(map[string]*Squad)}
}

// CreateSquad forms a squad from the given members, assigning roles
// through the actor-control collaborator. Empty member lists are
// rejected with ok=false.
func (c *Coordinator) CreateSquad(members []Actor, formation string) (string, bool) {
	if len(members) == 0 {
		return "", false
	}
	if formation == "" {
		formation = FormationLine
	}
	id := uuid.New().String()
	sq := &Squad{ID: id, Members: members, Formation: formation}
	for i, m := range members {
		role := RoleSoldier
		if i == 0 {
			role = RoleLeader
		}
		c.world.Control.SetSquadRole(m, role)
	}
	c.squads[id] = sq
	c.log.Debug("squad created", "squad_id", id, "members", len(members))
	return id, true
}

// Tick updates formations and alert propagation for every squad.
func (c *Coordinator) Tick() {
	for _, sq := range c.squads {
		c.updateFormation(sq)
		c.updateAlerts(sq)
	}
}

// updateFormation sends each living non-leader toward a trailing slot
// behind the leader: alternating lateral offsets, one rank per pair.
func (c *Coordinator) updateFormation(sq *Squad) {
	if len(sq.Members) < 2 {
		return
	}
	leader := sq.Leader()
	if leader.Health() <= 0 {
		return
	}
	base := leader.Position()
	for i, m := range sq.Members[1:] {
		if m.Health() <= 0 {
			continue
		}
		slot := i + 1
		side := 1.0
		if slot%2 == 0 {
			side = -1.0
		}
		rank := float64((slot + 1) / 2)
		dest := Position{
			X: base.X + side*rank*formationSpacing,
			Y: base.Y - rank*formationSpacing,
			Z: base.Z,
		}
		c.world.Control.SetDestination(m, dest)
	}
}

// updateAlerts converges the rest of a squad on the first member found
// in combat. One hop, no acknowledgment, no retry.
func (c *Coordinator) updateAlerts(sq *Squad) {
	var engaged Actor
	for _, m := range sq.Members {
		if m.Health() > 0 && m.BehaviorState() == BehaviorCombat {
			engaged = m
			break
		}
	}
	if engaged == nil {
		return
	}
	for _, m := range sq.Members {
		if m == engaged || m.Health() <= 0 {
			continue
		}
		c.world.Control.SetDestination(m, engaged.Position())
	}
}

// OnSquadEliminated drops the squad record. Unknown ids are ignored.
func (c *Coordinator) OnSquadEliminated(squadID string) {
	if _, ok := c.squads[squadID]; !ok {
		return
	}
	delete(c.squads, squadID)
	c.log.Debug("squad eliminated", "squad_id", squadID)
}

// Squads returns the live squads, order unspecified.
func (c *Coordinator) Squads() []*Squad {
	out := make([]*Squad, 0, len(c.squads))
	for _, sq := range c.squads {
		out = append(out, sq)
	}
	return out
}
