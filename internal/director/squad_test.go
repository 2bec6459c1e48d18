package director

import "testing"

func squadActors(n int) []Actor {
	out := make([]Actor, n)
	for i := range out {
		out[i] = &fakeActor{id: string(rune('a' + i)), health: 100, state: BehaviorIdle}
	}
	return out
}

func TestCoordinator_CreateAssignsRoles(t *testing.T) {
	control := &fakeControl{}
	c := NewCoordinator(World{Control: control}.withDefaults(), testLogger())

	members := squadActors(3)
	id, ok := c.CreateSquad(members, FormationLine)
	if !ok || id == "" {
		t.Fatalf("expected squad creation to succeed")
	}
	if len(control.roles) != 3 {
		t.Fatalf("expected 3 role assignments, got %d", len(control.roles))
	}
	if control.roles[0].role != RoleLeader {
		t.Fatalf("expected first member to lead, got %s", control.roles[0].role)
	}
	for _, rc := range control.roles[1:] {
		if rc.role != RoleSoldier {
			t.Fatalf("expected soldier role, got %s", rc.role)
		}
	}
}

func TestCoordinator_RejectsEmptySquad(t *testing.T) {
	c := NewCoordinator(NopWorld(), testLogger())
	if _, ok := c.CreateSquad(nil, FormationLine); ok {
		t.Fatalf("expected empty squad rejected")
	}
}

func TestCoordinator_LineFormationTrailsLeader(t *testing.T) {
	control := &fakeControl{}
	c := NewCoordinator(World{Control: control}.withDefaults(), testLogger())

	members := squadActors(3)
	members[0].(*fakeActor).pos = Position{X: 10, Y: 10}
	c.CreateSquad(members, FormationLine)
	c.Tick()

	if len(control.dests) != 2 {
		t.Fatalf("expected destinations for 2 followers, got %d", len(control.dests))
	}
	for _, dc := range control.dests {
		if dc.pos.Y >= 10 {
			t.Fatalf("expected followers placed behind the leader, got %+v", dc.pos)
		}
		if dc.pos.X == 10 {
			t.Fatalf("expected lateral offset from the leader, got %+v", dc.pos)
		}
	}
	if control.dests[0].pos == control.dests[1].pos {
		t.Fatalf("expected distinct formation slots")
	}
}

func TestCoordinator_SingleMemberSkipsFormation(t *testing.T) {
	control := &fakeControl{}
	c := NewCoordinator(World{Control: control}.withDefaults(), testLogger())
	c.CreateSquad(squadActors(1), FormationLine)
	c.Tick()
	if len(control.dests) != 0 {
		t.Fatalf("expected no formation updates for a lone actor")
	}
}

func TestCoordinator_CombatAlertConverges(t *testing.T) {
	control := &fakeControl{}
	c := NewCoordinator(World{Control: control}.withDefaults(), testLogger())

	members := squadActors(3)
	engaged := members[2].(*fakeActor)
	engaged.state = BehaviorCombat
	engaged.pos = Position{X: 99, Y: 99}
	c.CreateSquad(members, FormationLine)
	c.Tick()

	// Formation sends 2 destinations, the alert sends 2 more toward the fight.
	var alerts int
	for _, dc := range control.dests {
		if dc.pos == engaged.pos {
			alerts++
		}
	}
	if alerts != 2 {
		t.Fatalf("expected both squadmates alerted to the engagement, got %d", alerts)
	}
}

func TestCoordinator_DeadMembersIgnored(t *testing.T) {
	control := &fakeControl{}
	c := NewCoordinator(World{Control: control}.withDefaults(), testLogger())

	members := squadActors(3)
	members[1].(*fakeActor).health = 0
	c.CreateSquad(members, FormationLine)
	c.Tick()
	if len(control.dests) != 1 {
		t.Fatalf("expected the dead follower skipped, got %d destinations", len(control.dests))
	}
}

func TestCoordinator_OnSquadEliminated(t *testing.T) {
	c := NewCoordinator(NopWorld(), testLogger())
	id, _ := c.CreateSquad(squadActors(2), FormationLine)
	c.OnSquadEliminated("not-a-squad")
	if len(c.Squads()) != 1 {
		t.Fatalf("expected unknown squad id ignored")
	}
	c.OnSquadEliminated(id)
	if len(c.Squads()) != 0 {
		t.Fatalf("expected squad removed after elimination")
	}
}
