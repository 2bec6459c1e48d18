package scenario

// BuiltIn returns the named built-in match arc, or nil if unknown.
func BuiltIn(name string) *Script {
	switch name {
	case "standard-match":
		return standardMatch()
	case "steamroll":
		return steamroll()
	case "meatgrinder":
		return meatgrinder()
	}
	return nil
}

// standardMatch ramps pressure up and back down so regulation has work
// to do in both directions.
func standardMatch() *Script {
	return &Script{
		Name:        "standard-match",
		Description: "warmup, escalating pressure, then winddown",
		Phases: []Phase{
			{
				Name:      "warmup",
				Intensity: 0.6,
				Triggers: []Trigger{
					{Event: EventTimeElapsed, Value: 45, Next: "contested"},
				},
			},
			{
				Name:      "contested",
				Intensity: 1.0,
				Triggers: []Trigger{
					{Event: EventTimeElapsed, Value: 150, Next: "overrun"},
				},
			},
			{
				Name:      "overrun",
				Intensity: 1.4,
				Triggers: []Trigger{
					{Event: EventPlayerDeaths, Value: 12, Next: "winddown"},
					{Event: EventTimeElapsed, Value: 240, Next: "winddown"},
				},
			},
			{
				Name:      "winddown",
				Intensity: 0.8,
			},
		},
	}
}

// steamroll keeps opposition weak so player performance stays high and
// the difficulty loop is forced to scale up.
func steamroll() *Script {
	return &Script{
		Name:        "steamroll",
		Description: "players dominate throughout",
		Phases: []Phase{
			{
				Name:      "pushover",
				Intensity: 0.4,
				Triggers: []Trigger{
					{Event: EventPlayerKills, Value: 30, Next: "token-resistance"},
				},
			},
			{
				Name:      "token-resistance",
				Intensity: 0.6,
			},
		},
	}
}

// meatgrinder keeps the opposition overwhelming so performance stays
// low and the difficulty loop is forced to scale down.
func meatgrinder() *Script {
	return &Script{
		Name:        "meatgrinder",
		Description: "players are outmatched throughout",
		Phases: []Phase{
			{
				Name:      "onslaught",
				Intensity: 1.6,
				Triggers: []Trigger{
					{Event: EventPlayerDeaths, Value: 20, Next: "relentless"},
				},
			},
			{
				Name:      "relentless",
				Intensity: 1.8,
			},
		},
	}
}
