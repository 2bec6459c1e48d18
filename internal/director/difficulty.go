package director

// Named difficulty profiles.
const (
	ProfileEasy   = "easy"
	ProfileMedium = "medium"
	ProfileHard   = "hard"
	ProfileExpert = "expert"
)

// Profile is a static bundle of gameplay-affecting multipliers for one
// named difficulty level. Values are compiled in, never loaded.
type Profile struct {
	ReactionTime float64 `json:"reaction_time"`
	Accuracy     float64 `json:"accuracy"`
	Aggression   float64 `json:"aggression"`
	SpawnRate    float64 `json:"spawn_rate"`
	Health       float64 `json:"health"`
}

var profiles = map[string]Profile{
	ProfileEasy:   {ReactionTime: 1.2, Accuracy: 0.5, Aggression: 0.5, SpawnRate: 0.7, Health: 0.8},
	ProfileMedium: {ReactionTime: 0.8, Accuracy: 0.7, Aggression: 0.8, SpawnRate: 1.0, Health: 1.0},
	ProfileHard:   {ReactionTime: 0.5, Accuracy: 0.85, Aggression: 1.1, SpawnRate: 1.3, Health: 1.2},
	ProfileExpert: {ReactionTime: 0.3, Accuracy: 0.95, Aggression: 1.3, SpawnRate: 1.6, Health: 1.5},
}

// Profiles returns the static profile table.
func Profiles() map[string]Profile {
	out := make(map[string]Profile, len(profiles))
	for k, v := range profiles {
		out[k] = v
	}
	return out
}

const (
	scalingMin        = 0.5
	scalingMax        = 2.0
	targetPerformance = 0.6
	deadband          = 0.1
	scalingStep       = 0.05
)

// Controller retunes the continuous difficulty scaling factor from the
// performance scalar and derives per-axis adaptive multipliers on top
// of the selected base profile. The named profile is a manual baseline;
// the scaling factor carries the adaptive trend, so a profile switch
// never discards what the loop has learned.
type Controller struct {
	profile     string
	scaling     float64
	adaptive    bool
	multipliers Profile
}

// NewController starts at the medium profile with neutral scaling.
func NewController() *Controller {
	c := &Controller{profile: ProfileMedium, scaling: 1.0, adaptive: true}
	c.recompute()
	return c
}

// Adjust runs one control step against the average performance scalar.
// It reports whether the step ran; with adaptive mode off nothing
// happens and metrics collection elsewhere is unaffected.
func (c *Controller) Adjust(averagePerformance float64) bool {
	if !c.adaptive {
		return false
	}
	delta := averagePerformance - targetPerformance
	if delta > deadband {
		c.scaling += scalingStep
	} else if delta < -deadband {
		c.scaling -= scalingStep
	}
	c.scaling = clamp(c.scaling, scalingMin, scalingMax)
	c.recompute()
	return true
}

func (c *Controller) recompute() {
	p := profiles[c.profile]
	c.multipliers = Profile{
		ReactionTime: p.ReactionTime * c.scaling,
		Accuracy:     p.Accuracy * c.scaling,
		Aggression:   p.Aggression * c.scaling,
		SpawnRate:    p.SpawnRate * c.scaling,
		Health:       p.Health * c.scaling,
	}
}

// SetProfile switches the base profile. Unknown names are silently
// ignored and leave state untouched.
func (c *Controller) SetProfile(name string) {
	if _, ok := profiles[name]; !ok {
		return
	}
	c.profile = name
	c.recompute()
}

// SetAdaptive toggles whether Adjust runs.
func (c *Controller) SetAdaptive(enabled bool) { c.adaptive = enabled }

// Adaptive reports whether adaptive adjustment is enabled.
func (c *Controller) Adaptive() bool { return c.adaptive }

// Profile returns the current base profile name.
func (c *Controller) Profile() string { return c.profile }

// ScalingFactor returns the current scaling factor in [0.5, 2.0].
func (c *Controller) ScalingFactor() float64 { return c.scaling }

// Multipliers returns the adaptive per-axis multipliers.
func (c *Controller) Multipliers() Profile { return c.multipliers }

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
