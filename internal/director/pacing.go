package director

// Pacing phases, cycled in order with no terminal state.
const (
	PhaseRest     = "rest"
	PhaseBuilding = "building"
	PhaseAction   = "action"
	PhaseClimax   = "climax"
)

type phaseDef struct {
	name          string
	duration      float64
	targetTension float64
}

var phaseCycle = []phaseDef{
	{PhaseRest, 20, 0.2},
	{PhaseBuilding, 30, 0.5},
	{PhaseAction, 25, 0.8},
	{PhaseClimax, 15, 1.0},
}

const tensionSmoothing = 0.1

// Pacing advances the cyclic calm/intense state machine and smooths the
// tension level toward the phase target. Tension moves, never jumps.
type Pacing struct {
	idx     int
	elapsed float64
	tension float64
}

// NewPacing starts at rest with tension settled on the rest target.
func NewPacing() *Pacing {
	return &Pacing{tension: phaseCycle[0].targetTension}
}

// Advance moves phase time forward by delta seconds and applies one
// smoothing step. It reports whether the phase changed.
func (p *Pacing) Advance(delta float64) bool {
	changed := false
	p.elapsed += delta
	if p.elapsed >= phaseCycle[p.idx].duration {
		p.idx = (p.idx + 1) % len(phaseCycle)
		p.elapsed = 0
		changed = true
	}
	p.tension += (phaseCycle[p.idx].targetTension - p.tension) * tensionSmoothing
	return changed
}

// Phase returns the current phase name.
func (p *Pacing) Phase() string { return phaseCycle[p.idx].name }

// Tension returns the smoothed tension level in [0,1].
func (p *Pacing) Tension() float64 { return p.tension }

// TargetTension returns the current phase's tension target.
func (p *Pacing) TargetTension() float64 { return phaseCycle[p.idx].targetTension }

// PhaseElapsed returns seconds spent in the current phase.
func (p *Pacing) PhaseElapsed() float64 { return p.elapsed }

// ResetRound forces the machine into the building phase with tension
// 0.3, the round-start posture.
func (p *Pacing) ResetRound() {
	p.idx = 1
	p.elapsed = 0
	p.tension = 0.3
}
