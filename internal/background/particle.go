package background

import "image/color"

const (
	// FadeTicks is the length of the fade-in and fade-out ramps.
	FadeTicks = 60
	// BoundsMargin is how far outside the canvas a particle may drift before
	// it is respawned.
	BoundsMargin = 50.0

	minLife    = 200
	lifeSpread = 300
	minRadius  = 1.0
	radiusSpan = 3.0
	windJitter = 0.02
	baseRise   = 0.5
)

// Phase is the lifecycle stage of a particle.
type Phase int

const (
	PhaseSpawning Phase = iota
	PhaseFadingIn
	PhaseSteady
	PhaseFadingOut
)

func (p Phase) String() string {
	switch p {
	case PhaseSpawning:
		return "spawning"
	case PhaseFadingIn:
		return "fading-in"
	case PhaseSteady:
		return "steady"
	case PhaseFadingOut:
		return "fading-out"
	default:
		return "unknown"
	}
}

// Particle is one slot of the particle arena. Positions are in CSS pixels.
type Particle struct {
	X, Y    float64
	VX, VY  float64
	Radius  float64
	Color   color.NRGBA
	Age     int
	MaxLife int
	Opacity float64
}

// Phase reports where the particle sits in its envelope.
func (p *Particle) Phase() Phase {
	switch {
	case p.Age == 0:
		return PhaseSpawning
	case p.Age < FadeTicks:
		return PhaseFadingIn
	case p.Age > p.MaxLife-FadeTicks:
		return PhaseFadingOut
	default:
		return PhaseSteady
	}
}

// Envelope returns the opacity of a particle of the given age: a linear ramp
// up over the first FadeTicks, full intensity in the middle, and a linear ramp
// down over the last FadeTicks. The result is clamped to [0, intensity].
func Envelope(age, maxLife int, intensity float64) float64 {
	if intensity <= 0 {
		return 0
	}
	var o float64
	switch {
	case age < FadeTicks:
		o = intensity * float64(age) / FadeTicks
	case age > maxLife-FadeTicks:
		o = intensity * float64(maxLife-age) / FadeTicks
	default:
		o = intensity
	}
	if o < 0 {
		return 0
	}
	if o > intensity {
		return intensity
	}
	return o
}
