package background

import (
	"image/color"
	"math"

	"backdrop/internal/core"
)

// Pool is a fixed-size arena of particles. Slots are reset in place when a
// particle dies; the arena never grows or shrinks after construction.
type Pool struct {
	slots     []Particle
	rng       *core.RNG
	colors    []color.NRGBA
	intensity float64
	w, h      float64
}

// NewPool allocates n particles scattered over a w×h canvas.
func NewPool(n int, rng *core.RNG, colors []color.NRGBA, intensity, w, h float64) *Pool {
	if n < 0 {
		n = 0
	}
	if len(colors) == 0 {
		colors = PaletteFor("").Particles
	}
	p := &Pool{
		slots:     make([]Particle, n),
		rng:       rng,
		colors:    colors,
		intensity: intensity,
		w:         w,
		h:         h,
	}
	for i := range p.slots {
		p.seed(&p.slots[i])
	}
	return p
}

// Len reports the number of slots.
func (p *Pool) Len() int { return len(p.slots) }

// Particles exposes the arena. Callers must treat it as read-only.
func (p *Pool) Particles() []Particle { return p.slots }

// Resize updates the canvas bounds particles live in. Existing particles keep
// their positions.
func (p *Pool) Resize(w, h float64) {
	p.w, p.h = w, h
}

// Step advances every particle by one tick and respawns the ones that died
// or drifted out of bounds during this tick.
func (p *Pool) Step() {
	for i := range p.slots {
		pt := &p.slots[i]
		pt.X += pt.VX
		pt.Y += pt.VY
		pt.VX += p.rng.Centered(windJitter)
		pt.VY += p.rng.Centered(windJitter)
		pt.Age++
		pt.Opacity = Envelope(pt.Age, pt.MaxLife, p.intensity)
		if pt.Age >= pt.MaxLife || p.outOfBounds(pt) {
			p.respawn(pt)
		}
	}
}

// Respawn resets slot i.
func (p *Pool) Respawn(i int) {
	if i < 0 || i >= len(p.slots) {
		return
	}
	p.respawn(&p.slots[i])
}

func (p *Pool) outOfBounds(pt *Particle) bool {
	return pt.X < -BoundsMargin || pt.X > p.w+BoundsMargin ||
		pt.Y < -BoundsMargin || pt.Y > p.h+BoundsMargin
}

// seed places a fresh particle anywhere on the canvas.
func (p *Pool) seed(pt *Particle) {
	p.reset(pt)
	pt.Y = p.rng.Range(0, math.Max(p.h, 1))
}

// respawn places a fresh particle just below the bottom edge so it rises in.
func (p *Pool) respawn(pt *Particle) {
	p.reset(pt)
	pt.Y = p.h + p.rng.Range(0, BoundsMargin)
}

func (p *Pool) reset(pt *Particle) {
	speed := p.intensity * 0.5
	*pt = Particle{
		X:       p.rng.Range(0, math.Max(p.w, 1)),
		VX:      p.rng.Centered(speed),
		VY:      -p.rng.Range(0, speed) - baseRise,
		Radius:  minRadius + p.rng.Range(0, radiusSpan),
		Color:   p.colors[p.rng.IntN(len(p.colors))],
		MaxLife: minLife + p.rng.IntN(lifeSpread),
	}
}

// Connections calls fn for every unordered pair of particles closer than
// threshold, in slot order.
func Connections(ps []Particle, threshold float64, fn func(a, b *Particle, dist float64)) {
	for i := range ps {
		for j := i + 1; j < len(ps); j++ {
			d := math.Hypot(ps[i].X-ps[j].X, ps[i].Y-ps[j].Y)
			if d < threshold {
				fn(&ps[i], &ps[j], d)
			}
		}
	}
}
