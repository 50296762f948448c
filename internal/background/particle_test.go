package background

import (
	"math"
	"testing"

	"backdrop/internal/core"
)

func TestEnvelopeRamps(t *testing.T) {
	const maxLife, intensity = 300, 0.7
	cases := []struct {
		age  int
		want float64
	}{
		{0, 0},
		{30, intensity / 2},
		{FadeTicks, intensity},
		{150, intensity},
		{maxLife - FadeTicks, intensity},
		{maxLife - 30, intensity / 2},
		{maxLife, 0},
		{maxLife + 10, 0},
	}
	for _, tc := range cases {
		if got := Envelope(tc.age, maxLife, intensity); math.Abs(got-tc.want) > 1e-9 {
			t.Errorf("Envelope(%d) = %v, want %v", tc.age, got, tc.want)
		}
	}
}

func TestEnvelopeBoundedByIntensity(t *testing.T) {
	for _, intensity := range []float64{0, 0.25, 1} {
		for maxLife := minLife; maxLife < minLife+lifeSpread; maxLife += 37 {
			for age := 0; age <= maxLife; age++ {
				o := Envelope(age, maxLife, intensity)
				if o < 0 || o > intensity {
					t.Fatalf("Envelope(%d, %d, %v) = %v out of [0, intensity]", age, maxLife, intensity, o)
				}
			}
		}
	}
}

func TestEnvelopeFadeOutIsMonotonic(t *testing.T) {
	const maxLife = 240
	prev := Envelope(maxLife-FadeTicks, maxLife, 1)
	for age := maxLife - FadeTicks + 1; age <= maxLife; age++ {
		o := Envelope(age, maxLife, 1)
		if o > prev {
			t.Fatalf("opacity rose during fade-out at age %d: %v > %v", age, o, prev)
		}
		prev = o
	}
}

func TestParticlePhases(t *testing.T) {
	p := Particle{MaxLife: 300}
	want := map[int]Phase{
		0:   PhaseSpawning,
		1:   PhaseFadingIn,
		59:  PhaseFadingIn,
		60:  PhaseSteady,
		240: PhaseSteady,
		241: PhaseFadingOut,
	}
	for age, phase := range want {
		p.Age = age
		if got := p.Phase(); got != phase {
			t.Errorf("age %d: phase %v, want %v", age, got, phase)
		}
	}
}

func TestPoolRespawnsAtMaxLifeInSameTick(t *testing.T) {
	pool := NewPool(1, core.NewRNG(3), nil, 0.7, 800, 600)
	pt := &pool.Particles()[0]
	pt.X, pt.Y = 400, 300
	pt.VX, pt.VY = 0, 0
	pt.MaxLife = 250
	pt.Age = 249

	pool.Step()

	if pt.Age != 0 {
		t.Fatalf("expected respawn to reset age, got %d", pt.Age)
	}
	if pt.MaxLife < minLife || pt.MaxLife >= minLife+lifeSpread {
		t.Fatalf("respawned max life %d out of range", pt.MaxLife)
	}
	if pt.Y < 600 || pt.Y > 600+BoundsMargin {
		t.Fatalf("respawned particle should start below the canvas, y=%v", pt.Y)
	}
}

func TestPoolRespawnsOutOfBounds(t *testing.T) {
	cases := []struct {
		name string
		x, y float64
	}{
		{"left", -BoundsMargin - 1, 300},
		{"right", 800 + BoundsMargin + 1, 300},
		{"top", 400, -BoundsMargin - 1},
		{"bottom", 400, 600 + BoundsMargin + 1},
	}
	for _, tc := range cases {
		pool := NewPool(1, core.NewRNG(9), nil, 0.7, 800, 600)
		pt := &pool.Particles()[0]
		pt.X, pt.Y, pt.VX, pt.VY = tc.x, tc.y, 0, 0
		pt.Age, pt.MaxLife = 100, 400

		pool.Step()

		if pt.Age != 0 {
			t.Errorf("%s: particle at (%v, %v) was not respawned", tc.name, tc.x, tc.y)
		}
	}
}

func TestPoolKeepsParticleInsideMargin(t *testing.T) {
	pool := NewPool(1, core.NewRNG(9), nil, 0.7, 800, 600)
	pt := &pool.Particles()[0]
	pt.X, pt.Y, pt.VX, pt.VY = -BoundsMargin+5, 300, 0, 0
	pt.Age, pt.MaxLife = 100, 400

	pool.Step()

	if pt.Age != 101 {
		t.Fatalf("particle inside the margin should survive, age=%d", pt.Age)
	}
}

func TestPoolSizeIsConstant(t *testing.T) {
	pool := NewPool(60, core.NewRNG(1), nil, 1, 320, 240)
	for i := 0; i < 2000; i++ {
		pool.Step()
		if pool.Len() != 60 {
			t.Fatalf("pool size changed to %d at tick %d", pool.Len(), i)
		}
	}
	for _, p := range pool.Particles() {
		if p.Opacity < 0 || p.Opacity > 1 {
			t.Fatalf("opacity %v out of range", p.Opacity)
		}
	}
}

func TestPoolDeterministicForSeed(t *testing.T) {
	a := NewPool(20, core.NewRNG(42), nil, 0.7, 640, 480)
	b := NewPool(20, core.NewRNG(42), nil, 0.7, 640, 480)
	for i := 0; i < 100; i++ {
		a.Step()
		b.Step()
	}
	for i := range a.Particles() {
		if a.Particles()[i] != b.Particles()[i] {
			t.Fatalf("slot %d diverged: %+v vs %+v", i, a.Particles()[i], b.Particles()[i])
		}
	}
}

func TestConnectionsVisitsPairsOnce(t *testing.T) {
	ps := []Particle{{X: 0, Y: 0}, {X: 30, Y: 40}, {X: 500, Y: 500}, {X: 60, Y: 80}}
	var pairs [][2]float64
	Connections(ps, ConnectionDistance, func(a, b *Particle, d float64) {
		pairs = append(pairs, [2]float64{a.X, b.X})
	})
	want := [][2]float64{{0, 30}, {30, 60}}
	if len(pairs) != len(want) {
		t.Fatalf("got %d pairs, want %d: %v", len(pairs), len(want), pairs)
	}
	for i := range want {
		if pairs[i] != want[i] {
			t.Fatalf("pair %d = %v, want %v", i, pairs[i], want[i])
		}
	}
}
