package settings

import (
	"sync"
)

// Store owns the mutable settings. Readers take snapshots; setters validate,
// swap the value and notify subscribers when it actually changed. It is safe
// for concurrent use.
type Store struct {
	write sync.Mutex

	mu      sync.RWMutex
	cur     Settings
	subs    map[int]func(Settings)
	nextSub int
}

// NewStore returns a store seeded with initial, normalized.
func NewStore(initial Settings) *Store {
	return &Store{cur: initial.Normalized(), subs: map[int]func(Settings){}}
}

// Snapshot returns the current settings.
func (s *Store) Snapshot() Settings {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cur
}

// Subscribe registers fn to receive every change. Callbacks run on the
// goroutine that made the change, one change at a time, and must not write to
// the store. The returned func unsubscribes.
func (s *Store) Subscribe(fn func(Settings)) func() {
	s.mu.Lock()
	id := s.nextSub
	s.nextSub++
	s.subs[id] = fn
	s.mu.Unlock()
	return func() {
		s.mu.Lock()
		delete(s.subs, id)
		s.mu.Unlock()
	}
}

// Replace validates next and installs it.
func (s *Store) Replace(next Settings) error {
	s.write.Lock()
	defer s.write.Unlock()
	return s.install(next)
}

// Modify applies fn to a copy of the current settings and installs the
// result. Nothing is installed when fn fails. Concurrent modifications are
// serialized, so none is lost.
func (s *Store) Modify(fn func(*Settings) error) (Settings, error) {
	s.write.Lock()
	defer s.write.Unlock()
	next := s.Snapshot()
	if err := fn(&next); err != nil {
		return s.Snapshot(), err
	}
	if err := s.install(next); err != nil {
		return s.Snapshot(), err
	}
	return next, nil
}

// Update applies fn to a copy of the current settings and installs the
// result.
func (s *Store) Update(fn func(*Settings)) (Settings, error) {
	return s.Modify(func(cur *Settings) error {
		fn(cur)
		return nil
	})
}

// install runs with write held, so subscribers see changes in the order
// they were made.
func (s *Store) install(next Settings) error {
	if next.ColorScheme == "" {
		next.ColorScheme = SchemeNeon
	}
	if err := next.Validate(); err != nil {
		return err
	}
	s.mu.Lock()
	if s.cur == next {
		s.mu.Unlock()
		return nil
	}
	s.cur = next
	subs := make([]func(Settings), 0, len(s.subs))
	for _, fn := range s.subs {
		subs = append(subs, fn)
	}
	s.mu.Unlock()

	for _, fn := range subs {
		fn(next)
	}
	return nil
}

// SetTier changes the quality tier.
func (s *Store) SetTier(t Tier) error {
	_, err := s.Update(func(cur *Settings) { cur.Tier = t })
	return err
}

// SetIntensity changes the intensity scalar.
func (s *Store) SetIntensity(v float64) error {
	_, err := s.Update(func(cur *Settings) { cur.Intensity = v })
	return err
}

// SetEnableParticles toggles the particle layer.
func (s *Store) SetEnableParticles(on bool) {
	_, _ = s.Update(func(cur *Settings) { cur.EnableParticles = on })
}

// SetEnableMotion toggles animation.
func (s *Store) SetEnableMotion(on bool) {
	_, _ = s.Update(func(cur *Settings) { cur.EnableMotion = on })
}

// SetColorScheme changes the palette.
func (s *Store) SetColorScheme(cs ColorScheme) error {
	_, err := s.Update(func(cur *Settings) { cur.ColorScheme = cs })
	return err
}

// NextTier returns the tier after t, wrapping around.
func NextTier(t Tier) Tier {
	for i, candidate := range Tiers {
		if candidate == t {
			return Tiers[(i+1)%len(Tiers)]
		}
	}
	return TierStandard
}

// NextScheme returns the scheme after cs, wrapping around.
func NextScheme(cs ColorScheme) ColorScheme {
	for i, candidate := range Schemes {
		if candidate == cs {
			return Schemes[(i+1)%len(Schemes)]
		}
	}
	return SchemeNeon
}
