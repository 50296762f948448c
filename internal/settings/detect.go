package settings

import "regexp"

// Signals are the coarse device hints read once at startup.
type Signals struct {
	UserAgent string `yaml:"user_agent" koanf:"user_agent" json:"userAgent"`
	// DeviceMemoryGB is zero when the platform does not report it.
	DeviceMemoryGB       float64 `yaml:"device_memory_gb" koanf:"device_memory_gb" json:"deviceMemoryGB"`
	PrefersReducedMotion bool    `yaml:"prefers_reduced_motion" koanf:"prefers_reduced_motion" json:"prefersReducedMotion"`
}

var mobileUA = regexp.MustCompile(`(?i)Android|webOS|iPhone|iPad|iPod|BlackBerry|IEMobile|Opera Mini`)

const lowMemoryGB = 4

// Mobile reports whether the user agent looks like a phone or tablet.
func (s Signals) Mobile() bool { return mobileUA.MatchString(s.UserAgent) }

// LowEnd reports whether the device advertises less than 4 GB of memory.
func (s Signals) LowEnd() bool { return s.DeviceMemoryGB > 0 && s.DeviceMemoryGB < lowMemoryGB }

// DetectCapabilities picks the default tier for a device. Reduced motion does
// not lower the tier; it only disables motion in Initial.
func DetectCapabilities(sig Signals) Tier {
	if sig.Mobile() || sig.LowEnd() {
		return TierMinimal
	}
	return TierStandard
}

// Initial derives the startup settings from device signals.
func Initial(sig Signals) Settings {
	s := Defaults()
	s.Tier = DetectCapabilities(sig)
	if s.Tier == TierMinimal {
		s.Intensity = 0.4
		s.EnableParticles = false
	}
	s.EnableMotion = !sig.PrefersReducedMotion
	return s
}
