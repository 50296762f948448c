package config

import (
	"errors"
	"strings"
	"testing"

	"backdrop/internal/settings"
)

func TestValidateIntensity(t *testing.T) {
	for _, in := range []string{"0", "0.55", "1"} {
		if err := validateIntensity(in); err != nil {
			t.Errorf("validateIntensity(%q) = %v", in, err)
		}
	}
	if err := validateIntensity("1.2"); !errors.Is(err, settings.ErrIntensityRange) {
		t.Errorf("validateIntensity(1.2) = %v, want ErrIntensityRange", err)
	}
	if err := validateIntensity("bright"); err == nil {
		t.Error("validateIntensity accepted a non-number")
	}
}

func TestTierItems(t *testing.T) {
	items := tierItems()
	if len(items) != len(settings.Tiers) {
		t.Fatalf("got %d items, want %d", len(items), len(settings.Tiers))
	}
	for i, tier := range settings.Tiers {
		if !strings.HasPrefix(items[i], string(tier)) {
			t.Errorf("item %d = %q, want prefix %q", i, items[i], tier)
		}
	}
	if got := indexOf(settings.Tiers, settings.TierMax); got != 2 {
		t.Fatalf("indexOf(max) = %d, want 2", got)
	}
	if got := indexOf(settings.Schemes, settings.ColorScheme("sepia")); got != 0 {
		t.Fatalf("indexOf(unknown) = %d, want 0", got)
	}
}
