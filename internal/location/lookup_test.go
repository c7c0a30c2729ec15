package location

import (
	"testing"

	"analyzer/internal/domain"
	"analyzer/internal/taxonomy"
)

func testLookup(t *testing.T) *Lookup {
	t.Helper()
	tax, err := taxonomy.Load("")
	if err != nil {
		t.Fatalf("failed to load taxonomy: %v", err)
	}
	return NewLookup(tax)
}

func TestResolveTiers(t *testing.T) {
	l := testLookup(t)
	tests := []struct {
		location string
		want     domain.RiskTier
	}{
		{"Berlin", domain.TierLow},
		{"germany", domain.TierLow},
		{"  San Francisco  ", domain.TierMedium},
		{"TOKYO", domain.TierMedium},
		{"Beijing", domain.TierHigh},
		{"Lagos", domain.TierHigh},
		{"Delhi", domain.TierHigh},
		{"Atlantis", domain.TierUnknown},
		{"", domain.TierUnknown},
	}
	for _, tt := range tests {
		t.Run(tt.location, func(t *testing.T) {
			got := l.Resolve(tt.location)
			if got.RiskTier != tt.want {
				t.Errorf("Resolve(%q).RiskTier = %s, want %s", tt.location, got.RiskTier, tt.want)
			}
			if len(got.JurisdictionNotes) == 0 {
				t.Errorf("Resolve(%q) should always carry a jurisdiction note", tt.location)
			}
		})
	}
}

func TestResolveCityCountryForm(t *testing.T) {
	l := testLookup(t)
	got := l.Resolve("Acme Tower, Copenhagen, Denmark")
	if got.RiskTier != domain.TierLow {
		t.Errorf("RiskTier = %s, want LOW from comma-separated parts", got.RiskTier)
	}
}

func TestResolveIsDeterministic(t *testing.T) {
	l := testLookup(t)
	first := l.Resolve("Beijing")
	for i := 0; i < 5; i++ {
		if got := l.Resolve("Beijing"); got.RiskTier != first.RiskTier {
			t.Fatal("Resolve is not deterministic")
		}
	}
}
