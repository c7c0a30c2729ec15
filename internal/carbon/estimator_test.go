package carbon

import (
	"testing"

	"analyzer/internal/domain"
)

func TestEstimateGrams(t *testing.T) {
	if got := EstimateGrams(0, domain.HostingUnknown); got != 0 {
		t.Errorf("zero weight should estimate 0 grams, got %v", got)
	}

	oneMiB := EstimateGrams(1024*1024, domain.HostingUnknown)
	if oneMiB <= 0 {
		t.Fatalf("1MiB estimate = %v, want > 0", oneMiB)
	}

	twoMiB := EstimateGrams(2*1024*1024, domain.HostingUnknown)
	if twoMiB <= oneMiB {
		t.Errorf("estimate not monotonic: 2MiB (%v) <= 1MiB (%v)", twoMiB, oneMiB)
	}

	green := EstimateGrams(1024*1024, domain.HostingGreen)
	if green >= oneMiB {
		t.Errorf("green hosting estimate (%v) should be below grid estimate (%v)", green, oneMiB)
	}
}

func TestEstimateGramsDeterministic(t *testing.T) {
	a := EstimateGrams(3_500_000, domain.HostingNotGreen)
	for i := 0; i < 5; i++ {
		if b := EstimateGrams(3_500_000, domain.HostingNotGreen); b != a {
			t.Fatal("EstimateGrams is not deterministic")
		}
	}
}
