package forecast

import "testing"

func TestCondensationPotentialSaturatedAir(t *testing.T) {
	got := CondensationPotential(99, 1)
	if got < 0.8 {
		t.Errorf("near-saturated air should have high condensation potential, got %v", got)
	}
}

func TestCondensationPotentialDryAir(t *testing.T) {
	got := CondensationPotential(30, 25)
	if got > 0.3 {
		t.Errorf("dry air with wide spread should have low condensation potential, got %v", got)
	}
}

func TestAtmosphericStabilityBaseline(t *testing.T) {
	got := AtmosphericStability(0, 10, 50)
	if got < 0.5 || got > 0.8 {
		t.Errorf("expected baseline-ish stability, got %v", got)
	}
}

func TestAtmosphericStabilityCalmBoostsScore(t *testing.T) {
	calm := AtmosphericStability(0, 2, 50)
	windy := AtmosphericStability(0, 20, 50)
	if calm <= windy {
		t.Errorf("calm wind should score higher stability than strong wind: calm=%v windy=%v", calm, windy)
	}
}

func TestAtmosphericStabilityBounded(t *testing.T) {
	got := AtmosphericStability(-5, 50, 100)
	if got < 0 || got > 1 {
		t.Errorf("stability must stay within [0,1], got %v", got)
	}
}

func TestSeasonalAdjustmentPeaksAtSolstice(t *testing.T) {
	summer := SeasonalAdjustmentF(172)
	winter := SeasonalAdjustmentF(355)
	if summer <= winter {
		t.Errorf("summer solstice should have a higher seasonal adjustment than winter, summer=%v winter=%v", summer, winter)
	}
}

func TestGradientProxyNonNegative(t *testing.T) {
	if got := GradientProxy(-0.3); got < 0 {
		t.Errorf("gradient proxy should never be negative, got %v", got)
	}
}
