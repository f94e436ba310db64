package forecast

import (
	"testing"

	"github.com/lox/wandiweather/internal/pressurewind"
)

func TestClassifyHeatwaveFromCurrentTemp(t *testing.T) {
	flags := ClassifyRegime(97, 40, 5, true, pressurewind.SystemHigh, nil)
	if !flags.Heatwave {
		t.Error("expected heatwave flag for 97F current temp")
	}
}

func TestClassifyHeatwaveFromConsecutiveHighs(t *testing.T) {
	flags := ClassifyRegime(80, 40, 5, true, pressurewind.SystemHigh, []float64{92, 91})
	if !flags.Heatwave {
		t.Error("expected heatwave flag from two consecutive hot days")
	}
}

func TestClassifyInversionRequiresNight(t *testing.T) {
	day := ClassifyRegime(50, 40, 1, true, pressurewind.SystemHigh, nil)
	if day.InversionNight {
		t.Error("inversion should never flag during daytime")
	}
	night := ClassifyRegime(50, 40, 1, false, pressurewind.SystemHigh, nil)
	if !night.InversionNight {
		t.Error("calm clear high-pressure night should flag an inversion")
	}
}

func TestClassifyClearCalm(t *testing.T) {
	flags := ClassifyRegime(70, 40, 3, true, pressurewind.SystemVeryHigh, nil)
	if !flags.ClearCalm {
		t.Error("dry, calm, high-pressure day should flag clear_calm")
	}
	humid := ClassifyRegime(70, 90, 3, true, pressurewind.SystemVeryHigh, nil)
	if humid.ClearCalm {
		t.Error("humid air should not flag clear_calm")
	}
}

func TestRegimeToStringPrecedence(t *testing.T) {
	flags := RegimeFlags{Heatwave: true, InversionNight: true}
	if got := RegimeToString(flags); got != "heatwave" {
		t.Errorf("heatwave should take precedence, got %v", got)
	}
}
