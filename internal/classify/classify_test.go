package classify

import (
	"testing"

	"github.com/lox/wandiweather/internal/fog"
	"github.com/lox/wandiweather/internal/pressurewind"
)

func TestScenarioSunnyDay(t *testing.T) {
	in := Inputs{
		TempF:          75,
		RainRateInH:    0,
		RainState:      RainDry,
		HasRainState:   true,
		PressureInHg:   30.05,
		WindMph:        3,
		WindGustMph:    5,
		GustFactor:     pressurewind.GustFactor(3, 5),
		GustClass:      pressurewind.GustNormal,
		CloudCoverPct:  20,
		IsDaytime:      true,
		FogClass:       fog.ClassNone,
		PressureSystem: pressurewind.SystemHigh,
		HumidityPct:    45,
	}
	if got := Classify(in); got != Sunny {
		t.Errorf("scenario 1: got %v, want sunny", got)
	}
}

func TestScenarioFogNight(t *testing.T) {
	in := Inputs{
		TempF:          34,
		RainRateInH:    0,
		RainState:      RainWet,
		HasRainState:   true,
		PressureInHg:   29.90,
		WindMph:        1,
		FogClass:       fog.ClassDense,
		IsDaytime:      false,
		PressureSystem: pressurewind.SystemNormal,
		HumidityPct:    99,
	}
	if got := Classify(in); got != Fog {
		t.Errorf("scenario 2: got %v, want fog", got)
	}
}

func TestScenarioSnowy(t *testing.T) {
	in := Inputs{
		TempF:        28,
		RainRateInH:  0.20,
		RainState:    RainWet,
		HasRainState: true,
		PressureInHg: 29.70,
		WindMph:      10,
		WindGustMph:  18,
		GustFactor:   pressurewind.GustFactor(10, 18),
		FogClass:     fog.ClassNone,
	}
	if got := Classify(in); got != Snowy {
		t.Errorf("scenario 3: got %v, want snowy", got)
	}
}

func TestScenarioLightningRainy(t *testing.T) {
	in := Inputs{
		TempF:        70,
		RainRateInH:  0.35,
		RainState:    RainWet,
		HasRainState: true,
		PressureInHg: 29.10,
		WindMph:      22,
		WindGustMph:  40,
		GustFactor:   pressurewind.GustFactor(22, 40),
		FogClass:     fog.ClassNone,
	}
	if got := Classify(in); got != LightningRainy {
		t.Errorf("scenario 4: got %v, want lightning_rainy", got)
	}
}

func TestScenarioWindyOverride(t *testing.T) {
	in := Inputs{
		TempF:          72,
		RainRateInH:    0,
		RainState:      RainDry,
		HasRainState:   true,
		PressureInHg:   30.10,
		WindMph:        25,
		WindGustMph:    33,
		GustFactor:     pressurewind.GustFactor(25, 33),
		GustClass:      pressurewind.GustGusty,
		CloudCoverPct:  20,
		IsDaytime:      true,
		FogClass:       fog.ClassNone,
		PressureSystem: pressurewind.SystemHigh,
		HumidityPct:    50,
	}
	if got := Classify(in); got != Windy {
		t.Errorf("scenario 5: got %v, want windy (override from sunny)", got)
	}
}

func TestScenarioNightPartlyCloudy(t *testing.T) {
	in := Inputs{
		TempF:          60,
		RainRateInH:    0,
		RainState:      RainDry,
		HasRainState:   true,
		PressureInHg:   29.95,
		WindMph:        4,
		FogClass:       fog.ClassNone,
		IsDaytime:      false,
		PressureSystem: pressurewind.SystemNormal,
		HumidityPct:    88,
	}
	if got := Classify(in); got != PartlyCloudyNight {
		t.Errorf("scenario 6: got %v, want partly_cloudy_night", got)
	}
}

func TestPouring(t *testing.T) {
	in := Inputs{
		TempF:        60,
		RainRateInH:  0.30,
		RainState:    RainWet,
		HasRainState: true,
		PressureInHg: 30.00,
		WindMph:      5,
		FogClass:     fog.ClassNone,
	}
	if got := Classify(in); got != Pouring {
		t.Errorf("got %v, want pouring", got)
	}
}

func TestRainyDefault(t *testing.T) {
	in := Inputs{
		TempF:        60,
		RainRateInH:  0.08,
		RainState:    RainWet,
		HasRainState: true,
		PressureInHg: 30.00,
		WindMph:      5,
		FogClass:     fog.ClassNone,
	}
	if got := Classify(in); got != Rainy {
		t.Errorf("got %v, want rainy", got)
	}
}

func TestSevereGaleDry(t *testing.T) {
	in := Inputs{
		TempF:        60,
		RainState:    RainDry,
		HasRainState: true,
		PressureInHg: 30.00,
		WindMph:      35,
		FogClass:     fog.ClassNone,
		IsDaytime:    true,
		CloudCoverPct: 70,
	}
	if got := Classify(in); got != Windy {
		t.Errorf("got %v, want windy (gale)", got)
	}
}

func TestAlwaysReturnsVocabularyMember(t *testing.T) {
	vocab := map[Condition]bool{
		Sunny: true, PartlyCloudy: true, Cloudy: true, ClearNight: true,
		PartlyCloudyNight: true, Fog: true, Rainy: true, Pouring: true,
		Snowy: true, Lightning: true, LightningRainy: true, Windy: true,
	}
	samples := []Inputs{
		{IsDaytime: true, CloudCoverPct: 10, FogClass: fog.ClassNone, HasRainState: true, RainState: RainDry, PressureSystem: pressurewind.SystemNormal},
		{IsDaytime: false, CloudCoverPct: 90, FogClass: fog.ClassNone, HasRainState: true, RainState: RainDry, PressureSystem: pressurewind.SystemLow, HumidityPct: 95},
		{HasLux: true, Lux: 30, FogClass: fog.ClassNone, HasRainState: true, RainState: RainDry, PressureSystem: pressurewind.SystemNormal},
	}
	for _, s := range samples {
		got := Classify(s)
		if !vocab[got] {
			t.Errorf("Classify returned %v, not in closed vocabulary", got)
		}
	}
}
