package units

import "testing"

func within(a, b, tol float64) bool {
	d := a - b
	if d < 0 {
		d = -d
	}
	return d <= tol
}

func TestTemperatureRoundTrip(t *testing.T) {
	for _, f := range []float64{-40, 0, 32, 72.5, 98.6, 212} {
		got := CelsiusToFahrenheit(FahrenheitToCelsius(f))
		if !within(got, f, 1e-9) {
			t.Errorf("round trip %v -> %v", f, got)
		}
	}
}

func TestPressureRoundTrip(t *testing.T) {
	for _, p := range []float64{28.0, 29.92, 30.45} {
		got := HPaToInHg(InHgToHPa(p))
		if !within(got, p, 1e-9) {
			t.Errorf("round trip %v -> %v", p, got)
		}
	}
}

func TestSpeedRoundTrip(t *testing.T) {
	for _, s := range []float64{0, 5, 19, 32, 75} {
		if got := KmhToMph(MphToKmh(s)); !within(got, s, 1e-9) {
			t.Errorf("mph/kmh round trip %v -> %v", s, got)
		}
		if got := MsToMph(MphToMs(s)); !within(got, s, 1e-9) {
			t.Errorf("mph/ms round trip %v -> %v", s, got)
		}
	}
}

func TestPrecipRoundTrip(t *testing.T) {
	for _, r := range []float64{0, 0.05, 0.25, 1.5} {
		got := MmPerHourToInPerHour(InPerHourToMmPerHour(r))
		if !within(got, r, 1e-9) {
			t.Errorf("round trip %v -> %v", r, got)
		}
	}
}

func TestKnownConstants(t *testing.T) {
	if !within(InHgToHPa(1), 33.8639, 1e-4) {
		t.Errorf("1 inHg should be 33.8639 hPa")
	}
	if !within(MphToKmh(1), 1.60934, 1e-5) {
		t.Errorf("1 mph should be 1.60934 km/h")
	}
}

func TestMeasurementToImperial(t *testing.T) {
	m := Measurement{Value: 100, Unit: Celsius}
	if got := m.ToImperial(); !within(got, 212, 1e-9) {
		t.Errorf("100C -> %v, want 212F", got)
	}

	m2 := Measurement{Value: 1013.25, Unit: HectoPascals}
	if got := m2.ToImperial(); !within(got, 29.92, 0.01) {
		t.Errorf("1013.25hPa -> %v, want ~29.92 inHg", got)
	}
}

func TestOutputReencoding(t *testing.T) {
	if got := TemperatureOut(32, Metric); !within(got, 0, 1e-9) {
		t.Errorf("32F metric -> %v, want 0C", got)
	}
	if got := TemperatureOut(32, Imperial); got != 32 {
		t.Errorf("32F imperial -> %v, want 32", got)
	}
	if got := PressureOut(29.92, Metric); !within(got, 1013.2, 0.5) {
		t.Errorf("29.92inHg metric -> %v, want ~1013.2hPa", got)
	}
	if got := SpeedOut(10, Metric); !within(got, 16.09, 0.01) {
		t.Errorf("10mph metric -> %v, want ~16.09km/h", got)
	}
	if got := PrecipOut(1, Metric); !within(got, 25.4, 1e-9) {
		t.Errorf("1in/h metric -> %v, want 25.4mm/h", got)
	}
	if got := VisibilityOut(10, Imperial); got != 10 {
		t.Errorf("10mi imperial -> %v, want 10", got)
	}
	if got := VisibilityOut(10, Metric); !within(got, 16.09, 0.01) {
		t.Errorf("10mi metric -> %v, want ~16.09km", got)
	}
}
