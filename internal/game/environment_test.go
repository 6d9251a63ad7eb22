package game

import (
	"math"
	"testing"
)

func TestNightBand(t *testing.T) {
	cases := []struct {
		hour  float64
		night bool
	}{
		{0, true},
		{5.9, true},
		{6, false},
		{12, false},
		{18, false},
		{18.1, true},
		{23, true},
	}
	for _, c := range cases {
		if got := IsNight(c.hour); got != c.night {
			t.Errorf("IsNight(%.1f) = %v, want %v", c.hour, got, c.night)
		}
	}
}

func TestDayBlendRamps(t *testing.T) {
	cases := []struct {
		hour float64
		want float64
	}{
		{0, 0},
		{5, 0},
		{6, 0.5},
		{7, 1},
		{12, 1},
		{17, 1},
		{18, 0.5},
		{19, 0},
		{22, 0},
	}
	for _, c := range cases {
		if got := dayBlend(c.hour); math.Abs(got-c.want) > 1e-9 {
			t.Errorf("dayBlend(%.0f) = %.3f, want %.3f", c.hour, got, c.want)
		}
	}
}

func TestNoonClear(t *testing.T) {
	e := SimulateEnvironment(12, WeatherClear)
	if e.Night {
		t.Error("noon flagged as night")
	}
	if e.Sky != skyDay {
		t.Errorf("noon sky = %+v, want %+v", e.Sky, skyDay)
	}
	if e.Stars != 0 {
		t.Errorf("stars at noon: %.2f", e.Stars)
	}
	if e.LampsOn {
		t.Error("lamps on at clear noon")
	}
	if e.SunPos.Y <= 0 {
		t.Errorf("sun below horizon at noon: %.1f", e.SunPos.Y)
	}
	if math.Abs(e.SunPos.Y-celestialRadius) > 1e-6 {
		t.Errorf("sun not at zenith at noon: %.1f", e.SunPos.Y)
	}
}

func TestMidnightClear(t *testing.T) {
	e := SimulateEnvironment(0, WeatherClear)
	if !e.Night {
		t.Error("midnight not flagged as night")
	}
	if e.Sky != skyNight {
		t.Errorf("midnight sky = %+v, want %+v", e.Sky, skyNight)
	}
	if e.Stars != 1 {
		t.Errorf("stars at midnight: %.2f", e.Stars)
	}
	if !e.LampsOn {
		t.Error("lamps off at midnight")
	}
	if e.SunPos.Y >= 0 {
		t.Errorf("sun above horizon at midnight: %.1f", e.SunPos.Y)
	}
	if e.MoonPos.Y <= 0 {
		t.Errorf("moon below horizon at midnight: %.1f", e.MoonPos.Y)
	}
}

func TestMoonIsAntipodal(t *testing.T) {
	for hour := 0.0; hour < 24; hour += 3 {
		e := SimulateEnvironment(hour, WeatherClear)
		want := Vec3{X: -e.SunPos.X, Y: -e.SunPos.Y, Z: -e.SunPos.Z}
		if e.MoonPos != want {
			t.Errorf("hour %.0f: moon %+v not opposite sun %+v", hour, e.MoonPos, e.SunPos)
		}
	}
}

func TestRainForcesLampsAndKillsStars(t *testing.T) {
	e := SimulateEnvironment(12, WeatherRainy)
	if !e.LampsOn {
		t.Error("lamps off in rain")
	}
	if e.Rain != 1 {
		t.Errorf("rain intensity = %.2f", e.Rain)
	}
	if e.Stars != 0 {
		t.Errorf("stars in rain: %.2f", e.Stars)
	}
	clear := SimulateEnvironment(12, WeatherClear)
	if e.Directional >= clear.Directional {
		t.Error("rain did not dim the directional light")
	}
	if e.FogDensity <= clear.FogDensity {
		t.Error("rain did not thicken the fog")
	}
}

func TestCloudyDimsWithoutRain(t *testing.T) {
	e := SimulateEnvironment(12, WeatherCloudy)
	if e.Rain != 0 {
		t.Errorf("rain while cloudy: %.2f", e.Rain)
	}
	if e.LampsOn {
		t.Error("lamps on at cloudy noon")
	}
	clear := SimulateEnvironment(12, WeatherClear)
	if e.Directional >= clear.Directional {
		t.Error("clouds did not dim the directional light")
	}
}

// SimulateEnvironment is pure: the renderer calls it every frame and relies
// on identical inputs producing identical state.
func TestSimulateEnvironmentIsPure(t *testing.T) {
	for _, w := range []Weather{WeatherClear, WeatherCloudy, WeatherRainy} {
		for hour := 0.0; hour < 24; hour += 1.5 {
			a := SimulateEnvironment(hour, w)
			b := SimulateEnvironment(hour, w)
			if a != b {
				t.Fatalf("hour %.1f weather %s: %+v != %+v", hour, w, a, b)
			}
		}
	}
}

// Fog density depends on the weather alone, and fog always takes the sky's
// color so the horizon dissolves cleanly at any hour.
func TestFogTracksWeatherAndSky(t *testing.T) {
	want := map[Weather]float64{
		WeatherClear:  fogClear,
		WeatherCloudy: fogCloudy,
		WeatherRainy:  fogRainy,
	}
	for w, density := range want {
		for hour := 0.0; hour < 24; hour += 1.5 {
			e := SimulateEnvironment(hour, w)
			if e.FogDensity != density {
				t.Errorf("hour %.1f weather %s: fog density %.4f, want %.4f", hour, w, e.FogDensity, density)
			}
			if e.Fog != e.Sky {
				t.Errorf("hour %.1f weather %s: fog %+v does not match sky %+v", hour, w, e.Fog, e.Sky)
			}
		}
	}
}

func TestLampBoundaryAtDusk(t *testing.T) {
	if e := SimulateEnvironment(18, WeatherClear); e.LampsOn {
		t.Errorf("lamps on at 18:00 (directional %.3f)", e.Directional)
	}
	if e := SimulateEnvironment(18.5, WeatherClear); !e.LampsOn {
		t.Error("lamps off past dusk")
	}
}
