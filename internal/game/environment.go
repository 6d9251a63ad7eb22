package game

import "math"

// Weather is the player-toggleable weather condition. Visual only.
type Weather int

const (
	WeatherClear Weather = iota
	WeatherCloudy
	WeatherRainy

	weatherCount
)

func (w Weather) String() string {
	switch w {
	case WeatherClear:
		return "clear"
	case WeatherCloudy:
		return "cloudy"
	case WeatherRainy:
		return "rainy"
	default:
		return "unknown"
	}
}

// RGB is a normalized color triple, components in [0,1].
type RGB struct {
	R, G, B float64
}

// lerpRGB blends a toward b by t in [0,1].
func lerpRGB(a, b RGB, t float64) RGB {
	return RGB{
		R: a.R + (b.R-a.R)*t,
		G: a.G + (b.G-a.G)*t,
		B: a.B + (b.B-a.B)*t,
	}
}

// EnvState is the derived lighting and atmosphere for one (hour, weather)
// input pair. Everything downstream of it (sky tint, fog, lamp emissives,
// celestial sprites) reads this struct and touches no other state.
type EnvState struct {
	Night bool

	Sky        RGB
	Fog        RGB
	FogDensity float64

	Ambient     float64 // ambient light intensity
	Directional float64 // sun/moon directional intensity

	// Sun and moon ride the same arc half a day apart, so exactly one is
	// above the horizon at any hour.
	SunPos  Vec3
	MoonPos Vec3

	LampsOn bool
	Stars   float64 // star layer opacity
	Rain    float64 // rain particle intensity
}

// Environment palette and tuning.
var (
	skyDay   = RGB{0.53, 0.81, 0.92}
	skyNight = RGB{0.04, 0.04, 0.10}
	skyGrey  = RGB{0.55, 0.58, 0.62}
)

// Fog density is a constant per weather state. The fog color always matches
// the sky, so the horizon dissolves instead of banding.
const (
	fogClear  = 0.008
	fogCloudy = 0.015
	fogRainy  = 0.025
)

const (
	celestialRadius = 300.0
	lampSunCutoff   = 0.25 // directional below this turns street lamps on
)

// IsNight reports whether the hour falls in the night band.
func IsNight(hour float64) bool {
	return hour < 6 || hour > 18
}

// dayBlend maps the hour to a day factor in [0,1]: 0 at full night, 1 at full
// day, ramping linearly through the dawn [5,7) and dusk [17,19) windows.
func dayBlend(hour float64) float64 {
	switch {
	case hour >= 7 && hour < 17:
		return 1
	case hour >= 5 && hour < 7:
		return (hour - 5) / 2
	case hour >= 17 && hour < 19:
		return 1 - (hour-17)/2
	default:
		return 0
	}
}

// SimulateEnvironment derives the full environment state from the clock and
// the weather. Pure: same inputs, same output, no session access.
func SimulateEnvironment(hour float64, weather Weather) EnvState {
	day := dayBlend(hour)
	night := IsNight(hour)

	e := EnvState{
		Night: night,
		Sky:   lerpRGB(skyNight, skyDay, day),
		Stars: 1 - day,
	}

	// Sun arc: rises at 6, peaks at noon, sets at 18. The moon is antipodal.
	angle := (hour - 6) / 12 * math.Pi
	e.SunPos = Vec3{
		X: math.Cos(angle) * celestialRadius,
		Y: math.Sin(angle) * celestialRadius,
		Z: -celestialRadius / 3,
	}
	e.MoonPos = Vec3{X: -e.SunPos.X, Y: -e.SunPos.Y, Z: -e.SunPos.Z}

	e.Ambient = 0.15 + 0.55*day
	e.Directional = 0.1 + 0.9*day

	switch weather {
	case WeatherClear:
		e.FogDensity = fogClear
	case WeatherCloudy:
		e.Sky = lerpRGB(e.Sky, skyGrey, 0.6*day)
		e.Directional *= 0.6
		e.FogDensity = fogCloudy
		e.Stars *= 0.3
	case WeatherRainy:
		e.Sky = lerpRGB(e.Sky, skyGrey, 0.8)
		e.Directional *= 0.35
		e.Ambient *= 0.8
		e.FogDensity = fogRainy
		e.Rain = 1
		e.Stars = 0
	}
	e.Fog = e.Sky

	e.LampsOn = night || weather == WeatherRainy || e.Directional < lampSunCutoff
	return e
}
