package weather

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// Unit conversions. Kilometres per hour is the canonical wind speed unit and
// Celsius the canonical temperature; everything else is derived from those.

const (
	mphPerKmh   = 0.621371
	knotsPerKmh = 0.539957
)

// CToF converts Celsius to Fahrenheit.
func CToF(c float64) float64 { return c*9/5 + 32 }

// FToC converts Fahrenheit to Celsius.
func FToC(f float64) float64 { return (f - 32) * 5 / 9 }

// MphToKmh converts miles per hour to km/h.
func MphToKmh(mph float64) float64 { return mph / mphPerKmh }

// KnotsToKmh converts knots to km/h.
func KnotsToKmh(kn float64) float64 { return kn / knotsPerKmh }

// beaufortKmh maps a Beaufort force to a representative km/h speed
// (the midpoint of the force's range).
var beaufortKmh = []float64{0, 3, 8, 15, 24, 34, 44, 56, 68, 81, 95, 110, 120}

// BeaufortToKmh returns a representative km/h speed for a Beaufort force.
func BeaufortToKmh(force int) float64 {
	if force < 0 {
		return 0
	}
	if force >= len(beaufortKmh) {
		return beaufortKmh[len(beaufortKmh)-1]
	}
	return beaufortKmh[force]
}

// ParseTemperature extracts the numeric value from a unit-suffixed upstream
// temperature string such as "18.2°C" or "64.8°F".
func ParseTemperature(s string) (float64, error) {
	t := strings.TrimSpace(s)
	t = strings.TrimSuffix(t, "°C")
	t = strings.TrimSuffix(t, "°F")
	t = strings.TrimSpace(t)
	if t == "" {
		return 0, fmt.Errorf("empty temperature %q", s)
	}
	v, err := strconv.ParseFloat(t, 64)
	if err != nil {
		return 0, fmt.Errorf("temperature %q: %w", s, err)
	}
	return v, nil
}

// compassDegrees maps 16-point compass directions to bearings.
var compassDegrees = map[string]float64{
	"N": 0, "NNE": 22.5, "NE": 45, "ENE": 67.5,
	"E": 90, "ESE": 112.5, "SE": 135, "SSE": 157.5,
	"S": 180, "SSW": 202.5, "SW": 225, "WSW": 247.5,
	"W": 270, "WNW": 292.5, "NW": 315, "NNW": 337.5,
}

// CompassBearing converts a compass direction to degrees; nil for unknown
// directions.
func CompassBearing(dir string) *float64 {
	if deg, ok := compassDegrees[strings.ToUpper(strings.TrimSpace(dir))]; ok {
		d := deg
		return &d
	}
	return nil
}

// windSpeedKmh resolves a day's wind speed to km/h, preferring the upstream
// km/h field, then mph, then knots, then the Beaufort-style descriptor.
func windSpeedKmh(d ForecastDayRecord) float64 {
	switch {
	case d.WindSpeedKmh > 0:
		return d.WindSpeedKmh
	case d.WindSpeedMph > 0:
		return round1(MphToKmh(d.WindSpeedMph))
	case d.WindSpeedKnots > 0:
		return round1(KnotsToKmh(d.WindSpeedKnots))
	}
	if f, ok := parseBeaufort(d.WindSpeed); ok {
		return BeaufortToKmh(f)
	}
	return 0
}

// parseBeaufort accepts descriptors like "F4", "Force 4" or a bare "4".
func parseBeaufort(s string) (int, bool) {
	t := strings.ToUpper(strings.TrimSpace(s))
	t = strings.TrimPrefix(t, "FORCE")
	t = strings.TrimPrefix(t, "F")
	t = strings.TrimSpace(t)
	f, err := strconv.Atoi(t)
	if err != nil || f < 0 {
		return 0, false
	}
	return f, true
}

func round1(v float64) float64 { return math.Round(v*10) / 10 }

// NormalizeForecast converts a parsed forecast record into a Delta owning
// the current conditions and the 5-day forecast. Pure and idempotent for a
// fixed now.
func NormalizeForecast(rec ForecastRecord, now time.Time) (Delta, error) {
	if len(rec.Days) == 0 {
		return Delta{}, &NormalizeError{Reason: "forecast record has no days"}
	}

	days := rec.Days
	if len(days) > ForecastDaysCount {
		days = days[:ForecastDaysCount]
	}

	out := make([]ForecastDay, 0, len(days))
	for _, d := range days {
		maxC, _ := ParseTemperature(d.MaxTemp)
		minC, _ := ParseTemperature(d.MinTemp)

		day := ForecastDay{
			Date:          d.Name,
			Summary:       d.Summary,
			Condition:     MapCondition(d.DayIcon, d.Summary),
			MaxTempC:      maxC,
			MinTempC:      minC,
			WindDirection: d.WindDirection,
			WindSpeedKmh:  windSpeedKmh(d),
			UVIndex:       d.UVIndex,
			Sunrise:       d.Sunrise,
			Sunset:        d.Sunset,
			Periods: map[Period]PeriodForecast{
				// Morning and night temperatures fall back to the day
				// minimum, afternoon to the maximum: upstream has no
				// per-period temperatures.
				PeriodMorning: {
					Description:        d.MorningDescription,
					Condition:          MapSummaryCondition(d.MorningDescription),
					RainProbabilityPct: d.RainProbMorning,
					TemperatureC:       minC,
				},
				PeriodAfternoon: {
					Description:        d.AfternoonDescription,
					Condition:          MapSummaryCondition(d.AfternoonDescription),
					RainProbabilityPct: d.RainProbAfternoon,
					TemperatureC:       maxC,
				},
				PeriodNight: {
					Description:        d.NightDescription,
					Condition:          MapSummaryCondition(d.NightDescription),
					RainProbabilityPct: d.RainProbEvening,
					TemperatureC:       minC,
				},
			},
		}
		out = append(out, day)
	}

	today := days[0]
	cur := &CurrentConditions{
		WindDirection:  today.WindDirection,
		WindBearingDeg: CompassBearing(today.WindDirection),
		WindSpeedKmh:   windSpeedKmh(today),
		UVIndex:        today.UVIndex,
		Condition:      MapCondition(today.DayIcon, today.Summary),
		Summary:        today.Summary,
		Sunrise:        today.Sunrise,
		Sunset:         today.Sunset,
		IssuedAt:       rec.IssuedAt,
		ForecastDate:   rec.ForecastDate,
	}
	cur.WindSpeedMph = round1(cur.WindSpeedKmh * mphPerKmh)
	cur.WindSpeedKnots = round1(cur.WindSpeedKmh * knotsPerKmh)

	if c, err := ParseTemperature(rec.CurrentTemp); err == nil {
		cur.TemperatureC = c
		cur.TemperatureF = round1(CToF(c))
	} else if f, err := ParseTemperature(rec.CurrentTempF); err == nil {
		// Celsius feed missing; derive it from the Fahrenheit one.
		cur.TemperatureF = f
		cur.TemperatureC = round1(FToC(f))
	}

	return Delta{Source: SourceForecast, Current: cur, ForecastDays: out}, nil
}

// FlattenForecast lowers the per-day forecast into the flat
// day{1..5}_{period}_{metric} attribute map display adapters consume.
func FlattenForecast(days []ForecastDay) map[string]any {
	attrs := make(map[string]any, len(days)*16)
	for i, d := range days {
		prefix := fmt.Sprintf("day%d_", i+1)
		attrs[prefix+"date"] = d.Date
		attrs[prefix+"summary"] = d.Summary
		attrs[prefix+"condition"] = string(d.Condition)
		attrs[prefix+"max_temp"] = d.MaxTempC
		attrs[prefix+"min_temp"] = d.MinTempC
		attrs[prefix+"wind_direction"] = d.WindDirection
		attrs[prefix+"wind_speed_km"] = d.WindSpeedKmh
		attrs[prefix+"uv_index"] = d.UVIndex

		maxRain := 0
		for _, p := range []Period{PeriodMorning, PeriodAfternoon, PeriodNight} {
			pf := d.Periods[p]
			pp := prefix + string(p) + "_"
			attrs[pp+"description"] = pf.Description
			attrs[pp+"condition"] = string(pf.Condition)
			attrs[pp+"rain_probability"] = pf.RainProbabilityPct
			attrs[pp+"temperature"] = pf.TemperatureC
			if pf.RainProbabilityPct > maxRain {
				maxRain = pf.RainProbabilityPct
			}
		}
		attrs[prefix+"rain_probability"] = maxRain
	}
	return attrs
}
