package sources

import (
	"errors"
	"testing"

	"github.com/jerseymet/weather-aggregation/internal/weather"
)

const forecastFixture = `{
  "currentTemprature": "18.2°C",
  "currentTempratureFahrenheit": "64.8°F",
  "issuetime": "6:00 am",
  "forecastDate": "21 August 2026",
  "cacheTime": "21/08/2026 06:05",
  "forecastDay": [
    {
      "dayName": "Friday",
      "summary": "Sunny periods",
      "morningDescripiton": "Mist at first",
      "afternoonDescripiton": "Sunny",
      "nightDescripiton": "Clear",
      "rainProbMorning": "10",
      "rainProbAfternoon": 40,
      "rainProbEvening": "20",
      "windDirection": "SW",
      "windSpeed": "F4",
      "windSpeedMPH": "15",
      "windSpeedKM": "24",
      "windSpeedKnots": 13,
      "maxTemp": "18°C",
      "minTemp": "12°C",
      "uvIndex": 5,
      "sunRise": "05:02",
      "sunSet": "21:14",
      "dayIcon": "b.svg",
      "nightIcon": "c.svg"
    },
    {
      "dayName": "Saturday",
      "summary": "Cloudy",
      "rainProbMorning": "",
      "windDirection": "W",
      "maxTemp": "17°C",
      "minTemp": "13°C",
      "dayIcon": "e.svg"
    }
  ]
}`

func TestParseForecast(t *testing.T) {
	rec, err := parseForecast([]byte(forecastFixture))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.CurrentTemp != "18.2°C" {
		t.Errorf("currentTemp = %q", rec.CurrentTemp)
	}
	if len(rec.Days) != 2 {
		t.Fatalf("expected 2 days, got %d", len(rec.Days))
	}

	friday := rec.Days[0]
	if friday.RainProbMorning != 10 || friday.RainProbAfternoon != 40 {
		t.Errorf("rain probabilities decoded wrong: %d %d", friday.RainProbMorning, friday.RainProbAfternoon)
	}
	if friday.WindSpeedKmh != 24 || friday.WindSpeedKnots != 13 {
		t.Errorf("wind speeds decoded wrong: %v %v", friday.WindSpeedKmh, friday.WindSpeedKnots)
	}
	if friday.MorningDescription != "Mist at first" {
		t.Errorf("morning description = %q", friday.MorningDescription)
	}

	// Optional fields absent on Saturday are zero values, not errors.
	saturday := rec.Days[1]
	if saturday.RainProbMorning != 0 || saturday.WindSpeedKmh != 0 {
		t.Errorf("absent optional fields should be zero: %+v", saturday)
	}
}

func TestParseForecastMalformed(t *testing.T) {
	_, err := parseForecast([]byte(`{not json`))
	var pe *weather.ParseError
	if !errors.As(err, &pe) || pe.Kind != weather.ParseMalformed {
		t.Fatalf("expected malformed parse error, got %v", err)
	}
}

func TestParseForecastSchemaMismatch(t *testing.T) {
	_, err := parseForecast([]byte(`{"currentTemprature": "18.2°C"}`))
	var pe *weather.ParseError
	if !errors.As(err, &pe) {
		t.Fatalf("expected parse error, got %v", err)
	}
	if pe.Kind != weather.ParseSchemaMismatch || pe.MissingField != "forecastDay" {
		t.Fatalf("expected schema mismatch on forecastDay, got %+v", pe)
	}
}
