package sources

import (
	"errors"
	"testing"

	"github.com/jerseymet/weather-aggregation/internal/weather"
)

const tideFixture = `[
  {
    "date": "2026-08-21",
    "formattedDate": "Friday 21 August",
    "weekend": false,
    "TideTimes": [
      {"Time": "02:38", "Height": "0.7", "HeightinFeet": "2.3", "highLow": "Low water", "highLowShort": "LW"},
      {"Time": "09:10", "Height": "4.9", "HeightinFeet": "16.1", "highLow": "High water", "highLowShort": "HW"}
    ]
  },
  {
    "date": "2026-08-22",
    "formattedDate": "Saturday 22 August",
    "weekend": true,
    "TideTimes": []
  }
]`

func TestParseTide(t *testing.T) {
	rec, err := parseTide([]byte(tideFixture))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(rec.Days) != 2 {
		t.Fatalf("expected 2 days, got %d", len(rec.Days))
	}

	friday := rec.Days[0]
	if friday.Date != "2026-08-21" || friday.DisplayDate != "Friday 21 August" {
		t.Errorf("day fields decoded wrong: %+v", friday)
	}
	if len(friday.Events) != 2 {
		t.Fatalf("expected 2 events, got %d", len(friday.Events))
	}
	if friday.Events[0].HighLowShort != "LW" || friday.Events[0].Height != "0.7" {
		t.Errorf("event decoded wrong: %+v", friday.Events[0])
	}

	if !rec.Days[1].Weekend {
		t.Error("weekend flag lost")
	}
	// An empty TideTimes array is valid; only its absence is a mismatch.
	if rec.Days[1].Events == nil {
		t.Log("empty events decode to nil slice, acceptable")
	}
}

func TestParseTideMalformed(t *testing.T) {
	_, err := parseTide([]byte(`{"not": "an array"}`))
	var pe *weather.ParseError
	if !errors.As(err, &pe) || pe.Kind != weather.ParseMalformed {
		t.Fatalf("expected malformed parse error, got %v", err)
	}
}

func TestParseTideSchemaMismatch(t *testing.T) {
	_, err := parseTide([]byte(`[{"formattedDate": "Friday", "TideTimes": []}]`))
	var pe *weather.ParseError
	if !errors.As(err, &pe) || pe.Kind != weather.ParseSchemaMismatch || pe.MissingField != "date" {
		t.Fatalf("expected schema mismatch on date, got %v", err)
	}

	_, err = parseTide([]byte(`[]`))
	if !errors.As(err, &pe) || pe.Kind != weather.ParseSchemaMismatch {
		t.Fatalf("expected schema mismatch for empty document, got %v", err)
	}
}
