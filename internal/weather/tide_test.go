package weather

import (
	"testing"
	"time"
)

func TestNormalizeTideRangePct(t *testing.T) {
	rec := TideRecord{Days: []TideDayRecord{{
		Date: "2026-08-21",
		Events: []TideEventRecord{
			{Time: "02:38", Height: "0.7", HeightInFeet: "2.3", HighLowShort: "LW"},
			{Time: "09:10", Height: "4.9", HeightInFeet: "16.1", HighLowShort: "HW"},
		},
	}}}

	delta, err := NormalizeTide(rec, time.UTC, time.Now())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	events := delta.TideDays[0].Events
	if len(events) != 2 {
		t.Fatalf("expected 2 events, got %d", len(events))
	}

	low, high := events[0], events[1]
	if low.Kind != TideLow || high.Kind != TideHigh {
		t.Fatalf("event kinds wrong: %v %v", low.Kind, high.Kind)
	}
	if low.RangePct == nil || *low.RangePct != 0.0 {
		t.Errorf("LW rangePct = %v, want 0.0", low.RangePct)
	}
	if high.RangePct == nil || *high.RangePct != 1.0 {
		t.Errorf("HW rangePct = %v, want 1.0", high.RangePct)
	}
}

func TestNormalizeTideSingleEventNoRange(t *testing.T) {
	rec := TideRecord{Days: []TideDayRecord{{
		Date: "2026-08-21",
		Events: []TideEventRecord{
			{Time: "09:10", Height: "4.9", HighLowShort: "HW"},
		},
	}}}

	delta, err := NormalizeTide(rec, time.UTC, time.Now())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := delta.TideDays[0].Events[0].RangePct; got != nil {
		t.Errorf("expected nil rangePct for single-event day, got %v", *got)
	}
}

func TestNormalizeTideSortsEvents(t *testing.T) {
	rec := TideRecord{Days: []TideDayRecord{{
		Date: "2026-08-21",
		Events: []TideEventRecord{
			{Time: "21:40", Height: "4.7", HighLowShort: "HW"},
			{Time: "02:38", Height: "0.7", HighLowShort: "LW"},
			{Time: "15:20", Height: "0.9", HighLowShort: "LW"},
			{Time: "09:10", Height: "4.9", HighLowShort: "HW"},
		},
	}}}

	delta, err := NormalizeTide(rec, time.UTC, time.Now())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	events := delta.TideDays[0].Events
	for i := 1; i < len(events); i++ {
		if events[i].Time.Before(events[i-1].Time) {
			t.Fatalf("events not sorted ascending at index %d", i)
		}
	}
}

func TestNormalizeTideDerivesFeetWhenMissing(t *testing.T) {
	rec := TideRecord{Days: []TideDayRecord{{
		Date: "2026-08-21",
		Events: []TideEventRecord{
			{Time: "09:10", Height: "1.0", HighLowShort: "HW"},
		},
	}}}

	delta, err := NormalizeTide(rec, time.UTC, time.Now())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := delta.TideDays[0].Events[0].HeightFt; got != 3.3 {
		t.Errorf("derived heightFt = %v, want 3.3", got)
	}
}

func TestNormalizeTideWeekendFlag(t *testing.T) {
	// 2026-08-22 is a Saturday; the upstream flag is absent.
	rec := TideRecord{Days: []TideDayRecord{{
		Date: "2026-08-22",
		Events: []TideEventRecord{
			{Time: "09:10", Height: "4.9", HighLowShort: "HW"},
		},
	}}}

	delta, err := NormalizeTide(rec, time.UTC, time.Now())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !delta.TideDays[0].Weekend {
		t.Error("expected Saturday to be flagged as weekend")
	}
}

func TestComputeNextTideEarliestFuture(t *testing.T) {
	rec := TideRecord{Days: []TideDayRecord{
		{
			Date: "2026-08-21",
			Events: []TideEventRecord{
				{Time: "02:38", Height: "0.7", HighLowShort: "LW"},
				{Time: "09:10", Height: "4.9", HighLowShort: "HW"},
			},
		},
		{
			Date: "2026-08-22",
			Events: []TideEventRecord{
				{Time: "03:20", Height: "0.8", HighLowShort: "LW"},
			},
		},
	}}

	delta, err := NormalizeTide(rec, time.UTC, time.Now())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// A now before every event selects the earliest one.
	now := time.Date(2026, 8, 21, 0, 0, 0, 0, time.UTC)
	next := ComputeNextTide(delta.TideDays, now)
	if next == nil {
		t.Fatal("expected a next tide event")
	}
	if next.Kind != TideLow || next.Time.Hour() != 2 || next.Time.Minute() != 38 {
		t.Fatalf("wrong next event: %+v", next.TideEvent)
	}
	if next.Until != next.Time.Sub(now) {
		t.Errorf("until = %v, want %v", next.Until, next.Time.Sub(now))
	}

	// A now between events skips the past ones.
	now = time.Date(2026, 8, 21, 12, 0, 0, 0, time.UTC)
	next = ComputeNextTide(delta.TideDays, now)
	if next == nil || next.Time.Day() != 22 {
		t.Fatalf("expected next day's event, got %+v", next)
	}

	// A now after every event yields nil.
	now = time.Date(2026, 8, 23, 0, 0, 0, 0, time.UTC)
	if next = ComputeNextTide(delta.TideDays, now); next != nil {
		t.Fatalf("expected nil past all events, got %+v", next)
	}
}

func TestNormalizeTideEmptyRecord(t *testing.T) {
	_, err := NormalizeTide(TideRecord{}, time.UTC, time.Now())
	if err == nil {
		t.Fatal("expected error for empty tide record")
	}
	if _, ok := err.(*NormalizeError); !ok {
		t.Fatalf("expected *NormalizeError, got %T", err)
	}
}
