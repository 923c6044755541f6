package weather

import (
	"sort"
	"strconv"
	"strings"
	"time"
)

// NormalizeTide converts a parsed tide record into a Delta owning the tide
// days. Events are sorted by time ascending within each day and range
// percentages are derived from that day's min/max height. Pure and
// idempotent for a fixed now.
func NormalizeTide(rec TideRecord, loc *time.Location, now time.Time) (Delta, error) {
	if loc == nil {
		loc = time.UTC
	}

	days := make([]TideDay, 0, len(rec.Days))
	for _, d := range rec.Days {
		date, err := time.ParseInLocation("2006-01-02", strings.TrimSpace(d.Date), loc)
		if err != nil {
			// Some feeds ship a full timestamp in the date field.
			date, err = time.ParseInLocation("2006-01-02T15:04:05", strings.TrimSpace(d.Date), loc)
			if err != nil {
				continue
			}
			date = time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, loc)
		}

		day := TideDay{
			Date:        date,
			DisplayDate: d.DisplayDate,
			Weekend:     d.Weekend || isWeekend(date),
		}
		for _, e := range d.Events {
			ev, ok := normalizeTideEvent(e, date, loc)
			if !ok {
				continue
			}
			day.Events = append(day.Events, ev)
		}
		sort.Slice(day.Events, func(i, j int) bool {
			return day.Events[i].Time.Before(day.Events[j].Time)
		})
		applyRangePct(day.Events)
		days = append(days, day)
	}

	if len(days) == 0 {
		return Delta{}, &NormalizeError{Reason: "tide record has no usable days"}
	}
	sort.Slice(days, func(i, j int) bool { return days[i].Date.Before(days[j].Date) })

	return Delta{Source: SourceTide, TideDays: days}, nil
}

func normalizeTideEvent(e TideEventRecord, date time.Time, loc *time.Location) (TideEvent, bool) {
	t, err := time.ParseInLocation("15:04", strings.TrimSpace(e.Time), loc)
	if err != nil {
		return TideEvent{}, false
	}
	at := time.Date(date.Year(), date.Month(), date.Day(), t.Hour(), t.Minute(), 0, 0, loc)

	heightM, err := strconv.ParseFloat(strings.TrimSpace(e.Height), 64)
	if err != nil {
		return TideEvent{}, false
	}
	heightFt, err := strconv.ParseFloat(strings.TrimSpace(e.HeightInFeet), 64)
	if err != nil {
		heightFt = round1(heightM * 3.28084)
	}

	return TideEvent{
		Time:     at,
		HeightM:  heightM,
		HeightFt: heightFt,
		Kind:     tideKind(e),
	}, true
}

func tideKind(e TideEventRecord) TideKind {
	short := strings.ToUpper(strings.TrimSpace(e.HighLowShort))
	if short == "HW" {
		return TideHigh
	}
	if short == "LW" {
		return TideLow
	}
	if strings.HasPrefix(strings.ToLower(strings.TrimSpace(e.HighLow)), "high") {
		return TideHigh
	}
	return TideLow
}

// applyRangePct fills RangePct for each event from the day's min/max height.
// Days with fewer than two events or a zero range keep nil (N/A).
func applyRangePct(events []TideEvent) {
	if len(events) < 2 {
		return
	}
	min, max := events[0].HeightM, events[0].HeightM
	for _, e := range events[1:] {
		if e.HeightM < min {
			min = e.HeightM
		}
		if e.HeightM > max {
			max = e.HeightM
		}
	}
	if max == min {
		return
	}
	for i := range events {
		pct := (events[i].HeightM - min) / (max - min)
		events[i].RangePct = &pct
	}
}

// ComputeNextTide scans all days' events in time order for the first event
// at or after now. Nil when every known event is in the past.
func ComputeNextTide(days []TideDay, now time.Time) *NextTide {
	for _, d := range days {
		for _, e := range d.Events {
			if !e.Time.Before(now) {
				return &NextTide{TideEvent: e, Until: e.Time.Sub(now)}
			}
		}
	}
	return nil
}

func isWeekend(t time.Time) bool {
	wd := t.Weekday()
	return wd == time.Saturday || wd == time.Sunday
}
