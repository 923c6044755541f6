package sources

import (
	"context"
	"time"

	"github.com/sony/gobreaker"

	"github.com/jerseymet/weather-aggregation/internal/weather"
)

// TideSource polls the 5-day tide feed. Event times are local to the
// configured location.
type TideSource struct {
	fetcher  *Fetcher
	url      string
	interval time.Duration
	loc      *time.Location
	breaker  *gobreaker.CircuitBreaker
	now      func() time.Time
}

func NewTideSource(f *Fetcher, url string, interval time.Duration, loc *time.Location) *TideSource {
	return &TideSource{
		fetcher:  f,
		url:      url,
		interval: interval,
		loc:      loc,
		breaker:  newBreaker(string(weather.SourceTide)),
		now:      time.Now,
	}
}

func (s *TideSource) ID() weather.SourceID { return weather.SourceTide }

func (s *TideSource) Interval() time.Duration { return s.interval }

func (s *TideSource) Collect(ctx context.Context) (weather.Delta, error) {
	data, _, err := s.fetcher.Get(ctx, s.url, s.breaker)
	if err != nil {
		return weather.Delta{}, err
	}
	rec, err := parseTide(data)
	if err != nil {
		return weather.Delta{}, err
	}
	return weather.NormalizeTide(rec, s.loc, s.now())
}

type tideDayPayload struct {
	Date          string `json:"date"`
	FormattedDate string `json:"formattedDate"`
	Weekend       bool   `json:"weekend"`
	TideTimes     []struct {
		Time         string `json:"Time"`
		Height       string `json:"Height"`
		HeightinFeet string `json:"HeightinFeet"`
		HighLow      string `json:"highLow"`
		HighLowShort string `json:"highLowShort"`
	} `json:"TideTimes"`
}

// parseTide decodes the tide document: an array of day objects. A day's
// identity depends on its date and its TideTimes array being present.
func parseTide(data []byte) (weather.TideRecord, error) {
	var payload []tideDayPayload
	if err := decodeJSON(data, &payload); err != nil {
		return weather.TideRecord{}, &weather.ParseError{Kind: weather.ParseMalformed, Err: err}
	}
	if len(payload) == 0 {
		return weather.TideRecord{}, &weather.ParseError{Kind: weather.ParseSchemaMismatch, MissingField: "days"}
	}

	var rec weather.TideRecord
	for _, d := range payload {
		if d.Date == "" {
			return weather.TideRecord{}, &weather.ParseError{Kind: weather.ParseSchemaMismatch, MissingField: "date"}
		}
		if d.TideTimes == nil {
			return weather.TideRecord{}, &weather.ParseError{Kind: weather.ParseSchemaMismatch, MissingField: "TideTimes"}
		}
		day := weather.TideDayRecord{
			Date:        d.Date,
			DisplayDate: d.FormattedDate,
			Weekend:     d.Weekend,
		}
		for _, t := range d.TideTimes {
			day.Events = append(day.Events, weather.TideEventRecord{
				Time:         t.Time,
				Height:       t.Height,
				HeightInFeet: t.HeightinFeet,
				HighLow:      t.HighLow,
				HighLowShort: t.HighLowShort,
			})
		}
		rec.Days = append(rec.Days, day)
	}
	return rec, nil
}
