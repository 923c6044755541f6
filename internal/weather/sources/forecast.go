package sources

import (
	"context"
	"time"

	"github.com/sony/gobreaker"

	"github.com/jerseymet/weather-aggregation/internal/weather"
)

// ForecastSource polls the Jersey Met forecast feed.
type ForecastSource struct {
	fetcher  *Fetcher
	url      string
	interval time.Duration
	breaker  *gobreaker.CircuitBreaker
	now      func() time.Time
}

func NewForecastSource(f *Fetcher, url string, interval time.Duration) *ForecastSource {
	return &ForecastSource{
		fetcher:  f,
		url:      url,
		interval: interval,
		breaker:  newBreaker(string(weather.SourceForecast)),
		now:      time.Now,
	}
}

func (s *ForecastSource) ID() weather.SourceID { return weather.SourceForecast }

func (s *ForecastSource) Interval() time.Duration { return s.interval }

func (s *ForecastSource) Collect(ctx context.Context) (weather.Delta, error) {
	data, _, err := s.fetcher.Get(ctx, s.url, s.breaker)
	if err != nil {
		return weather.Delta{}, err
	}
	rec, err := parseForecast(data)
	if err != nil {
		return weather.Delta{}, err
	}
	return weather.NormalizeForecast(rec, s.now())
}

// forecastPayload mirrors the upstream document, including its misspelled
// field names, which are part of the de facto contract.
type forecastPayload struct {
	CurrentTemprature           string `json:"currentTemprature"`
	CurrentTempratureFahrenheit string `json:"currentTempratureFahrenheit"`
	IssueTime                   string `json:"issuetime"`
	ForecastDate                string `json:"forecastDate"`
	CacheTime                   string `json:"cacheTime"`
	ForecastDay                 []struct {
		DayName              string    `json:"dayName"`
		Summary              string    `json:"summary"`
		MorningDescripiton   string    `json:"morningDescripiton"`
		AfternoonDescripiton string    `json:"afternoonDescripiton"`
		NightDescripiton     string    `json:"nightDescripiton"`
		RainProbMorning      flexInt   `json:"rainProbMorning"`
		RainProbAfternoon    flexInt   `json:"rainProbAfternoon"`
		RainProbEvening      flexInt   `json:"rainProbEvening"`
		WindDirection        string    `json:"windDirection"`
		WindSpeed            string    `json:"windSpeed"`
		WindSpeedMPH         flexFloat `json:"windSpeedMPH"`
		WindSpeedKM          flexFloat `json:"windSpeedKM"`
		WindSpeedKnots       flexFloat `json:"windSpeedKnots"`
		MaxTemp              string    `json:"maxTemp"`
		MinTemp              string    `json:"minTemp"`
		UVIndex              flexInt   `json:"uvIndex"`
		SunRise              string    `json:"sunRise"`
		SunSet               string    `json:"sunSet"`
		DayIcon              string    `json:"dayIcon"`
		NightIcon            string    `json:"nightIcon"`
	} `json:"forecastDay"`
}

// parseForecast decodes the forecast document into an intermediate record.
// The record's identity depends on forecastDay being present and non-empty;
// everything else is optional.
func parseForecast(data []byte) (weather.ForecastRecord, error) {
	var payload forecastPayload
	if err := decodeJSON(data, &payload); err != nil {
		return weather.ForecastRecord{}, &weather.ParseError{Kind: weather.ParseMalformed, Err: err}
	}
	if len(payload.ForecastDay) == 0 {
		return weather.ForecastRecord{}, &weather.ParseError{Kind: weather.ParseSchemaMismatch, MissingField: "forecastDay"}
	}

	rec := weather.ForecastRecord{
		CurrentTemp:  payload.CurrentTemprature,
		CurrentTempF: payload.CurrentTempratureFahrenheit,
		IssuedAt:     payload.IssueTime,
		ForecastDate: payload.ForecastDate,
		CacheTime:    payload.CacheTime,
	}
	for _, d := range payload.ForecastDay {
		rec.Days = append(rec.Days, weather.ForecastDayRecord{
			Name:                 d.DayName,
			Summary:              d.Summary,
			MorningDescription:   d.MorningDescripiton,
			AfternoonDescription: d.AfternoonDescripiton,
			NightDescription:     d.NightDescripiton,
			RainProbMorning:      int(d.RainProbMorning),
			RainProbAfternoon:    int(d.RainProbAfternoon),
			RainProbEvening:      int(d.RainProbEvening),
			WindDirection:        d.WindDirection,
			WindSpeed:            d.WindSpeed,
			WindSpeedMph:         float64(d.WindSpeedMPH),
			WindSpeedKmh:         float64(d.WindSpeedKM),
			WindSpeedKnots:       float64(d.WindSpeedKnots),
			MaxTemp:              d.MaxTemp,
			MinTemp:              d.MinTemp,
			UVIndex:              int(d.UVIndex),
			Sunrise:              d.SunRise,
			Sunset:               d.SunSet,
			DayIcon:              d.DayIcon,
			NightIcon:            d.NightIcon,
		})
	}
	return rec, nil
}
