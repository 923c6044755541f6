package sources

import (
	"context"
	"time"

	"github.com/sony/gobreaker"

	"github.com/jerseymet/weather-aggregation/internal/common"
	"github.com/jerseymet/weather-aggregation/internal/weather"
)

// CoastalSource polls the coastal reports feed. The schema is looser than
// the forecast and tide feeds, so every field is optional and the whole
// source is best-effort.
type CoastalSource struct {
	fetcher  *Fetcher
	url      string
	interval time.Duration
	breaker  *gobreaker.CircuitBreaker
}

func NewCoastalSource(f *Fetcher, url string, interval time.Duration) *CoastalSource {
	return &CoastalSource{
		fetcher:  f,
		url:      url,
		interval: interval,
		breaker:  newBreaker(string(weather.SourceCoastal)),
	}
}

func (s *CoastalSource) ID() weather.SourceID { return weather.SourceCoastal }

func (s *CoastalSource) Interval() time.Duration { return s.interval }

func (s *CoastalSource) Collect(ctx context.Context) (weather.Delta, error) {
	data, _, err := s.fetcher.Get(ctx, s.url, s.breaker)
	if err != nil {
		return weather.Delta{}, err
	}
	rec, err := parseCoastal(data)
	if err != nil {
		return weather.Delta{}, err
	}
	return weather.Delta{
		Source: weather.SourceCoastal,
		Coastal: &weather.CoastalReport{
			IssuedAt:         rec.IssuedAt,
			PressureHpa:      rec.Pressure,
			PressureTendency: rec.PressureTendency,
			SeaTemperatureC:  rec.SeaTemperature,
			Summary:          rec.Summary,
		},
	}, nil
}

type coastalPayload struct {
	IssueTime        string   `json:"issuetime"`
	IssuedAt         string   `json:"issuedAt"`
	Pressure         optFloat `json:"pressure"`
	PressureTendency string   `json:"pressureTendency"`
	SeaTemperature   optFloat `json:"seaTemperature"`
	SeaTemp          optFloat `json:"seaTemp"`
	Report           string   `json:"report"`
	Summary          string   `json:"summary"`
}

// parseCoastal decodes the coastal reports feed. No field is identity
// bearing; only undecodable bytes are an error.
func parseCoastal(data []byte) (weather.CoastalRecord, error) {
	var payload coastalPayload
	if err := decodeJSON(data, &payload); err != nil {
		return weather.CoastalRecord{}, &weather.ParseError{Kind: weather.ParseMalformed, Err: err}
	}

	sea := payload.SeaTemperature.ptr()
	if sea == nil {
		sea = payload.SeaTemp.ptr()
	}
	return weather.CoastalRecord{
		IssuedAt:         common.FirstNonEmpty(payload.IssueTime, payload.IssuedAt),
		Pressure:         payload.Pressure.ptr(),
		PressureTendency: payload.PressureTendency,
		SeaTemperature:   sea,
		Summary:          common.FirstNonEmpty(payload.Summary, payload.Report),
	}, nil
}

// ShippingSource polls the shipping forecast feed, also best-effort.
type ShippingSource struct {
	fetcher  *Fetcher
	url      string
	interval time.Duration
	breaker  *gobreaker.CircuitBreaker
}

func NewShippingSource(f *Fetcher, url string, interval time.Duration) *ShippingSource {
	return &ShippingSource{
		fetcher:  f,
		url:      url,
		interval: interval,
		breaker:  newBreaker(string(weather.SourceShipping)),
	}
}

func (s *ShippingSource) ID() weather.SourceID { return weather.SourceShipping }

func (s *ShippingSource) Interval() time.Duration { return s.interval }

func (s *ShippingSource) Collect(ctx context.Context) (weather.Delta, error) {
	data, _, err := s.fetcher.Get(ctx, s.url, s.breaker)
	if err != nil {
		return weather.Delta{}, err
	}
	rec, err := parseShipping(data)
	if err != nil {
		return weather.Delta{}, err
	}
	return weather.Delta{
		Source: weather.SourceShipping,
		Shipping: &weather.ShippingForecast{
			IssuedAt: rec.IssuedAt,
			Warnings: rec.Warnings,
			Text:     rec.Text,
		},
	}, nil
}

type shippingPayload struct {
	IssueTime string `json:"issuetime"`
	IssuedAt  string `json:"issuedAt"`
	Warnings  string `json:"warnings"`
	Forecast  string `json:"forecast"`
	Text      string `json:"text"`
}

func parseShipping(data []byte) (weather.ShippingRecord, error) {
	var payload shippingPayload
	if err := decodeJSON(data, &payload); err != nil {
		return weather.ShippingRecord{}, &weather.ParseError{Kind: weather.ParseMalformed, Err: err}
	}
	return weather.ShippingRecord{
		IssuedAt: common.FirstNonEmpty(payload.IssueTime, payload.IssuedAt),
		Warnings: payload.Warnings,
		Text:     common.FirstNonEmpty(payload.Text, payload.Forecast),
	}, nil
}
