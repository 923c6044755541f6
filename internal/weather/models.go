package weather

import (
	"time"
)

// SourceID identifies one upstream endpoint polled independently.
type SourceID string

const (
	SourceForecast   SourceID = "forecast"
	SourceTide       SourceID = "tide"
	SourceCoastal    SourceID = "coastal"
	SourceShipping   SourceID = "shipping"
	SourceRadar      SourceID = "radar"
	SourceSatellite  SourceID = "satellite"
	SourceWindWaves  SourceID = "wind_waves"
	SourceSeaStateAM SourceID = "sea_state_am"
	SourceSeaStatePM SourceID = "sea_state_pm"
)

// Condition represents a normalized high-level weather condition.
type Condition string

const (
	ConditionUnknown        Condition = "unknown"
	ConditionSunny          Condition = "sunny"
	ConditionClearNight     Condition = "clear-night"
	ConditionPartlyCloudy   Condition = "partlycloudy"
	ConditionCloudy         Condition = "cloudy"
	ConditionFog            Condition = "fog"
	ConditionRainy          Condition = "rainy"
	ConditionPouring        Condition = "pouring"
	ConditionLightning      Condition = "lightning"
	ConditionLightningRainy Condition = "lightning-rainy"
	ConditionSnowy          Condition = "snowy"
	ConditionSnowyRainy     Condition = "snowy-rainy"
	ConditionHail           Condition = "hail"
)

// Period is one subdivision of a forecast day.
type Period string

const (
	PeriodMorning   Period = "morning"
	PeriodAfternoon Period = "afternoon"
	PeriodNight     Period = "night"
)

// ForecastDaysCount is the number of days the upstream forecast contract
// promises.
const ForecastDaysCount = 5

// SourceState tracks the health of one source for the lifetime of the
// process. Entries are never removed, only updated.
type SourceState struct {
	LastSuccessAt       time.Time `json:"lastSuccessAt"`
	LastError           string    `json:"lastError,omitempty"`
	StaleSinceAt        time.Time `json:"staleSinceAt,omitempty"`
	ConsecutiveFailures int       `json:"consecutiveFailures"`
}

// CurrentConditions is the normalized "now" view. Metric values are
// canonical; imperial values are derived at normalization time.
type CurrentConditions struct {
	TemperatureC   float64   `json:"temperatureC"`
	TemperatureF   float64   `json:"temperatureF"`
	WindSpeedKmh   float64   `json:"windSpeedKmh"`
	WindSpeedMph   float64   `json:"windSpeedMph"`
	WindSpeedKnots float64   `json:"windSpeedKnots"`
	WindDirection  string    `json:"windDirection,omitempty"`
	WindBearingDeg *float64  `json:"windBearingDeg,omitempty"`
	UVIndex        int       `json:"uvIndex"`
	Condition      Condition `json:"condition"`
	Summary        string    `json:"summary,omitempty"`
	Sunrise        string    `json:"sunrise,omitempty"`
	Sunset         string    `json:"sunset,omitempty"`
	IssuedAt       string    `json:"issuedAt,omitempty"`
	ForecastDate   string    `json:"forecastDate,omitempty"`
}

// PeriodForecast holds per-period attributes for one forecast day.
//
// Upstream publishes no true per-period temperatures, only a day min/max.
// Morning and night carry the day minimum, afternoon the day maximum. This
// is a known approximation of the upstream feed.
type PeriodForecast struct {
	Description        string    `json:"description,omitempty"`
	Condition          Condition `json:"condition"`
	RainProbabilityPct int       `json:"rainProbabilityPct"`
	TemperatureC       float64   `json:"temperatureC"`
}

// ForecastDay is one normalized day of the multi-day forecast.
type ForecastDay struct {
	Date          string                    `json:"date"`
	Summary       string                    `json:"summary,omitempty"`
	Condition     Condition                 `json:"condition"`
	MaxTempC      float64                   `json:"maxTempC"`
	MinTempC      float64                   `json:"minTempC"`
	WindDirection string                    `json:"windDirection,omitempty"`
	WindSpeedKmh  float64                   `json:"windSpeedKmh"`
	UVIndex       int                       `json:"uvIndex"`
	Sunrise       string                    `json:"sunrise,omitempty"`
	Sunset        string                    `json:"sunset,omitempty"`
	Periods       map[Period]PeriodForecast `json:"periods"`
}

// TideKind distinguishes high and low water events.
type TideKind string

const (
	TideHigh TideKind = "high"
	TideLow  TideKind = "low"
)

// TideEvent is one high/low water event. RangePct is the event height as a
// fraction of that day's min..max range; nil when the day has fewer than two
// events or a zero range (reported as N/A, never zero).
type TideEvent struct {
	Time     time.Time `json:"time"`
	HeightM  float64   `json:"heightM"`
	HeightFt float64   `json:"heightFt"`
	Kind     TideKind  `json:"kind"`
	RangePct *float64  `json:"rangePct,omitempty"`
}

// TideDay is one day of tide events, ordered by time ascending.
type TideDay struct {
	Date        time.Time   `json:"date"`
	DisplayDate string      `json:"displayDate,omitempty"`
	Weekend     bool        `json:"isWeekend"`
	Events      []TideEvent `json:"events"`
}

// NextTide is the first tide event at or after the publish time, across all
// days.
type NextTide struct {
	TideEvent
	Until time.Duration `json:"until"`
}

// ImageID identifies one upstream image endpoint.
type ImageID string

// ImageRef is the last known-good state of one image endpoint. LastModified
// comes from the upstream response header when present; a zero value means
// the upstream gave no freshness signal.
type ImageRef struct {
	URL             string    `json:"url"`
	ContentType     string    `json:"contentType,omitempty"`
	LastKnownGoodAt time.Time `json:"lastKnownGoodAt"`
	LastModified    time.Time `json:"lastModified,omitempty"`
	Data            []byte    `json:"-"`
}

// CoastalReport carries the loosely-structured coastal observations feed.
// Every field is optional; the feed is best-effort.
type CoastalReport struct {
	IssuedAt         string   `json:"issuedAt,omitempty"`
	PressureHpa      *float64 `json:"pressureHpa,omitempty"`
	PressureTendency string   `json:"pressureTendency,omitempty"`
	SeaTemperatureC  *float64 `json:"seaTemperatureC,omitempty"`
	Summary          string   `json:"summary,omitempty"`
}

// ShippingForecast carries the best-effort shipping forecast feed.
type ShippingForecast struct {
	IssuedAt string `json:"issuedAt,omitempty"`
	Warnings string `json:"warnings,omitempty"`
	Text     string `json:"text,omitempty"`
}

// Snapshot is the complete, atomically-published aggregate of all sources'
// latest known-good data. A published Snapshot is immutable; the Coordinator
// builds the next one from a clone and swaps it in whole.
type Snapshot struct {
	ID          string    `json:"id"`
	Version     uint64    `json:"version"`
	PublishedAt time.Time `json:"publishedAt"`

	SourceStates map[SourceID]SourceState `json:"sourceStates"`

	Current      *CurrentConditions   `json:"current,omitempty"`
	ForecastDays []ForecastDay        `json:"forecastDays,omitempty"`
	TideDays     []TideDay            `json:"tideDays,omitempty"`
	NextTide     *NextTide            `json:"nextTide,omitempty"`
	Coastal      *CoastalReport       `json:"coastal,omitempty"`
	Shipping     *ShippingForecast    `json:"shipping,omitempty"`
	Images       map[ImageID]ImageRef `json:"images,omitempty"`
}

// NewSnapshot returns the zero Snapshot seeding one never-succeeded state
// per configured source.
func NewSnapshot(sources []SourceID) Snapshot {
	states := make(map[SourceID]SourceState, len(sources))
	for _, id := range sources {
		states[id] = SourceState{}
	}
	return Snapshot{
		SourceStates: states,
		Images:       make(map[ImageID]ImageRef),
	}
}

// clone returns a copy safe to mutate before the next publish. Maps are
// copied; slices and pointed-to values are only ever replaced wholesale by
// deltas, never mutated in place, so they can be shared.
func (s Snapshot) clone() Snapshot {
	states := make(map[SourceID]SourceState, len(s.SourceStates))
	for k, v := range s.SourceStates {
		states[k] = v
	}
	images := make(map[ImageID]ImageRef, len(s.Images))
	for k, v := range s.Images {
		images[k] = v
	}
	out := s
	out.SourceStates = states
	out.Images = images
	return out
}
