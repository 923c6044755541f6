package weather

import (
	"time"
)

// Intermediate records sit between the endpoint parsers and the Normalizer.
// Parsers fill them from one upstream schema without converting units or
// computing anything across sources.

// ForecastRecord mirrors the upstream forecast document.
type ForecastRecord struct {
	CurrentTemp  string // e.g. "18.2°C"
	CurrentTempF string // e.g. "64.8°F", optional
	IssuedAt     string
	ForecastDate string
	CacheTime    string
	Days         []ForecastDayRecord
}

// ForecastDayRecord mirrors one upstream forecastDay entry. Wind speeds come
// in several unit families; the Normalizer picks a canonical one.
type ForecastDayRecord struct {
	Name                 string
	Summary              string
	MorningDescription   string
	AfternoonDescription string
	NightDescription     string
	RainProbMorning      int
	RainProbAfternoon    int
	RainProbEvening      int
	WindDirection        string
	WindSpeed            string // Beaufort style, e.g. "F4"
	WindSpeedMph         float64
	WindSpeedKmh         float64
	WindSpeedKnots       float64
	MaxTemp              string // unit-suffixed, e.g. "18°C"
	MinTemp              string
	UVIndex              int
	Sunrise              string
	Sunset               string
	DayIcon              string
	NightIcon            string
}

// TideRecord mirrors the upstream 5-day tide document.
type TideRecord struct {
	Days []TideDayRecord
}

// TideDayRecord is one upstream tide day.
type TideDayRecord struct {
	Date        string // ISO date
	DisplayDate string
	Weekend     bool
	Events      []TideEventRecord
}

// TideEventRecord is one upstream tide event; heights arrive as strings.
type TideEventRecord struct {
	Time         string // "HH:MM"
	Height       string // meters
	HeightInFeet string
	HighLow      string // "High water" | "Low water"
	HighLowShort string // "HW" | "LW"
}

// CoastalRecord mirrors the loosely-structured coastal reports feed.
type CoastalRecord struct {
	IssuedAt         string
	Pressure         *float64
	PressureTendency string
	SeaTemperature   *float64
	Summary          string
}

// ShippingRecord mirrors the shipping forecast feed.
type ShippingRecord struct {
	IssuedAt string
	Warnings string
	Text     string
}

// ImageRecord is the result of probing one image endpoint.
type ImageRecord struct {
	ID           ImageID
	URL          string
	ContentType  string
	LastModified time.Time // zero when upstream gave no freshness signal
	Data         []byte
	FetchedAt    time.Time
}
