package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

// Default Jersey Met endpoints. All read-only, no auth.
const (
	defaultForecastURL = "https://prodgojweatherstorage.blob.core.windows.net/data/jerseyForecast.json"
	defaultTideURL     = "https://prodgojweatherstorage.blob.core.windows.net/data/JerseyTide5Day.json"
	defaultCoastalURL  = "https://prodgojweatherstorage.blob.core.windows.net/data/CoastalReports.json"
	defaultShippingURL = "https://prodgojweatherstorage.blob.core.windows.net/data/Shipping.json"

	defaultRadarURL      = "https://sojpublicdata.blob.core.windows.net/jerseymet/Radar10.JPG"
	defaultSatelliteURL  = "https://sojpublicdata.blob.core.windows.net/jerseymet/Satellite10.JPG"
	defaultWindWavesURL  = "https://sojpublicdata.blob.core.windows.net/jerseymet/Wind%20Waves%202018%2049.png"
	defaultSeaStateAMURL = "https://sojpublicdata.blob.core.windows.net/jerseymet/Sea%20State/Sea%20State%20AM.png"
	defaultSeaStatePMURL = "https://sojpublicdata.blob.core.windows.net/jerseymet/Sea%20State/Sea%20State%20PM.png"

	defaultRadarFramePattern = "https://sojpublicdata.blob.core.windows.net/jerseymet/Radar%02d.JPG"
)

var validate = validator.New()

// AppConfig is the full service configuration, read from the environment.
type AppConfig struct {
	ForecastURL string `validate:"required,url"`
	TideURL     string `validate:"required,url"`
	// Coastal and shipping feeds are best-effort; empty disables them.
	CoastalURL  string `validate:"omitempty,url"`
	ShippingURL string `validate:"omitempty,url"`

	RadarURL      string `validate:"omitempty,url"`
	SatelliteURL  string `validate:"omitempty,url"`
	WindWavesURL  string `validate:"omitempty,url"`
	SeaStateAMURL string `validate:"omitempty,url"`
	SeaStatePMURL string `validate:"omitempty,url"`

	RadarFramePattern string `validate:"required"`
	RadarFrameCount   int    `validate:"min=1,max=30"`

	ForecastInterval time.Duration `validate:"required"`
	TideInterval     time.Duration `validate:"required"`
	CoastalInterval  time.Duration `validate:"required"`
	ImageInterval    time.Duration `validate:"required"`

	BaseTick     time.Duration `validate:"required"`
	FetchTimeout time.Duration `validate:"required"`
	MaxBodyBytes int64         `validate:"min=1024"`

	UnavailableAfter int `validate:"min=1"`

	Timezone string `validate:"required"`
	Port     string `validate:"required"`
}

// Load reads configuration from environment with sensible defaults.
func Load() (*AppConfig, error) {
	if err := godotenv.Load(); err != nil {
		log.Printf("INFO: No .env file found or error loading it: %v", err)
	}

	cfg := &AppConfig{
		ForecastURL: getenvDefault("FORECAST_URL", defaultForecastURL),
		TideURL:     getenvDefault("TIDE_URL", defaultTideURL),
		CoastalURL:  getenvDefault("COASTAL_URL", defaultCoastalURL),
		ShippingURL: getenvDefault("SHIPPING_URL", defaultShippingURL),

		RadarURL:      getenvDefault("RADAR_IMAGE_URL", defaultRadarURL),
		SatelliteURL:  getenvDefault("SATELLITE_IMAGE_URL", defaultSatelliteURL),
		WindWavesURL:  getenvDefault("WIND_WAVES_IMAGE_URL", defaultWindWavesURL),
		SeaStateAMURL: getenvDefault("SEA_STATE_AM_IMAGE_URL", defaultSeaStateAMURL),
		SeaStatePMURL: getenvDefault("SEA_STATE_PM_IMAGE_URL", defaultSeaStatePMURL),

		RadarFramePattern: getenvDefault("RADAR_FRAME_URL_TEMPLATE", defaultRadarFramePattern),
		RadarFrameCount:   getenvInt("RADAR_FRAME_COUNT", 10),

		MaxBodyBytes:     getenvInt64("MAX_BODY_BYTES", 8<<20),
		UnavailableAfter: getenvInt("UNAVAILABLE_AFTER", 3),
		Timezone:         getenvDefault("TIMEZONE", "Europe/Jersey"),
		Port:             getenvDefault("PORT", "8080"),
	}

	var err error
	if cfg.ForecastInterval, err = getenvDuration("FORECAST_INTERVAL", 15*time.Minute); err != nil {
		return nil, err
	}
	if cfg.TideInterval, err = getenvDuration("TIDE_INTERVAL", 15*time.Minute); err != nil {
		return nil, err
	}
	if cfg.CoastalInterval, err = getenvDuration("COASTAL_INTERVAL", 30*time.Minute); err != nil {
		return nil, err
	}
	if cfg.ImageInterval, err = getenvDuration("IMAGE_INTERVAL", 5*time.Minute); err != nil {
		return nil, err
	}
	if cfg.BaseTick, err = getenvDuration("BASE_TICK", 30*time.Second); err != nil {
		return nil, err
	}
	if cfg.FetchTimeout, err = getenvDuration("FETCH_TIMEOUT", 30*time.Second); err != nil {
		return nil, err
	}

	if err := validate.Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// Location resolves the configured timezone, used to anchor tide event
// times to the island's local day.
func (c *AppConfig) Location() (*time.Location, error) {
	return time.LoadLocation(c.Timezone)
}

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func getenvInt64(key string, def int64) int64 {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			return n
		}
	}
	return def
}

func getenvDuration(key string, def time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return d, nil
}
