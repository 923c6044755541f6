package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"

	httpapi "github.com/jerseymet/weather-aggregation/internal/api/http"
	"github.com/jerseymet/weather-aggregation/internal/config"
	"github.com/jerseymet/weather-aggregation/internal/scheduler"
	"github.com/jerseymet/weather-aggregation/internal/store"
	"github.com/jerseymet/weather-aggregation/internal/weather"
	"github.com/jerseymet/weather-aggregation/internal/weather/sources"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	loc, err := cfg.Location()
	if err != nil {
		log.Fatalf("failed to load timezone %q: %v", cfg.Timezone, err)
	}

	fetcher := sources.NewFetcher(cfg.FetchTimeout, cfg.MaxBodyBytes)

	// One source per upstream endpoint, each on its own interval.
	srcs := []weather.Source{
		sources.NewForecastSource(fetcher, cfg.ForecastURL, cfg.ForecastInterval),
		sources.NewTideSource(fetcher, cfg.TideURL, cfg.TideInterval, loc),
	}
	if cfg.CoastalURL != "" {
		srcs = append(srcs, sources.NewCoastalSource(fetcher, cfg.CoastalURL, cfg.CoastalInterval))
	}
	if cfg.ShippingURL != "" {
		srcs = append(srcs, sources.NewShippingSource(fetcher, cfg.ShippingURL, cfg.CoastalInterval))
	}
	for _, img := range []struct {
		id  weather.SourceID
		url string
	}{
		{weather.SourceRadar, cfg.RadarURL},
		{weather.SourceSatellite, cfg.SatelliteURL},
		{weather.SourceWindWaves, cfg.WindWavesURL},
		{weather.SourceSeaStateAM, cfg.SeaStateAMURL},
		{weather.SourceSeaStatePM, cfg.SeaStatePMURL},
	} {
		if img.url != "" {
			srcs = append(srcs, sources.NewImageSource(fetcher, img.id, img.url, cfg.ImageInterval))
		}
	}

	ids := make([]weather.SourceID, 0, len(srcs))
	for _, s := range srcs {
		ids = append(ids, s.ID())
	}
	snapStore := store.NewSnapshotStore(ids)

	coord := weather.NewCoordinator(snapStore, srcs, weather.Options{
		UnavailableAfter: cfg.UnavailableAfter,
		CollectTimeout:   cfg.FetchTimeout,
	})

	sched := scheduler.New(coord, cfg.BaseTick, cfg.FetchTimeout+10*time.Second)
	if err := sched.Start(); err != nil {
		log.Fatalf("failed to start scheduler: %v", err)
	}
	defer sched.Stop()

	radar := sources.NewRadarLoop(fetcher, cfg.RadarFramePattern, cfg.RadarFrameCount)

	app := fiber.New(fiber.Config{
		AppName:               "jerseymet-aggregator",
		DisableStartupMessage: true,
		ReadTimeout:           10 * time.Second,
		WriteTimeout:          30 * time.Second,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}
			return c.Status(code).JSON(fiber.Map{
				"error":   true,
				"message": err.Error(),
			})
		},
	})

	app.Use(logger.New())
	app.Use(recover.New())

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":  "ok",
			"service": "jerseymet-aggregator",
		})
	})

	httpapi.RegisterRoutes(app, coord, radar)

	go func() {
		if err := app.Listen(":" + cfg.Port); err != nil {
			log.Printf("fiber server stopped: %v", err)
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Printf("error during shutdown: %v", err)
	}
}
