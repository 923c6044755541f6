package httpapi

import (
	"context"

	"github.com/gofiber/fiber/v2"

	"github.com/jerseymet/weather-aggregation/internal/weather"
)

// RadarAnimator builds the on-demand radar GIF.
type RadarAnimator interface {
	BuildGIF(ctx context.Context) ([]byte, error)
}

// RegisterRoutes wires the read-only consumer API into the Fiber app.
// Display entities read snapshot fields; error detail is only visible
// through the source endpoints.
func RegisterRoutes(app *fiber.App, coord *weather.Coordinator, radar RadarAnimator) {
	v1 := app.Group("/api/v1")

	v1.Get("/snapshot", func(c *fiber.Ctx) error {
		return c.JSON(coord.GetSnapshot())
	})

	v1.Get("/current", func(c *fiber.Ctx) error {
		snap := coord.GetSnapshot()
		if snap.Current == nil {
			return fiber.NewError(fiber.StatusNotFound, "no current conditions yet")
		}
		return c.JSON(snap.Current)
	})

	v1.Get("/forecast", func(c *fiber.Ctx) error {
		snap := coord.GetSnapshot()
		if len(snap.ForecastDays) == 0 {
			return fiber.NewError(fiber.StatusNotFound, "no forecast data yet")
		}
		return c.JSON(fiber.Map{
			"publishedAt": snap.PublishedAt,
			"days":        snap.ForecastDays,
		})
	})

	v1.Get("/forecast/attributes", func(c *fiber.Ctx) error {
		snap := coord.GetSnapshot()
		if len(snap.ForecastDays) == 0 {
			return fiber.NewError(fiber.StatusNotFound, "no forecast data yet")
		}
		return c.JSON(weather.FlattenForecast(snap.ForecastDays))
	})

	v1.Get("/tides", func(c *fiber.Ctx) error {
		snap := coord.GetSnapshot()
		if len(snap.TideDays) == 0 {
			return fiber.NewError(fiber.StatusNotFound, "no tide data yet")
		}
		return c.JSON(fiber.Map{
			"publishedAt": snap.PublishedAt,
			"days":        snap.TideDays,
		})
	})

	v1.Get("/tides/next", func(c *fiber.Ctx) error {
		snap := coord.GetSnapshot()
		if snap.NextTide == nil {
			return fiber.NewError(fiber.StatusNotFound, "no upcoming tide event")
		}
		return c.JSON(snap.NextTide)
	})

	v1.Get("/sources", func(c *fiber.Ctx) error {
		var out []weather.SourceHealth
		for _, id := range coord.SourceIDs() {
			if h, ok := coord.GetSourceHealth(id); ok {
				out = append(out, h)
			}
		}
		return c.JSON(out)
	})

	v1.Get("/sources/:id", func(c *fiber.Ctx) error {
		h, ok := coord.GetSourceHealth(weather.SourceID(c.Params("id")))
		if !ok {
			return fiber.NewError(fiber.StatusNotFound, "unknown source")
		}
		return c.JSON(h)
	})

	// Fixed path before the :id route so it wins the match.
	v1.Get("/images/radar/animation", func(c *fiber.Ctx) error {
		if radar == nil {
			return fiber.NewError(fiber.StatusNotFound, "radar animation not configured")
		}
		data, err := radar.BuildGIF(c.Context())
		if err != nil {
			return fiber.NewError(fiber.StatusBadGateway, "radar frames unavailable")
		}
		c.Set(fiber.HeaderContentType, "image/gif")
		return c.Send(data)
	})

	v1.Get("/images/:id", func(c *fiber.Ctx) error {
		snap := coord.GetSnapshot()
		ref, ok := snap.Images[weather.ImageID(c.Params("id"))]
		if !ok || len(ref.Data) == 0 {
			return fiber.NewError(fiber.StatusNotFound, "no image data yet")
		}
		ct := ref.ContentType
		if ct == "" {
			ct = fiber.MIMEOctetStream
		}
		c.Set(fiber.HeaderContentType, ct)
		if !ref.LastModified.IsZero() {
			c.Set(fiber.HeaderLastModified, ref.LastModified.UTC().Format("Mon, 02 Jan 2006 15:04:05 GMT"))
		}
		return c.Send(ref.Data)
	})
}
