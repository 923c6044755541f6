package httpapi

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jerseymet/weather-aggregation/internal/store"
	"github.com/jerseymet/weather-aggregation/internal/weather"
)

func newTestApp(snap *weather.Snapshot) *fiber.App {
	ids := []weather.SourceID{weather.SourceForecast, weather.SourceTide, weather.SourceRadar}
	memStore := store.NewSnapshotStore(ids)
	if snap != nil {
		memStore.Publish(*snap)
	}
	coord := weather.NewCoordinator(memStore, nil, weather.Options{})

	app := fiber.New()
	RegisterRoutes(app, coord, nil)
	return app
}

func TestSnapshotEndpointAlwaysAvailable(t *testing.T) {
	app := newTestApp(nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/snapshot", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, resp.StatusCode)
	}

	var snap weather.Snapshot
	if err := json.NewDecoder(resp.Body).Decode(&snap); err != nil {
		t.Fatalf("invalid snapshot payload: %v", err)
	}
	if len(snap.SourceStates) == 0 {
		t.Error("zero snapshot should still carry source states")
	}
}

func TestCurrentBeforeFirstSuccess(t *testing.T) {
	app := newTestApp(nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/current", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected status %d, got %d", http.StatusNotFound, resp.StatusCode)
	}
}

func TestCurrentAfterPublish(t *testing.T) {
	snap := weather.NewSnapshot([]weather.SourceID{weather.SourceForecast})
	snap.Current = &weather.CurrentConditions{TemperatureC: 18.2, Condition: weather.ConditionSunny}
	app := newTestApp(&snap)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/current", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, resp.StatusCode)
	}

	var cur weather.CurrentConditions
	if err := json.NewDecoder(resp.Body).Decode(&cur); err != nil {
		t.Fatalf("invalid payload: %v", err)
	}
	if cur.TemperatureC != 18.2 {
		t.Errorf("temperatureC = %v, want 18.2", cur.TemperatureC)
	}
}

func TestSourceHealthEndpoints(t *testing.T) {
	app := newTestApp(nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/sources/forecast", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, resp.StatusCode)
	}

	// Unknown sources are a 404, not an empty health document.
	req = httptest.NewRequest(http.MethodGet, "/api/v1/sources/nonsense", nil)
	resp, err = app.Test(req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected status %d, got %d", http.StatusNotFound, resp.StatusCode)
	}
}

func TestImageEndpoint(t *testing.T) {
	snap := weather.NewSnapshot([]weather.SourceID{weather.SourceRadar})
	snap.Images[weather.ImageID(weather.SourceRadar)] = weather.ImageRef{
		URL:             "https://example.test/Radar10.JPG",
		ContentType:     "image/jpeg",
		LastKnownGoodAt: time.Now(),
		Data:            []byte{0xff, 0xd8, 0xff},
	}
	app := newTestApp(&snap)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/images/radar", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, resp.StatusCode)
	}
	if ct := resp.Header.Get("Content-Type"); ct != "image/jpeg" {
		t.Errorf("content type = %q", ct)
	}
	body, _ := io.ReadAll(resp.Body)
	if len(body) != 3 {
		t.Errorf("body length = %d, want 3", len(body))
	}

	// No data yet for the satellite image.
	req = httptest.NewRequest(http.MethodGet, "/api/v1/images/satellite", nil)
	resp, err = app.Test(req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected status %d, got %d", http.StatusNotFound, resp.StatusCode)
	}
}

func TestTidesNextEndpoint(t *testing.T) {
	snap := weather.NewSnapshot([]weather.SourceID{weather.SourceTide})
	snap.NextTide = &weather.NextTide{
		TideEvent: weather.TideEvent{
			Time:    time.Date(2026, 8, 21, 9, 10, 0, 0, time.UTC),
			HeightM: 4.9,
			Kind:    weather.TideHigh,
		},
		Until: 70 * time.Minute,
	}
	app := newTestApp(&snap)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/tides/next", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, resp.StatusCode)
	}
}
