package sources

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/sony/gobreaker"

	"github.com/jerseymet/weather-aggregation/internal/weather"
)

var errEmptyImage = errors.New("empty image body")

// ImageSource probes one image endpoint. The upstream updates content in
// place at a fixed URL, so freshness is inferred from the Last-Modified
// header when the upstream sends one; otherwise freshness is unknown and
// only the fetch time is recorded.
type ImageSource struct {
	fetcher  *Fetcher
	id       weather.SourceID
	url      string
	interval time.Duration
	breaker  *gobreaker.CircuitBreaker
	now      func() time.Time
}

func NewImageSource(f *Fetcher, id weather.SourceID, url string, interval time.Duration) *ImageSource {
	return &ImageSource{
		fetcher:  f,
		id:       id,
		url:      url,
		interval: interval,
		breaker:  newBreaker(string(id)),
		now:      time.Now,
	}
}

func (s *ImageSource) ID() weather.SourceID { return s.id }

func (s *ImageSource) Interval() time.Duration { return s.interval }

func (s *ImageSource) Collect(ctx context.Context) (weather.Delta, error) {
	data, header, err := s.fetcher.Get(ctx, s.url, s.breaker)
	if err != nil {
		return weather.Delta{}, err
	}
	if len(data) == 0 {
		return weather.Delta{}, &weather.ParseError{Kind: weather.ParseMalformed, Err: errEmptyImage}
	}

	rec := parseImage(s.id, s.url, data, header, s.now())
	return weather.Delta{
		Source: s.id,
		Image: &weather.ImageUpdate{
			ID: weather.ImageID(s.id),
			Ref: weather.ImageRef{
				URL:             rec.URL,
				ContentType:     rec.ContentType,
				LastKnownGoodAt: rec.FetchedAt,
				LastModified:    rec.LastModified,
				Data:            rec.Data,
			},
		},
	}, nil
}

func parseImage(id weather.SourceID, url string, data []byte, header http.Header, now time.Time) weather.ImageRecord {
	rec := weather.ImageRecord{
		ID:        weather.ImageID(id),
		URL:       url,
		Data:      data,
		FetchedAt: now,
	}
	rec.ContentType = header.Get("Content-Type")
	if rec.ContentType == "" {
		rec.ContentType = http.DetectContentType(data)
	}
	if lm := header.Get("Last-Modified"); lm != "" {
		if t, err := http.ParseTime(lm); err == nil {
			rec.LastModified = t
		}
	}
	return rec
}
