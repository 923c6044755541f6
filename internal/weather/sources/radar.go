package sources

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/color/palette"
	"image/draw"
	"image/gif"
	_ "image/jpeg"
	_ "image/png"
	"log"
	"sync"

	"github.com/sony/gobreaker"

	"github.com/jerseymet/weather-aggregation/internal/weather"
)

// RadarLoop composes the upstream's numbered radar frames into an animated
// GIF on demand. Frames that fail to download are skipped; at least one
// frame is required.
type RadarLoop struct {
	fetcher    *Fetcher
	urlPattern string // e.g. "https://.../Radar%02d.JPG"
	frames     int
	frameDelay int // GIF delay in 1/100ths of a second
	breaker    *gobreaker.CircuitBreaker
}

func NewRadarLoop(f *Fetcher, urlPattern string, frames int) *RadarLoop {
	return &RadarLoop{
		fetcher:    f,
		urlPattern: urlPattern,
		frames:     frames,
		frameDelay: 50,
		breaker:    newBreaker("radar_loop"),
	}
}

// BuildGIF fetches all frames concurrently and encodes them as one looping
// GIF.
func (r *RadarLoop) BuildGIF(ctx context.Context) ([]byte, error) {
	raw := make([][]byte, r.frames)
	var wg sync.WaitGroup
	for i := 0; i < r.frames; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			url := fmt.Sprintf(r.urlPattern, i+1)
			data, _, err := r.fetcher.Get(ctx, url, r.breaker)
			if err != nil {
				log.Printf("radar: frame %d fetch failed: %v", i+1, err)
				return
			}
			raw[i] = data
		}(i)
	}
	wg.Wait()

	anim := &gif.GIF{}
	for _, data := range raw {
		if data == nil {
			continue
		}
		img, _, err := image.Decode(bytes.NewReader(data))
		if err != nil {
			log.Printf("radar: frame decode failed: %v", err)
			continue
		}
		paletted := image.NewPaletted(img.Bounds(), palette.Plan9)
		draw.FloydSteinberg.Draw(paletted, img.Bounds(), img, image.Point{})
		anim.Image = append(anim.Image, paletted)
		anim.Delay = append(anim.Delay, r.frameDelay)
	}
	if len(anim.Image) == 0 {
		return nil, &weather.FetchError{
			Kind: weather.FetchUnreachable,
			Err:  fmt.Errorf("no radar frames available"),
		}
	}

	var buf bytes.Buffer
	if err := gif.EncodeAll(&buf, anim); err != nil {
		return nil, fmt.Errorf("encode radar gif: %w", err)
	}
	return buf.Bytes(), nil
}
