package sources

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/sony/gobreaker"

	"github.com/jerseymet/weather-aggregation/internal/weather"
)

// Fetcher performs one HTTP GET against one endpoint with a bounded timeout
// and a response-size cap. It never retries: retry policy belongs to the
// poll schedule.
type Fetcher struct {
	client  *resty.Client
	maxBody int64
}

// NewFetcher creates a Fetcher. maxBody caps the response body in bytes to
// keep a misbehaving endpoint (image endpoints especially) from growing
// memory without bound.
func NewFetcher(timeout time.Duration, maxBody int64) *Fetcher {
	client := resty.New().
		SetTimeout(timeout).
		SetRetryCount(0).
		SetDoNotParseResponse(true).
		SetHeader("User-Agent", "jerseymet-aggregator/1.0")
	return &Fetcher{client: client, maxBody: maxBody}
}

// newBreaker builds the per-source circuit breaker. An upstream that keeps
// failing is short-circuited until the breaker half-opens; the coordinator
// still counts the skipped cycles as failures.
func newBreaker(name string) *gobreaker.CircuitBreaker {
	return gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        name,
		MaxRequests: 1,
		Interval:    5 * time.Minute,
		Timeout:     10 * time.Minute,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
	})
}

// Get fetches one URL through the given breaker, returning the body bytes
// and response headers, or a typed *weather.FetchError.
func (f *Fetcher) Get(ctx context.Context, rawURL string, cb *gobreaker.CircuitBreaker) ([]byte, http.Header, error) {
	type fetched struct {
		body   []byte
		header http.Header
	}

	result, err := cb.Execute(func() (interface{}, error) {
		resp, err := f.client.R().
			SetContext(ctx).
			Get(rawURL)
		if err != nil {
			return nil, classifyTransportErr(err)
		}
		defer resp.RawBody().Close()

		if code := resp.StatusCode(); code < 200 || code >= 300 {
			return nil, &weather.FetchError{Kind: weather.FetchHTTPStatus, Status: code}
		}

		body, err := io.ReadAll(io.LimitReader(resp.RawBody(), f.maxBody+1))
		if err != nil {
			return nil, classifyTransportErr(err)
		}
		if int64(len(body)) > f.maxBody {
			return nil, &weather.FetchError{
				Kind: weather.FetchUnreachable,
				Err:  fmt.Errorf("response body exceeds %d byte cap", f.maxBody),
			}
		}
		return fetched{body: body, header: resp.Header()}, nil
	})
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			return nil, nil, &weather.FetchError{Kind: weather.FetchUnreachable, Err: err}
		}
		var fe *weather.FetchError
		if errors.As(err, &fe) {
			return nil, nil, fe
		}
		return nil, nil, &weather.FetchError{Kind: weather.FetchUnreachable, Err: err}
	}

	r := result.(fetched)
	return r.body, r.header, nil
}

func classifyTransportErr(err error) *weather.FetchError {
	if errors.Is(err, context.DeadlineExceeded) {
		return &weather.FetchError{Kind: weather.FetchTimeout, Err: err}
	}
	var ue *url.Error
	if errors.As(err, &ue) && ue.Timeout() {
		return &weather.FetchError{Kind: weather.FetchTimeout, Err: err}
	}
	var ne interface{ Timeout() bool }
	if errors.As(err, &ne) && ne.Timeout() {
		return &weather.FetchError{Kind: weather.FetchTimeout, Err: err}
	}
	return &weather.FetchError{Kind: weather.FetchUnreachable, Err: err}
}
