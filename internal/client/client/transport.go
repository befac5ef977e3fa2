package client

import (
	"net/http"
	"time"

	"github.com/dmitrijs2005/mesto/internal/common"
	"github.com/dmitrijs2005/mesto/internal/logging"
	"github.com/google/uuid"
	"golang.org/x/time/rate"
)

// transport throttles outgoing requests, tags each with a request id and
// logs the exchange at debug level.
type transport struct {
	base    http.RoundTripper
	limiter *rate.Limiter
	log     logging.Logger
}

func newTransport(base http.RoundTripper, rps float64, log logging.Logger) *transport {
	if base == nil {
		base = http.DefaultTransport
	}
	t := &transport{base: base, log: log}
	if rps > 0 {
		t.limiter = rate.NewLimiter(rate.Limit(rps), 1)
	}
	return t
}

func (t *transport) RoundTrip(req *http.Request) (*http.Response, error) {
	ctx := req.Context()

	if t.limiter != nil {
		if err := t.limiter.Wait(ctx); err != nil {
			return nil, err
		}
	}

	req = req.Clone(ctx)
	id := req.Header.Get(common.RequestIDHeaderName)
	if id == "" {
		id = uuid.NewString()
		req.Header.Set(common.RequestIDHeaderName, id)
	}

	start := time.Now()
	resp, err := t.base.RoundTrip(req)
	if err != nil {
		t.log.Debug(ctx, "http request failed",
			"method", req.Method, "path", req.URL.Path, "request_id", id, "err", err)
		return nil, err
	}

	t.log.Debug(ctx, "http request",
		"method", req.Method, "path", req.URL.Path, "status", resp.StatusCode,
		"request_id", id, "duration", time.Since(start))
	return resp, nil
}
