// Package probe determines size, media type and, for images, dimensions and
// format of remote resources while transferring as little data as possible.
//
// Images are fetched with GET and the body is read only until the image header
// can be parsed; the connection is then closed. Other resources are probed
// with HEAD and never transfer a body.
package probe

import (
	"context"
	"net/http"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"imgprobe/common/logx"
	"imgprobe/metrics"
)

// DefaultConcurrency limits parallel probes in FetchAll when Client.Concurrency is not set.
const DefaultConcurrency = 4

// Client probes remote resources. The zero value is ready to use.
// A Client is safe for concurrent use; probes share nothing but the
// underlying HTTP client and metrics.
type Client struct {

	// HTTP is the transport. http.DefaultClient is used if nil.
	HTTP *http.Client

	// Log receives probe outcomes. logx.Get("probe") is used if nil.
	Log logrus.FieldLogger

	// Metrics receives probe counters. metrics.Dummy is used if nil.
	Metrics metrics.Registry

	// Concurrency limits parallel probes in FetchAll.
	Concurrency int
}

// DefaultClient is used by FetchInfo.
var DefaultClient = new(Client)

// FetchInfo probes url with DefaultClient.
func FetchInfo(ctx context.Context, url string, options Options) (*Result, error) {
	return DefaultClient.FetchInfo(ctx, url, options)
}

// FetchInfo probes url. URLs with image extensions (or any URL when
// options.ForceImage is set) are probed as images, others with HEAD.
//
// Errors are returned as *httpx.StatusCodeError for responses other than
// 200 OK, or as imagesize errors when the header cannot be parsed from the
// received data. Transport errors are returned as net/http produced them:
// failed requests come wrapped in *url.Error, so use errors.As to reach the
// cause (e.g. *net.DNSError). Body read errors are returned unwrapped.
func (c *Client) FetchInfo(ctx context.Context, url string, options Options) (*Result, error) {
	var (
		mode        = Classify(url, options.ForceImage)
		result      *Result
		transferred int64
		err         error
	)

	inFlight := c.metrics().Gauge("in_flight", metrics.Labels{"mode": mode.String()})
	inFlight.Inc()
	defer inFlight.Dec()

	switch mode {
	case ImageMode:
		result, transferred, err = c.fetchImage(ctx, url, options)
	default:
		result, err = c.fetchHeaders(ctx, url)
	}

	c.record(url, mode, transferred, err)
	return result, err
}

// Outcome is a result of a single probe in FetchAll.
type Outcome struct {
	URL    string
	Result *Result
	Err    error
}

// FetchAll probes urls concurrently. Outcomes are returned in the order of urls.
// A failed probe does not affect the others.
func (c *Client) FetchAll(ctx context.Context, urls []string, options Options) []Outcome {
	outcomes := make([]Outcome, len(urls))
	var group errgroup.Group
	group.SetLimit(c.concurrency())
	for i, url := range urls {
		i, url := i, url
		outcomes[i].URL = url
		group.Go(func() error {
			outcomes[i].Result, outcomes[i].Err = c.FetchInfo(ctx, url, options)
			return nil
		})
	}

	_ = group.Wait()
	return outcomes
}

func (c *Client) record(url string, mode Mode, transferred int64, err error) {
	log := c.log().WithFields(logrus.Fields{"url": url, "mode": mode.String(), "bytes": transferred})
	labels := metrics.Labels{"mode": mode.String()}
	c.metrics().Counter("transferred_bytes", labels).Add(float64(transferred))
	if err != nil {
		log.Warnf("probe: %s", err)
		c.metrics().Counter("probes", labels.With("result", "failed")).Inc()
	} else {
		log.Debug("probe: ok")
		c.metrics().Counter("probes", labels.With("result", "ok")).Inc()
	}
}

func (c *Client) http() *http.Client {
	if c.HTTP != nil {
		return c.HTTP
	}

	return http.DefaultClient
}

func (c *Client) log() logrus.FieldLogger {
	if c.Log != nil {
		return c.Log
	}

	return logx.Get("probe")
}

func (c *Client) metrics() metrics.Registry {
	if c.Metrics != nil {
		return c.Metrics
	}

	return metrics.Dummy
}

func (c *Client) concurrency() int {
	if c.Concurrency > 0 {
		return c.Concurrency
	}

	return DefaultConcurrency
}
