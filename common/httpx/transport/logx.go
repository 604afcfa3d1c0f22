package transport

import (
	"net/http"
	"strconv"
	"sync/atomic"
	"time"

	"github.com/sirupsen/logrus"
)

// Logx logs requests and responses. It never touches bodies.
type Logx struct {
	http.RoundTripper
	Log logrus.FieldLogger
	ids uint64
}

func (t *Logx) RoundTrip(req *http.Request) (*http.Response, error) {
	var (
		id    = strconv.FormatUint(atomic.AddUint64(&t.ids, 1), 36)
		log   = t.Log.WithFields(logrus.Fields{"id": id, "method": req.Method, "url": req.URL.String()})
		start = time.Now()
	)

	log.Debug("request")
	resp, err := t.RoundTripper.RoundTrip(req)
	log = log.WithField("duration", time.Since(start).Round(time.Millisecond).String())
	if err != nil {
		log.Warnf("request failed: %s", err)
		return nil, err
	}

	log.WithFields(logrus.Fields{
		"status":         resp.StatusCode,
		"content_length": resp.ContentLength,
		"content_type":   resp.Header.Get("Content-Type"),
	}).Debug("response")

	return resp, nil
}
