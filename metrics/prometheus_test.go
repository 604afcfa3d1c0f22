package metrics

import (
	"io"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrometheus_Counter(t *testing.T) {
	p := NewPrometheus("imgprobe").WithPrefix("probe")
	labels := Labels{"mode": "image"}

	p.Counter("probes", labels.With("result", "ok")).Inc()
	p.Counter("probes", labels.With("result", "ok")).Inc()
	p.Counter("probes", labels.With("result", "failed")).Add(3)
	p.Counter("transferred_bytes", labels).Add(1024)

	count, err := testutil.GatherAndCount(p.Gatherer(), "imgprobe_probe_probes")
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	rec := httptest.NewRecorder()
	p.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))
	body, err := io.ReadAll(rec.Result().Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), `imgprobe_probe_probes{mode="image",result="ok"} 2`)
	assert.Contains(t, string(body), `imgprobe_probe_probes{mode="image",result="failed"} 3`)
	assert.Contains(t, string(body), `imgprobe_probe_transferred_bytes{mode="image"} 1024`)
}

func TestPrometheus_Gauge(t *testing.T) {
	p := NewPrometheus("test")
	g := p.Gauge("in_flight", nil)
	g.Inc()
	g.Inc()
	g.Dec()
	assert.Same(t, g, p.Gauge("in_flight", nil))

	count, err := testutil.GatherAndCount(p.Gatherer(), "test_in_flight")
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestLabels(t *testing.T) {
	labels := Labels{"b": "2", "a": "1"}
	with := labels.With("c", "3")
	assert.Equal(t, []string{"a", "b"}, labels.Keys())
	assert.Equal(t, []string{"a", "b", "c"}, with.Keys())
}
