package metrics

import (
	"net/http"
	"sync"

	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type key struct {
	namespace string
	name      string
}

// Prometheus is a Registry backed by its own prometheus.Registry.
// Metric vectors are created on first use; subsequent calls with the same name
// must use the same label names.
type Prometheus struct {
	prefix   string
	registry *prometheus.Registry
	entries  map[key]interface{}
	mu       *sync.Mutex
}

func NewPrometheus(prefix string) *Prometheus {
	return &Prometheus{
		prefix:   prefix,
		registry: prometheus.NewRegistry(),
		entries:  make(map[key]interface{}),
		mu:       new(sync.Mutex),
	}
}

// WithPrefix returns a view of the same registry with prefix appended to the namespace.
func (p *Prometheus) WithPrefix(prefix string) *Prometheus {
	view := *p
	if view.prefix != "" {
		view.prefix += "_" + prefix
	} else {
		view.prefix = prefix
	}

	return &view
}

// Handler serves the registry in Prometheus exposition format.
func (p *Prometheus) Handler() http.Handler {
	return promhttp.HandlerFor(p.registry, promhttp.HandlerOpts{Registry: p.registry})
}

// Gatherer exposes the underlying registry.
func (p *Prometheus) Gatherer() prometheus.Gatherer {
	return p.registry
}

func (p *Prometheus) Counter(name string, labels Labels) Counter {
	entry := p.entry(name, labels, func() prometheus.Collector {
		opts := prometheus.CounterOpts{Namespace: p.prefix, Name: name}
		if labels == nil {
			return prometheus.NewCounter(opts)
		}

		return prometheus.NewCounterVec(opts, labels.Keys())
	})

	if vec, ok := entry.(*prometheus.CounterVec); ok {
		return vec.With(prometheus.Labels(labels))
	}

	return entry.(Counter)
}

func (p *Prometheus) Gauge(name string, labels Labels) Gauge {
	entry := p.entry(name, labels, func() prometheus.Collector {
		opts := prometheus.GaugeOpts{Namespace: p.prefix, Name: name}
		if labels == nil {
			return prometheus.NewGauge(opts)
		}

		return prometheus.NewGaugeVec(opts, labels.Keys())
	})

	if vec, ok := entry.(*prometheus.GaugeVec); ok {
		return vec.With(prometheus.Labels(labels))
	}

	return entry.(Gauge)
}

func (p *Prometheus) entry(name string, labels Labels, create func() prometheus.Collector) interface{} {
	key := key{p.prefix, name}
	p.mu.Lock()
	defer p.mu.Unlock()
	if entry, ok := p.entries[key]; ok {
		return entry
	}

	collector := create()
	if err := p.registry.Register(collector); err != nil {
		panic(errors.Wrapf(err, "register %s_%s", p.prefix, name))
	}

	p.entries[key] = collector
	return collector
}
