// Package metrics abstracts counters and gauges over a backend.
package metrics

import "sort"

type Registry interface {
	Counter(name string, labels Labels) Counter
	Gauge(name string, labels Labels) Gauge
}

type Counter interface {
	Inc()
	Add(float64)
}

type Gauge interface {
	Set(float64)
	Inc()
	Dec()
	Add(float64)
	Sub(float64)
}

type Labels map[string]string

// With returns a copy of labels with key set to value.
func (labels Labels) With(key, value string) Labels {
	result := make(Labels, len(labels)+1)
	for k, v := range labels {
		result[k] = v
	}

	result[key] = value
	return result
}

// Keys returns label names in sorted order.
func (labels Labels) Keys() []string {
	keys := make([]string, 0, len(labels))
	for key := range labels {
		keys = append(keys, key)
	}

	sort.Strings(keys)
	return keys
}
