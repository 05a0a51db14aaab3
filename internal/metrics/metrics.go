// Package metrics aggregates per-frame statistics of a particle field.
package metrics

import (
	"sort"

	"github.com/san-kum/backdrop/internal/field"
)

type Metric interface {
	Name() string
	Observe(f field.Frame)
	Value() float64
	Reset()
}

// Set fans frames out to several metrics. It is a field.Observer.
type Set struct {
	metrics []Metric
}

func NewSet(ms ...Metric) *Set {
	return &Set{metrics: ms}
}

// Default returns the metrics shown by the terminal panel and the bench command.
func Default() *Set {
	return NewSet(NewLinks(historyCapacity), NewFrameRate(), NewParticles())
}

func (s *Set) OnFrame(f field.Frame) {
	for _, m := range s.metrics {
		m.Observe(f)
	}
}

func (s *Set) Reset() {
	for _, m := range s.metrics {
		m.Reset()
	}
}

// Get returns the metric with the given name, or nil.
func (s *Set) Get(name string) Metric {
	for _, m := range s.metrics {
		if m.Name() == name {
			return m
		}
	}
	return nil
}

// Values returns every metric value keyed by name.
func (s *Set) Values() map[string]float64 {
	out := make(map[string]float64, len(s.metrics))
	for _, m := range s.metrics {
		out[m.Name()] = m.Value()
	}
	return out
}

// Names returns the metric names in sorted order.
func (s *Set) Names() []string {
	names := make([]string, 0, len(s.metrics))
	for _, m := range s.metrics {
		names = append(names, m.Name())
	}
	sort.Strings(names)
	return names
}
