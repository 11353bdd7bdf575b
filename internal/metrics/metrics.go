// Package metrics exposes report figures as Prometheus gauges and writes them
// in the node_exporter textfile format.
package metrics

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const defaultNamespace = "drinklog"

// Snapshot is the subset of a report that is exported as metrics.
type Snapshot struct {
	Period         string
	PureAlcoholG   float64
	VolumeMl       float64
	Records        int
	DrinkingDays   int
	RestDays       int
	GoalLimitG     float64
	GoalUsedPct    float64
	GoalSeverity   string
	RestDaysTarget int
}

var severities = []string{"ok", "approaching", "exceeded"}

type Manager struct {
	namespace string
	registry  *prometheus.Registry

	pureAlcohol  *prometheus.GaugeVec
	volume       *prometheus.GaugeVec
	records      *prometheus.GaugeVec
	drinkingDays *prometheus.GaugeVec
	restDays     *prometheus.GaugeVec
	restTarget   *prometheus.GaugeVec
	goalLimit    *prometheus.GaugeVec
	goalUsed     *prometheus.GaugeVec
	goalSeverity *prometheus.GaugeVec
}

type Option func(*Manager)

func WithNamespace(namespace string) Option {
	return func(m *Manager) {
		if namespace != "" {
			m.namespace = namespace
		}
	}
}

// NewManager registers all gauges on a private registry.
func NewManager(opts ...Option) *Manager {
	m := &Manager{namespace: defaultNamespace, registry: prometheus.NewRegistry()}
	for _, opt := range opts {
		opt(m)
	}

	auto := promauto.With(m.registry)
	gauge := func(name, help string, labels ...string) *prometheus.GaugeVec {
		return auto.NewGaugeVec(prometheus.GaugeOpts{Namespace: m.namespace, Name: name, Help: help}, labels)
	}
	m.pureAlcohol = gauge("pure_alcohol_grams", "Pure alcohol consumed in the period.", "period")
	m.volume = gauge("volume_ml", "Beverage volume consumed in the period.", "period")
	m.records = gauge("records", "Drinks logged in the period.", "period")
	m.drinkingDays = gauge("drinking_days", "Days with at least one drink.", "period")
	m.restDays = gauge("rest_days", "Elapsed days without drinks.", "period")
	m.restTarget = gauge("rest_days_target", "Rest days the goal asks for.", "period")
	m.goalLimit = gauge("goal_limit_grams", "Goal limit for the period.", "period")
	m.goalUsed = gauge("goal_used_percent", "Share of the goal limit consumed.", "period")
	m.goalSeverity = gauge("goal_severity", "1 for the current goal severity, 0 otherwise.", "period", "severity")
	return m
}

func (m *Manager) Registry() *prometheus.Registry {
	return m.registry
}

func (m *Manager) Record(s Snapshot) {
	p := s.Period
	m.pureAlcohol.WithLabelValues(p).Set(s.PureAlcoholG)
	m.volume.WithLabelValues(p).Set(s.VolumeMl)
	m.records.WithLabelValues(p).Set(float64(s.Records))
	m.drinkingDays.WithLabelValues(p).Set(float64(s.DrinkingDays))
	m.restDays.WithLabelValues(p).Set(float64(s.RestDays))
	m.restTarget.WithLabelValues(p).Set(float64(s.RestDaysTarget))
	m.goalLimit.WithLabelValues(p).Set(s.GoalLimitG)
	m.goalUsed.WithLabelValues(p).Set(s.GoalUsedPct)
	for _, sev := range severities {
		v := 0.0
		if sev == s.GoalSeverity {
			v = 1
		}
		m.goalSeverity.WithLabelValues(p, sev).Set(v)
	}
}

// WriteTextfile atomically writes all gathered metrics to path.
func (m *Manager) WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, m.registry); err != nil {
		return fmt.Errorf("write metrics textfile: %w", err)
	}
	return nil
}
