// Package metrics keeps prometheus collectors for the storage use cases on a
// private registry.
package metrics

import (
	"sort"
	"time"

	"github.com/alexanderramin/proposals/internal/domain"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	dto "github.com/prometheus/client_model/go"
)

const useCasesTotalName = "proposals_use_cases_total"

// Metrics holds the collectors. The zero value is not usable; call New.
type Metrics struct {
	Registry *prometheus.Registry

	UseCasesTotal   *prometheus.CounterVec
	UseCaseDuration *prometheus.HistogramVec

	StoredProposals prometheus.Gauge
	StoredVersions  prometheus.Gauge
	DocumentBytes   *prometheus.GaugeVec
}

// New creates the collectors and registers them on a fresh registry.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Metrics{
		Registry: reg,
		UseCasesTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: useCasesTotalName,
				Help: "Storage use cases executed, by outcome",
			},
			[]string{"use_case", "status"},
		),
		UseCaseDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "proposals_use_case_duration_seconds",
				Help:    "Duration of storage use cases in seconds",
				Buckets: []float64{.0005, .001, .005, .01, .025, .05, .1, .25, .5, 1},
			},
			[]string{"use_case"},
		),
		StoredProposals: factory.NewGauge(prometheus.GaugeOpts{
			Name: "proposals_stored",
			Help: "Proposals currently stored",
		}),
		StoredVersions: factory.NewGauge(prometheus.GaugeOpts{
			Name: "proposals_versions_stored",
			Help: "Archived versions currently stored",
		}),
		DocumentBytes: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "proposals_document_bytes",
				Help: "Bytes of rendered documents held, current or history",
			},
			[]string{"area"},
		),
	}
}

// RecordUseCase counts one execution and observes its duration.
func (m *Metrics) RecordUseCase(name string, success bool, d time.Duration) {
	status := "success"
	if !success {
		status = "error"
	}
	m.UseCasesTotal.WithLabelValues(name, status).Inc()
	m.UseCaseDuration.WithLabelValues(name).Observe(d.Seconds())
}

// SetUsage publishes a storage usage reading.
func (m *Metrics) SetUsage(u domain.StorageUsage) {
	m.StoredProposals.Set(float64(u.Proposals))
	m.StoredVersions.Set(float64(u.Versions))
	m.DocumentBytes.WithLabelValues("current").Set(float64(u.CurrentBytes))
	m.DocumentBytes.WithLabelValues("history").Set(float64(u.HistoryBytes))
}

// UseCaseCount is one row of the use-case counter.
type UseCaseCount struct {
	UseCase string
	Status  string
	Count   float64
}

// UseCaseCounts gathers the registry and returns the use-case counters
// sorted by use case then status.
func (m *Metrics) UseCaseCounts() ([]UseCaseCount, error) {
	families, err := m.Registry.Gather()
	if err != nil {
		return nil, err
	}
	var out []UseCaseCount
	for _, fam := range families {
		if fam.GetName() != useCasesTotalName {
			continue
		}
		for _, metric := range fam.GetMetric() {
			out = append(out, UseCaseCount{
				UseCase: labelValue(metric, "use_case"),
				Status:  labelValue(metric, "status"),
				Count:   metric.GetCounter().GetValue(),
			})
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].UseCase != out[j].UseCase {
			return out[i].UseCase < out[j].UseCase
		}
		return out[i].Status < out[j].Status
	})
	return out, nil
}

func labelValue(m *dto.Metric, name string) string {
	for _, lp := range m.GetLabel() {
		if lp.GetName() == name {
			return lp.GetValue()
		}
	}
	return ""
}
