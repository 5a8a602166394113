package service

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/Aashish23092/ocr-document-verifier/dto"
)

// Metrics holds the extraction counters. A nil *Metrics records nothing.
type Metrics struct {
	classified *prometheus.CounterVec
	duration   *prometheus.HistogramVec
	verified   *prometheus.CounterVec
}

func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		classified: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "documents_classified_total",
				Help: "Total number of documents classified, by detected type.",
			},
			[]string{"document_type"},
		),
		duration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "document_extraction_seconds",
				Help:    "Time spent turning an uploaded file into a field record.",
				Buckets: []float64{0.1, 0.25, 0.5, 1, 2, 5, 10, 30},
			},
			[]string{"source"},
		),
		verified: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "documents_verified_total",
				Help: "Total number of registry verifications, by document type and outcome.",
			},
			[]string{"document_type", "outcome"},
		),
	}

	if err := reg.Register(m.classified); err != nil {
		return nil, err
	}
	if err := reg.Register(m.duration); err != nil {
		return nil, err
	}
	if err := reg.Register(m.verified); err != nil {
		return nil, err
	}
	return m, nil
}

func (m *Metrics) observe(docType dto.DocumentType, source string, seconds float64) {
	if m == nil {
		return
	}
	m.classified.WithLabelValues(string(docType)).Inc()
	m.duration.WithLabelValues(source).Observe(seconds)
}

func (m *Metrics) observeVerification(docType dto.DocumentType, valid bool) {
	if m == nil {
		return
	}
	outcome := "suspicious"
	if valid {
		outcome = "valid"
	}
	m.verified.WithLabelValues(string(docType), outcome).Inc()
}
