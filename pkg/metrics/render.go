package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// PDFRenderMetrics records metadata for PDF generation.
type PDFRenderMetrics struct {
	duration *prometheus.HistogramVec
	pages    *prometheus.HistogramVec
	success  *prometheus.CounterVec
	failure  *prometheus.CounterVec
}

// NewPDFRenderMetrics registers the PDF render metrics on the provided registerer.
func NewPDFRenderMetrics(reg prometheus.Registerer) *PDFRenderMetrics {
	if reg == nil {
		return &PDFRenderMetrics{}
	}
	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "pdf_render_duration_seconds",
		Help:    "Duration of PDF renders in seconds.",
		Buckets: prometheus.DefBuckets,
	}, []string{"document_type"})
	pages := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "pdf_render_pages",
		Help:    "Page count of rendered PDFs.",
		Buckets: []float64{1, 2, 3, 5, 10, 25, 50},
	}, []string{"document_type"})
	success := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "pdf_render_success",
		Help: "Successful PDF renders.",
	}, []string{"document_type"})
	failure := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "pdf_render_failure",
		Help: "Failed PDF renders.",
	}, []string{"document_type"})
	reg.MustRegister(duration, pages, success, failure)
	return &PDFRenderMetrics{
		duration: duration,
		pages:    pages,
		success:  success,
		failure:  failure,
	}
}

// ObserveRender records duration and page count for a completed render.
func (m *PDFRenderMetrics) ObserveRender(documentType string, duration time.Duration, pageCount int) {
	if m == nil || m.duration == nil {
		return
	}
	label := normalizeLabel(documentType)
	m.duration.WithLabelValues(label).Observe(duration.Seconds())
	m.pages.WithLabelValues(label).Observe(float64(pageCount))
}

// IncSuccess increments the success counter for the document type.
func (m *PDFRenderMetrics) IncSuccess(documentType string) {
	if m == nil || m.success == nil {
		return
	}
	m.success.WithLabelValues(normalizeLabel(documentType)).Inc()
}

// IncFailure increments the failure counter for the document type.
func (m *PDFRenderMetrics) IncFailure(documentType string) {
	if m == nil || m.failure == nil {
		return
	}
	m.failure.WithLabelValues(normalizeLabel(documentType)).Inc()
}

func normalizeLabel(documentType string) string {
	if documentType == "" {
		return "unknown"
	}
	return documentType
}
