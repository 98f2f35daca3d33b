package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics for the application.
type Metrics struct {
	BarcodesGenerated *prometheus.CounterVec
	BarcodesDecoded   *prometheus.CounterVec
	PayloadBytes      prometheus.Histogram
	PhotoOutcome      *prometheus.CounterVec
	SymbolTier        *prometheus.CounterVec
	DecodeWarnings    *prometheus.CounterVec
	EndpointLatency   *prometheus.HistogramVec
}

// New creates and registers all Prometheus metrics.
func New() *Metrics {
	return &Metrics{
		BarcodesGenerated: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "permis_barcodes_generated_total",
			Help: "Total number of barcode generation attempts, labeled by outcome",
		}, []string{"outcome"}),
		BarcodesDecoded: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "permis_barcodes_decoded_total",
			Help: "Total number of barcode decode attempts, labeled by outcome",
		}, []string{"outcome"}),
		PayloadBytes: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "permis_barcode_payload_bytes",
			Help:    "Packed payload size in bytes",
			Buckets: []float64{100, 200, 300, 400, 500, 600, 700, 800},
		}),
		PhotoOutcome: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "permis_photo_compression_total",
			Help: "Photo compression outcomes, labeled by stage (quality, scale, lossless, none)",
		}, []string{"stage"}),
		SymbolTier: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "permis_symbol_tier_selected_total",
			Help: "Symbol encoding tier that produced the final image",
		}, []string{"tier"}),
		DecodeWarnings: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "permis_decode_warnings_total",
			Help: "Non-fatal validation warnings raised during decode, labeled by kind",
		}, []string{"kind"}),
		EndpointLatency: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "permis_endpoint_latency_seconds",
			Help:    "Latency of endpoints in seconds",
			Buckets: prometheus.DefBuckets,
		}, []string{"endpoint"}),
	}
}
