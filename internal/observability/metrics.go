package observability

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "phenopackets"

var (
	registerOnce sync.Once

	codecOperations = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "codec",
			Name:      "operations_total",
			Help:      "Encode and decode operations by codec and result.",
		},
		[]string{"codec", "op", "result"},
	)
	codecDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "codec",
			Name:      "duration_seconds",
			Help:      "Encode and decode duration in seconds.",
			Buckets:   prometheus.ExponentialBuckets(0.00001, 4, 10),
		},
		[]string{"codec", "op"},
	)
	codecBytes = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "codec",
			Name:      "payload_bytes",
			Help:      "Size of encoded payloads produced or consumed.",
			Buckets:   prometheus.ExponentialBuckets(64, 4, 8),
		},
		[]string{"codec", "op"},
	)
	registryTypes = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "registry",
			Name:      "types",
			Help:      "Registered types by kind, and resolvable aliases.",
		},
		[]string{"kind"},
	)
	storeOperations = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "store",
			Name:      "operations_total",
			Help:      "Packet store operations by result.",
		},
		[]string{"op", "result"},
	)
)

func RegisterMetrics() {
	registerOnce.Do(func() {
		prometheus.MustRegister(codecOperations, codecDuration, codecBytes, registryTypes, storeOperations)
	})
}

func result(err error) string {
	if err != nil {
		return "error"
	}
	return "ok"
}

// RecordCodec records one codec call. size is the encoded payload length.
func RecordCodec(codec, op string, size int, duration time.Duration, err error) {
	RegisterMetrics()
	codecOperations.WithLabelValues(codec, op, result(err)).Inc()
	codecDuration.WithLabelValues(codec, op).Observe(duration.Seconds())
	if err == nil {
		codecBytes.WithLabelValues(codec, op).Observe(float64(size))
	}
}

func RecordRegistry(messages, enums, aliases int) {
	RegisterMetrics()
	registryTypes.WithLabelValues("message").Set(float64(messages))
	registryTypes.WithLabelValues("enum").Set(float64(enums))
	registryTypes.WithLabelValues("alias").Set(float64(aliases))
}

func RecordStore(op string, err error) {
	RegisterMetrics()
	storeOperations.WithLabelValues(op, result(err)).Inc()
}
