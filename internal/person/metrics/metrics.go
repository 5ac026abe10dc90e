package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for the person module.
// Tracks record mutations, validation rejections and listing latency.
type Metrics struct {
	PersonCreated    prometheus.Counter
	PersonUpdated    prometheus.Counter
	PersonDeleted    prometheus.Counter
	ValidationFailed prometheus.Counter
	ListDuration     prometheus.Histogram
	CacheHits        prometheus.Counter
	CacheMisses      prometheus.Counter
}

// New creates a new Metrics instance with all person module metrics registered.
func New() *Metrics {
	return &Metrics{
		PersonCreated: promauto.NewCounter(prometheus.CounterOpts{
			Name: "registru_people_created_total",
			Help: "Total number of person records created",
		}),
		PersonUpdated: promauto.NewCounter(prometheus.CounterOpts{
			Name: "registru_people_updated_total",
			Help: "Total number of person records updated",
		}),
		PersonDeleted: promauto.NewCounter(prometheus.CounterOpts{
			Name: "registru_people_deleted_total",
			Help: "Total number of person records deleted",
		}),
		ValidationFailed: promauto.NewCounter(prometheus.CounterOpts{
			Name: "registru_people_validation_failures_total",
			Help: "Total number of record mutations rejected by validation",
		}),
		ListDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "registru_people_list_duration_seconds",
			Help:    "Duration of listing queries (search, sort, paginate)",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		}),
		CacheHits: promauto.NewCounter(prometheus.CounterOpts{
			Name: "registru_person_cache_hits_total",
			Help: "Total number of person lookups served from cache",
		}),
		CacheMisses: promauto.NewCounter(prometheus.CounterOpts{
			Name: "registru_person_cache_misses_total",
			Help: "Total number of person lookups that missed the cache",
		}),
	}
}

// ObserveList records the duration of a listing query.
// Call with time.Now() at the start of the operation.
func (m *Metrics) ObserveList(start time.Time) {
	m.ListDuration.Observe(time.Since(start).Seconds())
}
