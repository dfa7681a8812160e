package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type Metrics struct {
	Attempts prometheus.Counter
	Found    prometheus.Counter
	Rejected prometheus.Counter
}

func New() *Metrics {
	return &Metrics{
		Attempts: promauto.NewCounter(prometheus.CounterOpts{
			Name: "allograft_match_attempts_total",
			Help: "Total number of pairing attempts",
		}),
		Found: promauto.NewCounter(prometheus.CounterOpts{
			Name: "allograft_matches_found_total",
			Help: "Total number of committed donor-patient matches",
		}),
		Rejected: promauto.NewCounter(prometheus.CounterOpts{
			Name: "allograft_match_screening_rejections_total",
			Help: "Total number of attempts rejected by screening",
		}),
	}
}

// RegisterStoreGauges exposes the live committed-match count sampled from the
// store on each scrape.
func RegisterStoreGauges(matches func() int) {
	promauto.NewGaugeFunc(prometheus.GaugeOpts{
		Name: "allograft_committed_matches",
		Help: "Current number of committed donor-patient matches",
	}, func() float64 { return float64(matches()) })
}
