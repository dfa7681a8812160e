package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type Metrics struct {
	Donations   prometheus.Counter
	Deliveries  prometheus.Counter
	Receipts    prometheus.Counter
	Transplants prometheus.Counter
}

func New() *Metrics {
	return &Metrics{
		Donations: promauto.NewCounter(prometheus.CounterOpts{
			Name: "allograft_donations_total",
			Help: "Total number of completed donation surgeries",
		}),
		Deliveries: promauto.NewCounter(prometheus.CounterOpts{
			Name: "allograft_deliveries_total",
			Help: "Total number of organ deliveries",
		}),
		Receipts: promauto.NewCounter(prometheus.CounterOpts{
			Name: "allograft_receipts_total",
			Help: "Total number of confirmed organ receipts",
		}),
		Transplants: promauto.NewCounter(prometheus.CounterOpts{
			Name: "allograft_transplants_total",
			Help: "Total number of completed transplant surgeries",
		}),
	}
}

// RegisterStoreGauges exposes the live pipeline size sampled from the organ
// store on each scrape.
func RegisterStoreGauges(organs func() int) {
	promauto.NewGaugeFunc(prometheus.GaugeOpts{
		Name: "allograft_organs_in_pipeline",
		Help: "Current number of organs in the surgical pipeline",
	}, func() float64 { return float64(organs()) })
}
