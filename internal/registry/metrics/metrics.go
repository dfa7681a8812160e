package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type Metrics struct {
	PatientsRegistered prometheus.Counter
	PatientsVerified   prometheus.Counter
	DonorsRegistered   prometheus.Counter
	DonorsVerified     prometheus.Counter
}

func New() *Metrics {
	return &Metrics{
		PatientsRegistered: promauto.NewCounter(prometheus.CounterOpts{
			Name: "allograft_patients_registered_total",
			Help: "Total number of patients registered",
		}),
		PatientsVerified: promauto.NewCounter(prometheus.CounterOpts{
			Name: "allograft_patients_verified_total",
			Help: "Total number of patients verified onto the waiting list",
		}),
		DonorsRegistered: promauto.NewCounter(prometheus.CounterOpts{
			Name: "allograft_donors_registered_total",
			Help: "Total number of donors registered",
		}),
		DonorsVerified: promauto.NewCounter(prometheus.CounterOpts{
			Name: "allograft_donors_verified_total",
			Help: "Total number of donors verified onto the waiting list",
		}),
	}
}

// RegisterStoreGauges exposes live record counts sampled from the stores on
// each scrape.
func RegisterStoreGauges(patients, donors func() int) {
	promauto.NewGaugeFunc(prometheus.GaugeOpts{
		Name: "allograft_patient_records",
		Help: "Current number of patient records",
	}, func() float64 { return float64(patients()) })
	promauto.NewGaugeFunc(prometheus.GaugeOpts{
		Name: "allograft_donor_records",
		Help: "Current number of donor records",
	}, func() float64 { return float64(donors()) })
}
