package service

import "github.com/prometheus/client_golang/prometheus"

var (
	loginTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "tracker_logins_total", Help: "Login attempts by result"},
		[]string{"result"},
	)
	registerTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "tracker_registrations_total", Help: "Registrations by result"},
		[]string{"result"},
	)
	recordOpsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "tracker_record_mutations_total", Help: "Record store mutations"},
		[]string{"op"},
	)
	exportTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "tracker_exports_total", Help: "Exports by kind/format/result"},
		[]string{"kind", "format", "result"},
	)
)

func init() { prometheus.MustRegister(loginTotal, registerTotal, recordOpsTotal, exportTotal) }

func result(err error) string {
	if err != nil {
		return "error"
	}
	return "ok"
}
