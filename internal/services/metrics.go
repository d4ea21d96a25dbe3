package services

import "github.com/prometheus/client_golang/prometheus"

// Submission kinds and outcomes used as label values.
const (
	kindContact    = "contact"
	kindNewsletter = "newsletter"
	kindDemo       = "demo"

	outcomeAccepted = "accepted"
	outcomeInvalid  = "invalid"
	outcomeConflict = "conflict"
	outcomeError    = "error"
)

// submissionsTotal counts gateway decisions by kind and outcome. Both label
// sets are closed so cardinality stays fixed.
var submissionsTotal = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "submissions_total",
		Help: "Submissions handled by the gateway, by kind and outcome.",
	},
	[]string{"kind", "outcome"},
)

func init() {
	prometheus.MustRegister(submissionsTotal)
}

func observe(kind string, err error) {
	submissionsTotal.WithLabelValues(kind, outcomeOf(err)).Inc()
}

func outcomeOf(err error) string {
	switch {
	case err == nil:
		return outcomeAccepted
	case isValidation(err):
		return outcomeInvalid
	case isConflict(err):
		return outcomeConflict
	default:
		return outcomeError
	}
}
