package metrics

import "github.com/prometheus/client_golang/prometheus"

// Metrics holds the counters exported on /metrics.
type Metrics struct {
	AnalysisRequests *prometheus.CounterVec
	Submissions      *prometheus.CounterVec
	StorageOps       *prometheus.CounterVec
}

// New registers the service counters with reg.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		AnalysisRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "coursemap",
			Name:      "analysis_requests_total",
			Help:      "Course analysis requests by outcome.",
		}, []string{"outcome"}),
		Submissions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "coursemap",
			Name:      "course_submissions_total",
			Help:      "Course form batch submissions by outcome.",
		}, []string{"outcome"}),
		StorageOps: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "coursemap",
			Name:      "storage_operations_total",
			Help:      "Storage slot operations by operation and outcome.",
		}, []string{"op", "outcome"}),
	}
	reg.MustRegister(m.AnalysisRequests, m.Submissions, m.StorageOps)
	return m
}

// Outcome labels.
const (
	OutcomeOK      = "ok"
	OutcomeFailed  = "failed"
	OutcomeInvalid = "invalid"
	OutcomeMissing = "missing"
)

func (m *Metrics) analysis(outcome string) {
	if m == nil {
		return
	}
	m.AnalysisRequests.WithLabelValues(outcome).Inc()
}

// AnalysisRequest records one analyzer call.
func (m *Metrics) AnalysisRequest(err error) {
	if err != nil {
		m.analysis(OutcomeFailed)
		return
	}
	m.analysis(OutcomeOK)
}

// Submission records a batch outcome.
func (m *Metrics) Submission(outcome string) {
	if m == nil {
		return
	}
	m.Submissions.WithLabelValues(outcome).Inc()
}

// Storage records a storage slot operation.
func (m *Metrics) Storage(op, outcome string) {
	if m == nil {
		return
	}
	m.StorageOps.WithLabelValues(op, outcome).Inc()
}
