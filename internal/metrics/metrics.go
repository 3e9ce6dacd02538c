package metrics

import (
	"net/http"
	"time"

	"menubot/internal/domain"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Recorder holds the bot's prometheus collectors.
// A nil Recorder records nothing.
type Recorder struct {
	messages *prometheus.CounterVec
	handoffs *prometheus.CounterVec
	duration prometheus.Histogram
	updates  *prometheus.CounterVec
}

// NewRecorder creates the collectors and registers them
func NewRecorder(reg prometheus.Registerer) *Recorder {
	r := &Recorder{
		messages: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "menubot_messages_total",
				Help: "Inbound messages by pipeline outcome",
			},
			[]string{"outcome"},
		),
		handoffs: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "menubot_handoffs_total",
				Help: "Attendance handoff triggers by result",
			},
			[]string{"result"},
		),
		duration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "menubot_pipeline_duration_seconds",
				Help:    "Duration of the per-message pipeline",
				Buckets: prometheus.DefBuckets,
			},
		),
		updates: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "menubot_updates_total",
				Help: "Transport updates handled, by status",
			},
			[]string{"status"},
		),
	}
	reg.MustRegister(r.messages, r.handoffs, r.duration, r.updates)
	return r
}

// ObserveMessage records the outcome and latency of one pipeline run; failed runs carry outcome "error"
func (r *Recorder) ObserveMessage(outcome domain.Outcome, err error, elapsed time.Duration) {
	if r == nil {
		return
	}
	label := string(outcome)
	if err != nil {
		label = "error"
	}
	r.messages.WithLabelValues(label).Inc()
	r.duration.Observe(elapsed.Seconds())

	switch outcome {
	case domain.OutcomeHandoffOpened:
		r.handoffs.WithLabelValues("opened").Inc()
	case domain.OutcomeHandoffSuppressed:
		r.handoffs.WithLabelValues("suppressed").Inc()
	}
}

// ObserveUpdate counts a transport update
func (r *Recorder) ObserveUpdate(err error) {
	if r == nil {
		return
	}
	status := "ok"
	if err != nil {
		status = "error"
	}
	r.updates.WithLabelValues(status).Inc()
}

// NewRouter serves the metrics of gatherer plus a liveness probe
func NewRouter(gatherer prometheus.Gatherer) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))
	return r
}
