package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/iamdew/yellostory-lunch/services"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Values of the outcome label on lunch_requests_total.
const (
	outcomeOK          = "ok"
	outcomeInvalid     = "invalid"
	outcomeStoreError  = "store_error"
	outcomeRateLimited = "rate_limited"
	outcomePanic       = "panic"
)

var (
	lunchRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "lunch",
			Name:      "requests_total",
			Help:      "Lunch API requests by route pattern and outcome.",
		},
		[]string{"route", "outcome"},
	)

	lunchRequestSeconds = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "lunch",
			Name:      "request_duration_seconds",
			Help:      "Lunch API latency by route pattern.",
			Buckets:   []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		},
		[]string{"route"},
	)

	menuLookups = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "lunch",
			Name:      "menu_lookups_total",
			Help:      "Relative-day menu lookups by day and whether a menu was registered.",
		},
		[]string{"day", "found"},
	)

	chatReplies = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "lunch",
			Name:      "chat_replies_total",
			Help:      "Chat replies by the day the pressed button asked about.",
		},
		[]string{"day"},
	)
)

// outcomeWriter is the ResponseWriter handed down the chain by
// metricsMiddleware. Handlers and inner middleware label the request through
// setOutcome; the status code is kept for the request log.
type outcomeWriter struct {
	http.ResponseWriter
	status  int
	outcome string
}

func (w *outcomeWriter) WriteHeader(code int) {
	if w.status == 0 {
		w.status = code
	}
	w.ResponseWriter.WriteHeader(code)
}

// setOutcome labels the current request. It is a no-op for writers that did
// not come through metricsMiddleware.
func setOutcome(w http.ResponseWriter, outcome string) {
	if ow, ok := w.(*outcomeWriter); ok {
		ow.outcome = outcome
	}
}

// statusOf reports the status written so far, 200 when nothing was set.
func statusOf(w http.ResponseWriter) int {
	if ow, ok := w.(*outcomeWriter); ok && ow.status != 0 {
		return ow.status
	}
	return http.StatusOK
}

// metricsMiddleware counts every lunch route by its registered pattern, never
// the raw path, so query strings cannot add label values.
func (s *Server) metricsMiddleware(route string, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ow := &outcomeWriter{ResponseWriter: w, outcome: outcomeOK}

		next.ServeHTTP(ow, r)

		lunchRequests.WithLabelValues(route, ow.outcome).Inc()
		lunchRequestSeconds.WithLabelValues(route).Observe(time.Since(start).Seconds())
	}
}

func observeLookup(d services.Day, found bool) {
	menuLookups.WithLabelValues(d.String(), strconv.FormatBool(found)).Inc()
}

func observeReply(content string) {
	day := "unknown"
	if d, ok := services.DayForButton(content); ok {
		day = d.String()
	}
	chatReplies.WithLabelValues(day).Inc()
}
